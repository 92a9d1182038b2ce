// ABOUTME: CLI commands for mood tracking.
// ABOUTME: Handles manual recording, text analysis, and listing entries.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/aria/internal/models"
	"github.com/harperreed/aria/internal/mood"
	"github.com/spf13/cobra"
)

var (
	moodEnergy   int
	moodStress   int
	moodNotes    string
	moodActivity string

	analyzeRate        float64
	analyzePauses      float64
	analyzeVoiceEnergy float64

	moodListLimit int
)

var moodCmd = &cobra.Command{
	Use:     "mood",
	Aliases: []string{"m"},
	Short:   "Track how you feel",
	Long: `Track your mood, either by picking a label directly or by letting
aria analyze free text for emotional signal.

MOODS:

  happy, calm, stressed, anxious, tired, energetic, sad, excited

EXAMPLES:

  aria mood record happy --energy 7 --stress 2
  aria mood record tired --notes "long week"
  aria mood analyze "I'm overwhelmed with deadlines"
  aria mood list -n 10`,
}

var moodRecordCmd = &cobra.Command{
	Use:   "record <mood>",
	Short: "Record a mood entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		label := strings.ToLower(args[0])
		if !models.IsValidMood(label) {
			return fmt.Errorf("unknown mood: %s\nValid moods: happy, calm, stressed, anxious, tired, energetic, sad, excited", args[0])
		}

		e := models.NewWellnessEntry(models.Mood(label), models.SourceManualSelection)
		if moodEnergy > 0 || moodStress > 0 {
			e.WithLevels(moodEnergy, moodStress)
		}
		if moodNotes != "" {
			e.WithNotes(moodNotes)
		}
		if moodActivity != "" {
			e.WithActivity(moodActivity)
		}

		if err := repo.CreateEntry(e); err != nil {
			return fmt.Errorf("failed to record mood: %w", err)
		}

		color.Green("✓ Recorded %s", models.Mood(label).Display().Label)
		fmt.Printf("  %s\n", color.New(color.Faint).Sprint(e.ID.String()[:8]))
		return nil
	},
}

var moodAnalyzeCmd = &cobra.Command{
	Use:   "analyze <text...>",
	Short: "Detect mood from free text",
	Long: `Analyze free text for mood, energy, and stress. The detected result
is recorded as a mood entry.

Optional voice metrics refine the result when the text came from a
transcription:

  --rate           speech rate in words per minute
  --pauses         pauses per minute
  --voice-energy   vocal energy 0.0-1.0

EXAMPLES:

  aria mood analyze "I'm so stressed and overwhelmed"
  aria mood analyze "feeling great" --voice-energy 0.9`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.Join(args, " ")

		var voice *models.VoiceMetrics
		if cmd.Flags().Changed("rate") || cmd.Flags().Changed("pauses") || cmd.Flags().Changed("voice-energy") {
			voice = &models.VoiceMetrics{
				SpeechRateWPM:   analyzeRate,
				PausesPerMinute: analyzePauses,
				Energy:          analyzeVoiceEnergy,
			}
		}

		result, ok := mood.Classify(text, voice)
		if !ok {
			fmt.Println("Not enough signal to detect a mood. Try describing how you feel.")
			return nil
		}

		source := models.SourceTextAnalysis
		if voice != nil {
			source = models.SourceVoiceAnalysis
		}
		e := models.NewWellnessEntry(result.DetectedMood, source).
			WithLevels(result.EnergyLevel, result.StressLevel).
			WithNotes(text).
			WithMetadata("confidence", fmt.Sprintf("%.2f", result.Confidence))
		if len(result.Indicators) > 0 {
			e.WithMetadata("indicators", strings.Join(result.Indicators, ", "))
		}
		if err := repo.CreateEntry(e); err != nil {
			return fmt.Errorf("failed to record analysis: %w", err)
		}

		d := result.DetectedMood.Display()
		color.Green("✓ Detected %s (%.0f%% confidence)", d.Label, result.Confidence*100)
		fmt.Printf("  energy %d/10, stress %d/10\n", result.EnergyLevel, result.StressLevel)
		if len(result.Indicators) > 0 {
			fmt.Printf("  %s\n", color.New(color.Faint).Sprintf("signals: %s", strings.Join(result.Indicators, ", ")))
		}
		return nil
	},
}

var moodListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List recent mood entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := repo.ListEntries(moodListLimit)
		if err != nil {
			return fmt.Errorf("failed to list entries: %w", err)
		}
		if len(entries) == 0 {
			fmt.Println("No mood entries yet. Try 'aria mood record calm'.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, e := range entries {
			levels := ""
			if e.EnergyLevel != nil && e.StressLevel != nil {
				levels = faint.Sprintf(" energy %d stress %d", *e.EnergyLevel, *e.StressLevel)
			}
			notes := ""
			if e.Notes != nil && *e.Notes != "" {
				notes = faint.Sprintf(" (%s)", truncate(*e.Notes, 40))
			}
			fmt.Printf("%s %s %s%s%s\n",
				faint.Sprint(e.ID.String()[:8]),
				faint.Sprint(e.Timestamp.Format("2006-01-02 15:04")),
				padRight(e.Mood.Display().Label, 10),
				levels,
				notes)
		}
		return nil
	},
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func init() {
	moodRecordCmd.Flags().IntVar(&moodEnergy, "energy", 0, "energy level 1-10")
	moodRecordCmd.Flags().IntVar(&moodStress, "stress", 0, "stress level 1-10")
	moodRecordCmd.Flags().StringVar(&moodNotes, "notes", "", "notes for the entry")
	moodRecordCmd.Flags().StringVar(&moodActivity, "activity", "", "what you were doing")

	moodAnalyzeCmd.Flags().Float64Var(&analyzeRate, "rate", 0, "speech rate (words per minute)")
	moodAnalyzeCmd.Flags().Float64Var(&analyzePauses, "pauses", 0, "pauses per minute")
	moodAnalyzeCmd.Flags().Float64Var(&analyzeVoiceEnergy, "voice-energy", 0.5, "vocal energy 0.0-1.0")

	moodListCmd.Flags().IntVarP(&moodListLimit, "limit", "n", 20, "max number of results")

	moodCmd.AddCommand(moodRecordCmd)
	moodCmd.AddCommand(moodAnalyzeCmd)
	moodCmd.AddCommand(moodListCmd)
	rootCmd.AddCommand(moodCmd)
}
