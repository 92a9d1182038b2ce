// ABOUTME: CLI commands for wellness habits.
// ABOUTME: Handles add, list, done, due, stats, and archive operations.
package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/aria/internal/habits"
	"github.com/harperreed/aria/internal/models"
	"github.com/spf13/cobra"
)

var (
	habitType        string
	habitFrequency   string
	habitDescription string
	habitDifficulty  string
	habitDuration    int

	habitListAll bool

	doneRating int
	doneNotes  string
)

var habitCmd = &cobra.Command{
	Use:     "habit",
	Aliases: []string{"h"},
	Short:   "Build wellness habits",
	Long: `Create and track wellness habits.

HABIT TYPES:

  meditation, exercise, hydration, sleep, nutrition, gratitude,
  journaling, breathing, stretching, walking, reading, social,
  mindfulness, digital_detox, creative

FREQUENCIES:

  daily      every day
  weekdays   Monday through Friday
  weekends   Saturday and Sunday
  weekly     once per calendar week
  biweekly   every other week
  custom     user-defined schedule

EXAMPLES:

  aria habit add "Morning Meditation" --type meditation --duration 10
  aria habit add "Gym" --type exercise --frequency weekdays --difficulty challenging
  aria habit done abc123 --rating 4
  aria habit due
  aria habit stats abc123`,
}

var habitAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a habit",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !models.IsValidHabitType(habitType) {
			return fmt.Errorf("unknown habit type: %s (see 'aria habit --help' for the list)", habitType)
		}
		if !models.IsValidFrequency(habitFrequency) {
			return fmt.Errorf("unknown frequency: %s (daily, weekdays, weekends, weekly, biweekly, custom)", habitFrequency)
		}

		h := models.NewWellnessHabit(args[0], models.HabitType(habitType), models.Frequency(habitFrequency))
		if habitDescription != "" {
			h.WithDescription(habitDescription)
		}
		if habitDifficulty != "" {
			if !models.IsValidDifficulty(habitDifficulty) {
				return fmt.Errorf("unknown difficulty: %s (easy, moderate, challenging)", habitDifficulty)
			}
			h.WithDifficulty(models.Difficulty(habitDifficulty))
		}
		if habitDuration > 0 {
			h.WithTargetDuration(habitDuration)
		}

		if err := repo.CreateHabit(h); err != nil {
			return fmt.Errorf("failed to create habit: %w", err)
		}

		color.Green("✓ Added %q (%s, %s)", h.Name, h.Type, h.Frequency)
		fmt.Printf("  %s\n", color.New(color.Faint).Sprint(h.ID.String()[:8]))
		return nil
	},
}

var habitListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List habits",
	RunE: func(cmd *cobra.Command, args []string) error {
		all, err := repo.ListHabits(habitListAll)
		if err != nil {
			return fmt.Errorf("failed to list habits: %w", err)
		}
		if len(all) == 0 {
			fmt.Println("No habits yet. Try 'aria habit add \"Morning Meditation\" --type meditation'.")
			return nil
		}

		completions, err := repo.ListCompletions(nil)
		if err != nil {
			return fmt.Errorf("failed to list completions: %w", err)
		}

		now := time.Now()
		faint := color.New(color.Faint)
		for _, h := range all {
			marker := " "
			if habits.IsDueToday(h, completions, now) {
				marker = color.YellowString("●")
			}
			status := ""
			if !h.IsActive {
				status = faint.Sprint(" [archived]")
			}
			fmt.Printf("%s %s %s %s%s\n",
				marker,
				faint.Sprint(h.ID.String()[:8]),
				padRight(h.Name, 24),
				faint.Sprintf("%s/%s", h.Type, h.Frequency),
				status)
		}
		fmt.Println(faint.Sprint("\n● due today"))
		return nil
	},
}

var habitDueCmd = &cobra.Command{
	Use:   "due",
	Short: "Show habits due today",
	RunE: func(cmd *cobra.Command, args []string) error {
		all, err := repo.ListHabits(false)
		if err != nil {
			return fmt.Errorf("failed to list habits: %w", err)
		}
		completions, err := repo.ListCompletions(nil)
		if err != nil {
			return fmt.Errorf("failed to list completions: %w", err)
		}

		now := time.Now()
		var due []*models.WellnessHabit
		for _, h := range all {
			if habits.IsDueToday(h, completions, now) {
				due = append(due, h)
			}
		}
		if len(due) == 0 {
			color.Green("✓ Nothing due. You're all caught up for today.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, h := range due {
			fmt.Printf("%s %s %s\n",
				faint.Sprint(h.ID.String()[:8]),
				padRight(h.Name, 24),
				faint.Sprint(string(h.Type)))
		}
		return nil
	},
}

var habitDoneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Log a habit completion",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := repo.GetHabit(args[0])
		if err != nil {
			return fmt.Errorf("habit not found: %s", args[0])
		}

		c := models.NewHabitCompletion(h.ID)
		if doneRating > 0 {
			if doneRating > 5 {
				return fmt.Errorf("rating must be 1-5")
			}
			c.WithRating(doneRating)
		}
		if doneNotes != "" {
			c.WithNotes(doneNotes)
		}

		if err := repo.CreateCompletion(c); err != nil {
			return fmt.Errorf("failed to log completion: %w", err)
		}

		completions, err := repo.ListCompletions(&h.ID)
		if err != nil {
			return fmt.Errorf("failed to list completions: %w", err)
		}
		stats := habits.ComputeStats(h, completions, 7, time.Now())

		color.Green("✓ Logged %q", h.Name)
		if stats.Streak > 1 {
			fmt.Printf("  %d-day streak\n", stats.Streak)
		}
		return nil
	},
}

var habitStatsCmd = &cobra.Command{
	Use:   "stats <id>",
	Short: "Show streak and completion stats",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := repo.GetHabit(args[0])
		if err != nil {
			return fmt.Errorf("habit not found: %s", args[0])
		}
		completions, err := repo.ListCompletions(&h.ID)
		if err != nil {
			return fmt.Errorf("failed to list completions: %w", err)
		}

		stats := habits.ComputeStats(h, completions, 7, time.Now())

		fmt.Printf("%s (%s, %s)\n", h.Name, h.Type, h.Frequency)
		fmt.Printf("  streak:       %d days\n", stats.Streak)
		fmt.Printf("  last 7 days:  %.0f%%\n", stats.CompletionRate*100)
		fmt.Printf("  completions:  %d\n", stats.TotalCompletions)
		if stats.AverageRating > 0 {
			fmt.Printf("  avg rating:   %.1f/5\n", stats.AverageRating)
		}
		if stats.LastCompletedAt != nil {
			fmt.Printf("  last done:    %s\n", stats.LastCompletedAt.Format("2006-01-02 15:04"))
		}
		return nil
	},
}

var habitArchiveCmd = &cobra.Command{
	Use:   "archive <id>",
	Short: "Archive a habit (soft delete)",
	Long: `Archive a habit. Archived habits stop appearing in lists and due
calculations but their history is kept.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := repo.GetHabit(args[0])
		if err != nil {
			return fmt.Errorf("habit not found: %s", args[0])
		}

		h.Archive()
		if err := repo.UpdateHabit(h); err != nil {
			return fmt.Errorf("failed to archive habit: %w", err)
		}

		color.Green("✓ Archived %q", h.Name)
		return nil
	},
}

func init() {
	habitAddCmd.Flags().StringVarP(&habitType, "type", "t", "", "habit type (required)")
	habitAddCmd.Flags().StringVarP(&habitFrequency, "frequency", "f", "daily", "daily, weekdays, weekends, weekly, biweekly, custom")
	habitAddCmd.Flags().StringVar(&habitDescription, "description", "", "habit description")
	habitAddCmd.Flags().StringVar(&habitDifficulty, "difficulty", "", "easy, moderate, challenging")
	habitAddCmd.Flags().IntVar(&habitDuration, "duration", 0, "target duration in minutes")
	_ = habitAddCmd.MarkFlagRequired("type")

	habitListCmd.Flags().BoolVarP(&habitListAll, "all", "a", false, "include archived habits")

	habitDoneCmd.Flags().IntVarP(&doneRating, "rating", "r", 0, "how it went, 1-5")
	habitDoneCmd.Flags().StringVar(&doneNotes, "notes", "", "notes for the completion")

	habitCmd.AddCommand(habitAddCmd)
	habitCmd.AddCommand(habitListCmd)
	habitCmd.AddCommand(habitDueCmd)
	habitCmd.AddCommand(habitDoneCmd)
	habitCmd.AddCommand(habitStatsCmd)
	habitCmd.AddCommand(habitArchiveCmd)
	rootCmd.AddCommand(habitCmd)
}
