// ABOUTME: CLI commands for daily check-ins.
// ABOUTME: Guided huh form plus direct category set, show, and streak.
package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/fatih/color"
	"github.com/harperreed/aria/internal/checkin"
	"github.com/harperreed/aria/internal/insights"
	"github.com/harperreed/aria/internal/models"
	"github.com/spf13/cobra"
)

var checkinDate string

// Prompts for the guided form, in category order.
var checkinPrompts = map[models.CheckInCategory]string{
	models.CategoryMood:       "How are you feeling right now?",
	models.CategoryEnergy:     "Energy level today (1-10)?",
	models.CategoryStress:     "Stress level today (1-10)?",
	models.CategorySleep:      "How did you sleep?",
	models.CategoryGratitude:  "What are you grateful for today?",
	models.CategoryChallenges: "Anything challenging you today?",
	models.CategoryGoals:      "What's one thing you want to get done?",
	models.CategoryReflection: "Any other reflections?",
}

var checkinCmd = &cobra.Command{
	Use:     "checkin",
	Aliases: []string{"ci"},
	Short:   "Daily check-in",
	Long: `Record your daily check-in across eight categories:

  mood, energy, stress, sleep, gratitude, challenges, goals, reflection

Run without a subcommand for a guided form. Leave any question blank to
skip it; you can fill in categories later with 'aria checkin set'.
Answers for the same category on the same day overwrite each other.

EXAMPLES:

  aria checkin                           # Guided form
  aria checkin set gratitude "my dog"    # One category directly
  aria checkin show                      # Today's check-in
  aria checkin show 2025-06-02           # A past day
  aria checkin streak                    # Consecutive check-in days`,
	RunE: func(cmd *cobra.Command, args []string) error {
		day := models.DayKey(time.Now())

		existing, err := repo.GetCheckIn(day)
		if err != nil {
			return fmt.Errorf("failed to load check-in: %w", err)
		}

		answers := make(map[models.CheckInCategory]*string, len(models.AllCheckInCategories))
		var fields []huh.Field
		for _, cat := range models.AllCheckInCategories {
			v := new(string)
			if existing != nil {
				*v = existing.Responses[cat]
			}
			answers[cat] = v
			fields = append(fields, huh.NewInput().
				Title(checkinPrompts[cat]).
				Value(v))
		}

		form := huh.NewForm(huh.NewGroup(fields...))
		if err := form.Run(); err != nil {
			return fmt.Errorf("check-in cancelled: %w", err)
		}

		all, err := repo.ListCheckIns()
		if err != nil {
			return fmt.Errorf("failed to load check-ins: %w", err)
		}
		var updated *models.DailyCheckIn
		for _, cat := range models.AllCheckInCategories {
			if *answers[cat] == "" {
				continue
			}
			var created bool
			updated, created = checkin.RecordResponse(all, day, cat, *answers[cat])
			if created {
				all = append(all, updated)
			}
		}
		if updated == nil {
			fmt.Println("Nothing recorded. Come back when you're ready.")
			return nil
		}

		if err := repo.UpsertCheckIn(updated); err != nil {
			return fmt.Errorf("failed to save check-in: %w", err)
		}
		afterCheckInSaved(updated)

		color.Green("✓ Check-in saved (%.0f%% complete)", updated.CompletionScore()*100)
		return nil
	},
}

var checkinSetCmd = &cobra.Command{
	Use:   "set <category> <value>",
	Short: "Answer a single check-in category",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !models.IsValidCheckInCategory(args[0]) {
			return fmt.Errorf("unknown category: %s\nValid categories: mood, energy, stress, sleep, gratitude, challenges, goals, reflection", args[0])
		}

		day := checkinDate
		if day == "" {
			day = models.DayKey(time.Now())
		} else if _, err := time.Parse(models.DayKeyFormat, day); err != nil {
			return fmt.Errorf("invalid date %q, want YYYY-MM-DD", checkinDate)
		}

		all, err := repo.ListCheckIns()
		if err != nil {
			return fmt.Errorf("failed to load check-ins: %w", err)
		}
		updated, created := checkin.RecordResponse(all, day, models.CheckInCategory(args[0]), args[1])
		if err := repo.UpsertCheckIn(updated); err != nil {
			return fmt.Errorf("failed to save check-in: %w", err)
		}
		afterCheckInSaved(updated)

		verb := "Updated"
		if created {
			verb = "Started"
		}
		color.Green("✓ %s check-in for %s (%.0f%% complete)", verb, day, updated.CompletionScore()*100)
		return nil
	},
}

var checkinShowCmd = &cobra.Command{
	Use:   "show [date]",
	Short: "Show a day's check-in",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		day := models.DayKey(time.Now())
		if len(args) == 1 {
			day = args[0]
		}

		c, err := repo.GetCheckIn(day)
		if err != nil {
			return fmt.Errorf("failed to load check-in: %w", err)
		}
		if c == nil {
			fmt.Printf("No check-in for %s.\n", day)
			return nil
		}

		faint := color.New(color.Faint)
		fmt.Printf("%s (%.0f%% complete)\n", c.Date, c.CompletionScore()*100)
		for _, cat := range models.AllCheckInCategories {
			if v, ok := c.Responses[cat]; ok {
				fmt.Printf("  %s %s\n", faint.Sprint(padRight(string(cat)+":", 12)), v)
			}
		}
		return nil
	},
}

var checkinStreakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Show consecutive check-in days",
	RunE: func(cmd *cobra.Command, args []string) error {
		all, err := repo.ListCheckIns()
		if err != nil {
			return fmt.Errorf("failed to load check-ins: %w", err)
		}

		streak := checkin.Streak(all, time.Now())
		switch streak {
		case 0:
			fmt.Println("No streak yet. Today is a good day to start.")
		case 1:
			fmt.Println("1 day. Keep going!")
		default:
			fmt.Printf("%d days in a row.\n", streak)
		}
		return nil
	},
}

// afterCheckInSaved notes the check-in date in the conversation context and
// runs the immediate per-response insight triggers, which fire outside the
// batch throttle. Failures here never fail the check-in.
func afterCheckInSaved(c *models.DailyCheckIn) {
	// Lexicographic compare works for YYYY-MM-DD keys; a backdated
	// --date never moves the marker backwards.
	if convCtx, err := repo.LoadContext(); err == nil && c.Date > convCtx.LastCheckInDate {
		convCtx.LastCheckInDate = c.Date
		_ = repo.SaveContext(convCtx)
	}

	existing, err := repo.ListInsights(false)
	if err != nil {
		return
	}
	if fresh := insights.FromCheckIn(c, existing, time.Now()); len(fresh) > 0 {
		_ = repo.AddInsights(fresh)
	}
}

func init() {
	checkinSetCmd.Flags().StringVar(&checkinDate, "date", "", "day to record (YYYY-MM-DD, default today)")

	checkinCmd.AddCommand(checkinSetCmd)
	checkinCmd.AddCommand(checkinShowCmd)
	checkinCmd.AddCommand(checkinStreakCmd)
	rootCmd.AddCommand(checkinCmd)
}
