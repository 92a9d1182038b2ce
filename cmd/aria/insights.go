// ABOUTME: CLI commands for coaching insights.
// ABOUTME: Handles batch generation, listing, and marking read.
package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/aria/internal/checkin"
	"github.com/harperreed/aria/internal/habits"
	"github.com/harperreed/aria/internal/insights"
	"github.com/harperreed/aria/internal/models"
	"github.com/harperreed/aria/internal/storage"
	"github.com/spf13/cobra"
)

var insightsUnread bool

var insightsCmd = &cobra.Command{
	Use:     "insights",
	Aliases: []string{"i"},
	Short:   "Coaching insights",
	Long: `Generate and review coaching insights.

Generation looks at habit streaks, weekly completion rates, and today's
check-in, and runs at most once every 6 hours. Repeated insights are
suppressed for 24 hours. The store keeps the newest 50.

KINDS:

  celebration, encouragement, suggestion, concern, pattern, achievement

EXAMPLES:

  aria insights generate
  aria insights list
  aria insights list --unread
  aria insights read abc123`,
}

var insightsGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Run the insight generation rules",
	RunE: func(cmd *cobra.Command, args []string) error {
		fresh, ran, err := runInsightGeneration(repo, time.Now())
		if err != nil {
			return err
		}
		if !ran {
			fmt.Println("Insights were generated recently. Try again in a few hours.")
			return nil
		}
		if len(fresh) == 0 {
			fmt.Println("Nothing new today. Keep doing what you're doing.")
			return nil
		}

		color.Green("✓ Generated %d insight(s)", len(fresh))
		for _, i := range fresh {
			printInsight(i)
		}
		return nil
	},
}

var insightsListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List stored insights",
	RunE: func(cmd *cobra.Command, args []string) error {
		all, err := repo.ListInsights(insightsUnread)
		if err != nil {
			return fmt.Errorf("failed to list insights: %w", err)
		}
		if len(all) == 0 {
			fmt.Println("No insights yet. Try 'aria insights generate'.")
			return nil
		}

		for _, i := range all {
			printInsight(i)
		}
		return nil
	},
}

var insightsReadCmd = &cobra.Command{
	Use:   "read <id>",
	Short: "Mark an insight as read",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := repo.MarkInsightRead(args[0]); err != nil {
			return fmt.Errorf("failed to mark insight read: %w", err)
		}
		color.Green("✓ Marked read")
		return nil
	},
}

func printInsight(i *models.Insight) {
	faint := color.New(color.Faint)
	marker := " "
	if !i.IsRead {
		marker = color.CyanString("•")
	}
	fmt.Printf("%s %s %s [%s] %s\n", marker,
		faint.Sprint(i.ID.String()[:8]),
		faint.Sprint(i.Timestamp.Format("01-02 15:04")),
		i.Kind.Display().Label,
		i.Title)
	fmt.Printf("    %s\n", faint.Sprint(i.Message))
}

// runInsightGeneration assembles the batch generation context from storage,
// runs the rules, and persists the results and the cursor when the run fires.
func runInsightGeneration(repo storage.Repository, now time.Time) ([]*models.Insight, bool, error) {
	lastRun, err := repo.LastInsightRun()
	if err != nil {
		return nil, false, fmt.Errorf("load insight cursor: %w", err)
	}

	active, err := repo.ListHabits(false)
	if err != nil {
		return nil, false, fmt.Errorf("list habits: %w", err)
	}
	completions, err := repo.ListCompletions(nil)
	if err != nil {
		return nil, false, fmt.Errorf("list completions: %w", err)
	}

	var reports []insights.HabitReport
	var rateSum float64
	for _, h := range active {
		st := habits.ComputeStats(h, completions, 7, now)
		reports = append(reports, insights.HabitReport{Habit: h, Stats: st})
		rateSum += st.CompletionRate
	}
	var overall float64
	if len(reports) > 0 {
		overall = rateSum / float64(len(reports))
	}

	checkIns, err := repo.ListCheckIns()
	if err != nil {
		return nil, false, fmt.Errorf("list check-ins: %w", err)
	}
	existing, err := repo.ListInsights(false)
	if err != nil {
		return nil, false, fmt.Errorf("list insights: %w", err)
	}

	fresh, ran := insights.Generate(insights.Context{
		Now:           now,
		Existing:      existing,
		Reports:       reports,
		OverallRate:   overall,
		CheckIn:       checkin.ForDay(checkIns, models.DayKey(now)),
		CheckInStreak: checkin.Streak(checkIns, now),
		LastBatchRun:  lastRun,
	})
	if !ran {
		return nil, false, nil
	}

	if len(fresh) > 0 {
		if err := repo.AddInsights(fresh); err != nil {
			return nil, false, fmt.Errorf("save insights: %w", err)
		}
	}
	if err := repo.SetLastInsightRun(now); err != nil {
		return nil, false, fmt.Errorf("save insight cursor: %w", err)
	}
	return fresh, true, nil
}

func init() {
	insightsListCmd.Flags().BoolVarP(&insightsUnread, "unread", "u", false, "only unread insights")

	insightsCmd.AddCommand(insightsGenerateCmd)
	insightsCmd.AddCommand(insightsListCmd)
	insightsCmd.AddCommand(insightsReadCmd)
	rootCmd.AddCommand(insightsCmd)
}
