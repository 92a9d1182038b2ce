// ABOUTME: Coaching insight generation with title-based 24h deduplication.
// ABOUTME: Batch generation takes an explicit cursor and throttles to one run per 6h.
package insights

import (
	"fmt"
	"sort"
	"time"

	"github.com/harperreed/aria/internal/habits"
	"github.com/harperreed/aria/internal/models"
)

const (
	// DedupWindow suppresses a second insight with an identical title.
	DedupWindow = 24 * time.Hour

	// BatchInterval is the minimum spacing between batch generation runs.
	BatchInterval = 6 * time.Hour
)

// Trigger thresholds.
const (
	strongWeekRate    = 0.9
	strugglingRate    = 0.3
	highStressAnswer  = 7
	lowEnergyAnswer   = 3
	holisticHabitRate = 0.8
	holisticCheckIn   = 0.7
)

var habitStreakMilestones = []int{3, 7, 21}
var checkInStreakMilestones = []int{7, 21, 30}

// HabitReport pairs a habit with its 7-day stats for batch generation.
type HabitReport struct {
	Habit *models.WellnessHabit
	Stats habits.Stats
}

// Context carries everything a batch generation run needs. The cursor is
// explicit state owned by the caller (persisted between runs), not hidden
// process-lifetime state.
type Context struct {
	Now           time.Time
	Existing      []*models.Insight
	Reports       []HabitReport
	OverallRate   float64 // mean 7-day completion rate across active habits
	CheckIn       *models.DailyCheckIn
	CheckInStreak int
	LastBatchRun  time.Time
}

// Generate runs the batch trigger rules. Returns the new insights and true,
// or nil and false when the run is throttled by the 6-hour window.
func Generate(ctx Context) ([]*models.Insight, bool) {
	if !ctx.LastBatchRun.IsZero() && ctx.Now.Sub(ctx.LastBatchRun) < BatchInterval {
		return nil, false
	}

	var candidates []*models.Insight

	if len(ctx.Reports) > 0 {
		if ctx.OverallRate >= strongWeekRate {
			candidates = append(candidates, models.NewInsight(
				models.InsightCelebration,
				"Outstanding Week!",
				"You completed over 90% of your habits this week. That consistency is powerful.",
			).WithPriority(0.7).WithData("completion_rate", fmt.Sprintf("%.2f", ctx.OverallRate)))
		} else if ctx.OverallRate < strugglingRate {
			candidates = append(candidates, models.NewInsight(
				models.InsightEncouragement,
				"A Fresh Start",
				"This week was tough on your habits. Pick one small habit and rebuild from there.",
			).WithPriority(0.4).WithData("completion_rate", fmt.Sprintf("%.2f", ctx.OverallRate)))
		}
	}

	for _, r := range ctx.Reports {
		// Exact equality: a streak that jumps past a milestone without
		// being observed at it does not fire.
		for _, milestone := range habitStreakMilestones {
			if r.Stats.Streak == milestone {
				candidates = append(candidates, models.NewInsight(
					models.InsightCelebration,
					fmt.Sprintf("%d-Day Streak!", milestone),
					fmt.Sprintf("%s has a %d-day streak going. Keep it alive!", r.Habit.Name, milestone),
				).WithHabit(r.Habit.ID).WithPriority(0.7))
			}
		}
	}

	if ctx.CheckIn != nil {
		candidates = append(candidates, fromCheckIn(ctx.CheckIn)...)

		if ctx.OverallRate > holisticHabitRate && ctx.CheckIn.CompletionScore() > holisticCheckIn {
			candidates = append(candidates, models.NewInsight(
				models.InsightAchievement,
				"Fully Engaged",
				"Strong habit completion and a thorough check-in today. You are showing up for yourself.",
			).WithPriority(0.6))
		}
	}

	for _, milestone := range checkInStreakMilestones {
		if ctx.CheckInStreak == milestone {
			candidates = append(candidates, models.NewInsight(
				models.InsightAchievement,
				fmt.Sprintf("%d Days of Check-Ins", milestone),
				fmt.Sprintf("You have checked in %d days in a row. Reflection is becoming a habit of its own.", milestone),
			).WithPriority(0.6))
		}
	}

	return dedup(ctx.Existing, stamp(candidates, ctx.Now), ctx.Now), true
}

// FromCheckIn evaluates the immediate check-in triggers, deduplicated
// against existing insights. Called right after a response is recorded,
// outside the batch throttle.
func FromCheckIn(checkIn *models.DailyCheckIn, existing []*models.Insight, now time.Time) []*models.Insight {
	return dedup(existing, stamp(fromCheckIn(checkIn), now), now)
}

// stamp aligns candidate timestamps with the clock the trigger rules ran
// under, so the 24h dedup window and the stored timestamps share one clock.
func stamp(candidates []*models.Insight, now time.Time) []*models.Insight {
	for _, c := range candidates {
		c.Timestamp = now
	}
	return candidates
}

func fromCheckIn(checkIn *models.DailyCheckIn) []*models.Insight {
	var out []*models.Insight

	if v, ok := checkIn.Responses[models.CategoryStress]; ok {
		if n, err := parseScale(v); err == nil && n >= highStressAnswer {
			out = append(out, models.NewInsight(
				models.InsightConcern,
				"High Stress Today",
				"Your stress is running high. A short breathing exercise or a walk can take the edge off.",
			).WithPriority(0.9))
		}
	}

	if v, ok := checkIn.Responses[models.CategoryEnergy]; ok {
		if n, err := parseScale(v); err == nil && n <= lowEnergyAnswer {
			out = append(out, models.NewInsight(
				models.InsightSuggestion,
				"Low Energy Day",
				"Energy is low today. Consider an earlier night or a lighter schedule tomorrow.",
			).WithPriority(0.5))
		}
	}

	if v, ok := checkIn.Responses[models.CategoryGratitude]; ok && v != "" {
		out = append(out, models.NewInsight(
			models.InsightAchievement,
			"Gratitude Noted",
			"You took a moment for gratitude today. That practice compounds.",
		).WithPriority(0.6))
	}

	return out
}

// dedup drops candidates whose title already appears in existing insights
// (or earlier candidates) within the dedup window. Best-effort spam filter,
// not a correctness-critical invariant.
func dedup(existing []*models.Insight, candidates []*models.Insight, now time.Time) []*models.Insight {
	seen := make(map[string]bool)
	for _, i := range existing {
		if now.Sub(i.Timestamp) < DedupWindow {
			seen[i.Title] = true
		}
	}

	var out []*models.Insight
	for _, c := range candidates {
		if seen[c.Title] {
			continue
		}
		seen[c.Title] = true
		out = append(out, c)
	}
	return out
}

// Prune bounds the store to the most recent MaxStoredInsights, newest first.
func Prune(all []*models.Insight) []*models.Insight {
	sort.Slice(all, func(i, j int) bool {
		return all[i].Timestamp.After(all[j].Timestamp)
	})
	if len(all) > models.MaxStoredInsights {
		all = all[:models.MaxStoredInsights]
	}
	return all
}

// parseScale reads a 1-10 scale answer from a check-in response string.
func parseScale(s string) (int, error) {
	var n int
	if _, err := fmt.Sscanf(s, "%d", &n); err != nil {
		return 0, err
	}
	return n, nil
}
