// ABOUTME: Pure scheduling functions for wellness habits.
// ABOUTME: Due-today rules per frequency, streaks, and windowed completion rates.
package habits

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/aria/internal/models"
)

// Stats summarizes a habit's completion history over a trailing window.
type Stats struct {
	Streak           int        `json:"streak"`
	CompletionRate   float64    `json:"completion_rate"` // 0.0-1.0
	TotalCompletions int        `json:"total_completions"`
	AverageRating    float64    `json:"average_rating"`
	LastCompletedAt  *time.Time `json:"last_completed_at,omitempty"`
}

// IsDueToday reports whether the habit should be acted on today.
// A completion earlier the same calendar day removes due-ness for all
// frequencies.
func IsDueToday(habit *models.WellnessHabit, completions []*models.HabitCompletion, today time.Time) bool {
	if !habit.IsActive {
		return false
	}
	if completedOn(habit.ID, completions, today) {
		return false
	}

	switch habit.Frequency {
	case models.FrequencyDaily:
		return true
	case models.FrequencyWeekdays:
		wd := today.Weekday()
		return wd >= time.Monday && wd <= time.Friday
	case models.FrequencyWeekends:
		wd := today.Weekday()
		return wd == time.Saturday || wd == time.Sunday
	case models.FrequencyWeekly:
		return !completedThisISOWeek(habit.ID, completions, today)
	case models.FrequencyBiweekly:
		// Fixed 14-day parity cycle anchored at the Unix epoch, shared by
		// all biweekly habits. See DESIGN.md for the open question on
		// per-habit anchoring.
		return (daysSinceEpoch(today)/14)%2 == 0
	case models.FrequencyCustom:
		// Placeholder policy: custom habits are always due.
		return true
	}
	return false
}

// ExpectedOccurrences returns the expected completion count for a frequency
// over a trailing window of windowDays days. Used as the completion-rate
// denominator.
func ExpectedOccurrences(freq models.Frequency, windowDays int) int {
	n := float64(windowDays)
	switch freq {
	case models.FrequencyDaily:
		return windowDays
	case models.FrequencyWeekdays:
		return int(math.Round(n / 7 * 5))
	case models.FrequencyWeekends:
		return int(math.Round(n / 7 * 2))
	case models.FrequencyWeekly:
		return int(math.Round(n / 7))
	case models.FrequencyBiweekly:
		return int(math.Round(n / 14))
	case models.FrequencyCustom:
		return windowDays
	}
	return 0
}

// ComputeStats derives streak, windowed completion rate, totals, and rating
// statistics for one habit. Completions belonging to other habits are ignored.
func ComputeStats(habit *models.WellnessHabit, completions []*models.HabitCompletion, windowDays int, today time.Time) Stats {
	var stats Stats
	var ratingSum, ratingCount int

	mine := make([]*models.HabitCompletion, 0, len(completions))
	for _, c := range completions {
		if c.HabitID != habit.ID {
			continue
		}
		mine = append(mine, c)
		stats.TotalCompletions++
		if c.Rating != nil {
			ratingSum += *c.Rating
			ratingCount++
		}
		if stats.LastCompletedAt == nil || c.CompletedAt.After(*stats.LastCompletedAt) {
			t := c.CompletedAt
			stats.LastCompletedAt = &t
		}
	}
	if ratingCount > 0 {
		stats.AverageRating = float64(ratingSum) / float64(ratingCount)
	}

	// Streak: backward daily scan from today, stop at the first gap.
	for offset := 0; offset < windowDays; offset++ {
		day := today.AddDate(0, 0, -offset)
		if !completedOn(habit.ID, mine, day) {
			break
		}
		stats.Streak++
	}

	// Windowed completion rate, clamped to [0, 1].
	expected := ExpectedOccurrences(habit.Frequency, windowDays)
	if expected > 0 {
		actual := 0
		for _, c := range mine {
			age := daysSinceEpoch(today) - daysSinceEpoch(c.CompletedAt)
			if age >= 0 && age < windowDays {
				actual++
			}
		}
		rate := float64(actual) / float64(expected)
		if rate > 1 {
			rate = 1
		}
		stats.CompletionRate = rate
	}

	return stats
}

// completedOn reports whether any completion for the habit falls on the same
// calendar day as t.
func completedOn(habitID uuid.UUID, completions []*models.HabitCompletion, t time.Time) bool {
	y, m, d := t.Date()
	for _, c := range completions {
		if c.HabitID != habitID {
			continue
		}
		cy, cm, cd := c.CompletedAt.Date()
		if cy == y && cm == m && cd == d {
			return true
		}
	}
	return false
}

// completedThisISOWeek reports whether a completion exists within the current
// ISO week, up to and including today.
func completedThisISOWeek(habitID uuid.UUID, completions []*models.HabitCompletion, today time.Time) bool {
	year, week := today.ISOWeek()
	for _, c := range completions {
		if c.HabitID != habitID {
			continue
		}
		cy, cw := c.CompletedAt.ISOWeek()
		if cy == year && cw == week && daysSinceEpoch(c.CompletedAt) <= daysSinceEpoch(today) {
			return true
		}
	}
	return false
}

// daysSinceEpoch returns the calendar day count since the Unix epoch for the
// local date of t.
func daysSinceEpoch(t time.Time) int {
	y, m, d := t.Date()
	return int(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400)
}
