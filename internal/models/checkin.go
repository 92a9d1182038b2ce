// ABOUTME: DailyCheckIn model with the 8 structured check-in categories.
// ABOUTME: One check-in per calendar day, keyed by a YYYY-MM-DD date string.
package models

import (
	"time"

	"github.com/google/uuid"
)

// CheckInCategory represents one of the structured daily check-in prompts.
type CheckInCategory string

const (
	CategoryMood       CheckInCategory = "mood"
	CategoryEnergy     CheckInCategory = "energy"
	CategoryStress     CheckInCategory = "stress"
	CategorySleep      CheckInCategory = "sleep"
	CategoryGratitude  CheckInCategory = "gratitude"
	CategoryChallenges CheckInCategory = "challenges"
	CategoryGoals      CheckInCategory = "goals"
	CategoryReflection CheckInCategory = "reflection"
)

// AllCheckInCategories returns the 8 check-in categories in prompt order.
var AllCheckInCategories = []CheckInCategory{
	CategoryMood, CategoryEnergy, CategoryStress, CategorySleep,
	CategoryGratitude, CategoryChallenges, CategoryGoals, CategoryReflection,
}

// IsValidCheckInCategory checks if a string is a valid check-in category.
func IsValidCheckInCategory(s string) bool {
	for _, c := range AllCheckInCategories {
		if string(c) == s {
			return true
		}
	}
	return false
}

// DayKeyFormat is the calendar-day key layout used across the check-in store.
const DayKeyFormat = "2006-01-02"

// DayKey formats a time as a calendar-day key.
func DayKey(t time.Time) string {
	return t.Format(DayKeyFormat)
}

// DailyCheckIn is a once-per-day structured self-report.
// Categories are last-write-wins within the day; the check-in freezes at rollover.
type DailyCheckIn struct {
	ID        uuid.UUID                  `json:"id"`
	Date      string                     `json:"date"` // YYYY-MM-DD
	Responses map[CheckInCategory]string `json:"responses"`
	CreatedAt time.Time                  `json:"created_at"`
	Notes     *string                    `json:"notes,omitempty"`
}

// NewDailyCheckIn creates an empty check-in for the given day key.
func NewDailyCheckIn(date string) *DailyCheckIn {
	return &DailyCheckIn{
		ID:        uuid.New(),
		Date:      date,
		Responses: make(map[CheckInCategory]string),
		CreatedAt: time.Now(),
	}
}

// CompletionScore returns answered categories divided by the total of 8.
func (c *DailyCheckIn) CompletionScore() float64 {
	return float64(len(c.Responses)) / float64(len(AllCheckInCategories))
}
