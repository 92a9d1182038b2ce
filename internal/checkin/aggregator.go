// ABOUTME: Daily check-in aggregation: per-day lookup, response recording, streaks.
// ABOUTME: Pure functions over check-in lists; last-write-wins per category within a day.
package checkin

import (
	"time"

	"github.com/harperreed/aria/internal/models"
)

// ForDay returns the check-in matching the YYYY-MM-DD day key, or nil.
func ForDay(checkIns []*models.DailyCheckIn, day string) *models.DailyCheckIn {
	for _, c := range checkIns {
		if c.Date == day {
			return c
		}
	}
	return nil
}

// RecordResponse records a category answer on the check-in for the given day,
// creating the day's check-in if none exists yet. Answering a category that
// was already answered overwrites the prior value. Returns the updated
// check-in and whether it was newly created.
func RecordResponse(checkIns []*models.DailyCheckIn, day string, category models.CheckInCategory, value string) (*models.DailyCheckIn, bool) {
	c := ForDay(checkIns, day)
	created := false
	if c == nil {
		c = models.NewDailyCheckIn(day)
		created = true
	}
	c.Responses[category] = value
	return c, created
}

// Streak counts consecutive days ending today that have a check-in.
func Streak(checkIns []*models.DailyCheckIn, today time.Time) int {
	streak := 0
	for {
		day := models.DayKey(today.AddDate(0, 0, -streak))
		if ForDay(checkIns, day) == nil {
			break
		}
		streak++
	}
	return streak
}

// SanitizeResponses filters out malformed category keys, as found in
// hand-edited or legacy files. Invalid keys are dropped rather than failing
// the whole load.
func SanitizeResponses(raw map[models.CheckInCategory]string) map[models.CheckInCategory]string {
	clean := make(map[models.CheckInCategory]string, len(raw))
	for k, v := range raw {
		if models.IsValidCheckInCategory(string(k)) {
			clean[k] = v
		}
	}
	return clean
}
