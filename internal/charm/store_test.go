// ABOUTME: Unit tests for Charm-based wellness storage.
// ABOUTME: Tests key formats and JSON record round-trips without a live KV.
package charm

import (
	"testing"

	"github.com/harperreed/aria/internal/models"
)

func TestHabitKeyFormat(t *testing.T) {
	h := models.NewWellnessHabit("Meditate", models.HabitMeditation, models.FrequencyDaily)
	key := HabitPrefix + h.ID.String()

	if key[:6] != "habit:" {
		t.Errorf("Expected key to start with 'habit:', got: %s", key[:6])
	}
}

func TestCollectionPrefixes(t *testing.T) {
	tests := []struct {
		name     string
		prefix   string
		expected string
	}{
		{"Entry", EntryPrefix, "entry:"},
		{"Habit", HabitPrefix, "habit:"},
		{"Completion", CompletionPrefix, "completion:"},
		{"Insight", InsightPrefix, "insight:"},
		{"CheckIn", CheckInPrefix, "checkin:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.prefix != tt.expected {
				t.Errorf("Expected %s = %q, got %q", tt.name, tt.expected, tt.prefix)
			}
		})
	}
}

func TestCheckInKeyUsesDate(t *testing.T) {
	ci := models.NewDailyCheckIn("2025-06-02")
	key := CheckInPrefix + ci.Date

	if key != "checkin:2025-06-02" {
		t.Errorf("Expected date-keyed check-in, got: %s", key)
	}
}

func TestRecordRoundTrip(t *testing.T) {
	h := models.NewWellnessHabit("Evening Walk", models.HabitWalking, models.FrequencyWeekdays)
	data, err := marshalJSON(h)
	if err != nil {
		t.Fatalf("marshalJSON: %v", err)
	}

	got, err := unmarshalJSON[models.WellnessHabit](data)
	if err != nil {
		t.Fatalf("unmarshalJSON: %v", err)
	}
	if got.ID != h.ID || got.Name != h.Name || got.Frequency != h.Frequency {
		t.Errorf("round-trip mismatch: %+v vs %+v", got, h)
	}
}
