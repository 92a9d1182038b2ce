// ABOUTME: WellnessHabit and HabitCompletion models for habit tracking.
// ABOUTME: Defines 15 habit categories, frequency rules, and difficulty tiers.
package models

import (
	"time"

	"github.com/google/uuid"
)

// HabitType represents the category of a wellness habit.
type HabitType string

const (
	HabitMeditation    HabitType = "meditation"
	HabitExercise      HabitType = "exercise"
	HabitHydration     HabitType = "hydration"
	HabitSleep         HabitType = "sleep"
	HabitNutrition     HabitType = "nutrition"
	HabitGratitude     HabitType = "gratitude"
	HabitJournaling    HabitType = "journaling"
	HabitBreathing     HabitType = "breathing"
	HabitStretching    HabitType = "stretching"
	HabitWalking       HabitType = "walking"
	HabitReading       HabitType = "reading"
	HabitSocial        HabitType = "social"
	HabitMindfulness   HabitType = "mindfulness"
	HabitDigitalDetox  HabitType = "digital_detox"
	HabitCreative      HabitType = "creative"
)

// AllHabitTypes returns all valid habit categories.
var AllHabitTypes = []HabitType{
	HabitMeditation, HabitExercise, HabitHydration, HabitSleep, HabitNutrition,
	HabitGratitude, HabitJournaling, HabitBreathing, HabitStretching,
	HabitWalking, HabitReading, HabitSocial, HabitMindfulness,
	HabitDigitalDetox, HabitCreative,
}

// IsValidHabitType checks if a string is a valid habit category.
func IsValidHabitType(s string) bool {
	for _, ht := range AllHabitTypes {
		if string(ht) == s {
			return true
		}
	}
	return false
}

// HabitTypeDisplays is the canonical habit category presentation table.
var HabitTypeDisplays = map[HabitType]Display{
	HabitMeditation:   {Label: "Meditation", IconKey: "lotus", ColorKey: "purple"},
	HabitExercise:     {Label: "Exercise", IconKey: "runner", ColorKey: "red"},
	HabitHydration:    {Label: "Hydration", IconKey: "drop", ColorKey: "blue"},
	HabitSleep:        {Label: "Sleep", IconKey: "moon", ColorKey: "indigo"},
	HabitNutrition:    {Label: "Nutrition", IconKey: "apple", ColorKey: "green"},
	HabitGratitude:    {Label: "Gratitude", IconKey: "heart", ColorKey: "pink"},
	HabitJournaling:   {Label: "Journaling", IconKey: "pen", ColorKey: "brown"},
	HabitBreathing:    {Label: "Breathing", IconKey: "wind", ColorKey: "cyan"},
	HabitStretching:   {Label: "Stretching", IconKey: "bend", ColorKey: "orange"},
	HabitWalking:      {Label: "Walking", IconKey: "steps", ColorKey: "teal"},
	HabitReading:      {Label: "Reading", IconKey: "book", ColorKey: "amber"},
	HabitSocial:       {Label: "Social", IconKey: "people", ColorKey: "magenta"},
	HabitMindfulness:  {Label: "Mindfulness", IconKey: "eye", ColorKey: "violet"},
	HabitDigitalDetox: {Label: "Digital Detox", IconKey: "plug", ColorKey: "gray"},
	HabitCreative:     {Label: "Creative", IconKey: "brush", ColorKey: "yellow"},
}

// Display returns the presentation entry for the habit type, with a neutral
// fallback for unknown values.
func (ht HabitType) Display() Display {
	if d, ok := HabitTypeDisplays[ht]; ok {
		return d
	}
	return Display{Label: string(ht), IconKey: "dot", ColorKey: "white"}
}

// Frequency represents how often a habit is due.
type Frequency string

const (
	FrequencyDaily    Frequency = "daily"
	FrequencyWeekdays Frequency = "weekdays"
	FrequencyWeekends Frequency = "weekends"
	FrequencyWeekly   Frequency = "weekly"
	FrequencyBiweekly Frequency = "biweekly"
	FrequencyCustom   Frequency = "custom"
)

// AllFrequencies returns all valid frequencies.
var AllFrequencies = []Frequency{
	FrequencyDaily, FrequencyWeekdays, FrequencyWeekends,
	FrequencyWeekly, FrequencyBiweekly, FrequencyCustom,
}

// IsValidFrequency checks if a string is a valid frequency.
func IsValidFrequency(s string) bool {
	for _, f := range AllFrequencies {
		if string(f) == s {
			return true
		}
	}
	return false
}

// Difficulty represents the effort tier of a habit.
type Difficulty string

const (
	DifficultyEasy        Difficulty = "easy"
	DifficultyModerate    Difficulty = "moderate"
	DifficultyChallenging Difficulty = "challenging"
)

// IsValidDifficulty checks if a string is a valid difficulty tier.
func IsValidDifficulty(s string) bool {
	switch Difficulty(s) {
	case DifficultyEasy, DifficultyModerate, DifficultyChallenging:
		return true
	}
	return false
}

// WellnessHabit represents a recurring wellness practice.
// Habits are soft-deleted via IsActive; the ID is unique and immutable.
type WellnessHabit struct {
	ID                    uuid.UUID         `json:"id"`
	Name                  string            `json:"name"`
	Description           string            `json:"description,omitempty"`
	Type                  HabitType         `json:"type"`
	Frequency             Frequency         `json:"frequency"`
	Difficulty            Difficulty        `json:"difficulty"`
	TargetDurationMinutes int               `json:"target_duration_minutes,omitempty"`
	CreatedAt             time.Time         `json:"created_at"`
	ArchivedAt            *time.Time        `json:"archived_at,omitempty"`
	IsActive              bool              `json:"is_active"`
	Settings              map[string]string `json:"settings,omitempty"`
}

// NewWellnessHabit creates a new habit with generated UUID and current timestamp.
func NewWellnessHabit(name string, habitType HabitType, frequency Frequency) *WellnessHabit {
	return &WellnessHabit{
		ID:         uuid.New(),
		Name:       name,
		Type:       habitType,
		Frequency:  frequency,
		Difficulty: DifficultyModerate,
		CreatedAt:  time.Now(),
		IsActive:   true,
	}
}

// WithDescription sets the habit description.
func (h *WellnessHabit) WithDescription(desc string) *WellnessHabit {
	h.Description = desc
	return h
}

// WithDifficulty sets the difficulty tier.
func (h *WellnessHabit) WithDifficulty(d Difficulty) *WellnessHabit {
	h.Difficulty = d
	return h
}

// WithTargetDuration sets the target duration in minutes.
func (h *WellnessHabit) WithTargetDuration(minutes int) *WellnessHabit {
	h.TargetDurationMinutes = minutes
	return h
}

// Archive soft-deletes the habit.
func (h *WellnessHabit) Archive() {
	now := time.Now()
	h.ArchivedAt = &now
	h.IsActive = false
}

// HabitCompletion records a single completion event for a habit.
// Append-only; multiple completions per day are permitted.
type HabitCompletion struct {
	ID          uuid.UUID         `json:"id"`
	HabitID     uuid.UUID         `json:"habit_id"`
	CompletedAt time.Time         `json:"completed_at"`
	Notes       *string           `json:"notes,omitempty"`
	Rating      *int              `json:"rating,omitempty"` // 1-5
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// NewHabitCompletion creates a completion for the given habit at the current time.
func NewHabitCompletion(habitID uuid.UUID) *HabitCompletion {
	return &HabitCompletion{
		ID:          uuid.New(),
		HabitID:     habitID,
		CompletedAt: time.Now(),
	}
}

// WithCompletedAt sets a custom completion timestamp.
func (c *HabitCompletion) WithCompletedAt(t time.Time) *HabitCompletion {
	c.CompletedAt = t
	return c
}

// WithRating sets the 1-5 rating.
func (c *HabitCompletion) WithRating(rating int) *HabitCompletion {
	c.Rating = &rating
	return c
}

// WithNotes sets notes on the completion.
func (c *HabitCompletion) WithNotes(notes string) *HabitCompletion {
	c.Notes = &notes
	return c
}
