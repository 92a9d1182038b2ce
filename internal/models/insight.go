// ABOUTME: Insight model for generated coaching messages.
// ABOUTME: Insights dedup on title within 24h and prune to the newest 50.
package models

import (
	"time"

	"github.com/google/uuid"
)

// InsightKind represents the category of a coaching insight.
type InsightKind string

const (
	InsightCelebration   InsightKind = "celebration"
	InsightEncouragement InsightKind = "encouragement"
	InsightSuggestion    InsightKind = "suggestion"
	InsightConcern       InsightKind = "concern"
	InsightPattern       InsightKind = "pattern"
	InsightAchievement   InsightKind = "achievement"
)

// AllInsightKinds returns all valid insight kinds.
var AllInsightKinds = []InsightKind{
	InsightCelebration, InsightEncouragement, InsightSuggestion,
	InsightConcern, InsightPattern, InsightAchievement,
}

// InsightKindDisplays is the canonical insight presentation table.
var InsightKindDisplays = map[InsightKind]Display{
	InsightCelebration:   {Label: "Celebration", IconKey: "party", ColorKey: "yellow"},
	InsightEncouragement: {Label: "Encouragement", IconKey: "flag", ColorKey: "blue"},
	InsightSuggestion:    {Label: "Suggestion", IconKey: "bulb", ColorKey: "cyan"},
	InsightConcern:       {Label: "Concern", IconKey: "alert", ColorKey: "red"},
	InsightPattern:       {Label: "Pattern", IconKey: "chart", ColorKey: "purple"},
	InsightAchievement:   {Label: "Achievement", IconKey: "trophy", ColorKey: "green"},
}

// Display returns the presentation entry for the kind, with a neutral
// fallback for unknown values.
func (k InsightKind) Display() Display {
	if d, ok := InsightKindDisplays[k]; ok {
		return d
	}
	return Display{Label: string(k), IconKey: "dot", ColorKey: "white"}
}

// MaxStoredInsights bounds the insight store to the most recent entries.
const MaxStoredInsights = 50

// Insight is a generated coaching message surfaced to the user.
// Only IsRead is mutated after creation.
type Insight struct {
	ID        uuid.UUID         `json:"id"`
	Timestamp time.Time         `json:"timestamp"`
	Title     string            `json:"title"`
	Message   string            `json:"message"`
	Kind      InsightKind       `json:"kind"`
	HabitID   *uuid.UUID        `json:"habit_id,omitempty"`
	IsRead    bool              `json:"is_read"`
	Priority  float64           `json:"priority"` // 0.0-1.0
	Data      map[string]string `json:"data,omitempty"`
}

// NewInsight creates an insight with generated UUID and current timestamp.
func NewInsight(kind InsightKind, title, message string) *Insight {
	return &Insight{
		ID:        uuid.New(),
		Timestamp: time.Now(),
		Title:     title,
		Message:   message,
		Kind:      kind,
		Priority:  0.5,
	}
}

// WithHabit associates the insight with a habit.
func (i *Insight) WithHabit(habitID uuid.UUID) *Insight {
	i.HabitID = &habitID
	return i
}

// WithPriority sets the 0-1 priority.
func (i *Insight) WithPriority(p float64) *Insight {
	i.Priority = p
	return i
}

// WithData attaches a data key/value pair.
func (i *Insight) WithData(key, value string) *Insight {
	if i.Data == nil {
		i.Data = make(map[string]string)
	}
	i.Data[key] = value
	return i
}
