// ABOUTME: WellnessEntry model and mood analysis result types.
// ABOUTME: Entries are append-only observations; analysis results are derived, never stored directly.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Entry sources identify how a wellness observation was produced.
const (
	SourceTextAnalysis    = "text_analysis"
	SourceVoiceAnalysis   = "voice_analysis"
	SourceManualSelection = "manual_selection"
)

// WellnessEntry represents a single mood observation.
// Entries are immutable once created and ordered by timestamp.
type WellnessEntry struct {
	ID          uuid.UUID         `json:"id"`
	Timestamp   time.Time         `json:"timestamp"`
	Mood        Mood              `json:"mood,omitempty"`
	EnergyLevel *int              `json:"energy_level,omitempty"`
	StressLevel *int              `json:"stress_level,omitempty"`
	Notes       *string           `json:"notes,omitempty"`
	Activity    *string           `json:"activity,omitempty"`
	Source      string            `json:"source"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// NewWellnessEntry creates a new WellnessEntry with generated UUID and current timestamp.
func NewWellnessEntry(mood Mood, source string) *WellnessEntry {
	return &WellnessEntry{
		ID:        uuid.New(),
		Timestamp: time.Now(),
		Mood:      mood,
		Source:    source,
	}
}

// WithLevels sets the 1-10 energy and stress levels.
func (e *WellnessEntry) WithLevels(energy, stress int) *WellnessEntry {
	e.EnergyLevel = &energy
	e.StressLevel = &stress
	return e
}

// WithNotes sets notes on the entry.
func (e *WellnessEntry) WithNotes(notes string) *WellnessEntry {
	e.Notes = &notes
	return e
}

// WithActivity sets the associated activity.
func (e *WellnessEntry) WithActivity(activity string) *WellnessEntry {
	e.Activity = &activity
	return e
}

// WithMetadata attaches a metadata key/value pair.
func (e *WellnessEntry) WithMetadata(key, value string) *WellnessEntry {
	if e.Metadata == nil {
		e.Metadata = make(map[string]string)
	}
	e.Metadata[key] = value
	return e
}

// VoiceMetrics carries acoustic features extracted from a voice session.
type VoiceMetrics struct {
	SpeechRateWPM   float64 `json:"speech_rate_wpm"`
	PausesPerMinute float64 `json:"pauses_per_minute"`
	Energy          float64 `json:"energy"` // 0.0-1.0
}

// MoodAnalysisResult is the outcome of classifying text or voice input.
// Derived data; persisted only as metadata on a WellnessEntry.
type MoodAnalysisResult struct {
	DetectedMood Mood          `json:"detected_mood"`
	Confidence   float64       `json:"confidence"` // 0.0-1.0
	EnergyLevel  int           `json:"energy_level"`
	StressLevel  int           `json:"stress_level"`
	Indicators   []string      `json:"indicators,omitempty"`
	Voice        *VoiceMetrics `json:"voice,omitempty"`
	Timestamp    time.Time     `json:"timestamp"`
}
