// ABOUTME: ConversationContext model for the companion chat session.
// ABOUTME: One live context per session; reset preserves preferences and last check-in.
package models

import "time"

// maxPreviousTopics bounds the topic history carried into prompts.
const maxPreviousTopics = 10

// ConversationContext tracks the state of the current companion session.
type ConversationContext struct {
	SessionStart      time.Time         `json:"session_start"`
	PreviousTopics    []string          `json:"previous_topics,omitempty"`
	DetectedMood      Mood              `json:"detected_mood,omitempty"`
	ConversationDepth int               `json:"conversation_depth"`
	UserPreferences   map[string]string `json:"user_preferences,omitempty"`
	LastCheckInDate   string            `json:"last_check_in_date,omitempty"`
}

// NewConversationContext creates a fresh context for a new session.
func NewConversationContext() *ConversationContext {
	return &ConversationContext{
		SessionStart:    time.Now(),
		UserPreferences: make(map[string]string),
	}
}

// Reset starts a new session, preserving only user preferences and
// the last check-in date.
func (c *ConversationContext) Reset() *ConversationContext {
	fresh := NewConversationContext()
	fresh.UserPreferences = c.UserPreferences
	fresh.LastCheckInDate = c.LastCheckInDate
	return fresh
}

// RecordMessage increments the depth counter and notes the topic.
func (c *ConversationContext) RecordMessage(topic string) {
	c.ConversationDepth++
	if topic == "" {
		return
	}
	c.PreviousTopics = append(c.PreviousTopics, topic)
	if len(c.PreviousTopics) > maxPreviousTopics {
		c.PreviousTopics = c.PreviousTopics[len(c.PreviousTopics)-maxPreviousTopics:]
	}
}
