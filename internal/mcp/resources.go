// ABOUTME: MCP resource implementations for wellness data.
// ABOUTME: Provides wellness://summary, wellness://today, and wellness://habits resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/harperreed/aria/internal/checkin"
	"github.com/harperreed/aria/internal/habits"
	"github.com/harperreed/aria/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerResources() {
	// wellness://summary - Dashboard across all collections
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "wellness://summary",
		Name:        "Wellness Summary Dashboard",
		Description: "Latest mood, habit stats, check-in streak, and unread insights",
		MIMEType:    "application/json",
	}, s.handleSummaryResource)

	// wellness://today - Today's mood entries, due habits, and check-in
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "wellness://today",
		Name:        "Today's Wellness Data",
		Description: "Mood entries, habits due, and check-in progress for today",
		MIMEType:    "application/json",
	}, s.handleTodayResource)

	// wellness://habits - Active habits with stats
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "wellness://habits",
		Name:        "Active Habits",
		Description: "All active habits with streaks and 7-day completion rates",
		MIMEType:    "application/json",
	}, s.handleHabitsResource)
}

// Resource handlers

func (s *Server) handleSummaryResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	now := time.Now()

	entries, err := s.repo.ListEntries(1)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	var latestMood interface{}
	if len(entries) > 0 {
		latestMood = map[string]interface{}{
			"mood":      entries[0].Mood,
			"timestamp": entries[0].Timestamp.Format(time.RFC3339),
		}
	}

	active, err := s.repo.ListHabits(false)
	if err != nil {
		return nil, fmt.Errorf("failed to list habits: %w", err)
	}
	completions, err := s.repo.ListCompletions(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list completions: %w", err)
	}
	var rateSum float64
	habitStats := make([]map[string]interface{}, 0, len(active))
	for _, h := range active {
		st := habits.ComputeStats(h, completions, 7, now)
		rateSum += st.CompletionRate
		habitStats = append(habitStats, map[string]interface{}{
			"name":            h.Name,
			"streak":          st.Streak,
			"completion_rate": st.CompletionRate,
		})
	}
	var overallRate float64
	if len(active) > 0 {
		overallRate = rateSum / float64(len(active))
	}

	checkIns, err := s.repo.ListCheckIns()
	if err != nil {
		return nil, fmt.Errorf("failed to list check-ins: %w", err)
	}
	unread, err := s.repo.ListInsights(true)
	if err != nil {
		return nil, fmt.Errorf("failed to list insights: %w", err)
	}

	result := map[string]interface{}{
		"generated_at":    now.Format(time.RFC3339),
		"latest_mood":     latestMood,
		"habits":          habitStats,
		"overall_rate":    overallRate,
		"check_in_streak": checkin.Streak(checkIns, now),
		"unread_insights": len(unread),
	}

	return marshalResource("wellness://summary", result)
}

func (s *Server) handleTodayResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	now := time.Now()
	today := models.DayKey(now)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	entries, err := s.repo.ListEntries(0)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	var todayEntries []*models.WellnessEntry
	for _, e := range entries {
		if !e.Timestamp.Before(dayStart) {
			todayEntries = append(todayEntries, e)
		}
	}

	active, err := s.repo.ListHabits(false)
	if err != nil {
		return nil, fmt.Errorf("failed to list habits: %w", err)
	}
	completions, err := s.repo.ListCompletions(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list completions: %w", err)
	}
	var due []string
	for _, h := range active {
		if habits.IsDueToday(h, completions, now) {
			due = append(due, h.Name)
		}
	}

	checkIn, err := s.repo.GetCheckIn(today)
	if err != nil {
		return nil, fmt.Errorf("failed to load check-in: %w", err)
	}
	var checkInScore float64
	if checkIn != nil {
		checkInScore = checkIn.CompletionScore()
	}

	result := map[string]interface{}{
		"date":           today,
		"mood_entries":   todayEntries,
		"habits_due":     due,
		"check_in":       checkIn,
		"check_in_score": checkInScore,
	}

	return marshalResource("wellness://today", result)
}

func (s *Server) handleHabitsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	now := time.Now()

	active, err := s.repo.ListHabits(false)
	if err != nil {
		return nil, fmt.Errorf("failed to list habits: %w", err)
	}
	completions, err := s.repo.ListCompletions(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list completions: %w", err)
	}

	out := make([]map[string]interface{}, 0, len(active))
	for _, h := range active {
		st := habits.ComputeStats(h, completions, 7, now)
		out = append(out, map[string]interface{}{
			"id":                h.ID.String()[:8],
			"name":              h.Name,
			"type":              h.Type,
			"frequency":         h.Frequency,
			"due_today":         habits.IsDueToday(h, completions, now),
			"streak":            st.Streak,
			"completion_rate":   st.CompletionRate,
			"total_completions": st.TotalCompletions,
		})
	}

	result := map[string]interface{}{
		"generated_at": now.Format(time.RFC3339),
		"habits":       out,
		"count":        len(out),
	}

	return marshalResource("wellness://habits", result)
}

func marshalResource(uri string, result interface{}) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
