// ABOUTME: MCP tool implementations for wellness data.
// ABOUTME: Provides mood, habit, check-in, and insight operations.
package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/aria/internal/checkin"
	"github.com/harperreed/aria/internal/habits"
	"github.com/harperreed/aria/internal/insights"
	"github.com/harperreed/aria/internal/models"
	"github.com/harperreed/aria/internal/mood"
	"github.com/harperreed/aria/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	// record_mood
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "record_mood",
		Description: "Record a mood entry (happy, calm, stressed, anxious, tired, energetic, sad, excited)",
	}, s.handleRecordMood)

	// analyze_mood
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "analyze_mood",
		Description: "Analyze free text for mood, energy, and stress, and record the result",
	}, s.handleAnalyzeMood)

	// add_habit
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_habit",
		Description: "Create a new wellness habit",
	}, s.handleAddHabit)

	// log_habit
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_habit",
		Description: "Log a completion for a habit by ID or ID prefix",
	}, s.handleLogHabit)

	// list_habits
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_habits",
		Description: "List habits with due-today status",
	}, s.handleListHabits)

	// habit_stats
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "habit_stats",
		Description: "Get streak and completion statistics for a habit",
	}, s.handleHabitStats)

	// check_in
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "check_in",
		Description: "Record a daily check-in response for one category",
	}, s.handleCheckIn)

	// get_check_in
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_check_in",
		Description: "Get the check-in for a date (defaults to today)",
	}, s.handleGetCheckIn)

	// generate_insights
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "generate_insights",
		Description: "Run the insight generation rules (throttled to once per 6 hours)",
	}, s.handleGenerateInsights)

	// list_insights
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_insights",
		Description: "List stored insights, optionally unread only",
	}, s.handleListInsights)

	// mark_insight_read
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "mark_insight_read",
		Description: "Mark an insight as read by ID or ID prefix",
	}, s.handleMarkInsightRead)
}

// Tool input/output types

type recordMoodInput struct {
	Mood     string `json:"mood" jsonschema:"Mood label (happy, calm, stressed, anxious, tired, energetic, sad, excited)"`
	Energy   int    `json:"energy,omitempty" jsonschema:"Energy level 1-10"`
	Stress   int    `json:"stress,omitempty" jsonschema:"Stress level 1-10"`
	Notes    string `json:"notes,omitempty" jsonschema:"Optional notes"`
	Activity string `json:"activity,omitempty" jsonschema:"What the user was doing"`
}

type moodOutput struct {
	ID      string `json:"id"`
	Mood    string `json:"mood"`
	Message string `json:"message"`
}

type analyzeMoodInput struct {
	Text string `json:"text" jsonschema:"Free text describing how the user feels"`
}

type addHabitInput struct {
	Name        string `json:"name" jsonschema:"Habit name"`
	Type        string `json:"type" jsonschema:"Habit type (meditation, exercise, hydration, sleep, nutrition, gratitude, journaling, breathing, stretching, walking, reading, social, mindfulness, digital_detox, creative)"`
	Frequency   string `json:"frequency,omitempty" jsonschema:"daily, weekdays, weekends, weekly, biweekly, or custom (default daily)"`
	Description string `json:"description,omitempty" jsonschema:"Optional description"`
	Difficulty  string `json:"difficulty,omitempty" jsonschema:"easy, moderate, or challenging"`
}

type habitOutput struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

type logHabitInput struct {
	HabitID string `json:"habit_id" jsonschema:"Habit ID or prefix"`
	Rating  int    `json:"rating,omitempty" jsonschema:"Optional rating 1-5"`
	Notes   string `json:"notes,omitempty" jsonschema:"Optional notes"`
}

type listHabitsInput struct {
	IncludeArchived bool `json:"include_archived,omitempty" jsonschema:"Include archived habits"`
}

type habitStatsInput struct {
	HabitID string `json:"habit_id" jsonschema:"Habit ID or prefix"`
}

type checkInInput struct {
	Category string `json:"category" jsonschema:"Check-in category (mood, energy, stress, sleep, gratitude, challenges, goals, reflection)"`
	Value    string `json:"value" jsonschema:"Response text"`
	Date     string `json:"date,omitempty" jsonschema:"Day (YYYY-MM-DD), defaults to today"`
}

type getCheckInInput struct {
	Date string `json:"date,omitempty" jsonschema:"Day (YYYY-MM-DD), defaults to today"`
}

type listInsightsInput struct {
	UnreadOnly bool `json:"unread_only,omitempty" jsonschema:"Only return unread insights"`
}

type markInsightReadInput struct {
	ID string `json:"id" jsonschema:"Insight ID or prefix"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

// Tool handlers

func (s *Server) handleRecordMood(ctx context.Context, req *mcp.CallToolRequest, input recordMoodInput) (*mcp.CallToolResult, moodOutput, error) {
	if !models.IsValidMood(input.Mood) {
		return nil, moodOutput{}, fmt.Errorf("unknown mood: %s (valid: %s)", input.Mood, joinMoods())
	}

	e := models.NewWellnessEntry(models.Mood(input.Mood), models.SourceManualSelection)
	if input.Energy > 0 || input.Stress > 0 {
		e.WithLevels(input.Energy, input.Stress)
	}
	if input.Notes != "" {
		e.WithNotes(input.Notes)
	}
	if input.Activity != "" {
		e.WithActivity(input.Activity)
	}

	if err := s.repo.CreateEntry(e); err != nil {
		return nil, moodOutput{}, fmt.Errorf("failed to record mood: %w", err)
	}

	return nil, moodOutput{
		ID:      e.ID.String()[:8],
		Mood:    input.Mood,
		Message: fmt.Sprintf("Recorded %s mood (ID: %s)", input.Mood, e.ID.String()[:8]),
	}, nil
}

func (s *Server) handleAnalyzeMood(ctx context.Context, req *mcp.CallToolRequest, input analyzeMoodInput) (*mcp.CallToolResult, any, error) {
	result, ok := mood.Classify(input.Text, nil)
	if !ok {
		return nil, map[string]interface{}{"message": "Not enough signal in the text to detect a mood."}, nil
	}

	e := models.NewWellnessEntry(result.DetectedMood, models.SourceTextAnalysis).
		WithLevels(result.EnergyLevel, result.StressLevel).
		WithNotes(input.Text).
		WithMetadata("confidence", fmt.Sprintf("%.2f", result.Confidence))
	if len(result.Indicators) > 0 {
		e.WithMetadata("indicators", strings.Join(result.Indicators, ", "))
	}
	if err := s.repo.CreateEntry(e); err != nil {
		return nil, nil, fmt.Errorf("failed to record analysis: %w", err)
	}

	return nil, result, nil
}

func (s *Server) handleAddHabit(ctx context.Context, req *mcp.CallToolRequest, input addHabitInput) (*mcp.CallToolResult, habitOutput, error) {
	if !models.IsValidHabitType(input.Type) {
		return nil, habitOutput{}, fmt.Errorf("unknown habit type: %s", input.Type)
	}
	freq := models.FrequencyDaily
	if input.Frequency != "" {
		if !models.IsValidFrequency(input.Frequency) {
			return nil, habitOutput{}, fmt.Errorf("unknown frequency: %s", input.Frequency)
		}
		freq = models.Frequency(input.Frequency)
	}

	h := models.NewWellnessHabit(input.Name, models.HabitType(input.Type), freq)
	if input.Description != "" {
		h.WithDescription(input.Description)
	}
	if input.Difficulty != "" {
		if !models.IsValidDifficulty(input.Difficulty) {
			return nil, habitOutput{}, fmt.Errorf("unknown difficulty: %s", input.Difficulty)
		}
		h.WithDifficulty(models.Difficulty(input.Difficulty))
	}

	if err := s.repo.CreateHabit(h); err != nil {
		return nil, habitOutput{}, fmt.Errorf("failed to create habit: %w", err)
	}

	return nil, habitOutput{
		ID:      h.ID.String()[:8],
		Name:    h.Name,
		Message: fmt.Sprintf("Added habit %q (%s, %s) (ID: %s)", h.Name, h.Type, h.Frequency, h.ID.String()[:8]),
	}, nil
}

func (s *Server) handleLogHabit(ctx context.Context, req *mcp.CallToolRequest, input logHabitInput) (*mcp.CallToolResult, simpleOutput, error) {
	h, err := s.repo.GetHabit(input.HabitID)
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("habit not found: %s", input.HabitID)
	}

	c := models.NewHabitCompletion(h.ID)
	if input.Rating > 0 {
		c.WithRating(input.Rating)
	}
	if input.Notes != "" {
		c.WithNotes(input.Notes)
	}
	if err := s.repo.CreateCompletion(c); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to log completion: %w", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Logged %q for today", h.Name),
	}, nil
}

func (s *Server) handleListHabits(ctx context.Context, req *mcp.CallToolRequest, input listHabitsInput) (*mcp.CallToolResult, any, error) {
	all, err := s.repo.ListHabits(input.IncludeArchived)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list habits: %w", err)
	}
	if len(all) == 0 {
		return nil, map[string]interface{}{"message": "No habits found."}, nil
	}

	completions, err := s.repo.ListCompletions(nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list completions: %w", err)
	}

	now := time.Now()
	out := make([]map[string]interface{}, 0, len(all))
	for _, h := range all {
		out = append(out, map[string]interface{}{
			"id":        h.ID.String()[:8],
			"name":      h.Name,
			"type":      h.Type,
			"frequency": h.Frequency,
			"active":    h.IsActive,
			"due_today": habits.IsDueToday(h, completions, now),
		})
	}
	return nil, out, nil
}

func (s *Server) handleHabitStats(ctx context.Context, req *mcp.CallToolRequest, input habitStatsInput) (*mcp.CallToolResult, any, error) {
	h, err := s.repo.GetHabit(input.HabitID)
	if err != nil {
		return nil, nil, fmt.Errorf("habit not found: %s", input.HabitID)
	}
	completions, err := s.repo.ListCompletions(&h.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list completions: %w", err)
	}

	stats := habits.ComputeStats(h, completions, 7, time.Now())
	return nil, map[string]interface{}{
		"habit":             h.Name,
		"streak":            stats.Streak,
		"completion_rate":   stats.CompletionRate,
		"total_completions": stats.TotalCompletions,
		"average_rating":    stats.AverageRating,
		"last_completed_at": stats.LastCompletedAt,
	}, nil
}

func (s *Server) handleCheckIn(ctx context.Context, req *mcp.CallToolRequest, input checkInInput) (*mcp.CallToolResult, any, error) {
	if !models.IsValidCheckInCategory(input.Category) {
		return nil, nil, fmt.Errorf("unknown category: %s (valid: %s)", input.Category, joinCategories())
	}
	day := input.Date
	if day == "" {
		day = models.DayKey(time.Now())
	} else if _, err := time.Parse(models.DayKeyFormat, day); err != nil {
		return nil, nil, fmt.Errorf("invalid date %q, want YYYY-MM-DD", input.Date)
	}

	all, err := s.repo.ListCheckIns()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load check-ins: %w", err)
	}
	updated, _ := checkin.RecordResponse(all, day, models.CheckInCategory(input.Category), input.Value)
	if err := s.repo.UpsertCheckIn(updated); err != nil {
		return nil, nil, fmt.Errorf("failed to save check-in: %w", err)
	}

	// Note the date in the conversation context so the companion can nudge
	// about missed days. Lexicographic compare works for YYYY-MM-DD keys.
	if convCtx, err := s.repo.LoadContext(); err == nil && updated.Date > convCtx.LastCheckInDate {
		convCtx.LastCheckInDate = updated.Date
		_ = s.repo.SaveContext(convCtx)
	}

	// Immediate triggers fire outside the batch throttle.
	existing, err := s.repo.ListInsights(false)
	if err == nil {
		if fresh := insights.FromCheckIn(updated, existing, time.Now()); len(fresh) > 0 {
			_ = s.repo.AddInsights(fresh)
		}
	}

	return nil, map[string]interface{}{
		"date":             updated.Date,
		"completion_score": updated.CompletionScore(),
		"message":          fmt.Sprintf("Recorded %s for %s", input.Category, updated.Date),
	}, nil
}

func (s *Server) handleGetCheckIn(ctx context.Context, req *mcp.CallToolRequest, input getCheckInInput) (*mcp.CallToolResult, any, error) {
	day := input.Date
	if day == "" {
		day = models.DayKey(time.Now())
	}

	c, err := s.repo.GetCheckIn(day)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load check-in: %w", err)
	}
	if c == nil {
		return nil, map[string]interface{}{"message": fmt.Sprintf("No check-in for %s.", day)}, nil
	}
	return nil, c, nil
}

func (s *Server) handleGenerateInsights(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, any, error) {
	fresh, ran, err := runInsightGeneration(s.repo, time.Now())
	if err != nil {
		return nil, nil, err
	}
	if !ran {
		return nil, map[string]interface{}{"message": "Insight generation ran recently; try again later."}, nil
	}
	return nil, map[string]interface{}{
		"generated": len(fresh),
		"insights":  fresh,
	}, nil
}

func (s *Server) handleListInsights(ctx context.Context, req *mcp.CallToolRequest, input listInsightsInput) (*mcp.CallToolResult, any, error) {
	all, err := s.repo.ListInsights(input.UnreadOnly)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list insights: %w", err)
	}
	if len(all) == 0 {
		return nil, map[string]interface{}{"message": "No insights found."}, nil
	}
	return nil, all, nil
}

func (s *Server) handleMarkInsightRead(ctx context.Context, req *mcp.CallToolRequest, input markInsightReadInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.repo.MarkInsightRead(input.ID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to mark insight read: %w", err)
	}
	return nil, simpleOutput{
		Message: fmt.Sprintf("Marked insight read: %s", input.ID),
	}, nil
}

// runInsightGeneration assembles the batch generation context from storage,
// runs the rules, and persists the results and the cursor when the run fires.
func runInsightGeneration(repo storage.Repository, now time.Time) ([]*models.Insight, bool, error) {
	lastRun, err := repo.LastInsightRun()
	if err != nil {
		return nil, false, fmt.Errorf("load insight cursor: %w", err)
	}

	active, err := repo.ListHabits(false)
	if err != nil {
		return nil, false, fmt.Errorf("list habits: %w", err)
	}
	completions, err := repo.ListCompletions(nil)
	if err != nil {
		return nil, false, fmt.Errorf("list completions: %w", err)
	}

	var reports []insights.HabitReport
	var rateSum float64
	for _, h := range active {
		st := habits.ComputeStats(h, completions, 7, now)
		reports = append(reports, insights.HabitReport{Habit: h, Stats: st})
		rateSum += st.CompletionRate
	}
	var overall float64
	if len(reports) > 0 {
		overall = rateSum / float64(len(reports))
	}

	checkIns, err := repo.ListCheckIns()
	if err != nil {
		return nil, false, fmt.Errorf("list check-ins: %w", err)
	}
	existing, err := repo.ListInsights(false)
	if err != nil {
		return nil, false, fmt.Errorf("list insights: %w", err)
	}

	fresh, ran := insights.Generate(insights.Context{
		Now:           now,
		Existing:      existing,
		Reports:       reports,
		OverallRate:   overall,
		CheckIn:       checkin.ForDay(checkIns, models.DayKey(now)),
		CheckInStreak: checkin.Streak(checkIns, now),
		LastBatchRun:  lastRun,
	})
	if !ran {
		return nil, false, nil
	}

	if len(fresh) > 0 {
		if err := repo.AddInsights(fresh); err != nil {
			return nil, false, fmt.Errorf("save insights: %w", err)
		}
	}
	if err := repo.SetLastInsightRun(now); err != nil {
		return nil, false, fmt.Errorf("save insight cursor: %w", err)
	}
	return fresh, true, nil
}

func joinMoods() string {
	out := make([]string, len(models.AllMoods))
	for i, m := range models.AllMoods {
		out[i] = string(m)
	}
	return strings.Join(out, ", ")
}

func joinCategories() string {
	out := make([]string, len(models.AllCheckInCategories))
	for i, c := range models.AllCheckInCategories {
		out[i] = string(c)
	}
	return strings.Join(out, ", ")
}
