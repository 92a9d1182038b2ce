// ABOUTME: Tests for the JSON file store.
// ABOUTME: Covers round-trips, corruption recovery, obfuscation, and referential checks.
package storage

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/aria/internal/models"
)

func newTestStore(t *testing.T) *JSONStore {
	t.Helper()
	s, err := NewJSONStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewJSONStore: %v", err)
	}
	return s
}

func TestMissingFilesReturnEmptyCollections(t *testing.T) {
	s := newTestStore(t)

	habits, err := s.ListHabits(true)
	if err != nil {
		t.Fatalf("ListHabits: %v", err)
	}
	if len(habits) != 0 {
		t.Errorf("expected empty habit list, got %d", len(habits))
	}

	entries, err := s.ListEntries(0)
	if err != nil {
		t.Fatalf("ListEntries: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty entries, got %d", len(entries))
	}

	lastRun, err := s.LastInsightRun()
	if err != nil {
		t.Fatalf("LastInsightRun: %v", err)
	}
	if !lastRun.IsZero() {
		t.Errorf("expected zero cursor, got %v", lastRun)
	}
}

func TestHabitRoundTrip(t *testing.T) {
	s := newTestStore(t)

	h := models.NewWellnessHabit("Morning Mindfulness", models.HabitMindfulness, models.FrequencyDaily).
		WithTargetDuration(5)
	if err := s.CreateHabit(h); err != nil {
		t.Fatalf("CreateHabit: %v", err)
	}

	got, err := s.GetHabit(h.ID.String()[:8])
	if err != nil {
		t.Fatalf("GetHabit by prefix: %v", err)
	}
	if got.Name != "Morning Mindfulness" {
		t.Errorf("Name = %s, want Morning Mindfulness", got.Name)
	}
	if got.TargetDurationMinutes != 5 {
		t.Errorf("TargetDurationMinutes = %d, want 5", got.TargetDurationMinutes)
	}

	got.Archive()
	if err := s.UpdateHabit(got); err != nil {
		t.Fatalf("UpdateHabit: %v", err)
	}

	active, err := s.ListHabits(false)
	if err != nil {
		t.Fatalf("ListHabits: %v", err)
	}
	if len(active) != 0 {
		t.Error("archived habit should be excluded from the active list")
	}
	all, err := s.ListHabits(true)
	if err != nil {
		t.Fatalf("ListHabits: %v", err)
	}
	if len(all) != 1 {
		t.Error("archived habit should remain in the store (soft delete)")
	}
}

func TestCompletionRequiresHabit(t *testing.T) {
	s := newTestStore(t)

	orphan := models.NewHabitCompletion(uuid.New())
	if err := s.CreateCompletion(orphan); err == nil {
		t.Error("expected an error for a completion referencing no habit")
	}

	h := models.NewWellnessHabit("Hydrate", models.HabitHydration, models.FrequencyDaily)
	if err := s.CreateHabit(h); err != nil {
		t.Fatalf("CreateHabit: %v", err)
	}
	if err := s.CreateCompletion(models.NewHabitCompletion(h.ID)); err != nil {
		t.Fatalf("CreateCompletion: %v", err)
	}

	completions, err := s.ListCompletions(&h.ID)
	if err != nil {
		t.Fatalf("ListCompletions: %v", err)
	}
	if len(completions) != 1 {
		t.Errorf("completion count = %d, want 1", len(completions))
	}
}

func TestEntriesAreObfuscated(t *testing.T) {
	dir := t.TempDir()
	s, err := NewJSONStore(dir)
	if err != nil {
		t.Fatalf("NewJSONStore: %v", err)
	}

	e := models.NewWellnessEntry(models.MoodHappy, models.SourceManualSelection).WithLevels(7, 3)
	if err := s.CreateEntry(e); err != nil {
		t.Fatalf("CreateEntry: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "entries.json"))
	if err != nil {
		t.Fatalf("read entries file: %v", err)
	}
	if strings.Contains(string(raw), "happy") {
		t.Error("entries file should not contain plaintext mood labels")
	}
	if _, err := base64.StdEncoding.DecodeString(strings.TrimSpace(string(raw))); err != nil {
		t.Errorf("entries file is not valid base64: %v", err)
	}

	entries, err := s.ListEntries(0)
	if err != nil {
		t.Fatalf("ListEntries: %v", err)
	}
	if len(entries) != 1 || entries[0].Mood != models.MoodHappy {
		t.Errorf("round-trip failed, got %+v", entries)
	}
}

func TestCorruptFileResetsToEmpty(t *testing.T) {
	dir := t.TempDir()
	s, err := NewJSONStore(dir)
	if err != nil {
		t.Fatalf("NewJSONStore: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "habits.json"), []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}

	habits, err := s.ListHabits(true)
	if err != nil {
		t.Fatalf("ListHabits on corrupt file: %v", err)
	}
	if len(habits) != 0 {
		t.Errorf("expected reset-to-empty, got %d habits", len(habits))
	}
}

func TestCheckInUpsertAndSanitize(t *testing.T) {
	s := newTestStore(t)

	c := models.NewDailyCheckIn("2025-06-02")
	c.Responses[models.CategoryMood] = "happy"
	c.Responses["vibes"] = "unknown category"
	if err := s.UpsertCheckIn(c); err != nil {
		t.Fatalf("UpsertCheckIn: %v", err)
	}

	got, err := s.GetCheckIn("2025-06-02")
	if err != nil {
		t.Fatalf("GetCheckIn: %v", err)
	}
	if got == nil {
		t.Fatal("expected a check-in for the day")
	}
	if _, ok := got.Responses["vibes"]; ok {
		t.Error("malformed category should be dropped on load")
	}
	if got.Responses[models.CategoryMood] != "happy" {
		t.Errorf("mood = %s, want happy", got.Responses[models.CategoryMood])
	}

	// Same day upsert replaces, never duplicates.
	got.Responses[models.CategoryMood] = "tired"
	if err := s.UpsertCheckIn(got); err != nil {
		t.Fatalf("UpsertCheckIn: %v", err)
	}
	all, err := s.ListCheckIns()
	if err != nil {
		t.Fatalf("ListCheckIns: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("check-in count = %d, want 1", len(all))
	}
	if all[0].Responses[models.CategoryMood] != "tired" {
		t.Error("same-day update should overwrite the prior value")
	}
}

func TestInsightPruneAndMarkRead(t *testing.T) {
	s := newTestStore(t)

	var batch []*models.Insight
	for i := 0; i < 60; i++ {
		ins := models.NewInsight(models.InsightPattern, "t", "m")
		ins.Timestamp = time.Now().Add(time.Duration(i) * time.Second)
		batch = append(batch, ins)
	}
	if err := s.AddInsights(batch); err != nil {
		t.Fatalf("AddInsights: %v", err)
	}

	all, err := s.ListInsights(false)
	if err != nil {
		t.Fatalf("ListInsights: %v", err)
	}
	if len(all) != models.MaxStoredInsights {
		t.Errorf("stored insights = %d, want %d", len(all), models.MaxStoredInsights)
	}

	if err := s.MarkInsightRead(all[0].ID.String()[:8]); err != nil {
		t.Fatalf("MarkInsightRead: %v", err)
	}
	unread, err := s.ListInsights(true)
	if err != nil {
		t.Fatalf("ListInsights: %v", err)
	}
	if len(unread) != models.MaxStoredInsights-1 {
		t.Errorf("unread = %d, want %d", len(unread), models.MaxStoredInsights-1)
	}
}

func TestContextRoundTrip(t *testing.T) {
	s := newTestStore(t)

	ctx, err := s.LoadContext()
	if err != nil {
		t.Fatalf("LoadContext: %v", err)
	}
	if ctx.ConversationDepth != 0 {
		t.Error("fresh context should have zero depth")
	}

	ctx.RecordMessage("sleep")
	ctx.UserPreferences["tone"] = "gentle"
	ctx.DetectedMood = models.MoodCalm
	if err := s.SaveContext(ctx); err != nil {
		t.Fatalf("SaveContext: %v", err)
	}

	loaded, err := s.LoadContext()
	if err != nil {
		t.Fatalf("LoadContext: %v", err)
	}
	if loaded.ConversationDepth != 1 {
		t.Errorf("depth = %d, want 1", loaded.ConversationDepth)
	}
	if loaded.UserPreferences["tone"] != "gentle" {
		t.Error("preferences should survive the round-trip")
	}

	// Reset preserves only preferences and the last check-in date.
	loaded.LastCheckInDate = "2025-06-02"
	fresh := loaded.Reset()
	if fresh.ConversationDepth != 0 || len(fresh.PreviousTopics) != 0 {
		t.Error("reset should clear depth and topics")
	}
	if fresh.UserPreferences["tone"] != "gentle" || fresh.LastCheckInDate != "2025-06-02" {
		t.Error("reset should preserve preferences and last check-in date")
	}
}

func TestInsightCursorRoundTrip(t *testing.T) {
	s := newTestStore(t)

	at := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)
	if err := s.SetLastInsightRun(at); err != nil {
		t.Fatalf("SetLastInsightRun: %v", err)
	}
	got, err := s.LastInsightRun()
	if err != nil {
		t.Fatalf("LastInsightRun: %v", err)
	}
	if !got.Equal(at) {
		t.Errorf("cursor = %v, want %v", got, at)
	}
}
