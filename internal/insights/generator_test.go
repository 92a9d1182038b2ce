// ABOUTME: Tests for insight generation, deduplication, and throttling.
// ABOUTME: Exercises every trigger rule with fixed stats and check-ins.
package insights

import (
	"fmt"
	"testing"
	"time"

	"github.com/harperreed/aria/internal/habits"
	"github.com/harperreed/aria/internal/models"
)

func report(name string, streak int, rate float64) HabitReport {
	h := models.NewWellnessHabit(name, models.HabitMindfulness, models.FrequencyDaily)
	return HabitReport{Habit: h, Stats: habits.Stats{Streak: streak, CompletionRate: rate}}
}

func titles(insights []*models.Insight) []string {
	var out []string
	for _, i := range insights {
		out = append(out, i.Title)
	}
	return out
}

func hasTitle(insights []*models.Insight, title string) bool {
	for _, i := range insights {
		if i.Title == title {
			return true
		}
	}
	return false
}

func TestStreakMilestoneExactEquality(t *testing.T) {
	tests := []struct {
		streak int
		want   bool
	}{
		{2, false},
		{3, true},
		{4, false}, // jumped past without being observed: does not fire
		{7, true},
		{21, true},
		{22, false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("streak_%d", tt.streak), func(t *testing.T) {
			ctx := Context{
				Now:         time.Now(),
				Reports:     []HabitReport{report("Morning Mindfulness", tt.streak, 0.5)},
				OverallRate: 0.5,
			}
			out, ok := Generate(ctx)
			if !ok {
				t.Fatal("generation should not be throttled")
			}
			got := hasTitle(out, fmt.Sprintf("%d-Day Streak!", tt.streak))
			if got != tt.want {
				t.Errorf("streak %d milestone fired = %v, want %v (titles: %v)",
					tt.streak, got, tt.want, titles(out))
			}
		})
	}
}

func TestOverallRateTriggers(t *testing.T) {
	now := time.Now()

	ctx := Context{Now: now, Reports: []HabitReport{report("a", 0, 0.95)}, OverallRate: 0.95}
	out, _ := Generate(ctx)
	if !hasTitle(out, "Outstanding Week!") {
		t.Errorf("rate 0.95 should fire a celebration, got %v", titles(out))
	}

	ctx = Context{Now: now, Reports: []HabitReport{report("a", 0, 0.2)}, OverallRate: 0.2}
	out, _ = Generate(ctx)
	if !hasTitle(out, "A Fresh Start") {
		t.Errorf("rate 0.2 should fire an encouragement, got %v", titles(out))
	}

	ctx = Context{Now: now, Reports: []HabitReport{report("a", 0, 0.5)}, OverallRate: 0.5}
	out, _ = Generate(ctx)
	if hasTitle(out, "Outstanding Week!") || hasTitle(out, "A Fresh Start") {
		t.Errorf("rate 0.5 should fire neither rate trigger, got %v", titles(out))
	}
}

func TestCheckInTriggers(t *testing.T) {
	now := time.Now()

	c := models.NewDailyCheckIn(models.DayKey(now))
	c.Responses[models.CategoryStress] = "8"
	c.Responses[models.CategoryEnergy] = "2"
	c.Responses[models.CategoryGratitude] = "morning coffee"

	out := FromCheckIn(c, nil, now)
	for _, want := range []string{"High Stress Today", "Low Energy Day", "Gratitude Noted"} {
		if !hasTitle(out, want) {
			t.Errorf("missing %q in %v", want, titles(out))
		}
	}

	// Below thresholds: nothing fires.
	quiet := models.NewDailyCheckIn(models.DayKey(now))
	quiet.Responses[models.CategoryStress] = "4"
	quiet.Responses[models.CategoryEnergy] = "6"
	if out := FromCheckIn(quiet, nil, now); len(out) != 0 {
		t.Errorf("expected no insights, got %v", titles(out))
	}
}

func TestDedupWithin24Hours(t *testing.T) {
	now := time.Now()
	c := models.NewDailyCheckIn(models.DayKey(now))
	c.Responses[models.CategoryStress] = "9"

	first := FromCheckIn(c, nil, now)
	if len(first) != 1 {
		t.Fatalf("expected 1 insight, got %v", titles(first))
	}

	// Identical trigger conditions against the existing store: suppressed.
	second := FromCheckIn(c, first, now.Add(time.Hour))
	if len(second) != 0 {
		t.Errorf("expected dedup to suppress, got %v", titles(second))
	}

	// Past the 24h window the same title may fire again.
	third := FromCheckIn(c, first, now.Add(25*time.Hour))
	if len(third) != 1 {
		t.Errorf("expected the trigger to fire after 24h, got %v", titles(third))
	}
}

func TestThreeDayStreakFiresExactlyOnce(t *testing.T) {
	now := time.Now()
	ctx := Context{
		Now:         now,
		Reports:     []HabitReport{report("Morning Mindfulness", 3, 3.0 / 7.0)},
		OverallRate: 3.0 / 7.0,
	}

	first, ok := Generate(ctx)
	if !ok || !hasTitle(first, "3-Day Streak!") {
		t.Fatalf("expected 3-Day Streak! insight, got %v", titles(first))
	}

	// Same conditions later the same day, existing store carried in.
	ctx.Existing = first
	ctx.LastBatchRun = now.Add(-7 * time.Hour) // not throttled
	ctx.Now = now.Add(time.Hour)
	second, ok := Generate(ctx)
	if !ok {
		t.Fatal("generation should not be throttled")
	}
	if hasTitle(second, "3-Day Streak!") {
		t.Error("3-Day Streak! fired twice within 24h")
	}
}

func TestHolisticAchievement(t *testing.T) {
	now := time.Now()
	c := models.NewDailyCheckIn(models.DayKey(now))
	for _, cat := range models.AllCheckInCategories[:6] { // 6 of 8 = 0.75
		c.Responses[cat] = "answered"
	}

	ctx := Context{
		Now:         now,
		Reports:     []HabitReport{report("a", 0, 0.85)},
		OverallRate: 0.85,
		CheckIn:     c,
	}
	out, _ := Generate(ctx)
	if !hasTitle(out, "Fully Engaged") {
		t.Errorf("expected holistic achievement, got %v", titles(out))
	}

	ctx.OverallRate = 0.5
	ctx.Existing = nil
	out, _ = Generate(ctx)
	if hasTitle(out, "Fully Engaged") {
		t.Error("holistic achievement should require habit rate above 0.8")
	}
}

func TestCheckInStreakMilestones(t *testing.T) {
	now := time.Now()
	for _, milestone := range []int{7, 21, 30} {
		ctx := Context{Now: now, CheckInStreak: milestone}
		out, _ := Generate(ctx)
		want := fmt.Sprintf("%d Days of Check-Ins", milestone)
		if !hasTitle(out, want) {
			t.Errorf("expected %q, got %v", want, titles(out))
		}
	}

	ctx := Context{Now: now, CheckInStreak: 8}
	if out, _ := Generate(ctx); len(out) != 0 {
		t.Errorf("streak 8 is not a milestone, got %v", titles(out))
	}
}

func TestBatchThrottle(t *testing.T) {
	now := time.Now()
	ctx := Context{
		Now:          now,
		CheckInStreak: 7,
		LastBatchRun: now.Add(-2 * time.Hour),
	}
	if out, ok := Generate(ctx); ok || out != nil {
		t.Error("generation within 6h of the last run should be throttled")
	}

	ctx.LastBatchRun = now.Add(-7 * time.Hour)
	if _, ok := Generate(ctx); !ok {
		t.Error("generation past the 6h window should run")
	}

	ctx.LastBatchRun = time.Time{} // never ran
	if _, ok := Generate(ctx); !ok {
		t.Error("generation with a zero cursor should run")
	}
}

func TestPrune(t *testing.T) {
	now := time.Now()
	var all []*models.Insight
	for i := 0; i < 60; i++ {
		ins := models.NewInsight(models.InsightPattern, fmt.Sprintf("insight %d", i), "m")
		ins.Timestamp = now.Add(time.Duration(i) * time.Minute)
		all = append(all, ins)
	}

	pruned := Prune(all)
	if len(pruned) != models.MaxStoredInsights {
		t.Fatalf("pruned length = %d, want %d", len(pruned), models.MaxStoredInsights)
	}
	// Newest first; the oldest ten are gone.
	if pruned[0].Title != "insight 59" {
		t.Errorf("newest title = %s, want insight 59", pruned[0].Title)
	}
	if hasTitle(pruned, "insight 5") {
		t.Error("oldest insights should have been pruned")
	}
}

func TestGeneratedTimestampsUseRunClock(t *testing.T) {
	// The rules can run under an explicit clock (e.g. replaying a cursor);
	// stored timestamps must match it, or the 24h dedup window drifts.
	runClock := time.Now().Add(-48 * time.Hour)

	ctx := Context{
		Now:         runClock,
		Reports:     []HabitReport{report("Morning Mindfulness", 3, 0.5)},
		OverallRate: 0.5,
	}
	out, ok := Generate(ctx)
	if !ok {
		t.Fatal("generation should not be throttled")
	}
	if len(out) == 0 {
		t.Fatal("expected a streak insight")
	}
	for _, i := range out {
		if !i.Timestamp.Equal(runClock) {
			t.Errorf("insight %q stamped %v, want run clock %v", i.Title, i.Timestamp, runClock)
		}
	}

	checkIn := models.NewDailyCheckIn("2025-06-02")
	checkIn.Responses[models.CategoryGratitude] = "sunshine"
	fresh := FromCheckIn(checkIn, nil, runClock)
	if len(fresh) == 0 {
		t.Fatal("expected a gratitude insight")
	}
	if !fresh[0].Timestamp.Equal(runClock) {
		t.Errorf("check-in insight stamped %v, want run clock %v", fresh[0].Timestamp, runClock)
	}
}
