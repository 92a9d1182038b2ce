// ABOUTME: Tests for CLI helper functions and command execution.
// ABOUTME: Tests truncate, padRight, command flags, and end-to-end command runs.
package main

import (
	"os"
	"testing"

	"github.com/harperreed/aria/internal/models"
	"github.com/harperreed/aria/internal/storage"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{
			name:   "short string no truncation",
			input:  "hello",
			maxLen: 10,
			want:   "hello",
		},
		{
			name:   "exact length",
			input:  "hello",
			maxLen: 5,
			want:   "hello",
		},
		{
			name:   "needs truncation",
			input:  "feeling pretty good about today honestly",
			maxLen: 12,
			want:   "feeling p...",
		},
		{
			name:   "empty string",
			input:  "",
			maxLen: 5,
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.input, tt.maxLen)
			if got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		length int
		want   string
	}{
		{
			name:   "needs padding",
			input:  "calm",
			length: 8,
			want:   "calm    ",
		},
		{
			name:   "exact length",
			input:  "stressed",
			length: 8,
			want:   "stressed",
		},
		{
			name:   "longer than length",
			input:  "overwhelmed",
			length: 8,
			want:   "overwhelmed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := padRight(tt.input, tt.length)
			if got != tt.want {
				t.Errorf("padRight(%q, %d) = %q, want %q", tt.input, tt.length, got, tt.want)
			}
		})
	}
}

func TestRootCmdFlags(t *testing.T) {
	// Verify root command is properly initialized
	if rootCmd.Use != "aria" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "aria")
	}

	if rootCmd.Short == "" {
		t.Error("Expected rootCmd.Short to be non-empty")
	}

	dataDirFlag := rootCmd.PersistentFlags().Lookup("data-dir")
	if dataDirFlag == nil {
		t.Error("Expected --data-dir persistent flag on root command")
	}
}

func TestMoodRecordCmdFlags(t *testing.T) {
	// Verify mood record command flags
	for _, name := range []string{"energy", "stress", "notes", "activity"} {
		if moodRecordCmd.Flags().Lookup(name) == nil {
			t.Errorf("Expected --%s flag on mood record command", name)
		}
	}
}

func TestMoodListCmdFlags(t *testing.T) {
	limitFlag := moodListCmd.Flags().Lookup("limit")
	if limitFlag == nil {
		t.Fatal("Expected --limit flag on mood list command")
	}

	// Check default limit value
	if limitFlag.DefValue != "20" {
		t.Errorf("Expected default limit 20, got %s", limitFlag.DefValue)
	}
}

func TestHabitAddCmdFlags(t *testing.T) {
	typeFlag := habitAddCmd.Flags().Lookup("type")
	if typeFlag == nil {
		t.Error("Expected --type flag on habit add command")
	}

	freqFlag := habitAddCmd.Flags().Lookup("frequency")
	if freqFlag == nil {
		t.Fatal("Expected --frequency flag on habit add command")
	}
	if freqFlag.DefValue != "daily" {
		t.Errorf("Expected default frequency daily, got %s", freqFlag.DefValue)
	}
}

func TestHabitCmdSubcommands(t *testing.T) {
	// Verify habit command has subcommands
	subcommands := habitCmd.Commands()
	expectedSubcmds := []string{"add", "archive", "done", "due", "list", "stats"}

	cmdNames := make(map[string]bool)
	for _, cmd := range subcommands {
		cmdNames[cmd.Name()] = true
	}

	for _, expected := range expectedSubcmds {
		if !cmdNames[expected] {
			t.Errorf("Expected habit subcommand %q not found", expected)
		}
	}
}

func TestCheckinCmdSubcommands(t *testing.T) {
	subcommands := checkinCmd.Commands()
	expectedSubcmds := []string{"set", "show", "streak"}

	cmdNames := make(map[string]bool)
	for _, cmd := range subcommands {
		cmdNames[cmd.Name()] = true
	}

	for _, expected := range expectedSubcmds {
		if !cmdNames[expected] {
			t.Errorf("Expected checkin subcommand %q not found", expected)
		}
	}
}

func TestSyncCmdSubcommands(t *testing.T) {
	subcommands := syncCmd.Commands()
	expectedSubcmds := []string{"link", "repair", "reset", "status", "unlink", "wipe"}

	cmdNames := make(map[string]bool)
	for _, cmd := range subcommands {
		cmdNames[cmd.Name()] = true
	}

	for _, expected := range expectedSubcmds {
		if !cmdNames[expected] {
			t.Errorf("Expected sync subcommand %q not found", expected)
		}
	}
}

func TestCommandAliases(t *testing.T) {
	tests := []struct {
		name    string
		aliases []string
		want    string
	}{
		{"mood", moodCmd.Aliases, "m"},
		{"habit", habitCmd.Aliases, "h"},
		{"checkin", checkinCmd.Aliases, "ci"},
		{"insights", insightsCmd.Aliases, "i"},
		{"sync", syncCmd.Aliases, "s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found := false
			for _, alias := range tt.aliases {
				if alias == tt.want {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("Expected %q alias for %s command", tt.want, tt.name)
			}
		})
	}
}

func TestExportCmdValidArgs(t *testing.T) {
	// Verify valid arguments
	validArgs := exportCmd.ValidArgs
	expected := map[string]bool{"json": false, "yaml": false}

	for _, arg := range validArgs {
		if _, ok := expected[arg]; ok {
			expected[arg] = true
		}
	}

	for arg, found := range expected {
		if !found {
			t.Errorf("Expected valid arg %q for exportCmd", arg)
		}
	}

	outputFlag := exportCmd.Flags().Lookup("output")
	if outputFlag == nil {
		t.Error("Expected --output flag on export command")
	}
}

func TestImportCmdExists(t *testing.T) {
	// Verify import command is registered
	found := false
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == "import" {
			found = true
			break
		}
	}
	if !found {
		t.Error("Expected import command to be registered")
	}
}

func TestMCPCmdExists(t *testing.T) {
	found := false
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == "mcp" {
			found = true
			break
		}
	}
	if !found {
		t.Error("Expected mcp command to be registered")
	}
}

func TestChatCmdFlags(t *testing.T) {
	if chatCmd.Flags().Lookup("new-session") == nil {
		t.Error("Expected --new-session flag on chat command")
	}
	if chatCmd.Flags().Lookup("remember") == nil {
		t.Error("Expected --remember flag on chat command")
	}
}

func TestChatRememberCmdWithStore(t *testing.T) {
	dir := setupTestCLI(t)

	// A bare --remember stores the preference without starting a chat.
	rootCmd.SetArgs([]string{"chat", "--remember", "tone=gentle"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("chat --remember failed: %v", err)
	}

	store := openVerifyStore(t, dir)
	convCtx, err := store.LoadContext()
	if err != nil {
		t.Fatalf("LoadContext failed: %v", err)
	}
	if convCtx.UserPreferences["tone"] != "gentle" {
		t.Errorf("UserPreferences[tone] = %q, want %q", convCtx.UserPreferences["tone"], "gentle")
	}
}

func TestChatRememberCmdRejectsBadPair(t *testing.T) {
	setupTestCLI(t)

	rootCmd.SetArgs([]string{"chat", "--remember", "gentle"})
	if err := rootCmd.Execute(); err == nil {
		t.Error("Expected error for preference without key=value form")
	}
}

// setupTestCLI redirects config and data to temp directories so commands
// run against a throwaway JSON store.
func setupTestCLI(t *testing.T) string {
	t.Helper()

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	dir := t.TempDir()
	dataDir = dir
	t.Cleanup(func() {
		dataDir = ""
		repo = nil
	})

	// Reset global flags
	moodEnergy = 0
	moodStress = 0
	moodNotes = ""
	moodActivity = ""
	habitType = ""
	habitFrequency = "daily"
	habitDescription = ""
	habitDifficulty = ""
	habitDuration = 0
	doneRating = 0
	doneNotes = ""
	checkinDate = ""
	chatNewSession = false
	chatRemember = nil

	return dir
}

// openVerifyStore opens a fresh store over the test data dir for assertions.
func openVerifyStore(t *testing.T, dir string) *storage.JSONStore {
	t.Helper()
	store, err := storage.NewJSONStore(dir)
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestMoodRecordCmdWithStore(t *testing.T) {
	dir := setupTestCLI(t)

	rootCmd.SetArgs([]string{"mood", "record", "happy", "--energy", "7", "--notes", "great day"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("mood record failed: %v", err)
	}

	store := openVerifyStore(t, dir)
	entries, err := store.ListEntries(0)
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	if entries[0].Mood != models.MoodHappy {
		t.Errorf("Expected mood happy, got %s", entries[0].Mood)
	}
	if entries[0].EnergyLevel == nil || *entries[0].EnergyLevel != 7 {
		t.Error("Energy level not set correctly")
	}
	if entries[0].Notes == nil || *entries[0].Notes != "great day" {
		t.Error("Notes not set correctly")
	}
}

func TestMoodRecordCmdInvalidMood(t *testing.T) {
	setupTestCLI(t)

	rootCmd.SetArgs([]string{"mood", "record", "bananas"})
	if err := rootCmd.Execute(); err == nil {
		t.Error("Expected error for invalid mood")
	}
}

func TestMoodAnalyzeCmdWithStore(t *testing.T) {
	dir := setupTestCLI(t)

	rootCmd.SetArgs([]string{"mood", "analyze", "feeling", "sad", "and", "worried", "today"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("mood analyze failed: %v", err)
	}

	store := openVerifyStore(t, dir)
	entries, err := store.ListEntries(0)
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	if entries[0].Mood != models.MoodAnxious {
		t.Errorf("Expected mood anxious, got %s", entries[0].Mood)
	}
	if entries[0].Source != models.SourceTextAnalysis {
		t.Errorf("Expected text_analysis source, got %s", entries[0].Source)
	}

	// The analysis details ride along as entry metadata.
	if entries[0].Metadata["confidence"] == "" {
		t.Error("Expected confidence in entry metadata")
	}
	if entries[0].Metadata["indicators"] == "" {
		t.Error("Expected indicators in entry metadata")
	}
}

func TestHabitAddCmdWithStore(t *testing.T) {
	dir := setupTestCLI(t)

	rootCmd.SetArgs([]string{"habit", "add", "Morning Meditation", "--type", "meditation", "--difficulty", "easy"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("habit add failed: %v", err)
	}

	store := openVerifyStore(t, dir)
	habits, err := store.ListHabits(false)
	if err != nil {
		t.Fatalf("ListHabits failed: %v", err)
	}
	if len(habits) != 1 {
		t.Fatalf("Expected 1 habit, got %d", len(habits))
	}
	if habits[0].Name != "Morning Meditation" {
		t.Errorf("Expected name %q, got %q", "Morning Meditation", habits[0].Name)
	}
	if habits[0].Type != models.HabitMeditation {
		t.Errorf("Expected type meditation, got %s", habits[0].Type)
	}
	if habits[0].Difficulty != models.DifficultyEasy {
		t.Errorf("Expected difficulty easy, got %s", habits[0].Difficulty)
	}
}

func TestHabitAddCmdInvalidType(t *testing.T) {
	setupTestCLI(t)

	rootCmd.SetArgs([]string{"habit", "add", "Bad Habit", "--type", "gaming"})
	if err := rootCmd.Execute(); err == nil {
		t.Error("Expected error for invalid habit type")
	}
}

func TestHabitDoneCmdWithStore(t *testing.T) {
	dir := setupTestCLI(t)

	rootCmd.SetArgs([]string{"habit", "add", "Evening Walk", "--type", "walking"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("habit add failed: %v", err)
	}

	store := openVerifyStore(t, dir)
	habits, err := store.ListHabits(false)
	if err != nil || len(habits) != 1 {
		t.Fatalf("Expected 1 habit, got %d (err %v)", len(habits), err)
	}
	id := habits[0].ID.String()

	rootCmd.SetArgs([]string{"habit", "done", id[:8], "--rating", "4"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("habit done failed: %v", err)
	}

	store2 := openVerifyStore(t, dir)
	completions, err := store2.ListCompletions(&habits[0].ID)
	if err != nil {
		t.Fatalf("ListCompletions failed: %v", err)
	}
	if len(completions) != 1 {
		t.Fatalf("Expected 1 completion, got %d", len(completions))
	}
	if completions[0].Rating == nil || *completions[0].Rating != 4 {
		t.Error("Rating not set correctly")
	}
}

func TestHabitDoneCmdNotFound(t *testing.T) {
	setupTestCLI(t)

	rootCmd.SetArgs([]string{"habit", "done", "deadbeef"})
	if err := rootCmd.Execute(); err == nil {
		t.Error("Expected error for unknown habit")
	}
}

func TestCheckinSetCmdWithStore(t *testing.T) {
	dir := setupTestCLI(t)

	rootCmd.SetArgs([]string{"checkin", "set", "gratitude", "my dog", "--date", "2025-06-02"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("checkin set failed: %v", err)
	}

	store := openVerifyStore(t, dir)
	c, err := store.GetCheckIn("2025-06-02")
	if err != nil {
		t.Fatalf("GetCheckIn failed: %v", err)
	}
	if c == nil {
		t.Fatal("Expected check-in to exist")
	}
	if c.Responses[models.CategoryGratitude] != "my dog" {
		t.Errorf("Expected gratitude response, got %q", c.Responses[models.CategoryGratitude])
	}

	// The conversation context tracks the latest check-in day.
	convCtx, err := store.LoadContext()
	if err != nil {
		t.Fatalf("LoadContext failed: %v", err)
	}
	if convCtx.LastCheckInDate != "2025-06-02" {
		t.Errorf("LastCheckInDate = %q, want %q", convCtx.LastCheckInDate, "2025-06-02")
	}
}

func TestCheckinSetCmdBackdatedKeepsLatestDate(t *testing.T) {
	dir := setupTestCLI(t)

	rootCmd.SetArgs([]string{"checkin", "set", "mood", "good", "--date", "2025-06-05"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("checkin set failed: %v", err)
	}

	checkinDate = ""
	rootCmd.SetArgs([]string{"checkin", "set", "mood", "fine", "--date", "2025-06-01"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("backdated checkin set failed: %v", err)
	}

	store := openVerifyStore(t, dir)
	convCtx, err := store.LoadContext()
	if err != nil {
		t.Fatalf("LoadContext failed: %v", err)
	}
	if convCtx.LastCheckInDate != "2025-06-05" {
		t.Errorf("LastCheckInDate = %q, want %q (backdating must not move it back)", convCtx.LastCheckInDate, "2025-06-05")
	}
}

func TestCheckinSetCmdInvalidCategory(t *testing.T) {
	setupTestCLI(t)

	rootCmd.SetArgs([]string{"checkin", "set", "horoscope", "aries"})
	if err := rootCmd.Execute(); err == nil {
		t.Error("Expected error for invalid category")
	}
}

func TestInsightsGenerateCmdWithStore(t *testing.T) {
	dir := setupTestCLI(t)

	// A streak-worthy gratitude answer triggers an immediate insight
	rootCmd.SetArgs([]string{"checkin", "set", "gratitude", "sunshine"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("checkin set failed: %v", err)
	}

	rootCmd.SetArgs([]string{"insights", "generate"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("insights generate failed: %v", err)
	}

	store := openVerifyStore(t, dir)
	if _, err := store.ListInsights(false); err != nil {
		t.Fatalf("ListInsights failed: %v", err)
	}
}

func TestExportCmdWithStore(t *testing.T) {
	dir := setupTestCLI(t)

	rootCmd.SetArgs([]string{"mood", "record", "calm"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("mood record failed: %v", err)
	}

	outFile := dir + "/export.json"
	rootCmd.SetArgs([]string{"export", "json", "-o", outFile})
	exportOutput = ""
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	data, err := os.ReadFile(outFile)
	if err != nil {
		t.Fatalf("Failed to read export file: %v", err)
	}
	if len(data) == 0 {
		t.Error("Expected non-empty export file")
	}
}
