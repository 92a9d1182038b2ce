// ABOUTME: JSON file store: one file per collection in the app data directory.
// ABOUTME: Whole-file reads and writes; corrupt files reset to empty collections.
package storage

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/harperreed/aria/internal/checkin"
	"github.com/harperreed/aria/internal/insights"
	"github.com/harperreed/aria/internal/models"
)

// Collection file names.
const (
	habitsFile      = "habits.json"
	completionsFile = "completions.json"
	insightsFile    = "insights.json"
	checkInsFile    = "check_ins.json"
	entriesFile     = "entries.json"
	contextFile     = "context.json"
	cursorFile      = "insight_cursor.json"
)

// JSONStore persists each collection as a JSON file under dataDir.
// Wellness entries and the conversation context are base64-wrapped as an
// obfuscation step. This is not encryption; it only keeps casual greps out
// of mood data.
type JSONStore struct {
	dataDir string
}

// Compile-time check that JSONStore implements Repository.
var _ Repository = (*JSONStore)(nil)

// NewJSONStore creates a JSON file store rooted at dataDir.
func NewJSONStore(dataDir string) (*JSONStore, error) {
	if err := os.MkdirAll(dataDir, 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &JSONStore{dataDir: dataDir}, nil
}

// DataDir returns the default data directory following XDG spec.
func DataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "aria")
}

// Close releases resources. For JSONStore this is a no-op.
func (s *JSONStore) Close() error {
	return nil
}

// load reads a collection file into out. A missing file leaves out empty;
// a corrupt file resets the collection to empty and logs.
func (s *JSONStore) load(name string, obfuscated bool, out any) error {
	path := filepath.Join(s.dataDir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read %s: %w", name, err)
	}

	if obfuscated {
		decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(string(data)))
		if err != nil {
			log.Warn("corrupt collection, resetting to empty", "file", name, "err", err)
			return nil
		}
		data = decoded
	}

	if err := json.Unmarshal(data, out); err != nil {
		log.Warn("corrupt collection, resetting to empty", "file", name, "err", err)
		return nil
	}
	return nil
}

// save writes a collection file, replacing it wholesale.
func (s *JSONStore) save(name string, obfuscated bool, in any) error {
	data, err := json.MarshalIndent(in, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}
	if obfuscated {
		data = []byte(base64.StdEncoding.EncodeToString(data))
	}
	path := filepath.Join(s.dataDir, name)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// Wellness entries

func (s *JSONStore) CreateEntry(e *models.WellnessEntry) error {
	var entries []*models.WellnessEntry
	if err := s.load(entriesFile, true, &entries); err != nil {
		return err
	}
	entries = append(entries, e)
	return s.save(entriesFile, true, entries)
}

// ListEntries returns entries sorted most recent first.
func (s *JSONStore) ListEntries(limit int) ([]*models.WellnessEntry, error) {
	var entries []*models.WellnessEntry
	if err := s.load(entriesFile, true, &entries); err != nil {
		return nil, err
	}
	sortByTime(entries, func(e *models.WellnessEntry) time.Time { return e.Timestamp })
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// Habits

func (s *JSONStore) CreateHabit(h *models.WellnessHabit) error {
	var habits []*models.WellnessHabit
	if err := s.load(habitsFile, false, &habits); err != nil {
		return err
	}
	habits = append(habits, h)
	return s.save(habitsFile, false, habits)
}

func (s *JSONStore) GetHabit(idOrPrefix string) (*models.WellnessHabit, error) {
	habits, err := s.ListHabits(true)
	if err != nil {
		return nil, err
	}
	var match *models.WellnessHabit
	for _, h := range habits {
		if strings.HasPrefix(h.ID.String(), idOrPrefix) {
			if match != nil {
				return nil, fmt.Errorf("ambiguous habit id prefix: %s", idOrPrefix)
			}
			match = h
		}
	}
	if match == nil {
		return nil, fmt.Errorf("habit not found: %s", idOrPrefix)
	}
	return match, nil
}

func (s *JSONStore) UpdateHabit(h *models.WellnessHabit) error {
	var habits []*models.WellnessHabit
	if err := s.load(habitsFile, false, &habits); err != nil {
		return err
	}
	for i, existing := range habits {
		if existing.ID == h.ID {
			habits[i] = h
			return s.save(habitsFile, false, habits)
		}
	}
	return fmt.Errorf("habit not found: %s", h.ID)
}

func (s *JSONStore) ListHabits(includeArchived bool) ([]*models.WellnessHabit, error) {
	var habits []*models.WellnessHabit
	if err := s.load(habitsFile, false, &habits); err != nil {
		return nil, err
	}
	if includeArchived {
		return habits, nil
	}
	active := habits[:0:0]
	for _, h := range habits {
		if h.IsActive {
			active = append(active, h)
		}
	}
	return active, nil
}

// Completions

func (s *JSONStore) CreateCompletion(c *models.HabitCompletion) error {
	// A completion must reference an existing habit.
	if _, err := s.GetHabit(c.HabitID.String()); err != nil {
		return fmt.Errorf("create completion: %w", err)
	}

	var completions []*models.HabitCompletion
	if err := s.load(completionsFile, false, &completions); err != nil {
		return err
	}
	completions = append(completions, c)
	return s.save(completionsFile, false, completions)
}

func (s *JSONStore) ListCompletions(habitID *uuid.UUID) ([]*models.HabitCompletion, error) {
	var completions []*models.HabitCompletion
	if err := s.load(completionsFile, false, &completions); err != nil {
		return nil, err
	}
	if habitID == nil {
		return completions, nil
	}
	filtered := completions[:0:0]
	for _, c := range completions {
		if c.HabitID == *habitID {
			filtered = append(filtered, c)
		}
	}
	return filtered, nil
}

// Insights

func (s *JSONStore) AddInsights(newInsights []*models.Insight) error {
	var all []*models.Insight
	if err := s.load(insightsFile, false, &all); err != nil {
		return err
	}
	all = insights.Prune(append(all, newInsights...))
	return s.save(insightsFile, false, all)
}

// ListInsights returns insights newest first.
func (s *JSONStore) ListInsights(unreadOnly bool) ([]*models.Insight, error) {
	var all []*models.Insight
	if err := s.load(insightsFile, false, &all); err != nil {
		return nil, err
	}
	sortByTime(all, func(i *models.Insight) time.Time { return i.Timestamp })
	if !unreadOnly {
		return all, nil
	}
	unread := all[:0:0]
	for _, i := range all {
		if !i.IsRead {
			unread = append(unread, i)
		}
	}
	return unread, nil
}

func (s *JSONStore) MarkInsightRead(idOrPrefix string) error {
	var all []*models.Insight
	if err := s.load(insightsFile, false, &all); err != nil {
		return err
	}
	for _, i := range all {
		if strings.HasPrefix(i.ID.String(), idOrPrefix) {
			i.IsRead = true
			return s.save(insightsFile, false, all)
		}
	}
	return fmt.Errorf("insight not found: %s", idOrPrefix)
}

// Check-ins

func (s *JSONStore) UpsertCheckIn(c *models.DailyCheckIn) error {
	checkIns, err := s.ListCheckIns()
	if err != nil {
		return err
	}
	replaced := false
	for i, existing := range checkIns {
		if existing.Date == c.Date {
			checkIns[i] = c
			replaced = true
			break
		}
	}
	if !replaced {
		checkIns = append(checkIns, c)
	}
	return s.save(checkInsFile, false, checkIns)
}

func (s *JSONStore) GetCheckIn(date string) (*models.DailyCheckIn, error) {
	checkIns, err := s.ListCheckIns()
	if err != nil {
		return nil, err
	}
	return checkin.ForDay(checkIns, date), nil
}

func (s *JSONStore) ListCheckIns() ([]*models.DailyCheckIn, error) {
	var checkIns []*models.DailyCheckIn
	if err := s.load(checkInsFile, false, &checkIns); err != nil {
		return nil, err
	}
	// Malformed category keys from hand-edited files are dropped, not fatal.
	for _, c := range checkIns {
		c.Responses = checkin.SanitizeResponses(c.Responses)
	}
	return checkIns, nil
}

// Conversation context

func (s *JSONStore) LoadContext() (*models.ConversationContext, error) {
	var ctx *models.ConversationContext
	if err := s.load(contextFile, true, &ctx); err != nil {
		return nil, err
	}
	if ctx == nil {
		ctx = models.NewConversationContext()
	}
	return ctx, nil
}

func (s *JSONStore) SaveContext(ctx *models.ConversationContext) error {
	return s.save(contextFile, true, ctx)
}

// Insight cursor

type insightCursor struct {
	LastRun time.Time `json:"last_run"`
}

func (s *JSONStore) LastInsightRun() (time.Time, error) {
	var cursor insightCursor
	if err := s.load(cursorFile, false, &cursor); err != nil {
		return time.Time{}, err
	}
	return cursor.LastRun, nil
}

func (s *JSONStore) SetLastInsightRun(t time.Time) error {
	return s.save(cursorFile, false, insightCursor{LastRun: t})
}

// sortByTime sorts a slice most recent first.
func sortByTime[T any](items []T, at func(T) time.Time) {
	sort.Slice(items, func(i, j int) bool {
		return at(items[i]).After(at(items[j]))
	})
}
