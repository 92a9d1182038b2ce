// ABOUTME: Wellness collection CRUD on Charm KV, implementing storage.Repository.
// ABOUTME: Uses type-prefixed keys and client-side filtering.
package charm

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/aria/internal/checkin"
	"github.com/harperreed/aria/internal/insights"
	"github.com/harperreed/aria/internal/models"
	"github.com/harperreed/aria/internal/storage"
)

// Compile-time check that Client implements Repository.
var _ storage.Repository = (*Client)(nil)

// Wellness entries

// CreateEntry stores a new wellness entry in the KV store.
func (c *Client) CreateEntry(e *models.WellnessEntry) error {
	data, err := marshalJSON(e)
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}
	return c.set(EntryPrefix+e.ID.String(), data)
}

// ListEntries retrieves wellness entries, most recent first.
func (c *Client) ListEntries(limit int) ([]*models.WellnessEntry, error) {
	allData, err := c.listByPrefix(EntryPrefix)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	var entries []*models.WellnessEntry
	for _, data := range allData {
		e, err := unmarshalJSON[models.WellnessEntry](data)
		if err != nil {
			continue // Skip invalid entries
		}
		entries = append(entries, e)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// Habits

// CreateHabit stores a new habit in the KV store.
func (c *Client) CreateHabit(h *models.WellnessHabit) error {
	data, err := marshalJSON(h)
	if err != nil {
		return fmt.Errorf("marshal habit: %w", err)
	}
	return c.set(HabitPrefix+h.ID.String(), data)
}

// GetHabit retrieves a habit by ID or ID prefix.
func (c *Client) GetHabit(idOrPrefix string) (*models.WellnessHabit, error) {
	data, err := c.getByIDPrefix(HabitPrefix, idOrPrefix)
	if err != nil {
		return nil, fmt.Errorf("get habit: %w", err)
	}

	habit, err := unmarshalJSON[models.WellnessHabit](data)
	if err != nil {
		return nil, fmt.Errorf("unmarshal habit: %w", err)
	}
	return habit, nil
}

// UpdateHabit rewrites an existing habit record.
func (c *Client) UpdateHabit(h *models.WellnessHabit) error {
	if _, err := c.getByIDPrefix(HabitPrefix, h.ID.String()); err != nil {
		return fmt.Errorf("update habit: %w", err)
	}
	return c.CreateHabit(h)
}

// ListHabits retrieves habits, optionally including archived ones.
// Results are sorted by CreatedAt ascending (oldest first).
func (c *Client) ListHabits(includeArchived bool) ([]*models.WellnessHabit, error) {
	allData, err := c.listByPrefix(HabitPrefix)
	if err != nil {
		return nil, fmt.Errorf("list habits: %w", err)
	}

	var habits []*models.WellnessHabit
	for _, data := range allData {
		h, err := unmarshalJSON[models.WellnessHabit](data)
		if err != nil {
			continue
		}
		if !includeArchived && !h.IsActive {
			continue
		}
		habits = append(habits, h)
	}

	sort.Slice(habits, func(i, j int) bool {
		return habits[i].CreatedAt.Before(habits[j].CreatedAt)
	})
	return habits, nil
}

// Completions

// CreateCompletion stores a completion after checking the habit exists.
func (c *Client) CreateCompletion(comp *models.HabitCompletion) error {
	if _, err := c.GetHabit(comp.HabitID.String()); err != nil {
		return fmt.Errorf("create completion: %w", err)
	}

	data, err := marshalJSON(comp)
	if err != nil {
		return fmt.Errorf("marshal completion: %w", err)
	}
	return c.set(CompletionPrefix+comp.ID.String(), data)
}

// ListCompletions retrieves completions, optionally filtered by habit.
func (c *Client) ListCompletions(habitID *uuid.UUID) ([]*models.HabitCompletion, error) {
	allData, err := c.listByPrefix(CompletionPrefix)
	if err != nil {
		return nil, fmt.Errorf("list completions: %w", err)
	}

	var completions []*models.HabitCompletion
	for _, data := range allData {
		comp, err := unmarshalJSON[models.HabitCompletion](data)
		if err != nil {
			continue
		}
		if habitID != nil && comp.HabitID != *habitID {
			continue
		}
		completions = append(completions, comp)
	}
	return completions, nil
}

// Insights

// AddInsights appends insights and prunes the store to the newest 50.
func (c *Client) AddInsights(newInsights []*models.Insight) error {
	all, err := c.ListInsights(false)
	if err != nil {
		return err
	}

	kept := insights.Prune(append(all, newInsights...))
	keep := make(map[uuid.UUID]bool, len(kept))
	for _, i := range kept {
		keep[i.ID] = true
		data, err := marshalJSON(i)
		if err != nil {
			return fmt.Errorf("marshal insight: %w", err)
		}
		if err := c.set(InsightPrefix+i.ID.String(), data); err != nil {
			return err
		}
	}

	// Remove pruned records.
	for _, i := range all {
		if !keep[i.ID] {
			_ = c.deleteKey(InsightPrefix + i.ID.String())
		}
	}
	return nil
}

// ListInsights retrieves insights newest first, optionally unread only.
func (c *Client) ListInsights(unreadOnly bool) ([]*models.Insight, error) {
	allData, err := c.listByPrefix(InsightPrefix)
	if err != nil {
		return nil, fmt.Errorf("list insights: %w", err)
	}

	var all []*models.Insight
	for _, data := range allData {
		i, err := unmarshalJSON[models.Insight](data)
		if err != nil {
			continue
		}
		if unreadOnly && i.IsRead {
			continue
		}
		all = append(all, i)
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].Timestamp.After(all[j].Timestamp)
	})
	return all, nil
}

// MarkInsightRead flips IsRead on the insight matching the ID prefix.
func (c *Client) MarkInsightRead(idOrPrefix string) error {
	data, err := c.getByIDPrefix(InsightPrefix, idOrPrefix)
	if err != nil {
		return fmt.Errorf("mark insight read: %w", err)
	}
	i, err := unmarshalJSON[models.Insight](data)
	if err != nil {
		return fmt.Errorf("unmarshal insight: %w", err)
	}
	i.IsRead = true

	updated, err := marshalJSON(i)
	if err != nil {
		return fmt.Errorf("marshal insight: %w", err)
	}
	return c.set(InsightPrefix+i.ID.String(), updated)
}

// Check-ins

// UpsertCheckIn stores the check-in under its date key, replacing any
// existing record for the same day.
func (c *Client) UpsertCheckIn(ci *models.DailyCheckIn) error {
	data, err := marshalJSON(ci)
	if err != nil {
		return fmt.Errorf("marshal check-in: %w", err)
	}
	return c.set(CheckInPrefix+ci.Date, data)
}

// GetCheckIn retrieves the check-in for a YYYY-MM-DD date, or nil.
func (c *Client) GetCheckIn(date string) (*models.DailyCheckIn, error) {
	data, err := c.get(CheckInPrefix + date)
	if err != nil {
		return nil, fmt.Errorf("get check-in: %w", err)
	}
	if data == nil {
		return nil, nil
	}
	ci, err := unmarshalJSON[models.DailyCheckIn](data)
	if err != nil {
		return nil, fmt.Errorf("unmarshal check-in: %w", err)
	}
	ci.Responses = checkin.SanitizeResponses(ci.Responses)
	return ci, nil
}

// ListCheckIns retrieves all check-ins sorted by date ascending.
func (c *Client) ListCheckIns() ([]*models.DailyCheckIn, error) {
	allData, err := c.listByPrefix(CheckInPrefix)
	if err != nil {
		return nil, fmt.Errorf("list check-ins: %w", err)
	}

	var checkIns []*models.DailyCheckIn
	for _, data := range allData {
		ci, err := unmarshalJSON[models.DailyCheckIn](data)
		if err != nil {
			continue
		}
		ci.Responses = checkin.SanitizeResponses(ci.Responses)
		checkIns = append(checkIns, ci)
	}

	sort.Slice(checkIns, func(i, j int) bool {
		return strings.Compare(checkIns[i].Date, checkIns[j].Date) < 0
	})
	return checkIns, nil
}

// Conversation context

// LoadContext retrieves the live conversation context, creating a fresh one
// if none is stored.
func (c *Client) LoadContext() (*models.ConversationContext, error) {
	data, err := c.get(contextKey)
	if err != nil {
		return nil, fmt.Errorf("load context: %w", err)
	}
	if data == nil {
		return models.NewConversationContext(), nil
	}
	ctx, err := unmarshalJSON[models.ConversationContext](data)
	if err != nil {
		return models.NewConversationContext(), nil
	}
	return ctx, nil
}

// SaveContext stores the conversation context.
func (c *Client) SaveContext(ctx *models.ConversationContext) error {
	data, err := marshalJSON(ctx)
	if err != nil {
		return fmt.Errorf("marshal context: %w", err)
	}
	return c.set(contextKey, data)
}

// Insight cursor

type insightCursor struct {
	LastRun time.Time `json:"last_run"`
}

// LastInsightRun returns the persisted batch generation cursor.
func (c *Client) LastInsightRun() (time.Time, error) {
	data, err := c.get(cursorKey)
	if err != nil {
		return time.Time{}, fmt.Errorf("load cursor: %w", err)
	}
	if data == nil {
		return time.Time{}, nil
	}
	cursor, err := unmarshalJSON[insightCursor](data)
	if err != nil {
		return time.Time{}, nil
	}
	return cursor.LastRun, nil
}

// SetLastInsightRun persists the batch generation cursor.
func (c *Client) SetLastInsightRun(t time.Time) error {
	data, err := marshalJSON(insightCursor{LastRun: t})
	if err != nil {
		return fmt.Errorf("marshal cursor: %w", err)
	}
	return c.set(cursorKey, data)
}

// Export/Import

// GetAllData retrieves all collections for export.
func (c *Client) GetAllData() (*storage.ExportData, error) {
	habits, err := c.ListHabits(true)
	if err != nil {
		return nil, err
	}
	completions, err := c.ListCompletions(nil)
	if err != nil {
		return nil, err
	}
	allInsights, err := c.ListInsights(false)
	if err != nil {
		return nil, err
	}
	checkIns, err := c.ListCheckIns()
	if err != nil {
		return nil, err
	}
	entries, err := c.ListEntries(0)
	if err != nil {
		return nil, err
	}

	return &storage.ExportData{
		Version:     "1.0",
		ExportedAt:  time.Now(),
		Tool:        "aria",
		Habits:      habits,
		Completions: completions,
		Insights:    allInsights,
		CheckIns:    checkIns,
		Entries:     entries,
	}, nil
}

// ImportData merges exported data into the KV store. Existing records win.
func (c *Client) ImportData(data *storage.ExportData) error {
	for _, h := range data.Habits {
		if _, err := c.getByIDPrefix(HabitPrefix, h.ID.String()); err == nil {
			continue
		}
		if err := c.CreateHabit(h); err != nil {
			return fmt.Errorf("import habit %s: %w", h.ID, err)
		}
	}
	for _, comp := range data.Completions {
		if _, err := c.getByIDPrefix(CompletionPrefix, comp.ID.String()); err == nil {
			continue
		}
		if err := c.CreateCompletion(comp); err != nil {
			return fmt.Errorf("import completion %s: %w", comp.ID, err)
		}
	}
	if err := c.AddInsights(data.Insights); err != nil {
		return fmt.Errorf("import insights: %w", err)
	}
	for _, ci := range data.CheckIns {
		existing, err := c.GetCheckIn(ci.Date)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		if err := c.UpsertCheckIn(ci); err != nil {
			return fmt.Errorf("import check-in %s: %w", ci.Date, err)
		}
	}
	for _, e := range data.Entries {
		if _, err := c.getByIDPrefix(EntryPrefix, e.ID.String()); err == nil {
			continue
		}
		if err := c.CreateEntry(e); err != nil {
			return fmt.Errorf("import entry %s: %w", e.ID, err)
		}
	}
	return nil
}
