// ABOUTME: Repository interface for wellness data storage.
// ABOUTME: Defines the contract shared by the JSON file store and the Charm KV store.
package storage

import (
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/aria/internal/models"
)

// Repository defines the storage interface for wellness data.
// Each collection is owned exclusively by the store; callers receive
// snapshots, never shared references into store internals.
type Repository interface {
	// Wellness entries (append-only)
	CreateEntry(e *models.WellnessEntry) error
	ListEntries(limit int) ([]*models.WellnessEntry, error)

	// Habits (soft-deleted via IsActive)
	CreateHabit(h *models.WellnessHabit) error
	GetHabit(idOrPrefix string) (*models.WellnessHabit, error)
	UpdateHabit(h *models.WellnessHabit) error
	ListHabits(includeArchived bool) ([]*models.WellnessHabit, error)

	// Completions (append-only; habit_id must reference an existing habit)
	CreateCompletion(c *models.HabitCompletion) error
	ListCompletions(habitID *uuid.UUID) ([]*models.HabitCompletion, error)

	// Insights (pruned to the newest 50 on save)
	AddInsights(insights []*models.Insight) error
	ListInsights(unreadOnly bool) ([]*models.Insight, error)
	MarkInsightRead(idOrPrefix string) error

	// Daily check-ins (one per calendar day)
	UpsertCheckIn(c *models.DailyCheckIn) error
	GetCheckIn(date string) (*models.DailyCheckIn, error)
	ListCheckIns() ([]*models.DailyCheckIn, error)

	// Conversation context (single live instance)
	LoadContext() (*models.ConversationContext, error)
	SaveContext(ctx *models.ConversationContext) error

	// Insight batch generation cursor
	LastInsightRun() (time.Time, error)
	SetLastInsightRun(t time.Time) error

	// Export/Import
	GetAllData() (*ExportData, error)
	ImportData(data *ExportData) error

	// Lifecycle
	Close() error
}
