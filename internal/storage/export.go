// ABOUTME: Export and import functionality for wellness data.
// ABOUTME: Supports JSON and YAML export formats; import merges by ID.
package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/aria/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportData represents the full export format for wellness data.
type ExportData struct {
	Version     string                    `json:"version" yaml:"version"`
	ExportedAt  time.Time                 `json:"exported_at" yaml:"exported_at"`
	Tool        string                    `json:"tool" yaml:"tool"`
	Habits      []*models.WellnessHabit   `json:"habits" yaml:"habits"`
	Completions []*models.HabitCompletion `json:"completions" yaml:"completions"`
	Insights    []*models.Insight         `json:"insights" yaml:"insights"`
	CheckIns    []*models.DailyCheckIn    `json:"check_ins" yaml:"check_ins"`
	Entries     []*models.WellnessEntry   `json:"entries" yaml:"entries"`
}

// GetAllData retrieves all collections for export.
func (s *JSONStore) GetAllData() (*ExportData, error) {
	habits, err := s.ListHabits(true)
	if err != nil {
		return nil, fmt.Errorf("list habits: %w", err)
	}
	completions, err := s.ListCompletions(nil)
	if err != nil {
		return nil, fmt.Errorf("list completions: %w", err)
	}
	allInsights, err := s.ListInsights(false)
	if err != nil {
		return nil, fmt.Errorf("list insights: %w", err)
	}
	checkIns, err := s.ListCheckIns()
	if err != nil {
		return nil, fmt.Errorf("list check-ins: %w", err)
	}
	entries, err := s.ListEntries(0)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	return &ExportData{
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

// ImportData merges exported data into the store. Records whose IDs already
// exist are skipped; check-ins merge by date with the existing day winning.
func (s *JSONStore) ImportData(data *ExportData) error {
	existingHabits, err := s.ListHabits(true)
	if err != nil {
		return err
	}
	habitIDs := make(map[uuid.UUID]bool, len(existingHabits))
	for _, h := range existingHabits {
		habitIDs[h.ID] = true
	}
	for _, h := range data.Habits {
		if habitIDs[h.ID] {
			continue
		}
		if err := s.CreateHabit(h); err != nil {
			return fmt.Errorf("import habit %s: %w", h.ID, err)
		}
		habitIDs[h.ID] = true
	}

	existingCompletions, err := s.ListCompletions(nil)
	if err != nil {
		return err
	}
	completionIDs := make(map[uuid.UUID]bool, len(existingCompletions))
	for _, c := range existingCompletions {
		completionIDs[c.ID] = true
	}
	for _, c := range data.Completions {
		if completionIDs[c.ID] {
			continue
		}
		if err := s.CreateCompletion(c); err != nil {
			return fmt.Errorf("import completion %s: %w", c.ID, err)
		}
	}

	if err := s.AddInsights(data.Insights); err != nil {
		return fmt.Errorf("import insights: %w", err)
	}

	existingCheckIns, err := s.ListCheckIns()
	if err != nil {
		return err
	}
	haveDay := make(map[string]bool, len(existingCheckIns))
	for _, c := range existingCheckIns {
		haveDay[c.Date] = true
	}
	for _, c := range data.CheckIns {
		if haveDay[c.Date] {
			continue
		}
		if err := s.UpsertCheckIn(c); err != nil {
			return fmt.Errorf("import check-in %s: %w", c.Date, err)
		}
	}

	existingEntries, err := s.ListEntries(0)
	if err != nil {
		return err
	}
	entryIDs := make(map[uuid.UUID]bool, len(existingEntries))
	for _, e := range existingEntries {
		entryIDs[e.ID] = true
	}
	for _, e := range data.Entries {
		if entryIDs[e.ID] {
			continue
		}
		if err := s.CreateEntry(e); err != nil {
			return fmt.Errorf("import entry %s: %w", e.ID, err)
		}
	}

	return nil
}

// FormatExport serializes export data in the given format ("json" or "yaml").
func FormatExport(data *ExportData, format string) ([]byte, error) {
	switch format {
	case "json":
		return json.MarshalIndent(data, "", "  ")
	case "yaml":
		return yaml.Marshal(data)
	default:
		return nil, fmt.Errorf("unknown export format: %q", format)
	}
}

// ParseExport deserializes export data, trying JSON first and then YAML.
func ParseExport(raw []byte) (*ExportData, error) {
	var data ExportData
	if err := json.Unmarshal(raw, &data); err == nil {
		return &data, nil
	}
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse export: %w", err)
	}
	return &data, nil
}
