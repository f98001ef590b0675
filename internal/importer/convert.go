package importer

import (
	"fmt"
	"sort"
	"time"

	"github.com/alexanderramin/prodline/internal/domain"
	"github.com/google/uuid"
)

// ConvertEntries turns validated entry imports into domain entries with
// fresh IDs. Call ValidateSeed first. Entries without submitted_at are
// stamped with now.
func ConvertEntries(entries []EntryImport, now time.Time) ([]*domain.ProductionEntry, error) {
	out := make([]*domain.ProductionEntry, 0, len(entries))
	for i, e := range entries {
		area, err := domain.ParseArea(e.Area)
		if err != nil {
			return nil, fmt.Errorf("entries[%d]: %w", i, err)
		}
		date, err := domain.ParseDate(e.Date)
		if err != nil {
			return nil, fmt.Errorf("entries[%d]: %w", i, err)
		}
		submittedAt := now
		if e.SubmittedAt != "" {
			submittedAt, err = time.Parse(time.RFC3339, e.SubmittedAt)
			if err != nil {
				return nil, fmt.Errorf("entries[%d]: parsing submitted_at: %w", i, err)
			}
		}

		items := make([]domain.BatchItem, 0, len(e.Items))
		for _, it := range e.Items {
			items = append(items, it.toBatchItem().Normalize(area))
		}
		out = append(out, &domain.ProductionEntry{
			ID:          uuid.New().String(),
			Date:        date,
			Area:        area,
			Supervisor:  e.Supervisor,
			SubmittedAt: submittedAt.UTC(),
			UpdatedAt:   submittedAt.UTC(),
			Items:       items,
		})
	}
	return out, nil
}

func (it ItemImport) toBatchItem() domain.BatchItem {
	return domain.BatchItem{
		Quantity: it.Quantity,
		Model:    it.Model,
		Machine:  it.Machine,
		Part:     it.Part,
		Category: it.Category,
	}
}

// SortedTargetKeys returns the keys of a target section in ascending order.
func SortedTargetKeys(m map[string]map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
