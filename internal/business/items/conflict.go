package items

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/ansokolv/social-calendar-backend/internal/model"
	"github.com/ansokolv/social-calendar-backend/internal/pkg/interval"
)

// CheckConflict reports which of the owner's events overlap the proposed
// interval, skipping the item being moved itself. Used by drag-to-reschedule
// and resize edits: the edit is still allowed, the caller just gets told.
func (s *Service) CheckConflict(ctx context.Context, ownerID int64, excludeID int64, proposed model.TimeInterval) (*model.ConflictReport, error) {
	existing, err := s.GetItems(ctx, model.ItemsFilter{
		From:     proposed.From.AddDate(0, 0, -1),
		To:       proposed.To.AddDate(0, 0, 1),
		OwnerIDs: []int64{ownerID},
		Kinds:    []model.ItemKind{model.ItemKindEvent},
	})
	if err != nil {
		return nil, fmt.Errorf("get existing items: %w", err)
	}

	report := &model.ConflictReport{}
	for _, it := range existing {
		if baseID(it.ID) == excludeID {
			continue
		}

		if interval.Overlaps(proposed, model.TimeInterval{From: it.From, To: it.To}) {
			report.Conflicting = true
			report.Titles = append(report.Titles, it.Title)
		}
	}

	return report, nil
}

// baseID extracts the stored item id from an occurrence-addressed id
// ("<id>_<unix>").
func baseID(id string) int64 {
	base, _, _ := strings.Cut(id, "_")
	n, err := strconv.ParseInt(base, 10, 64)
	if err != nil {
		return 0
	}

	return n
}
