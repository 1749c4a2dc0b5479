package items

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/ansokolv/social-calendar-backend/internal/database"
	"github.com/ansokolv/social-calendar-backend/internal/model"
)

type fakeRepository struct {
	items []*model.CalendarItem
}

func (f *fakeRepository) CreateItem(_ context.Context, _ database.Queryable, item *model.CalendarItem) (int64, error) {
	f.items = append(f.items, item)
	return int64(len(f.items)), nil
}

func (f *fakeRepository) GetItemByID(_ context.Context, _ database.Queryable, id int64) (*model.CalendarItem, error) {
	for _, it := range f.items {
		if it.ID == strconv.FormatInt(id, 10) {
			return it, nil
		}
	}
	return nil, model.ErrNoRecord
}

func (f *fakeRepository) GetItems(_ context.Context, _ database.Queryable, filter model.ItemsFilter) ([]*model.CalendarItem, error) {
	var res []*model.CalendarItem
	for _, it := range f.items {
		if len(filter.OwnerIDs) != 0 && it.OwnerID != filter.OwnerIDs[0] {
			continue
		}
		res = append(res, it)
	}
	return res, nil
}

func (f *fakeRepository) UpdateItem(_ context.Context, _ database.Queryable, _ *model.CalendarItem) error {
	return nil
}

func (f *fakeRepository) SetCompleted(_ context.Context, _ database.Queryable, _ int64, _ bool) error {
	return nil
}

func (f *fakeRepository) DeleteItem(_ context.Context, _ database.Queryable, _ int64) error {
	return nil
}

func storedItem(id int64, ownerID int64, title string, from, to time.Time) *model.CalendarItem {
	return &model.CalendarItem{
		ID:         strconv.FormatInt(id, 10),
		Exceptions: map[int64]struct{}{},
		ItemCreate: model.ItemCreate{
			OwnerID: ownerID,
			Kind:    model.ItemKindEvent,
			Title:   title,
			From:    from,
			To:      to,
			Source:  model.SourcePersonal,
		},
	}
}

func TestCheckConflictReportsOverlappingTitles(t *testing.T) {
	day := time.Date(2022, time.March, 14, 0, 0, 0, 0, time.UTC)

	repo := &fakeRepository{items: []*model.CalendarItem{
		storedItem(1, 7, "Standup", day.Add(9*time.Hour), day.Add(10*time.Hour)),
		storedItem(2, 7, "Lunch", day.Add(13*time.Hour), day.Add(14*time.Hour)),
	}}
	s := NewService(nil, repo)

	report, err := s.CheckConflict(context.Background(), 7, 0, model.TimeInterval{
		From: day.Add(9*time.Hour + 30*time.Minute),
		To:   day.Add(10*time.Hour + 30*time.Minute),
	})
	if err != nil {
		t.Fatal(err)
	}

	if !report.Conflicting {
		t.Error("expected a conflict")
	}
	if len(report.Titles) != 1 || report.Titles[0] != "Standup" {
		t.Errorf("conflicting titles = %v, want [Standup]", report.Titles)
	}
}

func TestCheckConflictSkipsItemBeingMoved(t *testing.T) {
	day := time.Date(2022, time.March, 14, 0, 0, 0, 0, time.UTC)

	repo := &fakeRepository{items: []*model.CalendarItem{
		storedItem(1, 7, "Standup", day.Add(9*time.Hour), day.Add(10*time.Hour)),
	}}
	s := NewService(nil, repo)

	report, err := s.CheckConflict(context.Background(), 7, 1, model.TimeInterval{
		From: day.Add(9 * time.Hour),
		To:   day.Add(10 * time.Hour),
	})
	if err != nil {
		t.Fatal(err)
	}

	if report.Conflicting {
		t.Errorf("item must not conflict with itself, got %v", report.Titles)
	}
}

func TestGetItemsExpandsRepeats(t *testing.T) {
	day := time.Date(2022, time.March, 14, 9, 0, 0, 0, time.UTC)

	base := storedItem(1, 7, "Daily sync", day, day.Add(30*time.Minute))
	base.RepeatType = model.RepeatTypeEveryDay
	rule, err := getRule(model.RepeatTypeEveryDay, day, nil)
	if err != nil {
		t.Fatal(err)
	}
	base.RepeatRule = rule

	s := NewService(nil, &fakeRepository{items: []*model.CalendarItem{base}})

	res, err := s.GetItems(context.Background(), model.ItemsFilter{
		From:     day.AddDate(0, 0, -1),
		To:       day.AddDate(0, 0, 3),
		OwnerIDs: []int64{7},
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(res) != 3 {
		t.Fatalf("got %d occurrences, want 3", len(res))
	}
	for i, occ := range res {
		wantFrom := day.AddDate(0, 0, i)
		if !occ.From.Equal(wantFrom) {
			t.Errorf("occurrence %d starts %v, want %v", i, occ.From, wantFrom)
		}
		if occ.To.Sub(occ.From) != 30*time.Minute {
			t.Errorf("occurrence %d duration = %v", i, occ.To.Sub(occ.From))
		}
	}
}
