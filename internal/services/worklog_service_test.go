package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"worklog/internal/core"
)

// fakeStore is an in-memory store with switchable save failures.
type fakeStore struct {
	cats     []core.Category
	items    []core.WorkItem
	failSave bool
}

var errSave = errors.New("disk full")

func (f *fakeStore) LoadCategories(ctx context.Context) ([]core.Category, error) {
	return append([]core.Category(nil), f.cats...), nil
}

func (f *fakeStore) SaveCategories(ctx context.Context, cats []core.Category) error {
	if f.failSave {
		return errSave
	}
	f.cats = append([]core.Category(nil), cats...)
	return nil
}

func (f *fakeStore) LoadWorkItems(ctx context.Context) ([]core.WorkItem, error) {
	return append([]core.WorkItem(nil), f.items...), nil
}

func (f *fakeStore) SaveWorkItems(ctx context.Context, items []core.WorkItem) error {
	if f.failSave {
		return errSave
	}
	f.items = append([]core.WorkItem(nil), items...)
	return nil
}

func newTestService(t *testing.T, st *fakeStore) *WorkLogService {
	t.Helper()
	svc, err := NewWorkLogService(context.Background(), st)
	if err != nil {
		t.Fatalf("NewWorkLogService: %v", err)
	}
	return svc
}

func TestAddWorkItemWritesThrough(t *testing.T) {
	st := &fakeStore{}
	svc := newTestService(t, st)
	now := time.Date(2024, 3, 13, 11, 0, 0, 0, time.UTC)

	item, err := svc.AddWorkItem(context.Background(), "CASE-1", "drafted brief", "cat-1", now)
	if err != nil {
		t.Fatalf("AddWorkItem: %v", err)
	}
	if item.Timestamp != now.UnixMilli() {
		t.Errorf("timestamp = %d, want %d", item.Timestamp, now.UnixMilli())
	}
	if len(st.items) != 1 || st.items[0].ID != item.ID {
		t.Errorf("store not written through: %v", st.items)
	}
	if got := svc.WorkItems(); len(got) != 1 {
		t.Errorf("in-memory items = %d, want 1", len(got))
	}
}

func TestAddWorkItemValidationLeavesStoreUntouched(t *testing.T) {
	st := &fakeStore{}
	svc := newTestService(t, st)

	_, err := svc.AddWorkItem(context.Background(), "CASE-1", "   ", "cat-1", time.Now())
	if !errors.Is(err, core.ErrEmptyDescription) {
		t.Fatalf("err = %v, want ErrEmptyDescription", err)
	}
	if len(st.items) != 0 {
		t.Errorf("store changed by failed validation: %v", st.items)
	}

	_, err = svc.AddWorkItem(context.Background(), "", "real work", "", time.Now())
	if !errors.Is(err, core.ErrEmptyCategory) {
		t.Fatalf("err = %v, want ErrEmptyCategory", err)
	}
	if len(st.items) != 0 {
		t.Errorf("store changed by failed validation: %v", st.items)
	}
}

func TestSaveFailureRollsBack(t *testing.T) {
	st := &fakeStore{}
	svc := newTestService(t, st)
	ctx := context.Background()

	if _, err := svc.AddWorkItem(ctx, "", "first", "cat-1", time.Now()); err != nil {
		t.Fatal(err)
	}

	st.failSave = true
	_, err := svc.AddWorkItem(ctx, "", "second", "cat-1", time.Now())
	if !errors.Is(err, errSave) {
		t.Fatalf("err = %v, want wrapped save error", err)
	}

	// In-memory state must still match the last durable save.
	if got := svc.WorkItems(); len(got) != 1 || got[0].Description != "first" {
		t.Errorf("in-memory state not rolled back: %v", got)
	}

	st.failSave = false
	if err := svc.DeleteWorkItem(ctx, svc.WorkItems()[0].ID); err != nil {
		t.Fatal(err)
	}
	if got := svc.WorkItems(); len(got) != 0 {
		t.Errorf("expected empty collection after delete, got %v", got)
	}
}

func TestAddCategory(t *testing.T) {
	st := &fakeStore{}
	svc := newTestService(t, st)

	cat, err := svc.AddCategory(context.Background(), "  Billing  ", "#000000")
	if err != nil {
		t.Fatalf("AddCategory: %v", err)
	}
	if cat.Name != "Billing" {
		t.Errorf("name = %q, want trimmed %q", cat.Name, "Billing")
	}
	if len(st.cats) != 1 {
		t.Errorf("store not written through: %v", st.cats)
	}

	_, err = svc.AddCategory(context.Background(), " ", "#fff")
	if !errors.Is(err, core.ErrEmptyName) {
		t.Fatalf("err = %v, want ErrEmptyName", err)
	}
	if len(st.cats) != 1 {
		t.Errorf("store changed by failed validation: %v", st.cats)
	}
}

func TestDeleteAbsentIDIsNoOp(t *testing.T) {
	st := &fakeStore{
		cats:  []core.Category{{ID: "c1", Name: "Dev", Color: "#fff"}},
		items: []core.WorkItem{{ID: "i1", Description: "x", CategoryID: "c1", Timestamp: 1}},
	}
	svc := newTestService(t, st)
	ctx := context.Background()

	// A failing store proves no save is attempted for absent ids.
	st.failSave = true

	if err := svc.DeleteCategory(ctx, "nope"); err != nil {
		t.Errorf("DeleteCategory(absent) = %v, want nil", err)
	}
	if err := svc.DeleteWorkItem(ctx, "nope"); err != nil {
		t.Errorf("DeleteWorkItem(absent) = %v, want nil", err)
	}
	if len(svc.Categories()) != 1 || len(svc.WorkItems()) != 1 {
		t.Error("collections changed by no-op deletes")
	}
}

func TestDeleteCategoryLeavesItemsDangling(t *testing.T) {
	st := &fakeStore{
		cats:  []core.Category{{ID: "c1", Name: "Development", Color: "#3b82f6"}},
		items: []core.WorkItem{{ID: "i1", Description: "x", CategoryID: "c1", Timestamp: time.Now().UnixMilli()}},
	}
	svc := newTestService(t, st)

	if err := svc.DeleteCategory(context.Background(), "c1"); err != nil {
		t.Fatal(err)
	}
	items := svc.WorkItems()
	if len(items) != 1 || items[0].CategoryID != "c1" {
		t.Fatalf("work items disturbed by category delete: %v", items)
	}

	report := svc.WeeklyReport(0, time.Now())
	if len(report.Chart) != 1 || report.Chart[0].Name != core.UnknownCategoryName {
		t.Errorf("chart = %+v, want single Unknown bucket", report.Chart)
	}
}

func TestDailyItemsNewestFirst(t *testing.T) {
	now := time.Date(2024, 3, 13, 18, 0, 0, 0, time.UTC)
	st := &fakeStore{items: []core.WorkItem{
		{ID: "old", Description: "a", CategoryID: "c", Timestamp: now.Add(-6 * time.Hour).UnixMilli()},
		{ID: "new", Description: "b", CategoryID: "c", Timestamp: now.Add(-1 * time.Hour).UnixMilli()},
		{ID: "yesterday", Description: "c", CategoryID: "c", Timestamp: now.Add(-24 * time.Hour).UnixMilli()},
	}}
	svc := newTestService(t, st)

	daily := svc.DailyItems(now)
	if len(daily) != 2 {
		t.Fatalf("daily items = %d, want 2", len(daily))
	}
	if daily[0].ID != "new" || daily[1].ID != "old" {
		t.Errorf("order = [%s, %s], want [new, old]", daily[0].ID, daily[1].ID)
	}
}

func TestWeeklyReport(t *testing.T) {
	now := time.Date(2024, 3, 13, 12, 0, 0, 0, time.UTC) // Wednesday
	st := &fakeStore{
		cats: []core.Category{{ID: "dev", Name: "Development", Color: "#3b82f6"}},
		items: []core.WorkItem{
			{ID: "in", Description: "a", CategoryID: "dev", Timestamp: now.UnixMilli()},
			{ID: "lastweek", Description: "b", CategoryID: "dev", Timestamp: now.AddDate(0, 0, -7).UnixMilli()},
		},
	}
	svc := newTestService(t, st)

	report := svc.WeeklyReport(0, now)
	if len(report.Items) != 1 || report.Items[0].ID != "in" {
		t.Fatalf("report items = %v, want only current-week item", report.Items)
	}
	if len(report.Chart) != 1 || report.Chart[0].Count != 1 || report.Chart[0].Name != "Development" {
		t.Errorf("chart = %+v", report.Chart)
	}

	prev := svc.WeeklyReport(-1, now)
	if len(prev.Items) != 1 || prev.Items[0].ID != "lastweek" {
		t.Errorf("previous week items = %v", prev.Items)
	}
}
