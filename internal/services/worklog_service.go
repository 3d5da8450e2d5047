// Package services owns the application state and the entry lifecycle.
// All mutation of categories and work items routes through WorkLogService,
// which validates input, assigns identity, and writes through to the
// persistence adapter on every change.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"worklog/internal/core"
	"worklog/internal/store"
)

// WorkLogService holds the in-memory read model for both collections and
// keeps it consistent with durable storage. Writes are write-through: a
// failed save rolls the in-memory copy back to the last durably saved value
// and the operation as a whole fails.
type WorkLogService struct {
	mu    sync.RWMutex
	st    store.Store
	cats  []core.Category
	items []core.WorkItem
}

// NewWorkLogService loads both collections from the store. A load failure
// is fatal for construction: the service never starts on corrupted data.
func NewWorkLogService(ctx context.Context, st store.Store) (*WorkLogService, error) {
	cats, err := st.LoadCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	items, err := st.LoadWorkItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("load work items: %w", err)
	}

	slog.InfoContext(ctx, "Work log loaded",
		"categories", len(cats),
		"work_items", len(items))

	return &WorkLogService{st: st, cats: cats, items: items}, nil
}

// Categories returns a copy of the current category collection.
func (s *WorkLogService) Categories() []core.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]core.Category(nil), s.cats...)
}

// WorkItems returns a copy of the current work item collection.
func (s *WorkLogService) WorkItems() []core.WorkItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]core.WorkItem(nil), s.items...)
}

// AddCategory validates the name, assigns a fresh id and persists the
// grown collection.
func (s *WorkLogService) AddCategory(ctx context.Context, name, color string) (core.Category, error) {
	cat, err := core.NewCategory(name, color)
	if err != nil {
		return core.Category{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	updated := append(append([]core.Category(nil), s.cats...), cat)
	if err := s.st.SaveCategories(ctx, updated); err != nil {
		slog.ErrorContext(ctx, "Failed to persist category",
			"category_name", cat.Name, "error", err)
		return core.Category{}, fmt.Errorf("save categories: %w", err)
	}
	s.cats = updated

	slog.InfoContext(ctx, "Category added",
		"category_id", cat.ID, "category_name", cat.Name)
	return cat, nil
}

// DeleteCategory removes the matching category. Deleting an absent id is a
// no-op, and work items referencing the category are left untouched; they
// render as "Unknown" from then on.
func (s *WorkLogService) DeleteCategory(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated := make([]core.Category, 0, len(s.cats))
	for _, c := range s.cats {
		if c.ID != id {
			updated = append(updated, c)
		}
	}
	if len(updated) == len(s.cats) {
		return nil
	}

	if err := s.st.SaveCategories(ctx, updated); err != nil {
		slog.ErrorContext(ctx, "Failed to persist category deletion",
			"category_id", id, "error", err)
		return fmt.Errorf("save categories: %w", err)
	}
	s.cats = updated

	slog.InfoContext(ctx, "Category deleted", "category_id", id)
	return nil
}

// AddWorkItem validates input, stamps the item with now and persists the
// grown collection.
func (s *WorkLogService) AddWorkItem(ctx context.Context, caseID, description, categoryID string, now time.Time) (core.WorkItem, error) {
	item, err := core.NewWorkItem(caseID, description, categoryID, now)
	if err != nil {
		return core.WorkItem{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	updated := append(append([]core.WorkItem(nil), s.items...), item)
	if err := s.st.SaveWorkItems(ctx, updated); err != nil {
		slog.ErrorContext(ctx, "Failed to persist work item",
			"case_id", item.CaseID, "error", err)
		return core.WorkItem{}, fmt.Errorf("save work items: %w", err)
	}
	s.items = updated

	slog.InfoContext(ctx, "Work item added",
		"item_id", item.ID,
		"case_id", item.CaseID,
		"category_id", item.CategoryID)
	return item, nil
}

// DeleteWorkItem removes the matching item; absent ids are a no-op.
func (s *WorkLogService) DeleteWorkItem(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated := make([]core.WorkItem, 0, len(s.items))
	for _, it := range s.items {
		if it.ID != id {
			updated = append(updated, it)
		}
	}
	if len(updated) == len(s.items) {
		return nil
	}

	if err := s.st.SaveWorkItems(ctx, updated); err != nil {
		slog.ErrorContext(ctx, "Failed to persist work item deletion",
			"item_id", id, "error", err)
		return fmt.Errorf("save work items: %w", err)
	}
	s.items = updated

	slog.InfoContext(ctx, "Work item deleted", "item_id", id)
	return nil
}

// DailyItems returns the items logged during now's local calendar day,
// newest first.
func (s *WorkLogService) DailyItems(now time.Time) []core.WorkItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := core.FilterWindow(s.items, core.DayWindow(now))
	sort.Slice(items, func(i, j int) bool {
		return items[i].Timestamp > items[j].Timestamp
	})
	return items
}

// WeeklyReport derives the report view for the week containing now shifted
// by offsetWeeks: the window, its items (newest first) and the chart rows.
// Everything is recomputed from the full collection; at personal-log volumes
// there is nothing worth caching here.
func (s *WorkLogService) WeeklyReport(offsetWeeks int, now time.Time) core.WeeklyReport {
	s.mu.RLock()
	defer s.mu.RUnlock()

	window := core.WeekRange(offsetWeeks, now)
	items := core.FilterWindow(s.items, window)
	sort.Slice(items, func(i, j int) bool {
		return items[i].Timestamp > items[j].Timestamp
	})

	return core.WeeklyReport{
		Window: window,
		Items:  items,
		Chart:  core.BuildChartRows(core.GroupCounts(items, window), s.cats),
	}
}
