package store

import (
	"context"

	"worklog/internal/core"
)

// Ports for persistence adapters. Save is always a full-collection
// overwrite; there are no partial or merge semantics.
type (
	CategoryStore interface {
		// LoadCategories returns the stored categories, or the default seed
		// set when no prior data exists. A corrupted store is a load error,
		// never a silent reset.
		LoadCategories(ctx context.Context) ([]core.Category, error)
		SaveCategories(ctx context.Context, categories []core.Category) error
	}

	WorkItemStore interface {
		// LoadWorkItems returns the stored work items; no prior data means
		// an empty collection.
		LoadWorkItems(ctx context.Context) ([]core.WorkItem, error)
		SaveWorkItems(ctx context.Context, items []core.WorkItem) error
	}

	// Store is the full persistence surface the application needs.
	Store interface {
		CategoryStore
		WorkItemStore
	}
)
