package core

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

type (
	// Category is a user-defined tag used to classify work items.
	// Color is an opaque display value (hex string) never interpreted here.
	Category struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Color string `json:"color"`
	}

	// WorkItem is a single logged unit of work. Immutable after creation;
	// removed only by identity. Timestamp is Unix milliseconds of creation.
	WorkItem struct {
		ID          string `json:"id"`
		CaseID      string `json:"caseId"`
		Description string `json:"description"`
		CategoryID  string `json:"categoryId"`
		Timestamp   int64  `json:"timestamp"`
	}
)

// Display fallbacks for work items whose category has been deleted.
// A dangling CategoryID is a tolerated state, not an error.
const (
	UnknownCategoryName  = "Unknown"
	UnknownCategoryColor = "#94a3b8"
)

var (
	ErrEmptyName        = errors.New("empty category name")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyCategory    = errors.New("empty category")
)

// IsValidation reports whether err is a user-input validation error,
// as opposed to a storage or upstream failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrEmptyName) ||
		errors.Is(err, ErrEmptyDescription) ||
		errors.Is(err, ErrEmptyCategory)
}

// NewCategory validates input and builds a category with a fresh unique id.
func NewCategory(name, color string) (Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Category{}, ErrEmptyName
	}
	return Category{
		ID:    uuid.NewString(),
		Name:  name,
		Color: strings.TrimSpace(color),
	}, nil
}

// NewWorkItem validates input and builds a work item stamped with now.
// CaseID may be empty; Description and CategoryID are required.
func NewWorkItem(caseID, description, categoryID string, now time.Time) (WorkItem, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return WorkItem{}, ErrEmptyDescription
	}
	if strings.TrimSpace(categoryID) == "" {
		return WorkItem{}, ErrEmptyCategory
	}
	return WorkItem{
		ID:          uuid.NewString(),
		CaseID:      strings.TrimSpace(caseID),
		Description: description,
		CategoryID:  categoryID,
		Timestamp:   now.UnixMilli(),
	}, nil
}

// SeedCategories returns the default category set used when no prior
// data exists in the store.
func SeedCategories() []Category {
	return []Category{
		{ID: uuid.NewString(), Name: "Development", Color: "#3b82f6"},
		{ID: uuid.NewString(), Name: "Meetings", Color: "#eab308"},
		{ID: uuid.NewString(), Name: "Support", Color: "#ef4444"},
		{ID: uuid.NewString(), Name: "Research", Color: "#10b981"},
	}
}

// CategoryByID returns the category with the given id, if present.
func CategoryByID(categories []Category, id string) (Category, bool) {
	for _, c := range categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}
