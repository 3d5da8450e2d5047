package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"worklog/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteRepository persists the worklog collections in a local SQLite
// database. Saves keep the port's full-overwrite contract: each save
// replaces the whole collection inside one transaction.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	// Run migrations
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// LoadCategories implements store.CategoryStore. The seed categories are
// inserted by migration, so an untouched database already has them; an
// explicitly emptied collection stays empty.
func (r *SQLiteRepository) LoadCategories(ctx context.Context) ([]core.Category, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, color FROM categories ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	defer rows.Close()

	var cats []core.Category
	for rows.Next() {
		var c core.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Color); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		cats = append(cats, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	return cats, nil
}

// SaveCategories implements store.CategoryStore.
func (r *SQLiteRepository) SaveCategories(ctx context.Context, categories []core.Category) error {
	return r.overwrite(ctx, "categories", func(tx *sql.Tx) error {
		for _, c := range categories {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO categories (id, name, color) VALUES (?, ?, ?)`,
				c.ID, c.Name, c.Color); err != nil {
				return fmt.Errorf("insert category %s: %w", c.ID, err)
			}
		}
		return nil
	})
}

// LoadWorkItems implements store.WorkItemStore.
func (r *SQLiteRepository) LoadWorkItems(ctx context.Context) ([]core.WorkItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, case_id, description, category_id, timestamp_ms
		 FROM work_items ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("load work items: %w", err)
	}
	defer rows.Close()

	var items []core.WorkItem
	for rows.Next() {
		var it core.WorkItem
		if err := rows.Scan(&it.ID, &it.CaseID, &it.Description, &it.CategoryID, &it.Timestamp); err != nil {
			return nil, fmt.Errorf("scan work item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load work items: %w", err)
	}
	return items, nil
}

// SaveWorkItems implements store.WorkItemStore.
func (r *SQLiteRepository) SaveWorkItems(ctx context.Context, items []core.WorkItem) error {
	return r.overwrite(ctx, "work_items", func(tx *sql.Tx) error {
		for _, it := range items {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO work_items (id, case_id, description, category_id, timestamp_ms)
				 VALUES (?, ?, ?, ?, ?)`,
				it.ID, it.CaseID, it.Description, it.CategoryID, it.Timestamp); err != nil {
				return fmt.Errorf("insert work item %s: %w", it.ID, err)
			}
		}
		return nil
	})
}

// overwrite clears the named table and repopulates it within a single
// transaction so a failed save never leaves a half-written collection.
func (r *SQLiteRepository) overwrite(ctx context.Context, table string, insert func(*sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save %s: %w", table, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
		return fmt.Errorf("clear %s: %w", table, err)
	}
	if err := insert(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save %s: %w", table, err)
	}
	return nil
}
