package repository

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"

	drafter "github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/drafter/models"
	"github.com/xianghui94/Acesian-Auto-Drafter-sub000/internal/projects/models"
)

// ErrNotFound is returned for an unknown project ID.
var ErrNotFound = errors.New("project not found")

//go:embed migrations/*.sql
var migrations embed.FS

// ============================================================
// SQLite Repository
// ============================================================

type Repository struct {
	db *sql.DB
}

func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Init applies the embedded migrations in file name order.
func (r *Repository) Init(ctx context.Context) error {
	if err := r.runMigrations(ctx); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	return nil
}

// Save stores rec under its name, replacing a project of the same name.
// rec is updated with the stored ID and timestamps.
func (r *Repository) Save(ctx context.Context, rec *models.Record) error {
	header, err := json.Marshal(rec.Header)
	if err != nil {
		return fmt.Errorf("encode header: %w", err)
	}
	items := rec.Items
	if items == nil {
		items = []drafter.Item{}
	}
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode items: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
        INSERT INTO projects (id, name, header, items, item_count)
        VALUES (?, ?, ?, ?, ?)
        ON CONFLICT(name) DO UPDATE SET
            header = excluded.header,
            items = excluded.items,
            item_count = excluded.item_count,
            updated_at = CURRENT_TIMESTAMP
    `, uuid.NewString(), rec.Name, string(header), string(itemsJSON), len(items))
	if err != nil {
		return fmt.Errorf("save project: %w", err)
	}

	stored, err := r.scanOne(r.db.QueryRowContext(ctx, selectProject+` WHERE name = ?`, rec.Name))
	if err != nil {
		return err
	}
	*rec = *stored
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*models.Record, error) {
	return r.scanOne(r.db.QueryRowContext(ctx, selectProject+` WHERE id = ?`, id))
}

// List returns the project summaries ordered by name.
func (r *Repository) List(ctx context.Context) ([]models.Summary, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, name, item_count, updated_at
        FROM projects
        ORDER BY name
    `)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	out := []models.Summary{}
	for rows.Next() {
		var s models.Summary
		if err := rows.Scan(&s.ID, &s.Name, &s.Items, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

const selectProject = `
        SELECT id, name, header, items, created_at, updated_at
        FROM projects`

func (r *Repository) scanOne(row *sql.Row) (*models.Record, error) {
	var (
		rec           models.Record
		header, items string
	)
	if err := row.Scan(&rec.ID, &rec.Name, &header, &items, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal([]byte(header), &rec.Header); err != nil {
		return nil, fmt.Errorf("decode header of %s: %w", rec.ID, err)
	}
	if err := json.Unmarshal([]byte(items), &rec.Items); err != nil {
		return nil, fmt.Errorf("decode items of %s: %w", rec.ID, err)
	}
	return &rec, nil
}

// ============================================================
// Migrations
// ============================================================

func (r *Repository) runMigrations(ctx context.Context) error {
	names, err := fs.Glob(migrations, "migrations/*.sql")
	if err != nil {
		return err
	}
	sort.Strings(names)
	for _, name := range names {
		data, err := migrations.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read migration: %w", err)
		}
		if _, err := r.db.ExecContext(ctx, string(data)); err != nil {
			return fmt.Errorf("apply migration %s: %w", filepath.Base(name), err)
		}
	}
	return nil
}

// OpenSQLite opens the database at dbPath, creating its directory.
func OpenSQLite(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}
