package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"superadmin/navigation/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// SnapshotRepository keeps the last navigation fetched per menu type and language
type SnapshotRepository interface {
	EnsureSchema(ctx context.Context) error
	SaveSnapshot(ctx context.Context, query domain.MenuQuery, items []domain.NavigationItem) error
	LoadSnapshot(ctx context.Context, query domain.MenuQuery) ([]domain.NavigationItem, error)
}

// DB is the subset of *pgxpool.Pool the repository needs
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type snapshotRepository struct {
	db DB
}

func NewSnapshotRepository(db DB) SnapshotRepository {
	return &snapshotRepository{
		db: db,
	}
}

func (r *snapshotRepository) EnsureSchema(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS menu_snapshots (
		menu_type     TEXT NOT NULL,
		language_code TEXT NOT NULL,
		items         JSONB NOT NULL,
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (menu_type, language_code)
	)`
	if _, err := r.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create menu_snapshots table: %w", err)
	}
	return nil
}

func (r *snapshotRepository) SaveSnapshot(ctx context.Context, query domain.MenuQuery, items []domain.NavigationItem) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	sql := `
	INSERT INTO menu_snapshots (menu_type, language_code, items, updated_at)
	VALUES ($1, $2, $3, now())
	ON CONFLICT (menu_type, language_code)
	DO UPDATE SET items = $3, updated_at = now()`
	_, err = r.db.Exec(ctx, sql, query.MenuType.String(), query.LanguageCode, payload)
	if err != nil {
		return fmt.Errorf("failed to save menu snapshot: %w", err)
	}

	return nil
}

// LoadSnapshot returns nil, nil when no snapshot exists
func (r *snapshotRepository) LoadSnapshot(ctx context.Context, query domain.MenuQuery) ([]domain.NavigationItem, error) {
	sql := `SELECT items FROM menu_snapshots WHERE menu_type = $1 AND language_code = $2`

	var payload []byte
	err := r.db.QueryRow(ctx, sql, query.MenuType.String(), query.LanguageCode).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load menu snapshot: %w", err)
	}

	var items []domain.NavigationItem
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, fmt.Errorf("failed to decode menu snapshot: %w", err)
	}
	return items, nil
}
