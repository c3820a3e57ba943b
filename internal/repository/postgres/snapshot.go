package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lalith-99/worktrack/internal/models"
)

// Querier is the subset of *pgxpool.Pool the stores need. pgxmock pools
// satisfy it too.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const schema = `
	CREATE TABLE IF NOT EXISTS workspaces (
		id         TEXT PRIMARY KEY,
		owner      TEXT NOT NULL,
		snapshot   JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`

type SnapshotStore struct {
	db Querier
}

func NewSnapshotStore(db Querier) *SnapshotStore {
	return &SnapshotStore{db: db}
}

// EnsureSchema creates the workspaces table if it is missing.
func (s *SnapshotStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create workspaces table: %w", err)
	}
	return nil
}

func (s *SnapshotStore) Save(ctx context.Context, workspaceID, owner string, snap models.Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	query := `
		INSERT INTO workspaces (id, owner, snapshot, updated_at)
		VALUES ($1, $2, $3::jsonb, now())
		ON CONFLICT (id) DO UPDATE
		SET owner = EXCLUDED.owner, snapshot = EXCLUDED.snapshot, updated_at = now()`

	if _, err := s.db.Exec(ctx, query, workspaceID, owner, raw); err != nil {
		return fmt.Errorf("upsert workspace: %w", err)
	}
	return nil
}

func (s *SnapshotStore) Load(ctx context.Context, workspaceID string) (*models.WorkspaceRecord, error) {
	query := `
		SELECT id, owner, snapshot, updated_at
		FROM workspaces
		WHERE id = $1`

	var (
		rec       models.WorkspaceRecord
		raw       []byte
		updatedAt time.Time
	)
	err := s.db.QueryRow(ctx, query, workspaceID).Scan(&rec.ID, &rec.Owner, &raw, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get workspace: %w", err)
	}
	if err := json.Unmarshal(raw, &rec.Snapshot); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	rec.UpdatedAt = updatedAt
	return &rec, nil
}
