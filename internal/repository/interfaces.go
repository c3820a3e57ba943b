package repository

import (
	"context"

	"github.com/lalith-99/worktrack/internal/models"
)

// SnapshotRepository persists whole workspace snapshots. It is optional:
// without it workspaces live only as long as the process.
type SnapshotRepository interface {
	// Save upserts the snapshot of a workspace.
	Save(ctx context.Context, workspaceID, owner string, snap models.Snapshot) error

	// Load returns a stored workspace. Returns nil, nil if not found.
	Load(ctx context.Context, workspaceID string) (*models.WorkspaceRecord, error)
}
