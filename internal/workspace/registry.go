package workspace

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lalith-99/worktrack/internal/models"
	"github.com/lalith-99/worktrack/internal/repository"
	"go.uber.org/zap"
)

const dispatchTimeout = 5 * time.Second

// Publisher fans change events out to listeners.
type Publisher interface {
	Publish(ctx context.Context, ev models.Event) error
}

// RegistryConfig wires a Registry. Repo and Publisher are optional.
type RegistryConfig struct {
	Options   Options
	SeedDemo  bool
	Repo      repository.SnapshotRepository
	Publisher Publisher
	Logger    *zap.Logger
}

// Registry owns every live workspace, keyed by id. One workspace exists per
// session; the registry is the only place they are created.
type Registry struct {
	mu         sync.RWMutex
	workspaces map[string]*entry

	opts      Options
	seedDemo  bool
	repo      repository.SnapshotRepository
	publisher Publisher
	logger    *zap.Logger
	now       func() time.Time
}

type entry struct {
	ws     *Workspace
	saveMu sync.Mutex
}

func NewRegistry(cfg RegistryConfig) *Registry {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		workspaces: make(map[string]*entry),
		opts:       cfg.Options,
		seedDemo:   cfg.SeedDemo,
		repo:       cfg.Repo,
		publisher:  cfg.Publisher,
		logger:     logger,
		now:        time.Now,
	}
}

// Create starts a new workspace for owner, seeded with demo data when
// configured.
func (r *Registry) Create(ctx context.Context, owner string) (*Workspace, error) {
	e := r.newEntry(uuid.NewString(), owner)

	r.mu.Lock()
	r.workspaces[e.ws.ID] = e
	r.mu.Unlock()

	if r.seedDemo {
		e.ws.Restore(DemoSnapshot(r.now()))
	} else if r.repo != nil {
		if err := r.save(ctx, e); err != nil {
			return nil, err
		}
	}

	r.logger.Info("workspace created",
		zap.String("workspace_id", e.ws.ID),
		zap.String("owner", owner),
		zap.Bool("seeded", r.seedDemo),
	)
	return e.ws, nil
}

// Get returns a live workspace, loading it from the repository if it is not
// in memory. Returns nil, nil if the workspace is unknown.
func (r *Registry) Get(ctx context.Context, id string) (*Workspace, error) {
	r.mu.RLock()
	e, ok := r.workspaces[id]
	r.mu.RUnlock()
	if ok {
		return e.ws, nil
	}
	if r.repo == nil {
		return nil, nil
	}

	rec, err := r.repo.Load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load workspace: %w", err)
	}
	if rec == nil {
		return nil, nil
	}

	loaded := r.newEntry(rec.ID, rec.Owner)
	loaded.ws.restore(rec.Snapshot)

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.workspaces[id]; ok {
		return existing.ws, nil
	}
	r.workspaces[id] = loaded
	r.logger.Info("workspace resumed", zap.String("workspace_id", id))
	return loaded.ws, nil
}

func (r *Registry) newEntry(id, owner string) *entry {
	e := &entry{}
	e.ws = New(id, owner, r.opts, func(ev models.Event) { r.dispatch(e, ev) })
	return e
}

// dispatch runs after every mutation: publish the event, then persist the
// workspace. Failures are logged; the in-memory change stands.
func (r *Registry) dispatch(e *entry, ev models.Event) {
	ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
	defer cancel()

	if r.publisher != nil {
		if err := r.publisher.Publish(ctx, ev); err != nil {
			r.logger.Warn("failed to publish event",
				zap.String("workspace_id", ev.WorkspaceID),
				zap.String("resource", string(ev.Resource)),
				zap.Error(err),
			)
		}
	}
	if r.repo != nil {
		if err := r.save(ctx, e); err != nil {
			r.logger.Error("failed to save workspace",
				zap.String("workspace_id", ev.WorkspaceID),
				zap.Error(err),
			)
		}
	}
}

// save takes the snapshot under the entry lock, so saves land in order.
func (r *Registry) save(ctx context.Context, e *entry) error {
	e.saveMu.Lock()
	defer e.saveMu.Unlock()

	if err := r.repo.Save(ctx, e.ws.ID, e.ws.Owner, e.ws.Snapshot()); err != nil {
		return fmt.Errorf("save workspace: %w", err)
	}
	return nil
}
