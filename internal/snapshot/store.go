// Package snapshot owns the lifecycle of catalogue snapshots: load the raw
// files, build an immutable registry, serve it until it expires or is
// invalidated, then rebuild it wholesale.
package snapshot

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/conduit-lang/classview/runtime/catalog"
	"github.com/conduit-lang/classview/runtime/query"
)

const (
	// DefaultTTL is how long a snapshot is served before it is rebuilt.
	DefaultTTL = 24 * time.Hour

	// DefaultRetryInterval is how long a stale snapshot keeps being served
	// after a failed rebuild before the next attempt.
	DefaultRetryInterval = 30 * time.Second
)

// Snapshot is one immutable build of the catalogue.
type Snapshot struct {
	ID         string
	BuiltAt    time.Time
	Generation uint64
	Registry   *catalog.Registry
	Engine     *query.Engine
}

// LoadFunc produces the raw catalogue for a build.
type LoadFunc func(ctx context.Context) (*Raw, error)

// Options configures a Store.
type Options struct {
	Paths Paths

	// Load overrides reading Paths from disk.
	Load LoadFunc

	TTL           time.Duration
	RetryInterval time.Duration
	Strict        bool
	Query         query.Options

	Logger *zap.Logger
	Now    func() time.Time

	// OnBuild is called after every build attempt. snap is nil when the
	// build failed.
	OnBuild func(snap *Snapshot, took time.Duration, err error)
}

// Status describes the snapshot currently served.
type Status struct {
	Ready     bool          `json:"ready"`
	ID        string        `json:"id,omitempty"`
	BuiltAt   time.Time     `json:"builtAt,omitempty"`
	Age       time.Duration `json:"age,omitempty"`
	Stale     bool          `json:"stale"`
	LastError string        `json:"lastError,omitempty"`
	Stats     catalog.Stats `json:"stats"`
}

// Store publishes snapshots. Readers grab one *Snapshot and use it for the
// whole request; rebuilds never mutate a published snapshot.
type Store struct {
	opts Options
	log  *zap.Logger

	current    atomic.Pointer[Snapshot]
	generation atomic.Uint64
	failedAt   atomic.Int64

	mu      sync.Mutex
	lastErr error

	group singleflight.Group
}

// NewStore creates a store. Nothing is loaded until the first Get.
func NewStore(opts Options) *Store {
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	if opts.RetryInterval <= 0 {
		opts.RetryInterval = DefaultRetryInterval
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Load == nil {
		paths := opts.Paths
		opts.Load = func(ctx context.Context) (*Raw, error) {
			return Load(ctx, paths)
		}
	}

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &Store{opts: opts, log: log.Named("snapshot")}
}

// Get returns a fresh snapshot, building one if the current snapshot is
// missing, expired or invalidated. When a rebuild fails and an older
// snapshot exists, the older snapshot is returned and the error is logged.
func (s *Store) Get(ctx context.Context) (*Snapshot, error) {
	snap := s.current.Load()
	if snap != nil && (s.fresh(snap) || s.backingOff()) {
		return snap, nil
	}

	fresh, err := s.rebuild(ctx)
	if err != nil {
		if snap != nil {
			s.log.Warn("serving stale snapshot after failed rebuild",
				zap.String("snapshot", snap.ID),
				zap.Error(err),
			)
			return snap, nil
		}
		return nil, err
	}
	return fresh, nil
}

// Current returns the published snapshot without triggering a build.
func (s *Store) Current() *Snapshot {
	return s.current.Load()
}

// Invalidate marks the current snapshot stale; the next Get rebuilds.
func (s *Store) Invalidate() {
	s.generation.Add(1)
	s.failedAt.Store(0)
	s.log.Debug("snapshot invalidated")
}

// Refresh forces a rebuild and returns its error, if any, even when an
// older snapshot is still being served.
func (s *Store) Refresh(ctx context.Context) (*Snapshot, error) {
	s.Invalidate()
	return s.rebuild(ctx)
}

// Status reports on the published snapshot.
func (s *Store) Status() Status {
	var st Status

	s.mu.Lock()
	if s.lastErr != nil {
		st.LastError = s.lastErr.Error()
	}
	s.mu.Unlock()

	snap := s.current.Load()
	if snap == nil {
		return st
	}

	st.Ready = true
	st.ID = snap.ID
	st.BuiltAt = snap.BuiltAt
	st.Age = s.opts.Now().Sub(snap.BuiltAt)
	st.Stale = !s.fresh(snap)
	st.Stats = snap.Registry.Stats()
	return st
}

func (s *Store) fresh(snap *Snapshot) bool {
	return snap.Generation == s.generation.Load() && s.opts.Now().Sub(snap.BuiltAt) < s.opts.TTL
}

func (s *Store) backingOff() bool {
	failed := s.failedAt.Load()
	return failed != 0 && s.opts.Now().Sub(time.Unix(0, failed)) < s.opts.RetryInterval
}

// rebuild runs at most one build at a time; concurrent callers share it.
func (s *Store) rebuild(ctx context.Context) (*Snapshot, error) {
	ctx = context.WithoutCancel(ctx)
	v, err, _ := s.group.Do("build", func() (any, error) {
		if snap := s.current.Load(); snap != nil && s.fresh(snap) {
			return snap, nil
		}
		return s.build(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Snapshot), nil
}

func (s *Store) build(ctx context.Context) (*Snapshot, error) {
	gen := s.generation.Load()
	start := s.opts.Now()

	snap, err := s.load(ctx, gen, start)
	took := s.opts.Now().Sub(start)
	if s.opts.OnBuild != nil {
		s.opts.OnBuild(snap, took, err)
	}

	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()

	if err != nil {
		s.failedAt.Store(s.opts.Now().UnixNano())
		s.log.Error("snapshot build failed", zap.Duration("took", took), zap.Error(err))
		return nil, err
	}

	s.failedAt.Store(0)
	s.current.Store(snap)

	stats := snap.Registry.Stats()
	s.log.Info("snapshot built",
		zap.String("snapshot", snap.ID),
		zap.Duration("took", took),
		zap.Int("classes", stats.Classes),
		zap.Int("structs", stats.Structs),
		zap.Int("enums", stats.Enums),
		zap.Int("duplicates", stats.Duplicates),
	)
	for _, d := range snap.Registry.Duplicates() {
		s.log.Debug("duplicate full name",
			zap.String("fullName", d.FullName),
			zap.Stringer("kind", d.Kind),
			zap.String("origin", string(d.Origin)),
			zap.String("shadowedOrigin", string(d.ShadowedOrigin)),
		)
	}

	return snap, nil
}

func (s *Store) load(ctx context.Context, gen uint64, builtAt time.Time) (*Snapshot, error) {
	raw, err := s.opts.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalogue: %w", err)
	}

	reg, err := catalog.Build(catalog.BuildOptions{
		Descriptions: raw.Descriptions,
		Strict:       s.opts.Strict,
	}, raw.Sources...)
	if err != nil {
		return nil, fmt.Errorf("failed to build registry: %w", err)
	}

	return &Snapshot{
		ID:         uuid.NewString(),
		BuiltAt:    builtAt,
		Generation: gen,
		Registry:   reg,
		Engine:     query.NewEngine(reg, s.opts.Query),
	}, nil
}
