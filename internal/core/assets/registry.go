package assets

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/zeusync/hogar/internal/core/observability/log"
	"github.com/zeusync/hogar/pkg/concurrent"
)

type Status uint8

const (
	StatusUnknown Status = iota
	StatusPending
	StatusLoaded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusLoaded:
		return "loaded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

type entry struct {
	status Status
	asset  Asset
	err    error
}

// Registry owns load requests and their results.
type Registry struct {
	mu       sync.RWMutex
	entries  map[string]*entry
	source   Source
	parallel int
	logger   log.Log
	done     chan struct{}
	result   error
}

func NewRegistry(source Source, parallel int, logger log.Log) *Registry {
	if logger == nil {
		logger = log.Nop()
	}
	return &Registry{
		entries:  make(map[string]*entry),
		source:   source,
		parallel: parallel,
		logger:   logger.With(log.String("component", "assets")),
	}
}

// Request starts loading names in the background and returns immediately.
// The first failure cancels loads still in flight. Names already requested
// are skipped. It may be called once; later calls return ErrAlreadyRequested.
func (r *Registry) Request(ctx context.Context, names ...string) error {
	r.mu.Lock()
	if r.done != nil {
		r.mu.Unlock()
		return ErrAlreadyRequested
	}
	r.done = make(chan struct{})
	pending := make([]string, 0, len(names))
	for _, name := range names {
		if _, ok := r.entries[name]; ok {
			continue
		}
		r.entries[name] = &entry{status: StatusPending}
		pending = append(pending, name)
	}
	r.mu.Unlock()

	go func() {
		err := concurrent.Concurrent(ctx, pending, r.parallel, r.load)
		r.mu.Lock()
		r.result = err
		r.mu.Unlock()
		close(r.done)
	}()
	return nil
}

func (r *Registry) load(ctx context.Context, name string) error {
	asset, err := r.source.Fetch(ctx, name)

	r.mu.Lock()
	e := r.entries[name]
	if err != nil {
		e.status, e.err = StatusFailed, err
	} else {
		e.status, e.asset = StatusLoaded, asset
	}
	r.mu.Unlock()

	if err != nil {
		if !errors.Is(err, context.Canceled) {
			r.logger.Error("Asset load failed", log.String("asset", name), log.Error(err))
		}
		return fmt.Errorf("asset %q: %w", name, err)
	}
	r.logger.Debug("Asset loaded", log.String("asset", name), log.Int64("size", asset.Size))
	return nil
}

// Status reports the state of one asset and, for failures, the error.
func (r *Registry) Status(name string) (Status, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[name]
	if !ok {
		return StatusUnknown, nil
	}
	return e.status, e.err
}

func (r *Registry) Asset(name string) (Asset, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[name]
	if !ok || e.status != StatusLoaded {
		return Asset{}, false
	}
	return e.asset, true
}

// Ready reports whether every named asset has loaded.
func (r *Registry) Ready(names ...string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, name := range names {
		e, ok := r.entries[name]
		if !ok || e.status != StatusLoaded {
			return false
		}
	}
	return true
}

// Progress counts settled (loaded or failed) requests against the total.
func (r *Registry) Progress() (settled, total int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, e := range r.entries {
		if e.status == StatusLoaded || e.status == StatusFailed {
			settled++
		}
	}
	return settled, len(r.entries)
}

// Failed lists assets whose load failed, sorted by name.
func (r *Registry) Failed() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []string
	for name, e := range r.entries {
		if e.status == StatusFailed {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// Wait blocks until the requested loads settle or ctx ends. It returns the
// first load error.
func (r *Registry) Wait(ctx context.Context) error {
	r.mu.RLock()
	done := r.done
	r.mu.RUnlock()
	if done == nil {
		return ErrNotRequested
	}
	select {
	case <-done:
		r.mu.RLock()
		defer r.mu.RUnlock()
		return r.result
	case <-ctx.Done():
		return ctx.Err()
	}
}
