// Package registry holds fragment registrations and resolves them into definition and
// configuration pairs.
//
// Registrations are synchronous and in-memory. Resolution snapshots the registered
// slots at call time, so later mutations never leak into a resolution in flight.
package registry

import (
	"context"
	"slices"
	"sync"

	"go.trai.ch/loom/internal/adapters/telemetry"
	"go.trai.ch/loom/internal/core/domain"
	"go.trai.ch/loom/internal/core/ports"
	"go.trai.ch/loom/internal/engine/placeholder"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

// Registry stores fragment registrations. The zero value is not usable; call New.
type Registry struct {
	fetcher   ports.Fetcher
	resolver  *placeholder.Resolver
	validator ports.SchemaValidator
	decoder   ports.DocumentDecoder
	logger    ports.Logger
	tracer    ports.Tracer

	reserved        map[string]struct{}
	withCredentials bool

	mu      sync.Mutex
	entries map[string]*entry
}

// Option configures a Registry.
type Option func(*Registry)

// WithReserved replaces the set of fragment ids whose definition cannot be set.
func WithReserved(ids ...string) Option {
	return func(r *Registry) {
		r.reserved = make(map[string]struct{}, len(ids))
		for _, id := range ids {
			r.reserved[id] = struct{}{}
		}
	}
}

// WithCredentials makes remote fetches carry stored cookies.
func WithCredentials(enabled bool) Option {
	return func(r *Registry) {
		r.withCredentials = enabled
	}
}

// WithLogger reports resolutions to logger.
func WithLogger(logger ports.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// WithTracer records a span per fragment resolution.
func WithTracer(tracer ports.Tracer) Option {
	return func(r *Registry) {
		if tracer != nil {
			r.tracer = tracer
		}
	}
}

// New creates an empty Registry.
func New(
	fetcher ports.Fetcher,
	vars ports.VarStore,
	validator ports.SchemaValidator,
	decoder ports.DocumentDecoder,
	opts ...Option,
) *Registry {
	r := &Registry{
		fetcher:   fetcher,
		resolver:  placeholder.NewResolver(vars),
		validator: validator,
		decoder:   decoder,
		tracer:    telemetry.NewNoOpTracer(),
		entries:   make(map[string]*entry),
	}
	WithReserved(domain.DefaultReservedIDs()...)(r)
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// IsReserved reports whether id's definition is owned by the core framework.
func (r *Registry) IsReserved(id string) bool {
	_, ok := r.reserved[id]
	return ok
}

// IDs returns every fragment id touched so far, sorted.
func (r *Registry) IDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]string, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Clear drops every registration.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = make(map[string]*entry)
}

// snapshotAll copies every entry with at least one slot set, under the lock. Ids that
// were only touched through Fragment are left out of batches.
func (r *Registry) snapshotAll() map[string]entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	snaps := make(map[string]entry, len(r.entries))
	for id, e := range r.entries {
		if e.definition.isZero() && e.configuration.isZero() {
			continue
		}
		snaps[id] = e.clone()
	}
	return snaps
}

// GetFragmentsAsync resolves every registered fragment in parallel. The first failure
// cancels the others and fails the whole batch.
func (r *Registry) GetFragmentsAsync(ctx context.Context) (map[string]domain.Fragment, error) {
	snaps := r.snapshotAll()
	out := make(map[string]domain.Fragment, len(snaps))
	var mu sync.Mutex

	g, groupCtx := errgroup.WithContext(ctx)
	for id, snap := range snaps {
		g.Go(func() error {
			f, err := r.resolve(groupCtx, id, snap)
			if err != nil {
				return err
			}
			mu.Lock()
			out[id] = f
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Result is the independent outcome of one fragment in SettleFragments.
type Result struct {
	Fragment domain.Fragment
	Err      error
}

// SettleFragments resolves every registered fragment in parallel and reports each outcome
// separately. The returned error combines all failures in id order and is nil when
// every fragment resolved.
func (r *Registry) SettleFragments(ctx context.Context) (map[string]Result, error) {
	snaps := r.snapshotAll()
	out := make(map[string]Result, len(snaps))
	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)

	for id, snap := range snaps {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f, err := r.resolve(ctx, id, snap)
			mu.Lock()
			out[id] = Result{Fragment: f, Err: err}
			mu.Unlock()
		}()
	}
	wg.Wait()

	ids := make([]string, 0, len(out))
	for id := range out {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	var errs error
	for _, id := range ids {
		errs = multierr.Append(errs, out[id].Err)
	}
	return out, errs
}
