package registry

import (
	"context"
	"fmt"

	"go.trai.ch/loom/internal/core/domain"
	"go.trai.ch/zerr"
)

// MergeOption tunes Definition and Enable.
type MergeOption func(*mergeConfig)

type mergeConfig struct {
	merge bool
}

// Replace makes the new document replace the slot instead of merging into it.
func Replace() MergeOption {
	return func(c *mergeConfig) {
		c.merge = false
	}
}

// Merge selects merging explicitly when enabled is true and replacement otherwise.
func Merge(enabled bool) MergeOption {
	return func(c *mergeConfig) {
		c.merge = enabled
	}
}

func mergeEnabled(opts []MergeOption) bool {
	cfg := mergeConfig{merge: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg.merge
}

// Handle is a chainable reference to one fragment of a Registry.
//
// The first error in a chain is sticky: later calls on the chain do nothing and Err
// keeps returning it, including after Fragment switches to another id.
type Handle struct {
	r   *Registry
	id  string
	err error
}

// Fragment returns a handle bound to id, creating an empty entry on first use.
func (r *Registry) Fragment(id string) Handle {
	if id == "" {
		return Handle{r: r, err: domain.ErrEmptyFragmentID}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[id]; !ok {
		r.entries[id] = &entry{}
	}
	return Handle{r: r, id: id}
}

// ID returns the fragment id the handle is bound to.
func (h Handle) ID() string {
	return h.id
}

// Err returns the first error recorded on the chain.
func (h Handle) Err() error {
	return h.err
}

// Fragment switches the chain to another id. A pending chain error is carried over.
func (h Handle) Fragment(id string) Handle {
	next := h.r.Fragment(id)
	if h.err != nil {
		next.err = h.err
	}
	return next
}

// Definition sets the definition slot. Literal documents merge into the slot unless
// Replace is given, and always carry the fragment id. Remote paths are stored verbatim.
func (h Handle) Definition(src domain.Source, opts ...MergeOption) Handle {
	if h.err != nil {
		return h
	}
	if h.r.IsReserved(h.id) {
		h.err = zerr.With(zerr.Wrap(domain.ErrReservedFragment, fmt.Sprintf("fragment '%s' is a reserved identifier", h.id)), "fragment", h.id)
		return h
	}
	if src.IsZero() {
		return h
	}

	h.r.mu.Lock()
	defer h.r.mu.Unlock()
	e := h.r.entry(h.id)
	e.definition.set(src, mergeEnabled(opts))
	e.definition.setID(h.id)
	return h
}

// Enable sets the configuration slot with the same merge rules as Definition.
func (h Handle) Enable(src domain.Source, opts ...MergeOption) Handle {
	if h.err != nil {
		return h
	}
	if src.IsZero() {
		return h
	}

	h.r.mu.Lock()
	defer h.r.mu.Unlock()
	h.r.entry(h.id).configuration.set(src, mergeEnabled(opts))
	return h
}

// Get resolves the fragment from the slots as they are now.
func (h Handle) Get(ctx context.Context) (domain.Fragment, error) {
	if h.err != nil {
		return domain.Fragment{}, h.err
	}

	var snap entry
	h.r.mu.Lock()
	if e, ok := h.r.entries[h.id]; ok {
		snap = e.clone()
	}
	h.r.mu.Unlock()

	return h.r.resolve(ctx, h.id, snap)
}

// entry returns the entry for id, recreating it if Clear ran since the handle was made.
// The caller must hold r.mu.
func (r *Registry) entry(id string) *entry {
	e, ok := r.entries[id]
	if !ok {
		e = &entry{}
		r.entries[id] = e
	}
	return e
}
