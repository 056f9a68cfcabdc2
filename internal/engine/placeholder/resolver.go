// Package placeholder substitutes ${name} and ${name:default} tokens in raw configuration text.
package placeholder

import (
	"fmt"
	"regexp"
	"sync"

	"go.trai.ch/loom/internal/core/domain"
	"go.trai.ch/loom/internal/core/ports"
	"go.trai.ch/zerr"
)

// tokenPattern matches ${name} and ${name:default}. Group 2 is the ":default" part so
// an explicit empty default (${name:}) can be told apart from a missing one.
var tokenPattern = regexp.MustCompile(`\$\{([^}:]+)(:([^}]*))?\}`)

// Resolver replaces placeholders using explicit values or a persistent variable store.
//
// Store lookups and the persisting of defaults happen under one lock, so concurrent
// resolutions agree on the first default stored for a variable.
type Resolver struct {
	mu    sync.Mutex
	store ports.VarStore
}

// NewResolver creates a Resolver backed by store.
func NewResolver(store ports.VarStore) *Resolver {
	return &Resolver{store: store}
}

// Resolve replaces every placeholder in text in a single pass.
//
// With a non-nil explicit map each token takes its explicit value, then its inline
// default. With a nil map the store is consulted and a default that is used is
// persisted under the variable name. A token with no value at all fails with
// domain.ErrUnresolvedPlaceholder; the first failure wins.
func (r *Resolver) Resolve(text string, explicit map[string]string) (string, error) {
	var firstErr error
	out := tokenPattern.ReplaceAllStringFunc(text, func(token string) string {
		if firstErr != nil {
			return token
		}
		m := tokenPattern.FindStringSubmatch(token)
		name := m[1]
		hasDefault := m[2] != ""
		def := m[3]

		value, err := r.lookup(name, def, hasDefault, explicit)
		if err != nil {
			firstErr = err
			return token
		}
		return value
	})
	if firstErr != nil {
		return "", firstErr
	}
	return out, nil
}

func (r *Resolver) lookup(name, def string, hasDefault bool, explicit map[string]string) (string, error) {
	if explicit != nil {
		if v, ok := explicit[name]; ok {
			return v, nil
		}
		if hasDefault {
			return def, nil
		}
		return "", unresolved(name)
	}

	if r.store == nil {
		if hasDefault {
			return def, nil
		}
		return "", unresolved(name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok, err := r.store.Get(name)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, ""), "variable", name)
	}
	if ok {
		return v, nil
	}
	if !hasDefault {
		return "", unresolved(name)
	}
	if err := r.store.Put(name, def); err != nil {
		return "", zerr.With(zerr.Wrap(err, ""), "variable", name)
	}
	return def, nil
}

func unresolved(name string) error {
	return zerr.With(zerr.Wrap(domain.ErrUnresolvedPlaceholder, fmt.Sprintf("variable '%s' cannot be resolved", name)), "variable", name)
}
