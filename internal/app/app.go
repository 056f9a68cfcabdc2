// Package app implements the application layer for loom: it registers the fragments
// listed in a manifest and turns the resolved fragments into a module load plan.
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/loom/internal/core/domain"
	"go.trai.ch/loom/internal/core/ports"
	"go.trai.ch/loom/internal/engine/registry"
	"go.trai.ch/zerr"
	"go.uber.org/multierr"
)

// App represents the main application logic.
type App struct {
	loader   ports.ManifestLoader
	registry *registry.Registry
	vars     ports.VarStore
	logger   ports.Logger
}

// New creates a new App instance.
func New(loader ports.ManifestLoader, reg *registry.Registry, vars ports.VarStore, log ports.Logger) *App {
	return &App{
		loader:   loader,
		registry: reg,
		vars:     vars,
		logger:   log,
	}
}

// Register loads the manifest at path and registers every entry, in order. Fragments
// whose inline configuration sets ignore are not registered at all.
func (a *App) Register(path string) (*domain.Manifest, error) {
	m, err := a.loader.Load(path)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load manifest")
	}

	for _, entry := range m.Fragments {
		if inlineFlag(m, entry.ID, "ignore") {
			continue
		}

		var opts []registry.MergeOption
		if entry.Replace {
			opts = append(opts, registry.Replace())
		}

		h := a.registry.Fragment(entry.ID)
		if !entry.Definition.IsZero() {
			h = h.Definition(entry.Definition, opts...)
		}
		if !entry.Configuration.IsZero() {
			h = h.Enable(entry.Configuration, opts...)
		}
		if err := h.Err(); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// Resolve registers the manifest and resolves every fragment. Any failure fails the call.
func (a *App) Resolve(ctx context.Context, path string) (map[string]domain.Fragment, error) {
	if _, err := a.Register(path); err != nil {
		return nil, err
	}

	fragments, err := a.registry.GetFragmentsAsync(ctx)
	if err != nil {
		return nil, err
	}
	a.logger.Info("fragments resolved", "count", len(fragments))
	return fragments, nil
}

// Plan registers the manifest, resolves every fragment and builds the load plan.
// Ignored fragments are skipped and optional fragments that fail are reported missing.
func (a *App) Plan(ctx context.Context, path string) (*domain.LoadPlan, error) {
	m, err := a.Register(path)
	if err != nil {
		return nil, err
	}

	results, _ := a.registry.SettleFragments(ctx)
	return a.buildPlan(m, results)
}

func (a *App) buildPlan(m *domain.Manifest, results map[string]registry.Result) (*domain.LoadPlan, error) {
	plan := &domain.LoadPlan{}
	var errs error

	for _, id := range uniqueIDs(m) {
		if inlineFlag(m, id, "ignore") {
			plan.Fragments = append(plan.Fragments, domain.FragmentReport{ID: id, Status: domain.FragmentIgnored})
			continue
		}

		res := results[id]
		if res.Err != nil {
			if inlineFlag(m, id, "optional") {
				a.logger.Warn("optional fragment is missing", "fragment", id, "error", res.Err.Error())
				plan.Fragments = append(plan.Fragments, domain.FragmentReport{ID: id, Status: domain.FragmentMissing})
				continue
			}
			errs = multierr.Append(errs, res.Err)
			continue
		}

		f := res.Fragment
		if f.Configuration != nil && f.Configuration.Ignore {
			plan.Fragments = append(plan.Fragments, domain.FragmentReport{ID: id, Status: domain.FragmentIgnored})
			continue
		}

		if f.Definition == nil && !a.registry.IsReserved(id) {
			err := zerr.With(zerr.Wrap(domain.ErrUndefinedFragment, fmt.Sprintf("fragment '%s' is configured but never defined", id)), "fragment", id)
			if f.Configuration != nil && f.Configuration.Optional {
				a.logger.Warn("optional fragment is missing", "fragment", id, "error", err.Error())
				plan.Fragments = append(plan.Fragments, domain.FragmentReport{ID: id, Status: domain.FragmentMissing})
				continue
			}
			errs = multierr.Append(errs, err)
			continue
		}

		fingerprint, err := Fingerprint(f)
		if err != nil {
			errs = multierr.Append(errs, zerr.With(err, "fragment", id))
			continue
		}

		report := domain.FragmentReport{ID: id, Status: domain.FragmentLoaded, Fingerprint: fingerprint}
		if f.Definition != nil {
			report.Routes = slices.Sorted(maps.Keys(f.Definition.Routes))
		}
		plan.Fragments = append(plan.Fragments, report)
		plan.Modules = append(plan.Modules, moduleLoads(id, f)...)
	}

	if errs != nil {
		return nil, domain.WrapCause(domain.ErrBootstrapFailed, errs, "bootstrap failed")
	}

	a.logger.Info("load plan ready", "fragments", len(plan.Fragments), "modules", len(plan.Modules))
	return plan, nil
}

// uniqueIDs returns the manifest ids in order of first appearance.
func uniqueIDs(m *domain.Manifest) []string {
	seen := make(map[string]struct{}, len(m.Fragments))
	var ids []string
	for _, id := range m.IDs() {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

// moduleLoads lists the modules to activate: autoloaded ones and configured ones.
func moduleLoads(id string, f domain.Fragment) []domain.ModuleLoad {
	var loads []domain.ModuleLoad
	for _, name := range f.Definition.ModuleNames() {
		desc := f.Definition.Modules[name]

		var (
			conf       any
			configured bool
		)
		if f.Configuration != nil {
			conf, configured = f.Configuration.Modules[name]
		}
		if !desc.Autoload && !configured {
			continue
		}

		loads = append(loads, domain.ModuleLoad{
			Fragment: id,
			Module:   name,
			Path:     desc.Path,
			Autoload: desc.Autoload,
			Config:   conf,
		})
	}
	return loads
}

// inlineFlag folds a boolean configuration flag over the inline configurations of id,
// following the slot rules: a replacing entry resets the flag, a merging entry only
// changes it when it sets the key, and a remote configuration makes it unknown (false).
// The result is available without resolving the fragment.
func inlineFlag(m *domain.Manifest, id, key string) bool {
	flag := false
	for _, entry := range m.Fragments {
		if entry.ID != id {
			continue
		}
		switch entry.Configuration.Kind() {
		case domain.SourceLiteral:
			v, ok := entry.Configuration.Document()[key].(bool)
			if ok || entry.Replace {
				flag = v
			}
		case domain.SourceRemote:
			flag = false
		}
	}
	return flag
}

// Fingerprint returns a stable content hash of a resolved fragment.
func Fingerprint(f domain.Fragment) (string, error) {
	data, err := json.Marshal(f)
	if err != nil {
		return "", zerr.Wrap(err, "failed to encode fragment")
	}
	return fmt.Sprintf("%016x", xxhash.Sum64(data)), nil
}
