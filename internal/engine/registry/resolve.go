package registry

import (
	"context"
	"fmt"

	"go.trai.ch/loom/internal/core/domain"
	"go.trai.ch/loom/internal/core/ports"
	"go.trai.ch/zerr"
)

// resolve turns a snapshot into a resolved fragment. The configuration is resolved
// first so its vars can feed placeholders in a remote definition.
func (r *Registry) resolve(ctx context.Context, id string, snap entry) (domain.Fragment, error) {
	ctx, span := r.tracer.Start(ctx, "fragment.resolve")
	defer span.End()
	span.SetAttribute("fragment", id)

	f, err := r.resolveFragment(ctx, id, snap)
	if err != nil {
		span.RecordError(err)
		return domain.Fragment{}, err
	}

	if r.logger != nil {
		r.logger.Debug("fragment resolved", "fragment", id, "modules", len(f.Definition.ModuleNames()))
	}
	return f, nil
}

func (r *Registry) resolveFragment(ctx context.Context, id string, snap entry) (domain.Fragment, error) {
	if snap.definition.isZero() && snap.configuration.isZero() {
		return domain.Fragment{}, zerr.With(
			zerr.Wrap(domain.ErrFragmentNotRegistered, fmt.Sprintf("fragment '%s' has no definition or configuration", id)),
			"fragment", id,
		)
	}

	var f domain.Fragment

	if !snap.configuration.isZero() {
		doc, err := r.load(ctx, id, snap.configuration, nil)
		if err != nil {
			return domain.Fragment{}, err
		}
		conf, err := domain.DecodeConfiguration(doc)
		if err != nil {
			return domain.Fragment{}, tag(err, id)
		}
		f.Configuration = conf
	}

	if !snap.definition.isZero() {
		var vars map[string]string
		if f.Configuration != nil {
			vars = f.Configuration.Vars
		}
		doc, err := r.load(ctx, id, snap.definition, vars)
		if err != nil {
			return domain.Fragment{}, err
		}
		doc["id"] = id
		def, err := domain.DecodeDefinition(doc)
		if err != nil {
			return domain.Fragment{}, tag(err, id)
		}
		f.Definition = def
	}

	if err := r.validate(id, f); err != nil {
		return domain.Fragment{}, err
	}
	return f, nil
}

// load produces the document held by a slot, fetching and substituting placeholders
// when the base is remote. A nil vars map makes placeholders fall back to the store.
func (r *Registry) load(ctx context.Context, id string, s slot, vars map[string]string) (domain.Document, error) {
	if s.base.Kind() == domain.SourceLiteral {
		return s.base.Document(), nil
	}

	path := s.base.Path()
	text, err := r.fetcher.Fetch(ctx, path, ports.FetchOptions{WithCredentials: r.withCredentials})
	if err != nil {
		return nil, tag(err, id)
	}

	text, err = r.resolver.Resolve(text, vars)
	if err != nil {
		return nil, zerr.With(tag(err, id), "path", path)
	}

	doc, err := r.decoder.Decode(path, text)
	if err != nil {
		return nil, tag(err, id)
	}
	if doc == nil {
		doc = domain.Document{}
	}
	return domain.Merge(doc, s.overlay), nil
}

// validate checks each module that declares a schema and has a configuration value.
// Modules are visited in name order and the first failure is returned.
func (r *Registry) validate(id string, f domain.Fragment) error {
	if f.Definition == nil || f.Configuration == nil || r.validator == nil {
		return nil
	}

	for _, name := range f.Definition.ModuleNames() {
		desc := f.Definition.Modules[name]
		if desc.ConfigSchema == nil {
			continue
		}
		value, ok := f.Configuration.Modules[name]
		if !ok {
			continue
		}
		if err := r.validator.Validate(desc.ConfigSchema, value); err != nil {
			msg := fmt.Sprintf("configuration of module '%s' in fragment '%s' is not valid", name, id)
			return zerr.With(zerr.With(zerr.Wrap(err, msg), "module", name), "fragment", id)
		}
	}
	return nil
}

// tag attaches the fragment id without breaking errors.Is on err.
func tag(err error, id string) error {
	return zerr.With(zerr.Wrap(err, ""), "fragment", id)
}
