// Package config provides the fragment manifest loader for loom.
package config

import (
	"fmt"
	"os"

	"go.trai.ch/loom/internal/adapters/codec"
	"go.trai.ch/loom/internal/core/domain"
	"go.trai.ch/loom/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultManifest is the manifest file name used when none is given.
const DefaultManifest = "fragments.yaml"

// FileManifestLoader implements ports.ManifestLoader using a YAML file.
type FileManifestLoader struct {
	logger ports.Logger
}

// NewLoader creates a new FileManifestLoader.
func NewLoader(logger ports.Logger) *FileManifestLoader {
	return &FileManifestLoader{logger: logger}
}

// Load reads the manifest at path.
func (l *FileManifestLoader) Load(path string) (*domain.Manifest, error) {
	m, err := Load(path)
	if err != nil {
		return nil, err
	}
	if l.logger != nil {
		l.logger.Debug("manifest loaded", "path", path, "fragments", len(m.Fragments))
	}
	return m, nil
}

// Load reads a manifest file from the given path.
func Load(path string) (*domain.Manifest, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read manifest"), "path", path)
	}
	return Parse(data)
}

// Parse converts manifest YAML into a domain.Manifest.
func Parse(data []byte) (*domain.Manifest, error) {
	var mf Manifestfile
	if err := yaml.Unmarshal(data, &mf); err != nil {
		return nil, invalid(err.Error(), "")
	}

	m := &domain.Manifest{Fragments: make([]domain.FragmentEntry, 0, len(mf.Fragments))}
	seen := make(map[string]struct{}, len(mf.Fragments))

	for i, dto := range mf.Fragments {
		if dto.ID == "" {
			return nil, zerr.With(invalid("fragment id is missing", ""), "index", i)
		}
		if _, dup := seen[dto.ID]; dup {
			return nil, invalid("fragment is listed twice", dto.ID)
		}
		seen[dto.ID] = struct{}{}

		def, err := sourceOf(&dto.Definition, dto.ID, "definition")
		if err != nil {
			return nil, err
		}
		conf, err := sourceOf(&dto.Configuration, dto.ID, "configuration")
		if err != nil {
			return nil, err
		}
		if def.IsZero() && conf.IsZero() {
			return nil, invalid("fragment needs a definition or a configuration", dto.ID)
		}

		m.Fragments = append(m.Fragments, domain.FragmentEntry{
			ID:            dto.ID,
			Definition:    def,
			Configuration: conf,
			Replace:       dto.Replace,
		})
	}

	return m, nil
}

// sourceOf maps a scalar to a remote source and a mapping to a literal one.
func sourceOf(node *yaml.Node, id, field string) (domain.Source, error) {
	switch {
	case node.Kind == 0:
		return domain.Source{}, nil
	case node.Kind == yaml.ScalarNode && node.Tag == "!!null":
		return domain.Source{}, nil
	case node.Kind == yaml.ScalarNode && node.Tag == "!!str":
		if node.Value == "" {
			return domain.Source{}, invalid(field+" path is empty", id)
		}
		return domain.Remote(node.Value), nil
	case node.Kind == yaml.MappingNode:
		var raw map[string]any
		if err := node.Decode(&raw); err != nil {
			return domain.Source{}, invalid(err.Error(), id)
		}
		doc, _ := codec.Normalize(raw).(map[string]any)
		return domain.Literal(doc), nil
	default:
		return domain.Source{}, invalid(fmt.Sprintf("%s must be a path or a mapping (line %d)", field, node.Line), id)
	}
}

func invalid(reason, id string) error {
	err := zerr.With(zerr.Wrap(domain.ErrManifestInvalid, reason), "reason", reason)
	if id != "" {
		err = zerr.With(err, "fragment", id)
	}
	return err
}
