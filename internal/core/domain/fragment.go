// Package domain contains the core domain model of the fragment loader: documents,
// sources, fragment definitions and configurations, and the merge rules between them.
package domain

import (
	"encoding/json"
	"slices"
)

// CoreFragmentID is the identifier of the fragment shipped by the core framework.
const CoreFragmentID = "w20-core"

// DefaultReservedIDs returns the fragment identifiers whose definition cannot be replaced by integrators.
func DefaultReservedIDs() []string {
	return []string{CoreFragmentID}
}

// ModuleDescriptor declares a module inside a fragment definition.
type ModuleDescriptor struct {
	Path         string   `json:"path"`
	Autoload     bool     `json:"autoload,omitempty"`
	ConfigSchema Document `json:"configSchema,omitempty"`
}

// Definition is the static shape of a fragment.
type Definition struct {
	ID            string                      `json:"id"`
	Description   string                      `json:"description,omitempty"`
	Modules       map[string]ModuleDescriptor `json:"modules,omitempty"`
	RequireConfig Document                    `json:"requireConfig,omitempty"`
	Bundle        Document                    `json:"bundle,omitempty"`
	Routes        map[string]Document         `json:"routes,omitempty"`

	// Extra holds top-level keys the loader does not interpret.
	Extra Document `json:"-"`
}

var definitionKeys = []string{"id", "description", "modules", "requireConfig", "bundle", "routes"}

// Configuration is the runtime configuration of a fragment.
type Configuration struct {
	Optional bool              `json:"optional,omitempty"`
	Ignore   bool              `json:"ignore,omitempty"`
	Modules  map[string]any    `json:"modules,omitempty"`
	Vars     map[string]string `json:"vars,omitempty"`
}

// Fragment is a resolved definition/configuration pair. Either side is nil when
// the corresponding slot was never set.
type Fragment struct {
	Definition    *Definition    `json:"definition,omitempty"`
	Configuration *Configuration `json:"configuration,omitempty"`
}

// ModuleNames returns the names of the declared modules in sorted order.
func (d *Definition) ModuleNames() []string {
	if d == nil {
		return nil
	}
	names := make([]string, 0, len(d.Modules))
	for name := range d.Modules {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// MarshalJSON folds Extra back into the top-level object.
func (d Definition) MarshalJSON() ([]byte, error) {
	type plain Definition
	data, err := json.Marshal(plain(d))
	if err != nil || len(d.Extra) == 0 {
		return data, err
	}
	var obj Document
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, err
	}
	for k, v := range d.Extra {
		if _, known := obj[k]; !known && !slices.Contains(definitionKeys, k) {
			obj[k] = v
		}
	}
	return json.Marshal(obj)
}

// DecodeDefinition converts a merged document into a Definition.
func DecodeDefinition(doc Document) (*Definition, error) {
	var def Definition
	if err := decodeDocument(doc, &def); err != nil {
		return nil, err
	}
	for k, v := range doc {
		if slices.Contains(definitionKeys, k) {
			continue
		}
		if def.Extra == nil {
			def.Extra = make(Document)
		}
		def.Extra[k] = v
	}
	return &def, nil
}

// DecodeConfiguration converts a merged document into a Configuration.
func DecodeConfiguration(doc Document) (*Configuration, error) {
	var conf Configuration
	if err := decodeDocument(doc, &conf); err != nil {
		return nil, err
	}
	return &conf, nil
}

func decodeDocument(doc Document, out any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return WrapCause(ErrMalformedDocument, err, "cannot decode document")
	}
	if err := json.Unmarshal(data, out); err != nil {
		return WrapCause(ErrMalformedDocument, err, "cannot decode document")
	}
	return nil
}
