// Package schema validates module configuration against JSON Schema documents.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.trai.ch/loom/internal/core/domain"
	"go.trai.ch/zerr"
)

// Validator implements ports.SchemaValidator. Compiled schemas are cached by content hash.
type Validator struct {
	mu    sync.Mutex
	cache map[uint64]*jsonschema.Schema
}

// NewValidator creates a Validator with an empty cache.
func NewValidator() *Validator {
	return &Validator{cache: make(map[uint64]*jsonschema.Schema)}
}

// Validate checks value against schema.
func (v *Validator) Validate(schema domain.Document, value any) error {
	compiled, err := v.compile(schema)
	if err != nil {
		return err
	}

	inst, err := toInstance(value)
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrInvalidModuleConfig, ""), "reason", err.Error())
	}

	if err := compiled.Validate(inst); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrInvalidModuleConfig, ""), "reason", err.Error())
	}
	return nil
}

// CacheSize returns the number of compiled schemas held.
func (v *Validator) CacheSize() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.cache)
}

func (v *Validator) compile(schema domain.Document) (*jsonschema.Schema, error) {
	raw, err := json.Marshal(schema)
	if err != nil {
		return nil, domain.WrapCause(domain.ErrInvalidModuleConfig, err, "unencodable schema")
	}
	key := xxhash.Sum64(raw)

	v.mu.Lock()
	defer v.mu.Unlock()

	if s, ok := v.cache[key]; ok {
		return s, nil
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, domain.WrapCause(domain.ErrInvalidModuleConfig, err, "unencodable schema")
	}

	url := fmt.Sprintf("mem://schemas/%016x.json", key)
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, doc); err != nil {
		return nil, zerr.With(domain.WrapCause(domain.ErrInvalidModuleConfig, err, "invalid schema"), "schema", url)
	}
	s, err := c.Compile(url)
	if err != nil {
		return nil, zerr.With(domain.WrapCause(domain.ErrInvalidModuleConfig, err, "invalid schema"), "schema", url)
	}

	v.cache[key] = s
	return s, nil
}

// toInstance converts value into the shapes the validator understands.
func toInstance(value any) (any, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	return jsonschema.UnmarshalJSON(bytes.NewReader(raw))
}
