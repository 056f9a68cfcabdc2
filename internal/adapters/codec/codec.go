// Package codec decodes fetched fragment documents. The format is chosen by file extension.
package codec

import (
	"encoding/json"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"go.trai.ch/loom/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Format identifies a document syntax.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Decoder implements ports.DocumentDecoder for JSON, YAML and TOML.
type Decoder struct{}

// New creates a Decoder.
func New() *Decoder {
	return &Decoder{}
}

// FormatOf picks the format for location from its extension, ignoring any query or fragment.
func FormatOf(location string) Format {
	p := location
	if u, err := url.Parse(location); err == nil && u.Path != "" {
		p = u.Path
	}
	switch strings.ToLower(path.Ext(p)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatJSON
	}
}

// Decode parses text into a document. The top level must be an object.
func (d *Decoder) Decode(location, text string) (domain.Document, error) {
	format := FormatOf(location)

	var (
		raw any
		err error
	)
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal([]byte(text), &raw)
	case FormatTOML:
		var m map[string]any
		err = toml.Unmarshal([]byte(text), &m)
		raw = m
	default:
		err = json.Unmarshal([]byte(text), &raw)
	}
	if err != nil {
		return nil, malformed(err, location, format)
	}

	if raw == nil && format != FormatJSON {
		return domain.Document{}, nil
	}

	doc, ok := Normalize(raw).(map[string]any)
	if !ok {
		return nil, malformed(fmt.Errorf("top-level value is %T, not an object", raw), location, format)
	}
	return doc, nil
}

// Normalize converts decoder output into JSON-compatible values: string-keyed maps,
// []any slices and RFC 3339 timestamps.
func Normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = Normalize(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = Normalize(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = Normalize(val)
		}
		return out
	case time.Time:
		return t.Format(time.RFC3339Nano)
	case toml.LocalDate, toml.LocalTime, toml.LocalDateTime:
		return fmt.Sprint(t)
	default:
		return v
	}
}

func malformed(err error, location string, format Format) error {
	return zerr.With(zerr.With(domain.WrapCause(domain.ErrMalformedDocument, err, "malformed document"), "path", location), "format", string(format))
}
