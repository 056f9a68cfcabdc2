package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/loom/internal/core/domain"
)

func TestDecodeDefinition(t *testing.T) {
	doc := domain.Document{
		"id":          "app",
		"description": "Application fragment",
		"modules": map[string]any{
			"main": map[string]any{
				"path":         "{app}/modules/main",
				"autoload":     true,
				"configSchema": map[string]any{"type": "object"},
			},
		},
		"routes": map[string]any{"home": map[string]any{"templateUrl": "home.html"}},
		"i18n":   []any{"en", "fr"},
	}

	def, err := domain.DecodeDefinition(doc)
	require.NoError(t, err)

	assert.Equal(t, "app", def.ID)
	assert.Equal(t, "Application fragment", def.Description)
	require.Contains(t, def.Modules, "main")
	assert.Equal(t, "{app}/modules/main", def.Modules["main"].Path)
	assert.True(t, def.Modules["main"].Autoload)
	assert.Equal(t, "object", def.Modules["main"].ConfigSchema["type"])
	assert.Equal(t, "home.html", def.Routes["home"]["templateUrl"])
	assert.Equal(t, domain.Document{"i18n": []any{"en", "fr"}}, def.Extra)
}

func TestDefinition_MarshalJSON(t *testing.T) {
	def := domain.Definition{
		ID:      "x",
		Modules: map[string]domain.ModuleDescriptor{"m": {Path: "/p"}},
		Extra:   domain.Document{"styles": "x.css"},
	}

	data, err := json.Marshal(def)
	require.NoError(t, err)

	assert.JSONEq(t, `{"id":"x","modules":{"m":{"path":"/p"}},"styles":"x.css"}`, string(data))
}

func TestDecodeConfiguration(t *testing.T) {
	conf, err := domain.DecodeConfiguration(domain.Document{
		"optional": true,
		"modules":  map[string]any{"m": map[string]any{"k": "v"}},
		"vars":     map[string]any{"env": "prod"},
	})
	require.NoError(t, err)

	assert.True(t, conf.Optional)
	assert.False(t, conf.Ignore)
	assert.Equal(t, map[string]any{"k": "v"}, conf.Modules["m"])
	assert.Equal(t, "prod", conf.Vars["env"])
}

func TestDecodeConfiguration_RejectsWrongShape(t *testing.T) {
	_, err := domain.DecodeConfiguration(domain.Document{"vars": "not-an-object"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMalformedDocument)
}

func TestDefinition_ModuleNamesSorted(t *testing.T) {
	def := &domain.Definition{Modules: map[string]domain.ModuleDescriptor{
		"zeta": {}, "alpha": {}, "mid": {},
	}}
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, def.ModuleNames())

	var nilDef *domain.Definition
	assert.Nil(t, nilDef.ModuleNames())
}

func TestSource(t *testing.T) {
	var empty domain.Source
	assert.True(t, empty.IsZero())

	lit := domain.Literal(nil)
	assert.Equal(t, domain.SourceLiteral, lit.Kind())
	assert.NotNil(t, lit.Document())

	remote := domain.Remote("fragments/app.json")
	assert.Equal(t, domain.SourceRemote, remote.Kind())
	assert.Equal(t, "fragments/app.json", remote.Path())
	assert.Nil(t, remote.Document())

	orig := domain.Literal(domain.Document{"a": map[string]any{"b": 1}})
	cp := orig.Clone()
	cp.Document()["a"].(map[string]any)["b"] = 2
	assert.Equal(t, 1, orig.Document()["a"].(map[string]any)["b"])
}
