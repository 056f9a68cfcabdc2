package app_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/loom/internal/adapters/codec"
	"go.trai.ch/loom/internal/adapters/schema"
	"go.trai.ch/loom/internal/adapters/varstore"
	"go.trai.ch/loom/internal/app"
	"go.trai.ch/loom/internal/core/domain"
	"go.trai.ch/loom/internal/core/ports/mocks"
	"go.trai.ch/loom/internal/engine/registry"
	"go.uber.org/mock/gomock"
)

const manifestPath = "fragments.yaml"

type fixture struct {
	app     *app.App
	loader  *mocks.MockManifestLoader
	fetcher *mocks.MockFetcher
	logger  *mocks.MockLogger
	vars    *varstore.MemoryStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &fixture{
		loader:  mocks.NewMockManifestLoader(ctrl),
		fetcher: mocks.NewMockFetcher(ctrl),
		logger:  mocks.NewMockLogger(ctrl),
		vars:    varstore.NewMemoryStore(nil),
	}
	f.logger.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()
	f.logger.EXPECT().Info(gomock.Any(), gomock.Any()).AnyTimes()

	reg := registry.New(f.fetcher, f.vars, schema.NewValidator(), codec.New())
	f.app = app.New(f.loader, reg, f.vars, f.logger)
	return f
}

func (f *fixture) manifest(entries ...domain.FragmentEntry) {
	f.loader.EXPECT().Load(manifestPath).Return(&domain.Manifest{Fragments: entries}, nil)
}

func appDefinition() domain.Source {
	return domain.Literal(domain.Document{
		"modules": map[string]any{
			"main":   map[string]any{"path": "{app}/main", "autoload": true},
			"admin":  map[string]any{"path": "{app}/admin"},
			"unused": map[string]any{"path": "{app}/unused"},
		},
		"routes": map[string]any{
			"home":  map[string]any{"templateUrl": "home.html"},
			"about": map[string]any{"templateUrl": "about.html"},
		},
	})
}

func TestPlan_LoadedFragment(t *testing.T) {
	f := newFixture(t)
	f.manifest(domain.FragmentEntry{
		ID:            "app",
		Definition:    appDefinition(),
		Configuration: domain.Literal(domain.Document{"modules": map[string]any{"admin": map[string]any{"level": 2}}}),
	})

	plan, err := f.app.Plan(context.Background(), manifestPath)
	require.NoError(t, err)

	require.Len(t, plan.Fragments, 1)
	report := plan.Fragments[0]
	assert.Equal(t, "app", report.ID)
	assert.Equal(t, domain.FragmentLoaded, report.Status)
	assert.Len(t, report.Fingerprint, 16)
	assert.Equal(t, []string{"about", "home"}, report.Routes)

	assert.Equal(t, []domain.ModuleLoad{
		{Fragment: "app", Module: "admin", Path: "{app}/admin", Config: map[string]any{"level": float64(2)}},
		{Fragment: "app", Module: "main", Path: "{app}/main", Autoload: true},
	}, plan.Modules)
}

func TestPlan_ManifestOrder(t *testing.T) {
	f := newFixture(t)
	f.manifest(
		domain.FragmentEntry{ID: "zeta", Definition: domain.Literal(nil)},
		domain.FragmentEntry{ID: "alpha", Definition: domain.Literal(nil)},
		domain.FragmentEntry{ID: domain.CoreFragmentID, Configuration: domain.Literal(nil)},
	)

	plan, err := f.app.Plan(context.Background(), manifestPath)
	require.NoError(t, err)

	var ids []string
	for _, r := range plan.Fragments {
		ids = append(ids, r.ID)
		assert.Equal(t, domain.FragmentLoaded, r.Status)
	}
	assert.Equal(t, []string{"zeta", "alpha", domain.CoreFragmentID}, ids)
}

func TestPlan_IgnoredFragment(t *testing.T) {
	f := newFixture(t)
	f.manifest(domain.FragmentEntry{
		ID:            "app",
		Definition:    appDefinition(),
		Configuration: domain.Literal(domain.Document{"ignore": true}),
	})

	plan, err := f.app.Plan(context.Background(), manifestPath)
	require.NoError(t, err)

	assert.Equal(t, []domain.FragmentReport{{ID: "app", Status: domain.FragmentIgnored}}, plan.Fragments)
	assert.Empty(t, plan.Modules)
}

func TestPlan_IgnoredFragmentIsNotResolved(t *testing.T) {
	f := newFixture(t)
	f.manifest(
		domain.FragmentEntry{ID: "app", Definition: domain.Literal(nil)},
		domain.FragmentEntry{
			ID:            "old",
			Definition:    domain.Remote("gone.json"),
			Configuration: domain.Literal(domain.Document{"ignore": true}),
		},
	)
	// No fetcher expectation: fetching gone.json fails the test.

	plan, err := f.app.Plan(context.Background(), manifestPath)
	require.NoError(t, err)
	assert.Equal(t, []domain.FragmentReport{
		{ID: "app", Status: domain.FragmentLoaded, Fingerprint: plan.Fragments[0].Fingerprint},
		{ID: "old", Status: domain.FragmentIgnored},
	}, plan.Fragments)
}

func TestResolve_SkipsIgnoredFragments(t *testing.T) {
	f := newFixture(t)
	f.manifest(
		domain.FragmentEntry{ID: "app", Definition: domain.Literal(nil)},
		domain.FragmentEntry{ID: "old", Definition: domain.Remote("gone.json")},
		domain.FragmentEntry{ID: "old", Configuration: domain.Literal(domain.Document{"ignore": true})},
	)

	fragments, err := f.app.Resolve(context.Background(), manifestPath)
	require.NoError(t, err)
	assert.Len(t, fragments, 1)
	assert.Contains(t, fragments, "app")
}

func TestPlan_ReplacingConfigurationClearsIgnore(t *testing.T) {
	f := newFixture(t)
	f.manifest(
		domain.FragmentEntry{ID: "app", Definition: domain.Literal(nil), Configuration: domain.Literal(domain.Document{"ignore": true})},
		domain.FragmentEntry{ID: "app", Configuration: domain.Literal(domain.Document{}), Replace: true},
	)

	plan, err := f.app.Plan(context.Background(), manifestPath)
	require.NoError(t, err)
	require.Len(t, plan.Fragments, 1, "an id listed twice is reported once")
	assert.Equal(t, domain.FragmentLoaded, plan.Fragments[0].Status)
}

func TestPlan_OptionalFailureIsMissing(t *testing.T) {
	f := newFixture(t)
	f.manifest(domain.FragmentEntry{
		ID:            "extra",
		Definition:    domain.Remote("extra.json"),
		Configuration: domain.Literal(domain.Document{"optional": true}),
	})
	f.fetcher.EXPECT().Fetch(gomock.Any(), "extra.json", gomock.Any()).Return("", domain.ErrFetchFailed)
	f.logger.EXPECT().Warn("optional fragment is missing", gomock.Any())

	plan, err := f.app.Plan(context.Background(), manifestPath)
	require.NoError(t, err)
	assert.Equal(t, []domain.FragmentReport{{ID: "extra", Status: domain.FragmentMissing}}, plan.Fragments)
}

func TestPlan_RequiredFailureFails(t *testing.T) {
	f := newFixture(t)
	f.manifest(
		domain.FragmentEntry{ID: "ok", Definition: domain.Literal(nil)},
		domain.FragmentEntry{ID: "broken", Definition: domain.Remote("broken.json")},
	)
	f.fetcher.EXPECT().Fetch(gomock.Any(), "broken.json", gomock.Any()).Return("", domain.ErrFetchFailed)

	plan, err := f.app.Plan(context.Background(), manifestPath)
	require.Error(t, err)
	assert.Nil(t, plan)
	assert.ErrorIs(t, err, domain.ErrBootstrapFailed)
	assert.ErrorIs(t, err, domain.ErrFetchFailed)
}

func TestPlan_UndefinedFragment(t *testing.T) {
	f := newFixture(t)
	f.manifest(domain.FragmentEntry{ID: "ghost", Configuration: domain.Literal(domain.Document{})})

	_, err := f.app.Plan(context.Background(), manifestPath)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBootstrapFailed)
	assert.ErrorIs(t, err, domain.ErrUndefinedFragment)
}

func TestPlan_UndefinedOptionalFragmentIsMissing(t *testing.T) {
	f := newFixture(t)
	f.manifest(domain.FragmentEntry{ID: "ghost", Configuration: domain.Literal(domain.Document{"optional": true})})
	f.logger.EXPECT().Warn("optional fragment is missing", gomock.Any())

	plan, err := f.app.Plan(context.Background(), manifestPath)
	require.NoError(t, err)
	assert.Equal(t, domain.FragmentMissing, plan.Fragments[0].Status)
}

func TestPlan_FingerprintIsStable(t *testing.T) {
	var prints []string
	for range 2 {
		f := newFixture(t)
		f.manifest(domain.FragmentEntry{ID: "app", Definition: appDefinition()})
		plan, err := f.app.Plan(context.Background(), manifestPath)
		require.NoError(t, err)
		prints = append(prints, plan.Fragments[0].Fingerprint)
	}
	assert.Equal(t, prints[0], prints[1])

	a, err := app.Fingerprint(domain.Fragment{Definition: &domain.Definition{ID: "a"}})
	require.NoError(t, err)
	b, err := app.Fingerprint(domain.Fragment{Definition: &domain.Definition{ID: "b"}})
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestRegister_ReplaceEntry(t *testing.T) {
	f := newFixture(t)
	f.manifest(
		domain.FragmentEntry{ID: "app", Definition: domain.Literal(domain.Document{"description": "first", "i18n": []any{"en"}})},
		domain.FragmentEntry{ID: "app", Definition: domain.Literal(domain.Document{"i18n": []any{"fr"}}), Replace: true},
	)

	fragments, err := f.app.Resolve(context.Background(), manifestPath)
	require.NoError(t, err)

	def := fragments["app"].Definition
	assert.Empty(t, def.Description)
	assert.Equal(t, []any{"fr"}, def.Extra["i18n"])
}

func TestRegister_ReservedDefinitionFails(t *testing.T) {
	f := newFixture(t)
	f.manifest(domain.FragmentEntry{ID: domain.CoreFragmentID, Definition: domain.Literal(nil)})

	_, err := f.app.Register(manifestPath)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrReservedFragment)
}

func TestRegister_LoaderError(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().Load(manifestPath).Return(nil, domain.ErrManifestInvalid)

	_, err := f.app.Register(manifestPath)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrManifestInvalid)
}

func TestResolve_FailsOnAnyError(t *testing.T) {
	f := newFixture(t)
	f.manifest(domain.FragmentEntry{ID: "broken", Definition: domain.Remote("broken.json")})
	f.fetcher.EXPECT().Fetch(gomock.Any(), "broken.json", gomock.Any()).Return("", errors.New("offline"))

	_, err := f.app.Resolve(context.Background(), manifestPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "offline")
}

func TestVars(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.app.SetVar("env", "prod"))
	v, ok, err := f.app.Var("env")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "prod", v)

	_, ok, err = f.app.Var("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	all, err := f.app.Vars()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"env": "prod"}, all)

	assert.ErrorIs(t, f.app.SetVar("", "x"), domain.ErrVarStoreFailed)
}
