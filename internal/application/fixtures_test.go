package application_test

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/archgen/archgen/internal/adapters/outbound/filesystem"
	"github.com/archgen/archgen/internal/adapters/outbound/history"
	"github.com/archgen/archgen/internal/adapters/outbound/render"
	"github.com/archgen/archgen/internal/application"
	"github.com/archgen/archgen/internal/domain"
	"github.com/archgen/archgen/internal/domain/metadata"
)

const projectRoot = "/work/orders"

var fixedTime = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

type fakeGit struct {
	repos map[string]bool
	dirty bool
	hash  string
}

func (g *fakeGit) IsGitRepo(path string) bool { return g.repos[path] }

func (g *fakeGit) CommitHash(string) (string, error) { return g.hash, nil }

func (g *fakeGit) IsClean(string) (bool, error) { return !g.dirty, nil }

type env struct {
	fs      afero.Fs
	store   *filesystem.Store
	history *history.FileHistory
	git     *fakeGit
	gen     *application.GenerateService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	fs := afero.NewMemMapFs()
	e := &env{
		fs:      fs,
		store:   filesystem.NewWithFs(fs),
		history: history.NewWithFs(fs),
		git:     &fakeGit{repos: map[string]bool{}},
	}
	e.gen = application.NewGenerateService(metadata.Builtin(), render.Embedded(), e.store, e.history, e.git, nil, "0.3.0").
		WithClock(func() time.Time { return fixedTime })
	return e
}

func (e *env) read(t *testing.T, rel string) string {
	t.Helper()
	data, err := e.store.Read(projectRoot, rel)
	require.NoError(t, err)
	return string(data)
}

func (e *env) exists(t *testing.T, rel string) bool {
	t.Helper()
	ok, err := e.store.Exists(projectRoot, rel)
	require.NoError(t, err)
	return ok
}

func projectConfig(t *testing.T, arch domain.ArchitectureType, mutate ...func(*domain.ProjectOptions)) domain.ProjectConfig {
	t.Helper()
	opts := domain.ProjectOptions{
		Name:             "orders",
		BasePackage:      "com.acme",
		Architecture:     string(arch),
		Framework:        "spring",
		Paradigm:         "reactive",
		GeneratorVersion: "0.3.0",
	}
	for _, m := range mutate {
		m(&opts)
	}
	cfg, err := domain.NewProjectConfig(opts)
	require.NoError(t, err)
	return cfg
}
