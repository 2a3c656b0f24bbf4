package app

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andyballingall/deploy-preflight/internal/config"
	"github.com/andyballingall/deploy-preflight/internal/fs"
	"github.com/andyballingall/deploy-preflight/internal/preflight"
	"github.com/andyballingall/deploy-preflight/internal/prompt"
	"github.com/andyballingall/deploy-preflight/internal/report"
)

func TestLazyManager(t *testing.T) {
	t.Parallel()

	t.Run("panics before initialisation", func(t *testing.T) {
		t.Parallel()
		lazy := &LazyManager{}
		assert.False(t, lazy.HasInner())
		assert.Panics(t, func() { _ = lazy.Preflight(context.Background(), preflight.Request{}) })
	})

	t.Run("delegates", func(t *testing.T) {
		t.Parallel()
		m := &MockManager{}
		m.On("Defaults", context.Background(), "x.yml").Return(&config.Defaults{Region: "r"}, nil)
		m.On("Preflight", context.Background(), preflight.Request{Region: "r"}).Return(nil)

		lazy := &LazyManager{}
		lazy.SetInner(m)
		d, err := lazy.Defaults(context.Background(), "x.yml")
		require.NoError(t, err)
		require.NoError(t, lazy.Preflight(context.Background(), preflight.Request{Region: d.Region}))
		m.AssertExpectations(t)
	})
}

func TestCLIManager_Defaults(t *testing.T) {
	t.Parallel()
	logger := slog.New(slog.DiscardHandler)

	t.Run("explicit path relative to dir", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeFile(t, dir, "deploy/preflight.yml", "tagPrefix: rel\n")
		m := NewCLIManager(logger, &MockGitter{}, nil, fs.MapEnvProvider{}, dir)

		d, err := m.Defaults(context.Background(), filepath.Join("deploy", "preflight.yml"))
		require.NoError(t, err)
		assert.Equal(t, "rel", d.TagPrefix)
	})

	t.Run("explicit path missing", func(t *testing.T) {
		t.Parallel()
		m := NewCLIManager(logger, &MockGitter{}, nil, fs.MapEnvProvider{}, t.TempDir())
		_, err := m.Defaults(context.Background(), "missing.yml")
		var mce *config.MissingConfigError
		require.ErrorAs(t, err, &mce)
	})

	t.Run("env var path", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeFile(t, dir, "env.yml", "environment: qa\n")
		env := fs.MapEnvProvider{config.EnvVar: filepath.Join(dir, "env.yml")}
		m := NewCLIManager(logger, &MockGitter{}, nil, env, "")

		d, err := m.Defaults(context.Background(), "")
		require.NoError(t, err)
		assert.Equal(t, "qa", d.Environment)
	})

	t.Run("default file at repository root", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		writeFile(t, root, config.DefaultFile, "noticeFolderChanges: [migrations]\n")
		g := &MockGitter{RootFunc: func(context.Context) (string, error) { return root, nil }}
		m := NewCLIManager(logger, g, nil, fs.MapEnvProvider{}, filepath.Join(root, "sub"))

		d, err := m.Defaults(context.Background(), "")
		require.NoError(t, err)
		assert.Equal(t, []string{"migrations"}, d.NoticeFolderChanges)
	})

	t.Run("outside a repository", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeFile(t, dir, config.DefaultFile, "region: us-east-1\n")
		g := &MockGitter{RootFunc: func(context.Context) (string, error) { return "", errors.New("not a repo") }}
		m := NewCLIManager(logger, g, nil, fs.MapEnvProvider{}, dir)

		d, err := m.Defaults(context.Background(), "")
		require.NoError(t, err)
		assert.Equal(t, "us-east-1", d.Region)
	})

	t.Run("no default file", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		g := &MockGitter{RootFunc: func(context.Context) (string, error) { return root, nil }}
		m := NewCLIManager(logger, g, nil, fs.MapEnvProvider{}, root)

		d, err := m.Defaults(context.Background(), "")
		require.NoError(t, err)
		assert.Equal(t, &config.Defaults{}, d)
	})
}

func TestCLIManager_Preflight(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	console := report.NewConsole(&out, false)
	p := prompt.NewPrompter(prompt.NewLineReader(strings.NewReader("n\n")), console)
	g := &MockGitter{}
	gk := preflight.NewGatekeeper(g, p, console, nil)
	m := NewCLIManager(slog.New(slog.DiscardHandler), g, gk, fs.MapEnvProvider{}, "")

	err := m.Preflight(context.Background(), preflight.Request{Production: true})
	require.ErrorIs(t, err, prompt.ErrAborted)
	assert.Contains(t, out.String(), "i Deploying to PROD")
}
