package app

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/andyballingall/deploy-preflight/internal/config"
	"github.com/andyballingall/deploy-preflight/internal/fs"
	"github.com/andyballingall/deploy-preflight/internal/preflight"
	"github.com/andyballingall/deploy-preflight/internal/repo"
)

// Manager defines the operations behind the preflight command.
type Manager interface {
	// Defaults loads the repository's defaults file. An empty configPath
	// means PREFLIGHT_CONFIG, else .preflight.yml at the repository root.
	Defaults(ctx context.Context, configPath string) (*config.Defaults, error)
	Preflight(ctx context.Context, req preflight.Request) error
}

// Ensure the interface is satisfied.
var _ Manager = (*LazyManager)(nil)

// LazyManager acts as a placeholder for a real Manager implementation, allowing
// for deferred initialization of dependencies.
type LazyManager struct {
	inner Manager
}

func (l *LazyManager) SetInner(m Manager) {
	l.inner = m
}

// HasInner returns true if the inner manager has been set.
// This is used by PersistentPreRunE to skip initialization if already configured (e.g., in tests).
func (l *LazyManager) HasInner() bool {
	return l.inner != nil
}

func (l *LazyManager) check() Manager {
	if l.inner == nil {
		panic("LazyManager accessed before initialization; check command wiring.")
	}
	return l.inner
}

func (l *LazyManager) Defaults(ctx context.Context, configPath string) (*config.Defaults, error) {
	return l.check().Defaults(ctx, configPath)
}

func (l *LazyManager) Preflight(ctx context.Context, req preflight.Request) error {
	return l.check().Preflight(ctx, req)
}

// Ensure the interface is satisfied.
var _ Manager = (*CLIManager)(nil)

// CLIManager is the concrete implementation of the Manager interface.
type CLIManager struct {
	logger     *slog.Logger
	gitter     repo.Gitter
	gatekeeper *preflight.Gatekeeper
	env        fs.EnvProvider
	dir        string
}

func NewCLIManager(
	l *slog.Logger,
	g repo.Gitter,
	gk *preflight.Gatekeeper,
	env fs.EnvProvider,
	dir string,
) *CLIManager {
	return &CLIManager{
		logger:     l,
		gitter:     g,
		gatekeeper: gk,
		env:        env,
		dir:        dir,
	}
}

func (m *CLIManager) Defaults(ctx context.Context, configPath string) (*config.Defaults, error) {
	if configPath == "" {
		configPath = m.env.Get(config.EnvVar)
	}
	if configPath != "" {
		path := fs.ResolveFrom(m.dir, configPath)
		m.logger.Debug("loading config", "path", path)
		return config.Load(path, true)
	}

	// Outside a repository the confirmation prompt still runs before git
	// status reports the real problem, so fall back to the given directory.
	root, err := m.gitter.Root(ctx)
	if err != nil {
		m.logger.Debug("repository root not found", "error", err)
		root = m.dir
	}
	path := filepath.Join(root, config.DefaultFile)
	m.logger.Debug("loading config", "path", path)
	return config.Load(path, false)
}

func (m *CLIManager) Preflight(ctx context.Context, req preflight.Request) error {
	return m.gatekeeper.Run(ctx, req)
}
