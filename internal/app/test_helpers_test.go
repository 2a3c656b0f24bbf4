package app

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/andyballingall/deploy-preflight/internal/config"
	"github.com/andyballingall/deploy-preflight/internal/preflight"
	"github.com/andyballingall/deploy-preflight/internal/repo"
)

type MockManager struct {
	mock.Mock
}

func (m *MockManager) Defaults(ctx context.Context, configPath string) (*config.Defaults, error) {
	args := m.Called(ctx, configPath)
	d, _ := args.Get(0).(*config.Defaults)
	return d, args.Error(1)
}

func (m *MockManager) Preflight(ctx context.Context, req preflight.Request) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

// MockGitter is a test mock for the repo.Gitter interface.
type MockGitter struct {
	RootFunc func(ctx context.Context) (string, error)
}

func (m *MockGitter) Root(ctx context.Context) (string, error) {
	if m.RootFunc != nil {
		return m.RootFunc(ctx)
	}
	return "", nil
}

func (m *MockGitter) Status(context.Context) (repo.Status, error) {
	return repo.Status{Branch: "main", Clean: true}, nil
}

func (m *MockGitter) CreateTag(context.Context, string) error { return nil }

func (m *MockGitter) HeadDecoration(context.Context) (string, error) { return "", nil }

func (m *MockGitter) Tags(context.Context) ([]repo.Revision, error) { return nil, nil }

func (m *MockGitter) DiffStat(context.Context, repo.Revision, repo.Revision, string) (string, error) {
	return "", nil
}

// setupTestRepo creates a git repository with one commit and returns its path.
func setupTestRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	dir := t.TempDir()
	gitIn(t, dir, "init")
	gitIn(t, dir, "commit", "--allow-empty", "-m", "initial commit")
	return dir
}

func gitIn(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_NAME=Test User", "GIT_AUTHOR_EMAIL=test@example.com",
		"GIT_COMMITTER_NAME=Test User", "GIT_COMMITTER_EMAIL=test@example.com",
	)
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %v failed: %v\n%s", args, err, out)
	}
	return string(out)
}

func writeFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	p := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}
