package test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/go-git/go-billy/v5/osfs"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/cache"
	"github.com/go-git/go-git/v5/storage/filesystem"
	cp "github.com/otiai10/copy"
	"github.com/stretchr/testify/require"
	"github.com/swiftpkg/swiftfmt/config"
)

// WriteHostConfig writes cfg as a swiftfmt.toml style host config file.
func WriteHostConfig(t *testing.T, path string, cfg config.Config) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create a new config file: %v", err)
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	if err = encoder.Encode(cfg); err != nil {
		t.Fatalf("failed to write to config file: %v", err)
	}
}

// TempExamples copies the example Swift package into a temp dir.
func TempExamples(t *testing.T) string {
	t.Helper()

	tempDir := t.TempDir()
	require.NoError(t, cp.Copy(examplesPath(t), tempDir), "failed to copy test data to temp dir")

	return tempDir
}

// examplesPath locates test/examples relative to the module root, so helpers
// work regardless of which package's tests invoke them.
func examplesPath(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return filepath.Join(dir, "test", "examples")
		}

		parent := filepath.Dir(dir)
		require.NotEqual(t, dir, parent, "failed to locate the module root")
		dir = parent
	}
}

// NewGitRepo initialises a git repository at root.
func NewGitRepo(t *testing.T, root string) *gogit.Repository {
	t.Helper()

	repo, err := gogit.Init(
		filesystem.NewStorage(osfs.New(filepath.Join(root, ".git")), cache.NewObjectLRUDefault()),
		osfs.New(root),
	)
	require.NoError(t, err, "failed to init git repository")

	return repo
}
