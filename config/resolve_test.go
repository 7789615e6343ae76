package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/require"
	"github.com/swiftpkg/swiftfmt/build"
	"github.com/swiftpkg/swiftfmt/config"
	"github.com/swiftpkg/swiftfmt/internal/test"
	"github.com/swiftpkg/swiftfmt/process"
)

// resolverFixture wires a Resolver against a scripted fetcher and isolated
// working and XDG config directories, so each precedence source can be toggled
// independently.
type resolverFixture struct {
	workingDir string
	xdgDir     string
	runner     *test.FakeRunner
	resolver   *config.Resolver
}

func newResolverFixture(t *testing.T) *resolverFixture {
	t.Helper()

	workingDir := t.TempDir()
	xdgDir := t.TempDir()

	// registered before t.Setenv so the reload runs after the env is restored
	t.Cleanup(xdg.Reload)

	t.Setenv("XDG_CONFIG_HOME", xdgDir)
	xdg.Reload()

	runner := test.NewFakeRunner()
	runner.Handler = func(_ string, args []string) (string, error) {
		if len(args) == 1 {
			return "SWIFTFORMAT_CONFIG=/templates/" + args[0] + "\n", nil
		}

		return "  SWIFTFORMAT_CONFIG=/templates/default  \n", nil
	}

	return &resolverFixture{
		workingDir: workingDir,
		xdgDir:     xdgDir,
		runner:     runner,
		resolver:   config.NewResolver(workingDir, "swiftformat-config", runner),
	}
}

func (f *resolverFixture) writeWorkingDirDotFile(t *testing.T) string {
	t.Helper()

	path := filepath.Join(f.workingDir, config.DotFileName)
	require.NoError(t, os.WriteFile(path, []byte("--indent 4\n"), 0o644))

	return path
}

func (f *resolverFixture) writeUserDotFile(t *testing.T) string {
	t.Helper()

	dir := filepath.Join(f.xdgDir, build.Name)
	require.NoError(t, os.MkdirAll(dir, 0o755))

	path := filepath.Join(dir, config.DotFileName)
	require.NoError(t, os.WriteFile(path, []byte("--indent 4\n"), 0o644))

	return path
}

func TestResolvePrecedence(t *testing.T) {
	as := require.New(t)

	ctx := context.Background()

	// all five sources present: the explicit path wins
	f := newResolverFixture(t)
	local := f.writeWorkingDirDotFile(t)
	user := f.writeUserDotFile(t)

	path, err := f.resolver.Resolve(ctx, "/explicit/.swiftformat", "corp")
	as.NoError(err)
	as.Equal("/explicit/.swiftformat", path)
	as.Empty(f.runner.Calls, "no fetcher call expected for an explicit path")

	// without the explicit path the template name wins
	path, err = f.resolver.Resolve(ctx, "", "corp")
	as.NoError(err)
	as.Equal("/templates/corp", path)
	as.Len(f.runner.Calls, 1)
	as.Equal([]string{"corp"}, f.runner.Calls[0].Args)

	// then the working directory dotfile
	path, err = f.resolver.Resolve(ctx, "", "")
	as.NoError(err)
	as.Equal(local, path)

	// then the user level dotfile
	as.NoError(os.Remove(local))

	path, err = f.resolver.Resolve(ctx, "", "")
	as.NoError(err)
	as.Equal(user, path)

	// finally the provider's default template
	as.NoError(os.Remove(user))

	path, err = f.resolver.Resolve(ctx, "", "")
	as.NoError(err)
	as.Equal("/templates/default", path)

	last := f.runner.Calls[len(f.runner.Calls)-1]
	as.Empty(last.Args, "the default template is fetched with no name argument")
}

func TestResolveStripsAssignmentPrefix(t *testing.T) {
	as := require.New(t)

	f := newResolverFixture(t)
	f.runner.Handler = func(_ string, _ []string) (string, error) {
		return "\tSWIFT_FORMAT_CONFIG=/templates/spaced \n", nil
	}

	path, err := f.resolver.Resolve(context.Background(), "", "corp")
	as.NoError(err)
	as.Equal("/templates/spaced", path)
}

func TestResolvePlainFetcherOutput(t *testing.T) {
	as := require.New(t)

	f := newResolverFixture(t)
	f.runner.Handler = func(_ string, _ []string) (string, error) {
		return "/templates/plain\n", nil
	}

	path, err := f.resolver.Resolve(context.Background(), "", "")
	as.NoError(err)
	as.Equal("/templates/plain", path)
}

func TestResolveFetcherFailure(t *testing.T) {
	as := require.New(t)

	f := newResolverFixture(t)
	f.runner.Handler = func(_ string, _ []string) (string, error) {
		return "no such template", process.ErrProcessFailed
	}

	_, err := f.resolver.Resolve(context.Background(), "", "corp")
	as.ErrorIs(err, process.ErrProcessFailed)

	_, err = f.resolver.Resolve(context.Background(), "", "")
	as.ErrorIs(err, process.ErrProcessFailed)
}

func TestVerifyExists(t *testing.T) {
	as := require.New(t)

	tempDir := t.TempDir()
	path := filepath.Join(tempDir, config.DotFileName)

	as.ErrorIs(config.VerifyExists(path), config.ErrNotFound)

	as.NoError(os.WriteFile(path, []byte("--indent 4\n"), 0o644))
	as.NoError(config.VerifyExists(path))
}
