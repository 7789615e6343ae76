package config

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
	"github.com/swiftpkg/swiftfmt/build"
	"github.com/swiftpkg/swiftfmt/process"
)

// DotFileName is the formatter's config dotfile. We only ever check it for
// existence, its syntax belongs to the formatter.
const DotFileName = ".swiftformat"

// ErrNotFound is returned when the resolved configuration path does not exist
// on disk.
var ErrNotFound = errors.New("configuration file not found")

// the fetcher prints the path as a single line, optionally prefixed with an
// uppercase assignment key, e.g. `SWIFTFORMAT_CONFIG=/path/to/default`
var keyPrefixRegex = regexp.MustCompile(`^[A-Z][A-Z0-9_]*=`)

// Resolver determines the configuration file governing a formatter run.
type Resolver struct {
	workingDir string
	fetcherBin string
	runner     process.Runner

	log *log.Logger
}

func NewResolver(workingDir string, fetcherBin string, runner process.Runner) *Resolver {
	return &Resolver{
		workingDir: workingDir,
		fetcherBin: fetcherBin,
		runner:     runner,
		log:        log.WithPrefix("config"),
	}
}

// Resolve applies the precedence chain, first match wins:
//
//  1. an explicit --config path, used verbatim
//  2. an explicit --config-template name, resolved via the fetcher
//  3. the dotfile in the working directory
//  4. the user level dotfile under the XDG config home
//  5. the provider's default template, resolved via the fetcher
//
// The returned path is not checked for existence here; VerifyExists runs
// immediately before the formatter is invoked.
func (r *Resolver) Resolve(ctx context.Context, explicitPath string, templateName string) (string, error) {
	lookups := []func(context.Context) (string, bool, error){
		func(context.Context) (string, bool, error) {
			return explicitPath, explicitPath != "", nil
		},
		func(ctx context.Context) (string, bool, error) {
			if templateName == "" {
				return "", false, nil
			}

			path, err := r.FetchTemplate(ctx, templateName)

			return path, err == nil, err
		},
		func(context.Context) (string, bool, error) {
			path := filepath.Join(r.workingDir, DotFileName)

			return path, fileExists(path), nil
		},
		func(context.Context) (string, bool, error) {
			path := filepath.Join(xdg.ConfigHome, build.Name, DotFileName)

			return path, fileExists(path), nil
		},
		func(ctx context.Context) (string, bool, error) {
			path, err := r.FetchTemplate(ctx, "")

			return path, err == nil, err
		},
	}

	for _, lookup := range lookups {
		path, ok, err := lookup(ctx)
		if err != nil {
			return "", err
		}

		if ok {
			r.log.Debugf("resolved config file: %s", path)

			return path, nil
		}
	}

	// the final lookup always matches or errors
	return "", errors.New("no configuration source matched")
}

// FetchTemplate invokes the fetcher executable with the given template name,
// or with no argument for the provider's default template. The output is
// stripped of an optional `KEY=` assignment prefix and trimmed, yielding a
// filesystem path.
func (r *Resolver) FetchTemplate(ctx context.Context, name string) (string, error) {
	var args []string
	if name != "" {
		args = append(args, name)
	}

	out, err := r.runner.Run(ctx, r.workingDir, r.fetcherBin, args...)
	if err != nil {
		return "", fmt.Errorf("failed to fetch config template: %w", err)
	}

	path := strings.TrimSpace(out)
	path = keyPrefixRegex.ReplaceAllString(path, "")

	return strings.TrimSpace(path), nil
}

// VerifyExists checks the resolved configuration path on disk. It is called
// immediately before invocation so a missing file aborts the run before any
// formatter process is spawned.
func VerifyExists(path string) error {
	if !fileExists(path) {
		return fmt.Errorf("%w at resolved path '%s'", ErrNotFound, path)
	}

	return nil
}
