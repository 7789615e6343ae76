package format

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/swiftpkg/swiftfmt/process"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
)

// SwiftSuffix is the file suffix the formatter recognises.
const SwiftSuffix = ".swift"

// ErrCommandNotFound is returned when the formatter executable is not available.
var ErrCommandNotFound = errors.New("formatter command not found in PATH")

// Formatter invokes the external swiftformat executable.
type Formatter struct {
	executable string
	workingDir string
	runner     process.Runner

	log *log.Logger
}

// NewFormatter resolves command against PATH relative to workingDir and
// returns a Formatter ready to apply.
func NewFormatter(command string, workingDir string, runner process.Runner) (*Formatter, error) {
	env := expand.ListEnviron(os.Environ()...)

	executable, err := interp.LookPathDir(workingDir, env, command)
	if err != nil {
		return nil, ErrCommandNotFound
	}

	return &Formatter{
		executable: executable,
		workingDir: workingDir,
		runner:     runner,
		log:        log.WithPrefix("format"),
	}, nil
}

// Executable returns the resolved path to the formatter.
func (f *Formatter) Executable() string {
	return f.executable
}

// BuildArgs assembles the final argument vector in fixed order: scope,
// version, config, cache-disable, exclusions, then user passthrough args.
// Caching is unconditionally disabled as the formatter's cache directory sits
// outside the plugin's writable sandbox.
func BuildArgs(scope []string, swiftVersion string, configPath string, passthrough []string) []string {
	args := make([]string, 0, len(scope)+len(passthrough)+8)

	args = append(args, scope...)
	args = append(args, "--swiftversion", swiftVersion)
	args = append(args, "--config", configPath)
	args = append(args, "--cache", "ignore")
	args = append(args, "--exclude", ExcludeArg())
	args = append(args, passthrough...)

	return args
}

// Apply runs the formatter with the given argument vector. The formatter's
// output is discarded on success and attached to the returned error on
// failure.
func (f *Formatter) Apply(ctx context.Context, args []string) error {
	start := time.Now()

	if _, err := f.runner.Run(ctx, f.workingDir, f.executable, args...); err != nil {
		return fmt.Errorf("formatter failed to apply: %w", err)
	}

	f.log.Infof("formatting completed in %v", time.Since(start))

	return nil
}
