// Package git wraps the two version control operations the plugin performs:
// listing staged files and re-staging them after formatting.
package git

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/swiftpkg/swiftfmt/format"
	"github.com/swiftpkg/swiftfmt/process"
)

// StagedFiles lists staged, non-deleted files in dir which the formatter
// recognises, in the order git reports them. Files matching the fixed
// exclusion list are dropped since the formatter would refuse them anyway.
// An empty result is valid, there is simply nothing to format.
func StagedFiles(ctx context.Context, runner process.Runner, dir string) ([]string, error) {
	out, err := runner.Run(ctx, dir, "git", "diff", "--diff-filter=d", "--staged", "--name-only")
	if err != nil {
		return nil, fmt.Errorf("failed to list staged files: %w", err)
	}

	var files []string

	for _, line := range strings.Split(out, "\n") {
		name := strings.TrimSpace(line)
		if name == "" || !strings.HasSuffix(name, format.SwiftSuffix) {
			continue
		}

		if format.PathExcluded(name) {
			log.Debugf("skipping staged file %s: matches the exclusion list", name)
			continue
		}

		files = append(files, name)
	}

	return files, nil
}

// Add issues a single combined `git add` over paths so that in-place
// reformatting is reflected in the pending commit. A failure here is fatal to
// the run: the formatting already happened and must not be silently lost.
func Add(ctx context.Context, runner process.Runner, dir string, paths []string) error {
	if len(paths) == 0 {
		return nil
	}

	if _, err := runner.Run(ctx, dir, "git", append([]string{"add"}, paths...)...); err != nil {
		return fmt.Errorf("failed to re-stage formatted files: %w", err)
	}

	return nil
}
