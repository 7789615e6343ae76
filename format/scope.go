package format

import "fmt"

// StagedFilesFunc returns the staged files eligible for formatting.
type StagedFilesFunc func() ([]string, error)

// ResolveScope determines the filesystem targets the formatter operates on.
// Explicit targets win verbatim, then staged-only mode, otherwise everything
// under the current directory.
//
// An empty staged list resolves to an empty scope rather than falling back to
// the whole project; the formatter treats no input as nothing to do.
func ResolveScope(targets []string, stagedOnly bool, staged StagedFilesFunc) ([]string, error) {
	if len(targets) > 0 {
		return targets, nil
	}

	if stagedOnly {
		files, err := staged()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve staged scope: %w", err)
		}

		return files, nil
	}

	return []string{"."}, nil
}
