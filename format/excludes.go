package format

import (
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// ExcludedFiles are glob patterns which are never formatted, regardless of
// configuration: build output, package manifests, generated sources and
// bundled example code. The list is fixed and not user-overridable.
var ExcludedFiles = []string{
	".build",
	".swiftpm",
	"Package.swift",
	"*.generated.swift",
	"Examples",
}

var excludedGlobs = func() []glob.Glob {
	globs := make([]glob.Glob, len(ExcludedFiles))
	for i, pattern := range ExcludedFiles {
		globs[i] = glob.MustCompile(pattern)
	}

	return globs
}()

// ExcludeArg is the comma-joined form of ExcludedFiles passed to the
// formatter's --exclude option on every invocation.
func ExcludeArg() string {
	return strings.Join(ExcludedFiles, ",")
}

// PathExcluded reports whether path, or any directory above it, matches the
// fixed exclusion list. Used to drop staged files the formatter would have
// excluded anyway, e.g. sources staged under .build.
func PathExcluded(path string) bool {
	for p := filepath.Clean(path); p != "." && p != string(filepath.Separator); p = filepath.Dir(p) {
		if PathMatches(p, excludedGlobs) {
			return true
		}
	}

	return false
}
