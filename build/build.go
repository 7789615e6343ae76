package build

// Name and Version are set at build time via -ldflags.
var (
	Name    = "swiftfmt"
	Version = "v0.0.1+dev"
)
