package format

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/swiftpkg/swiftfmt/args"
	"github.com/swiftpkg/swiftfmt/config"
	"github.com/swiftpkg/swiftfmt/format"
	"github.com/swiftpkg/swiftfmt/git"
	"github.com/swiftpkg/swiftfmt/process"
)

// Run drives a single formatter run, top to bottom: extract options, resolve
// the governing config file, resolve the scope, verify the config exists,
// invoke the formatter and, in staged-only mode, re-stage the formatted
// files. Strictly linear and synchronous; the run either completes or aborts
// on the first failure.
func Run(ctx context.Context, v *viper.Viper, cmd *cobra.Command, tokens []string, runner process.Runner) error {
	cmd.SilenceUsage = true

	ex := args.NewExtractor(tokens)

	// host surface overrides, taking highest precedence in viper
	if bin, ok := ex.Option("formatter-bin"); ok {
		v.Set("formatter-bin", bin)
	}

	if bin, ok := ex.Option("fetcher-bin"); ok {
		v.Set("fetcher-bin", bin)
	}

	if dir, ok := ex.Option("working-dir"); ok {
		v.Set("working-dir", dir)
	}

	cfg, err := config.FromViper(v)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// user surface
	configPath, _ := ex.Option("config")
	templateName, _ := ex.Option("config-template")
	swiftVersion := ex.OptionDefault("swiftversion", cfg.SwiftVersion)
	debug := ex.Flag("debug")
	stagedOnly := ex.Flag("staged-only")
	targets := ex.Repeated("target")

	// everything left over is forwarded to the formatter verbatim
	passthrough := ex.Remaining()

	if debug {
		log.SetLevel(log.DebugLevel)
	}

	resolver := config.NewResolver(cfg.WorkingDirectory, cfg.FetcherBin, runner)

	resolved, err := resolver.Resolve(ctx, configPath, templateName)
	if err != nil {
		return err
	}

	scope, err := format.ResolveScope(targets, stagedOnly, func() ([]string, error) {
		return git.StagedFiles(ctx, runner, cfg.WorkingDirectory)
	})
	if err != nil {
		return err
	}

	if debug {
		log.Debug(
			"resolved run parameters",
			"working-dir", cfg.WorkingDirectory,
			"formatter", cfg.FormatterBin,
			"fetcher", cfg.FetcherBin,
			"config", resolved,
			"swiftversion", swiftVersion,
			"staged-only", stagedOnly,
			"scope", scope,
			"excludes", format.ExcludeArg(),
			"passthrough", passthrough,
		)
	}

	// the config must exist on disk before the formatter is spawned
	if err = config.VerifyExists(resolved); err != nil {
		return err
	}

	formatter, err := format.NewFormatter(cfg.FormatterBin, cfg.WorkingDirectory, runner)
	if err != nil {
		return err
	}

	if err = formatter.Apply(ctx, format.BuildArgs(scope, swiftVersion, resolved, passthrough)); err != nil {
		return err
	}

	if stagedOnly {
		if err = git.Add(ctx, runner, cfg.WorkingDirectory, scope); err != nil {
			return err
		}
	}

	return nil
}
