// Package init implements the subcommand that seeds a working directory with
// a SwiftFormat configuration fetched from a bundled template.
package init

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/swiftpkg/swiftfmt/config"
	"github.com/swiftpkg/swiftfmt/process"
)

func NewCommand(v *viper.Viper) *cobra.Command {
	var (
		force    bool
		template string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a " + config.DotFileName + " file in the working directory from a bundled template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true

			return run(cmd.Context(), v, force, template)
		},
	}

	fs := cmd.Flags()

	// add our config flags to the command's flag set
	config.SetFlags(fs)

	fs.BoolVar(
		&force, "force", false,
		"Overwrite an existing "+config.DotFileName+" file.",
	)
	fs.StringVarP(
		&template, "template", "t", "",
		"Name of the configuration template to fetch. Defaults to the provider's default template.",
	)

	// bind our command's flags to viper
	cobra.CheckErr(v.BindPFlags(fs))

	return cmd
}

func run(ctx context.Context, v *viper.Viper, force bool, template string) error {
	cfg, err := config.FromViper(v)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	target := filepath.Join(cfg.WorkingDirectory, config.DotFileName)

	if _, err = os.Stat(target); err == nil && !force {
		return fmt.Errorf("%s already exists, use --force to overwrite", target)
	}

	runner := process.NewExecRunner()
	resolver := config.NewResolver(cfg.WorkingDirectory, cfg.FetcherBin, runner)

	source, err := resolver.FetchTemplate(ctx, template)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(source)
	if err != nil {
		return fmt.Errorf("failed to read template '%s': %w", source, err)
	}

	if err = os.WriteFile(target, data, 0o644); err != nil {
		return fmt.Errorf("failed to write '%s': %w", target, err)
	}

	fmt.Printf("Generated %s. Now it's your turn to edit it.\n", target)

	return nil
}
