package cmd

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/swiftpkg/swiftfmt/build"
	"github.com/swiftpkg/swiftfmt/cmd/format"
	_init "github.com/swiftpkg/swiftfmt/cmd/init"
	"github.com/swiftpkg/swiftfmt/config"
	"github.com/swiftpkg/swiftfmt/process"
)

// NewRoot creates the root command. Flag parsing is disabled on it: the raw
// tokens flow untouched into the argument extractor, so anything we do not
// recognise reaches the formatter verbatim.
func NewRoot() *cobra.Command {
	// create a viper instance carrying the host supplied settings
	v := config.NewViper()

	cmd := &cobra.Command{
		Use:                build.Name + " [options] [formatter args]",
		Short:              "Runs swiftformat from a build tool plugin context",
		Version:            build.Version,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runE(v, cmd, args)
		},
	}

	cmd.SetVersionTemplate(build.Name + " {{.Version}}")

	cmd.AddCommand(_init.NewCommand(v))

	cmd.AddCommand(&cobra.Command{
		Use:       "completions <bash|zsh|fish>",
		Short:     "Generate shell completions",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"bash", "zsh", "fish"},
		RunE:      generateShellCompletions,
	})

	return cmd
}

func runE(v *viper.Viper, cmd *cobra.Command, tokens []string) error {
	// cobra cannot spot the help flag for us since flag parsing is disabled
	for _, token := range tokens {
		if token == "--help" || token == "-h" {
			return cmd.Help()
		}
	}

	log.SetOutput(os.Stderr)
	log.SetReportTimestamp(false)
	log.SetLevel(log.WarnLevel)

	return format.Run(cmd.Context(), v, cmd, tokens, process.NewExecRunner())
}
