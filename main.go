package main

import (
	"github.com/spf13/cobra"
	"github.com/swiftpkg/swiftfmt/cmd"
)

func main() {
	cobra.CheckErr(cmd.NewRoot().Execute())
}
