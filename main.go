package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/cottand/regionck/cmd"
)

func main() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "regionck [subcommand]",
	Short:        "regionck\n region (lifetime) inference support for a type-checking pass",
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(cmd.DebugCmd)
}
