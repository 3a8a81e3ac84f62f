package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zwimer/smllr/internal/cmdsupport"
)

// version is the tool's release version, reported by the version subcommand.
const version = "0.1.0"

func versionMain(command *cobra.Command, arguments []string) error {
	fmt.Println(version)
	return nil
}

var versionCommand = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Args:  cmdsupport.DisallowArguments,
	Run:   cmdsupport.Mainify(versionMain, cmdsupport.ExitArguments),
}

func init() {
	rootCommand.AddCommand(versionCommand)
}
