package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/r-near/near-sdk-go/cmd/demo"
)

const Version = "0.1.0"

var (
	// RootCmd represents the base command when called without any subcommands.
	RootCmd = &cobra.Command{
		Use:   "nearkv",
		Short: "persistent collections over a flat key-value host",
		Long: fmt.Sprintf(`nearkv (v%s)

A library of generic persistent collections - Sequence, LookupMap,
LookupSet, IterableMap, IterableSet, OrderedMap - built on top of a
minimal four-operation storage host, plus a shell for exercising them
against an in-memory host.`, Version),
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("nearkv v%s\n", Version)
		},
	}
)

func init() {
	RootCmd.AddCommand(demo.DemoCmd)
	RootCmd.AddCommand(versionCmd)
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(); it only needs to run once.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
