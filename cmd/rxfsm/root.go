package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "rxfsm",
	Short: "rxfsm runs hierarchical state machines from YAML definitions",
	Long: `rxfsm loads a hierarchical state machine definition and drives it,
either interactively from stdin or as a JSON API over HTTP.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("file", "f", "machine.yaml", "Path to the machine definition")
}
