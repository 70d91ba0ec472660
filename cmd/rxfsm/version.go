package main

import (
	"fmt"
	"strings"

	"github.com/colintheshots/RxFsm"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of rxfsm",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("rxfsm version %s\n", strings.TrimSpace(rxfsm.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
