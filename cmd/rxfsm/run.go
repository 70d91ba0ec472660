package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/colintheshots/RxFsm"
	"github.com/colintheshots/RxFsm/internal/logging"
	"github.com/colintheshots/RxFsm/pkg/dsl"
	"github.com/colintheshots/RxFsm/pkg/registry"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Drive a machine interactively from stdin",
	Long: `Loads the machine definition, activates it and reads occurrences from
stdin, one per line: an event name optionally followed by a target state
path. An event without a target dispatches an internal occurrence.`,
	Run: func(cmd *cobra.Command, args []string) {
		file, _ := cmd.Flags().GetString("file")
		if !cmd.Flags().Changed("file") && len(args) > 0 {
			file = args[0]
		}
		levelName, _ := cmd.Flags().GetString("log-level")

		level, err := logging.ParseLevel(levelName)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		logger := logging.New(level)

		def, err := dsl.Load(file)
		if err != nil {
			fmt.Printf("Error loading definition: %v\n", err)
			os.Exit(1)
		}

		streams := registry.New()
		topStates, initial, err := dsl.Build(def, streams)
		if err != nil {
			fmt.Printf("Error building machine: %v\n", err)
			os.Exit(1)
		}

		machine := rxfsm.Create(rxfsm.WithLogger(logger)).
			WithTopStates(topStates...).
			WithInitialState(initial)
		if err := machine.Activate(); err != nil {
			fmt.Printf("Error activating machine: %v\n", err)
			os.Exit(1)
		}
		defer machine.Deactivate()

		fmt.Printf("--- rxfsm (%s) ---\n", file)
		fmt.Printf("events: %s\n", strings.Join(streams.Names(), ", "))
		fmt.Printf("state: %s\n", machine.CurrentPath())

		reader := bufio.NewReader(os.Stdin)
		for {
			fmt.Print("> ")
			line, err := reader.ReadString('\n')
			if err != nil {
				fmt.Println()
				break
			}

			fields := strings.Fields(line)
			if len(fields) == 0 {
				continue
			}
			if fields[0] == "exit" || fields[0] == "quit" {
				fmt.Println("Bye!")
				break
			}

			stream, ok := streams.Lookup(fields[0])
			if !ok {
				fmt.Printf("unknown event: %s\n", fields[0])
				continue
			}

			if len(fields) > 1 {
				err = stream.Send(fields[1])
			} else {
				err = stream.SendInternal()
			}
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				continue
			}
			fmt.Printf("state: %s\n", machine.CurrentPath())
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("log-level", "warn", "Log level (debug, info, warn, error)")
}
