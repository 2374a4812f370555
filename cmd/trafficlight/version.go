package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the trafficlight version.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("trafficlight %s %s\n", version, runtime.Version())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
