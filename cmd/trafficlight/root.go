package main

import (
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use: "trafficlight",
	Short: "Trafficlight simulates the signal controller of a two road " +
		"intersection.",
	Long: `Trafficlight simulates the signal controller of a two road ` +
		`intersection. A run replays scripted cars, pedestrian calls, and ` +
		`reset pulses into the controller and reports every lamp change ` +
		`the display panel shows.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		atexit.Exit(1)
	}
}
