package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/karshPrime/uni-traffic-light/acceptance"
)

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "List the built-in scenarios.",
	Long: `scenarios lists the scripts the run command can replay with
--scenario.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, scenario := range acceptance.Scenarios() {
			fmt.Printf("%-18s %2d stimuli  %s\n",
				scenario.Name,
				scenario.Script.Len(),
				scenario.Description)
		}
	},
}

func init() {
	rootCmd.AddCommand(scenariosCmd)
}
