package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/karshPrime/uni-traffic-light/board"
)

var boardsCmd = &cobra.Command{
	Use:   "boards",
	Short: "List the supported board stubs and their pin maps.",
	Long: `boards lists the development boards the run command can drive
with --board, together with the pin each lamp is wired to. The console
adapter is always available through --console and takes no pins.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range board.Names() {
			adapter, err := board.New(name)
			if err != nil {
				log.Fatalf("%v", err)
			}

			fmt.Println(adapter.Name())

			mapper, ok := adapter.(board.PinMapper)
			if !ok {
				continue
			}

			for _, pin := range mapper.PinMap() {
				fmt.Printf("  %-8s %s\n", pin.Lamp, pin.Pin)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(boardsCmd)
}
