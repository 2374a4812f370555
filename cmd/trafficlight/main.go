// The trafficlight command simulates the signal controller of a two road
// intersection. It replays scripted traffic into a simulated intersection,
// drives lamp adapters with the result, and can record, trace, and monitor
// the run.
package main

import (
	"github.com/joho/godotenv"
	"github.com/tebeka/atexit"
)

func main() {
	// A .env file can carry TRAFFICLIGHT_* settings. Not having one is
	// fine.
	_ = godotenv.Load()

	Execute()

	atexit.Exit(0)
}
