package board

import (
	"fmt"
	"io"

	"github.com/karshPrime/uni-traffic-light/light"
)

// A Console renders each applied state as one line of text. It stands in
// for a physical board in command line runs.
type Console struct {
	w io.Writer
}

// NewConsole creates a console adapter that writes to w.
func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

// Name returns the name of the adapter.
func (c *Console) Name() string {
	return "console"
}

// Apply writes the state as one line.
func (c *Console) Apply(state light.State) error {
	_, err := fmt.Fprintf(c.w, "EW %-6s | NS %-6s | walk EW %-9s | walk NS %-9s\n",
		state.EW, state.NS, state.WalkEW, state.WalkNS)

	return err
}
