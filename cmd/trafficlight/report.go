package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/karshPrime/uni-traffic-light/datarecording"
	"github.com/karshPrime/uni-traffic-light/stats"
	"github.com/karshPrime/uni-traffic-light/tracing"
)

var reportCmd = &cobra.Command{
	Use:   "report [run database]",
	Short: "Summarize a recorded run database.",
	Long: `report reads a database a run wrote and prints the recorded
execution details, lamp changes, traced tasks, and figures. Sections the
run did not record are left out.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		reportRun(args[0])
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

// execProperty mirrors one row of the exec_info table.
type execProperty struct {
	Property string
	Value    string
}

// lampChange mirrors one row of the light_updates table.
type lampChange struct {
	Time   float64
	EW     string
	NS     string
	WalkEW string
	WalkNS string
}

// traceProbe carries just enough of a trace row to test for the table.
type traceProbe struct {
	ID string
}

func reportRun(path string) {
	if !strings.HasSuffix(path, ".sqlite3") {
		path += ".sqlite3"
	}

	_, err := os.Stat(path)
	if err != nil {
		log.Fatalf("cannot open %s: %v", path, err)
	}

	reader := datarecording.NewReader(path)
	defer reader.Close()

	ctx := context.Background()

	printExecSection(ctx, reader)
	printLampSection(ctx, reader)
	printTraceSection(ctx, reader, path)
	printFigureSection(ctx, reader)
}

func printExecSection(ctx context.Context, reader datarecording.DataReader) {
	reader.MapTable("exec_info", execProperty{})

	rows, _, err := reader.Query(ctx, "exec_info", datarecording.QueryParams{})
	if err != nil || len(rows) == 0 {
		return
	}

	fmt.Println("Execution")

	for _, row := range rows {
		property := row.(*execProperty)
		fmt.Printf("  %-18s %s\n", property.Property, property.Value)
	}

	fmt.Println()
}

func printLampSection(ctx context.Context, reader datarecording.DataReader) {
	reader.MapTable("light_updates", lampChange{})

	rows, total, err := reader.Query(ctx, "light_updates",
		datarecording.QueryParams{OrderBy: "Time"})
	if err != nil || total == 0 {
		return
	}

	fmt.Printf("Lamp changes (%d)\n", total)

	for _, row := range rows {
		change := row.(*lampChange)
		fmt.Printf("  tick %4.0f  EW %-6s  NS %-6s  walk EW %-9s  walk NS %s\n",
			change.Time, change.EW, change.NS, change.WalkEW, change.WalkNS)
	}

	fmt.Println()
}

func printTraceSection(
	ctx context.Context,
	reader datarecording.DataReader,
	path string,
) {
	reader.MapTable("trace", traceProbe{})

	_, total, err := reader.Query(ctx, "trace",
		datarecording.QueryParams{Limit: 1})
	if err != nil || total == 0 {
		return
	}

	traces := tracing.NewTraceReader(path)
	defer traces.Close()

	fmt.Printf("Traced tasks (%d)\n", total)

	for _, location := range traces.ListLocations() {
		fmt.Printf("  %s\n", location)

		for _, task := range traces.ListTasks(tracing.TaskQuery{
			Where: location,
		}) {
			fmt.Printf("    %-10s %-22s %5.0f .. %5.0f\n",
				task.Kind,
				task.What,
				float64(task.StartTime),
				float64(task.EndTime))
		}
	}

	fmt.Println()
}

func printFigureSection(ctx context.Context, reader datarecording.DataReader) {
	reader.MapTable("perf", stats.PerfEntry{})

	rows, total, err := reader.Query(ctx, "perf",
		datarecording.QueryParams{OrderBy: "Start"})
	if err != nil || total == 0 {
		return
	}

	fmt.Printf("Figures (%d)\n", total)

	for _, row := range rows {
		entry := row.(*stats.PerfEntry)
		fmt.Printf("  %-12s %-26s %-16s %8.2f %s\n",
			entry.EntryType,
			entry.Where,
			entry.What,
			entry.Value,
			entry.Unit)
	}
}
