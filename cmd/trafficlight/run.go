package main

import (
	"fmt"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/karshPrime/uni-traffic-light/acceptance"
	"github.com/karshPrime/uni-traffic-light/board"
	"github.com/karshPrime/uni-traffic-light/controller"
	"github.com/karshPrime/uni-traffic-light/roadside"
	"github.com/karshPrime/uni-traffic-light/sim"
	"github.com/karshPrime/uni-traffic-light/simulation"
	"github.com/karshPrime/uni-traffic-light/stats"
	"github.com/karshPrime/uni-traffic-light/tracing"
	"github.com/karshPrime/uni-traffic-light/traffic"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Replay scripted traffic through a simulated intersection.",
	Long: `run replays a built-in scenario, or a script assembled from the
--car-arrive, --car-depart, --press, and --reset flags, through a complete
simulated intersection. The run ends once every stimulus is delivered and
the controller has no pending work.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runIntersection(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("scenario", "",
		"built-in scenario to replay, see the scenarios command")
	runCmd.Flags().StringArray("car-arrive", nil,
		"ROAD:TICK of a car reaching a loop sensor, e.g. EW:3, repeatable")
	runCmd.Flags().StringArray("car-depart", nil,
		"ROAD:TICK of the last car leaving a loop sensor, repeatable")
	runCmd.Flags().StringArray("press", nil,
		"CROSSING:TICK of a pedestrian call, e.g. NS:5, repeatable")
	runCmd.Flags().Float64("reset", -1,
		"tick of a maintenance reset pulse, negative for none")

	timing := controller.DefaultTiming()
	runCmd.Flags().Int("min-green", timing.MinGreen,
		"shortest green, in ticks")
	runCmd.Flags().Int("max-green", timing.MaxGreen,
		"longest green held against opposing requests, in ticks")
	runCmd.Flags().Int("yellow", timing.Yellow,
		"yellow duration, in ticks")
	runCmd.Flags().Int("all-red", timing.AllRedClear,
		"all red clearance between greens, in ticks")
	runCmd.Flags().Int("walk", timing.Walk,
		"solid WALK portion of a pedestrian display, in ticks")
	runCmd.Flags().Int("walk-flash", timing.WalkFlash,
		"flashing clearance portion of a pedestrian display, in ticks")

	runCmd.Flags().StringArray("board", nil,
		"board stub to drive with the lamp states, repeatable, "+
			"see the boards command")
	runCmd.Flags().Bool("console", true,
		"print every lamp change to stdout")
	runCmd.Flags().Bool("record", false,
		"record every lamp change into the run database")
	runCmd.Flags().Bool("trace", false,
		"record phase and request tasks into the run database")
	runCmd.Flags().String("trace-json", "",
		"write completed phase and request tasks into this JSON file")
	runCmd.Flags().Bool("stats", false,
		"record phase time and wait figures into the run database")
	runCmd.Flags().Bool("monitor", false,
		"serve the monitoring dashboard during the run")
	runCmd.Flags().Int("monitor-port", 0,
		"port of the monitoring server, 0 picks a free one")
	runCmd.Flags().Bool("monitor-open", false,
		"open the monitoring dashboard in the default browser")
	runCmd.Flags().String("output", "",
		"run database name without extension, "+
			"defaults to trafficlight_run_<id>")
	runCmd.Flags().Float64("max-ticks", 0,
		"abort the run after this much virtual time, 0 for no limit")
}

func runIntersection(cmd *cobra.Command) {
	script := scriptFromFlags(cmd)
	timing := timingFromFlags(cmd)
	adapters := adaptersFromFlags(cmd)

	record, _ := cmd.Flags().GetBool("record")
	trace, _ := cmd.Flags().GetBool("trace")
	figures, _ := cmd.Flags().GetBool("stats")
	maxTicks, _ := cmd.Flags().GetFloat64("max-ticks")

	s := buildSimulation(cmd)

	benchBuilder := acceptance.MakeBenchBuilder().
		WithEngine(s.GetEngine()).
		WithTiming(timing).
		WithScript(script).
		WithAdapters(adapters...)
	if record {
		benchBuilder = benchBuilder.WithRecorder(s.GetDataRecorder())
	}

	bench := benchBuilder.Build("Intersection")

	for _, c := range bench.Components() {
		s.RegisterComponent(c)
	}

	if trace {
		tracing.CollectTrace(bench.Controller, s.GetVisTracer())
		tracing.CollectTrace(bench.Panel, s.GetVisTracer())
	}

	finishJSONTrace := attachJSONTracer(cmd, s.GetEngine(), bench)

	if figures {
		attachAnalyzers(s, bench)
	}

	s.Init()

	done := make(chan struct{})
	if maxTicks > 0 {
		abortRunawayRun(s.GetEngine(), maxTicks, done)
	}

	err := bench.Run()
	if err != nil {
		panic(err)
	}

	close(done)

	s.Terminate()
	finishJSONTrace()

	bench.MustHaveDeliveredScript()
	bench.MustBeSafe()

	printRunSummary(cmd, s, bench)

	monitorOn, _ := cmd.Flags().GetBool("monitor")
	if monitorOn {
		fmt.Fprintf(os.Stderr,
			"The run is complete. The monitor stays up, Ctrl-C to leave.\n")
		select {}
	}
}

func buildSimulation(cmd *cobra.Command) *simulation.Simulation {
	monitorOn, _ := cmd.Flags().GetBool("monitor")
	monitorPort := monitorPortFromFlags(cmd)
	openBrowser, _ := cmd.Flags().GetBool("monitor-open")
	output := outputFromFlags(cmd)

	if !monitorOn && (monitorPort != 0 || openBrowser) {
		log.Fatalf("--monitor-port and --monitor-open require --monitor")
	}

	builder := simulation.MakeBuilder()

	if !monitorOn {
		builder = builder.WithoutMonitoring()
	}

	if monitorPort != 0 {
		builder = builder.WithMonitorPort(monitorPort)
	}

	if openBrowser {
		builder = builder.WithBrowser()
	}

	if output != "" {
		builder = builder.WithOutputFileName(output)
	}

	return builder.Build()
}

func monitorPortFromFlags(cmd *cobra.Command) int {
	port, _ := cmd.Flags().GetInt("monitor-port")
	if port != 0 {
		return port
	}

	env := os.Getenv("TRAFFICLIGHT_MONITOR_PORT")
	if env == "" {
		return 0
	}

	port, err := strconv.Atoi(env)
	if err != nil {
		log.Fatalf("TRAFFICLIGHT_MONITOR_PORT %q is not a number", env)
	}

	return port
}

func outputFromFlags(cmd *cobra.Command) string {
	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = os.Getenv("TRAFFICLIGHT_OUTPUT")
	}

	return output
}

func scriptFromFlags(cmd *cobra.Command) roadside.Script {
	name, _ := cmd.Flags().GetString("scenario")
	if name == "" {
		return scriptFromStimulusFlags(cmd)
	}

	if stimulusFlagsGiven(cmd) {
		log.Fatalf("--scenario cannot be combined with script flags")
	}

	scenario, err := acceptance.FindScenario(name)
	if err != nil {
		log.Fatalf("%v", err)
	}

	return scenario.Script
}

func stimulusFlagsGiven(cmd *cobra.Command) bool {
	stimulusFlags := []string{"car-arrive", "car-depart", "press", "reset"}
	for _, flag := range stimulusFlags {
		if cmd.Flags().Changed(flag) {
			return true
		}
	}

	return false
}

func scriptFromStimulusFlags(cmd *cobra.Command) roadside.Script {
	var entries []roadside.Entry

	entries = append(entries, carEntries(cmd, "car-arrive", true)...)
	entries = append(entries, carEntries(cmd, "car-depart", false)...)
	entries = append(entries, pressEntries(cmd)...)

	reset, _ := cmd.Flags().GetFloat64("reset")
	if reset >= 0 {
		entries = append(entries, roadside.Entry{
			Time: sim.VTimeInSec(reset),
			Kind: roadside.EventResetPulse,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Time < entries[j].Time
	})

	builder := roadside.MakeScriptBuilder()
	for _, e := range entries {
		switch e.Kind {
		case roadside.EventCarPresence:
			builder = builder.WithCarPresence(e.Time, e.Road, e.Present)
		case roadside.EventButtonPress:
			builder = builder.WithButtonPress(e.Time, e.Crossing)
		case roadside.EventResetPulse:
			builder = builder.WithResetPulse(e.Time)
		}
	}

	return builder.Build()
}

func carEntries(
	cmd *cobra.Command,
	flag string,
	present bool,
) []roadside.Entry {
	values, _ := cmd.Flags().GetStringArray(flag)

	entries := make([]roadside.Entry, 0, len(values))
	for _, value := range values {
		road, tick := parseRoadTick(flag, value)
		entries = append(entries, roadside.Entry{
			Time:    tick,
			Kind:    roadside.EventCarPresence,
			Road:    road,
			Present: present,
		})
	}

	return entries
}

func pressEntries(cmd *cobra.Command) []roadside.Entry {
	values, _ := cmd.Flags().GetStringArray("press")

	entries := make([]roadside.Entry, 0, len(values))
	for _, value := range values {
		crossing, tick := parseCrossingTick("press", value)
		entries = append(entries, roadside.Entry{
			Time:     tick,
			Kind:     roadside.EventButtonPress,
			Crossing: crossing,
		})
	}

	return entries
}

func parseRoadTick(flag, value string) (traffic.Road, sim.VTimeInSec) {
	name, tick := splitStimulus(flag, value)

	switch strings.ToUpper(name) {
	case "EW":
		return traffic.RoadEW, tick
	case "NS":
		return traffic.RoadNS, tick
	}

	log.Fatalf("--%s %q: unknown road %q, want EW or NS", flag, value, name)

	return 0, 0
}

func parseCrossingTick(flag, value string) (traffic.Crossing, sim.VTimeInSec) {
	name, tick := splitStimulus(flag, value)

	switch strings.ToUpper(name) {
	case "EW":
		return traffic.CrossingEW, tick
	case "NS":
		return traffic.CrossingNS, tick
	}

	log.Fatalf("--%s %q: unknown crossing %q, want EW or NS",
		flag, value, name)

	return 0, 0
}

func splitStimulus(flag, value string) (string, sim.VTimeInSec) {
	name, tickText, found := strings.Cut(value, ":")
	if !found {
		log.Fatalf("--%s %q: want NAME:TICK", flag, value)
	}

	tick, err := strconv.ParseFloat(tickText, 64)
	if err != nil || tick < 0 {
		log.Fatalf("--%s %q: %q is not a tick", flag, value, tickText)
	}

	return name, sim.VTimeInSec(tick)
}

func timingFromFlags(cmd *cobra.Command) controller.Timing {
	timing := controller.Timing{}
	timing.MinGreen, _ = cmd.Flags().GetInt("min-green")
	timing.MaxGreen, _ = cmd.Flags().GetInt("max-green")
	timing.Yellow, _ = cmd.Flags().GetInt("yellow")
	timing.AllRedClear, _ = cmd.Flags().GetInt("all-red")
	timing.Walk, _ = cmd.Flags().GetInt("walk")
	timing.WalkFlash, _ = cmd.Flags().GetInt("walk-flash")

	err := timing.Validate()
	if err != nil {
		log.Fatalf("invalid timing: %v", err)
	}

	return timing
}

func adaptersFromFlags(cmd *cobra.Command) []board.Adapter {
	var adapters []board.Adapter

	console, _ := cmd.Flags().GetBool("console")
	if console {
		adapters = append(adapters, board.NewConsole(os.Stdout))
	}

	names, _ := cmd.Flags().GetStringArray("board")
	for _, name := range names {
		adapter, err := board.New(name)
		if err != nil {
			log.Fatalf("%v", err)
		}

		adapters = append(adapters, adapter)
	}

	return adapters
}

// attachJSONTracer hooks a JSON trace sink to the controller and the
// panel when --trace-json is given. The returned function completes the
// file and must run after the simulation terminates.
func attachJSONTracer(
	cmd *cobra.Command,
	engine sim.Engine,
	bench *acceptance.Bench,
) func() {
	path, _ := cmd.Flags().GetString("trace-json")
	if path == "" {
		return func() {}
	}

	file, err := os.Create(path)
	if err != nil {
		log.Fatalf("cannot create %s: %v", path, err)
	}

	tracer := tracing.NewJSONTracer(engine, file)
	tracing.CollectTrace(bench.Controller, tracer)
	tracing.CollectTrace(bench.Panel, tracer)

	return func() {
		tracer.Finish()

		err := file.Close()
		if err != nil {
			log.Fatalf("cannot close %s: %v", path, err)
		}
	}
}

func attachAnalyzers(s *simulation.Simulation, bench *acceptance.Bench) {
	logger := stats.NewRecorderPerfLogger(s.GetDataRecorder())

	stats.MakePhaseTimeAnalyzerBuilder().
		WithPerfLogger(logger).
		WithTimeTeller(s.GetEngine()).
		WithController(bench.Controller).
		Build()

	stats.MakeWaitAnalyzerBuilder().
		WithPerfLogger(logger).
		WithTimeTeller(s.GetEngine()).
		WithController(bench.Controller).
		Build()
}

// abortRunawayRun watches the virtual clock from a side goroutine. The
// engine cannot be stopped from inside one of its own handlers, so the
// watch polls on wall clock time instead.
func abortRunawayRun(
	engine sim.Engine,
	maxTicks float64,
	done <-chan struct{},
) {
	go func() {
		poll := time.NewTicker(100 * time.Millisecond)
		defer poll.Stop()

		for {
			select {
			case <-done:
				return
			case <-poll.C:
				if float64(engine.CurrentTime()) <= maxTicks {
					continue
				}

				engine.Pause()
				fmt.Fprintf(os.Stderr,
					"aborting, the run passed %.0f ticks\n", maxTicks)
				atexit.Exit(1)
			}
		}
	}()
}

func printRunSummary(
	cmd *cobra.Command,
	s *simulation.Simulation,
	bench *acceptance.Bench,
) {
	transitions := bench.Transitions()

	fmt.Printf("run %s: %d lamp changes in %.0f ticks\n",
		s.ID(), len(transitions), float64(s.GetEngine().CurrentTime()))

	if len(transitions) > 0 {
		last := transitions[len(transitions)-1]
		fmt.Printf("settled at tick %.0f on %s\n",
			float64(last.Time), last.State)
	}

	fmt.Printf("run data: %s.sqlite3\n", runDatabaseName(cmd, s))
}

func runDatabaseName(cmd *cobra.Command, s *simulation.Simulation) string {
	output := outputFromFlags(cmd)
	if output == "" {
		output = "trafficlight_run_" + s.ID()
	}

	return output
}
