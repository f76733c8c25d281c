package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"gcworkbench/internal/config"
	"gcworkbench/internal/demo"
	"gcworkbench/internal/heapvm"
	"gcworkbench/internal/observ"
	"gcworkbench/internal/render"
	"gcworkbench/internal/snapshot"
	"gcworkbench/internal/trace"
	"gcworkbench/internal/ui"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] [input-file]",
	Short: "Run the DKP ledger demo through a collector and render frames",
	Long:  `Run parses a DKP transaction ledger (amount,person,item per line), groups and ranks it on a heapvm.Machine, and renders the recorded trace as a sequence of PNG frames.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRun,
}

func init() {
	runCmd.Flags().String("trace", "trace.js", "textual trace output path (\"-\" for stdout, \"\" to disable)")
	runCmd.Flags().String("trace-level", "full", "trace verbosity (off|breakpoints|full)")
	runCmd.Flags().String("trace-format", "bracket", "trace wire format (bracket|ndjson)")
	runCmd.Flags().Bool("render", true, "render PNG frames from the recorded trace")
	runCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	runCmd.Flags().Bool("timing", false, "print a per-phase timing breakdown after the run")
}

func runRun(cmd *cobra.Command, args []string) error {
	root := cmd.Root()
	manifest, found, err := config.Load(".")
	if err != nil {
		return err
	}
	quiet, _ := root.PersistentFlags().GetBool("quiet")
	if !found && !quiet {
		fmt.Fprintln(cmd.ErrOrStderr(), config.NoManifestMessage())
	}
	cfg := manifest.Config.Run

	if v, _ := root.PersistentFlags().GetString("algo"); v != "" {
		cfg.Algo = v
	}
	if v, _ := root.PersistentFlags().GetInt("heap-size"); v != 0 {
		cfg.HeapSize = v
	}
	if v, _ := root.PersistentFlags().GetString("out-dir"); v != "" {
		cfg.OutDir = v
	}
	if useCache, _ := root.PersistentFlags().GetBool("cache"); useCache {
		cfg.Cache = true
	}

	mode, err := heapvm.ParseMode(cfg.Algo)
	if err != nil {
		return err
	}

	var input []byte
	if len(args) == 1 {
		input, err = os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
	} else {
		input = demo.DefaultLog()
	}

	traceOutput, _ := cmd.Flags().GetString("trace")
	levelStr, _ := cmd.Flags().GetString("trace-level")
	formatStr, _ := cmd.Flags().GetString("trace-format")
	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return err
	}
	format, err := trace.ParseFormat(formatStr)
	if err != nil {
		return err
	}

	var cache *snapshot.Cache
	var cacheKey snapshot.Key
	if cfg.Cache {
		cacheDir, err := defaultCacheDir()
		if err != nil {
			return err
		}
		cache, err = snapshot.Open(cacheDir)
		if err != nil {
			return err
		}
		cacheKey = snapshot.KeyFor(input, mode.String(), cfg.HeapSize)
		if payload, hit, err := cache.Get(cacheKey); err == nil && hit {
			if !quiet {
				fmt.Fprintln(cmd.OutOrStdout(), "gcworkbench: reusing cached trace for this exact input/algo/heap-size")
			}
			events := snapshot.ToEvents(payload.Events)
			return renderIfRequested(cmd, cfg, events)
		}
	}

	ring := trace.NewRingTracer(level)
	cells := trace.NewCellTable(cfg.HeapSize)
	cellTracer := trace.NewCellTracer(cells)
	tracers := []trace.Tracer{ring, cellTracer}

	var streamCloser func() error
	if traceOutput != "" {
		w, closer, err := openTraceOutput(traceOutput)
		if err != nil {
			return err
		}
		stream := trace.NewStreamTracer(w, level, format)
		tracers = append(tracers, stream)
		streamCloser = closer
	}

	uiProgram, uiDone := maybeStartProgressUI(cmd, &tracers)

	tracer := trace.NewMultiTracer(level, tracers...)

	m := heapvm.NewMachine(mode, cfg.HeapSize, tracer, cells)

	timer := observ.NewTimer()
	runPhase := timer.Begin("demo")
	result, err := demo.Run(m, input)
	timer.End(runPhase, fmt.Sprintf("%d standings", len(result.Standings)))
	if err != nil {
		return err
	}
	if streamCloser != nil {
		if err := streamCloser(); err != nil {
			return err
		}
	}
	if uiProgram != nil {
		tracer.Close()
		<-uiDone
	}

	printStandings(cmd, cfg, result.Standings)

	events := ring.Snapshot()
	if cache != nil {
		payload := &snapshot.Payload{
			Algo:     mode.String(),
			HeapSize: cfg.HeapSize,
			Events:   snapshot.FromEvents(events),
		}
		if err := cache.Put(cacheKey, payload); err != nil {
			return err
		}
	}

	renderPhase := timer.Begin("render")
	renderErr := renderIfRequested(cmd, cfg, events)
	timer.End(renderPhase, "")

	if showTiming, _ := cmd.Flags().GetBool("timing"); showTiming {
		fmt.Fprint(cmd.OutOrStdout(), timer.Summary())
	}
	return renderErr
}

func renderIfRequested(cmd *cobra.Command, cfg config.RunConfig, events []trace.Event) error {
	doRender, _ := cmd.Flags().GetBool("render")
	if !doRender {
		return nil
	}
	frames, err := render.FramesFromEvents(events, cfg.HeapSize)
	if err != nil {
		return err
	}
	if err := render.EncodeFramesParallel(context.Background(), cfg.OutDir, frames); err != nil {
		return err
	}
	quiet, _ := cmd.Flags().GetBool("quiet")
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "gcworkbench: wrote %d frames to %s\n", len(frames), cfg.OutDir)
	}
	return nil
}

func printStandings(cmd *cobra.Command, cfg config.RunConfig, standings []demo.Standing) {
	quiet, _ := cmd.Flags().GetBool("quiet")
	if quiet {
		return
	}
	bold := color.New(color.Bold)
	bold.Fprintf(cmd.OutOrStdout(), "standings (%s, heap=%d)\n", cfg.Algo, cfg.HeapSize)
	for _, s := range standings {
		fmt.Fprintf(cmd.OutOrStdout(), "  %-16s %d\n", s.Person, s.Total)
	}
}

func openTraceOutput(path string) (*os.File, func() error, error) {
	if path == "-" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening trace output: %w", err)
	}
	return f, f.Close, nil
}

// maybeStartProgressUI checks the --ui flag (and whether stdout is a
// terminal, for "auto") and, if a live view is wanted, appends a
// ui.BreakpointTracer to tracers and starts the Bubble Tea program in
// the background. Closing the returned tracer set's combined tracer
// ends the program; the caller must wait on the returned done channel
// before printing anything else to stdout.
func maybeStartProgressUI(cmd *cobra.Command, tracers *[]trace.Tracer) (*tea.Program, <-chan struct{}) {
	mode, _ := cmd.Flags().GetString("ui")
	want := mode == "on"
	if mode == "auto" {
		want = isTerminal(os.Stdout)
	}
	if !want {
		return nil, nil
	}

	events := make(chan string, 16)
	*tracers = append(*tracers, ui.NewBreakpointTracer(events))

	p := tea.NewProgram(ui.NewProgressModel("gcworkbench run", events))
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = p.Run()
	}()
	return p, done
}

func defaultCacheDir() (string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = home + "/.cache"
	}
	return base + "/gcworkbench", nil
}
