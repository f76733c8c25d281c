package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gcworkbench/internal/config"
	"gcworkbench/internal/demo"
	"gcworkbench/internal/heapvm"
	"gcworkbench/internal/render"
	"gcworkbench/internal/snapshot"
)

var replayCmd = &cobra.Command{
	Use:   "replay [flags] [input-file]",
	Short: "Re-render frames from a previously cached run without recomputing it",
	Long:  `Replay looks up a prior "run --cache" invocation by its exact input, algorithm and heap size, and renders its cached trace straight to PNG frames.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runReplay,
}

func init() {
	replayCmd.Flags().String("out-dir-override", "", "write frames here instead of the manifest/flag out-dir")
}

func runReplay(cmd *cobra.Command, args []string) error {
	root := cmd.Root()
	manifest, _, err := config.Load(".")
	if err != nil {
		return err
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
	if v, _ := cmd.Flags().GetString("out-dir-override"); v != "" {
		cfg.OutDir = v
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

	cacheDir, err := defaultCacheDir()
	if err != nil {
		return err
	}
	cache, err := snapshot.Open(cacheDir)
	if err != nil {
		return err
	}

	mode, err := heapvm.ParseMode(cfg.Algo)
	if err != nil {
		return err
	}
	key := snapshot.KeyFor(input, mode.String(), cfg.HeapSize)
	payload, hit, err := cache.Get(key)
	if err != nil {
		return err
	}
	if !hit {
		return fmt.Errorf("no cached run for this input/algo/heap-size; run `gcworkbench run --cache` first")
	}

	events := snapshot.ToEvents(payload.Events)
	frames, err := render.FramesFromEvents(events, payload.HeapSize)
	if err != nil {
		return err
	}
	if err := render.EncodeFramesParallel(context.Background(), cfg.OutDir, frames); err != nil {
		return err
	}

	quiet, _ := root.PersistentFlags().GetBool("quiet")
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "gcworkbench: replayed %d cached frames (%s, heap=%d) to %s\n",
			len(frames), payload.Algo, payload.HeapSize, cfg.OutDir)
	}
	return nil
}
