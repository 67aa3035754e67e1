package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/san-kum/streams3d/internal/config"
	"github.com/san-kum/streams3d/internal/scene"
	"github.com/san-kum/streams3d/internal/selector"
	"github.com/san-kum/streams3d/internal/session"
	"github.com/san-kum/streams3d/internal/storage"
	"github.com/san-kum/streams3d/internal/streams"
	"github.com/san-kum/streams3d/internal/synth"
)

// stepFlags select the time steps of an animation.
type stepFlags struct {
	first, last, stride int
	frames              int
}

var sf stepFlags

func addStepFlags(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.IntVar(&sf.first, "first", 0, "first time step")
	fs.IntVar(&sf.last, "last", -1, "last time step (default: last available)")
	fs.IntVar(&sf.stride, "stride", 1, "time steps between renders")
	fs.IntVar(&sf.frames, "frames", 48, "time steps to synthesize when no --source is given")
}

// universe returns the number of streams at step, for resolving "all" and
// open-ended ranges.
func universe(loader session.Loader, step int) (int, error) {
	in, err := loader.Load(step)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, s := range in {
		n = max(n, int(s.ID)+1)
	}
	return n, nil
}

// newLoader resolves --source and --streams. firstStep is used to size the
// stream universe for the id selectors.
func newLoader(cfg *config.RenderConfig, firstStep int) (session.Loader, error) {
	var loader session.Loader = session.SynthLoader{Options: synth.DefaultOptions()}
	if rf.source != "" {
		loader = session.DirLoader{Dir: rf.source}
	}
	if len(rf.streamIDs) == 0 && len(rf.activeIDs) == 0 {
		return loader, nil
	}

	n, err := universe(loader, firstStep)
	if err != nil {
		return nil, err
	}
	if len(rf.streamIDs) > 0 {
		ids, err := selector.ParseIDs(rf.streamIDs, n)
		if err != nil {
			return nil, err
		}
		loader = session.Subset{Loader: loader, IDs: ids}
	}
	if len(rf.activeIDs) > 0 {
		ids, err := selector.ParseIDs(rf.activeIDs, n)
		if err != nil {
			return nil, err
		}
		cfg.ActiveIDs = ids
	}
	return loader, nil
}

// timeSteps lists the steps an animation renders.
func timeSteps(cmd *cobra.Command) ([]int, error) {
	if sf.stride < 1 {
		return nil, streams.NewConfigError("stride", "must be at least 1, got %d", sf.stride)
	}
	var avail []int
	if rf.source != "" {
		steps, err := storage.SnapshotSteps(rf.source)
		if err != nil {
			return nil, err
		}
		avail = steps
	} else {
		for s := 0; s < sf.frames; s++ {
			avail = append(avail, s)
		}
	}

	last := sf.last
	if !cmd.Flags().Changed("last") && len(avail) > 0 {
		last = avail[len(avail)-1]
	}
	var out []int
	for _, s := range avail {
		if s >= sf.first && s <= last && (s-sf.first)%sf.stride == 0 {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no time steps in [%d, %d]", sf.first, last)
	}
	return out, nil
}

// stampFunc labels step with the time of day or elapsed time.
func stampFunc(cmd *cobra.Command, cfg *config.RenderConfig) session.StampFunc {
	tc := cfg.Title
	useSynth := rf.source == "" && !cmd.Flags().Changed("step-hours")
	return func(step int) (string, error) {
		days := float64(step) * rf.stepHours / 24
		if useSynth {
			days = synth.Days(step)
		}
		return scene.TimeStamp(tc, days)
	}
}

// sessionOptions assembles the loader and stamp for steps.
func sessionOptions(cmd *cobra.Command, cfg *config.RenderConfig, steps []int) (session.Options, error) {
	loader, err := newLoader(cfg, steps[0])
	if err != nil {
		return session.Options{}, err
	}
	return session.Options{Steps: steps, Loader: loader, Stamp: stampFunc(cmd, cfg)}, nil
}
