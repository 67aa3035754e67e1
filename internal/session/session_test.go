package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/san-kum/streams3d/internal/config"
	"github.com/san-kum/streams3d/internal/resize"
	"github.com/san-kum/streams3d/internal/scene"
	"github.com/san-kum/streams3d/internal/storage"
	"github.com/san-kum/streams3d/internal/streams"
	"github.com/san-kum/streams3d/internal/synth"
)

func testConfig() *config.RenderConfig {
	cfg := config.DefaultConfig()
	cfg.Quantity = "flux"
	cfg.DataScale = "log"
	cfg.Bounds["flux"] = config.Bounds{Min: 1e-3, Max: 1e3}
	cfg.Clamp = true
	cfg.ActiveIDs = []streams.StreamID{0, 1, 2}
	cfg.Resize = resize.Config{Mode: resize.ModeAll, Every: 2, Factor: 1.5, Power: 1}
	return cfg
}

func testOptions() Options {
	o := synth.DefaultOptions()
	o.Longitudes, o.Latitudes, o.Nodes = 4, 2, 4
	return Options{
		Steps:  []int{0, 2, 4, 6, 8},
		Loader: SynthLoader{Options: o},
	}
}

func TestSessionSequence(t *testing.T) {
	s, err := New(testConfig(), testOptions())
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	scenes, err := s.All(context.Background())
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if len(scenes) != 5 || !s.Done() {
		t.Fatalf("expected 5 scenes, got %d", len(scenes))
	}

	want := []float64{1, 1, 1.5, 1.5, 2.25}
	for i, sc := range scenes {
		if sc.RenderIndex != i {
			t.Errorf("expected render index %d, got %d", i, sc.RenderIndex)
		}
		if sc.TimeStep != 2*i {
			t.Errorf("expected time step %d, got %d", 2*i, sc.TimeStep)
		}
		if sc.Multipliers.Active != want[i] || sc.Multipliers.Background != want[i] {
			t.Errorf("render %d: expected multiplier %v, got %+v", i, want[i], sc.Multipliers)
		}
	}

	if _, err := s.Next(); err == nil {
		t.Error("expected error past the last render")
	}

	s.Reset()
	sc, err := s.Next()
	if err != nil || sc.RenderIndex != 0 || sc.Multipliers.Active != 1 {
		t.Errorf("expected reset session to start over, got %+v, %v", sc, err)
	}
}

func TestBatchMatchesSession(t *testing.T) {
	s, _ := New(testConfig(), testOptions())
	seq, err := s.All(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	par, err := Batch(context.Background(), testConfig(), testOptions(), 3)
	if err != nil {
		t.Fatalf("batch failed: %v", err)
	}

	if len(par) != len(seq) {
		t.Fatalf("expected %d scenes, got %d", len(seq), len(par))
	}
	for i := range seq {
		if par[i].Multipliers != seq[i].Multipliers {
			t.Errorf("render %d: batch %+v, session %+v", i, par[i].Multipliers, seq[i].Multipliers)
		}
		if len(par[i].Entries) != len(seq[i].Entries) {
			t.Errorf("render %d: entry count differs", i)
		}
		for j := range seq[i].Entries {
			if par[i].Entries[j].Size != seq[i].Entries[j].Size || par[i].Entries[j].Color != seq[i].Entries[j].Color {
				t.Errorf("render %d entry %d differs", i, j)
			}
		}
	}
}

func TestSessionLoadError(t *testing.T) {
	boom := errors.New("boom")
	opts := testOptions()
	inner := opts.Loader
	opts.Loader = LoaderFunc(func(step int) ([]streams.Stream, error) {
		if step == 4 {
			return nil, boom
		}
		return inner.Load(step)
	})

	s, _ := New(testConfig(), opts)
	scenes, err := s.All(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected load error, got %v", err)
	}
	if len(scenes) != 2 {
		t.Errorf("expected 2 scenes before the failure, got %d", len(scenes))
	}

	if _, err := Batch(context.Background(), testConfig(), opts, 2); !errors.Is(err, boom) {
		t.Errorf("expected batch to fail with load error, got %v", err)
	}
}

func TestSessionValidation(t *testing.T) {
	tests := []struct {
		name   string
		cfg    func(*config.RenderConfig)
		opts   func(*Options)
		target error
	}{
		{"no loader", nil, func(o *Options) { o.Loader = nil }, nil},
		{"no steps", nil, func(o *Options) { o.Steps = nil }, nil},
		{"negative step", nil, func(o *Options) { o.Steps = []int{-1} }, nil},
		{"missing bounds", func(c *config.RenderConfig) { c.Quantity = "density" }, nil, streams.ErrIncompleteConfig},
		{"bad resize", func(c *config.RenderConfig) { c.Resize.Every = 0 }, nil, streams.ErrConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, opts := testConfig(), testOptions()
			if tt.cfg != nil {
				tt.cfg(cfg)
			}
			if tt.opts != nil {
				tt.opts(&opts)
			}
			_, err := New(cfg, opts)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.target != nil && !errors.Is(err, tt.target) {
				t.Errorf("expected %v, got %v", tt.target, err)
			}
		})
	}
}

func TestSessionStamp(t *testing.T) {
	opts := testOptions()
	opts.Stamp = func(step int) (string, error) { return fmt.Sprintf("day %d", step), nil }

	s, _ := New(testConfig(), opts)
	sc, err := s.Next()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(sc.Title, "t = day 0") {
		t.Errorf("unexpected title %q", sc.Title)
	}
}

func TestDirLoader(t *testing.T) {
	dir := t.TempDir()
	o := synth.DefaultOptions()
	for _, step := range []int{1, 2} {
		in, _ := synth.Snapshot(o, step)
		if err := storage.SaveSnapshot(storage.SnapshotPath(dir, step), in); err != nil {
			t.Fatal(err)
		}
	}

	steps, err := storage.SnapshotSteps(dir)
	if err != nil {
		t.Fatal(err)
	}
	cfg := testConfig()
	s, err := New(cfg, Options{Steps: steps, Loader: DirLoader{Dir: dir}})
	if err != nil {
		t.Fatal(err)
	}
	scenes, err := s.All(context.Background())
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if len(scenes) != 2 || len(scenes[1].Entries) != o.Count() {
		t.Errorf("expected 2 scenes of %d entries", o.Count())
	}
}

func TestForEach(t *testing.T) {
	scenes := make([]*scene.Scene, 10)
	for i := range scenes {
		scenes[i] = &scene.Scene{RenderIndex: i}
	}

	var sum atomic.Int64
	err := ForEach(context.Background(), scenes, 4, func(_ context.Context, sc *scene.Scene) error {
		sum.Add(int64(sc.RenderIndex))
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if sum.Load() != 45 {
		t.Errorf("expected every scene visited, got sum %d", sum.Load())
	}

	boom := errors.New("boom")
	err = ForEach(context.Background(), scenes, 2, func(_ context.Context, sc *scene.Scene) error {
		if sc.RenderIndex == 3 {
			return boom
		}
		return nil
	})
	if !errors.Is(err, boom) {
		t.Errorf("expected boom, got %v", err)
	}
}

func TestSubset(t *testing.T) {
	o := synth.DefaultOptions()
	l := Subset{Loader: SynthLoader{Options: o}, IDs: []streams.StreamID{1, 3, 99}}

	got, err := l.Load(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 3 {
		t.Errorf("expected streams 1 and 3, got %d streams", len(got))
	}

	all, _ := Subset{Loader: SynthLoader{Options: o}}.Load(0)
	if len(all) != o.Count() {
		t.Errorf("expected %d streams, got %d", o.Count(), len(all))
	}
}
