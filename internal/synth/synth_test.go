package synth

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/streams3d/internal/storage"
	"github.com/san-kum/streams3d/internal/streams"
)

func TestSnapshotShape(t *testing.T) {
	o := DefaultOptions()
	got, err := Snapshot(o, 0)
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}
	if len(got) != o.Count() {
		t.Fatalf("expected %d streams, got %d", o.Count(), len(got))
	}
	for i, s := range got {
		if s.ID != streams.StreamID(i) {
			t.Errorf("expected id %d, got %d", i, s.ID)
		}
		if len(s.Path) != o.Nodes {
			t.Errorf("stream %d: expected %d nodes, got %d", i, o.Nodes, len(s.Path))
		}
		if !(s.Value > 0) {
			t.Errorf("stream %d: expected positive value, got %g", i, s.Value)
		}
		if r := s.Position.Length(); math.Abs(r-o.OuterRadius) > 1e-9 {
			t.Errorf("stream %d: expected outer radius, got %g", i, r)
		}
	}
}

func TestSnapshotSpiral(t *testing.T) {
	o := DefaultOptions()
	o.Longitudes, o.Latitudes, o.Noise = 1, 1, 0
	got, _ := Snapshot(o, 0)

	path := got[0].Path
	_, _, phiIn := streams.XYZToRTP(path[0])
	_, _, phiOut := streams.XYZToRTP(path[len(path)-1])
	// the field line winds westward (decreasing longitude) with distance
	if d := angularDistance(phiIn, phiOut); d <= 0 {
		t.Errorf("expected field line to wind, got %g", d)
	}
}

func TestSnapshotPeaksAtEvent(t *testing.T) {
	o := DefaultOptions()
	o.Latitudes, o.Noise = 1, 0
	got, _ := Snapshot(o, 3)

	peak := 0
	for i, s := range got {
		if s.Value > got[peak].Value {
			peak = i
		}
	}
	if peak != 0 {
		t.Errorf("expected stream at event longitude to peak, got stream %d", peak)
	}
}

func TestSnapshotDeterministic(t *testing.T) {
	o := DefaultOptions()
	a, _ := Snapshot(o, 5)
	b, _ := Snapshot(o, 5)
	for i := range a {
		if a[i].Value != b[i].Value {
			t.Fatalf("stream %d: %g != %g", i, a[i].Value, b[i].Value)
		}
	}
}

func TestSnapshotValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Options)
	}{
		{"no longitudes", func(o *Options) { o.Longitudes = 0 }},
		{"one node", func(o *Options) { o.Nodes = 1 }},
		{"inverted radii", func(o *Options) { o.OuterRadius = o.InnerRadius }},
		{"no wind", func(o *Options) { o.WindSpeed = 0 }},
		{"zero floor", func(o *Options) { o.Floor = 0 }},
		{"noise", func(o *Options) { o.Noise = 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := DefaultOptions()
			tt.mutate(&o)
			_, err := Snapshot(o, 0)
			if !errors.Is(err, streams.ErrConfig) {
				t.Errorf("expected config error, got %v", err)
			}
		})
	}

	if _, err := Snapshot(DefaultOptions(), -1); err == nil {
		t.Error("expected error for negative step")
	}
}

func TestSnapshotCSVRoundTrip(t *testing.T) {
	in, err := Snapshot(DefaultOptions(), 2)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := storage.WriteSnapshot(&buf, in); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	out, err := storage.ReadSnapshot(&buf)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	if len(out) != len(in) {
		t.Fatalf("expected %d streams, got %d", len(in), len(out))
	}
	for i := range in {
		if out[i].Value != in[i].Value || out[i].Position != in[i].Position {
			t.Errorf("stream %d changed", i)
		}
	}
}

func TestDays(t *testing.T) {
	if got := Days(36); got != 1.5 {
		t.Errorf("expected 1.5 days, got %g", got)
	}
}
