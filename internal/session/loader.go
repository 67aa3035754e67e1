package session

import (
	"github.com/san-kum/streams3d/internal/storage"
	"github.com/san-kum/streams3d/internal/streams"
	"github.com/san-kum/streams3d/internal/synth"
)

// Loader returns the streams of one time step. Implementations must be safe
// for concurrent use when passed to Batch.
type Loader interface {
	Load(step int) ([]streams.Stream, error)
}

type LoaderFunc func(step int) ([]streams.Stream, error)

func (f LoaderFunc) Load(step int) ([]streams.Stream, error) { return f(step) }

// DirLoader reads snapshot files written by storage.SaveSnapshot.
type DirLoader struct {
	Dir string
}

func (l DirLoader) Load(step int) ([]streams.Stream, error) {
	return storage.LoadSnapshot(storage.SnapshotPath(l.Dir, step))
}

// SynthLoader generates synthetic snapshots.
type SynthLoader struct {
	Options synth.Options
}

func (l SynthLoader) Load(step int) ([]streams.Stream, error) {
	return synth.Snapshot(l.Options, step)
}

// Subset keeps only the streams whose ids are in IDs. An empty IDs keeps
// every stream.
type Subset struct {
	Loader Loader
	IDs    []streams.StreamID
}

func (l Subset) Load(step int) ([]streams.Stream, error) {
	in, err := l.Loader.Load(step)
	if err != nil || len(l.IDs) == 0 {
		return in, err
	}
	keep := make(map[streams.StreamID]bool, len(l.IDs))
	for _, id := range l.IDs {
		keep[id] = true
	}
	out := in[:0:0]
	for _, s := range in {
		if keep[s.ID] {
			out = append(out, s)
		}
	}
	return out, nil
}
