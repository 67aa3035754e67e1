package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/san-kum/streams3d/internal/streams"
)

var snapshotHeader = []string{"stream", "node", "x", "y", "z", "value"}

type node struct {
	index int
	pos   streams.Vec3
	value float64
}

// ReadSnapshot parses one time step of stream samples. Each row is a node of
// a stream's field line; the node with the highest index gives the stream's
// position and value. Streams come back ordered by id.
func ReadSnapshot(r io.Reader) ([]streams.Stream, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(snapshotHeader)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("snapshot: missing header")
		}
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	if !slices.Equal(header, snapshotHeader) {
		return nil, fmt.Errorf("snapshot: unexpected header %v", header)
	}

	nodes := make(map[streams.StreamID][]node)
	for line := 2; ; line++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("snapshot: %w", err)
		}
		id, n, err := parseRow(record)
		if err != nil {
			return nil, fmt.Errorf("snapshot line %d: %w", line, err)
		}
		nodes[id] = append(nodes[id], n)
	}

	out := make([]streams.Stream, 0, len(nodes))
	for id, ns := range nodes {
		slices.SortFunc(ns, func(a, b node) int { return a.index - b.index })
		for i := 1; i < len(ns); i++ {
			if ns[i].index == ns[i-1].index {
				return nil, fmt.Errorf("snapshot: stream %d has duplicate node %d", id, ns[i].index)
			}
		}
		path := make([]streams.Vec3, len(ns))
		for i, n := range ns {
			path[i] = n.pos
		}
		last := ns[len(ns)-1]
		out = append(out, streams.Stream{ID: id, Position: last.pos, Value: last.value, Path: path})
	}
	slices.SortFunc(out, func(a, b streams.Stream) int { return int(a.ID) - int(b.ID) })
	return out, nil
}

func parseRow(record []string) (streams.StreamID, node, error) {
	id, err := strconv.Atoi(record[0])
	if err != nil || id < 0 {
		return 0, node{}, fmt.Errorf("bad stream id %q", record[0])
	}
	idx, err := strconv.Atoi(record[1])
	if err != nil || idx < 0 {
		return 0, node{}, fmt.Errorf("bad node index %q", record[1])
	}
	var vals [4]float64
	for i := range vals {
		v, err := strconv.ParseFloat(record[2+i], 64)
		if err != nil {
			return 0, node{}, fmt.Errorf("bad %s %q", snapshotHeader[2+i], record[2+i])
		}
		vals[i] = v
	}
	return streams.StreamID(id), node{
		index: idx,
		pos:   streams.Vec3{X: vals[0], Y: vals[1], Z: vals[2]},
		value: vals[3],
	}, nil
}

// WriteSnapshot writes streams in the format ReadSnapshot reads. A stream
// without a path is written as a single node at its position.
func WriteSnapshot(w io.Writer, in []streams.Stream) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(snapshotHeader); err != nil {
		return err
	}
	for _, s := range in {
		path := s.Path
		if len(path) == 0 {
			path = []streams.Vec3{s.Position}
		}
		for i, p := range path {
			// only the final node carries the sampled value
			v := 0.0
			if i == len(path)-1 {
				v = s.Value
			}
			row := []string{
				s.ID.String(),
				strconv.Itoa(i),
				formatFloat(p.X),
				formatFloat(p.Y),
				formatFloat(p.Z),
				formatFloat(v),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func LoadSnapshot(path string) ([]streams.Stream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	out, err := ReadSnapshot(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return out, nil
}

func SaveSnapshot(path string, in []streams.Stream) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteSnapshot(f, in); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

const snapshotPattern = "snapshot_%06d.csv"

// SnapshotPath is where the snapshot for step lives under dir.
func SnapshotPath(dir string, step int) string {
	return filepath.Join(dir, fmt.Sprintf(snapshotPattern, step))
}

// SnapshotSteps lists the time steps with a snapshot file in dir, ascending.
func SnapshotSteps(dir string) ([]int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	steps := make([]int, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		num, ok := strings.CutPrefix(e.Name(), "snapshot_")
		if !ok {
			continue
		}
		num, ok = strings.CutSuffix(num, ".csv")
		if !ok {
			continue
		}
		step, err := strconv.Atoi(num)
		if err != nil || step < 0 {
			continue
		}
		steps = append(steps, step)
	}
	slices.Sort(steps)
	return steps, nil
}
