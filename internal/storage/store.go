package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/streams3d/internal/scene"
	"github.com/san-kum/streams3d/internal/streams"
)

// Store keeps rendered scenes on disk, one directory per render.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RenderMetadata struct {
	ID          string             `json:"id"`
	Quantity    string             `json:"quantity"`
	Mode        string             `json:"mode"`
	ColorScale  string             `json:"color_scale"`
	DataScale   string             `json:"data_scale"`
	TimeStep    int                `json:"time_step"`
	RenderIndex int                `json:"render_index"`
	Timestamp   time.Time          `json:"timestamp"`
	Title       string             `json:"title"`
	Domain      scene.Domain       `json:"domain"`
	Multipliers scene.Multipliers  `json:"multipliers"`
	Entries     int                `json:"entries"`
	Skipped     []streams.StreamID `json:"skipped,omitempty"`
	Figure      string             `json:"figure,omitempty"`
}

// RunID names the directory a render is stored under. Re-rendering the same
// time step and index replaces the previous render.
func RunID(quantity, mode string, timeStep, renderIndex int) string {
	return fmt.Sprintf("%s_%s_%06d_r%d", quantity, mode, timeStep, renderIndex)
}

var entriesHeader = []string{"id", "role", "x", "y", "z", "value", "color", "size"}

// Save writes metadata.json and entries.csv for sc. figure is the path of the
// rendered image, if any.
func (s *Store) Save(sc *scene.Scene, mode, figure string) (string, error) {
	runID := RunID(sc.Quantity, mode, sc.TimeStep, sc.RenderIndex)
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RenderMetadata{
		ID:          runID,
		Quantity:    sc.Quantity,
		Mode:        mode,
		ColorScale:  sc.ColorScale,
		DataScale:   string(sc.DataScale),
		TimeStep:    sc.TimeStep,
		RenderIndex: sc.RenderIndex,
		Timestamp:   time.Now(),
		Title:       sc.Title,
		Domain:      sc.Domain,
		Multipliers: sc.Multipliers,
		Entries:     len(sc.Entries),
		Skipped:     sc.Skipped,
		Figure:      figure,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "entries.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write(entriesHeader); err != nil {
		return "", err
	}
	for _, e := range sc.Entries {
		row := []string{
			e.ID.String(),
			e.Role.String(),
			formatFloat(e.Position.X),
			formatFloat(e.Position.Y),
			formatFloat(e.Position.Z),
			formatFloat(e.Value),
			formatFloat(e.Color),
			formatFloat(e.Size),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return runID, nil
}

// List returns the stored renders ordered by time step, then render index.
func (s *Store) List() ([]RenderMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RenderMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RenderMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		if runs[i].TimeStep != runs[j].TimeStep {
			return runs[i].TimeStep < runs[j].TimeStep
		}
		if runs[i].RenderIndex != runs[j].RenderIndex {
			return runs[i].RenderIndex < runs[j].RenderIndex
		}
		return runs[i].ID < runs[j].ID
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RenderMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RenderMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadEntries reads back the entries of a stored render. Paths are not
// stored.
func (s *Store) LoadEntries(runID string) ([]scene.Entry, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "entries.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(entriesHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []scene.Entry{}, nil
	}

	out := make([]scene.Entry, 0, len(records)-1)
	for i, record := range records[1:] {
		e, err := parseEntry(record)
		if err != nil {
			return nil, fmt.Errorf("%s entries line %d: %w", runID, i+2, err)
		}
		out = append(out, e)
	}
	return out, nil
}

func parseEntry(record []string) (scene.Entry, error) {
	var e scene.Entry
	id, err := strconv.Atoi(record[0])
	if err != nil {
		return e, err
	}
	e.ID = streams.StreamID(id)
	if err := e.Role.UnmarshalText([]byte(record[1])); err != nil {
		return e, err
	}
	var vals [6]float64
	for i := range vals {
		if vals[i], err = strconv.ParseFloat(record[2+i], 64); err != nil {
			return e, err
		}
	}
	e.Position = streams.Vec3{X: vals[0], Y: vals[1], Z: vals[2]}
	e.Value, e.Color, e.Size = vals[3], vals[4], vals[5]
	return e, nil
}
