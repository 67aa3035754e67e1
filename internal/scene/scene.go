package scene

import (
	"github.com/san-kum/streams3d/internal/scale"
	"github.com/san-kum/streams3d/internal/streams"
)

// Scene is the renderer-independent description of one render.
type Scene struct {
	TimeStep    int         `json:"time_step"`
	RenderIndex int         `json:"render_index"`
	Title       string      `json:"title"`
	Quantity    string      `json:"quantity"`
	ColorScale  string      `json:"color_scale"`
	DataScale   scale.Kind  `json:"data_scale"`
	Domain      Domain      `json:"domain"`
	Multipliers Multipliers `json:"multipliers"`
	Camera      Camera      `json:"camera"`
	Axes        Axes        `json:"axes"`
	Sun         Sun         `json:"sun"`
	Highlight   string      `json:"highlight,omitempty"`
	FontSize    float64     `json:"font_size"`
	Entries     []Entry     `json:"entries"`

	// Skipped lists streams left out under the skip domain policy.
	Skipped []streams.StreamID `json:"skipped,omitempty"`
}

// Fill returns the color of e: the highlight color for active entries when
// one is set, otherwise "" meaning the color scale applies.
func (s *Scene) Fill(e Entry) string {
	if e.Role == streams.Active && s.Highlight != "" {
		return s.Highlight
	}
	return ""
}

// Entry is one stream's render parameters.
type Entry struct {
	ID       streams.StreamID `json:"id"`
	Role     streams.Role     `json:"role"`
	Position streams.Vec3     `json:"position"`
	Path     []streams.Vec3   `json:"path,omitempty"`
	Value    float64          `json:"value"`
	Color    float64          `json:"color"`
	Size     float64          `json:"size"`
}

type Domain struct {
	Min float64  `json:"min"`
	Max float64  `json:"max"`
	Mid *float64 `json:"mid,omitempty"`
}

func (d Domain) clone() Domain {
	if d.Mid != nil {
		mid := *d.Mid
		d.Mid = &mid
	}
	return d
}

// Multipliers are the resize multipliers applied to each role in this render.
type Multipliers struct {
	Active     float64 `json:"active"`
	Background float64 `json:"background"`
}

func (m Multipliers) For(role streams.Role) float64 {
	if role == streams.Active {
		return m.Active
	}
	return m.Background
}

// Count returns the number of entries with role.
func (s *Scene) Count(role streams.Role) int {
	n := 0
	for _, e := range s.Entries {
		if e.Role == role {
			n++
		}
	}
	return n
}

// Entry returns the entry for id.
func (s *Scene) Entry(id streams.StreamID) (Entry, bool) {
	for _, e := range s.Entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// Extent returns the largest absolute coordinate over all entries and paths,
// or 1 for an empty scene.
func (s *Scene) Extent() float64 {
	ext := 0.0
	grow := func(v streams.Vec3) {
		ext = max(ext, abs(v.X), abs(v.Y), abs(v.Z))
	}
	for _, e := range s.Entries {
		grow(e.Position)
		for _, p := range e.Path {
			grow(p)
		}
	}
	if ext == 0 {
		return 1
	}
	return ext
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
