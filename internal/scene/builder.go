package scene

import (
	"errors"
	"fmt"

	"github.com/san-kum/streams3d/internal/config"
	"github.com/san-kum/streams3d/internal/resize"
	"github.com/san-kum/streams3d/internal/scale"
	"github.com/san-kum/streams3d/internal/selector"
	"github.com/san-kum/streams3d/internal/streams"
)

type Builder struct {
	cfg    *config.RenderConfig
	policy *resize.Policy
	domain Domain
	skip   bool

	title  string
	camera Camera
	axes   Axes
	sun    Sun
}

type Option func(*Builder)

// WithStamp sets the time label used in the scene title. Without it the
// title shows the time step index.
func WithStamp(stamp string) Option {
	return func(b *Builder) { b.title = Title(b.cfg, stamp) }
}

// NewBuilder validates cfg and prepares everything that does not depend on
// the streams of a render. cfg is copied; later changes to it have no effect.
func NewBuilder(cfg *config.RenderConfig, opts ...Option) (*Builder, error) {
	if cfg == nil {
		return nil, streams.NewConfigError("config", "nil render config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	own := cfg.Clone()
	bounds, ok := own.BoundsFor(own.Quantity)
	if own.Quantity == "" || !ok {
		return nil, &streams.IncompleteConfigError{Quantity: own.Quantity}
	}
	policy, err := resize.NewPolicy(own.Resize)
	if err != nil {
		return nil, err
	}

	b := &Builder{
		cfg:    own,
		policy: policy,
		domain: Domain{Min: bounds.Min, Max: bounds.Max, Mid: bounds.Mid},
		skip:   own.DomainPolicy == config.PolicySkip,
		camera: CameraFrom(own.Camera),
		axes:   AxesFrom(own.Axes),
		sun:    SunFrom(own),
	}
	b.title = Title(own, fmt.Sprintf("step %d", own.TimeStep))
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

func (b *Builder) Config() *config.RenderConfig { return b.cfg.Clone() }

func (b *Builder) Policy() *resize.Policy { return b.policy }

// Build assembles the scene for one render. The streams must have distinct
// ids; the active set comes from the configuration. On error st is left
// unchanged.
func (b *Builder) Build(in []streams.Stream, renderIndex int, st *resize.State) (*Scene, error) {
	if st == nil {
		return nil, errors.New("scene: nil resize state")
	}
	if renderIndex < 0 {
		return nil, fmt.Errorf("scene: negative render index %d", renderIndex)
	}

	byID := make(map[streams.StreamID]streams.Stream, len(in))
	universe := make([]streams.StreamID, 0, len(in))
	for _, s := range in {
		if _, dup := byID[s.ID]; dup {
			return nil, streams.NewConfigError("streams", "duplicate stream id %d", s.ID)
		}
		byID[s.ID] = s
		universe = append(universe, s.ID)
	}
	sortIDs(universe)

	active, background, err := selector.Partition(universe, b.cfg.ActiveIDs)
	if err != nil {
		return nil, err
	}

	colors := make(map[streams.StreamID]float64, len(in))
	var skipped []streams.StreamID
	for _, id := range universe {
		c, err := b.normalize(byID[id].Value)
		if err != nil {
			if b.skip && errors.Is(err, streams.ErrDomain) {
				skipped = append(skipped, id)
				continue
			}
			return nil, fmt.Errorf("stream %d: %w", id, err)
		}
		colors[id] = c
	}

	mult := Multipliers{
		Active:     b.policy.SizeMultiplier(renderIndex, streams.Active, st),
		Background: b.policy.SizeMultiplier(renderIndex, streams.Background, st),
	}

	entries := make([]Entry, 0, len(colors))
	add := func(ids []streams.StreamID, role streams.Role) {
		size := mult.For(role) * b.cfg.MarkerSize
		for _, id := range ids {
			c, ok := colors[id]
			if !ok {
				continue
			}
			s := byID[id].Clone()
			entries = append(entries, Entry{
				ID:       id,
				Role:     role,
				Position: s.Position,
				Path:     s.Path,
				Value:    s.Value,
				Color:    c,
				Size:     size,
			})
		}
	}
	add(active, streams.Active)
	add(background, streams.Background)
	sortEntries(entries)

	return &Scene{
		TimeStep:    b.cfg.TimeStep,
		RenderIndex: renderIndex,
		Title:       b.title,
		Quantity:    b.cfg.Quantity,
		ColorScale:  b.cfg.ColorScaleOrDefault(),
		DataScale:   b.cfg.DataScaleOrDefault(),
		Domain:      b.domain.clone(),
		Multipliers: mult,
		Camera:      b.camera,
		Axes:        b.axes,
		Sun:         b.sun,
		Highlight:   b.cfg.HighlightColor,
		FontSize:    b.cfg.Axes.FontSize,
		Entries:     entries,
		Skipped:     sortIDs(skipped),
	}, nil
}

func (b *Builder) normalize(v float64) (float64, error) {
	kind := b.cfg.DataScaleOrDefault()
	if b.cfg.Clamp {
		return scale.NormalizeClamped(v, kind, b.domain.Min, b.domain.Max)
	}
	return scale.Normalize(v, kind, b.domain.Min, b.domain.Max)
}

// Build is a one-shot form of NewBuilder followed by Builder.Build.
func Build(in []streams.Stream, cfg *config.RenderConfig, renderIndex int, st *resize.State) (*Scene, error) {
	b, err := NewBuilder(cfg)
	if err != nil {
		return nil, err
	}
	return b.Build(in, renderIndex, st)
}
