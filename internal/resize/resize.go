// Package resize decides how marker sizes grow from one render to the next.
//
// A [Policy] is interval-gated: a role's step count grows by one every
// [Config.Every] renders, and the multiplier grows with the step count as
// Factor^(steps^Power). Active and background streams keep independent
// counters in a [State], so one role can grow while the other stays fixed.
//
// A State belongs to one render session and is not safe for concurrent use.
package resize

import (
	"math"
	"strings"

	"github.com/san-kum/streams3d/internal/streams"
)

type Mode string

const (
	ModeNone       Mode = "none"
	ModeBackground Mode = "background"
	ModeActive     Mode = "active"
	ModeAll        Mode = "all"
)

func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ModeNone, nil
	case ModeNone, ModeBackground, ModeActive, ModeAll:
		return m, nil
	}
	return "", streams.NewConfigError("resize", "unknown mode %q (want background, active, all or none)", s)
}

// UnmarshalText parses m with ParseMode, so config files may use any case.
func (m *Mode) UnmarshalText(b []byte) error {
	v, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Applies reports whether the mode resizes markers of role.
func (m Mode) Applies(role streams.Role) bool {
	switch m {
	case ModeAll:
		return true
	case ModeActive:
		return role == streams.Active
	case ModeBackground:
		return role == streams.Background
	}
	return false
}

type Config struct {
	Mode   Mode    `yaml:"mode" toml:"mode"`
	Every  int     `yaml:"every" toml:"every"`
	Factor float64 `yaml:"factor" toml:"factor"`
	Power  float64 `yaml:"power" toml:"power"`
}

func DefaultConfig() Config {
	return Config{Mode: ModeNone, Every: 1, Factor: 2.0, Power: 0.0}
}

func (c Config) Validate() error {
	m, err := ParseMode(string(c.Mode))
	if err != nil {
		return err
	}
	if c.Mode != "" && m != c.Mode {
		return streams.NewConfigError("resize.mode", "mode %q must be written as %q", c.Mode, m)
	}
	if c.Every <= 0 {
		return streams.NewConfigError("resize.every", "must be at least 1, got %d", c.Every)
	}
	if !(c.Factor > 0) || math.IsInf(c.Factor, 0) {
		return streams.NewConfigError("resize.factor", "must be a positive finite number, got %g", c.Factor)
	}
	if math.IsNaN(c.Power) || math.IsInf(c.Power, 0) {
		return streams.NewConfigError("resize.power", "must be finite, got %g", c.Power)
	}
	return nil
}

type Policy struct {
	cfg Config
}

func NewPolicy(cfg Config) (*Policy, error) {
	if cfg.Mode == "" {
		cfg.Mode = ModeNone
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Policy{cfg: cfg}, nil
}

func (p *Policy) Config() Config { return p.cfg }

// SizeMultiplier returns the marker-size multiplier for role at renderIndex
// and advances the role's counters in st. Roles the mode does not cover get
// 1.0 and leave st untouched.
func (p *Policy) SizeMultiplier(renderIndex int, role streams.Role, st *State) float64 {
	if p.cfg.Mode == ModeNone || !p.cfg.Mode.Applies(role) {
		return 1.0
	}
	c := st.counter(role)
	c.advance(renderIndex, p.cfg.Every)
	return p.multiplier(c.steps)
}

func (p *Policy) multiplier(steps int) float64 {
	if steps == 0 {
		return 1.0
	}
	n := float64(steps)
	if p.cfg.Power == 0 {
		return math.Pow(p.cfg.Factor, n)
	}
	return math.Pow(p.cfg.Factor, math.Pow(n, p.cfg.Power))
}

// Schedule returns the multipliers role receives for renders 0..n-1 under a
// fresh state.
func Schedule(cfg Config, role streams.Role, n int) ([]float64, error) {
	p, err := NewPolicy(cfg)
	if err != nil {
		return nil, err
	}
	st := NewState()
	out := make([]float64, n)
	for i := range out {
		out[i] = p.SizeMultiplier(i, role, st)
	}
	return out, nil
}
