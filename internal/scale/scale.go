package scale

import (
	"math"
	"strings"

	"github.com/san-kum/streams3d/internal/streams"
)

type Kind string

const (
	Linear Kind = "linear"
	Log    Kind = "log"
)

func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case Linear, "":
		return Linear, nil
	case Log:
		return Log, nil
	}
	return "", streams.NewConfigError("data_scale", "unknown scale %q (want linear or log)", s)
}

// UnmarshalText parses k with ParseKind, so config files may use any case.
func (k *Kind) UnmarshalText(b []byte) error {
	v, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// Normalize maps value into the domain [min, max] under kind. The result is
// not clamped; values outside the domain map outside [0, 1].
func Normalize(value float64, kind Kind, min, max float64) (float64, error) {
	if err := checkDomain(value, kind, min, max); err != nil {
		return 0, err
	}
	switch kind {
	case Log:
		lo := math.Log(min)
		return (math.Log(value) - lo) / (math.Log(max) - lo), nil
	default:
		return (value - min) / (max - min), nil
	}
}

// NormalizeClamped is Normalize clipped to [0, 1].
func NormalizeClamped(value float64, kind Kind, min, max float64) (float64, error) {
	n, err := Normalize(value, kind, min, max)
	if err != nil {
		return 0, err
	}
	return clamp01(n), nil
}

func checkDomain(value float64, kind Kind, min, max float64) error {
	fail := func(reason string) error {
		return &streams.DomainError{Scale: string(kind), Value: value, Min: min, Max: max, Reason: reason}
	}
	if math.IsNaN(value) || math.IsNaN(min) || math.IsNaN(max) {
		return fail("NaN")
	}
	if max <= min {
		return fail("max must exceed min")
	}
	switch kind {
	case Linear:
	case Log:
		if min <= 0 {
			return fail("log scale needs a positive lower bound")
		}
		if value <= 0 {
			return fail("log scale needs a positive value")
		}
	default:
		return fail("unknown scale")
	}
	return nil
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}

// Mapper binds a scale to fixed bounds.
type Mapper struct {
	Kind     Kind
	Min, Max float64
	Clamp    bool
}

// NewMapper validates the bounds once. Static bounds are configuration, so a
// bad domain is reported as a ConfigError rather than a DomainError.
func NewMapper(kind Kind, min, max float64, clamp bool) (Mapper, error) {
	if kind != Linear && kind != Log {
		return Mapper{}, streams.NewConfigError("data_scale", "unknown scale %q", kind)
	}
	if !(max > min) {
		return Mapper{}, streams.NewConfigError("bounds", "max (%g) must exceed min (%g)", max, min)
	}
	if kind == Log && min <= 0 {
		return Mapper{}, streams.NewConfigError("bounds", "log scale needs min > 0, got %g", min)
	}
	return Mapper{Kind: kind, Min: min, Max: max, Clamp: clamp}, nil
}

func (m Mapper) Map(value float64) (float64, error) {
	if m.Clamp {
		return NormalizeClamped(value, m.Kind, m.Min, m.Max)
	}
	return Normalize(value, m.Kind, m.Min, m.Max)
}

// Log10Values returns log10 of each value, replacing zeros with the smallest
// positive float first. Negative values yield NaN.
func Log10Values(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		if v == 0 {
			v = math.SmallestNonzeroFloat64
		}
		out[i] = math.Log10(v)
	}
	return out
}
