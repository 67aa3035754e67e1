package scene_test

import (
	"math"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/streams3d/internal/config"
	"github.com/san-kum/streams3d/internal/resize"
	"github.com/san-kum/streams3d/internal/scale"
	"github.com/san-kum/streams3d/internal/scene"
	"github.com/san-kum/streams3d/internal/streams"
)

func sixStreams() []streams.Stream {
	out := make([]streams.Stream, 6)
	for i := range out {
		angle := float64(i) * math.Pi / 3
		out[i] = streams.Stream{
			ID:       streams.StreamID(i),
			Position: streams.Vec3{X: 10 * math.Cos(angle), Y: 10 * math.Sin(angle)},
			Value:    float64(i + 1),
			Path:     []streams.Vec3{{X: 1}, {X: 5}},
		}
	}
	return out
}

func ptr(v float64) *float64 { return &v }

func fluxConfig() *config.RenderConfig {
	cfg := config.DefaultConfig()
	cfg.Quantity = "flux"
	cfg.Bounds["flux"] = config.Bounds{Min: 1, Max: 6}
	cfg.ActiveIDs = []streams.StreamID{0, 1, 2}
	return cfg
}

var _ = Describe("Builder", func() {
	var (
		cfg *config.RenderConfig
		st  *resize.State
	)

	BeforeEach(func() {
		cfg = fluxConfig()
		st = resize.NewState()
	})

	Context("end to end", func() {
		It("grows active markers and leaves background markers alone", func() {
			cfg.MarkerSize = 2
			cfg.Resize = resize.Config{Mode: resize.ModeActive, Every: 1, Factor: 1.5, Power: 0}

			sc, err := scene.Build(sixStreams(), cfg, 1, st)
			Expect(err).NotTo(HaveOccurred())
			Expect(sc.Entries).To(HaveLen(6))
			Expect(sc.Multipliers.Active).To(BeNumerically("~", 1.5, 1e-12))
			Expect(sc.Multipliers.Background).To(Equal(1.0))

			for _, e := range sc.Entries {
				if e.ID <= 2 {
					Expect(e.Role).To(Equal(streams.Active))
					Expect(e.Size).To(BeNumerically("~", 3.0, 1e-12))
				} else {
					Expect(e.Role).To(Equal(streams.Background))
					Expect(e.Size).To(Equal(2.0))
				}
			}
		})
	})

	It("orders entries by id regardless of input order", func() {
		in := sixStreams()
		reversed := make([]streams.Stream, len(in))
		for i, s := range in {
			reversed[len(in)-1-i] = s
		}

		sc, err := scene.Build(reversed, cfg, 0, st)
		Expect(err).NotTo(HaveOccurred())
		for i, e := range sc.Entries {
			Expect(e.ID).To(Equal(streams.StreamID(i)))
		}
	})

	It("normalizes each stream's value into the quantity's domain", func() {
		sc, err := scene.Build(sixStreams(), cfg, 0, st)
		Expect(err).NotTo(HaveOccurred())
		first, _ := sc.Entry(0)
		last, _ := sc.Entry(5)
		Expect(first.Color).To(Equal(0.0))
		Expect(last.Color).To(Equal(1.0))
		Expect(sc.Domain.Min).To(Equal(1.0))
		Expect(sc.Domain.Max).To(Equal(6.0))
	})

	It("treats every stream as active when no active ids are set", func() {
		cfg.ActiveIDs = nil
		sc, err := scene.Build(sixStreams(), cfg, 0, st)
		Expect(err).NotTo(HaveOccurred())
		Expect(sc.Count(streams.Active)).To(Equal(6))
		Expect(sc.Count(streams.Background)).To(BeZero())
	})

	It("fails with IncompleteConfigError when the quantity has no bounds", func() {
		cfg.Quantity = "density"
		_, err := scene.Build(sixStreams(), cfg, 0, st)
		Expect(err).To(MatchError(streams.ErrIncompleteConfig))
		var incomplete *streams.IncompleteConfigError
		Expect(err).To(BeAssignableToTypeOf(incomplete))
	})

	It("fails with IncompleteConfigError when no quantity is selected", func() {
		cfg.Quantity = ""
		_, err := scene.NewBuilder(cfg)
		Expect(err).To(MatchError(streams.ErrIncompleteConfig))
	})

	It("fails with UnknownStreamError for active ids outside the universe", func() {
		cfg.ActiveIDs = []streams.StreamID{1, 42}
		_, err := scene.Build(sixStreams(), cfg, 0, st)
		Expect(err).To(MatchError(streams.ErrUnknownStream))
	})

	It("fails with ConfigError for an invalid resize factor", func() {
		cfg.Resize.Factor = 0
		_, err := scene.NewBuilder(cfg)
		Expect(err).To(MatchError(streams.ErrConfig))
	})

	It("rejects duplicate stream ids", func() {
		in := append(sixStreams(), streams.Stream{ID: 3, Value: 2})
		_, err := scene.Build(in, cfg, 0, st)
		Expect(err).To(MatchError(streams.ErrConfig))
	})

	Describe("domain errors", func() {
		var in []streams.Stream

		BeforeEach(func() {
			cfg.DataScale = scale.Log
			cfg.Resize = resize.Config{Mode: resize.ModeAll, Every: 1, Factor: 2}
			in = sixStreams()
			in[4].Value = 0
		})

		It("aborts the render and leaves the resize state untouched", func() {
			_, err := scene.Build(in, cfg, 3, st)
			Expect(err).To(MatchError(streams.ErrDomain))
			Expect(err.Error()).To(ContainSubstring("stream 4"))
			Expect(st.Steps(streams.Active)).To(BeZero())
		})

		It("skips the stream under the skip policy", func() {
			cfg.DomainPolicy = config.PolicySkip
			sc, err := scene.Build(in, cfg, 0, st)
			Expect(err).NotTo(HaveOccurred())
			Expect(sc.Entries).To(HaveLen(5))
			Expect(sc.Skipped).To(Equal([]streams.StreamID{4}))
			_, found := sc.Entry(4)
			Expect(found).To(BeFalse())
		})
	})

	It("calls the resize policy once per role per render", func() {
		cfg.Resize = resize.Config{Mode: resize.ModeAll, Every: 2, Factor: 2, Power: 1}
		b, err := scene.NewBuilder(cfg)
		Expect(err).NotTo(HaveOccurred())

		var sizes []float64
		for i := 0; i < 4; i++ {
			sc, err := b.Build(sixStreams(), i, st)
			Expect(err).NotTo(HaveOccurred())
			sizes = append(sizes, sc.Multipliers.Background)
		}
		Expect(sizes).To(Equal([]float64{1, 1, 2, 2}))
		Expect(st.Steps(streams.Active)).To(Equal(st.Steps(streams.Background)))
	})

	It("does not share stream paths with its input", func() {
		in := sixStreams()
		sc, err := scene.Build(in, cfg, 0, st)
		Expect(err).NotTo(HaveOccurred())
		in[0].Path[0].X = 99
		e, _ := sc.Entry(0)
		Expect(e.Path[0].X).To(Equal(1.0))
	})

	It("is unaffected by later changes to the config", func() {
		b, err := scene.NewBuilder(cfg)
		Expect(err).NotTo(HaveOccurred())
		cfg.Bounds["flux"] = config.Bounds{Min: 100, Max: 200}
		cfg.ActiveIDs = []streams.StreamID{99}

		sc, err := b.Build(sixStreams(), 0, st)
		Expect(err).NotTo(HaveOccurred())
		Expect(sc.Domain.Max).To(Equal(6.0))
		Expect(sc.Count(streams.Active)).To(Equal(3))
	})

	It("keeps its own copy of the domain midpoint", func() {
		cfg.Bounds["flux"] = config.Bounds{Min: 1, Max: 6, Mid: ptr(3)}
		b, err := scene.NewBuilder(cfg)
		Expect(err).NotTo(HaveOccurred())
		*cfg.Bounds["flux"].Mid = 5

		first, err := b.Build(sixStreams(), 0, st)
		Expect(err).NotTo(HaveOccurred())
		Expect(*first.Domain.Mid).To(Equal(3.0))

		*first.Domain.Mid = 4
		second, err := b.Build(sixStreams(), 1, st)
		Expect(err).NotTo(HaveOccurred())
		Expect(*second.Domain.Mid).To(Equal(3.0))
	})

	It("resizes from a config file written in mixed case", func() {
		dir, err := os.MkdirTemp("", "scene")
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(os.RemoveAll, dir)

		path := filepath.Join(dir, "render.yaml")
		content := "quantity: flux\ndata_scale: LOG\nbounds:\n  flux: {min: 1, max: 6}\n" +
			"resize:\n  mode: Active\n  every: 1\n  factor: 2\n"
		Expect(os.WriteFile(path, []byte(content), 0644)).To(Succeed())

		loaded, err := config.Load(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(loaded.Validate()).To(Succeed())

		sc, err := scene.Build(sixStreams(), loaded, 3, st)
		Expect(err).NotTo(HaveOccurred())
		Expect(sc.DataScale).To(Equal(scale.Log))
		Expect(sc.Entries).To(HaveLen(6))
		Expect(sc.Multipliers.Active).To(Equal(8.0))
		Expect(sc.Multipliers.Background).To(Equal(1.0))
	})

	It("rejects a nil state and a negative render index", func() {
		b, _ := scene.NewBuilder(cfg)
		_, err := b.Build(sixStreams(), 0, nil)
		Expect(err).To(HaveOccurred())
		_, err = b.Build(sixStreams(), -1, st)
		Expect(err).To(HaveOccurred())
	})
})

func resizeState() *resize.State { return resize.NewState() }
