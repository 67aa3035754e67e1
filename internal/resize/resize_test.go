package resize_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/streams3d/internal/resize"
	"github.com/san-kum/streams3d/internal/streams"
)

func sequence(p *resize.Policy, st *resize.State, role streams.Role, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = p.SizeMultiplier(i, role, st)
	}
	return out
}

var _ = Describe("Policy", func() {
	Describe("construction", func() {
		DescribeTable("rejects invalid configuration",
			func(cfg resize.Config) {
				_, err := resize.NewPolicy(cfg)
				Expect(err).To(MatchError(streams.ErrConfig))
			},
			Entry("zero factor", resize.Config{Mode: resize.ModeAll, Every: 1, Factor: 0}),
			Entry("negative factor", resize.Config{Mode: resize.ModeAll, Every: 1, Factor: -2}),
			Entry("zero interval", resize.Config{Mode: resize.ModeAll, Every: 0, Factor: 2}),
			Entry("negative interval", resize.Config{Mode: resize.ModeAll, Every: -3, Factor: 2}),
			Entry("unknown mode", resize.Config{Mode: "foreground", Every: 1, Factor: 2}),
			Entry("non-canonical mode", resize.Config{Mode: "Active", Every: 1, Factor: 2}),
		)

		It("rejects a bad factor even when resizing is off", func() {
			_, err := resize.NewPolicy(resize.Config{Mode: resize.ModeNone, Every: 1, Factor: -1})
			Expect(err).To(MatchError(streams.ErrConfig))
		})

		It("treats an empty mode as none", func() {
			p, err := resize.NewPolicy(resize.Config{Every: 1, Factor: 3})
			Expect(err).NotTo(HaveOccurred())
			Expect(p.Config().Mode).To(Equal(resize.ModeNone))
		})
	})

	Describe("mode none", func() {
		It("returns 1.0 for every render and role without touching state", func() {
			p, err := resize.NewPolicy(resize.Config{Mode: resize.ModeNone, Every: 1, Factor: 10, Power: 2})
			Expect(err).NotTo(HaveOccurred())
			st := resize.NewState()
			for _, role := range streams.Roles {
				Expect(sequence(p, st, role, 20)).To(HaveEach(1.0))
				Expect(st.Steps(role)).To(BeZero())
			}
		})
	})

	Describe("mode active, every 2, factor 2, power 1", func() {
		var (
			p  *resize.Policy
			st *resize.State
		)

		BeforeEach(func() {
			var err error
			p, err = resize.NewPolicy(resize.Config{Mode: resize.ModeActive, Every: 2, Factor: 2, Power: 1})
			Expect(err).NotTo(HaveOccurred())
			st = resize.NewState()
		})

		It("resizes active streams every second render", func() {
			Expect(sequence(p, st, streams.Active, 4)).To(Equal([]float64{1, 1, 2, 2}))
		})

		It("keeps background streams fixed", func() {
			Expect(sequence(p, st, streams.Background, 4)).To(HaveEach(1.0))
			Expect(st.Steps(streams.Background)).To(BeZero())
		})

		It("keeps roles independent", func() {
			for i := 0; i < 4; i++ {
				p.SizeMultiplier(i, streams.Active, st)
				Expect(p.SizeMultiplier(i, streams.Background, st)).To(Equal(1.0))
			}
			Expect(st.Steps(streams.Active)).To(Equal(1))
		})

		It("does not advance on a repeated render index", func() {
			Expect(p.SizeMultiplier(2, streams.Active, st)).To(Equal(2.0))
			Expect(p.SizeMultiplier(2, streams.Active, st)).To(Equal(2.0))
			Expect(p.SizeMultiplier(1, streams.Active, st)).To(Equal(2.0))
			Expect(st.Steps(streams.Active)).To(Equal(1))
		})
	})

	Describe("growth law", func() {
		It("grows geometrically with power 0", func() {
			p, _ := resize.NewPolicy(resize.Config{Mode: resize.ModeAll, Every: 1, Factor: 1.5, Power: 0})
			got := sequence(p, resize.NewState(), streams.Active, 4)
			Expect(got[0]).To(Equal(1.0))
			Expect(got[1]).To(BeNumerically("~", 1.5, 1e-12))
			Expect(got[2]).To(BeNumerically("~", 2.25, 1e-12))
			Expect(got[3]).To(BeNumerically("~", 3.375, 1e-12))
		})

		It("applies power as an exponent on the step count", func() {
			p, _ := resize.NewPolicy(resize.Config{Mode: resize.ModeAll, Every: 1, Factor: 2, Power: 2})
			got := sequence(p, resize.NewState(), streams.Background, 4)
			Expect(got).To(Equal([]float64{1, 2, 16, 512}))
		})

		It("shrinks markers with a factor below one", func() {
			p, _ := resize.NewPolicy(resize.Config{Mode: resize.ModeBackground, Every: 1, Factor: 0.5})
			got := sequence(p, resize.NewState(), streams.Background, 3)
			Expect(got).To(Equal([]float64{1, 0.5, 0.25}))
		})

		It("counts renders skipped between calls", func() {
			p, _ := resize.NewPolicy(resize.Config{Mode: resize.ModeActive, Every: 1, Factor: 1.5})
			Expect(p.SizeMultiplier(1, streams.Active, resize.NewState())).To(BeNumerically("~", 1.5, 1e-12))

			st := resize.NewState()
			p.SizeMultiplier(0, streams.Active, st)
			Expect(p.SizeMultiplier(3, streams.Active, st)).To(BeNumerically("~", 3.375, 1e-12))
		})
	})

	Describe("State", func() {
		It("resets counters", func() {
			p, _ := resize.NewPolicy(resize.Config{Mode: resize.ModeAll, Every: 1, Factor: 2})
			st := resize.NewState()
			sequence(p, st, streams.Active, 5)
			Expect(st.Steps(streams.Active)).To(Equal(4))
			st.Reset()
			Expect(st.Steps(streams.Active)).To(BeZero())
			Expect(p.SizeMultiplier(0, streams.Active, st)).To(Equal(1.0))
		})
	})
})

var _ = Describe("Schedule", func() {
	It("matches a sequential session", func() {
		cfg := resize.Config{Mode: resize.ModeActive, Every: 2, Factor: 2, Power: 1}
		got, err := resize.Schedule(cfg, streams.Active, 6)
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(Equal([]float64{1, 1, 2, 2, 4, 4}))
	})

	It("propagates configuration errors", func() {
		_, err := resize.Schedule(resize.Config{Mode: resize.ModeAll, Every: 0, Factor: 2}, streams.Active, 3)
		Expect(err).To(MatchError(streams.ErrConfig))
	})
})

var _ = Describe("ParseMode", func() {
	It("accepts known modes case-insensitively", func() {
		m, err := resize.ParseMode("Active")
		Expect(err).NotTo(HaveOccurred())
		Expect(m).To(Equal(resize.ModeActive))
	})

	It("rejects unknown modes", func() {
		_, err := resize.ParseMode("highlight")
		Expect(err).To(MatchError(streams.ErrConfig))
	})
})
