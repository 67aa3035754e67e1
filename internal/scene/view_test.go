package scene_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/streams3d/internal/config"
	"github.com/san-kum/streams3d/internal/scale"
	"github.com/san-kum/streams3d/internal/scene"
	"github.com/san-kum/streams3d/internal/streams"
)

var _ = Describe("Camera", func() {
	It("uses the default view", func() {
		cam := scene.CameraFrom(config.CameraConfig{})
		Expect(cam.Eye).To(Equal(streams.Vec3{X: 1.25, Y: 1.25, Z: 1.25}))
		Expect(cam.Up).To(Equal(streams.Vec3{Z: 1}))
		Expect(cam.Center).To(Equal(streams.Vec3{}))
	})

	It("converts a spherical eye given in degrees", func() {
		cam := scene.CameraFrom(config.CameraConfig{Eye: []float64{2, 90, 90}, EyeInRTP: true})
		Expect(cam.Eye.X).To(BeNumerically("~", 0, 1e-12))
		Expect(cam.Eye.Y).To(BeNumerically("~", 2, 1e-12))
		Expect(cam.Eye.Z).To(BeNumerically("~", 0, 1e-12))
	})
})

var _ = Describe("Axes", func() {
	It("prefers per-axis ranges over the shared range", func() {
		axes := scene.AxesFrom(config.AxesConfig{Range: []float64{-1, 1}, ZRange: []float64{-5, 5}, Unit: "au"})
		Expect(axes.X.Range).To(Equal([]float64{-1, 1}))
		Expect(axes.Z.Range).To(Equal([]float64{-5, 5}))
		Expect(axes.Y.Title).To(Equal("y [au]"))
		Expect(axes.Y.ShowTickLabels).To(BeTrue())
	})

	It("hides titles and tick labels", func() {
		axes := scene.AxesFrom(config.AxesConfig{Hide: true, Unit: "Rs"})
		Expect(axes.X.Title).To(BeEmpty())
		Expect(axes.X.ShowTickLabels).To(BeFalse())
		Expect(axes.X.Range).To(BeNil())
	})
})

var _ = Describe("Sun", func() {
	It("scales the radius with the axis unit", func() {
		cfg := config.DefaultConfig()
		Expect(scene.SunFrom(cfg).Radius).To(Equal(1.0))
		cfg.Axes.Unit = "AU"
		Expect(scene.SunFrom(cfg).Radius).To(Equal(scene.SolarRadiusAU))
		Expect(scene.SunFrom(cfg).Color).To(Equal("yellow"))
	})
})

var _ = Describe("Title", func() {
	var cfg *config.RenderConfig

	BeforeEach(func() {
		cfg = config.DefaultConfig()
		cfg.Quantity = "flux"
		cfg.Title.Unit = "1/cm^2 s sr MeV"
	})

	It("lists the stamp, energy, quantity and scale", func() {
		e := 10.0
		cfg.Title.Energy = &e
		cfg.DataScale = scale.Log
		Expect(scene.Title(cfg, "12:00:00")).To(Equal("t = 12:00:00    E = 10.00 MeV    flux [1/cm^2 s sr MeV] (log-scaled)"))
	})

	It("omits the quantity when none is selected", func() {
		cfg.Quantity = ""
		Expect(scene.Title(cfg, "00:00:00")).To(Equal("t = 00:00:00"))
	})

	It("is empty when hidden", func() {
		cfg.Title.Hide = true
		Expect(scene.Title(cfg, "x")).To(BeEmpty())
	})

	It("is attached to built scenes", func() {
		cfg.Bounds["flux"] = config.Bounds{Min: 0, Max: 1}
		b, err := scene.NewBuilder(cfg, scene.WithStamp("2017-09-10 18:00:00"))
		Expect(err).NotTo(HaveOccurred())
		sc, err := b.Build(nil, 0, resizeState())
		Expect(err).NotTo(HaveOccurred())
		Expect(sc.Title).To(HavePrefix("t = 2017-09-10 18:00:00"))
		Expect(sc.Entries).To(BeEmpty())
	})
})

var _ = Describe("TimeStamp", func() {
	It("formats elapsed time past one day", func() {
		stamp, err := scene.TimeStamp(config.TitleConfig{}, 1.5)
		Expect(err).NotTo(HaveOccurred())
		Expect(stamp).To(Equal("36:00:00"))
	})

	It("applies the offset", func() {
		stamp, _ := scene.TimeStamp(config.TitleConfig{OffsetDay: -0.25}, 0.5)
		Expect(stamp).To(Equal("06:00:00"))
	})

	It("adds elapsed time to the start date", func() {
		stamp, err := scene.TimeStamp(config.TitleConfig{TimeStart: "2017-09-10 16:00:00"}, 0.5)
		Expect(err).NotTo(HaveOccurred())
		Expect(stamp).To(Equal("2017-09-11 04:00:00"))
	})

	It("rejects a malformed start", func() {
		_, err := scene.TimeStamp(config.TitleConfig{TimeStart: "Sept 10"}, 0)
		Expect(err).To(HaveOccurred())
	})
})
