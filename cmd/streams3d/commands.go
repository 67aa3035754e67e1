package main

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/streams3d/internal/config"
	"github.com/san-kum/streams3d/internal/logging"
	"github.com/san-kum/streams3d/internal/resize"
	"github.com/san-kum/streams3d/internal/storage"
	"github.com/san-kum/streams3d/internal/streams"
	"github.com/san-kum/streams3d/internal/synth"
)

var (
	renders  int
	roleName string

	genOut   string
	genSteps int
	genOpts  synth.Options
)

func runSchedule(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if renders < 1 {
		return streams.NewConfigError("renders", "must be at least 1, got %d", renders)
	}

	var roles []streams.Role
	switch roleName {
	case "both":
		roles = []streams.Role{streams.Active, streams.Background}
	case "active":
		roles = []streams.Role{streams.Active}
	case "background":
		roles = []streams.Role{streams.Background}
	default:
		return streams.NewConfigError("role", "unknown role %q (want active, background or both)", roleName)
	}

	series := make([][]float64, 0, len(roles))
	for _, role := range roles {
		m, err := resize.Schedule(cfg.Resize, role, renders)
		if err != nil {
			return err
		}
		series = append(series, m)
		fmt.Printf("%-10s first %.4g  last %.4g\n", role, m[0], m[len(m)-1])
	}
	fmt.Println()

	caption := fmt.Sprintf("mode %s, every %d, factor %g, power %g",
		cfg.Resize.Mode, cfg.Resize.Every, cfg.Resize.Factor, cfg.Resize.Power)
	fmt.Println(asciigraph.PlotMany(series,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	))
	return nil
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if len(args) == 1 {
		if err := config.Save(args[0], cfg); err != nil {
			return err
		}
		logging.Infof("wrote %s", args[0])
		return nil
	}
	return printYAML(cfg)
}

func runPresets(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		for _, name := range config.ListPresets() {
			p := config.GetPreset(name)
			fmt.Printf("%-10s %s (%s)\n", name, p.Quantity, p.DataScale)
		}
		return nil
	}
	p := config.GetPreset(args[0])
	if p == nil {
		return fmt.Errorf("unknown preset: %s (available: %v)", args[0], config.ListPresets())
	}
	return printYAML(p)
}

func printYAML(v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

func listRenders(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no renders found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tQUANTITY\tSTEP\tINDEX\tMODE\tACTIVE\tBACKGROUND\tSTREAMS\tTIME")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\t%.4g\t%.4g\t%d\t%s\n",
			run.ID,
			run.Quantity,
			run.TimeStep,
			run.RenderIndex,
			run.Mode,
			run.Multipliers.Active,
			run.Multipliers.Background,
			run.Entries,
			run.Timestamp.Format("2006-01-02 15:04:05"),
		)
	}

	return w.Flush()
}

func showRender(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st, err := openStore()
	if err != nil {
		return err
	}
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	entries, err := st.LoadEntries(runID)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	if meta.Title != "" {
		fmt.Printf("title: %s\n", meta.Title)
	}
	fmt.Printf("quantity: %s (%s, %s)\n", meta.Quantity, meta.DataScale, meta.ColorScale)
	fmt.Printf("domain: [%g, %g]\n", meta.Domain.Min, meta.Domain.Max)
	fmt.Printf("figure: %s\n", meta.Figure)
	fmt.Printf("entries: %d\n\n", len(entries))

	if len(entries) == 0 {
		return nil
	}

	colors := make([]float64, len(entries))
	sizes := make([]float64, len(entries))
	for i, e := range entries {
		colors[i] = e.Color
		sizes[i] = e.Size
	}
	fmt.Println(asciigraph.Plot(colors,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("normalized value by stream"),
	))
	fmt.Println()
	fmt.Println(asciigraph.Plot(sizes,
		asciigraph.Height(6),
		asciigraph.Width(80),
		asciigraph.Caption("marker size by stream"),
	))
	return nil
}

func addGenerateFlags(cmd *cobra.Command) {
	genOpts = synth.DefaultOptions()
	fs := cmd.Flags()
	fs.StringVar(&genOut, "out", "", "output directory (default: <data>/snapshots)")
	fs.IntVar(&genSteps, "steps", 48, "number of time steps")
	fs.IntVar(&genOpts.Longitudes, "longitudes", genOpts.Longitudes, "streams per latitude ring")
	fs.IntVar(&genOpts.Latitudes, "latitudes", genOpts.Latitudes, "latitude rings")
	fs.IntVar(&genOpts.Nodes, "nodes", genOpts.Nodes, "nodes per stream")
	fs.Float64Var(&genOpts.EventLon, "event-lon", genOpts.EventLon, "longitude of the event source in degrees")
	fs.Float64Var(&genOpts.Peak, "peak", genOpts.Peak, "peak flux of the event")
	fs.Int64Var(&genOpts.Seed, "seed", genOpts.Seed, "random seed")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if err := genOpts.Validate(); err != nil {
		return err
	}
	if genSteps < 1 {
		return streams.NewConfigError("steps", "must be at least 1, got %d", genSteps)
	}
	out := genOut
	if out == "" {
		out = filepath.Join(dataDir, "snapshots")
	}
	if err := os.MkdirAll(out, 0755); err != nil {
		return err
	}

	for step := 0; step < genSteps; step++ {
		in, err := synth.Snapshot(genOpts, step)
		if err != nil {
			return err
		}
		if err := storage.SaveSnapshot(storage.SnapshotPath(out, step), in); err != nil {
			return err
		}
	}
	logging.Infof("wrote %d snapshots of %d streams to %s", genSteps, genOpts.Count(), out)
	return nil
}
