package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/san-kum/streams3d/internal/config"
	"github.com/san-kum/streams3d/internal/logging"
	"github.com/san-kum/streams3d/internal/storage"
)

var (
	dataDir  string
	logLevel string
	verbose  int
	noColor  bool
	settings config.Settings
)

func main() {
	var err error
	settings, err = config.LoadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "environment: %v\n", err)
		os.Exit(1)
	}

	if err := newRootCmd().Execute(); err != nil {
		logging.Errorf("%v", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "streams3d",
		Short:         "3D views of EPREM field-line streams",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := logLevel
			if verbose > 0 {
				level = "debug"
			}
			if level != "" {
				if err := logging.SetLevel(level); err != nil {
					return err
				}
			}
			logging.SetColor(!noColor && termenv.NewOutput(os.Stderr).EnvColorProfile() != termenv.Ascii)
			return nil
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", settings.DataDir, "data directory")
	pf.StringVar(&logLevel, "log-level", settings.LogLevel, "log level: debug, info, warn or error")
	pf.CountVarP(&verbose, "verbose", "v", "debug logging")
	pf.BoolVar(&noColor, "no-color", false, "plain log output")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "render one time step to a figure",
		Args:  cobra.NoArgs,
		RunE:  runRender,
	}
	addRenderFlags(renderCmd)
	addOutputFlags(renderCmd)

	animateCmd := &cobra.Command{
		Use:   "animate",
		Short: "render a sequence of time steps",
		Args:  cobra.NoArgs,
		RunE:  runAnimate,
	}
	addRenderFlags(animateCmd)
	addOutputFlags(animateCmd)
	addStepFlags(animateCmd)
	animateCmd.Flags().IntVar(&workers, "workers", settings.Workers, "concurrent renders")
	animateCmd.Flags().StringVar(&gifPath, "gif", "", "also write an animated gif of the terminal rendering")
	animateCmd.Flags().IntVar(&gifDelay, "gif-delay", 25, "gif frame delay in 1/100 s")

	viewCmd := &cobra.Command{
		Use:   "view",
		Short: "step through a sequence in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runView,
	}
	addRenderFlags(viewCmd)
	addStepFlags(viewCmd)
	viewCmd.Flags().StringVar(&themeName, "theme", settings.Theme, "color theme")
	viewCmd.Flags().DurationVar(&interval, "interval", 0, "autoplay interval (default 500ms)")

	scheduleCmd := &cobra.Command{
		Use:   "schedule",
		Short: "plot the marker-size multipliers of a resize policy",
		Args:  cobra.NoArgs,
		RunE:  runSchedule,
	}
	addRenderFlags(scheduleCmd)
	scheduleCmd.Flags().IntVar(&renders, "renders", 24, "number of renders")
	scheduleCmd.Flags().StringVar(&roleName, "role", "both", "role to plot: active, background or both")

	configCmd := &cobra.Command{
		Use:   "config [path]",
		Short: "write the resolved render config (yaml, or toml by extension)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runConfig,
	}
	addRenderFlags(configCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets [name]",
		Short: "list quantity presets, or show one",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPresets,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored renders",
		Args:  cobra.NoArgs,
		RunE:  listRenders,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show a stored render",
		Args:  cobra.ExactArgs(1),
		RunE:  showRender,
	}

	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "write synthetic stream snapshots",
		Args:  cobra.NoArgs,
		RunE:  runGenerate,
	}
	addGenerateFlags(generateCmd)

	rootCmd.AddCommand(renderCmd, animateCmd, viewCmd, scheduleCmd, configCmd,
		presetsCmd, listCmd, showCmd, generateCmd)
	return rootCmd
}

func openStore() (*storage.Store, error) {
	st := storage.New(filepath.Join(dataDir, "renders"))
	if err := st.Init(); err != nil {
		return nil, fmt.Errorf("failed to init storage: %w", err)
	}
	return st, nil
}
