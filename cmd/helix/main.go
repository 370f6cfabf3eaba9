package main

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/helix/internal/config"
	"github.com/san-kum/helix/internal/export"
	"github.com/san-kum/helix/internal/gui"
	"github.com/san-kum/helix/internal/helix"
	"github.com/san-kum/helix/internal/render"
	"github.com/san-kum/helix/internal/stage"
	"github.com/san-kum/helix/internal/storage"
	"github.com/san-kum/helix/internal/viz"
	"github.com/spf13/cobra"
)

var (
	configFile string
	preset     string
	dataDir    string
	debug      bool

	points      int
	revolutions float64
	subCount    int
	fps         int
	mode        string
	noBloom     bool
	inline      bool
	theme       string

	progress float64
	atTime   float64
	cols     int
	rows     int
	width    int
	height   int
	svgOut   string
	pointOut string
	format   string
	pointIdx int
	samples  int
	name     string
	snapshot string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "helix",
		Short: "scroll-driven DNA double helix in the terminal",
		RunE:  runTUI,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "start from a named preset")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".helix", "snapshot directory")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "write logs to logs/helix.log")
	rootCmd.PersistentFlags().IntVar(&points, "points", config.DefaultTotalPoints, "points per strand")
	rootCmd.PersistentFlags().Float64Var(&revolutions, "revolutions", config.DefaultRevolutions, "full turns over the helix height")
	rootCmd.PersistentFlags().IntVar(&subCount, "sub", config.DefaultSubCount, "spheres per bridge")
	rootCmd.PersistentFlags().IntVar(&fps, "fps", config.DefaultFPS, "frame rate")
	rootCmd.PersistentFlags().StringVar(&mode, "mode", "color", "terminal encoding: color or braille")
	rootCmd.PersistentFlags().BoolVar(&noBloom, "no-bloom", false, "disable the bloom pass")
	rootCmd.Flags().BoolVar(&inline, "inline", false, "draw inline instead of on the alternate screen")
	rootCmd.Flags().StringVar(&theme, "theme", "ember", "colour theme: "+strings.Join(viz.ThemeNames(), ", "))

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if f := setupLogging(debug); f != nil {
			cobra.OnFinalize(func() { f.Close() })
		}
	}

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "open the helix in a native window",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStage(cmd, gui.Run)
		},
	}

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "print one frame to stdout",
		RunE:  renderFrame,
	}
	addSeekFlags(renderCmd)
	renderCmd.Flags().IntVar(&cols, "cols", 80, "terminal columns")
	renderCmd.Flags().IntVar(&rows, "rows", 24, "terminal rows")

	svgCmd := &cobra.Command{
		Use:   "svg",
		Short: "write one frame as SVG",
		RunE:  writeSVG,
	}
	addSeekFlags(svgCmd)
	svgCmd.Flags().IntVar(&width, "width", 800, "image width")
	svgCmd.Flags().IntVar(&height, "height", 600, "image height")
	svgCmd.Flags().StringVarP(&svgOut, "output", "o", "helix.svg", "output file")

	pointsCmd := &cobra.Command{
		Use:   "points",
		Short: "dump the generated points",
		RunE:  dumpPoints,
	}
	pointsCmd.Flags().StringVar(&format, "format", "csv", "csv or json")
	pointsCmd.Flags().StringVarP(&pointOut, "output", "o", "", "output file (default stdout)")
	pointsCmd.Flags().StringVar(&snapshot, "snapshot", "", "read the points of a saved snapshot instead of generating them")

	timelineCmd := &cobra.Command{
		Use:   "timeline",
		Short: "plot the pulse channels of one sphere over a cycle",
		RunE:  plotTimeline,
	}
	timelineCmd.Flags().IntVar(&pointIdx, "index", 0, "pulse target index")
	timelineCmd.Flags().IntVar(&samples, "samples", 70, "samples per period")

	saveCmd := &cobra.Command{
		Use:   "save",
		Short: "store the config and points as a snapshot",
		RunE:  saveSnapshot,
	}
	saveCmd.Flags().StringVar(&name, "name", "helix", "snapshot name")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved snapshots",
		RunE:  listSnapshots,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("presets:")
			for _, p := range config.ListPresets() {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "config file helpers",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the resolved config as YAML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "helix.yaml"
			if len(args) > 0 {
				path = args[0]
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := config.Save(path, cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", path)
			return nil
		},
	}
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(guiCmd, renderCmd, svgCmd, pointsCmd, timelineCmd, saveCmd, listCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSeekFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&progress, "progress", 0, "scroll progress through the section, 0..1")
	cmd.Flags().Float64Var(&atTime, "time", 0, "pulse clock in seconds")
}

// loadConfig resolves defaults, then the preset, then the config file, then
// any flag the user set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		// the file is layered over the preset, not over the defaults
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("points") {
		cfg.Geometry.TotalPoints = points
	}
	if flags.Changed("revolutions") {
		cfg.Geometry.Revolutions = revolutions
	}
	if flags.Changed("sub") {
		cfg.Geometry.SubCount = subCount
	}
	if flags.Changed("fps") {
		cfg.Render.FPS = fps
	}
	if flags.Changed("mode") {
		cfg.Render.Mode = mode
	}
	if flags.Changed("no-bloom") {
		cfg.Bloom.Enabled = !noBloom
	}
	if flags.Changed("inline") && inline {
		cfg.Render.Container = config.ContainerInline
	}
	if flags.Changed("theme") {
		cfg.Render.Theme = theme
	}
	if !slices.Contains(viz.ThemeNames(), cfg.Render.Theme) {
		return nil, fmt.Errorf("unknown theme: %s (available: %v)", cfg.Render.Theme, viz.ThemeNames())
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func withStage(cmd *cobra.Command, fn func(*stage.Stage) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st, err := stage.New(cfg)
	if err != nil {
		return err
	}
	defer st.Close()
	return fn(st)
}

func runTUI(cmd *cobra.Command, args []string) error {
	return withStage(cmd, func(st *stage.Stage) error {
		cfg := st.Config()
		m, err := render.ParseMode(cfg.Render.Mode)
		if err != nil {
			return err
		}
		viz.SetTheme(cfg.Render.Theme)
		return viz.Run(st, viz.Options{
			Mode:   m,
			FPS:    cfg.Render.FPS,
			Inline: cfg.Render.Container == config.ContainerInline,
		})
	})
}

// seek moves the scroll position to the given trigger progress and runs the
// pulse clock forward.
func seek(st *stage.Stage) error {
	if progress < 0 || progress > 1 {
		return fmt.Errorf("progress must be in [0, 1], got %v", progress)
	}
	if atTime < 0 {
		return fmt.Errorf("time must be non-negative, got %v", atTime)
	}
	tr := st.Sequencer().Trigger()
	st.SetScroll(tr.StartY() + progress*(tr.EndY()-tr.StartY()))
	st.Advance(atTime)
	return nil
}

func renderFrame(cmd *cobra.Command, args []string) error {
	return withStage(cmd, func(st *stage.Stage) error {
		if err := seek(st); err != nil {
			return err
		}
		m, err := render.ParseMode(st.Config().Render.Mode)
		if err != nil {
			return err
		}
		fmt.Println(st.Frame(m, cols, rows))
		return nil
	})
}

func writeSVG(cmd *cobra.Command, args []string) error {
	return withStage(cmd, func(st *stage.Stage) error {
		if err := seek(st); err != nil {
			return err
		}
		svg := export.SVG(st.Sprites(width, height), width, height, st.Scene().Background)
		if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgOut)
		return nil
	})
}

func dumpPoints(cmd *cobra.Command, args []string) error {
	pts, err := resolvePoints(cmd)
	if err != nil {
		return err
	}

	w := os.Stdout
	if pointOut != "" {
		f, err := os.Create(pointOut)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	switch strings.ToLower(format) {
	case "csv":
		return export.WritePointsCSV(w, pts)
	case "json":
		return export.WritePointsJSON(w, pts)
	}
	return fmt.Errorf("unknown format: %s (use csv or json)", format)
}

// resolvePoints reads a stored snapshot when --snapshot is set and builds
// the configured helix otherwise.
func resolvePoints(cmd *cobra.Command) ([]helix.Point, error) {
	if snapshot != "" {
		pts, err := storage.New(dataDir).LoadPoints(snapshot)
		if err != nil {
			return nil, fmt.Errorf("snapshot %s: %w", snapshot, err)
		}
		return pts, nil
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	h, err := cfg.BuildHelix()
	if err != nil {
		return nil, err
	}
	return h.Points(), nil
}

func plotTimeline(cmd *cobra.Command, args []string) error {
	return withStage(cmd, func(st *stage.Stage) error {
		pulses := st.Sequencer().Pulses()
		targets := st.Sequencer().Targets()
		if len(pulses) == 0 {
			return fmt.Errorf("no pulse targets")
		}
		if pointIdx < 0 || pointIdx >= len(pulses) {
			return fmt.Errorf("index must be in [0, %d), got %d", len(pulses), pointIdx)
		}
		if samples < 2 {
			return fmt.Errorf("samples must be at least 2, got %d", samples)
		}

		tl := pulses[pointIdx]
		mesh := targets[pointIdx]
		restX := mesh.Position.X

		// run past the stagger delay, then sample one full period
		st.Advance(tl.Delay())
		dt := tl.Period() / float64(samples)
		scale := make([]float64, samples)
		glow := make([]float64, samples)
		jitter := make([]float64, samples)
		for i := range samples {
			scale[i] = mesh.Scale.X
			glow[i] = mesh.Material.EmissiveIntensity
			jitter[i] = mesh.Position.X - restX
			st.Advance(dt)
		}

		fmt.Printf("%s[%d] sub %d: delay %.2fs, cycle %.2fs, period %.2fs\n\n",
			mesh.Kind, mesh.Index, mesh.Sub, tl.Delay(), tl.Duration(), tl.Period())
		for _, ch := range []struct {
			caption string
			data    []float64
		}{
			{"scale", scale},
			{"emissive intensity", glow},
			{"x offset", jitter},
		} {
			fmt.Println(asciigraph.Plot(ch.data,
				asciigraph.Height(8),
				asciigraph.Caption(ch.caption),
			))
			fmt.Println()
		}
		return nil
	})
}

func saveSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	h, err := cfg.BuildHelix()
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	id, err := st.Save(name, cfg, h)
	if err != nil {
		return err
	}
	fmt.Printf("saved: %s (%d points)\n", id, h.Count())
	return nil
}

func listSnapshots(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	snaps, err := st.List()
	if err != nil {
		return err
	}

	if len(snaps) == 0 {
		fmt.Println("no snapshots found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIME\tPOINTS\tSTRAND\tBRIDGES\tSUB")

	for _, s := range snaps {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%d\n",
			s.ID,
			s.Name,
			s.Timestamp.Format("2006-01-02 15:04:05"),
			s.Points,
			s.Strand,
			s.Bridges,
			s.SubCount,
		)
	}

	return w.Flush()
}
