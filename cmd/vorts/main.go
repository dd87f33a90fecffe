package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/vorts/internal/config"
	"github.com/san-kum/vorts/internal/export"
	"github.com/san-kum/vorts/internal/logging"
	"github.com/san-kum/vorts/internal/poincare"
	"github.com/san-kum/vorts/internal/storage"
	"github.com/san-kum/vorts/internal/viz"
)

const defaultConfigFile = "vorts.yaml"

var (
	dataDir    string
	configFile string
	verbose    bool
	// import
	runName string
	// plot
	outPath   string
	format    string
	preset    string
	sets      []string
	frameOnly bool
	noFrame   bool
	columns   int
	rows      int
	// section
	ref  int
	xtol float64

	cfg *config.Config
	log = logging.NewNop()
)

// main registers the vorts commands and runs the root command, exiting with
// status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:           "vorts",
		Short:         "plot vorton and tracer histories",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			log = logging.New(level)
			return loadConfig(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml, default ./"+defaultConfigFile+" if present)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	importCmd := &cobra.Command{
		Use:   "import [csv]",
		Short: "store a history from a t,v,x,y,G csv file",
		Args:  cobra.ExactArgs(1),
		RunE:  importRun,
	}
	importCmd.Flags().StringVar(&runName, "name", "", "run name (default: file name)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [kind] [run_id]",
		Short: "plot a run (see kinds)",
		Args:  cobra.ExactArgs(2),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file, - for stdout (default <run>_<kind>.<ext>)")
	plotCmd.Flags().StringVarP(&format, "format", "f", "", "output format: "+formatNames())
	plotCmd.Flags().StringVarP(&preset, "preset", "p", "", "option preset (see presets)")
	plotCmd.Flags().StringArrayVar(&sets, "set", nil, "plot option key=value, value in yaml (repeatable)")
	plotCmd.Flags().BoolVar(&frameOnly, "frame-only", false, "hide ticks and tick labels")
	plotCmd.Flags().BoolVar(&noFrame, "no-frame", false, "hide ticks, axis labels and spines")
	plotCmd.Flags().IntVar(&columns, "cols", export.DefaultColumns, "terminal canvas width in cells")
	plotCmd.Flags().IntVar(&rows, "rows", export.DefaultRows, "terminal canvas height in cells")

	sectionCmd := &cobra.Command{
		Use:   "section [run_id]",
		Short: "show the Poincaré recurrence times of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  sectionRun,
	}
	sectionCmd.Flags().IntVar(&ref, "ref", 0, "reference vorton index")
	sectionCmd.Flags().Float64Var(&xtol, "xtol", poincare.DefaultXTol, "x tolerance of a return")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [kind]",
		Short: "list option presets",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	kindsCmd := &cobra.Command{
		Use:   "kinds",
		Short: "list plot kinds",
		RunE:  listKinds,
	}

	initCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write the default config",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultConfigFile
			if len(args) > 0 {
				path = args[0]
			}
			if err := config.Save(path, config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", path)
			return nil
		},
	}

	rootCmd.AddCommand(importCmd, listCmd, plotCmd, sectionCmd, exportJSONCmd, presetsCmd, kindsCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Error("command failed", "error", err)
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file and lets explicitly set flags override it.
func loadConfig(cmd *cobra.Command) error {
	path := configFile
	if path == "" {
		if _, err := os.Stat(defaultConfigFile); err == nil {
			path = defaultConfigFile
		}
	}

	cfg = config.DefaultConfig()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return fmt.Errorf("config %s: %w", path, err)
		}
		cfg = loaded
		log.Debug("config loaded", "path", path)
	}

	if cmd.Flags().Changed("data") || cfg.DataDir == "" {
		cfg.DataDir = dataDir
	}
	return nil
}

func headingStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(export.GetTheme(cfg.Theme).Title)
}

func mutedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(export.GetTheme(cfg.Theme).Muted)
}

func importRun(cmd *cobra.Command, args []string) error {
	path := args[0]
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	h, err := storage.ReadHistoryCSV(f)
	if err != nil {
		return fmt.Errorf("import %s: %w", path, err)
	}

	name := runName
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(name, h, path)
	if err != nil {
		return err
	}

	log.Info("history imported", "run", runID, "steps", h.NT(), "points", h.NV())
	fmt.Println(runID)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(cfg.DataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIME\tSTEPS\tPOINTS\tVORTONS\tTRACERS\tT")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\t%s\t%g..%g\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Steps,
			run.Points,
			countOrDash(run.Vortons),
			countOrDash(run.Tracers),
			run.TStart,
			run.TEnd,
		)
	}

	return w.Flush()
}

func countOrDash(n *int) string {
	if n == nil {
		return "-"
	}
	return fmt.Sprint(*n)
}

func sectionRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(cfg.DataDir)
	h, err := st.LoadHistory(runID)
	if err != nil {
		return err
	}

	opts := poincare.Options{XTol: cfg.Poincare.XTol}
	if cmd.Flags().Changed("xtol") {
		opts.XTol = xtol
	}
	iv := cfg.Poincare.Ref
	if cmd.Flags().Changed("ref") {
		iv = ref
	}

	idx, err := poincare.Times(h, iv, opts)
	if err != nil {
		return err
	}

	fmt.Println(headingStyle().Render(fmt.Sprintf("run %s: %d of %d steps return (ref %d, xtol %g)", runID, len(idx), h.NT(), iv, opts.XTol)))
	if len(idx) > 0 {
		times := make([]string, len(idx))
		for i, it := range idx {
			times[i] = fmt.Sprintf("%g", h.Times[it])
		}
		fmt.Println(mutedStyle().Render("t = " + strings.Join(times, ", ")))
	}

	trace, err := poincare.Trace(h, iv)
	if err != nil {
		return err
	}
	if len(trace) == 0 {
		return nil
	}

	graph := asciigraph.Plot(trace,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("x - x0 of point %d vs time step", iv)),
	)
	fmt.Println()
	fmt.Println(graph)
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(cfg.DataDir)
	return st.ExportJSON(os.Stdout, args[0])
}

func listPresets(cmd *cobra.Command, args []string) error {
	kinds := viz.NewRegistry().Kinds()
	if len(args) > 0 {
		kinds = args
	}

	for _, kind := range kinds {
		names := cfg.PresetNames(kind)
		if len(names) == 0 {
			fmt.Printf("no presets for kind: %s\n", kind)
			continue
		}
		fmt.Println(headingStyle().Render(fmt.Sprintf("presets for %s:", kind)))
		for _, name := range names {
			fmt.Printf("  %s\n", name)
		}
	}
	return nil
}

func listKinds(cmd *cobra.Command, args []string) error {
	reg := viz.NewRegistry()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, kind := range reg.Kinds() {
		fmt.Fprintf(w, "%s\t%s\n", kind, reg.Doc(kind))
	}
	return w.Flush()
}

func formatNames() string {
	names := make([]string, 0, len(export.Formats()))
	for _, f := range export.Formats() {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}
