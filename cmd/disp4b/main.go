package main

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/san-kum/disp4b/internal/config"
	"github.com/san-kum/disp4b/internal/export"
	"github.com/san-kum/disp4b/internal/geom"
	"github.com/san-kum/disp4b/internal/optim"
	"github.com/san-kum/disp4b/internal/scan"
	"github.com/san-kum/disp4b/internal/storage"
	"github.com/san-kum/disp4b/internal/tui"
)

var (
	dataDir    string
	configFile string
	preset     string
	logLevel   string

	side     float64
	points   string
	triplets string

	scanMin  float64
	scanMax  float64
	samples  int
	workers  int
	noSave   bool
	showPlot bool
	refine   bool

	svgFile string

	outFile    string
	benchIters int

	log = logrus.New()
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "disp4b",
		Short:         "four-body dispersion energies of point configurations",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(cmd.ErrOrStderr())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".disp4b", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&triplets, "triplets", "", "triplet scheme (chained, symmetric)")

	evalCmd := &cobra.Command{
		Use:   "eval [shape]",
		Short: "evaluate the energy of one configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE:  evalEnergy,
	}
	evalCmd.Flags().Float64Var(&side, "side", 3.0, "side length of the shape")
	evalCmd.Flags().StringVar(&points, "points", "", "four points as x,y,z;x,y,z;x,y,z;x,y,z")

	scanCmd := &cobra.Command{
		Use:   "scan [shape]",
		Short: "scan the energy of a shape over side lengths",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScan,
	}
	scanCmd.Flags().Float64Var(&scanMin, "min", config.DefaultScanMin, "smallest side length")
	scanCmd.Flags().Float64Var(&scanMax, "max", config.DefaultScanMax, "largest side length")
	scanCmd.Flags().IntVar(&samples, "samples", config.DefaultSamples, "number of side lengths")
	scanCmd.Flags().IntVar(&workers, "workers", config.DefaultWorkers, "concurrent evaluations")
	scanCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the scan")
	scanCmd.Flags().BoolVar(&showPlot, "plot", true, "plot the total energy")
	scanCmd.Flags().BoolVar(&refine, "refine", false, "refine the lowest sample by grid search")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored scans",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored scan",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&svgFile, "svg", "", "also write the curves to an svg file")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a stored scan to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVarP(&outFile, "output", "o", "", "output file (default stdout)")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark energy evaluation",
		RunE:  benchEnergy,
	}
	benchCmd.Flags().IntVar(&benchIters, "iterations", 100000, "number of evaluations")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tPROVIDER\tKIND\tTRIPLETS\tATTENUATION\tSHAPE")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				att := fmt.Sprintf("r_c=%g %s", p.Attenuation.RCutoff, p.Attenuation.Distance)
				if p.Attenuation.Disabled {
					att = "off"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					name, p.Coefficient.Provider, p.Dispersion.Kind, p.Dispersion.Triplets, att, p.Scan.Shape)
			}
			return w.Flush()
		},
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the resolved configuration to a yaml file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			if err := config.Save(args[0], cfg); err != nil {
				return err
			}
			log.WithField("path", args[0]).Info("config written")
			return nil
		},
	}

	exploreCmd := &cobra.Command{
		Use:   "explore",
		Short: "interactive energy explorer",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			// the alternate screen owns the terminal while the explorer runs
			quiet := logrus.New()
			quiet.SetOutput(io.Discard)
			return tui.RunExplorer(cfg, quiet)
		},
	}

	rootCmd.AddCommand(evalCmd, scanCmd, listCmd, plotCmd, exportCmd, benchCmd, presetsCmd, initCmd, exploreCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func setupLogging(out io.Writer) error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return errors.Wrap(err, "log level")
	}
	log.SetOutput(out)
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return nil
}

// resolveConfig applies, in order, the defaults, a preset, a config file and
// any flags set on the command line.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, errors.Wrap(err, "failed to load config")
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("triplets") {
		cfg.Dispersion.Triplets = triplets
	}
	if flags.Changed("min") {
		cfg.Scan.Min = scanMin
	}
	if flags.Changed("max") {
		cfg.Scan.Max = scanMax
	}
	if flags.Changed("samples") {
		cfg.Scan.Samples = samples
	}
	if flags.Changed("workers") {
		cfg.Scan.Workers = workers
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"preset":   cfg.Name,
		"provider": cfg.Coefficient.Provider,
		"kind":     cfg.Dispersion.Kind,
		"triplets": cfg.Dispersion.Triplets,
	}).Debug("configuration resolved")
	return cfg, nil
}

func shapeArg(cfg *config.Config, args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return cfg.Scan.Shape
}

func evalEnergy(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	asm, err := cfg.Build()
	if err != nil {
		return err
	}

	var (
		q     geom.Quadruplet
		label string
		at    float64
	)
	if points != "" {
		q, err = parsePoints(points)
		if err != nil {
			return err
		}
		label = "points"
	} else {
		name := shapeArg(cfg, args)
		shape, err := geom.ShapeByName(name)
		if err != nil {
			return err
		}
		if !(side > 0) {
			return fmt.Errorf("side must be positive, got %g", side)
		}
		q = shape(side)
		at = side
		label = fmt.Sprintf("%s, side %g", name, side)
	}

	s := scan.Measure(asm.Potential, at, q)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, titleStyle.Render(label))
	fmt.Fprintln(out, labelStyle.Render(fmt.Sprintf("c12 %.10g (%s)", asm.Dispersion.Coefficient(), asm.Provider.Name())))
	fmt.Fprintln(out)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "pair\t% .12e\n", s.Pair)
	fmt.Fprintf(w, "triplet\t% .12e\n", s.Triplet)
	fmt.Fprintf(w, "quadruplet\t% .12e\n", s.Quadruplet)
	fmt.Fprintf(w, "dispersion\t% .12e\n", s.Dispersion)
	fmt.Fprintf(w, "attenuation\t% .12e\n", s.Attenuation)
	fmt.Fprintf(w, "short range\t% .12e\n", s.ShortRange)
	fmt.Fprintf(w, "total\t% .12e\n", s.Total)
	return w.Flush()
}

// parsePoints reads "x,y,z;x,y,z;x,y,z;x,y,z".
func parsePoints(s string) (geom.Quadruplet, error) {
	var q geom.Quadruplet
	parts := strings.Split(s, ";")
	if len(parts) != 4 {
		return q, fmt.Errorf("expected 4 points, got %d", len(parts))
	}
	for i, part := range parts {
		coords := strings.Split(part, ",")
		if len(coords) != 3 {
			return q, fmt.Errorf("point %d: expected 3 coordinates, got %d", i, len(coords))
		}
		var v [3]float64
		for j, c := range coords {
			f, err := strconv.ParseFloat(strings.TrimSpace(c), 64)
			if err != nil {
				return q, errors.Wrapf(err, "point %d", i)
			}
			v[j] = f
		}
		q[i] = geom.Point{X: v[0], Y: v[1], Z: v[2]}
		if !geom.IsFinite(q[i]) {
			return q, fmt.Errorf("point %d is not finite", i)
		}
	}
	return q, nil
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if len(args) > 0 {
		cfg.Scan.Shape = args[0]
	}
	asm, err := cfg.Build()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runner := scan.NewRunner(asm.Potential, cfg.Scan.Workers, log)
	res, err := runner.Run(ctx, scan.Request{
		Shape:   cfg.Scan.Shape,
		Min:     cfg.Scan.Min,
		Max:     cfg.Scan.Max,
		Samples: cfg.Scan.Samples,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s\n", titleStyle.Render(cfg.Scan.Shape),
		labelStyle.Render(fmt.Sprintf("%d samples on [%g, %g] in %v", len(res.Samples), cfg.Scan.Min, cfg.Scan.Max, res.Duration)))
	if low, ok := res.Lowest(); ok {
		fmt.Fprintf(out, "lowest total %.8e at side %.4f\n", low.Total, low.Side)

		if refine {
			shape, _ := geom.ShapeByName(cfg.Scan.Shape)
			step := (cfg.Scan.Max - cfg.Scan.Min) / float64(cfg.Scan.Samples-1)
			lo := math.Max(cfg.Scan.Min, low.Side-step)
			hi := math.Min(cfg.Scan.Max, low.Side+step)

			x, fx, err := optim.NewGridSearch(11, 12).Search(ctx, func(s float64) float64 {
				return asm.Potential.Energy(shape(s))
			}, lo, hi)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "refined total %.10e at side %.8f\n", fx, x)
		}
	}

	if showPlot {
		fmt.Fprintln(out)
		fmt.Fprintln(out, plotTotals(res.Samples, "total energy vs side"))
	}

	if noSave {
		return nil
	}

	st := storage.New(dataDir)
	runID, err := st.Save(storage.RunMetadata{
		Preset:      cfg.Name,
		Provider:    asm.Provider.Name(),
		Coefficient: asm.Dispersion.Coefficient(),
		Dispersion:  cfg.Dispersion.Kind,
		Triplets:    cfg.Dispersion.Triplets,
	}, res)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\nrun saved: %s\n", runID)
	return nil
}

func plotTotals(samples []scan.Sample, caption string) string {
	data := make([]float64, len(samples))
	for i, s := range samples {
		data[i] = s.Total
	}
	return asciigraph.Plot(data,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSHAPE\tTIME\tSIDES\tSAMPLES\tTRIPLETS\tMIN ENERGY")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%g-%g\t%d\t%s\t%.6e\n",
			run.ID,
			run.Request.Shape,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Request.Min,
			run.Request.Max,
			run.Request.Samples,
			run.Triplets,
			run.MinEnergy,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	smp, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}
	if len(smp) == 0 {
		return fmt.Errorf("no data to plot")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run: %s\n", meta.ID)
	fmt.Fprintf(out, "shape: %s\n", meta.Request.Shape)
	fmt.Fprintf(out, "samples: %d\n\n", len(smp))

	fmt.Fprintln(out, plotTotals(smp, "total energy vs side"))
	fmt.Fprintln(out)

	if svgFile != "" {
		if err := os.WriteFile(svgFile, []byte(export.ScanToSVG(smp, 800, 400)), 0644); err != nil {
			return errors.Wrap(err, "write svg")
		}
		log.WithField("path", svgFile).Info("svg written")
	}

	disp := make([]float64, len(smp))
	for i, s := range smp {
		disp[i] = s.Dispersion
	}
	fmt.Fprintln(out, asciigraph.Plot(disp,
		asciigraph.Height(8),
		asciigraph.Width(80),
		asciigraph.Caption("unattenuated dispersion vs side"),
	))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	if outFile == "" {
		return st.Export(cmd.OutOrStdout(), args[0])
	}

	data, err := st.LoadExport(args[0])
	if err != nil {
		return err
	}
	if err := storage.ExportJSON(outFile, data); err != nil {
		return err
	}
	log.WithField("path", outFile).Info("run exported")
	return nil
}

func benchEnergy(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	asm, err := cfg.Build()
	if err != nil {
		return err
	}
	if benchIters < 1 {
		return fmt.Errorf("iterations must be positive, got %d", benchIters)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SHAPE\tEVALS\tTIME\tNS/EVAL")
	for _, name := range geom.ShapeNames() {
		shape, _ := geom.ShapeByName(name)
		q := shape(cfg.Scan.Min)

		var sink float64
		start := time.Now()
		for i := 0; i < benchIters; i++ {
			sink += asm.Potential.Energy(q)
		}
		elapsed := time.Since(start)

		log.WithFields(logrus.Fields{"shape": name, "sum": sink}).Debug("bench finished")
		fmt.Fprintf(w, "%s\t%d\t%v\t%.1f\n", name, benchIters, elapsed, float64(elapsed.Nanoseconds())/float64(benchIters))
	}
	return w.Flush()
}
