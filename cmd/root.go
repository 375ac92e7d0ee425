package cmd

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/happydash/internal/config"
	"github.com/KaramelBytes/happydash/internal/controls"
	"github.com/KaramelBytes/happydash/internal/dataset"
	"github.com/KaramelBytes/happydash/internal/geo"
	"github.com/KaramelBytes/happydash/internal/render"
	"github.com/KaramelBytes/happydash/internal/utils"
)

var (
	// Global flags
	cfgFile  string
	debug    bool
	dataPath string
	logLevel string

	// Loaded configuration
	cfg *cfgpkg.Global

	log = logrus.New()
)

var rootCmd = &cobra.Command{
	Use:           "happydash",
	Short:         "World Happiness dashboard",
	Long:          `happydash serves an interactive dashboard over the World Happiness Report table and renders its charts from the command line.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.happydash/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "happiness report CSV (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug|info|warn|error (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: config show/set still work on defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = &cfgpkg.Global{LogLevel: "info", PNGWidth: render.DefaultOptions.Width, PNGHeight: render.DefaultOptions.Height}
	}
	cfg = c

	f := rootCmd.PersistentFlags()
	if f.Changed("data") && dataPath != "" {
		cfg.DataPath = dataPath
	}
	if f.Changed("log-level") && logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if debug {
		cfg.LogLevel = "debug"
	}
	configureLogger(log, cfg)
}

func configureLogger(l *logrus.Logger, c *cfgpkg.Global) {
	l.SetOutput(os.Stderr)
	if c.LogFormat == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		l.WithField("log_level", c.LogLevel).Warn("unknown log level; using info")
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)
}

// loadTable reads the configured dataset; any load error is fatal to the caller.
func loadTable() (*dataset.Table, error) {
	if cfg == nil || cfg.DataPath == "" {
		return nil, errors.New("no dataset configured (use --data or config set data_path)")
	}
	path, err := utils.FindUp("", cfg.DataPath)
	if err != nil {
		return nil, errors.Wrap(err, "locate dataset")
	}
	t, err := dataset.Load(path)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	log.WithFields(logrus.Fields{"path": path, "records": t.Len(), "regions": len(t.Regions())}).Debug("dataset loaded")
	return t, nil
}

// loadWorld reads the configured map geometry, resolved like the dataset.
// No configured path means no geometry and is not an error.
func loadWorld() (*geo.World, error) {
	if cfg == nil || cfg.GeoJSONPath == "" {
		return nil, nil
	}
	path, err := utils.FindUp("", cfg.GeoJSONPath)
	if err != nil {
		return nil, errors.Wrap(err, "locate geojson")
	}
	w, err := geo.LoadWorld(path)
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{"path": path, "features": w.Len()}).Info("map geometry loaded")
	return w, nil
}

// initialState applies configured defaults; invalid ones fall back silently.
func initialState(t *dataset.Table) controls.State {
	return controls.Defaults(t,
		controls.WithColorScale(cfg.DefaultColorScale),
		controls.WithCountryCount(cfg.DefaultCountryCount),
	)
}

func pngOptions() render.Options {
	return render.Options{Width: cfg.PNGWidth, Height: cfg.PNGHeight}
}
