package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/KaramelBytes/happydash/internal/colorscale"
	cfgpkg "github.com/KaramelBytes/happydash/internal/config"
	"github.com/KaramelBytes/happydash/internal/controls"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set happydash configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if cfg == nil {
			fmt.Fprintln(out, "No config loaded")
			return nil
		}
		fmt.Fprintf(out, "data_path: %s\n", cfg.DataPath)
		if cfg.GeoJSONPath != "" {
			fmt.Fprintf(out, "geojson_path: %s\n", cfg.GeoJSONPath)
		}
		fmt.Fprintf(out, "addr: %s\n", cfg.Addr)
		fmt.Fprintf(out, "log_level: %s\n", cfg.LogLevel)
		fmt.Fprintf(out, "log_format: %s\n", cfg.LogFormat)
		fmt.Fprintf(out, "png_width: %d\n", cfg.PNGWidth)
		fmt.Fprintf(out, "png_height: %d\n", cfg.PNGHeight)
		fmt.Fprintf(out, "default_color_scale: %s\n", cfg.DefaultColorScale)
		fmt.Fprintf(out, "default_country_count: %d\n", cfg.DefaultCountryCount)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "data_path":
			cfg.DataPath = val
		case "geojson_path":
			cfg.GeoJSONPath = val
		case "addr":
			cfg.Addr = val
		case "log_level":
			if _, err := logrus.ParseLevel(val); err != nil {
				return errors.Errorf("invalid log_level: %s", val)
			}
			cfg.LogLevel = strings.ToLower(val)
		case "log_format":
			switch val {
			case "text", "json":
				cfg.LogFormat = val
			default:
				return errors.Errorf("invalid log_format: %s (use text or json)", val)
			}
		case "png_width", "png_height":
			i, err := strconv.Atoi(val)
			if err != nil || i <= 0 {
				return errors.Errorf("invalid int for %s: %v", key, val)
			}
			if key == "png_width" {
				cfg.PNGWidth = i
			} else {
				cfg.PNGHeight = i
			}
		case "default_color_scale":
			n, ok := colorscale.Parse(val)
			if !ok {
				return errors.Errorf("invalid default_color_scale: %s (use Plasma, Viridis or Inferno)", val)
			}
			cfg.DefaultColorScale = string(n)
		case "default_country_count":
			i, err := strconv.Atoi(val)
			if err != nil || !controls.ValidCount(i) {
				return errors.Errorf("invalid default_country_count: %v (use %d-%d)", val, controls.MinCountries, controls.MaxCountries)
			}
			cfg.DefaultCountryCount = i
		default:
			return errors.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
