package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/happydash/internal/utils"
)

// Global configuration structure.
type Global struct {
	DataPath    string `mapstructure:"data_path" yaml:"data_path"`
	GeoJSONPath string `mapstructure:"geojson_path" yaml:"geojson_path"`
	Addr        string `mapstructure:"addr" yaml:"addr"`

	// Logging
	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format"`

	// PNG rendering
	PNGWidth  int `mapstructure:"png_width" yaml:"png_width"`
	PNGHeight int `mapstructure:"png_height" yaml:"png_height"`

	// Initial control values; invalid values fall back to built-in defaults.
	DefaultColorScale   string `mapstructure:"default_color_scale" yaml:"default_color_scale"`
	DefaultCountryCount int    `mapstructure:"default_country_count" yaml:"default_country_count"`
}

const dirName = ".happydash"

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.happydash/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, dirName)
		if err := utils.EnsureDir(dir); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := utils.SafeWriteFile(path, b); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("HAPPYDASH")
	v.AutomaticEnv()

	v.SetDefault("data_path", filepath.Join("data", "world-happiness-report-2021.csv"))
	v.SetDefault("geojson_path", "")
	v.SetDefault("addr", ":8050")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("png_width", 900)
	v.SetDefault("png_height", 500)
	v.SetDefault("default_color_scale", "Plasma")
	v.SetDefault("default_country_count", 10)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		v.AddConfigPath(filepath.Join(home, dirName))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.PNGWidth <= 0 {
		c.PNGWidth = 900
	}
	if c.PNGHeight <= 0 {
		c.PNGHeight = 500
	}
	return &c, nil
}
