// File: config/config.go

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the settings for one scan run. It is built once by Load
// and passed explicitly; there is no global instance.
type Config struct {
	Scan struct {
		Root string `mapstructure:"root"`
	} `mapstructure:"scan"`
	Report struct {
		Output  string `mapstructure:"output"`
		BaseURL string `mapstructure:"base_url"`
	} `mapstructure:"report"`
	Dump struct {
		Enabled bool `mapstructure:"enabled"`
	} `mapstructure:"dump"`
}

// Load reads configuration in three layers: defaults, an optional YAML
// file, and IMAGEDB_* environment overrides. An explicitly given path
// must exist; the default search path ("imagedb.yaml" in the working
// directory) may be absent.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("imagedb")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("IMAGEDB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("cannot read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("cannot parse config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("scan.root", ".")
	v.SetDefault("report.output", "ContentSummary.md")
	v.SetDefault("report.base_url", "")
	v.SetDefault("dump.enabled", false)
}
