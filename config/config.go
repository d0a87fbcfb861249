// Package config loads tsc settings from defaults, an optional YAML file,
// TSC_* environment variables and command-line flags, via viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

const (
	KeyProps     = "props"
	KeyFormat    = "format"
	KeyVerbose   = "verbose"
	KeyLog       = "log"
	KeyJobs      = "jobs"
	KeyLanguages = "languages"
)

// DefaultFile is looked up in the home directory when no file is given.
const DefaultFile = ".tsc.yaml"

var DefaultProps = []string{"type", "depth", "field", "byte-range"}

var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	Props   []string
	Format  string
	Verbose int
	Log     string
	Jobs    int
	// Languages maps file extensions (".h") to language names.
	Languages map[string]string
}

// New returns a viper instance with defaults and environment lookup set up.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyProps, DefaultProps)
	v.SetDefault(KeyFormat, "line")
	v.SetDefault(KeyVerbose, 0)
	v.SetDefault(KeyLog, "")
	v.SetDefault(KeyJobs, runtime.NumCPU())
	v.SetEnvPrefix("TSC")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// ReadFile merges the YAML file at path into v. An empty path means
// DefaultFile in the home directory, which may be absent.
func ReadFile(v *viper.Viper, path string) error {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		path = filepath.Join(home, DefaultFile)
		if _, err := os.Stat(path); err != nil {
			return nil
		}
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	return nil
}

// Load validates the settings in v.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Props:     v.GetStringSlice(KeyProps),
		Format:    v.GetString(KeyFormat),
		Verbose:   v.GetInt(KeyVerbose),
		Log:       v.GetString(KeyLog),
		Jobs:      v.GetInt(KeyJobs),
		Languages: make(map[string]string),
	}
	// Extensions are written without the dot; viper splits keys on dots.
	for ext, lang := range v.GetStringMapString(KeyLanguages) {
		cfg.Languages["."+strings.TrimPrefix(ext, ".")] = lang
	}

	if len(cfg.Props) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", ErrInvalid, KeyProps)
	}
	if cfg.Jobs < 1 {
		return nil, fmt.Errorf("%w: %s must be at least 1, got %d", ErrInvalid, KeyJobs, cfg.Jobs)
	}
	if cfg.Format == "" {
		return nil, fmt.Errorf("%w: %s is empty", ErrInvalid, KeyFormat)
	}
	return cfg, nil
}
