// Package config resolves the run configuration from flags, AUTOREQS_*
// environment variables, the [tool.autoreqs] table of the scanned
// folder's pyproject.toml, and defaults, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ethanolivertroy/autoreqs/internal/models"
)

// Sentinel validation errors.
var (
	ErrInvalidSummary = errors.New("summary must be one of none, table, json")
	ErrNoExtensions   = errors.New("at least one file extension is required")
	ErrEmptyManifest  = errors.New("manifest file name must not be empty")
	ErrInvalidTimeout = errors.New("timeout must be 0 or at least 1ms")
)

// EnvPrefix is the prefix of environment overrides, e.g. AUTOREQS_PIP.
const EnvPrefix = "AUTOREQS"

// flagKeys maps configuration keys to the CLI flags that override them.
var flagKeys = map[string]string{
	"extensions": "ext",
	"exclude":    "exclude",
	"pip":        "pip",
	"inventory":  "inventory",
	"timeout":    "timeout",
	"manifest":   "manifest",
	"log_file":   "log-file",
	"summary":    "summary",
	"yes":        "yes",
	"dry_run":    "dry-run",
}

// pyproject holds the only part of pyproject.toml we read.
type pyproject struct {
	Tool struct {
		Autoreqs map[string]any `toml:"autoreqs"`
	} `toml:"tool"`
}

// Load resolves the configuration for scanning root. flags may be nil.
func Load(root string, flags *pflag.FlagSet) (*models.Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	// A broken pyproject.toml belongs to the scanned project; it must not stop the run.
	var warnings []string
	section, err := readPyProject(filepath.Join(root, "pyproject.toml"))
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("ignoring [tool.autoreqs]: %v", err))
	} else if len(section) > 0 {
		if err := v.MergeConfigMap(section); err != nil {
			warnings = append(warnings, fmt.Sprintf("ignoring [tool.autoreqs]: %v", err))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for key, name := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	cfg := &models.Config{}
	hooks := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		secondsToDurationHook(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(cfg, hooks); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Root = root
	cfg.Warnings = warnings

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := models.DefaultConfig()
	v.SetDefault("extensions", d.Extensions)
	v.SetDefault("exclude", d.Exclude)
	v.SetDefault("pip", d.PipCommand)
	v.SetDefault("inventory", d.InventoryFile)
	v.SetDefault("timeout", d.Timeout)
	v.SetDefault("manifest", d.Manifest)
	v.SetDefault("log_file", d.LogFile)
	v.SetDefault("summary", d.Summary)
	v.SetDefault("yes", d.Yes)
	v.SetDefault("dry_run", d.DryRun)
}

// readPyProject returns the [tool.autoreqs] table with keys normalized to
// snake_case. A missing file yields an empty table.
func readPyProject(path string) (map[string]any, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var proj pyproject
	if err := toml.Unmarshal(content, &proj); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	section := make(map[string]any, len(proj.Tool.Autoreqs))
	for key, val := range proj.Tool.Autoreqs {
		section[strings.ReplaceAll(key, "-", "_")] = val
	}
	return section, nil
}

// secondsToDurationHook reads bare numbers ("30", 30, 2.5) as seconds
// instead of nanoseconds.
func secondsToDurationHook() mapstructure.DecodeHookFuncType {
	durationType := reflect.TypeOf(time.Duration(0))
	return func(_ reflect.Type, to reflect.Type, data any) (any, error) {
		if to != durationType {
			return data, nil
		}
		switch v := data.(type) {
		case int:
			return time.Duration(v) * time.Second, nil
		case int64:
			return time.Duration(v) * time.Second, nil
		case float64:
			return time.Duration(v * float64(time.Second)), nil
		case string:
			if n, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
				return time.Duration(n * float64(time.Second)), nil
			}
		}
		return data, nil
	}
}

// Validate checks a resolved configuration.
func Validate(cfg *models.Config) error {
	switch cfg.Summary {
	case models.SummaryNone, models.SummaryTable, models.SummaryJSON:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidSummary, cfg.Summary)
	}

	if len(cfg.Extensions) == 0 {
		return ErrNoExtensions
	}

	if strings.TrimSpace(cfg.Manifest) == "" {
		return ErrEmptyManifest
	}

	if cfg.Timeout < 0 || (cfg.Timeout > 0 && cfg.Timeout < time.Millisecond) {
		return fmt.Errorf("%w: %s", ErrInvalidTimeout, cfg.Timeout)
	}

	return nil
}
