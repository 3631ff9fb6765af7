// Package config resolves jobwbs settings from defaults, an optional YAML
// file, a .env file, JOBWBS_* environment variables and command-line flags,
// in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	EnvPrefix = "JOBWBS"

	configFileName = "config"
	configFileType = "yaml"

	KeyDBPath          = "db_path"
	KeyLogLevel        = "log_level"
	KeyPageSize        = "page_size"
	KeyTopN            = "top_n"
	KeyExportDir       = "export_dir"
	KeyMetricsTextfile = "metrics_textfile"

	defaultDBName   = "job_master.db"
	defaultLogLevel = "warn"
	defaultPageSize = 20
	defaultTopN     = 5
)

// FlagKeys maps persistent flag names to the config keys they override.
var FlagKeys = map[string]string{
	"db":        KeyDBPath,
	"log-level": KeyLogLevel,
}

type Config struct {
	DBPath          string
	LogLevel        slog.Level
	PageSize        int
	TopN            int
	ExportDir       string
	MetricsTextfile string
}

// Dir is the per-user jobwbs directory holding the default database and
// config file.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".jobwbs"), nil
}

// LoadDotEnv loads KEY=VALUE pairs from each existing file into the process
// environment without overriding variables already set. Missing files are
// ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("loading %s: %w", p, err)
		}
	}
	return nil
}

// Load resolves the configuration. configFile overrides the default
// ~/.jobwbs/config.yaml and must exist when given. flags may be nil.
func Load(configFile string, flags *pflag.FlagSet) (Config, error) {
	dir, err := Dir()
	if err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetDefault(KeyDBPath, filepath.Join(dir, defaultDBName))
	v.SetDefault(KeyLogLevel, defaultLogLevel)
	v.SetDefault(KeyPageSize, defaultPageSize)
	v.SetDefault(KeyTopN, defaultTopN)
	v.SetDefault(KeyExportDir, ".")
	v.SetDefault(KeyMetricsTextfile, "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType(configFileType)
		v.AddConfigPath(dir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	if err := bindFlags(v, flags); err != nil {
		return Config{}, err
	}

	return decode(v)
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	if flags == nil {
		return nil
	}
	for name, key := range FlagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding --%s: %w", name, err)
		}
	}
	return nil
}

func decode(v *viper.Viper) (Config, error) {
	level, err := ParseLevel(v.GetString(KeyLogLevel))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		DBPath:          expandHome(v.GetString(KeyDBPath)),
		LogLevel:        level,
		PageSize:        v.GetInt(KeyPageSize),
		TopN:            v.GetInt(KeyTopN),
		ExportDir:       expandHome(v.GetString(KeyExportDir)),
		MetricsTextfile: expandHome(v.GetString(KeyMetricsTextfile)),
	}
	if cfg.DBPath == "" {
		return Config{}, fmt.Errorf("%s must not be empty", KeyDBPath)
	}
	if cfg.PageSize <= 0 {
		return Config{}, fmt.Errorf("%s must be positive, got %d", KeyPageSize, cfg.PageSize)
	}
	if cfg.TopN < 0 {
		return Config{}, fmt.Errorf("%s must not be negative, got %d", KeyTopN, cfg.TopN)
	}
	return cfg, nil
}

// ParseLevel accepts debug, info, warn or error, case-insensitively.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("%s: %w", KeyLogLevel, err)
	}
	return level, nil
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
