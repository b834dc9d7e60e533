package platform

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/tailscale/hujson"

	"github.com/aretw0/localnotes/pkg/core"
)

// Environment variables that override config files.
const (
	EnvDataDir  = "LOCALNOTES_DIR"
	EnvKey      = "LOCALNOTES_KEY"
	EnvFormat   = "LOCALNOTES_FORMAT"
	EnvLogLevel = "LOCALNOTES_LOG_LEVEL"
)

// Config errors.
var (
	ErrConfigFileNotFound = errors.New("config file not found")
	ErrConfigInvalid      = errors.New("invalid config")
)

// Config holds the CLI configuration.
type Config struct {
	DataDir  string `json:"data_dir,omitempty"`
	Key      string `json:"key,omitempty"`
	Format   string `json:"format,omitempty"`
	LogLevel string `json:"log_level,omitempty"`

	// Sources tracks which files were loaded (for diagnostics).
	Sources ConfigSources `json:"-"`
}

// ConfigSources tracks which config files were loaded.
type ConfigSources struct {
	Global  string `json:"global,omitempty"`
	Project string `json:"project,omitempty"`
	DotEnv  string `json:"dotenv,omitempty"`
}

// LoadConfigInput holds the inputs for LoadConfig.
type LoadConfigInput struct {
	WorkDir    string            // if empty, os.Getwd() is used
	ConfigPath string            // explicit config file; must exist when set
	Env        map[string]string // process environment
	Overrides  Config            // flag values; empty fields mean no override
}

// DefaultConfig returns the configuration used when nothing else is set.
func DefaultConfig(env map[string]string) Config {
	return Config{
		DataDir:  defaultDataDir(env),
		Key:      core.DefaultKey,
		Format:   "json",
		LogLevel: "info",
	}
}

// defaultDataDir follows the XDG base directory convention.
func defaultDataDir(env map[string]string) string {
	if dataHome := env["XDG_DATA_HOME"]; dataHome != "" {
		return filepath.Join(dataHome, "localnotes")
	}
	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".local", "share", "localnotes")
	}
	return ".localnotes"
}

// globalConfigPath uses $XDG_CONFIG_HOME/localnotes/config.json if set,
// otherwise ~/.config/localnotes/config.json. Empty if neither is known.
func globalConfigPath(env map[string]string) string {
	if xdgConfig := env["XDG_CONFIG_HOME"]; xdgConfig != "" {
		return filepath.Join(xdgConfig, "localnotes", "config.json")
	}
	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".config", "localnotes", "config.json")
	}
	return ""
}

// LoadConfig resolves configuration with the following precedence (highest wins):
//  1. Defaults
//  2. Global user config
//  3. Project config (.localnotes.json found upwards from WorkDir) or ConfigPath
//  4. Environment (a .env file in WorkDir fills variables the process lacks)
//  5. Overrides (CLI flags)
//
// DataDir is returned as an absolute path. Relative paths in a config file are
// resolved against the file's directory, all others against WorkDir.
func LoadConfig(input LoadConfigInput) (Config, error) {
	workDir := input.WorkDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return Config{}, fmt.Errorf("cannot get working directory: %w", err)
		}
	}

	env, dotEnvPath, err := mergeDotEnv(workDir, input.Env)
	if err != nil {
		return Config{}, err
	}

	cfg := DefaultConfig(env)
	cfg.Sources.DotEnv = dotEnvPath

	if path := globalConfigPath(env); path != "" {
		fileCfg, loaded, err := loadConfigFile(path, false)
		if err != nil {
			return Config{}, err
		}
		if loaded {
			cfg = mergeConfig(cfg, fileCfg)
			cfg.Sources.Global = path
		}
	}

	projectPath, mustExist := input.ConfigPath, true
	if projectPath != "" && !filepath.IsAbs(projectPath) {
		projectPath = filepath.Join(workDir, projectPath)
	}
	if projectPath == "" {
		mustExist = false
		projectPath, _ = FindProjectConfig(workDir)
	}
	if projectPath != "" {
		fileCfg, loaded, err := loadConfigFile(projectPath, mustExist)
		if err != nil {
			return Config{}, err
		}
		if loaded {
			cfg = mergeConfig(cfg, fileCfg)
			cfg.Sources.Project = projectPath
		}
	}

	cfg = mergeConfig(cfg, Config{
		DataDir:  env[EnvDataDir],
		Key:      env[EnvKey],
		Format:   env[EnvFormat],
		LogLevel: env[EnvLogLevel],
	})
	cfg = mergeConfig(cfg, input.Overrides)

	if !filepath.IsAbs(cfg.DataDir) {
		cfg.DataDir = filepath.Join(workDir, cfg.DataDir)
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// SlogLevel returns the configured log level; validateConfig guarantees it parses.
func (c Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// mergeDotEnv overlays the process environment on top of WorkDir/.env.
func mergeDotEnv(workDir string, env map[string]string) (map[string]string, string, error) {
	merged := make(map[string]string, len(env))

	dotEnvPath := filepath.Join(workDir, ".env")
	if _, err := os.Stat(dotEnvPath); err == nil {
		fileEnv, err := godotenv.Read(dotEnvPath)
		if err != nil {
			return nil, "", fmt.Errorf("%w %s: %w", ErrConfigInvalid, dotEnvPath, err)
		}
		for k, v := range fileEnv {
			merged[k] = v
		}
	} else {
		dotEnvPath = ""
	}

	for k, v := range env {
		merged[k] = v
	}
	return merged, dotEnvPath, nil
}

// loadConfigFile loads a config file. If mustExist is false, a missing file
// returns loaded=false and no error.
func loadConfigFile(path string, mustExist bool) (Config, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if mustExist {
				return Config{}, false, fmt.Errorf("%w: %s", ErrConfigFileNotFound, path)
			}
			return Config{}, false, nil
		}
		return Config{}, false, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	cfg, err := parseConfig(data)
	if err != nil {
		return Config{}, false, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, err)
	}

	if cfg.DataDir != "" && !filepath.IsAbs(cfg.DataDir) {
		cfg.DataDir = filepath.Join(filepath.Dir(path), cfg.DataDir)
	}

	return cfg, true, nil
}

func parseConfig(data []byte) (Config, error) {
	// Standardize JSONC to JSON
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	var cfg Config
	dec := json.NewDecoder(bytes.NewReader(standardized))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("invalid JSON: %w", err)
	}
	return cfg, nil
}

func mergeConfig(base, overlay Config) Config {
	if overlay.DataDir != "" {
		base.DataDir = overlay.DataDir
	}
	if overlay.Key != "" {
		base.Key = overlay.Key
	}
	if overlay.Format != "" {
		base.Format = overlay.Format
	}
	if overlay.LogLevel != "" {
		base.LogLevel = overlay.LogLevel
	}
	return base
}

func validateConfig(cfg Config) error {
	if _, err := core.CodecFor(cfg.Format); err != nil {
		return fmt.Errorf("%w: %w", ErrConfigInvalid, err)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return fmt.Errorf("%w: log_level %q", ErrConfigInvalid, cfg.LogLevel)
	}

	if cfg.Key == "" {
		return fmt.Errorf("%w: key cannot be empty", ErrConfigInvalid)
	}
	return nil
}
