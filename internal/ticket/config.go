package ticket

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"
)

// Config holds all configuration options.
type Config struct {
	TicketDir string `json:"ticket_dir"`
	Editor    string `json:"editor,omitempty"`
}

// ConfigSources tracks which config files were loaded.
type ConfigSources struct {
	Global  string // Path to global config if loaded, empty otherwise
	Project string // Path to project config if loaded, empty otherwise
}

// ConfigFileName is the project config file name.
const ConfigFileName = ".tk.json"

// ArchiveDirName is the archive subdirectory inside the ticket dir.
const ArchiveDirName = "archive"

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		TicketDir: ".tickets",
	}
}

// globalConfigPath returns the path to the global config file:
// $XDG_CONFIG_HOME/tk/config.json, or ~/.config/tk/config.json.
// Returns empty string if neither can be determined.
func globalConfigPath(env map[string]string) string {
	if xdg := env["XDG_CONFIG_HOME"]; xdg != "" {
		return filepath.Join(xdg, "tk", "config.json")
	}

	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".config", "tk", "config.json")
	}

	return ""
}

// LoadConfig loads configuration with the following precedence (highest wins):
// 1. Defaults
// 2. Global user config
// 3. Project config file (.tk.json, if exists)
// 4. Explicit config file via configPath (if non-empty)
// 5. CLI --ticket-dir override.
func LoadConfig(
	workDir, configPath string, overrides Config, hasTicketDirOverride bool, env map[string]string,
) (Config, ConfigSources, error) {
	cfg := DefaultConfig()

	var sources ConfigSources

	if globalPath := globalConfigPath(env); globalPath != "" {
		globalCfg, loaded, err := loadConfigFile(globalPath, false)
		if err != nil {
			return Config{}, ConfigSources{}, err
		}

		if loaded {
			sources.Global = globalPath
			cfg = mergeConfig(cfg, globalCfg)
		}
	}

	projectPath := filepath.Join(workDir, ConfigFileName)
	mustExist := false

	if configPath != "" {
		projectPath = configPath
		if !filepath.IsAbs(projectPath) {
			projectPath = filepath.Join(workDir, projectPath)
		}

		mustExist = true
	}

	projectCfg, loaded, err := loadConfigFile(projectPath, mustExist)
	if err != nil {
		return Config{}, ConfigSources{}, err
	}

	if loaded {
		sources.Project = projectPath
		cfg = mergeConfig(cfg, projectCfg)
	}

	if hasTicketDirOverride {
		cfg.TicketDir = overrides.TicketDir
	}

	if cfg.TicketDir == "" {
		return Config{}, ConfigSources{}, ErrTicketDirEmpty
	}

	return cfg, sources, nil
}

// loadConfigFile loads a JSONC config file. If mustExist is false, missing
// files return a zero config and loaded=false.
func loadConfigFile(path string, mustExist bool) (Config, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !mustExist {
			return Config{}, false, nil
		}

		if mustExist {
			return Config{}, false, fmt.Errorf("%w: %s", ErrConfigFileNotFound, path)
		}

		return Config{}, false, nil
	}

	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, false, fmt.Errorf("%w %s: invalid JSONC: %w", ErrConfigInvalid, path, err)
	}

	var cfg Config

	unmarshalErr := json.Unmarshal(standardized, &cfg)
	if unmarshalErr != nil {
		return Config{}, false, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, unmarshalErr)
	}

	// An explicit empty ticket_dir is a config error, not "use the default".
	var raw map[string]any
	if json.Unmarshal(standardized, &raw) == nil {
		if val, exists := raw["ticket_dir"]; exists {
			if str, ok := val.(string); ok && str == "" {
				return Config{}, false, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, ErrTicketDirEmpty)
			}
		}
	}

	return cfg, true, nil
}

func mergeConfig(base, overlay Config) Config {
	if overlay.TicketDir != "" {
		base.TicketDir = overlay.TicketDir
	}

	if overlay.Editor != "" {
		base.Editor = overlay.Editor
	}

	return base
}

// FormatConfig returns the config as formatted JSON.
func FormatConfig(cfg Config) (string, error) {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to format config: %w", err)
	}

	return string(data), nil
}
