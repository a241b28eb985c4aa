package project

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// AppConfig holds application-wide preferences and default inputs.
type AppConfig struct {
	// Defaults applied when flags are omitted
	DefaultDiameter      float64 `json:"default_diameter"`
	DefaultEdgeExclusion float64 `json:"default_edge_exclusion"`
	DefaultFlatExclusion float64 `json:"default_flat_exclusion"`

	// Computation limits
	MaxCells int `json:"max_cells"` // 0 = uncapped
	Workers  int `json:"workers"`   // <= 1 = single-threaded

	RecentProjects []string `json:"recent_projects"`
}

// DefaultAppConfig returns the built-in defaults: a 150 mm wafer with 5 mm
// exclusions and a 10 million cell cap.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		DefaultDiameter:      150,
		DefaultEdgeExclusion: 5,
		DefaultFlatExclusion: 5,
		MaxCells:             10_000_000,
		Workers:              1,
		RecentProjects:       []string{},
	}
}

// DefaultConfigDir returns the directory for application configuration.
// On all platforms this is ~/.gdw/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".gdw")
}

// DefaultConfigPath returns the path of the application config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// SaveAppConfig persists an AppConfig to the given path as JSON. It creates
// any missing parent directories automatically.
func SaveAppConfig(path string, config AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadAppConfig reads an AppConfig from the given path. If the file does
// not exist, it returns DefaultAppConfig with no error.
func LoadAppConfig(path string) (AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultAppConfig(), nil
		}
		return AppConfig{}, err
	}
	var config AppConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return AppConfig{}, err
	}
	if config.RecentProjects == nil {
		config.RecentProjects = []string{}
	}
	return config, nil
}
