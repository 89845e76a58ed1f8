package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/piwi3910/voxedit/internal/model"
)

// EnvPrefix namespaces environment overrides, e.g. VOXEDIT_HISTORY_DEPTH.
const EnvPrefix = "VOXEDIT"

// DefaultConfigDir returns the default directory for editor configuration.
// On all platforms this is ~/.voxedit/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".voxedit")
}

// DefaultConfigPath returns the default path for the editor config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// SaveEditorConfig persists an EditorConfig to the given path as JSON.
// It creates any missing parent directories automatically.
func SaveEditorConfig(path string, config model.EditorConfig) error {
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

// LoadEditorConfig reads an EditorConfig from the given path, then applies
// VOXEDIT_* environment overrides. If the file does not exist, defaults are
// used with no error.
func LoadEditorConfig(path string) (model.EditorConfig, error) {
	v := newConfigViper()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			v.SetConfigType("json")
			if err := v.ReadInConfig(); err != nil {
				return model.EditorConfig{}, fmt.Errorf("failed to read config %s: %w", path, err)
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return model.EditorConfig{}, err
		}
	}

	var config model.EditorConfig
	if err := v.Unmarshal(&config); err != nil {
		return model.EditorConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if config.HistoryDepth < 0 {
		config.HistoryDepth = 0
	}
	if config.VerticalThreshold <= 0 || config.VerticalThreshold > 1 {
		config.VerticalThreshold = model.DefaultEditorConfig().VerticalThreshold
	}
	return config, nil
}

// newConfigViper returns a private viper instance with every key defaulted,
// so that environment overrides are seen by Unmarshal.
func newConfigViper() *viper.Viper {
	d := model.DefaultEditorConfig()
	v := viper.New()
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("history_depth", d.HistoryDepth)
	v.SetDefault("vertical_threshold", d.VerticalThreshold)
	v.SetDefault("catalog_path", d.CatalogPath)
	v.SetDefault("export_dir", d.ExportDir)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	return v
}
