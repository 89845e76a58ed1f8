package model

// EditorConfig holds editor-wide preferences.
type EditorConfig struct {
	LogLevel string `json:"log_level" mapstructure:"log_level"` // "debug", "info", "warn", "error"

	// Editing behaviour
	HistoryDepth      int     `json:"history_depth" mapstructure:"history_depth"`           // undo steps kept, 0 = disabled
	VerticalThreshold float64 `json:"vertical_threshold" mapstructure:"vertical_threshold"` // |facing.Y| at or above which side rotation uses the horizontal axis

	// Paths
	CatalogPath string `json:"catalog_path" mapstructure:"catalog_path"` // optional CSV/XLSX catalog overrides
	ExportDir   string `json:"export_dir" mapstructure:"export_dir"`
}

// DefaultEditorConfig returns an EditorConfig populated with sensible defaults.
func DefaultEditorConfig() EditorConfig {
	return EditorConfig{
		LogLevel:          "info",
		HistoryDepth:      50,
		VerticalThreshold: 0.9,
		CatalogPath:       "",
		ExportDir:         ".",
	}
}
