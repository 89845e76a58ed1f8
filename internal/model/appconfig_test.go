package model

import "testing"

func TestDefaultEditorConfig(t *testing.T) {
	cfg := DefaultEditorConfig()

	if cfg.LogLevel != "info" {
		t.Errorf("expected default log level info, got %s", cfg.LogLevel)
	}
	if cfg.HistoryDepth != 50 {
		t.Errorf("expected HistoryDepth=50, got %d", cfg.HistoryDepth)
	}
	if cfg.VerticalThreshold <= 0 || cfg.VerticalThreshold > 1 {
		t.Errorf("VerticalThreshold out of range: %f", cfg.VerticalThreshold)
	}
	if cfg.ExportDir == "" {
		t.Error("ExportDir should not be empty")
	}
}
