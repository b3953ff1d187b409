package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ensureSettingsFile writes the default preview settings to the given path
// when the file does not exist yet.
func ensureSettingsFile(path string, defaults Config) {
	clean := strings.TrimSpace(path)
	if clean == "" {
		return
	}
	clean = filepath.Clean(clean)
	if _, err := os.Stat(clean); err == nil {
		return
	} else if !errors.Is(err, os.ErrNotExist) {
		fmt.Println("設定ファイル確認エラー:", err)
		return
	}
	if err := saveSettings(clean, defaults); err != nil {
		fmt.Println("設定ファイル作成エラー:", err)
	}
}

// loadSettings reads the preview settings. When the path is empty or loading
// fails, defaults are returned. The boolean indicates whether a file was
// successfully loaded.
func loadSettings(path string, defaults Config) (Config, bool, error) {
	clean := strings.TrimSpace(path)
	if clean == "" {
		return defaults, false, nil
	}
	data, err := os.ReadFile(filepath.Clean(clean))
	if err != nil {
		return defaults, false, err
	}
	cfg := defaults
	if err := json.Unmarshal(data, &cfg); err != nil {
		return defaults, false, fmt.Errorf("decode settings %s: %w", clean, err)
	}
	cfg.SettingsFile = defaults.SettingsFile
	return sanitizeConfig(cfg), true, nil
}

func saveSettings(path string, cfg Config) error {
	clean := strings.TrimSpace(path)
	if clean == "" {
		return nil
	}
	clean = filepath.Clean(clean)
	if dir := filepath.Dir(clean); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create settings dir: %w", err)
		}
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	return os.WriteFile(clean, append(data, '\n'), 0o644)
}
