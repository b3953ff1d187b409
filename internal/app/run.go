package app

import (
	"fmt"
	"os"

	fyneapp "fyne.io/fyne/v2/app"
)

// Run initializes required resources and starts the desktop UI.
func Run() error {
	cfg := defaultConfig()
	ensureGeneratorConfig(cfg.GeneratorConfig)
	ensureSettingsFile(cfg.SettingsFile, cfg)

	loaded, fromFile, err := loadSettings(cfg.SettingsFile, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "設定ファイルの読み込みに失敗しました (%s): %v\n", cfg.SettingsFile, err)
	} else if fromFile {
		cfg = loaded
	}

	a := fyneapp.NewWithID(fyneAppID)
	u, err := buildUI(a, cfg)
	if err != nil {
		return err
	}
	u.w.ShowAndRun()
	return nil
}
