package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"yashubustudio/idgen/generator"
)

func ensureDirs(p string) {
	if p == "" || p == "." {
		return
	}
	_ = os.MkdirAll(filepath.Clean(p), 0o755)
}

// ensureGeneratorConfig writes the built-in generator configuration to path
// when it is missing, so presets and tables can be edited next to the binary.
func ensureGeneratorConfig(path string) {
	clean := strings.TrimSpace(path)
	if clean == "" {
		return
	}
	clean = filepath.Clean(clean)
	if _, err := os.Stat(clean); err == nil {
		return
	} else if !errors.Is(err, os.ErrNotExist) {
		fmt.Println("生成設定ファイル確認エラー:", err)
		return
	}
	ensureDirs(filepath.Dir(clean))
	if err := os.WriteFile(clean, generator.DefaultConfigJSON(), 0o644); err != nil {
		fmt.Println("生成設定ファイル作成エラー:", err)
	}
}
