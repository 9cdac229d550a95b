package app

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"yashubustudio/labelclean/labelclean"
)

// ensureConfigFile writes cfg to path when the file does not exist yet so
// that users have a starting point for editing settings outside the app.
func ensureConfigFile(path string, cfg labelclean.Config, logger *slog.Logger) {
	clean := strings.TrimSpace(path)
	if clean == "" {
		return
	}
	clean = filepath.Clean(clean)
	if _, err := os.Stat(clean); err == nil {
		return
	} else if !errors.Is(err, os.ErrNotExist) {
		logger.Warn("config file check failed", "path", clean, "error", err)
		return
	}
	if err := labelclean.SaveConfig(clean, cfg); err != nil {
		logger.Warn("config file creation failed", "path", clean, "error", err)
		return
	}
	logger.Info("wrote default config", "path", clean)
}
