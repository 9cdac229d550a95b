package app

import (
	"log/slog"
	"os"

	fyneapp "fyne.io/fyne/v2/app"

	"yashubustudio/labelclean/internal/logging"
	"yashubustudio/labelclean/labelclean"
)

const fyneAppID = "studio.yashubu.labelclean"

// Run loads the configuration and starts the desktop UI. An empty configPath
// uses ./config.json or the XDG default.
func Run(configPath string) error {
	path := labelclean.ResolveConfigPath(configPath)
	cfg, err := labelclean.LoadConfig(path)
	if err != nil {
		return err
	}

	base, logCloser, err := logging.New(logging.Options{
		Level:    cfg.Log.Level,
		Format:   cfg.Log.Format,
		Output:   os.Stderr,
		FilePath: cfg.Log.File,
	})
	if err != nil {
		return err
	}
	defer logCloser.Close()
	ensureConfigFile(path, cfg, base)
	labelclean.SetColumnCandidates(labelclean.ColumnCandidates{Text: cfg.ColumnCandidates})

	a := fyneapp.NewWithID(fyneAppID)
	u := buildUI(a, cfg, path, base)
	u.w.ShowAndRun()
	return nil
}

// paneLogger tees base into the UI log pane. The pane drops timestamps and
// source locations since appendLog stamps each line itself.
func paneLogger(base *slog.Logger, u *uiState, level slog.Level) *slog.Logger {
	pane := slog.NewTextHandler(&paneWriter{u: u}, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && (a.Key == slog.TimeKey || a.Key == slog.SourceKey) {
				return slog.Attr{}
			}
			return a
		},
	})
	return logging.TeeLogger(base, pane)
}
