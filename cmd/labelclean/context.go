package main

import (
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"yashubustudio/labelclean/internal/logging"
	"yashubustudio/labelclean/labelclean"
)

type commandContext struct {
	configFlag    *string
	logLevelFlag  *string
	logFormatFlag *string

	configOnce sync.Once
	config     labelclean.Config
	configErr  error
}

func newCommandContext(configFlag, logLevelFlag, logFormatFlag *string) *commandContext {
	return &commandContext{
		configFlag:    configFlag,
		logLevelFlag:  logLevelFlag,
		logFormatFlag: logFormatFlag,
	}
}

func (c *commandContext) configPath() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

func (c *commandContext) ensureConfig() (labelclean.Config, error) {
	c.configOnce.Do(func() {
		cfg, err := labelclean.LoadConfig(c.configPath())
		if err != nil {
			c.configErr = err
			return
		}
		if v := flagValue(c.logLevelFlag); v != "" {
			cfg.Log.Level = v
		}
		if v := flagValue(c.logFormatFlag); v != "" {
			cfg.Log.Format = v
		}
		labelclean.SetColumnCandidates(labelclean.ColumnCandidates{Text: cfg.ColumnCandidates})
		c.config = cfg
	})
	return c.config, c.configErr
}

// logger writes to the command's stderr so that stdout stays clean for data.
// The caller closes the returned closer when the command finishes.
func (c *commandContext) logger(cmd *cobra.Command) (*slog.Logger, io.Closer, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	return logging.New(logging.Options{
		Level:    cfg.Log.Level,
		Format:   cfg.Log.Format,
		Output:   cmd.ErrOrStderr(),
		FilePath: cfg.Log.File,
	})
}

func flagValue(v *string) string {
	if v == nil {
		return ""
	}
	return strings.TrimSpace(*v)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
