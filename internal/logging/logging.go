// Package logging builds the logrus logger. The terminal belongs to the UI,
// so log output goes to a file unless "-" (stderr) is configured.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"lugat-go/internal/config"
)

// New returns a logger and a close function for its output.
func New(cfg config.LogConfig) (*logrus.Logger, func() error, error) {
	logger := logrus.New()
	lvl, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)
	if cfg.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})
	}

	var out io.Writer = os.Stderr
	closeFn := func() error { return nil }
	switch cfg.File {
	case "-":
	case "":
		out = io.Discard
	default:
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out = f
		closeFn = f.Close
	}
	logger.SetOutput(out)
	return logger, closeFn, nil
}
