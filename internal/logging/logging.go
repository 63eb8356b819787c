package logging

import (
	"io"
	"log/slog"
	"os"
)

// New builds a slog logger writing to stdout, and additionally to the
// given file when path is non-empty. The returned file is nil when no
// file is in play; callers Close() it on shutdown.
func New(path string) (*slog.Logger, *os.File) {
	if path == "" {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})), nil
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
		logger.Error("failed to open log file; logging to stdout only", "path", path, "error", err)
		return logger, nil
	}

	mw := io.MultiWriter(os.Stdout, file)
	return slog.New(slog.NewTextHandler(mw, &slog.HandlerOptions{Level: slog.LevelInfo})), file
}
