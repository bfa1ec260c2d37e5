package infrastructure

import (
	"log/slog"
	"os"
)

// InitLogger installs a JSON slog handler as the default logger.
func InitLogger() {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
}
