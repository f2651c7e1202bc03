package logging

import (
	"log/slog"
	"os"
)

// Init installs the default slog logger on stderr. Verbose enables debug
// output; otherwise only warnings and errors are shown.
func Init(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
