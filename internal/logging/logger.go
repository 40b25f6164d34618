package logging

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"golang.org/x/term"
)

// NewHandler builds the tint handler used by every binary. Color is only
// emitted when w is a terminal.
func NewHandler(w io.Writer, level slog.Level) slog.Handler {
	noColor := true
	if f, ok := w.(*os.File); ok {
		noColor = !term.IsTerminal(int(f.Fd()))
	}

	return tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		AddSource:  level <= slog.LevelDebug,
		NoColor:    noColor,
	})
}

func InitLogger(level slog.Level) {
	InitLoggerTo(os.Stdout, level)
}

// InitLoggerTo is used by the terminal client, which keeps stdout for the page.
func InitLoggerTo(w io.Writer, level slog.Level) {
	slog.SetDefault(slog.New(NewHandler(w, level)))
}
