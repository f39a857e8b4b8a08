package logger

import (
	"log/slog"
	"os"
)

var log *slog.Logger

// Init configures the global logger. Production gets JSON output,
// everything else gets the text handler for readability.
func Init(environment string) {
	var handler slog.Handler
	if environment == "production" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}

	log = slog.New(handler)
}

func get() *slog.Logger {
	if log == nil {
		Init("development")
	}
	return log
}

func Info(msg string, args ...any) {
	get().Info(msg, normalize(args)...)
}

func Warn(msg string, args ...any) {
	get().Warn(msg, normalize(args)...)
}

func Error(msg string, args ...any) {
	get().Error(msg, normalize(args)...)
}

func Fatal(msg string, args ...any) {
	get().Error(msg, normalize(args)...)
	os.Exit(1)
}

// normalize lets call sites pass bare errors or values without keys,
// e.g. logger.Error("failed to update order", err).
func normalize(args []any) []any {
	if len(args) == 1 {
		if err, ok := args[0].(error); ok {
			return []any{slog.Any("error", err)}
		}
		return []any{slog.Any("detail", args[0])}
	}
	return args
}
