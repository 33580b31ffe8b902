package logger

import (
	"log/slog"
	"os"
)

var log = slog.New(slog.NewTextHandler(os.Stdout, nil))

// Init configures the process-wide logger. Development gets readable text
// at debug level, everything else JSON at info level.
func Init(environment string) {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}

	var handler slog.Handler
	switch environment {
	case "development":
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(os.Stdout, opts)
	default:
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	log = slog.New(handler)
}

// normalize tolerates call sites that pass a bare error (or any other bare
// value) instead of key/value pairs, so slog never prints !BADKEY.
func normalize(args []any) []any {
	out := make([]any, 0, len(args))

	for i := 0; i < len(args); {
		switch v := args[i].(type) {
		case slog.Attr:
			out = append(out, v)
			i++
		case string:
			if i+1 < len(args) {
				out = append(out, v, args[i+1])
				i += 2
			} else {
				out = append(out, "detail", v)
				i++
			}
		case error:
			out = append(out, "error", v)
			i++
		default:
			out = append(out, "detail", v)
			i++
		}
	}

	return out
}

func Debug(msg string, args ...any) {
	log.Debug(msg, normalize(args)...)
}

func Info(msg string, args ...any) {
	log.Info(msg, normalize(args)...)
}

func Warn(msg string, args ...any) {
	log.Warn(msg, normalize(args)...)
}

func Error(msg string, args ...any) {
	log.Error(msg, normalize(args)...)
}

func Fatal(msg string, args ...any) {
	log.Error(msg, normalize(args)...)
	os.Exit(1)
}
