package logger

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

var base = logrus.New()

// Init configures the process-wide logger. Local development gets a colored
// text formatter, everything else logs JSON.
func Init(environment string) {
	if environment == "" || environment == "development" || environment == "local" {
		base.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339Nano,
			ForceColors:     true,
		})
	} else {
		base.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
		})
	}

	base.SetOutput(os.Stdout)

	switch os.Getenv("LOG_LEVEL") {
	case "debug":
		base.SetLevel(logrus.DebugLevel)
	case "warn":
		base.SetLevel(logrus.WarnLevel)
	case "error":
		base.SetLevel(logrus.ErrorLevel)
	default:
		base.SetLevel(logrus.InfoLevel)
	}
}

// fields interprets args as alternating key/value pairs. A bare error is
// stored under "error", anything else out of position under "extra".
func fields(args []any) logrus.Fields {
	f := logrus.Fields{}
	for i := 0; i < len(args); i++ {
		if key, ok := args[i].(string); ok && i+1 < len(args) {
			f[key] = args[i+1]
			i++
			continue
		}
		if err, ok := args[i].(error); ok {
			f["error"] = err.Error()
			continue
		}
		f["extra"] = args[i]
	}
	return f
}

func Debug(msg string, args ...any) { base.WithFields(fields(args)).Debug(msg) }
func Info(msg string, args ...any)  { base.WithFields(fields(args)).Info(msg) }
func Warn(msg string, args ...any)  { base.WithFields(fields(args)).Warn(msg) }
func Error(msg string, args ...any) { base.WithFields(fields(args)).Error(msg) }
func Fatal(msg string, args ...any) { base.WithFields(fields(args)).Fatal(msg) }
