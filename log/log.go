package log

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

var VerboseEnabled = false

// New returns a configured logrus.Logger. JSON output is used to keep logs
// structured when the tool runs under another program.
func New(env string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(parseLevel(env))
	log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
	})
	return log
}

func parseLevel(env string) logrus.Level {
	if VerboseEnabled {
		return logrus.DebugLevel
	}
	switch strings.ToLower(env) {
	case "local", "dev":
		return logrus.DebugLevel
	default:
		return logrus.InfoLevel
	}
}

var defaultLogger *logrus.Logger

// Default is the process-wide logger, configured from the ENVIRONMENT
// variable on first use.
func Default() *logrus.Logger {
	if defaultLogger == nil {
		defaultLogger = New(os.Getenv("ENVIRONMENT"))
	}
	return defaultLogger
}

// ErrorPrinter is how core code surfaces user-facing problems without
// deciding where they go.
type ErrorPrinter interface {
	Ln(v ...interface{})
	F(format string, v ...interface{})
}

// The default ErrorPrinter
type StderrErrorPrinter struct{}

func (p *StderrErrorPrinter) Ln(v ...interface{}) {
	fmt.Fprintln(os.Stderr, v...)
}

func (p *StderrErrorPrinter) F(format string, v ...interface{}) {
	fmt.Fprintf(os.Stderr, format, v...)
}
