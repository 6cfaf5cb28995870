// Package logging holds the shared logrus logger used for audio diagnostics.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var logger = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05.000",
	})
	l.SetLevel(logrus.InfoLevel)
	return l
}

// Logger returns the package-wide logger.
func Logger() *logrus.Logger {
	return logger
}

// For returns an entry tagged with the component name.
func For(component string) *logrus.Entry {
	return logger.WithField("component", component)
}

// SetLevel parses a level name (debug/info/warn/error). Unknown names fall
// back to info and are reported.
func SetLevel(name string) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		logger.SetLevel(logrus.InfoLevel)
		return
	}
	level, err := logrus.ParseLevel(name)
	if err != nil {
		logger.WithField("level", name).Warn("unknown log level, using info")
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
}

// SetOutput redirects log output, mainly for tests. A nil writer restores
// stderr.
func SetOutput(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	logger.SetOutput(w)
}
