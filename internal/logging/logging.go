// Package logging configures the process-wide logrus logger.
package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options selects verbosity and an optional rotating file sink.
type Options struct {
	Verbose bool
	File    string
}

// Setup configures the standard logger. Logs go to stderr so stdout stays
// clean for the completion summary; with File set they are mirrored into a
// size-rotated log file.
func Setup(opts Options) {
	logrus.SetFormatter(&logrus.TextFormatter{})
	logrus.SetLevel(logrus.InfoLevel)
	if opts.Verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}
	var out io.Writer = os.Stderr
	if opts.File != "" {
		out = io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		})
	}
	logrus.SetOutput(out)
}
