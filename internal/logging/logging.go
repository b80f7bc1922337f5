// Package logging builds the logrus logger used by the command line.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options selects the logger output.
type Options struct {
	// Level is parsed by logrus.ParseLevel; empty means info.
	Level string
	// Format is "text" (default) or "json".
	Format string
	// File, when set, receives a rotated copy of every entry.
	File string
	// Output defaults to os.Stderr.
	Output io.Writer
}

// New returns a logger configured by opts. The returned closer releases the
// log file and is never nil.
func New(opts Options) (*logrus.Logger, io.Closer, error) {
	logger := logrus.New()

	level := logrus.InfoLevel
	if opts.Level != "" {
		l, err := logrus.ParseLevel(opts.Level)
		if err != nil {
			return nil, nil, fmt.Errorf("logging: %w", err)
		}
		level = l
	}
	logger.SetLevel(level)

	switch opts.Format {
	case "", "text":
		logger.SetFormatter(&logrus.TextFormatter{
			DisableColors:   true,
			FullTimestamp:   true,
			TimestampFormat: time.DateTime,
		})
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.DateTime,
		})
	default:
		return nil, nil, fmt.Errorf("logging: unknown format %q", opts.Format)
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	closer := io.Closer(nopCloser{})
	if opts.File != "" {
		fw, err := fileWriter(opts.File)
		if err != nil {
			return nil, nil, err
		}
		out = io.MultiWriter(out, fw)
		closer = fw
	}
	logger.SetOutput(out)

	return logger, closer, nil
}

func fileWriter(path string) (*lumberjack.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}
	return &lumberjack.Logger{
		Filename: path,
		// megabytes
		MaxSize:    32,
		MaxBackups: 5,
		// days
		MaxAge:    14,
		LocalTime: true,
	}, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
