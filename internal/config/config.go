// Package config handles application configuration and setup
package config

import (
	"fmt"
	"os"

	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings. Log output goes
// to the standard error stream, standard output is used for listings.
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	cfg.Output = os.Stderr
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// RedirectOutput points the process standard output and error streams to
// the given file, or discards them if no file name is given. It has to be
// called before creating a logger that should write to the file. The
// returned function restores the original streams and closes the file.
func RedirectOutput(fileName string) (func(), error) {
	if fileName == "" {
		fileName = os.DevNull
	}

	file, err := os.OpenFile(fileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file %s: %w", fileName, err)
	}

	stdout, stderr := os.Stdout, os.Stderr
	os.Stdout, os.Stderr = file, file

	return func() {
		os.Stdout, os.Stderr = stdout, stderr
		_ = file.Close()
	}, nil
}
