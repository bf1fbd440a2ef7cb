// Package main implements the main entry point for a CHIP-8 virtual machine
// with a terminal front end and a disassembler
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/retroenv/retrochip8/internal/cli"
	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/pipeline"
	"github.com/retroenv/retrochip8/internal/terminal"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	opts, disasmOptions, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			printBanner(logger, opts)
			usageErr.ShowUsage()
		} else {
			logger.Error("Invalid options", log.Err(err))
		}
		os.Exit(1)
	}

	if opts.Disassemble {
		err = disassemble(ctx, opts, disasmOptions)
	} else {
		err = emulate(ctx, opts)
	}
	if err != nil {
		os.Exit(1)
	}
}

func disassemble(ctx context.Context, opts options.Program, disasmOptions options.Disassembler) error {
	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	printBanner(logger, opts)

	writer, err := createWriter(opts)
	if err != nil {
		logger.Error("Creating output failed", log.Err(err))
		return err
	}
	defer func() {
		if closer, ok := writer.(io.Closer); ok && writer != os.Stdout {
			_ = closer.Close()
		}
	}()

	if err := pipeline.New(logger).Disassemble(ctx, opts, disasmOptions, writer); err != nil {
		// Handle context cancellation (Ctrl+C) gracefully
		if errors.Is(err, context.Canceled) {
			logger.Info("Operation cancelled")
			return nil
		}
		logger.Error("Disassembling failed", log.Err(err))
		return err
	}
	return nil
}

// emulate runs the ROM in the terminal. While the terminal UI is active all
// log output goes to the log file, or is discarded if none is set.
func emulate(ctx context.Context, opts options.Program) error {
	restoreOutput, err := config.RedirectOutput(opts.LogFile)
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet)
		logger.Error("Redirecting log output failed", log.Err(err))
		return err
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	printBanner(logger, opts)

	term, err := terminal.Open()
	if err != nil {
		restoreOutput()
		logger = config.CreateLogger(opts.Debug, opts.Quiet)
		logger.Error("Opening terminal failed", log.Err(err))
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	keys := make(chan keypad.Event)
	listenErr := make(chan error, 1)
	go func() {
		listenErr <- term.Listen(ctx, keys, cancel)
	}()

	state, err := pipeline.New(logger).Emulate(ctx, opts, term, keys)
	cancel()
	inputErr := <-listenErr
	term.Close()
	restoreOutput()

	logger = config.CreateLogger(opts.Debug, opts.Quiet)
	if inputErr != nil {
		logger.Error("Reading keyboard input failed", log.Err(inputErr))
	}

	switch {
	case err == nil, errors.Is(err, context.Canceled):
		if !opts.Quiet {
			logger.Info("Emulation stopped",
				log.Hex("pc", state.PC()),
				log.Hex("i", state.Index()))
		}
		return inputErr

	default:
		logger.Error("Emulation failed", log.Err(err))
		return err
	}
}

func createWriter(opts options.Program) (io.Writer, error) {
	if opts.Output == "" {
		return os.Stdout, nil
	}

	file, err := os.Create(opts.Output)
	if err != nil {
		return nil, fmt.Errorf("creating output file %s: %w", opts.Output, err)
	}
	return file, nil
}

// printBanner prints application version information
func printBanner(logger *log.Logger, opts options.Program) {
	if opts.Quiet {
		return
	}

	versionString := version
	if commit != "" {
		if len(commit) > 7 {
			commit = commit[:7]
		}
		versionString += fmt.Sprintf(" (%s)", commit)
	}

	logger.Info("retrochip8", log.String("version", versionString))

	if date != "" && !strings.Contains(date, "unknown") {
		logger.Info("Build", log.String("date", date))
	}
}
