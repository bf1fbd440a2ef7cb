// Package main implements a standalone CHIP-8 ROM disassembler
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/pipeline"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/buildinfo"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

type optionFlags struct {
	input  string
	output string
	quiet  bool

	noHexComments bool
	noOffsets     bool
}

func main() {
	opts, disasmOptions := readArguments()

	if !opts.quiet {
		printBanner()
	}

	if err := disasmFile(app.Context(), opts, disasmOptions); err != nil {
		fmt.Println(fmt.Errorf("disassembling failed: %w", err))
		os.Exit(1)
	}
}

func readArguments() (optionFlags, options.Disassembler) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	opts := optionFlags{}

	flags.BoolVar(&opts.noHexComments, "nohexcomments", false, "do not output opcode bytes as hex values in comments")
	flags.BoolVar(&opts.noOffsets, "nooffsets", false, "do not output offsets in comments")
	flags.StringVar(&opts.output, "o", "", "name of the output .asm file, printed on console if no name given")
	flags.BoolVar(&opts.quiet, "q", false, "perform operations quietly")

	err := flags.Parse(os.Args[1:])
	args := flags.Args()

	if err != nil || len(args) == 0 {
		printBanner()
		fmt.Printf("usage: chip8disasm [options] <file to disassemble>\n\n")
		flags.PrintDefaults()
		os.Exit(1)
	}
	opts.input = args[0]

	disasmOptions := options.NewDisassembler()
	disasmOptions.HexComments = !opts.noHexComments
	disasmOptions.OffsetComments = !opts.noOffsets
	return opts, disasmOptions
}

func printBanner() {
	fmt.Println("[---------------------------------------]")
	fmt.Println("[ chip8disasm - CHIP-8 ROM disassembler ]")
	fmt.Printf("[---------------------------------------]\n\n")
	fmt.Printf("version: %s\n\n", buildinfo.Version(version, commit, date))
}

func disasmFile(ctx context.Context, opts optionFlags, disasmOptions options.Disassembler) (err error) {
	outputFile := os.Stdout
	if opts.output != "" {
		outputFile, err = os.Create(opts.output)
		if err != nil {
			return fmt.Errorf("creating file '%s': %w", opts.output, err)
		}
	}
	defer func() {
		if outputFile == os.Stdout {
			return
		}
		if closeErr := outputFile.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing file: %w", closeErr)
		}
	}()

	logger := config.CreateLogger(false, opts.quiet)
	programOpts := options.Program{
		Parameters: options.Parameters{Input: opts.input},
		Flags:      options.Flags{Quiet: true},
	}
	if err := pipeline.New(logger).Disassemble(ctx, programOpts, disasmOptions, outputFile); err != nil {
		return fmt.Errorf("processing file: %w", err)
	}
	return nil
}
