package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
)

const helpBanner = `
nbspace: non-breaking space normalization for localization files.
    Version: %s

Usage:
    nbspace <command> [flags] [args]

Commands:
    to-flat     convert .xlsx sheets to flat .txt files
    to-sheet    convert flat .txt files to .xlsx sheets
    normalize   normalize text from the arguments or stdin
    diff        compare the keys of two files
    serve       run the HTTP API

Run "nbspace <command> -h" for the flags of a command.
`

// Version indicates the current build version.
var Version = "dev"

type command struct {
	flags *flag.FlagSet
	run   func(ctx context.Context, args []string) error
}

func main() {
	log.SetFlags(0)

	commands := map[string]command{
		"to-flat":   toFlatCommand(),
		"to-sheet":  toSheetCommand(),
		"normalize": normalizeCommand(),
		"diff":      diffCommand(),
		"serve":     serveCommand(),
	}

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	cmd, ok := commands[os.Args[1]]
	if !ok {
		if os.Args[1] != "-h" && os.Args[1] != "help" && os.Args[1] != "--help" {
			fmt.Fprintf(os.Stderr, "unknown command %q\n", os.Args[1])
		}
		usage()
		os.Exit(2)
	}
	if err := cmd.flags.Parse(os.Args[2:]); err != nil {
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cmd.run(ctx, cmd.flags.Args()); err != nil {
		if errors.Is(err, errUsage) {
			cmd.flags.Usage()
			os.Exit(2)
		}
		log.Printf("nbspace %s: %v", os.Args[1], err)
		cancel()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, helpBanner, Version)
}
