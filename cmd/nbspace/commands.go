package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrymomot/nbspace"
	"github.com/dmitrymomot/nbspace/internal/server"
	"github.com/dmitrymomot/nbspace/pkg/changelog"
	"github.com/dmitrymomot/nbspace/pkg/sheetio"
)

var errUsage = errors.New("usage")

func commonFlags(fs *flag.FlagSet, o *overrides) {
	fs.StringVar(&o.profile, "profile", "", "YAML rule profile (overrides RULES_PROFILE)")
	fs.StringVar(&o.language, "lang", "", "Default language code (overrides DEFAULT_LANGUAGE)")
}

func toFlatCommand() command {
	fs := flag.NewFlagSet("to-flat", flag.ExitOnError)
	var o overrides
	commonFlags(fs, &o)
	fs.StringVar(&o.charset, "charset", "", "Output charset: utf-8, macintosh, windows-1252, utf-16le")
	report := fs.Bool("report", false, "Print the audit report of every file")

	return command{flags: fs, run: func(ctx context.Context, args []string) error {
		return convert(ctx, o, args, sheetio.SheetExt, *report, (*nbspace.Converter).SheetToFlat)
	}}
}

func toSheetCommand() command {
	fs := flag.NewFlagSet("to-sheet", flag.ExitOnError)
	var o overrides
	commonFlags(fs, &o)
	fs.StringVar(&o.fallback, "fallback", "", "8-bit charset assumed for input that is not UTF-8 or UTF-16")
	fs.BoolVar(&o.noAudit, "no-audit", false, "Skip the duplicate language key audit")
	report := fs.Bool("report", false, "Print the audit report of every file")

	return command{flags: fs, run: func(ctx context.Context, args []string) error {
		return convert(ctx, o, args, sheetio.FlatExt, *report, (*nbspace.Converter).FlatToSheet)
	}}
}

type batchFunc func(*nbspace.Converter, context.Context, []nbspace.File) (*nbspace.Batch, error)

func convert(ctx context.Context, o overrides, args []string, ext string, report bool, run batchFunc) error {
	if len(args) == 0 {
		return errUsage
	}
	files, err := readInputs(args, ext)
	if err != nil {
		return err
	}

	a, err := newApp(ctx, o)
	if err != nil {
		return err
	}
	defer a.Close()

	batch, err := run(a.converter, ctx, files)
	if batch == nil {
		return err
	}

	for _, out := range batch.Outputs {
		where := out.Name
		if out.Stored != nil {
			where = out.Stored.Key
		}
		fmt.Printf("%s -> %s (%d changes)\n", out.Name, where, out.Log.Len())
		for _, w := range out.Warnings {
			fmt.Printf("  warning: %s\n", w)
		}
		if report {
			fmt.Println(changelog.NewReport(out.Name, out.Log).Markdown())
		}
	}
	fmt.Printf("run %s: %d converted, %d failed\n", batch.RunID, len(batch.Outputs), len(batch.Log.Errors()))
	return err
}

// readInputs reads the named files. Directories contribute their files with
// the given extension.
func readInputs(args []string, ext string) ([]nbspace.File, error) {
	var files []nbspace.File
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}

		paths := []string{arg}
		if info.IsDir() {
			if paths, err = filepath.Glob(filepath.Join(arg, "*"+ext)); err != nil {
				return nil, err
			}
		}
		for _, p := range paths {
			data, err := os.ReadFile(p)
			if err != nil {
				return nil, err
			}
			files = append(files, nbspace.File{Name: filepath.Base(p), Data: data})
		}
	}
	if len(files) == 0 {
		return nil, nbspace.ErrNoFiles
	}
	return files, nil
}

func normalizeCommand() command {
	fs := flag.NewFlagSet("normalize", flag.ExitOnError)
	var o overrides
	commonFlags(fs, &o)
	verbose := fs.Bool("v", false, "Print every change to stderr")

	return command{flags: fs, run: func(ctx context.Context, args []string) error {
		a, err := newApp(ctx, o)
		if err != nil {
			return err
		}
		defer a.Close()

		lines := args
		if len(lines) == 0 {
			if lines, err = readLines(os.Stdin); err != nil {
				return err
			}
		}

		var log changelog.Log
		for _, line := range lines {
			fmt.Println(a.engine.Normalize(ctx, line, a.cfg.Transcode.DefaultLanguage, a.settings(), &log))
		}
		if *verbose {
			for _, e := range log.Events() {
				fmt.Fprintf(os.Stderr, "%s: %q -> %q\n", e.Rule, e.Before, e.After)
			}
		}
		return nil
	}}
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines, sc.Err()
}

func diffCommand() command {
	fs := flag.NewFlagSet("diff", flag.ExitOnError)
	var o overrides
	asJSON := fs.Bool("json", false, "Print the diff as JSON")

	return command{flags: fs, run: func(ctx context.Context, args []string) error {
		if len(args) != 2 {
			return errUsage
		}
		var files [2]nbspace.File
		for i, p := range args {
			data, err := os.ReadFile(p)
			if err != nil {
				return err
			}
			files[i] = nbspace.File{Name: filepath.Base(p), Data: data}
		}

		a, err := newApp(ctx, o)
		if err != nil {
			return err
		}
		defer a.Close()

		diff, err := a.converter.Diff(ctx, files[0], files[1])
		if err != nil {
			return err
		}

		if *asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(diff)
		}

		fmt.Printf("%s: %d keys, %s: %d keys\n", files[0].Name, diff.FirstCount, files[1].Name, diff.SecondCount)
		printKeys("only in "+files[0].Name, diff.OnlyInFirst)
		printKeys("only in "+files[1].Name, diff.OnlyInSecond)
		printKeys("duplicated in "+files[0].Name, diff.FirstDuplicates)
		printKeys("duplicated in "+files[1].Name, diff.SecondDuplicates)
		if len(diff.Changed) > 0 {
			fmt.Printf("changed (%d):\n", len(diff.Changed))
			for _, c := range diff.Changed {
				fmt.Printf("  %s: %q -> %q\n", c.Key, c.First, c.Second)
			}
		}
		if diff.Identical() {
			fmt.Println("identical")
		}
		return nil
	}}
}

func printKeys(title string, keys []string) {
	if len(keys) == 0 {
		return
	}
	fmt.Printf("%s (%d):\n  %s\n", title, len(keys), strings.Join(keys, "\n  "))
}

func serveCommand() command {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	var o overrides
	commonFlags(fs, &o)

	return command{flags: fs, run: func(ctx context.Context, _ []string) error {
		a, err := newApp(ctx, o)
		if err != nil {
			return err
		}
		defer a.Close()

		srv := server.New(a.cfg.Server, a.converter, a.engine,
			server.WithLogger(a.log),
			server.WithChecks(a.checks),
			server.WithDefaultLanguage(a.cfg.Transcode.DefaultLanguage),
		)
		return srv.Run(ctx)
	}}
}
