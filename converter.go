package nbspace

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrymomot/nbspace/pkg/changelog"
	"github.com/dmitrymomot/nbspace/pkg/charset"
	"github.com/dmitrymomot/nbspace/pkg/keydiff"
	"github.com/dmitrymomot/nbspace/pkg/logger"
	"github.com/dmitrymomot/nbspace/pkg/rules"
	"github.com/dmitrymomot/nbspace/pkg/sheetio"
	"github.com/dmitrymomot/nbspace/pkg/storage"
	"github.com/dmitrymomot/nbspace/pkg/transcode"
)

// Conversion directions, also used as the log "direction" attribute.
const (
	DirectionSheetToFlat = "sheet-to-flat"
	DirectionFlatToSheet = "flat-to-sheet"
)

// ReportSuffix is appended to an output name for its stored audit report.
const ReportSuffix = ".audit.md"

// File is one input of a batch.
type File struct {
	Name string
	Data []byte
}

// Output is a converted file.
type Output struct {
	Name string
	Data []byte
	// Source is the detected charset of a flat input; empty for sheets.
	Source   charset.Charset
	Log      *changelog.Log
	Warnings []string
	// Stored and Report are set when the Converter has storage.
	Stored *storage.FileInfo
	Report *storage.FileInfo
}

// Batch is the result of converting a set of files.
type Batch struct {
	RunID   string
	Outputs []Output
	// Log holds one error entry per failed file.
	Log *changelog.Log
}

// Converter runs batch conversions. It is safe for concurrent use; each
// batch keeps its own logs.
type Converter struct {
	transcoder      *transcode.Transcoder
	transcodeOpts   []transcode.Option
	profile         rules.Profile
	outputCharset   charset.Charset
	fallbackCharset charset.Charset
	store           storage.Storage
	logger          *slog.Logger
}

// New creates a Converter.
func New(opts ...Option) *Converter {
	c := &Converter{
		profile:         rules.DefaultProfile(),
		outputCharset:   charset.UTF8,
		fallbackCharset: charset.MacRoman,
		logger:          logger.NewNope(),
	}
	for _, opt := range opts {
		opt(c)
	}

	topts := append([]transcode.Option{
		transcode.WithCharset(c.outputCharset),
		transcode.WithLogger(c.logger),
	}, c.transcodeOpts...)
	c.transcoder = transcode.New(topts...)
	return c
}

// Profile returns the rule settings in use.
func (c *Converter) Profile() rules.Profile { return c.profile }

// OutputCharset returns the charset flat files are written in.
func (c *Converter) OutputCharset() charset.Charset { return c.outputCharset }

// SheetToFlat converts XLSX sheets to flat text files.
func (c *Converter) SheetToFlat(ctx context.Context, files []File) (*Batch, error) {
	return c.run(ctx, DirectionSheetToFlat, files, c.sheetToFlat)
}

// FlatToSheet converts flat text files to XLSX sheets.
func (c *Converter) FlatToSheet(ctx context.Context, files []File) (*Batch, error) {
	return c.run(ctx, DirectionFlatToSheet, files, c.flatToSheet)
}

type convertFunc func(ctx context.Context, f File, sink changelog.Sink) (Output, error)

// run converts files one after another. A cancelled context stops the batch
// between files; the file in progress always completes.
func (c *Converter) run(ctx context.Context, direction string, files []File, convert convertFunc) (*Batch, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	batch := &Batch{RunID: uuid.NewString(), Log: &changelog.Log{}}
	ctx = logger.WithDirection(logger.WithRunID(ctx, batch.RunID), direction)
	c.logger.InfoContext(ctx, "batch started", slog.Int("files", len(files)))

	var errs []error
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		fctx := logger.WithFile(ctx, f.Name)
		log := &changelog.Log{}
		out, err := convert(fctx, f, changelog.Tee(log, changelog.NewSlogSink(fctx, c.logger)))
		if err == nil {
			out.Log = log
			err = c.upload(fctx, batch.RunID, &out)
		}
		if err != nil {
			c.logger.ErrorContext(fctx, "file conversion failed", slog.String("error", err.Error()))
			changelog.Error(changelog.At(batch.Log, f.Name), f.Name, err.Error())
			errs = append(errs, &FileError{Name: f.Name, Err: err})
			continue
		}

		c.logger.InfoContext(fctx, "file converted",
			slog.String("output", out.Name),
			slog.Int("changes", out.Log.Len()),
			slog.Int("warnings", len(out.Warnings)),
		)
		batch.Outputs = append(batch.Outputs, out)
	}

	c.logger.InfoContext(ctx, "batch finished",
		slog.Int("converted", len(batch.Outputs)),
		slog.Int("failed", len(files)-len(batch.Outputs)),
	)
	return batch, errors.Join(errs...)
}

func (c *Converter) sheetToFlat(ctx context.Context, f File, sink changelog.Sink) (Output, error) {
	if !strings.EqualFold(filepath.Ext(f.Name), sheetio.SheetExt) {
		return Output{}, fmt.Errorf("%w: %s", ErrUnsupported, filepath.Ext(f.Name))
	}
	sheet, err := sheetio.ReadSheet(bytes.NewReader(f.Data), int64(len(f.Data)))
	if err != nil {
		return Output{}, err
	}

	id, _ := transcode.ExtractIdentifier(f.Name)
	res, err := c.transcoder.SheetToFlat(ctx, sheet, c.profile.SheetToFlat, id, sink)
	if err != nil {
		return Output{}, err
	}

	data, err := sheetio.WriteFlat(res.Matrix, c.outputCharset)
	if err != nil {
		return Output{}, err
	}
	return Output{Name: sheetio.FlatName(f.Name), Data: data, Warnings: res.Warnings}, nil
}

func (c *Converter) flatToSheet(ctx context.Context, f File, sink changelog.Sink) (Output, error) {
	flat, cs, err := sheetio.ReadFlat(f.Data, c.fallbackCharset)
	if err != nil {
		return Output{}, err
	}

	res, err := c.transcoder.FlatToSheet(ctx, flat, c.profile.FlatToSheet, sink)
	if err != nil {
		return Output{}, err
	}

	var buf bytes.Buffer
	if err := sheetio.WriteSheet(&buf, res.Matrix); err != nil {
		return Output{}, err
	}
	return Output{
		Name:     sheetio.SheetFileName(f.Name),
		Data:     buf.Bytes(),
		Source:   cs,
		Warnings: res.Warnings,
	}, nil
}

// upload stores the output and its audit report when storage is configured.
func (c *Converter) upload(ctx context.Context, runID string, out *Output) error {
	if c.store == nil {
		return nil
	}

	info, err := c.store.Put(ctx, out.Name, bytes.NewReader(out.Data), int64(len(out.Data)), storage.WithPrefix(runID))
	if err != nil {
		return fmt.Errorf("store %s: %w", out.Name, err)
	}
	out.Stored = info

	report := []byte(changelog.NewReport(out.Name, out.Log).Markdown())
	info, err = c.store.Put(ctx, out.Name+ReportSuffix, bytes.NewReader(report), int64(len(report)), storage.WithPrefix(runID))
	if err != nil {
		return fmt.Errorf("store report for %s: %w", out.Name, err)
	}
	out.Report = info
	return nil
}

// Diff compares the keys of two files. Sheets are read as is; flat files are
// converted to the sheet layout first, with every rule disabled.
func (c *Converter) Diff(ctx context.Context, first, second File) (keydiff.Diff, error) {
	a, err := c.keys(ctx, first)
	if err != nil {
		return keydiff.Diff{}, &FileError{Name: first.Name, Err: err}
	}
	b, err := c.keys(ctx, second)
	if err != nil {
		return keydiff.Diff{}, &FileError{Name: second.Name, Err: err}
	}
	return keydiff.Compare(a, b), nil
}

func (c *Converter) keys(ctx context.Context, f File) (keydiff.Keys, error) {
	if strings.EqualFold(filepath.Ext(f.Name), sheetio.SheetExt) {
		sheet, err := sheetio.ReadSheet(bytes.NewReader(f.Data), int64(len(f.Data)))
		if err != nil {
			return keydiff.Keys{}, err
		}
		return keydiff.FromMatrix(sheet), nil
	}

	flat, _, err := sheetio.ReadFlat(f.Data, c.fallbackCharset)
	if err != nil {
		return keydiff.Keys{}, err
	}
	res, err := c.transcoder.FlatToSheet(ctx, flat, rules.Settings{}, nil)
	if err != nil {
		return keydiff.Keys{}, err
	}
	return keydiff.FromMatrix(res.Matrix), nil
}
