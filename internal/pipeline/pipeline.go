// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs the manuscript-to-deposit pipeline for one issue.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/depositor/internal/assemble"
	"github.com/pdiddy/depositor/internal/corpus"
	"github.com/pdiddy/depositor/internal/crossref"
	"github.com/pdiddy/depositor/internal/document"
	"github.com/pdiddy/depositor/internal/extract"
	"github.com/pdiddy/depositor/internal/ledger"
	"github.com/pdiddy/depositor/internal/normalize"
	"github.com/pdiddy/depositor/internal/output"
	"github.com/pdiddy/depositor/internal/pagescan"
	"github.com/pdiddy/depositor/internal/source"
	"github.com/pdiddy/depositor/pkg/types"
)

// RecordsFile is the records checkpoint name inside the output directory.
const RecordsFile = "records.yaml"

// Options configures one run.
type Options struct {
	Config types.PipelineConfig

	// Reader reads manuscripts. Nil selects the docx reader.
	Reader source.Reader

	// Scanner overrides the marker scanner built from Config.Pages.
	Scanner normalize.Scanner

	Logger *zap.Logger
	Out    io.Writer

	// Now fixes the batch timestamp. Nil selects time.Now.
	Now func() time.Time

	// Documents writes the contents and DOI letter next to the deposit;
	// Sheet adds the xlsx workbook.
	Documents bool
	Sheet     bool

	// Ledger records the deposit in the history database.
	Ledger bool
}

// Result describes what a run produced.
type Result struct {
	Deposit     *crossref.DoiBatch
	Records     []types.ArticleRecord
	DepositPath string
	RecordsPath string
	Documents   []string
	Conflicts   []ledger.Conflict
}

// DepositPath returns the configured deposit file location.
func DepositPath(p types.PathsConfig) string {
	return filepath.Join(p.OutputDir, p.DepositFile)
}

// Extract loads the articles directory in issue order and extracts one
// record per manuscript with cumulative page ranges.
func Extract(ctx context.Context, opts Options) ([]types.ArticleRecord, error) {
	opts = withDefaults(opts)
	entries, err := corpus.Load(opts.Config.Paths.ArticlesDir, opts.Reader)
	if err != nil {
		return nil, err
	}
	opts.Logger.Info("corpus loaded",
		zap.String("dir", opts.Config.Paths.ArticlesDir),
		zap.Int("documents", len(entries)))
	return extract.ExtractAll(ctx, entries, opts.Logger, opts.Out)
}

// Build runs every stage. Nothing is written until the deposit has been
// assembled and encoded, so a fatal error leaves earlier outputs intact.
func Build(ctx context.Context, opts Options) (Result, error) {
	opts = withDefaults(opts)
	cfg := opts.Config
	if err := cfg.Publication.Validate(); err != nil {
		return Result{}, fmt.Errorf("invalid publication settings: %w", err)
	}

	records, err := Extract(ctx, opts)
	if err != nil {
		return Result{}, err
	}

	scanner := opts.Scanner
	if scanner == nil && cfg.Pages.Strategy == types.PagesMarkerScan {
		scanner = pagescan.Scanner{Path: cfg.Pages.PDFPath, Marker: cfg.Pages.Marker, Logger: opts.Logger}
	}
	records, err = normalize.Resolve(cfg.Pages.Strategy, records, scanner, opts.Logger)
	if err != nil {
		return Result{}, err
	}

	batch := assemble.Assemble(types.RegistrationBatch{Context: cfg.Publication, Articles: records}, opts.Now())
	data, err := crossref.Encode(batch)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Deposit:     batch,
		Records:     records,
		DepositPath: DepositPath(cfg.Paths),
		RecordsPath: filepath.Join(cfg.Paths.OutputDir, RecordsFile),
	}

	var store *ledger.Store
	if opts.Ledger {
		if store, err = ledger.Open(cfg.Paths.LedgerDir); err != nil {
			return Result{}, err
		}
		defer store.Close()
		recorded, err := store.HasBatch(ctx, batch.Head.DoiBatchID)
		if err != nil {
			return Result{}, err
		}
		if recorded {
			return Result{}, fmt.Errorf("%s: %w", batch.Head.DoiBatchID, ledger.ErrDuplicateBatch)
		}
		if res.Conflicts, err = store.Conflicts(ctx, batch); err != nil {
			return Result{}, err
		}
		for _, c := range res.Conflicts {
			opts.Logger.Warn("DOI previously registered under another title",
				zap.String("doi", c.DOI),
				zap.String("title", c.Title),
				zap.String("previous_title", c.PreviousTitle),
				zap.String("previous_batch", c.PreviousBatch))
		}
	}

	if err := output.WriteBytes(res.DepositPath, data); err != nil {
		return Result{}, err
	}
	fmt.Fprintf(opts.Out, "deposit: %s (%d articles)\n", res.DepositPath, len(records))

	if err := extract.WriteRecords(res.RecordsPath, records, opts.Now()); err != nil {
		return res, err
	}

	if opts.Documents {
		if res.Documents, err = document.WriteAll(cfg.Paths.OutputDir, batch, opts.Sheet); err != nil {
			return res, err
		}
		for _, p := range res.Documents {
			fmt.Fprintf(opts.Out, "document: %s\n", p)
		}
	}

	if store != nil {
		if _, err := store.Record(ctx, batch, res.DepositPath, opts.Now()); err != nil {
			return res, err
		}
		opts.Logger.Info("deposit recorded", zap.String("batch", batch.Head.DoiBatchID))
	}
	return res, nil
}

func withDefaults(opts Options) Options {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Reader == nil {
		opts.Reader = source.NewDocxReader(opts.Logger)
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return opts
}
