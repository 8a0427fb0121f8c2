// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize settles the final page range of every article record.
package normalize

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/pdiddy/depositor/pkg/types"
)

// PageCountMismatchError reports an external page list whose length differs
// from the number of articles.
type PageCountMismatchError struct {
	Articles int
	Pages    int
}

func (e *PageCountMismatchError) Error() string {
	return fmt.Sprintf("article count (%d) does not match page entry count (%d) in the issue PDF", e.Articles, e.Pages)
}

// Scanner yields one page range per article boundary found in the
// rendered issue.
type Scanner interface {
	Scan() ([]types.PageRange, error)
}

// ScannerFunc adapts a function to Scanner.
type ScannerFunc func() ([]types.PageRange, error)

func (f ScannerFunc) Scan() ([]types.PageRange, error) { return f() }

// Apply returns a copy of records whose i-th page range is replaced by
// pages[i]. The lengths must match.
func Apply(records []types.ArticleRecord, pages []types.PageRange, logger *zap.Logger) ([]types.ArticleRecord, error) {
	if len(records) != len(pages) {
		return nil, &PageCountMismatchError{Articles: len(records), Pages: len(pages)}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	out := make([]types.ArticleRecord, len(records))
	for i, rec := range records {
		old := rec.Pages
		rec.Pages = pages[i]
		logger.Info("page range replaced",
			zap.String("article", rec.RegistrationTitle()),
			zap.Stringer("from", old),
			zap.Stringer("to", rec.Pages))
		out[i] = rec
	}
	return out, nil
}

// Resolve applies the run's page strategy. PagesCumulative keeps the ranges
// assigned from manuscript page counts; PagesMarkerScan replaces them with
// the scanner's ranges.
func Resolve(strategy types.PageStrategy, records []types.ArticleRecord, scanner Scanner, logger *zap.Logger) ([]types.ArticleRecord, error) {
	switch strategy {
	case types.PagesCumulative, "":
		return records, nil
	case types.PagesMarkerScan:
		if scanner == nil {
			return nil, fmt.Errorf("page strategy %s needs a page scanner", strategy)
		}
		pages, err := scanner.Scan()
		if err != nil {
			return nil, fmt.Errorf("scanning issue pages: %w", err)
		}
		return Apply(records, pages, logger)
	default:
		return nil, fmt.Errorf("unknown page strategy %q", strategy)
	}
}
