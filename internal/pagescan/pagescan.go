// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pagescan recovers article page ranges from a merged issue PDF by
// looking for the running header printed on each article's first page.
package pagescan

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"

	"github.com/pdiddy/depositor/pkg/types"
)

// DefaultMarker is the running header of the journal.
const DefaultMarker = "COMPUTER SYSTEMS AND NETWORKS"

// ErrMarkerNotFound is returned when no page carries the marker.
var ErrMarkerNotFound = errors.New("marker not found in PDF")

// Pages exposes per-page plain text of a PDF. Page numbers are 1-based.
type Pages interface {
	NumPage() int
	Text(page int) (string, error)
}

// MarkerPages returns the 1-based numbers of pages whose text contains
// marker. Pages without extractable text are skipped.
func MarkerPages(p Pages, marker string) []int {
	var found []int
	for i := 1; i <= p.NumPage(); i++ {
		text, err := p.Text(i)
		if err != nil || text == "" {
			continue
		}
		if strings.Contains(text, marker) {
			found = append(found, i)
		}
	}
	return found
}

// Spans turns marker pages into printed page ranges. The first marker page
// is printed page 1; each span runs to the page before the next marker and
// the last one to the end of the document.
func Spans(markers []int, numPages int) ([]types.PageRange, error) {
	if len(markers) == 0 {
		return nil, ErrMarkerNotFound
	}
	offset := markers[0] - 1
	spans := make([]types.PageRange, len(markers))
	for i, m := range markers {
		end := numPages - offset
		if i+1 < len(markers) {
			end = markers[i+1] - 1 - offset
		}
		spans[i] = types.PageRange{Start: m - offset, End: end}
	}
	return spans, nil
}

// Scan opens the PDF at path and returns one range per marker page.
func Scan(path, marker string) ([]types.PageRange, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF %s: %w", path, err)
	}
	defer f.Close()

	p := readerPages{r: r}
	spans, err := Spans(MarkerPages(p, marker), p.NumPage())
	if err != nil {
		return nil, fmt.Errorf("%s: %w (%q)", path, err, marker)
	}
	return spans, nil
}

type readerPages struct {
	r *pdf.Reader
}

func (p readerPages) NumPage() int { return p.r.NumPage() }

func (p readerPages) Text(i int) (string, error) {
	page := p.r.Page(i)
	if page.V.IsNull() {
		return "", nil
	}
	return page.GetPlainText(nil)
}

// Scanner scans a fixed PDF with a fixed marker.
type Scanner struct {
	Path   string
	Marker string
	Logger *zap.Logger
}

// Scan returns the page ranges found in s.Path.
func (s Scanner) Scan() ([]types.PageRange, error) {
	marker := s.Marker
	if marker == "" {
		marker = DefaultMarker
	}
	spans, err := Scan(s.Path, marker)
	if err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.Debug("marker scan complete",
			zap.String("pdf", s.Path),
			zap.String("marker", marker),
			zap.Int("articles", len(spans)))
	}
	return spans, nil
}
