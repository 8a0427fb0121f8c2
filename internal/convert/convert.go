// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert renders manuscripts to PDF with pluggable backends.
package convert

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/depositor/internal/corpus"
	"github.com/pdiddy/depositor/internal/office"
)

// Status is the outcome of rendering one document.
type Status int

const (
	StatusConverted Status = iota
	StatusSkipped
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusConverted:
		return "converted"
	case StatusSkipped:
		return "skipped"
	default:
		return "failed"
	}
}

// Converter renders the document at docPath into outDir and returns the
// path of the produced PDF.
type Converter interface {
	Convert(docPath, outDir string) (string, error)
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
}

// Total returns the total number of documents processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any document failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// PDFPath returns the PDF path LibreOffice produces for docPath in outDir.
func PDFPath(docPath, outDir string) string {
	base := strings.TrimSuffix(filepath.Base(docPath), filepath.Ext(docPath))
	return filepath.Join(outDir, base+".pdf")
}

// ConvertDocument renders one document, writing a status line to w. An
// existing PDF is left alone and reported as skipped.
func ConvertDocument(c Converter, docPath, outDir string, w io.Writer) Status {
	name := filepath.Base(docPath)
	if _, err := os.Stat(PDFPath(docPath, outDir)); err == nil {
		fmt.Fprintf(w, "skipped: %s (already exists)\n", name)
		return StatusSkipped
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", name, err)
		return StatusFailed
	}

	pdf, err := c.Convert(docPath, outDir)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", name, err)
		return StatusFailed
	}

	fmt.Fprintf(w, "converted: %s -> %s\n", name, pdf)
	return StatusConverted
}

// ConvertBatch renders docs in order, printing per-file status to w and
// returning a summary. A failed document never stops the batch.
func ConvertBatch(c Converter, docs []string, outDir string, w io.Writer) BatchResult {
	var result BatchResult
	for _, d := range docs {
		switch ConvertDocument(c, d, outDir, w) {
		case StatusConverted:
			result.Converted++
		case StatusSkipped:
			result.Skipped++
		case StatusFailed:
			result.Failed++
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result
}

// ConvertDir renders every manuscript in dir in issue order.
func ConvertDir(c Converter, dir, outDir string, w io.Writer) (BatchResult, error) {
	names, err := corpus.List(dir)
	if err != nil {
		return BatchResult{}, err
	}
	docs := make([]string, len(names))
	for i, n := range names {
		docs[i] = filepath.Join(dir, n)
	}
	return ConvertBatch(c, docs, outDir, w), nil
}

// OfficeConverter renders documents through a LibreOffice runtime.
type OfficeConverter struct {
	runtime office.Runtime
}

// NewOfficeConverter creates a converter backed by rt.
func NewOfficeConverter(rt office.Runtime) *OfficeConverter {
	return &OfficeConverter{runtime: rt}
}

// Convert runs the headless conversion and checks that the PDF appeared.
func (o *OfficeConverter) Convert(docPath, outDir string) (string, error) {
	if err := o.runtime.ConvertToPDF(docPath, outDir); err != nil {
		return "", err
	}
	pdf := PDFPath(docPath, outDir)
	if _, err := os.Stat(pdf); err != nil {
		return "", fmt.Errorf("%s produced no PDF for %s", o.runtime.Name(), filepath.Base(docPath))
	}
	return pdf, nil
}
