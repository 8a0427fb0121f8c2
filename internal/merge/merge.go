// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package merge concatenates rendered article PDFs into one issue PDF.
package merge

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/pdiddy/depositor/internal/output"
)

// ErrNoPDFs is returned when the input folder holds no PDF files.
var ErrNoPDFs = errors.New("no PDF files found")

// Result summarizes a merge.
type Result struct {
	Files []string
	Pages int
}

// List returns the PDF files in dir ordered by lowercased name.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading PDF directory %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".pdf") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.SliceStable(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})

	paths := make([]string, len(names))
	for i, n := range names {
		paths[i] = filepath.Join(dir, n)
	}
	return paths, nil
}

// Merge writes the PDFs of dir, in List order, to out and reports the
// merged page count. Progress lines go to w.
func Merge(dir, out string, w io.Writer) (Result, error) {
	files, err := List(dir)
	if err != nil {
		return Result{}, err
	}
	if len(files) == 0 {
		return Result{}, fmt.Errorf("%s: %w", dir, ErrNoPDFs)
	}

	for _, f := range files {
		fmt.Fprintf(w, "adding: %s\n", filepath.Base(f))
	}
	// A failed merge leaves any previous out untouched.
	err = output.WriteFile(out, func(w io.Writer) error {
		return api.Merge("", files, w, model.NewDefaultConfiguration(), false)
	})
	if err != nil {
		return Result{}, fmt.Errorf("merging into %s: %w", out, err)
	}

	pages, err := api.PageCountFile(out)
	if err != nil {
		return Result{}, fmt.Errorf("counting pages of %s: %w", out, err)
	}
	fmt.Fprintf(w, "merged: %d files, %d pages -> %s\n", len(files), pages, out)
	return Result{Files: files, Pages: pages}, nil
}
