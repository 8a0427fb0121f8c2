// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package corpus orders an issue's manuscripts and assigns page ranges.
package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdiddy/depositor/internal/source"
	"github.com/pdiddy/depositor/pkg/types"
)

// manuscriptExt is the only file extension loaded from an issue folder.
const manuscriptExt = ".docx"

// Entry is one manuscript with its assigned page range.
type Entry struct {
	Document types.Document
	Pages    types.PageRange
}

// Load reads every .docx manuscript in dir in collation order and assigns
// consecutive page ranges starting at page 1. A manuscript that cannot be
// read aborts the load.
func Load(dir string, r source.Reader) ([]Entry, error) {
	names, err := List(dir)
	if err != nil {
		return nil, err
	}

	docs := make([]types.Document, 0, len(names))
	for _, name := range names {
		doc, err := r.Read(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	return Paginate(docs), nil
}

// List returns the manuscript file names in dir sorted with Less. Office
// lock files ("~$name.docx") are skipped.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading articles directory %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, manuscriptExt) || strings.HasPrefix(name, "~$") {
			continue
		}
		names = append(names, name)
	}
	Sort(names)
	return names, nil
}

// Paginate pairs each document with its page range, in the given order.
func Paginate(docs []types.Document) []Entry {
	counts := make([]int, len(docs))
	for i, d := range docs {
		counts[i] = d.PageCount
	}
	ranges := AssignPages(counts)

	entries := make([]Entry, len(docs))
	for i, d := range docs {
		entries[i] = Entry{Document: d, Pages: ranges[i]}
	}
	return entries
}

// AssignPages folds page counts into consecutive ranges: the first range
// starts at page 1 and each next one starts after the previous end.
// Counts below 1 are treated as 1.
func AssignPages(counts []int) []types.PageRange {
	ranges := make([]types.PageRange, len(counts))
	current := 1
	for i, n := range counts {
		if n < 1 {
			n = 1
		}
		ranges[i] = types.PageRange{Start: current, End: current + n - 1}
		current += n
	}
	return ranges
}

// Sort orders names in place by Less, keeping the input order of ties.
func Sort(names []string) {
	sort.SliceStable(names, func(i, j int) bool { return Less(names[i], names[j]) })
}
