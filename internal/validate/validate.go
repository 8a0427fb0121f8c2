// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package validate checks that manuscripts carry the journal's mandatory
// section headings.
package validate

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/depositor/internal/corpus"
	"github.com/pdiddy/depositor/internal/source"
	"github.com/pdiddy/depositor/pkg/types"
)

// RequiredSections are the headings of the manuscript template, in order.
var RequiredSections = []string{
	"Вступ",
	"Огляд літературних джерел",
	"Постановка задачі",
	"Результати дослідження",
	"Висновки",
	"Список літератури",
}

// leadingNumber matches heading numbering such as "3. ", "2.1 " or "4)".
var leadingNumber = regexp.MustCompile(`^\d+(\.\d+)*[.)]?\s*`)

// Report lists which required headings one manuscript has.
type Report struct {
	File    string   `json:"file" yaml:"file"`
	Present []string `json:"present" yaml:"present"`
	Missing []string `json:"missing" yaml:"missing"`
}

// OK reports whether no heading is missing.
func (r Report) OK() bool { return len(r.Missing) == 0 }

// Normalize maps non-breaking spaces to spaces, collapses whitespace and
// strips leading heading numbers.
func Normalize(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = strings.Join(strings.Fields(s), " ")
	return leadingNumber.ReplaceAllString(s, "")
}

// Check compares the normalized paragraphs of doc against sections. A
// heading counts as present only when a whole paragraph equals it.
func Check(doc types.Document, sections []string) Report {
	seen := make(map[string]bool, len(doc.Paragraphs))
	for _, p := range doc.Paragraphs {
		if n := Normalize(p.Text); n != "" {
			seen[n] = true
		}
	}

	r := Report{File: doc.Name, Present: []string{}, Missing: []string{}}
	for _, s := range sections {
		if seen[s] {
			r.Present = append(r.Present, s)
		} else {
			r.Missing = append(r.Missing, s)
		}
	}
	return r
}

// CheckDir validates every manuscript in dir in issue order and writes one
// status line per file to w. An unreadable manuscript aborts the run.
func CheckDir(dir string, reader source.Reader, sections []string, w io.Writer) ([]Report, error) {
	names, err := corpus.List(dir)
	if err != nil {
		return nil, err
	}

	reports := make([]Report, 0, len(names))
	for _, name := range names {
		doc, err := reader.Read(filepath.Join(dir, name))
		if err != nil {
			return reports, err
		}
		r := Check(doc, sections)
		if r.OK() {
			fmt.Fprintf(w, "ok:      %s\n", r.File)
		} else {
			fmt.Fprintf(w, "missing: %s (%s)\n", r.File, strings.Join(r.Missing, ", "))
		}
		reports = append(reports, r)
	}
	return reports, nil
}

// sectionsFile is the on-disk form of a custom heading list.
type sectionsFile struct {
	Sections []string `yaml:"sections"`
}

// LoadSections reads a YAML heading list ("sections: [...]"). An empty
// path selects RequiredSections.
func LoadSections(path string) ([]string, error) {
	if path == "" {
		return RequiredSections, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading sections: %w", err)
	}
	var sf sectionsFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parsing sections: %w", err)
	}
	if len(sf.Sections) == 0 {
		return nil, fmt.Errorf("sections file %s lists no headings", path)
	}
	return sf.Sections, nil
}
