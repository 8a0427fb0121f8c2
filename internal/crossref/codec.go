// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package crossref

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pdiddy/depositor/internal/output"
)

// Encode renders b as an indented deposit document with an XML declaration.
func Encode(b *DoiBatch) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(b); err != nil {
		return nil, fmt.Errorf("encoding deposit: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding deposit: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Decode reads a deposit document.
func Decode(r io.Reader) (*DoiBatch, error) {
	var b DoiBatch
	if err := xml.NewDecoder(r).Decode(&b); err != nil {
		return nil, fmt.Errorf("decoding deposit: %w", err)
	}
	if b.JATS == "" {
		b.JATS = JATSNamespace
	}
	return &b, nil
}

// ReadFile decodes the deposit file at path.
func ReadFile(path string) (*DoiBatch, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening deposit %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f)
}

// WriteFile encodes b and replaces path. The file is left untouched when
// encoding fails.
func WriteFile(path string, b *DoiBatch) error {
	data, err := Encode(b)
	if err != nil {
		return err
	}
	return output.WriteBytes(path, data)
}

// NotAvailable fills row fields missing from a deposit.
const NotAvailable = "N/A"

// ArticleRow is the per-article view consumed by the document writers.
type ArticleRow struct {
	Index   int    `json:"index" yaml:"index"`
	Authors string `json:"authors" yaml:"authors"`
	Title   string `json:"title" yaml:"title"`
	Pages   string `json:"pages" yaml:"pages"`
	URL     string `json:"url" yaml:"url"`
	DOI     string `json:"doi" yaml:"doi"`
}

// Rows flattens the articles of b in deposit order. Authors are written
// "Given Surname" and joined with ", ".
func Rows(b *DoiBatch) []ArticleRow {
	rows := make([]ArticleRow, 0, len(b.Body.Journal.Articles))
	for i, a := range b.Body.Journal.Articles {
		rows = append(rows, ArticleRow{
			Index:   i + 1,
			Authors: authorLine(a.Contributors),
			Title:   orNA(a.Titles.Title),
			Pages:   pageRange(a.Pages),
			URL:     orNA(a.DOIData.Resource),
			DOI:     orNA(a.DOIData.DOI),
		})
	}
	return rows
}

func authorLine(c *Contributors) string {
	if c == nil {
		return NotAvailable
	}
	names := make([]string, 0, len(c.People))
	for _, p := range c.People {
		names = append(names, strings.TrimSpace(p.GivenName+" "+p.Surname))
	}
	return orNA(strings.Join(names, ", "))
}

func pageRange(p Pages) string {
	if p.FirstPage == "" || p.LastPage == "" {
		return NotAvailable
	}
	return p.FirstPage + "-" + p.LastPage
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return NotAvailable
	}
	return s
}
