// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"strings"
)

// Paragraph is one trimmed, non-empty text block of a manuscript together with
// its position in the source document.
type Paragraph struct {
	Index int    `json:"index" yaml:"index"`
	Text  string `json:"text" yaml:"text"`
}

// Paragraphs is an ordered paragraph sequence read from one document.
type Paragraphs []Paragraph

// Texts returns the paragraph strings in document order.
func (ps Paragraphs) Texts() []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Text
	}
	return out
}

// NewParagraphs trims each text, drops empty ones and indexes the rest.
func NewParagraphs(texts []string) Paragraphs {
	ps := make(Paragraphs, 0, len(texts))
	for _, t := range texts {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		ps = append(ps, Paragraph{Index: len(ps), Text: t})
	}
	return ps
}

// Document is a manuscript as read from disk.
type Document struct {
	// Name is the file name (without directory) the document was read from.
	Name string `json:"name" yaml:"name"`

	// Paragraphs holds the non-empty paragraphs in document order.
	Paragraphs Paragraphs `json:"paragraphs" yaml:"paragraphs"`

	// PageCount is the declared page count, at least 1.
	PageCount int `json:"page_count" yaml:"page_count"`
}

// PageRange is an inclusive range of printed issue pages.
type PageRange struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// Valid reports whether the range starts at page 1 or later and does not end
// before it starts.
func (r PageRange) Valid() bool {
	return r.Start >= 1 && r.Start <= r.End
}

func (r PageRange) String() string {
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}

// ArticleRecord is the canonical extracted representation of one manuscript.
type ArticleRecord struct {
	// Source is the manuscript file name the record was extracted from.
	Source string `json:"source" yaml:"source"`

	// TitleOriginal is the Ukrainian title (the paragraph after "УДК").
	TitleOriginal string `json:"title_original" yaml:"title_original"`

	// TitleTranslated is the English title (the paragraph after the last
	// bibliography entry). It is the title registered with Crossref.
	TitleTranslated string `json:"title_translated,omitempty" yaml:"title_translated,omitempty"`

	// Authors is the raw English author line with the copyright glyph and
	// trailing year removed, e.g. "Smith J., Doe A.B.".
	Authors string `json:"authors" yaml:"authors"`

	// Pages is the printed page range within the issue.
	Pages PageRange `json:"pages" yaml:"pages"`

	// References lists raw citation strings in document order.
	References []string `json:"references" yaml:"references"`

	// Abstract is the English abstract text.
	Abstract string `json:"abstract,omitempty" yaml:"abstract,omitempty"`
}

// RegistrationTitle returns the title registered as the primary title:
// the English title when present, otherwise the Ukrainian one.
func (a ArticleRecord) RegistrationTitle() string {
	if a.TitleTranslated != "" {
		return a.TitleTranslated
	}
	return a.TitleOriginal
}

// RegistrationBatch is one journal issue ready for serialization.
type RegistrationBatch struct {
	Context  PublicationContext `json:"context" yaml:"context"`
	Articles []ArticleRecord    `json:"articles" yaml:"articles"`
}
