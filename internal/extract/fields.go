// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract recovers article fields from a manuscript's paragraphs.
// fields.go holds the marker heuristics. Each one is a pure function over
// the paragraph texts and returns a fixed "not found" value instead of an
// error when its marker is absent.
package extract

import (
	"regexp"
	"strings"
)

// Values returned when a field's marker is absent.
const (
	UkrainianTitleNotFound = "Ukrainian title not found."
	EnglishTitleNotFound   = "English title not found."
	AuthorsNotFound        = "Authors not found."
	AbstractNotFound       = "Abstract not found."
)

const (
	// udcMarker tags the universal decimal classification line that
	// precedes the Ukrainian title.
	udcMarker = "УДК"

	// copyrightGlyph starts the author lines.
	copyrightGlyph = "©"

	// bibliographyHeading is the Ukrainian reference section heading.
	bibliographyHeading = "Список літератури"
)

var (
	// cyrillicRe matches Russian/Ukrainian letters.
	cyrillicRe = regexp.MustCompile(`[А-Яа-яІЇЄҐіїєґ]`)

	// bibliographyHeadingRe matches English reference section headings.
	bibliographyHeadingRe = regexp.MustCompile(`(?i)\b(literature|references)\b`)

	// citationRe decides whether a paragraph looks like a reference entry.
	citationRe = regexp.MustCompile(`(?i)(doi:|vol\.|pp\.|\(\d{4}\)|\d{4}|Retrieved|http|https|Available:)`)

	// trailingYearRe matches the year that closes a copyright line. The
	// separator may be a no-break space.
	trailingYearRe = regexp.MustCompile(`[\s\p{Zs}]\d{4}$`)
)

// HasCyrillic reports whether s contains a Cyrillic letter.
func HasCyrillic(s string) bool {
	return cyrillicRe.MatchString(s)
}

// UkrainianTitle returns the paragraph after the first one containing "УДК".
func UkrainianTitle(paragraphs []string) string {
	for i, p := range paragraphs {
		if !strings.Contains(p, udcMarker) {
			continue
		}
		if i+1 < len(paragraphs) {
			return paragraphs[i+1]
		}
		break
	}
	return UkrainianTitleNotFound
}

// Authors returns the author list from the first copyright line. With
// ukrainian false, lines containing Cyrillic are skipped so the English
// author line is found. The glyph and a trailing four-digit year are removed.
func Authors(paragraphs []string, ukrainian bool) string {
	for _, p := range paragraphs {
		if !strings.HasPrefix(p, copyrightGlyph) {
			continue
		}
		if !ukrainian && HasCyrillic(p) {
			continue
		}
		authors := strings.TrimSpace(strings.TrimPrefix(p, copyrightGlyph))
		authors = trailingYearRe.ReplaceAllString(authors, "")
		return strings.TrimSpace(authors)
	}
	return AuthorsNotFound
}

// isBibliographyHeading reports whether p opens the reference section.
func isBibliographyHeading(p string) bool {
	return strings.Contains(p, bibliographyHeading) || bibliographyHeadingRe.MatchString(p)
}

// IsCitation reports whether p has the shape of a reference entry: a DOI,
// volume or page abbreviation, a year, a URL, or a retrieval note.
func IsCitation(p string) bool {
	return citationRe.MatchString(p)
}

// Bibliography returns the reference entries that follow the first
// bibliography heading. Collection stops at the first paragraph that is not
// citation-shaped and never resumes. Without a heading the result is empty.
func Bibliography(paragraphs []string) []string {
	refs := []string{}
	start := -1
	for i, p := range paragraphs {
		if isBibliographyHeading(p) {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return refs
	}
	for _, p := range paragraphs[start:] {
		if !IsCitation(p) {
			break
		}
		refs = append(refs, p)
	}
	return refs
}

// EnglishTitle returns the paragraph after the last reference entry.
// The entry is located by its first occurrence in paragraphs.
func EnglishTitle(paragraphs []string, references []string) string {
	if len(references) == 0 {
		return EnglishTitleNotFound
	}
	last := references[len(references)-1]
	for i, p := range paragraphs {
		if p != last {
			continue
		}
		if i+1 < len(paragraphs) {
			return paragraphs[i+1]
		}
		break
	}
	return EnglishTitleNotFound
}

// Abstract returns everything after the English copyright line, newline
// joined. The result is empty when that line is the last paragraph.
func Abstract(paragraphs []string) string {
	for i, p := range paragraphs {
		if strings.HasPrefix(p, copyrightGlyph) && !HasCyrillic(p) {
			return strings.TrimSpace(strings.Join(paragraphs[i+1:], "\n"))
		}
	}
	return AbstractNotFound
}
