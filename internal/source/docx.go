// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package source reads manuscripts into ordered paragraph sequences.
// A .docx file is an OOXML zip archive; paragraphs come from
// word/document.xml and the page count from docProps/app.xml.
package source

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/depositor/pkg/types"
)

const (
	documentPart = "word/document.xml"
	appPart      = "docProps/app.xml"
)

// WordprocessingML namespaces: transitional and strict OOXML.
const (
	wordNS       = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	wordStrictNS = "http://purl.oclc.org/ooxml/wordprocessingml/main"
)

func isWord(n xml.Name) bool {
	return n.Space == wordNS || n.Space == wordStrictNS
}

// Reader turns one manuscript file into a Document.
type Reader interface {
	Read(path string) (types.Document, error)
}

// SourceReadError reports a manuscript that could not be opened or parsed.
type SourceReadError struct {
	Path string
	Err  error
}

func (e *SourceReadError) Error() string {
	return fmt.Sprintf("reading %s: %v", e.Path, e.Err)
}

func (e *SourceReadError) Unwrap() error { return e.Err }

// DocxReader reads .docx manuscripts.
type DocxReader struct {
	logger *zap.Logger
}

// NewDocxReader creates a reader that logs page-count fallbacks to logger.
// A nil logger discards them.
func NewDocxReader(logger *zap.Logger) *DocxReader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DocxReader{logger: logger}
}

// Read opens the archive at path and returns its non-empty trimmed
// paragraphs and declared page count. A missing or malformed page count
// falls back to 1.
func (r *DocxReader) Read(path string) (types.Document, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return types.Document{}, &SourceReadError{Path: path, Err: fmt.Errorf("open zip: %w", err)}
	}
	defer zr.Close()

	var docFile, appFile *zip.File
	for _, f := range zr.File {
		switch f.Name {
		case documentPart:
			docFile = f
		case appPart:
			appFile = f
		}
	}
	if docFile == nil {
		return types.Document{}, &SourceReadError{Path: path, Err: fmt.Errorf("%s not found in archive", documentPart)}
	}

	texts, err := readParagraphs(docFile)
	if err != nil {
		return types.Document{}, &SourceReadError{Path: path, Err: err}
	}

	pages, err := readPageCount(appFile)
	if err != nil {
		r.logger.Warn("page count unavailable, assuming 1 page",
			zap.String("file", path), zap.Error(err))
		pages = 1
	}

	return types.Document{
		Name:       filepath.Base(path),
		Paragraphs: types.NewParagraphs(texts),
		PageCount:  pages,
	}, nil
}

// readParagraphs walks document.xml and returns the raw text of every
// body-level w:p element, in order. Paragraphs inside tables and text boxes
// are not part of the body flow and are skipped. Text runs are concatenated;
// w:tab becomes a tab and w:br/w:cr a newline.
func readParagraphs(f *zip.File) ([]string, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", documentPart, err)
	}
	defer rc.Close()

	decoder := xml.NewDecoder(rc)
	var (
		paragraphs []string
		current    strings.Builder
		inPara     bool
		inText     bool
		nested     int // depth inside w:tbl or w:txbxContent
	)

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", documentPart, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if !isWord(t.Name) {
				continue
			}
			switch t.Name.Local {
			case "tbl", "txbxContent":
				nested++
			case "p":
				if nested == 0 {
					inPara = true
					current.Reset()
				}
			case "t":
				inText = inPara && nested == 0
			case "tab":
				if inPara && nested == 0 {
					current.WriteByte('\t')
				}
			case "br", "cr":
				if inPara && nested == 0 {
					current.WriteByte('\n')
				}
			}

		case xml.CharData:
			if inText {
				current.Write(t)
			}

		case xml.EndElement:
			if !isWord(t.Name) {
				continue
			}
			switch t.Name.Local {
			case "tbl", "txbxContent":
				if nested > 0 {
					nested--
				}
			case "t":
				inText = false
			case "p":
				if inPara && nested == 0 {
					inPara = false
					paragraphs = append(paragraphs, current.String())
				}
			}
		}
	}

	return paragraphs, nil
}

// appProperties is the subset of docProps/app.xml we read.
type appProperties struct {
	Pages string `xml:"Pages"`
}

func readPageCount(f *zip.File) (int, error) {
	if f == nil {
		return 0, fmt.Errorf("%s not found in archive", appPart)
	}
	rc, err := f.Open()
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", appPart, err)
	}
	defer rc.Close()

	var props appProperties
	if err := xml.NewDecoder(rc).Decode(&props); err != nil {
		return 0, fmt.Errorf("parse %s: %w", appPart, err)
	}
	if strings.TrimSpace(props.Pages) == "" {
		return 0, fmt.Errorf("no Pages element in %s", appPart)
	}
	n, err := strconv.Atoi(strings.TrimSpace(props.Pages))
	if err != nil {
		return 0, fmt.Errorf("parse Pages %q: %w", props.Pages, err)
	}
	if n < 1 {
		return 0, fmt.Errorf("invalid Pages value %d", n)
	}
	return n, nil
}
