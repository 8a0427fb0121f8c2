// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sourcetest builds minimal .docx manuscripts for tests.
package sourcetest

import (
	"archive/zip"
	"encoding/xml"
	"os"
	"strconv"
	"strings"
	"testing"
)

// Docx describes a fixture manuscript. A zero Pages omits docProps/app.xml.
type Docx struct {
	Paragraphs []string
	Pages      int
	// AppXML, when set, replaces the generated docProps/app.xml verbatim.
	AppXML string
}

// Write creates the fixture at path, failing the test on error.
func Write(t *testing.T, path string, d Docx) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating %s: %v", path, err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	add := func(name, body string) {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("adding %s: %v", name, err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}

	add("[Content_Types].xml", contentTypes)
	add("word/document.xml", documentXML(d.Paragraphs))
	switch {
	case d.AppXML != "":
		add("docProps/app.xml", d.AppXML)
	case d.Pages > 0:
		add("docProps/app.xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`+
			`<Properties xmlns="http://schemas.openxmlformats.org/officeDocument/2006/extended-properties">`+
			`<Pages>`+strconv.Itoa(d.Pages)+`</Pages></Properties>`)
	}

	if err := zw.Close(); err != nil {
		t.Fatalf("closing zip %s: %v", path, err)
	}
}

const contentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

// documentXML renders each paragraph as one w:p; a "\t" in the text becomes
// a w:tab element and the rest is split into two runs so run concatenation
// is exercised.
func documentXML(paragraphs []string) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	b.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, p := range paragraphs {
		b.WriteString("<w:p>")
		for i, part := range strings.Split(p, "\t") {
			if i > 0 {
				b.WriteString("<w:r><w:tab/></w:r>")
			}
			half := len([]rune(part)) / 2
			runes := []rune(part)
			writeRun(&b, string(runes[:half]))
			writeRun(&b, string(runes[half:]))
		}
		b.WriteString("</w:p>")
	}
	b.WriteString("</w:body></w:document>")
	return b.String()
}

func writeRun(b *strings.Builder, text string) {
	if text == "" {
		return
	}
	b.WriteString(`<w:r><w:t xml:space="preserve">`)
	xml.EscapeText(b, []byte(text))
	b.WriteString("</w:t></w:r>")
}
