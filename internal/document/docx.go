// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package document

import (
	"archive/zip"
	"encoding/xml"
	"io"
	"strings"

	"github.com/pdiddy/depositor/internal/output"
)

// Paragraph styles defined in styles.xml.
const (
	styleNormal   = ""
	styleTitle    = "Title"
	styleHeading1 = "Heading1"
)

// docx accumulates a WordprocessingML body and packages it on save.
type docx struct {
	body strings.Builder
}

// paragraph appends one paragraph; "\n" in text becomes a line break.
func (d *docx) paragraph(style, text string) {
	d.body.WriteString("<w:p>")
	if style != styleNormal {
		d.body.WriteString(`<w:pPr><w:pStyle w:val="` + style + `"/></w:pPr>`)
	}
	d.runs(text)
	d.body.WriteString("</w:p>")
}

func (d *docx) runs(text string) {
	for i, line := range strings.Split(text, "\n") {
		d.body.WriteString("<w:r>")
		if i > 0 {
			d.body.WriteString("<w:br/>")
		}
		if line != "" {
			d.body.WriteString(`<w:t xml:space="preserve">`)
			xml.EscapeText(&d.body, []byte(line))
			d.body.WriteString("</w:t>")
		}
		d.body.WriteString("</w:r>")
	}
}

// table appends a bordered grid table with a header row.
func (d *docx) table(header []string, rows [][]string) {
	d.body.WriteString(`<w:tbl><w:tblPr><w:tblStyle w:val="TableGrid"/><w:tblW w:w="0" w:type="auto"/></w:tblPr><w:tblGrid>`)
	for range header {
		d.body.WriteString(`<w:gridCol/>`)
	}
	d.body.WriteString("</w:tblGrid>")
	d.row(header)
	for _, r := range rows {
		d.row(r)
	}
	d.body.WriteString("</w:tbl>")
}

func (d *docx) row(cells []string) {
	d.body.WriteString("<w:tr>")
	for _, c := range cells {
		d.body.WriteString(`<w:tc><w:tcPr><w:tcW w:w="0" w:type="auto"/></w:tcPr><w:p>`)
		d.runs(c)
		d.body.WriteString("</w:p></w:tc>")
	}
	d.body.WriteString("</w:tr>")
}

func (d *docx) documentXML() string {
	return xml.Header + `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		d.body.String() +
		`<w:sectPr><w:pgSz w:w="11906" w:h="16838"/><w:pgMar w:top="1134" w:right="850" w:bottom="1134" w:left="1701" w:header="708" w:footer="708" w:gutter="0"/></w:sectPr>` +
		`</w:body></w:document>`
}

// save packages the document and replaces path.
func (d *docx) save(path string) error {
	parts := []struct{ name, body string }{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", packageRelsXML},
		{"word/_rels/document.xml.rels", documentRelsXML},
		{"word/styles.xml", stylesXML},
		{"word/document.xml", d.documentXML()},
	}
	return output.WriteFile(path, func(w io.Writer) error {
		zw := zip.NewWriter(w)
		for _, p := range parts {
			f, err := zw.Create(p.name)
			if err != nil {
				return err
			}
			if _, err := io.WriteString(f, p.body); err != nil {
				return err
			}
		}
		return zw.Close()
	})
}

const contentTypesXML = xml.Header + `<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
	`<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>` +
	`</Types>`

const packageRelsXML = xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`</Relationships>`

const documentRelsXML = xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>` +
	`</Relationships>`

const stylesXML = xml.Header + `<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
	`<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/>` +
	`<w:rPr><w:rFonts w:ascii="Times New Roman" w:hAnsi="Times New Roman" w:cs="Times New Roman"/><w:sz w:val="24"/></w:rPr></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Title"><w:name w:val="Title"/><w:basedOn w:val="Normal"/>` +
	`<w:pPr><w:jc w:val="center"/></w:pPr><w:rPr><w:b/><w:sz w:val="36"/></w:rPr></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Heading1"><w:name w:val="heading 1"/><w:basedOn w:val="Normal"/>` +
	`<w:pPr><w:keepNext/><w:spacing w:before="240" w:after="120"/><w:outlineLvl w:val="0"/></w:pPr><w:rPr><w:b/><w:sz w:val="32"/></w:rPr></w:style>` +
	`<w:style w:type="table" w:styleId="TableGrid"><w:name w:val="Table Grid"/><w:tblPr><w:tblBorders>` +
	`<w:top w:val="single" w:sz="4" w:space="0" w:color="auto"/><w:left w:val="single" w:sz="4" w:space="0" w:color="auto"/>` +
	`<w:bottom w:val="single" w:sz="4" w:space="0" w:color="auto"/><w:right w:val="single" w:sz="4" w:space="0" w:color="auto"/>` +
	`<w:insideH w:val="single" w:sz="4" w:space="0" w:color="auto"/><w:insideV w:val="single" w:sz="4" w:space="0" w:color="auto"/>` +
	`</w:tblBorders></w:tblPr></w:style>` +
	`</w:styles>`
