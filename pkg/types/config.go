// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
	"strings"
)

// PublicationContext holds the static journal and issue settings for one
// run. It is loaded once and never mutated.
type PublicationContext struct {
	// JournalTitle is the full journal title (e.g. "Computer systems and network").
	JournalTitle string `json:"journal_title" yaml:"journal_title" mapstructure:"journal_title"`

	// AbbrevTitle is the abbreviated journal title (e.g. "CSN").
	AbbrevTitle string `json:"abbrev_title" yaml:"abbrev_title" mapstructure:"abbrev_title"`

	// ISSNPrint and ISSNElectronic are the print and online ISSNs.
	ISSNPrint      string `json:"issn_print" yaml:"issn_print" mapstructure:"issn_print"`
	ISSNElectronic string `json:"issn_electronic" yaml:"issn_electronic" mapstructure:"issn_electronic"`

	// DOIPrefix is the journal DOI, also the prefix of every issue and
	// article DOI (e.g. "10.23939/csn").
	DOIPrefix string `json:"doi_prefix" yaml:"doi_prefix" mapstructure:"doi_prefix"`

	// BaseURL is the journal landing page (e.g. "https://science.lpnu.ua/csn").
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// IssuesPath is the path segment under BaseURL that lists issues
	// (default "all-volumes-and-issues").
	IssuesPath string `json:"issues_path" yaml:"issues_path" mapstructure:"issues_path"`

	Volume int `json:"volume" yaml:"volume" mapstructure:"volume"`
	Issue  int `json:"issue" yaml:"issue" mapstructure:"issue"`
	Month  int `json:"month" yaml:"month" mapstructure:"month"`
	Year   int `json:"year" yaml:"year" mapstructure:"year"`

	// DepositorName and DepositorEmail identify the party submitting the deposit.
	DepositorName  string `json:"depositor_name" yaml:"depositor_name" mapstructure:"depositor_name"`
	DepositorEmail string `json:"depositor_email" yaml:"depositor_email" mapstructure:"depositor_email"`

	// Registrant is the organization responsible for the content.
	Registrant string `json:"registrant" yaml:"registrant" mapstructure:"registrant"`
}

// Validate reports every missing or out-of-range setting at once.
func (c PublicationContext) Validate() error {
	var errs []error
	required := []struct{ name, value string }{
		{"journal_title", c.JournalTitle},
		{"doi_prefix", c.DOIPrefix},
		{"base_url", c.BaseURL},
		{"depositor_name", c.DepositorName},
		{"depositor_email", c.DepositorEmail},
		{"registrant", c.Registrant},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			errs = append(errs, fmt.Errorf("publication.%s is required", r.name))
		}
	}
	if c.Volume < 1 {
		errs = append(errs, fmt.Errorf("publication.volume must be positive, got %d", c.Volume))
	}
	if c.Issue < 1 {
		errs = append(errs, fmt.Errorf("publication.issue must be positive, got %d", c.Issue))
	}
	if c.Month < 1 || c.Month > 12 {
		errs = append(errs, fmt.Errorf("publication.month must be 1-12, got %d", c.Month))
	}
	if c.Year < 1000 || c.Year > 9999 {
		errs = append(errs, fmt.Errorf("publication.year must have four digits, got %d", c.Year))
	}
	return errors.Join(errs...)
}

// PageStrategy selects where article page ranges come from. It is resolved
// once per run.
type PageStrategy string

const (
	// PagesCumulative derives ranges from the manuscripts' declared page counts.
	PagesCumulative PageStrategy = "cumulative"

	// PagesMarkerScan derives ranges by scanning a merged issue PDF for a
	// running-header marker.
	PagesMarkerScan PageStrategy = "marker-scan"
)

// ParsePageStrategy maps a configuration value to a PageStrategy. An empty
// value selects PagesCumulative.
func ParsePageStrategy(s string) (PageStrategy, error) {
	switch PageStrategy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PagesCumulative:
		return PagesCumulative, nil
	case PagesMarkerScan:
		return PagesMarkerScan, nil
	default:
		return "", fmt.Errorf("unknown page strategy %q (want %s or %s)", s, PagesCumulative, PagesMarkerScan)
	}
}

// PagesConfig holds settings for page range assignment.
type PagesConfig struct {
	// Strategy selects cumulative page counts or a marker scan.
	Strategy PageStrategy `json:"strategy" yaml:"strategy" mapstructure:"strategy"`

	// PDFPath is the merged issue PDF scanned by PagesMarkerScan.
	PDFPath string `json:"pdf_path" yaml:"pdf_path" mapstructure:"pdf_path"`

	// Marker is the running-header text that appears on each article's pages
	// (default "COMPUTER SYSTEMS AND NETWORKS").
	Marker string `json:"marker" yaml:"marker" mapstructure:"marker"`
}

// PathsConfig holds input and output locations.
type PathsConfig struct {
	// ArticlesDir contains the .docx manuscripts of the issue.
	ArticlesDir string `json:"articles_dir" yaml:"articles_dir" mapstructure:"articles_dir"`

	// OutputDir receives the deposit file, records and generated documents.
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`

	// DepositFile is the deposit file name inside OutputDir (default "crossref.xml").
	DepositFile string `json:"deposit_file" yaml:"deposit_file" mapstructure:"deposit_file"`

	// LedgerDir holds the deposit history database.
	LedgerDir string `json:"ledger_dir" yaml:"ledger_dir" mapstructure:"ledger_dir"`
}

// RenderConfig holds settings for docx-to-PDF rendering.
type RenderConfig struct {
	// OfficeBinary overrides LibreOffice discovery when set.
	OfficeBinary string `json:"office_binary" yaml:"office_binary" mapstructure:"office_binary"`

	// PDFDir receives rendered PDFs (default "output/pdfs").
	PDFDir string `json:"pdf_dir" yaml:"pdf_dir" mapstructure:"pdf_dir"`
}

// PipelineConfig groups all settings for one run.
type PipelineConfig struct {
	Publication PublicationContext `json:"publication" yaml:"publication" mapstructure:"publication"`
	Pages       PagesConfig        `json:"pages" yaml:"pages" mapstructure:"pages"`
	Paths       PathsConfig        `json:"paths" yaml:"paths" mapstructure:"paths"`
	Render      RenderConfig       `json:"render" yaml:"render" mapstructure:"render"`
}
