// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package assemble

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pdiddy/depositor/pkg/types"
)

// DefaultIssuesPath is the issue listing segment under the journal URL.
const DefaultIssuesPath = "all-volumes-and-issues"

var (
	nonSlug    = regexp.MustCompile(`[^a-z0-9-]`)
	hyphenRuns = regexp.MustCompile(`-+`)
)

// Slugify lowercases title, turns spaces into hyphens, drops everything
// outside [a-z0-9-] and collapses hyphen runs. Non-ASCII titles shrink
// toward the empty string.
func Slugify(title string) string {
	s := strings.ReplaceAll(strings.ToLower(title), " ", "-")
	s = nonSlug.ReplaceAllString(s, "")
	s = hyphenRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// IssueDOI returns prefix + year + "." + two-digit issue, e.g. "10.23939/csn2024.01".
func IssueDOI(c types.PublicationContext) string {
	return fmt.Sprintf("%s%d.%02d", c.DOIPrefix, c.Year, c.Issue)
}

// ArticleDOI appends the three-digit start page to the issue DOI.
func ArticleDOI(c types.PublicationContext, startPage int) string {
	return fmt.Sprintf("%s.%03d", IssueDOI(c), startPage)
}

// IssueURL returns the issue landing page.
func IssueURL(c types.PublicationContext) string {
	path := c.IssuesPath
	if path == "" {
		path = DefaultIssuesPath
	}
	return fmt.Sprintf("%s/%s/volume-%d-number-%d-%d",
		strings.TrimRight(c.BaseURL, "/"), strings.Trim(path, "/"), c.Volume, c.Issue, c.Year)
}

// ArticleURL returns the article landing page under the issue page.
func ArticleURL(c types.PublicationContext, title string) string {
	return IssueURL(c) + "/" + Slugify(title)
}
