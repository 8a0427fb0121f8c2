// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package assemble

import (
	"regexp"
	"strings"

	"github.com/pdiddy/depositor/internal/crossref"
)

const roleAuthor = "author"

var digits = regexp.MustCompile(`\d+`)

// ParseContributors turns a raw author line such as "Smith J., Doe A.B."
// into person names. Each comma-separated entry is split on whitespace: the
// first token is the surname, the rest form the given name with digits
// removed. Entries lacking either part are dropped without error. Only the
// entry at comma position 0 is flagged as the first author, so dropping it
// leaves no entry flagged.
func ParseContributors(raw string) []crossref.PersonName {
	var people []crossref.PersonName
	for i, entry := range strings.Split(raw, ",") {
		parts := strings.Fields(entry)
		if len(parts) < 2 {
			continue
		}
		surname := parts[0]
		given := strings.TrimSpace(digits.ReplaceAllString(strings.Join(parts[1:], " "), ""))
		if given == "" {
			continue
		}

		seq := crossref.SequenceAdditional
		if i == 0 {
			seq = crossref.SequenceFirst
		}
		people = append(people, crossref.PersonName{
			Sequence:  seq,
			Role:      roleAuthor,
			GivenName: given,
			Surname:   surname,
		})
	}
	return people
}
