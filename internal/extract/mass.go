// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"strings"

	"golang.org/x/net/html/atom"

	"github.com/pdiddy/peptide-report/internal/reportdoc"
	"github.com/pdiddy/peptide-report/pkg/types"
)

// massToken is the index of the mass in the descriptive paragraph
// ("Calculated mass: 50123.45 Da").
const massToken = 2

// CalculatedMass returns the third whitespace-separated token of the
// section's first paragraph.
func CalculatedMass(s *reportdoc.Section) (string, error) {
	p := s.Find(reportdoc.Tag(atom.P))
	if p == nil {
		return "", types.MassNotFound(s.Chain, "section has no paragraph")
	}
	tokens := strings.Fields(reportdoc.Text(p))
	if len(tokens) <= massToken {
		return "", types.MassNotFound(s.Chain, "paragraph %q has %d tokens, want at least %d",
			strings.Join(tokens, " "), len(tokens), massToken+1)
	}
	return tokens[massToken], nil
}
