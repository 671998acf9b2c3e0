// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/pdiddy/peptide-report/internal/reportdoc"
)

// column is one positional field of a table schema. normalize is applied
// to the trimmed cell text; nil keeps it unchanged.
type column struct {
	name      string
	normalize func(string) string
}

// schema is the ordered list of columns a table is expected to carry.
type schema []column

// names returns the column names in order.
func (s schema) names() []string {
	out := make([]string, len(s))
	for i, c := range s {
		out[i] = c.name
	}
	return out
}

// checkWidth fails when a row has fewer cells than the schema has columns.
// Extra trailing cells are ignored.
func (s schema) checkWidth(cells []string) error {
	if len(cells) < len(s) {
		return fmt.Errorf("have %d columns, want %d (%s)", len(cells), len(s), strings.Join(s.names(), ", "))
	}
	return nil
}

// apply normalizes the leading len(s) cells positionally.
func (s schema) apply(cells []string) []string {
	out := make([]string, len(s))
	for i, c := range s {
		v := cells[i]
		if c.normalize != nil {
			v = c.normalize(v)
		}
		out[i] = v
	}
	return out
}

func isCell(n *html.Node) bool {
	return n.Type == html.ElementNode && (n.DataAtom == atom.Td || n.DataAtom == atom.Th)
}

// cellTexts returns the trimmed text of every th/td in tr.
func cellTexts(tr *html.Node) []string {
	var out []string
	for _, c := range reportdoc.FindAll(tr, isCell) {
		out = append(out, reportdoc.TrimmedText(c))
	}
	return out
}

// dataCellTexts returns the trimmed text of every td in tr.
func dataCellTexts(tr *html.Node) []string {
	var out []string
	for _, c := range reportdoc.FindAll(tr, reportdoc.Tag(atom.Td)) {
		out = append(out, reportdoc.TrimmedText(c))
	}
	return out
}

// leadingPosition parses the integer before the first "-" of a
// "start-end" position.
func leadingPosition(s string) (int, error) {
	start, _, _ := strings.Cut(strings.TrimSpace(s), "-")
	n, err := strconv.Atoi(strings.TrimSpace(start))
	if err != nil {
		return 0, fmt.Errorf("position %q has no leading integer", s)
	}
	return n, nil
}
