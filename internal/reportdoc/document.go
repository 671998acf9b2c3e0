// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package reportdoc parses the vendor report HTML and isolates every
// structural assumption about it (section order, class names, heading
// suffixes) behind a small typed query layer.
package reportdoc

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/pdiddy/peptide-report/pkg/types"
)

// Document is a parsed report. It is read-only once loaded.
type Document struct {
	// Path is the file the document was read from, empty for Parse.
	Path string

	root *html.Node
}

// Load parses the report HTML inside reportDir. htmlFile is tried first;
// when it does not exist the single *.html file in reportDir is used.
func Load(reportDir, htmlFile string) (*Document, error) {
	path, err := resolveHTML(reportDir, htmlFile)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening report html: %w", err)
	}
	defer f.Close()

	doc, err := Parse(f)
	if err != nil {
		return nil, err
	}
	doc.Path = path
	return doc, nil
}

// Parse reads a report from r.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return &Document{root: root}, nil
}

func resolveHTML(reportDir, htmlFile string) (string, error) {
	if htmlFile != "" {
		p := filepath.Join(reportDir, htmlFile)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	matches, err := filepath.Glob(filepath.Join(reportDir, "*.html"))
	if err != nil {
		return "", fmt.Errorf("listing report html: %w", err)
	}
	if len(matches) != 1 {
		return "", types.SectionNotFound("", "expected %s or exactly one *.html in %s, found %d html files",
			htmlFile, reportDir, len(matches))
	}
	return matches[0], nil
}

// Section is the markup belonging to one chain.
type Section struct {
	Chain types.Chain
	node  *html.Node
}

// NewSection wraps n as the section for chain. It exists for callers that
// locate sections themselves, such as tests.
func NewSection(chain types.Chain, n *html.Node) *Section {
	return &Section{Chain: chain, node: n}
}

// Node returns the section's root element.
func (s *Section) Node() *html.Node {
	return s.node
}

// Heading returns the text of the section's first h2.
func (s *Section) Heading() string {
	return TrimmedText(FindFirst(s.node, Tag(atom.H2)))
}

// Find returns the first descendant matching m, or nil.
func (s *Section) Find(m Matcher) *html.Node {
	return FindFirst(s.node, m)
}

// FindAll returns every descendant matching m in document order.
func (s *Section) FindAll(m Matcher) []*html.Node {
	return FindAll(s.node, m)
}

// Sections holds the two chain sections of a report.
type Sections struct {
	Heavy *Section
	Light *Section
}

// Get returns the section for chain c.
func (s Sections) Get(c types.Chain) *Section {
	if c == types.ChainLight {
		return s.Light
	}
	return s.Heavy
}

// chainSectionFirst and chainSectionEnd bound the section elements holding
// chain data.
// The first section is the report preamble.
const (
	chainSectionFirst = 1
	chainSectionEnd   = 3
)

// FindSections locates the heavy and light chain sections. It reads the
// second and third div.section elements and classifies each by the heading
// text after its last underscore. Both chains must be found.
func (d *Document) FindSections() (Sections, error) {
	all := FindAll(d.root, TagClass(atom.Div, "section"))
	if len(all) < chainSectionEnd {
		return Sections{}, types.SectionNotFound("",
			"expected at least %d section elements, found %d", chainSectionEnd, len(all))
	}

	var out Sections
	for _, n := range all[chainSectionFirst:chainSectionEnd] {
		h2 := FindFirst(n, Tag(atom.H2))
		if h2 == nil {
			return Sections{}, types.SectionNotFound("", "section has no h2 heading")
		}
		heading := TrimmedText(h2)
		label := heading[strings.LastIndex(heading, "_")+1:]
		switch types.Chain(label) {
		case types.ChainHeavy:
			out.Heavy = NewSection(types.ChainHeavy, n)
		case types.ChainLight:
			out.Light = NewSection(types.ChainLight, n)
		default:
			return Sections{}, types.SectionNotFound("", "heading %q does not end in _Heavy or _Light", heading)
		}
	}
	if out.Heavy == nil {
		return Sections{}, types.SectionNotFound(types.ChainHeavy, "no section for chain")
	}
	if out.Light == nil {
		return Sections{}, types.SectionNotFound(types.ChainLight, "no section for chain")
	}
	return out, nil
}
