// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pdiddy/peptide-report/internal/reportdoc"
	"github.com/pdiddy/peptide-report/internal/testutil"
	"github.com/pdiddy/peptide-report/pkg/types"
)

// sections parses a report built from the two chain fixtures.
func sections(t *testing.T, heavy, light testutil.Chain) reportdoc.Sections {
	t.Helper()
	doc, err := reportdoc.Parse(strings.NewReader(testutil.HTML(heavy, light)))
	require.NoError(t, err)
	secs, err := doc.FindSections()
	require.NoError(t, err)
	return secs
}

// heavySection returns the heavy section of a report whose heavy chain is
// customised by edit.
func heavySection(t *testing.T, edit func(*testutil.Chain)) *reportdoc.Section {
	t.Helper()
	h := testutil.HeavyChain()
	if edit != nil {
		edit(&h)
	}
	return sections(t, h, testutil.LightChain()).Get(types.ChainHeavy)
}

func parseSections(t *testing.T, src string) reportdoc.Sections {
	t.Helper()
	doc, err := reportdoc.Parse(strings.NewReader(src))
	require.NoError(t, err)
	secs, err := doc.FindSections()
	require.NoError(t, err)
	return secs
}
