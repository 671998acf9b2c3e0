// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reportdoc

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html/atom"

	"github.com/pdiddy/peptide-report/internal/testutil"
	"github.com/pdiddy/peptide-report/pkg/types"
)

func parse(t *testing.T, src string) *Document {
	t.Helper()
	doc, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	return doc
}

func TestFindSections(t *testing.T) {
	heavy, light := testutil.HeavyChain(), testutil.LightChain()

	tests := []struct {
		name    string
		src     string
		wantErr bool
	}{
		{
			name: "heavy then light",
			src:  testutil.HTML(heavy, light),
		},
		{
			name: "light then heavy",
			src:  testutil.HTML(light, heavy),
		},
		{
			name:    "only one chain section",
			src:     testutil.HTML(heavy),
			wantErr: true,
		},
		{
			name:    "duplicate chain label",
			src:     testutil.HTML(heavy, heavy),
			wantErr: true,
		},
		{
			name: "unexpected heading suffix",
			src: testutil.HTML(heavy, func() testutil.Chain {
				c := light
				c.Heading = "mAb-01_Kappa"
				return c
			}()),
			wantErr: true,
		},
		{
			name:    "no sections at all",
			src:     "<html><body><p>empty</p></body></html>",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parse(t, tt.src).FindSections()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, types.ErrSectionNotFound), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, types.ChainHeavy, got.Heavy.Chain)
			assert.Equal(t, types.ChainLight, got.Light.Chain)
			assert.Equal(t, "mAb-01_Heavy", got.Get(types.ChainHeavy).Heading())
			assert.Equal(t, "mAb-01_Light", got.Get(types.ChainLight).Heading())
		})
	}
}

func TestFindSectionsSkipsPreamble(t *testing.T) {
	// A preamble heading that looks like a chain must not be picked up.
	src := `<html><body>
<div class="section"><h2>x_Heavy</h2><p>preamble</p></div>
<div class="section"><h2>a_Light</h2></div>
<div class="section"><h2>a_Heavy</h2></div>
<div class="section"><h2>b_Light</h2></div>
</body></html>`
	got, err := parse(t, src).FindSections()
	require.NoError(t, err)
	assert.Equal(t, "a_Heavy", got.Heavy.Heading())
	assert.Equal(t, "a_Light", got.Light.Heading())
}

func TestHasClass(t *testing.T) {
	doc := parse(t, `<div class="il-stats subsection unbreakable"></div><div class="subsection"></div>`)
	divs := FindAll(doc.root, Tag(atom.Div))
	require.Len(t, divs, 2)

	assert.True(t, HasClass(divs[0], "il-stats", "subsection", "unbreakable"))
	assert.True(t, HasClass(divs[0], "subsection"))
	assert.False(t, HasClass(divs[0], "section"))
	assert.False(t, HasClass(divs[1], "il-stats"))
}

func TestText(t *testing.T) {
	doc := parse(t, `<p id="x"> Calculated <b>mass</b>:  123 </p>`)
	p := FindFirst(doc.root, Tag(atom.P))
	require.NotNil(t, p)
	assert.Equal(t, " Calculated mass:  123 ", Text(p))
	assert.Equal(t, "Calculated mass:  123", TrimmedText(p))
	assert.Equal(t, "x", Attr(p, "id"))
	assert.Equal(t, "", Text(nil))
}

func TestLoad(t *testing.T) {
	html := testutil.HTML(testutil.HeavyChain(), testutil.LightChain())

	t.Run("named file", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "report.html"), []byte(html), 0o644))
		doc, err := Load(dir, "report.html")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "report.html"), doc.Path)
	})

	t.Run("falls back to single html file", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "peaks_export.html"), []byte(html), 0o644))
		doc, err := Load(dir, "report.html")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "peaks_export.html"), doc.Path)
	})

	t.Run("ambiguous html files", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "a.html"), []byte(html), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "b.html"), []byte(html), 0o644))
		_, err := Load(dir, "report.html")
		assert.ErrorIs(t, err, types.ErrSectionNotFound)
	})

	t.Run("empty directory", func(t *testing.T) {
		_, err := Load(t.TempDir(), "report.html")
		assert.ErrorIs(t, err, types.ErrSectionNotFound)
	})
}
