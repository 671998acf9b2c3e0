// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/peptide-report/internal/testutil"
	"github.com/pdiddy/peptide-report/pkg/types"
)

func TestCalculatedMass(t *testing.T) {
	tests := []struct {
		name      string
		paragraph string
		want      string
		wantErr   error
	}{
		{name: "third token", paragraph: "Calculated mass: 50123.45 Da (average)", want: "50123.45"},
		{name: "exactly three tokens", paragraph: "Mass is 148000", want: "148000"},
		{name: "extra whitespace", paragraph: "  Calculated \n mass:\t 1.0 ", want: "1.0"},
		{name: "too few tokens", paragraph: "Calculated mass:", wantErr: types.ErrMassNotFound},
		{name: "no paragraph", paragraph: "", wantErr: types.ErrMassNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := heavySection(t, func(c *testutil.Chain) { c.Paragraph = tt.paragraph })
			got, err := CalculatedMass(s)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
