package cli

import (
	"testing"

	"github.com/alexanderramin/prodline/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryFilter(t *testing.T) {
	entries := []*domain.ProductionEntry{
		{ID: "a", Date: fixedNow, Area: domain.AreaCFFinal, Supervisor: "Ravi",
			Items: []domain.BatchItem{{Quantity: 40, Model: "300L", Category: "Hard Top"}}},
		{ID: "b", Date: fixedNow, Area: domain.AreaWDFinal, Supervisor: "Meera",
			Items: []domain.BatchItem{{Quantity: 5, Model: "Table Top"}, {Quantity: 5, Model: "Floor Standing"}}},
	}

	tests := []struct {
		expr string
		want []string
	}{
		{`area == "CF final"`, []string{"a"}},
		{`quantity >= 10`, []string{"a", "b"}},
		{`items > 1`, []string{"b"}},
		{`"300L" in models`, []string{"a"}},
		{`supervisor startsWith "M" && date == "2024-03-01"`, []string{"b"}},
		{`false`, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			f, err := compileEntryFilter(tt.expr)
			require.NoError(t, err)
			got, err := f.apply(entries)
			require.NoError(t, err)
			ids := []string{}
			for _, e := range got {
				ids = append(ids, e.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestCompileEntryFilter_RejectsBadExpressions(t *testing.T) {
	for _, src := range []string{`quantity`, `unknown_field == 1`, `area ==`} {
		_, err := compileEntryFilter(src)
		assert.Error(t, err, src)
	}
}
