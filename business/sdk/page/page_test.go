package page_test

import (
	"testing"

	"github.com/Mukeshmehta2041/crm-micro-sub000/business/sdk/page"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Parse(t *testing.T) {
	tests := []struct {
		name     string
		page     string
		rows     string
		wantPage int
		wantRows int
		wantErr  bool
	}{
		{"defaults", "", "", 1, 10, false},
		{"explicit", "3", "25", 3, 25, false},
		{"rows at bound", "1", "100", 1, 100, false},
		{"page not a number", "abc", "10", 0, 0, true},
		{"rows not a number", "1", "ten", 0, 0, true},
		{"page zero", "0", "10", 0, 0, true},
		{"page negative", "-1", "10", 0, 0, true},
		{"rows zero", "1", "0", 0, 0, true},
		{"rows above bound", "1", "101", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := page.Parse(tt.page, tt.rows)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantPage, got.Number())
			assert.Equal(t, tt.wantRows, got.RowsPerPage())
		})
	}
}

func Test_String(t *testing.T) {
	pg := page.MustParse("2", "50")
	assert.Equal(t, "page: 2 rows: 50", pg.String())
}
