package client

import (
	"testing"

	"github.com/dmitrijs2005/clinicadmin/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePage_Shapes(t *testing.T) {
	q := PageQuery{Page: 1, Limit: 2}

	tests := []struct {
		name       string
		raw        string
		wantIDs    []string
		wantTotal  int
		wantPages  int
		wantPageNo int
	}{
		{
			name:    "bare array",
			raw:     `[{"_id":"a"},{"_id":"b"}]`,
			wantIDs: []string{"a", "b"}, wantTotal: 2, wantPages: 1, wantPageNo: 1,
		},
		{
			name:    "data with totalCount",
			raw:     `{"data":[{"_id":"a"},{"_id":"b"}],"totalCount":7}`,
			wantIDs: []string{"a", "b"}, wantTotal: 7, wantPages: 4, wantPageNo: 1,
		},
		{
			name:    "elements envelope",
			raw:     `{"elements":[{"_id":"c"}],"totalCount":5,"totalPages":3,"page":3}`,
			wantIDs: []string{"c"}, wantTotal: 5, wantPages: 3, wantPageNo: 3,
		},
		{
			name:    "nested under data",
			raw:     `{"success":true,"data":{"elements":[{"_id":"d"}],"totalCount":1,"totalPages":1,"page":1}}`,
			wantIDs: []string{"d"}, wantTotal: 1, wantPages: 1, wantPageNo: 1,
		},
		{
			name:    "empty data",
			raw:     `{"data":[],"totalCount":0}`,
			wantIDs: []string{}, wantTotal: 0, wantPages: 1, wantPageNo: 1,
		},
		{
			name:    "null body",
			raw:     `null`,
			wantIDs: []string{}, wantTotal: 0, wantPages: 1, wantPageNo: 1,
		},
		{
			name:    "server ignores limit",
			raw:     `[{"_id":"a"},{"_id":"b"},{"_id":"c"}]`,
			wantIDs: []string{"a", "b", "c"}, wantTotal: 3, wantPages: 2, wantPageNo: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := DecodePage[models.Record](([]byte)(tt.raw), q)
			require.NoError(t, err)

			ids := []string{}
			for _, r := range page.Items {
				ids = append(ids, r.ID())
			}
			assert.Equal(t, tt.wantIDs, ids)
			assert.Equal(t, tt.wantTotal, page.TotalCount)
			assert.Equal(t, tt.wantPages, page.TotalPages)
			assert.Equal(t, tt.wantPageNo, page.PageNumber)
			assert.LessOrEqual(t, len(page.Items), page.PageSize)
		})
	}
}

func TestDecodePage_Typed(t *testing.T) {
	page, err := DecodePage[models.Patient]([]byte(`{"data":[{"_id":"p1","firstname":"Ann"}],"totalCount":1}`), PageQuery{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Ann", page.Items[0].Firstname)
	assert.Equal(t, 10, page.PageSize)
}

func TestDecodePage_Errors(t *testing.T) {
	for _, raw := range []string{
		`"just a string"`,
		`{"message":"ok"}`,
		`{"data":"not a list"}`,
		`[1,`,
	} {
		_, err := DecodePage[models.Record]([]byte(raw), PageQuery{})
		assert.ErrorIs(t, err, ErrBadEnvelope, raw)
	}
}
