package biz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageRequestNormalizeDefaults(t *testing.T) {
	p := PageRequest{}
	require.NoError(t, p.Normalize())

	assert.Equal(t, 0, p.Page)
	assert.Equal(t, 20, p.Size)
	assert.Equal(t, SortByUploadDate, p.SortBy)
	assert.Equal(t, SortDesc, p.SortDir)
}

func TestPageRequestNormalizeValidation(t *testing.T) {
	tests := []struct {
		name    string
		req     PageRequest
		wantErr error
	}{
		{
			name:    "negative page",
			req:     PageRequest{Page: -1},
			wantErr: ErrInvalidPagination,
		},
		{
			name:    "negative size",
			req:     PageRequest{Size: -5},
			wantErr: ErrInvalidPagination,
		},
		{
			name:    "size over limit",
			req:     PageRequest{Size: MaxPageSize + 1},
			wantErr: ErrInvalidPagination,
		},
		{
			name:    "size at limit",
			req:     PageRequest{Size: MaxPageSize},
			wantErr: nil,
		},
		{
			name:    "unknown sort field",
			req:     PageRequest{SortBy: "ownerId"},
			wantErr: ErrInvalidSortField,
		},
		{
			name:    "unknown sort direction",
			req:     PageRequest{SortDir: "sideways"},
			wantErr: ErrInvalidSortDir,
		},
		{
			name:    "every valid sort field accepted",
			req:     PageRequest{SortBy: SortByDownloadCount, SortDir: SortAsc},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Normalize()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPageRequestOffset(t *testing.T) {
	p := PageRequest{Page: 3, Size: 25}
	assert.Equal(t, 75, p.Offset())

	p = PageRequest{Page: 0, Size: 20}
	assert.Equal(t, 0, p.Offset())
}

func TestResolvePredicatePrecedence(t *testing.T) {
	tests := []struct {
		name        string
		search      string
		contentType string
		ownerID     string
		want        Predicate
	}{
		{
			name:   "search alone is public only",
			search: "report",
			want:   Predicate{Kind: PredicateSearch, Search: "report", PublicOnly: true},
		},
		{
			name:        "search wins over type and owner",
			search:      "report",
			contentType: "video",
			ownerID:     "owner-1",
			want:        Predicate{Kind: PredicateSearch, Search: "report"},
		},
		{
			name:        "type and owner combine",
			contentType: "video",
			ownerID:     "owner-1",
			want:        Predicate{Kind: PredicateTypeAndOwner, ContentType: "video", OwnerID: "owner-1"},
		},
		{
			name:        "type alone",
			contentType: "video",
			want:        Predicate{Kind: PredicateType, ContentType: "video"},
		},
		{
			name:    "owner alone",
			ownerID: "owner-1",
			want:    Predicate{Kind: PredicateOwner, OwnerID: "owner-1"},
		},
		{
			name: "no filters means public only",
			want: Predicate{Kind: PredicatePublic, PublicOnly: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolvePredicate(tt.search, tt.contentType, tt.ownerID)
			assert.Equal(t, tt.want, got)
		})
	}
}
