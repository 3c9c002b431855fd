//go:build unit

package queries_test

import (
	"testing"

	"branch-requests/internal/usecase/queries"

	"github.com/stretchr/testify/assert"
)

func TestPageNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   queries.Page
		want queries.Page
	}{
		{name: "defaults applied to zero values", in: queries.Page{}, want: queries.Page{Number: 1, Size: 10}},
		{name: "negative page falls back to first", in: queries.Page{Number: -3, Size: 20}, want: queries.Page{Number: 1, Size: 20}},
		{name: "negative size falls back to default", in: queries.Page{Number: 2, Size: -1}, want: queries.Page{Number: 2, Size: 10}},
		{name: "oversized page is clamped", in: queries.Page{Number: 1, Size: 500}, want: queries.Page{Number: 1, Size: 100}},
		{name: "max size passes through", in: queries.Page{Number: 1, Size: 100}, want: queries.Page{Number: 1, Size: 100}},
		{name: "valid values untouched", in: queries.Page{Number: 3, Size: 25}, want: queries.Page{Number: 3, Size: 25}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize())
		})
	}
}

func TestPageOffset(t *testing.T) {
	assert.Equal(t, 0, queries.Page{Number: 1, Size: 10}.Offset())
	assert.Equal(t, 20, queries.Page{Number: 3, Size: 10}.Offset())
	assert.Equal(t, 50, queries.Page{Number: 2, Size: 50}.Offset())
}

func TestSortNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   queries.Sort
		want queries.Sort
	}{
		{
			name: "empty sort falls back to date descending",
			in:   queries.Sort{},
			want: queries.Sort{Field: queries.SortByDate, Direction: queries.SortDesc},
		},
		{
			name: "unknown field falls back to date",
			in:   queries.Sort{Field: "priority", Direction: queries.SortAsc},
			want: queries.Sort{Field: queries.SortByDate, Direction: queries.SortAsc},
		},
		{
			name: "unknown direction falls back to descending",
			in:   queries.Sort{Field: queries.SortByStatus, Direction: "sideways"},
			want: queries.Sort{Field: queries.SortByStatus, Direction: queries.SortDesc},
		},
		{
			name: "explicit ascending is preserved",
			in:   queries.Sort{Field: queries.SortByDate, Direction: queries.SortAsc},
			want: queries.Sort{Field: queries.SortByDate, Direction: queries.SortAsc},
		},
		{
			name: "valid sort untouched",
			in:   queries.Sort{Field: queries.SortByStatus, Direction: queries.SortDesc},
			want: queries.Sort{Field: queries.SortByStatus, Direction: queries.SortDesc},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize())
		})
	}
}
