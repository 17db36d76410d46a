package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		pageSize int
		total    int
		want     Pagination
	}{
		{
			name: "first page of several", page: 1, pageSize: 10, total: 35,
			want: Pagination{CurrentPage: 1, PageSize: 10, TotalPages: 4, TotalItems: 35, HasNext: true, HasPrevious: false},
		},
		{
			name: "middle page", page: 2, pageSize: 10, total: 35,
			want: Pagination{CurrentPage: 2, PageSize: 10, TotalPages: 4, TotalItems: 35, HasNext: true, HasPrevious: true},
		},
		{
			name: "last page", page: 4, pageSize: 10, total: 35,
			want: Pagination{CurrentPage: 4, PageSize: 10, TotalPages: 4, TotalItems: 35, HasNext: false, HasPrevious: true},
		},
		{
			name: "exact multiple", page: 2, pageSize: 10, total: 20,
			want: Pagination{CurrentPage: 2, PageSize: 10, TotalPages: 2, TotalItems: 20, HasNext: false, HasPrevious: true},
		},
		{
			name: "empty result set", page: 1, pageSize: 10, total: 0,
			want: Pagination{CurrentPage: 1, PageSize: 10, TotalPages: 0, TotalItems: 0, HasNext: false, HasPrevious: false},
		},
		{
			name: "single partial page", page: 1, pageSize: 20, total: 5,
			want: Pagination{CurrentPage: 1, PageSize: 20, TotalPages: 1, TotalItems: 5, HasNext: false, HasPrevious: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewPagination(tt.page, tt.pageSize, tt.total))
		})
	}
}
