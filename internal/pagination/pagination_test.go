package pagination_test

import (
	"testing"

	"github.com/adilbekov/timetrack/internal/pagination"
)

func TestNewPage_Meta(t *testing.T) {
	tests := []struct {
		name      string
		page      int
		limit     int
		itemCount int
		pageCount int
		hasPrev   bool
		hasNext   bool
	}{
		{"first of many", 1, 10, 25, 3, false, true},
		{"middle", 2, 10, 25, 3, true, true},
		{"last", 3, 10, 25, 3, true, false},
		{"exact fit", 2, 10, 20, 2, true, false},
		{"empty", 1, 10, 0, 0, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := pagination.NewPage([]int{1}, tt.itemCount, pagination.Options{Page: tt.page, Limit: tt.limit})
			m := p.Meta
			if m.PageCount != tt.pageCount {
				t.Errorf("PageCount = %d, want %d", m.PageCount, tt.pageCount)
			}
			if m.HasPreviousPage != tt.hasPrev {
				t.Errorf("HasPreviousPage = %v, want %v", m.HasPreviousPage, tt.hasPrev)
			}
			if m.HasNextPage != tt.hasNext {
				t.Errorf("HasNextPage = %v, want %v", m.HasNextPage, tt.hasNext)
			}
		})
	}
}

func TestNewPage_NilDataBecomesEmptySlice(t *testing.T) {
	p := pagination.NewPage[string](nil, 0, pagination.Options{Page: 1, Limit: 10})
	if p.Data == nil {
		t.Error("Data is nil, want empty slice so JSON renders [] not null")
	}
}

func TestOptions_Offset(t *testing.T) {
	o := pagination.Options{Page: 3, Limit: 20}
	if o.Offset() != 40 {
		t.Errorf("Offset() = %d, want 40", o.Offset())
	}
}
