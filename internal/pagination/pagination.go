// Package pagination implements the offset page envelope shared by list
// endpoints.
package pagination

// Options are the page/limit query parameters. Bind with gin's form tags.
type Options struct {
	Page  int `form:"page,default=1"  binding:"omitempty,min=1"`
	Limit int `form:"limit,default=10" binding:"omitempty,min=1,max=100"`
}

func (o Options) Offset() int {
	return (o.Page - 1) * o.Limit
}

type Meta struct {
	Page            int  `json:"page"`
	Limit           int  `json:"limit"`
	ItemCount       int  `json:"itemCount"`
	PageCount       int  `json:"pageCount"`
	HasPreviousPage bool `json:"hasPreviousPage"`
	HasNextPage     bool `json:"hasNextPage"`
}

type Page[T any] struct {
	Data []T  `json:"data"`
	Meta Meta `json:"meta"`
}

// NewPage wraps a result slice with its page meta. Data is never null in
// the JSON output, even for an empty page.
func NewPage[T any](data []T, itemCount int, opts Options) Page[T] {
	if data == nil {
		data = []T{}
	}

	pageCount := 0
	if opts.Limit > 0 {
		pageCount = (itemCount + opts.Limit - 1) / opts.Limit
	}

	return Page[T]{
		Data: data,
		Meta: Meta{
			Page:            opts.Page,
			Limit:           opts.Limit,
			ItemCount:       itemCount,
			PageCount:       pageCount,
			HasPreviousPage: opts.Page > 1,
			HasNextPage:     opts.Page < pageCount,
		},
	}
}
