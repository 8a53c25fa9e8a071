// Package query provides support for query paging.
package query

import "github.com/jcpaschoal/headless-cms/business/sdk/page"

// Result is the data model used when returning a query result.
type Result[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

// NewResult constructs a result value to return query results.
func NewResult[T any](items []T, total int, pg page.Page) Result[T] {
	if items == nil {
		items = []T{}
	}

	limit := pg.RowsPerPage()

	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}

	return Result[T]{
		Items: items,
		Total: total,
		Page:  pg.Number(),
		Limit: limit,
		Pages: pages,
	}
}
