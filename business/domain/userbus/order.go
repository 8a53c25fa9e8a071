package userbus

import "github.com/jcpaschoal/headless-cms/business/sdk/order"

// DefaultOrderBy represents the default way we sort.
var DefaultOrderBy = order.NewBy(OrderByCreatedAt, order.ASC)

// Set of fields that the results can be ordered by.
const (
	OrderByID        = "a"
	OrderByName      = "b"
	OrderByEmail     = "c"
	OrderByRole      = "d"
	OrderByActive    = "e"
	OrderByCreatedAt = "f"
)
