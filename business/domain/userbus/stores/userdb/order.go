package userdb

import (
	"fmt"

	"github.com/jcpaschoal/headless-cms/business/domain/userbus"
	"github.com/jcpaschoal/headless-cms/business/sdk/order"
)

var orderByFields = map[string]string{
	userbus.OrderByID:        "user_id",
	userbus.OrderByName:      "name",
	userbus.OrderByEmail:     "email",
	userbus.OrderByRole:      "role",
	userbus.OrderByActive:    "active",
	userbus.OrderByCreatedAt: "created_at",
}

func orderByClause(orderBy order.By) (string, error) {
	by, exists := orderByFields[orderBy.Field]
	if !exists {
		return "", fmt.Errorf("field %q does not exist", orderBy.Field)
	}

	return " ORDER BY " + by + " " + orderBy.Direction, nil
}
