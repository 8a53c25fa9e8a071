package userapp

import (
	"github.com/jcpaschoal/headless-cms/business/domain/userbus"
)

var orderByFields = map[string]string{
	"id":        userbus.OrderByID,
	"name":      userbus.OrderByName,
	"email":     userbus.OrderByEmail,
	"role":      userbus.OrderByRole,
	"isActive":  userbus.OrderByActive,
	"createdAt": userbus.OrderByCreatedAt,
}
