package userapp

import (
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/domain/userbus"
)

var orderByFields = map[string]string{
	"user_id":  userbus.OrderByID,
	"name":     userbus.OrderByName,
	"username": userbus.OrderByUsername,
	"email":    userbus.OrderByEmail,
	"role":     userbus.OrderByRole,
	"enabled":  userbus.OrderByEnabled,
}
