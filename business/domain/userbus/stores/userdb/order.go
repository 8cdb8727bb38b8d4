package userdb

import (
	"fmt"

	"github.com/Mukeshmehta2041/crm-micro-sub000/business/domain/userbus"
	"github.com/Mukeshmehta2041/crm-micro-sub000/business/sdk/order"
)

var orderByFields = map[string]string{
	userbus.OrderByID:       "user_id",
	userbus.OrderByName:     "name",
	userbus.OrderByUsername: "username",
	userbus.OrderByEmail:    "email",
	userbus.OrderByRole:     "role",
	userbus.OrderByEnabled:  "enabled",
}

func orderByClause(orderBy order.By) (string, error) {
	by, exists := orderByFields[orderBy.Field]
	if !exists {
		return "", fmt.Errorf("field %q does not exist", orderBy.Field)
	}

	return " ORDER BY " + by + " " + orderBy.Direction, nil
}
