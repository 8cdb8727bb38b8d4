package userbus

import "github.com/Mukeshmehta2041/crm-micro-sub000/business/sdk/order"

var DefaultOrderBy = order.NewBy(OrderByID, order.ASC)

const (
	OrderByID       = "a"
	OrderByName     = "b"
	OrderByUsername = "c"
	OrderByEmail    = "d"
	OrderByRole     = "e"
	OrderByEnabled  = "f"
)
