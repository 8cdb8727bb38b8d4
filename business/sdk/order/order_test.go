package order_test

import (
	"testing"

	"github.com/Mukeshmehta2041/crm-micro-sub000/business/sdk/order"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fieldMappings = map[string]string{
	"user_id": "user_id",
	"name":    "name",
	"email":   "email",
}

func Test_Parse(t *testing.T) {
	defaultOrder := order.NewBy("user_id", order.ASC)

	tests := []struct {
		name    string
		orderBy string
		want    order.By
		wantErr bool
	}{
		{"empty uses default", "", defaultOrder, false},
		{"field only", "name", order.NewBy("name", order.ASC), false},
		{"field asc", "name,asc", order.NewBy("name", order.ASC), false},
		{"field desc", "email,DESC", order.NewBy("email", order.DESC), false},
		{"spaces trimmed", " name , desc ", order.NewBy("name", order.DESC), false},
		{"unknown field", "enabled", order.By{}, true},
		{"unknown direction", "name,sideways", order.By{}, true},
		{"too many parts", "name,asc,extra", order.By{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := order.Parse(fieldMappings, tt.orderBy, defaultOrder)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func Test_NewByUnknownDirection(t *testing.T) {
	by := order.NewBy("name", "SIDEWAYS")
	assert.Equal(t, order.ASC, by.Direction)
	assert.Equal(t, "name", by.Field)
}
