package models_test

import (
	"testing"

	"fakestore_back_end/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestIsValidOrderStatus(t *testing.T) {
	for _, status := range []string{"new", "paid", "delivered", "cancelled"} {
		assert.True(t, models.IsValidOrderStatus(status), status)
	}
	for _, status := range []string{"", "New", "shipped", "expédiée"} {
		assert.False(t, models.IsValidOrderStatus(status), status)
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to string
		allowed  bool
	}{
		{"new", "paid", true},
		{"new", "cancelled", true},
		{"paid", "delivered", true},
		// interdits
		{"new", "delivered", false},
		{"paid", "new", false},
		{"paid", "cancelled", false},
		{"delivered", "new", false},
		{"delivered", "paid", false},
		{"cancelled", "new", false},
		{"new", "new", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.allowed, models.CanTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestComputeTotal(t *testing.T) {
	items := []models.OrderItem{
		{ProductID: "1", Price: 10.0, Quantity: 2},
		{ProductID: "2", Price: 2.5, Quantity: 4},
	}
	assert.Equal(t, 30.0, models.ComputeTotal(items))
	assert.Equal(t, 0.0, models.ComputeTotal(nil))
}
