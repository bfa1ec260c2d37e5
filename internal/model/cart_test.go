package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCartSetQuantity(t *testing.T) {
	cart := &Cart{}

	cart.SetQuantity("p1", 2)
	cart.SetQuantity("p2", 1)
	assert.Equal(t, 2, cart.Quantity("p1"))
	assert.Equal(t, 1, cart.Quantity("p2"))

	cart.SetQuantity("p1", 5)
	assert.Equal(t, 5, cart.Quantity("p1"))
	assert.Len(t, cart.Items, 2)

	cart.SetQuantity("p1", 0)
	assert.Equal(t, 0, cart.Quantity("p1"))
	assert.Len(t, cart.Items, 1)

	// removing an absent product is a no-op
	cart.SetQuantity("p3", 0)
	assert.Len(t, cart.Items, 1)
}
