package model

// Cart is the ephemeral per-customer cart. It is not a database table: carts
// live in Redis as a JSON blob keyed by user ID and are drained by checkout.
type Cart struct {
	Items []CartItem `json:"items"`
}

// CartItem is one product line in a cart.
type CartItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// Quantity returns the quantity of the given product in the cart, or 0.
func (c *Cart) Quantity(productID string) int {
	for _, it := range c.Items {
		if it.ProductID == productID {
			return it.Quantity
		}
	}
	return 0
}

// SetQuantity sets the quantity for a product, adding or removing the line
// as needed.
func (c *Cart) SetQuantity(productID string, qty int) {
	for i, it := range c.Items {
		if it.ProductID == productID {
			if qty <= 0 {
				c.Items = append(c.Items[:i], c.Items[i+1:]...)
				return
			}
			c.Items[i].Quantity = qty
			return
		}
	}
	if qty > 0 {
		c.Items = append(c.Items, CartItem{ProductID: productID, Quantity: qty})
	}
}

// CartItemRequest adds a product to the cart or changes its quantity.
type CartItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

// CartLine is a cart item joined with its current product for display.
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// CartResponse is the rendered cart.
type CartResponse struct {
	Lines         []CartLine `json:"lines"`
	SubtotalCents int64      `json:"subtotal_cents"`
}
