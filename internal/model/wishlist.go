package model

import "time"

// WishlistItem marks a product a customer wants to keep an eye on. One row
// per (user, product) pair.
type WishlistItem struct {
	ID        string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	UserID    string    `json:"user_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_wishlist_user_product"`
	ProductID string    `json:"product_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_wishlist_user_product"`
	CreatedAt time.Time `json:"created_at"`
	Product   *Product  `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}
