package models

import "gorm.io/gorm"

// CartItem is a pending selection. Price and OriginalPrice are snapshots
// taken when the item was added; later catalog changes do not affect them.
// One row per (user, product) — re-adding increments Qty.
type CartItem struct {
	gorm.Model
	UserID        uint    `json:"userId" gorm:"index:idx_cart_user_product,priority:1"`
	ProductID     uint    `json:"productId" gorm:"index:idx_cart_user_product,priority:2"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	OriginalPrice float64 `json:"originalPrice"`
	Discount      int     `json:"discount"`
	Qty           int     `json:"qty"`
}

func (c *CartItem) Subtotal() float64 {
	return c.Price * float64(c.Qty)
}
