package models

import "gorm.io/gorm"

// Like is a wishlist entry with a denormalized product snapshot.
// One row per (user, product).
type Like struct {
	gorm.Model
	UserID    uint    `json:"userId" gorm:"index:idx_like_user_product,priority:1"`
	ProductID uint    `json:"productId" gorm:"index:idx_like_user_product,priority:2"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Img       string  `json:"img"`
}
