package models

import (
	"time"

	"gorm.io/gorm"
)

// Order.Total is derived: it must equal the sum of Price*Qty over the
// order's items and is recomputed on every item mutation.
type Order struct {
	gorm.Model
	UserID     uint        `json:"userId" gorm:"index"`
	Date       time.Time   `json:"date"`
	Total      float64     `json:"total"`
	OrderItems []OrderItem `json:"orderItems" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderItem snapshots name and price at the time of sale; one row per
// (order, product).
type OrderItem struct {
	gorm.Model
	OrderID   uint    `json:"orderId" gorm:"index:idx_order_product,priority:1"`
	ProductID uint    `json:"productId" gorm:"index:idx_order_product,priority:2"`
	Name      string  `json:"name"`
	Qty       int     `json:"qty"`
	Price     float64 `json:"price"`
}
