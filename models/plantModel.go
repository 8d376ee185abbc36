package models

import (
	"math"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Plant is a catalog entry. Quantity is the stock currently available for
// sale, SellingQuantity the units committed to orders, and OriginalQuantity
// the units ever stocked. Once OriginalQuantity is established,
// Quantity + SellingQuantity == OriginalQuantity.
type Plant struct {
	gorm.Model
	Name             string         `json:"name" binding:"required"`
	Price            float64        `json:"price" binding:"required"`
	Discount         int            `json:"discount"`
	Country          string         `json:"country" gorm:"index"`
	Img              string         `json:"img"`
	Tags             datatypes.JSON `json:"tags"`
	Quantity         int            `json:"quantity"`
	SellingQuantity  int            `json:"sellingQuantity"`
	OriginalQuantity int            `json:"originalQuantity"`
	CreatedByAdminID *uint          `json:"createdByAdminId" gorm:"index"`
}

func (p *Plant) OnSale() bool {
	return p.Discount > 0
}

// DiscountedPrice is the price a buyer pays right now, rounded to a whole
// unit of currency when a discount applies.
func (p *Plant) DiscountedPrice() float64 {
	if !p.OnSale() {
		return p.Price
	}
	return math.Round(p.Price - (p.Price*float64(p.Discount))/100)
}
