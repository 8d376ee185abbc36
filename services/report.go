package services

import (
	"errors"
	"sort"
	"time"
)

// SalesRow is one plant's sales summary, joined from order items, their
// orders (for the date filter) and the live plant record.
type SalesRow struct {
	ProductID        uint    `json:"productId"`
	PlantName        string  `json:"plantName"`
	Country          string  `json:"country"`
	AddedQuantity    int     `json:"addedQuantity"`
	CurrentQuantity  int     `json:"currentQuantity"`
	SoldQuantity     int     `json:"soldQuantity"`
	Price            float64 `json:"price"`
	Discount         int     `json:"discount"`
	TotalSold        int     `json:"totalSold"`
	ActualRevenue    float64 `json:"actualRevenue"`
	PotentialRevenue float64 `json:"potentialRevenue"`
	DiscountLoss     float64 `json:"discountLoss"`
	EstimatedCost    float64 `json:"estimatedCost"`
}

// ReportService derives per-plant sales figures from the order history. It
// only reads; nothing here mutates the store.
type ReportService struct {
	store Store
}

func NewReportService(store Store) *ReportService {
	return &ReportService{store: store}
}

// SalesReport aggregates order lines per product, optionally limited to
// orders whose date falls inside [start, end]. Lines whose plant has been
// deleted are skipped. Rows come back sorted by actual revenue, highest
// first. Cost is estimated at 70% of the base price.
func (r *ReportService) SalesReport(start, end *time.Time) ([]SalesRow, error) {
	items, err := r.store.AllOrderLines()
	if err != nil {
		return nil, err
	}
	orders, err := r.store.Orders()
	if err != nil {
		return nil, err
	}

	orderDates := make(map[uint]time.Time, len(orders))
	for _, order := range orders {
		orderDates[order.ID] = order.Date
	}

	rows := make(map[uint]*SalesRow)
	for _, item := range items {
		date, ok := orderDates[item.OrderID]
		if !ok {
			continue
		}
		if start != nil && date.Before(*start) {
			continue
		}
		if end != nil && date.After(*end) {
			continue
		}

		row, ok := rows[item.ProductID]
		if !ok {
			plant, err := r.store.Plant(item.ProductID)
			if errors.Is(err, ErrNotFound) {
				continue
			}
			if err != nil {
				return nil, err
			}
			row = &SalesRow{
				ProductID:       item.ProductID,
				PlantName:       plant.Name,
				Country:         plant.Country,
				AddedQuantity:   plant.OriginalQuantity,
				CurrentQuantity: plant.Quantity,
				SoldQuantity:    plant.SellingQuantity,
				Price:           plant.Price,
				Discount:        plant.Discount,
			}
			rows[item.ProductID] = row
		}

		row.TotalSold += item.Qty
		row.ActualRevenue += item.Price * float64(item.Qty)
	}

	result := make([]SalesRow, 0, len(rows))
	for _, row := range rows {
		row.PotentialRevenue = float64(row.TotalSold) * row.Price
		row.DiscountLoss = row.PotentialRevenue - row.ActualRevenue
		row.EstimatedCost = float64(row.TotalSold) * row.Price * 0.7
		result = append(result, *row)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ActualRevenue > result[j].ActualRevenue
	})
	return result, nil
}
