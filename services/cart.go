package services

import (
	"errors"

	"github.com/verdantly/plantora-api/events"
	"github.com/verdantly/plantora-api/models"
)

// CartService is the per-user pending-selection ledger. Cart quantities are
// bounded by the plant's live available stock but reserve nothing; stock
// only moves at checkout.
type CartService struct {
	store Store
	bus   *events.Bus
}

func NewCartService(store Store, bus *events.Bus) *CartService {
	return &CartService{store: store, bus: bus}
}

// AddToCart puts one unit of the plant in the user's cart, snapshotting the
// discounted price and the base price. Re-adding an already carted plant
// increments its quantity up to the plant's available stock.
func (c *CartService) AddToCart(userID, productID uint) (*models.CartItem, error) {
	plant, err := c.store.Plant(productID)
	if err != nil {
		return nil, err
	}
	if plant.Quantity <= 0 {
		return nil, ErrOutOfStock
	}

	existing, err := c.store.CartLine(userID, productID)
	if err == nil {
		if existing.Qty >= plant.Quantity {
			return nil, ErrStockLimitReached
		}
		existing.Qty++
		if err := c.store.SaveCartLine(existing); err != nil {
			return nil, err
		}
		publish(c.bus, "cart", events.ActionUpdate, existing.ID)
		return existing, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	line := &models.CartItem{
		UserID:        userID,
		ProductID:     productID,
		Name:          plant.Name,
		Price:         plant.DiscountedPrice(),
		OriginalPrice: plant.Price,
		Discount:      plant.Discount,
		Qty:           1,
	}
	if err := c.store.CreateCartLine(line); err != nil {
		return nil, err
	}
	publish(c.bus, "cart", events.ActionCreate, line.ID)
	return line, nil
}

// IncreaseQty adds one unit to a cart line, bounded by the plant's stock
// visible at call time.
func (c *CartService) IncreaseQty(userID, cartID uint) error {
	line, err := c.store.CartLineByID(cartID)
	if err != nil {
		return err
	}
	if line.UserID != userID {
		return ErrNotFound
	}

	plant, err := c.store.Plant(line.ProductID)
	if err != nil {
		return err
	}
	if line.Qty >= plant.Quantity {
		return ErrStockLimitReached
	}

	line.Qty++
	if err := c.store.SaveCartLine(line); err != nil {
		return err
	}
	publish(c.bus, "cart", events.ActionUpdate, line.ID)
	return nil
}

// DecreaseQty removes one unit; at qty 1 the line is deleted.
func (c *CartService) DecreaseQty(userID, cartID uint) error {
	line, err := c.store.CartLineByID(cartID)
	if err != nil {
		return err
	}
	if line.UserID != userID {
		return ErrNotFound
	}

	if line.Qty <= 1 {
		if err := c.store.DeleteCartLine(line.ID); err != nil {
			return err
		}
		publish(c.bus, "cart", events.ActionDelete, line.ID)
		return nil
	}

	line.Qty--
	if err := c.store.SaveCartLine(line); err != nil {
		return err
	}
	publish(c.bus, "cart", events.ActionUpdate, line.ID)
	return nil
}

// RemoveByProduct deletes the user's cart line for a product, if present.
func (c *CartService) RemoveByProduct(userID, productID uint) error {
	line, err := c.store.CartLine(userID, productID)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := c.store.DeleteCartLine(line.ID); err != nil {
		return err
	}
	publish(c.bus, "cart", events.ActionDelete, line.ID)
	return nil
}

// Clear deletes every cart line for the user.
func (c *CartService) Clear(userID uint) error {
	if err := c.store.ClearCart(userID); err != nil {
		return err
	}
	publish(c.bus, "cart", events.ActionDelete, userID)
	return nil
}

func (c *CartService) Lines(userID uint) ([]models.CartItem, error) {
	return c.store.CartLines(userID)
}
