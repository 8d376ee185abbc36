package services

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/verdantly/plantora-api/events"
	"github.com/verdantly/plantora-api/models"
)

// Engine is the single reservation path for every change to an order's
// items. Checkout, the admin order editor and the user order editor all go
// through it, so plant counters move the same way no matter who calls.
//
// Release returns units to available stock AND decrements SellingQuantity
// (refund semantics); that keeps Quantity + SellingQuantity ==
// OriginalQuantity across arbitrary edit sequences.
type Engine struct {
	store Store
	bus   *events.Bus

	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func NewEngine(store Store, bus *events.Bus) *Engine {
	return &Engine{
		store: store,
		bus:   bus,
		locks: make(map[uint]*sync.Mutex),
	}
}

// plantLock serializes every reservation operation on one plant id.
func (e *Engine) plantLock(id uint) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()

	lock, ok := e.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		e.locks[id] = lock
	}
	return lock
}

// lockPlants acquires locks in ascending id order so that two multi-plant
// operations can never deadlock each other. Returns the unlock func.
func (e *Engine) lockPlants(ids []uint) func() {
	sorted := make([]uint, 0, len(ids))
	seen := make(map[uint]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			sorted = append(sorted, id)
		}
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	locks := make([]*sync.Mutex, len(sorted))
	for i, id := range sorted {
		locks[i] = e.plantLock(id)
		locks[i].Lock()
	}
	return func() {
		for i := len(locks) - 1; i >= 0; i-- {
			locks[i].Unlock()
		}
	}
}

// reserve moves qty units from available to committed. Fails with
// ErrOutOfStock before touching anything when stock is short. Plants created
// before OriginalQuantity existed get it back-filled from the live counters.
func reserve(s Store, plantID uint, qty int) (*models.Plant, error) {
	plant, err := s.Plant(plantID)
	if err != nil {
		return nil, err
	}
	if plant.Quantity < qty {
		return nil, fmt.Errorf("%s: %w", plant.Name, ErrOutOfStock)
	}
	if plant.OriginalQuantity == 0 {
		plant.OriginalQuantity = plant.Quantity + plant.SellingQuantity
	}
	plant.Quantity -= qty
	plant.SellingQuantity += qty
	if err := s.SavePlant(plant); err != nil {
		return nil, err
	}
	return plant, nil
}

// release is the inverse of reserve. SellingQuantity is clamped at zero.
func release(s Store, plantID uint, qty int) (*models.Plant, error) {
	plant, err := s.Plant(plantID)
	if err != nil {
		return nil, err
	}
	plant.Quantity += qty
	plant.SellingQuantity -= qty
	if plant.SellingQuantity < 0 {
		plant.SellingQuantity = 0
	}
	if err := s.SavePlant(plant); err != nil {
		return nil, err
	}
	return plant, nil
}

// recalcTotal re-derives an order's total from its items.
func recalcTotal(s Store, orderID uint) (float64, error) {
	lines, err := s.OrderLines(orderID)
	if err != nil {
		return 0, err
	}
	total := 0.0
	for _, line := range lines {
		total += line.Price * float64(line.Qty)
	}
	if err := s.SaveOrderTotal(orderID, total); err != nil {
		return 0, err
	}
	return total, nil
}

// AddLineItem reserves one unit of the plant for the order. An existing
// (order, product) line grows by one, otherwise a new line is created with
// the plant's current price as snapshot. An out-of-stock plant neither
// creates nor grows a line.
func (e *Engine) AddLineItem(orderID, plantID uint) (*models.OrderItem, error) {
	unlock := e.lockPlants([]uint{plantID})
	defer unlock()

	var line *models.OrderItem
	err := e.store.Transact(func(s Store) error {
		if _, err := s.Order(orderID); err != nil {
			return err
		}
		plant, err := reserve(s, plantID, 1)
		if err != nil {
			return err
		}

		existing, err := s.OrderLine(orderID, plantID)
		switch {
		case err == nil:
			existing.Qty++
			if err := s.SaveOrderLine(existing); err != nil {
				return err
			}
			line = existing
		case errors.Is(err, ErrNotFound):
			line = &models.OrderItem{
				OrderID:   orderID,
				ProductID: plantID,
				Name:      plant.Name,
				Qty:       1,
				Price:     plant.Price,
			}
			if err := s.CreateOrderLine(line); err != nil {
				return err
			}
		default:
			return err
		}

		_, err = recalcTotal(s, orderID)
		return err
	})
	if err != nil {
		return nil, err
	}

	publish(e.bus, "plants", events.ActionUpdate, plantID)
	publish(e.bus, "orders", events.ActionUpdate, orderID)
	return line, nil
}

// IncreaseLineQty reserves one more unit for an existing line.
func (e *Engine) IncreaseLineQty(lineID uint) error {
	line, err := e.store.OrderLineByID(lineID)
	if err != nil {
		return err
	}

	unlock := e.lockPlants([]uint{line.ProductID})
	defer unlock()

	err = e.store.Transact(func(s Store) error {
		line, err := s.OrderLineByID(lineID)
		if err != nil {
			return err
		}
		if _, err := reserve(s, line.ProductID, 1); err != nil {
			return err
		}
		line.Qty++
		if err := s.SaveOrderLine(line); err != nil {
			return err
		}
		_, err = recalcTotal(s, line.OrderID)
		return err
	})
	if err != nil {
		return err
	}

	publish(e.bus, "plants", events.ActionUpdate, line.ProductID)
	publish(e.bus, "orders", events.ActionUpdate, line.OrderID)
	return nil
}

// DecreaseLineQty releases one unit. At qty 1 the line is deleted.
func (e *Engine) DecreaseLineQty(lineID uint) error {
	line, err := e.store.OrderLineByID(lineID)
	if err != nil {
		return err
	}

	unlock := e.lockPlants([]uint{line.ProductID})
	defer unlock()

	err = e.store.Transact(func(s Store) error {
		line, err := s.OrderLineByID(lineID)
		if err != nil {
			return err
		}
		if line.Qty <= 1 {
			if err := s.DeleteOrderLine(line.ID); err != nil {
				return err
			}
		} else {
			line.Qty--
			if err := s.SaveOrderLine(line); err != nil {
				return err
			}
		}
		if _, err := release(s, line.ProductID, 1); err != nil {
			return err
		}
		_, err = recalcTotal(s, line.OrderID)
		return err
	})
	if err != nil {
		return err
	}

	publish(e.bus, "plants", events.ActionUpdate, line.ProductID)
	publish(e.bus, "orders", events.ActionUpdate, line.OrderID)
	return nil
}

// RemoveLineItem deletes the line and releases its full quantity.
func (e *Engine) RemoveLineItem(lineID uint) error {
	line, err := e.store.OrderLineByID(lineID)
	if err != nil {
		return err
	}

	unlock := e.lockPlants([]uint{line.ProductID})
	defer unlock()

	err = e.store.Transact(func(s Store) error {
		line, err := s.OrderLineByID(lineID)
		if err != nil {
			return err
		}
		if err := s.DeleteOrderLine(line.ID); err != nil {
			return err
		}
		if _, err := release(s, line.ProductID, line.Qty); err != nil {
			return err
		}
		_, err = recalcTotal(s, line.OrderID)
		return err
	})
	if err != nil {
		return err
	}

	publish(e.bus, "plants", events.ActionUpdate, line.ProductID)
	publish(e.bus, "orders", events.ActionUpdate, line.OrderID)
	return nil
}

// SetLinePrice overrides a line's price snapshot and re-derives the total.
// Stock counters are untouched.
func (e *Engine) SetLinePrice(lineID uint, price float64) error {
	var orderID uint
	err := e.store.Transact(func(s Store) error {
		line, err := s.OrderLineByID(lineID)
		if err != nil {
			return err
		}
		line.Price = price
		if err := s.SaveOrderLine(line); err != nil {
			return err
		}
		orderID = line.OrderID
		_, err = recalcTotal(s, line.OrderID)
		return err
	})
	if err != nil {
		return err
	}

	publish(e.bus, "orders", events.ActionUpdate, orderID)
	return nil
}

// RecalcOrderTotal re-derives and persists the order's total. Idempotent.
func (e *Engine) RecalcOrderTotal(orderID uint) (float64, error) {
	var total float64
	err := e.store.Transact(func(s Store) error {
		var err error
		total, err = recalcTotal(s, orderID)
		return err
	})
	return total, err
}

// Checkout converts the user's cart into an order in one transaction: the
// order and its items are created with the cart's snapshot prices, every
// plant's counters are moved by the line quantity, and the cart is cleared.
// Any short stock rejects the whole checkout; no partial order remains.
func (e *Engine) Checkout(userID uint) (*models.Order, error) {
	lines, err := e.store.CartLines(userID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	ids := make([]uint, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ProductID)
	}
	unlock := e.lockPlants(ids)
	defer unlock()

	var order *models.Order
	err = e.store.Transact(func(s Store) error {
		lines, err := s.CartLines(userID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return ErrEmptyCart
		}

		total := 0.0
		for _, line := range lines {
			total += line.Subtotal()
		}

		order = &models.Order{UserID: userID, Date: time.Now(), Total: total}
		if err := s.CreateOrder(order); err != nil {
			return err
		}

		for _, line := range lines {
			if _, err := reserve(s, line.ProductID, line.Qty); err != nil {
				return err
			}
			item := &models.OrderItem{
				OrderID:   order.ID,
				ProductID: line.ProductID,
				Name:      line.Name,
				Qty:       line.Qty,
				Price:     line.Price,
			}
			if err := s.CreateOrderLine(item); err != nil {
				return err
			}
		}

		return s.ClearCart(userID)
	})
	if err != nil {
		return nil, err
	}

	publish(e.bus, "orders", events.ActionCreate, order.ID)
	publish(e.bus, "cart", events.ActionDelete, userID)
	for _, id := range ids {
		publish(e.bus, "plants", events.ActionUpdate, id)
	}
	return order, nil
}
