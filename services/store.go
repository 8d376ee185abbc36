package services

import (
	"github.com/verdantly/plantora-api/events"
	"github.com/verdantly/plantora-api/models"
)

// Store is the persistence boundary the services operate on. Lookups return
// ErrNotFound when no row matches. Transact runs fn against a store whose
// writes either all land or all roll back; services rely on it for the
// multi-record sequences (checkout, line edits plus counter updates).
type Store interface {
	Plant(id uint) (*models.Plant, error)
	SavePlant(plant *models.Plant) error

	Order(id uint) (*models.Order, error)
	Orders() ([]models.Order, error)
	CreateOrder(order *models.Order) error
	SaveOrderTotal(orderID uint, total float64) error

	OrderLine(orderID, productID uint) (*models.OrderItem, error)
	OrderLineByID(id uint) (*models.OrderItem, error)
	OrderLines(orderID uint) ([]models.OrderItem, error)
	AllOrderLines() ([]models.OrderItem, error)
	CreateOrderLine(line *models.OrderItem) error
	SaveOrderLine(line *models.OrderItem) error
	DeleteOrderLine(id uint) error

	CartLine(userID, productID uint) (*models.CartItem, error)
	CartLineByID(id uint) (*models.CartItem, error)
	CartLines(userID uint) ([]models.CartItem, error)
	CreateCartLine(line *models.CartItem) error
	SaveCartLine(line *models.CartItem) error
	DeleteCartLine(id uint) error
	ClearCart(userID uint) error

	Like(userID, productID uint) (*models.Like, error)
	Likes(userID uint) ([]models.Like, error)
	CreateLike(like *models.Like) error
	DeleteLike(id uint) error
	CountLikes(userID uint) (int64, error)

	Transact(fn func(Store) error) error
}

// publish is nil-safe so services can run without a bus in tests.
func publish(bus *events.Bus, table, action string, id uint) {
	if bus == nil {
		return
	}
	bus.Publish(events.Event{Table: table, Action: action, ID: id})
}
