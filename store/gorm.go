package store

import (
	"errors"

	"github.com/verdantly/plantora-api/models"
	"github.com/verdantly/plantora-api/services"
	"gorm.io/gorm"
)

// GormStore implements services.Store over a gorm connection.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return services.ErrNotFound
	}
	return err
}

func (g *GormStore) Plant(id uint) (*models.Plant, error) {
	var plant models.Plant
	if err := g.db.First(&plant, id).Error; err != nil {
		return nil, translate(err)
	}
	return &plant, nil
}

func (g *GormStore) SavePlant(plant *models.Plant) error {
	return g.db.Save(plant).Error
}

func (g *GormStore) Order(id uint) (*models.Order, error) {
	var order models.Order
	if err := g.db.First(&order, id).Error; err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

func (g *GormStore) Orders() ([]models.Order, error) {
	var orders []models.Order
	if err := g.db.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (g *GormStore) CreateOrder(order *models.Order) error {
	return g.db.Create(order).Error
}

func (g *GormStore) SaveOrderTotal(orderID uint, total float64) error {
	var order models.Order
	if err := g.db.First(&order, orderID).Error; err != nil {
		return translate(err)
	}
	// MySQL reports zero affected rows when the value is unchanged, so an
	// idempotent recalc must not be read as a missing order.
	return g.db.Model(&order).Update("total", total).Error
}

func (g *GormStore) OrderLine(orderID, productID uint) (*models.OrderItem, error) {
	var line models.OrderItem
	err := g.db.Where("order_id = ? AND product_id = ?", orderID, productID).First(&line).Error
	if err != nil {
		return nil, translate(err)
	}
	return &line, nil
}

func (g *GormStore) OrderLineByID(id uint) (*models.OrderItem, error) {
	var line models.OrderItem
	if err := g.db.First(&line, id).Error; err != nil {
		return nil, translate(err)
	}
	return &line, nil
}

func (g *GormStore) OrderLines(orderID uint) ([]models.OrderItem, error) {
	var lines []models.OrderItem
	if err := g.db.Where("order_id = ?", orderID).Order("id").Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

func (g *GormStore) AllOrderLines() ([]models.OrderItem, error) {
	var lines []models.OrderItem
	if err := g.db.Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

func (g *GormStore) CreateOrderLine(line *models.OrderItem) error {
	return g.db.Create(line).Error
}

func (g *GormStore) SaveOrderLine(line *models.OrderItem) error {
	return g.db.Save(line).Error
}

func (g *GormStore) DeleteOrderLine(id uint) error {
	return g.db.Delete(&models.OrderItem{}, id).Error
}

func (g *GormStore) CartLine(userID, productID uint) (*models.CartItem, error) {
	var line models.CartItem
	err := g.db.Where("user_id = ? AND product_id = ?", userID, productID).First(&line).Error
	if err != nil {
		return nil, translate(err)
	}
	return &line, nil
}

func (g *GormStore) CartLineByID(id uint) (*models.CartItem, error) {
	var line models.CartItem
	if err := g.db.First(&line, id).Error; err != nil {
		return nil, translate(err)
	}
	return &line, nil
}

func (g *GormStore) CartLines(userID uint) ([]models.CartItem, error) {
	var lines []models.CartItem
	if err := g.db.Where("user_id = ?", userID).Order("id").Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

func (g *GormStore) CreateCartLine(line *models.CartItem) error {
	return g.db.Create(line).Error
}

func (g *GormStore) SaveCartLine(line *models.CartItem) error {
	return g.db.Save(line).Error
}

func (g *GormStore) DeleteCartLine(id uint) error {
	return g.db.Delete(&models.CartItem{}, id).Error
}

func (g *GormStore) ClearCart(userID uint) error {
	return g.db.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}

func (g *GormStore) Like(userID, productID uint) (*models.Like, error) {
	var like models.Like
	err := g.db.Where("user_id = ? AND product_id = ?", userID, productID).First(&like).Error
	if err != nil {
		return nil, translate(err)
	}
	return &like, nil
}

func (g *GormStore) Likes(userID uint) ([]models.Like, error) {
	var likes []models.Like
	if err := g.db.Where("user_id = ?", userID).Order("id").Find(&likes).Error; err != nil {
		return nil, err
	}
	return likes, nil
}

func (g *GormStore) CreateLike(like *models.Like) error {
	return g.db.Create(like).Error
}

func (g *GormStore) DeleteLike(id uint) error {
	return g.db.Delete(&models.Like{}, id).Error
}

func (g *GormStore) CountLikes(userID uint) (int64, error) {
	var count int64
	err := g.db.Model(&models.Like{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (g *GormStore) Transact(fn func(services.Store) error) error {
	return g.db.Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}
