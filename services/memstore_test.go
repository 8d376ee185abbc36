package services

import (
	"sort"

	"github.com/verdantly/plantora-api/models"
)

// memStore is an in-memory Store for tests. Reads return copies so a caller
// mutating a record without saving it cannot leak the change back, and
// Transact restores a snapshot on error like a real rollback.
type memStore struct {
	plants     map[uint]models.Plant
	orders     map[uint]models.Order
	orderLines map[uint]models.OrderItem
	cartLines  map[uint]models.CartItem
	likes      map[uint]models.Like
	nextID     uint
}

func newMemStore() *memStore {
	return &memStore{
		plants:     make(map[uint]models.Plant),
		orders:     make(map[uint]models.Order),
		orderLines: make(map[uint]models.OrderItem),
		cartLines:  make(map[uint]models.CartItem),
		likes:      make(map[uint]models.Like),
	}
}

func (m *memStore) newID() uint {
	m.nextID++
	return m.nextID
}

func (m *memStore) Plant(id uint) (*models.Plant, error) {
	plant, ok := m.plants[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &plant, nil
}

func (m *memStore) SavePlant(plant *models.Plant) error {
	if plant.ID == 0 {
		plant.ID = m.newID()
	}
	m.plants[plant.ID] = *plant
	return nil
}

func (m *memStore) Order(id uint) (*models.Order, error) {
	order, ok := m.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &order, nil
}

func (m *memStore) Orders() ([]models.Order, error) {
	orders := make([]models.Order, 0, len(m.orders))
	for _, order := range m.orders {
		orders = append(orders, order)
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].ID < orders[j].ID })
	return orders, nil
}

func (m *memStore) CreateOrder(order *models.Order) error {
	if order.ID == 0 {
		order.ID = m.newID()
	}
	m.orders[order.ID] = *order
	return nil
}

func (m *memStore) SaveOrderTotal(orderID uint, total float64) error {
	order, ok := m.orders[orderID]
	if !ok {
		return ErrNotFound
	}
	order.Total = total
	m.orders[orderID] = order
	return nil
}

func (m *memStore) OrderLine(orderID, productID uint) (*models.OrderItem, error) {
	for _, line := range m.orderLines {
		if line.OrderID == orderID && line.ProductID == productID {
			found := line
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memStore) OrderLineByID(id uint) (*models.OrderItem, error) {
	line, ok := m.orderLines[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &line, nil
}

func (m *memStore) OrderLines(orderID uint) ([]models.OrderItem, error) {
	var lines []models.OrderItem
	for _, line := range m.orderLines {
		if line.OrderID == orderID {
			lines = append(lines, line)
		}
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].ID < lines[j].ID })
	return lines, nil
}

func (m *memStore) AllOrderLines() ([]models.OrderItem, error) {
	lines := make([]models.OrderItem, 0, len(m.orderLines))
	for _, line := range m.orderLines {
		lines = append(lines, line)
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].ID < lines[j].ID })
	return lines, nil
}

func (m *memStore) CreateOrderLine(line *models.OrderItem) error {
	if line.ID == 0 {
		line.ID = m.newID()
	}
	m.orderLines[line.ID] = *line
	return nil
}

func (m *memStore) SaveOrderLine(line *models.OrderItem) error {
	if _, ok := m.orderLines[line.ID]; !ok {
		return ErrNotFound
	}
	m.orderLines[line.ID] = *line
	return nil
}

func (m *memStore) DeleteOrderLine(id uint) error {
	delete(m.orderLines, id)
	return nil
}

func (m *memStore) CartLine(userID, productID uint) (*models.CartItem, error) {
	for _, line := range m.cartLines {
		if line.UserID == userID && line.ProductID == productID {
			found := line
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memStore) CartLineByID(id uint) (*models.CartItem, error) {
	line, ok := m.cartLines[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &line, nil
}

func (m *memStore) CartLines(userID uint) ([]models.CartItem, error) {
	var lines []models.CartItem
	for _, line := range m.cartLines {
		if line.UserID == userID {
			lines = append(lines, line)
		}
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].ID < lines[j].ID })
	return lines, nil
}

func (m *memStore) CreateCartLine(line *models.CartItem) error {
	if line.ID == 0 {
		line.ID = m.newID()
	}
	m.cartLines[line.ID] = *line
	return nil
}

func (m *memStore) SaveCartLine(line *models.CartItem) error {
	if _, ok := m.cartLines[line.ID]; !ok {
		return ErrNotFound
	}
	m.cartLines[line.ID] = *line
	return nil
}

func (m *memStore) DeleteCartLine(id uint) error {
	delete(m.cartLines, id)
	return nil
}

func (m *memStore) ClearCart(userID uint) error {
	for id, line := range m.cartLines {
		if line.UserID == userID {
			delete(m.cartLines, id)
		}
	}
	return nil
}

func (m *memStore) Like(userID, productID uint) (*models.Like, error) {
	for _, like := range m.likes {
		if like.UserID == userID && like.ProductID == productID {
			found := like
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memStore) Likes(userID uint) ([]models.Like, error) {
	var likes []models.Like
	for _, like := range m.likes {
		if like.UserID == userID {
			likes = append(likes, like)
		}
	}
	sort.Slice(likes, func(i, j int) bool { return likes[i].ID < likes[j].ID })
	return likes, nil
}

func (m *memStore) CreateLike(like *models.Like) error {
	if like.ID == 0 {
		like.ID = m.newID()
	}
	m.likes[like.ID] = *like
	return nil
}

func (m *memStore) DeleteLike(id uint) error {
	delete(m.likes, id)
	return nil
}

func (m *memStore) CountLikes(userID uint) (int64, error) {
	var count int64
	for _, like := range m.likes {
		if like.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (m *memStore) snapshot() *memStore {
	clone := newMemStore()
	clone.nextID = m.nextID
	for id, plant := range m.plants {
		clone.plants[id] = plant
	}
	for id, order := range m.orders {
		clone.orders[id] = order
	}
	for id, line := range m.orderLines {
		clone.orderLines[id] = line
	}
	for id, line := range m.cartLines {
		clone.cartLines[id] = line
	}
	for id, like := range m.likes {
		clone.likes[id] = like
	}
	return clone
}

func (m *memStore) restore(snap *memStore) {
	m.nextID = snap.nextID
	m.plants = snap.plants
	m.orders = snap.orders
	m.orderLines = snap.orderLines
	m.cartLines = snap.cartLines
	m.likes = snap.likes
}

func (m *memStore) Transact(fn func(Store) error) error {
	snap := m.snapshot()
	if err := fn(m); err != nil {
		m.restore(snap)
		return err
	}
	return nil
}

// Test fixtures.

func (m *memStore) seedPlant(name string, price float64, discount, quantity int) *models.Plant {
	plant := &models.Plant{
		Name:             name,
		Price:            price,
		Discount:         discount,
		Country:          "india",
		Quantity:         quantity,
		OriginalQuantity: quantity,
	}
	_ = m.SavePlant(plant)
	return plant
}

func (m *memStore) seedOrder(userID uint) *models.Order {
	order := &models.Order{UserID: userID}
	_ = m.CreateOrder(order)
	return order
}

func (m *memStore) seedCartLine(userID uint, plant *models.Plant, qty int) *models.CartItem {
	line := &models.CartItem{
		UserID:        userID,
		ProductID:     plant.ID,
		Name:          plant.Name,
		Price:         plant.DiscountedPrice(),
		OriginalPrice: plant.Price,
		Discount:      plant.Discount,
		Qty:           qty,
	}
	_ = m.CreateCartLine(line)
	return line
}
