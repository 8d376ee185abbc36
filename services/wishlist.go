package services

import (
	"errors"

	"github.com/verdantly/plantora-api/events"
	"github.com/verdantly/plantora-api/models"
)

// WishlistService keeps per-user liked plants, independent of stock and
// order logic. Entries carry a denormalized product snapshot.
type WishlistService struct {
	store Store
	bus   *events.Bus
}

func NewWishlistService(store Store, bus *events.Bus) *WishlistService {
	return &WishlistService{store: store, bus: bus}
}

// Toggle flips the (user, product) entry and reports the resulting state:
// true when the product is now liked. Toggling twice is a no-op round trip.
func (w *WishlistService) Toggle(userID, productID uint) (bool, error) {
	existing, err := w.store.Like(userID, productID)
	if err == nil {
		if err := w.store.DeleteLike(existing.ID); err != nil {
			return false, err
		}
		publish(w.bus, "likes", events.ActionDelete, existing.ID)
		return false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return false, err
	}

	plant, err := w.store.Plant(productID)
	if err != nil {
		return false, err
	}

	like := &models.Like{
		UserID:    userID,
		ProductID: productID,
		Name:      plant.Name,
		Price:     plant.Price,
		Img:       plant.Img,
	}
	if err := w.store.CreateLike(like); err != nil {
		return false, err
	}
	publish(w.bus, "likes", events.ActionCreate, like.ID)
	return true, nil
}

func (w *WishlistService) IsLiked(userID, productID uint) (bool, error) {
	_, err := w.store.Like(userID, productID)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return false, err
}

func (w *WishlistService) Count(userID uint) (int64, error) {
	return w.store.CountLikes(userID)
}

func (w *WishlistService) List(userID uint) ([]models.Like, error) {
	return w.store.Likes(userID)
}
