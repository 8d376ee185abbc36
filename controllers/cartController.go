package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/verdantly/plantora-api/services"
)

// serviceErrorStatus maps service sentinels onto HTTP statuses. Reservation
// conflicts come back as 409 so the client can show a retryable notice.
func serviceErrorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrOutOfStock), errors.Is(err, services.ErrStockLimitReached):
		return http.StatusConflict
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrEmptyCart):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func AddToCart(cart *services.CartService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		actor, ok := currentActor(ctx)
		if !ok {
			sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
			return
		}

		var body struct {
			ProductID uint `json:"productId" binding:"required"`
		}
		if err := ctx.ShouldBindJSON(&body); err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
			return
		}

		line, err := cart.AddToCart(actor.ID, body.ProductID)
		if err != nil {
			sendErrorResponse(ctx, serviceErrorStatus(err), err.Error())
			return
		}

		sendJSONResponse(ctx, http.StatusOK, gin.H{
			"message": line.Name + " added to cart",
			"item":    line,
		})
	}
}

func GetCart(cart *services.CartService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		actor, ok := currentActor(ctx)
		if !ok {
			sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
			return
		}

		lines, err := cart.Lines(actor.ID)
		if err != nil {
			log.Println("Failed to fetch cart:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch cart")
			return
		}

		sendJSONResponse(ctx, http.StatusOK, gin.H{"items": lines})
	}
}

func IncreaseCartQty(cart *services.CartService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		actor, ok := currentActor(ctx)
		if !ok {
			sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
			return
		}

		cartID, err := strconv.Atoi(ctx.Param("id"))
		if err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, "Invalid cart item ID")
			return
		}

		if err := cart.IncreaseQty(actor.ID, uint(cartID)); err != nil {
			sendErrorResponse(ctx, serviceErrorStatus(err), err.Error())
			return
		}

		sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Quantity increased"})
	}
}

func DecreaseCartQty(cart *services.CartService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		actor, ok := currentActor(ctx)
		if !ok {
			sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
			return
		}

		cartID, err := strconv.Atoi(ctx.Param("id"))
		if err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, "Invalid cart item ID")
			return
		}

		if err := cart.DecreaseQty(actor.ID, uint(cartID)); err != nil {
			sendErrorResponse(ctx, serviceErrorStatus(err), err.Error())
			return
		}

		sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Quantity decreased"})
	}
}

func RemoveCartProduct(cart *services.CartService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		actor, ok := currentActor(ctx)
		if !ok {
			sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
			return
		}

		productID, err := strconv.Atoi(ctx.Param("productId"))
		if err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, "Invalid product ID")
			return
		}

		if err := cart.RemoveByProduct(actor.ID, uint(productID)); err != nil {
			sendErrorResponse(ctx, serviceErrorStatus(err), err.Error())
			return
		}

		sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Item removed from cart"})
	}
}

func ClearCart(cart *services.CartService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		actor, ok := currentActor(ctx)
		if !ok {
			sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
			return
		}

		if err := cart.Clear(actor.ID); err != nil {
			log.Println("Failed to clear cart:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to clear cart")
			return
		}

		sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}
