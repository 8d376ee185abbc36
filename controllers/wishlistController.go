package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/verdantly/plantora-api/services"
)

func ToggleLike(wishlist *services.WishlistService) gin.HandlerFunc {
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

		liked, err := wishlist.Toggle(actor.ID, body.ProductID)
		if err != nil {
			sendErrorResponse(ctx, serviceErrorStatus(err), err.Error())
			return
		}

		sendJSONResponse(ctx, http.StatusOK, gin.H{"liked": liked})
	}
}

func GetWishlist(wishlist *services.WishlistService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		actor, ok := currentActor(ctx)
		if !ok {
			sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
			return
		}

		likes, err := wishlist.List(actor.ID)
		if err != nil {
			log.Println("Failed to fetch wishlist:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch wishlist")
			return
		}

		sendJSONResponse(ctx, http.StatusOK, gin.H{"likes": likes})
	}
}

func GetLikeCount(wishlist *services.WishlistService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		actor, ok := currentActor(ctx)
		if !ok {
			sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
			return
		}

		count, err := wishlist.Count(actor.ID)
		if err != nil {
			log.Println("Failed to count likes:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to count likes")
			return
		}

		sendJSONResponse(ctx, http.StatusOK, gin.H{"count": count})
	}
}
