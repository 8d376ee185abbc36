package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/verdantly/plantora-api/models"
)

func RequireAdmin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		val, exists := ctx.Get("actor")
		if !exists {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "User not found in context"})
			return
		}

		actor, ok := val.(models.Actor)
		if !ok || !actor.IsAdmin() {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Admin access required"})
			return
		}

		ctx.Next()
	}
}
