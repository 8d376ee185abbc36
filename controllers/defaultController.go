package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to the Plantora API 🌱.

The following are the endpoints for this API:

AUTH
- POST "/auth/signup" - Create user account
- POST "/auth/login" - Access user account
- GET "/auth/me" - Current session identity

PLANT
- GET "/plant" - List plants (filters: country, adminId, search, lowStock, outOfStock)
- GET "/plant/{id}" - Get plant by ID
- POST "/plant" - Create plant (admin)
- PUT "/plant/{id}" - Update plant (admin)
- DELETE "/plant/{id}" - Delete plant (admin)
- POST "/plant/{id}/image" - Upload plant image (admin)

CART
- GET "/cart" - Get my cart
- POST "/cart" - Add product to cart
- PUT "/cart/{id}/increase" - Increase quantity
- PUT "/cart/{id}/decrease" - Decrease quantity
- DELETE "/cart/product/{productId}" - Remove product line
- DELETE "/cart" - Clear cart

WISHLIST
- POST "/wishlist/toggle" - Toggle like
- GET "/wishlist" - List my wishlist
- GET "/wishlist/count" - My like count

ORDER
- POST "/order/checkout" - Convert my cart into an order
- GET "/order" - All orders (admin)
- GET "/order/mine" - My orders
- GET "/order/{orderId}" - Order by ID
- POST "/order/{orderId}/items" - Add a plant to the order
- PUT "/order/items/{itemId}/increase" - Increase item quantity
- PUT "/order/items/{itemId}/decrease" - Decrease item quantity
- DELETE "/order/items/{itemId}" - Remove item
- PUT "/order/items/{itemId}/price" - Override item price (admin)

ADMIN
- GET "/admin/report/sales" - Sales report (JSON)
- GET "/admin/report/sales/export" - Sales report (xlsx)

LIVE
- GET "/live" - Websocket feed of store changes`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}
