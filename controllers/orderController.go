package controllers

import (
	"errors"
	"log"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/verdantly/plantora-api/models"
	"github.com/verdantly/plantora-api/services"
	"gorm.io/gorm"
)

// authorizeOrder checks that the actor owns the order or is an admin.
func authorizeOrder(db *gorm.DB, actor models.Actor, orderID uint) (int, error) {
	var order models.Order
	if err := db.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return http.StatusNotFound, errors.New("order not found")
		}
		return http.StatusInternalServerError, err
	}
	if order.UserID != actor.ID && !actor.IsAdmin() {
		return http.StatusForbidden, errors.New("not your order")
	}
	return http.StatusOK, nil
}

// authorizeOrderItem resolves the line and authorizes against its order.
func authorizeOrderItem(db *gorm.DB, actor models.Actor, itemID uint) (*models.OrderItem, int, error) {
	var line models.OrderItem
	if err := db.First(&line, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, http.StatusNotFound, errors.New("order item not found")
		}
		return nil, http.StatusInternalServerError, err
	}
	if status, err := authorizeOrder(db, actor, line.OrderID); err != nil {
		return nil, status, err
	}
	return &line, http.StatusOK, nil
}

// Checkout converts the actor's cart into an order. All-or-nothing: short
// stock on any line rejects the whole checkout.
func Checkout(engine *services.Engine) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		actor, ok := currentActor(ctx)
		if !ok {
			sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
			return
		}

		order, err := engine.Checkout(actor.ID)
		if err != nil {
			sendErrorResponse(ctx, serviceErrorStatus(err), err.Error())
			return
		}

		sendJSONResponse(ctx, http.StatusCreated, gin.H{
			"message": "Order placed successfully.",
			"order":   order,
		})
	}
}

// GetOrders lists every order, paginated, admin only.
func GetOrders(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var orders []models.Order

		page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
		limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "15"))
		offset := (page - 1) * limit

		sortOrder := ctx.DefaultQuery("sort", "desc")
		if sortOrder != "asc" && sortOrder != "desc" {
			sortOrder = "desc"
		}

		query := db.Preload("OrderItems")
		if search := ctx.Query("search"); search != "" {
			query = query.Where("id LIKE ?", "%"+search+"%")
		}
		query = query.Order("created_at " + sortOrder)

		result := query.Limit(limit).Offset(offset).Find(&orders)
		if result.Error != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch orders", result.Error)
			return
		}

		var count int64
		countQuery := db.Model(&models.Order{})
		if search := ctx.Query("search"); search != "" {
			countQuery = countQuery.Where("id LIKE ?", "%"+search+"%")
		}
		countQuery.Count(&count)

		previousPage := page - 1
		nextPage := page + 1
		totalPages := math.Ceil(float64(count) / float64(limit))

		ctx.JSON(http.StatusOK, gin.H{
			"orders": orders,
			"metadata": gin.H{
				"total":        count,
				"currentPage":  page,
				"limit":        limit,
				"hasPrevPage":  previousPage > 0,
				"hasNextPage":  int(totalPages) > page,
				"previousPage": previousPage,
				"nextPage":     nextPage,
			},
		})
	}
}

// GetMyOrders lists the actor's own orders.
func GetMyOrders(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		actor, ok := currentActor(ctx)
		if !ok {
			sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
			return
		}

		sortOrder := ctx.DefaultQuery("sort", "desc")
		if sortOrder != "asc" && sortOrder != "desc" {
			sortOrder = "desc"
		}

		var orders []models.Order
		result := db.Preload("OrderItems").
			Where("user_id = ?", actor.ID).
			Order("created_at " + sortOrder).
			Find(&orders)
		if result.Error != nil {
			log.Println(result.Error)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch orders.")
			return
		}

		sendJSONResponse(ctx, http.StatusOK, gin.H{"orders": orders})
	}
}

func GetOrderByID(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		actor, ok := currentActor(ctx)
		if !ok {
			sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
			return
		}

		orderID, err := strconv.Atoi(ctx.Param("orderId"))
		if err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse orderId")
			return
		}

		if status, err := authorizeOrder(db, actor, uint(orderID)); err != nil {
			sendErrorResponse(ctx, status, err.Error())
			return
		}

		var order models.Order
		if result := db.Preload("OrderItems").First(&order, orderID); result.Error != nil {
			log.Println(result.Error)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch order.")
			return
		}

		sendJSONResponse(ctx, http.StatusOK, gin.H{"order": order})
	}
}

// AddOrderItem reserves one unit of a plant for the order; an existing line
// for the plant grows instead of duplicating.
func AddOrderItem(db *gorm.DB, engine *services.Engine) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		actor, ok := currentActor(ctx)
		if !ok {
			sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
			return
		}

		orderID, err := strconv.Atoi(ctx.Param("orderId"))
		if err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse orderId")
			return
		}

		var body struct {
			ProductID uint `json:"productId" binding:"required"`
		}
		if err := ctx.ShouldBindJSON(&body); err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
			return
		}

		if status, err := authorizeOrder(db, actor, uint(orderID)); err != nil {
			sendErrorResponse(ctx, status, err.Error())
			return
		}

		line, err := engine.AddLineItem(uint(orderID), body.ProductID)
		if err != nil {
			sendErrorResponse(ctx, serviceErrorStatus(err), err.Error())
			return
		}

		sendJSONResponse(ctx, http.StatusOK, gin.H{
			"message": line.Name + " added to the order",
			"item":    line,
		})
	}
}

func IncreaseOrderItemQty(db *gorm.DB, engine *services.Engine) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		actor, ok := currentActor(ctx)
		if !ok {
			sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
			return
		}

		itemID, err := strconv.Atoi(ctx.Param("itemId"))
		if err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse itemId")
			return
		}

		line, status, err := authorizeOrderItem(db, actor, uint(itemID))
		if err != nil {
			sendErrorResponse(ctx, status, err.Error())
			return
		}

		if err := engine.IncreaseLineQty(line.ID); err != nil {
			sendErrorResponse(ctx, serviceErrorStatus(err), err.Error())
			return
		}

		sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Quantity increased"})
	}
}

func DecreaseOrderItemQty(db *gorm.DB, engine *services.Engine) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		actor, ok := currentActor(ctx)
		if !ok {
			sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
			return
		}

		itemID, err := strconv.Atoi(ctx.Param("itemId"))
		if err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse itemId")
			return
		}

		line, status, err := authorizeOrderItem(db, actor, uint(itemID))
		if err != nil {
			sendErrorResponse(ctx, status, err.Error())
			return
		}

		if err := engine.DecreaseLineQty(line.ID); err != nil {
			sendErrorResponse(ctx, serviceErrorStatus(err), err.Error())
			return
		}

		sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Quantity decreased"})
	}
}

func RemoveOrderItem(db *gorm.DB, engine *services.Engine) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		actor, ok := currentActor(ctx)
		if !ok {
			sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
			return
		}

		itemID, err := strconv.Atoi(ctx.Param("itemId"))
		if err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse itemId")
			return
		}

		line, status, err := authorizeOrderItem(db, actor, uint(itemID))
		if err != nil {
			sendErrorResponse(ctx, status, err.Error())
			return
		}

		if err := engine.RemoveLineItem(line.ID); err != nil {
			sendErrorResponse(ctx, serviceErrorStatus(err), err.Error())
			return
		}

		sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Item removed from order"})
	}
}

// SetOrderItemPrice overrides a line's price snapshot. Admin only.
func SetOrderItemPrice(engine *services.Engine) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		itemID, err := strconv.Atoi(ctx.Param("itemId"))
		if err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse itemId")
			return
		}

		var body struct {
			Price float64 `json:"price" binding:"required,gte=0"`
		}
		if err := ctx.ShouldBindJSON(&body); err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
			return
		}

		if err := engine.SetLinePrice(uint(itemID), body.Price); err != nil {
			sendErrorResponse(ctx, serviceErrorStatus(err), err.Error())
			return
		}

		sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Price updated"})
	}
}
