package controllers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/verdantly/plantora-api/events"
	"github.com/verdantly/plantora-api/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	defaultPlantImg   = "/img/default.jpg"
	lowStockThreshold = 5
)

// Common error response helper
func respondWithError(ctx *gin.Context, statusCode int, message string, err error) {
	errMsg := ""
	if err != nil {
		errMsg = err.Error()
	}
	ctx.JSON(statusCode, gin.H{
		"message": message,
		"error":   errMsg,
	})
}

// GetPlants lists the catalog with optional filters: country, adminId,
// search (name or country), lowStock (quantity at or below a threshold,
// default 5) and outOfStock.
func GetPlants(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var plants []models.Plant

		page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
		limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
		offset := (page - 1) * limit

		query := db.Model(&models.Plant{})

		if country := ctx.Query("country"); country != "" {
			query = query.Where("country = ?", strings.ToLower(country))
		}
		if adminID := ctx.Query("adminId"); adminID != "" {
			query = query.Where("created_by_admin_id = ?", adminID)
		}
		if search := ctx.Query("search"); search != "" {
			pattern := "%" + strings.ToLower(search) + "%"
			query = query.Where("LOWER(name) LIKE ? OR LOWER(country) LIKE ?", pattern, pattern)
		}
		if ctx.Query("outOfStock") == "true" {
			query = query.Where("quantity = 0")
		} else if ctx.Query("lowStock") != "" {
			threshold, err := strconv.Atoi(ctx.Query("lowStock"))
			if err != nil || threshold < 0 {
				threshold = lowStockThreshold
			}
			query = query.Where("quantity <= ?", threshold)
		}

		var count int64
		query.Count(&count)

		result := query.Limit(limit).Offset(offset).Find(&plants)
		if result.Error != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch plants", result.Error)
			return
		}

		ctx.JSON(http.StatusOK, gin.H{
			"plants": plants,
			"metadata": gin.H{
				"total": count,
				"page":  page,
				"limit": limit,
			},
		})
	}
}

func GetPlant(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		plantID, err := strconv.Atoi(ctx.Param("id"))
		if err != nil {
			respondWithError(ctx, http.StatusBadRequest, "Invalid plant ID", err)
			return
		}

		var plant models.Plant
		result := db.First(&plant, plantID)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				respondWithError(ctx, http.StatusNotFound, "Plant not found", nil)
			} else {
				respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve plant", result.Error)
			}
			return
		}

		ctx.JSON(http.StatusOK, plant)
	}
}

// CreatePlant adds a catalog entry owned by the calling admin. Quantity and
// discount default to zero, the image to a placeholder, and
// OriginalQuantity starts at the initial stock.
func CreatePlant(db *gorm.DB, bus *events.Bus) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var plant models.Plant
		if err := ctx.ShouldBindJSON(&plant); err != nil {
			respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
			return
		}

		actor, ok := currentActor(ctx)
		if !ok {
			respondWithError(ctx, http.StatusUnauthorized, "User not found in context", nil)
			return
		}

		plant.Country = strings.ToLower(plant.Country)
		if plant.Img == "" {
			plant.Img = defaultPlantImg
		}
		plant.SellingQuantity = 0
		plant.OriginalQuantity = plant.Quantity
		adminID := actor.ID
		plant.CreatedByAdminID = &adminID

		if err := db.Create(&plant).Error; err != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to create plant", err)
			return
		}

		bus.Publish(events.Event{Table: "plants", Action: events.ActionCreate, ID: plant.ID})
		ctx.JSON(http.StatusCreated, plant)
	}
}

// UpdatePlant merges the provided fields into the plant. Stock counters are
// admin-editable here; reservation bookkeeping happens in the engine.
func UpdatePlant(db *gorm.DB, bus *events.Bus) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		plantID, err := strconv.Atoi(ctx.Param("id"))
		if err != nil {
			respondWithError(ctx, http.StatusBadRequest, "Invalid plant ID", err)
			return
		}

		var input struct {
			Name             *string        `json:"name"`
			Price            *float64       `json:"price"`
			Discount         *int           `json:"discount"`
			Country          *string        `json:"country"`
			Img              *string        `json:"img"`
			Tags             datatypes.JSON `json:"tags"`
			Quantity         *int           `json:"quantity"`
			OriginalQuantity *int           `json:"originalQuantity"`
		}
		if err := ctx.ShouldBindJSON(&input); err != nil {
			respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
			return
		}

		var plant models.Plant
		if err := db.First(&plant, plantID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respondWithError(ctx, http.StatusNotFound, "Plant not found", nil)
			} else {
				respondWithError(ctx, http.StatusInternalServerError, "Unable to retrieve plant", err)
			}
			return
		}

		updates := map[string]any{}
		if input.Name != nil {
			updates["name"] = *input.Name
		}
		if input.Price != nil {
			updates["price"] = *input.Price
		}
		if input.Discount != nil {
			updates["discount"] = *input.Discount
		}
		if input.Country != nil {
			updates["country"] = strings.ToLower(*input.Country)
		}
		if input.Img != nil {
			updates["img"] = *input.Img
		}
		if input.Tags != nil {
			updates["tags"] = input.Tags
		}
		if input.Quantity != nil {
			updates["quantity"] = *input.Quantity
		}
		if input.OriginalQuantity != nil {
			updates["original_quantity"] = *input.OriginalQuantity
		}

		if len(updates) > 0 {
			if err := db.Model(&plant).Updates(updates).Error; err != nil {
				respondWithError(ctx, http.StatusInternalServerError, "Failed to update plant", err)
				return
			}
			bus.Publish(events.Event{Table: "plants", Action: events.ActionUpdate, ID: plant.ID})
		}

		ctx.JSON(http.StatusOK, plant)
	}
}

// DeletePlant removes the catalog entry unconditionally. Historical order
// lines keep their denormalized name and price.
func DeletePlant(db *gorm.DB, bus *events.Bus) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		plantID, err := strconv.Atoi(ctx.Param("id"))
		if err != nil {
			respondWithError(ctx, http.StatusBadRequest, "Invalid plant ID", err)
			return
		}

		result := db.Delete(&models.Plant{}, plantID)
		if result.Error != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to delete plant", result.Error)
			return
		}
		if result.RowsAffected == 0 {
			respondWithError(ctx, http.StatusNotFound, "Plant not found", nil)
			return
		}

		bus.Publish(events.Event{Table: "plants", Action: events.ActionDelete, ID: uint(plantID)})
		ctx.JSON(http.StatusOK, gin.H{"message": "Plant deleted successfully."})
	}
}

// getAWSUploader returns a configured AWS S3 uploader
func getAWSUploader() (*manager.Uploader, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO())
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	return manager.NewUploader(client), nil
}

// UploadPlantImage uploads the plant's picture to S3 and stores the
// resulting URL on the record.
func UploadPlantImage(db *gorm.DB, bus *events.Bus) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		plantID, err := strconv.Atoi(ctx.Param("id"))
		if err != nil {
			respondWithError(ctx, http.StatusBadRequest, "Invalid plant ID", err)
			return
		}

		var plant models.Plant
		if err := db.First(&plant, plantID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respondWithError(ctx, http.StatusNotFound, "Plant not found", nil)
			} else {
				respondWithError(ctx, http.StatusInternalServerError, "Failed to validate plant", err)
			}
			return
		}

		file, err := ctx.FormFile("image")
		if err != nil {
			respondWithError(ctx, http.StatusBadRequest, "No file uploaded", err)
			return
		}

		f, err := file.Open()
		if err != nil {
			respondWithError(ctx, http.StatusBadRequest, "Unable to open uploaded file", err)
			return
		}
		defer f.Close()

		uploader, err := getAWSUploader()
		if err != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to configure AWS", err)
			return
		}

		bucket := os.Getenv("S3_BUCKET")
		if bucket == "" {
			respondWithError(ctx, http.StatusInternalServerError, "Missing storage configuration", nil)
			return
		}

		// Generate a unique filename to prevent overwrites
		uniqueFilename := fmt.Sprintf("%d-%s-%s", plantID, time.Now().Format("20060102150405"), file.Filename)

		result, err := uploader.Upload(context.TODO(), &s3.PutObjectInput{
			Bucket:      aws.String(bucket),
			Key:         aws.String(uniqueFilename),
			Body:        f,
			ACL:         "public-read",
			ContentType: aws.String(file.Header.Get("Content-Type")),
		})
		if err != nil {
			log.Printf("Error uploading file %s: %v", file.Filename, err)
			respondWithError(ctx, http.StatusInternalServerError, "Failed to upload image", err)
			return
		}

		if err := db.Model(&plant).Update("img", result.Location).Error; err != nil {
			respondWithError(ctx, http.StatusInternalServerError, "Failed to save image URL", err)
			return
		}

		bus.Publish(events.Event{Table: "plants", Action: events.ActionUpdate, ID: plant.ID})
		ctx.JSON(http.StatusOK, gin.H{"url": result.Location})
	}
}
