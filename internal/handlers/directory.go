package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sura-dev/sura/db"
	"github.com/sura-dev/sura/internal/models"
)

func ListNGOs(ctx *gin.Context) {
	var ngos []models.NGO

	if err := db.DB.Order("name ASC").Find(&ngos).Error; err != nil {
		log.Printf("Failed to list NGOs: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, ngos)
}

func ListRestaurants(ctx *gin.Context) {
	var restaurants []models.Restaurant

	if err := db.DB.Order("name ASC").Find(&restaurants).Error; err != nil {
		log.Printf("Failed to list restaurants: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	// Credential fields never leave the projection.
	out := make([]RestaurantResponse, 0, len(restaurants))

	for _, r := range restaurants {
		out = append(out, restaurantResponse(r))
	}

	ctx.JSON(http.StatusOK, out)
}
