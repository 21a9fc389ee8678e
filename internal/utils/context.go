package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/sura-dev/sura/internal/middleware"
	"github.com/sura-dev/sura/internal/types"
)

func GetCurrentRestaurant(ctx *gin.Context) (middleware.AuthenticatedRestaurant, error) {
	restaurant, exists := ctx.Get(types.ContextRestaurantKey)

	if !exists {
		return middleware.AuthenticatedRestaurant{}, fmt.Errorf("Restaurant not authenticated")
	}

	authenticated, ok := restaurant.(middleware.AuthenticatedRestaurant)

	if !ok {
		return middleware.AuthenticatedRestaurant{}, fmt.Errorf("Invalid restaurant type in context")
	}

	return authenticated, nil
}
