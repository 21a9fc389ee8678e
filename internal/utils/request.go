package utils

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetRequestID parses the requestId query parameter carried by the
// accept/decline links embedded in NGO email.
func GetRequestID(ctx *gin.Context) (uint64, error) {
	requestIDStr := ctx.Query("requestId")

	if requestIDStr == "" {
		return 0, errors.New("Request ID not found")
	}

	requestID, err := strconv.ParseUint(requestIDStr, 10, 32)

	if err != nil {
		return 0, errors.New("Invalid Request ID")
	}

	return requestID, nil
}
