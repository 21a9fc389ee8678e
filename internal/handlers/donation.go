package handlers

import (
	"bytes"
	"errors"
	"html/template"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sura-dev/sura/db"
	"github.com/sura-dev/sura/internal/models"
	"github.com/sura-dev/sura/internal/routing"
	"github.com/sura-dev/sura/internal/utils"
	"gorm.io/gorm"
)

type CreateDonationRequest struct {
	Restaurant string `json:"restaurant" binding:"required"`
	Contact    string `json:"contact" binding:"required"`
	Location   string `json:"location" binding:"required"`
	FoodType   string `json:"foodType" binding:"required"`
	Quantity   int    `json:"quantity" binding:"required,gt=0"`
	Expiry     string `json:"expiry" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Notes      string `json:"notes"`
}

// DonationHandler exposes the routing engine over HTTP.
type DonationHandler struct {
	Engine *routing.Engine
}

func NewDonationHandler(engine *routing.Engine) *DonationHandler {
	return &DonationHandler{Engine: engine}
}

func (h *DonationHandler) Create(ctx *gin.Context) {
	var req CreateDonationRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	result, err := h.Engine.SubmitDonation(routing.DonationInput{
		Restaurant: req.Restaurant,
		Contact:    req.Contact,
		Location:   req.Location,
		FoodType:   req.FoodType,
		Quantity:   req.Quantity,
		Expiry:     req.Expiry,
		Email:      req.Email,
		Notes:      req.Notes,
	})

	if err != nil {
		log.Printf("Failed to submit donation: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	BroadcastRefresh()

	ctx.JSON(http.StatusOK, gin.H{
		"message":    result.Message,
		"email_sent": result.EmailSent,
		"request":    result.Record,
	})
}

func (h *DonationHandler) List(ctx *gin.Context) {
	var donations []models.Donation

	err := db.DB.
		Preload("Events", func(tx *gorm.DB) *gorm.DB { return tx.Order("id ASC") }).
		Order("id DESC").
		Find(&donations).Error

	if err != nil {
		log.Printf("Failed to list donations: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, donations)
}

var respondPageTmpl = template.Must(template.New("respond").Parse(`<!DOCTYPE html>
<html>
<head>
  <title>Response Recorded</title>
  <style>
    body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; display: flex; justify-content: center; align-items: center; height: 100vh; background-color: #f3f4f6; margin: 0; }
    .card { background: white; padding: 40px; border-radius: 12px; box-shadow: 0 4px 15px rgba(0,0,0,0.1); text-align: center; max-width: 400px; }
    h1 { color: #111827; font-size: 24px; margin-bottom: 10px; }
    p { color: #4b5563; line-height: 1.5; }
  </style>
</head>
<body>
  <div class="card">
    <h1>Action Recorded successfully!</h1>
    <p>{{.Message}}</p>
    <p>You can now safely close this window.</p>
  </div>
</body>
</html>`))

// Respond handles the accept/decline links embedded in NGO email. It renders
// a small HTML confirmation card because the click lands in a browser.
func (h *DonationHandler) Respond(ctx *gin.Context) {
	decision := ctx.Query("decision")

	requestID, err := utils.GetRequestID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.Engine.RecordResponse(uint(requestID), decision)

	if err != nil {
		switch {
		case errors.Is(err, routing.ErrBadDecision):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, routing.ErrNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Request not found"})
		default:
			log.Printf("Failed to record response: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	BroadcastRefresh()

	var page bytes.Buffer

	if err := respondPageTmpl.Execute(&page, gin.H{"Message": result.Message}); err != nil {
		log.Printf("Failed to render response page: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.Data(http.StatusOK, "text/html; charset=utf-8", page.Bytes())
}
