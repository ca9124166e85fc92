package controllers

import (
	"log"
	"net/http"

	"storefront/middleware"
	"storefront/models"
	"storefront/repositories"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	store *repositories.MemoryStore
}

func NewAdminController(store *repositories.MemoryStore) *AdminController {
	return &AdminController{store: store}
}

// GetStats godoc
// @Summary Dashboard counters
// @Description Number of registered users and of guest conversations
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.AdminStats
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /api/admin/stats [get]
func (ctrl *AdminController) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, ctrl.store.Stats())
}

// ReplyToGuest godoc
// @Summary Reply to a guest conversation
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param guestId path string true "Guest ID"
// @Param request body models.AdminReplyRequest true "Reply"
// @Success 201 {object} models.ChatMessage
// @Failure 400 {object} models.ErrorResponse
// @Router /api/admin/chat/{guestId} [post]
func (ctrl *AdminController) ReplyToGuest(c *gin.Context) {
	var req models.AdminReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Success: false, Message: "Invalid request", Error: err.Error()})
		return
	}

	guestID := c.Param("guestId")
	admin := "unknown"
	if claims, ok := middleware.CurrentClaims(c); ok {
		admin = claims.Email
	}
	msg := ctrl.store.Chats.Append(models.ChatMessage{
		GuestID:      guestID,
		Sender:       models.AuthorAdmin,
		CustomerName: "Admin",
		Message:      req.Message,
	})
	log.Printf("[Chat] admin %s replied to %s", admin, guestID)

	c.JSON(http.StatusCreated, msg)
}
