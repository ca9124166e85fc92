package controllers

import (
	"log"
	"net/http"
	"strings"

	"storefront/models"
	"storefront/repositories"

	"github.com/gin-gonic/gin"
)

type ChatController struct {
	store *repositories.MemoryStore
}

func NewChatController(store *repositories.MemoryStore) *ChatController {
	return &ChatController{store: store}
}

// ListChat godoc
// @Summary List a guest's chat messages
// @Tags Chat
// @Produce json
// @Param guestId query string true "Guest ID"
// @Success 200 {array} models.ChatMessage
// @Failure 400 {object} models.ErrorResponse
// @Router /api/chat [get]
func (ctrl *ChatController) ListChat(c *gin.Context) {
	guestID := strings.TrimSpace(c.Query("guestId"))
	if guestID == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Success: false, Message: "guestId is required"})
		return
	}

	c.JSON(http.StatusOK, ctrl.store.Chats.ListByGuest(guestID))
}

// PostChat godoc
// @Summary Send a customer chat message
// @Tags Chat
// @Accept json
// @Produce json
// @Param request body models.ChatPostRequest true "Chat message"
// @Success 201 {object} models.ChatMessage
// @Failure 400 {object} models.ErrorResponse
// @Router /api/chat [post]
func (ctrl *ChatController) PostChat(c *gin.Context) {
	var req models.ChatPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Success: false, Message: "Invalid request", Error: err.Error()})
		return
	}

	msg := ctrl.store.Chats.Append(models.ChatMessage{
		GuestID:         req.GuestID,
		Sender:          models.AuthorCustomer,
		CustomerName:    req.CustomerName,
		Message:         req.Message,
		ClientMessageID: req.ClientMessageID,
	})
	log.Printf("[Chat] %s wrote to conversation %s", req.CustomerName, req.GuestID)

	c.JSON(http.StatusCreated, msg)
}
