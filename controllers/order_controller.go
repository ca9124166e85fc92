package controllers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"storefront/models"
	"storefront/repositories"

	"github.com/gin-gonic/gin"
)

type OrderController struct {
	store *repositories.MemoryStore
}

func NewOrderController(store *repositories.MemoryStore) *OrderController {
	return &OrderController{store: store}
}

// CreateOrder godoc
// @Summary Place an order
// @Description Stores the order. A reused orderId is rejected with 409.
// @Tags Orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.OrderSubmission true "Order"
// @Success 201 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /api/orders [post]
func (ctrl *OrderController) CreateOrder(c *gin.Context) {
	var req models.OrderSubmission
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Success: false, Message: "Invalid request", Error: err.Error()})
		return
	}

	if strings.TrimSpace(req.OrderID) == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Success: false, Message: "orderId is required"})
		return
	}
	if len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Success: false, Message: "Order has no items"})
		return
	}
	if req.Status == "" {
		req.Status = models.OrderStatusPending
	}

	userID := currentUserID(c)
	if err := ctrl.store.Orders.Create(userID, req); err != nil {
		if errors.Is(err, repositories.ErrDuplicateOrder) {
			c.JSON(http.StatusConflict, models.ErrorResponse{Success: false, Message: "Order already submitted"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Success: false, Message: "Failed to create order"})
		return
	}

	log.Printf("[Orders] order %s placed by user %d (%d items, total %.2f)", req.OrderID, userID, len(req.Items), req.Total)

	c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "Order placed successfully",
		Data: models.OrderConfirmation{
			OrderID: req.OrderID,
			Status:  req.Status,
		},
	})
}
