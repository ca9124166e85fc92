package controllers

import (
	"errors"
	"net/http"
	"time"

	"storefront/middleware"
	"storefront/models"
	"storefront/repositories"
	"storefront/utils"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	store  *repositories.MemoryStore
	secret string
	expiry time.Duration
}

func NewUserController(store *repositories.MemoryStore, secret string, expiry time.Duration) *UserController {
	return &UserController{store: store, secret: secret, expiry: expiry}
}

// Login godoc
// @Summary User login
// @Description Login with email and password
// @Tags Users
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login Request"
// @Success 200 {object} models.LoginResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /api/users/login [post]
func (ctrl *UserController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Success: false, Message: "Invalid request", Error: err.Error()})
		return
	}

	user, err := ctrl.store.Users.FindByEmail(req.Email)
	if err != nil || !utils.VerifyPassword(user.Password, req.Password) {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Success: false, Message: "Invalid credentials"})
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Email, user.Role, ctrl.secret, ctrl.expiry)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Success: false, Message: "Failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, models.LoginResponse{Token: token, User: user.Profile()})
}

// GetMe godoc
// @Summary Current user profile
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.UserProfile
// @Failure 401 {object} models.ErrorResponse
// @Router /api/users/me [get]
func (ctrl *UserController) GetMe(c *gin.Context) {
	user, err := ctrl.store.Users.FindByID(currentUserID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Success: false, Message: "User not found"})
		return
	}

	c.JSON(http.StatusOK, user.Profile())
}

// UpdateMe godoc
// @Summary Update the current user's profile
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.UpdateProfileRequest true "Profile"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /api/users/me [put]
func (ctrl *UserController) UpdateMe(c *gin.Context) {
	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Success: false, Message: "Invalid request", Error: err.Error()})
		return
	}

	user, err := ctrl.store.Users.UpdateProfile(currentUserID(c), req)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Success: false, Message: "User not found"})
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Profile updated successfully",
		Data:    user.Profile(),
	})
}

// ChangePassword godoc
// @Summary Change the current user's password
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.ChangePasswordRequest true "Passwords"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /api/users/me/password [put]
func (ctrl *UserController) ChangePassword(c *gin.Context) {
	var req models.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Success: false, Message: "Invalid request", Error: err.Error()})
		return
	}

	userID := currentUserID(c)
	user, err := ctrl.store.Users.FindByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Success: false, Message: "User not found"})
		return
	}

	if !utils.VerifyPassword(user.Password, req.CurrentPassword) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Success: false, Message: "Current password is incorrect"})
		return
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, utils.ErrWeakPassword) {
			status = http.StatusBadRequest
		}
		c.JSON(status, models.ErrorResponse{Success: false, Message: err.Error()})
		return
	}

	if err := ctrl.store.Users.UpdatePassword(userID, hash); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Success: false, Message: "Failed to update password"})
		return
	}

	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Password updated successfully"})
}

// currentUserID is zero when the request carries no verified claims.
func currentUserID(c *gin.Context) int {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		return 0
	}
	return claims.UserID
}
