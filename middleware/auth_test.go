package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/models"
	"storefront/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", AuthMiddleware(testSecret), func(c *gin.Context) {
		claims, ok := CurrentClaims(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": claims.UserID, "email": claims.Email})
	})
	r.GET("/admin", AuthMiddleware(testSecret), AdminMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	r.GET("/open", AdminMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func request(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareStoresClaims(t *testing.T) {
	token, err := utils.GenerateToken(7, "jane@example.com", models.RoleCustomer, testSecret, time.Hour)
	require.NoError(t, err)

	w := request(newEngine(), "/me", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":7,"email":"jane@example.com"}`, w.Body.String())
}

func TestAdminMiddlewareChecksRole(t *testing.T) {
	r := newEngine()

	customer, err := utils.GenerateToken(1, "jane@example.com", models.RoleCustomer, testSecret, time.Hour)
	require.NoError(t, err)
	w := request(r, "/admin", customer)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Admin role required")

	admin, err := utils.GenerateToken(2, "admin@example.com", models.RoleAdmin, testSecret, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, request(r, "/admin", admin).Code)

	w = request(r, "/open", "")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "User role not found")
}

func TestCurrentClaimsWithoutAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := CurrentClaims(c)
	assert.False(t, ok)
}
