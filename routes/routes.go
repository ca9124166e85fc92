package routes

import (
	"net/http"

	"storefront/config"
	"storefront/controllers"
	_ "storefront/docs"
	"storefront/middleware"
	"storefront/models"
	"storefront/repositories"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// NewRouter builds the dev stub engine over store.
func NewRouter(cfg *config.Config, store *repositories.MemoryStore) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg.OriginURL))

	SetupRoutes(router, cfg, store)
	return router
}

func SetupRoutes(router *gin.Engine, cfg *config.Config, store *repositories.MemoryStore) {
	chatCtrl := controllers.NewChatController(store)
	adminCtrl := controllers.NewAdminController(store)
	orderCtrl := controllers.NewOrderController(store)
	userCtrl := controllers.NewUserController(store, cfg.JWTSecret, cfg.TokenExpiry())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	api := router.Group("/api")
	{
		api.GET("/chat", chatCtrl.ListChat)
		api.POST("/chat", chatCtrl.PostChat)
		api.POST("/users/login", userCtrl.Login)
	}

	auth := api.Group("/")
	auth.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		auth.GET("/users/me", userCtrl.GetMe)
		auth.PUT("/users/me", userCtrl.UpdateMe)
		auth.PUT("/users/me/password", userCtrl.ChangePassword)
		auth.POST("/orders", orderCtrl.CreateOrder)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg.JWTSecret), middleware.AdminMiddleware())
	{
		admin.GET("/stats", adminCtrl.GetStats)
		admin.POST("/chat/:guestId", adminCtrl.ReplyToGuest)
	}
}

// SeedDevUsers registers the configured customer and admin accounts.
func SeedDevUsers(cfg *config.Config, store *repositories.MemoryStore) error {
	if err := store.SeedUser(cfg.DevUserEmail, cfg.DevUserPassword, models.RoleCustomer, "Customer"); err != nil {
		return err
	}
	return store.SeedUser(cfg.DevAdminEmail, cfg.DevAdminPassword, models.RoleAdmin, "Admin")
}
