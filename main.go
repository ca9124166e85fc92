package main

import (
	"os"

	"storefront/commands"
)

// @title Storefront Dev API
// @version 1.0
// @description In-memory stand-in for the storefront backend: chat, admin stats, orders and user profile.
// @host localhost:5000
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT token.
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
