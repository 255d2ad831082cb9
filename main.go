// Package main is the entry point of the Rentora admin backend
package main

import (
	"github.com/amirphl/Rentora/cmd"
	_ "github.com/amirphl/Rentora/docs"
)

// @title Rentora Admin API
// @version 1.0
// @description Admin backend for the Rentora car-rental marketplace.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
func main() {
	cmd.Execute()
}
