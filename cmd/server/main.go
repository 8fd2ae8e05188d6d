package main

import (
	"log"
	"net/http"
	"time"

	"boardshelf/backend/internal/auth"
	"boardshelf/backend/internal/config"
	"boardshelf/backend/internal/database"
	"boardshelf/backend/internal/handler"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	// Swagger imports
	_ "boardshelf/backend/docs" // This is important for swag to find the generated docs

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func init() {
	config.LoadConfig()
}

// @title           Boardshelf API
// @version         1.0
// @description     REST API for the boardgame catalog.
// @host            localhost:8080
// @BasePath        /api
// @securityDefinitions.apiKey TokenAuth
// @in header
// @name x-authentication-token
func main() {
	// Connect to the database
	database.Connect(config.AppConfig.DatabaseURL)

	tokens := auth.NewTokenManager(
		config.AppConfig.JWTSecret,
		time.Duration(config.AppConfig.TokenTTLHours)*time.Hour,
	)

	router := gin.Default()

	// The token travels in a custom header; browsers only see it if CORS
	// explicitly exposes it.
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, auth.TokenHeader)
	corsConfig.ExposeHeaders = []string{auth.TokenHeader}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// API routes
	handler.RegisterRoutes(router, tokens)

	addr := ":" + config.AppConfig.Port
	log.Printf("Server is running on %s", addr)
	log.Fatal(router.Run(addr))
}
