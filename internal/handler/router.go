package handler

import (
	"boardshelf/backend/internal/auth"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the API routes. Privileged routes require the full
// chain: who is this, is the admin role present, was the authorised flag
// actually set.
func RegisterRoutes(router *gin.Engine, tokens *auth.TokenManager) {
	authed := auth.Authenticate(tokens)
	admin := auth.AdminCheck()
	check := auth.RequireAuthorised()

	api := router.Group("/api")
	{
		accounts := api.Group("/accounts")
		{
			accounts.POST("/login", Login(tokens))
			accounts.POST("", CreateAccount)
			accounts.GET("", authed, admin, check, GetAccounts)
			accounts.GET("/own", authed, GetOwnAccount)
			accounts.PUT("/own", authed, UpdateOwnAccount)
			accounts.GET("/:id", authed, admin, check, GetAccountByID)
			accounts.DELETE("/:id", authed, admin, check, DeleteAccount)
		}

		boardgames := api.Group("/boardgames")
		{
			boardgames.GET("", GetBoardgames)
			boardgames.POST("", authed, admin, check, CreateBoardgame)
			boardgames.PUT("/:id", authed, admin, check, UpdateBoardgame)
			boardgames.DELETE("/:id", authed, admin, check, DeleteBoardgame)
		}

		categories := api.Group("/categories")
		{
			categories.GET("", GetCategories)
		}
	}
}
