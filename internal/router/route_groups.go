package router

import (
	"gaming_club_backend/internal/handlers"
	"gaming_club_backend/internal/middleware"
	"gaming_club_backend/internal/models"

	"github.com/gin-gonic/gin"
)

// SetupMemberRoutes sets up the member directory routes.
// Reads and mutations are admin operations; the search endpoint is open to
// staff screens used at the front desk.
func SetupMemberRoutes(authenticatedGroup *gin.RouterGroup, memberHandler *handlers.MemberHandler) {
	memberWriteRoutes := authenticatedGroup.Group("/members")
	memberWriteRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
	{
		memberWriteRoutes.POST("", memberHandler.CreateMember)
		memberWriteRoutes.PUT("/:id", memberHandler.UpdateMember)
		memberWriteRoutes.DELETE("/:id", memberHandler.DeleteMember)
	}

	authenticatedGroup.GET("/members", middleware.RoleAuthMiddleware(models.RoleAdmin), memberHandler.GetMembers)
	authenticatedGroup.GET("/members/:id", middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleUser), memberHandler.GetMemberByID)
	authenticatedGroup.POST("/members/search", middleware.RoleAuthMiddleware(models.RoleAdmin), memberHandler.SearchMember)
}

// SetupGameRoutes sets up the game catalog routes.
func SetupGameRoutes(authenticatedGroup *gin.RouterGroup, gameHandler *handlers.GameHandler) {
	gameWriteRoutes := authenticatedGroup.Group("/games")
	gameWriteRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
	{
		gameWriteRoutes.POST("", gameHandler.CreateGame)
		gameWriteRoutes.PUT("/:id", gameHandler.UpdateGame)
		gameWriteRoutes.DELETE("/:id", gameHandler.DeleteGame)
	}

	authenticatedGroup.GET("/games", gameHandler.GetGames)
	authenticatedGroup.GET("/games/:id", gameHandler.GetGameByID)
}

// SetupProductRoutes sets up the product catalog routes.
func SetupProductRoutes(authenticatedGroup *gin.RouterGroup, productHandler *handlers.ProductHandler) {
	productWriteRoutes := authenticatedGroup.Group("/products")
	productWriteRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
	{
		productWriteRoutes.POST("", productHandler.CreateProduct)
		productWriteRoutes.PUT("/:id", productHandler.UpdateProduct)
		productWriteRoutes.DELETE("/:id", productHandler.DeleteProduct)
	}

	authenticatedGroup.GET("/products", productHandler.GetProducts)
	authenticatedGroup.GET("/products/:id", productHandler.GetProductByID)
}

// SetupRechargeRoutes sets up the balance top-up routes.
func SetupRechargeRoutes(authenticatedGroup *gin.RouterGroup, rechargeHandler *handlers.RechargeHandler) {
	rechargeRoutes := authenticatedGroup.Group("/recharges")
	{
		rechargeRoutes.POST("", rechargeHandler.CreateRecharge)
		rechargeRoutes.GET("", middleware.RoleAuthMiddleware(models.RoleAdmin), rechargeHandler.GetRecharges)
		rechargeRoutes.GET("/:id", rechargeHandler.GetRechargeByID)
		rechargeRoutes.GET("/member/:id", rechargeHandler.GetRechargesByMember)
	}
}

// SetupTransactionRoutes sets up the purchase history routes.
func SetupTransactionRoutes(authenticatedGroup *gin.RouterGroup, txnHandler *handlers.TransactionHandler) {
	txnRoutes := authenticatedGroup.Group("/transactions")
	{
		txnRoutes.GET("", middleware.RoleAuthMiddleware(models.RoleAdmin), txnHandler.GetTransactions)
		txnRoutes.GET("/:id", txnHandler.GetTransactionByID)
		txnRoutes.GET("/member/:id", txnHandler.GetTransactionsByMember)
	}
}

// SetupPurchaseRoutes sets up the purchase routes. Each purchase is one
// opaque operation; the server owns the balance/stock bookkeeping.
func SetupPurchaseRoutes(authenticatedGroup *gin.RouterGroup, purchaseHandler *handlers.PurchaseHandler) {
	purchaseRoutes := authenticatedGroup.Group("/purchases")
	{
		purchaseRoutes.POST("/game", purchaseHandler.PurchaseGame)
		purchaseRoutes.POST("/product", purchaseHandler.PurchaseProduct)
	}
}
