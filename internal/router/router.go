package router

import (
	"database/sql"

	"gaming_club_backend/internal/handlers"
	"gaming_club_backend/internal/middleware"
	"gaming_club_backend/internal/repositories"
	"gaming_club_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, db *sql.DB) {
	// Initialize Repositories
	memberRepo := repositories.NewMemberRepository(db)
	gameRepo := repositories.NewGameRepository(db)
	productRepo := repositories.NewProductRepository(db)
	rechargeRepo := repositories.NewRechargeRepository(db)
	txnRepo := repositories.NewTransactionRepository(db)

	// Initialize Services
	directory := services.NewMemberDirectory(memberRepo, db)
	authService := services.NewAuthService(directory, memberRepo)
	memberService := services.NewMemberService(memberRepo, rechargeRepo, txnRepo, gameRepo, db)
	gameService := services.NewGameService(gameRepo, db)
	productService := services.NewProductService(productRepo, db)
	rechargeService := services.NewRechargeService(rechargeRepo, memberRepo, db)
	txnService := services.NewTransactionService(txnRepo)
	purchaseService := services.NewPurchaseService(memberRepo, gameRepo, productRepo, txnRepo, db)

	// Initialize Handlers
	authHandler := handlers.NewAuthHandler(authService)
	memberHandler := handlers.NewMemberHandler(memberService)
	gameHandler := handlers.NewGameHandler(gameService)
	productHandler := handlers.NewProductHandler(productService)
	rechargeHandler := handlers.NewRechargeHandler(rechargeService)
	txnHandler := handlers.NewTransactionHandler(txnService)
	purchaseHandler := handlers.NewPurchaseHandler(purchaseService)

	apiV1 := engine.Group("/api/v1")

	// Public authentication routes
	SetupPublicAuthRoutes(apiV1.Group("/auth"), authHandler)

	// Authenticated routes
	authenticated := apiV1.Group("")
	authenticated.Use(middleware.AuthMiddleware())
	{
		SetupAuthenticatedAuthRoutes(authenticated.Group("/auth"), authHandler)

		SetupMemberRoutes(authenticated, memberHandler)
		SetupGameRoutes(authenticated, gameHandler)
		SetupProductRoutes(authenticated, productHandler)
		SetupRechargeRoutes(authenticated, rechargeHandler)
		SetupTransactionRoutes(authenticated, txnHandler)
		SetupPurchaseRoutes(authenticated, purchaseHandler)
	}
}

// SetupPublicAuthRoutes registers the routes that need no token.
func SetupPublicAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.POST("/register", authHandler.Register)
	group.POST("/login", authHandler.Login)
}

// SetupAuthenticatedAuthRoutes registers the session routes.
func SetupAuthenticatedAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.POST("/logout", authHandler.Logout)
	group.GET("/me", authHandler.GetCurrentMember)
}
