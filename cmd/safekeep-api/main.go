package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m1z23r/drift/pkg/drift"
	"github.com/m1z23r/drift/pkg/middleware"
	"github.com/velimir/safekeep-api/internal/config"
	"github.com/velimir/safekeep-api/internal/database"
	"github.com/velimir/safekeep-api/internal/handlers"
	authmw "github.com/velimir/safekeep-api/internal/middleware"
	"github.com/velimir/safekeep-api/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	jwtService := services.NewJWTService(cfg.JWTSecret, cfg.JWTAccessExpiry, cfg.JWTRefreshExpiry)
	userService := services.NewUserService(db)
	tokenService := services.NewTokenService(db)
	vaultService := services.NewVaultService(db)
	allocationService := services.NewAllocationService(db)
	assetService := services.NewAssetService(db)
	paymentService := services.NewPaymentService(db, allocationService)

	authHandler := handlers.NewAuthHandler(userService, tokenService, jwtService)
	vaultHandler := handlers.NewVaultHandler(vaultService)
	lockerHandler := handlers.NewLockerHandler(vaultService, allocationService)
	transactionHandler := handlers.NewTransactionHandler(assetService, paymentService)

	app := drift.New()

	if cfg.IsProduction() {
		app.SetMode(drift.ReleaseMode)
	} else {
		app.SetMode(drift.DebugMode)
	}

	app.Use(middleware.Recovery())
	app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		MaxAge:       86400,
	}))
	app.Use(middleware.BodyParser())

	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.RefreshToken)
	auth.Post("/logout", authHandler.Logout)

	protected := api.Group("")
	protected.Use(authmw.Auth(jwtService))

	protected.Post("/vaults/create", vaultHandler.Create)
	protected.Get("/vaults/list", vaultHandler.List)

	protected.Post("/lockers/vaults/:vaultId", lockerHandler.Create)
	protected.Get("/lockers/available", lockerHandler.ListAvailable)
	protected.Post("/lockers/:lockerId/allocate", lockerHandler.Allocate)

	protected.Post("/transactions/allocations/:allocationId/assets", transactionHandler.AddAsset)
	protected.Get("/transactions/allocations/:allocationId/assets", transactionHandler.ListAssets)
	protected.Delete("/transactions/assets/:assetId", transactionHandler.RemoveAsset)
	protected.Post("/transactions/allocations/:allocationId/pay_rent", transactionHandler.PayRent)
	protected.Get("/transactions/allocations/:allocationId/history", transactionHandler.ListTransactions)
	protected.Get("/transactions/allocations/:allocationId/payments", transactionHandler.ListPayments)

	api.Get("/health", func(c *drift.Context) {
		_ = c.JSON(200, map[string]string{"status": "ok"})
	})

	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		for range ticker.C {
			_ = tokenService.CleanupExpired(context.Background())
		}
	}()

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		log.Printf("Server starting on %s", addr)
		if err := app.Run(addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
}
