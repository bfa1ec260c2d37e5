package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"

	"github.com/RajaDani/antique-watches-sub001/internal/auth"
	"github.com/RajaDani/antique-watches-sub001/internal/cache"
	"github.com/RajaDani/antique-watches-sub001/internal/events"
	"github.com/RajaDani/antique-watches-sub001/internal/handler"
	"github.com/RajaDani/antique-watches-sub001/internal/infrastructure"
	"github.com/RajaDani/antique-watches-sub001/internal/middleware"
	"github.com/RajaDani/antique-watches-sub001/internal/service"

	"github.com/gin-gonic/gin"
)

func main() {
	infrastructure.InitLogger()
	cfg := infrastructure.LoadConfig()

	db, err := infrastructure.ConnectDatabase(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := infrastructure.MigrateAllSchemas(db); err != nil {
		log.Fatalf("Failed to migrate database schemas: %v", err)
	}

	seedManager := infrastructure.NewSeedDataManager(db)
	if err := seedManager.SeedAll(context.Background()); err != nil {
		log.Fatalf("Failed to setup seed data: %v", err)
	}

	tokens := auth.NewTokenService([]byte(cfg.JWTSecret))
	permissions, err := auth.NewPermissions()
	if err != nil {
		log.Fatalf("Failed to initialize permissions: %v", err)
	}

	publisher := events.NewNoopPublisher()
	if len(cfg.KafkaBrokers) > 0 {
		publisher, err = events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			log.Fatalf("Failed to connect to kafka: %v", err)
		}
	}
	defer publisher.Close()

	cartStore := cache.NewRedisCartStore(cfg.RedisAddr)

	// Services
	userService := service.NewUserService(db)
	productService := service.NewProductService(db)
	brandService := service.NewBrandService(db)
	categoryService := service.NewCategoryService(db)
	cartService := service.NewCartService(cartStore, productService)
	orderService := service.NewOrderService(db, cartStore, publisher)
	wishlistService := service.NewWishlistService(db)
	adminUserService := service.NewAdminUserService(db, tokens)
	activityLogger := service.NewActivityLogger(db)
	dashboardService := service.NewDashboardService(db)

	// Handlers
	authHandler := handler.NewAuthHandler(userService, tokens)
	productHandler := handler.NewProductHandler(productService)
	catalogHandler := handler.NewCatalogHandler(brandService, categoryService)
	cartHandler := handler.NewCartHandler(cartService)
	orderHandler := handler.NewOrderHandler(orderService)
	wishlistHandler := handler.NewWishlistHandler(wishlistService)
	adminAuthHandler := handler.NewAdminAuthHandler(adminUserService)
	adminProductHandler := handler.NewAdminProductHandler(productService, activityLogger)
	adminBrandHandler := handler.NewAdminBrandHandler(brandService, activityLogger)
	adminOrderHandler := handler.NewAdminOrderHandler(orderService, activityLogger)
	adminCustomerHandler := handler.NewAdminCustomerHandler(userService, activityLogger)
	adminUserHandler := handler.NewAdminUserHandler(adminUserService, activityLogger)
	adminDashboardHandler := handler.NewAdminDashboardHandler(dashboardService)

	r := gin.Default()

	// Public storefront routes
	api := r.Group("/api")
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/products", productHandler.List)
	api.GET("/products/:slug", productHandler.Get)
	api.GET("/brands", catalogHandler.ListBrands)
	api.GET("/brands/:slug", catalogHandler.GetBrand)
	api.GET("/categories", catalogHandler.ListCategories)

	// Authenticated storefront routes
	account := api.Group("")
	account.Use(middleware.UserAuth(tokens))
	account.GET("/auth/me", authHandler.Me)
	account.GET("/cart", cartHandler.Get)
	account.POST("/cart/items", cartHandler.AddItem)
	account.PUT("/cart/items/:productId", cartHandler.SetQuantity)
	account.DELETE("/cart/items/:productId", cartHandler.RemoveItem)
	account.DELETE("/cart", cartHandler.Clear)
	account.POST("/checkout", orderHandler.Checkout)
	account.GET("/orders", orderHandler.List)
	account.GET("/orders/:id", orderHandler.Get)
	account.PATCH("/orders/:id/cancel", orderHandler.Cancel)
	account.GET("/wishlist", wishlistHandler.List)
	account.POST("/wishlist/:productId", wishlistHandler.Add)
	account.DELETE("/wishlist/:productId", wishlistHandler.Remove)

	// Admin back-office routes
	api.POST("/admin/auth/signin", adminAuthHandler.Signin)

	admin := api.Group("/admin")
	admin.Use(middleware.AdminAuth(tokens, adminUserService))
	admin.POST("/auth/signout", adminAuthHandler.Signout)
	admin.GET("/auth/me", adminAuthHandler.Me)

	admin.GET("/dashboard",
		middleware.RequireCapability(permissions, auth.CapRead),
		adminDashboardHandler.Stats)

	admin.GET("/products",
		middleware.RequireCapability(permissions, auth.CapRead),
		adminProductHandler.List)
	admin.GET("/products/:id",
		middleware.RequireCapability(permissions, auth.CapRead),
		adminProductHandler.Get)
	admin.POST("/products",
		middleware.RequireCapability(permissions, auth.CapWrite),
		adminProductHandler.Create)
	admin.PUT("/products/:id",
		middleware.RequireCapability(permissions, auth.CapWrite),
		adminProductHandler.Update)
	admin.DELETE("/products/:id",
		middleware.RequireCapability(permissions, auth.CapDelete),
		adminProductHandler.Delete)

	admin.GET("/brands",
		middleware.RequireCapability(permissions, auth.CapRead),
		adminBrandHandler.List)
	admin.POST("/brands",
		middleware.RequireCapability(permissions, auth.CapWrite),
		adminBrandHandler.Create)
	admin.PUT("/brands/:id",
		middleware.RequireCapability(permissions, auth.CapWrite),
		adminBrandHandler.Update)
	admin.DELETE("/brands/:id",
		middleware.RequireCapability(permissions, auth.CapDelete),
		adminBrandHandler.Delete)

	admin.GET("/orders",
		middleware.RequireCapability(permissions, auth.CapRead),
		adminOrderHandler.List)
	admin.GET("/orders/:id",
		middleware.RequireCapability(permissions, auth.CapRead),
		adminOrderHandler.Get)
	admin.PUT("/orders/:id/status",
		middleware.RequireCapability(permissions, auth.CapManageOrders),
		adminOrderHandler.UpdateStatus)

	admin.GET("/customers",
		middleware.RequireCapability(permissions, auth.CapManageCustomers),
		adminCustomerHandler.List)
	admin.GET("/customers/:id",
		middleware.RequireCapability(permissions, auth.CapManageCustomers),
		adminCustomerHandler.Get)
	admin.PUT("/customers/:id",
		middleware.RequireCapability(permissions, auth.CapManageCustomers),
		adminCustomerHandler.Update)

	admin.GET("/users",
		middleware.RequireCapability(permissions, auth.CapManageAdmins),
		adminUserHandler.List)
	admin.POST("/users",
		middleware.RequireCapability(permissions, auth.CapManageAdmins),
		adminUserHandler.Create)
	admin.PUT("/users/:id",
		middleware.RequireCapability(permissions, auth.CapManageAdmins),
		adminUserHandler.Update)
	admin.GET("/activity-log",
		middleware.RequireCapability(permissions, auth.CapManageAdmins),
		adminUserHandler.ActivityLog)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	slog.Info("starting vintage watch store API", "port", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, r))
}
