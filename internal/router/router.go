package router

import (
	"time"

	"tenaypos/internal/config"
	"tenaypos/internal/handler"
	"tenaypos/internal/middleware"
	"tenaypos/internal/repository"
	"tenaypos/internal/service"
	"tenaypos/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	movementRepo := repository.NewCashMovementRepository(db)
	cutRepo := repository.NewCashCutRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	configRepo := repository.NewStoreConfigRepository(db)
	inventoryRepo := repository.NewInventoryMovementRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	productSvc := service.NewProductService(productRepo, rdb, time.Duration(cfg.PriceCacheSeconds)*time.Second)
	saleSvc := service.NewSaleService(saleRepo, productRepo, customerRepo, inventoryRepo)
	inventorySvc := service.NewInventoryService(inventoryRepo, productRepo)
	cashboxSvc := service.NewCashboxService(movementRepo, cutRepo)
	cutSvc := service.NewCashCutService(cutRepo, saleRepo, movementRepo)
	customerSvc := service.NewCustomerService(customerRepo, movementRepo)
	orderSvc := service.NewOrderService(orderRepo, dispatcher)
	configSvc := service.NewStoreConfigService(configRepo)
	reportSvc := service.NewReportService(saleRepo)
	ticketSvc := service.NewTicketService(saleRepo, cutRepo, configRepo, cfg.PDFStoragePath)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	productsH := handler.NewProductsHandler(productSvc)
	salesH := handler.NewSalesHandler(saleSvc, ticketSvc)
	cashboxH := handler.NewCashboxHandler(cashboxSvc, cutSvc, ticketSvc)
	customersH := handler.NewCustomersHandler(customerSvc)
	ordersH := handler.NewOrdersHandler(orderSvc)
	configH := handler.NewConfigHandler(configSvc)
	reportsH := handler.NewReportsHandler(reportSvc)
	inventoryH := handler.NewInventoryHandler(inventorySvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Storefront intake — the only unauthenticated write
	r.POST("/v1/orders", middleware.PublicRateLimiter(), ordersH.Place)

	// Protected routes — fine-grained permission checks happen in the
	// service layer against the actor's permission set.
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		sales := v1.Group("/sales")
		{
			sales.POST("", salesH.Register)
			sales.GET("", salesH.List)
			sales.GET("/:id", salesH.Get)
			sales.DELETE("/:id", salesH.Cancel)
			sales.GET("/:id/ticket", salesH.Ticket)
		}

		cashbox := v1.Group("/cashbox")
		{
			cashbox.POST("/movements", cashboxH.RegisterMovement)
			cashbox.GET("/movements", cashboxH.ListMovements)
			cashbox.GET("/summary", cashboxH.Summary)
			cashbox.POST("/cuts", cashboxH.CreateCut)
			cashbox.GET("/cuts", cashboxH.ListCuts)
			cashbox.GET("/cuts/:id", cashboxH.GetCut)
			cashbox.GET("/cuts/:id/pdf", cashboxH.CutPDF)
		}

		products := v1.Group("/products")
		{
			products.POST("", productsH.Create)
			products.GET("", productsH.List)
			products.GET("/:id", productsH.Get)
			products.PUT("/:id", productsH.Update)
			products.GET("/barcode/:barcode", productsH.PriceLookup)
		}

		inventory := v1.Group("/inventory")
		{
			inventory.POST("/add", inventoryH.AddStock)
			inventory.POST("/adjust", inventoryH.AdjustStock)
			inventory.GET("/kardex", inventoryH.Kardex)
			inventory.GET("/report", inventoryH.Report)
		}

		customers := v1.Group("/customers")
		{
			customers.POST("", customersH.Create)
			customers.GET("", customersH.List)
			customers.GET("/:id", customersH.Get)
			customers.PUT("/:id", customersH.Update)
			customers.POST("/:id/payments", customersH.RegisterPayment)
			customers.GET("/:id/payments", customersH.ListPayments)
		}

		orders := v1.Group("/orders")
		{
			orders.GET("", ordersH.List)
			orders.GET("/:id", ordersH.Get)
			orders.PATCH("/:id/status", ordersH.UpdateStatus)
		}

		users := v1.Group("/users")
		{
			users.POST("", authH.CreateUser)
			users.GET("", authH.ListUsers)
			users.PUT("/:id", authH.UpdateUser)
		}

		v1.GET("/config", configH.Get)
		v1.PUT("/config", configH.Update)

		v1.GET("/reports/sales", reportsH.Sales)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
