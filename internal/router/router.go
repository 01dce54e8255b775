package router

import (
	"time"

	"github.com/Wallacekaast/CRMESTOFADOS/internal/config"
	"github.com/Wallacekaast/CRMESTOFADOS/internal/handler"
	"github.com/Wallacekaast/CRMESTOFADOS/internal/infra"
	"github.com/Wallacekaast/CRMESTOFADOS/internal/middleware"
	"github.com/Wallacekaast/CRMESTOFADOS/internal/repository"
	"github.com/Wallacekaast/CRMESTOFADOS/internal/service"
	"github.com/Wallacekaast/CRMESTOFADOS/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, importer *infra.ImportClient, dispatcher *worker.Dispatcher) *gin.Engine {
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

	// ── Infrastructure ───────────────────────────────────────────────────────
	fileStore := infra.NewFileStore(cfg.UploadRoot())

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	timeRecordRepo := repository.NewTimeRecordRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	productionRepo := repository.NewProductionRepository(db)
	boletoRepo := repository.NewBoletoRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	memberRepo := repository.NewMemberRepository(db)
	catalogRepo := repository.NewCatalogOrderRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	employeeSvc := service.NewEmployeeService(employeeRepo, timeRecordRepo)
	inventorySvc := service.NewInventoryService(inventoryRepo)
	productSvc := service.NewProductService(productRepo, rdb, importer)
	productionSvc := service.NewProductionService(productionRepo)
	boletoSvc := service.NewBoletoService(boletoRepo)
	customerSvc := service.NewCustomerService(customerRepo)
	saleSvc := service.NewSaleService(saleRepo, productRepo, sessionRepo)
	sessionSvc := service.NewSessionService(sessionRepo)
	memberSvc := service.NewMemberService(memberRepo)
	catalogSvc := service.NewCatalogOrderService(catalogRepo, dispatcher)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	employeesH := handler.NewEmployeeHandler(employeeSvc)
	inventoryH := handler.NewInventoryHandler(inventorySvc)
	productsH := handler.NewProductHandler(productSvc)
	productionH := handler.NewProductionHandler(productionSvc)
	boletosH := handler.NewBoletoHandler(boletoSvc)
	customersH := handler.NewCustomerHandler(customerSvc)
	salesH := handler.NewSaleHandler(saleSvc)
	sessionsH := handler.NewSessionHandler(sessionSvc)
	membersH := handler.NewMemberHandler(memberSvc)
	catalogH := handler.NewCatalogOrderHandler(catalogSvc)
	uploadsH := handler.NewUploadHandler(fileStore)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, importer))
	r.Static("/files", fileStore.Root())

	api := r.Group("/api")

	// Auth (public)
	auth := api.Group("/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Public storefront: catalog browsing, member signup and order submission
	api.GET("/catalog", productsH.Catalog)
	api.POST("/catalog-orders", catalogH.Create)
	api.GET("/catalog-orders", catalogH.List)
	api.POST("/members", membersH.Create)
	api.GET("/members/:id", membersH.Get)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	protected := api.Group("", jwtMW)
	{
		staff := middleware.RequireRole("admin", "staff")
		adminOnly := middleware.RequireRole("admin")

		// Sales — the POS surface
		protected.POST("/sales/complete", staff, salesH.Complete)
		protected.POST("/sales", staff, salesH.Create)
		protected.GET("/sales", staff, salesH.List)
		protected.GET("/sales/:id", staff, salesH.Get)
		protected.GET("/sales/:id/items", staff, salesH.ListItems)
		protected.GET("/sales/:id/receipt", staff, salesH.Receipt)
		protected.POST("/sale-items", staff, salesH.CreateItems)

		// Cash register sessions
		sessions := protected.Group("/cash-register-sessions", staff)
		{
			sessions.POST("", sessionsH.Open)
			sessions.GET("", sessionsH.List)
			sessions.GET("/open", sessionsH.GetOpen)
			sessions.GET("/:id", sessionsH.Get)
			sessions.PATCH("/:id/close", sessionsH.Close)
			sessions.PATCH("/:id/totals", sessionsH.OverwriteTotals)
		}

		// Products — staff can read, admin writes
		protected.GET("/products", staff, productsH.List)
		protected.GET("/products/:id", staff, productsH.Get)
		products := protected.Group("/products", adminOnly)
		{
			products.POST("", productsH.Create)
			products.PUT("/:id", productsH.Update)
			products.DELETE("/:id", productsH.Delete)
		}
		protected.POST("/products/import", adminOnly, productsH.Import)

		// Raw-material inventory
		inventory := protected.Group("/inventory-items", staff)
		{
			inventory.POST("", inventoryH.CreateItem)
			inventory.GET("", inventoryH.ListItems)
			inventory.GET("/low-stock", inventoryH.ListLowStock)
			inventory.GET("/:id", inventoryH.GetItem)
			inventory.PUT("/:id", inventoryH.UpdateItem)
			inventory.DELETE("/:id", adminOnly, inventoryH.DeleteItem)
		}
		protected.POST("/stock-movements", staff, inventoryH.ApplyMovement)
		protected.GET("/stock-movements", staff, inventoryH.ListMovements)

		// Production orders
		production := protected.Group("/production-orders", staff)
		{
			production.POST("", productionH.Create)
			production.GET("", productionH.List)
			production.PUT("/:id", productionH.Update)
			production.DELETE("/:id", productionH.Delete)
		}

		// Boletos
		boletos := protected.Group("/boletos", staff)
		{
			boletos.POST("", boletosH.Create)
			boletos.GET("", boletosH.List)
			boletos.PUT("/:id", boletosH.Update)
			boletos.DELETE("/:id", boletosH.Delete)
		}

		// Customers
		customers := protected.Group("/customers", staff)
		{
			customers.POST("", customersH.Create)
			customers.GET("", customersH.List)
			customers.PUT("/:id", customersH.Update)
			customers.DELETE("/:id", customersH.Delete)
		}

		// Employees and time records
		employees := protected.Group("/employees", staff)
		{
			employees.POST("", employeesH.Create)
			employees.GET("", employeesH.List)
			employees.PATCH("/:id", employeesH.Update)
		}
		timeRecords := protected.Group("/time-records", staff)
		{
			timeRecords.POST("", employeesH.CreateTimeRecord)
			timeRecords.GET("", employeesH.ListTimeRecords)
			timeRecords.PUT("/:id", employeesH.UpdateTimeRecord)
			timeRecords.DELETE("/:id", employeesH.DeleteTimeRecord)
		}

		// Catalog order management — staff moves orders through the pipeline
		protected.GET("/catalog-orders/:id", staff, catalogH.Get)
		protected.PATCH("/catalog-orders/:id/status", staff, catalogH.UpdateStatus)
		protected.PATCH("/catalog-orders/:id/progress", staff, catalogH.UpdateProgress)

		// Members roster
		protected.GET("/members", staff, membersH.List)
		protected.PUT("/members/:id", staff, membersH.Update)

		// Uploads (base64 JSON), served back at /files
		protected.POST("/upload/:category", staff, uploadsH.Save)

		// User management — admin only
		users := protected.Group("/users", adminOnly)
		{
			users.POST("", authH.CreateUser)
			users.GET("", authH.ListUsers)
			users.PUT("/:id", authH.UpdateUser)
			users.DELETE("/:id", authH.DeactivateUser)
			users.PATCH("/:id/reactivate", authH.ReactivateUser)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
