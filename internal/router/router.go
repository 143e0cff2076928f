package router

import (
	"time"

	"sareepos/internal/config"
	"sareepos/internal/handler"
	"sareepos/internal/infra"
	"sareepos/internal/middleware"
	"sareepos/internal/repository"
	"sareepos/internal/service"
	"sareepos/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, smtpCB *infra.CircuitBreaker) *gin.Engine {
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
	profileRepo := repository.NewProfileRepository(db)
	productRepo := repository.NewProductRepository(db)
	billRepo := repository.NewBillRepository(db)
	vendorBillRepo := repository.NewVendorBillRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	movementRepo := repository.NewStockMovementRepository(db)
	reportRepo := repository.NewReportRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(profileRepo, cfg)
	productSvc := service.NewProductService(productRepo, movementRepo, rdb)
	cartSvc := service.NewCartService(service.NewRedisCartStore(rdb), productRepo)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	billingSvc := service.NewBillingService(billRepo, productRepo, movementRepo, cartSvc, dispatcher)
	vendorBillSvc := service.NewVendorBillService(vendorBillRepo, productRepo, movementRepo)
	expenseSvc := service.NewExpenseService(expenseRepo)
	reportSvc := service.NewReportService(reportRepo, rdb)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	profilesH := handler.NewProfilesHandler(authSvc)
	productsH := handler.NewProductsHandler(productSvc)
	priceH := handler.NewPriceCheckHandler(productRepo, rdb)
	cartH := handler.NewCartHandler(cartSvc)
	billingH := handler.NewBillingHandler(billingSvc)
	vendorBillsH := handler.NewVendorBillsHandler(vendorBillSvc)
	expensesH := handler.NewExpensesHandler(expenseSvc)
	reportsH := handler.NewReportsHandler(reportSvc, cfg)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, smtpCB))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		anyStaff := middleware.RequireRole("founder", "salesman", "accounting")

		// Price check — every role scans labels at the counter
		v1.GET("/price/:sku", anyStaff, priceH.GetPriceBySKU)

		// Cart + checkout — the sale workflow
		sales := middleware.RequireRole("founder", "salesman")
		v1.GET("/cart", sales, cartH.Get)
		v1.POST("/cart", sales, cartH.Add)
		v1.PATCH("/cart/:sku", sales, cartH.UpdateQuantity)
		v1.DELETE("/cart/:sku", sales, cartH.Remove)
		v1.POST("/bills/checkout", sales, billingH.Checkout)

		// Bills — all roles read; edit and delete are founder-only
		v1.GET("/bills", anyStaff, billingH.List)
		v1.GET("/bills/:id", anyStaff, billingH.Get)
		v1.PUT("/bills/:id", middleware.RequireRole("founder"), billingH.Update)
		v1.DELETE("/bills/:id", middleware.RequireRole("founder"), billingH.Delete)

		// Products — all roles read, founder writes
		v1.GET("/products", anyStaff, productsH.List)
		v1.GET("/products/:id", anyStaff, productsH.Get)
		prods := v1.Group("/products", middleware.RequireRole("founder"))
		{
			prods.POST("", productsH.Create)
			prods.PUT("/:id", productsH.Update)
			prods.DELETE("/:id", productsH.Delete)
			prods.PATCH("/:id/stock", productsH.AdjustStock)
		}

		// Vendor bills — purchase stock-in, accounting and founder
		backOffice := middleware.RequireRole("founder", "accounting")
		vb := v1.Group("/vendor-bills", backOffice)
		{
			vb.POST("", vendorBillsH.Create)
			vb.GET("", vendorBillsH.List)
			vb.GET("/:id", vendorBillsH.Get)
		}

		// Expenses — accounting and founder
		exp := v1.Group("/expenses", backOffice)
		{
			exp.POST("", expensesH.Create)
			exp.GET("", expensesH.List)
			exp.PUT("/:id", expensesH.Update)
			exp.DELETE("/:id", expensesH.Delete)
		}

		// Reports — accounting and founder
		rep := v1.Group("/reports", backOffice)
		{
			rep.GET("/summary", reportsH.Summary)
			rep.GET("/daily-sales", reportsH.DailySales)
			rep.GET("/gst", reportsH.GST)
			rep.GET("/gst/pdf", reportsH.GSTPDF)
			rep.GET("/profit-loss", reportsH.ProfitLoss)
		}

		// Staff profiles — founder only
		profiles := v1.Group("/profiles", middleware.RequireRole("founder"))
		{
			profiles.POST("", profilesH.Create)
			profiles.GET("", profilesH.List)
			profiles.PUT("/:id", profilesH.Update)
			profiles.DELETE("/:id", profilesH.Deactivate)
			profiles.PATCH("/:id/reactivate", profilesH.Reactivate)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
