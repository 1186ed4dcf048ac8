package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	auditapp "github.com/retailflow/backend/internal/application/audit"
	catalogapp "github.com/retailflow/backend/internal/application/catalog"
	partnerapp "github.com/retailflow/backend/internal/application/partner"
	tradeapp "github.com/retailflow/backend/internal/application/trade"
	"github.com/retailflow/backend/internal/infrastructure/alert"
	"github.com/retailflow/backend/internal/infrastructure/auth"
	"github.com/retailflow/backend/internal/infrastructure/config"
	"github.com/retailflow/backend/internal/infrastructure/logger"
	"github.com/retailflow/backend/internal/infrastructure/persistence"
	"github.com/retailflow/backend/internal/interfaces/http/handler"
	"github.com/retailflow/backend/internal/interfaces/http/middleware"
	"github.com/retailflow/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting RetailFlow backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	db, err := persistence.NewDatabase(&cfg.Database, gormLogLevel(cfg.Log.Level))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	clientRepo := persistence.NewGormClientRepository(db.DB)
	accountRepo := persistence.NewGormClientAccountRepository(db.DB)
	transactionRepo := persistence.NewGormAccountTransactionRepository(db.DB)
	saleRepo := persistence.NewGormSaleRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	orderRepo := persistence.NewGormPurchaseOrderRepository(db.DB)
	historyRepo := persistence.NewGormPurchaseHistoryRepository(db.DB)
	transferRepo := persistence.NewGormStockTransferRepository(db.DB)
	quoteRepo := persistence.NewGormQuoteRepository(db.DB)
	auditRepo := persistence.NewGormAuditRepository(db.DB)

	txManager := persistence.NewGormTransactionManager(db.DB)
	recorder := persistence.NewAuditRecorder(auditRepo, log)

	// Low-stock alerts are published over Redis pub/sub when enabled
	var redisClient *redis.Client
	var notifier catalogapp.LowStockNotifier = alert.NewNopNotifier()
	if cfg.Alert.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Error closing redis client", zap.Error(err))
			}
		}()
		notifier = alert.NewRedisNotifier(redisClient, cfg.Alert.Channel, log)
		log.Info("Low-stock alerts enabled",
			zap.String("redis", cfg.Redis.Addr()),
			zap.String("channel", cfg.Alert.Channel),
		)
	}

	// Application services
	refGen := tradeapp.NewReferenceGenerator(saleRepo, orderRepo, transferRepo, quoteRepo)
	stockService := catalogapp.NewStockService(productRepo)
	productService := catalogapp.NewProductService(productRepo)
	clientService := partnerapp.NewClientService(clientRepo)
	accountService := partnerapp.NewAccountService(txManager, accountRepo, transactionRepo, clientRepo)
	saleService := tradeapp.NewSaleService(txManager, saleRepo, paymentRepo, refGen, clientService, accountService, stockService, notifier, recorder)
	orderService := tradeapp.NewOrderService(txManager, orderRepo, transferRepo, historyRepo, refGen, stockService, notifier, recorder)
	transferService := tradeapp.NewTransferService(txManager, transferRepo, orderRepo, productRepo, refGen, stockService, recorder)
	quoteService := tradeapp.NewQuoteService(txManager, quoteRepo, refGen, stockService, saleService, recorder)
	auditService := auditapp.NewService(auditRepo)

	jwtService := auth.NewJWTService(cfg.JWT)

	// HTTP handlers
	productHandler := handler.NewProductHandler(productService, orderService)
	clientHandler := handler.NewClientHandler(clientService, accountService)
	saleHandler := handler.NewSaleHandler(saleService)
	orderHandler := handler.NewPurchaseOrderHandler(orderService)
	transferHandler := handler.NewTransferHandler(transferService)
	quoteHandler := handler.NewQuoteHandler(quoteService)
	auditHandler := handler.NewAuditHandler(auditService)
	systemHandler := handler.NewSystemHandler(db, redisClient, cfg.App.Name, cfg.App.Env)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORS())
	engine.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths:  []string{"/health", "/healthz", "/ready", "/api/v1/health"},
		Logger:     log,
	}))
	engine.Use(middleware.TenantMiddleware())

	r := router.NewRouter(engine)
	r.Register(
		systemHandler,
		productHandler,
		clientHandler,
		saleHandler,
		orderHandler,
		transferHandler,
		quoteHandler,
		auditHandler,
	)
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// gormLogLevel maps the application log level to GORM's logger levels
func gormLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "debug":
		return gormlogger.Info
	case "info", "warn":
		return gormlogger.Warn
	default:
		return gormlogger.Error
	}
}
