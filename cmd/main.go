package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	configs "github.com/Payphone-Digital/storefront/config"
	"github.com/Payphone-Digital/storefront/internal/handler"
	"github.com/Payphone-Digital/storefront/internal/middleware"
	"github.com/Payphone-Digital/storefront/internal/repository"
	"github.com/Payphone-Digital/storefront/internal/router"
	"github.com/Payphone-Digital/storefront/internal/service"
	"github.com/Payphone-Digital/storefront/pkg/cache"
	"github.com/Payphone-Digital/storefront/pkg/circuit"
	"github.com/Payphone-Digital/storefront/pkg/database"
	"github.com/Payphone-Digital/storefront/pkg/logger"
	"github.com/Payphone-Digital/storefront/pkg/mailer"
	"github.com/Payphone-Digital/storefront/pkg/metrics"
	"github.com/Payphone-Digital/storefront/pkg/redis"
	"github.com/Payphone-Digital/storefront/pkg/storage"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	config, err := configs.LoadConfig()
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}

	// Initialize Zap logger
	if err := logger.InitLogger(config); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	if config.App.Environment == "production" || !config.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.GetLogger().Info("Application starting",
		zap.String("app_name", config.App.Name),
		zap.String("environment", config.App.Environment),
	)

	db, err := database.NewPostgresDB(database.Config{
		Host:            config.Database.Host,
		Port:            config.Database.Port,
		User:            config.Database.User,
		Password:        config.Database.Password,
		Database:        config.Database.Name,
		SSLMode:         config.Database.SSLMode,
		MaxIdleConns:    config.Database.MaxIdleConns,
		MaxOpenConns:    config.Database.MaxOpenConns,
		ConnMaxLifetime: config.Database.ConnMaxLifetime,
		ConnMaxIdleTime: config.Database.ConnMaxIdleTime,
		Debug:           config.App.Debug,
	})
	if err != nil {
		logger.GetLogger().Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.CloseDB(db)

	if err := database.AutoMigrate(db); err != nil {
		logger.GetLogger().Fatal("Failed to run database migrations", zap.Error(err))
	}
	logger.GetLogger().Info("Database migrated successfully")

	// Seed data may already exist; a failure here is not fatal
	if err := database.Seed(db, database.AdminSeed{
		Name:     config.Seed.AdminName,
		Email:    config.Seed.AdminEmail,
		Password: config.Seed.AdminPassword,
	}); err != nil {
		logger.GetLogger().Error("Failed to seed database", zap.Error(err))
	}

	redisClient, err := redis.NewClient(config)
	if err != nil {
		logger.GetLogger().Warn("Redis unavailable, falling back to in-memory cache", zap.Error(err))
		redisClient = redis.NewDisabledClient()
	}
	defer redisClient.Close()

	var m *metrics.Metrics
	if config.Metrics.Enabled {
		m = metrics.New(config.Metrics.Namespace)
	}

	breakers := circuit.NewBreakerRegistry(circuit.DefaultConfig(), logger.GetLogger())

	mail := mailer.New(config.Mail, breakers.GetOrCreate("mailer"))

	startupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	imageStore, err := storage.NewS3ImageStore(startupCtx, storage.Config{
		Endpoint:      config.Storage.Endpoint,
		Region:        config.Storage.Region,
		Bucket:        config.Storage.Bucket,
		AccessKey:     config.Storage.AccessKey,
		SecretKey:     config.Storage.SecretKey,
		PublicBaseURL: config.Storage.PublicBaseURL,
		UsePathStyle:  config.Storage.UsePathStyle,
	}, breakers.GetOrCreate("storage"))
	cancel()
	if err != nil {
		logger.GetLogger().Fatal("Failed to initialize object storage", zap.Error(err))
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	addressRepo := repository.NewAddressRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	subCategoryRepo := repository.NewSubCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)

	// Services
	cacheService := service.NewCacheService(redisClient, cache.NewCache(), m)
	jwtService := service.NewJWTService(config.JWT)
	uploadService := service.NewUploadService(imageStore, config.Upload.MaxSize, m)
	userService := service.NewUserService(userRepo, jwtService, mail, cacheService, uploadService, service.UserServiceConfig{
		FrontendURL:    config.App.FrontendURL,
		OTPExpiration:  config.OTP.Expiration,
		OTPMaxAttempts: config.OTP.MaxAttempts,
	}, m)
	categoryService := service.NewCategoryService(categoryRepo, cacheService, m)
	subCategoryService := service.NewSubCategoryService(subCategoryRepo, categoryRepo, m)
	productService := service.NewProductService(productRepo, categoryRepo, subCategoryRepo, m)
	addressService := service.NewAddressService(addressRepo)

	r := router.NewRouter(
		router.Handlers{
			Auth:        handler.NewAuthHandler(userService, jwtService, config.Cookie),
			User:        handler.NewUserHandler(userService),
			Category:    handler.NewCategoryHandler(categoryService),
			SubCategory: handler.NewSubCategoryHandler(subCategoryService),
			Product:     handler.NewProductHandler(productService),
			Address:     handler.NewAddressHandler(addressService),
			Upload:      handler.NewUploadHandler(uploadService),
			Cache:       handler.NewCacheHandler(cacheService),
			Health:      handler.NewHealthHandler(db, redisClient),
		},
		middleware.NewValidationMiddleware(),
		middleware.NewJWTMiddleware(jwtService),
		m,
		config,
	).SetupRoutes()

	srv := &http.Server{
		Addr:              ":" + config.App.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.GetLogger().Info("Server starting",
			zap.String("port", config.App.Port),
			zap.String("host", "0.0.0.0"),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.GetLogger().Fatal("Failed to start server",
				zap.Error(err),
				zap.String("port", config.App.Port),
			)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.GetLogger().Info("Shutting down server...")

	shutdownCtx, stop := context.WithTimeout(context.Background(), 15*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.GetLogger().Error("Server forced to shutdown", zap.Error(err))
	}
}
