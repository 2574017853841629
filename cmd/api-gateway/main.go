package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/hackreg-api/api/swagger"
	"github.com/noah-isme/hackreg-api/internal/handler"
	"github.com/noah-isme/hackreg-api/internal/middleware"
	"github.com/noah-isme/hackreg-api/internal/notify"
	"github.com/noah-isme/hackreg-api/internal/repository"
	"github.com/noah-isme/hackreg-api/internal/service"
	"github.com/noah-isme/hackreg-api/internal/sheets"
	"github.com/noah-isme/hackreg-api/pkg/cache"
	"github.com/noah-isme/hackreg-api/pkg/config"
	"github.com/noah-isme/hackreg-api/pkg/database"
	"github.com/noah-isme/hackreg-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/hackreg-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/hackreg-api/pkg/middleware/requestid"
	"github.com/noah-isme/hackreg-api/pkg/storage"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
)

// @title HackReg API
// @version 1.0.0
// @description Hackathon/internship registration and payment service
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewDual(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect database", "error", err)
	}
	defer db.Close()
	if !db.Elevated() {
		logr.Warn("elevated database credential not configured; payment linking will fail")
	}

	var redisClient *redis.Client
	if client, err := cache.NewRedis(cfg.Redis); err != nil {
		logr.Sugar().Warnw("redis unavailable, referral cache disabled", "error", err)
	} else {
		redisClient = client
		defer redisClient.Close() //nolint:errcheck
	}

	var dispatcher notify.Dispatcher
	if cfg.Notify.Enabled {
		awsDispatcher, err := notify.NewAWSDispatcher(context.Background(), cfg.Notify.AWSRegion, cfg.Notify.SenderEmail, logr)
		if err != nil {
			logr.Sugar().Fatalw("failed to init notification dispatcher", "error", err)
		}
		dispatcher = awsDispatcher
	}

	var sheetSink *sheets.Appender
	if cfg.Sheet.Enabled {
		store, err := storage.NewLocalStorage(cfg.Sheet.StorageDir)
		if err != nil {
			logr.Sugar().Fatalw("failed to init sheet storage", "error", err)
		}
		sheetSink = sheets.NewAppender(store, cfg.Sheet.FileName, cfg.Sheet.Workers, logr)
		sheetSink.Start(context.Background())
		defer sheetSink.Stop()
	}

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	applicantRepo := repository.NewApplicantRepository(db)
	referralRepo := repository.NewReferralRepository(db)
	familyRepo := repository.NewFamilyRepository(db)
	adminUserRepo := repository.NewAdminUserRepository(db)

	var sink service.SheetSink
	if sheetSink != nil {
		sink = sheetSink
	}
	registrationSvc := service.NewRegistrationService(applicantRepo, sink, validate, logr)
	referralSvc := service.NewReferralService(referralRepo, redisClient, cfg.Referral.CacheTTL, metricsSvc, logr)
	paymentSvc := service.NewPaymentService(applicantRepo, validate, logr)
	reminderSvc := service.NewReminderService(applicantRepo, dispatcher, cfg.Notify.ResumeURL, cfg.OutboundTimeout, logr)
	familySvc := service.NewFamilyService(familyRepo, validate, logr)
	authSvc := service.NewAuthService(adminUserRepo, validate, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	adminSvc := service.NewAdminService(applicantRepo, nil, nil, logr)

	registrationHandler := handler.NewRegistrationHandler(registrationSvc, metricsSvc)
	paymentHandler := handler.NewPaymentHandler(paymentSvc, metricsSvc)
	familyHandler := handler.NewFamilyHandler(familySvc)
	reminderHandler := handler.NewReminderHandler(reminderSvc)
	referralHandler := handler.NewReferralHandler(referralSvc)
	authHandler := handler.NewAuthHandler(authSvc)
	adminHandler := handler.NewAdminHandler(adminSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))
	r.Use(middleware.Timeout(cfg.OutboundTimeout))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.POST("/register", registrationHandler.Register)
		api.POST("/register/family", familyHandler.Record)
		api.POST("/register/update-ref", paymentHandler.UpdateReference)
		api.GET("/payment-context", paymentHandler.Context)
		api.POST("/send-payment-reminder", reminderHandler.Send)
		api.POST("/validate-referral", referralHandler.Validate)

		admin := api.Group("/admin")
		admin.POST("/login", authHandler.Login)
		admin.GET("/applicants", middleware.JWT(authSvc), adminHandler.List)
		admin.GET("/applicants/export", middleware.JWT(authSvc), adminHandler.Export)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
