package main

import (
	"context"
	"log"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"artdesk/internal/config"
	"artdesk/internal/database"
	"artdesk/internal/domain/order"
	"artdesk/internal/media"
	"artdesk/internal/middleware"
	"artdesk/internal/notify"
	"artdesk/internal/pkg/textimg"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is empty")
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("database connect failed", zap.Error(err))
	}
	if err := database.Migrate(db, &order.Order{}); err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}

	store, err := media.NewStore(cfg.DataDir)
	if err != nil {
		logger.Fatal("media store init failed", zap.Error(err))
	}

	emailNotifier := notify.NewEmailNotifier(
		cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFromName,
		cfg.OperatorEmails, cfg.BaseURL+"/admin", logger,
	)
	dispatcher := notify.NewDispatcher(emailNotifier, notify.NewSMSNotifier(logger))

	orderRepo := order.NewRepository(db)
	orderService := order.NewService(orderRepo, store, dispatcher,
		textimg.FileRenderer{}, cfg.BaseURL, logger)

	clientHandler := order.NewHandler(orderService)
	adminHandler := order.NewAdminHandler(orderService)
	deliveryHandler := order.NewDeliveryHandler(orderService,
		filepath.Join("public", "delivery.html"))

	sweeper := media.NewSweeper(store, cfg.RetentionWindow, logger)
	stopSweeper := sweeper.Start(context.Background(), cfg.SweepInterval)
	defer close(stopSweeper)

	r := gin.New()
	r.Use(middleware.RequestLogger(logger), middleware.CORS())

	r.Static("/uploads", store.UploadsDir)
	r.Static("/deliveries", store.DeliveriesDir)
	r.StaticFile("/", filepath.Join("public", "index.html"))
	r.StaticFile("/admin", filepath.Join("public", "admin.html"))

	api := r.Group("/api")
	{
		order.RegisterClientRoutes(api, clientHandler)

		admin := api.Group("/admin")
		admin.Use(middleware.AdminSecret(cfg.AdminSecret, logger))
		order.RegisterAdminRoutes(admin, adminHandler)
	}

	delivery := r.Group("/d")
	order.RegisterDeliveryRoutes(delivery, deliveryHandler)

	logger.Info("server starting", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
