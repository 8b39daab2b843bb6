package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/dentabook/dentist-booking-api/internal/app"
	"github.com/dentabook/dentist-booking-api/internal/config"
	"github.com/dentabook/dentist-booking-api/internal/handlers"
	"github.com/dentabook/dentist-booking-api/internal/middleware"
	"github.com/dentabook/dentist-booking-api/internal/routes"
	"github.com/dentabook/dentist-booking-api/internal/services"
	"github.com/dentabook/dentist-booking-api/internal/storage"
	"github.com/dentabook/dentist-booking-api/internal/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables.")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	// --- Database Connection ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := storage.Connect(ctx, cfg.MongoURI)
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer client.Disconnect(context.Background())
	db := client.Database(cfg.MongoDatabase)

	if err := storage.EnsureIndexes(ctx, db); err != nil {
		logger.Fatal("Failed to create indexes", zap.Error(err))
	}
	logger.Info("Connected to MongoDB", zap.String("database", cfg.MongoDatabase))

	// --- Stores & Services ---
	userStore := storage.NewUserStore(db)
	dentistStore := storage.NewDentistStore(db)
	bookingStore := storage.NewBookingStore(db)

	tokens := utils.NewTokenManager(cfg.JWTSecret, time.Duration(cfg.JWTExpireHours)*time.Hour)
	authSvc := services.NewAuthService(userStore, tokens, logger)
	dentistSvc := services.NewDentistService(dentistStore, bookingStore, logger)
	bookingSvc := services.NewBookingService(bookingStore, dentistStore, logger)
	notificationSvc := services.NewNotificationService(cfg.TextbeltAPIKey, logger)

	h := handlers.NewHandler(authSvc, dentistSvc, bookingSvc, notificationSvc, cfg, logger)

	// --- Gin Router ---
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.Origin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))
	r.Use(middleware.SecurityHeaders())

	routes.Setup(r, h, tokens, userStore, cfg)

	logger.Info("Starting server", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("Server stopped", zap.Error(err))
	}
}
