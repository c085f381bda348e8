package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"zakup_backend/database"
	"zakup_backend/internal/config"
	"zakup_backend/internal/email"
	"zakup_backend/internal/handlers"
	"zakup_backend/internal/logger"
	"zakup_backend/internal/middleware"
	"zakup_backend/internal/models"
	"zakup_backend/internal/repositories"
	"zakup_backend/internal/routes"
	"zakup_backend/internal/services"
	"zakup_backend/internal/storage"
	"zakup_backend/internal/validator"
	"zakup_backend/internal/workers"
	"zakup_backend/ws"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := database.ConnectGorm()
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}

	if err := seedFirstAdmin(gormDB); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	ginRouter, worker := SetupRouter(cfg, gormDB)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	worker.Start(ctx)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("🚀 Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter собирает полный роутер над переданным подключением.
// Тестовое окружение вызывает его с транзакцией вместо пула.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) (*gin.Engine, *workers.RFQWorker) {
	storageInstance, err := storage.NewStorage(storage.Config{
		Type:       cfg.Storage.Type,
		BasePath:   cfg.Storage.BasePath,
		BaseURL:    cfg.Storage.BaseURL,
		Bucket:     cfg.Storage.Bucket,
		AccessKey:  cfg.Storage.AccessKey,
		SecretKey:  cfg.Storage.SecretKey,
		Endpoint:   cfg.Storage.Endpoint,
		PublicRead: cfg.Storage.PublicRead,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	// 1. WebSocket-менеджер (нужен сервисам для push)
	wsManager := ws.NewWebSocketManager()
	go wsManager.Run()
	wsHandler := ws.NewWebSocketHandler(wsManager)

	// 2. Сервисы
	serviceContainer := initializeServices(cfg, gormDB, storageInstance, wsManager)

	// 3. Хэндлеры
	appHandlers := initializeHandlers(serviceContainer)

	// 4. Gin
	ginRouter := initializeGinRouter(gormDB)

	// 5. Маршруты
	routes.RegisterRoutes(ginRouter, appHandlers, wsHandler)

	// 6. Фоновый воркер
	worker := workers.NewRFQWorker(
		repositories.NewRFQRepository(gormDB),
		repositories.NewNotificationRepository(gormDB),
		repositories.NewUserRepository(gormDB),
	)

	return ginRouter, worker
}

func initializeServices(cfg *config.Config, gormDB *gorm.DB, storageInstance storage.Storage, wsManager *ws.WebSocketManager) *services.ServiceContainer {
	emailService := buildEmailProvider(cfg)

	// --- Репозитории ---
	userRepo := repositories.NewUserRepository(gormDB)
	rfqRepo := repositories.NewRFQRepository(gormDB)
	bidRepo := repositories.NewBidRepository(gormDB)
	evaluationRepo := repositories.NewEvaluationRepository(gormDB)
	notificationRepo := repositories.NewNotificationRepository(gormDB)
	documentRepo := repositories.NewDocumentRepository(gormDB)

	// --- Сервисы ---
	authService := services.NewAuthService(userRepo, emailService)
	userService := services.NewUserService(userRepo)
	rfqService := services.NewRFQService(rfqRepo, bidRepo)
	bidService := services.NewBidService(bidRepo, rfqRepo, userRepo, notificationRepo)
	evaluationService := services.NewEvaluationService(rfqRepo, bidRepo, evaluationRepo, notificationRepo, wsManager)
	notificationService := services.NewNotificationService(notificationRepo)
	documentService := services.NewDocumentService(documentRepo, rfqRepo, bidRepo, storageInstance)

	return &services.ServiceContainer{
		AuthService:         authService,
		UserService:         userService,
		RFQService:          rfqService,
		BidService:          bidService,
		EvaluationService:   evaluationService,
		NotificationService: notificationService,
		DocumentService:     documentService,
		EmailService:        emailService,
		Storage:             storageInstance,
	}
}

func initializeHandlers(container *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		HealthHandler:       handlers.NewHealthHandler(baseHandler),
		AuthHandler:         handlers.NewAuthHandler(baseHandler, container.AuthService),
		UserHandler:         handlers.NewUserHandler(baseHandler, container.UserService, container.AuthService),
		RFQHandler:          handlers.NewRFQHandler(baseHandler, container.RFQService, container.BidService),
		BidHandler:          handlers.NewBidHandler(baseHandler, container.BidService),
		EvaluationHandler:   handlers.NewEvaluationHandler(baseHandler, container.EvaluationService),
		NotificationHandler: handlers.NewNotificationHandler(baseHandler, container.NotificationService),
		DocumentHandler:     handlers.NewDocumentHandler(baseHandler, container.DocumentService),
	}
}

func initializeGinRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))
	return router
}

// buildEmailProvider собирает SMTP-провайдер; без хоста работает заглушка
func buildEmailProvider(cfg *config.Config) email.Provider {
	if cfg.Email.SMTPHost == "" {
		logger.Warn("SMTP is not configured, emails will be logged and dropped")
		return &MockEmailProvider{}
	}

	renderer := email.NewDefaultTemplateManager()
	if cfg.Email.TemplatesDir != "" {
		if err := renderer.LoadTemplates(cfg.Email.TemplatesDir); err != nil {
			logger.WithError(err).Warn("failed to load email templates, using builtins",
				"dir", cfg.Email.TemplatesDir)
		}
	}

	return email.NewSMTPProvider(&email.SMTPConfig{
		Host:      cfg.Email.SMTPHost,
		Port:      cfg.Email.SMTPPort,
		Username:  cfg.Email.SMTPUsername,
		Password:  cfg.Email.SMTPPassword,
		FromEmail: cfg.Email.FromEmail,
		FromName:  cfg.Email.FromName,
		UseTLS:    cfg.Email.UseTLS,
	}, renderer)
}

// seedFirstAdmin создает первого администратора из переменных окружения
func seedFirstAdmin(db *gorm.DB) error {
	adminEmail := os.Getenv("FIRST_ADMIN_EMAIL")
	adminPassword := os.Getenv("FIRST_ADMIN_PASSWORD")

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	var adminUser models.User
	result := db.Where("email = ?", adminEmail).First(&adminUser)

	if result.Error == nil {
		logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
		return nil
	}

	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", result.Error)
	}

	logger.Warn("No admin user found. Creating first admin...", "email", adminEmail)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	newAdmin := &models.User{
		Email:        adminEmail,
		PasswordHash: string(hashedPassword),
		Role:         models.UserRoleAdmin,
		Status:       models.UserStatusActive,
		CompanyName:  "Zakup Administration",
		IsVerified:   true,
	}

	if err := db.Create(newAdmin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logger.Info("✅ Successfully created first admin user", "email", adminEmail)
	return nil
}
