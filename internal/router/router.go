package router

import (
	"log"
	"time"

	"duit/config"
	"duit/internal/handler"
	"duit/internal/middleware"
	"duit/internal/repository"
	"duit/internal/service"
	"duit/internal/ws"
	"duit/pkg/cloudinary"
	"duit/pkg/llm"
	"duit/pkg/payment"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(cfg *config.Config, db *gorm.DB, model llm.Client, provider payment.Provider, cloud cloudinary.Client) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit(middleware.NewInMemoryRateLimiter(100, 60*time.Second)))

	// Repositories
	userRepo := repository.NewUserRepository(db)
	walletRepo := repository.NewWalletRepository(db)
	catRepo := repository.NewCategoryRepository(db)
	txRepo := repository.NewTransactionRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	msgRepo := repository.NewMessageRepository(db)
	notifRepo := repository.NewNotificationRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	roomHub := ws.NewRoomHub()

	// Services
	fcmSvc := service.NewFCMService(cfg.Firebase.ServiceAccountPath)
	if fcmSvc != nil {
		log.Printf("[FCM] Push notifications enabled")
	} else {
		log.Printf("[FCM] Push notifications disabled: set FIREBASE_SERVICE_ACCOUNT_PATH to enable")
	}
	notifSvc := service.NewNotificationService(notifRepo, userRepo, fcmSvc)
	authSvc := service.NewAuthService(cfg, db, userRepo)
	txSvc := service.NewTransactionService(db, notifSvc)
	summarySvc := service.NewSummaryService(db)
	chatSvc := service.NewChatService(model, txSvc, summarySvc, msgRepo, catRepo, roomHub.Broadcast)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	googleOAuthHandler := handler.NewGoogleOAuthHandler(cfg, authSvc)
	meHandler := handler.NewMeHandler(userRepo)
	walletHandler := handler.NewWalletHandler(walletRepo, summarySvc)
	categoryHandler := handler.NewCategoryHandler(catRepo)
	txHandler := handler.NewTransactionHandler(txSvc, txRepo, cloud)
	chatHandler := handler.NewChatHandler(chatSvc, roomRepo, msgRepo)
	notificationHandler := handler.NewNotificationHandler(notifRepo)
	paymentHandler := handler.NewPaymentHandler(cfg, provider, paymentRepo, userRepo)
	paymentWebhookHandler := handler.NewPaymentWebhookHandler(cfg, db, notifSvc)

	authMw := middleware.AuthRequired(&cfg.JWT)

	api := r.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.GET("/google", googleOAuthHandler.Redirect)
			authGroup.GET("/google/callback", googleOAuthHandler.Callback)
		}

		me := api.Group("/me")
		me.Use(authMw)
		{
			me.GET("/profile", meHandler.GetProfile)
			me.PATCH("/fcm-token", meHandler.RegisterFCMToken)
		}

		wallets := api.Group("/wallets")
		wallets.Use(authMw)
		{
			wallets.GET("", walletHandler.List)
			wallets.POST("", walletHandler.Create)
			wallets.GET("/:id", walletHandler.Get)
			wallets.PUT("/:id", walletHandler.Update)
			wallets.DELETE("/:id", walletHandler.Delete)
			wallets.GET("/:id/summary", walletHandler.Summary)
		}

		categories := api.Group("/categories")
		categories.Use(authMw)
		{
			categories.GET("", categoryHandler.List)
			categories.POST("", categoryHandler.Create)
			categories.PUT("/:id", categoryHandler.Update)
			categories.DELETE("/:id", categoryHandler.Delete)
		}

		transactions := api.Group("/transactions")
		transactions.Use(authMw)
		{
			transactions.GET("", txHandler.List)
			transactions.POST("", txHandler.Create)
			transactions.GET("/:id", txHandler.Get)
			transactions.PUT("/:id", txHandler.Update)
			transactions.DELETE("/:id", txHandler.Delete)
			transactions.POST("/:id/repayments", txHandler.CreateChild)
			transactions.POST("/:id/collections", txHandler.CreateChild)
			transactions.POST("/:id/receipt", txHandler.UploadReceipt)
		}

		rooms := api.Group("/rooms")
		rooms.Use(authMw)
		{
			rooms.GET("", chatHandler.ListRooms)
			rooms.POST("", chatHandler.CreateRoom)
			rooms.GET("/:id/messages", chatHandler.ListMessages)
			rooms.POST("/:id/messages", chatHandler.PostMessage)
		}
		api.POST("/chat/transcribe", authMw, chatHandler.Transcribe)

		notifications := api.Group("/notifications")
		notifications.Use(authMw)
		{
			notifications.GET("", notificationHandler.List)
			notifications.PUT("/:id/read", notificationHandler.MarkRead)
		}

		api.POST("/payments/invoice", authMw, paymentHandler.CreateInvoice)
		api.GET("/payments", authMw, paymentHandler.List)
		api.POST("/webhooks/payment", paymentWebhookHandler.Handle)
	}

	r.GET("/ws/rooms", ws.UpgradeRoomWS(&cfg.JWT, roomHub, roomRepo))

	return r
}
