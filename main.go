package main

import (
	"log"
	"net/http"

	"crosspost/config"
	"crosspost/database"
	"crosspost/handlers"
	"crosspost/metrics"
	"crosspost/middleware"
	"crosspost/models"
	"crosspost/publishers"
	"crosspost/services"
	"crosspost/telegram"
	"crosspost/utils"

	"github.com/gorilla/mux"
)

func main() {
	cfg := config.Load()
	utils.SetLogLevel(cfg.LogLevel)

	db, err := database.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	cipher, err := utils.NewTokenCipher(cfg.TokenEncryptionKey)
	if err != nil {
		log.Fatal("Invalid token encryption key:", err)
	}

	storage, err := services.NewStorageService(cfg.UploadDir, cfg.BaseURL)
	if err != nil {
		log.Fatal("Failed to initialize storage:", err)
	}

	collector := metrics.NewCollector()
	authService := services.NewAuthService(db, cfg.JWTSecret)
	oauthStateService := services.NewOAuthStateService()
	oauthClient := publishers.NewOAuthClient(cfg, nil)
	tgClient := telegram.NewClient(cfg.TelegramBotToken, nil)

	delivery := services.NewDeliveryService(services.DeliveryConfig{
		Store: db,
		Publishers: map[models.Platform]publishers.PlatformPublisher{
			models.Twitter:   publishers.NewTwitterPublisher(cfg),
			models.Facebook:  publishers.NewFacebookPublisher(cfg),
			models.Instagram: publishers.NewInstagramPublisher(cfg),
			models.LinkedIn:  publishers.NewLinkedInPublisher(cfg),
		},
		StoryPublishers: map[models.Platform]publishers.StoryPublisher{
			models.Instagram: publishers.NewInstagramPublisher(cfg),
			models.Snapchat:  publishers.NewSnapchatPublisher(cfg),
		},
		Cipher:    cipher,
		Timeout:   cfg.PublishTimeout,
		Collector: collector,
	})

	scheduler := services.NewScheduler(services.SchedulerConfig{
		Store:          db,
		Deliverer:      delivery,
		Notifier:       tgClient,
		Collector:      collector,
		CatchUpOverdue: cfg.CatchUpOverdue,
		SweepSpec:      cfg.SweepInterval,
	})
	if err := scheduler.Start(); err != nil {
		log.Fatal("Failed to start scheduler:", err)
	}
	defer scheduler.Stop()

	bot := telegram.NewBot(db, scheduler, tgClient)

	handler := handlers.NewHandler(handlers.Config{
		Cfg:         cfg,
		DB:          db,
		AuthService: authService,
		Delivery:    delivery,
		Scheduler:   scheduler,
		Storage:     storage,
		OAuthState:  oauthStateService,
		OAuthClient: oauthClient,
		TgClient:    tgClient,
		Bot:         bot,
		Cipher:      cipher,
	})

	r := setupRoutes(handler, authService, collector, cfg)

	utils.Infof("Server starting on port %s...", cfg.Port)
	printEndpoints()

	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal(err)
	}
}

func setupRoutes(h *handlers.Handler, authService *services.AuthService, collector *metrics.Collector, cfg *config.Config) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.CORS)
	r.Use(middleware.NewRateLimiter(10, 30).Middleware())

	// Public routes
	r.HandleFunc("/health", h.HealthCheck).Methods("GET")
	r.Handle("/metrics", collector.Handler()).Methods("GET")
	r.HandleFunc("/api/auth/setup", h.Setup).Methods("POST")
	r.HandleFunc("/api/auth/login", h.Login).Methods("POST")

	// OAuth callbacks and the Telegram webhook carry their own verification
	r.HandleFunc("/api/oauth/{platform}/callback", h.OAuthCallback).Methods("GET")
	r.HandleFunc("/api/telegram/webhook", h.TelegramWebhook).Methods("POST")

	// Static file serving for uploaded story images
	r.PathPrefix("/uploads/").Handler(http.StripPrefix("/uploads/",
		http.FileServer(http.Dir(cfg.UploadDir))))

	// Protected routes
	protected := r.PathPrefix("/api").Subrouter()
	protected.Use(middleware.AdminMiddleware(authService))

	protected.HandleFunc("/auth/me", h.Me).Methods("GET")

	// Social accounts
	protected.HandleFunc("/social-accounts/{userId}", h.GetSocialAccounts).Methods("GET")
	protected.HandleFunc("/social-accounts", h.CreateSocialAccount).Methods("POST")
	protected.HandleFunc("/social-accounts/{id}/status", h.UpdateAccountStatus).Methods("PATCH")

	// Posts
	protected.HandleFunc("/posts", h.CreatePost).Methods("POST")
	protected.HandleFunc("/posts/{userId}", h.GetPosts).Methods("GET")
	protected.HandleFunc("/posts/{id}/details", h.GetPost).Methods("GET")

	// Bot settings
	protected.HandleFunc("/bot-settings/{userId}", h.GetBotSettings).Methods("GET")
	protected.HandleFunc("/bot-settings", h.SaveBotSettings).Methods("POST")

	// Connections, stories, Telegram
	protected.HandleFunc("/test-connection", h.TestConnection).Methods("POST")
	protected.HandleFunc("/stories/post", h.PostStory).Methods("POST")
	protected.HandleFunc("/telegram/send", h.SendTelegramMessage).Methods("POST")

	// OAuth initiation
	protected.HandleFunc("/oauth/{platform}/auth", h.InitiateOAuth).Methods("GET")

	// Scheduler
	protected.HandleFunc("/scheduler/status", h.SchedulerStatus).Methods("GET")
	protected.HandleFunc("/scheduler/cancel/{postId}", h.CancelScheduledPost).Methods("DELETE")

	return r
}

func printEndpoints() {
	log.Println("Endpoints available:")
	log.Println("  POST   /api/auth/setup               - Create first admin")
	log.Println("  POST   /api/auth/login               - Login")
	log.Println("  GET    /api/auth/me                  - Current admin (auth)")
	log.Println("  GET    /api/social-accounts/{userId} - List social accounts (auth)")
	log.Println("  POST   /api/social-accounts          - Link social account (auth)")
	log.Println("  PATCH  /api/social-accounts/{id}/status - Toggle account (auth)")
	log.Println("  POST   /api/posts                    - Create/schedule post (auth)")
	log.Println("  GET    /api/posts/{userId}           - List posts (auth)")
	log.Println("  GET    /api/posts/{id}/details       - Post with results (auth)")
	log.Println("  GET    /api/bot-settings/{userId}    - Get bot settings (auth)")
	log.Println("  POST   /api/bot-settings             - Save bot settings (auth)")
	log.Println("  POST   /api/test-connection          - Test platform token (auth)")
	log.Println("  POST   /api/stories/post             - Post story (auth)")
	log.Println("  POST   /api/telegram/send            - Send Telegram message (auth)")
	log.Println("  POST   /api/telegram/webhook         - Telegram bot webhook")
	log.Println("  GET    /api/oauth/{platform}/auth    - Initiate OAuth (auth)")
	log.Println("  GET    /api/oauth/{platform}/callback - OAuth callback")
	log.Println("  GET    /api/scheduler/status         - Scheduler status (auth)")
	log.Println("  DELETE /api/scheduler/cancel/{postId} - Cancel scheduled post (auth)")
	log.Println("  GET    /health                       - Health check")
	log.Println("  GET    /metrics                      - Prometheus metrics")
	log.Println("  GET    /uploads/*                    - Serve uploaded files")
}
