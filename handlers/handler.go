package handlers

import (
	"crosspost/config"
	"crosspost/database"
	"crosspost/publishers"
	"crosspost/services"
	"crosspost/telegram"
	"crosspost/utils"
)

// Handler holds the dependencies shared by all HTTP handlers.
type Handler struct {
	cfg         *config.Config
	db          *database.Database
	authService *services.AuthService
	delivery    *services.DeliveryService
	scheduler   *services.Scheduler
	storage     *services.StorageService
	oauthState  *services.OAuthStateService
	oauthClient *publishers.OAuthClient
	tgClient    *telegram.Client
	bot         *telegram.Bot
	cipher      *utils.TokenCipher
}

type Config struct {
	Cfg         *config.Config
	DB          *database.Database
	AuthService *services.AuthService
	Delivery    *services.DeliveryService
	Scheduler   *services.Scheduler
	Storage     *services.StorageService
	OAuthState  *services.OAuthStateService
	OAuthClient *publishers.OAuthClient
	TgClient    *telegram.Client
	Bot         *telegram.Bot
	Cipher      *utils.TokenCipher
}

func NewHandler(cfg Config) *Handler {
	return &Handler{
		cfg:         cfg.Cfg,
		db:          cfg.DB,
		authService: cfg.AuthService,
		delivery:    cfg.Delivery,
		scheduler:   cfg.Scheduler,
		storage:     cfg.Storage,
		oauthState:  cfg.OAuthState,
		oauthClient: cfg.OAuthClient,
		tgClient:    cfg.TgClient,
		bot:         cfg.Bot,
		cipher:      cfg.Cipher,
	}
}
