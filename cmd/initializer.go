package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"

	"github.com/redis/go-redis/v9"

	"haulcentral/internal/config"
	"haulcentral/internal/handlers"
	"haulcentral/internal/notify"
	"haulcentral/internal/repositories"
	"haulcentral/internal/services"
	"haulcentral/utils"
)

type application struct {
	errorLog *log.Logger
	infoLog  *log.Logger
	cfg      config.Config

	tokens              *utils.Manager
	userService         *services.UserService
	alertService        *services.AlertService
	subscriptionService *services.SubscriptionService
	boardHub            *BoardHub

	userHandler      *handlers.UserHandler
	loadHandler      *handlers.LoadHandler
	truckHandler     *handlers.TruckHandler
	alertHandler     *handlers.AlertHandler
	dashboardHandler *handlers.DashboardHandler
	adminHandler     *handlers.AdminHandler
	pricingHandler   *handlers.PricingHandler
}

func initializeApp(cfg config.Config, db *sql.DB, rdb *redis.Client, notifier notify.Notifier, store services.ObjectUploader, errorLog, infoLog *log.Logger) (*application, error) {
	tokens, err := utils.NewManager(cfg.Auth.JWTSecret)
	if err != nil {
		return nil, fmt.Errorf("token manager: %w", err)
	}
	driver := cfg.Database.Driver

	// Repositories
	userRepo := &repositories.UserRepository{DB: db, Driver: driver}
	loadRepo := &repositories.LoadRepository{DB: db, Driver: driver}
	truckRepo := &repositories.TruckRepository{DB: db, Driver: driver}
	alertRepo := &repositories.BackhaulAlertRepository{DB: db, Driver: driver}
	companyRepo := &repositories.CompanyUserRepository{DB: db, Driver: driver}
	subscriptionRepo := &repositories.SubscriptionRepository{DB: db, Driver: driver}

	hub := NewBoardHub(errorLog)

	// Services
	loadService := &services.LoadService{
		LoadRepo:  loadRepo,
		UserRepo:  userRepo,
		Feed:      hub,
		PoolLimit: cfg.Board.PoolLimit,
		ErrorLog:  errorLog,
	}
	if rdb != nil {
		loadService.Cache = repositories.NewBoardCache(rdb, cfg.Board.CacheTTL)
	}
	userService := &services.UserService{
		UserRepo:     userRepo,
		TokenManager: tokens,
		AccessTTL:    cfg.Auth.AccessTTL,
		RefreshTTL:   cfg.Auth.RefreshTTL,
	}
	adminService := &services.AdminService{
		UserRepo:      userRepo,
		CompanyRepo:   companyRepo,
		TokenManager:  tokens,
		GrantTTL:      cfg.Auth.AdminGrantTTL,
		BootstrapCode: cfg.Auth.AdminBootstrapCode,
	}
	alertService := &services.AlertService{AlertRepo: alertRepo, UserRepo: userRepo, Notifier: notifier, ErrorLog: errorLog}
	dashboardService := &services.DashboardService{LoadRepo: loadRepo, TruckRepo: truckRepo, AlertRepo: alertRepo, UserRepo: userRepo}
	truckService := &services.TruckService{TruckRepo: truckRepo, UserRepo: userRepo}
	documentService := &services.DocumentService{LoadRepo: loadRepo, Store: store}
	subscriptionService := &services.SubscriptionService{Repo: subscriptionRepo}

	return &application{
		errorLog: errorLog,
		infoLog:  infoLog,
		cfg:      cfg,

		tokens:              tokens,
		userService:         userService,
		alertService:        alertService,
		subscriptionService: subscriptionService,
		boardHub:            hub,

		userHandler:      &handlers.UserHandler{Service: userService, ErrorLog: errorLog},
		loadHandler:      &handlers.LoadHandler{Service: loadService, Documents: documentService, ErrorLog: errorLog},
		truckHandler:     &handlers.TruckHandler{Service: truckService, ErrorLog: errorLog},
		alertHandler:     &handlers.AlertHandler{Service: alertService, ErrorLog: errorLog},
		dashboardHandler: &handlers.DashboardHandler{Service: dashboardService, ErrorLog: errorLog},
		adminHandler:     &handlers.AdminHandler{Service: adminService, ErrorLog: errorLog},
		pricingHandler:   &handlers.PricingHandler{},
	}, nil
}

func addSecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cross-Origin-Opener-Policy", "same-origin")
		w.Header().Set("Cross-Origin-Resource-Policy", "same-origin")
		next.ServeHTTP(w, r)
	})
}
