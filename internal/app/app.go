package app

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"internship_admin/internal/apiclient"
	"internship_admin/internal/config"
	"internship_admin/internal/controller"
	"internship_admin/internal/handlers"
	"internship_admin/internal/logger"
	"internship_admin/internal/middleware"
	"internship_admin/internal/notify"
	"internship_admin/internal/routes"
	"internship_admin/internal/store"
	"internship_admin/internal/validator"
	"internship_admin/internal/workers"
	"internship_admin/pkg/apperrors"
	"internship_admin/ws"
)

// Console is a wired admin console.
type Console struct {
	Router        *gin.Engine
	Controller    *controller.Controller
	Listings      *store.Listings
	Notifications *notify.Center
	WSManager     *ws.WebSocketManager

	stopBridge func()
}

// Close stops forwarding events to websocket clients.
func (c *Console) Close() {
	if c.stopBridge != nil {
		c.stopBridge()
	}
}

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)
	apperrors.SetDebug(cfg.Server.Env != "production")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	console := SetupConsole(ctx, cfg)
	defer console.Close()

	if cfg.Upstream.LoadOnStart {
		// Консоль стартует и с пустыми листингами, если API недоступен.
		if err := console.Controller.Load(ctx); err != nil {
			logger.Error("Initial load failed", "upstream", cfg.Upstream.URL, "error", err)
		}
	}

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           console.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "address", server.Addr, "upstream", cfg.Upstream.URL)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server startup error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}
}

// SetupConsole wires stores, controller, handlers, websocket hub and workers.
// Background loops stop when ctx is done.
func SetupConsole(ctx context.Context, cfg *config.Config) *Console {
	listings := store.NewListings()
	center := notify.NewCenter(cfg.Notify.TTL)

	client := apiclient.NewClient(cfg.Upstream.URL, &http.Client{Timeout: cfg.Upstream.Timeout})
	ctrl := controller.New(client, listings, center, controller.ContextConfirmer{})

	wsManager := ws.NewWebSocketManager(ws.Snapshot(listings, center))
	go wsManager.Run(ctx)
	stopBridge := ws.Bridge(wsManager, listings, center)
	wsHandler := ws.NewWebSocketHandler(wsManager, nil)

	workers.NewNotificationWorker(center, cfg.Notify.PruneInterval).Start(ctx)

	appHandlers := initializeHandlers(ctrl, listings, center)
	ginRouter := initializeGinRouter(cfg)
	routes.RegisterRoutes(ginRouter, appHandlers, wsHandler)

	return &Console{
		Router:        ginRouter,
		Controller:    ctrl,
		Listings:      listings,
		Notifications: center,
		WSManager:     wsManager,
		stopBridge:    stopBridge,
	}
}

func initializeHandlers(ctrl *controller.Controller, listings *store.Listings, center *notify.Center) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		EntityHandler:       handlers.NewEntityHandler(baseHandler, ctrl),
		ApplicationHandler:  handlers.NewApplicationHandler(baseHandler, ctrl, center),
		NotificationHandler: handlers.NewNotificationHandler(baseHandler, center),
		SummaryHandler:      handlers.NewSummaryHandler(baseHandler, listings),
	}
}

func initializeGinRouter(cfg *config.Config) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.Server.CORSOrigins))
	return router
}
