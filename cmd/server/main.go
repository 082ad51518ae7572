package main

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/ytakahashi/todo-api/internal/auth"
	"github.com/ytakahashi/todo-api/internal/config"
	"github.com/ytakahashi/todo-api/internal/handlers"
	"github.com/ytakahashi/todo-api/internal/logger"
	"github.com/ytakahashi/todo-api/internal/services"
	"github.com/ytakahashi/todo-api/internal/sessions"
)

func main() {
	cfg := config.Load()

	log := logger.New(cfg.Env, cfg.LogLevel)
	defer log.Sync()

	if cfg.TokenSecret == "" {
		// Sessions signed with an ephemeral secret die with the process.
		log.Warn("TOKEN_SECRET not set, using an ephemeral signing secret")
		cfg.TokenSecret = uuid.New().String()
	}
	tokens := auth.NewTokenIssuer(cfg.TokenSecret, cfg.TokenTTL)

	var (
		todoStore services.TodoStore
		userStore services.UserStore
	)
	if cfg.ProjectID != "" {
		fs, err := services.NewFirestoreService(cfg.ProjectID)
		if err != nil {
			// Store connectivity failure does not halt startup; routes
			// fail per-request against the fallback until restart.
			log.Error("Failed to connect to Firestore, falling back to in-memory store", zap.Error(err))
			mem := services.NewMemoryService()
			todoStore, userStore = mem, mem
		} else {
			defer fs.Close()
			todoStore, userStore = fs, fs
			log.Info("Connected to Firestore", zap.String("project", cfg.ProjectID))
		}
	} else {
		log.Warn("GOOGLE_CLOUD_PROJECT not set, using in-memory store")
		mem := services.NewMemoryService()
		todoStore, userStore = mem, mem
	}

	var sessionStore sessions.Store
	switch cfg.SessionBackend {
	case "redis":
		sessionStore = sessions.NewRedis(cfg.RedisAddr, cfg.RedisDB, cfg.TokenTTL)
		log.Info("Using Redis session store", zap.String("addr", cfg.RedisAddr))
	default:
		sessionStore = sessions.NewMemory(cfg.TokenTTL)
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.ClientOrigin},
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Error(v.Error),
			)
			return nil
		},
	}))

	h := handlers.New(todoStore, userStore, sessionStore, tokens, log)
	h.Routes(e)

	log.Info("Server starting", zap.String("port", cfg.Port))
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatal("Server failed to start", zap.Error(err))
	}
}
