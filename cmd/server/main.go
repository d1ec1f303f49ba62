package main // Entry point package

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"    // .env loading for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/user-admin-portal/internal/cache"
	"github.com/iliyamo/user-admin-portal/internal/config"
	"github.com/iliyamo/user-admin-portal/internal/database"
	"github.com/iliyamo/user-admin-portal/internal/directory"
	"github.com/iliyamo/user-admin-portal/internal/flow"
	"github.com/iliyamo/user-admin-portal/internal/handler"
	"github.com/iliyamo/user-admin-portal/internal/notify"
	"github.com/iliyamo/user-admin-portal/internal/provider"
	"github.com/iliyamo/user-admin-portal/internal/queue"
	"github.com/iliyamo/user-admin-portal/internal/repository"
	"github.com/iliyamo/user-admin-portal/internal/router"
	"github.com/iliyamo/user-admin-portal/internal/session"
)

func main() {
	// Load .env if present; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg := config.Load()
	cfg.RequireAuth()
	cfg.RequireDirectory()

	// The database is only opened when a backend actually needs it.
	var (
		users  *repository.UserRepo
		tokens *repository.TokenRepo
	)
	if cfg.AuthBackend == "local" || cfg.DirectoryBackend == "mysql" {
		cfg.RequireDB()
		db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		if err != nil {
			log.Fatalf("database: %v", err)
		}
		users = repository.NewUserRepo(db)
		tokens = repository.NewTokenRepo(db)
	}

	rdb := config.NewRedisClient() // nil when Redis is unreachable

	// Credential provider.
	var prov provider.CredentialProvider
	switch cfg.AuthBackend {
	case "local":
		prov = provider.NewLocal(users, tokens, cfg.JWTSecret,
			cfg.AccessTTLMin, cfg.RefreshTTLDays, cfg.BcryptCost)
	default:
		prov = provider.NewRESTProvider(cfg.AuthBaseURL, cfg.AuthAPIKey, nil)
	}

	// User directory, optionally wrapped in the memoization cache.
	var dir directory.Directory
	switch cfg.DirectoryBackend {
	case "mysql":
		dir = directory.NewMySQL(users)
	default:
		dir = directory.NewREST(cfg.DirectoryAPIBase(), nil)
	}
	cacheCfg := config.LoadCacheConfig()
	if cacheCfg.Enabled {
		dir = directory.NewCached(dir, cache.NewMemory())
	}

	// Durable token storage.
	var tokenStore session.TokenStore
	if cfg.SessionStore == "redis" && rdb != nil {
		tokenStore = session.NewRedisTokenStore(rdb, "")
	} else {
		tokenStore = session.NewFileTokenStore(cfg.SessionTokenFile)
	}

	var notifier notify.Notifier = notify.Log{}
	if cacheCfg.Notifier == "queue" {
		notifier = notify.Queue{}
		go func() {
			if err := queue.StartNotificationConsumer(); err != nil {
				log.Printf("notification consumer stopped: %v", err)
			}
		}()
	}

	store := session.NewStore()
	flows := flow.New(store, tokenStore, prov, dir, notifier)

	// Restore any previous session before serving traffic.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := flows.Restore(ctx); err != nil {
		if errors.Is(err, flow.ErrNoSession) {
			log.Printf("no stored session; login required")
		} else {
			log.Printf("session restore failed: %v", err)
		}
	}
	cancel()

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(flows), config.LoadRateLimitConfig(), rdb)
	router.RegisterUsers(e, handler.NewUserHandler(flows), store)
	if cfg.AuthBackend == "local" {
		router.RegisterLocalAPI(e, handler.NewAuthHandler(flows), cfg.JWTSecret)
	}

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
