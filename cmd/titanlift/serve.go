package main

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/terraincognita07/titanlift/internal/api"
	"github.com/terraincognita07/titanlift/internal/backend"
	"github.com/terraincognita07/titanlift/internal/config"
	"github.com/terraincognita07/titanlift/internal/db"
	"github.com/terraincognita07/titanlift/internal/i18n"
	"github.com/terraincognita07/titanlift/internal/logging"
	"github.com/terraincognita07/titanlift/internal/metrics"
	"github.com/terraincognita07/titanlift/internal/querycache"
	"github.com/terraincognita07/titanlift/internal/services"
)

const (
	metricsNamespace = "titanlift"
	redisKeyPrefix   = "titanlift:query:"
	shutdownTimeout  = 10 * time.Second
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}
	logOutput := logging.Setup(logging.SetupParams{
		LogFileName:   cfg.LogFile,
		LogToStdout:   true,
		LogLevel:      cfg.LogLevel,
		LogFormatJSON: cfg.LogJSON,
	})

	srv, err := newServer(cfg, logOutput)
	if err != nil {
		return err
	}
	defer srv.Close()

	sigCtx, stopSignals := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Errorf("server shutdown failed: %v", err)
		}
	}()

	log.WithFields(log.Fields{
		"port":    cfg.Port,
		"db":      cfg.DBPath,
		"tz":      srv.location.String(),
		"api":     cfg.APIBaseURL,
		"cache":   cfg.CacheBackend,
		"user_id": cfg.DefaultUserID,
	}).Info("TitanLift listening")
	if err := srv.app.Listen(":" + cfg.Port); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}

type server struct {
	app      *fiber.App
	location *time.Location
	cache    *querycache.Cache
	closers  []func()
}

// Close stops background fetches and then releases the stores they write to.
func (srv *server) Close() {
	if srv.cache != nil {
		srv.cache.Close()
	}
	for index := len(srv.closers) - 1; index >= 0; index-- {
		srv.closers[index]()
	}
}

func newServer(cfg *config.Config, logOutput io.Writer) (_ *server, err error) {
	srv := &server{location: loadLocation(cfg.Timezone)}
	defer func() {
		if err != nil {
			srv.Close()
		}
	}()

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		return nil, fmt.Errorf("database handle: %w", err)
	}
	srv.closers = append(srv.closers, func() { _ = sqlDB.Close() })

	i18nManager, err := i18n.NewManager(cfg.DefaultLanguage, cfg.LocalesDir)
	if err != nil {
		return nil, fmt.Errorf("i18n init failed: %w", err)
	}

	registry := metrics.SetupPrometheus()
	metricsManager := metrics.NewManager(metricsNamespace, "web", registry)

	store, closeStore, err := newCacheStore(cfg)
	if err != nil {
		return nil, err
	}
	srv.closers = append(srv.closers, closeStore)
	srv.cache = querycache.New(store, querycache.Options{
		StaleAfter: cfg.CacheStaleAfter,
		Retention:  cfg.CacheRetention,
		Metrics:    metricsManager,
	})

	repos := db.NewRepositories(database)
	handler, err := api.NewHandler(api.Dependencies{
		SecretKey:    cfg.SecretKey,
		TemplateDir:  cfg.TemplatesDir,
		Location:     srv.location,
		CookieSecure: cfg.CookieSecure,
		RenderBudget: cfg.RenderBudget,
		I18n:         i18nManager,
		Backend:      backend.NewClient(cfg.APIBaseURL, cfg.BackendTimeout, backend.WithMetrics(metricsManager)),
		Cache:        srv.cache,
		Identity:     services.NewUserIdentityService(repos.LocalUsers, cfg.DefaultUserID, cfg.UseLocalUserID),
		Onboarding:   services.NewOnboardingService(repos.LocalUsers),
		Metrics:      metricsManager,
	})
	if err != nil {
		return nil, fmt.Errorf("handler init failed: %w", err)
	}

	app := fiber.New(fiber.Config{
		AppName:               "TitanLift",
		DisableStartupMessage: true,
	})

	prometheusMiddleware := fiberprometheus.NewWithRegistry(registry, "titanlift-web", metricsNamespace, "http", nil)
	prometheusMiddleware.RegisterAt(app, "/metrics")

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{Output: logOutput}))
	app.Use(prometheusMiddleware.Middleware)
	app.Use(compress.New())
	app.Use(handler.LanguageMiddleware)
	app.Use(csrf.New(csrfMiddlewareConfig(cfg.CookieSecure)))

	app.Static("/static", cfg.StaticDir)
	api.RegisterRoutes(app, handler)
	app.Use(handler.NotFound)

	srv.app = app
	return srv, nil
}

// newCacheStore returns the query cache backing store and a func releasing it.
func newCacheStore(cfg *config.Config) (querycache.Store, func(), error) {
	switch cfg.CacheBackend {
	case config.CacheBackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		store := querycache.NewRedisStore(client, redisKeyPrefix)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("redis cache at %s: %w", cfg.RedisAddr, err)
		}
		return store, func() { _ = client.Close() }, nil
	default:
		return querycache.NewMemoryStore(cfg.CacheSizeMB), func() {}, nil
	}
}

func csrfMiddlewareConfig(cookieSecure bool) csrf.Config {
	return csrf.Config{
		KeyLookup:      "form:csrf_token",
		CookieName:     "titanlift_csrf",
		CookieSameSite: "Lax",
		CookieHTTPOnly: true,
		CookieSecure:   cookieSecure,
		ContextKey:     "csrf",
	}
}

func loadLocation(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		log.Warnf("invalid TZ %q, falling back to UTC", name)
		return time.UTC
	}
	return location
}
