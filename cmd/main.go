package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"

	"github.com/sbilibin2017/gw-login-console/internal/facades"
	"github.com/sbilibin2017/gw-login-console/internal/handlers"
	"github.com/sbilibin2017/gw-login-console/internal/jwt"
	"github.com/sbilibin2017/gw-login-console/internal/logger"
	"github.com/sbilibin2017/gw-login-console/internal/middlewares"
	"github.com/sbilibin2017/gw-login-console/internal/repositories"
	"github.com/sbilibin2017/gw-login-console/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/sbilibin2017/gw-login-console/docs"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// Store backends selectable with STORE_BACKEND.
const (
	storeMemory   = "memory"
	storeFile     = "file"
	storeRedis    = "redis"
	storePostgres = "postgres"
)

// @title gw-login-console API
// @version 1.0.0
// @description Local login console forwarding credentials to the authentication service
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
func main() {
	printBuildInfo()
	configPath := parseFlags()

	appHost, appPort, logLevel, logFormat, apiURL,
		storeBackend, storePath,
		pgHost, pgPort, pgUser, pgPassword, pgDB,
		redisHost, redisPort, redisDB, redisPassword,
		kafkaBrokers, kafkaTopic,
		err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(),
		appHost, appPort, logLevel, logFormat, apiURL,
		storeBackend, storePath,
		pgHost, pgPort, pgUser, pgPassword, pgDB,
		redisHost, redisPort, redisDB, redisPassword,
		kafkaBrokers, kafkaTopic,
	); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Version: %s\nCommit: %s\nBuild: %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and returns
// the application, backend, storage, and event configuration.
func parseConfig(path string) (
	appHost, appPort, logLevel, logFormat, apiURL string,
	storeBackend, storePath string,
	pgHost string, pgPort int, pgUser, pgPassword, pgDB string,
	redisHost string, redisPort, redisDB int, redisPassword string,
	kafkaBrokers, kafkaTopic string,
	err error,
) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}

	// Application config
	appHost = getEnv("APP_HOST", "localhost")
	appPort = getEnv("APP_PORT", "8080")
	logLevel = getEnv("APP_LOG_LEVEL", "info")
	logFormat = getEnv("APP_LOG_FORMAT", "json")

	// Authentication backend
	apiURL = getEnv("API_URL", "http://localhost:8081/api/")

	// Storage config
	storeBackend = getEnv("STORE_BACKEND", storeFile)
	storePath = getEnv("STORE_PATH", "storage.yaml")

	// PostgreSQL config
	pgHost = getEnv("POSTGRES_HOST", "localhost")
	pgUser = getEnv("POSTGRES_USER", "user")
	pgPassword = getEnv("POSTGRES_PASSWORD", "password")
	pgDB = getEnv("POSTGRES_DB", "database")
	if pgPort, err = strconv.Atoi(getEnv("POSTGRES_PORT", "5432")); err != nil {
		return
	}

	// Redis config
	redisHost = getEnv("REDIS_HOST", "localhost")
	if redisPort, err = strconv.Atoi(getEnv("REDIS_PORT", "6379")); err != nil {
		return
	}
	if redisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0")); err != nil {
		return
	}
	redisPassword = getEnv("REDIS_PASSWORD", "")

	// Kafka config; no brokers disables login events
	kafkaBrokers = getEnv("KAFKA_BROKERS", "")
	kafkaTopic = getEnv("KAFKA_TOPIC", "login-events")

	return
}

// openStore connects the configured storage backend.
// The returned close function releases its connections.
func openStore(ctx context.Context,
	backend, path string,
	pgHost string, pgPort int, pgUser, pgPassword, pgDB string,
	redisHost string, redisPort, redisDB int, redisPassword string,
) (repositories.Store, func() error, error) {
	noop := func() error { return nil }

	switch backend {
	case storeMemory:
		return repositories.NewMemoryStore(), noop, nil

	case storeFile:
		store, err := repositories.NewFileStore(path)
		if err != nil {
			return nil, nil, err
		}
		return store, noop, nil

	case storeRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", redisHost, redisPort),
			Password: redisPassword,
			DB:       redisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			rdb.Close()
			return nil, nil, fmt.Errorf("redis connection error: %w", err)
		}
		return repositories.NewRedisStore(rdb), rdb.Close, nil

	case storePostgres:
		dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
			pgUser, pgPassword, pgHost, pgPort, pgDB)
		db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
		if err != nil {
			return nil, nil, fmt.Errorf("postgres connection error: %w", err)
		}
		store := repositories.NewPostgresStore(db)
		if err := store.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("postgres migration error: %w", err)
		}
		return store, db.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", backend)
	}
}

// newRouter sets up page and API routes.
func newRouter(
	svc *services.LoginService,
	store repositories.Store,
	tokener *jwt.Inspector,
	appHost, appPort string,
) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware(logger.Log))

	// Pages
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/login", http.StatusFound)
	})
	r.Get("/login", handlers.LoginPage(svc))
	r.Post("/login", handlers.LoginForm(svc))
	r.Post("/login/clean-errors", handlers.CleanErrorsForm(svc))
	r.Post("/logout", handlers.LogoutForm(svc))
	r.Group(func(r chi.Router) {
		r.Use(middlewares.SessionPageMiddleware(store, tokener))
		r.Get("/session", handlers.SessionPage(svc))
	})

	// JSON API
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/login", handlers.NewGetLoginStateHandler(svc))
		r.Post("/login", handlers.NewLoginHandler(svc))
		r.Delete("/login/error", handlers.NewCleanErrorsHandler(svc))
		r.Delete("/session", handlers.NewLogoutHandler(svc))
		r.Group(func(r chi.Router) {
			r.Use(middlewares.SessionMiddleware(store, tokener))
			r.Get("/session", handlers.NewGetSessionHandler(svc, tokener))
		})
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s:%s/swagger/doc.json", appHost, appPort)),
	))

	return r
}

// run initializes the logger, store, event writer, and HTTP server.
// It sets up routes, applies middleware, and handles graceful shutdown.
func run(ctx context.Context,
	appHost, appPort, logLevel, logFormat, apiURL string,
	storeBackend, storePath string,
	pgHost string, pgPort int, pgUser, pgPassword, pgDB string,
	redisHost string, redisPort, redisDB int, redisPassword string,
	kafkaBrokers, kafkaTopic string,
) error {
	// Initialize logger
	if err := logger.Initialize(logLevel, logFormat); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Log.Sync()
	logger.Log.Infof("Logger initialized with level %s", logLevel)

	// Open storage
	store, closeStore, err := openStore(ctx, storeBackend, storePath,
		pgHost, pgPort, pgUser, pgPassword, pgDB,
		redisHost, redisPort, redisDB, redisPassword,
	)
	if err != nil {
		logger.Log.Errorw("failed to open store", "backend", storeBackend, "error", err)
		return err
	}
	defer closeStore()
	logger.Log.Infow("Store opened", "backend", storeBackend)

	// Login events
	var events services.EventWriter
	if kafkaBrokers != "" {
		writer := &kafka.Writer{
			Addr:     kafka.TCP(strings.Split(kafkaBrokers, ",")...),
			Topic:    kafkaTopic,
			Balancer: &kafka.LeastBytes{},
		}
		defer writer.Close()
		events = writer
		logger.Log.Infow("Login events enabled", "brokers", kafkaBrokers, "topic", kafkaTopic)
	}

	// Initialize services
	authClient := facades.NewAuthHTTPFacade(&http.Client{}, apiURL)
	logger.Log.Infow("Authentication endpoint configured", "url", authClient.LoginURL())
	loginService := services.NewLoginService(authClient, store, events)
	tokener := jwt.New()

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", appHost, appPort),
		Handler: newRouter(loginService, store, tokener, appHost, appPort),
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		logger.Log.Infof("HTTP server listening on %s:%s", appHost, appPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}
