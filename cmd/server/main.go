package main

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "modernc.org/sqlite"

	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/adapters/api"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/adapters/email"
	web "github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/adapters/http"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/adapters/http/perf"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/adapters/metrics"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/adapters/storage"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/adapters/storage/kv"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/application/orchestrators"
	"github.com/oscar-guggiana-neto-neocol/lagana-coach-web/internal/config"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg := config.MustLoad()
	slog.SetDefault(setupLogger(cfg.Env))

	collector := perf.NewCollector(perf.DefaultRingSize)

	var timedDB *storage.TimedDB
	if cfg.KVDriver() == kv.DriverSQLite {
		db := openDB(cfg.Storage.DBPath)
		defer db.Close()
		timedDB = storage.NewTimedDB(db, collector, cfg.Storage.SlowQuery)
	}

	deps := kv.Dependencies{}
	if timedDB != nil {
		deps.SQL = timedDB
	}
	inner, err := kv.New(kv.Config{Driver: cfg.KVDriver(), RedisAddr: cfg.Storage.RedisAddr, Prefix: "lagana:"}, deps)
	if err != nil {
		log.Fatalf("failed to open session store: %v", err)
	}
	tokenKey, err := kv.ParseKey(cfg.Security.TokenKey)
	if err != nil {
		log.Fatalf("invalid LAGANA_TOKEN_KEY: %v", err)
	}
	if cfg.Security.TokenKey == "" {
		log.Println("WARNING: using random token key (sessions won't survive restart). Set LAGANA_TOKEN_KEY for production.")
	}
	sessions := kv.NewSealed(inner, tokenKey)

	stopCh := make(chan struct{})
	defer close(stopCh)
	if cfg.KVDriver() != kv.DriverRedis {
		// Redis expires keys itself.
		orchestrators.StartSessionSweeper(orchestrators.SweepSessionsDeps{Store: sessions}, orchestrators.DefaultSweepInterval, stopCh)
	}

	observers := api.Observers{metrics.Perf{Collector: collector}}
	var metricsHandler http.Handler
	if cfg.Metrics {
		prom := metrics.NewPrometheus()
		observers = append(observers, prom)
		metricsHandler = prom.Handler()
	}
	client := api.NewClient(api.Config{BaseURL: cfg.APIBaseURL, Timeout: cfg.APITimeout, Observer: observers})

	mailer := email.New(cfg.Mail.ResendKey, cfg.Mail.From)
	if cfg.Mail.ResendKey == "" {
		log.Println("Email sender configured (noop, set LAGANA_RESEND_KEY for real delivery)")
	}

	srv, err := web.NewServer(web.Options{
		API:             client,
		Sessions:        sessions,
		Mailer:          mailer,
		Collector:       collector,
		Metrics:         metricsHandler,
		MetricsToken:    cfg.Security.MetricsToken,
		FrontendBaseURL: cfg.FrontendBaseURL,
		CSRFKey:         loadCSRFKey(cfg.Security.CSRFKey),
		TrustedOrigins:  cfg.TrustedOrigins(),
		SecureCookies:   cfg.SecureCookies(),
		RateLimit:       cfg.RateLimit,
		SlowRequest:     cfg.SlowRequest,
	})
	if err != nil {
		log.Fatalf("failed to build server: %v", err)
	}

	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.APITimeout + 15*time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("server_started", "version", version, "addr", httpServer.Addr, "env", cfg.Env,
			"api", cfg.APIBaseURL, "session_store", cfg.KVDriver())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("server_shutdown", "error", err)
	}
	slog.Info("server_stopped")
}

// openDB opens the SQLite session database with WAL mode and a busy timeout
// and brings its schema up to date.
func openDB(dbPath string) *sql.DB {
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}
	if err := storage.MigrateDB(db, dbPath); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}
	slog.Info("database_ready", "path", dbPath, "schema", storage.LatestSchemaVersion())
	return db
}

// loadCSRFKey decodes the base64 CSRF secret. Config validation already
// requires it in production; in development a random key is generated per
// startup.
func loadCSRFKey(encoded string) []byte {
	if encoded != "" {
		key, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil || len(key) != 32 {
			log.Fatal("LAGANA_CSRF_KEY must be 32 bytes, base64 encoded")
		}
		return key
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (forms won't survive restart). Set LAGANA_CSRF_KEY for production.")
	return key
}

func setupLogger(env string) *slog.Logger {
	if env == config.EnvProduction {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
