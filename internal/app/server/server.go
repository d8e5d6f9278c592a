package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ulule/limiter/v3"

	"hrportal/internal/domain/audit"
	"hrportal/internal/domain/auth"
	"hrportal/internal/domain/benefits"
	"hrportal/internal/domain/compliance"
	"hrportal/internal/domain/employee"
	"hrportal/internal/domain/leave"
	"hrportal/internal/domain/org"
	"hrportal/internal/domain/payroll"
	"hrportal/internal/domain/performance"
	"hrportal/internal/domain/recruitment"
	"hrportal/internal/domain/reports"
	"hrportal/internal/domain/training"
	"hrportal/internal/platform/config"
	cryptoutil "hrportal/internal/platform/crypto"
	"hrportal/internal/platform/db"
	"hrportal/internal/platform/metrics"
	"hrportal/internal/transport/http/api"
	audithandler "hrportal/internal/transport/http/handlers/audit"
	benefitshandler "hrportal/internal/transport/http/handlers/benefits"
	compliancehandler "hrportal/internal/transport/http/handlers/compliance"
	employeehandler "hrportal/internal/transport/http/handlers/employees"
	leavehandler "hrportal/internal/transport/http/handlers/leave"
	orghandler "hrportal/internal/transport/http/handlers/org"
	payrollhandler "hrportal/internal/transport/http/handlers/payroll"
	performancehandler "hrportal/internal/transport/http/handlers/performance"
	recruitmenthandler "hrportal/internal/transport/http/handlers/recruitment"
	reportshandler "hrportal/internal/transport/http/handlers/reports"
	traininghandler "hrportal/internal/transport/http/handlers/training"
	"hrportal/internal/transport/http/middleware"
)

type App struct {
	Config  config.Config
	DB      *pgxpool.Pool
	Metrics *metrics.Collector
	Router  http.Handler
}

type routeRegistrar interface {
	RegisterRoutes(r chi.Router)
}

type pinger interface {
	Ping(ctx context.Context) error
}

type routerOptions struct {
	Config    config.Config
	Logger    *slog.Logger
	DB        pinger
	Metrics   *metrics.Collector
	RateStore limiter.Store
	Handlers  []routeRegistrar
}

// prepareSchema runs the configured migrations and seed over the admin
// connection. The application pool is reused when no separate admin URL is set.
func prepareSchema(ctx context.Context, cfg config.Config, pool *pgxpool.Pool) error {
	if !cfg.RunMigrations && !cfg.RunSeed {
		return nil
	}
	admin := pool
	if url := cfg.AdminDatabaseURL(); url != cfg.DatabaseURL {
		var err error
		admin, err = db.Connect(ctx, url)
		if err != nil {
			return fmt.Errorf("connect admin database: %w", err)
		}
		defer admin.Close()
	}
	if cfg.RunMigrations {
		if err := db.Migrate(ctx, admin); err != nil {
			return err
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, admin); err != nil {
			return err
		}
	}
	return nil
}

// New connects to the database, prepares the schema when configured to and
// assembles the HTTP router. Close releases the pool.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := prepareSchema(ctx, cfg, pool); err != nil {
		pool.Close()
		return nil, err
	}

	crypto, err := cryptoutil.New(cfg.DataEncryptionKey)
	if err != nil {
		pool.Close()
		return nil, err
	}
	if !crypto.Configured() {
		logger.Warn("DATA_ENCRYPTION_KEY not set; sensitive fields are stored without encryption")
	}

	store, err := middleware.NewRateLimitStore(cfg.RateLimitStorage, cfg.RateLimitRedisURL)
	if err != nil {
		logger.Warn("rate limit store unavailable, using memory", "storage", cfg.RateLimitStorage, "err", err)
		store, err = middleware.NewRateLimitStore("memory", "")
		if err != nil {
			pool.Close()
			return nil, err
		}
	}

	var collector *metrics.Collector
	if cfg.MetricsEnabled {
		collector = metrics.New()
	}

	perms := auth.StaticPermissions{}
	auditSvc := audit.New(pool)
	payrollSvc := payroll.NewService(pool, crypto)

	handlers := []routeRegistrar{
		employeehandler.NewHandler(employee.NewService(pool, crypto), payrollSvc, perms, auditSvc),
		orghandler.NewHandler(org.NewService(org.NewStore(pool)), perms, auditSvc),
		payrollhandler.NewHandler(payrollSvc, perms),
		leavehandler.NewHandler(leave.NewService(pool), perms, auditSvc),
		performancehandler.NewHandler(performance.NewService(pool), perms, auditSvc),
		benefitshandler.NewHandler(benefits.NewService(pool), perms, auditSvc),
		traininghandler.NewHandler(training.NewService(pool), perms, auditSvc),
		recruitmenthandler.NewHandler(recruitment.NewService(pool), perms, auditSvc),
		compliancehandler.NewHandler(compliance.NewService(pool), perms, auditSvc),
		reportshandler.NewHandler(reports.NewService(pool, collector), perms, auditSvc),
		audithandler.NewHandler(auditSvc, perms),
	}

	router := newRouter(routerOptions{
		Config:    cfg,
		Logger:    logger,
		DB:        pool,
		Metrics:   collector,
		RateStore: store,
		Handlers:  handlers,
	})

	return &App{Config: cfg, DB: pool, Metrics: collector, Router: router}, nil
}

func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
}

func newRouter(opts routerOptions) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(opts.Logger))
	router.Use(chimw.Recoverer)
	router.Use(middleware.SecureHeaders(opts.Config.IsProduction()))
	router.Use(middleware.Metrics(opts.Metrics))
	router.Use(middleware.BodyLimit(opts.Config.MaxBodyBytes))
	router.Use(middleware.Auth(opts.Config.JWTSecret))
	router.Use(middleware.RateLimit(opts.Config.RateLimitPerMinute, opts.RateStore))

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		api.Fail(w, http.StatusNotFound, "not_found", "route not found", middleware.GetRequestID(r.Context()))
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		api.Fail(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed", middleware.GetRequestID(r.Context()))
	})

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if opts.DB == nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := opts.DB.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if opts.Metrics != nil {
		router.Handle("/metrics", opts.Metrics.Handler())
	}

	router.Route("/api/v1", func(r chi.Router) {
		for _, h := range opts.Handlers {
			h.RegisterRoutes(r)
		}
	})

	return router
}
