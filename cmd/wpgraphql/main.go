package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KimMachineGun/automemlimit/memlimit"
	"github.com/dustin/go-humanize"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/zap"

	"github.com/gocipe/wpgraphql"
	"github.com/gocipe/wpgraphql/config"
	"github.com/gocipe/wpgraphql/internal/logging"
	"github.com/gocipe/wpgraphql/internal/metric"
	"github.com/gocipe/wpgraphql/store"
	"github.com/gocipe/wpgraphql/store/memory"
	"github.com/gocipe/wpgraphql/store/sqlstore"
)

var (
	configPathFlag  = flag.String("config", "", "Path to the config file e.g. config.yaml")
	overrideEnvFlag = flag.String("override-env", "", "Path to a .env file overriding environment variables")
)

const shutdownTimeout = 30 * time.Second

func main() {
	flag.Parse()

	result, err := config.LoadConfig(*configPathFlag, *overrideEnvFlag)
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}
	cfg := result.Config

	logLevel, err := logging.ZapLogLevelFromString(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Could not parse log level: %v", err)
	}

	logger := logging.New(!cfg.JSONLog, cfg.LogLevel == "debug", logLevel).
		With(zap.String("component", "wpgraphql"))
	defer func() { _ = logger.Sync() }()

	if _, err := maxprocs.Set(maxprocs.Logger(logger.Sugar().Debugf)); err != nil {
		logger.Warn("Could not set GOMAXPROCS", zap.Error(err))
	}

	// GOMEMLIMIT at 90% of the container or system memory.
	mLimit, err := memlimit.SetGoMemLimitWithOpts(
		memlimit.WithRatio(0.9),
		memlimit.WithProvider(
			memlimit.ApplyFallback(
				memlimit.FromCgroupHybrid,
				memlimit.FromSystem,
			),
		),
	)
	if err != nil {
		logger.Warn("Could not set memory limit", zap.Error(err))
	} else if mLimit > 0 {
		logger.Info("GOMEMLIMIT set automatically", zap.String("limit", humanize.Bytes(uint64(mLimit))))
	} else if os.Getenv("GOMEMLIMIT") != "" {
		logger.Info("GOMEMLIMIT set by user", zap.String("limit", os.Getenv("GOMEMLIMIT")))
	}

	if !result.DefaultLoaded {
		logger.Info("Config file not found, running on environment settings", zap.String("path", config.DefaultConfigPath))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt,
		syscall.SIGHUP,
		syscall.SIGTERM,
		syscall.SIGQUIT,
		syscall.SIGINT,
	)
	defer stop()

	contentStore, db, closeStore, err := newStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Could not create content store", zap.Error(err))
	}
	defer closeStore()

	var (
		metrics    wpgraphql.Metrics = metric.Noop{}
		metricsSvr *http.Server
		promReg    = prometheus.NewRegistry()
	)
	if cfg.Metrics.Enabled {
		promReg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		prom, err := metric.NewPrometheus(promReg)
		if err != nil {
			logger.Fatal("Could not register metrics", zap.Error(err))
		}
		metrics = prom
		metricsSvr = metric.NewServer(logger, cfg.Metrics.ListenAddr, cfg.Metrics.Path, promReg)
	}

	maxBody, err := cfg.MaxRequestBodyBytes()
	if err != nil {
		logger.Fatal("Could not parse request body limit", zap.Error(err))
	}

	endpoint := wpgraphql.NewHTTPEndpoint(wpgraphql.EndpointOpts{
		Store:        contentStore,
		WPConfig:     result.WPConfig,
		Logger:       logger,
		Metrics:      metrics,
		RootURL:      cfg.RootURL,
		Debug:        cfg.Debug,
		MaxBodyBytes: maxBody,
	})

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Handle(cfg.GraphQLPath, endpoint)
	r.Get(cfg.HealthCheckPath, health(db))

	svr := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ErrorLog:          zap.NewStdLog(logger),
	}

	go func() {
		if err := svr.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Could not start server", zap.Error(err))
			stop()
		}
	}()
	if metricsSvr != nil {
		go func() {
			if err := metricsSvr.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("Could not start metrics server", zap.Error(err))
			}
		}()
	}

	logger.Info("Server started",
		zap.String("listen_addr", cfg.ListenAddr),
		zap.String("graphql_path", cfg.GraphQLPath),
		zap.Int("post_types", len(result.WPConfig.PostTypes)),
	)

	<-ctx.Done()

	logger.Info("Graceful shutdown ...", zap.Duration("timeout", shutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := svr.Shutdown(shutdownCtx); err != nil {
		logger.Error("Could not shutdown server", zap.Error(err))
	}
	if metricsSvr != nil {
		if err := metricsSvr.Shutdown(shutdownCtx); err != nil {
			logger.Error("Could not shutdown metrics server", zap.Error(err))
		}
	}

	logger.Info("Server stopped")
}

// newStore serves the runtime kinds from fixtures and, when a database is
// configured, the database kinds from it.
func newStore(ctx context.Context, cfg config.Config, logger *zap.Logger) (store.Store, pinger, func(), error) {
	fixtures := memory.New()
	if cfg.FixturesPath != "" {
		var err error
		if fixtures, err = memory.LoadFile(cfg.FixturesPath); err != nil {
			return nil, nil, nil, err
		}
	}

	if cfg.Database.Driver == "" {
		return fixtures, nil, func() {}, nil
	}

	db, err := sqlstore.Open(sqlstore.Options{
		Driver:       sqlstore.Dialect(cfg.Database.Driver),
		DSN:          cfg.Database.DSN,
		TablePrefix:  cfg.Database.TablePrefix,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
		Logger:       logger.With(zap.String("component", "sqlstore")),
	})
	if err != nil {
		return nil, nil, nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.Ping(pingCtx); err != nil {
		_ = db.Close()
		return nil, nil, nil, err
	}

	closeDB := func() {
		if err := db.Close(); err != nil {
			logger.Error("Could not close database", zap.Error(err))
		}
	}
	return store.NewMux(fixtures).Handle(db, sqlstore.Kinds...), db, closeDB, nil
}

type pinger interface {
	Ping(ctx context.Context) error
}

// health reports unhealthy when the database cannot be reached. db may be nil.
func health(db pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			if err := db.Ping(r.Context()); err != nil {
				http.Error(w, "unhealthy", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}
}
