package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"paperflow/internal/identity"
	"paperflow/internal/jwttoken"
	"paperflow/internal/paper/authz"
	paperhandler "paperflow/internal/paper/handler"
	paperservice "paperflow/internal/paper/service"
	paperstore "paperflow/internal/paper/store"
	"paperflow/internal/paper/store/cache"
	"paperflow/internal/platform/config"
	"paperflow/internal/platform/httpserver"
	"paperflow/internal/platform/logger"
	"paperflow/internal/platform/metrics"
	platformredis "paperflow/internal/platform/redis"
	"paperflow/internal/users"
	"paperflow/pkg/platform/audit"
	auditkafka "paperflow/pkg/platform/audit/kafka"
	auditmemory "paperflow/pkg/platform/audit/store/memory"
	auditpostgres "paperflow/pkg/platform/audit/store/postgres"
	auditworker "paperflow/pkg/platform/audit/worker"
)

// main wires dependencies and keeps the server lifecycle small. Business
// logic lives in the internal service packages. Every backing service is
// optional: without Postgres, Redis or Kafka the process still runs on
// in-memory stores, which is the development mode.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()

	// Persistence.
	var (
		papers   paperservice.PaperStore
		auditDst audit.Store
	)
	if cfg.Postgres.URL != "" {
		pool, err := pgxpool.New(ctx, cfg.Postgres.URL)
		if err != nil {
			fatal(log, "connect postgres", err)
		}
		defer pool.Close()
		if err := pool.Ping(ctx); err != nil {
			fatal(log, "ping postgres", err)
		}
		papers = paperstore.NewPostgres(pool)

		db, err := sql.Open("postgres", cfg.Postgres.URL)
		if err != nil {
			fatal(log, "open postgres for audit", err)
		}
		defer db.Close()
		auditDst = auditpostgres.New(db)
		log.Info("using postgres stores")
	} else {
		papers = paperstore.NewMemoryStore()
		auditDst = auditmemory.New()
		log.Warn("POSTGRES_URL not set, using in-memory stores")
	}

	auditPublisher := audit.NewPublisher(auditDst, audit.WithLogger(log))

	// Optional pending-approvals cache.
	var pending paperservice.PendingCache
	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		fatal(log, "connect redis", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
		pending = cache.New(redisClient.Client, cache.WithLogger(log))
		log.Info("pending-approvals cache enabled")
	}

	directory := users.NewDirectory(users.NewInMemoryStore(), users.WithLogger(log))

	guard := authz.NewGuard(cfg.Auth.AllowPlaceholderWrites)
	if cfg.Auth.AllowPlaceholderWrites {
		log.Warn("placeholder identity writes are enabled")
	}

	opts := []paperservice.Option{
		paperservice.WithLogger(log),
		paperservice.WithAuditPublisher(auditPublisher),
		paperservice.WithMetrics(m),
		paperservice.WithNameResolver(directory),
	}
	if pending != nil {
		opts = append(opts, paperservice.WithPendingCache(pending))
	}
	svc := paperservice.New(papers, guard, opts...)

	tokens := jwttoken.NewJWTService(cfg.Auth.JWTSigningKey, cfg.Auth.Issuer, cfg.Auth.Audience)
	resolver := identity.NewResolver(tokens, log)

	router := chi.NewRouter()
	router.Get("/healthz", healthz(redisClient))
	router.Handle("/metrics", promhttp.Handler())
	paperhandler.New(svc, resolver, log, m).Register(router)

	srv := httpserver.New(cfg.Server.Addr, router)

	group, groupCtx := errgroup.WithContext(ctx)

	// Optional audit fan-out to Kafka.
	if len(cfg.Kafka.Brokers) > 0 {
		sink, err := auditkafka.New(ctx, cfg.Kafka.Brokers, cfg.Kafka.Topic, log)
		if err != nil {
			fatal(log, "connect kafka", err)
		}
		defer sink.Close()
		worker := auditworker.New(auditPublisher.Outbox(), sink, log)
		group.Go(func() error {
			err := worker.Run(groupCtx)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		})
		log.Info("audit kafka sink enabled", "topic", cfg.Kafka.Topic)
	}

	group.Go(func() error {
		log.Info("starting paperflow", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		fatal(log, "server error", err)
	}
	log.Info("shutdown complete")
}

func healthz(redisClient *platformredis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if redisClient != nil {
			if err := redisClient.Health(r.Context()); err != nil {
				http.Error(w, "redis unavailable", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}

func fatal(log *slog.Logger, msg string, err error) {
	log.Error(msg, "error", err)
	os.Exit(1)
}
