package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/twmb/franz-go/pkg/kgo"

	"resident/internal/apiclient"
	grievancehandler "resident/internal/grievance/handler"
	grievanceservice "resident/internal/grievance/service"
	grievancestore "resident/internal/grievance/store"
	identityservice "resident/internal/identity/service"
	identitymemory "resident/internal/identity/store/memory"
	identityredis "resident/internal/identity/store/redis"
	jwttoken "resident/internal/jwt_token"
	otphandler "resident/internal/otp/handler"
	otpmetrics "resident/internal/otp/metrics"
	"resident/internal/otp/quota"
	otpservice "resident/internal/otp/service"
	"resident/internal/platform/config"
	"resident/internal/platform/httpserver"
	platformkafka "resident/internal/platform/kafka"
	"resident/internal/platform/logger"
	"resident/internal/platform/metrics"
	"resident/internal/platform/postgres"
	platformredis "resident/internal/platform/redis"
	"resident/internal/transaction/refid"
	txstore "resident/internal/transaction/store"
	audit "resident/pkg/platform/audit"
	"resident/pkg/platform/audit/publisher"
	"resident/pkg/platform/audit/store/fanout"
	auditkafka "resident/pkg/platform/audit/store/kafka"
	auditmemory "resident/pkg/platform/audit/store/memory"
	auditpostgres "resident/pkg/platform/audit/store/postgres"
	"resident/pkg/platform/middleware/metadata"
	"resident/pkg/platform/middleware/ratelimit"
	"resident/pkg/platform/middleware/request"
	"resident/pkg/platform/middleware/requesttime"
)

const shutdownTimeout = 10 * time.Second

// main loads configuration and runs the server until SIGINT or SIGTERM.
// Business logic lives in the internal service packages.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

// infra holds the optional backing services. Each is nil when not configured.
type infra struct {
	db    *sql.DB
	redis *platformredis.Client
	kafka *kgo.Client
}

func (i *infra) Close() {
	if i.kafka != nil {
		i.kafka.Close()
	}
	if i.redis != nil {
		_ = i.redis.Close()
	}
	if i.db != nil {
		_ = i.db.Close()
	}
}

func connect(ctx context.Context, cfg config.Server, log *slog.Logger) (*infra, error) {
	in := &infra{}
	var err error

	if in.db, err = postgres.Open(ctx, cfg.Database); err != nil {
		return nil, err
	}
	if in.db != nil {
		if err := postgres.Bootstrap(ctx, in.db); err != nil {
			in.Close()
			return nil, err
		}
		log.Info("postgres connected")
	} else {
		log.Warn("DATABASE_URL not set, using in-memory stores")
	}

	if in.redis, err = platformredis.New(ctx, cfg.Redis); err != nil {
		in.Close()
		return nil, err
	}
	if in.redis == nil {
		log.Warn("REDIS_URL not set, using in-process token cache")
	}

	if in.kafka, err = platformkafka.NewClient(ctx, cfg.Kafka); err != nil {
		in.Close()
		return nil, err
	}
	if in.kafka != nil {
		if err := platformkafka.EnsureTopic(ctx, in.kafka, cfg.Kafka); err != nil {
			// audit shipping still works if the topic is managed elsewhere
			log.Warn("could not ensure audit topic", "topic", cfg.Kafka.AuditTopic, "error", err)
		}
	}
	return in, nil
}

func run(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	in, err := connect(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("connect backing services: %w", err)
	}
	defer in.Close()

	handler, closeAudit := newRouter(cfg, log, in)
	defer closeAudit()

	srv := httpserver.New(cfg.Addr, handler)
	errCh := make(chan error, 1)
	go func() {
		log.Info("starting resident service", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}

// newRouter wires services onto whatever backing services are connected.
// The returned func flushes the audit publisher.
func newRouter(cfg config.Server, log *slog.Logger, in *infra) (http.Handler, func()) {
	reg := metrics.NewRegistry()

	auditPublisher := publisher.NewPublisher(auditSink(in, cfg.Kafka.AuditTopic),
		publisher.WithAsyncBuffer(cfg.AuditAsyncBuffer),
		publisher.WithLogger(log),
	)

	api := apiclient.New(cfg.APIs,
		apiclient.WithTimeout(cfg.UpstreamTimeout),
		apiclient.WithMetrics(apiclient.NewMetrics(reg)),
		apiclient.WithLogger(log),
	)

	var (
		tokenCache identityservice.TokenCache = identitymemory.NewTokenCache()
		quotaStore quota.Store                = quota.NewInMemoryStore()
	)
	if in.redis != nil {
		tokenCache = identityredis.NewTokenCache(in.redis)
		quotaStore = quota.NewRedisStore(in.redis)
	}
	identity := identityservice.New(api, tokenCache,
		identityservice.WithLogger(log),
		identityservice.WithCacheTTL(cfg.Identity.CacheTTL),
		identityservice.WithLangCode(cfg.LangCode),
	)

	var (
		transactions otpservice.TransactionStore = txstore.NewInMemory()
		tickets      grievanceservice.Store      = grievancestore.NewInMemory()
	)
	if in.db != nil {
		transactions = txstore.NewPostgres(in.db)
		tickets = grievancestore.NewPostgres(in.db)
	}

	otp := otpservice.New(api, identity, refid.New(identity, cfg.RefIDHashAlgorithm), transactions,
		otpservice.WithLogger(log),
		otpservice.WithAuditPublisher(auditPublisher),
		otpservice.WithMetrics(otpmetrics.New(reg)),
		otpservice.WithLangCode(cfg.LangCode),
		otpservice.WithQuota(quota.New(quotaStore, cfg.OTPQuota.Limit, cfg.OTPQuota.Window)),
	)
	grievance := grievanceservice.New(tickets, identity,
		grievanceservice.WithLogger(log),
		grievanceservice.WithAuditPublisher(auditPublisher),
	)

	jwtValidator := jwttoken.NewJWTServiceAdapter(
		jwttoken.NewJWTService(cfg.JWTSigningKey, cfg.JWTIssuer, cfg.JWTAudience),
	)
	limiter := ratelimit.New(cfg.OTPRatePerMinute, cfg.OTPRateBurst, ratelimit.WithLogger(log))

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(request.RequestID)
	r.Use(requesttime.Middleware)
	r.Use(metadata.ClientMetadata)
	r.Use(request.Logger(log))

	r.Get("/health", healthHandler(in))
	r.Handle("/metrics", metrics.Handler(reg))
	r.Route("/resident/v1", func(r chi.Router) {
		otphandler.New(otp, log, limiter).Register(r)
		grievancehandler.New(grievance, log, jwtValidator).Register(r)
	})
	return r, auditPublisher.Close
}

// auditSink fans audit events out to the database (or memory) and Kafka.
func auditSink(in *infra, topic string) audit.Store {
	var sinks []audit.Store
	if in.db != nil {
		sinks = append(sinks, auditpostgres.New(in.db))
	} else {
		sinks = append(sinks, auditmemory.NewInMemoryStore())
	}
	if in.kafka != nil {
		sinks = append(sinks, auditkafka.New(in.kafka, topic))
	}
	return fanout.New(sinks...)
}
