// cmd/suggestion-worker/main.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"trip-suggestions/internal/common/aws"
	"trip-suggestions/internal/common/cache"
	"trip-suggestions/internal/common/camunda"
	"trip-suggestions/internal/common/config"
	"trip-suggestions/internal/common/database"
	"trip-suggestions/internal/common/logger"
	"trip-suggestions/internal/common/metrics"
	"trip-suggestions/internal/common/observability"
	"trip-suggestions/internal/models"
	"trip-suggestions/internal/suggestions"
	"trip-suggestions/internal/suggestions/catalog"
	"trip-suggestions/internal/suggestions/engagement"
	"trip-suggestions/internal/suggestions/preferences"
	"trip-suggestions/internal/suggestions/seed"

	css "trip-suggestions/internal/workers/suggestions/clear-suggestion-cache"
	gss "trip-suggestions/internal/workers/suggestions/get-smart-suggestions"
	ld "trip-suggestions/internal/workers/suggestions/like-destination"
	sup "trip-suggestions/internal/workers/suggestions/save-user-preference"
	"trip-suggestions/pkg/registry"
)

const (
	cachePrefixPreferences = "suggestions:prefs:"
	cachePrefixCandidates  = "suggestions:candidates:"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := logger.New("info", "json")
		boot.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	log.Info("Starting suggestion worker...", map[string]interface{}{
		"environment": cfg.App.Environment,
		"envFile":     cfg.EnvFile,
	})

	obs := observability.New("suggestion-worker")
	defer obs.Shutdown()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	retry := camunda.RetryConfig{MaxRetries: 15, BaseDelay: 2 * time.Second, MaxDelay: 30 * time.Second}

	// --- Zeebe ---
	zeebeClient, err := camunda.Connect(ctx, camunda.ClientConfig{
		GatewayAddress:         cfg.Camunda.BrokerAddress,
		UsePlaintextConnection: !cfg.Camunda.UseTLS,
		ConnectionTimeout:      config.GetDuration(cfg.Camunda.RequestTimeout),
		RetryConfig:            &retry,
	}, log)
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	log.Info("Zeebe client connected successfully", nil)

	// --- PostgreSQL ---
	pg, err := database.NewPostgres(cfg.Database.Postgres)
	if err != nil {
		zapLog.Fatal("postgres config invalid", zap.Error(err))
	}
	defer pg.Close()
	if err := camunda.Retry(ctx, retry, log, "PostgreSQL connection", func() error {
		return pg.Ping(ctx)
	}); err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	log.Info("PostgreSQL connected successfully", nil)

	// --- Elasticsearch (optional; the AI source is skipped without it) ---
	var es *database.ElasticsearchClient
	if cfg.Database.Elasticsearch.GetURL() != "" {
		es, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			zapLog.Fatal("elasticsearch config invalid", zap.Error(err))
		}
		if err := camunda.Retry(ctx, retry, log, "Elasticsearch connection", func() error {
			return es.Ping(ctx)
		}); err != nil {
			// The catalog breaker covers a flapping cluster, so start anyway.
			log.Warn("elasticsearch unreachable at startup", map[string]interface{}{"error": err.Error()})
		} else {
			log.Info("Elasticsearch connected successfully", nil)
		}
	}

	// --- Redis (only for the redis cache backend) ---
	var rdb *database.RedisClient
	if cfg.Suggestions.CacheBackend == config.CacheBackendRedis {
		rdb, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			zapLog.Fatal("redis config invalid", zap.Error(err))
		}
		defer rdb.Close()
		if err := camunda.Retry(ctx, retry, log, "Redis connection", func() error {
			return rdb.Ping(ctx)
		}); err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		log.Info("Redis connected successfully", nil)
	}

	svc := buildService(ctx, cfg, pg, es, rdb, obs, log)

	// --- Workers ---
	reg := loadRegistry(cfg.App.RegistryPath, log)
	var workers []worker.JobWorker
	start := func(taskType string, handler worker.JobHandler) {
		if reg != nil {
			if _, ok := reg.Find(taskType); !ok {
				log.Warn("task type missing from activity registry", map[string]interface{}{"taskType": taskType})
			}
		}
		w := camunda.StartWorker(zeebeClient, taskType, workerConfig(cfg, taskType), handler, obs, log)
		if w != nil {
			workers = append(workers, w)
		}
	}

	start(gss.TaskType, gss.NewHandler(&gss.Config{Timeout: workerConfig(cfg, gss.TaskType).Timeout}, svc, log).Handle)
	start(ld.TaskType, ld.NewHandler(&ld.Config{Timeout: workerConfig(cfg, ld.TaskType).Timeout}, svc, log).Handle)
	start(sup.TaskType, sup.NewHandler(&sup.Config{Timeout: workerConfig(cfg, sup.TaskType).Timeout}, svc, log).Handle)
	start(css.TaskType, css.NewHandler(&css.Config{Timeout: workerConfig(cfg, css.TaskType).Timeout}, svc, log).Handle)

	log.Info("workers registered", map[string]interface{}{"count": len(workers)})

	// --- Health & Metrics Server ---
	server := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           healthMux(zeebeClient, pg),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Info("Health/Metrics server listening", map[string]interface{}{"address": cfg.Server.Address})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Health/Metrics server failed", map[string]interface{}{"error": err.Error()})
		}
	}()

	// --- Graceful Shutdown ---
	<-ctx.Done()
	log.Info("Shutdown signal received, stopping workers...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, w := range workers {
		w.Close()
		w.AwaitClose()
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Error stopping health server", map[string]interface{}{"error": err.Error()})
	}
	if err := zeebeClient.Close(); err != nil {
		log.Error("Error closing Zeebe client", map[string]interface{}{"error": err.Error()})
	}

	log.Info("Suggestion worker stopped gracefully", nil)
}

func buildService(
	ctx context.Context,
	cfg *config.Config,
	pg *database.PostgresClient,
	es *database.ElasticsearchClient,
	rdb *database.RedisClient,
	obs *observability.Observability,
	log logger.Logger,
) *suggestions.Service {
	sc := cfg.Suggestions

	var (
		prefCache cache.Cache[[]models.DestinationPreference]
		candCache cache.Cache[[]models.Destination]
	)
	if rdb != nil {
		prefCache = cache.NewRedis[[]models.DestinationPreference](rdb.Client, cachePrefixPreferences, sc.PreferenceCacheTTLDuration(), log)
		if sc.CatalogCacheTTL > 0 {
			candCache = cache.NewRedis[[]models.Destination](rdb.Client, cachePrefixCandidates, sc.CatalogCacheTTLDuration(), log)
		}
	} else {
		prefCache = cache.NewMemory[[]models.DestinationPreference](sc.PreferenceCacheTTLDuration(), nil)
		if sc.CatalogCacheTTL > 0 {
			candCache = cache.NewMemory[[]models.Destination](sc.CatalogCacheTTLDuration(), nil)
		}
	}

	prefs := preferences.NewStore(preferences.NewPostgresSource(pg.DB), prefCache, log)

	remote := []catalog.Source{catalog.NewPopularSource(pg.DB, sc.PopularLimit)}
	if es != nil {
		remote = append(remote, catalog.NewAISource(es.Client, sc.AIIndex, sc.AILimit))
	}
	catOpts := []catalog.Option{
		catalog.WithFailureHook(func(source, reason string) {
			metrics.SuggestionSourceFailures.WithLabelValues(source, reason).Inc()
		}),
	}
	if candCache != nil {
		catOpts = append(catOpts, catalog.WithCache(candCache))
	}
	cat := catalog.New(remote, catalog.NewStaticSource(seed.Destinations()), catalog.Config{
		SourceTimeout:           sc.SourceTimeoutDuration(),
		Dedupe:                  sc.Dedupe,
		BreakerFailureThreshold: uint32(sc.BreakerFailureThreshold),
		BreakerOpenTimeout:      sc.BreakerOpenTimeoutDuration(),
	}, log, catOpts...)

	var publisher engagement.Publisher
	if cfg.Engagement.SNSTopicARN != "" {
		snsClient, err := aws.NewSNSClient(ctx, cfg.AWS.Region)
		if err != nil {
			log.Warn("SNS unavailable, like events will not be published", map[string]interface{}{"error": err.Error()})
		} else {
			publisher = snsClient
		}
	}
	recorder := engagement.NewRecorder(pg.DB, publisher, cfg.Engagement.SNSTopicARN, log)

	return suggestions.NewService(prefs, cat, recorder, suggestions.Config{
		MinRelevance: sc.MinRelevance,
		MaxResults:   sc.MaxResults,
	}, log, suggestions.WithObservability(obs))
}

// loadRegistry returns nil when the registry is absent or invalid; it is
// descriptive only and never blocks startup.
func loadRegistry(path string, log logger.Logger) *registry.ActivityRegistry {
	reg, err := registry.LoadRegistry(path)
	if err == nil {
		err = reg.Validate()
	}
	if err != nil {
		log.Warn("activity registry not loaded", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		})
		return nil
	}
	return reg
}

func workerConfig(cfg *config.Config, taskType string) camunda.WorkerConfig {
	wc := config.GetWorkerConfig(cfg, taskType)
	return camunda.WorkerConfig{
		Enabled:       wc.Enabled,
		MaxJobsActive: wc.MaxJobsActive,
		Timeout:       wc.TimeoutDuration(),
	}
}

func healthMux(zeebeClient zbc.Client, pg *database.PostgresClient) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, "healthy", nil)
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		checks := map[string]string{"zeebe": "ok", "postgres": "ok"}
		status := http.StatusOK
		if err := camunda.HealthCheck(ctx, zeebeClient, 3*time.Second); err != nil {
			checks["zeebe"] = err.Error()
			status = http.StatusServiceUnavailable
		}
		if err := pg.Ping(ctx); err != nil {
			checks["postgres"] = err.Error()
			status = http.StatusServiceUnavailable
		}
		state := "ready"
		if status != http.StatusOK {
			state = "not_ready"
		}
		writeStatus(w, status, state, checks)
	})
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/debug/pprof/", http.DefaultServeMux)
	return mux
}

func writeStatus(w http.ResponseWriter, code int, status string, checks map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status": status,
		"checks": checks,
		"time":   time.Now().Format(time.RFC3339),
	})
}
