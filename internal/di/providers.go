package di

import (
	"context"
	"fmt"
	"time"

	"LOBSim/internal/domain/models"
	"LOBSim/internal/domain/repository"
	domsvc "LOBSim/internal/domain/service"
	"LOBSim/internal/handler/api"
	internalrepo "LOBSim/internal/repository"
	icache "LOBSim/internal/service/cache"
	"LOBSim/internal/services/analytics"
	"LOBSim/internal/services/features"
	"LOBSim/internal/services/sim"
	"LOBSim/internal/usecase"
	pkgch "LOBSim/pkg/clickhouse"
	"LOBSim/pkg/config"
	xhttp "LOBSim/pkg/http"
	pkgkafka "LOBSim/pkg/kafka"
	xlogger "LOBSim/pkg/logger"
	"LOBSim/pkg/metrics"
	"LOBSim/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*xlogger.Logger, error) {
	lc := &xlogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	}
	if lc.Level == "" {
		lc.Level = "info"
	}
	if lc.Format == "" {
		lc.Format = "console"
	}
	if lc.Output == "" {
		lc.Output = "stdout"
	}
	return xlogger.New(lc)
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideClickHouseClient creates a ClickHouse client when the backend
// needs one; otherwise no client is created.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if cfg.Backend.Type != "clickhouse" {
		return nil, nil
	}

	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout.Std(), cfg.ClickHouse.ReadTimeout.Std(), cfg.ClickHouse.WriteTimeout.Std()),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime.Std()),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.InitSchema(ctx, []string{
		"CREATE DATABASE IF NOT EXISTS " + cfg.ClickHouse.Database,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.lob_snapshots (
			ts DateTime64(3),
			symbol String,
			mid_price Float64,
			spread Float64,
			bid_prices Array(Float64),
			bid_sizes Array(Int64),
			bid_orders Array(Int64),
			ask_prices Array(Float64),
			ask_sizes Array(Int64),
			ask_orders Array(Int64),
			total_bid_volume Int64,
			total_ask_volume Int64,
			order_imbalance Float64,
			volatility Float64,
			trade_price Float64,
			trade_size Int64,
			trade_side String
		) ENGINE=MergeTree ORDER BY (symbol, ts)`, cfg.ClickHouse.Database),
	}); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}

	return client, nil
}

// ProvideKafkaProducer creates a Kafka producer when the backend needs one.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if cfg.Backend.Type != "kafka" {
		return nil, nil
	}

	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger.Std()),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout.Std(), cfg.Kafka.Producer.ReadTimeout.Std()),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}

	return producer, nil
}

// ProvideSnapshotStore creates ClickHouse snapshot storage.
func ProvideSnapshotStore(chClient *pkgch.Client, cfg *config.Config) repository.SnapshotStore {
	if chClient == nil {
		return nil
	}
	return internalrepo.NewClickHouseSnapshotStore(chClient.DB(), cfg.ClickHouse.Database+".lob_snapshots")
}

// ProvideSnapshotPublisher creates Kafka snapshot publisher.
func ProvideSnapshotPublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.SnapshotPublisher {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaSnapshotPublisher(producer, cfg.Kafka.Topic)
}

// ProvideSimulator creates the order book simulator.
func ProvideSimulator() domsvc.Simulator {
	return sim.NewMarketSimulator()
}

// ProvideExtractor creates the feature extractor.
func ProvideExtractor() domsvc.FeatureExtractor {
	return features.NewExtractor()
}

// ProvideAnalyzer creates the forecast engine.
func ProvideAnalyzer() domsvc.Analyzer {
	return analytics.NewEngine()
}

// ProvideGenerationConfig builds the base generation config, falling back
// to reference defaults for unset fields.
func ProvideGenerationConfig(cfg *config.Config) models.GenerationConfig {
	gen := models.DefaultGenerationConfig(cfg.Simulation.Symbol)
	if cfg.Simulation.BasePrice > 0 {
		gen.BasePrice = cfg.Simulation.BasePrice
	}
	if cfg.Simulation.BaseVolatility > 0 {
		gen.BaseVolatility = cfg.Simulation.BaseVolatility
	}
	if cfg.Simulation.BaseSpread > 0 {
		gen.BaseSpread = cfg.Simulation.BaseSpread
	}
	if cfg.Simulation.VolatilityPersistence > 0 {
		gen.VolatilityPersistence = cfg.Simulation.VolatilityPersistence
	}
	if !cfg.Simulation.Start.IsZero() {
		gen.Start = cfg.Simulation.Start
	}
	if cfg.Simulation.TickInterval > 0 {
		gen.TickInterval = cfg.Simulation.TickInterval.Std()
	}
	return gen
}

// ProvideBytesCache selects Redis or the in-process TTL cache.
func ProvideBytesCache(cfg *config.Config) icache.BytesCache {
	if cfg.Cache.Redis.Enabled {
		return icache.NewRedisCache(icache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
	}
	return icache.NewTTLCache()
}

// ProvideDatasetBuilder creates the dataset builder use case.
func ProvideDatasetBuilder(
	simulator domsvc.Simulator,
	ex domsvc.FeatureExtractor,
	m repository.Metrics,
	gen models.GenerationConfig,
) *usecase.DatasetBuilder {
	return usecase.NewDatasetBuilder(simulator, ex, m, gen)
}

// ProvideSnapshotWriter creates the snapshot writer use case.
func ProvideSnapshotWriter(
	pub repository.SnapshotPublisher,
	store repository.SnapshotStore,
	m repository.Metrics,
	cfg *config.Config,
) *usecase.SnapshotWriter {
	return usecase.NewSnapshotWriter(pub, store, m, cfg.Backend.Type, cfg.Backend.BatchSize)
}

// ProvideAnalysisService creates the analysis use case.
func ProvideAnalysisService(
	builder *usecase.DatasetBuilder,
	analyzer domsvc.Analyzer,
	cache icache.BytesCache,
	m repository.Metrics,
	logger *xlogger.Logger,
	cfg *config.Config,
) *usecase.AnalysisService {
	ttl := cfg.Cache.TTL.Std()
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return usecase.NewAnalysisService(builder, analyzer, cache, ttl, m, logger)
}

// ProvideHandler creates the Echo HTTP handler.
func ProvideHandler(
	logger *xlogger.Logger,
	builder *usecase.DatasetBuilder,
	writer *usecase.SnapshotWriter,
	analysis *usecase.AnalysisService,
	store repository.SnapshotStore,
	cfg *config.Config,
) xhttp.Handler {
	return api.NewLOBEchoHandler(logger, builder, writer, analysis, store, api.RateLimitConfig{
		Enabled:      cfg.RateLimit.Enabled,
		Capacity:     cfg.RateLimit.Capacity,
		RefillPerSec: cfg.RateLimit.RefillPerSec,
	})
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	logger *xlogger.Logger,
	handler xhttp.Handler,
	builder *usecase.DatasetBuilder,
	writer *usecase.SnapshotWriter,
	chClient *pkgch.Client,
) *server.App {
	return server.New(cfg, logger, handler, builder, writer, chClient)
}
