package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"gopkg.in/yaml.v3"

	"github.com/testnest/admin/internal/admin/cache"
	"github.com/testnest/admin/internal/admin/controller"
	"github.com/testnest/admin/internal/admin/db"
	"github.com/testnest/admin/internal/admin/events"
	"github.com/testnest/admin/internal/admin/handlers"
	"github.com/testnest/admin/internal/admin/observability"
)

// Config struct for YAML configuration
type Config struct {
	ServiceName      string        `yaml:"SERVICE_NAME"`
	GRPCPort         int           `yaml:"GRPC_PORT"`
	HTTPPort         int           `yaml:"HTTP_PORT"`
	DBHost           string        `yaml:"DB_HOST"`
	DBPort           int           `yaml:"DB_PORT"`
	DBUser           string        `yaml:"DB_USER"`
	DBPassword       string        `yaml:"DB_PASSWORD"`
	DBName           string        `yaml:"DB_NAME"`
	DBSSLMode        string        `yaml:"DB_SSLMODE"`
	DBConnectTimeout time.Duration `yaml:"DB_CONNECT_TIMEOUT"`
	RedisAddr        string        `yaml:"REDIS_ADDR"`
	CacheTTL         time.Duration `yaml:"CACHE_TTL"`
	KafkaBrokers     []string      `yaml:"KAFKA_BROKERS"`
	Topic            string        `yaml:"TOPIC"`
	ConsumerGroup    string        `yaml:"CONSUMER_GROUP"`
	JWTSecret        string        `yaml:"JWT_SECRET"`
	OTelEnabled      bool          `yaml:"OTEL_ENABLED"`
	OTelEndpoint     string        `yaml:"OTEL_ENDPOINT"`
}

func main() {
	logger := initLogger()
	defer func(logger *zap.Logger) {
		_ = logger.Sync()
	}(logger)

	cfg, err := loadConfig()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTracer, err := observability.InitTracer(ctx, observability.TracingConfig{
		Enabled:     cfg.OTelEnabled,
		ServiceName: cfg.ServiceName,
		Endpoint:    cfg.OTelEndpoint,
		Insecure:    true,
	}, logger)
	if err != nil {
		logger.Fatal("failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			logger.Error("failed to flush traces", zap.Error(err))
		}
	}()

	repo, err := db.NewRepository(ctx, initDatabase(cfg), logger)
	if err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}
	defer repo.Close()

	responseCache := initCache(ctx, cfg, logger)
	defer responseCache.Close()

	producer, err := events.NewProducer(cfg.KafkaBrokers, logger, cfg.Topic)
	if err != nil {
		logger.Fatal("failed to initialize Kafka producer", zap.Error(err))
	}
	defer producer.Close()

	consumer := events.NewConsumer(cfg.KafkaBrokers, cfg.ConsumerGroup, cfg.Topic, logger)
	consumer.RegisterHandler(responseCache.HandleEvent)
	consumer.Start(ctx)
	defer func() {
		cancel()
		consumer.Close()
	}()

	// Local eviction runs before the response is written; the kafka event
	// reaches the other instances and any other writer's cache.
	publisher := events.Fanout{events.PublisherFunc(responseCache.Evict), producer}

	services := handlers.Services{
		Employees:              controller.NewEmployeeService(repo, publisher, logger),
		Establishments:         controller.NewEstablishmentService(repo, publisher, logger),
		EstablishmentAddresses: controller.NewEstablishmentAddressService(repo, publisher, logger),
		EstablishmentContacts:  controller.NewEstablishmentContactService(repo, publisher, logger),
		EstablishmentPhones:    controller.NewEstablishmentPhoneService(repo, publisher, logger),
		EstablishmentMembers:   controller.NewEstablishmentMemberService(repo, publisher, logger),
		EmployeeRoles:          controller.NewEmployeeRoleService(repo, publisher, logger),
		SocialMediaPlatforms:   controller.NewSocialMediaPlatformService(repo, publisher, logger),
	}
	handler := handlers.NewHandler(services, responseCache, logger)

	server := handlers.NewServer(cfg.GRPCPort, cfg.HTTPPort, logger)
	if err := server.RegisterHTTPGateway(
		[]grpc.DialOption{
			grpc.WithTransportCredentials(insecure.NewCredentials()),
		},
		handler,
		cfg.JWTSecret); err != nil {
		logger.Fatal("Failed to register HTTP gateway", zap.Error(err))
	}
	server.SetServing(true)

	go func() {
		if err := server.Start(); err != nil {
			logger.Fatal("Failed to start servers", zap.Error(err))
		}
	}()

	waitForShutdown(server, logger)
}

// initLogger initializes a Zap production logger.
func initLogger() *zap.Logger {
	logger, _ := zap.NewProduction()
	return logger
}

// loadConfig reads the YAML file at CONFIG_PATH, falling back to the
// bundled config.
func loadConfig() (*Config, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = filepath.Join("internal", "admin", "config", "config.yaml")
	}
	file, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(file, &cfg); err != nil {
		return nil, err
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		cfg.JWTSecret = secret
	}
	return &cfg, nil
}

// initDatabase initializes the database connection settings.
func initDatabase(cfg *Config) *db.Config {
	return &db.Config{
		Host:           cfg.DBHost,
		Port:           cfg.DBPort,
		User:           cfg.DBUser,
		Password:       cfg.DBPassword,
		DBName:         cfg.DBName,
		SSLMode:        cfg.DBSSLMode,
		ConnectTimeout: cfg.DBConnectTimeout,
	}
}

// initCache connects to redis. An unreachable redis is logged and the
// service keeps running; every cache operation then degrades to a miss.
func initCache(ctx context.Context, cfg *Config, logger *zap.Logger) *cache.ResponseCache {
	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	responseCache := cache.New(client, cfg.CacheTTL, logger)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := responseCache.Ping(pingCtx); err != nil {
		logger.Warn("redis unavailable, serving without cache", zap.String("addr", cfg.RedisAddr), zap.Error(err))
	}
	return responseCache
}

// waitForShutdown blocks until an interrupt or SIGTERM is received, then shuts down servers.
func waitForShutdown(server *handlers.Server, logger *zap.Logger) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	server.SetServing(false)
	server.Stop()
	logger.Info("Servers stopped properly")
}
