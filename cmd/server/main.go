package main

import (
	"context"
	"log"
	netHttp "net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"career-guide/auth"
	"career-guide/config"
	"career-guide/db"
	"career-guide/http"
	"career-guide/http/handlers"
	"career-guide/http/middleware"
	"career-guide/logger"
	"career-guide/repository"
	"career-guide/services"
	"career-guide/services/kafka"
	"career-guide/storage"
)

func main() {
	// Determine project root by searching upward for go.mod
	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal("Error getting current working directory:", err)
	}

	absProjectRoot := findProjectRoot(cwd)
	if absProjectRoot == "" {
		log.Fatalf("Could not locate project root (go.mod) from %s", cwd)
	}

	if err := os.Chdir(absProjectRoot); err != nil {
		log.Fatal("Error changing to project root:", err)
	}

	// Load configuration
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Default().SetLevel(logger.ParseLevel(cfg.LogLevel))
	logger.Info("Working directory set to project root: %s", absProjectRoot)

	if err := cfg.Validate(); err != nil {
		logger.Fatal("Invalid configuration: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	adapter, err := openStorage(ctx, cfg)
	if err != nil {
		logger.Fatal("Error initializing storage: %v", err)
	}
	defer db.Close()

	repos := repository.New(repository.NewStore(adapter))

	counselorHash := repository.PlaceholderPasswordHash
	if cfg.SeedCounselorPassword != "" {
		if counselorHash, err = auth.HashPassword(cfg.SeedCounselorPassword); err != nil {
			logger.Fatal("Error hashing seed counselor password: %v", err)
		}
	}
	if err := repository.SeedDefaults(ctx, repos, counselorHash); err != nil {
		logger.Fatal("Error seeding default data: %v", err)
	}

	// Kafka is optional; without brokers events are dropped and email goes
	// straight to SMTP.
	var (
		publisher services.Publisher
		producer  *kafka.Producer
		consumer  *kafka.Consumer
	)
	if brokers := cfg.Brokers(); len(brokers) > 0 {
		dlq := kafka.NewDeadLetterRecorder(repos.DeadLetters)
		producer = kafka.NewProducer(brokers, cfg.KafkaEventsTopic, cfg.KafkaEmailTopic)
		producer.SetDeadLetterSink(dlq)
		publisher = producer

		if cfg.EmailDelivery == config.DeliveryKafka {
			consumer = kafka.NewConsumer(brokers, cfg.KafkaEmailTopic, cfg.KafkaGroupID, dlq)
			consumer.Register(services.EventEmailSend, services.NewEmailWorker(services.NewSMTPSender(cfg)).HandleEmailSend)
			consumer.Start()
		}
	}

	mailer := services.NewMailer(cfg, publisher)
	events := services.NewEvents(publisher, cfg.KafkaEventsTopic)
	tokens := auth.NewJWTAuthenticator(cfg.JWTSecret, cfg.TokenTTL)

	h := &handlers.Handler{
		Users:        services.NewUserService(repos.Users, tokens, events),
		Assessments:  services.NewAssessmentService(repos.Assessments, repos.Users, events),
		Appointments: services.NewAppointmentService(repos.Appointments, repos.Users, mailer, events),
		Contacts:     services.NewContactService(repos.Contacts, mailer, cfg.AdminRecipient(), events),
		Blog:         repos.Blog,
		DeadLetters:  repos.DeadLetters,
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go limiter.Janitor(ctx)

	srv := &netHttp.Server{
		Addr:              ":" + cfg.Port,
		Handler:           http.SetupRoutes(h, middleware.NewGuard(tokens), limiter, cfg.ClientURL, logger.Default()),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Set up graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start server in a goroutine
	go func() {
		logger.Info("Server starting on :%s (storage=%s)", cfg.Port, cfg.StorageDriver)
		if err := srv.ListenAndServe(); err != nil && err != netHttp.ErrServerClosed {
			logger.Fatal("Server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-sigChan
	logger.Info("Shutdown signal received, draining requests...")

	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error shutting down server: %v", err)
	}
	cancel()

	if consumer != nil {
		if err := consumer.Stop(); err != nil {
			logger.Error("Error closing Kafka consumer: %v", err)
		}
	}
	if producer != nil {
		if err := producer.Close(); err != nil {
			logger.Error("Error closing Kafka producer: %v", err)
		}
	}

	logger.Info("Server shutdown complete")
}

// openStorage builds the adapter selected by STORAGE_DRIVER.
func openStorage(ctx context.Context, cfg config.Config) (storage.Adapter, error) {
	switch cfg.StorageDriver {
	case config.StorageMemory:
		logger.Warn("Using in-memory storage; data is lost on restart")
		return storage.NewMemoryAdapter(), nil
	case config.StoragePostgres:
		if err := db.InitDB(cfg); err != nil {
			return nil, err
		}
		return storage.NewPostgresAdapter(db.DB), nil
	case config.StorageRedis:
		if err := db.ConnectRedis(ctx, cfg); err != nil {
			return nil, err
		}
		return storage.NewRedisAdapter(db.Rdb, cfg.RedisPrefix), nil
	default:
		fa, err := storage.NewFileAdapter(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		return fa, nil
	}
}

// findProjectRoot walks up from start and returns the first directory containing go.mod
func findProjectRoot(start string) string {
	dir := start
	for {
		// check for go.mod
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		// move up
		parent := filepath.Dir(dir)
		if parent == dir || strings.HasSuffix(dir, ":\\") || parent == "" {
			break
		}
		dir = parent
	}
	return ""
}
