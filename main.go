package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ms-events/internal/config"
	"ms-events/internal/events/cache"
	"ms-events/internal/events/db"
	"ms-events/internal/events/event_api"
	"ms-events/internal/events/service"
	"ms-events/internal/kafka"
	"ms-events/internal/logger"
)

// connectStore picks the event store: MongoDB when MONGO_URI is set,
// otherwise the in-memory demo store. The returned close func is a
// no-op for the memory store.
func connectStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (service.EventDBLayer, func()) {
	if cfg.Mongo.URI == "" {
		log.Warn("DATABASE", "MONGO_URI not set, using in-memory event store (demo mode)")
		return db.NewMemoryDB(), func() {}
	}

	var client *mongo.Client
	var err error
	maxRetries := 5

	for i := 0; i < maxRetries; i++ {
		log.Info("DATABASE", fmt.Sprintf("Attempting to connect to MongoDB (attempt %d/%d)", i+1, maxRetries))

		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		client, err = mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.Mongo.URI))
		if err == nil {
			err = client.Ping(connectCtx, nil)
		}
		cancel()

		if err == nil {
			break
		}
		log.Error("DATABASE", fmt.Sprintf("Failed to connect to MongoDB: %v", err))
		if i < maxRetries-1 {
			time.Sleep(2 * time.Second)
		}
	}
	if err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Failed to connect to MongoDB after %d attempts: %v", maxRetries, err))
	}

	log.Info("DATABASE", "✅ MongoDB connection successful")

	collection := client.Database(cfg.Mongo.Database).Collection(cfg.Mongo.Collection)
	closeFn := func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}
	return &db.DB{Events: collection}, closeFn
}

func connectRedis(ctx context.Context, addr string, log *logger.Logger) *redis.Client {
	if addr == "" {
		log.Warn("REDIS", "REDIS_ADDR not set, list caching disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("REDIS", fmt.Sprintf("Redis connection failed, list caching disabled: %v", err))
		return nil
	}
	log.Info("REDIS", fmt.Sprintf("✅ Redis connection successful to %s", addr))
	return client
}

func main() {
	log := logger.NewLogger()
	defer log.Close()

	log.Info("APP", "Starting Event Dashboard service initialization")

	if err := godotenv.Load(); err != nil {
		log.Warn("CONFIG", ".env file not found, using environment variables")
	} else {
		log.Info("CONFIG", "Loaded environment variables from .env file")
	}

	cfg := config.Load()
	ctx := context.Background()

	store, closeStore := connectStore(ctx, cfg, log)
	defer closeStore()

	redisClient := connectRedis(ctx, cfg.Redis.Addr, log)
	if redisClient != nil {
		defer redisClient.Close()
	}

	eventService := service.NewEventService(store, cfg.App.BaseURL)
	eventService.Logger = log

	if redisClient != nil {
		eventService.Cache = cache.NewListCache(redisClient, cfg.Redis.CacheTTL, log)
	}

	if cfg.Kafka.Enabled {
		if err := kafka.EnsureTopicExists(cfg.Kafka.Brokers, cfg.Kafka.Topics.EventCreated); err != nil {
			log.Warn("KAFKA", fmt.Sprintf("Topic creation might have failed: %v", err))
		}
		producer := kafka.NewProducer(cfg.Kafka.Brokers)
		defer producer.Close()
		eventService.Producer = producer
		eventService.Topic = cfg.Kafka.Topics.EventCreated
		log.Info("KAFKA", "Kafka producer initialized successfully")
	} else {
		log.Info("KAFKA", "Kafka disabled, event announcements off")
	}

	handler := event_api.NewHandler(eventService, log)

	log.Info("HTTP", "Setting up router")
	r := chi.NewRouter()
	r.Route("/api/events", func(r chi.Router) {
		r.Get("/", handler.ListEvents)
		r.Post("/", handler.CreateEvent)
		r.Get("/{code}/qr", handler.EventQR)
	})
	log.Info("ROUTER", "Event routes registered under /api/events")

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("HTTP", fmt.Sprintf("🚀 Event Dashboard service running on %s", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP", fmt.Sprintf("HTTP server error: %v", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	log.Info("APP", "Service started successfully, waiting for shutdown signal")
	<-stop

	log.Info("APP", "Shutdown signal received, initiating graceful shutdown")
	ctxShutdown, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Error("HTTP", fmt.Sprintf("Server Shutdown Failed: %v", err))
	} else {
		log.Info("HTTP", "✅ Event Dashboard service shutdown complete")
	}
}
