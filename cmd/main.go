package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/samirnagib/app-lista-compras/internal/cache"
	"github.com/samirnagib/app-lista-compras/internal/domain"
	"github.com/samirnagib/app-lista-compras/internal/geo"
	h "github.com/samirnagib/app-lista-compras/internal/http"
	"github.com/samirnagib/app-lista-compras/internal/pricing"
	"github.com/samirnagib/app-lista-compras/internal/repository"
	"github.com/samirnagib/app-lista-compras/internal/service"
)

type Config struct {
	HTTPPort        string
	MongoURI        string
	MongoDBName     string
	RedisAddr       string
	RedisPassword   string
	UserLatitude    string
	UserLongitude   string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("could not load .env: %v", err)
	}

	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		MongoURI:        getEnv("MONGO_URI", ""),
		MongoDBName:     getEnv("MONGO_DB_NAME", "listadb"),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		UserLatitude:    getEnv("USER_LAT", ""),
		UserLongitude:   getEnv("USER_LNG", ""),
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	cfg := loadConfig()
	ctx := context.Background()

	// Persistence: MongoDB when configured, in-memory otherwise.
	var repo repository.ListRepository
	if cfg.MongoURI != "" {
		db, err := repository.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
		if err != nil {
			log.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		repo = repository.NewMongoRepository(db)
		log.Printf("Connected to MongoDB at %s", cfg.MongoURI)
	} else {
		repo = repository.NewMemoryRepository()
		log.Println("MONGO_URI not set, using in-memory repository")
	}

	// Cache is optional.
	var listCache cache.ListCache
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		})
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatal("Redis connection failed:", err)
		}
		listCache = cache.NewRedisCache(redisClient)
		log.Printf("Connected to Redis at %s", cfg.RedisAddr)
	}

	listService := service.NewListService(repo, listCache)

	location := geo.StaticLocation{Location: parseLocation(cfg)}
	priceProvider := pricing.NewBreakerProvider(pricing.NewSimulatedProvider(time.Now().UnixNano()))
	compareService := service.NewCompareService(location, geo.MockFinder{}, priceProvider)

	router := h.NewRouter(
		h.NewListHandler(listService),
		h.NewCompareHandler(listService, compareService),
		cfg.RequestTimeout,
	)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Lista de compras API starting on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}

// parseLocation reads the configured user position. Without one the
// comparison endpoint reports location unavailable, which the client
// surfaces as an empty state.
func parseLocation(cfg *Config) *domain.Location {
	if cfg.UserLatitude == "" || cfg.UserLongitude == "" {
		return nil
	}
	lat, errLat := strconv.ParseFloat(cfg.UserLatitude, 64)
	lng, errLng := strconv.ParseFloat(cfg.UserLongitude, 64)
	if errLat != nil || errLng != nil {
		log.Printf("invalid USER_LAT/USER_LNG, ignoring: %q %q", cfg.UserLatitude, cfg.UserLongitude)
		return nil
	}
	return &domain.Location{Latitude: lat, Longitude: lng}
}
