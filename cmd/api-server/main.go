package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jfuentes/recipebox/internal/auth"
	"github.com/jfuentes/recipebox/internal/cache"
	"github.com/jfuentes/recipebox/internal/config"
	"github.com/jfuentes/recipebox/internal/database"
	"github.com/jfuentes/recipebox/internal/handlers"
	"github.com/jfuentes/recipebox/internal/logger"
	"github.com/jfuentes/recipebox/internal/middleware"
	redisclient "github.com/jfuentes/recipebox/internal/redis"
	"github.com/jfuentes/recipebox/internal/service"
	"github.com/jfuentes/recipebox/internal/storage"
)

func main() {
	log := logger.New("api-server")
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: %v", err)
	}

	dbConfig := database.Config{
		PrimaryDSN:      cfg.Database.PrimaryDSN,
		ReplicaDSNs:     cfg.Database.ReplicaDSNs,
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
		MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
	}

	if err := database.RunMigrations(ctx, cfg.Database.PrimaryDSN); err != nil {
		log.Fatal("Failed to run migrations: %v", err)
	}

	dbManager, err := database.NewDBManager(ctx, dbConfig)
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer dbManager.Close()

	redisClient, err := redisclient.NewRedisClient(ctx, redisclient.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal("Failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	userStorage := storage.NewPostgresUserStorage(dbManager)
	tagStorage := storage.NewPostgresAttributeStorage(dbManager, "tags")
	ingredientStorage := storage.NewPostgresAttributeStorage(dbManager, "ingredients")
	recipeStorage := storage.NewPostgresRecipeStorage(dbManager)

	tokenManager := auth.NewTokenManager(auth.NewRedisTokenStore(redisClient.GetClient()), cfg.Auth.TokenBytes)
	recipeCache := cache.NewRecipeCache(cfg.Cache.L1Capacity, redisClient.GetClient(), cfg.Cache.L2TTL)

	userService := service.NewUserService(userStorage, cfg.Auth.MinPasswordLength)
	tokenService := service.NewTokenService(userService, tokenManager)
	tagService := service.NewAttributeService(tagStorage, "tag")
	ingredientService := service.NewAttributeService(ingredientStorage, "ingredient")
	recipeService := service.NewRecipeService(recipeStorage, tagService, ingredientService, recipeCache)

	userHandler := handlers.NewUserHandler(userService, tokenService)
	tagHandler := handlers.NewAttributeHandler(tagService)
	ingredientHandler := handlers.NewAttributeHandler(ingredientService)
	recipeHandler := handlers.NewRecipeHandler(recipeService)
	healthHandler := handlers.NewHealthHandler(dbManager, redisClient)

	authMW := middleware.NewAuthMiddleware(tokenService)
	rateLimiter := middleware.NewRateLimiter(redisClient.GetClient(), cfg.RateLimit.Requests, cfg.RateLimit.Window)

	mux := http.NewServeMux()

	mux.HandleFunc("/user/create/", rateLimiter.Middleware(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			userHandler.Create(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}))

	mux.HandleFunc("/user/token/", rateLimiter.Middleware(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			userHandler.Token(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}))

	mux.HandleFunc("/user/me/", authMW.RequireAuth(userHandler.Me))
	mux.HandleFunc("/recipes/tags/", authMW.RequireAuth(tagHandler.Collection))
	mux.HandleFunc("/recipes/ingredients/", authMW.RequireAuth(ingredientHandler.Collection))

	mux.HandleFunc("/recipes/recipes/", authMW.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/recipes/recipes/" {
			recipeHandler.Collection(w, r)
		} else {
			recipeHandler.Item(w, r)
		}
	}))

	mux.HandleFunc("/health", healthHandler.Health)

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: mux,
	}

	go func() {
		log.Info("API server listening on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down API server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Shutdown error: %v", err)
	}
	log.Info("API server stopped")
}
