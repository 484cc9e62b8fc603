package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/newsbook/newsbook-api/handlers"
	"github.com/newsbook/newsbook-api/internal/article/repository"
	articlesvc "github.com/newsbook/newsbook-api/internal/article/service"
	"github.com/newsbook/newsbook-api/internal/config"
	"github.com/newsbook/newsbook-api/internal/database"
	"github.com/newsbook/newsbook-api/internal/search"
	"github.com/newsbook/newsbook-api/internal/tokens"
	"github.com/newsbook/newsbook-api/internal/users"
	"github.com/newsbook/newsbook-api/pkg/logger"
	"github.com/newsbook/newsbook-api/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

const mongoConnectAttempts = 5

func main() {
	// LOG_LEVEL: debug|info|warn|error|fatal
	logger.Init(os.Getenv("LOG_LEVEL"))
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.LogLevel)
	logger.Debugf("log level %s", logger.LevelString())
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.JWT.Secret == config.DevSecret {
		logger.Warnf("JWT_SECRET not set; using the development secret")
	}
	logger.Infof("config loaded: env=%s mongo=%v redis=%v news_api=%v", cfg.Server.Environment, cfg.MongoDB.URI != "", cfg.Redis.Host != "", cfg.News.APIKey != "")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var rdb *redis.Client
	if cfg.Redis.Host != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warnf("redis %s:%s not reachable: %v", cfg.Redis.Host, cfg.Redis.Port, err)
		} else {
			logger.Infof("connected to redis %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
		defer func() { _ = rdb.Close() }()
	}

	tok := tokens.NewService(cfg)
	deps := handlers.Deps{
		Tokens: tok,
		Search: search.NewService(cfg.News),
		Redis:  rdb,
	}

	if cfg.MongoDB.URI != "" {
		logger.Infof("connecting to MongoDB %s", config.RedactURI(cfg.MongoDB.URI))
		client, err := database.ConnectWithRetry(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout, mongoConnectAttempts)
		if err != nil {
			logger.Fatalf("%v", err)
		}
		defer func() {
			dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(dctx)
		}()
		db := client.Database(cfg.MongoDB.Database)

		userRepo := users.NewMongoUserRepository(db.Collection("users"))
		articlesCol := db.Collection("articles")
		ictx, cancel := context.WithTimeout(ctx, cfg.MongoDB.Timeout)
		if err := userRepo.EnsureIndexes(ictx); err != nil {
			logger.Warnf("users index: %v", err)
		}
		if err := repository.NewMongoRepo(articlesCol).EnsureIndexes(ictx); err != nil {
			logger.Warnf("articles index: %v", err)
		}
		cancel()

		deps.Users = users.NewService(userRepo, tok)
		deps.Articles = articlesvc.NewMongoService(articlesCol)
		deps.Store = database.ClientPinger{Client: client}
	} else {
		logger.Warn("MONGODB_URI not set; using in-memory storage (data is lost on restart)")
		deps.Users = users.NewService(users.NewMemoryUserRepository(), tok)
		deps.Articles = articlesvc.NewMemoryService()
	}
	if deps.Search.Demo() {
		logger.Info("NEWS_API_KEY not set; /search serves demo results")
	}

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r := handlers.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		logger.Infof("newsbook API listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		logger.Errorf("graceful shutdown failed: %v", err)
	}
}
