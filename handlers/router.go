package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/newsbook/newsbook-api/internal/apperr"
	articlesvc "github.com/newsbook/newsbook-api/internal/article/service"
	"github.com/newsbook/newsbook-api/internal/config"
	"github.com/newsbook/newsbook-api/internal/database"
	"github.com/newsbook/newsbook-api/internal/search"
	"github.com/newsbook/newsbook-api/internal/users"
	"github.com/newsbook/newsbook-api/pkg/logger"
	"github.com/newsbook/newsbook-api/pkg/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

// Deps are the services the router composes into routes.
type Deps struct {
	Users    *users.Service
	Tokens   middleware.Verifier
	Articles *articlesvc.Service
	Search   *search.Service
	// Store is nil when the API runs on in-memory repositories.
	Store database.Pinger
	Redis *redis.Client
}

// NewRouter builds the gin engine with the middleware chain and every route.
// ErrorHandler is installed first so it renders errors recorded by later middleware.
func NewRouter(cfg *config.Config, d Deps) *gin.Engine {
	r := gin.New()
	if err := r.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		logger.Warnf("invalid TRUSTED_PROXIES %v: %v", cfg.Server.TrustedProxies, err)
	}

	r.Use(
		middleware.ErrorHandler(!cfg.IsProduction()),
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.Metrics(),
		middleware.SecureHeaders(),
		middleware.CORS(cfg.CORS.Origins),
	)
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && d.Redis != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(d.Redis, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	NewHealthHandler(d.Store, d.Redis).Register(r)
	RegisterSwagger(r)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	root := r.Group("/")
	NewAuthHandler(d.Users, d.Tokens).Register(root)
	NewArticleHandler(d.Articles, d.Tokens).Register(root)
	NewSearchHandler(d.Search).Register(root)

	r.NoRoute(func(c *gin.Context) {
		_ = c.Error(apperr.NotFound("Route not found"))
	})
	return r
}
