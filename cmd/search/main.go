// Command search runs the news search proxy on its own, without accounts or storage.
package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/newsbook/newsbook-api/handlers"
	"github.com/newsbook/newsbook-api/internal/config"
	"github.com/newsbook/newsbook-api/internal/search"
	"github.com/newsbook/newsbook-api/pkg/logger"
	"github.com/newsbook/newsbook-api/pkg/middleware"
)

func main() {
	logger.Init(os.Getenv("LOG_LEVEL"))
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	port := os.Getenv("SEARCH_SERVICE_PORT")
	if port == "" {
		port = "5010"
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.ErrorHandler(!cfg.IsProduction()), middleware.Recovery(), middleware.RequestID(),
		middleware.RequestLogger(), middleware.CORS(cfg.CORS.Origins))

	svc := search.NewService(cfg.News)
	handlers.NewSearchHandler(svc).Register(&r.RouterGroup)
	handlers.NewHealthHandler(nil, nil).Register(r)

	logger.Infof("search proxy listening on :%s (demo=%v)", port, svc.Demo())
	if err := r.Run(":" + port); err != nil {
		logger.Fatalf("%v", err)
	}
}
