package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pv-mining-sim/internal/api/handlers"
	"pv-mining-sim/internal/api/middleware"
	"pv-mining-sim/internal/config"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config (empty = study defaults)")
	flag.Parse()

	production := os.Getenv("API_ENV") == "production"

	var log *zap.Logger
	var err error
	if production {
		log, err = zap.NewProduction()
	} else {
		log, err = zap.NewDevelopment()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("failed to load config", zap.String("path", *configPath), zap.Error(err))
	}

	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	if production {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Apply middleware
	router.Use(middleware.CORS())
	router.Use(middleware.Logger(log))
	router.Use(middleware.ErrorHandler(log))

	// Initialize handlers
	compareHandler := handlers.NewCompareHandler(cfg, log)
	parametersHandler := handlers.NewParametersHandler(cfg)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API routes
	api := router.Group("/api/v1")
	{
		api.POST("/compare", compareHandler.RunCompare)
		api.GET("/parameters", parametersHandler.GetParameters)
		api.GET("/carbon", parametersHandler.GetCarbon)
	}

	addr := fmt.Sprintf(":%s", port)
	log.Info("starting API server", zap.String("addr", addr))
	if err := router.Run(addr); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}
