package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"insightsynth/internal/config"
	"insightsynth/internal/handler"
	"insightsynth/internal/store"
	"insightsynth/internal/synthesizer"
	"insightsynth/pkg/llm"
)

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	modelCfg := llm.ModelConfig{
		Model:       cfg.Model,
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxOutputTokens,
	}

	var client llm.Client
	switch cfg.Provider {
	case config.ProviderAnthropic:
		client = llm.NewAnthropicClient(cfg.AnthropicAPIKey, modelCfg)
	default:
		client = llm.NewOpenAIClient(cfg.OpenAIAPIKey, modelCfg)
	}

	var sessions handler.SessionStore
	if cfg.RedisURL != "" {
		redisStore, err := store.NewRedis(cfg.RedisURL, cfg.SessionTTL)
		if err != nil {
			log.Fatalf("error connecting to Redis: %v", err)
		}
		defer redisStore.Close()
		sessions = redisStore
		slog.Info("using redis session store")
	} else {
		sessions = store.NewMemory(cfg.SessionTTL)
		slog.Info("using in-memory session store")
	}

	synth := synthesizer.New(client, cfg.MaxRows, cfg.RequestTimeout)

	insightHandler := handler.NewInsightHandler(sessions, synth, handler.Options{
		TextColumn:      cfg.TextColumn,
		PreviewRows:     cfg.PreviewRows,
		MaxRowsCap:      config.MaxRowsCap(),
		IncludeExcerpts: cfg.IncludeExcerpts,
	})

	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}

	if cfg.FrontendURL != "" {
		allowedOrigins = append(allowedOrigins, cfg.FrontendURL)
	}

	slog.Info("AllowOrigins URL:", "urls", allowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	r.POST("/uploads", insightHandler.Upload)
	r.GET("/uploads/:id", insightHandler.Preview)
	r.POST("/uploads/:id/analyze", insightHandler.Analyze)
	r.GET("/uploads/:id/report", insightHandler.GetReport)
	r.GET("/uploads/:id/report/download", insightHandler.DownloadReport)
	r.GET("/health", insightHandler.GetHealth)

	err = r.Run(cfg.BindAddr)
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
