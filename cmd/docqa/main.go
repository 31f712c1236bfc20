package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"docqa/internal/api"
	"docqa/internal/chunker"
	"docqa/internal/config"
	"docqa/internal/domain"
	"docqa/internal/extract"
	"docqa/internal/fetch"
	"docqa/internal/llm"
	"docqa/internal/retry"
	"docqa/internal/vectorstore"
	"docqa/internal/vectorstore/memory"
	"docqa/internal/vectorstore/qdrant"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	flag.StringVar(&cfgPath, "config", "config.yaml", "Path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	token := os.Getenv(cfg.Server.AuthTokenEnv)
	if token == "" {
		log.Fatalf("missing API token in env %s", cfg.Server.AuthTokenEnv)
	}

	policy := retry.Policy{
		Attempts: cfg.Retry.Attempts,
		MinDelay: time.Duration(cfg.Retry.MinBackoffSecs) * time.Second,
		MaxDelay: time.Duration(cfg.Retry.MaxBackoffSecs) * time.Second,
	}
	llmClient := llm.NewClient(llm.Config{
		BaseURL:    cfg.LLM.BaseURL,
		APIKey:     os.Getenv(cfg.LLM.APIKeyEnv),
		ChatModel:  cfg.LLM.ChatModel,
		EmbedModel: cfg.LLM.EmbedModel,
		Timeout:    time.Duration(cfg.LLM.TimeoutSecs) * time.Second,
		Policy:     policy,
	})

	var indexes vectorstore.Factory
	switch cfg.VectorStore.Type {
	case "memory", "":
		indexes = func() domain.Index {
			return memory.NewIndex(llmClient, cfg.Retrieval.EmbeddingDimension)
		}
	case "qdrant":
		if cfg.VectorStore.Qdrant == nil {
			log.Fatalf("qdrant config missing")
		}
		qcfg := qdrant.Config{
			URL:        cfg.VectorStore.Qdrant.URL,
			APIKey:     os.Getenv(cfg.VectorStore.Qdrant.APIKeyEnv),
			Collection: cfg.VectorStore.Qdrant.Collection,
			Timeout:    time.Duration(cfg.VectorStore.Qdrant.TimeoutSecs) * time.Second,
		}
		indexes = func() domain.Index {
			return qdrant.NewIndex(qcfg, llmClient, cfg.Retrieval.EmbeddingDimension)
		}
	default:
		log.Fatalf("unknown vector store: %s", cfg.VectorStore.Type)
	}

	downloader := fetch.NewDownloader(cfg.Fetch.TempDir, time.Duration(cfg.Fetch.TimeoutSecs)*time.Second)
	ch := chunker.NewParagraphChunker(cfg.Chunker.ChunkSize, cfg.Chunker.ChunkOverlap)
	h := api.NewHandler(downloader, extract.NewRegistry(), ch, llmClient, indexes, cfg.Retrieval.TopK)

	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())
	api.RegisterRoutes(app, h, token)

	log.Printf("listening on %s (vector store: %s)", cfg.Server.Addr, cfg.VectorStore.Type)
	log.Fatal(app.Listen(cfg.Server.Addr))
}
