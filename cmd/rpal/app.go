package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/arcAman07/research-pal/internal/config"
	"github.com/arcAman07/research-pal/internal/embedding"
	"github.com/arcAman07/research-pal/internal/llm"
	"github.com/arcAman07/research-pal/internal/pdf"
	"github.com/arcAman07/research-pal/internal/store"
	"github.com/arcAman07/research-pal/internal/summarize"
)

// loadConfig reads the config file, honoring the --config override.
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return config.Load(path)
}

// openStore opens the paper database. The Ollama embedder is attached
// only when the daemon answers a quick liveness probe, so commands keep
// working without it.
func openStore(cfg *config.Config, logger *zap.Logger) (*store.Store, error) {
	opts := []store.Option{store.WithLogger(logger)}

	ollama := embedding.NewOllama(
		embedding.WithBaseURL(cfg.OllamaURL),
		embedding.WithModel(cfg.EmbeddingModel),
	)
	probeCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if ollama.Available(probeCtx) {
		opts = append(opts, store.WithEmbedder(ollama))
	} else {
		logger.Info("ollama unavailable, text search will use substring matching")
	}

	return store.Open(cfg.DBPath, opts...)
}

// newSummarizer wires the full pipeline: LLM client, store, extractor.
// Fails with ErrNoCredentials when no API key is configured.
func newSummarizer(cfg *config.Config, st *store.Store, logger *zap.Logger) (*summarize.Summarizer, error) {
	client, err := llm.NewClient(
		llm.Credentials{OpenAIKey: cfg.OpenAIAPIKey, AnthropicKey: cfg.AnthropicAPIKey},
		llm.WithDefaultModel(cfg.DefaultModel),
		llm.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("creating LLM client: %w", err)
	}

	return summarize.New(client, st,
		summarize.WithExtractor(pdf.NewExtractor(cfg.ChunkSize, cfg.ChunkOverlap)),
		summarize.WithOutputTokenLimit(cfg.OutputTokenLimit),
		summarize.WithLogger(logger),
	), nil
}
