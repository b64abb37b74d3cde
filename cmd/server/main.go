package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/albrtbc/mv-thread-digest/internal/config"
	"github.com/albrtbc/mv-thread-digest/internal/extract"
	"github.com/albrtbc/mv-thread-digest/internal/fetch"
	"github.com/albrtbc/mv-thread-digest/internal/forum"
	"github.com/albrtbc/mv-thread-digest/internal/llm"
	"github.com/albrtbc/mv-thread-digest/internal/logger"
	"github.com/albrtbc/mv-thread-digest/internal/prompt"
	"github.com/albrtbc/mv-thread-digest/internal/summarize"
	"github.com/albrtbc/mv-thread-digest/internal/web"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	if err := logger.Init(cfg.LogLevel, cfg.LogFile); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	log := logger.Get()
	log.Info().Msg("starting thread digest server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info().Msg("received shutdown signal")
		cancel()
	}()

	summarizers, err := buildSummarizers(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create llm clients")
	}
	log.Info().Str("default_provider", cfg.LLMProvider).Int("providers", len(summarizers)).Msg("llm clients initialized")

	forumClient := forum.NewClient(forum.Config{
		BaseURL:   cfg.ForumBaseURL,
		UserAgent: cfg.ForumUserAgent,
		Timeout:   time.Duration(cfg.ForumTimeoutSec) * time.Second,
	}, log)

	extractor := extract.New(log)

	fetcher := fetch.New(forumClient, extractor, fetch.Config{
		WindowSize:  cfg.FetchWindowSize,
		WindowDelay: time.Duration(cfg.FetchWindowDelay) * time.Millisecond,
	}, log)

	hub := web.NewHub()
	go hub.Run()

	handler := web.NewSummarizeHandler(fetcher, summarizers, cfg.LLMProvider, hub, cfg.MaxPageSpan, log)
	server := web.NewServer(&web.Config{Port: cfg.HTTPPort}, hub, handler)

	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("http server listening")
		if err := server.Start(); err != nil {
			log.Error().Err(err).Msg("http server stopped")
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Stop(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("server shutdown error")
	}
	log.Info().Msg("shutdown complete")
}

// buildSummarizers creates one orchestrator per available provider so a
// request can pick a provider per run. Gemini is only offered when its API
// key is configured; the default provider must end up available.
func buildSummarizers(ctx context.Context, cfg *config.Config, log *logger.Logger) (map[string]web.Summarizer, error) {
	openaiGen := llm.NewClient(llm.Config{
		BaseURL:     cfg.LLMBaseURL,
		Model:       cfg.LLMModel,
		APIKey:      cfg.LLMAPIKey,
		MaxTokens:   cfg.LLMMaxTokens,
		Temperature: float32(cfg.LLMTemperature),
		Timeout:     time.Duration(cfg.LLMTimeoutSec) * time.Second,
	})

	summarizers := map[string]web.Summarizer{
		prompt.ProviderOpenAI: summarize.New(openaiGen,
			prompt.NewBuilder(prompt.ProviderOpenAI, cfg.SummaryLanguage), cfg.BatchCharBudget, log),
	}

	if cfg.GeminiAPIKey != "" {
		gemini, err := llm.NewGemini(ctx, llm.GeminiConfig{
			APIKey:  cfg.GeminiAPIKey,
			Model:   cfg.GeminiModel,
			Timeout: time.Duration(cfg.LLMTimeoutSec) * time.Second,
		})
		if err != nil {
			return nil, fmt.Errorf("create gemini client: %w", err)
		}
		summarizers[prompt.ProviderGemini] = summarize.New(gemini,
			prompt.NewBuilder(prompt.ProviderGemini, cfg.SummaryLanguage), cfg.BatchCharBudget, log)
	}

	if _, ok := summarizers[cfg.LLMProvider]; !ok {
		return nil, fmt.Errorf("configured provider %q is not available", cfg.LLMProvider)
	}

	return summarizers, nil
}
