// Command summarize runs the summarization pipeline once for a thread page
// range and prints the resulting summary as JSON on stdout.
package main

import (
	"context"
	"encoding/json"
	"flag"
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
	"github.com/albrtbc/mv-thread-digest/internal/thread"
)

func main() {
	var (
		threadSlug = flag.String("thread", "", "thread path, e.g. feda/hilo-de-ejemplo-12345")
		from       = flag.Int("from", 1, "first page")
		to         = flag.Int("to", 1, "last page")
		provider   = flag.String("provider", "", "override LLM_PROVIDER")
	)
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}
	if *provider != "" {
		cfg.LLMProvider = *provider
	}

	if err := logger.Init(cfg.LogLevel, cfg.LogFile); err != nil {
		fmt.Fprintln(os.Stderr, "failed to init logger:", err)
		os.Exit(1)
	}
	log := logger.Get()

	if *threadSlug == "" {
		log.Fatal().Msg("missing -thread")
	}
	if *from < 1 || *from > *to {
		log.Fatal().Int("from", *from).Int("to", *to).Msg("invalid page range")
	}
	if span := *to - *from + 1; span > cfg.MaxPageSpan {
		log.Fatal().Int("span", span).Int("max", cfg.MaxPageSpan).Msg("page range too large")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info().Msg("cancelled")
		cancel()
	}()

	generator, err := newGenerator(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create llm client")
	}

	forumClient := forum.NewClient(forum.Config{
		BaseURL:   cfg.ForumBaseURL,
		UserAgent: cfg.ForumUserAgent,
		Timeout:   time.Duration(cfg.ForumTimeoutSec) * time.Second,
	}, log)

	fetcher := fetch.New(forumClient, extract.New(log), fetch.Config{
		WindowSize:  cfg.FetchWindowSize,
		WindowDelay: time.Duration(cfg.FetchWindowDelay) * time.Millisecond,
	}, log)

	prompts := prompt.NewBuilder(cfg.LLMProvider, cfg.SummaryLanguage)
	orchestrator := summarize.New(generator, prompts, cfg.BatchCharBudget, log)

	onProgress := func(p thread.Progress) {
		evt := log.Info().Str("phase", string(p.Phase)).Int("current", p.Current).Int("total", p.Total)
		if p.TotalBatches > 0 {
			evt = evt.Int("batch", p.Batch).Int("total_batches", p.TotalBatches)
		}
		evt.Msg("progress")
	}

	result, err := fetcher.FetchRange(ctx, *threadSlug, *from, *to, onProgress)
	if err != nil {
		log.Fatal().Err(err).Msg("fetch failed")
	}

	summary, err := orchestrator.Summarize(ctx, result, onProgress)
	if err != nil {
		log.Fatal().Err(err).Msg("summarization failed")
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(summary); err != nil {
		log.Fatal().Err(err).Msg("encode summary")
	}
}

// newGenerator builds the configured text-generation client.
func newGenerator(ctx context.Context, cfg *config.Config) (summarize.Generator, error) {
	if cfg.LLMProvider == prompt.ProviderGemini {
		return llm.NewGemini(ctx, llm.GeminiConfig{
			APIKey:  cfg.GeminiAPIKey,
			Model:   cfg.GeminiModel,
			Timeout: time.Duration(cfg.LLMTimeoutSec) * time.Second,
		})
	}

	return llm.NewClient(llm.Config{
		BaseURL:     cfg.LLMBaseURL,
		Model:       cfg.LLMModel,
		APIKey:      cfg.LLMAPIKey,
		MaxTokens:   cfg.LLMMaxTokens,
		Temperature: float32(cfg.LLMTemperature),
		Timeout:     time.Duration(cfg.LLMTimeoutSec) * time.Second,
	}), nil
}
