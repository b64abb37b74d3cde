package config

import (
	"testing"

	"github.com/albrtbc/mv-thread-digest/internal/fetch"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.FetchWindowSize != 4 {
		t.Errorf("FetchWindowSize = %d, want 4", cfg.FetchWindowSize)
	}
	if cfg.MaxPageSpan != fetch.MaxPageSpan {
		t.Errorf("MaxPageSpan = %d, want %d", cfg.MaxPageSpan, fetch.MaxPageSpan)
	}
	if cfg.BatchCharBudget != 24000 {
		t.Errorf("BatchCharBudget = %d, want 24000", cfg.BatchCharBudget)
	}
	if cfg.LLMProvider != "openai" {
		t.Errorf("LLMProvider = %q, want openai", cfg.LLMProvider)
	}
	if cfg.SummaryLanguage != "es" {
		t.Errorf("SummaryLanguage = %q, want es", cfg.SummaryLanguage)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("FETCH_WINDOW_SIZE", "8")
	t.Setenv("LLM_PROVIDER", "gemini")
	t.Setenv("LLM_TEMPERATURE", "0.7")
	t.Setenv("FETCH_WINDOW_DELAY_MS", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.FetchWindowSize != 8 {
		t.Errorf("FetchWindowSize = %d, want 8", cfg.FetchWindowSize)
	}
	if cfg.LLMProvider != "gemini" {
		t.Errorf("LLMProvider = %q, want gemini", cfg.LLMProvider)
	}
	if cfg.LLMTemperature != 0.7 {
		t.Errorf("LLMTemperature = %v, want 0.7", cfg.LLMTemperature)
	}
	if cfg.FetchWindowDelay != 200 {
		t.Errorf("FetchWindowDelay = %d, want default 200 on bad input", cfg.FetchWindowDelay)
	}
}
