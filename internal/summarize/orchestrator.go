// Package summarize orchestrates the two-tier map-reduce summarization of a
// fetched thread: one batch-summary call per page batch, then one meta-summary
// call fusing the surviving batch summaries.
package summarize

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/albrtbc/mv-thread-digest/internal/logger"
	"github.com/albrtbc/mv-thread-digest/internal/prompt"
	"github.com/albrtbc/mv-thread-digest/internal/thread"
)

// Generator abstracts the text-generation provider.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// State of a summarization run.
type State string

const (
	StateIdle            State = "idle"
	StateBatching        State = "batching"
	StateSummarizing     State = "summarizing"
	StateMetaSummarizing State = "meta_summarizing"
	StateDone            State = "done"
	StateFailed          State = "failed"
)

// Errors surfaced to callers.
var (
	// ErrNoPages means the fetch produced no usable pages at all.
	ErrNoPages = errors.New("no pages to summarize")
	// ErrAllBatchesFailed means the provider failed for every batch. A summary
	// built from zero evidence is not a summary.
	ErrAllBatchesFailed = errors.New("all batch summarizations failed")
)

// DefaultBatchCharBudget bounds the combined post content per batch. Tunable
// via config; sized to stay well inside common provider context limits.
const DefaultBatchCharBudget = 24000

// Orchestrator runs the batch and meta summarization phases.
type Orchestrator struct {
	gen         Generator
	prompts     *prompt.Builder
	batchBudget int
	log         *logger.Logger

	mu    sync.Mutex
	state State
}

// New creates an orchestrator. budget <= 0 selects the default.
func New(gen Generator, prompts *prompt.Builder, budget int, log *logger.Logger) *Orchestrator {
	if budget <= 0 {
		budget = DefaultBatchCharBudget
	}
	return &Orchestrator{
		gen:         gen,
		prompts:     prompts,
		batchBudget: budget,
		log:         log,
		state:       StateIdle,
	}
}

// State reports the current run state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

func (o *Orchestrator) setState(s State) {
	o.mu.Lock()
	o.state = s
	o.mu.Unlock()
	o.log.Debug().Str("state", string(s)).Msg("run state changed")
}

// Summarize produces one final summary for a fetch result. A single batch
// failure degrades completeness, never correctness: the fused summary only
// references batches that succeeded. The run fails only when no batch at all
// produced a usable summary.
func (o *Orchestrator) Summarize(ctx context.Context, result *thread.FetchResult, onProgress thread.ProgressFunc) (*thread.Summary, error) {
	o.setState(StateBatching)

	if len(result.Pages) == 0 {
		o.setState(StateFailed)
		return nil, ErrNoPages
	}

	pageCount := len(result.Pages)
	batches := Partition(result.Pages, o.batchBudget)
	totalBatches := len(batches)

	o.log.Info().
		Int("pages", pageCount).
		Int("batches", totalBatches).
		Int("budget", o.batchBudget).
		Msg("pages partitioned")

	o.setState(StateSummarizing)

	var survivors []thread.BatchSummary
	failed := 0

	for i, batch := range batches {
		onProgress.Emit(thread.Progress{
			Phase:        thread.PhaseSummarizing,
			Current:      i,
			Total:        totalBatches,
			Batch:        i + 1,
			TotalBatches: totalBatches,
		})

		summary, err := o.summarizeBatch(ctx, pageCount, batch)
		if err != nil {
			o.log.Warn().Err(err).Int("batch", i+1).Msg("batch summarization failed")
			failed++
			continue
		}
		survivors = append(survivors, *summary)
	}

	onProgress.Emit(thread.Progress{
		Phase:        thread.PhaseSummarizing,
		Current:      totalBatches,
		Total:        totalBatches,
		TotalBatches: totalBatches,
	})

	if len(survivors) == 0 {
		o.setState(StateFailed)
		return nil, fmt.Errorf("%w: %d batches attempted", ErrAllBatchesFailed, totalBatches)
	}

	final := survivors[0]
	if len(survivors) > 1 {
		o.setState(StateMetaSummarizing)
		fused, err := o.metaSummarize(ctx, pageCount, survivors)
		if err != nil {
			// degrade rather than fail: there is usable batch evidence
			o.log.Warn().Err(err).Msg("meta summarization failed, fusing locally")
			fused = fuseLocally(survivors, prompt.ScaledLimits(pageCount))
			failed++
		}
		final = *fused
	}

	limits := prompt.ScaledLimits(pageCount)
	summary := &thread.Summary{
		Topic:         final.Topic,
		KeyPoints:     clip(final.KeyPoints, limits.MaxKeyPoints),
		Participants:  clip(final.Participants, limits.MaxParticipants),
		Status:        final.Status,
		ThreadTitle:   result.ThreadTitle,
		PagesUsed:     len(result.Pages),
		PagesFailed:   len(result.FetchErrors),
		BatchesUsed:   len(survivors),
		BatchesFailed: totalBatches - len(survivors),
		Coverage:      thread.CoverageComplete,
	}
	if summary.PagesFailed > 0 || summary.BatchesFailed > 0 || failed > 0 {
		summary.Coverage = thread.CoveragePartial
	}

	o.setState(StateDone)

	o.log.Info().
		Int("batches_used", summary.BatchesUsed).
		Int("batches_failed", summary.BatchesFailed).
		Str("coverage", summary.Coverage).
		Msg("summarization completed")

	return summary, nil
}

func (o *Orchestrator) summarizeBatch(ctx context.Context, pageCount int, batch []thread.PageData) (*thread.BatchSummary, error) {
	text := o.prompts.BatchPrompt(pageCount, formatPages(batch))

	raw, err := o.gen.Generate(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("batch call: %w", err)
	}

	return ParseBatchSummary(raw)
}

func (o *Orchestrator) metaSummarize(ctx context.Context, pageCount int, summaries []thread.BatchSummary) (*thread.BatchSummary, error) {
	text := o.prompts.MetaPrompt(pageCount, formatBatchSummaries(summaries))

	raw, err := o.gen.Generate(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("meta call: %w", err)
	}

	return ParseBatchSummary(raw)
}

// formatPages renders a batch of pages as prompt input.
func formatPages(batch []thread.PageData) string {
	var sb strings.Builder
	for _, page := range batch {
		fmt.Fprintf(&sb, "--- Página %d ---\n", page.PageNumber)
		for _, post := range page.Posts {
			fmt.Fprintf(&sb, "#%d %s: %s\n", post.Number, post.Author, post.Content)
		}
	}
	return sb.String()
}

// formatBatchSummaries renders surviving batch summaries as meta prompt input.
// Failed batches are never referenced here.
func formatBatchSummaries(summaries []thread.BatchSummary) string {
	var sb strings.Builder
	for i, summary := range summaries {
		data, _ := json.Marshal(summary)
		fmt.Fprintf(&sb, "Tramo %d: %s\n", i+1, data)
	}
	return sb.String()
}

// fuseLocally builds a final summary from batch summaries without a provider
// call. Used only when the meta call fails after at least two batches
// succeeded: the run still returns a (partial) result instead of erroring.
func fuseLocally(summaries []thread.BatchSummary, limits prompt.Limits) *thread.BatchSummary {
	fused := &thread.BatchSummary{
		Topic:  summaries[0].Topic,
		Status: summaries[len(summaries)-1].Status,
	}

	for _, s := range summaries {
		fused.KeyPoints = append(fused.KeyPoints, s.KeyPoints...)
	}
	fused.KeyPoints = clip(fused.KeyPoints, limits.MaxKeyPoints)

	seen := make(map[string]struct{})
	for _, s := range summaries {
		for _, p := range s.Participants {
			key := strings.ToLower(p)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			fused.Participants = append(fused.Participants, p)
		}
	}
	fused.Participants = clip(fused.Participants, limits.MaxParticipants)

	return fused
}

func clip(items []string, max int) []string {
	if len(items) <= max {
		return items
	}
	return items[:max]
}
