// Package fetch orchestrates bounded-concurrency retrieval of a page range.
package fetch

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"github.com/albrtbc/mv-thread-digest/internal/extract"
	"github.com/albrtbc/mv-thread-digest/internal/logger"
	"github.com/albrtbc/mv-thread-digest/internal/thread"
)

// MaxPageSpan is the largest page range a single run may request.
// Enforced by callers, not by FetchRange itself.
const MaxPageSpan = 30

// DocumentSource retrieves one raw thread page as a parsed document.
type DocumentSource interface {
	FetchDocument(ctx context.Context, thread string, page int) (*goquery.Document, error)
}

// Extractor turns a page document into normalized posts.
type Extractor interface {
	Extract(doc *goquery.Document) *extract.PageExtract
}

// Config holds fetcher tuning parameters.
type Config struct {
	// WindowSize bounds the number of in-flight page fetches.
	WindowSize int
	// WindowDelay is the pause between concurrency windows, a rate-limit
	// courtesy to the source.
	WindowDelay time.Duration
}

// Fetcher pulls a range of thread pages with bounded concurrency.
type Fetcher struct {
	source     DocumentSource
	extractor  Extractor
	windowSize int
	limiter    *rate.Limiter
	log        *logger.Logger
}

// New creates a fetcher.
func New(source DocumentSource, extractor Extractor, cfg Config, log *logger.Logger) *Fetcher {
	windowSize := cfg.WindowSize
	if windowSize <= 0 {
		windowSize = 4
	}
	delay := cfg.WindowDelay
	if delay <= 0 {
		delay = 200 * time.Millisecond
	}

	return &Fetcher{
		source:     source,
		extractor:  extractor,
		windowSize: windowSize,
		limiter:    rate.NewLimiter(rate.Every(delay), 1),
		log:        log,
	}
}

// outcome is the settled result of one page fetch+extract.
type outcome struct {
	page    int
	data    *thread.PageData
	title   string
	ambient string
	err     error
}

// FetchRange retrieves pages [from, to] of a thread in fixed-size concurrency
// windows. Every requested page resolves to exactly one entry in Pages or
// FetchErrors; a single page's failure never fails the run. An error is
// returned only for an invalid range or a cancelled context.
func (f *Fetcher) FetchRange(ctx context.Context, threadSlug string, from, to int, onProgress thread.ProgressFunc) (*thread.FetchResult, error) {
	if from < 1 {
		return nil, fmt.Errorf("invalid range: from %d must be >= 1", from)
	}
	if from > to {
		return nil, fmt.Errorf("invalid range: from %d > to %d", from, to)
	}

	total := to - from + 1
	result := &thread.FetchResult{}

	var title, ambient string
	attempted := 0

	for start := from; start <= to; start += f.windowSize {
		// paces window starts at least WindowDelay apart; the first window
		// consumes the limiter's initial token without blocking
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("wait between windows: %w", err)
		}

		end := start + f.windowSize - 1
		if end > to {
			end = to
		}

		outcomes := make(chan outcome, end-start+1)
		var wg sync.WaitGroup
		for page := start; page <= end; page++ {
			wg.Add(1)
			go func(page int) {
				defer wg.Done()
				outcomes <- f.fetchPage(ctx, threadSlug, page)
			}(page)
		}
		wg.Wait()
		close(outcomes)

		// fold outcomes in completion order
		for o := range outcomes {
			attempted++
			if o.err != nil {
				f.log.Warn().Err(o.err).Int("page", o.page).Msg("page fetch failed")
				result.FetchErrors = append(result.FetchErrors, o.page)
				continue
			}
			result.Pages = append(result.Pages, *o.data)
			if title == "" && o.title != "" {
				title = o.title
			}
			if ambient == "" && o.ambient != "" {
				ambient = o.ambient
			}
		}

		// the last window's event is the terminal one: every page has been
		// attempted by then, so current == total even when pages failed
		onProgress.Emit(thread.Progress{Phase: thread.PhaseFetching, Current: attempted, Total: total})
	}

	// completion order is unconstrained within a window; restore page order
	sort.Slice(result.Pages, func(i, j int) bool {
		return result.Pages[i].PageNumber < result.Pages[j].PageNumber
	})

	result.TotalPosts, result.TotalUniqueAuthors = Aggregate(result.Pages)
	result.ThreadTitle = title
	if result.ThreadTitle == "" {
		result.ThreadTitle = ambient
	}

	f.log.Info().
		Int("pages", len(result.Pages)).
		Int("failed", len(result.FetchErrors)).
		Int("posts", result.TotalPosts).
		Int("authors", result.TotalUniqueAuthors).
		Msg("fetch completed")

	return result, nil
}

func (f *Fetcher) fetchPage(ctx context.Context, threadSlug string, page int) outcome {
	doc, err := f.source.FetchDocument(ctx, threadSlug, page)
	if err != nil {
		return outcome{page: page, err: err}
	}

	ext := f.extractor.Extract(doc)

	return outcome{
		page:    page,
		data:    &thread.PageData{PageNumber: page, Posts: ext.Posts},
		title:   ext.Title,
		ambient: ext.Ambient,
	}
}
