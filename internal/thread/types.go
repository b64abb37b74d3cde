// Package thread defines the domain types shared across the summarization pipeline.
package thread

import "strings"

// AnonymousAuthor is the placeholder for posts whose author could not be resolved.
const AnonymousAuthor = "anónimo"

// Post is one user contribution within a thread page.
// Content is normalized plain text: quotes, spoilers, embedded media and
// signatures removed, whitespace collapsed. CharCount reflects the length of
// Content after any truncation, including the ellipsis marker.
type Post struct {
	Number    int    `json:"number"`
	Author    string `json:"author"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp,omitempty"`
	CharCount int    `json:"char_count"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Votes     int    `json:"votes,omitempty"`
}

// PageData is one successfully fetched and extracted page.
// Posts are ordered ascending by Number. Immutable after creation.
type PageData struct {
	PageNumber int    `json:"page_number"`
	Posts      []Post `json:"posts"`
}

// PostCount returns the number of posts on the page.
func (p *PageData) PostCount() int {
	return len(p.Posts)
}

// UniqueAuthors returns the set of lower-cased author names on the page.
func (p *PageData) UniqueAuthors() map[string]struct{} {
	authors := make(map[string]struct{}, len(p.Posts))
	for _, post := range p.Posts {
		authors[strings.ToLower(post.Author)] = struct{}{}
	}
	return authors
}

// ContentLength returns the total character count of the page's post content.
func (p *PageData) ContentLength() int {
	total := 0
	for _, post := range p.Posts {
		total += post.CharCount
	}
	return total
}

// FetchResult is the aggregate of one multi-page fetch run.
// Every requested page number appears in exactly one of Pages or FetchErrors.
type FetchResult struct {
	Pages              []PageData `json:"pages"`
	TotalPosts         int        `json:"total_posts"`
	TotalUniqueAuthors int        `json:"total_unique_authors"`
	ThreadTitle        string     `json:"thread_title"`
	FetchErrors        []int      `json:"fetch_errors"`
}

// BatchSummary is the structured output of one batch-summary call.
type BatchSummary struct {
	Topic        string   `json:"topic"`
	KeyPoints    []string `json:"key_points"`
	Participants []string `json:"participants"`
	Status       string   `json:"status"`
}

// Coverage values for a final Summary.
const (
	CoverageComplete = "complete"
	CoveragePartial  = "partial"
)

// Summary is the final output of a summarization run. It carries the fused
// summary plus bookkeeping so callers can report "N of M pages/batches used"
// instead of presenting a partial result as complete.
type Summary struct {
	Topic        string   `json:"topic"`
	KeyPoints    []string `json:"key_points"`
	Participants []string `json:"participants"`
	Status       string   `json:"status"`

	ThreadTitle   string `json:"thread_title"`
	PagesUsed     int    `json:"pages_used"`
	PagesFailed   int    `json:"pages_failed"`
	BatchesUsed   int    `json:"batches_used"`
	BatchesFailed int    `json:"batches_failed"`
	Coverage      string `json:"coverage"`
}
