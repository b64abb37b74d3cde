// Package forum retrieves raw discussion pages and parses them into documents.
package forum

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/albrtbc/mv-thread-digest/internal/logger"
)

// Client fetches thread pages over HTTP.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	log        *logger.Logger
}

// Config holds the forum client configuration.
type Config struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

// NewClient creates a forum client.
func NewClient(cfg Config, log *logger.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		userAgent:  cfg.UserAgent,
		log:        log,
	}
}

// PageURL builds the URL for one page of a thread.
func (c *Client) PageURL(thread string, page int) string {
	thread = strings.Trim(thread, "/")
	if page <= 1 {
		return fmt.Sprintf("%s/foro/%s", c.baseURL, thread)
	}
	return fmt.Sprintf("%s/foro/%s/%d", c.baseURL, thread, page)
}

// FetchDocument retrieves one thread page and parses it into a document.
func (c *Client) FetchDocument(ctx context.Context, thread string, page int) (*goquery.Document, error) {
	url := c.PageURL(thread, page)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch page %d: %w", page, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch page %d: unexpected status %d", page, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse page %d: %w", page, err)
	}

	c.log.Debug().Str("url", url).Int("page", page).Msg("page fetched")
	return doc, nil
}
