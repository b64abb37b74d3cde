// Package extract turns parsed forum pages into normalized post records.
package extract

import (
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/albrtbc/mv-thread-digest/internal/logger"
	"github.com/albrtbc/mv-thread-digest/internal/thread"
)

const (
	// MinCharsPerPost is the content floor; shorter posts are noise and dropped.
	MinCharsPerPost = 40
	// MaxCharsPerPost is the content ceiling; longer posts are hard-cut.
	MaxCharsPerPost = 1000
	// Ellipsis marks truncated content.
	Ellipsis = "…"
)

// noiseSelector matches sub-trees that carry no summarizable text: quoted
// replies, spoilers, embedded media and signatures.
const noiseSelector = "blockquote, .quote, .cita, .spoiler, .video, iframe, video, img, .firma, .signature"

// PageExtract is the result of extracting one page document. Ambient carries
// the document title, used as a thread-title fallback when no page yields one.
type PageExtract struct {
	Title   string
	Ambient string
	Posts   []thread.Post
}

// Extractor converts a page document into an ordered list of posts.
type Extractor struct {
	log *logger.Logger
}

// New creates an extractor.
func New(log *logger.Logger) *Extractor {
	return &Extractor{log: log}
}

// Extract walks the post nodes of a page document and returns the surviving
// posts sorted ascending by number, together with the thread title if the
// page carries one. A malformed post node is skipped with a warning; it never
// aborts extraction of the remaining posts.
func (e *Extractor) Extract(doc *goquery.Document) *PageExtract {
	out := &PageExtract{
		Title:   strings.TrimSpace(doc.Find("h1#title, h1.thread-title, h1").First().Text()),
		Ambient: AmbientTitle(doc),
	}

	doc.Find("div.post").Each(func(i int, sel *goquery.Selection) {
		post, ok := e.extractPost(i, sel)
		if !ok {
			return
		}
		out.Posts = append(out.Posts, post)
	})

	sort.Slice(out.Posts, func(i, j int) bool {
		return out.Posts[i].Number < out.Posts[j].Number
	})

	return out
}

// AmbientTitle returns the document title, used as a fallback when no page
// yields a thread title.
func AmbientTitle(doc *goquery.Document) string {
	return strings.TrimSpace(doc.Find("title").First().Text())
}

func (e *Extractor) extractPost(idx int, sel *goquery.Selection) (thread.Post, bool) {
	body := sel.Find(".post-contents").First()
	if body.Length() == 0 {
		e.log.Warn().Int("index", idx).Msg("post node without contents, skipping")
		return thread.Post{}, false
	}

	// strip noise before taking text
	body = body.Clone()
	body.Find(noiseSelector).Remove()

	content := collapseWhitespace(body.Text())
	if utf8.RuneCountInString(content) < MinCharsPerPost {
		return thread.Post{}, false
	}

	content = truncate(content)

	post := thread.Post{
		Number:    postNumber(sel),
		Author:    author(sel),
		Content:   content,
		CharCount: utf8.RuneCountInString(content),
	}

	if ts, ok := sel.Find("time").First().Attr("datetime"); ok {
		post.Timestamp = ts
	} else {
		post.Timestamp = strings.TrimSpace(sel.Find(".fecha").First().Text())
	}

	if src, ok := sel.Find(".autor img, img.avatar").First().Attr("src"); ok {
		post.AvatarURL = src
	}

	if v := votes(sel); v > 0 {
		post.Votes = v
	}

	return post, true
}

// postNumber resolves the 1-based post position from the data-num attribute,
// falling back to a positional element id. Unparseable numbers default to 0
// rather than rejecting the post.
func postNumber(sel *goquery.Selection) int {
	if raw, ok := sel.Attr("data-num"); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil && n >= 0 {
			return n
		}
	}
	if id, ok := sel.Attr("id"); ok {
		if rest, found := strings.CutPrefix(id, "post-"); found {
			if n, err := strconv.Atoi(rest); err == nil && n >= 0 {
				return n
			}
		}
	}
	return 0
}

func author(sel *goquery.Selection) string {
	name := strings.TrimSpace(sel.Find(".autor").First().Text())
	if name == "" {
		name = thread.AnonymousAuthor
	}
	return name
}

func votes(sel *goquery.Selection) int {
	if raw, ok := sel.Attr("data-votes"); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil && n >= 0 {
			return n
		}
	}
	raw := strings.TrimSpace(sel.Find(".num-votes").First().Text())
	if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
		return n
	}
	return 0
}

// collapseWhitespace reduces every whitespace run to a single space and trims.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncate hard-cuts content above the ceiling and appends the ellipsis marker.
func truncate(s string) string {
	runes := []rune(s)
	if len(runes) <= MaxCharsPerPost {
		return s
	}
	return string(runes[:MaxCharsPerPost]) + Ellipsis
}
