package extract

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/albrtbc/mv-thread-digest/internal/logger"
	"github.com/albrtbc/mv-thread-digest/internal/thread"
)

func parseHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

func post(num, author, content string) string {
	return `<div class="post" data-num="` + num + `">` +
		`<a class="autor">` + author + `</a>` +
		`<div class="post-contents">` + content + `</div>` +
		`</div>`
}

var longText = strings.Repeat("palabra clave del debate sobre el parche nuevo ", 30)

func TestExtract_NoiseRemoval(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantAbsent  string
		wantPresent string
	}{
		{
			name:        "quoted reply removed",
			body:        `<blockquote>texto citado de otro usuario</blockquote>` + longText,
			wantAbsent:  "texto citado",
			wantPresent: "palabra clave",
		},
		{
			name:        "spoiler removed",
			body:        `<div class="spoiler">muere al final de la temporada</div>` + longText,
			wantAbsent:  "muere al final",
			wantPresent: "palabra clave",
		},
		{
			name:        "embedded video removed",
			body:        `<div class="video"><iframe src="x"></iframe>descripcion del video</div>` + longText,
			wantAbsent:  "descripcion del video",
			wantPresent: "palabra clave",
		},
		{
			name:        "signature removed",
			body:        longText + `<div class="firma">mi firma con enlaces</div>`,
			wantAbsent:  "mi firma",
			wantPresent: "palabra clave",
		},
	}

	e := New(logger.Nop())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parseHTML(t, post("1", "alice", tt.body))
			out := e.Extract(doc)
			if len(out.Posts) != 1 {
				t.Fatalf("got %d posts, want 1", len(out.Posts))
			}
			content := out.Posts[0].Content
			if strings.Contains(content, tt.wantAbsent) {
				t.Errorf("content still contains noise %q", tt.wantAbsent)
			}
			if !strings.Contains(content, tt.wantPresent) {
				t.Errorf("content lost real text %q", tt.wantPresent)
			}
		})
	}
}

func TestExtract_FloorDropsShortPosts(t *testing.T) {
	doc := parseHTML(t, post("1", "alice", "+1")+post("2", "bob", longText))
	out := New(logger.Nop()).Extract(doc)

	if len(out.Posts) != 1 {
		t.Fatalf("got %d posts, want 1", len(out.Posts))
	}
	if out.Posts[0].Number != 2 {
		t.Errorf("kept post %d, want 2", out.Posts[0].Number)
	}
	if utf8.RuneCountInString(out.Posts[0].Content) < MinCharsPerPost {
		t.Errorf("kept post below floor: %d chars", utf8.RuneCountInString(out.Posts[0].Content))
	}
}

func TestExtract_CeilingTruncates(t *testing.T) {
	huge := strings.Repeat("a", 3*MaxCharsPerPost)
	doc := parseHTML(t, post("1", "alice", huge))
	out := New(logger.Nop()).Extract(doc)

	if len(out.Posts) != 1 {
		t.Fatalf("got %d posts, want 1", len(out.Posts))
	}
	p := out.Posts[0]
	wantLen := MaxCharsPerPost + utf8.RuneCountInString(Ellipsis)
	if got := utf8.RuneCountInString(p.Content); got != wantLen {
		t.Errorf("content length = %d, want %d", got, wantLen)
	}
	if !strings.HasSuffix(p.Content, Ellipsis) {
		t.Error("truncated content missing ellipsis marker")
	}
	if p.CharCount != wantLen {
		t.Errorf("CharCount = %d, want %d (must include marker)", p.CharCount, wantLen)
	}
}

func TestExtract_SortsByNumber(t *testing.T) {
	doc := parseHTML(t, post("7", "c", longText)+post("2", "a", longText)+post("5", "b", longText))
	out := New(logger.Nop()).Extract(doc)

	if len(out.Posts) != 3 {
		t.Fatalf("got %d posts, want 3", len(out.Posts))
	}
	for i, want := range []int{2, 5, 7} {
		if out.Posts[i].Number != want {
			t.Errorf("posts[%d].Number = %d, want %d", i, out.Posts[i].Number, want)
		}
	}
}

func TestExtract_NumberFallbacks(t *testing.T) {
	tests := []struct {
		name string
		html string
		want int
	}{
		{
			name: "positional id fallback",
			html: `<div class="post" id="post-12"><a class="autor">x</a><div class="post-contents">` + longText + `</div></div>`,
			want: 12,
		},
		{
			name: "unparseable defaults to zero",
			html: `<div class="post" data-num="abc"><a class="autor">x</a><div class="post-contents">` + longText + `</div></div>`,
			want: 0,
		},
	}

	e := New(logger.Nop())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := e.Extract(parseHTML(t, tt.html))
			if len(out.Posts) != 1 {
				t.Fatalf("got %d posts, want 1 (number problems must not reject the post)", len(out.Posts))
			}
			if out.Posts[0].Number != tt.want {
				t.Errorf("Number = %d, want %d", out.Posts[0].Number, tt.want)
			}
		})
	}
}

func TestExtract_AnonymousAuthorFallback(t *testing.T) {
	html := `<div class="post" data-num="1"><div class="post-contents">` + longText + `</div></div>`
	out := New(logger.Nop()).Extract(parseHTML(t, html))

	if len(out.Posts) != 1 {
		t.Fatalf("got %d posts, want 1", len(out.Posts))
	}
	if out.Posts[0].Author != thread.AnonymousAuthor {
		t.Errorf("Author = %q, want %q", out.Posts[0].Author, thread.AnonymousAuthor)
	}
}

func TestExtract_CollapsesWhitespace(t *testing.T) {
	body := "linea   una\n\n\t linea dos   " + longText
	out := New(logger.Nop()).Extract(parseHTML(t, post("1", "alice", body)))

	if len(out.Posts) != 1 {
		t.Fatalf("got %d posts, want 1", len(out.Posts))
	}
	if strings.Contains(out.Posts[0].Content, "  ") {
		t.Error("content contains a whitespace run")
	}
	if !strings.HasPrefix(out.Posts[0].Content, "linea una linea dos") {
		t.Errorf("unexpected normalization: %q", out.Posts[0].Content[:30])
	}
}

func TestExtract_MalformedNodeSkipped(t *testing.T) {
	// post without contents sub-node plus a healthy sibling
	html := `<div class="post" data-num="1"><a class="autor">x</a></div>` + post("2", "bob", longText)
	out := New(logger.Nop()).Extract(parseHTML(t, html))

	if len(out.Posts) != 1 {
		t.Fatalf("got %d posts, want 1 (malformed node must not abort extraction)", len(out.Posts))
	}
	if out.Posts[0].Number != 2 {
		t.Errorf("surviving post = %d, want 2", out.Posts[0].Number)
	}
}

func TestExtract_Titles(t *testing.T) {
	html := `<html><head><title>foro - ambient</title></head><body><h1 id="title">Hilo del parche</h1>` +
		post("1", "alice", longText) + `</body></html>`
	out := New(logger.Nop()).Extract(parseHTML(t, html))

	if out.Title != "Hilo del parche" {
		t.Errorf("Title = %q", out.Title)
	}
	if out.Ambient != "foro - ambient" {
		t.Errorf("Ambient = %q", out.Ambient)
	}
}

func TestExtract_VotesAndMetadata(t *testing.T) {
	html := `<div class="post" data-num="3" data-votes="17">` +
		`<a class="autor">carol<img src="https://example.com/a.png"/></a>` +
		`<time datetime="2025-04-01T10:00:00Z"></time>` +
		`<div class="post-contents">` + longText + `</div></div>`
	out := New(logger.Nop()).Extract(parseHTML(t, html))

	if len(out.Posts) != 1 {
		t.Fatalf("got %d posts, want 1", len(out.Posts))
	}
	p := out.Posts[0]
	if p.Votes != 17 {
		t.Errorf("Votes = %d, want 17", p.Votes)
	}
	if p.AvatarURL != "https://example.com/a.png" {
		t.Errorf("AvatarURL = %q", p.AvatarURL)
	}
	if p.Timestamp != "2025-04-01T10:00:00Z" {
		t.Errorf("Timestamp = %q", p.Timestamp)
	}
}
