package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/haguru/folio/config"
	"github.com/haguru/folio/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	DATE_LAYOUT  = "January 2, 2006"
	UNKNOWN_DATE = "Unknown date"

	HomePage  = "home.html"
	PostPage  = "post.html"
	TagPage   = "tag.html"
	ErrorPage = "error.html"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page carries what the layout needs on every page.
type Page struct {
	Site config.SiteConfig
	Home bool
}

type HomeData struct {
	Page
	Posts []models.PostWithAuthor
	Next  string
}

type TagData struct {
	Page
	Tag   string
	Posts []models.PostWithAuthor
	Next  string
}

type PostData struct {
	Page
	Post models.PostWithAuthor
}

type ErrorData struct {
	Page
	Status  int
	Message string
}

// Renderer executes the embedded page templates.
type Renderer struct {
	site      config.SiteConfig
	templates map[string]*template.Template
}

// New parses every page template once.
func New(site config.SiteConfig) (*Renderer, error) {
	funcs := template.FuncMap{
		"formatDate": FormatDate,
		"paragraphs": Paragraphs,
	}

	r := &Renderer{site: site, templates: make(map[string]*template.Template)}
	for _, page := range []string{HomePage, PostPage, TagPage, ErrorPage} {
		t, err := template.New(page).Funcs(funcs).ParseFS(templateFS,
			"templates/layout.html",
			"templates/postlist.html",
			"templates/"+page,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", page, err)
		}
		r.templates[page] = t
	}
	return r, nil
}

func (r *Renderer) Home(posts *models.PostPage) ([]byte, error) {
	data := HomeData{Page: Page{Site: r.site, Home: true}}
	if posts != nil {
		data.Posts = posts.Items
		data.Next = posts.Next
	}
	return r.execute(HomePage, data)
}

func (r *Renderer) Tag(tag string, posts *models.PostPage) ([]byte, error) {
	data := TagData{Page: Page{Site: r.site}, Tag: tag}
	if posts != nil {
		data.Posts = posts.Items
		data.Next = posts.Next
	}
	return r.execute(TagPage, data)
}

func (r *Renderer) Post(post *models.PostWithAuthor) ([]byte, error) {
	if post == nil {
		return nil, fmt.Errorf("post cannot be nil")
	}
	return r.execute(PostPage, PostData{Page: Page{Site: r.site}, Post: *post})
}

func (r *Renderer) Error(status int, message string) ([]byte, error) {
	return r.execute(ErrorPage, ErrorData{Page: Page{Site: r.site}, Status: status, Message: message})
}

// execute renders into a buffer so a failing template never writes a partial page.
func (r *Renderer) execute(page string, data any) ([]byte, error) {
	t, ok := r.templates[page]
	if !ok {
		return nil, fmt.Errorf("unknown template %s", page)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", page, err)
	}
	return buf.Bytes(), nil
}

// FormatDate renders v as "January 2, 2006". Integers are unix
// milliseconds. Anything it cannot read yields "Unknown date".
func FormatDate(v any) string {
	var t time.Time
	switch d := v.(type) {
	case time.Time:
		t = d
	case *time.Time:
		if d == nil {
			return UNKNOWN_DATE
		}
		t = *d
	case primitive.DateTime:
		t = d.Time()
	case int64:
		t = time.UnixMilli(d)
	case int:
		t = time.UnixMilli(int64(d))
	case string:
		parsed, err := parseDate(d)
		if err != nil {
			return UNKNOWN_DATE
		}
		t = parsed
	default:
		return UNKNOWN_DATE
	}

	if t.IsZero() {
		return UNKNOWN_DATE
	}
	return t.UTC().Format(DATE_LAYOUT)
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{time.RFC3339Nano, time.DateOnly, time.DateTime} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}

// Paragraphs splits content on blank lines.
func Paragraphs(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	var out []string
	for _, p := range strings.Split(content, "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
