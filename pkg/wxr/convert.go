package wxr

import (
	"errors"
	"fmt"
	"html"
	"log/slog"
	"net/url"
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/go-shiori/go-readability"
	"github.com/microcosm-cc/bluemonday"

	"github.com/dtnitsch/wpzola/models"
	"github.com/dtnitsch/wpzola/pkg/frontmatter"
)

// ErrNotPublished is returned for records that are not in publish status.
var ErrNotPublished = errors.New("post is not published")

// Document is a converted post ready to be written.
type Document struct {
	Filename string
	Slug     string
	Date     string
	Content  []byte
	Images   []string
}

// Options tune a Converter.
type Options struct {
	// SiteURL is the address of the WordPress site whose links are made relative.
	SiteURL string
	// AutoDescription derives a description from the body when the excerpt is empty.
	AutoDescription bool
	// Languages, when set, stores the detected natural language under [extra].
	Languages LanguageDetector
	Logger    *slog.Logger
}

// Converter turns post records into Zola documents.
type Converter struct {
	opts      Options
	markdown  *converter.Converter
	sanitizer *bluemonday.Policy
	mediaLink *regexp.Regexp
	siteLink  *regexp.Regexp
	logger    *slog.Logger
}

// NewConverter builds a Converter for the site at opts.SiteURL.
func NewConverter(opts Options) (*Converter, error) {
	u, err := url.Parse(strings.TrimRight(opts.SiteURL, "/"))
	if err != nil || u.Host == "" {
		return nil, fmt.Errorf("invalid site URL %q", opts.SiteURL)
	}
	host := regexp.QuoteMeta(strings.TrimPrefix(u.Host, "www."))
	prefix := `https?://(?:www\.)?` + host

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Converter{
		opts: opts,
		markdown: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
		sanitizer: newSanitizer(),
		mediaLink: regexp.MustCompile(prefix + `/wp-content/uploads/([^\s)]+)`),
		siteLink:  regexp.MustCompile(prefix + `/([^/\s)\]]+)`),
		logger:    logger,
	}, nil
}

// Markdown converts post HTML to markdown. Legacy [code] shortcodes and
// <pre> blocks become fenced code, labelled using ctx when their content
// is inconclusive.
func (c *Converter) Markdown(content string, ctx models.DocumentContext) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", nil
	}

	prepared := autop(shortcodesToPre(content, ctx))
	prepared = c.sanitizer.Sanitize(prepared)
	prepared, err := tagCodeLanguages(prepared, ctx)
	if err != nil {
		return "", err
	}

	md, err := c.markdown.ConvertString(prepared)
	if err != nil {
		return "", fmt.Errorf("failed to convert HTML to markdown: %w", err)
	}
	return strings.TrimSpace(md), nil
}

// RewriteLinks makes links to the source site relative: uploads keep their
// /wp-content/uploads/ path, other pages keep their first path segment.
func (c *Converter) RewriteLinks(md string) string {
	md = c.mediaLink.ReplaceAllString(md, "/wp-content/uploads/$1")
	return c.siteLink.ReplaceAllString(md, "/$1")
}

// Convert builds the document for a published record.
func (c *Converter) Convert(rec models.PostRecord) (*Document, error) {
	if !rec.IsPublished() {
		return nil, ErrNotPublished
	}

	title := html.UnescapeString(rec.Title)
	slug := rec.Slug
	if slug == "" {
		slug = fallbackSlug(title, rec.PostID)
		c.logger.Warn("post has no slug, derived one", "title", title, "slug", slug)
	}

	categories := SlugifyAll(rec.Categories)
	tags := SlugifyAll(rec.Tags)
	ctx := models.DocumentContext{Filename: slug, Categories: categories, Tags: tags}

	body, err := c.Markdown(rec.ContentHTML, ctx)
	if err != nil {
		return nil, fmt.Errorf("post %q: %w", slug, err)
	}
	body = c.RewriteLinks(body)

	page := frontmatter.Page{Title: title, Slug: slug}
	date, ok := ParseDate(rec.PostDate)
	if ok {
		page.SetDate(date)
	} else if rec.PostDate != "" {
		c.logger.Warn("unparseable post date, leaving it empty", "slug", slug, "post_date", rec.PostDate)
	}
	page.SetTaxonomies(categories, tags)

	description, err := c.description(rec, ctx)
	if err != nil {
		return nil, fmt.Errorf("post %q: %w", slug, err)
	}
	page.Description = description

	if c.opts.Languages != nil {
		if lang, ok := c.opts.Languages.Detect(body); ok {
			page.Extra = map[string]string{"lang": lang}
		}
	}

	head, err := frontmatter.Render(page)
	if err != nil {
		return nil, fmt.Errorf("post %q: %w", slug, err)
	}

	dateStr := FormatDate(date)
	filename := slug + ".md"
	if dateStr != "" {
		filename = dateStr + "-" + filename
	}

	content := make([]byte, 0, len(head)+len(body)+2)
	content = append(content, head...)
	content = append(content, '\n')
	content = append(content, body...)
	content = append(content, '\n')

	return &Document{
		Filename: filename,
		Slug:     slug,
		Date:     dateStr,
		Content:  content,
		Images:   inlineImages(rec.ContentHTML),
	}, nil
}

func (c *Converter) description(rec models.PostRecord, ctx models.DocumentContext) (string, error) {
	if strings.TrimSpace(rec.ExcerptHTML) != "" {
		md, err := c.Markdown(rec.ExcerptHTML, ctx)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(html.UnescapeString(md)), nil
	}
	if !c.opts.AutoDescription || strings.TrimSpace(rec.ContentHTML) == "" {
		return "", nil
	}

	pageURL, err := url.Parse(rec.Link)
	if err != nil || rec.Link == "" {
		pageURL, _ = url.Parse(c.opts.SiteURL)
	}
	readabilityParser := readability.NewParser()
	article, err := readabilityParser.Parse(strings.NewReader("<html><body>"+rec.ContentHTML+"</body></html>"), pageURL)
	if err != nil {
		c.logger.Debug("readability could not derive a description", "link", rec.Link, "error", err)
		return "", nil
	}
	return strings.TrimSpace(article.Excerpt), nil
}
