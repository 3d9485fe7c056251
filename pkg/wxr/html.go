package wxr

import (
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"

	"github.com/dtnitsch/wpzola/models"
	"github.com/dtnitsch/wpzola/pkg/detector"
)

var (
	shortcodeBlock = regexp.MustCompile(`(?s)\[code\]\s*\n?(.*?)\[/code\]`)
	preBlock       = regexp.MustCompile(`(?is)<pre[\s>].*?</pre>`)
	blockStart     = regexp.MustCompile(`(?i)^<(p|h[1-6]|ul|ol|li|pre|blockquote|div|figure|table|hr|img|!--)[\s/>]`)
	brushClass     = regexp.MustCompile(`brush:\s*([\w+#-]+)`)
	blankLine      = regexp.MustCompile(`\n\s*\n`)
)

// brushAliases maps SyntaxHighlighter brush names to fence labels.
var brushAliases = map[string]string{
	"py":    "python",
	"shell": "bash",
	"sh":    "bash",
	"plain": "text",
	"rs":    "rust",
	"js":    "javascript",
}

func newSanitizer() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").OnElements("pre", "code")
	return p
}

// shortcodesToPre turns [code] shortcodes into <pre><code> elements tagged
// with the language the detector resolves for them.
func shortcodesToPre(content string, ctx models.DocumentContext) string {
	return shortcodeBlock.ReplaceAllStringFunc(content, func(block string) string {
		code := strings.TrimRight(shortcodeBlock.FindStringSubmatch(block)[1], " \t\r\n")
		code = html.UnescapeString(code)
		class := ""
		if lang := detector.Detect(code, ctx); lang != models.LanguageNone {
			class = fmt.Sprintf(` class="language-%s"`, lang)
		}
		return fmt.Sprintf("\n\n<pre><code%s>%s</code></pre>\n\n", class, html.EscapeString(code))
	})
}

// autop wraps loose text paragraphs in <p> the way WordPress does when it
// renders classic-editor content. <pre> blocks are left intact.
func autop(content string) string {
	if strings.TrimSpace(content) == "" {
		return content
	}

	var pres []string
	protected := preBlock.ReplaceAllStringFunc(content, func(pre string) string {
		pres = append(pres, pre)
		return fmt.Sprintf("\n\n\x00%d\x00\n\n", len(pres)-1)
	})

	protected = strings.ReplaceAll(protected, "\r\n", "\n")
	var out []string
	for _, chunk := range blankLine.Split(protected, -1) {
		chunk = strings.TrimSpace(chunk)
		for chunk != "" {
			switch {
			case strings.HasPrefix(chunk, "\x00"):
				if idx, err := strconv.Atoi(strings.Trim(chunk, "\x00")); err == nil && idx < len(pres) {
					out = append(out, pres[idx])
				}
				chunk = ""
			case blockStart.MatchString(chunk):
				block, rest := splitLeadingBlock(chunk)
				out = append(out, block)
				chunk = strings.TrimSpace(rest)
			default:
				out = append(out, "<p>"+strings.ReplaceAll(chunk, "\n", "<br />\n")+"</p>")
				chunk = ""
			}
		}
	}
	return strings.Join(out, "\n")
}

// splitLeadingBlock cuts chunk after the element it starts with, so text
// following a block on the next lines becomes its own paragraph.
func splitLeadingBlock(chunk string) (block, rest string) {
	name := strings.ToLower(blockStart.FindStringSubmatch(chunk)[1])

	end := -1
	switch name {
	case "!--":
		if i := strings.Index(chunk, "-->"); i >= 0 {
			end = i + len("-->")
		}
	case "hr", "img":
		if i := strings.Index(chunk, ">"); i >= 0 {
			end = i + 1
		}
	default:
		end = closingTagEnd(strings.ToLower(chunk), name)
	}
	if end < 0 {
		return chunk, ""
	}
	return chunk[:end], chunk[end:]
}

// closingTagEnd returns the offset just past the tag closing the name
// element that lower starts with, honouring nested elements of the same
// name, or -1 when it is never closed.
func closingTagEnd(lower, name string) int {
	open, closing := "<"+name, "</"+name+">"
	depth := 0
	for i := 0; i < len(lower); {
		switch {
		case strings.HasPrefix(lower[i:], closing):
			depth--
			i += len(closing)
			if depth == 0 {
				return i
			}
		case strings.HasPrefix(lower[i:], open) && i+len(open) < len(lower) && strings.ContainsRune(" \t\n/>", rune(lower[i+len(open)])):
			depth++
			i += len(open)
		default:
			i++
		}
	}
	return -1
}

// tagCodeLanguages moves language hints onto <code> elements, where the
// markdown converter picks them up as fence labels. Untagged blocks are
// run through the detector.
func tagCodeLanguages(content string, ctx models.DocumentContext) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("pre").Each(func(i int, pre *goquery.Selection) {
		code := pre.Find("code").First()
		if code.Length() == 0 {
			text := pre.Text()
			pre.Empty()
			pre.AppendHtml("<code>" + html.EscapeString(text) + "</code>")
			code = pre.Find("code").First()
		}
		if class, _ := code.Attr("class"); strings.Contains(class, "language-") {
			return
		}

		lang := ""
		if class, ok := pre.Attr("class"); ok {
			if m := brushClass.FindStringSubmatch(class); m != nil {
				lang = strings.ToLower(m[1])
				if alias, ok := brushAliases[lang]; ok {
					lang = alias
				}
			}
		}
		if lang == "" {
			lang = string(detector.Detect(code.Text(), ctx))
		}
		if lang != "" {
			code.SetAttr("class", "language-"+lang)
		}
	})

	body, err := doc.Find("body").Html()
	if err != nil {
		return "", fmt.Errorf("failed to render HTML: %w", err)
	}
	return body, nil
}

// inlineImages lists the src of every <img> in content.
func inlineImages(content string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil
	}
	var srcs []string
	doc.Find("img[src]").Each(func(i int, img *goquery.Selection) {
		if src, ok := img.Attr("src"); ok && src != "" {
			srcs = append(srcs, src)
		}
	})
	return srcs
}
