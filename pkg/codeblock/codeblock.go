// Package codeblock rewrites legacy [code]...[/code] markup into fenced
// markdown code blocks.
package codeblock

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/dtnitsch/wpzola/models"
	"github.com/dtnitsch/wpzola/pkg/detector"
)

const (
	Fence        = "```"
	openMarker   = "[code]"
	closeMarker  = "[/code]"
	DefaultDelta = 15
)

var legacyBlock = regexp.MustCompile(`(?s)\[code\]\s*\n(.*?)\[/code\]`)

// Block is a legacy snippet together with the language it was tagged with.
type Block struct {
	Snippet  models.Snippet
	Language models.Language
}

// Find returns every non-overlapping legacy block of text in document order.
func Find(text string) []models.Snippet {
	var snippets []models.Snippet
	for _, m := range legacyBlock.FindAllStringSubmatchIndex(text, -1) {
		snippets = append(snippets, models.Snippet{
			Content: strings.TrimRightFunc(text[m[2]:m[3]], unicode.IsSpace),
			Start:   m[0],
			End:     m[1],
		})
	}
	return snippets
}

// FenceBlock renders code as a fenced block, tagged when lang is known.
func FenceBlock(code string, lang models.Language) string {
	return Fence + string(lang) + "\n" + code + "\n" + Fence
}

// Rewrite replaces every legacy block of text with a fenced block. The
// output is assembled from the untouched text between blocks and the
// rendered replacements, so no offsets shift while rewriting.
func Rewrite(text string, ctx models.DocumentContext) (string, []Block) {
	snippets := Find(text)
	if len(snippets) == 0 {
		return text, nil
	}

	blocks := make([]Block, 0, len(snippets))
	var b strings.Builder
	b.Grow(len(text))
	prev := 0
	for _, s := range snippets {
		lang := detector.Detect(s.Content, ctx)
		blocks = append(blocks, Block{Snippet: s, Language: lang})

		b.WriteString(text[prev:s.Start])
		b.WriteString(FenceBlock(s.Content, lang))
		prev = s.End
	}
	b.WriteString(text[prev:])

	return b.String(), blocks
}

// Validate checks a rewritten document. The line delta is a sanity bound
// on how much the rewrite may reshape the file; tolerance < 0 disables it.
func Validate(original, converted string, tolerance int) []string {
	var issues []string

	lower := strings.ToLower(converted)
	if strings.Contains(lower, openMarker) {
		issues = append(issues, "Legacy [code] tags still present")
	}
	if strings.Contains(lower, closeMarker) {
		issues = append(issues, "Legacy [/code] tags still present")
	}

	if n := strings.Count(converted, Fence); n%2 != 0 {
		issues = append(issues, fmt.Sprintf("Unbalanced code fences: %d backticks", n))
	}

	if tolerance >= 0 {
		origLines := strings.Count(original, "\n") + 1
		convLines := strings.Count(converted, "\n") + 1
		diff := origLines - convLines
		if diff < 0 {
			diff = -diff
		}
		if diff > tolerance {
			issues = append(issues, fmt.Sprintf("Line count changed significantly: %d -> %d (diff: %d)", origLines, convLines, diff))
		}
	}

	return issues
}
