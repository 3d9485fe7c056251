// Package detector guesses the language of a code snippet from its content
// and, failing that, from the document it lives in.
package detector

import (
	"strings"

	"github.com/dtnitsch/wpzola/models"
)

const (
	// MinScore is the number of distinct idioms a language needs to win.
	MinScore = 2
	// outputScanLines bounds how deep output markers are looked for.
	outputScanLines = 5
)

// Score is the evidence collected for one candidate language.
type Score struct {
	Language models.Language
	Matched  int
}

// Detect resolves a snippet's language: content first, context as fallback.
func Detect(code string, ctx models.DocumentContext) models.Language {
	if lang := DetectFromContent(code); lang != models.LanguageNone {
		return lang
	}
	return DetectFromContext(ctx.Filename, ctx.Categories, ctx.Tags)
}

// DetectFromContent classifies a snippet by the idioms it contains.
func DetectFromContent(code string) models.Language {
	lines := nonBlankLines(code)
	if len(lines) == 0 {
		return models.LanguageNone
	}

	// Output transcripts often contain code-like lines too, so they win outright.
	head := lines
	if len(head) > outputScanLines {
		head = head[:outputScanLines]
	}
	for _, marker := range outputMarkers {
		for _, line := range head {
			if marker.MatchString(line) {
				return models.LanguageText
			}
		}
	}

	best := Score{Language: models.LanguageNone}
	for _, s := range Scores(lines) {
		// Strictly greater keeps the earlier rule on ties.
		if s.Matched > best.Matched {
			best = s
		}
	}
	if best.Matched < MinScore {
		return models.LanguageNone
	}
	return best.Language
}

// Scores counts, per language, how many distinct patterns match at least one line.
func Scores(lines []string) []Score {
	scores := make([]Score, 0, len(rules))
	for _, r := range rules {
		matched := 0
		for _, p := range r.patterns {
			for _, line := range lines {
				if p.MatchString(line) {
					matched++
					break
				}
			}
		}
		scores = append(scores, Score{Language: r.language, Matched: matched})
	}
	return scores
}

// DetectFromContext infers a language from the file name and taxonomy terms.
func DetectFromContext(filename string, categories, tags []string) models.Language {
	name := strings.ToLower(filename)
	switch {
	case strings.Contains(name, "python"), strings.Contains(name, "fastapi"):
		return models.LanguagePython
	case strings.Contains(name, "rust"):
		return models.LanguageRust
	}

	cats := strings.ToLower(strings.Join(categories, " "))
	tagText := strings.ToLower(strings.Join(tags, " "))
	switch {
	case strings.Contains(cats, "python"), strings.Contains(tagText, "python"), strings.Contains(tagText, "fastapi"):
		return models.LanguagePython
	case strings.Contains(cats, "rust"), strings.Contains(tagText, "rust"):
		return models.LanguageRust
	}
	return models.LanguageNone
}

func nonBlankLines(code string) []string {
	var lines []string
	for _, line := range strings.Split(strings.TrimSpace(code), "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
