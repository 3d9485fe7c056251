package detector

import (
	"regexp"

	"github.com/dtnitsch/wpzola/models"
)

// rule groups the idiom patterns that count as evidence for one language.
type rule struct {
	language models.Language
	patterns []*regexp.Regexp
}

func compileAll(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, expr := range exprs {
		out[i] = regexp.MustCompile(expr)
	}
	return out
}

// rules is ordered by tie-break priority.
var rules = []rule{
	{
		language: models.LanguagePython,
		patterns: compileAll(
			`^\s*import\s+`,
			`^\s*from\s+.+\s+import`,
			`^\s*def\s+\w+`,
			`^\s*class\s+\w+`,
			`^\s*async\s+def`,
			`^#!/usr/bin/env python`,
			`@app\.(get|post|put|delete)`,
			`^\s*async\s+with`,
		),
	},
	{
		language: models.LanguageRust,
		patterns: compileAll(
			`^\s*use\s+std::`,
			`^\s*fn\s+\w+`,
			`^\s*let\s+\w+`,
			`^\s*impl\s+`,
			`^\s*pub\s+(fn|struct|enum)`,
			`::\s*unwrap\(\)`,
			`\.\s*ok\(\)`,
			`\.\s*map\(`,
		),
	},
	{
		language: models.LanguageBash,
		patterns: compileAll(
			`\$\s+(brew|gst-launch|gst-inspect|http|uvicorn)`,
			`^\s*brew\s+`,
			`^\s*gst-launch`,
			`^\s*gst-inspect`,
			`depends_on\s+"`, // homebrew formulae
		),
	},
}

// outputMarkers identify captured program output rather than source code.
var outputMarkers = compileAll(
	`^\d{4}-\d{2}-\d{2}\s+\d{2}:\d{2}`,
	`^\s*[├│└]`,
	`WARNING:`,
	`<Response\s+\[`,
	`#\s+file\s+`,
)
