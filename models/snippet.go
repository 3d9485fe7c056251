package models

// Snippet is a legacy [code]...[/code] block found in a document.
// Start and End are byte offsets of the whole block, markers included.
type Snippet struct {
	Content string
	Start   int
	End     int
}

// Preview returns the first n bytes of the snippet on a single line.
func (s Snippet) Preview(n int) string {
	out := make([]byte, 0, n)
	for i := 0; i < len(s.Content) && len(out) < n; i++ {
		c := s.Content[i]
		if c == '\n' {
			c = ' '
		}
		out = append(out, c)
	}
	return string(out)
}

// DocumentContext carries the surroundings of a snippet used as a
// fallback signal for language detection.
type DocumentContext struct {
	Filename   string
	Categories []string
	Tags       []string
}
