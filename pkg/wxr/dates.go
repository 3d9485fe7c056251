package wxr

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

const (
	wordpressLayout = "2006-01-02 15:04:05"
	dateLayout      = "2006-01-02"
)

// ParseDate reads a wp:post_date value. Besides WordPress' own layout it
// accepts ISO 8601 and RFC 1123 style dates. ok is false when nothing
// usable was found, including WordPress' 0000-00-00 placeholder.
func ParseDate(s string) (t time.Time, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "0000-00-00") {
		return time.Time{}, false
	}
	if t, err := time.Parse(wordpressLayout, s); err == nil {
		return t, true
	}
	if t, err := dateparse.ParseIn(s, time.UTC); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// FormatDate renders t as the date prefix used in file names and URLs;
// the zero time renders as "".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}
