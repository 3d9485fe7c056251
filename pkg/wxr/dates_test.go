package wxr

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{"wordpress layout", "2021-07-08 08:56:00", "2021-07-08", true},
		{"iso 8601", "2021-07-08T08:56:00Z", "2021-07-08", true},
		{"rfc 1123", "Thu, 08 Jul 2021 08:56:00 +0000", "2021-07-08", true},
		{"placeholder", "0000-00-00 00:00:00", "", false},
		{"empty", "", "", false},
		{"garbage", "not a date at all", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDate(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ParseDate(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if FormatDate(got) != tt.want {
				t.Errorf("ParseDate(%q) = %q, want %q", tt.input, FormatDate(got), tt.want)
			}
		})
	}
}

func TestFormatDateZero(t *testing.T) {
	if got := FormatDate(time.Time{}); got != "" {
		t.Errorf("FormatDate(zero) = %q, want empty", got)
	}
}
