package images

import (
	"errors"
	"testing"

	"github.com/dtnitsch/wpzola/pkg/images"
	"github.com/dtnitsch/wpzola/pkg/manifest"
)

func TestSummarize(t *testing.T) {
	refs := []string{"/wp-content/uploads/a.png", "/wp-content/uploads/b.png", "/wp-content/uploads/c.png"}
	report := images.Report{
		Outcomes: []images.Outcome{
			{Target: images.Target{Ref: refs[0]}, Err: errors.New("connection reset")},
			{Target: images.Target{Ref: refs[1]}, Bytes: 0},
			{Target: images.Target{Ref: refs[2]}, Bytes: 12},
		},
		TotalBytes: 12,
	}

	tests := []struct {
		name       string
		invalid    []string
		dryRun     bool
		wantFailed int
		wantOK     int
	}{
		{name: "empty download fails verification", invalid: []string{refs[0], refs[1]}, wantFailed: 2, wantOK: 2},
		{name: "all verified", invalid: []string{refs[0]}, wantFailed: 1, wantOK: 2},
		{name: "dry run skips verification", invalid: nil, dryRun: true, wantFailed: 1, wantOK: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary := summarize(report, refs, tt.invalid, tt.dryRun)

			if summary.Failed != tt.wantFailed || summary.Successful != tt.wantOK {
				t.Errorf("summary = failed %d, successful %d; want %d, %d",
					summary.Failed, summary.Successful, tt.wantFailed, tt.wantOK)
			}
			if summary.Err() == nil {
				t.Error("Err() = nil, want the download failure")
			}

			failures := 0
			for _, r := range summary.Results {
				if r.Status == manifest.StatusError && r.Item == refs[0] {
					failures++
				}
			}
			if failures != 1 {
				t.Errorf("%s recorded %d times as failed, want once", refs[0], failures)
			}
		})
	}
}

func TestSummarizeVerifiedStat(t *testing.T) {
	refs := []string{"/wp-content/uploads/a.png", "/wp-content/uploads/b.png"}
	report := images.Report{
		Outcomes: []images.Outcome{
			{Target: images.Target{Ref: refs[0]}, Bytes: 3},
			{Target: images.Target{Ref: refs[1]}, Bytes: 0},
		},
	}

	summary := summarize(report, refs, []string{refs[1]}, false)
	if summary.Stats["verified"] != 1 {
		t.Errorf("verified = %d, want 1", summary.Stats["verified"])
	}
	last := summary.Results[len(summary.Results)-1]
	if last.Item != refs[1] || last.Status != manifest.StatusError || last.ErrorMessage != errMissingAfterDownload.Error() {
		t.Errorf("last result = %+v", last)
	}
}
