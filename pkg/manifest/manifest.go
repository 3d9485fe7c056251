package manifest

// Item statuses recorded in a run summary.
const (
	StatusSuccess = "success"
	StatusSkipped = "skipped"
	StatusError   = "error"
)

// RunSummary is the end-of-run report of a migration command.
// It gives a compact overview of every item processed and its outcome.
type RunSummary struct {
	Command     string           `yaml:"command"`
	GeneratedAt string           `yaml:"generated_at"`
	DryRun      bool             `yaml:"dry_run"`
	Total       int              `yaml:"total"`
	Successful  int              `yaml:"successful"`
	Skipped     int              `yaml:"skipped"`
	Failed      int              `yaml:"failed"`
	Stats       map[string]int64 `yaml:"stats,omitempty"`
	Results     []ItemSummary    `yaml:"results"`
}

// ItemSummary is the outcome for a single file, image, gist or post.
type ItemSummary struct {
	Item         string   `yaml:"item"`
	Status       string   `yaml:"status"`
	Detail       string   `yaml:"detail,omitempty"`
	ErrorMessage string   `yaml:"error_message,omitempty"`
	Issues       []string `yaml:"issues,omitempty"`
}
