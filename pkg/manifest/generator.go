package manifest

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/dtnitsch/wpzola/pkg/storage"
)

// New starts an empty summary for command.
func New(command string, dryRun bool) *RunSummary {
	return &RunSummary{
		Command:     command,
		GeneratedAt: time.Now().Format(time.RFC3339),
		DryRun:      dryRun,
		Stats:       map[string]int64{},
	}
}

// Success records a successfully processed item.
func (m *RunSummary) Success(item, detail string) {
	m.Total++
	m.Successful++
	m.Results = append(m.Results, ItemSummary{Item: item, Status: StatusSuccess, Detail: detail})
}

// Skip records an item that was intentionally not processed.
func (m *RunSummary) Skip(item, reason string) {
	m.Total++
	m.Skipped++
	m.Results = append(m.Results, ItemSummary{Item: item, Status: StatusSkipped, Detail: reason})
}

// Fail records an item that could not be processed. issues may be empty.
func (m *RunSummary) Fail(item string, err error, issues ...string) {
	m.Total++
	m.Failed++
	summary := ItemSummary{Item: item, Status: StatusError, Issues: issues}
	if err != nil {
		summary.ErrorMessage = err.Error()
	}
	m.Results = append(m.Results, summary)
}

// AddStat accumulates a named counter such as downloaded bytes.
func (m *RunSummary) AddStat(name string, delta int64) {
	if m.Stats == nil {
		m.Stats = map[string]int64{}
	}
	m.Stats[name] += delta
}

// Err combines every failure into a single error, or nil when all items passed.
func (m *RunSummary) Err() error {
	var err error
	for _, r := range m.Results {
		if r.Status != StatusError {
			continue
		}
		msg := r.ErrorMessage
		if msg == "" && len(r.Issues) > 0 {
			msg = fmt.Sprintf("%v", r.Issues)
		}
		err = multierr.Append(err, fmt.Errorf("%s: %w", r.Item, errors.New(msg)))
	}
	return err
}

// YAML renders the summary.
func (m *RunSummary) YAML() ([]byte, error) {
	data, err := yaml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("error marshalling summary: %w", err)
	}
	return data, nil
}

// Save writes the summary as YAML to path.
func (m *RunSummary) Save(path string, s *storage.Storage) error {
	data, err := m.YAML()
	if err != nil {
		return err
	}
	if err := s.SaveFile(path, data); err != nil {
		return fmt.Errorf("error saving summary: %w", err)
	}
	return nil
}
