// Package actions implements the OutputPublisher port for the GitHub Actions
// runner's file commands (GITHUB_OUTPUT and GITHUB_STEP_SUMMARY).
package actions

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ericfisherdev/techinsights-action/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.OutputPublisher = (*Publisher)(nil)

// Publisher appends step outputs and summaries to the runner's command files.
// An empty path disables the corresponding write, which is the case outside
// of a workflow run.
type Publisher struct {
	outputPath  string
	summaryPath string
}

// NewPublisher creates a Publisher writing to the given GITHUB_OUTPUT and
// GITHUB_STEP_SUMMARY files.
func NewPublisher(outputPath, summaryPath string) *Publisher {
	return &Publisher{
		outputPath:  strings.TrimSpace(outputPath),
		summaryPath: strings.TrimSpace(summaryPath),
	}
}

// SetOutputs appends name=value lines to GITHUB_OUTPUT in key order.
func (p *Publisher) SetOutputs(values map[string]string) error {
	if p.outputPath == "" || len(values) == 0 {
		return nil
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		if strings.TrimSpace(k) == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		fmt.Fprintf(&b, "%s=%s\n", key, sanitize(values[key]))
	}
	return appendFile(p.outputPath, b.String())
}

// AppendSummary appends Markdown to the job summary.
func (p *Publisher) AppendSummary(markdown string) error {
	if p.summaryPath == "" || markdown == "" {
		return nil
	}
	if !strings.HasSuffix(markdown, "\n") {
		markdown += "\n"
	}
	return appendFile(p.summaryPath, markdown)
}

func appendFile(path, content string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	_, err = f.WriteString(content)
	return err
}

// sanitize keeps a value on one line of the output file.
func sanitize(value string) string {
	if value == "" {
		return ""
	}
	value = strings.ReplaceAll(value, "\r", "%0D")
	value = strings.ReplaceAll(value, "\n", "%0A")
	return value
}
