package driven

// OutputPublisher defines the driven port for reporting results back to the
// CI runner (step outputs and the job summary).
type OutputPublisher interface {
	SetOutputs(values map[string]string) error
	AppendSummary(markdown string) error
}

// ReportWriter renders a Markdown report to a standalone file.
type ReportWriter interface {
	WriteReport(path, markdown string) error
}
