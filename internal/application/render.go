package application

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/ericfisherdev/techinsights-action/internal/domain/model"
)

const (
	passMarker = "✅"
	failMarker = "❌"
)

// RenderMarkdown renders a result set as the Markdown body of a pull request
// comment: a heading, a table with one row per outcome and, for scorecards,
// the aggregate pass count.
func RenderMarkdown(target model.RunTarget, rs *model.ResultSet) string {
	var b strings.Builder

	title := rs.Title
	if title == "" {
		title = target.ID
	}

	switch rs.Mode {
	case model.RunModeScorecard:
		fmt.Fprintf(&b, "### Tech Insights scorecard: %s\n\n", escapeInline(title))
	default:
		fmt.Fprintf(&b, "### Tech Insights check: %s\n\n", escapeInline(title))
	}

	if rs.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", strings.TrimSpace(rs.Description))
	}

	table := newMarkdownTable(&b, []string{"Result", "Check", "Description"})
	for _, o := range rs.Outcomes {
		_ = table.Append([]string{resultMarker(o.Passed), escapeCell(o.Title), escapeCell(o.Description)})
	}
	_ = table.Render()

	if rs.Mode == model.RunModeScorecard {
		fmt.Fprintf(&b, "\n**%d / %d checks passed**\n", rs.SuccessCount, rs.Total)
	}

	return b.String()
}

// newMarkdownTable creates a table writer producing GitHub-flavored Markdown.
func newMarkdownTable(w io.Writer, headers []string) *tablewriter.Table {
	cfg := tablewriter.Config{
		Header: tw.CellConfig{
			Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			Formatting: tw.CellFormatting{AutoFormat: tw.Off},
		},
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignLeft},
		},
		Behavior: tw.Behavior{TrimSpace: tw.Off},
	}
	return tablewriter.NewTable(w,
		tablewriter.WithConfig(cfg),
		tablewriter.WithHeader(headers),
		tablewriter.WithRenderer(renderer.NewBlueprint()),
		tablewriter.WithRendition(tw.Rendition{
			Symbols: tw.NewSymbols(tw.StyleMarkdown),
			Borders: tw.Border{
				Left:   tw.On,
				Top:    tw.Off,
				Right:  tw.On,
				Bottom: tw.Off,
			},
		}),
		tablewriter.WithRowAutoWrap(tw.WrapNone),
	)
}

func resultMarker(passed bool) string {
	if passed {
		return passMarker
	}
	return failMarker
}

// escapeCell keeps free-form text on one table row.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(strings.TrimSpace(s), "|", `\|`)
}

func escapeInline(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
