package devlog

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/rupanjan/devlog/pkg/core"
	"github.com/rupanjan/devlog/pkg/search"
)

// Rendering is pure presentation: every function here returns a string and
// never mutates state.

var (
	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	labelStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	dateStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	relevanceStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	emptyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

const previewLength = 100

// RenderResults formats a ranked result list for the terminal.
func RenderResults(results []search.Result, query string) string {
	var b strings.Builder

	if len(results) == 0 {
		fmt.Fprintf(&b, "%s\n", emptyStyle.Render(fmt.Sprintf("No results found for %q", query)))
		b.WriteString(dimStyle.Render("Try broadening your search criteria or reducing filters") + "\n")
		return b.String()
	}

	fmt.Fprintf(&b, "%s\n", headerStyle.Render(fmt.Sprintf("Search Results (%d found):", len(results))))
	b.WriteString(dimStyle.Render(strings.Repeat("=", 50)) + "\n")

	for i, r := range results {
		entry := r.Entry
		fmt.Fprintf(&b, "\n%d. %s\n", i+1, dateStyle.Render(formatTime(entry.Timestamp())))
		fmt.Fprintf(&b, "   %s: %s\n", labelStyle.Render("Author"), orDim(entry.Author, "Unknown"))
		fmt.Fprintf(&b, "   %s: %s\n", labelStyle.Render("Project"), orDim(entry.Project, "No project"))
		fmt.Fprintf(&b, "   %s: %s\n", labelStyle.Render("Tags"), orDim(strings.Join(entry.Tags, ", "), "No tags"))
		fmt.Fprintf(&b, "   %s: %s\n", relevanceStyle.Render("Relevance"), formatRelevance(r))
		fmt.Fprintf(&b, "   %s\n", preview(entry.Content))
	}

	return b.String()
}

// RenderLogs formats a plain entry listing in storage order.
func RenderLogs(logs []core.LogEntry) string {
	if len(logs) == 0 {
		return dimStyle.Render("No logs yet.") + "\n"
	}

	var b strings.Builder
	for _, entry := range logs {
		fmt.Fprintf(&b, "%s %s\n",
			dimStyle.Render(fmt.Sprintf("[%s]", formatTime(entry.Timestamp()))),
			entry.Content)
		meta := fmt.Sprintf("id=%d project=%s author=%s", entry.ID, entry.Project, entry.Author)
		if len(entry.Tags) > 0 {
			meta += " tags=" + strings.Join(entry.Tags, ",")
		}
		fmt.Fprintf(&b, "  %s\n", dimStyle.Render(meta))
	}
	return b.String()
}

// RenderContext formats the project context record.
func RenderContext(rec core.Context) string {
	var b strings.Builder

	current := rec.Current
	if current == "" {
		current = "(none)"
	}
	fmt.Fprintf(&b, "%s: %s\n", labelStyle.Render("Current project"), current)
	fmt.Fprintf(&b, "%s: %v\n", labelStyle.Render("Manual mode"), rec.Manual)
	if rec.LastFolder != "" {
		fmt.Fprintf(&b, "%s: %s\n", labelStyle.Render("Last folder"), rec.LastFolder)
	}

	if len(rec.Projects) > 0 {
		fmt.Fprintf(&b, "%s\n", headerStyle.Render("Projects:"))
		for name, activity := range rec.Projects {
			line := fmt.Sprintf("  %s @ %s", name, formatTime(time.UnixMilli(activity.Timestamp)))
			if activity.LastNote != "" {
				line += ": " + preview(activity.LastNote)
			}
			b.WriteString(line + "\n")
		}
	}
	return b.String()
}

func formatRelevance(r search.Result) string {
	if r.Distance > 0 {
		return fmt.Sprintf("%d%%", int((1-r.Distance)*100))
	}
	if r.Relevance > 0 {
		return fmt.Sprintf("exact (+%d)", r.Relevance)
	}
	return "N/A"
}

func formatTime(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}

func preview(content string) string {
	runes := []rune(content)
	if len(runes) > previewLength {
		return string(runes[:previewLength]) + "..."
	}
	return content
}

func orDim(value, placeholder string) string {
	if value == "" {
		return dimStyle.Render(placeholder)
	}
	return value
}
