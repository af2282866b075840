package session

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bull/docquery/internal/retrieval"
)

// maxDisplayRunes bounds how much chunk text a result panel shows.
const maxDisplayRunes = 500

var (
	bannerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("2")).
			Padding(0, 1)

	queryStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("4")).
			Padding(0, 1)

	resultStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1).
			Width(78)

	resultTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("6"))

	scoreStyle = lipgloss.NewStyle().Faint(true)

	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

func renderBanner() string {
	return bannerStyle.Render(
		"Document Knowledge Base\n" +
			"Enter your questions below. Type 'quit' or 'exit' to stop.")
}

// renderResults prints the query panel followed by one panel per result.
func renderResults(w io.Writer, question string, results []retrieval.Result) {
	fmt.Fprintln(w, queryStyle.Render("Query: "+question))
	fmt.Fprintln(w)

	if len(results) == 0 {
		fmt.Fprintln(w, noticeStyle.Render("No relevant results found."))
		return
	}

	fmt.Fprintf(w, "Found %d relevant chunks:\n\n", len(results))

	for _, res := range results {
		title := resultTitleStyle.Render(
			fmt.Sprintf("Result %d | %s (Page %d)", res.Rank, res.Source, res.Page))
		score := scoreStyle.Render(
			fmt.Sprintf("Similarity: %.2f%%", res.Similarity*100))

		body := strings.Join([]string{title, "", truncate(res.Text), "", score}, "\n")
		fmt.Fprintln(w, resultStyle.Render(body))
		fmt.Fprintln(w)
	}
}

// truncate cuts display text at maxDisplayRunes without splitting a rune.
func truncate(text string) string {
	runes := []rune(text)
	if len(runes) <= maxDisplayRunes {
		return text
	}
	return string(runes[:maxDisplayRunes]) + "..."
}
