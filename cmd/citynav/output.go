package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	navigator "github.com/UtkershBasnet/CityNavigator"
)

var (
	colorTeal  = lipgloss.Color("#20B9B4")
	colorGold  = lipgloss.Color("#F4D03F")
	colorRed   = lipgloss.Color("#E74C3C")
	colorSlate = lipgloss.Color("#2C4A54")
)

var styles = struct {
	Title   lipgloss.Style
	Label   lipgloss.Style
	Muted   lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Box     lipgloss.Style
}{
	Title:   lipgloss.NewStyle().Bold(true).Foreground(colorTeal),
	Label:   lipgloss.NewStyle().Bold(true).Width(12),
	Muted:   lipgloss.NewStyle().Foreground(colorSlate),
	Warning: lipgloss.NewStyle().Foreground(colorGold),
	Error:   lipgloss.NewStyle().Foreground(colorRed),
	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorTeal).
		Padding(0, 1),
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func row(label, value string) string {
	return styles.Label.Render(label) + value
}

// renderResult draws one search result as a bordered card.
func renderResult(g *navigator.Graph, res navigator.SearchResult, summary navigator.RouteSummary) string {
	info, err := navigator.Describe(res.Algorithm)
	title := string(res.Algorithm)
	if err == nil {
		title = info.Name
	}

	lines := []string{styles.Title.Render(title)}
	if !res.Reachable() {
		lines = append(lines, styles.Warning.Render("no route"))
	} else {
		lines = append(lines,
			row("path", pathLabel(g, res.Path)),
			row("distance", fmt.Sprintf("%.2f km", res.Distance)),
		)
		if summary.Legs > 0 {
			lines = append(lines, row("travel", fmt.Sprintf("%d legs, %.0f min", summary.Legs, summary.TravelMinutes)))
		}
	}
	lines = append(lines,
		row("steps", fmt.Sprint(res.Steps)),
		row("visited", styles.Muted.Render(strings.Join(res.VisitedOrder, " "))),
	)
	return styles.Box.Render(strings.Join(lines, "\n"))
}

func pathLabel(g *navigator.Graph, path []string) string {
	parts := make([]string, 0, len(path))
	for _, id := range path {
		label := id
		if n, err := g.NodeByID(id); err == nil && n.Name != "" {
			label = fmt.Sprintf("%s (%s)", id, n.Name)
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, " → ")
}
