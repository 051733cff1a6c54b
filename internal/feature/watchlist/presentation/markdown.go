package presentation

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

// WatchlistMarkdown renders rows as a markdown table, or the empty state.
func WatchlistMarkdown(rows []RowView) string {
	var sb strings.Builder
	sb.WriteString("# Watchlist\n\n")

	if len(rows) == 0 {
		fmt.Fprintf(&sb, "**%s**\n\n%s\n", EmptyTitle, EmptyDescription)
		return sb.String()
	}

	sb.WriteString("| Symbol | Company | Price | Change |\n")
	sb.WriteString("|:---|:---|---:|---:|\n")
	for _, r := range rows {
		fmt.Fprintf(&sb, "| %s | %s | %s | %s |\n",
			escapeCell(r.Symbol), escapeCell(r.Company), r.Price, r.Change)
	}
	return sb.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// TerminalRenderer styles markdown for a terminal.
type TerminalRenderer struct {
	r *glamour.TermRenderer
}

// NewTerminalRenderer picks the style from the terminal when style is
// empty, otherwise uses the named glamour style ("dark", "light", "notty").
func NewTerminalRenderer(style string, width int) (*TerminalRenderer, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create terminal renderer: %w", err)
	}
	return &TerminalRenderer{r: r}, nil
}

// Render returns md styled for the terminal.
func (t *TerminalRenderer) Render(md string) (string, error) {
	out, err := t.r.Render(md)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}
