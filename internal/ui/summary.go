// Package ui renders terminal reports for the CLI.
//
// Назначение: итоговая сводка прогона форматирования (check-режим),
// стили и усечение длинных путей под ширину терминала.
// Не делает: интерактивного вывода, чтения флагов.
// Зависимости: lipgloss, go-runewidth.
package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

var (
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	changeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
)

// Summary aggregates one formatting run for terminal output.
type Summary struct {
	Total   int
	Changed []string
	Failed  []string
}

// Clean reports whether nothing would change and nothing failed.
func (s Summary) Clean() bool {
	return len(s.Changed) == 0 && len(s.Failed) == 0
}

// Render writes the summary. Paths are truncated to width display cells;
// colorize toggles the styles so piped output stays plain.
func (s Summary) Render(w io.Writer, width int, colorize bool) {
	style := func(st lipgloss.Style, text string) string {
		if !colorize {
			return text
		}
		return st.Render(text)
	}

	fmt.Fprintln(w, style(titleStyle, fmt.Sprintf("checked %d file(s)", s.Total)))
	for _, path := range s.Changed {
		fmt.Fprintf(w, "  %s %s\n", style(changeStyle, "reformat"), truncatePath(path, width-11))
	}
	for _, path := range s.Failed {
		fmt.Fprintf(w, "  %s %s\n", style(failStyle, "failed"), truncatePath(path, width-9))
	}
	if s.Clean() {
		fmt.Fprintln(w, style(okStyle, "all files already formatted"))
	}
}

func truncatePath(path string, width int) string {
	if width <= 0 || runewidth.StringWidth(path) <= width {
		return path
	}
	if width <= 3 {
		return runewidth.Truncate(path, width, "")
	}
	return runewidth.Truncate(path, width, "...")
}
