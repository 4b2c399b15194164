package render

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/sigreer/lvmgod/internal/lvm"
)

var (
	colorRed    = lipgloss.Color("#FF5555")
	colorYellow = lipgloss.Color("#F1FA8C")
	colorGreen  = lipgloss.Color("#50FA7B")
	colorCyan   = lipgloss.Color("#8BE9FD")
	colorGray   = lipgloss.Color("#6272A4")

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	dimStyle   = lipgloss.NewStyle().Foreground(colorGray)
	okStyle    = lipgloss.NewStyle().Foreground(colorGreen)
	warnStyle  = lipgloss.NewStyle().Foreground(colorYellow).Bold(true)
	critStyle  = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
)

func statusStyle(status lvm.Status) lipgloss.Style {
	switch status {
	case lvm.StatusCritical:
		return critStyle
	case lvm.StatusWarning:
		return warnStyle
	default:
		return okStyle
	}
}

func statusSymbol(status lvm.Status) string {
	switch status {
	case lvm.StatusCritical:
		return "✗"
	case lvm.StatusWarning:
		return "⚠"
	default:
		return "✓"
	}
}
