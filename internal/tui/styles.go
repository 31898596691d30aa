package tui

import "github.com/charmbracelet/lipgloss"

var (
	emptyStyle         = lipgloss.NewStyle()
	lineStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	lineCompleteStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#A78BFA")).Bold(true)
	pointStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	pointSelectedStyle = pointStyle.Foreground(lipgloss.Color("#C89A3A")).Underline(true)

	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	goalStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#22C55E")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	binaryStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#A78BFA"))
)
