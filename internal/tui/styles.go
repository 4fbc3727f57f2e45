package tui

import "github.com/charmbracelet/lipgloss"

//nolint:gochecknoglobals // Style definitions
var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	pathStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	dirStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	fileStyle     = lipgloss.NewStyle()
	sizeStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	realBarStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	diskBarStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("28"))
	emptyBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	cursorStyle   = lipgloss.NewStyle().Reverse(true)
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
)
