package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/tartampluch/go-datefield/internal/config"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(config.TUIColorAccent))
	rulerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(config.TUIColorAccent))
	statusStyle = lipgloss.NewStyle()
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(config.TUIColorError))
	helpStyle   = lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color(config.TUIColorMuted))
)
