package ui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	colorPrimary = lipgloss.Color("205") // Pink
	colorSubtle  = lipgloss.Color("241") // Gray
	colorSuccess = lipgloss.Color("42")  // Green
	colorWarning = lipgloss.Color("214") // Orange

	// Base styles
	styleTitle  = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	styleSubtle = lipgloss.NewStyle().Foreground(colorSubtle)
	styleCursor = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	styleDone   = lipgloss.NewStyle().Foreground(colorSuccess)
	styleWarn   = lipgloss.NewStyle().Foreground(colorWarning).Bold(true)
	styleHelp   = lipgloss.NewStyle().Foreground(colorSubtle)
)
