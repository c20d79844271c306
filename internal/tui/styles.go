package tui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	colorWhite     = lipgloss.Color("#FFFFFF")
	colorLightGray = lipgloss.Color("#CCCCCC")
	colorGray      = lipgloss.Color("#888888")
	colorDarkGray  = lipgloss.Color("#444444")
	colorGreen     = lipgloss.Color("#3FA34D")
	colorRed       = lipgloss.Color("#E5484D")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorDarkGray).
			Italic(true)

	userStyle = lipgloss.NewStyle().
			Foreground(colorLightGray).
			Bold(true)

	assistantStyle = lipgloss.NewStyle().
			Foreground(colorGreen).
			Bold(true)

	productStyle = lipgloss.NewStyle().
			Foreground(colorWhite).
			PaddingLeft(2)

	linkStyle = lipgloss.NewStyle().
			Foreground(colorGray).
			Underline(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(colorGray).
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorRed).
			Bold(true)

	inputBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(colorGray).
			Padding(0, 1)
)
