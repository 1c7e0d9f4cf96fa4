package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	Primary   = lipgloss.Color("#F28C28") // Warm orange
	Secondary = lipgloss.Color("#FFB677") // Light peach
	Accent    = lipgloss.Color("#C4452D") // Paprika red
	Success   = lipgloss.Color("#7DBE5E") // Herb green
	Warning   = lipgloss.Color("#FFD24D") // Butter yellow
	Error     = lipgloss.Color("#FF5A5A") // Tomato red
	Muted     = lipgloss.Color("#8C7B6B") // Warm gray
	Text      = lipgloss.Color("#FDF3E7") // Cream
	BgDark    = lipgloss.Color("#2B1D12") // Dark roast
	BgLight   = lipgloss.Color("#3E2C1C") // Toasted brown

	TitleStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Padding(0, 1)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2).
			MarginTop(1)

	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(Accent).
				Bold(true).
				PaddingLeft(2)

	ItemStyle = lipgloss.NewStyle().
			Foreground(Text).
			PaddingLeft(2)

	InfoStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	InputStyle = lipgloss.NewStyle().
			Foreground(Text).
			Border(lipgloss.NormalBorder()).
			BorderForeground(Secondary).
			Padding(0, 1)

	FocusedInputStyle = lipgloss.NewStyle().
				Foreground(Text).
				Border(lipgloss.NormalBorder()).
				BorderForeground(Accent).
				Padding(0, 1)

	LabelStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Width(20)

	ValueStyle = lipgloss.NewStyle().
			Foreground(Text).
			Bold(true)
)
