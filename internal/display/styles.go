package display

import "github.com/charmbracelet/lipgloss"

// ── Styles ───────────────────────────────────────────────────────

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bbf7d0")).
			Bold(true)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8")).
			Bold(true)

	primaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4d4d8"))

	secondaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a"))

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bae6fd"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bbf7d0")).
			Bold(true)

	pillStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a1a1aa")).
			Padding(0, 1)

	pillSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#18181b")).
				Background(lipgloss.Color("#bbf7d0")).
				Padding(0, 1)

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fca5a5"))

	infoNoticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bae6fd"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#52525b"))

	checkedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a")).
			Strikethrough(true)
)
