package spin

import "github.com/charmbracelet/lipgloss"

// frames is the glyph cycle every spinner animates through.
var frames = []string{"⣷", "⣯", "⣟", "⡿", "⢿", "⣻", "⣽", "⣾"}

var (
	prefixStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	labelStyle   = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Faint(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

const (
	successIcon = "✓"
	failureIcon = "✗"
)
