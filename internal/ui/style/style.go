// Package style holds the colors and icons shared by podgen's terminal output.
package style

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	Accent = lipgloss.Color("#E5484D")
	Muted  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Arrow   = "→"
	Bullet  = "•"
)

// Heading renders s in the accent color, bold.
func Heading(s string) string {
	return lipgloss.NewStyle().Bold(true).Foreground(Accent).Render(s)
}

// Dim renders s in the muted color.
func Dim(s string) string {
	return lipgloss.NewStyle().Foreground(Muted).Render(s)
}
