package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles is the set of lipgloss styles derived from a theme.
type Styles struct {
	Panel  lipgloss.Style
	Title  lipgloss.Style
	Header lipgloss.Style
	Label  lipgloss.Style
	Value  lipgloss.Style
	Subtle lipgloss.Style
	Pass   lipgloss.Style
	Warn   lipgloss.Style
	Fail   lipgloss.Style
	Graph  lipgloss.Style
}

func NewStyles(theme Theme) Styles {
	return Styles{
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Text).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(theme.Border),
		Label: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Width(12),
		Value: lipgloss.NewStyle().
			Foreground(theme.Text),
		Subtle: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Italic(true),
		Pass:  lipgloss.NewStyle().Bold(true).Foreground(theme.Success),
		Warn:  lipgloss.NewStyle().Bold(true).Foreground(theme.Warning),
		Fail:  lipgloss.NewStyle().Bold(true).Foreground(theme.Error),
		Graph: lipgloss.NewStyle().Foreground(theme.Accent),
	}
}

// Section renders a titled panel
func (s Styles) Section(title string, lines []string) string {
	body := strings.Join(lines, "\n")
	return s.Title.Render(title) + "\n" + s.Panel.Render(body)
}

// Row renders a label and value pair
func (s Styles) Row(label, value string) string {
	return s.Label.Render(label) + s.Value.Render(value)
}
