package theme

import "github.com/charmbracelet/lipgloss"

// Palette is one Catppuccin flavour.
type Palette struct {
	Base     lipgloss.Color
	Mantle   lipgloss.Color
	Surface1 lipgloss.Color
	Text     lipgloss.Color
	Subtext0 lipgloss.Color
	Lavender lipgloss.Color
	Sapphire lipgloss.Color
	Green    lipgloss.Color
	Yellow   lipgloss.Color
	Red      lipgloss.Color
	Peach    lipgloss.Color
}

var (
	Mocha = Palette{
		Base:     "#1e1e2e",
		Mantle:   "#181825",
		Surface1: "#45475a",
		Text:     "#cdd6f4",
		Subtext0: "#a6adc8",
		Lavender: "#b4befe",
		Sapphire: "#74c7ec",
		Green:    "#a6e3a1",
		Yellow:   "#f9e2af",
		Red:      "#f38ba8",
		Peach:    "#fab387",
	}
	Latte = Palette{
		Base:     "#eff1f5",
		Mantle:   "#e6e9ef",
		Surface1: "#bcc0cc",
		Text:     "#4c4f69",
		Subtext0: "#6c6f85",
		Lavender: "#7287fd",
		Sapphire: "#209fb5",
		Green:    "#40a02b",
		Yellow:   "#df8e1d",
		Red:      "#d20f39",
		Peach:    "#fe640b",
	}
)

type Styles struct {
	Dark    bool
	Palette Palette

	App        lipgloss.Style
	Pane       lipgloss.Style
	PaneActive lipgloss.Style
	Bar        lipgloss.Style
	Title      lipgloss.Style
	Muted      lipgloss.Style
	Hot        lipgloss.Style
	Good       lipgloss.Style
	Warn       lipgloss.Style
	Bad        lipgloss.Style
}

// New returns Mocha styles when dark is set and Latte otherwise.
func New(dark bool) Styles {
	p := Latte
	if dark {
		p = Mocha
	}
	pane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.Surface1).
		Background(p.Mantle).
		Foreground(p.Text).
		Padding(1)
	return Styles{
		Dark:       dark,
		Palette:    p,
		App:        lipgloss.NewStyle().Background(p.Base).Foreground(p.Text),
		Pane:       pane,
		PaneActive: pane.BorderForeground(p.Lavender),
		Bar:        lipgloss.NewStyle().Background(p.Mantle).Foreground(p.Text),
		Title:      lipgloss.NewStyle().Foreground(p.Sapphire).Bold(true),
		Muted:      lipgloss.NewStyle().Foreground(p.Subtext0),
		Hot:        lipgloss.NewStyle().Foreground(p.Peach).Bold(true),
		Good:       lipgloss.NewStyle().Foreground(p.Green).Bold(true),
		Warn:       lipgloss.NewStyle().Foreground(p.Yellow).Bold(true),
		Bad:        lipgloss.NewStyle().Foreground(p.Red).Bold(true),
	}
}

// ForStatus picks the style for a course status string.
func (s Styles) ForStatus(status string) lipgloss.Style {
	switch status {
	case "target_met":
		return s.Good
	case "safe_to_skip":
		return s.Warn
	case "attend_all", "invalid":
		return s.Bad
	}
	return s.Muted
}
