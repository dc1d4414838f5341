package themes

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style for the TUI.
type Theme struct {
	Selected      lipgloss.Style
	StatusPending lipgloss.Style
	StatusInfo    lipgloss.Style
	StatusError   lipgloss.Style
	StatusWarning lipgloss.Style
	StatusSuccess lipgloss.Style
	RiskHigh      lipgloss.Style
	RiskLow       lipgloss.Style
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Normal        lipgloss.Style
	Bold          lipgloss.Style
	Label         lipgloss.Style
	RoundedBox    lipgloss.Style
	Box           lipgloss.Style
	BorderedBox   lipgloss.Style
	Secondary     lipgloss.Color
	Primary       lipgloss.Color
	Muted         lipgloss.Color
	Border        lipgloss.Color
	Foreground    lipgloss.Color
	Background    lipgloss.Color
	Info          lipgloss.Color
	Error         lipgloss.Color
	Warning       lipgloss.Color
	Success       lipgloss.Color
}

type palette struct {
	primary, secondary, success, warning, errColor, info lipgloss.Color
	background, foreground, border, muted, subtle        lipgloss.Color
	selectedText                                         lipgloss.Color
}

func build(p palette) Theme {
	return Theme{
		Primary:    p.primary,
		Secondary:  p.secondary,
		Success:    p.success,
		Warning:    p.warning,
		Error:      p.errColor,
		Info:       p.info,
		Background: p.background,
		Foreground: p.foreground,
		Border:     p.border,
		Muted:      p.muted,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.foreground).
			MarginBottom(1),
		Subtitle: lipgloss.NewStyle().
			Foreground(p.subtle),
		Normal: lipgloss.NewStyle().
			Foreground(p.foreground),
		Bold: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.foreground),
		Label: lipgloss.NewStyle().
			Foreground(p.subtle).
			Width(22),
		Selected: lipgloss.NewStyle().
			Background(p.primary).
			Foreground(p.selectedText).
			Bold(true),

		Box: lipgloss.NewStyle().
			Padding(1, 2),
		BorderedBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(p.border).
			Padding(1, 2),
		RoundedBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.border).
			Padding(0, 1),

		RiskHigh: lipgloss.NewStyle().
			Foreground(p.errColor).
			Bold(true),
		RiskLow: lipgloss.NewStyle().
			Foreground(p.success).
			Bold(true),

		StatusSuccess: lipgloss.NewStyle().
			Foreground(p.success).
			Bold(true),
		StatusWarning: lipgloss.NewStyle().
			Foreground(p.warning).
			Bold(true),
		StatusError: lipgloss.NewStyle().
			Foreground(p.errColor).
			Bold(true),
		StatusInfo: lipgloss.NewStyle().
			Foreground(p.info).
			Bold(true),
		StatusPending: lipgloss.NewStyle().
			Foreground(p.muted).
			Italic(true),
	}
}

// Default is the default theme.
var Default = build(palette{
	primary:      lipgloss.Color("#5b8def"),
	secondary:    lipgloss.Color("#a5c0f5"),
	success:      lipgloss.Color("#10b981"),
	warning:      lipgloss.Color("#f59e0b"),
	errColor:     lipgloss.Color("#ef4444"),
	info:         lipgloss.Color("#3b82f6"),
	background:   lipgloss.Color("#1a1a1a"),
	foreground:   lipgloss.Color("#fafafa"),
	border:       lipgloss.Color("#404040"),
	muted:        lipgloss.Color("#737373"),
	subtle:       lipgloss.Color("#a3a3a3"),
	selectedText: lipgloss.Color("#fafafa"),
})

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = build(palette{
	primary:      lipgloss.Color("#cba6f7"),
	secondary:    lipgloss.Color("#f5c2e7"),
	success:      lipgloss.Color("#a6e3a1"),
	warning:      lipgloss.Color("#f9e2af"),
	errColor:     lipgloss.Color("#f38ba8"),
	info:         lipgloss.Color("#89dceb"),
	background:   lipgloss.Color("#1e1e2e"),
	foreground:   lipgloss.Color("#cdd6f4"),
	border:       lipgloss.Color("#45475a"),
	muted:        lipgloss.Color("#6c7086"),
	subtle:       lipgloss.Color("#a6adc8"),
	selectedText: lipgloss.Color("#1e1e2e"),
})

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	switch name {
	case "catppuccin-mocha":
		return CatppuccinMocha
	default:
		return Default
	}
}

// Risk returns the style for a high or low risk reading.
func (t Theme) Risk(high bool) lipgloss.Style {
	if high {
		return t.RiskHigh
	}
	return t.RiskLow
}
