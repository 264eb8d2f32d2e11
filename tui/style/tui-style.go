package style

import (
	"github.com/charmbracelet/lipgloss"

	"flowtask/internal/infrastructure/config"
	"flowtask/internal/model"
	"flowtask/internal/theme"
)

var (
	HeaderStyle       lipgloss.Style
	StatsStyle        lipgloss.Style
	TaskStyle         lipgloss.Style
	SelectedTaskStyle lipgloss.Style
	DoneTaskStyle     lipgloss.Style
	TagStyle          lipgloss.Style
	BadgeStyle        lipgloss.Style
	ErrorStyle        lipgloss.Style
	HelpStyle         lipgloss.Style
	FormStyle         lipgloss.Style

	priorityColors map[model.Priority]lipgloss.Color
)

// lightVariants maps the built-in dark-terminal default colors to their
// light-terminal counterparts. User-customized colors are never remapped.
var lightVariants = map[string]string{
	"99":      "55",
	"252":     "236",
	"245":     "242",
	"243":     "246",
	"241":     "244",
	"230":     "255",
	"#A8DADC": "#1D6F73",
	"#95E1D3": "#1B8A7A",
	"#FFE66D": "#B8860B",
}

// InitStyles initializes the styles from config and the resolved theme
func InitStyles(cfg *config.Config, resolved theme.Resolved) {
	styles := cfg.TUI.Styles
	defaults := config.DefaultConfig().TUI.Styles
	light := resolved == theme.ResolvedLight

	HeaderStyle = textStyle(styles.Header, defaults.Header, light)
	StatsStyle = textStyle(styles.Stats, defaults.Stats, light)
	TaskStyle = textStyle(styles.Task, defaults.Task, light)
	SelectedTaskStyle = textStyle(styles.SelectedTask, defaults.SelectedTask, light)
	DoneTaskStyle = textStyle(styles.DoneTask, defaults.DoneTask, light)
	TagStyle = textStyle(styles.Tag, defaults.Tag, light)
	BadgeStyle = textStyle(styles.Badge, defaults.Badge, light)
	ErrorStyle = textStyle(styles.Error, defaults.Error, light)
	HelpStyle = textStyle(styles.Help, defaults.Help, light)

	FormStyle = lipgloss.NewStyle().
		Padding(1, 2).
		Border(getBorder(styles.Form.BorderStyle)).
		BorderForeground(lipgloss.Color(styles.Form.BorderColor))

	priorityColors = map[model.Priority]lipgloss.Color{
		model.PriorityHigh:   lipgloss.Color(adapt(styles.Priority.High, defaults.Priority.High, light)),
		model.PriorityMedium: lipgloss.Color(adapt(styles.Priority.Medium, defaults.Priority.Medium, light)),
		model.PriorityLow:    lipgloss.Color(adapt(styles.Priority.Low, defaults.Priority.Low, light)),
	}
}

// PriorityColor returns the configured color for a priority level
func PriorityColor(p model.Priority) lipgloss.Color {
	return priorityColors[p]
}

// textStyle builds a lipgloss style from a configured text style
func textStyle(ts, def config.TextStyle, light bool) lipgloss.Style {
	s := lipgloss.NewStyle().
		Padding(ts.PaddingVertical, ts.PaddingHorizontal)
	if fg := adapt(ts.Foreground, def.Foreground, light); fg != "" {
		s = s.Foreground(lipgloss.Color(fg))
	}
	if bg := adapt(ts.Background, def.Background, light); bg != "" {
		s = s.Background(lipgloss.Color(bg))
	}
	if ts.Bold {
		s = s.Bold(true)
	}
	if ts.Italic {
		s = s.Italic(true)
	}
	return s
}

// adapt falls back to the default color when unset, and remaps built-in
// defaults for light terminals.
func adapt(color, def string, light bool) string {
	if color == "" {
		color = def
	}
	if light && color == def {
		if v, ok := lightVariants[color]; ok {
			return v
		}
	}
	return color
}

// getBorder returns the border style based on the name
func getBorder(name string) lipgloss.Border {
	switch name {
	case "rounded":
		return lipgloss.RoundedBorder()
	case "normal":
		return lipgloss.NormalBorder()
	case "thick":
		return lipgloss.ThickBorder()
	case "double":
		return lipgloss.DoubleBorder()
	case "hidden":
		return lipgloss.HiddenBorder()
	default:
		return lipgloss.RoundedBorder()
	}
}
