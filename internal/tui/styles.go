package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/dmaraujo/cronograma/internal/schedule"
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	colorFg      lipgloss.Color
	colorMuted   lipgloss.Color
	colorAccent  lipgloss.Color
	colorWarning lipgloss.Color

	colorEfficiency  lipgloss.Color
	colorSafety      lipgloss.Color
	colorCalibration lipgloss.Color
	colorAbsence     lipgloss.Color

	TitleStyle     lipgloss.Style
	HeaderStyle    lipgloss.Style
	RowLabelStyle  lipgloss.Style
	EmptyCellStyle lipgloss.Style
	ShadedStyle    lipgloss.Style // weekends and holidays
	CursorStyle    lipgloss.Style
	PreviewStyle   lipgloss.Style // staged move/resize placement
	RetiredStyle   lipgloss.Style
	FooterStyle    lipgloss.Style
	StatusStyle    lipgloss.Style
	WarningStyle   lipgloss.Style
	DirtyStyle     lipgloss.Style

	taskStyles map[schedule.Category]lipgloss.Style
}

// NewStyles builds the style set for a theme name ("dark", "light" or
// "auto"). Auto picks from the terminal background.
func NewStyles(theme string) *Styles {
	s := &Styles{}

	if theme == "auto" {
		theme = "dark"
		if !termenv.HasDarkBackground() {
			theme = "light"
		}
	}

	if theme == "light" {
		s.colorFg = lipgloss.Color("235")
		s.colorMuted = lipgloss.Color("250")
		s.colorAccent = lipgloss.Color("26")
		s.colorWarning = lipgloss.Color("124")
		s.colorEfficiency = lipgloss.Color("31")
		s.colorSafety = lipgloss.Color("28")
		s.colorCalibration = lipgloss.Color("136")
		s.colorAbsence = lipgloss.Color("245")
	} else {
		s.colorFg = lipgloss.Color("252")
		s.colorMuted = lipgloss.Color("240")
		s.colorAccent = lipgloss.Color("39")
		s.colorWarning = lipgloss.Color("203")
		s.colorEfficiency = lipgloss.Color("45")
		s.colorSafety = lipgloss.Color("78")
		s.colorCalibration = lipgloss.Color("221")
		s.colorAbsence = lipgloss.Color("244")
	}

	s.TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(s.colorAccent)
	s.HeaderStyle = lipgloss.NewStyle().Foreground(s.colorMuted)
	s.RowLabelStyle = lipgloss.NewStyle().Foreground(s.colorFg)
	s.EmptyCellStyle = lipgloss.NewStyle().Foreground(s.colorMuted)
	s.ShadedStyle = lipgloss.NewStyle().Foreground(s.colorMuted).Faint(true)
	s.CursorStyle = lipgloss.NewStyle().Reverse(true)
	s.PreviewStyle = lipgloss.NewStyle().Foreground(s.colorAccent).Blink(false).Bold(true)
	s.RetiredStyle = lipgloss.NewStyle().Foreground(s.colorMuted)
	s.FooterStyle = lipgloss.NewStyle().Foreground(s.colorMuted)
	s.StatusStyle = lipgloss.NewStyle().Foreground(s.colorFg)
	s.WarningStyle = lipgloss.NewStyle().Foreground(s.colorWarning)
	s.DirtyStyle = lipgloss.NewStyle().Foreground(s.colorWarning).Bold(true)

	s.taskStyles = map[schedule.Category]lipgloss.Style{
		schedule.CategoryEfficiency:  lipgloss.NewStyle().Foreground(s.colorEfficiency),
		schedule.CategorySafety:      lipgloss.NewStyle().Foreground(s.colorSafety),
		schedule.CategoryCalibration: lipgloss.NewStyle().Foreground(s.colorCalibration),
		schedule.CategoryAbsence:     lipgloss.NewStyle().Foreground(s.colorAbsence),
	}

	return s
}

// TaskStyle returns the bar style for a task category.
func (s *Styles) TaskStyle(c schedule.Category) lipgloss.Style {
	if st, ok := s.taskStyles[c]; ok {
		return st
	}
	return lipgloss.NewStyle().Foreground(s.colorFg)
}
