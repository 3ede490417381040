package formatter

import (
	"fmt"
	"strings"

	"github.com/avoronkov/trackdeck/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// SprintStatus renders a sprint status with its color.
func SprintStatus(s domain.SprintStatus) string {
	switch s {
	case domain.SprintActive:
		return StyleGreen.Render(string(s))
	case domain.SprintCompleted:
		return StyleDim.Render(string(s))
	default:
		return StyleBlue.Render(string(s))
	}
}

// ItemStatus renders a work item status with its color.
func ItemStatus(s domain.WorkItemStatus) string {
	switch s {
	case domain.WorkItemDone:
		return StyleGreen.Render(string(s))
	case domain.WorkItemInProgress:
		return StyleYellow.Render(string(s))
	default:
		return StyleFg.Render(string(s))
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}

// Hours formats an hour quantity, trimming trailing zeros.
func Hours(h float64) string {
	return fmt.Sprintf("%gh", h)
}

// Money formats a cost amount with two decimals.
func Money(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

// FTEValue formats a full-time-equivalent figure.
func FTEValue(fte float64) string {
	return fmt.Sprintf("%.2f", fte)
}
