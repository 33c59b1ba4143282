package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/AlexZhen345/LifeOS/internal/storage"
)

// LifeOS theme (CLI + TUI).
// Kept intentionally small: reusable styles and a few emojis.

const (
	IconINT     = "🧠"
	IconVIT     = "❤️"
	IconCHA     = "✨"
	IconGOLD    = "💰"
	IconWIL     = "🔥"
	IconTask    = "📋"
	IconDone    = "✅"
	IconTrophy  = "🏆"
	IconStreak  = "🔥"
	IconPlan    = "📅"
	IconTeapot  = "🍵"
	IconPartner = "🤝"
	IconInfo    = "ℹ️"
	IconWarn    = "⚠️"
	IconError   = "🧨"
	IconRobot   = "🤖"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)
	Dim   = lipgloss.NewStyle().Foreground(cMuted)

	Panel       = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	PanelTitle  = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold).Background(cPrimary)

	BadgeLevelUp = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("LEVEL UP")
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// AttrLine renders the five attributes on one line, skipping nothing; a
// character sheet always shows the full set.
func AttrLine(r storage.Rewards) string {
	return fmt.Sprintf("%s INT %d  %s VIT %d  %s CHA %d  %s GOLD %d  %s WIL %d",
		IconINT, r.INT, IconVIT, r.VIT, IconCHA, r.CHA, IconGOLD, r.GOLD, IconWIL, r.WIL)
}

// RewardsShort renders only the non-zero rewards of a task, like "+3 INT +1 GOLD".
func RewardsShort(r storage.Rewards) string {
	var parts []string
	if r.INT != 0 {
		parts = append(parts, fmt.Sprintf("%+d INT", r.INT))
	}
	if r.VIT != 0 {
		parts = append(parts, fmt.Sprintf("%+d VIT", r.VIT))
	}
	if r.CHA != 0 {
		parts = append(parts, fmt.Sprintf("%+d CHA", r.CHA))
	}
	if r.GOLD != 0 {
		parts = append(parts, fmt.Sprintf("%+d GOLD", r.GOLD))
	}
	if r.WIL != 0 {
		parts = append(parts, fmt.Sprintf("%+d WIL", r.WIL))
	}
	if len(parts) == 0 {
		return Muted.Render("no rewards")
	}
	return Gold.Render(strings.Join(parts, " "))
}

// XPBar renders a fixed-width progress bar for the current level.
func XPBar(xp, xpForNext int) string {
	const width = 20
	if xpForNext <= 0 {
		xpForNext = 1
	}
	filled := xp * width / xpForNext
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("%s %d/%d XP", Good.Render(bar), xp, xpForNext)
}

func ScheduleIcon(t storage.ScheduleItemType) string {
	switch t {
	case storage.ScheduleMeal:
		return "🍽️"
	case storage.ScheduleBreak:
		return "☕"
	case storage.ScheduleRoutine:
		return "🔁"
	default:
		return IconTask
	}
}
