package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"astraplay/internal/engine"
)

// Astra Play theme (CLI + TUI).

const (
	IconStar    = "⭐"
	IconSparkle = "✨"
	IconDone    = "✅"
	IconTodo    = "⬜"
	IconTrophy  = "🏆"
	IconHouse   = "🏰"
	IconDuel    = "⚔️"
	IconCompass = "🧭"
	IconScroll  = "📜"
	IconError   = "🧨"
	IconClip    = "📋"
)

var (
	cPrimary = lipgloss.Color("63")  // indigo
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

	Panel       = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	PanelTitle  = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Badge       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")).Background(cPrimary).Padding(0, 1)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold)

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

// LevelText colors a check-in value.
func LevelText(l engine.Level) string {
	switch l {
	case engine.LevelHigh:
		return Good.Render("high")
	case engine.LevelOK:
		return H2.Render("ok")
	case engine.LevelLow:
		return Warn.Render("low")
	default:
		return Muted.Render("unset")
	}
}

// QuestLine renders one quest row: checkbox, label, reward or "claimed".
func QuestLine(q engine.Quest) string {
	if q.Done {
		return fmt.Sprintf("%s %s %s", IconDone, q.Label, Muted.Render("claimed"))
	}
	return fmt.Sprintf("%s %s %s", IconTodo, q.Label, Muted.Render(fmt.Sprintf("+%d XP", q.XPReward)))
}

// ProgressLine renders "Lvl 3  45/100 XP  12 stars".
func ProgressLine(p engine.Progression) string {
	return fmt.Sprintf("%s  %s  %s",
		Badge.Render(fmt.Sprintf("Lvl %d", p.Level)),
		Muted.Render(fmt.Sprintf("%d/%d XP", p.XP, engine.XPPerLevel)),
		Gold.Render(fmt.Sprintf("%s %d", IconStar, p.Stars)))
}

// LeaderboardLine renders one ranked row, highlighting the player's house.
func LeaderboardLine(e engine.LeaderboardEntry) string {
	name := string(e.House)
	if e.Selected {
		name = SelectedRow.Render(name + " " + IconHouse)
	}
	return fmt.Sprintf("%2d. %-12s %s", e.Rank, name, Key.Render(fmt.Sprintf("%d pts", e.Points)))
}

// DuelOutcome describes a resolved duel.
func DuelOutcome(d engine.DuelState) string {
	if !d.Resolved {
		return Muted.Render("Calculating alignment…")
	}
	verdict := Warn.Render("not favored")
	if d.Win {
		verdict = Good.Render("favored")
	}
	return fmt.Sprintf("Outcome: %s was %s. %s", Key.Render(d.ChoiceText()), verdict, Muted.Render(fmt.Sprintf("(+%d XP)", d.XPAwarded)))
}

// RewardLine summarizes a reward for a log line.
func RewardLine(r *engine.RewardResult) string {
	if r == nil {
		return ""
	}
	line := fmt.Sprintf("+%d XP", r.Grant.Amount)
	if r.QuestCompleted {
		line += " · quest " + r.QuestID + " claimed"
	}
	if r.Grant.LevelUp() {
		line += fmt.Sprintf(" · %s %d → %d (+%d %s)", BadgeLevelUp, r.Grant.LevelBefore, r.Grant.LevelAfter, r.Grant.StarsEarned, IconStar)
	}
	return line
}
