package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"astraplay/internal/engine"
	"astraplay/internal/share"
	"astraplay/internal/ui"
)

type boardModel struct {
	ctx    context.Context
	sess   *engine.Session
	sharer *share.Sharer

	width  int
	height int

	snap        engine.Snapshot
	board       []engine.LeaderboardEntry
	houseCursor int

	spin  spinner.Model
	xpBar progress.Model

	lastLog string
	loading bool
}

type snapshotMsg struct {
	snap engine.Snapshot
}

type commandMsg struct {
	label string
	res   engine.CommandResult
	err   error
	// pick is set for PickDuelOption results; a changed pick starts the wait.
	pick engine.Option
}

type leaderboardMsg struct {
	entries []engine.LeaderboardEntry
}

type duelResolvedMsg struct{}

type sharedMsg struct {
	res share.Result
}

func newBoardModel(ctx context.Context, sess *engine.Session, sharer *share.Sharer) boardModel {
	return boardModel{
		ctx:     ctx,
		sess:    sess,
		sharer:  sharer,
		spin:    spinner.New(spinner.WithSpinner(spinner.Dot)),
		xpBar:   progress.New(progress.WithDefaultGradient(), progress.WithWidth(30), progress.WithoutPercentage()),
		loading: true,
		lastLog: "Welcome back. Check in to tune your brief.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.leaderboardCmd(""))
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg{snap: m.sess.Snapshot()}
	}
}

func (m boardModel) leaderboardCmd(h engine.House) tea.Cmd {
	return func() tea.Msg {
		return leaderboardMsg{entries: m.sess.GetLeaderboard(h)}
	}
}

func (m boardModel) runCmd(label string, fn func(ctx context.Context) (engine.CommandResult, error)) tea.Cmd {
	return func() tea.Msg {
		res, err := fn(m.ctx)
		return commandMsg{label: label, res: res, err: err}
	}
}

func (m boardModel) pickCmd(label string, o engine.Option) tea.Cmd {
	return func() tea.Msg {
		res := m.sess.PickDuelOption(m.ctx, o)
		return commandMsg{label: label, res: res, pick: o}
	}
}

func (m boardModel) waitDuelCmd() tea.Cmd {
	done := m.sess.DuelResolved()
	ctx := m.ctx
	return func() tea.Msg {
		select {
		case <-done:
			return duelResolvedMsg{}
		case <-ctx.Done():
			return nil
		}
	}
}

func (m boardModel) shareCmd() tea.Cmd {
	return func() tea.Msg {
		return sharedMsg{res: m.sharer.Challenge(m.ctx)}
	}
}

func noErr(r engine.CommandResult) (engine.CommandResult, error) { return r, nil }

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case snapshotMsg:
		m.loading = false
		m.snap = msg.snap
		return m, nil
	case leaderboardMsg:
		m.board = msg.entries
		return m, nil
	case commandMsg:
		switch {
		case msg.err != nil:
			m.lastLog = msg.label + " failed: " + msg.err.Error()
		case !msg.res.Changed:
			m.lastLog = msg.label + ": nothing to do."
		case msg.res.Reward != nil:
			m.lastLog = msg.label + ": " + ui.RewardLine(msg.res.Reward)
		default:
			m.lastLog = msg.label + "."
		}
		if msg.pick != engine.OptionNone && msg.res.Changed {
			m.snap.Duel.Choice = msg.pick
			return m, tea.Batch(m.loadCmd(), m.waitDuelCmd(), m.spin.Tick)
		}
		return m, m.loadCmd()
	case duelResolvedMsg:
		d := m.sess.GetDuelState()
		m.lastLog = fmt.Sprintf("Duel resolved: +%d XP", d.XPAwarded)
		return m, m.loadCmd()
	case sharedMsg:
		m.lastLog = ui.IconClip + " " + msg.res.Message
		return m, nil
	case spinner.TickMsg:
		if !m.snap.Duel.Pending() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m boardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "r":
		m.lastLog = "Refreshing…"
		return m, tea.Batch(m.loadCmd(), m.leaderboardCmd(m.snap.House))
	case "m", "f", "c":
		d := map[string]engine.Dimension{"m": engine.DimensionMood, "f": engine.DimensionFocus, "c": engine.DimensionConnection}[msg.String()]
		next := m.snap.CheckIn.Get(d).Next()
		return m, m.runCmd(fmt.Sprintf("%s → %s", d, next), func(ctx context.Context) (engine.CommandResult, error) {
			return noErr(m.sess.SetCheckInDimension(ctx, d, next))
		})
	case "enter":
		return m, m.runCmd("Check-in", m.sess.FinalizeCheckIn)
	case "g":
		return m, m.runCmd("Guidance read", m.sess.MarkGuidanceRead)
	case "a", "b":
		o := engine.Option(msg.String())
		if m.snap.Duel.Choice != engine.OptionNone {
			m.lastLog = "Duel already played."
			return m, nil
		}
		return m, m.pickCmd("Duel pick "+strings.ToUpper(msg.String()), o)
	case "left", "h":
		if m.houseCursor > 0 {
			m.houseCursor--
		}
		return m, nil
	case "right", "l":
		if m.houseCursor < len(engine.Houses)-1 {
			m.houseCursor++
		}
		return m, nil
	case " ":
		h := engine.Houses[m.houseCursor]
		return m, tea.Batch(
			m.runCmd("Joined "+string(h), func(ctx context.Context) (engine.CommandResult, error) {
				return noErr(m.sess.SelectHouse(ctx, h))
			}),
			m.leaderboardCmd(h),
		)
	case "1", "2", "3":
		id := "q" + msg.String()
		return m, m.runCmd("Claim "+id, func(ctx context.Context) (engine.CommandResult, error) {
			return m.sess.CompleteQuest(ctx, id)
		})
	case "s":
		return m, m.shareCmd()
	}
	return m, nil
}

func (m boardModel) View() string {
	if m.loading {
		return "Astra Play — loading…\n"
	}

	colW := 48
	if m.width > 0 && m.width/2-2 < colW {
		colW = m.width/2 - 2
		if colW < 30 {
			colW = 30
		}
	}
	panel := ui.Panel.Width(colW)

	left := lipgloss.JoinVertical(lipgloss.Left,
		panel.Render(m.renderCheckIn()),
		panel.Render(m.renderGuidance()),
		panel.Render(m.renderDuel()),
	)
	right := lipgloss.JoinVertical(lipgloss.Left,
		panel.Render(m.renderHouse()),
		panel.Render(m.renderQuests()),
		panel.Render(m.renderWallet()),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right),
		m.renderFooter(),
	)
}

func (m boardModel) renderHeader() string {
	p := m.snap.Progression
	s := m.snap.Season
	bar := m.xpBar.ViewAs(float64(p.XP) / float64(engine.XPPerLevel))
	return fmt.Sprintf("%s %s\n%s %s",
		ui.Heading(ui.IconSparkle, "Astra Play"),
		ui.Muted.Render(fmt.Sprintf("Season: %s — %s · %d days left", s.Name, s.Motto, s.DaysLeft)),
		ui.ProgressLine(p),
		bar,
	)
}

func (m boardModel) renderCheckIn() string {
	c := m.snap.CheckIn
	lines := []string{ui.PanelTitle.Render("1) Daily Check-in")}
	lines = append(lines,
		fmt.Sprintf("[m] Mood:       %s", ui.LevelText(c.Mood)),
		fmt.Sprintf("[f] Focus:      %s", ui.LevelText(c.Focus)),
		fmt.Sprintf("[c] Connection: %s", ui.LevelText(c.Connection)),
	)
	switch {
	case c.Awarded:
		lines = append(lines, ui.Good.Render(fmt.Sprintf("+%d XP", engine.CheckInXP)))
	case c.IsComplete():
		lines = append(lines, ui.Key.Render("[enter] Complete check-in"))
	default:
		lines = append(lines, ui.Muted.Render("Takes 10s · Helps tune your brief"))
	}
	return strings.Join(lines, "\n")
}

func (m boardModel) renderGuidance() string {
	lines := []string{ui.PanelTitle.Render("2) Guidance Drop") + "  " + ui.Muted.Render("[g] mark read")}
	for _, g := range m.snap.Guidance {
		lines = append(lines, "• "+g)
	}
	lines = append(lines, ui.Muted.Render("Entertainment & wellness only."))
	return strings.Join(lines, "\n")
}

func (m boardModel) renderDuel() string {
	d := m.snap.Duel
	lines := []string{ui.PanelTitle.Render("3) Mini-game — Decision Duel")}
	lines = append(lines, d.Scenario.Title)
	lines = append(lines,
		fmt.Sprintf("[a] %s", d.Scenario.OptionA),
		fmt.Sprintf("[b] %s", d.Scenario.OptionB),
	)
	if d.Choice != engine.OptionNone {
		lines = append(lines, ui.Muted.Render("Tip: ")+d.Scenario.Tip)
		if d.Resolved {
			lines = append(lines, ui.DuelOutcome(d))
		} else {
			lines = append(lines, m.spin.View()+" "+ui.DuelOutcome(d))
		}
	}
	lines = append(lines, ui.Muted.Render("[s] Challenge a friend"))
	return strings.Join(lines, "\n")
}

func (m boardModel) renderHouse() string {
	title := ui.PanelTitle.Render("House")
	if m.snap.House != "" {
		title += "  " + ui.Badge.Render(string(m.snap.House))
	}
	lines := []string{title}

	cursor := engine.Houses[m.houseCursor]
	lines = append(lines, fmt.Sprintf("←/→ %s  %s", ui.SelectedRow.Render(string(cursor)), ui.Muted.Render("[space] join")))
	lines = append(lines, ui.Muted.Render("Top Houses this week"))
	for _, e := range m.board {
		lines = append(lines, ui.LeaderboardLine(e))
	}
	return strings.Join(lines, "\n")
}

func (m boardModel) renderQuests() string {
	lines := []string{ui.PanelTitle.Render("Quests") + "  " + ui.Muted.Render("[1-3] claim")}
	for _, q := range m.snap.Quests {
		lines = append(lines, ui.QuestLine(q))
	}
	return strings.Join(lines, "\n")
}

func (m boardModel) renderWallet() string {
	b := m.snap.Badges
	return strings.Join([]string{
		ui.PanelTitle.Render("Wallet"),
		ui.LabelValue("Stars", ui.Gold.Render(fmt.Sprint(m.snap.Progression.Stars))),
		ui.LabelValue("Badges", fmt.Sprintf("%d/%d", b.Earned, b.Total())),
	}, "\n")
}

func (m boardModel) renderFooter() string {
	return "\n" + m.lastLog + "\n" + ui.Muted.Render("r: refresh · q: quit")
}
