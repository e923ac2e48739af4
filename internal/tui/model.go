package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"spidertype/internal/model"
	progressPkg "spidertype/internal/progress"
	"spidertype/internal/session"
	"spidertype/internal/snippets"
	"spidertype/internal/xp"
)

var (
	correctStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	headerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C89A3A"))
	accentStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#7EE787"))
	noticeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
)

// tickMsg carries the ID of the session it was armed for, so the chain
// from an abandoned session dies instead of driving its replacement.
type tickMsg struct {
	sessionID string
}

func tick(sessionID string) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{sessionID: sessionID}
	})
}

// Model implements the Bubble Tea typing UI.
type Model struct {
	config   model.Config
	provider *snippets.Provider
	svc      *progressPkg.Service
	repo     progressPkg.Repository
	clock    session.Clock

	sess    *session.Session
	summary *progressPkg.Summary
	combo   int

	streak   model.StreakRecord
	level    model.LevelInfo
	levelBar progress.Model

	width  int
	height int
}

// NewModel constructs a typing TUI model.
func NewModel(cfg model.Config, provider *snippets.Provider, svc *progressPkg.Service, repo progressPkg.Repository) *Model {
	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 40
	m := &Model{
		config:   cfg,
		provider: provider,
		svc:      svc,
		repo:     repo,
		clock:    session.SystemClock(),
		levelBar: bar,
	}
	m.loadFooterStats()
	m.startSession()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		if msg.sessionID != m.sess.ID() || m.sess.State() != session.StateRunning {
			return m, nil
		}
		m.sess.SampleTick()
		m.sess.CountdownTick()
		if m.sess.State() == session.StateFinished {
			m.finishSession()
			return m, nil
		}
		return m, tick(m.sess.ID())
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if m.summary != nil {
		switch {
		case msg.Type == tea.KeyEnter, msg.Type == tea.KeySpace:
			m.summary = nil
			m.startSession()
			return m, nil
		case msg.String() == "q":
			return m, tea.Quit
		}
		return m, nil
	}

	switch msg.Type {
	case tea.KeyEsc:
		// Abandon the current test; no result, combo survives.
		m.startSession()
		return m, nil
	case tea.KeyBackspace, tea.KeyDelete:
		m.sess.Backspace()
		return m, nil
	case tea.KeySpace:
		return m, m.typeRunes([]rune{' '})
	case tea.KeyEnter:
		return m, m.typeRunes([]rune{'\n'})
	case tea.KeyTab:
		return m, m.typeRunes([]rune{'\t'})
	case tea.KeyRunes:
		return m, m.typeRunes(msg.Runes)
	default:
		return m, nil
	}
}

// typeRunes feeds input and arms the per-second tick on the first keystroke.
func (m *Model) typeRunes(runes []rune) tea.Cmd {
	wasIdle := m.sess.State() == session.StateIdle
	m.sess.Type(runes)
	if m.sess.State() == session.StateFinished {
		m.finishSession()
		return nil
	}
	if wasIdle && m.sess.State() == session.StateRunning {
		return tick(m.sess.ID())
	}
	return nil
}

func (m *Model) startSession() {
	m.sess = session.New(m.targetText(), m.config.Language, m.config.Mode, m.config.DurationSeconds, m.clock)
}

func (m *Model) targetText() string {
	if m.config.Mode == "words" {
		words := m.provider.Words(m.config.Words, m.config.CapsPct, m.config.PunctPct, []rune(m.config.PunctSet))
		return strings.Join(words, " ")
	}
	snippet, err := m.provider.Snippet(m.config.Language)
	if err != nil {
		logErrf("no snippets for %q, falling back to words: %v\n", m.config.Language, err)
		return strings.Join(m.provider.Words(m.config.Words, 0, 0, nil), " ")
	}
	return snippet
}

func (m *Model) finishSession() {
	res, ok := m.sess.Result()
	if !ok {
		return
	}
	summary := m.svc.Finalize(context.Background(), res, m.combo)
	m.summary = &summary
	m.combo++
	m.streak = summary.Streak
	m.level = summary.Level
}

func (m *Model) loadFooterStats() {
	ctx := context.Background()
	streak, err := m.repo.Streak(ctx)
	if err != nil {
		logErrf("failed to load streak: %v\n", err)
	} else {
		m.streak = streak
	}
	total, err := m.repo.TotalXP(ctx)
	if err != nil {
		logErrf("failed to load xp: %v\n", err)
		return
	}
	m.level = xp.CalculateLevel(total)
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.summary != nil {
		return m.viewResults()
	}
	return m.viewTyping()
}

func (m *Model) viewTyping() string {
	target := m.sess.Target()
	if len(target) == 0 {
		return ""
	}
	typed := m.sess.Typed()
	cursorIndex := -1
	if len(typed) < len(target) {
		cursorIndex = len(typed)
	}
	styledRunes := buildStyledRunes(target, typed, cursorIndex)
	if m.width == 0 || m.height == 0 {
		return renderStyledRunes(styledRunes)
	}
	contentWidth := int(float64(m.width) * 0.70)
	if contentWidth < 1 {
		contentWidth = 1
	}
	wrapped := wrapStyledRunes(styledRunes, contentWidth)
	header := m.renderHeader()
	content := lipgloss.NewStyle().Width(contentWidth).Render(wrapped)
	footer := m.renderFooter()
	if m.height < 5 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	headerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, header)
	body := lipgloss.Place(m.width, m.height-2, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return headerLine + "\n" + body + "\n" + footerLine
}

func (m *Model) renderHeader() string {
	remaining := m.sess.Remaining()
	label := fmt.Sprintf("%s · %s · %ds", m.config.Language, m.config.Mode, remaining)
	if m.sess.State() == session.StateIdle {
		label += " · type to start"
	}
	return headerStyle.Render(label)
}

func (m *Model) renderFooter() string {
	snap := m.sess.Snapshot()
	segments := []string{
		fmt.Sprintf("%d WPM · %d%%", snap.WPMNet, snap.AccuracyPercent),
		fmt.Sprintf("Level %d", m.level.Level),
	}
	if m.streak.CurrentStreak > 0 {
		segments = append(segments, fmt.Sprintf("Streak %d (best %d)", m.streak.CurrentStreak, m.streak.BestStreak))
	}
	if m.combo > 0 {
		segments = append(segments, fmt.Sprintf("Combo x%d", m.combo))
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}

func (m *Model) viewResults() string {
	sum := m.summary
	res := sum.Result

	var b strings.Builder
	b.WriteString(titleStyle.Render("Test Complete"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%d WPM (raw %d) · %d%% accuracy · %d%% consistency · %d errors\n\n",
		res.WPMNet, res.WPMRaw, res.AccuracyPercent, res.ConsistencyPct, res.ErrorCount)

	b.WriteString(renderAwardLines(sum.Award))
	b.WriteString("\n")

	fmt.Fprintf(&b, "Level %d · %s\n", sum.Level.Level, xp.LevelTitle(sum.Level.Level))
	b.WriteString(m.levelBar.ViewAs(sum.Level.ProgressPercent / 100))
	b.WriteString("\n")
	if sum.LeveledUp {
		b.WriteString(accentStyle.Render("Level up!"))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case sum.StreakOutcome.Started:
		b.WriteString("Streak started: day 1\n")
	case sum.StreakOutcome.Extended:
		fmt.Fprintf(&b, "Streak extended: %d days\n", sum.Streak.CurrentStreak)
	case sum.StreakOutcome.Broken:
		b.WriteString("Streak reset, back to day 1\n")
	default:
		fmt.Fprintf(&b, "Streak: %d days (best %d)\n", sum.Streak.CurrentStreak, sum.Streak.BestStreak)
	}

	if len(sum.Achievements) > 0 {
		b.WriteString("\n")
		b.WriteString(titleStyle.Render("Achievements Unlocked"))
		b.WriteString("\n")
		for _, a := range sum.Achievements {
			fmt.Fprintf(&b, "%s %s: %s (+%d XP)\n", a.Icon, a.Name, a.Description, a.XP)
		}
	}

	b.WriteString("\n")
	b.WriteString(xp.MotivationalMessage(sum.Award.Total))
	b.WriteString("\n")
	if !sum.Saved {
		b.WriteString(noticeStyle.Render("Result could not be saved."))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(footerStyle.Render("enter: next test · q: quit"))

	content := b.String()
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// renderAwardLines formats the XP breakdown, skipping zero components.
func renderAwardLines(award model.XPAward) string {
	type component struct {
		label string
		value int
	}
	components := []component{
		{"Base", award.Base},
		{"Speed", award.WPMBonus},
		{"Accuracy", award.AccuracyBonus},
		{"Duration", award.DurationBonus},
		{"Consistency", award.ConsistencyBonus},
		{"Streak", award.StreakBonus},
		{"Combo", award.ComboBonus},
		{"Achievements", award.AchievementsBonus},
	}
	var b strings.Builder
	for _, c := range components {
		if c.value == 0 {
			continue
		}
		fmt.Fprintf(&b, "%-13s %+d XP\n", c.label, c.value)
	}
	if award.Multiplier > 1 {
		fmt.Fprintf(&b, "%-13s x%.2f\n", "Multiplier", award.Multiplier)
	}
	b.WriteString(accentStyle.Render(fmt.Sprintf("%-13s %+d XP", "Total", award.Total)))
	b.WriteString("\n")
	return b.String()
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
