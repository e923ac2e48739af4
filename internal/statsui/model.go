// Package statsui provides the Bubble Tea dashboard interface.
package statsui

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"spidertype/internal/achievement"
	"spidertype/internal/model"
	"spidertype/internal/stats"
	"spidertype/internal/store"
	"spidertype/internal/xp"
)

const (
	tabOverview = iota
	tabHistory
	tabAchievements
)

const plotHeight = 10

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
	unlockedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#7EE787"))
	lockedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#5A5A5A"))
)

// Model implements the Bubble Tea dashboard UI.
type Model struct {
	store *store.Store
	cfg   model.StatsConfig

	report stats.Report
	errMsg string

	tabs         []string
	activeTab    int
	viewports    []viewport.Model
	historyTable table.Model

	width  int
	height int

	filterMode   bool
	filterInputs []textinput.Model
	filterIndex  int
	filterError  string
}

// NewModel constructs a dashboard model.
func NewModel(st *store.Store, cfg model.StatsConfig) *Model {
	m := &Model{
		store: st,
		cfg:   cfg,
		tabs:  []string{"Overview", "History", "Achievements"},
	}
	m.initInputs()
	m.initHistoryTable()
	m.initViewports()
	m.refreshReport()
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
		m.updateLayout()
		m.renderTabContents()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || (!m.filterMode && msg.String() == "q") {
			return m, tea.Quit
		}
		if m.filterMode {
			return m.updateFilter(msg)
		}
		switch msg.String() {
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "=":
			m.cfg.CurveWindow = nextCurveWindow(m.cfg.CurveWindow)
			m.renderTabContents()
			return m, nil
		case "-":
			m.cfg.CurveWindow = prevCurveWindow(m.cfg.CurveWindow)
			m.renderTabContents()
			return m, nil
		case "/":
			return m.startFilter()
		case "g", "home":
			if m.activeTab == tabHistory {
				m.historyTable.GotoTop()
			} else {
				m.viewports[m.activeTab].GotoTop()
			}
			return m, nil
		case "G", "end":
			if m.activeTab == tabHistory {
				m.historyTable.GotoBottom()
			} else {
				m.viewports[m.activeTab].GotoBottom()
			}
			return m, nil
		default:
			if m.activeTab == tabHistory {
				var cmd tea.Cmd
				m.historyTable, cmd = m.historyTable.Update(msg)
				return m, cmd
			}
			vp := m.viewports[m.activeTab]
			var cmd tea.Cmd
			vp, cmd = vp.Update(msg)
			m.viewports[m.activeTab] = vp
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(bodyHeight), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) initViewports() {
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
}

func (m *Model) initInputs() {
	m.filterInputs = []textinput.Model{
		newFilterInput("Language: "),
		newFilterInput("Since (YYYY-MM-DD): "),
		newFilterInput("Last: "),
		newFilterInput("Curve window: "),
	}
	m.setInputsFromConfig()
}

func (m *Model) initHistoryTable() {
	m.historyTable = table.New(
		table.WithColumns(historyColumns()),
		table.WithHeight(1),
	)
	m.historyTable.SetStyles(historyTableStyles())
}

func newFilterInput(prompt string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func (m *Model) setInputsFromConfig() {
	if len(m.filterInputs) == 0 {
		return
	}
	m.filterInputs[0].SetValue(strings.TrimSpace(m.cfg.Language))
	if m.cfg.Since != nil {
		m.filterInputs[1].SetValue(m.cfg.Since.Format("2006-01-02"))
	} else {
		m.filterInputs[1].SetValue("")
	}
	if m.cfg.Last > 0 {
		m.filterInputs[2].SetValue(strconv.Itoa(m.cfg.Last))
	} else {
		m.filterInputs[2].SetValue("")
	}
	m.filterInputs[3].SetValue(strconv.Itoa(m.cfg.CurveWindow))
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	if tabsHeight < 1 {
		tabsHeight = 1
	}
	headerHeight = tabsHeight + 1
	footerHeight = 1
	if !m.filterMode && m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = bodyHeight
	}
	m.historyTable.SetWidth(m.width)
	m.historyTable.SetHeight(maxInt(1, bodyHeight-1))
	for i := range m.filterInputs {
		promptWidth := lipgloss.Width(m.filterInputs[i].Prompt)
		m.filterInputs[i].Width = maxInt(10, m.width-promptWidth-2)
	}
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	if count == 0 {
		return
	}
	next := m.activeTab + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	m.activeTab = next
	if m.activeTab == tabHistory {
		m.historyTable.Focus()
	} else {
		m.historyTable.Blur()
	}
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	tabs := padLines(m.renderTabs(), m.width)
	filters := padLines(m.renderFilterSummary(), m.width)
	return tabs + "\n" + filters
}

func (m *Model) renderFilterSummary() string {
	lang := m.cfg.Language
	if lang == "" {
		lang = "any"
	}
	since := "any"
	if m.cfg.Since != nil {
		since = m.cfg.Since.Format("2006-01-02")
	}
	last := "all"
	if m.cfg.Last > 0 {
		last = strconv.Itoa(m.cfg.Last)
	}
	summary := fmt.Sprintf("Settings: language=%s  since=%s  last=%s  window=%d", lang, since, last, m.cfg.CurveWindow)
	return headerStyle.Render(truncateLine(summary, m.width))
}

func (m *Model) renderFooter() string {
	if m.filterMode {
		return headerStyle.Render("tab/shift+tab: next field  enter: apply  esc: cancel")
	}
	help := headerStyle.Render("Nav: left/right  Scroll: up/down/pgup/pgdn  Window: -/=  Settings: /  Quit: q")
	if m.errMsg != "" {
		return help + "\n" + errorStyle.Render(m.errMsg)
	}
	return help
}

func (m *Model) renderBody(height int) string {
	if m.filterMode {
		return fitLines(m.renderFilterForm(), m.width, height)
	}
	if m.activeTab == tabHistory {
		if len(m.report.Results) == 0 {
			return fitLines("No tests recorded yet.", m.width, height)
		}
		return fitLines(tableMutedStyle.Render(m.historyTable.View()), m.width, height)
	}
	return fitLines(m.viewports[m.activeTab].View(), m.width, height)
}

func (m *Model) renderFilterForm() string {
	lines := []string{"Settings (enter to apply, esc to cancel)"}
	for _, input := range m.filterInputs {
		lines = append(lines, input.View())
	}
	if m.filterError != "" {
		lines = append(lines, errorStyle.Render(m.filterError))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) refreshReport() {
	report, err := stats.BuildReport(context.Background(), m.store, m.cfg)
	if err != nil {
		m.errMsg = err.Error()
		for i := range m.viewports {
			m.viewports[i].SetContent("Failed to load stats.")
		}
		return
	}
	m.errMsg = ""
	m.report = report
	m.historyTable.SetRows(historyRows(report.Results))
	m.renderTabContents()
}

func (m *Model) renderTabContents() {
	if len(m.viewports) == 0 {
		return
	}
	if m.errMsg != "" {
		for i := range m.viewports {
			m.viewports[i].SetContent("Failed to load stats.")
		}
		return
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.viewports[tabOverview].SetContent(renderOverview(m.report, m.cfg.CurveWindow, width))
	m.viewports[tabAchievements].SetContent(renderAchievements(m.report.Unlocked))
}

func renderOverview(report stats.Report, window, width int) string {
	if len(report.Results) == 0 {
		return "No tests recorded yet."
	}
	cards := renderSummaryCards(report, width)
	curves := renderCurves(report.Results, window, width)
	return strings.TrimRight(cards+"\n\n"+curves, "\n")
}

func renderSummaryCards(report stats.Report, width int) string {
	sum := report.Summary
	cards := []string{
		metricCard("Tests", fmt.Sprintf("%d", sum.Tests)),
		metricCard("Avg WPM", fmt.Sprintf("%.1f", sum.AvgWPM)),
		metricCard("Best WPM", fmt.Sprintf("%d", sum.BestWPM)),
		metricCard("Avg Acc", fmt.Sprintf("%.1f%%", sum.AvgAccuracy)),
		metricCard("Level", fmt.Sprintf("%d · %s", report.Level.Level, xp.LevelTitle(report.Level.Level))),
		metricCard("Streak", fmt.Sprintf("%d (best %d)", report.Streak.CurrentStreak, report.Streak.BestStreak)),
	}
	if width < 80 {
		return strings.Join(cards, "\n")
	}
	row1 := lipgloss.JoinHorizontal(lipgloss.Top, cards[0], cards[1], cards[2])
	row2 := lipgloss.JoinHorizontal(lipgloss.Top, cards[3], cards[4], cards[5])
	return lipgloss.JoinVertical(lipgloss.Left, row1, row2)
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func renderCurves(results []model.SessionResult, window, width int) string {
	var buf bytes.Buffer
	if err := stats.RenderCurvesWithSize(&buf, results, window, width, plotHeight, true); err != nil {
		return fmt.Sprintf("Failed to render curves: %v", err)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func renderAchievements(unlocked []model.UnlockedAchievement) string {
	when := make(map[string]time.Time, len(unlocked))
	for _, ua := range unlocked {
		when[ua.AchievementID] = ua.UnlockedAt
	}
	lines := make([]string, 0, len(achievement.Catalog)+1)
	lines = append(lines, fmt.Sprintf("Unlocked %d of %d", len(when), len(achievement.Catalog)))
	for _, a := range achievement.Catalog {
		if ts, ok := when[a.ID]; ok {
			lines = append(lines, unlockedStyle.Render(
				fmt.Sprintf("%s %s · %s · +%d XP · %s", a.Icon, a.Name, a.Description, a.XP, ts.Format("2006-01-02"))))
			continue
		}
		lines = append(lines, lockedStyle.Render(
			fmt.Sprintf("· %s · %s · +%d XP", a.Name, a.Description, a.XP)))
	}
	return strings.Join(lines, "\n")
}

func historyColumns() []table.Column {
	return []table.Column{
		{Title: "When", Width: 16},
		{Title: "Language", Width: 10},
		{Title: "Mode", Width: 5},
		{Title: "Dur", Width: 4},
		{Title: "WPM", Width: 4},
		{Title: "Raw", Width: 4},
		{Title: "Acc", Width: 4},
		{Title: "Cons", Width: 4},
	}
}

func historyRows(results []model.SessionResult) []table.Row {
	rows := make([]table.Row, 0, len(results))
	for i := len(results) - 1; i >= 0; i-- {
		res := results[i]
		rows = append(rows, table.Row{
			res.Timestamp.Format("2006-01-02 15:04"),
			res.Language,
			res.Mode,
			fmt.Sprintf("%ds", res.DurationSeconds),
			fmt.Sprintf("%d", res.WPMNet),
			fmt.Sprintf("%d", res.WPMRaw),
			fmt.Sprintf("%d%%", res.AccuracyPercent),
			fmt.Sprintf("%d%%", res.ConsistencyPct),
		})
	}
	return rows
}

func historyTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func (m *Model) startFilter() (tea.Model, tea.Cmd) {
	m.filterMode = true
	m.filterError = ""
	m.setInputsFromConfig()
	return m, m.setFilterIndex(0)
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.filterMode = false
		m.filterError = ""
		return m, nil
	case tea.KeyEnter:
		if err := m.applyFilter(); err != nil {
			m.filterError = err.Error()
			return m, nil
		}
		m.filterMode = false
		m.filterError = ""
		m.refreshReport()
		m.updateLayout()
		return m, nil
	case tea.KeyTab:
		return m, m.setFilterIndex(m.filterIndex + 1)
	case tea.KeyShiftTab:
		return m, m.setFilterIndex(m.filterIndex - 1)
	}
	var cmd tea.Cmd
	m.filterInputs[m.filterIndex], cmd = m.filterInputs[m.filterIndex].Update(msg)
	return m, cmd
}

func (m *Model) setFilterIndex(idx int) tea.Cmd {
	count := len(m.filterInputs)
	if count == 0 {
		return nil
	}
	if idx < 0 {
		idx = count - 1
	}
	if idx >= count {
		idx = 0
	}
	m.filterIndex = idx
	var cmd tea.Cmd
	for i := range m.filterInputs {
		if i == m.filterIndex {
			cmd = m.filterInputs[i].Focus()
		} else {
			m.filterInputs[i].Blur()
		}
	}
	return cmd
}

func (m *Model) applyFilter() error {
	lang := strings.TrimSpace(m.filterInputs[0].Value())
	sinceInput := strings.TrimSpace(m.filterInputs[1].Value())
	var since *time.Time
	if sinceInput != "" {
		parsed, err := time.ParseInLocation("2006-01-02", sinceInput, time.Local)
		if err != nil {
			return fmt.Errorf("invalid since date (expected YYYY-MM-DD)")
		}
		since = &parsed
	}

	lastInput := strings.TrimSpace(m.filterInputs[2].Value())
	last := 0
	if lastInput != "" {
		parsed, err := strconv.Atoi(lastInput)
		if err != nil || parsed < 0 {
			return fmt.Errorf("invalid last value (use 0 or positive integer)")
		}
		last = parsed
	}

	windowInput := strings.TrimSpace(m.filterInputs[3].Value())
	window := 0
	if windowInput != "" {
		parsed, err := strconv.Atoi(windowInput)
		if err != nil || parsed < 1 {
			return fmt.Errorf("invalid curve window (use integer >= 1)")
		}
		window = parsed
	}

	m.cfg = model.StatsConfig{
		Language:    lang,
		Since:       since,
		Last:        last,
		CurveWindow: window,
	}
	return nil
}

func nextCurveWindow(n int) int {
	if n < 5 {
		return 5
	}
	if n%5 == 0 {
		return n + 5
	}
	return ((n / 5) + 1) * 5
}

func prevCurveWindow(n int) int {
	if n <= 5 {
		return 1
	}
	if n%5 == 0 {
		return n - 5
	}
	return (n / 5) * 5
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
