// Package dashui provides the Bubble Tea library dashboard.
package dashui

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/anserk/bookmind/internal/analytics"
	"github.com/anserk/bookmind/internal/book"
	"github.com/anserk/bookmind/internal/model"
	"github.com/anserk/bookmind/internal/store"
)

const (
	tabOverview = iota
	tabLibrary
	tabGenres
	tabBadges
	tabInsights
)

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
	earnedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	unearnedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// Model implements the Bubble Tea dashboard.
type Model struct {
	store *store.Store

	report analytics.Report
	errMsg string

	tabs      []string
	activeTab int
	viewports []viewport.Model
	libTable  table.Model

	width  int
	height int

	filterMode   bool
	filterInputs []textinput.Model
	filterIndex  int

	statusFilter string
	searchQuery  string
}

// NewModel constructs a dashboard model.
func NewModel(st *store.Store) *Model {
	m := &Model{
		store:        st,
		tabs:         []string{"Overview", "Library", "Genres", "Badges", "Insights"},
		statusFilter: "all",
	}
	m.initInputs()
	m.initLibTable()
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
		if m.activeTab == tabLibrary {
			m.libTable.Focus()
		} else {
			m.libTable.Blur()
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
		case "/":
			return m.startFilter()
		case "r":
			m.refreshReport()
			return m, nil
		case "x":
			if m.activeTab == tabLibrary {
				m.toggleSelected()
			}
			return m, nil
		case "g", "home":
			if m.activeTab == tabLibrary {
				m.libTable.GotoTop()
			} else {
				m.viewports[m.activeTab].GotoTop()
			}
			return m, nil
		case "G", "end":
			if m.activeTab == tabLibrary {
				m.libTable.GotoBottom()
			} else {
				m.viewports[m.activeTab].GotoBottom()
			}
			return m, nil
		default:
			if m.activeTab == tabLibrary {
				var cmd tea.Cmd
				m.libTable, cmd = m.libTable.Update(msg)
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
		newFilterInput("Status (all/read/unread/inprogress): "),
		newFilterInput("Search: "),
	}
	m.setInputsFromState()
}

func (m *Model) initLibTable() {
	m.libTable = table.New(
		table.WithColumns(libColumns()),
		table.WithHeight(1),
	)
	m.libTable.SetStyles(libTableStyles())
}

func newFilterInput(prompt string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func (m *Model) setInputsFromState() {
	if len(m.filterInputs) < 2 {
		return
	}
	m.filterInputs[0].SetValue(m.statusFilter)
	m.filterInputs[1].SetValue(m.searchQuery)
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
	_, vpHeight, _ := m.layoutHeights()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = vpHeight
	}
	m.libTable.SetWidth(m.width)
	m.libTable.SetHeight(maxInt(1, vpHeight-1))
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
	if m.activeTab == tabLibrary {
		m.libTable.Focus()
	} else {
		m.libTable.Blur()
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
	summary := padLines(m.renderFilterSummary(), m.width)
	return tabs + "\n" + summary
}

func (m *Model) renderFilterSummary() string {
	search := m.searchQuery
	if search == "" {
		search = "none"
	}
	goal := "not set"
	if m.report.Settings.MonthlyGoal > 0 {
		goal = fmt.Sprintf("%d/%d", m.report.MonthlyRead, m.report.Settings.MonthlyGoal)
	}
	summary := fmt.Sprintf("Filter: %s  Search: %s  Goal: %s  Streak: %d",
		m.statusFilter, search, goal, m.report.Streak)
	summary = truncateLine(summary, m.width)
	return headerStyle.Render(summary)
}

func (m *Model) renderHelp() string {
	help := "Nav: left/right  Scroll: up/down  Filter: /  Refresh: r  Quit: q"
	if m.activeTab == tabLibrary {
		help = "Nav: left/right  Move: up/down  Toggle read: x  Filter: /  Refresh: r  Quit: q"
	}
	return headerStyle.Render(help)
}

func (m *Model) renderFooter() string {
	if m.filterMode {
		return headerStyle.Render("tab/shift+tab: next field  enter: apply  esc: cancel")
	}
	if m.errMsg != "" {
		return m.renderHelp() + "\n" + errorStyle.Render(m.errMsg)
	}
	return m.renderHelp()
}

func (m *Model) renderFilterForm() string {
	lines := []string{"Library filter (enter to apply, esc to cancel)"}
	for _, input := range m.filterInputs {
		lines = append(lines, input.View())
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderBody(height int) string {
	if m.filterMode {
		return fitLines(m.renderFilterForm(), m.width, height)
	}
	if m.activeTab == tabLibrary {
		if len(m.report.Books) == 0 {
			return fitLines("No books yet. Add one with: bookmind add", m.width, height)
		}
		view := tableMutedStyle.Render(m.libTable.View())
		return fitLines(view, m.width, height)
	}
	return fitLines(m.viewports[m.activeTab].View(), m.width, height)
}

func (m *Model) refreshReport() {
	report, err := analytics.BuildReport(context.Background(), m.store, time.Now())
	if err != nil {
		m.errMsg = err.Error()
		for i := range m.viewports {
			m.viewports[i].SetContent("Failed to load library.")
		}
		return
	}
	m.errMsg = ""
	m.report = report
	m.applyLibTable()
	m.renderTabContents()
}

func (m *Model) renderTabContents() {
	if len(m.viewports) == 0 || m.errMsg != "" {
		return
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.viewports[tabOverview].SetContent(m.renderOverview(width))
	m.viewports[tabGenres].SetContent(renderGenres(m.report, width))
	m.viewports[tabBadges].SetContent(renderBadges(m.report.Badges))
	m.viewports[tabInsights].SetContent(renderInsights(m.report, width))
}

func (m *Model) renderOverview(width int) string {
	r := m.report
	if r.Metrics.Total == 0 {
		return "No books yet. Add one with: bookmind add"
	}
	avg := "—"
	if r.Metrics.AvgRating != nil {
		avg = fmt.Sprintf("%.1f", *r.Metrics.AvgRating)
	}
	cards := []string{
		metricCard("Books", fmt.Sprintf("%d", r.Metrics.Total)),
		metricCard("Read", fmt.Sprintf("%d", r.Metrics.ReadCount)),
		metricCard("In Progress", fmt.Sprintf("%d", r.Metrics.InProgressCount)),
		metricCard("Pages", fmt.Sprintf("%d", r.Metrics.TotalPagesRead)),
		metricCard("Avg Rating", avg),
		metricCard("Streak", fmt.Sprintf("%dd", r.Streak)),
	}
	var grid string
	if width < 80 {
		grid = strings.Join(cards, "\n")
	} else {
		row1 := lipgloss.JoinHorizontal(lipgloss.Top, cards[0], cards[1], cards[2])
		row2 := lipgloss.JoinHorizontal(lipgloss.Top, cards[3], cards[4], cards[5])
		grid = lipgloss.JoinVertical(lipgloss.Left, row1, row2)
	}
	persona := fmt.Sprintf("%s %s\n%s", r.Persona.Icon,
		lipgloss.NewStyle().Foreground(lipgloss.Color(r.Persona.Accent)).Bold(true).Render(r.Persona.Name),
		wrapText(r.Persona.Desc, width))
	motivation := wrapText(fmt.Sprintf("%s %s", r.Motivation.Icon, r.Motivation.Text), width)
	habit := wrapText(fmt.Sprintf("%s %s", r.Habit.Icon, r.Habit.Text), width)
	return strings.TrimRight(strings.Join([]string{grid, persona, motivation, habit}, "\n\n"), "\n")
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func renderGenres(r analytics.Report, width int) string {
	if len(r.GenreStats) == 0 {
		return "No genres yet."
	}
	var buf bytes.Buffer
	if err := analytics.RenderGenreBarsWithColor(&buf, r.GenreStats, width, true); err != nil {
		return fmt.Sprintf("Failed to render genres: %v", err)
	}
	lines := []string{
		headerStyle.Render("Genre shares"),
		strings.TrimRight(buf.String(), "\n"),
		"",
		fmt.Sprintf("Suggested next genre: %s", earnedStyle.Render(r.Recommended)),
	}
	return strings.Join(lines, "\n")
}

func renderBadges(badges []model.Badge) string {
	lines := make([]string, 0, len(badges))
	for _, badge := range badges {
		line := fmt.Sprintf("%s %s", badge.Icon, badge.Label)
		if badge.Earned {
			line = earnedStyle.Render(line + "  ✓")
		} else {
			line = unearnedStyle.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func renderInsights(r analytics.Report, width int) string {
	if len(r.Insights) == 0 {
		return "Nothing to say yet — add some books first."
	}
	blocks := make([]string, 0, len(r.Insights))
	for _, card := range r.Insights {
		title := cardValueStyle.Render(fmt.Sprintf("%s %s", card.Icon, card.Title))
		body := wrapText(card.Text, maxInt(10, width-4))
		blocks = append(blocks, cardStyle.Render(title+"\n"+body))
	}
	return strings.Join(blocks, "\n")
}

func libColumns() []table.Column {
	return []table.Column{
		{Title: "ID", Width: 8},
		{Title: "Title", Width: 32},
		{Title: "Author", Width: 20},
		{Title: "Genre", Width: 15},
		{Title: "Progress", Width: 10},
		{Title: "Rating", Width: 6},
	}
}

func (m *Model) applyLibTable() {
	filtered := book.Filter(m.report.Books, m.statusFilter, m.searchQuery)
	rows := make([]table.Row, 0, len(filtered))
	for _, b := range filtered {
		progress := "—"
		switch {
		case b.Read:
			progress = "done"
		case b.PagesRead > 0:
			progress = fmt.Sprintf("%d/%d", b.PagesRead, b.TotalPages)
		}
		rating := ""
		if b.Rating > 0 {
			rating = strings.Repeat("★", b.Rating)
		}
		id := b.ID
		if len(id) > 8 {
			id = id[:8]
		}
		rows = append(rows, table.Row{id, b.Title, b.Author, b.Genre, progress, rating})
	}
	m.libTable.SetRows(rows)
}

// toggleSelected flips the read state of the highlighted library row and
// persists it before recomputing everything.
func (m *Model) toggleSelected() {
	row := m.libTable.SelectedRow()
	if len(row) == 0 {
		return
	}
	target := findByIDPrefix(m.report.Books, row[0])
	if target == nil {
		return
	}
	book.ToggleRead(target, time.Now())
	if err := m.store.UpdateBook(context.Background(), *target); err != nil {
		m.errMsg = fmt.Sprintf("failed to save book: %v", err)
		return
	}
	m.refreshReport()
}

func findByIDPrefix(books []model.Book, prefix string) *model.Book {
	for i := range books {
		if strings.HasPrefix(books[i].ID, prefix) {
			return &books[i]
		}
	}
	return nil
}

func (m *Model) startFilter() (tea.Model, tea.Cmd) {
	m.filterMode = true
	m.setInputsFromState()
	return m, m.setFilterIndex(0)
}

func (m *Model) setFilterIndex(index int) tea.Cmd {
	m.filterIndex = index
	var cmd tea.Cmd
	for i := range m.filterInputs {
		if i == index {
			cmd = m.filterInputs[i].Focus()
		} else {
			m.filterInputs[i].Blur()
		}
	}
	return cmd
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.filterMode = false
		return m, nil
	case "tab", "down":
		return m, m.setFilterIndex((m.filterIndex + 1) % len(m.filterInputs))
	case "shift+tab", "up":
		return m, m.setFilterIndex((m.filterIndex + len(m.filterInputs) - 1) % len(m.filterInputs))
	case "enter":
		status := strings.ToLower(strings.TrimSpace(m.filterInputs[0].Value()))
		switch status {
		case "", "all":
			status = "all"
		case "read", "unread", "inprogress":
		default:
			status = "all"
		}
		m.statusFilter = status
		m.searchQuery = strings.TrimSpace(m.filterInputs[1].Value())
		m.filterMode = false
		m.applyLibTable()
		m.renderTabContents()
		return m, nil
	}
	var cmd tea.Cmd
	m.filterInputs[m.filterIndex], cmd = m.filterInputs[m.filterIndex].Update(msg)
	return m, cmd
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
