package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/citelab/citeboard/internal/model"
	"github.com/citelab/citeboard/internal/render"
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#3B82C4"))
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
	modalStyle      = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#3B82C4")).
			Padding(1, 2)
)

// Model implements the Bubble Tea dashboard UI on top of a Session.
type Model struct {
	session *Session
	color   bool

	sections  []model.Section
	tabs      []string
	activeTab int
	viewports []viewport.Model

	rawMode   bool
	rawTable  table.Model
	rawLayout tableLayout

	width  int
	height int

	filterMode  bool
	filterInput textinput.Model
	filterError string
}

type tableLayout struct {
	width    int
	height   int
	rowCount int
	colCount int
}

// NewModel constructs the dashboard UI model.
func NewModel(session *Session) *Model {
	m := &Model{
		session:  session,
		color:    session.cfg.Color,
		sections: []model.Section{model.SectionOverview, model.SectionInstitutions, model.SectionTopics, model.SectionTypes},
		tabs:     []string{"Overview", "Institutions", "Topics", "Types"},
	}
	for i, section := range m.sections {
		if section == session.Section() {
			m.activeTab = i
		}
	}
	m.initFilterInput()
	m.rawTable = table.New(table.WithHeight(1))
	m.rawTable.SetStyles(rawTableStyles())
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
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
		case "/":
			return m.startFilter()
		case "c":
			m.cycleCountry(1)
			return m, nil
		case "C":
			m.cycleCountry(-1)
			return m, nil
		case "=":
			m.session.AdjustTopN(m.activeSection(), 1)
			m.renderTabContents()
			return m, nil
		case "-":
			m.session.AdjustTopN(m.activeSection(), -1)
			m.renderTabContents()
			return m, nil
		case "enter":
			if m.activeSection() != model.SectionOverview {
				m.rawMode = !m.rawMode
				m.syncRawTable()
			}
			return m, nil
		case "r":
			m.session.Reload()
			m.renderTabContents()
			return m, tea.ClearScreen
		case "g", "home":
			if m.rawTableActive() {
				m.rawTable.GotoTop()
			} else {
				m.viewports[m.activeTab].GotoTop()
			}
			return m, nil
		case "G", "end":
			if m.rawTableActive() {
				m.rawTable.GotoBottom()
			} else {
				m.viewports[m.activeTab].GotoBottom()
			}
			return m, nil
		default:
			if m.rawTableActive() {
				var cmd tea.Cmd
				m.rawTable, cmd = m.rawTable.Update(msg)
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
	if m.filterMode {
		return fitLines(m.renderFilterModal(), m.width, m.height)
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) activeSection() model.Section {
	return m.sections[m.activeTab]
}

func (m *Model) rawTableActive() bool {
	return m.rawMode && m.activeSection() != model.SectionOverview
}

func (m *Model) initFilterInput() {
	m.filterInput = textinput.New()
	m.filterInput.Prompt = "Country: "
	m.filterInput.Placeholder = model.AllCountries
	m.filterInput.CharLimit = 0
	m.filterInput.Cursor.SetMode(cursor.CursorBlink)
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	if tabsHeight < 1 {
		tabsHeight = 1
	}
	headerHeight = tabsHeight + 1
	footerHeight = 1
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
	m.syncRawTable()
	promptWidth := lipgloss.Width(m.filterInput.Prompt)
	m.filterInput.Width = maxInt(10, modalInnerWidth(m.width)-promptWidth)
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
	m.session.SetSection(m.activeSection())
	m.renderTabContents()
	m.syncRawTable()
}

func (m *Model) cycleCountry(delta int) {
	countries := m.session.Countries()
	if len(countries) < 2 {
		return
	}
	current := 0
	for i, c := range countries {
		if c == m.session.Country() {
			current = i
			break
		}
	}
	next := (current + delta + len(countries)) % len(countries)
	m.session.SetCountry(countries[next])
	m.renderTabContents()
	m.syncRawTable()
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
	summary := fmt.Sprintf("Filter: country=%s  top: institutions=%d topics=%d",
		m.session.Country(),
		m.session.TopN(model.SectionInstitutions),
		m.session.TopN(model.SectionTopics))
	summary = truncateLine(summary, m.width)
	return tabs + "\n" + padLines(headerStyle.Render(summary), m.width)
}

func (m *Model) renderFooter() string {
	help := "Nav: left/right  Scroll: up/down  Filter: / c C  Top-N: -/=  Raw: enter  Reload: r  Quit: q"
	if m.activeSection() == model.SectionOverview {
		help = "Nav: left/right  Scroll: up/down  Filter: / c C  Reload: r  Quit: q"
	}
	return headerStyle.Render(truncateLine(help, m.width))
}

func (m *Model) renderBody() string {
	_, bodyHeight, _ := m.layoutHeights()
	if m.rawTableActive() {
		view := m.session.View(m.activeSection())
		if view.ErrMsg != "" {
			return fitLines(errorStyle.Render(sectionError(view)), m.width, bodyHeight)
		}
		if len(view.Table.Rows) == 0 {
			return fitLines("No data.", m.width, bodyHeight)
		}
		return fitLines(tableMutedStyle.Render(m.rawTable.View()), m.width, bodyHeight)
	}
	return fitLines(m.viewports[m.activeTab].View(), m.width, bodyHeight)
}

func (m *Model) renderTabContents() {
	if len(m.viewports) == 0 {
		return
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	for i, section := range m.sections {
		m.viewports[i].SetContent(m.renderSection(section, width))
	}
}

func (m *Model) renderSection(section model.Section, width int) string {
	view := m.session.View(section)
	if view.ErrMsg != "" {
		return errorStyle.Render(sectionError(view))
	}
	if section == model.SectionOverview {
		return renderOverview(view, width)
	}
	parts := make([]string, 0, len(view.Charts))
	for _, spec := range view.Charts {
		lines, err := render.Lines(spec, render.Options{Width: width, Color: m.color})
		if err != nil {
			parts = append(parts, errorStyle.Render(fmt.Sprintf("Failed to render %q: %v", spec.Title, err)))
			continue
		}
		parts = append(parts, strings.Join(lines, "\n"))
	}
	return strings.Join(parts, "\n\n")
}

func renderOverview(view SectionView, width int) string {
	cards := make([]string, 0, len(view.Cards))
	for _, c := range view.Cards {
		cards = append(cards, metricCard(c.Label, c.Value))
	}
	var top string
	if width < 80 {
		top = strings.Join(cards, "\n")
	} else {
		top = lipgloss.JoinHorizontal(lipgloss.Top, cards...)
	}
	status := make([]string, 0, len(view.Status))
	for _, line := range view.Status {
		status = append(status, headerStyle.Render(truncateLine(line, width)))
	}
	return top + "\n\n" + strings.Join(status, "\n")
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

// syncRawTable rebuilds the raw-data table for the active section. Layout is
// cached so repeated renders with unchanged data keep the scroll position.
func (m *Model) syncRawTable() {
	if !m.rawTableActive() {
		m.rawTable.Blur()
		return
	}
	view := m.session.View(m.activeSection())
	cols, rows := buildRawTableData(view.Table, m.width)
	_, bodyHeight, _ := m.layoutHeights()
	viewportHeight := maxInt(1, bodyHeight-1)
	if m.rawLayout.width != m.width ||
		m.rawLayout.height != viewportHeight ||
		m.rawLayout.rowCount != len(rows) ||
		m.rawLayout.colCount != len(cols) {
		m.rawTable.SetColumns(cols)
		m.rawTable.SetRows(rows)
		m.rawTable.SetWidth(m.width)
		m.rawTable.SetHeight(viewportHeight)
		m.rawLayout = tableLayout{
			width:    m.width,
			height:   viewportHeight,
			rowCount: len(rows),
			colCount: len(cols),
		}
	}
	m.rawTable.Focus()
}

func buildRawTableData(t Table, width int) ([]table.Column, []table.Row) {
	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) && runewidth.StringWidth(cell) > widths[i] {
				widths[i] = runewidth.StringWidth(cell)
			}
		}
	}
	cols := make([]table.Column, len(t.Headers))
	for i, h := range t.Headers {
		cols[i] = table.Column{Title: h, Width: widths[i]}
	}
	rows := make([]table.Row, 0, len(t.Rows))
	for _, row := range t.Rows {
		rows = append(rows, table.Row(row))
	}
	return cols, rows
}

func rawTableStyles() table.Styles {
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
	value := m.session.Country()
	if value == model.AllCountries {
		value = ""
	}
	m.filterInput.SetValue(value)
	return m, m.filterInput.Focus()
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
		m.renderTabContents()
		m.syncRawTable()
		return m, tea.ClearScreen
	}
	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	return m, cmd
}

// applyFilter validates the typed country against the loaded countries.
// Matching is exact and case-sensitive; empty input selects all countries.
func (m *Model) applyFilter() error {
	value := strings.TrimSpace(m.filterInput.Value())
	if value == "" || value == model.AllCountries {
		m.session.SetCountry(model.AllCountries)
		return nil
	}
	for _, country := range m.session.Countries() {
		if country == value {
			m.session.SetCountry(value)
			return nil
		}
	}
	return fmt.Errorf("unknown country %q", value)
}

func (m *Model) renderFilterModal() string {
	title := cardValueStyle.Render("Country Filter")
	body := []string{
		title,
		m.filterInput.View(),
		headerStyle.Render("Exact country name. Empty selects all countries."),
		headerStyle.Render("Enter to apply / Esc to cancel"),
	}
	if m.filterError != "" {
		body = append(body, errorStyle.Render(m.filterError))
	}
	box := modalStyle.Width(modalWidth(m.width)).Render(strings.Join(body, "\n"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func sectionError(view SectionView) string {
	return "Failed to load section: " + view.ErrMsg
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func modalWidth(width int) int {
	return maxInt(40, minInt(width-4, 80))
}

func modalInnerWidth(width int) int {
	w := modalWidth(width)
	w -= 6 // 2 border + 4 padding
	if w < 10 {
		return 10
	}
	return w
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
