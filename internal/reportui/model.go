// Package reportui provides the Bubble Tea report viewer.
package reportui

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/titlestats/internal/stats"
)

const (
	tabOverview = iota
	tabCategories
	tabRatings
	tabDurations
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
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

// Model implements the Bubble Tea report viewer. The report is computed
// before the program starts; the viewer never mutates it.
type Model struct {
	report stats.Report
	source string
	bins   int

	tabs      []string
	activeTab int
	viewports []viewport.Model

	catTable     table.Model
	catLayout    tableLayout
	ratingTable  table.Model
	ratingLayout tableLayout

	width  int
	height int
}

type tableLayout struct {
	width  int
	height int
}

// NewModel constructs a viewer over a computed report. source is the
// workbook path shown in the header.
func NewModel(rep stats.Report, source string, bins int) *Model {
	m := &Model{
		report: rep,
		source: source,
		bins:   bins,
		tabs:   []string{"Overview", "Categories", "Ratings", "Durations"},
	}
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
	m.catTable = countTable("Type", rep.Summary.Categories, rep.Summary.Rows)
	m.ratingTable = countTable("Rating", rep.Ratings, rep.Summary.Rows)
	m.renderTabContents()
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
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			return m, tea.Quit
		}
		m.focusActiveTable()
		switch msg.String() {
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "g", "home":
			if t := m.activeTable(); t != nil {
				t.GotoTop()
			} else {
				m.viewports[m.activeTab].GotoTop()
			}
			return m, nil
		case "G", "end":
			if t := m.activeTable(); t != nil {
				t.GotoBottom()
			} else {
				m.viewports[m.activeTab].GotoBottom()
			}
			return m, nil
		default:
			if t := m.activeTable(); t != nil {
				var cmd tea.Cmd
				*t, cmd = t.Update(msg)
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
	_, vpHeight, _ := m.layoutHeights()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = vpHeight
	}
	setTableSize(&m.catTable, &m.catLayout, m.width, vpHeight)
	setTableSize(&m.ratingTable, &m.ratingLayout, m.width, vpHeight)
}

func (m *Model) activeTable() *table.Model {
	switch m.activeTab {
	case tabCategories:
		return &m.catTable
	case tabRatings:
		return &m.ratingTable
	}
	return nil
}

func (m *Model) focusActiveTable() {
	m.catTable.Blur()
	m.ratingTable.Blur()
	if t := m.activeTable(); t != nil {
		t.Focus()
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
	m.focusActiveTable()
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
	info := padLines(m.renderSourceLine(), m.width)
	return tabs + "\n" + info
}

func (m *Model) renderSourceLine() string {
	line := fmt.Sprintf("Source: %s  sheet=%s  rows=%d", m.source, m.report.Sheet, m.report.Summary.Rows)
	line = truncateLine(line, m.width)
	return headerStyle.Render(line)
}

func (m *Model) renderFooter() string {
	return headerStyle.Render("Nav: left/right  Scroll: up/down/pgup/pgdn  Quit: q")
}

func (m *Model) renderBody(height int) string {
	switch m.activeTab {
	case tabCategories:
		if len(m.report.Summary.Categories) == 0 {
			return fitLines("No type column in this sheet.", m.width, height)
		}
		return fitLines(tableMutedStyle.Render(m.catTable.View()), m.width, height)
	case tabRatings:
		if len(m.report.Ratings) == 0 {
			return fitLines("No rating values in this sheet.", m.width, height)
		}
		return fitLines(tableMutedStyle.Render(m.ratingTable.View()), m.width, height)
	}
	return fitLines(m.viewports[m.activeTab].View(), m.width, height)
}

func (m *Model) renderTabContents() {
	if len(m.viewports) == 0 {
		return
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.viewports[tabOverview].SetContent(renderOverview(m.report, width))
	m.viewports[tabDurations].SetContent(renderDurations(m.report.Durations, m.bins, width))
}

func renderOverview(rep stats.Report, width int) string {
	if rep.Summary.Rows == 0 {
		return "No rows in this sheet."
	}
	cards := renderSummaryCards(rep, width)
	plot := renderYearPlot(rep.Years, width)
	if plot == "" {
		return strings.TrimRight(cards, "\n")
	}
	return strings.TrimRight(cards+"\n\n"+plot, "\n")
}

func renderSummaryCards(rep stats.Report, width int) string {
	cards := []string{metricCard("Rows", strconv.Itoa(rep.Summary.Rows))}
	if rep.Summary.HasTitles {
		cards = append(cards, metricCard("Unique titles", strconv.Itoa(rep.Summary.UniqueTitles)))
	}
	if len(rep.Summary.Categories) > 0 {
		cards = append(cards, metricCard("Types", strconv.Itoa(len(rep.Summary.Categories))))
	}
	if rep.Years != nil && len(rep.Years.Years) > 0 {
		span := fmt.Sprintf("%d-%d", rep.Years.Years[0], rep.Years.Years[len(rep.Years.Years)-1])
		cards = append(cards, metricCard("Years", span))
	}
	if len(rep.Ratings) > 0 {
		cards = append(cards, metricCard("Top rating", rep.Ratings[0].Name))
	}
	if width < 80 {
		return strings.Join(cards, "\n")
	}
	split := (len(cards) + 1) / 2
	row1 := lipgloss.JoinHorizontal(lipgloss.Top, cards[:split]...)
	if split < len(cards) {
		row2 := lipgloss.JoinHorizontal(lipgloss.Top, cards[split:]...)
		return lipgloss.JoinVertical(lipgloss.Left, row1, row2)
	}
	return row1
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func renderYearPlot(years *stats.YearPivot, width int) string {
	if years == nil || len(years.Years) == 0 {
		return ""
	}
	left := strconv.Itoa(years.Years[0])
	right := strconv.Itoa(years.Years[len(years.Years)-1])
	var buf bytes.Buffer
	err := stats.PlotSeriesSpan(&buf, "Titles by release year", left, right,
		yearSeries(years), stats.PlotWidthFor(width), plotHeight, true)
	if err != nil {
		return fmt.Sprintf("Failed to render year plot: %v", err)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func yearSeries(years *stats.YearPivot) []stats.Series {
	if len(years.Categories) == 0 {
		return []stats.Series{{Name: "Titles", Values: years.Totals()}}
	}
	out := make([]stats.Series, 0, len(years.Categories))
	for i, cat := range years.Categories {
		out = append(out, stats.Series{Name: cat, Values: years.Series(i)})
	}
	return out
}

func renderDurations(minutes []float64, bins, width int) string {
	header := headerStyle.Render(fmt.Sprintf("Movie durations, minutes (%d values)", len(minutes)))
	var buf bytes.Buffer
	if err := stats.RenderHistogram(&buf, minutes, bins, width); err != nil {
		return fmt.Sprintf("Failed to render histogram: %v", err)
	}
	return strings.TrimRight(header+"\n"+buf.String(), "\n")
}

func countTable(nameTitle string, counts []stats.CategoryCount, total int) table.Model {
	columns := []table.Column{
		{Title: nameTitle, Width: 12},
		{Title: "Count", Width: 7},
		{Title: "Share", Width: 6},
	}
	rows := make([]table.Row, 0, len(counts))
	for _, c := range counts {
		share := "-"
		if total > 0 {
			share = fmt.Sprintf("%.1f%%", float64(c.Count)/float64(total)*100)
		}
		rows = append(rows, table.Row{c.Name, strconv.Itoa(c.Count), share})
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(maxInt(1, len(rows))),
	)
	t.SetStyles(countTableStyles())
	return t
}

func countTableStyles() table.Styles {
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

func setTableSize(t *table.Model, layout *tableLayout, width, height int) {
	viewportHeight := maxInt(1, height-1)
	if layout.width == width && layout.height == viewportHeight {
		return
	}
	layout.width = width
	layout.height = viewportHeight
	t.SetWidth(width)
	t.SetHeight(viewportHeight)
	viewportHeight = adjustTableHeight(t, height)
	if layout.height != viewportHeight {
		layout.height = viewportHeight
		t.SetHeight(viewportHeight)
	}
}

// adjustTableHeight nudges the table height until its rendered view fills
// the body exactly; the bubbles table view is taller than its set height
// by the header and border rows.
func adjustTableHeight(t *table.Model, bodyHeight int) int {
	target := maxInt(1, bodyHeight)
	height := t.Height()
	viewHeight := lipgloss.Height(t.View())
	if viewHeight == target {
		return height
	}
	height += target - viewHeight
	if height < 1 {
		height = 1
	}
	t.SetHeight(height)
	viewHeight = lipgloss.Height(t.View())
	if viewHeight == target {
		return height
	}
	height += target - viewHeight
	if height < 1 {
		height = 1
	}
	return height
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
