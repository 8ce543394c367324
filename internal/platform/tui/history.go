package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/dessert-clicker/internal/storage"
)

const maxHistoryRuns = 50

// RunLister reads recorded runs. Implemented by *storage.Store.
type RunLister interface {
	TopRuns(limit int) ([]storage.Run, error)
}

// historyModel shows the most profitable recorded runs in a table.
type historyModel struct {
	store  RunLister
	runs   []storage.Run
	err    error
	table  table.Model
	width  int
	height int
}

func newHistoryModel(store RunLister, width, height int) historyModel {
	m := historyModel{
		store:  store,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *historyModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Player", Width: 12},
		{Title: "Sold", Width: 8},
		{Title: "Revenue", Width: 12},
		{Title: "Dessert", Width: 18},
		{Title: "When", Width: 14},
	}

	height := m.height - 10 // Leave room for title, stats, and help
	if height < 3 {
		height = 3
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load refreshes runs from the store.
func (m *historyModel) load() {
	m.runs, m.err = nil, nil
	if m.store != nil {
		m.runs, m.err = m.store.TopRuns(maxHistoryRuns)
	}
	m.setRows()
	m.table.GotoTop()
}

// setRows fills the table from the runs already loaded.
func (m *historyModel) setRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		player := r.Player
		if player == "" {
			player = "-"
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			player,
			humanize.Comma(int64(r.UnitsSold)),
			"$" + humanize.Comma(int64(r.Revenue)),
			r.TopTier,
			humanize.Time(r.CreatedAt),
		}
	}
	m.table.SetRows(rows)
}

// resize rebuilds the table for the new size. Runs are only re-read from the
// store when the history view is opened.
func (m historyModel) resize(width, height int) historyModel {
	m.width = width
	m.height = height
	m.table = m.createTable()
	m.setRows()
	return m
}

func (m historyModel) update(msg tea.Msg) (historyModel, tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m historyModel) view() string {
	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.store == nil:
		return tableStyle.Render(emptyStyle.Render("Run history is unavailable.\nNo database is open."))
	case m.err != nil:
		return tableStyle.Render(emptyStyle.Render("Could not load runs:\n" + m.err.Error()))
	case len(m.runs) == 0:
		return tableStyle.Render(emptyStyle.Render("No runs recorded yet.\nStart over or quit to record one!"))
	}
	return tableStyle.Render(m.table.View())
}
