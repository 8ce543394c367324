package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/dessert-clicker/internal/bakery"
	"github.com/vovakirdan/dessert-clicker/internal/clicker"
	"github.com/vovakirdan/dessert-clicker/internal/config"
	"github.com/vovakirdan/dessert-clicker/internal/share"
	"github.com/vovakirdan/dessert-clicker/internal/storage"
)

// Notices are the transient messages shown after a share attempt.
type Notices struct {
	Shared      string
	Unavailable string
	Duration    time.Duration
}

// DefaultNotices returns the built-in notice texts.
func DefaultNotices() Notices {
	return Notices{
		Shared:      config.DefaultSharedNotice,
		Unavailable: config.DefaultUnavailableNotice,
		Duration:    config.DefaultNoticeSeconds * time.Second,
	}
}

// NoticesFromConfig converts the configured share notices.
func NoticesFromConfig(sc config.ShareConfig) Notices {
	n := DefaultNotices()
	if sc.Shared != "" {
		n.Shared = sc.Shared
	}
	if sc.Unavailable != "" {
		n.Unavailable = sc.Unavailable
	}
	if sc.NoticeSeconds > 0 {
		n.Duration = time.Duration(sc.NoticeSeconds) * time.Second
	}
	return n
}

// Options configures a Model.
type Options struct {
	Session *bakery.Session
	History RunLister // nil disables the history view
	Notices Notices
	Width   int
	Height  int

	// Output replaces stdout for the local program. Pass the writer the
	// share clipboard uses so their writes are serialized.
	Output io.Writer
}

// shareResultMsg reports the outcome of a share dispatch.
type shareResultMsg struct {
	err error
}

// Model is the Bubble Tea model for one bakery screen.
type Model struct {
	session *bakery.Session
	ctrl    *clicker.Controller
	notices Notices

	states      <-chan clicker.GameState
	cancelWatch func()
	state       clicker.GameState

	history     historyModel
	showHistory bool

	keys KeyMap
	help help.Model

	notice    string
	noticeSeq int

	width    int
	height   int
	quitting bool
}

// NewModel creates a model observing the session's controller.
func NewModel(opts Options) Model {
	if opts.Notices.Duration <= 0 {
		opts.Notices.Duration = DefaultNotices().Duration
	}
	ctrl := opts.Session.Controller()
	states, cancel := ctrl.Watch()

	return Model{
		session:     opts.Session,
		ctrl:        ctrl,
		notices:     opts.Notices,
		states:      states,
		cancelWatch: cancel,
		state:       ctrl.State(),
		history:     newHistoryModel(opts.History, opts.Width, opts.Height),
		keys:        DefaultKeyMap(),
		help:        help.New(),
		width:       opts.Width,
		height:      opts.Height,
	}
}

// Init starts listening for published states.
func (m Model) Init() tea.Cmd {
	return waitForState(m.states)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if !m.showHistory && msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.session.Sell()
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.history = m.history.resize(msg.Width, msg.Height)
		return m, nil

	case stateMsg:
		m.state = clicker.GameState(msg)
		return m, waitForState(m.states)

	case shareResultMsg:
		return m.handleShareResult(msg)

	case clearNoticeMsg:
		if int(msg) == m.noticeSeq {
			m.notice = ""
		}
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.session.End(storage.EndQuit)
		m.cancelWatch()
		return m, tea.Quit

	case key.Matches(msg, m.keys.History):
		m.showHistory = !m.showHistory
		if m.showHistory {
			m.history.load()
		}
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if m.showHistory {
		var cmd tea.Cmd
		m.history, cmd = m.history.update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Sell):
		m.session.Sell()
	case key.Matches(msg, m.keys.Reset):
		m.session.StartOver()
	case key.Matches(msg, m.keys.Share):
		return m, m.shareCmd()
	}

	return m, nil
}

// shareCmd dispatches the summary off the UI loop.
func (m Model) shareCmd() tea.Cmd {
	session := m.session
	return func() tea.Msg {
		return shareResultMsg{err: session.Share(context.Background())}
	}
}

func (m Model) handleShareResult(msg shareResultMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.err == nil:
		m.notice = m.notices.Shared
	case errors.Is(msg.err, share.ErrUnavailable):
		m.notice = m.notices.Unavailable
	default:
		m.notice = fmt.Sprintf("%s: %v", m.notices.Unavailable, msg.err)
	}
	m.noticeSeq++
	return m, clearNoticeAfter(m.notices.Duration, m.noticeSeq)
}

// State returns the last state the model has observed.
func (m Model) State() clicker.GameState {
	return m.state
}

// Notice returns the notice currently on screen, if any.
func (m Model) Notice() string {
	return m.notice
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	if m.showHistory {
		body = lipgloss.JoinVertical(lipgloss.Center,
			titleStyle.Render("Best Bakeries"),
			"",
			m.history.view(),
		)
	} else {
		body = m.bakeryView()
	}

	parts := []string{body, ""}
	if m.notice != "" {
		parts = append(parts, noticeStyle.Render(m.notice))
	} else {
		parts = append(parts, "")
	}
	parts = append(parts, helpStyle.Render(m.help.View(m.keys)))
	content := lipgloss.JoinVertical(lipgloss.Center, parts...)

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}

// bakeryView renders the dessert, its tier and the counters.
func (m Model) bakeryView() string {
	table := m.ctrl.Table()
	tier := table.At(m.state.TierIndex)

	stats := statsBoxStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top,
		labelStyle.Render("Desserts sold  "),
		valueStyle.Render(humanize.Comma(int64(m.state.UnitsSold))),
		"      ",
		labelStyle.Render("Revenue  "),
		valueStyle.Render("$"+humanize.Comma(int64(m.state.Revenue))),
	))

	return lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render("Dessert Clicker"),
		"",
		renderDessert(m.state.CurrentImageRef),
		"",
		tierStyle.Render(fmt.Sprintf("%s  $%s each", tier.Name, humanize.Comma(int64(m.state.CurrentPrice)))),
		"",
		stats,
		hintStyle.Render(m.nextTierHint()),
	)
}

// nextTierHint describes how far the next dessert is.
func (m Model) nextTierHint() string {
	next, ok := m.ctrl.Table().Next(m.state.TierIndex)
	if !ok {
		return "Top of the menu!"
	}
	remaining := next.Threshold - m.state.UnitsSold
	return fmt.Sprintf("%s unlocks in %s %s", next.Name, humanize.Comma(int64(remaining)), plural(remaining, "sale", "sales"))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// Run starts the Bubble Tea program for a local session and ends the
// session when the program exits.
func Run(opts Options) error {
	model := NewModel(opts)

	progOpts := []tea.ProgramOption{
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Clicks sell desserts
	}
	if opts.Output != nil {
		progOpts = append(progOpts, tea.WithOutput(opts.Output))
	}
	p := tea.NewProgram(model, progOpts...)

	_, err := p.Run()
	model.cancelWatch()
	opts.Session.End(storage.EndQuit)
	return err
}
