// Package tui renders cartctl watch: a live cart count badge fed by the
// client's polling loop and its cart-updated broadcasts.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// feedCap bounds the event feed shown under the badge.
const feedCap = 8

// CountMsg carries one poll outcome to the TUI.
type CountMsg struct {
	Count  int
	Cached bool
	Reason string
	At     time.Time
}

// CartEventMsg mirrors one cart-updated broadcast from the client's bus.
type CartEventMsg struct {
	Count int
	At    time.Time
}

// WatchDoneMsg signals that the watch loop ended cleanly.
type WatchDoneMsg struct{}

// WatchErrorMsg signals that the watch loop failed.
type WatchErrorMsg struct {
	Err error
}

var (
	badgeStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("57"))
	dimStyle  = lipgloss.NewStyle().Faint(true)
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

type feedLine struct {
	at    time.Time
	count int
}

// Model is the Bubble Tea model for the watch screen.
type Model struct {
	count     int
	haveCount bool
	cached    bool
	reason    string
	updatedAt time.Time
	feed      []feedLine
	spinner   spinner.Model
	done      bool
	err       error
}

// NewModel creates the watch model, spinning until the first count
// arrives.
func NewModel() Model {
	s := spinner.New()
	s.Spinner = spinner.Dot

	return Model{spinner: s}
}

// Init starts the spinner tick.
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case CountMsg:
		m.count = msg.Count
		m.haveCount = true
		m.cached = msg.Cached
		m.reason = msg.Reason
		m.updatedAt = msg.At
		return m, nil

	case CartEventMsg:
		m.feed = append([]feedLine{{at: msg.At, count: msg.Count}}, m.feed...)
		if len(m.feed) > feedCap {
			m.feed = m.feed[:feedCap]
		}
		return m, nil

	case WatchDoneMsg:
		m.done = true
		return m, tea.Quit

	case WatchErrorMsg:
		m.done = true
		m.err = msg.Err
		return m, tea.Quit

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.done = true
			return m, tea.Quit
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the badge, the freshness line, and the recent broadcasts.
func (m Model) View() string {
	var s string

	if !m.haveCount {
		s = fmt.Sprintf("\n  %s fetching cart count...\n", m.spinner.View())
	} else {
		badge := badgeStyle.Render(fmt.Sprintf("cart: %d", m.count))
		s = "\n  " + badge
		if m.cached {
			s += " " + dimStyle.Render("(cached)")
		}
		s += "\n  " + dimStyle.Render("updated "+humanize.Time(m.updatedAt)) + "\n"
	}

	if m.reason != "" {
		s += "  " + warnStyle.Render("storefront unreachable: "+m.reason) + "\n"
	}

	if len(m.feed) > 0 {
		s += "\n"
		for _, line := range m.feed {
			s += fmt.Sprintf("  %s cart-updated count=%d\n",
				dimStyle.Render(line.at.Format("15:04:05")), line.count)
		}
	}

	if m.done && m.err != nil {
		s += fmt.Sprintf("\n  Error: %s\n", m.err)
	}

	s += "\n  " + dimStyle.Render("q to quit") + "\n"
	return s
}
