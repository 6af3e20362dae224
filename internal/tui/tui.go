// Package tui renders the operator console: a live, paginated table of the
// most recent liquidation events with connection status and session totals.
//
// The console never mutates the history; each refresh tick pulls a fresh
// view-model snapshot from the monitor, and the only state the user drives
// is the pagination cursor.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/liqmon/liqmon/internal/feed"
	"github.com/liqmon/liqmon/internal/model"
	"github.com/liqmon/liqmon/internal/monitor"
)

// refreshInterval is how often the console re-derives its view-model.
const refreshInterval = 250 * time.Millisecond

// tickMsg triggers a view refresh.
type tickMsg time.Time

// Model is the bubbletea model for the console.
type Model struct {
	mon  *monitor.Monitor
	keys keyMap
	help help.Model

	view  monitor.ViewState
	width int
}

// New creates the console model for mon.
func New(mon *monitor.Monitor) Model {
	return Model{
		mon:  mon,
		keys: defaultKeyMap(),
		help: help.New(),
		view: mon.View(),
	}
}

// Run starts the console and blocks until the operator quits.
func Run(mon *monitor.Monitor) error {
	p := tea.NewProgram(New(mon), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.view = m.mon.View()
		return m, tick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextPage):
			m.mon.NextPage()
			m.view = m.mon.View()
		case key.Matches(msg, m.keys.PrevPage):
			m.mon.PrevPage()
			m.view = m.mon.View()
		}
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(m.renderTable())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	return b.String()
}

func (m Model) renderHeader() string {
	v := m.view

	status := v.Status
	switch status {
	case feed.StatusOpen.String():
		status = statusOpenStyle.Render(status)
	case feed.StatusConnecting.String():
		status = statusConnectingStyle.Render(status)
	default:
		status = statusClosedStyle.Render(status)
	}

	counts := fmt.Sprintf("showing %d of %d events", v.Events, v.Capacity)
	if v.Totals.DecodeFailures > 0 {
		counts += mutedStyle.Render(fmt.Sprintf("  (%d bad frames dropped)", v.Totals.DecodeFailures))
	}

	totals := fmt.Sprintf("notional  buy %s  sell %s",
		v.Totals.BuyNotional.StringFixed(2),
		v.Totals.SellNotional.StringFixed(2),
	)

	return titleStyle.Render("liquidations") +
		"  ws: " + status +
		"  " + mutedStyle.Render(counts) +
		"\n" + mutedStyle.Render(totals)
}

// Column layout of the event table.
const tableFormat = "%-12s  %-10s  %-4s  %-6s  %-4s  %12s  %12s  %12s  %-16s  %12s  %12s"

func (m Model) renderTable() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf(tableFormat,
		"TIME", "SYMBOL", "SIDE", "TYPE", "TIF", "QTY", "PRICE", "AVG", "STATUS", "LAST", "FILLED")))
	b.WriteString("\n")

	if len(m.view.Page.Rows) == 0 {
		b.WriteString(mutedStyle.Render("waiting for liquidations..."))
		b.WriteString("\n")
		return b.String()
	}

	for _, row := range m.view.Page.Rows {
		b.WriteString(renderRow(row))
		b.WriteString("\n")
	}

	return b.String()
}

func renderRow(e monitor.Entry) string {
	ev := e.Event

	// Pad before styling: ANSI escapes would otherwise count against the
	// column width and shear the table.
	side := fmt.Sprintf("%-4s", ev.Side)
	if ev.Side == model.SideBuy {
		side = sideBuyStyle.Render(side)
	} else {
		side = sideSellStyle.Render(side)
	}

	status := fmt.Sprintf("%-16s", ev.Status)
	if ev.Status == model.StatusFilled {
		status = statusFilledStyle.Render(status)
	}

	return fmt.Sprintf("%-12s  %-10s  %s  %-6s  %-4s  %12s  %12s  %12s  %s  %12s  %12s",
		time.UnixMilli(ev.TradeTime).Format("15:04:05.000"),
		ev.Symbol,
		side,
		ev.OrderType,
		ev.TimeInForce,
		ev.OrigQty,
		ev.Price,
		ev.AvgPrice,
		status,
		ev.LastQty,
		ev.FilledQty,
	)
}

func (m Model) renderFooter() string {
	page := m.view.Page

	nav := fmt.Sprintf("page %d/%d", page.Index+1, page.PageCount)
	if page.CanGoPrev {
		nav = "< " + nav
	} else {
		nav = "  " + nav
	}
	if page.CanGoNext {
		nav += " >"
	}

	return mutedStyle.Render(nav) + "\n" + m.help.View(m.keys)
}
