package infra

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	execApp "github.com/karb/arbitrage-engine/business/execution/app"
	strategydomain "github.com/karb/arbitrage-engine/business/strategy/domain"
	"github.com/karb/arbitrage-engine/pkg/ui"
)

// signalMsg and executionMsg carry engine events into the Bubble Tea
// update loop; tickMsg drives the periodic re-render.
type signalMsg struct{ signal *strategydomain.Signal }
type executionMsg struct{ result execApp.ExecutionResult }
type connectionMsg struct {
	venue     string
	connected bool
}
type tickMsg time.Time

// tuiModel is a reduced dashboard: a scrolling log of signals/executions
// rendered through a bubbles viewport (so the operator can scroll back
// through history, not just watch a tail), plus a one-line connection
// status bar per venue, built from the same style palette the full
// dashboard uses.
type tuiModel struct {
	connections map[string]bool
	log         []string
	maxLogLines int
	view        viewport.Model
	ready       bool
}

func newTUIModel() tuiModel {
	return tuiModel{connections: map[string]bool{}, maxLogLines: 200}
}

func (m tuiModel) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		headerHeight := 3
		if !m.ready {
			m.view = viewport.New(msg.Width, msg.Height-headerHeight)
			m.ready = true
		} else {
			m.view.Width = msg.Width
			m.view.Height = msg.Height - headerHeight
		}
		m.view.SetContent(strings.Join(m.log, "\n"))
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.view, cmd = m.view.Update(msg)
		return m, cmd
	case signalMsg:
		line := fmt.Sprintf("[%s] signal %s buy=%s sell=%s spread=%s",
			time.Now().Format("15:04:05"), msg.signal.Direction, msg.signal.BuyVenue, msg.signal.SellVenue, msg.signal.SpreadRate.String())
		m.pushLog(ui.PositiveValue.Render(line))
	case executionMsg:
		status := "ok"
		style := ui.PositiveValue
		if err := msg.result.Err(); err != nil {
			status = err.Error()
			style = ui.NegativeValue
		}
		line := fmt.Sprintf("[%s] executed buy=%s sell=%s -> %s",
			time.Now().Format("15:04:05"), msg.result.Buy.Venue, msg.result.Sell.Venue, status)
		m.pushLog(style.Render(line))
	case connectionMsg:
		m.connections[msg.venue] = msg.connected
	case tickMsg:
		return m, tickCmd()
	}
	return m, nil
}

func (m *tuiModel) pushLog(line string) {
	m.log = append(m.log, line)
	if len(m.log) > m.maxLogLines {
		m.log = m.log[len(m.log)-m.maxLogLines:]
	}
	if m.ready {
		m.view.SetContent(strings.Join(m.log, "\n"))
		m.view.GotoBottom()
	}
}

func (m tuiModel) View() string {
	var status strings.Builder
	for venue, connected := range m.connections {
		style := ui.StatusDisconnected
		label := "down"
		if connected {
			style = ui.StatusConnected
			label = "up"
		}
		status.WriteString(style.Render(venue+": "+label) + "  ")
	}

	header := ui.TitleStyle.Render("arbitrage engine") + "\n" + ui.HeaderStyle.Render(status.String())
	if !m.ready {
		return header + "\n" + ui.HelpStyle.Render("initializing...")
	}
	return header + "\n" + ui.BoxStyle.Render(m.view.View()) + "\n" + ui.HelpStyle.Render("press q to quit, arrows/pgup/pgdn to scroll")
}

// TUIReporter implements engine.Reporter by driving a Bubble Tea program.
type TUIReporter struct {
	program *tea.Program
}

// NewTUIReporter builds a TUIReporter. The program itself is started lazily
// from Start so construction never blocks.
func NewTUIReporter() *TUIReporter {
	return &TUIReporter{program: tea.NewProgram(newTUIModel())}
}

// Start runs the Bubble Tea program in the background until ctx is cancelled.
func (r *TUIReporter) Start(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		r.program.Quit()
	}()
	go func() {
		_, _ = r.program.Run()
	}()
	return nil
}

func (r *TUIReporter) ReportSignal(signal *strategydomain.Signal) {
	r.program.Send(signalMsg{signal: signal})
}

func (r *TUIReporter) ReportExecution(result execApp.ExecutionResult) {
	r.program.Send(executionMsg{result: result})
}

func (r *TUIReporter) ReportConnectionStatus(venue string, connected bool) {
	r.program.Send(connectionMsg{venue: venue, connected: connected})
}

func (r *TUIReporter) Stop() error {
	r.program.Quit()
	return nil
}
