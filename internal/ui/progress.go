// Package ui renders a Bubble Tea progress view over a gcworkbench run,
// driven by the breakpoints the run hits (line parsed, file parsed,
// group found, data grouped, transaction history reduced, ranking
// finished) rather than the teacher's per-file build pipeline stages.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"gcworkbench/internal/trace"
)

// Stages is the fixed, ordered set of breakpoints a DKP demo run hits,
// used both as the progress model's checklist and to compute percent
// complete from "how many of these messages have we seen so far".
var Stages = []string{
	"line parsed",
	"file parsed",
	"group found",
	"data grouped",
	"transaction history reduced",
	"ranking finished",
}

// BreakpointTracer is a trace.Tracer that forwards every breakpoint
// message to a channel, so a progress view can watch a run live without
// the demo package knowing a UI exists. Every other event kind is
// dropped; Events should feed a RingTracer/CellTracer in parallel via a
// MultiTracer for that data.
type BreakpointTracer struct {
	out chan<- string
}

// NewBreakpointTracer wraps out as a Tracer. out is closed by calling
// Close on the returned tracer, not by the caller.
func NewBreakpointTracer(out chan<- string) *BreakpointTracer {
	return &BreakpointTracer{out: out}
}

func (t *BreakpointTracer) Emit(ev trace.Event) {
	if ev.Kind != trace.KindBp {
		return
	}
	select {
	case t.out <- ev.Text:
	default:
	}
}

func (t *BreakpointTracer) Flush() error { return nil }
func (t *BreakpointTracer) Close() error { close(t.out); return nil }
func (t *BreakpointTracer) Level() trace.Level { return trace.LevelBreakpoints }
func (t *BreakpointTracer) Enabled() bool      { return true }

type stageItem struct {
	label string
	hit   bool
}

type progressModel struct {
	title   string
	events  <-chan string
	spinner spinner.Model
	prog    progress.Model
	items   []stageItem
	index   map[string]int
	width   int
	done    bool
}

type bpMsg string
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders breakpoint
// progress for one gcworkbench run.
func NewProgressModel(title string, events <-chan string) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	items := make([]stageItem, 0, len(Stages))
	index := make(map[string]int, len(Stages))
	for i, label := range Stages {
		items = append(items, stageItem{label: label})
		index[label] = i
	}
	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		items:   items,
		index:   index,
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case bpMsg:
		cmd := m.applyBreakpoint(string(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case progress.FrameMsg:
		progressModel, cmd := m.prog.Update(msg)
		m.prog = progressModel.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := m.title
	if m.done {
		header = fmt.Sprintf("done: %s", header)
	} else {
		header = fmt.Sprintf("%s %s", m.spinner.View(), header)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	nameWidth := m.width - 16
	if nameWidth < 20 {
		nameWidth = 20
	}

	for _, item := range m.items {
		status := "pending"
		if item.hit {
			status = "reached"
		}
		name := truncate(item.label, nameWidth)
		line := fmt.Sprintf("  %s %s", styleStatus(status).Render(fmt.Sprintf("%8s", status)), name)
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")

	return b.String()
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return bpMsg(msg)
	}
}

func (m *progressModel) applyBreakpoint(label string) tea.Cmd {
	if idx, ok := m.index[label]; ok {
		m.items[idx].hit = true
	}
	hit := 0
	for _, item := range m.items {
		if item.hit {
			hit++
		}
	}
	pct := float64(hit) / float64(len(m.items))
	return m.prog.SetPercent(pct)
}

func styleStatus(status string) lipgloss.Style {
	switch status {
	case "reached":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
