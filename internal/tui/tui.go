// Package tui
package tui

import (
	"context"
	"errors"
	"time"

	"hostpulse/internal/domain"
	"hostpulse/internal/pkg"
	"hostpulse/internal/render"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const smoothing = 0.5

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

type (
	tickMsg     struct{}
	snapshotMsg domain.SystemSnapshot
)

// Model is a live view that resamples every interval. CPU usage and network
// rates are smoothed so the display does not jitter between samples.
type Model struct {
	ctx      context.Context
	sample   func(context.Context) domain.SystemSnapshot
	interval time.Duration
	divisor  uint64

	cpuEMA *pkg.EMA
	txEMA  *pkg.EMA
	rxEMA  *pkg.EMA

	latest domain.SystemSnapshot
	ready  bool
}

func New(ctx context.Context, sample func(context.Context) domain.SystemSnapshot, interval time.Duration, divisor uint64) *Model {
	return &Model{
		ctx:      ctx,
		sample:   sample,
		interval: interval,
		divisor:  divisor,
		cpuEMA:   pkg.NewEMA(smoothing),
		txEMA:    pkg.NewEMA(smoothing),
		rxEMA:    pkg.NewEMA(smoothing),
	}
}

func (m *Model) Init() tea.Cmd {
	return m.collect()
}

func (m *Model) collect() tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(m.sample(m.ctx))
	}
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(time.Time) tea.Msg { return tickMsg{} })
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case tickMsg:
		return m, m.collect()
	case snapshotMsg:
		m.latest = m.smooth(domain.SystemSnapshot(msg))
		m.ready = true
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) smooth(snap domain.SystemSnapshot) domain.SystemSnapshot {
	if snap.CPU != nil && snap.CPU.UsageRatio != nil {
		cpu := *snap.CPU
		usage := m.cpuEMA.Add(*cpu.UsageRatio)
		cpu.UsageRatio = &usage
		snap.CPU = &cpu
	}

	if snap.NetFlow != nil {
		flow := *snap.NetFlow
		flow.BytesSentPerSecond = uint64(m.txEMA.Add(float64(flow.BytesSentPerSecond)))
		flow.BytesReceivedPerSecond = uint64(m.rxEMA.Add(float64(flow.BytesReceivedPerSecond)))
		snap.NetFlow = &flow
	}

	return snap
}

func (m *Model) View() string {
	if !m.ready {
		return "collecting first sample...\n"
	}

	return render.Snapshot(m.latest, m.divisor) + "\n" +
		helpStyle.Render("refresh every "+m.interval.String()+" • q to quit") + "\n"
}

// Run blocks until the user quits or ctx is cancelled.
func Run(ctx context.Context, sample func(context.Context) domain.SystemSnapshot, interval time.Duration, divisor uint64) error {
	p := tea.NewProgram(New(ctx, sample, interval, divisor), tea.WithContext(ctx), tea.WithAltScreen())

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}
