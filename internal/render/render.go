// Package render turns snapshots into humanized terminal text.
package render

import (
	"fmt"
	"strings"

	"hostpulse/internal/domain"
	"hostpulse/internal/pkg"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("45"))
	subtleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("81")).Bold(true)
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	gaugeFill   = "█"
	gaugeEmpty  = "░"
	cardStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("60")).
			Padding(0, 1).
			MarginRight(1)
)

const gaugeWidth = 24

// Snapshot renders every section of snap. Memory figures are scaled by
// divisor; disk and GPU figures use human-readable units.
func Snapshot(snap domain.SystemSnapshot, divisor uint64) string {
	header := titleStyle.Render("hostpulse")
	if snap.Host != nil {
		header += "  " + labelStyle.Render(snap.Host.Hostname) + " " +
			subtleStyle.Render(fmt.Sprintf("%s %s, up %s", snap.Host.Platform, snap.Host.Arch, uptime(snap.Host.UptimeSeconds)))
	}
	if !snap.CollectedAt.IsZero() {
		header += "  " + subtleStyle.Render(snap.CollectedAt.Local().Format("Mon Jan 2 15:04:05 MST 2006"))
	}

	row1 := lipgloss.JoinHorizontal(lipgloss.Top,
		card("CPU", cpuBody(snap.CPU)),
		card("Memory", memoryBody(snap.Memory, divisor)),
		card("Disk", diskBody(snap.Disk)),
		card("Network", netBody(snap.NetFlow)),
	)

	sections := []string{header, row1, card("GPU", gpuBody(snap.GPU))}
	if len(snap.Diagnostics) > 0 {
		sections = append(sections, card("Diagnostics", diagnosticsBody(snap.Diagnostics)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func cpuBody(c *domain.CPUSnapshot) string {
	if c == nil {
		return unavailable()
	}

	lines := []string{}
	if c.UsageRatio != nil {
		lines = append(lines, gauge(*c.UsageRatio))
	}

	var cores []string
	if c.LogicalCoreCount != nil {
		cores = append(cores, fmt.Sprintf("%d logical", *c.LogicalCoreCount))
	}
	if c.PhysicalCoreCount != nil {
		cores = append(cores, fmt.Sprintf("%d physical", *c.PhysicalCoreCount))
	}
	if len(cores) > 0 {
		lines = append(lines, strings.Join(cores, " / "))
	}
	if c.CurrentFrequencyMHz != nil {
		lines = append(lines, fmt.Sprintf("%.0f MHz", *c.CurrentFrequencyMHz))
	}

	return strings.Join(lines, "\n")
}

func memoryBody(m *domain.MemorySnapshot, divisor uint64) string {
	if m == nil {
		return unavailable()
	}

	unit := pkg.UnitLabel(divisor)
	return gauge(m.UsedRatio) + "\n" + fmt.Sprintf("%.1f / %.1f %s, %.1f %s free",
		pkg.ScaleBytes(m.UsedBytes, divisor),
		pkg.ScaleBytes(m.TotalBytes, divisor), unit,
		pkg.ScaleBytes(m.FreeBytes, divisor), unit)
}

func diskBody(d *domain.DiskSnapshot) string {
	if d == nil {
		return unavailable()
	}

	return gauge(d.UsedRatio) + "\n" + fmt.Sprintf("%s: %s / %s, %s free",
		d.Path,
		pkg.HumanizeBytes(d.UsedBytes),
		pkg.HumanizeBytes(d.TotalBytes),
		pkg.HumanizeBytes(d.FreeBytes))
}

func netBody(n *domain.NetFlowSnapshot) string {
	if n == nil {
		return unavailable()
	}

	return fmt.Sprintf("TX %s/s\nRX %s/s",
		pkg.HumanizeBytes(n.BytesSentPerSecond),
		pkg.HumanizeBytes(n.BytesReceivedPerSecond))
}

func gpuBody(gpus []domain.GPUSnapshot) string {
	if len(gpus) == 0 {
		return subtleStyle.Render("no GPU detected")
	}

	var b strings.Builder
	for i, g := range gpus {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "#%d %s  %s  %d°C  P%d  driver %s\n",
			g.Index, truncate(g.Name, 24), percent(g.ComputeUtilizationRatio), g.TemperatureCelsius, g.PowerState, g.DriverVersion)
		fmt.Fprintf(&b, "   mem %s / %s (%s)",
			pkg.HumanizeBytes(g.MemoryUsedBytes), pkg.HumanizeBytes(g.MemoryTotalBytes), percent(g.MemoryUsedRatio))

		for _, p := range g.Processes {
			fmt.Fprintf(&b, "\n   %-8d %-12s %s", p.PID, truncate(p.OwnerUsername, 12), pkg.HumanizeBytes(p.UsedMemoryBytes))
		}
	}
	return b.String()
}

func diagnosticsBody(diags []domain.Diagnostic) string {
	lines := make([]string, 0, len(diags))
	for _, d := range diags {
		lines = append(lines, warnStyle.Render(fmt.Sprintf("%-8s %-20s %s", d.Sampler, d.Kind, d.Error)))
	}
	return strings.Join(lines, "\n")
}

func gauge(ratio float64) string {
	ratio = pkg.ClampRatio(ratio)
	filled := int(ratio * gaugeWidth)
	return fmt.Sprintf("[%s%s] %s",
		strings.Repeat(gaugeFill, filled),
		strings.Repeat(gaugeEmpty, gaugeWidth-filled),
		percent(ratio))
}

func percent(ratio float64) string {
	s, err := pkg.FormatPercentage(ratio)
	if err != nil {
		return "n/a"
	}
	return s
}

func card(title, body string) string {
	return cardStyle.Render(labelStyle.Render(title) + "\n" + body)
}

func unavailable() string {
	return subtleStyle.Render("unavailable")
}

func uptime(seconds uint64) string {
	d := seconds / 86400
	h := (seconds % 86400) / 3600
	m := (seconds % 3600) / 60
	if d > 0 {
		return fmt.Sprintf("%dd %dh", d, h)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
