package cpu

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// readFrequency prefers the live cpufreq scaling value averaged over all
// cores and falls back to the MHz reported by the CPU info table.
func (c *Collector) readFrequency(ctx context.Context) (float64, bool) {
	if mhz, ok := c.readScalingFreq(); ok {
		return mhz, true
	}

	infos, err := c.info(ctx)
	if err != nil {
		c.log.Debug("failed to read cpu info", "error", err)
		return 0, false
	}

	var sum float64
	var n int
	for _, info := range infos {
		if info.Mhz > 0 {
			sum += info.Mhz
			n++
		}
	}
	if n == 0 {
		return 0, false
	}

	return sum / float64(n), true
}

func (c *Collector) readScalingFreq() (float64, bool) {
	pattern := filepath.Join(c.sysRoot, "devices/system/cpu/cpu[0-9]*/cpufreq/scaling_cur_freq")
	matches, err := filepath.Glob(pattern)
	if err != nil || len(matches) == 0 {
		return 0, false
	}

	var sum float64
	var n int
	for _, f := range matches {
		b, err := os.ReadFile(f)
		if err != nil {
			c.log.Debug("failed to read scaling_cur_freq", "file", f, "error", err)
			continue
		}

		khz, err := strconv.ParseFloat(strings.TrimSpace(string(b)), 64)
		if err != nil || khz <= 0 {
			continue
		}

		sum += khz / 1e3
		n++
	}
	if n == 0 {
		return 0, false
	}

	return sum / float64(n), true
}
