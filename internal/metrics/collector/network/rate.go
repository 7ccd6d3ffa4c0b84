package network

import "time"

// rates sums the per-interface deltas and divides by elapsed. Interfaces that
// appear in only one sample are skipped, and a counter that went backwards
// (wrap or reset) contributes nothing.
func rates(before, after map[string]ifaceCounters, elapsed time.Duration) (sent, recv uint64) {
	var sentDelta, recvDelta uint64

	for name, curr := range after {
		prev, ok := before[name]
		if !ok {
			continue
		}
		sentDelta += delta(prev.sent, curr.sent)
		recvDelta += delta(prev.recv, curr.recv)
	}

	secs := elapsed.Seconds()
	return uint64(float64(sentDelta) / secs), uint64(float64(recvDelta) / secs)
}

func delta(prev, curr uint64) uint64 {
	if curr < prev {
		return 0
	}
	return curr - prev
}
