// Package pkg
package pkg

import (
	"fmt"
	"math"

	"hostpulse/internal/domain"
)

var byteUnits = []string{"B", "KB", "MB", "GB", "TB", "PB"}

// HumanizeBytes renders value with two decimals in the largest unit that
// keeps the number below 1024. PB is the ceiling; larger values stay in PB.
func HumanizeBytes(value uint64) string {
	v := float64(value)
	i := 0
	for v >= 1024 && i < len(byteUnits)-1 {
		v /= 1024
		i++
	}
	return fmt.Sprintf("%.2f%s", v, byteUnits[i])
}

// FormatPercentage renders a ratio in [0,1] as "45.67%". It never clamps.
func FormatPercentage(ratio float64) (string, error) {
	if math.IsNaN(ratio) || ratio < 0 || ratio > 1 {
		return "", fmt.Errorf("%w: ratio %v outside [0,1]", domain.ErrInvalidInput, ratio)
	}
	return fmt.Sprintf("%.2f%%", ratio*100), nil
}

// ClampRatio forces a computed ratio into [0,1]. NaN becomes 0.
func ClampRatio(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

// Ratio returns part/whole clamped to [0,1], or 0 when whole is 0.
func Ratio(part, whole uint64) float64 {
	if whole == 0 {
		return 0
	}
	return ClampRatio(float64(part) / float64(whole))
}

// PercentToRatio converts a 0-100 percentage into a ratio rounded to four
// decimals.
func PercentToRatio(percent float64) float64 {
	return ClampRatio(math.Round(percent*100) / 1e4)
}

func ScaleBytes(value, divisor uint64) float64 {
	if divisor == 0 {
		divisor = 1
	}
	return float64(value) / float64(divisor)
}

// UnitLabel names a divisor when it is an exact power of 1024.
func UnitLabel(divisor uint64) string {
	d := uint64(1)
	for _, u := range byteUnits {
		if d == divisor {
			return u
		}
		d *= 1024
	}
	return fmt.Sprintf("x%d B", divisor)
}
