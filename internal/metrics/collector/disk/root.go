package disk

import (
	"fmt"

	"hostpulse/internal/domain"
)

// RootPath maps a GOOS value to the single volume reported by this collector.
// Only Windows and Linux are mapped.
func RootPath(goos string) (string, error) {
	switch goos {
	case "windows":
		return "C:/", nil
	case "linux":
		return "/", nil
	default:
		return "", fmt.Errorf("%w: no disk root for %q", domain.ErrUnsupportedPlatform, goos)
	}
}
