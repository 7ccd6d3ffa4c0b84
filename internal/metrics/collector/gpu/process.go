package gpu

import (
	"context"

	"github.com/shirou/gopsutil/v3/process"
)

func lookupOwner(ctx context.Context, pid int32) (string, error) {
	p, err := process.NewProcessWithContext(ctx, pid)
	if err != nil {
		return "", err
	}

	return p.UsernameWithContext(ctx)
}
