package domain

import (
	"context"
	"errors"
)

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrMetricUnavailable   = errors.New("metric unavailable")
	ErrUnsupportedPlatform = errors.New("unsupported platform")
	ErrVendorInterface     = errors.New("vendor interface error")
)

const (
	KindInvalidInput        = "invalid_input"
	KindMetricUnavailable   = "metric_unavailable"
	KindUnsupportedPlatform = "unsupported_platform"
	KindVendorInterface     = "vendor_interface"
	KindCanceled            = "canceled"
	KindTimeout             = "timeout"
	KindInternal            = "internal"
)

// ErrorKind classifies err against the sentinel errors above. Vendor errors
// take precedence over unavailable metrics since a failed device query wraps
// both. Context cancellation and deadlines get their own kinds.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidInput):
		return KindInvalidInput
	case errors.Is(err, ErrUnsupportedPlatform):
		return KindUnsupportedPlatform
	case errors.Is(err, ErrVendorInterface):
		return KindVendorInterface
	case errors.Is(err, ErrMetricUnavailable):
		return KindMetricUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return KindTimeout
	case errors.Is(err, context.Canceled):
		return KindCanceled
	default:
		return KindInternal
	}
}

func NewDiagnostic(sampler string, err error) Diagnostic {
	return Diagnostic{
		Sampler: sampler,
		Kind:    ErrorKind(err),
		Error:   err.Error(),
	}
}
