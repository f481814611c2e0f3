package validation

import (
	"context"
	"errors"
)

// ErrNoCamera reports that no scanning device is available. The machine
// falls back to manual entry when it sees this (or any) start failure.
var ErrNoCamera = errors.New("no camera available")

// Scanner is the narrow capability interface over whatever decodes QR
// payloads (a camera widget, a USB scanner, a test fake). Stop must be
// idempotent and safe to call while inactive.
type Scanner interface {
	Start(ctx context.Context, onDecode func(payload string), onError func(err error)) error
	Stop() error
	IsActive() bool
}

// NoScanner is the adapter used when the process has no scanning device
// attached; starting it always fails so callers stay in manual mode.
type NoScanner struct{}

func (NoScanner) Start(ctx context.Context, onDecode func(string), onError func(error)) error {
	return ErrNoCamera
}

func (NoScanner) Stop() error { return nil }

func (NoScanner) IsActive() bool { return false }
