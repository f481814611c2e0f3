// Package qr renders check-in codes as PNG data URIs suitable for
// embedding directly in an email body or an <img> tag.
package qr

import (
	"encoding/base64"
	"fmt"
	"image/color"

	"github.com/skip2/go-qrcode"
)

// Options controls the rendered code. Zero values fall back to the
// defaults used on the printed invitations.
type Options struct {
	Level      qrcode.RecoveryLevel
	Size       int
	Foreground color.Color
	Background color.Color
}

// DefaultOptions matches the styling of the invitation suite: high error
// correction so a creased printout still scans, gold on white.
func DefaultOptions() Options {
	return Options{
		Level:      qrcode.High,
		Size:       256,
		Foreground: color.RGBA{R: 0xda, G: 0xa5, B: 0x20, A: 0xff},
		Background: color.White,
	}
}

// Encode renders text as a PNG data URI.
func Encode(text string, opts Options) (string, error) {
	if opts.Size == 0 {
		opts.Size = 256
	}

	q, err := qrcode.New(text, opts.Level)
	if err != nil {
		return "", fmt.Errorf("failed to build QR code: %w", err)
	}
	if opts.Foreground != nil {
		q.ForegroundColor = opts.Foreground
	}
	if opts.Background != nil {
		q.BackgroundColor = opts.Background
	}

	png, err := q.PNG(opts.Size)
	if err != nil {
		return "", fmt.Errorf("failed to render QR PNG: %w", err)
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
