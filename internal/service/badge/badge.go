// Package badge renders the QR code a kiosk scans to identify a worker.
package badge

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/skip2/go-qrcode"
)

const size = 256

// Content is the payload encoded in a worker's badge.
func Content(workerID uuid.UUID) string {
	return "timeclock:worker:" + workerID.String()
}

// ParseContent is the inverse of Content.
func ParseContent(s string) (uuid.UUID, error) {
	const prefix = "timeclock:worker:"
	if len(s) <= len(prefix) || s[:len(prefix)] != prefix {
		return uuid.Nil, errors.New("not a worker badge")
	}

	return uuid.Parse(s[len(prefix):])
}

// PNG encodes the worker's badge.
func PNG(workerID uuid.UUID) ([]byte, error) {
	png, err := qrcode.Encode(Content(workerID), qrcode.Medium, size)
	if err != nil {
		return nil, errors.Wrap(err, "encoding qr code")
	}

	return png, nil
}
