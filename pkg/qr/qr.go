// Package qr renders QR code images for ticket tracking links.
package qr

import (
	"bytes"
	"image/png"

	"github.com/skip2/go-qrcode"
)

// GeneratePNG renders content as a PNG QR code of the given pixel size.
func GeneratePNG(content string, size int) ([]byte, error) {
	code, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return nil, err
	}

	buf := new(bytes.Buffer)
	if err := png.Encode(buf, code.Image(size)); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
