package qrcode

import (
	"encoding/base64"
	"errors"
	"fmt"

	qr "github.com/skip2/go-qrcode"
)

// DefaultSize is the image size in pixels used when none is given.
const DefaultSize = 256

var (
	ErrEmptyContent = errors.New("qrcode: empty content")
	ErrGenerate     = errors.New("qrcode: generate")
)

// Generate encodes content as a size x size PNG.
func Generate(content string, size int) ([]byte, error) {
	if content == "" {
		return nil, ErrEmptyContent
	}
	if size <= 0 {
		size = DefaultSize
	}

	png, err := qr.Encode(content, qr.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGenerate, err)
	}
	return png, nil
}

// GenerateBase64Image encodes content as a PNG data URI for HTML embedding.
func GenerateBase64Image(content string, size int) (string, error) {
	png, err := Generate(content, size)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

// Terminal renders content as text using block characters.
// Inverse swaps dark and light modules for light-on-dark terminals.
func Terminal(content string, inverse bool) (string, error) {
	if content == "" {
		return "", ErrEmptyContent
	}

	code, err := qr.New(content, qr.Medium)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrGenerate, err)
	}
	return code.ToSmallString(inverse), nil
}
