package validation

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
)

// ImageConstraints defines what an avatar image may be
type ImageConstraints struct {
	AllowedMimeTypes map[string]bool
	MaxSize          int
}

var AvatarConstraints = ImageConstraints{
	AllowedMimeTypes: map[string]bool{
		"image/jpeg": true,
		"image/png":  true,
		"image/webp": true,
	},
	MaxSize: 5 << 20, // 5MB
}

// Image is a decoded data URI.
type Image struct {
	MimeType string
	Data     []byte
}

// Extension returns the file extension for the image type.
func (i *Image) Extension() string {
	switch i.MimeType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	}
	return ""
}

// ParseImageDataURI decodes data:<mime>;base64,<payload> and checks it against
// the constraints. The declared type must match the sniffed content type.
func ParseImageDataURI(uri string, constraints ImageConstraints) (*Image, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return nil, fmt.Errorf("not a data URI")
	}

	header, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, fmt.Errorf("malformed data URI")
	}

	mimeType, ok := strings.CutSuffix(header, ";base64")
	if !ok {
		return nil, fmt.Errorf("data URI must be base64 encoded")
	}

	if !constraints.AllowedMimeTypes[mimeType] {
		return nil, fmt.Errorf("invalid file type: %s", mimeType)
	}

	if base64.StdEncoding.DecodedLen(len(payload)) > constraints.MaxSize+2 {
		return nil, fmt.Errorf("file too large: maximum size is %d MB", constraints.MaxSize/(1<<20))
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 payload: %w", err)
	}

	if len(data) > constraints.MaxSize {
		return nil, fmt.Errorf("file too large: maximum size is %d MB", constraints.MaxSize/(1<<20))
	}

	// Sniff the content; a renamed header cannot fake the magic numbers.
	detected := http.DetectContentType(data)
	if detected != mimeType {
		return nil, fmt.Errorf("invalid file type (detected: %s)", detected)
	}

	return &Image{MimeType: mimeType, Data: data}, nil
}
