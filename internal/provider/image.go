package provider

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const defaultImageMIME = "image/jpeg"

var dataURLPattern = regexp.MustCompile(`^data:(image/[a-zA-Z0-9.+-]+);base64,`)

// Image is a base64 encoded reference image
type Image struct {
	MIMEType string
	Data     string
}

// ParseImage accepts a data URL or bare base64 payload. Empty input
// returns nil without error. For bare payloads the MIME type is sniffed
// from the decoded bytes.
func ParseImage(raw string) (*Image, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	if m := dataURLPattern.FindStringSubmatch(raw); m != nil {
		data := raw[len(m[0]):]
		if data == "" {
			return nil, fmt.Errorf("%w: empty payload", ErrInvalidImage)
		}
		return &Image{MIMEType: strings.ToLower(m[1]), Data: data}, nil
	}
	if strings.HasPrefix(raw, "data:") {
		return nil, fmt.Errorf("%w: unsupported data URL", ErrInvalidImage)
	}

	decoded, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	mime := mimetype.Detect(decoded)
	if !strings.HasPrefix(mime.String(), "image/") {
		// opaque payloads are declared as jpeg
		return &Image{MIMEType: defaultImageMIME, Data: raw}, nil
	}
	return &Image{MIMEType: mime.String(), Data: raw}, nil
}

// ImageFor prepares an attached image for p. Image readers get the parsed
// payload and its errors; for any other provider a non-empty raw value
// yields an empty Image that only marks the attachment.
func ImageFor(p Provider, raw string) (*Image, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	if r, ok := p.(ImageReader); ok && r.ReadsImages() {
		return ParseImage(raw)
	}
	return &Image{}, nil
}
