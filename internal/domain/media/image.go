package media

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// RefKind tells what an image field currently holds.
type RefKind int

const (
	RefEmpty RefKind = iota
	RefInline
	RefURL
)

const inlinePrefix = "data:image"

var (
	ErrNotInline      = errors.New("image is not an inline data:image payload")
	ErrMalformedImage = errors.New("malformed inline image")
	ErrNotImage       = errors.New("payload is not an image")
)

// Classify inspects an image field value. Anything that is neither empty nor
// an inline payload is treated as an already durable URL.
func Classify(value string) RefKind {
	v := strings.TrimSpace(value)
	switch {
	case v == "":
		return RefEmpty
	case strings.HasPrefix(v, inlinePrefix):
		return RefInline
	default:
		return RefURL
	}
}

// IsInline reports whether value still has to be uploaded.
func IsInline(value string) bool {
	return Classify(value) == RefInline
}

// IsDurableURL reports whether value is an absolute http(s) URL.
func IsDurableURL(value string) bool {
	u, err := url.Parse(strings.TrimSpace(value))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// InlineImage is a decoded data:image payload.
type InlineImage struct {
	MIMEType  string
	Extension string
	Data      []byte
}

// ParseDataURL decodes "data:<mime>;base64,<payload>". The bytes must sniff
// as one of allowedTypes; the declared mime type is kept for the upload
// content type.
func ParseDataURL(value string) (*InlineImage, error) {
	value = strings.TrimSpace(value)
	if !strings.HasPrefix(value, inlinePrefix) {
		return nil, ErrNotInline
	}

	header, payload, ok := strings.Cut(value, ",")
	if !ok {
		return nil, fmt.Errorf("%w: missing payload separator", ErrMalformedImage)
	}

	meta := strings.TrimPrefix(header, "data:")
	declared, encoding, ok := strings.Cut(meta, ";")
	if !ok || encoding != "base64" {
		return nil, fmt.Errorf("%w: only base64 payloads are supported", ErrMalformedImage)
	}
	declared = strings.ToLower(strings.TrimSpace(declared))

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedImage, err)
		}
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrMalformedImage)
	}

	detected := mimetype.Detect(data)
	if !mimetype.EqualsAny(detected.String(), allowedTypes...) {
		return nil, fmt.Errorf("%w: detected %s", ErrNotImage, detected.String())
	}

	ext := detected.Extension()
	if ext == "" {
		ext = extensionFor(declared)
	}

	return &InlineImage{
		MIMEType:  declared,
		Extension: ext,
		Data:      data,
	}, nil
}

// allowedTypes are the raster formats served from the public bucket. SVG is
// left out since browsers run scripts embedded in it.
var allowedTypes = []string{"image/png", "image/jpeg", "image/gif", "image/webp"}

func extensionFor(mime string) string {
	_, sub, ok := strings.Cut(mime, "/")
	if !ok || sub == "" {
		return ""
	}
	sub, _, _ = strings.Cut(sub, "+")
	return "." + sub
}
