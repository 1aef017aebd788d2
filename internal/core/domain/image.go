package domain

import (
	"encoding/base64"
	"strings"
)

// MaxProfileImageBytes caps the decoded size of an avatar.
const MaxProfileImageBytes = 2 << 20

// DecodeImageDataURL splits a "data:image/<type>;base64,<payload>" URL into
// its content type and decoded bytes.
func DecodeImageDataURL(dataURL string) (contentType string, data []byte, err error) {
	invalid := func(msg string) error {
		verr := NewValidationError()
		verr.Add("image", msg)
		return verr
	}

	rest, ok := strings.CutPrefix(dataURL, "data:")
	if !ok {
		return "", nil, invalid("Image must be a data URL")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, invalid("Image must be a data URL")
	}
	contentType, ok = strings.CutSuffix(meta, ";base64")
	if !ok || !strings.HasPrefix(contentType, "image/") {
		return "", nil, invalid("Image must be a base64 encoded image")
	}
	if base64.StdEncoding.DecodedLen(len(payload)) > MaxProfileImageBytes+3 {
		return "", nil, invalid("Image must be at most 2 MiB")
	}

	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, invalid("Image payload is not valid base64")
	}
	if len(data) == 0 {
		return "", nil, invalid("Image is empty")
	}
	if len(data) > MaxProfileImageBytes {
		return "", nil, invalid("Image must be at most 2 MiB")
	}
	return contentType, data, nil
}

// EncodeImageDataURL is the inverse of DecodeImageDataURL.
func EncodeImageDataURL(contentType string, data []byte) string {
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
