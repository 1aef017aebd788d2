package domain

import (
	"encoding/base64"
	"errors"
	"testing"
)

func TestDecodeImageDataURL(t *testing.T) {
	png := EncodeImageDataURL("image/png", []byte{0x89, 'P', 'N', 'G'})
	ct, data, err := DecodeImageDataURL(png)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if ct != "image/png" || string(data) != "\x89PNG" {
		t.Fatalf("unexpected result: %s %q", ct, data)
	}

	tooBig := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(make([]byte, MaxProfileImageBytes+1))
	cases := map[string]string{
		"empty":         "",
		"no scheme":     "image/png;base64,AAAA",
		"not an image":  "data:text/plain;base64,AAAA",
		"not base64":    "data:image/png,AAAA",
		"bad payload":   "data:image/png;base64,!!!",
		"empty payload": "data:image/png;base64,",
		"over 2 MiB":    tooBig,
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			if _, _, err := DecodeImageDataURL(in); !errors.Is(err, ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}
