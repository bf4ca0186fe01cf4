// Package datauri decodes the captured media the clients send: RFC 2397 data
// URIs and bare base64 strings.
package datauri

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var ErrEmptyPayload = errors.New("payload is empty")

// Data is a decoded payload.
type Data struct {
	MediaType string
	Bytes     []byte
}

// IsReference reports whether s already points at a stored resource.
func IsReference(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// Decode accepts "data:<type>;base64,<data>" or plain base64. The media type of
// plain base64 is sniffed from the content.
func Decode(s string) (Data, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Data{}, ErrEmptyPayload
	}

	mediaType := ""
	if rest, ok := strings.CutPrefix(s, "data:"); ok {
		meta, body, found := strings.Cut(rest, ",")
		if !found {
			return Data{}, errors.New("data uri has no comma")
		}
		params := strings.Split(meta, ";")
		if params[len(params)-1] != "base64" {
			return Data{}, fmt.Errorf("data uri %q is not base64 encoded", meta)
		}
		mediaType = params[0]
		s = body
	}

	b, err := decodeBase64(s)
	if err != nil {
		return Data{}, fmt.Errorf("decode base64: %w", err)
	}
	if len(b) == 0 {
		return Data{}, ErrEmptyPayload
	}
	if mediaType == "" {
		mediaType = http.DetectContentType(b)
	}
	return Data{MediaType: mediaType, Bytes: b}, nil
}

func decodeBase64(s string) ([]byte, error) {
	if b, err := base64.StdEncoding.DecodeString(s); err == nil {
		return b, nil
	}
	return base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "="))
}

// Extension returns the file extension for the media type, with the dot.
func (d Data) Extension() string {
	switch strings.ToLower(d.MediaType) {
	case "image/png":
		return ".png"
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".bin"
	}
}
