// Package request decodes HTTP request bodies.
package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
)

// DefaultMaxBodySize bounds request bodies when no limit is configured.
const DefaultMaxBodySize = 1 << 20

var (
	// ErrEmptyBody is returned when the request has no body to decode.
	ErrEmptyBody = errors.New("request body is empty")
	// ErrBodyTooLarge is returned when the body exceeds the parser's limit.
	ErrBodyTooLarge = errors.New("request body too large")
	// ErrUnsupportedMediaType is returned for bodies that are not JSON.
	ErrUnsupportedMediaType = errors.New("unsupported content type")
	// ErrTrailingData is returned when more than one JSON value is sent.
	ErrTrailingData = errors.New("request body contains multiple JSON values")
)

// Parser decodes JSON request bodies.
type Parser struct {
	maxBodySize int64 // bytes

	// Strict rejects fields the target does not declare.
	Strict bool
}

// NewParser creates a parser with DefaultMaxBodySize.
func NewParser() *Parser {
	return &Parser{maxBodySize: DefaultMaxBodySize}
}

// NewParserWithMaxSize creates a parser with a custom max body size.
// Non-positive sizes fall back to DefaultMaxBodySize.
func NewParserWithMaxSize(maxBytes int64) *Parser {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodySize
	}
	return &Parser{maxBodySize: maxBytes}
}

// MaxBodySize returns the body limit in bytes.
func (p *Parser) MaxBodySize() int64 {
	return p.maxBodySize
}

// ParseJSON decodes the request body into target. A missing Content-Type is
// treated as JSON.
func (p *Parser) ParseJSON(w http.ResponseWriter, r *http.Request, target interface{}) error {
	if ct := r.Header.Get("Content-Type"); ct != "" {
		mediaType, _, err := mime.ParseMediaType(ct)
		if err != nil || mediaType != "application/json" {
			return fmt.Errorf("%w: %s", ErrUnsupportedMediaType, ct)
		}
	}
	if r.Body == nil || r.Body == http.NoBody {
		return ErrEmptyBody
	}

	r.Body = http.MaxBytesReader(w, r.Body, p.maxBodySize)
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	if p.Strict {
		decoder.DisallowUnknownFields()
	}

	if err := decoder.Decode(target); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return ErrEmptyBody
		case errors.As(err, &tooLarge):
			return fmt.Errorf("%w: limit is %d bytes", ErrBodyTooLarge, tooLarge.Limit)
		default:
			return fmt.Errorf("invalid JSON: %w", err)
		}
	}

	if decoder.More() {
		return ErrTrailingData
	}

	return nil
}

// StatusCode maps a ParseJSON error to the HTTP status to answer with.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrBodyTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrUnsupportedMediaType):
		return http.StatusUnsupportedMediaType
	default:
		return http.StatusBadRequest
	}
}
