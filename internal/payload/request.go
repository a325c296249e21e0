// Package payload holds the request wrapper handed to every handler, the
// per-operation request bodies and the response envelope handlers return.
package payload

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

var ErrEmptyBody = errors.New("empty request body")

// nolint
var validate = validator.New()

// Request is what a handler gets: the raw path it was routed on and the
// buffered body, if any.
type Request struct {
	Path string
	Body []byte
}

// Binder is implemented by request bodies. Bind runs after the JSON has
// been decoded and rejects payloads missing required fields.
type Binder interface {
	Bind() error
}

// Segments returns the non-empty segments of the path.
func (r Request) Segments() []string {
	return strings.FieldsFunc(r.Path, func(c rune) bool { return c == '/' })
}

// Segment returns the i-th path segment or "" when there is none.
func (r Request) Segment(i int) string {
	segments := r.Segments()
	if i < 0 || i >= len(segments) {
		return ""
	}

	return segments[i]
}

// ID parses the numeric identifier in the second path segment. A missing,
// non-numeric or zero identifier is not well formed.
func (r Request) ID() (int64, bool) {
	id, err := strconv.ParseInt(r.Segment(1), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}

	return id, true
}

// Decode unmarshals the JSON body into v and binds it.
func (r Request) Decode(v Binder) error {
	if len(bytes.TrimSpace(r.Body)) == 0 {
		return ErrEmptyBody
	}

	if err := render.DecodeJSON(bytes.NewReader(r.Body), v); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}

	if err := v.Bind(); err != nil {
		return fmt.Errorf("bind body: %w", err)
	}

	return nil
}
