package api

import (
	"errors"
	"fmt"

	"study/internal/textutil"
	"study/internal/transport"
)

// ErrTokenMissing is returned by Login when the backend accepted the
// credentials but issued no token.
var ErrTokenMissing = errors.New("token missing")

// InputError reports a request rejected before it was sent.
type InputError struct {
	Message string
}

func (e *InputError) Error() string { return e.Message }

// ShapeError reports a success body that matched none of the shapes an
// endpoint is known to return.
type ShapeError struct {
	Endpoint string
	Kind     transport.BodyKind
	Snippet  string
}

func (e *ShapeError) Error() string {
	if e.Snippet == "" {
		return fmt.Sprintf("unexpected %s response from %s", e.Kind, e.Endpoint)
	}
	return fmt.Sprintf("unexpected %s response from %s: %s", e.Kind, e.Endpoint, e.Snippet)
}

const snippetSize = 120

func shapeError(endpoint string, body transport.ParsedBody) *ShapeError {
	return &ShapeError{
		Endpoint: endpoint,
		Kind:     body.Kind,
		Snippet:  textutil.Preview(textutil.OneLine(body.String()), snippetSize),
	}
}

func emptyBodyError(endpoint string) *transport.ErrorInfo {
	return &transport.ErrorInfo{
		Kind:    transport.KindMalformedBody,
		Message: fmt.Sprintf("Unreadable response from %s", endpoint),
	}
}
