package api

import (
	"errors"
	"fmt"
)

// ErrorKind classifies an Error by the step that failed.
type ErrorKind int

const (
	// KindOther is a message-only error.
	KindOther ErrorKind = iota
	// KindTransport is a failure reported by the HTTP backend.
	KindTransport
	// KindURLParse means a backend could not parse the composed URL.
	KindURLParse
	// KindCredential means the configured authentication could not be applied.
	KindCredential
	// KindEncoding means a path, query or header parameter could not be encoded.
	KindEncoding
	// KindInvalidHeader means a header value contains disallowed bytes.
	KindInvalidHeader
	// KindJSON means a request body could not be serialized.
	KindJSON
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindURLParse:
		return "url parse"
	case KindCredential:
		return "credential"
	case KindEncoding:
		return "parameter encoding"
	case KindInvalidHeader:
		return "invalid header value"
	case KindJSON:
		return "json serialization"
	default:
		return "other"
	}
}

// Error is returned by every fallible step of building and sending a request.
type Error struct {
	Kind ErrorKind
	// Op is the operation or step that failed, e.g. "issues/create".
	Op      string
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s error: %s", e.Op, e.Kind, msg)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind ErrorKind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Errorf returns a KindOther error with a formatted message.
func Errorf(format string, args ...any) error {
	return &Error{Kind: KindOther, Message: fmt.Sprintf(format, args...)}
}

// WithOp returns a copy of err tagged with op. Errors that are not *Error
// are returned unchanged.
func WithOp(err error, op string) error {
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Op != "" {
		return err
	}
	tagged := *apiErr
	tagged.Op = op
	return &tagged
}

func isKind(err error, kind ErrorKind) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}

// IsTransportError reports whether err is a backend send failure.
func IsTransportError(err error) bool { return isKind(err, KindTransport) }

// IsURLParseError reports whether err is a URL parse failure.
func IsURLParseError(err error) bool { return isKind(err, KindURLParse) }

// IsCredentialError reports whether err came from applying authentication.
func IsCredentialError(err error) bool { return isKind(err, KindCredential) }

// IsEncodingError reports whether err came from parameter encoding.
func IsEncodingError(err error) bool { return isKind(err, KindEncoding) }

// IsInvalidHeaderError reports whether err is an invalid header value.
func IsInvalidHeaderError(err error) bool { return isKind(err, KindInvalidHeader) }

// IsJSONError reports whether err came from body serialization.
func IsJSONError(err error) bool { return isKind(err, KindJSON) }
