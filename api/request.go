package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/net/http/httpguts"

	"github.com/octoglue/octoglue/api/querylizer"
)

const (
	// DefaultAccept is the media type sent when a configuration does not
	// choose another one.
	DefaultAccept = "application/vnd.github.v3+json"

	contentTypeJSON = "application/json"
)

// Request describes an HTTP request without binding it to a client.
// Backends translate it into their native request type at send time.
type Request struct {
	// Operation is the upstream operation id, e.g. "issues/create".
	Operation string
	Method    string
	URL       string
	Header    http.Header
	Body      []byte
}

// Content is a request body together with its media type.
type Content struct {
	Body        []byte
	ContentType string
}

// JSONContent serializes v as an application/json body.
func JSONContent(v any) (*Content, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, newError(KindJSON, "", err)
	}
	return &Content{Body: data, ContentType: contentTypeJSON}, nil
}

// RawContent wraps an already encoded body.
func RawContent(body []byte, contentType string) *Content {
	return &Content{Body: body, ContentType: contentType}
}

// WithContentType returns a copy of c with a different media type.
func (c *Content) WithContentType(contentType string) *Content {
	out := *c
	out.ContentType = contentType
	return &out
}

// headerValue encodes v the way header parameters are encoded and checks
// that the result is a legal field value.
func headerValue(name string, v any) (string, error) {
	s, err := querylizer.SimpleString(v, false, querylizer.Passthrough)
	if err != nil {
		return "", newError(KindEncoding, "", err)
	}
	if !httpguts.ValidHeaderFieldValue(s) {
		return "", &Error{
			Kind:    KindInvalidHeader,
			Message: fmt.Sprintf("header %s contains invalid bytes: %q", name, s),
		}
	}
	return s, nil
}

// NewRequest builds a request descriptor. userAgent is always sent;
// accept is sent when non-empty; content may be nil.
func NewRequest(operation, method, url, userAgent, accept string, content *Content) (*Request, error) {
	req := &Request{
		Operation: operation,
		Method:    method,
		URL:       url,
		Header:    make(http.Header),
	}

	ua, err := headerValue("User-Agent", userAgent)
	if err != nil {
		return nil, WithOp(err, operation)
	}
	req.Header.Set("User-Agent", ua)

	if accept != "" {
		v, err := headerValue("Accept", accept)
		if err != nil {
			return nil, WithOp(err, operation)
		}
		req.Header.Set("Accept", v)
	}

	if content != nil {
		req.Body = content.Body
		if content.ContentType != "" {
			v, err := headerValue("Content-Type", content.ContentType)
			if err != nil {
				return nil, WithOp(err, operation)
			}
			req.Header.Set("Content-Type", v)
		}
	}
	return req, nil
}

// SetHeader validates and sets a header on the descriptor.
func (r *Request) SetHeader(name, value string) error {
	v, err := r.checkHeader(name, value)
	if err != nil {
		return err
	}
	r.Header.Set(name, v)
	return nil
}

// AddHeader validates and appends a header value.
func (r *Request) AddHeader(name, value string) error {
	v, err := r.checkHeader(name, value)
	if err != nil {
		return err
	}
	r.Header.Add(name, v)
	return nil
}

func (r *Request) checkHeader(name, value string) (string, error) {
	if !httpguts.ValidHeaderFieldName(name) {
		return "", &Error{Kind: KindInvalidHeader, Op: r.Operation, Message: fmt.Sprintf("invalid header name %q", name)}
	}
	v, err := headerValue(name, value)
	if err != nil {
		return "", WithOp(err, r.Operation)
	}
	return v, nil
}

// Clone returns a deep copy of r.
func (r *Request) Clone() *Request {
	out := *r
	out.Header = r.Header.Clone()
	if r.Body != nil {
		out.Body = append([]byte(nil), r.Body...)
	}
	return &out
}

// finishURL tags URL builder failures with the operation id.
func finishURL(operation string, u *urlBuilder) (string, error) {
	url, err := u.String()
	if err != nil {
		return "", WithOp(err, operation)
	}
	return url, nil
}
