package api

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/octoglue/octoglue/api/querylizer"
)

// DefaultBaseURL is used when a configuration leaves the base URL empty.
const DefaultBaseURL = "https://api.github.com"

// queryParam is implemented by Nullable.
type queryParam interface {
	queryValue() (v any, present, null bool)
}

// urlBuilder assembles an endpoint URL. The first encoding error is kept
// and every later call becomes a no-op, so builders can be written as a
// straight sequence of appends.
type urlBuilder struct {
	b        strings.Builder
	hasQuery bool
	err      error
}

func newURLBuilder(baseURL string) *urlBuilder {
	u := &urlBuilder{}
	if baseURL == "" {
		u.b.WriteString(DefaultBaseURL)
	} else {
		u.b.WriteString(strings.TrimRight(baseURL, "/"))
	}
	return u
}

// lit appends a fixed part of the path template.
func (u *urlBuilder) lit(s string) *urlBuilder {
	if u.err == nil {
		u.b.WriteString(s)
	}
	return u
}

// ErrEmptyPathParam is wrapped by the encoding error returned when a path
// parameter is nil, a nil pointer, an empty array or an empty string.
var ErrEmptyPathParam = errors.New("path parameter is empty")

// path appends a path parameter in simple style. Path parameters are
// required, so a value encoding to nothing is an error.
func (u *urlBuilder) path(v any) *urlBuilder {
	if u.err != nil {
		return u
	}
	s, err := querylizer.SimpleString(v, false, querylizer.EncodePath)
	switch {
	case err != nil:
		u.err = err
	case s == "":
		u.err = fmt.Errorf("%w: %T", ErrEmptyPathParam, v)
	default:
		u.b.WriteString(s)
	}
	return u
}

func (u *urlBuilder) sep() {
	if u.hasQuery {
		u.b.WriteByte('&')
	} else {
		u.b.WriteByte('?')
		u.hasQuery = true
	}
}

// query appends name=value when v is present. Nil pointers and absent
// Nullable values are skipped; a null Nullable is written as "name=".
func (u *urlBuilder) query(name string, v any) *urlBuilder {
	if u.err != nil || v == nil {
		return u
	}

	if p, ok := v.(queryParam); ok {
		value, present, null := p.queryValue()
		if !present {
			return u
		}
		u.sep()
		if null {
			u.err = querylizer.Form(&u.b, name, nil, false, querylizer.EncodeQuery)
			return u
		}
		u.err = querylizer.Form(&u.b, name, value, false, querylizer.EncodeQuery)
		return u
	}

	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return u
	}
	u.sep()
	u.err = querylizer.Form(&u.b, name, v, false, querylizer.EncodeQuery)
	return u
}

func (u *urlBuilder) String() (string, error) {
	if u.err != nil {
		return "", newError(KindEncoding, "", u.err)
	}
	return u.b.String(), nil
}
