// Package querylizer serializes parameter values into URL path segments,
// query strings and header values following the OpenAPI "simple" and "form"
// parameter styles.
//
// Values are appended to a strings.Builder in place. Supported values are
// strings, integers, booleans, floats, json.Number, fmt.Stringer, pointers
// to any of those (a nil pointer contributes nothing) and slices or arrays
// of them.
package querylizer

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// EncodeFunc encodes a single formatted value before it is written.
type EncodeFunc func(string) string

const upperhex = "0123456789ABCDEF"

func unreserved(c byte) bool {
	switch {
	case 'A' <= c && c <= 'Z', 'a' <= c && c <= 'z', '0' <= c && c <= '9':
		return true
	case c == '-', c == '.', c == '_', c == '~':
		return true
	}
	return false
}

func percentEncode(s string) string {
	n := 0
	for i := 0; i < len(s); i++ {
		if !unreserved(s[i]) {
			n++
		}
	}
	if n == 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 2*n)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String()
}

// EncodePath percent-encodes a path segment. Only RFC 3986 unreserved
// characters are left as is, so "/" becomes "%2F".
func EncodePath(s string) string { return percentEncode(s) }

// EncodeQuery percent-encodes a query component. "&", "=" and "+" are
// escaped so the result always parses back into the original pair.
func EncodeQuery(s string) string { return percentEncode(s) }

// Passthrough writes values unchanged. It is used for header values.
func Passthrough(s string) string { return s }

// EncodeError is returned when a value has no wire representation.
type EncodeError struct {
	Value any
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("querylizer: cannot format value of type %T", e.Value)
}

// Simple writes v in simple style: only the encoded value, with array
// elements joined by commas. The explode flag has no effect on arrays in
// this style but is accepted for symmetry with Form.
func Simple(dst *strings.Builder, v any, explode bool, enc EncodeFunc) error {
	items, ok, err := values(v)
	if err != nil || !ok {
		return err
	}
	for i, item := range items {
		if i > 0 {
			dst.WriteByte(',')
		}
		dst.WriteString(enc(item))
	}
	return nil
}

// SimpleString is Simple writing into a fresh string.
func SimpleString(v any, explode bool, enc EncodeFunc) (string, error) {
	var b strings.Builder
	if err := Simple(&b, v, explode, enc); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Form writes v in form style as name=value. Arrays are written as
// name=a,b or, when explode is set, as name=a&name=b. A nil v writes
// "name=" which is how an explicit null is sent in a query string.
func Form(dst *strings.Builder, name string, v any, explode bool, enc EncodeFunc) error {
	key := enc(name)
	if v == nil {
		dst.WriteString(key)
		dst.WriteByte('=')
		return nil
	}

	items, ok, err := values(v)
	if err != nil {
		return err
	}
	if !ok {
		// Nil pointer: same as an explicit null.
		dst.WriteString(key)
		dst.WriteByte('=')
		return nil
	}

	dst.WriteString(key)
	dst.WriteByte('=')
	for i, item := range items {
		if i > 0 {
			if explode {
				dst.WriteByte('&')
				dst.WriteString(key)
				dst.WriteByte('=')
			} else {
				dst.WriteByte(',')
			}
		}
		dst.WriteString(enc(item))
	}
	return nil
}

// values flattens v into its formatted items. ok is false for nil pointers.
func values(v any) ([]string, bool, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return nil, false, nil
	}
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil, false, nil
	}
	if s, ok := scalar(v); ok {
		return []string{s}, true, nil
	}

	switch rv.Kind() {
	case reflect.Pointer:
		return values(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return nil, true, nil
		}
		out := make([]string, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			elem := rv.Index(i).Interface()
			s, ok := scalar(elem)
			if !ok {
				ev := reflect.ValueOf(elem)
				if ev.Kind() == reflect.Pointer && !ev.IsNil() {
					s, ok = scalar(ev.Elem().Interface())
				}
			}
			if !ok {
				return nil, false, &EncodeError{Value: elem}
			}
			out = append(out, s)
		}
		return out, true, nil
	}
	return nil, false, &EncodeError{Value: v}
}

func scalar(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case bool:
		return strconv.FormatBool(x), true
	case int:
		return strconv.Itoa(x), true
	case int8:
		return strconv.FormatInt(int64(x), 10), true
	case int16:
		return strconv.FormatInt(int64(x), 10), true
	case int32:
		return strconv.FormatInt(int64(x), 10), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case uint:
		return strconv.FormatUint(uint64(x), 10), true
	case uint8:
		return strconv.FormatUint(uint64(x), 10), true
	case uint16:
		return strconv.FormatUint(uint64(x), 10), true
	case uint32:
		return strconv.FormatUint(uint64(x), 10), true
	case uint64:
		return strconv.FormatUint(x, 10), true
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case json.Number:
		return x.String(), true
	case time.Time:
		return x.UTC().Format(time.RFC3339), true
	case fmt.Stringer:
		return x.String(), true
	}

	// Named types such as `type State string`.
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return rv.String(), true
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), true
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64), true
	}
	return "", false
}
