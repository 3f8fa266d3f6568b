package api

import (
	"bytes"
	"encoding/json"
)

type nullState uint8

const (
	stateAbsent nullState = iota
	stateNull
	statePresent
)

// Nullable is a tri-state value distinguishing an absent field, an
// explicit null and a concrete value. The zero value is absent, and
// IsZero lets `json:",omitzero"` drop it from the encoded object.
type Nullable[T any] struct {
	value T
	state nullState
}

// Null returns an explicit null.
func Null[T any]() Nullable[T] {
	return Nullable[T]{state: stateNull}
}

// NullableOf returns a present value.
func NullableOf[T any](v T) Nullable[T] {
	return Nullable[T]{value: v, state: statePresent}
}

// IsZero reports whether the value is absent.
func (n Nullable[T]) IsZero() bool { return n.state == stateAbsent }

// IsNull reports whether the value is an explicit null.
func (n Nullable[T]) IsNull() bool { return n.state == stateNull }

// Get returns the value and whether it is present.
func (n Nullable[T]) Get() (T, bool) {
	return n.value, n.state == statePresent
}

// queryValue implements queryParam so tri-state values can be used as
// query parameters.
func (n Nullable[T]) queryValue() (v any, present, null bool) {
	switch n.state {
	case stateNull:
		return nil, true, true
	case statePresent:
		return n.value, true, false
	}
	return nil, false, false
}

func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if n.state != statePresent {
		return []byte("null"), nil
	}
	return json.Marshal(n.value)
}

// UnmarshalJSON treats any present member as set: null becomes an
// explicit null and everything else a value. Members missing from the
// object never reach this method and stay absent.
func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		n.value = zero
		n.state = stateNull
		return nil
	}
	if err := json.Unmarshal(data, &n.value); err != nil {
		return err
	}
	n.state = statePresent
	return nil
}

// String returns a pointer to v.
func String(v string) *string { return &v }

// Int64 returns a pointer to v.
func Int64(v int64) *int64 { return &v }

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }
