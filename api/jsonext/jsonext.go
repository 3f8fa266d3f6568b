// Package jsonext encodes structs that carry an extension map of JSON
// members not declared as struct fields.
//
// A type opts in by defining MarshalJSON and UnmarshalJSON on top of a
// method-less alias of itself:
//
//	func (b Body) MarshalJSON() ([]byte, error) {
//		type plain Body
//		return jsonext.Marshal(plain(b), b.AdditionalProperties)
//	}
//
//	func (b *Body) UnmarshalJSON(data []byte) error {
//		type plain Body
//		return jsonext.Unmarshal(data, (*plain)(b), &b.AdditionalProperties)
//	}
//
// Declared fields always win over extension entries with the same name.
package jsonext

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
	"sync"
)

var knownCache sync.Map // reflect.Type -> map[string]struct{}

// knownFields returns the JSON member names declared by t, exactly as
// spelled in the tags.
func knownFields(t reflect.Type) map[string]struct{} {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if cached, ok := knownCache.Load(t); ok {
		return cached.(map[string]struct{})
	}

	known := make(map[string]struct{})
	if t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			tag := f.Tag.Get("json")
			if tag == "-" {
				continue
			}
			name, _, _ := strings.Cut(tag, ",")
			if name == "" {
				name = f.Name
			}
			known[name] = struct{}{}
		}
	}

	knownCache.Store(t, known)
	return known
}

// foldsToKnown reports whether k differs from a declared name only by case.
// encoding/json would bind such a member to the declared field.
func foldsToKnown(known map[string]struct{}, k string) bool {
	for name := range known {
		if strings.EqualFold(name, k) {
			return true
		}
	}
	return false
}

// Marshal encodes plain and merges the entries of extra whose keys are
// not declared fields of plain.
func Marshal(plain any, extra map[string]any) ([]byte, error) {
	data, err := json.Marshal(plain)
	if err != nil {
		return nil, err
	}
	if len(extra) == 0 {
		return data, nil
	}

	members := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &members); err != nil {
		return nil, err
	}

	known := knownFields(reflect.TypeOf(plain))
	for k, v := range extra {
		if _, ok := known[k]; ok {
			continue
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		members[k] = raw
	}
	return json.Marshal(members)
}

// Unmarshal decodes data into plain and collects every member that plain
// does not declare into *extra. Member names match declared fields
// exactly, so "Title" next to a declared "title" lands in extra instead
// of overwriting the field. Numbers in extra are json.Number so large ids
// survive a round trip. *extra is left nil when there is nothing to
// collect.
func Unmarshal(data []byte, plain any, extra *map[string]any) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return json.Unmarshal(data, plain)
	}

	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		return err
	}

	known := knownFields(reflect.TypeOf(plain))
	var collected map[string]any
	folded := false
	for k, raw := range members {
		if _, ok := known[k]; ok {
			continue
		}
		if foldsToKnown(known, k) {
			folded = true
		}
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		var v any
		if err := dec.Decode(&v); err != nil {
			return err
		}
		if collected == nil {
			collected = make(map[string]any)
		}
		collected[k] = v
	}

	if folded {
		declared := make(map[string]json.RawMessage, len(members))
		for k, raw := range members {
			if _, ok := known[k]; ok {
				declared[k] = raw
			}
		}
		filtered, err := json.Marshal(declared)
		if err != nil {
			return err
		}
		data = filtered
	}
	if err := json.Unmarshal(data, plain); err != nil {
		return err
	}
	*extra = collected
	return nil
}
