package jsonext

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type label struct {
	Name                 string         `json:"name"`
	Color                *string        `json:"color,omitzero"`
	AdditionalProperties map[string]any `json:"-"`
}

func (l label) MarshalJSON() ([]byte, error) {
	type plain label
	return Marshal(plain(l), l.AdditionalProperties)
}

func (l *label) UnmarshalJSON(data []byte) error {
	type plain label
	return Unmarshal(data, (*plain)(l), &l.AdditionalProperties)
}

func decodeMap(t *testing.T, data []byte) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	return m
}

func TestRoundTripUnknownMembers(t *testing.T) {
	in := []byte(`{"name":"bug","priority":3,"meta":{"team":"core"}}`)

	var l label
	require.NoError(t, json.Unmarshal(in, &l))

	assert.Equal(t, "bug", l.Name)
	assert.Nil(t, l.Color)
	require.Len(t, l.AdditionalProperties, 2)
	assert.Equal(t, json.Number("3"), l.AdditionalProperties["priority"])
	assert.Equal(t, map[string]any{"team": "core"}, l.AdditionalProperties["meta"])

	out, err := json.Marshal(l)
	require.NoError(t, err)

	if diff := cmp.Diff(decodeMap(t, in), decodeMap(t, out)); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestNoExtraLeavesMapNil(t *testing.T) {
	var l label
	require.NoError(t, json.Unmarshal([]byte(`{"name":"bug","color":"f00"}`), &l))

	assert.Nil(t, l.AdditionalProperties)
	require.NotNil(t, l.Color)
	assert.Equal(t, "f00", *l.Color)
}

func TestDeclaredFieldsWin(t *testing.T) {
	l := label{
		Name: "bug",
		AdditionalProperties: map[string]any{
			"name":  "shadowed",
			"color": "ignored even when omitted",
			"extra": true,
		},
	}

	out, err := json.Marshal(l)
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"name": "bug", "extra": true}, decodeMap(t, out))
}

func TestCaseVariantMembersAreKept(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		wantName  string
		wantExtra map[string]any
	}{
		{
			name:      "both spellings",
			in:        `{"name":"a","Name":"b"}`,
			wantName:  "a",
			wantExtra: map[string]any{"Name": "b"},
		},
		{
			name:      "variant only",
			in:        `{"NAME":"b"}`,
			wantName:  "",
			wantExtra: map[string]any{"NAME": "b"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l label
			require.NoError(t, json.Unmarshal([]byte(tt.in), &l))
			assert.Equal(t, tt.wantName, l.Name)
			assert.Equal(t, tt.wantExtra, l.AdditionalProperties)

			out, err := json.Marshal(l)
			require.NoError(t, err)
			want := decodeMap(t, []byte(tt.in))
			if tt.wantName == "" {
				want["name"] = ""
			}
			if diff := cmp.Diff(want, decodeMap(t, out)); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLargeNumbersSurvive(t *testing.T) {
	in := []byte(`{"name":"x","id":9007199254740993}`)

	var l label
	require.NoError(t, json.Unmarshal(in, &l))

	out, err := json.Marshal(l)
	require.NoError(t, err)
	assert.JSONEq(t, string(in), string(out))
	assert.Contains(t, string(out), "9007199254740993")
}

func TestUnmarshalErrors(t *testing.T) {
	var l label
	assert.Error(t, json.Unmarshal([]byte(`{"name":1}`), &l))
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &l))
}
