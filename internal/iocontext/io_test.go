package iocontext

import (
	"context"
	"errors"
	"io"
	"testing"
)

func TestDefaultIO(t *testing.T) {
	streams := DefaultIO()
	if streams.Out == nil || streams.ErrOut == nil || streams.In == nil {
		t.Error("DefaultIO should return non-nil streams")
	}
}

func TestWithIO(t *testing.T) {
	streams, out, _ := Buffers("input")
	ctx := WithIO(context.Background(), streams)

	got := GetIO(ctx)
	if got != streams {
		t.Fatal("GetIO should return the IO set with WithIO")
	}
	_, _ = io.WriteString(got.Out, "hello")
	if out.String() != "hello" {
		t.Errorf("out = %q", out.String())
	}
	data, _ := io.ReadAll(got.In)
	if string(data) != "input" {
		t.Errorf("in = %q", data)
	}
}

func TestGetIO_DefaultsWhenNotSet(t *testing.T) {
	if GetIO(context.Background()) == nil {
		t.Error("GetIO should return default IO when not set")
	}
}

func TestReadInput(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		limit   int64
		want    string
		wantErr bool
	}{
		{name: "under limit", input: "abc", limit: 4, want: "abc"},
		{name: "at limit", input: "abcd", limit: 4, want: "abcd"},
		{name: "over limit", input: "abcde", limit: 4, wantErr: true},
		{name: "no limit", input: "abcde", limit: 0, want: "abcde"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			streams, _, _ := Buffers(tt.input)
			got, err := ReadInput(WithIO(context.Background(), streams), tt.limit)
			if tt.wantErr {
				if !errors.Is(err, ErrInputTooLarge) {
					t.Fatalf("err = %v, want ErrInputTooLarge", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
