package outfmt

import (
	"context"
	"io"

	"github.com/octoglue/octoglue/internal/filter"
)

type queryKey struct{}

// WithQuery adds a jq expression to the context
func WithQuery(ctx context.Context, query string) context.Context {
	return context.WithValue(ctx, queryKey{}, query)
}

// GetQuery retrieves the jq expression from context
func GetQuery(ctx context.Context) string {
	if q, ok := ctx.Value(queryKey{}).(string); ok {
		return q
	}
	return ""
}

// Write renders v in the mode stored in ctx after applying the context's
// jq expression. In text mode Write does nothing and returns false, so
// callers print their own text.
func Write(ctx context.Context, w io.Writer, v any) (bool, error) {
	mode := ModeFromContext(ctx)
	if mode == Text {
		return false, nil
	}

	data, err := filter.ToJSONValue(v)
	if err != nil {
		return true, err
	}
	if query := GetQuery(ctx); query != "" {
		if data, err = filter.Apply(data, query); err != nil {
			return true, err
		}
	}

	if mode == JSONL {
		return true, WriteJSONL(w, data)
	}
	return true, WriteJSON(w, data)
}
