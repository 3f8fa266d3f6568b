// Package catalog describes every GitHub operation octoglue knows about,
// loaded from an embedded OpenAPI document.
package catalog

import (
	"context"
	_ "embed"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/octoglue/octoglue/api"
	"github.com/octoglue/octoglue/api/querylizer"
)

//go:embed openapi.yaml
var document []byte

// ParamType is the schema type of a parameter.
type ParamType string

const (
	TypeString  ParamType = "string"
	TypeInteger ParamType = "integer"
	TypeBoolean ParamType = "boolean"
	TypeUnknown ParamType = "unknown"
)

type Param struct {
	Name        string    `json:"name"`
	Required    bool      `json:"required"`
	Type        ParamType `json:"type"`
	Description string    `json:"description,omitempty"`
}

// Operation is one catalog entry. QueryParams keep the order in which
// they are written to the URL.
type Operation struct {
	ID           string  `json:"id"`
	Method       string  `json:"method"`
	Path         string  `json:"path"`
	Summary      string  `json:"summary,omitempty"`
	PathParams   []Param `json:"path_params,omitempty"`
	QueryParams  []Param `json:"query_params,omitempty"`
	HasBody      bool    `json:"has_body"`
	BodyRequired bool    `json:"body_required,omitempty"`
}

type Catalog struct {
	ops  []Operation
	byID map[string]int
}

var load = sync.OnceValues(func() (*Catalog, error) {
	return Parse(context.Background(), document)
})

// Load returns the embedded catalog.
func Load() (*Catalog, error) {
	return load()
}

// Parse builds a catalog from an OpenAPI 3 document.
func Parse(ctx context.Context, data []byte) (*Catalog, error) {
	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validate catalog: %w", err)
	}

	c := &Catalog{byID: map[string]int{}}
	for path, item := range doc.Paths.Map() {
		if item == nil {
			continue
		}
		for method, op := range item.Operations() {
			entry := extract(path, strings.ToUpper(method), item.Parameters, op)
			if entry.ID == "" {
				return nil, fmt.Errorf("%s %s has no operationId", entry.Method, path)
			}
			c.ops = append(c.ops, entry)
		}
	}

	sort.Slice(c.ops, func(i, j int) bool { return c.ops[i].ID < c.ops[j].ID })
	for i, op := range c.ops {
		if _, dup := c.byID[op.ID]; dup {
			return nil, fmt.Errorf("duplicate operationId %q", op.ID)
		}
		c.byID[op.ID] = i
	}
	return c, nil
}

func extract(path, method string, common openapi3.Parameters, op *openapi3.Operation) Operation {
	entry := Operation{
		ID:      strings.TrimSpace(op.OperationID),
		Method:  method,
		Path:    path,
		Summary: strings.TrimSpace(op.Summary),
	}

	params := append(openapi3.Parameters{}, common...)
	params = append(params, op.Parameters...)
	for _, p := range params {
		if p == nil || p.Value == nil {
			continue
		}
		param := Param{
			Name:        p.Value.Name,
			Required:    p.Value.Required,
			Type:        schemaType(p.Value.Schema),
			Description: strings.TrimSpace(p.Value.Description),
		}
		switch p.Value.In {
		case openapi3.ParameterInPath:
			entry.PathParams = append(entry.PathParams, param)
		case openapi3.ParameterInQuery:
			entry.QueryParams = append(entry.QueryParams, param)
		}
	}
	sort.SliceStable(entry.PathParams, func(i, j int) bool {
		return strings.Index(path, "{"+entry.PathParams[i].Name+"}") < strings.Index(path, "{"+entry.PathParams[j].Name+"}")
	})

	if rb := op.RequestBody; rb != nil && rb.Value != nil {
		entry.HasBody = true
		entry.BodyRequired = rb.Value.Required
	}
	return entry
}

func schemaType(ref *openapi3.SchemaRef) ParamType {
	if ref == nil || ref.Value == nil || ref.Value.Type == nil {
		return TypeUnknown
	}
	switch {
	case ref.Value.Type.Is("string"):
		return TypeString
	case ref.Value.Type.Is("integer"):
		return TypeInteger
	case ref.Value.Type.Is("boolean"):
		return TypeBoolean
	}
	return TypeUnknown
}

// Operations returns every operation sorted by id.
func (c *Catalog) Operations() []Operation {
	return append([]Operation(nil), c.ops...)
}

// IDs returns every operation id, sorted.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.ops))
	for i, op := range c.ops {
		ids[i] = op.ID
	}
	return ids
}

func (c *Catalog) Lookup(id string) (Operation, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Operation{}, false
	}
	return c.ops[i], true
}

// URL expands the path template and appends the query parameters present
// in values, in declared order. Path parameters are percent-encoded as a
// single segment, so "docs/README.md" becomes "docs%2FREADME.md".
func (op Operation) URL(baseURL string, values map[string]string) (string, error) {
	known := make(map[string]bool, len(op.PathParams)+len(op.QueryParams))
	for _, p := range op.PathParams {
		known[p.Name] = true
	}
	for _, p := range op.QueryParams {
		known[p.Name] = true
	}
	var unknown []string
	for name := range values {
		if !known[name] {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return "", fmt.Errorf("%s: unknown parameter(s) %s", op.ID, strings.Join(unknown, ", "))
	}

	var b strings.Builder
	if baseURL == "" {
		baseURL = api.DefaultBaseURL
	}
	b.WriteString(strings.TrimRight(baseURL, "/"))

	rest := op.Path
	for {
		start := strings.IndexByte(rest, '{')
		if start < 0 {
			b.WriteString(rest)
			break
		}
		end := strings.IndexByte(rest[start:], '}')
		if end < 0 {
			return "", fmt.Errorf("%s: malformed path template %q", op.ID, op.Path)
		}
		end += start
		b.WriteString(rest[:start])
		name := rest[start+1 : end]
		v, ok := values[name]
		if !ok || v == "" {
			return "", fmt.Errorf("%s: missing path parameter %q", op.ID, name)
		}
		if err := querylizer.Simple(&b, v, false, querylizer.EncodePath); err != nil {
			return "", fmt.Errorf("%s: %w", op.ID, err)
		}
		rest = rest[end+1:]
	}

	sep := byte('?')
	for _, p := range op.QueryParams {
		v, ok := values[p.Name]
		if !ok {
			if p.Required {
				return "", fmt.Errorf("%s: missing query parameter %q", op.ID, p.Name)
			}
			continue
		}
		b.WriteByte(sep)
		sep = '&'
		if err := querylizer.Form(&b, p.Name, v, false, querylizer.EncodeQuery); err != nil {
			return "", fmt.Errorf("%s: %w", op.ID, err)
		}
	}
	return b.String(), nil
}

// Request builds a request descriptor for op.
func (op Operation) Request(cfg *api.Configuration, values map[string]string, body *api.Content) (*api.Request, error) {
	if body != nil && !op.HasBody {
		return nil, fmt.Errorf("%s does not take a request body", op.ID)
	}
	if body == nil && op.BodyRequired {
		return nil, fmt.Errorf("%s requires a request body", op.ID)
	}
	url, err := op.URL(cfg.BaseURL, values)
	if err != nil {
		return nil, err
	}
	return api.NewRequest(op.ID, op.Method, url, cfg.UserAgent, cfg.Accept, body)
}

// IsRead reports whether the operation only reads data.
func (op Operation) IsRead() bool {
	return op.Method == http.MethodGet || op.Method == http.MethodHead
}
