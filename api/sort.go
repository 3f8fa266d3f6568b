package api

// Sort selects the sort and direction query parameters of list
// operations. The zero value leaves both to the server default.
type Sort struct {
	field     string
	direction string
}

// SortDefault leaves ordering to the server.
func SortDefault() Sort { return Sort{} }

// Ascending sorts by field, smallest first.
func Ascending(field string) Sort { return Sort{field: field, direction: "asc"} }

// Descending sorts by field, largest first.
func Descending(field string) Sort { return Sort{field: field, direction: "desc"} }

// Extract returns the sort and direction parameter values, both nil for
// SortDefault.
func (s Sort) Extract() (sort, direction *string) {
	if s.field == "" {
		return nil, nil
	}
	f, d := s.field, s.direction
	return &f, &d
}

// IssueFilter groups the filtering parameters shared by the issue list
// operations.
type IssueFilter struct {
	// Filter is "assigned", "created", "mentioned", "subscribed", "repos"
	// or "all".
	Filter *string
	// State is "open", "closed" or "all".
	State *string
	// Labels is a comma separated list of label names.
	Labels *string
	// Since is an ISO 8601 timestamp.
	Since *string
}
