package gateway

import "encoding/json"

// Result is the canonical shape of a remote call response. The server
// answers either with a flat object or with the object wrapped under a
// "message" field; parseResult unwraps the latter so callers never see
// the difference.
type Result struct {
	data map[string]any
}

func parseResult(payload []byte) (Result, error) {
	var body map[string]any
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &body); err != nil {
			return Result{}, err
		}
	}
	if body == nil {
		body = map[string]any{}
	}

	// Unwrap only when the wrapped value is itself an object; a scalar
	// "message" (e.g. the login response's "Logged In") stays flat.
	if inner, ok := body["message"].(map[string]any); ok {
		return Result{data: inner}, nil
	}
	return Result{data: body}, nil
}

// OK reports whether the result carries a truthy ok flag. Callers with
// a domain-specific success field fall back to Has on that field.
func (r Result) OK() bool {
	switch v := r.data["ok"].(type) {
	case bool:
		return v
	case float64:
		return v != 0
	default:
		return false
	}
}

// Has reports whether field is present with a non-nil value.
func (r Result) Has(field string) bool {
	v, ok := r.data[field]
	return ok && v != nil
}

// Str returns the string value of field, or "" when absent or not a string.
func (r Result) Str(field string) string {
	s, _ := r.data[field].(string)
	return s
}

// Float returns the numeric value of field and whether it was present.
func (r Result) Float(field string) (float64, bool) {
	f, ok := r.data[field].(float64)
	return f, ok
}

// Raw returns the underlying result object. Used where a caller needs
// to decode a nested structure (e.g. a list of addresses).
func (r Result) Raw() map[string]any {
	return r.data
}

// Decode re-marshals the value under field into out. Convenient for
// pulling typed lists out of a result.
func (r Result) Decode(field string, out any) error {
	raw, err := json.Marshal(r.data[field])
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

// Into re-marshals the whole result object into out.
func (r Result) Into(out any) error {
	raw, err := json.Marshal(r.data)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}
