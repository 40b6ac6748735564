package statuspage

import "encoding/json"

// Resource is a decoded JSON object with explicit key lookup. It is the
// generic shape envelope unwrapping produces; callers that want
// concrete types go through Decode.
type Resource map[string]any

// Get returns the raw value for key and whether the key exists.
func (r Resource) Get(key string) (any, bool) {
	value, ok := r[key]
	return value, ok
}

// String returns the value for key as a string, or "" when the key is
// absent or not a string.
func (r Resource) String(key string) string {
	value, _ := r[key].(string)
	return value
}

// Int returns the value for key as an int64. JSON numbers decode as
// float64 and are truncated.
func (r Resource) Int(key string) int64 {
	value, _ := r[key].(float64)
	return int64(value)
}

// Float returns the value for key as a float64, or 0.
func (r Resource) Float(key string) float64 {
	value, _ := r[key].(float64)
	return value
}

// Bool returns the value for key as a bool, or false.
func (r Resource) Bool(key string) bool {
	value, _ := r[key].(bool)
	return value
}

// Decode re-encodes the resource into v, which should be a pointer to
// a struct with json tags.
func (r Resource) Decode(v any) error {
	data, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// decodeOne decodes the single unwrapped resource of a response.
func decodeOne[T any](resp *Response) (*T, error) {
	var v T
	if err := resp.Resource.Decode(&v); err != nil {
		return nil, err
	}
	return &v, nil
}

// decodeList decodes every unwrapped resource of a collection response.
func decodeList[T any](resp *Response) ([]T, error) {
	out := make([]T, 0, len(resp.Resources))
	for _, r := range resp.Resources {
		var v T
		if err := r.Decode(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
