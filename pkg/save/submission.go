package save

import "net/url"

// Submission is the key/value payload posted with a term form.
type Submission interface {
	Lookup(key string) (string, bool)
}

// Values adapts url.Values. The first value of a key wins.
type Values url.Values

func (v Values) Lookup(key string) (string, bool) {
	values, ok := v[key]
	if !ok {
		return "", false
	}
	if len(values) == 0 {
		return "", true
	}
	return values[0], true
}

// Map adapts a plain map.
type Map map[string]string

func (m Map) Lookup(key string) (string, bool) {
	value, ok := m[key]
	return value, ok
}
