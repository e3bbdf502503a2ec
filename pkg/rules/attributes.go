package rules

// Attributes is an insertion-ordered mapping of HTML attribute names to
// values. Ordering keeps serialised markup byte-stable between renders. The
// zero value is ready to use.
type Attributes struct {
	keys   []string
	values map[string]any
}

// NewAttributes builds an Attributes value from alternating key/value pairs.
// It panics on an odd argument count or a non-string key, which keeps test
// fixtures short.
func NewAttributes(pairs ...any) Attributes {
	if len(pairs)%2 != 0 {
		panic("rules: NewAttributes requires key/value pairs")
	}
	var attrs Attributes
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			panic("rules: NewAttributes keys must be strings")
		}
		attrs.Set(key, pairs[i+1])
	}
	return attrs
}

// Set assigns value to key. Existing keys keep their position.
func (a *Attributes) Set(key string, value any) {
	if a.values == nil {
		a.values = make(map[string]any)
	}
	if _, exists := a.values[key]; !exists {
		a.keys = append(a.keys, key)
	}
	a.values[key] = value
}

// Get returns the value stored under key.
func (a Attributes) Get(key string) (any, bool) {
	value, ok := a.values[key]
	return value, ok
}

// Has reports whether key is present, even with a nil value.
func (a Attributes) Has(key string) bool {
	_, ok := a.values[key]
	return ok
}

// Delete removes key while preserving the order of the remaining keys.
func (a *Attributes) Delete(key string) {
	if _, ok := a.values[key]; !ok {
		return
	}
	delete(a.values, key)
	for i, existing := range a.keys {
		if existing == key {
			a.keys = append(a.keys[:i:i], a.keys[i+1:]...)
			break
		}
	}
}

// Keys returns a copy of the keys in insertion order.
func (a Attributes) Keys() []string {
	if len(a.keys) == 0 {
		return nil
	}
	out := make([]string, len(a.keys))
	copy(out, a.keys)
	return out
}

// Len returns the number of entries.
func (a Attributes) Len() int {
	return len(a.keys)
}

// Clone returns an independent copy.
func (a Attributes) Clone() Attributes {
	var out Attributes
	for _, key := range a.keys {
		out.Set(key, a.values[key])
	}
	return out
}

// Map returns the entries as a plain map, for JSON/YAML output.
func (a Attributes) Map() map[string]any {
	out := make(map[string]any, len(a.keys))
	for _, key := range a.keys {
		out[key] = a.values[key]
	}
	return out
}

// Each calls fn for every entry in insertion order.
func (a Attributes) Each(fn func(key string, value any)) {
	for _, key := range a.keys {
		fn(key, a.values[key])
	}
}
