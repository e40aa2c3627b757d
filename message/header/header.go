package header

import (
	"io"
	"sort"
	"strings"
)

// Header holds the fields of a top-level message. The same name may hold
// several values, each written as its own line in the order added.
//
// Names are matched without regard to case. The spelling used the first time
// a name is added is the one written.
type Header struct {
	fields map[string][]Value
}

// find returns the stored spelling of name.
func (h *Header) find(name string) (string, bool) {
	if _, ok := h.fields[name]; ok {
		return name, true
	}
	for k := range h.fields {
		if strings.EqualFold(k, name) {
			return k, true
		}
	}
	return name, false
}

// Add appends a value to the named field.
func (h *Header) Add(name string, v Value) {
	if h.fields == nil {
		h.fields = make(map[string][]Value)
	}
	key, _ := h.find(name)
	h.fields[key] = append(h.fields[key], v)
}

// Set replaces all values of the named field.
func (h *Header) Set(name string, vs ...Value) {
	h.Delete(name)
	if len(vs) == 0 {
		return
	}
	if h.fields == nil {
		h.fields = make(map[string][]Value)
	}
	h.fields[name] = vs
}

// Get returns the values of the named field.
func (h *Header) Get(name string) []Value {
	key, _ := h.find(name)
	return h.fields[key]
}

// Has returns true when the named field has been set.
func (h *Header) Has(name string) bool {
	_, ok := h.find(name)
	return ok
}

// Delete removes the named field.
func (h *Header) Delete(name string) {
	if key, ok := h.find(name); ok {
		delete(h.fields, key)
	}
}

// Names returns the field names in byte-wise order.
func (h *Header) Names() []string {
	return sortedKeys(h.fields)
}

// Len returns the number of distinct field names.
func (h *Header) Len() int {
	return len(h.fields)
}

// WriteTo writes every field in name order.
func (h *Header) WriteTo(w io.Writer) (int64, error) {
	cw := &counter{w: w}
	for _, name := range h.Names() {
		for _, v := range h.fields[name] {
			if err := WriteField(cw, name, v); err != nil {
				return cw.n, err
			}
		}
	}
	return cw.n, nil
}

// Fields holds the fields of a MIME part, one value per name.
type Fields map[string]Value

// Set replaces the named field, matching the existing name without regard to
// case.
func (f Fields) Set(name string, v Value) {
	f.Delete(name)
	f[name] = v
}

// Get returns the named field or nil.
func (f Fields) Get(name string) Value {
	if v, ok := f[name]; ok {
		return v
	}
	for k, v := range f {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return nil
}

// Delete removes the named field.
func (f Fields) Delete(name string) {
	for k := range f {
		if strings.EqualFold(k, name) {
			delete(f, k)
		}
	}
}

// Names returns the field names in byte-wise order.
func (f Fields) Names() []string {
	return sortedKeys(f)
}

// WriteTo writes every field in name order.
func (f Fields) WriteTo(w io.Writer) (int64, error) {
	cw := &counter{w: w}
	for _, name := range f.Names() {
		if err := WriteField(cw, name, f[name]); err != nil {
			return cw.n, err
		}
	}
	return cw.n, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

type counter struct {
	w io.Writer
	n int64
}

func (c *counter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
