package paramspace

import (
	"sort"
	"strings"
)

// Point assigns one value to every descriptor of a Space, keyed by parameter
// name. Points are immutable and always render in ascending name order.
type Point struct {
	values map[string]Value
}

// EmptyPoint returns a point with no assignments
func EmptyPoint() Point {
	return Point{}
}

// NewPoint builds a point from explicit values. The map is copied.
func NewPoint(values map[string]Value) Point {
	if len(values) == 0 {
		return Point{}
	}
	cp := make(map[string]Value, len(values))
	for k, v := range values {
		cp[k] = v
	}
	return Point{values: cp}
}

// Len returns the number of assigned parameters
func (p Point) Len() int {
	return len(p.values)
}

// Get returns the value assigned to name
func (p Point) Get(name string) (Value, bool) {
	v, ok := p.values[name]
	return v, ok
}

// Names returns the assigned parameter names in ascending order
func (p Point) Names() []string {
	names := make([]string, 0, len(p.values))
	for k := range p.values {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Equal reports whether both points assign identical values to identical names
func (p Point) Equal(o Point) bool {
	if len(p.values) != len(o.values) {
		return false
	}
	for k, v := range p.values {
		ov, ok := o.values[k]
		if !ok || ov != v {
			return false
		}
	}
	return true
}

// ToConfig converts the point into string key/value configuration pairs
func (p Point) ToConfig() map[string]string {
	cfg := make(map[string]string, len(p.values))
	for k, v := range p.values {
		cfg[k] = v.String()
	}
	return cfg
}

// String renders the point as {name=value, ...} sorted by name
func (p Point) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, name := range p.Names() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(p.values[name].String())
	}
	b.WriteByte('}')
	return b.String()
}
