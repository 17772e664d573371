package uds

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jellydator/ttlcache/v3"
)

// NoSubfunction is the subfunction value of services that do not carry a
// subfunction byte.
const NoSubfunction = 0

// RecordType is the immutable schema of one service request or response
// payload: an ordered list of field descriptors. Declaration order is the
// canonical wire order and never changes at runtime.
//
// Derived per-subfunction values (applicable fields, payload formats, name
// and resolution vectors) are memoized. The memo is populated idempotently:
// a concurrent first access may compute the same value twice, both results
// are identical and either may win.
type RecordType struct {
	name    string
	fields  []fieldDesc
	derived *ttlcache.Cache[int, *derivedLayout]
}

// derivedLayout holds everything that is a pure function of
// (record type, subfunction).
type derivedLayout struct {
	fields          []*fieldDesc
	names           []string
	resolutions     []float64
	scalingFactors  []float64
	payloadFmt      string
	chunks          []string
	variadicIndexes []int
}

// NewRecordType validates the field declarations and freezes them into a
// record type. Malformed format tokens, duplicate names, invalid resolutions
// and invalid defaults are reported as SchemaError.
func NewRecordType(name string, fields ...Field) (*RecordType, error) {
	if name == "" {
		return nil, NewSchemaError("record type with empty name")
	}

	t := &RecordType{
		name:    name,
		fields:  make([]fieldDesc, 0, len(fields)),
		derived: ttlcache.New[int, *derivedLayout](),
	}

	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		d, err := resolveField(f)
		if err != nil {
			return nil, fmt.Errorf("record type %q: %w", name, err)
		}
		if _, dup := seen[d.name]; dup {
			return nil, NewSchemaError(fmt.Sprintf("record type %q declares field %q twice", name, d.name))
		}
		if d.token.kind == kindBytes && !d.identity {
			return nil, NewSchemaError(fmt.Sprintf("record type %q field %q: byte blocks cannot carry a resolution", name, d.name))
		}
		seen[d.name] = struct{}{}
		t.fields = append(t.fields, d)
	}

	return t, nil
}

// MustRecordType is NewRecordType for package-level declarations; it panics
// on a schema error.
func MustRecordType(name string, fields ...Field) *RecordType {
	t, err := NewRecordType(name, fields...)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *RecordType) Name() string {
	return t.name
}

// layout returns the memoized derived layout for a subfunction, computing it
// on first access.
func (t *RecordType) layout(subfunction int) *derivedLayout {
	if item := t.derived.Get(subfunction); item != nil {
		return item.Value()
	}

	l := &derivedLayout{}
	var fmtParts []string
	for i := range t.fields {
		d := &t.fields[i]
		if !d.supportsSubfunction(subfunction) {
			continue
		}
		if d.hasVariableLength() {
			l.variadicIndexes = append(l.variadicIndexes, len(l.fields))
		}
		l.fields = append(l.fields, d)
		l.names = append(l.names, d.name)
		l.resolutions = append(l.resolutions, d.resolution)
		l.scalingFactors = append(l.scalingFactors, d.scaleFactor)
		fmtParts = append(fmtParts, d.token.fmt)
	}

	joined := strings.Join(fmtParts, "")
	l.payloadFmt = Endianness + joined

	// splitting on the length placeholder turns a mixed fixed/variadic
	// layout into a list of length-prefixed, independently decodable chunks
	staticChunks := strings.Split(joined, variadicMarker)
	l.chunks = append(l.chunks, Endianness+staticChunks[0])
	for _, chunk := range staticChunks[1:] {
		l.chunks = append(l.chunks, Endianness+variadicMarker+chunk)
	}

	t.derived.Set(subfunction, l, ttlcache.NoTTL)
	return l
}

// ParameterNames returns the names of the fields applicable to the given
// subfunction, in declaration order.
func (t *RecordType) ParameterNames(subfunction int) []string {
	return t.layout(subfunction).names
}

// ParameterResolutions returns the resolution vector applied to raw values
// when decoding.
func (t *RecordType) ParameterResolutions(subfunction int) []float64 {
	return t.layout(subfunction).resolutions
}

// ParameterScalingFactors returns the scaling vector applied to engineering
// values when encoding, the inverse of the resolutions.
func (t *RecordType) ParameterScalingFactors(subfunction int) []float64 {
	return t.layout(subfunction).scalingFactors
}

// PayloadFormat returns the full format string for the given subfunction,
// e.g. ">df" for an int64 field followed by a float32 field.
func (t *RecordType) PayloadFormat(subfunction int) string {
	return t.layout(subfunction).payloadFmt
}

// FormatChunks returns the payload format split on the variable-length
// placeholder. A layout without variadic fields yields exactly one chunk;
// every later chunk starts with a length placeholder that is resolved while
// transcoding.
func (t *RecordType) FormatChunks(subfunction int) []string {
	return t.layout(subfunction).chunks
}

// HasVariadicFields reports whether any field applicable to the subfunction
// is variable-length.
func (t *RecordType) HasVariadicFields(subfunction int) bool {
	return len(t.layout(subfunction).variadicIndexes) > 0
}

// VariadicFieldIndexes returns the positions of variable-length fields
// within the applicable field sequence.
func (t *RecordType) VariadicFieldIndexes(subfunction int) []int {
	return t.layout(subfunction).variadicIndexes
}

// New creates a record instance with every field set to its default.
func (t *RecordType) New(subfunction int) *Record {
	values := make(map[string]any, len(t.fields))
	for i := range t.fields {
		values[t.fields[i].name] = t.fields[i].def
	}
	return &Record{typ: t, Subfunction: subfunction, values: values}
}

// Record is one instance of a record type: a subfunction plus one value per
// declared field. Instances are created per message and are not meant to be
// shared across goroutines.
type Record struct {
	typ *RecordType
	// Subfunction selects which declared fields participate in packing,
	// equality and introspection. NoSubfunction means no subfunction byte.
	Subfunction int
	values      map[string]any
}

func (r *Record) Type() *RecordType {
	return r.typ
}

// Set assigns a field value, type-checked against the declared kind.
func (r *Record) Set(name string, value any) error {
	for i := range r.typ.fields {
		d := &r.typ.fields[i]
		if d.name != name {
			continue
		}
		v, err := d.normalize(value)
		if err != nil {
			return fmt.Errorf("record %q field %q: %w", r.typ.name, name, err)
		}
		r.values[name] = v
		return nil
	}
	return fmt.Errorf("record %q has no field %q", r.typ.name, name)
}

// Get returns a field value by name.
func (r *Record) Get(name string) (any, bool) {
	v, ok := r.values[name]
	return v, ok
}

// ParameterValues returns the values of the fields applicable to the given
// subfunction, in declaration order. With scaled set, values with a declared
// resolution are multiplied by their scaling factor, which converts
// engineering units back to transmitted units.
func (r *Record) ParameterValues(subfunction int, scaled bool) []any {
	l := r.typ.layout(subfunction)
	out := make([]any, 0, len(l.fields))
	for _, d := range l.fields {
		v := r.values[d.name]
		if scaled && !d.identity {
			f, _ := asFloat(v)
			v = f * d.scaleFactor
		}
		out = append(out, v)
	}
	return out
}

// Item is one (name, value) pair produced by ParameterItems.
type Item struct {
	Name  string
	Value any
}

// ParameterItems zips applicable parameter names with their scaled values.
func (r *Record) ParameterItems(subfunction int) []Item {
	l := r.typ.layout(subfunction)
	values := r.ParameterValues(subfunction, true)
	items := make([]Item, 0, len(values))
	for i, name := range l.names {
		items = append(items, Item{Name: name, Value: values[i]})
	}
	return items
}

// Equal compares two records by their scaled parameter items under each
// record's own subfunction. Records of different types are never equal;
// fields not applicable to a record's subfunction do not participate.
func (r *Record) Equal(other *Record) bool {
	if other == nil || r.typ != other.typ {
		return false
	}
	a := r.ParameterItems(r.Subfunction)
	b := other.ParameterItems(other.Subfunction)
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Name != b[i].Name || !valuesEqual(a[i].Value, b[i].Value) {
			return false
		}
	}
	return true
}

func valuesEqual(a, b any) bool {
	if ab, ok := a.([]byte); ok {
		bb, ok := b.([]byte)
		return ok && bytes.Equal(ab, bb)
	}
	switch av := a.(type) {
	case float64:
		switch bv := b.(type) {
		case float64:
			return av == bv
		case int64:
			return av == float64(bv)
		case uint64:
			return av == float64(bv)
		}
	case int64:
		switch bv := b.(type) {
		case int64:
			return av == bv
		case uint64:
			return av >= 0 && uint64(av) == bv
		case float64:
			return float64(av) == bv
		}
	case uint64:
		switch bv := b.(type) {
		case uint64:
			return av == bv
		case int64:
			return bv >= 0 && av == uint64(bv)
		case float64:
			return float64(av) == bv
		}
	default:
		return a == b
	}
	return false
}
