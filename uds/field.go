package uds

import (
	"fmt"
	"math"
)

// Field declares one parameter of a service record: its name, default value,
// binary format token, the subfunctions it applies to and an optional
// resolution for fixed-point scaled values.
//
// An empty Subfunctions list means the field applies to every subfunction.
// Resolution converts a transmitted raw value into an engineering-unit value
// on decode; its inverse is applied on encode. The default resolution of 1
// leaves values untouched.
type Field struct {
	Name         string
	Default      any
	Fmt          string
	Subfunctions []int
	Resolution   float64
}

// fieldDesc is a validated Field, resolved once at record type definition.
type fieldDesc struct {
	name         string
	def          any
	token        formatToken
	subfunctions map[int]struct{}
	resolution   float64
	// scaleFactor stays exactly 1 when resolution is 1 so that integer
	// fields are not contaminated with floats when no scaling is requested.
	scaleFactor float64
	identity    bool
}

func resolveField(f Field) (fieldDesc, error) {
	if f.Name == "" {
		return fieldDesc{}, NewSchemaError("field with empty name")
	}

	token, err := parseFormatToken(f.Fmt)
	if err != nil {
		return fieldDesc{}, err
	}

	resolution := f.Resolution
	if resolution == 0 {
		resolution = 1
	}
	if resolution < 0 {
		return fieldDesc{}, NewSchemaError(fmt.Sprintf("field %q has negative resolution %v", f.Name, resolution))
	}

	d := fieldDesc{
		name:         f.Name,
		token:        token,
		resolution:   resolution,
		scaleFactor:  1,
		identity:     resolution == 1,
		subfunctions: make(map[int]struct{}, len(f.Subfunctions)),
	}
	if !d.identity {
		d.scaleFactor = 1 / resolution
	}
	for _, sf := range f.Subfunctions {
		d.subfunctions[sf] = struct{}{}
	}

	def, err := d.normalize(f.Default)
	if err != nil {
		return fieldDesc{}, NewSchemaError(fmt.Sprintf("field %q default: %v", f.Name, err))
	}
	d.def = def

	return d, nil
}

// supportsSubfunction reports whether the field should be included for the
// given subfunction. An empty subfunction set matches everything.
func (d *fieldDesc) supportsSubfunction(subfunction int) bool {
	if len(d.subfunctions) == 0 {
		return true
	}
	_, ok := d.subfunctions[subfunction]
	return ok
}

func (d *fieldDesc) hasVariableLength() bool {
	return d.token.variadic
}

// normalize checks a value against the field's declared kind and converts it
// to the canonical storage type (int64, uint64, float64 or []byte).
func (d *fieldDesc) normalize(v any) (any, error) {
	switch d.token.kind {
	case kindInt, kindUint:
		// fields with a non-identity resolution hold engineering values,
		// which are floats even when the wire format is an integer
		if !d.identity {
			f, ok := asFloat(v)
			if !ok {
				return nil, fmt.Errorf("expected numeric value, got %T", v)
			}
			return f, nil
		}
		if d.token.kind == kindUint {
			u, ok := asUint(v)
			if !ok {
				return nil, fmt.Errorf("expected unsigned integer value, got %v (%T)", v, v)
			}
			return u, nil
		}
		n, ok := asInt(v)
		if !ok {
			return nil, fmt.Errorf("expected integer value, got %v (%T)", v, v)
		}
		return n, nil
	case kindFloat:
		f, ok := asFloat(v)
		if !ok {
			return nil, fmt.Errorf("expected float value, got %T", v)
		}
		return f, nil
	case kindBytes:
		if v == nil {
			return []byte(nil), nil
		}
		switch b := v.(type) {
		case []byte:
			return b, nil
		case string:
			return []byte(b), nil
		}
		return nil, fmt.Errorf("expected byte value, got %T", v)
	}
	return nil, fmt.Errorf("unhandled field kind")
}

func asInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint:
		if uint64(n) > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	}
	return 0, false
}

func asUint(v any) (uint64, bool) {
	switch n := v.(type) {
	case uint:
		return uint64(n), true
	case uint8:
		return uint64(n), true
	case uint16:
		return uint64(n), true
	case uint32:
		return uint64(n), true
	case uint64:
		return n, true
	}
	if n, ok := asInt(v); ok && n >= 0 {
		return uint64(n), true
	}
	return 0, false
}

func asFloat(v any) (float64, bool) {
	switch f := v.(type) {
	case float32:
		return float64(f), true
	case float64:
		return f, true
	case uint:
		return float64(f), true
	case uint64:
		return float64(f), true
	}
	if n, ok := asInt(v); ok {
		return float64(n), true
	}
	return 0, false
}
