package uds

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

const variadicLengthSize = 2 // inline length prefix of variable-length fields

// Pack encodes the record into its wire representation: the applicable
// fields for the record's subfunction, in declaration order, each scaled by
// its field's scaling factor. Variable-length fields are emitted as a 2-byte
// big-endian length followed by the raw bytes. An empty applicable field set
// packs to an empty byte sequence.
func (r *Record) Pack() ([]byte, error) {
	l := r.typ.layout(r.Subfunction)
	if len(l.fields) == 0 {
		return []byte{}, nil
	}

	var buf bytes.Buffer
	for _, d := range l.fields {
		v := r.values[d.name]
		if err := encodeField(&buf, d, v); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

func encodeField(buf *bytes.Buffer, d *fieldDesc, v any) error {
	switch d.token.kind {
	case kindUint:
		raw, err := scaledUnsigned(d, v)
		if err != nil {
			return err
		}
		return encodeUnsigned(buf, d, raw)

	case kindInt:
		raw, err := scaledInteger(d, v)
		if err != nil {
			return err
		}
		return encodeInteger(buf, d, raw)

	case kindFloat:
		f, _ := asFloat(v)
		if !d.identity {
			f *= d.scaleFactor
		}
		if d.token.size == 4 {
			var out [4]byte
			binary.BigEndian.PutUint32(out[:], math.Float32bits(float32(f)))
			buf.Write(out[:])
		} else {
			var out [8]byte
			binary.BigEndian.PutUint64(out[:], math.Float64bits(f))
			buf.Write(out[:])
		}
		return nil

	case kindBytes:
		b, _ := v.([]byte)
		if d.token.variadic {
			if len(b) > math.MaxUint16 {
				return NewTranscodeError(fmt.Sprintf("field %q holds %d bytes, more than the inline length can carry", d.name, len(b)))
			}
			var length [variadicLengthSize]byte
			binary.BigEndian.PutUint16(length[:], uint16(len(b)))
			buf.Write(length[:])
			buf.Write(b)
			return nil
		}
		// fixed block: zero-padded, truncated when too long
		block := make([]byte, d.token.size)
		copy(block, b)
		buf.Write(block)
		return nil
	}
	return NewTranscodeError(fmt.Sprintf("field %q has an unhandled kind", d.name))
}

// scaledInteger applies the field's scaling factor and converts the result
// to the signed integer that goes on the wire.
func scaledInteger(d *fieldDesc, v any) (int64, error) {
	if d.identity {
		n, ok := asInt(v)
		if !ok {
			f, fok := asFloat(v)
			if !fok {
				return 0, NewTranscodeError(fmt.Sprintf("field %q holds a non-numeric value %T", d.name, v))
			}
			n = int64(math.Round(f))
		}
		return n, nil
	}
	f, ok := asFloat(v)
	if !ok {
		return 0, NewTranscodeError(fmt.Sprintf("field %q holds a non-numeric value %T", d.name, v))
	}
	return int64(math.Round(f * d.scaleFactor)), nil
}

// scaledUnsigned is scaledInteger for unsigned formats; the whole uint64
// range stays addressable, so the raw value never passes through int64.
func scaledUnsigned(d *fieldDesc, v any) (uint64, error) {
	if d.identity {
		u, ok := asUint(v)
		if !ok {
			f, fok := asFloat(v)
			if !fok || f < 0 {
				return 0, NewTranscodeError(fmt.Sprintf("field %q holds a value %v that does not fit an unsigned format", d.name, v))
			}
			u = uint64(math.Round(f))
		}
		return u, nil
	}
	f, ok := asFloat(v)
	if !ok {
		return 0, NewTranscodeError(fmt.Sprintf("field %q holds a non-numeric value %T", d.name, v))
	}
	scaled := math.Round(f * d.scaleFactor)
	if scaled < 0 {
		return 0, NewTranscodeError(fmt.Sprintf("field %q scales to %v, which does not fit an unsigned format", d.name, scaled))
	}
	return uint64(scaled), nil
}

func encodeInteger(buf *bytes.Buffer, d *fieldDesc, raw int64) error {
	width := d.token.size
	min := int64(-1) << (8*width - 1)
	max := int64(1)<<(8*width-1) - 1
	if raw < min || raw > max {
		return NewTranscodeError(fmt.Sprintf("field %q value %d out of range for %d-byte signed format", d.name, raw, width))
	}

	var out [8]byte
	binary.BigEndian.PutUint64(out[:], uint64(raw))
	buf.Write(out[8-width:])
	return nil
}

func encodeUnsigned(buf *bytes.Buffer, d *fieldDesc, raw uint64) error {
	width := d.token.size
	if width < 8 {
		if max := uint64(1)<<(8*width) - 1; raw > max {
			return NewTranscodeError(fmt.Sprintf("field %q value %d out of range for %d-byte unsigned format", d.name, raw, width))
		}
	}

	var out [8]byte
	binary.BigEndian.PutUint64(out[:], raw)
	buf.Write(out[8-width:])
	return nil
}

// Unpack decodes a payload into a new record instance with the given
// subfunction. Decoded raw values are multiplied by their field's resolution
// to recover engineering units.
//
// A payload supplied when the subfunction declares no parameters, or a
// missing payload when parameters are declared, is a MissingDataError. A
// buffer too short or too long for the derived layout is a TranscodeError.
func (t *RecordType) Unpack(data []byte, subfunction int) (*Record, error) {
	l := t.layout(subfunction)
	if len(l.fields) == 0 {
		if len(data) > 0 {
			return nil, NewMissingDataError(fmt.Sprintf(
				"%d bytes passed to %q despite subfunction %d expecting no parameter; consider checking the subfunction",
				len(data), t.name, subfunction))
		}
		return t.New(subfunction), nil
	}

	if len(data) == 0 {
		return nil, NewMissingDataError(fmt.Sprintf(
			"%q expects parameters %v yet no data was passed", t.name, l.names))
	}

	r := t.New(subfunction)
	offset := 0
	for _, d := range l.fields {
		v, n, err := decodeField(d, data[offset:])
		if err != nil {
			return nil, err
		}
		offset += n
		r.values[d.name] = v
	}
	if offset != len(data) {
		return nil, NewTranscodeError(fmt.Sprintf(
			"%q decoded %d of %d bytes for subfunction %d", t.name, offset, len(data), subfunction))
	}
	return r, nil
}

// decodeField decodes one field from the head of rest and returns the value
// and the number of bytes consumed.
func decodeField(d *fieldDesc, rest []byte) (any, int, error) {
	if d.token.variadic {
		if len(rest) < variadicLengthSize {
			return nil, 0, NewTranscodeError(fmt.Sprintf("buffer too short for the inline length of field %q", d.name))
		}
		length := int(binary.BigEndian.Uint16(rest))
		end := variadicLengthSize + length
		if end > len(rest) {
			return nil, 0, NewTranscodeError(fmt.Sprintf(
				"field %q declares %d bytes but only %d remain", d.name, length, len(rest)-variadicLengthSize))
		}
		value := make([]byte, length)
		copy(value, rest[variadicLengthSize:end])
		return value, end, nil
	}

	width := d.token.size
	if len(rest) < width {
		return nil, 0, NewTranscodeError(fmt.Sprintf(
			"buffer too short for field %q: need %d bytes, have %d", d.name, width, len(rest)))
	}

	switch d.token.kind {
	case kindBytes:
		value := make([]byte, width)
		copy(value, rest[:width])
		return value, width, nil

	case kindFloat:
		var f float64
		if width == 4 {
			f = float64(math.Float32frombits(binary.BigEndian.Uint32(rest)))
		} else {
			f = math.Float64frombits(binary.BigEndian.Uint64(rest))
		}
		if !d.identity {
			f *= d.resolution
		}
		return f, width, nil

	case kindUint:
		raw := decodeUnsigned(rest[:width])
		if !d.identity {
			return float64(raw) * d.resolution, width, nil
		}
		return raw, width, nil

	default:
		raw := decodeSigned(d, rest[:width])
		if !d.identity {
			return float64(raw) * d.resolution, width, nil
		}
		return raw, width, nil
	}
}

func decodeUnsigned(b []byte) uint64 {
	var u uint64
	for _, by := range b {
		u = u<<8 | uint64(by)
	}
	return u
}

func decodeSigned(d *fieldDesc, b []byte) int64 {
	// sign-extend from the declared width
	shift := 64 - 8*d.token.size
	return int64(decodeUnsigned(b)<<shift) >> shift
}
