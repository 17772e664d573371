package uds

import (
	"bytes"
	"errors"
	"math"
	"testing"
)

func TestPackDefaultsLength(t *testing.T) {
	// one double plus one float: 8 + 4 bytes
	data, err := simpleType.New(NoSubfunction).Pack()
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != 12 {
		t.Fatalf("packed %d bytes, want 12", len(data))
	}
}

func TestPackEmptyFieldSet(t *testing.T) {
	data, err := EmptyRecord.New(NoSubfunction).Pack()
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != 0 {
		t.Errorf("empty record packed to %d bytes", len(data))
	}
}

func TestPackInvertsUnpack(t *testing.T) {
	cases := []struct {
		intValue   float64
		floatValue float64
	}{
		{0, 0.0},
		{42, 1.0 / 8},
		{-17, 1.0 / 8},
	}
	for _, tc := range cases {
		rec := simpleType.New(NoSubfunction)
		if err := rec.Set("an_int", tc.intValue); err != nil {
			t.Fatal(err)
		}
		if err := rec.Set("a_float", tc.floatValue); err != nil {
			t.Fatal(err)
		}

		data, err := rec.Pack()
		if err != nil {
			t.Fatal(err)
		}
		back, err := simpleType.Unpack(data, NoSubfunction)
		if err != nil {
			t.Fatal(err)
		}
		if !back.Equal(rec) {
			t.Errorf("round trip of (%v, %v) produced %v", tc.intValue, tc.floatValue, back.ParameterItems(NoSubfunction))
		}
	}
}

func TestUnpackKeepsFloat32Precision(t *testing.T) {
	rec := simpleType.New(NoSubfunction)
	data, err := rec.Pack()
	if err != nil {
		t.Fatal(err)
	}
	back, err := simpleType.Unpack(data, NoSubfunction)
	if err != nil {
		t.Fatal(err)
	}
	v, _ := back.Get("a_float")
	// the wire carries a single-precision float
	if v != float64(float32(3.14)) {
		t.Errorf("a_float = %v", v)
	}
}

func TestPackUnpackPerSubfunction(t *testing.T) {
	for _, subfunction := range []int{0, 1} {
		rec := advancedType.New(subfunction)
		if err := rec.Set("an_int", -17.0); err != nil {
			t.Fatal(err)
		}
		if err := rec.Set("a_float", 1.0/8); err != nil {
			t.Fatal(err)
		}

		data, err := rec.Pack()
		if err != nil {
			t.Fatal(err)
		}
		wantLen := 8
		if subfunction == 1 {
			wantLen = 12
		}
		if len(data) != wantLen {
			t.Fatalf("subfunction %d packed %d bytes, want %d", subfunction, len(data), wantLen)
		}

		back, err := advancedType.Unpack(data, subfunction)
		if err != nil {
			t.Fatal(err)
		}
		if !back.Equal(rec) {
			t.Errorf("subfunction %d round trip mismatch", subfunction)
		}
	}
}

// Packing a scaled record and reading it back through the unscaled type
// exposes the raw wire value.
func TestResolutionScalingOnPack(t *testing.T) {
	rec := scaledType.New(1)
	if err := rec.Set("a_float", 1.0/8); err != nil {
		t.Fatal(err)
	}
	data, err := rec.Pack()
	if err != nil {
		t.Fatal(err)
	}

	raw, err := advancedType.Unpack(data, 1)
	if err != nil {
		t.Fatal(err)
	}
	v, _ := raw.Get("a_float")
	if v != float64(float32(1.0/8*10)) {
		t.Errorf("wire value = %v, want %v", v, float64(float32(1.0/8*10)))
	}
}

func TestResolutionInvertibility(t *testing.T) {
	// power-of-two resolution is exactly invertible
	exact := MustRecordType("Exact",
		Field{Name: "v", Default: 0.0, Fmt: "H", Resolution: 0.25},
	)
	rec := exact.New(NoSubfunction)
	if err := rec.Set("v", 12.25); err != nil {
		t.Fatal(err)
	}
	data, err := rec.Pack()
	if err != nil {
		t.Fatal(err)
	}
	back, err := exact.Unpack(data, NoSubfunction)
	if err != nil {
		t.Fatal(err)
	}
	v, _ := back.Get("v")
	if v != 12.25 {
		t.Errorf("round trip of 12.25 with resolution 0.25 gave %v", v)
	}

	// non-power-of-two resolutions round trip within float tolerance
	milli := MustRecordType("Milli",
		Field{Name: "v", Default: 0.0, Fmt: "H", Resolution: 0.001},
	)
	rec = milli.New(NoSubfunction)
	if err := rec.Set("v", 0.05); err != nil {
		t.Fatal(err)
	}
	data, err = rec.Pack()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, []byte{0x00, 0x32}) {
		t.Fatalf("0.05 s at resolution 0.001 should encode as 50, got % X", data)
	}
	back, err = milli.Unpack(data, NoSubfunction)
	if err != nil {
		t.Fatal(err)
	}
	v, _ = back.Get("v")
	if math.Abs(v.(float64)-0.05) > 1e-9 {
		t.Errorf("round trip of 0.05 with resolution 0.001 gave %v", v)
	}
}

var variadicType = MustRecordType("Variadic",
	Field{Name: "an_int", Default: 42.0, Fmt: "d"},
	Field{Name: "some_bytes", Default: []byte(nil), Fmt: "H{}s"},
	Field{Name: "a_float", Default: 3.14, Fmt: "f"},
)

func TestVariadicPackLayout(t *testing.T) {
	payload := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06}

	empty, err := variadicType.New(NoSubfunction).Pack()
	if err != nil {
		t.Fatal(err)
	}
	// the inline length costs two bytes even when the field is empty
	if len(empty) != 12+2 {
		t.Fatalf("empty variadic record packed %d bytes, want 14", len(empty))
	}

	rec := variadicType.New(NoSubfunction)
	if err := rec.Set("some_bytes", payload); err != nil {
		t.Fatal(err)
	}
	data, err := rec.Pack()
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != len(empty)+len(payload) {
		t.Fatalf("packed %d bytes, want %d", len(data), len(empty)+len(payload))
	}
	// the length sits right after the leading double
	if !bytes.Equal(data[8:10], []byte{0x00, 0x06}) {
		t.Errorf("inline length = % X", data[8:10])
	}
	if !bytes.Equal(data[10:16], payload) {
		t.Errorf("variadic payload = % X", data[10:16])
	}
}

func TestVariadicPackInvertsUnpack(t *testing.T) {
	rec := variadicType.New(NoSubfunction)
	if err := rec.Set("some_bytes", []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06}); err != nil {
		t.Fatal(err)
	}
	data, err := rec.Pack()
	if err != nil {
		t.Fatal(err)
	}
	back, err := variadicType.Unpack(data, NoSubfunction)
	if err != nil {
		t.Fatal(err)
	}
	if !back.Equal(rec) {
		t.Error("variadic round trip mismatch")
	}
	v, _ := back.Get("some_bytes")
	if !bytes.Equal(v.([]byte), []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06}) {
		t.Errorf("some_bytes = % X", v)
	}
}

func TestUnpackMissingData(t *testing.T) {
	var missing MissingDataError

	// data supplied when none is expected
	if _, err := EmptyRecord.Unpack([]byte{0x01}, NoSubfunction); !errors.As(err, &missing) {
		t.Errorf("expected MissingDataError, got %v", err)
	}
	// no data supplied when parameters are declared
	if _, err := simpleType.Unpack(nil, NoSubfunction); !errors.As(err, &missing) {
		t.Errorf("expected MissingDataError, got %v", err)
	}
	// no data and no parameters is fine
	rec, err := EmptyRecord.Unpack(nil, NoSubfunction)
	if err != nil || rec == nil {
		t.Errorf("empty unpack failed: %v", err)
	}
}

func TestUnpackTranscodeErrors(t *testing.T) {
	var transcode TranscodeError

	// buffer shorter than the layout
	if _, err := simpleType.Unpack(make([]byte, 5), NoSubfunction); !errors.As(err, &transcode) {
		t.Errorf("short buffer: expected TranscodeError, got %v", err)
	}
	// buffer longer than the layout
	if _, err := simpleType.Unpack(make([]byte, 20), NoSubfunction); !errors.As(err, &transcode) {
		t.Errorf("long buffer: expected TranscodeError, got %v", err)
	}
	// inline length pointing past the end of the buffer
	bad := []byte{0, 0, 0, 0, 0, 0, 0, 0 /* double */, 0x00, 0x10 /* length 16 */, 0xAA}
	if _, err := variadicType.Unpack(bad, NoSubfunction); !errors.As(err, &transcode) {
		t.Errorf("oversized inline length: expected TranscodeError, got %v", err)
	}
}

func TestPackRangeChecks(t *testing.T) {
	var transcode TranscodeError

	byteType := MustRecordType("OneByte", Field{Name: "v", Default: 0, Fmt: "B"})
	rec := byteType.New(NoSubfunction)
	if err := rec.Set("v", 300); err != nil {
		t.Fatal(err)
	}
	if _, err := rec.Pack(); !errors.As(err, &transcode) {
		t.Errorf("expected TranscodeError for 300 in one unsigned byte, got %v", err)
	}

	signedType := MustRecordType("OneSigned", Field{Name: "v", Default: 0, Fmt: "b"})
	rec = signedType.New(NoSubfunction)
	if err := rec.Set("v", -129); err != nil {
		t.Fatal(err)
	}
	if _, err := rec.Pack(); !errors.As(err, &transcode) {
		t.Errorf("expected TranscodeError for -129 in one signed byte, got %v", err)
	}
}

func TestSignedIntegerRoundTrip(t *testing.T) {
	typ := MustRecordType("Signed",
		Field{Name: "a", Default: 0, Fmt: "h"},
		Field{Name: "b", Default: 0, Fmt: "i"},
		Field{Name: "c", Default: 0, Fmt: "q"},
	)
	rec := typ.New(NoSubfunction)
	for name, v := range map[string]int{"a": -1234, "b": -70000, "c": -1} {
		if err := rec.Set(name, v); err != nil {
			t.Fatal(err)
		}
	}
	data, err := rec.Pack()
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != 2+4+8 {
		t.Fatalf("packed %d bytes", len(data))
	}
	back, err := typ.Unpack(data, NoSubfunction)
	if err != nil {
		t.Fatal(err)
	}
	if !back.Equal(rec) {
		t.Errorf("signed round trip mismatch: %v", back.ParameterItems(NoSubfunction))
	}
}

func TestFixedByteBlockPadding(t *testing.T) {
	typ := MustRecordType("Fixed", Field{Name: "blk", Default: []byte(nil), Fmt: "4s"})
	rec := typ.New(NoSubfunction)
	if err := rec.Set("blk", []byte{0xAA}); err != nil {
		t.Fatal(err)
	}
	data, err := rec.Pack()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, []byte{0xAA, 0x00, 0x00, 0x00}) {
		t.Errorf("fixed block = % X", data)
	}
}

func TestUnsignedFullRangeRoundTrip(t *testing.T) {
	typ := MustRecordType("Wide", Field{Name: "v", Default: 0, Fmt: "Q"})

	// the top half of the uint64 range must survive decode and re-encode
	all := bytes.Repeat([]byte{0xFF}, 8)
	rec, err := typ.Unpack(all, NoSubfunction)
	if err != nil {
		t.Fatal(err)
	}
	v, _ := rec.Get("v")
	u, ok := v.(uint64)
	if !ok || u != math.MaxUint64 {
		t.Fatalf("decoded %v (%T), want uint64 max", v, v)
	}
	data, err := rec.Pack()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, all) {
		t.Errorf("repacked % X", data)
	}

	rec = typ.New(NoSubfunction)
	if err := rec.Set("v", uint64(math.MaxInt64)+1); err != nil {
		t.Fatal(err)
	}
	data, err = rec.Pack()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, []byte{0x80, 0, 0, 0, 0, 0, 0, 0}) {
		t.Errorf("packed % X", data)
	}

	// a signed field cannot hold values past the int64 range
	signed := MustRecordType("SignedWide", Field{Name: "v", Default: 0, Fmt: "q"})
	rec = signed.New(NoSubfunction)
	if err := rec.Set("v", uint64(math.MaxUint64)); err == nil {
		t.Error("uint64 max should not fit a signed field")
	}
}

func TestPackVariadicTooLong(t *testing.T) {
	rec := variadicType.New(NoSubfunction)
	if err := rec.Set("some_bytes", make([]byte, math.MaxUint16+1)); err != nil {
		t.Fatal(err)
	}
	var transcode TranscodeError
	if _, err := rec.Pack(); !errors.As(err, &transcode) {
		t.Errorf("expected TranscodeError for a value past the inline length range, got %v", err)
	}
}
