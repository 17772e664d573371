package uds

import (
	"errors"
	"testing"
)

// conditionsService mirrors the standard's Annex A example: a service that
// declares ConditionsNotCorrect and carries a subfunction byte.
var conditionsService = &Service{
	Name:            "Conditions",
	SID:             0x31,
	UsesSubfunction: true,
	SupportedNegativeResponses: []ResponseCode{
		NRCConditionsNotCorrect,
	},
}

func TestNegativeResponseValidationTable(t *testing.T) {
	cases := []struct {
		code ResponseCode
		want bool
		why  string
	}{
		{NRCConditionsNotCorrect, true, "in the service's own set"},
		{NRCGeneralReject, true, "always valid"},
		{0x90, true, "reserved range with ConditionsNotCorrect declared"},
		{0x7F, false, "not in range, not in either set"},
		{NRCSubFunctionNotSupportedInActiveSession, true, "service uses a subfunction"},
	}
	for _, tc := range cases {
		if got := conditionsService.IsNegativeResponseSupported(tc.code); got != tc.want {
			t.Errorf("code 0x%02X: got %v, want %v (%s)", byte(tc.code), got, tc.want, tc.why)
		}
	}
}

func TestReservedRangeNeedsConditionsNotCorrect(t *testing.T) {
	svc := &Service{
		Name:            "NoConditions",
		SID:             0x11,
		UsesSubfunction: true,
		SupportedNegativeResponses: []ResponseCode{
			NRCSubFunctionNotSupported,
		},
	}
	if svc.IsNegativeResponseSupported(0x90) {
		t.Error("reserved range must not be accepted without ConditionsNotCorrect")
	}
	// 0xFF is outside the reserved range
	if conditionsService.IsNegativeResponseSupported(0xFF) {
		t.Error("0xFF is not part of the reserved range")
	}
}

func TestSubfunctionNotSupportedInActiveSessionRequiresSubfunction(t *testing.T) {
	svc := &Service{Name: "Plain", SID: 0x22}
	if svc.IsNegativeResponseSupported(NRCSubFunctionNotSupportedInActiveSession) {
		t.Error("0x7E must not be accepted by services without a subfunction byte")
	}
}

func TestServiceIdentifiers(t *testing.T) {
	if conditionsService.RequestID() != 0x31 {
		t.Errorf("request id = 0x%02X", conditionsService.RequestID())
	}
	if conditionsService.ResponseID() != 0x71 {
		t.Errorf("response id = 0x%02X", conditionsService.ResponseID())
	}
}

func TestInterpretResponseSplitsSubfunction(t *testing.T) {
	typ := MustRecordType("EchoResponse",
		Field{Name: "value", Default: 0, Fmt: "H"},
	)
	svc := &Service{
		Name:            "Echo",
		SID:             0x51,
		UsesSubfunction: true,
		Response:        func(StandardVersion) *RecordType { return typ },
	}

	rec, err := svc.InterpretResponse([]byte{0x02, 0x12, 0x34}, LatestStandard())
	if err != nil {
		t.Fatal(err)
	}
	if rec.Subfunction != 2 {
		t.Errorf("subfunction = %d", rec.Subfunction)
	}
	v, _ := rec.Get("value")
	if v != uint64(0x1234) {
		t.Errorf("value = %v", v)
	}
}

func TestInterpretResponseWithoutSubfunction(t *testing.T) {
	typ := MustRecordType("PlainResponse",
		Field{Name: "value", Default: 0, Fmt: "H"},
	)
	svc := &Service{
		Name:     "Plain",
		SID:      0x52,
		Response: func(StandardVersion) *RecordType { return typ },
	}

	rec, err := svc.InterpretResponse([]byte{0x12, 0x34}, LatestStandard())
	if err != nil {
		t.Fatal(err)
	}
	if rec.Subfunction != NoSubfunction {
		t.Errorf("subfunction = %d", rec.Subfunction)
	}
	v, _ := rec.Get("value")
	if v != uint64(0x1234) {
		t.Errorf("value = %v", v)
	}
}

func TestInterpretResponseEmptyPayload(t *testing.T) {
	svc := &Service{Name: "Empty", SID: 0x3E, UsesSubfunction: true}
	rec, err := svc.InterpretResponse(nil, LatestStandard())
	if err != nil {
		t.Fatal(err)
	}
	if rec.Type() != EmptyRecord {
		t.Errorf("expected the empty record type, got %s", rec.Type().Name())
	}
}

func TestInterpretResponseNotImplemented(t *testing.T) {
	svc := &Service{Name: "Stub", SID: 0x86, NotImplemented: true}
	var unsupported UnsupportedOperationError
	if _, err := svc.InterpretResponse([]byte{0x01}, LatestStandard()); !errors.As(err, &unsupported) {
		t.Errorf("expected UnsupportedOperationError, got %v", err)
	}
	// the stub marker must stay distinguishable from transcoding failures
	var transcode TranscodeError
	if _, err := svc.InterpretResponse([]byte{0x01}, LatestStandard()); errors.As(err, &transcode) {
		t.Error("stub error must not match TranscodeError")
	}
}
