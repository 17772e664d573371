package services

import (
	"fmt"

	"github.com/LoveWonYoung/udskit/uds"
)

// DiagnosticSessionControl session values.
const (
	SessionDefault          = 0x01
	SessionProgramming      = 0x02
	SessionExtended         = 0x03
	SessionSafetySystem     = 0x04
	sessionVehicleManufLow  = 0x40
	sessionVehicleManufHigh = 0x5F
	sessionSystemSupplLow   = 0x60
	sessionSystemSupplHigh  = 0x7E
)

// DiagnosticSessionControlResponsePost2006 carries the session timing
// parameters of the 2013 revision and later. Values are in seconds; the wire
// carries milliseconds for P2 and 10 ms steps for P2*.
var DiagnosticSessionControlResponsePost2006 = uds.MustRecordType(
	"DiagnosticSessionControlResponsePost2006",
	uds.Field{Name: "p2_server_max", Default: 100.0, Fmt: "H", Resolution: 0.001},
	uds.Field{Name: "p2_star_server_max", Default: 100.0, Fmt: "H", Resolution: 0.01},
)

// DiagnosticSessionControlResponsePre2006 carries the manufacturer dependant
// session parameter record of the original revision.
var DiagnosticSessionControlResponsePre2006 = uds.MustRecordType(
	"DiagnosticSessionControlResponsePre2006",
	uds.Field{Name: "session_param_records", Default: []byte(nil), Fmt: "H{}s"},
)

var DiagnosticSessionControl = &uds.Service{
	Name:            "DiagnosticSessionControl",
	SID:             SIDDiagnosticSessionControl,
	UsesSubfunction: true,
	SupportedNegativeResponses: []uds.ResponseCode{
		uds.NRCSubFunctionNotSupported,
		uds.NRCIncorrectMessageLengthOrInvalidFormat,
		uds.NRCConditionsNotCorrect,
	},
	Subfunctions: uds.SubfunctionTable{
		Label: "session",
		Entries: []uds.SubfunctionEntry{
			{Name: "defaultSession", Low: SessionDefault, High: SessionDefault},
			{Name: "programmingSession", Low: SessionProgramming, High: SessionProgramming},
			{Name: "extendedDiagnosticSession", Low: SessionExtended, High: SessionExtended},
			{Name: "safetySystemDiagnosticSession", Low: SessionSafetySystem, High: SessionSafetySystem},
			{Name: "vehicleManufacturerSpecific", Low: sessionVehicleManufLow, High: sessionVehicleManufHigh},
			{Name: "systemSupplierSpecific", Low: sessionSystemSupplLow, High: sessionSystemSupplHigh},
		},
	},
	Response: func(v uds.StandardVersion) *uds.RecordType {
		if v <= uds.Standard2006 {
			return DiagnosticSessionControlResponsePre2006
		}
		return DiagnosticSessionControlResponsePost2006
	},
}

// NewDiagnosticSessionControlRequest builds the request bytes switching to
// the given session.
func NewDiagnosticSessionControlRequest(session int) ([]byte, error) {
	if session < 0 || session > maxSubfunction {
		return nil, fmt.Errorf("session number %d out of range", session)
	}
	rec := DiagnosticSessionControl.RequestType(uds.LatestStandard()).New(session)
	return EncodeRequest(DiagnosticSessionControl, rec)
}
