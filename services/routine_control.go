package services

import (
	"fmt"

	"github.com/LoveWonYoung/udskit/uds"
)

// RoutineControl control types.
const (
	RoutineStart          = 0x01
	RoutineStop           = 0x02
	RoutineRequestResults = 0x03
)

var RoutineControlRequest = uds.MustRecordType(
	"RoutineControlRequest",
	uds.Field{Name: "routine_id", Default: 0, Fmt: "H"},
	uds.Field{Name: "routine_control_option_record", Default: []byte(nil), Fmt: "H{}s"},
)

var RoutineControlResponse = uds.MustRecordType(
	"RoutineControlResponse",
	uds.Field{Name: "routine_id", Default: 0, Fmt: "H"},
	uds.Field{Name: "routine_status_record", Default: []byte(nil), Fmt: "H{}s"},
)

var RoutineControl = &uds.Service{
	Name:            "RoutineControl",
	SID:             SIDRoutineControl,
	UsesSubfunction: true,
	SupportedNegativeResponses: []uds.ResponseCode{
		uds.NRCSubFunctionNotSupported,
		uds.NRCIncorrectMessageLengthOrInvalidFormat,
		uds.NRCConditionsNotCorrect,
		uds.NRCRequestSequenceError,
		uds.NRCRequestOutOfRange,
		uds.NRCSecurityAccessDenied,
		uds.NRCGeneralProgrammingFailure,
	},
	Subfunctions: uds.SubfunctionTable{
		Label: "control type",
		Entries: []uds.SubfunctionEntry{
			{Name: "startRoutine", Low: RoutineStart, High: RoutineStart},
			{Name: "stopRoutine", Low: RoutineStop, High: RoutineStop},
			{Name: "requestRoutineResults", Low: RoutineRequestResults, High: RoutineRequestResults},
		},
	},
	Request: func(uds.StandardVersion) *uds.RecordType {
		return RoutineControlRequest
	},
	Response: func(uds.StandardVersion) *uds.RecordType {
		return RoutineControlResponse
	},
}

// NewRoutineControlRequest builds the request bytes for a routine operation.
func NewRoutineControlRequest(controlType int, routineID uint16, optionRecord []byte) ([]byte, error) {
	switch controlType {
	case RoutineStart, RoutineStop, RoutineRequestResults:
	default:
		return nil, fmt.Errorf("unknown routine control type %d", controlType)
	}
	rec := RoutineControl.RequestType(uds.LatestStandard()).New(controlType)
	if err := rec.Set("routine_id", routineID); err != nil {
		return nil, err
	}
	if err := rec.Set("routine_control_option_record", optionRecord); err != nil {
		return nil, err
	}
	return EncodeRequest(RoutineControl, rec)
}
