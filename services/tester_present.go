package services

import "github.com/LoveWonYoung/udskit/uds"

// TesterPresent only knows the zero subfunction; both payloads are empty.
var TesterPresent = &uds.Service{
	Name:            "TesterPresent",
	SID:             SIDTesterPresent,
	UsesSubfunction: true,
	SupportedNegativeResponses: []uds.ResponseCode{
		uds.NRCSubFunctionNotSupported,
		uds.NRCIncorrectMessageLengthOrInvalidFormat,
	},
	Subfunctions: uds.SubfunctionTable{
		Label: "tester present",
		Entries: []uds.SubfunctionEntry{
			{Name: "zeroSubFunction", Low: 0, High: 0},
		},
	},
}

// NewTesterPresentRequest builds the keep-alive request bytes.
func NewTesterPresentRequest() ([]byte, error) {
	rec := TesterPresent.RequestType(uds.LatestStandard()).New(0)
	return EncodeRequest(TesterPresent, rec)
}
