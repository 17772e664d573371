package services

import "github.com/LoveWonYoung/udskit/uds"

// SecuredDataTransmission wraps another diagnostic message in a security
// envelope. The envelope content is opaque to this layer; the securedata
// package computes and verifies the MAC.
var SecuredDataTransmissionRequest = uds.MustRecordType(
	"SecuredDataTransmissionRequest",
	uds.Field{Name: "security_data_request_record", Default: []byte(nil), Fmt: "H{}s"},
)

var SecuredDataTransmissionResponse = uds.MustRecordType(
	"SecuredDataTransmissionResponse",
	uds.Field{Name: "security_data_response_record", Default: []byte(nil), Fmt: "H{}s"},
)

var SecuredDataTransmission = &uds.Service{
	Name: "SecuredDataTransmission",
	SID:  SIDSecuredDataTransmission,
	SupportedNegativeResponses: []uds.ResponseCode{
		uds.NRCIncorrectMessageLengthOrInvalidFormat,
		uds.NRCGeneralProgrammingFailure,
		uds.NRCSecureDataVerificationFailed,
	},
	Request: func(uds.StandardVersion) *uds.RecordType {
		return SecuredDataTransmissionRequest
	},
	Response: func(uds.StandardVersion) *uds.RecordType {
		return SecuredDataTransmissionResponse
	},
}

// NewSecuredDataTransmissionRequest wraps an already secured record into the
// request bytes.
func NewSecuredDataTransmissionRequest(securedRecord []byte) ([]byte, error) {
	rec := SecuredDataTransmission.RequestType(uds.LatestStandard()).New(uds.NoSubfunction)
	if err := rec.Set("security_data_request_record", securedRecord); err != nil {
		return nil, err
	}
	return EncodeRequest(SecuredDataTransmission, rec)
}
