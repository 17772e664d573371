package uds

import "fmt"

const (
	// PositiveResponseOffset is added to a request SID to form the positive
	// response SID.
	PositiveResponseOffset = 0x40
	// NegativeResponseSID is the distinguished leading byte of a negative
	// response envelope: [0x7F, echoed request SID, NRC].
	NegativeResponseSID = 0x7F
)

// Response is a decoded application-layer response envelope.
type Response struct {
	// ServiceID is the request identifier of the answering service.
	ServiceID byte
	// Code is NRCPositiveResponse for positive responses, the NRC
	// otherwise.
	Code ResponseCode
	// Data is the payload following the response SID. Empty for negative
	// responses.
	Data []byte
}

// IsPositive reports whether the response is a positive one.
func (r *Response) IsPositive() bool {
	return r.Code == NRCPositiveResponse
}

// ParseResponse splits a raw response buffer into its envelope parts. The
// caller resolves the service and hands Data to InterpretResponse.
func ParseResponse(raw []byte) (*Response, error) {
	if len(raw) == 0 {
		return nil, NewTranscodeError("empty response buffer")
	}

	if raw[0] == NegativeResponseSID {
		if len(raw) < 3 {
			return nil, NewTranscodeError(fmt.Sprintf(
				"negative response must be at least 3 bytes, got %d", len(raw)))
		}
		return &Response{
			ServiceID: raw[1],
			Code:      ResponseCode(raw[2]),
		}, nil
	}

	if raw[0] < PositiveResponseOffset {
		return nil, NewTranscodeError(fmt.Sprintf(
			"byte 0x%02X is not a response identifier", raw[0]))
	}

	return &Response{
		ServiceID: raw[0] - PositiveResponseOffset,
		Code:      NRCPositiveResponse,
		Data:      raw[1:],
	}, nil
}
