package uds

import "fmt"

// ResponseCode is a UDS negative response code (NRC).
type ResponseCode byte

const (
	NRCPositiveResponse                       ResponseCode = 0x00
	NRCGeneralReject                          ResponseCode = 0x10
	NRCServiceNotSupported                    ResponseCode = 0x11
	NRCSubFunctionNotSupported                ResponseCode = 0x12
	NRCIncorrectMessageLengthOrInvalidFormat  ResponseCode = 0x13
	NRCResponseTooLong                        ResponseCode = 0x14
	NRCBusyRepeatRequest                      ResponseCode = 0x21
	NRCConditionsNotCorrect                   ResponseCode = 0x22
	NRCRequestSequenceError                   ResponseCode = 0x24
	NRCNoResponseFromSubnetComponent          ResponseCode = 0x25
	NRCFailurePreventsExecution               ResponseCode = 0x26
	NRCRequestOutOfRange                      ResponseCode = 0x31
	NRCSecurityAccessDenied                   ResponseCode = 0x33
	NRCAuthenticationRequired                 ResponseCode = 0x34
	NRCInvalidKey                             ResponseCode = 0x35
	NRCExceedNumberOfAttempts                 ResponseCode = 0x36
	NRCRequiredTimeDelayNotExpired            ResponseCode = 0x37
	NRCSecureDataTransmissionRequired         ResponseCode = 0x38
	NRCSecureDataTransmissionNotAllowed       ResponseCode = 0x39
	NRCSecureDataVerificationFailed           ResponseCode = 0x3A
	NRCUploadDownloadNotAccepted              ResponseCode = 0x70
	NRCTransferDataSuspended                  ResponseCode = 0x71
	NRCGeneralProgrammingFailure              ResponseCode = 0x72
	NRCWrongBlockSequenceCounter              ResponseCode = 0x73
	NRCResponsePending                        ResponseCode = 0x78
	NRCSubFunctionNotSupportedInActiveSession ResponseCode = 0x7E
	NRCServiceNotSupportedInActiveSession     ResponseCode = 0x7F
	NRCRPMTooHigh                             ResponseCode = 0x81
	NRCRPMTooLow                              ResponseCode = 0x82
	NRCEngineIsRunning                        ResponseCode = 0x83
	NRCEngineIsNotRunning                     ResponseCode = 0x84
	NRCVoltageTooHigh                         ResponseCode = 0x92
	NRCVoltageTooLow                          ResponseCode = 0x93
	NRCResourceTemporarilyNotAvailable        ResponseCode = 0x94
)

// conditionDependentRangeLow..High is the manufacturer/system specific
// range of NRCs reserved for condition-dependent extensions (Annex A).
const (
	conditionDependentRangeLow  ResponseCode = 0x80
	conditionDependentRangeHigh ResponseCode = 0xFF // exclusive
)

var nrcNames = map[ResponseCode]string{
	NRCPositiveResponse:                       "Positive Response",
	NRCGeneralReject:                          "General Reject",
	NRCServiceNotSupported:                    "Service Not Supported",
	NRCSubFunctionNotSupported:                "Sub-Function Not Supported",
	NRCIncorrectMessageLengthOrInvalidFormat:  "Incorrect Message Length Or Invalid Format",
	NRCResponseTooLong:                        "Response Too Long",
	NRCBusyRepeatRequest:                      "Busy, Repeat Request",
	NRCConditionsNotCorrect:                   "Conditions Not Correct",
	NRCRequestSequenceError:                   "Request Sequence Error",
	NRCNoResponseFromSubnetComponent:          "No Response From Subnet Component",
	NRCFailurePreventsExecution:               "Failure Prevents Execution Of Requested Action",
	NRCRequestOutOfRange:                      "Request Out Of Range",
	NRCSecurityAccessDenied:                   "Security Access Denied",
	NRCAuthenticationRequired:                 "Authentication Required",
	NRCInvalidKey:                             "Invalid Key",
	NRCExceedNumberOfAttempts:                 "Exceed Number Of Attempts",
	NRCRequiredTimeDelayNotExpired:            "Required Time Delay Not Expired",
	NRCSecureDataTransmissionRequired:         "Secure Data Transmission Required",
	NRCSecureDataTransmissionNotAllowed:       "Secure Data Transmission Not Allowed",
	NRCSecureDataVerificationFailed:           "Secure Data Verification Failed",
	NRCUploadDownloadNotAccepted:              "Upload/Download Not Accepted",
	NRCTransferDataSuspended:                  "Transfer Data Suspended",
	NRCGeneralProgrammingFailure:              "General Programming Failure",
	NRCWrongBlockSequenceCounter:              "Wrong Block Sequence Counter",
	NRCResponsePending:                        "Request Correctly Received, Response Pending",
	NRCSubFunctionNotSupportedInActiveSession: "Sub-Function Not Supported In Active Session",
	NRCServiceNotSupportedInActiveSession:     "Service Not Supported In Active Session",
	NRCRPMTooHigh:                             "RPM Too High",
	NRCRPMTooLow:                              "RPM Too Low",
	NRCEngineIsRunning:                        "Engine Is Running",
	NRCEngineIsNotRunning:                     "Engine Is Not Running",
	NRCVoltageTooHigh:                         "Voltage Too High",
	NRCVoltageTooLow:                          "Voltage Too Low",
	NRCResourceTemporarilyNotAvailable:        "Resource Temporarily Not Available",
}

// Name returns the standard description of the code, or a hex rendering for
// codes without one.
func (c ResponseCode) Name() string {
	if name, ok := nrcNames[c]; ok {
		return name
	}
	return fmt.Sprintf("0x%02X", byte(c))
}

// IsRetryable reports whether a request rejected with this code may simply
// be sent again.
func (c ResponseCode) IsRetryable() bool {
	switch c {
	case NRCBusyRepeatRequest, NRCResponsePending:
		return true
	}
	return false
}

// alwaysValidNegativeResponses are accepted for every service regardless of
// the service's own supported set: ISO-14229:2006 Table A.1 plus the
// 2020 general server response behaviour codes.
var alwaysValidNegativeResponses = map[ResponseCode]struct{}{
	NRCGeneralReject:                    {},
	NRCServiceNotSupported:              {},
	NRCResponseTooLong:                  {},
	NRCBusyRepeatRequest:                {},
	NRCNoResponseFromSubnetComponent:    {},
	NRCFailurePreventsExecution:         {},
	NRCSecurityAccessDenied:             {},
	NRCAuthenticationRequired:           {},
	NRCSecureDataTransmissionRequired:   {},
	NRCSecureDataTransmissionNotAllowed: {},
	NRCResponsePending:                  {},
	NRCResourceTemporarilyNotAvailable:  {},
}
