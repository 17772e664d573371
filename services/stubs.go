package services

import "github.com/LoveWonYoung/udskit/uds"

// Deliberate placeholders: these services are declared so that lookups and
// negative-response validation work, but building requests or interpreting
// responses fails with UnsupportedOperationError until they are modeled.

var ReadScalingDataByIdentifier = &uds.Service{
	Name:           "ReadScalingDataByIdentifier",
	SID:            SIDReadScalingDataByIdentifier,
	NotImplemented: true,
	SupportedNegativeResponses: []uds.ResponseCode{
		uds.NRCIncorrectMessageLengthOrInvalidFormat,
		uds.NRCConditionsNotCorrect,
		uds.NRCRequestOutOfRange,
		uds.NRCSecurityAccessDenied,
	},
}

var ReadDataByPeriodicIdentifier = &uds.Service{
	Name:           "ReadDataByPeriodicIdentifier",
	SID:            SIDReadDataByPeriodicIdentifier,
	NotImplemented: true,
	SupportedNegativeResponses: []uds.ResponseCode{
		uds.NRCIncorrectMessageLengthOrInvalidFormat,
		uds.NRCConditionsNotCorrect,
		uds.NRCRequestOutOfRange,
		uds.NRCSecurityAccessDenied,
	},
}

var ResponseOnEvent = &uds.Service{
	Name:            "ResponseOnEvent",
	SID:             SIDResponseOnEvent,
	UsesSubfunction: true,
	NotImplemented:  true,
	SupportedNegativeResponses: []uds.ResponseCode{
		uds.NRCSubFunctionNotSupported,
		uds.NRCIncorrectMessageLengthOrInvalidFormat,
		uds.NRCConditionsNotCorrect,
		uds.NRCRequestOutOfRange,
	},
}

var RequestFileTransfer = &uds.Service{
	Name:           "RequestFileTransfer",
	SID:            SIDRequestFileTransfer,
	NotImplemented: true,
	SupportedNegativeResponses: []uds.ResponseCode{
		uds.NRCIncorrectMessageLengthOrInvalidFormat,
		uds.NRCConditionsNotCorrect,
		uds.NRCRequestOutOfRange,
		uds.NRCUploadDownloadNotAccepted,
	},
}
