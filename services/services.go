// Package services declares the standard UDS service set on top of the uds
// data model. Everything here is built once at startup and registered
// explicitly; there is no runtime service discovery.
package services

import (
	"fmt"

	"github.com/LoveWonYoung/udskit/uds"
)

// UDS service identifiers.
const (
	SIDDiagnosticSessionControl        byte = 0x10
	SIDECUReset                        byte = 0x11
	SIDClearDiagnosticInformation      byte = 0x14
	SIDReadDTCInformation              byte = 0x19
	SIDReadDataByIdentifier            byte = 0x22
	SIDReadMemoryByAddress             byte = 0x23
	SIDReadScalingDataByIdentifier     byte = 0x24
	SIDSecurityAccess                  byte = 0x27
	SIDCommunicationControl            byte = 0x28
	SIDAuthentication                  byte = 0x29
	SIDReadDataByPeriodicIdentifier    byte = 0x2A
	SIDDynamicallyDefineDataIdentifier byte = 0x2C
	SIDWriteDataByIdentifier           byte = 0x2E
	SIDInputOutputControlByIdentifier  byte = 0x2F
	SIDRoutineControl                  byte = 0x31
	SIDRequestDownload                 byte = 0x34
	SIDRequestUpload                   byte = 0x35
	SIDTransferData                    byte = 0x36
	SIDRequestTransferExit             byte = 0x37
	SIDRequestFileTransfer             byte = 0x38
	SIDWriteMemoryByAddress            byte = 0x3D
	SIDTesterPresent                   byte = 0x3E
	SIDAccessTimingParameter           byte = 0x83
	SIDSecuredDataTransmission         byte = 0x84
	SIDControlDTCSetting               byte = 0x85
	SIDResponseOnEvent                 byte = 0x86
	SIDLinkControl                     byte = 0x87
)

// ClearDiagnosticInformation has a group-of-DTC selector but no subfunction.
var ClearDiagnosticInformation = &uds.Service{
	Name: "ClearDiagnosticInformation",
	SID:  SIDClearDiagnosticInformation,
	SupportedNegativeResponses: []uds.ResponseCode{
		uds.NRCIncorrectMessageLengthOrInvalidFormat,
		uds.NRCConditionsNotCorrect,
		uds.NRCRequestOutOfRange,
	},
}

var ReadDTCInformation = &uds.Service{
	Name:            "ReadDTCInformation",
	SID:             SIDReadDTCInformation,
	UsesSubfunction: true,
	SupportedNegativeResponses: []uds.ResponseCode{
		uds.NRCSubFunctionNotSupported,
		uds.NRCIncorrectMessageLengthOrInvalidFormat,
		uds.NRCRequestOutOfRange,
	},
}

var ReadDataByIdentifier = &uds.Service{
	Name: "ReadDataByIdentifier",
	SID:  SIDReadDataByIdentifier,
	SupportedNegativeResponses: []uds.ResponseCode{
		uds.NRCIncorrectMessageLengthOrInvalidFormat,
		uds.NRCConditionsNotCorrect,
		uds.NRCRequestOutOfRange,
		uds.NRCSecurityAccessDenied,
	},
}

var ReadMemoryByAddress = &uds.Service{
	Name: "ReadMemoryByAddress",
	SID:  SIDReadMemoryByAddress,
	SupportedNegativeResponses: []uds.ResponseCode{
		uds.NRCIncorrectMessageLengthOrInvalidFormat,
		uds.NRCConditionsNotCorrect,
		uds.NRCRequestOutOfRange,
		uds.NRCSecurityAccessDenied,
	},
}

var CommunicationControl = &uds.Service{
	Name:            "CommunicationControl",
	SID:             SIDCommunicationControl,
	UsesSubfunction: true,
	SupportedNegativeResponses: []uds.ResponseCode{
		uds.NRCSubFunctionNotSupported,
		uds.NRCIncorrectMessageLengthOrInvalidFormat,
		uds.NRCConditionsNotCorrect,
		uds.NRCRequestOutOfRange,
	},
}

var Authentication = &uds.Service{
	Name:            "Authentication",
	SID:             SIDAuthentication,
	UsesSubfunction: true,
	SupportedNegativeResponses: []uds.ResponseCode{
		uds.NRCSubFunctionNotSupported,
		uds.NRCIncorrectMessageLengthOrInvalidFormat,
		uds.NRCConditionsNotCorrect,
		uds.NRCRequestSequenceError,
		uds.NRCRequestOutOfRange,
	},
}

var DynamicallyDefineDataIdentifier = &uds.Service{
	Name:            "DynamicallyDefineDataIdentifier",
	SID:             SIDDynamicallyDefineDataIdentifier,
	UsesSubfunction: true,
	SupportedNegativeResponses: []uds.ResponseCode{
		uds.NRCSubFunctionNotSupported,
		uds.NRCIncorrectMessageLengthOrInvalidFormat,
		uds.NRCConditionsNotCorrect,
		uds.NRCRequestOutOfRange,
		uds.NRCSecurityAccessDenied,
	},
}

var WriteDataByIdentifier = &uds.Service{
	Name: "WriteDataByIdentifier",
	SID:  SIDWriteDataByIdentifier,
	SupportedNegativeResponses: []uds.ResponseCode{
		uds.NRCIncorrectMessageLengthOrInvalidFormat,
		uds.NRCConditionsNotCorrect,
		uds.NRCRequestOutOfRange,
		uds.NRCSecurityAccessDenied,
		uds.NRCGeneralProgrammingFailure,
	},
}

var InputOutputControlByIdentifier = &uds.Service{
	Name: "InputOutputControlByIdentifier",
	SID:  SIDInputOutputControlByIdentifier,
	SupportedNegativeResponses: []uds.ResponseCode{
		uds.NRCIncorrectMessageLengthOrInvalidFormat,
		uds.NRCConditionsNotCorrect,
		uds.NRCRequestOutOfRange,
		uds.NRCSecurityAccessDenied,
	},
}

var RequestDownload = &uds.Service{
	Name: "RequestDownload",
	SID:  SIDRequestDownload,
	SupportedNegativeResponses: []uds.ResponseCode{
		uds.NRCIncorrectMessageLengthOrInvalidFormat,
		uds.NRCConditionsNotCorrect,
		uds.NRCRequestOutOfRange,
		uds.NRCSecurityAccessDenied,
		uds.NRCUploadDownloadNotAccepted,
	},
}

var RequestUpload = &uds.Service{
	Name: "RequestUpload",
	SID:  SIDRequestUpload,
	SupportedNegativeResponses: []uds.ResponseCode{
		uds.NRCIncorrectMessageLengthOrInvalidFormat,
		uds.NRCConditionsNotCorrect,
		uds.NRCRequestOutOfRange,
		uds.NRCSecurityAccessDenied,
		uds.NRCUploadDownloadNotAccepted,
	},
}

var RequestTransferExit = &uds.Service{
	Name: "RequestTransferExit",
	SID:  SIDRequestTransferExit,
	SupportedNegativeResponses: []uds.ResponseCode{
		uds.NRCIncorrectMessageLengthOrInvalidFormat,
		uds.NRCRequestSequenceError,
		uds.NRCGeneralProgrammingFailure,
		uds.NRCWrongBlockSequenceCounter,
	},
}

var WriteMemoryByAddress = &uds.Service{
	Name: "WriteMemoryByAddress",
	SID:  SIDWriteMemoryByAddress,
	SupportedNegativeResponses: []uds.ResponseCode{
		uds.NRCIncorrectMessageLengthOrInvalidFormat,
		uds.NRCConditionsNotCorrect,
		uds.NRCRequestOutOfRange,
		uds.NRCSecurityAccessDenied,
		uds.NRCGeneralProgrammingFailure,
	},
}

var AccessTimingParameter = &uds.Service{
	Name:            "AccessTimingParameter",
	SID:             SIDAccessTimingParameter,
	UsesSubfunction: true,
	SupportedNegativeResponses: []uds.ResponseCode{
		uds.NRCSubFunctionNotSupported,
		uds.NRCIncorrectMessageLengthOrInvalidFormat,
		uds.NRCConditionsNotCorrect,
		uds.NRCRequestOutOfRange,
	},
}

var ControlDTCSetting = &uds.Service{
	Name:            "ControlDTCSetting",
	SID:             SIDControlDTCSetting,
	UsesSubfunction: true,
	SupportedNegativeResponses: []uds.ResponseCode{
		uds.NRCSubFunctionNotSupported,
		uds.NRCIncorrectMessageLengthOrInvalidFormat,
		uds.NRCConditionsNotCorrect,
		uds.NRCRequestOutOfRange,
	},
}

var LinkControl = &uds.Service{
	Name:            "LinkControl",
	SID:             SIDLinkControl,
	UsesSubfunction: true,
	SupportedNegativeResponses: []uds.ResponseCode{
		uds.NRCSubFunctionNotSupported,
		uds.NRCIncorrectMessageLengthOrInvalidFormat,
		uds.NRCConditionsNotCorrect,
		uds.NRCRequestSequenceError,
		uds.NRCRequestOutOfRange,
	},
}

// NewRegistry returns a registry seeded with the full standard service set.
func NewRegistry() *uds.Registry {
	return uds.NewRegistry().MustRegister(
		DiagnosticSessionControl,
		ECUReset,
		ClearDiagnosticInformation,
		ReadDTCInformation,
		ReadDataByIdentifier,
		ReadMemoryByAddress,
		ReadScalingDataByIdentifier,
		SecurityAccess,
		CommunicationControl,
		Authentication,
		ReadDataByPeriodicIdentifier,
		DynamicallyDefineDataIdentifier,
		WriteDataByIdentifier,
		InputOutputControlByIdentifier,
		RoutineControl,
		RequestDownload,
		RequestUpload,
		TransferData,
		RequestTransferExit,
		RequestFileTransfer,
		WriteMemoryByAddress,
		TesterPresent,
		AccessTimingParameter,
		SecuredDataTransmission,
		ControlDTCSetting,
		ResponseOnEvent,
		LinkControl,
	)
}

// maxSubfunction is the highest subfunction value a request may carry; the
// high bit is the suppress-positive-response flag.
const maxSubfunction = 0x7F

// EncodeRequest renders a full request buffer for a service: the SID, the
// subfunction byte when the service uses one, then the packed record.
func EncodeRequest(svc *uds.Service, rec *uds.Record) ([]byte, error) {
	if svc.NotImplemented {
		return nil, uds.NewUnsupportedOperationError("service " + svc.Name + " is not implemented")
	}

	payload, err := rec.Pack()
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, 2+len(payload))
	out = append(out, svc.RequestID())
	if svc.UsesSubfunction {
		if rec.Subfunction < 0 || rec.Subfunction > maxSubfunction {
			return nil, fmt.Errorf("subfunction %d out of range for %s", rec.Subfunction, svc.Name)
		}
		out = append(out, byte(rec.Subfunction))
	}
	return append(out, payload...), nil
}
