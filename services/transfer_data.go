package services

import "github.com/LoveWonYoung/udskit/uds"

// TransferData request: a wrapping block sequence counter followed by the
// data block for this transfer round.
var TransferDataRequest = uds.MustRecordType(
	"TransferDataRequest",
	uds.Field{Name: "block_sequence_counter", Default: 1, Fmt: "B"},
	uds.Field{Name: "transfer_request_parameter_record", Default: []byte(nil), Fmt: "H{}s"},
)

// TransferData response echoes the counter plus an optional status record.
var TransferDataResponse = uds.MustRecordType(
	"TransferDataResponse",
	uds.Field{Name: "block_sequence_counter", Default: 1, Fmt: "B"},
	uds.Field{Name: "transfer_response_parameter_record", Default: []byte(nil), Fmt: "H{}s"},
)

var TransferData = &uds.Service{
	Name: "TransferData",
	SID:  SIDTransferData,
	SupportedNegativeResponses: []uds.ResponseCode{
		uds.NRCIncorrectMessageLengthOrInvalidFormat,
		uds.NRCRequestSequenceError,
		uds.NRCRequestOutOfRange,
		uds.NRCTransferDataSuspended,
		uds.NRCGeneralProgrammingFailure,
		uds.NRCWrongBlockSequenceCounter,
		uds.NRCVoltageTooHigh,
		uds.NRCVoltageTooLow,
	},
	Request: func(uds.StandardVersion) *uds.RecordType {
		return TransferDataRequest
	},
	Response: func(uds.StandardVersion) *uds.RecordType {
		return TransferDataResponse
	},
}

// NewTransferDataRequest builds the request bytes for one transfer round.
func NewTransferDataRequest(counter byte, block []byte) ([]byte, error) {
	rec := TransferData.RequestType(uds.LatestStandard()).New(uds.NoSubfunction)
	if err := rec.Set("block_sequence_counter", counter); err != nil {
		return nil, err
	}
	if err := rec.Set("transfer_request_parameter_record", block); err != nil {
		return nil, err
	}
	return EncodeRequest(TransferData, rec)
}
