package services

import (
	"fmt"

	"github.com/LoveWonYoung/udskit/uds"
)

// ECUReset reset types.
const (
	ResetHardReset                 = 0x01
	ResetKeyOffOnReset             = 0x02
	ResetSoftReset                 = 0x03
	ResetEnableRapidPowerShutDown  = 0x04
	ResetDisableRapidPowerShutDown = 0x05
)

// ECUResetResponse carries the power-down time, which the server only
// reports when rapid power shutdown was enabled.
var ECUResetResponse = uds.MustRecordType(
	"ECUResetResponse",
	uds.Field{Name: "power_down_time", Default: 0, Fmt: "B",
		Subfunctions: []int{ResetEnableRapidPowerShutDown}},
)

var ECUReset = &uds.Service{
	Name:            "ECUReset",
	SID:             SIDECUReset,
	UsesSubfunction: true,
	SupportedNegativeResponses: []uds.ResponseCode{
		uds.NRCSubFunctionNotSupported,
		uds.NRCIncorrectMessageLengthOrInvalidFormat,
		uds.NRCConditionsNotCorrect,
		uds.NRCSecurityAccessDenied,
	},
	Subfunctions: uds.SubfunctionTable{
		Label: "reset type",
		Entries: []uds.SubfunctionEntry{
			{Name: "hardReset", Low: ResetHardReset, High: ResetHardReset},
			{Name: "keyOffOnReset", Low: ResetKeyOffOnReset, High: ResetKeyOffOnReset},
			{Name: "softReset", Low: ResetSoftReset, High: ResetSoftReset},
			{Name: "enableRapidPowerShutDown", Low: ResetEnableRapidPowerShutDown, High: ResetEnableRapidPowerShutDown},
			{Name: "disableRapidPowerShutDown", Low: ResetDisableRapidPowerShutDown, High: ResetDisableRapidPowerShutDown},
		},
	},
	Response: func(uds.StandardVersion) *uds.RecordType {
		return ECUResetResponse
	},
}

// NewECUResetRequest builds the request bytes for the given reset type.
func NewECUResetRequest(resetType int) ([]byte, error) {
	if resetType < 0 || resetType > maxSubfunction {
		return nil, fmt.Errorf("reset type %d out of range", resetType)
	}
	rec := ECUReset.RequestType(uds.LatestStandard()).New(resetType)
	return EncodeRequest(ECUReset, rec)
}
