package services

import (
	"fmt"

	"github.com/LoveWonYoung/udskit/uds"
)

// SecurityAccess levels alternate: odd levels request a seed, the following
// even level sends the computed key. Only seed responses carry data.
var securityAccessSeedLevels = func() []int {
	levels := make([]int, 0, 0x21)
	for l := 0x01; l <= 0x41; l += 2 {
		levels = append(levels, l)
	}
	return levels
}()

var SecurityAccessResponse = uds.MustRecordType(
	"SecurityAccessResponse",
	uds.Field{Name: "security_seed", Default: []byte(nil), Fmt: "H{}s",
		Subfunctions: securityAccessSeedLevels},
)

var SecurityAccess = &uds.Service{
	Name:            "SecurityAccess",
	SID:             SIDSecurityAccess,
	UsesSubfunction: true,
	SupportedNegativeResponses: []uds.ResponseCode{
		uds.NRCSubFunctionNotSupported,
		uds.NRCIncorrectMessageLengthOrInvalidFormat,
		uds.NRCConditionsNotCorrect,
		uds.NRCRequestSequenceError,
		uds.NRCRequestOutOfRange,
		uds.NRCInvalidKey,
		uds.NRCExceedNumberOfAttempts,
		uds.NRCRequiredTimeDelayNotExpired,
	},
	Response: func(uds.StandardVersion) *uds.RecordType {
		return SecurityAccessResponse
	},
}

// NewSecurityAccessSeedRequest builds a seed request for the given security
// level, which must be odd.
func NewSecurityAccessSeedRequest(level int) ([]byte, error) {
	if level < 1 || level > maxSubfunction || level%2 == 0 {
		return nil, fmt.Errorf("seed request level %d must be an odd value in 0x01..0x7F", level)
	}
	rec := SecurityAccess.RequestType(uds.LatestStandard()).New(level)
	return EncodeRequest(SecurityAccess, rec)
}
