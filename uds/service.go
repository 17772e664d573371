package uds

// RecordSelector picks the record type to use for a given standard version.
// Services whose payload shape never changed across revisions can ignore the
// argument.
type RecordSelector func(StandardVersion) *RecordType

// EmptyRecord is the record type of requests and responses that carry no
// parameter.
var EmptyRecord = MustRecordType("Empty")

// Service describes one diagnostic service: its identifier, whether it
// carries a subfunction byte, the negative response codes it may answer with
// and the record types of its request and response payloads.
//
// Services are declared at program start and never mutated afterwards.
type Service struct {
	Name               string
	SID                byte
	UsesSubfunction    bool
	DefaultSubfunction int
	// SupportedNegativeResponses lists the service specific codes, on top
	// of the protocol-wide always-valid set.
	SupportedNegativeResponses []ResponseCode
	// Subfunctions optionally names the service's subfunction values.
	Subfunctions SubfunctionTable
	// Request and Response select the payload record types per standard
	// version; nil means the payload carries no parameter.
	Request  RecordSelector
	Response RecordSelector
	// NotImplemented marks a deliberate placeholder service: requests and
	// response interpretation fail with UnsupportedOperationError.
	NotImplemented bool
}

// RequestID returns the service identifier used in a client request.
func (s *Service) RequestID() byte {
	return s.SID
}

// ResponseID returns the service identifier used in a positive server
// response.
func (s *Service) ResponseID() byte {
	return s.SID + PositiveResponseOffset
}

// RequestType returns the record type of the request payload for the given
// standard version.
func (s *Service) RequestType(version StandardVersion) *RecordType {
	if s.Request == nil {
		return EmptyRecord
	}
	return s.Request(version)
}

// ResponseType returns the record type of the response payload for the given
// standard version.
func (s *Service) ResponseType(version StandardVersion) *RecordType {
	if s.Response == nil {
		return EmptyRecord
	}
	return s.Response(version)
}

// IsNegativeResponseSupported tells if the given code is expected for this
// service according to the standard. A code is supported when any of these
// holds:
//
//   - it is in the service's own supported set;
//   - it is in the protocol-wide always-valid set;
//   - it is in the reserved condition-dependent range (0x80..0xFE) and the
//     service declares ConditionsNotCorrect (Annex A);
//   - it is SubFunctionNotSupportedInActiveSession and the service uses a
//     subfunction byte.
func (s *Service) IsNegativeResponseSupported(code ResponseCode) bool {
	for _, c := range s.SupportedNegativeResponses {
		if c == code {
			return true
		}
	}

	if _, ok := alwaysValidNegativeResponses[code]; ok {
		return true
	}

	if code >= conditionDependentRangeLow && code < conditionDependentRangeHigh {
		for _, c := range s.SupportedNegativeResponses {
			if c == NRCConditionsNotCorrect {
				return true
			}
		}
	}

	if code == NRCSubFunctionNotSupportedInActiveSession && s.UsesSubfunction {
		return true
	}

	return false
}

// InterpretResponse turns a positive response payload (everything after the
// response SID) into a typed record. When the service uses a subfunction
// byte, the first payload byte is the subfunction and the rest is data;
// otherwise the whole payload is data and the service's default subfunction
// applies. An empty payload yields a default record.
func (s *Service) InterpretResponse(payload []byte, version StandardVersion) (*Record, error) {
	if s.NotImplemented {
		return nil, NewUnsupportedOperationError("service " + s.Name + " is not implemented")
	}

	responseType := s.ResponseType(version)
	if len(payload) == 0 {
		return responseType.New(s.DefaultSubfunction), nil
	}

	subfunction := s.DefaultSubfunction
	data := payload
	if s.UsesSubfunction {
		subfunction = int(payload[0])
		data = payload[1:]
	}

	return responseType.Unpack(data, subfunction)
}
