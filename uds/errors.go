package uds

// messageOrDefault returns msg if present, otherwise fallback.
func messageOrDefault(msg, fallback string) string {
	if msg != "" {
		return msg
	}
	return fallback
}

type ProtocolError struct {
	msg string
}

func NewProtocolError(msg string) ProtocolError {
	return ProtocolError{msg: msg}
}

func (e ProtocolError) Error() string {
	return messageOrDefault(e.msg, "UDS protocol error")
}

// SchemaError reports an invalid service or record declaration. It is only
// produced at definition/registration time, never while transcoding.
type SchemaError struct {
	ProtocolError
}

func NewSchemaError(msg string) SchemaError {
	return SchemaError{ProtocolError{msg: msg}}
}

func (e SchemaError) Error() string {
	return messageOrDefault(e.msg, "invalid service schema")
}

// MissingDataError reports a mismatch between declared parameters and the
// presence of payload bytes during unpack.
type MissingDataError struct {
	ProtocolError
}

func NewMissingDataError(msg string) MissingDataError {
	return MissingDataError{ProtocolError{msg: msg}}
}

func (e MissingDataError) Error() string {
	return messageOrDefault(e.msg, "payload data does not match declared parameters")
}

// TranscodeError reports a value or buffer that cannot be encoded or decoded
// with the derived payload layout.
type TranscodeError struct {
	ProtocolError
}

func NewTranscodeError(msg string) TranscodeError {
	return TranscodeError{ProtocolError{msg: msg}}
}

func (e TranscodeError) Error() string {
	return messageOrDefault(e.msg, "payload transcoding failed")
}

// UnsupportedOperationError marks a service that is declared but deliberately
// not implemented yet. Distinct from transcoding failures.
type UnsupportedOperationError struct {
	ProtocolError
}

func NewUnsupportedOperationError(msg string) UnsupportedOperationError {
	return UnsupportedOperationError{ProtocolError{msg: msg}}
}

func (e UnsupportedOperationError) Error() string {
	return messageOrDefault(e.msg, "service is not implemented")
}
