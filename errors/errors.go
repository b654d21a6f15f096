package errors

import "fmt"

var (
	ErrDecode             = fmt.Errorf("malformed message body")
	ErrUnknownMessageType = fmt.Errorf("unknown message type")
	ErrInvalidOperation   = fmt.Errorf("invalid crud operation")
	ErrMissingField       = fmt.Errorf("missing required field")
	ErrNotFound           = fmt.Errorf("record not found")
	ErrDuplicateID        = fmt.Errorf("duplicate external id")
	ErrStorage            = fmt.Errorf("storage failure")
	ErrSideEffect         = fmt.Errorf("side effect failure")
	ErrMappingNotFound    = fmt.Errorf("master id mapping not found")
)
