package errors

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrInvalid        = errors.New("invalid")
	ErrDecode         = errors.New("style decode error")
	ErrEncode         = errors.New("style encode error")
	ErrStorage        = errors.New("storage error")
	ErrUnsupported    = errors.New("unsupported")
	ErrKubernetes     = errors.New("kubernetes error")
	ErrEventStore     = errors.New("event store error")
	ErrInvalidRequest = errors.New("invalid request")
)
