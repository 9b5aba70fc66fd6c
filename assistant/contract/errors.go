package contract

import "errors"

var (
	ErrUnknownQueryKind = errors.New("unknown query kind")
	ErrInvalidEndpoint  = errors.New("invalid endpoint configuration")
)
