package transform

import "errors"

// Every error returned by a Transformer wraps exactly one of these.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrDecode          = errors.New("decode image")
	ErrEncode          = errors.New("encode image")
)
