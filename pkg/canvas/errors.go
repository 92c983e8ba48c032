package canvas

import "errors"

var (
	ErrInvalidSize = errors.New("canvas: width and height must be positive")
	ErrNilColor    = errors.New("canvas: fill color is nil")
	ErrNoRecording = errors.New("canvas: no recorded data url")
	ErrEncode      = errors.New("canvas: failed to encode surface")
)
