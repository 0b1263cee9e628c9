package supervisor

import "errors"

var (
	ErrRenderPanic    = errors.New("supervisor: render thread panicked")
	ErrAlreadyStarted = errors.New("supervisor: render thread already started")
)
