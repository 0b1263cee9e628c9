package renderer

import "errors"

var (
	ErrSceneNotDefined  = errors.New("renderer: no scene graph defined")
	ErrInputNotDefined  = errors.New("renderer: no input state defined")
	ErrInvalidFrameSize = errors.New("renderer: frame dimensions must be non-zero")
)
