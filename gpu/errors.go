package gpu

import "errors"

var (
	ErrInvalidBufferSet   = errors.New("gpu: invalid vertex buffer set")
	ErrUnknownShaderStage = errors.New("gpu: unknown shader stage")
)
