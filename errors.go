package glkit

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
)

// Common errors.
var (
	// ErrElementNotFound is returned when a selector matches no element or
	// the matched element is not a canvas.
	ErrElementNotFound = errors.New("glkit: no canvas element found")

	// ErrContextUnavailable is returned when the host cannot produce a
	// rendering context for the canvas.
	ErrContextUnavailable = errors.New("glkit: failed to get rendering context")

	// ErrShaderCreate is returned when the host cannot allocate a shader.
	ErrShaderCreate = errors.New("glkit: failed to create shader")

	// ErrProgramCreate is returned when the host cannot allocate a program.
	ErrProgramCreate = errors.New("glkit: failed to create program")

	// ErrBufferCreate is returned when the host cannot allocate a buffer.
	ErrBufferCreate = errors.New("glkit: failed to create buffer")
)

// ShaderCompileError carries the host compiler diagnostic for one stage.
type ShaderCompileError struct {
	Stage gputypes.ShaderStage
	Log   string
}

func (e *ShaderCompileError) Error() string {
	return fmt.Sprintf("glkit: %s shader compile failed: %s", stageName(e.Stage), e.Log)
}

// ProgramLinkError carries the host linker diagnostic.
type ProgramLinkError struct {
	Log string
}

func (e *ProgramLinkError) Error() string {
	return "glkit: program link failed: " + e.Log
}

// AttributeNotFoundError indicates the program has no attribute with Name.
type AttributeNotFoundError struct {
	Name string
}

func (e *AttributeNotFoundError) Error() string {
	return fmt.Sprintf("glkit: failed to locate attribute %q", e.Name)
}

// UniformNotFoundError indicates the program has no active uniform with Name.
type UniformNotFoundError struct {
	Name string
}

func (e *UniformNotFoundError) Error() string {
	return fmt.Sprintf("glkit: failed to locate uniform %q", e.Name)
}

// UnsupportedShapeError indicates a uniform shape outside the four
// supported ones.
type UnsupportedShapeError struct {
	Tag string
}

func (e *UnsupportedShapeError) Error() string {
	return fmt.Sprintf("glkit: unsupported uniform shape %q", e.Tag)
}

// AttributeSizeError indicates a component count outside 1..4.
type AttributeSizeError struct {
	Size int
}

func (e *AttributeSizeError) Error() string {
	return fmt.Sprintf("glkit: attribute size %d out of range [1, 4]", e.Size)
}

func stageName(stage gputypes.ShaderStage) string {
	switch stage {
	case gputypes.ShaderStageVertex:
		return "vertex"
	case gputypes.ShaderStageFragment:
		return "fragment"
	default:
		return fmt.Sprintf("stage(%d)", uint32(stage))
	}
}
