package glkit

import (
	"github.com/gogpu/gputypes"
)

// Shader is an opaque handle to a host shader object. Zero means none.
type Shader uint32

// Program is an opaque handle to a host program object. Zero means none.
type Program uint32

// BufferID is an opaque handle to a host buffer object. Zero means none.
type BufferID uint32

// UniformLocation identifies a uniform slot inside one program.
// Whether a location exists is reported separately by
// Host.UniformLocation, so every value including 0 is a valid location.
type UniformLocation int32

// BufferTarget selects the binding point a buffer is attached to.
type BufferTarget uint8

const (
	// ArrayBuffer holds vertex attribute data.
	ArrayBuffer BufferTarget = iota + 1
)

// String returns the GL name of the target.
func (t BufferTarget) String() string {
	switch t {
	case ArrayBuffer:
		return "ARRAY_BUFFER"
	default:
		return "INVALID_BUFFER_TARGET"
	}
}

// BufferUsage hints how buffer contents will be accessed.
type BufferUsage uint8

const (
	// StaticDraw data is uploaded once and drawn many times.
	StaticDraw BufferUsage = iota + 1
	// DynamicDraw data is modified repeatedly and drawn many times.
	DynamicDraw
)

// String returns the GL name of the usage.
func (u BufferUsage) String() string {
	switch u {
	case StaticDraw:
		return "STATIC_DRAW"
	case DynamicDraw:
		return "DYNAMIC_DRAW"
	default:
		return "INVALID_BUFFER_USAGE"
	}
}

// Host is the rendering context capability set glkit drives.
//
// A Host is owned by the embedding application and is used synchronously
// from a single control flow. Implementations live in the backend
// packages: backend/webgl (browser), backend/opengl (desktop) and
// backend/headless (pure Go reference host).
//
// Methods mirror the WebGL 1 / OpenGL ES 2 entry points of the same names.
// Create methods return the zero handle when the host cannot allocate the
// object (for example after context loss).
type Host interface {
	// CreateShader allocates a shader object for the given stage.
	CreateShader(stage gputypes.ShaderStage) Shader
	// ShaderSource replaces the source text of s.
	ShaderSource(s Shader, source string)
	// CompileShader compiles the current source of s.
	CompileShader(s Shader)
	// ShaderCompiled reports the COMPILE_STATUS of s.
	ShaderCompiled(s Shader) bool
	// ShaderInfoLog returns the compiler diagnostic for s.
	ShaderInfoLog(s Shader) string
	// DeleteShader flags s for deletion.
	DeleteShader(s Shader)

	// CreateProgram allocates an empty program object.
	CreateProgram() Program
	// AttachShader attaches s to p.
	AttachShader(p Program, s Shader)
	// LinkProgram links the shaders attached to p.
	LinkProgram(p Program)
	// ProgramLinked reports the LINK_STATUS of p.
	ProgramLinked(p Program) bool
	// ProgramInfoLog returns the linker diagnostic for p.
	ProgramInfoLog(p Program) string
	// UseProgram installs p as part of the current rendering state.
	UseProgram(p Program)
	// DeleteProgram flags p for deletion.
	DeleteProgram(p Program)

	// CreateBuffer allocates a buffer object.
	CreateBuffer() BufferID
	// BindBuffer binds b to target.
	BindBuffer(target BufferTarget, b BufferID)
	// BufferData replaces the contents of the buffer bound to target.
	BufferData(target BufferTarget, data []float32, usage BufferUsage)
	// DeleteBuffer deletes b.
	DeleteBuffer(b BufferID)

	// AttribLocation returns the attribute index of name in p, or -1.
	AttribLocation(p Program, name string) int
	// VertexAttribPointer describes the layout of attribute index inside
	// the buffer currently bound to ArrayBuffer.
	VertexAttribPointer(index int, format gputypes.VertexFormat, normalized bool, stride, offset int)
	// EnableVertexAttribArray turns on the attribute array at index.
	EnableVertexAttribArray(index int)

	// UniformLocation resolves the uniform name in p.
	UniformLocation(p Program, name string) (UniformLocation, bool)
	// Uniform1f writes a float into loc of the current program.
	Uniform1f(loc UniformLocation, v float32)
	// Uniform1i writes an integer into loc of the current program.
	Uniform1i(loc UniformLocation, v int32)
	// Uniform3fv writes a 3-component float vector into loc.
	Uniform3fv(loc UniformLocation, v []float32)
	// UniformMatrix4fv writes a 4x4 float matrix into loc.
	UniformMatrix4fv(loc UniformLocation, transpose bool, v []float32)

	// SetSurfaceSize sets the pixel dimensions of the drawable surface.
	SetSurfaceSize(width, height int)
	// Viewport sets the viewport rectangle.
	Viewport(x, y, width, height int)
}

// UniformReader is implemented by hosts that can read uniform values back.
type UniformReader interface {
	// GetUniform returns the values currently stored at loc in p.
	GetUniform(p Program, loc UniformLocation) []float32
}

// Rect is a pixel rectangle anchored at X, Y.
type Rect struct {
	X, Y          int
	Width, Height int
}

// SurfaceReader is implemented by hosts that report surface state.
type SurfaceReader interface {
	// SurfaceSize returns the pixel dimensions of the drawable surface.
	SurfaceSize() (width, height int)
	// CurrentViewport returns the viewport rectangle.
	CurrentViewport() Rect
}
