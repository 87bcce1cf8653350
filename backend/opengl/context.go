// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build !js && cgo

package opengl

import (
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/gogpu/glkit"
	"github.com/gogpu/gputypes"
)

// Context is an OpenGL 4.1 core rendering context bound to a window.
// GL object names are used as glkit handles directly. A vertex array
// object is bound for the lifetime of the context, since core profiles
// reject attribute setup without one.
type Context struct {
	window *Window
	vao    uint32

	// err holds an error detected before a call reached the driver.
	err uint32
}

func newContext(w *Window) *Context {
	c := &Context{window: w}
	gl.GenVertexArrays(1, &c.vao)
	gl.BindVertexArray(c.vao)
	return c
}

func (c *Context) release() {
	if c.vao != 0 {
		gl.DeleteVertexArrays(1, &c.vao)
		c.vao = 0
	}
}

// Window returns the window the context draws to.
func (c *Context) Window() *Window { return c.window }

// Err returns the first pending GL error code, or gl.NO_ERROR.
func (c *Context) Err() uint32 {
	if e := c.err; e != gl.NO_ERROR {
		c.err = gl.NO_ERROR
		return e
	}
	return gl.GetError()
}

func (c *Context) setErr(code uint32) {
	if c.err == gl.NO_ERROR {
		c.err = code
	}
}

// CreateShader implements glkit.Host.
func (c *Context) CreateShader(stage gputypes.ShaderStage) glkit.Shader {
	switch stage {
	case gputypes.ShaderStageVertex:
		return glkit.Shader(gl.CreateShader(gl.VERTEX_SHADER))
	case gputypes.ShaderStageFragment:
		return glkit.Shader(gl.CreateShader(gl.FRAGMENT_SHADER))
	default:
		c.setErr(gl.INVALID_ENUM)
		return 0
	}
}

// ShaderSource implements glkit.Host.
func (c *Context) ShaderSource(s glkit.Shader, source string) {
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(uint32(s), 1, csources, nil)
	free()
}

// CompileShader implements glkit.Host.
func (c *Context) CompileShader(s glkit.Shader) {
	gl.CompileShader(uint32(s))
}

// ShaderCompiled implements glkit.Host.
func (c *Context) ShaderCompiled(s glkit.Shader) bool {
	var status int32
	gl.GetShaderiv(uint32(s), gl.COMPILE_STATUS, &status)
	return status == gl.TRUE
}

// ShaderInfoLog implements glkit.Host.
func (c *Context) ShaderInfoLog(s glkit.Shader) string {
	var logLength int32
	gl.GetShaderiv(uint32(s), gl.INFO_LOG_LENGTH, &logLength)
	if logLength <= 0 {
		return ""
	}
	log := make([]byte, logLength)
	gl.GetShaderInfoLog(uint32(s), logLength, nil, &log[0])
	return strings.TrimRight(string(log), "\x00")
}

// DeleteShader implements glkit.Host.
func (c *Context) DeleteShader(s glkit.Shader) {
	gl.DeleteShader(uint32(s))
}

// CreateProgram implements glkit.Host.
func (c *Context) CreateProgram() glkit.Program {
	return glkit.Program(gl.CreateProgram())
}

// AttachShader implements glkit.Host.
func (c *Context) AttachShader(p glkit.Program, s glkit.Shader) {
	gl.AttachShader(uint32(p), uint32(s))
}

// LinkProgram implements glkit.Host.
func (c *Context) LinkProgram(p glkit.Program) {
	gl.LinkProgram(uint32(p))
}

// ProgramLinked implements glkit.Host.
func (c *Context) ProgramLinked(p glkit.Program) bool {
	var status int32
	gl.GetProgramiv(uint32(p), gl.LINK_STATUS, &status)
	return status == gl.TRUE
}

// ProgramInfoLog implements glkit.Host.
func (c *Context) ProgramInfoLog(p glkit.Program) string {
	var logLength int32
	gl.GetProgramiv(uint32(p), gl.INFO_LOG_LENGTH, &logLength)
	if logLength <= 0 {
		return ""
	}
	log := make([]byte, logLength)
	gl.GetProgramInfoLog(uint32(p), logLength, nil, &log[0])
	return strings.TrimRight(string(log), "\x00")
}

// UseProgram implements glkit.Host.
func (c *Context) UseProgram(p glkit.Program) {
	gl.UseProgram(uint32(p))
}

// DeleteProgram implements glkit.Host.
func (c *Context) DeleteProgram(p glkit.Program) {
	gl.DeleteProgram(uint32(p))
}

// CreateBuffer implements glkit.Host.
func (c *Context) CreateBuffer() glkit.BufferID {
	var b uint32
	gl.GenBuffers(1, &b)
	return glkit.BufferID(b)
}

// BindBuffer implements glkit.Host.
func (c *Context) BindBuffer(_ glkit.BufferTarget, b glkit.BufferID) {
	gl.BindBuffer(gl.ARRAY_BUFFER, uint32(b))
}

// BufferData implements glkit.Host.
func (c *Context) BufferData(_ glkit.BufferTarget, data []float32, usage glkit.BufferUsage) {
	hint := uint32(gl.STATIC_DRAW)
	if usage == glkit.DynamicDraw {
		hint = gl.DYNAMIC_DRAW
	}
	if len(data) == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, hint)
		return
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), hint)
}

// DeleteBuffer implements glkit.Host.
func (c *Context) DeleteBuffer(b glkit.BufferID) {
	id := uint32(b)
	gl.DeleteBuffers(1, &id)
}

// AttribLocation implements glkit.Host.
func (c *Context) AttribLocation(p glkit.Program, name string) int {
	return int(gl.GetAttribLocation(uint32(p), gl.Str(name+"\x00")))
}

// VertexAttribPointer implements glkit.Host.
func (c *Context) VertexAttribPointer(index int, format gputypes.VertexFormat, normalized bool, stride, offset int) {
	size := glkit.FormatComponents(format)
	if size == 0 {
		c.setErr(gl.INVALID_ENUM)
		return
	}
	gl.VertexAttribPointerWithOffset(uint32(index), int32(size), gl.FLOAT, normalized, int32(stride), uintptr(offset))
}

// EnableVertexAttribArray implements glkit.Host.
func (c *Context) EnableVertexAttribArray(index int) {
	gl.EnableVertexAttribArray(uint32(index))
}

// UniformLocation implements glkit.Host. A location is found iff it is
// not negative.
func (c *Context) UniformLocation(p glkit.Program, name string) (glkit.UniformLocation, bool) {
	loc := gl.GetUniformLocation(uint32(p), gl.Str(name+"\x00"))
	return glkit.UniformLocation(loc), loc >= 0
}

// Uniform1f implements glkit.Host.
func (c *Context) Uniform1f(loc glkit.UniformLocation, v float32) {
	gl.Uniform1f(int32(loc), v)
}

// Uniform1i implements glkit.Host.
func (c *Context) Uniform1i(loc glkit.UniformLocation, v int32) {
	gl.Uniform1i(int32(loc), v)
}

// Uniform3fv implements glkit.Host. A slice whose length is not a positive
// multiple of 3 is an INVALID_VALUE, as in WebGL.
func (c *Context) Uniform3fv(loc glkit.UniformLocation, v []float32) {
	if len(v) == 0 || len(v)%3 != 0 {
		c.setErr(gl.INVALID_VALUE)
		return
	}
	gl.Uniform3fv(int32(loc), int32(len(v)/3), &v[0])
}

// UniformMatrix4fv implements glkit.Host. A slice whose length is not a
// positive multiple of 16 is an INVALID_VALUE.
func (c *Context) UniformMatrix4fv(loc glkit.UniformLocation, transpose bool, v []float32) {
	if len(v) == 0 || len(v)%16 != 0 {
		c.setErr(gl.INVALID_VALUE)
		return
	}
	gl.UniformMatrix4fv(int32(loc), int32(len(v)/16), transpose, &v[0])
}

// SetSurfaceSize implements glkit.Host by resizing the window so that its
// framebuffer is width x height pixels. The window size is in screen
// coordinates, which differ from pixels on scaled displays.
func (c *Context) SetSurfaceSize(width, height int) {
	win := c.window.win
	fbW, fbH := win.GetFramebufferSize()
	winW, winH := win.GetSize()
	win.SetSize(screenSize(width, height, fbW, fbH, winW, winH))
}

// Viewport implements glkit.Host.
func (c *Context) Viewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

// GetUniform implements glkit.UniformReader. The number of components is
// taken from the active uniform declaration.
func (c *Context) GetUniform(p glkit.Program, loc glkit.UniformLocation) []float32 {
	n := c.uniformComponents(uint32(p), int32(loc))
	if n == 0 {
		return nil
	}
	out := make([]float32, n)
	gl.GetUniformfv(uint32(p), int32(loc), &out[0])
	return out
}

func (c *Context) uniformComponents(p uint32, loc int32) int {
	var count int32
	gl.GetProgramiv(p, gl.ACTIVE_UNIFORMS, &count)
	var maxLen int32
	gl.GetProgramiv(p, gl.ACTIVE_UNIFORM_MAX_LENGTH, &maxLen)
	if maxLen <= 0 {
		return 0
	}
	name := make([]uint8, maxLen)
	for i := uint32(0); i < uint32(count); i++ {
		var length, size int32
		var xtype uint32
		gl.GetActiveUniform(p, i, maxLen, &length, &size, &xtype, &name[0])
		if gl.GetUniformLocation(p, &name[0]) != loc {
			continue
		}
		return components(xtype)
	}
	return 0
}

func components(xtype uint32) int {
	switch xtype {
	case gl.FLOAT, gl.INT, gl.BOOL, gl.UNSIGNED_INT:
		return 1
	case gl.FLOAT_VEC2:
		return 2
	case gl.FLOAT_VEC3:
		return 3
	case gl.FLOAT_VEC4, gl.FLOAT_MAT2:
		return 4
	case gl.FLOAT_MAT3:
		return 9
	case gl.FLOAT_MAT4:
		return 16
	default:
		return 0
	}
}

// SurfaceSize implements glkit.SurfaceReader. It reports the framebuffer
// size in pixels.
func (c *Context) SurfaceSize() (width, height int) {
	return c.window.win.GetFramebufferSize()
}

// CurrentViewport implements glkit.SurfaceReader.
func (c *Context) CurrentViewport() glkit.Rect {
	var vp [4]int32
	gl.GetIntegerv(gl.VIEWPORT, &vp[0])
	return glkit.Rect{X: int(vp[0]), Y: int(vp[1]), Width: int(vp[2]), Height: int(vp[3])}
}

var (
	_ glkit.Host          = (*Context)(nil)
	_ glkit.UniformReader = (*Context)(nil)
	_ glkit.SurfaceReader = (*Context)(nil)
)
