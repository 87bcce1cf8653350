// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build js && wasm

package webgl

import (
	"syscall/js"
	"unsafe"

	"github.com/gogpu/glkit"
	"github.com/gogpu/gputypes"
)

type glConsts struct {
	vertexShader   int
	fragmentShader int
	compileStatus  int
	linkStatus     int
	arrayBuffer    int
	staticDraw     int
	dynamicDraw    int
	floatType      int
	viewport       int
}

func constantsFor(gl js.Value) glConsts {
	return glConsts{
		vertexShader:   gl.Get("VERTEX_SHADER").Int(),
		fragmentShader: gl.Get("FRAGMENT_SHADER").Int(),
		compileStatus:  gl.Get("COMPILE_STATUS").Int(),
		linkStatus:     gl.Get("LINK_STATUS").Int(),
		arrayBuffer:    gl.Get("ARRAY_BUFFER").Int(),
		staticDraw:     gl.Get("STATIC_DRAW").Int(),
		dynamicDraw:    gl.Get("DYNAMIC_DRAW").Int(),
		floatType:      gl.Get("FLOAT").Int(),
		viewport:       gl.Get("VIEWPORT").Int(),
	}
}

// Context is a WebGL rendering context. WebGL object handles are kept in
// ID tables so they can cross the glkit.Host interface as integers.
//
// Context must be used from the goroutine that owns the JS event loop.
type Context struct {
	canvas js.Value
	gl     js.Value
	consts glConsts

	nextID   uint32
	shaders  map[glkit.Shader]js.Value
	programs map[glkit.Program]js.Value
	buffers  map[glkit.BufferID]js.Value

	locations *locationTable[js.Value]
}

func newContext(canvas, gl js.Value) *Context {
	return &Context{
		canvas:    canvas,
		gl:        gl,
		consts:    constantsFor(gl),
		shaders:   make(map[glkit.Shader]js.Value),
		programs:  make(map[glkit.Program]js.Value),
		buffers:   make(map[glkit.BufferID]js.Value),
		locations: newLocationTable[js.Value](),
	}
}

// GL returns the underlying WebGLRenderingContext.
func (c *Context) GL() js.Value { return c.gl }

func (c *Context) alloc() uint32 {
	c.nextID++
	return c.nextID
}

func (c *Context) shader(s glkit.Shader) js.Value {
	if v, ok := c.shaders[s]; ok {
		return v
	}
	return js.Null()
}

func (c *Context) program(p glkit.Program) js.Value {
	if v, ok := c.programs[p]; ok {
		return v
	}
	return js.Null()
}

func (c *Context) buffer(b glkit.BufferID) js.Value {
	if v, ok := c.buffers[b]; ok {
		return v
	}
	return js.Null()
}

func (c *Context) location(loc glkit.UniformLocation) js.Value {
	if v, ok := c.locations.get(loc); ok {
		return v
	}
	return js.Null()
}

// CreateShader implements glkit.Host.
func (c *Context) CreateShader(stage gputypes.ShaderStage) glkit.Shader {
	var kind int
	switch stage {
	case gputypes.ShaderStageVertex:
		kind = c.consts.vertexShader
	case gputypes.ShaderStageFragment:
		kind = c.consts.fragmentShader
	default:
		return 0
	}
	v := c.gl.Call("createShader", kind)
	if !v.Truthy() {
		return 0
	}
	id := glkit.Shader(c.alloc())
	c.shaders[id] = v
	return id
}

// ShaderSource implements glkit.Host.
func (c *Context) ShaderSource(s glkit.Shader, source string) {
	c.gl.Call("shaderSource", c.shader(s), source)
}

// CompileShader implements glkit.Host.
func (c *Context) CompileShader(s glkit.Shader) {
	c.gl.Call("compileShader", c.shader(s))
}

// ShaderCompiled implements glkit.Host.
func (c *Context) ShaderCompiled(s glkit.Shader) bool {
	return c.gl.Call("getShaderParameter", c.shader(s), c.consts.compileStatus).Truthy()
}

// ShaderInfoLog implements glkit.Host.
func (c *Context) ShaderInfoLog(s glkit.Shader) string {
	return jsString(c.gl.Call("getShaderInfoLog", c.shader(s)))
}

// DeleteShader implements glkit.Host.
func (c *Context) DeleteShader(s glkit.Shader) {
	if v, ok := c.shaders[s]; ok {
		c.gl.Call("deleteShader", v)
		delete(c.shaders, s)
	}
}

// CreateProgram implements glkit.Host.
func (c *Context) CreateProgram() glkit.Program {
	v := c.gl.Call("createProgram")
	if !v.Truthy() {
		return 0
	}
	id := glkit.Program(c.alloc())
	c.programs[id] = v
	return id
}

// AttachShader implements glkit.Host.
func (c *Context) AttachShader(p glkit.Program, s glkit.Shader) {
	c.gl.Call("attachShader", c.program(p), c.shader(s))
}

// LinkProgram implements glkit.Host. Cached uniform locations of p are
// invalidated.
func (c *Context) LinkProgram(p glkit.Program) {
	c.locations.forget(p)
	c.gl.Call("linkProgram", c.program(p))
}

// ProgramLinked implements glkit.Host.
func (c *Context) ProgramLinked(p glkit.Program) bool {
	return c.gl.Call("getProgramParameter", c.program(p), c.consts.linkStatus).Truthy()
}

// ProgramInfoLog implements glkit.Host.
func (c *Context) ProgramInfoLog(p glkit.Program) string {
	return jsString(c.gl.Call("getProgramInfoLog", c.program(p)))
}

// UseProgram implements glkit.Host.
func (c *Context) UseProgram(p glkit.Program) {
	c.gl.Call("useProgram", c.program(p))
}

// DeleteProgram implements glkit.Host.
func (c *Context) DeleteProgram(p glkit.Program) {
	v, ok := c.programs[p]
	if !ok {
		return
	}
	c.locations.forget(p)
	c.gl.Call("deleteProgram", v)
	delete(c.programs, p)
}

// CreateBuffer implements glkit.Host.
func (c *Context) CreateBuffer() glkit.BufferID {
	v := c.gl.Call("createBuffer")
	if !v.Truthy() {
		return 0
	}
	id := glkit.BufferID(c.alloc())
	c.buffers[id] = v
	return id
}

// BindBuffer implements glkit.Host.
func (c *Context) BindBuffer(_ glkit.BufferTarget, b glkit.BufferID) {
	c.gl.Call("bindBuffer", c.consts.arrayBuffer, c.buffer(b))
}

// BufferData implements glkit.Host.
func (c *Context) BufferData(_ glkit.BufferTarget, data []float32, usage glkit.BufferUsage) {
	hint := c.consts.staticDraw
	if usage == glkit.DynamicDraw {
		hint = c.consts.dynamicDraw
	}
	c.gl.Call("bufferData", c.consts.arrayBuffer, float32Array(data), hint)
}

// DeleteBuffer implements glkit.Host.
func (c *Context) DeleteBuffer(b glkit.BufferID) {
	if v, ok := c.buffers[b]; ok {
		c.gl.Call("deleteBuffer", v)
		delete(c.buffers, b)
	}
}

// AttribLocation implements glkit.Host.
func (c *Context) AttribLocation(p glkit.Program, name string) int {
	return c.gl.Call("getAttribLocation", c.program(p), name).Int()
}

// VertexAttribPointer implements glkit.Host.
func (c *Context) VertexAttribPointer(index int, format gputypes.VertexFormat, normalized bool, stride, offset int) {
	size := glkit.FormatComponents(format)
	c.gl.Call("vertexAttribPointer", index, size, c.consts.floatType, normalized, stride, offset)
}

// EnableVertexAttribArray implements glkit.Host.
func (c *Context) EnableVertexAttribArray(index int) {
	c.gl.Call("enableVertexAttribArray", index)
}

// UniformLocation implements glkit.Host. A location is found iff
// getUniformLocation returns a non-null WebGLUniformLocation.
func (c *Context) UniformLocation(p glkit.Program, name string) (glkit.UniformLocation, bool) {
	if loc, ok := c.locations.lookup(p, name); ok {
		return loc, true
	}
	v := c.gl.Call("getUniformLocation", c.program(p), name)
	if !v.Truthy() {
		return 0, false
	}
	return c.locations.add(p, name, v), true
}

// Uniform1f implements glkit.Host.
func (c *Context) Uniform1f(loc glkit.UniformLocation, v float32) {
	c.gl.Call("uniform1f", c.location(loc), v)
}

// Uniform1i implements glkit.Host.
func (c *Context) Uniform1i(loc glkit.UniformLocation, v int32) {
	c.gl.Call("uniform1i", c.location(loc), v)
}

// Uniform3fv implements glkit.Host.
func (c *Context) Uniform3fv(loc glkit.UniformLocation, v []float32) {
	c.gl.Call("uniform3fv", c.location(loc), float32Array(v))
}

// UniformMatrix4fv implements glkit.Host.
func (c *Context) UniformMatrix4fv(loc glkit.UniformLocation, transpose bool, v []float32) {
	c.gl.Call("uniformMatrix4fv", c.location(loc), transpose, float32Array(v))
}

// SetSurfaceSize implements glkit.Host by setting the canvas width and
// height attributes.
func (c *Context) SetSurfaceSize(width, height int) {
	c.canvas.Set("width", width)
	c.canvas.Set("height", height)
}

// Viewport implements glkit.Host.
func (c *Context) Viewport(x, y, width, height int) {
	c.gl.Call("viewport", x, y, width, height)
}

// GetUniform implements glkit.UniformReader.
func (c *Context) GetUniform(p glkit.Program, loc glkit.UniformLocation) []float32 {
	v := c.gl.Call("getUniform", c.program(p), c.location(loc))
	switch v.Type() {
	case js.TypeNumber:
		return []float32{float32(v.Float())}
	case js.TypeBoolean:
		if v.Bool() {
			return []float32{1}
		}
		return []float32{0}
	case js.TypeObject:
		if v.IsNull() {
			return nil
		}
		n := v.Length()
		out := make([]float32, n)
		for i := range out {
			out[i] = float32(v.Index(i).Float())
		}
		return out
	default:
		return nil
	}
}

// SurfaceSize implements glkit.SurfaceReader.
func (c *Context) SurfaceSize() (width, height int) {
	return c.canvas.Get("width").Int(), c.canvas.Get("height").Int()
}

// CurrentViewport implements glkit.SurfaceReader.
func (c *Context) CurrentViewport() glkit.Rect {
	v := c.gl.Call("getParameter", c.consts.viewport)
	if !v.Truthy() || v.Length() < 4 {
		return glkit.Rect{}
	}
	return glkit.Rect{
		X:      v.Index(0).Int(),
		Y:      v.Index(1).Int(),
		Width:  v.Index(2).Int(),
		Height: v.Index(3).Int(),
	}
}

func jsString(v js.Value) string {
	if v.Type() != js.TypeString {
		return ""
	}
	return v.String()
}

// float32Array copies data into a new Float32Array.
func float32Array(data []float32) js.Value {
	arr := js.Global().Get("Float32Array").New(len(data))
	if len(data) == 0 {
		return arr
	}
	view := js.Global().Get("Uint8Array").New(arr.Get("buffer"), arr.Get("byteOffset"), arr.Get("byteLength"))
	js.CopyBytesToJS(view, unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), len(data)*4))
	return arr
}

var (
	_ glkit.Host          = (*Context)(nil)
	_ glkit.UniformReader = (*Context)(nil)
	_ glkit.SurfaceReader = (*Context)(nil)
)
