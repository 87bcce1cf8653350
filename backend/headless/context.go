// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package headless

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gogpu/glkit"
	"github.com/gogpu/glkit/internal/shaderinfo"
	"github.com/gogpu/gputypes"
)

// MaxVertexAttribs is the number of vertex attribute slots of a context.
const MaxVertexAttribs = 16

// ErrorCode is a GL error flag.
type ErrorCode uint32

// GL error codes.
const (
	NoError          ErrorCode = 0
	InvalidEnum      ErrorCode = 0x0500
	InvalidValue     ErrorCode = 0x0501
	InvalidOperation ErrorCode = 0x0502
)

func (e ErrorCode) String() string {
	switch e {
	case NoError:
		return "NO_ERROR"
	case InvalidEnum:
		return "INVALID_ENUM"
	case InvalidValue:
		return "INVALID_VALUE"
	case InvalidOperation:
		return "INVALID_OPERATION"
	default:
		return fmt.Sprintf("ErrorCode(0x%04x)", uint32(e))
	}
}

// AttribState is the recorded state of one vertex attribute slot.
type AttribState struct {
	Buffer     glkit.BufferID
	Format     gputypes.VertexFormat
	Normalized bool
	Stride     int
	Offset     int
	Enabled    bool
}

// Stats counts live objects and uploads of a context.
type Stats struct {
	Shaders       int
	Programs      int
	Buffers       int
	BufferUploads int
	UniformWrites int
}

type shader struct {
	stage    gputypes.ShaderStage
	source   string
	compiled bool
	log      string
	info     *shaderinfo.Stage
	deleted  bool
	attached int
}

type uniformSlot struct {
	name  string
	shape shaderinfo.Shape
	value []float32
}

type program struct {
	shaders  []glkit.Shader
	linked   bool
	log      string
	attribs  map[string]int
	uniforms []uniformSlot
	index    map[string]glkit.UniformLocation
	stages   [2]*shaderinfo.Stage
}

// Context is a headless WebGL-style rendering context. Shaders are WGSL
// stages compiled and reflected with naga; the context keeps the object
// and binding state a WebGL context would and validates calls against it,
// recording GL errors instead of panicking.
//
// Context is safe for concurrent use.
type Context struct {
	mu     sync.Mutex
	canvas *Canvas
	lost   bool
	nextID uint32
	err    ErrorCode

	shaders  map[glkit.Shader]*shader
	programs map[glkit.Program]*program
	buffers  map[glkit.BufferID][]float32
	usage    map[glkit.BufferID]glkit.BufferUsage

	arrayBuffer glkit.BufferID
	current     glkit.Program
	attribs     [MaxVertexAttribs]AttribState
	viewport    glkit.Rect

	uploads       int
	uniformWrites int
}

// newContext is called with c.mu held.
func newContext(c *Canvas) *Context {
	w, h := c.width, c.height
	return &Context{
		canvas:   c,
		shaders:  make(map[glkit.Shader]*shader),
		programs: make(map[glkit.Program]*program),
		buffers:  make(map[glkit.BufferID][]float32),
		usage:    make(map[glkit.BufferID]glkit.BufferUsage),
		viewport: glkit.Rect{Width: w, Height: h},
	}
}

// Canvas returns the canvas the context draws to.
func (c *Context) Canvas() *Canvas { return c.canvas }

// Lose simulates context loss: every later create call returns the zero
// handle.
func (c *Context) Lose() {
	c.mu.Lock()
	c.lost = true
	c.mu.Unlock()
}

// Err returns the first error recorded since the last call and clears it.
func (c *Context) Err() ErrorCode {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.err
	c.err = NoError
	return e
}

// setErr records e unless an earlier error is pending. Must hold c.mu.
func (c *Context) setErr(e ErrorCode, op string) {
	glkit.Logger().Debug("headless: gl error", "op", op, "error", e.String())
	if c.err == NoError {
		c.err = e
	}
}

func (c *Context) alloc() uint32 {
	c.nextID++
	return c.nextID
}

// CreateShader implements glkit.Host.
func (c *Context) CreateShader(stage gputypes.ShaderStage) glkit.Shader {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lost {
		return 0
	}
	if stage != gputypes.ShaderStageVertex && stage != gputypes.ShaderStageFragment {
		c.setErr(InvalidEnum, "CreateShader")
		return 0
	}
	id := glkit.Shader(c.alloc())
	c.shaders[id] = &shader{stage: stage}
	return id
}

// ShaderSource implements glkit.Host.
func (c *Context) ShaderSource(s glkit.Shader, source string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	sh, ok := c.shaders[s]
	if !ok {
		c.setErr(InvalidValue, "ShaderSource")
		return
	}
	sh.source = source
}

// CompileShader implements glkit.Host.
func (c *Context) CompileShader(s glkit.Shader) {
	c.mu.Lock()
	defer c.mu.Unlock()
	sh, ok := c.shaders[s]
	if !ok {
		c.setErr(InvalidValue, "CompileShader")
		return
	}
	info, err := shaderinfo.Compile(sh.source, sh.stage)
	if err != nil {
		sh.compiled = false
		sh.info = nil
		sh.log = err.Error()
		return
	}
	sh.compiled = true
	sh.info = info
	sh.log = ""
}

// ShaderCompiled implements glkit.Host.
func (c *Context) ShaderCompiled(s glkit.Shader) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	sh, ok := c.shaders[s]
	return ok && sh.compiled
}

// ShaderInfoLog implements glkit.Host.
func (c *Context) ShaderInfoLog(s glkit.Shader) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if sh, ok := c.shaders[s]; ok {
		return sh.log
	}
	return ""
}

// DeleteShader implements glkit.Host. A shader attached to a program stays
// alive until it is no longer attached.
func (c *Context) DeleteShader(s glkit.Shader) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s == 0 {
		return
	}
	sh, ok := c.shaders[s]
	if !ok {
		return
	}
	sh.deleted = true
	if sh.attached == 0 {
		delete(c.shaders, s)
	}
}

// CreateProgram implements glkit.Host.
func (c *Context) CreateProgram() glkit.Program {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lost {
		return 0
	}
	id := glkit.Program(c.alloc())
	c.programs[id] = &program{}
	return id
}

// AttachShader implements glkit.Host. Attaching a second shader of the same
// stage is an INVALID_OPERATION.
func (c *Context) AttachShader(p glkit.Program, s glkit.Shader) {
	c.mu.Lock()
	defer c.mu.Unlock()
	prog, pok := c.programs[p]
	sh, sok := c.shaders[s]
	if !pok || !sok {
		c.setErr(InvalidValue, "AttachShader")
		return
	}
	for _, id := range prog.shaders {
		if id == s || c.shaders[id].stage == sh.stage {
			c.setErr(InvalidOperation, "AttachShader")
			return
		}
	}
	prog.shaders = append(prog.shaders, s)
	sh.attached++
}

// LinkProgram implements glkit.Host.
//
// Linking requires one compiled vertex and one compiled fragment shader.
// Every fragment input must be written by a vertex output at the same
// location with the same component count, and a uniform declared by both
// stages must have the same type in each. Uniform locations are assigned
// densely from 0 in vertex-then-fragment declaration order, one per element
// of a fixed-size array.
func (c *Context) LinkProgram(p glkit.Program) {
	c.mu.Lock()
	defer c.mu.Unlock()
	prog, ok := c.programs[p]
	if !ok {
		c.setErr(InvalidValue, "LinkProgram")
		return
	}

	prog.linked = false
	prog.attribs = nil
	prog.uniforms = nil
	prog.index = nil
	prog.stages = [2]*shaderinfo.Stage{}

	var vs, fs *shaderinfo.Stage
	for _, id := range prog.shaders {
		sh := c.shaders[id]
		if !sh.compiled {
			continue
		}
		switch sh.stage {
		case gputypes.ShaderStageVertex:
			vs = sh.info
		case gputypes.ShaderStageFragment:
			fs = sh.info
		}
	}
	if vs == nil || fs == nil {
		prog.log = "program requires a compiled vertex shader and a compiled fragment shader"
		return
	}

	if msg := linkVaryings(vs, fs); msg != "" {
		prog.log = msg
		return
	}
	uniforms, msg := linkUniforms(vs, fs)
	if msg != "" {
		prog.log = msg
		return
	}

	prog.attribs = make(map[string]int, len(vs.Inputs))
	for _, in := range vs.Inputs {
		prog.attribs[in.Name] = in.Location
	}
	prog.uniforms = uniforms
	prog.stages = [2]*shaderinfo.Stage{vs, fs}
	prog.index = make(map[string]glkit.UniformLocation, len(uniforms))
	for i, u := range uniforms {
		prog.index[u.name] = glkit.UniformLocation(i)
	}
	// As in GL, an array uniform is also found by its bare name.
	for i, u := range uniforms {
		if base, ok := strings.CutSuffix(u.name, "[0]"); ok {
			if _, taken := prog.index[base]; !taken {
				prog.index[base] = glkit.UniformLocation(i)
			}
		}
	}
	prog.linked = true
	prog.log = ""
}

func linkVaryings(vs, fs *shaderinfo.Stage) string {
	var problems []string
	for _, in := range fs.Inputs {
		var found bool
		for _, out := range vs.Outputs {
			if out.Location != in.Location {
				continue
			}
			found = true
			if out.Shape.Components() != in.Shape.Components() || out.Shape.Kind != in.Shape.Kind {
				problems = append(problems, fmt.Sprintf(
					"varying at location %d: vertex writes %s, fragment reads %s",
					in.Location, out.Shape, in.Shape))
			}
			break
		}
		if !found {
			problems = append(problems, fmt.Sprintf(
				"fragment input %q at location %d is not written by the vertex shader",
				in.Name, in.Location))
		}
	}
	return strings.Join(problems, "\n")
}

func linkUniforms(vs, fs *shaderinfo.Stage) ([]uniformSlot, string) {
	slots := make([]uniformSlot, 0, len(vs.Uniforms)+len(fs.Uniforms))
	seen := make(map[string]shaderinfo.Shape)
	var problems []string
	for _, stage := range []*shaderinfo.Stage{vs, fs} {
		for _, u := range stage.Uniforms {
			if prev, ok := seen[u.Name]; ok {
				if prev != u.Shape {
					problems = append(problems, fmt.Sprintf(
						"uniform %q declared as %s and %s", u.Name, prev, u.Shape))
				}
				continue
			}
			seen[u.Name] = u.Shape
			slots = append(slots, uniformSlot{
				name:  u.Name,
				shape: u.Shape,
				value: make([]float32, u.Shape.Components()),
			})
		}
	}
	if len(problems) > 0 {
		return nil, strings.Join(problems, "\n")
	}
	return slots, ""
}

// ProgramLinked implements glkit.Host.
func (c *Context) ProgramLinked(p glkit.Program) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	prog, ok := c.programs[p]
	return ok && prog.linked
}

// ProgramInfoLog implements glkit.Host.
func (c *Context) ProgramInfoLog(p glkit.Program) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if prog, ok := c.programs[p]; ok {
		return prog.log
	}
	return ""
}

// UseProgram implements glkit.Host. Using an unlinked program is an
// INVALID_OPERATION; 0 clears the current program.
func (c *Context) UseProgram(p glkit.Program) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if p == 0 {
		c.current = 0
		return
	}
	prog, ok := c.programs[p]
	if !ok {
		c.setErr(InvalidValue, "UseProgram")
		return
	}
	if !prog.linked {
		c.setErr(InvalidOperation, "UseProgram")
		return
	}
	c.current = p
}

// DeleteProgram implements glkit.Host. Attached shaders are detached and
// freed if they were flagged for deletion.
func (c *Context) DeleteProgram(p glkit.Program) {
	c.mu.Lock()
	defer c.mu.Unlock()
	prog, ok := c.programs[p]
	if !ok {
		return
	}
	for _, id := range prog.shaders {
		sh := c.shaders[id]
		sh.attached--
		if sh.deleted && sh.attached == 0 {
			delete(c.shaders, id)
		}
	}
	delete(c.programs, p)
	if c.current == p {
		c.current = 0
	}
}

// CreateBuffer implements glkit.Host.
func (c *Context) CreateBuffer() glkit.BufferID {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lost {
		return 0
	}
	id := glkit.BufferID(c.alloc())
	c.buffers[id] = nil
	return id
}

// BindBuffer implements glkit.Host.
func (c *Context) BindBuffer(target glkit.BufferTarget, b glkit.BufferID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if target != glkit.ArrayBuffer {
		c.setErr(InvalidEnum, "BindBuffer")
		return
	}
	if _, ok := c.buffers[b]; b != 0 && !ok {
		c.setErr(InvalidOperation, "BindBuffer")
		return
	}
	c.arrayBuffer = b
}

// BufferData implements glkit.Host. The data is copied.
func (c *Context) BufferData(target glkit.BufferTarget, data []float32, usage glkit.BufferUsage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if target != glkit.ArrayBuffer || (usage != glkit.StaticDraw && usage != glkit.DynamicDraw) {
		c.setErr(InvalidEnum, "BufferData")
		return
	}
	if c.arrayBuffer == 0 {
		c.setErr(InvalidOperation, "BufferData")
		return
	}
	c.buffers[c.arrayBuffer] = append([]float32(nil), data...)
	c.usage[c.arrayBuffer] = usage
	c.uploads++
}

// DeleteBuffer implements glkit.Host.
func (c *Context) DeleteBuffer(b glkit.BufferID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.buffers[b]; !ok {
		return
	}
	delete(c.buffers, b)
	delete(c.usage, b)
	if c.arrayBuffer == b {
		c.arrayBuffer = 0
	}
	for i := range c.attribs {
		if c.attribs[i].Buffer == b {
			c.attribs[i].Buffer = 0
		}
	}
}

// AttribLocation implements glkit.Host. Unlinked programs report -1.
func (c *Context) AttribLocation(p glkit.Program, name string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	prog, ok := c.programs[p]
	if !ok {
		c.setErr(InvalidValue, "AttribLocation")
		return -1
	}
	if !prog.linked {
		c.setErr(InvalidOperation, "AttribLocation")
		return -1
	}
	if loc, ok := prog.attribs[name]; ok {
		return loc
	}
	return -1
}

// VertexAttribPointer implements glkit.Host.
func (c *Context) VertexAttribPointer(index int, format gputypes.VertexFormat, normalized bool, stride, offset int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if index < 0 || index >= MaxVertexAttribs || stride < 0 || offset < 0 {
		c.setErr(InvalidValue, "VertexAttribPointer")
		return
	}
	if glkit.FormatComponents(format) == 0 {
		c.setErr(InvalidEnum, "VertexAttribPointer")
		return
	}
	if c.arrayBuffer == 0 {
		c.setErr(InvalidOperation, "VertexAttribPointer")
		return
	}
	a := &c.attribs[index]
	a.Buffer = c.arrayBuffer
	a.Format = format
	a.Normalized = normalized
	a.Stride = stride
	a.Offset = offset
}

// EnableVertexAttribArray implements glkit.Host.
func (c *Context) EnableVertexAttribArray(index int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if index < 0 || index >= MaxVertexAttribs {
		c.setErr(InvalidValue, "EnableVertexAttribArray")
		return
	}
	c.attribs[index].Enabled = true
}

// UniformLocation implements glkit.Host.
func (c *Context) UniformLocation(p glkit.Program, name string) (glkit.UniformLocation, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	prog, ok := c.programs[p]
	if !ok || !prog.linked {
		c.setErr(InvalidOperation, "UniformLocation")
		return 0, false
	}
	loc, ok := prog.index[name]
	return loc, ok
}

// slot returns the uniform slot loc of the current program. Must hold c.mu.
func (c *Context) slot(loc glkit.UniformLocation, op string) *uniformSlot {
	prog, ok := c.programs[c.current]
	if c.current == 0 || !ok {
		c.setErr(InvalidOperation, op)
		return nil
	}
	if loc < 0 || int(loc) >= len(prog.uniforms) {
		c.setErr(InvalidOperation, op)
		return nil
	}
	return &prog.uniforms[loc]
}

// Uniform1f implements glkit.Host. The uniform must be a float or bool
// scalar.
func (c *Context) Uniform1f(loc glkit.UniformLocation, v float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.slot(loc, "Uniform1f")
	if s == nil {
		return
	}
	if !s.shape.IsScalar() || (s.shape.Kind != shaderinfo.KindFloat && s.shape.Kind != shaderinfo.KindBool) {
		c.setErr(InvalidOperation, "Uniform1f")
		return
	}
	s.value[0] = v
	c.uniformWrites++
}

// Uniform1i implements glkit.Host. The uniform must be an integer or bool
// scalar.
func (c *Context) Uniform1i(loc glkit.UniformLocation, v int32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.slot(loc, "Uniform1i")
	if s == nil {
		return
	}
	if !s.shape.IsScalar() || s.shape.Kind == shaderinfo.KindFloat {
		c.setErr(InvalidOperation, "Uniform1i")
		return
	}
	s.value[0] = float32(v)
	c.uniformWrites++
}

// Uniform3fv implements glkit.Host. v must hold exactly 3 floats.
func (c *Context) Uniform3fv(loc glkit.UniformLocation, v []float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.slot(loc, "Uniform3fv")
	if s == nil {
		return
	}
	if !s.shape.IsVector() || s.shape.Rows != 3 || s.shape.Kind != shaderinfo.KindFloat {
		c.setErr(InvalidOperation, "Uniform3fv")
		return
	}
	if len(v) != 3 {
		c.setErr(InvalidValue, "Uniform3fv")
		return
	}
	copy(s.value, v)
	c.uniformWrites++
}

// UniformMatrix4fv implements glkit.Host. v must hold exactly 16 floats in
// column-major order; transpose must be false.
func (c *Context) UniformMatrix4fv(loc glkit.UniformLocation, transpose bool, v []float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.slot(loc, "UniformMatrix4fv")
	if s == nil {
		return
	}
	if s.shape.Columns != 4 || s.shape.Rows != 4 || s.shape.Kind != shaderinfo.KindFloat {
		c.setErr(InvalidOperation, "UniformMatrix4fv")
		return
	}
	if transpose || len(v) != 16 {
		c.setErr(InvalidValue, "UniformMatrix4fv")
		return
	}
	copy(s.value, v)
	c.uniformWrites++
}

// SetSurfaceSize implements glkit.Host by resizing the canvas.
func (c *Context) SetSurfaceSize(width, height int) {
	c.canvas.setPixelSize(width, height)
}

// Viewport implements glkit.Host. Negative sizes are an INVALID_VALUE.
func (c *Context) Viewport(x, y, width, height int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if width < 0 || height < 0 {
		c.setErr(InvalidValue, "Viewport")
		return
	}
	c.viewport = glkit.Rect{X: x, Y: y, Width: width, Height: height}
}

// GetUniform implements glkit.UniformReader. It returns nil for an unknown
// program or location.
func (c *Context) GetUniform(p glkit.Program, loc glkit.UniformLocation) []float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	prog, ok := c.programs[p]
	if !ok || !prog.linked || loc < 0 || int(loc) >= len(prog.uniforms) {
		c.setErr(InvalidOperation, "GetUniform")
		return nil
	}
	return append([]float32(nil), prog.uniforms[loc].value...)
}

// SurfaceSize implements glkit.SurfaceReader.
func (c *Context) SurfaceSize() (width, height int) {
	return c.canvas.PixelSize()
}

// CurrentViewport implements glkit.SurfaceReader.
func (c *Context) CurrentViewport() glkit.Rect {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewport
}

// CurrentProgram returns the program installed by UseProgram.
func (c *Context) CurrentProgram() glkit.Program {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// VertexAttrib returns the recorded state of attribute slot index.
func (c *Context) VertexAttrib(index int) (AttribState, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if index < 0 || index >= MaxVertexAttribs {
		return AttribState{}, false
	}
	return c.attribs[index], true
}

// BufferContents returns a copy of the data stored in b and its usage.
func (c *Context) BufferContents(b glkit.BufferID) ([]float32, glkit.BufferUsage, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.buffers[b]
	if !ok {
		return nil, 0, false
	}
	return append([]float32(nil), data...), c.usage[b], true
}

// ActiveUniforms returns the uniform names of p in location order.
func (c *Context) ActiveUniforms(p glkit.Program) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	prog, ok := c.programs[p]
	if !ok {
		return nil
	}
	names := make([]string, len(prog.uniforms))
	for i, u := range prog.uniforms {
		names[i] = u.name
	}
	return names
}

// ActiveAttributes returns the attribute names of p mapped to their
// locations.
func (c *Context) ActiveAttributes(p glkit.Program) map[string]int {
	c.mu.Lock()
	defer c.mu.Unlock()
	prog, ok := c.programs[p]
	if !ok {
		return nil
	}
	out := make(map[string]int, len(prog.attribs))
	for k, v := range prog.attribs {
		out[k] = v
	}
	return out
}

// Stages returns the reflected vertex and fragment stages p was last
// linked from. ok is false if p is not linked.
func (c *Context) Stages(p glkit.Program) (vertex, fragment *shaderinfo.Stage, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	prog, found := c.programs[p]
	if !found || !prog.linked {
		return nil, nil, false
	}
	return prog.stages[0], prog.stages[1], true
}

// Stats returns object and upload counters.
func (c *Context) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Shaders:       len(c.shaders),
		Programs:      len(c.programs),
		Buffers:       len(c.buffers),
		BufferUploads: c.uploads,
		UniformWrites: c.uniformWrites,
	}
}

var (
	_ glkit.Host          = (*Context)(nil)
	_ glkit.UniformReader = (*Context)(nil)
	_ glkit.SurfaceReader = (*Context)(nil)
)
