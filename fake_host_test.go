package glkit

import (
	"strings"

	"github.com/gogpu/gputypes"
)

// fakeHost records every Host call and lets tests script compile, link and
// allocation results.
type fakeHost struct {
	calls  []string
	nextID uint32

	failCompile map[gputypes.ShaderStage]string // stage -> info log
	failLink    string
	failCreate  map[string]bool // "shader", "program", "buffer"

	shaderStage map[Shader]gputypes.ShaderStage
	compiled    map[Shader]bool
	linked      map[Program]bool
	attached    map[Program][]Shader

	attribs  map[string]int
	uniforms map[string]UniformLocation

	deletedShaders  []Shader
	deletedPrograms []Program
	deletedBuffers  []BufferID

	bound     BufferID
	data      map[BufferID][]float32
	usage     map[BufferID]BufferUsage
	pointers  map[int]gputypes.VertexFormat
	enabled   map[int]bool
	current   Program
	values    map[UniformLocation][]float32
	transpose []bool

	surfaceW, surfaceH int
	viewport           Rect
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		failCompile: make(map[gputypes.ShaderStage]string),
		failCreate:  make(map[string]bool),
		shaderStage: make(map[Shader]gputypes.ShaderStage),
		compiled:    make(map[Shader]bool),
		linked:      make(map[Program]bool),
		attached:    make(map[Program][]Shader),
		attribs:     make(map[string]int),
		uniforms:    make(map[string]UniformLocation),
		data:        make(map[BufferID][]float32),
		usage:       make(map[BufferID]BufferUsage),
		pointers:    make(map[int]gputypes.VertexFormat),
		enabled:     make(map[int]bool),
		values:      make(map[UniformLocation][]float32),
	}
}

func (f *fakeHost) record(op string) { f.calls = append(f.calls, op) }

// count returns how many recorded calls start with prefix.
func (f *fakeHost) count(prefix string) int {
	n := 0
	for _, c := range f.calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

func (f *fakeHost) id() uint32 {
	f.nextID++
	return f.nextID
}

func (f *fakeHost) CreateShader(stage gputypes.ShaderStage) Shader {
	f.record("CreateShader")
	if f.failCreate["shader"] {
		return 0
	}
	s := Shader(f.id())
	f.shaderStage[s] = stage
	return s
}

func (f *fakeHost) ShaderSource(Shader, string) { f.record("ShaderSource") }

func (f *fakeHost) CompileShader(s Shader) {
	f.record("CompileShader")
	_, fail := f.failCompile[f.shaderStage[s]]
	f.compiled[s] = !fail
}

func (f *fakeHost) ShaderCompiled(s Shader) bool {
	f.record("ShaderCompiled")
	return f.compiled[s]
}

func (f *fakeHost) ShaderInfoLog(s Shader) string {
	f.record("ShaderInfoLog")
	return f.failCompile[f.shaderStage[s]]
}

func (f *fakeHost) DeleteShader(s Shader) {
	f.record("DeleteShader")
	f.deletedShaders = append(f.deletedShaders, s)
}

func (f *fakeHost) CreateProgram() Program {
	f.record("CreateProgram")
	if f.failCreate["program"] {
		return 0
	}
	return Program(f.id())
}

func (f *fakeHost) AttachShader(p Program, s Shader) {
	f.record("AttachShader")
	f.attached[p] = append(f.attached[p], s)
}

func (f *fakeHost) LinkProgram(p Program) {
	f.record("LinkProgram")
	f.linked[p] = f.failLink == ""
}

func (f *fakeHost) ProgramLinked(p Program) bool {
	f.record("ProgramLinked")
	return f.linked[p]
}

func (f *fakeHost) ProgramInfoLog(Program) string {
	f.record("ProgramInfoLog")
	return f.failLink
}

func (f *fakeHost) UseProgram(p Program) {
	f.record("UseProgram")
	f.current = p
}

func (f *fakeHost) DeleteProgram(p Program) {
	f.record("DeleteProgram")
	f.deletedPrograms = append(f.deletedPrograms, p)
}

func (f *fakeHost) CreateBuffer() BufferID {
	f.record("CreateBuffer")
	if f.failCreate["buffer"] {
		return 0
	}
	return BufferID(f.id())
}

func (f *fakeHost) BindBuffer(_ BufferTarget, b BufferID) {
	f.record("BindBuffer")
	f.bound = b
}

func (f *fakeHost) BufferData(_ BufferTarget, data []float32, usage BufferUsage) {
	f.record("BufferData")
	f.data[f.bound] = append([]float32(nil), data...)
	f.usage[f.bound] = usage
}

func (f *fakeHost) DeleteBuffer(b BufferID) {
	f.record("DeleteBuffer")
	f.deletedBuffers = append(f.deletedBuffers, b)
}

func (f *fakeHost) AttribLocation(_ Program, name string) int {
	f.record("AttribLocation")
	if loc, ok := f.attribs[name]; ok {
		return loc
	}
	return -1
}

func (f *fakeHost) VertexAttribPointer(index int, format gputypes.VertexFormat, _ bool, _, _ int) {
	f.record("VertexAttribPointer")
	f.pointers[index] = format
}

func (f *fakeHost) EnableVertexAttribArray(index int) {
	f.record("EnableVertexAttribArray")
	f.enabled[index] = true
}

func (f *fakeHost) UniformLocation(_ Program, name string) (UniformLocation, bool) {
	f.record("UniformLocation")
	loc, ok := f.uniforms[name]
	return loc, ok
}

func (f *fakeHost) Uniform1f(loc UniformLocation, v float32) {
	f.record("Uniform1f")
	f.values[loc] = []float32{v}
}

func (f *fakeHost) Uniform1i(loc UniformLocation, v int32) {
	f.record("Uniform1i")
	f.values[loc] = []float32{float32(v)}
}

func (f *fakeHost) Uniform3fv(loc UniformLocation, v []float32) {
	f.record("Uniform3fv")
	f.values[loc] = append([]float32(nil), v...)
}

func (f *fakeHost) UniformMatrix4fv(loc UniformLocation, transpose bool, v []float32) {
	f.record("UniformMatrix4fv")
	f.transpose = append(f.transpose, transpose)
	f.values[loc] = append([]float32(nil), v...)
}

func (f *fakeHost) SetSurfaceSize(width, height int) {
	f.record("SetSurfaceSize")
	f.surfaceW, f.surfaceH = width, height
}

func (f *fakeHost) Viewport(x, y, width, height int) {
	f.record("Viewport")
	f.viewport = Rect{X: x, Y: y, Width: width, Height: height}
}

// fakeElement is a document element backed by an optional host.
type fakeElement struct {
	tag   string
	types map[string]Host
}

func (e *fakeElement) TagName() string { return e.tag }

func (e *fakeElement) Context(contextType string) (Host, bool) {
	h, ok := e.types[contextType]
	return h, ok
}

type fakeDocument map[string]Element

func (d fakeDocument) QuerySelector(selector string) (Element, bool) {
	el, ok := d[selector]
	return el, ok
}

var _ Host = (*fakeHost)(nil)
