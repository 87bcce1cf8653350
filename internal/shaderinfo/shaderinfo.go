// Package shaderinfo compiles WGSL shader stages with naga and reflects the
// parts of a stage that a WebGL-style program exposes: location-bound
// inputs and outputs of the entry point and active uniforms.
package shaderinfo

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/naga/glsl"
	"github.com/gogpu/naga/ir"
)

// Kind is the scalar kind of a reflected value.
type Kind uint8

const (
	KindFloat Kind = iota + 1
	KindSint
	KindUint
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindFloat:
		return "f32"
	case KindSint:
		return "i32"
	case KindUint:
		return "u32"
	case KindBool:
		return "bool"
	default:
		return "?"
	}
}

// Shape is a scalar, vector or matrix type. Scalars have Columns == 1 and
// Rows == 1; vectors have Columns == 1.
type Shape struct {
	Kind    Kind
	Columns int
	Rows    int
}

// Components returns the number of scalar components.
func (s Shape) Components() int { return s.Columns * s.Rows }

// IsScalar reports whether s is a single component.
func (s Shape) IsScalar() bool { return s.Columns == 1 && s.Rows == 1 }

// IsVector reports whether s is an n-component vector with n > 1.
func (s Shape) IsVector() bool { return s.Columns == 1 && s.Rows > 1 }

// IsMatrix reports whether s is a matrix.
func (s Shape) IsMatrix() bool { return s.Columns > 1 }

func (s Shape) String() string {
	switch {
	case s.IsScalar():
		return s.Kind.String()
	case s.IsVector():
		return fmt.Sprintf("vec%d<%s>", s.Rows, s.Kind)
	default:
		return fmt.Sprintf("mat%dx%d<%s>", s.Columns, s.Rows, s.Kind)
	}
}

// Varying is a location-bound entry point input or output.
type Varying struct {
	Name     string
	Location int
	Shape    Shape
}

// Uniform is an active uniform. Struct uniforms are flattened into
// "block.member" names and fixed-size arrays into one "name[i]" uniform
// per element. Runtime-sized arrays are not reflected.
type Uniform struct {
	Name  string
	Shape Shape
}

// Stage is one compiled shader stage.
type Stage struct {
	Stage      gputypes.ShaderStage
	EntryPoint string
	Inputs     []Varying
	Outputs    []Varying
	Uniforms   []Uniform

	module *ir.Module
}

// ErrNoEntryPoint is returned when a module has no entry point for the
// requested stage.
var ErrNoEntryPoint = errors.New("shaderinfo: no entry point for stage")

// Compile parses, lowers and validates WGSL source and reflects the first
// entry point of the given stage. Uniforms not reachable from any entry
// point are dropped.
//
// The returned error text is the compiler diagnostic.
func Compile(source string, stage gputypes.ShaderStage) (*Stage, error) {
	want, ok := irStage(stage)
	if !ok {
		return nil, fmt.Errorf("shaderinfo: unsupported stage %v", stage)
	}

	ast, err := naga.Parse(source)
	if err != nil {
		return nil, err
	}
	module, err := naga.LowerWithSource(ast, source)
	if err != nil {
		return nil, err
	}
	verrs, err := naga.Validate(module)
	if err != nil {
		return nil, err
	}
	if len(verrs) > 0 {
		msgs := make([]string, len(verrs))
		for i, ve := range verrs {
			msgs[i] = ve.Error()
		}
		return nil, errors.New(strings.Join(msgs, "\n"))
	}

	ir.CompactUnused(module)

	for i := range module.EntryPoints {
		ep := &module.EntryPoints[i]
		if ep.Stage != want {
			continue
		}
		s := &Stage{
			Stage:      stage,
			EntryPoint: ep.Name,
			module:     module,
		}
		for _, arg := range ep.Function.Arguments {
			s.Inputs = appendVaryings(s.Inputs, module, arg.Name, arg.Type, arg.Binding)
		}
		if res := ep.Function.Result; res != nil {
			s.Outputs = appendVaryings(s.Outputs, module, "", res.Type, res.Binding)
		}
		s.Uniforms = uniforms(module)
		return s, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNoEntryPoint, stageLabel(stage))
}

// GLSL translates the stage to GLSL ES 3.00 source.
func (s *Stage) GLSL() (string, error) {
	src, _, err := glsl.Compile(s.module, glsl.Options{
		LangVersion:        glsl.VersionES300,
		EntryPoint:         s.EntryPoint,
		ForceHighPrecision: true,
	})
	return src, err
}

// Input returns the entry point input called name.
func (s *Stage) Input(name string) (Varying, bool) {
	for _, v := range s.Inputs {
		if v.Name == name {
			return v, true
		}
	}
	return Varying{}, false
}

func irStage(stage gputypes.ShaderStage) (ir.ShaderStage, bool) {
	switch stage {
	case gputypes.ShaderStageVertex:
		return ir.StageVertex, true
	case gputypes.ShaderStageFragment:
		return ir.StageFragment, true
	default:
		return 0, false
	}
}

func stageLabel(stage gputypes.ShaderStage) string {
	if stage == gputypes.ShaderStageVertex {
		return "@vertex"
	}
	return "@fragment"
}

// appendVaryings adds the location-bound values of one argument or result.
// Struct types contribute their bound members; builtins are skipped.
func appendVaryings(dst []Varying, m *ir.Module, name string, th ir.TypeHandle, binding *ir.Binding) []Varying {
	if loc, ok := location(binding); ok {
		if shape, ok := shapeOf(m, th); ok {
			dst = append(dst, Varying{Name: name, Location: int(loc), Shape: shape})
		}
		return dst
	}
	if int(th) >= len(m.Types) {
		return dst
	}
	st, ok := m.Types[th].Inner.(ir.StructType)
	if !ok {
		return dst
	}
	for _, member := range st.Members {
		loc, ok := location(member.Binding)
		if !ok {
			continue
		}
		if shape, ok := shapeOf(m, member.Type); ok {
			dst = append(dst, Varying{Name: member.Name, Location: int(loc), Shape: shape})
		}
	}
	return dst
}

func location(b *ir.Binding) (uint32, bool) {
	if b == nil || *b == nil {
		return 0, false
	}
	switch lb := (*b).(type) {
	case ir.LocationBinding:
		return lb.Location, true
	case *ir.LocationBinding:
		return lb.Location, true
	default:
		return 0, false
	}
}

// uniforms lists uniform-space globals in declaration order.
func uniforms(m *ir.Module) []Uniform {
	var out []Uniform
	for _, gv := range m.GlobalVariables {
		if gv.Space != ir.SpaceUniform {
			continue
		}
		out = appendUniform(out, m, gv.Name, gv.Type)
	}
	return out
}

func appendUniform(dst []Uniform, m *ir.Module, name string, th ir.TypeHandle) []Uniform {
	if shape, ok := shapeOf(m, th); ok {
		return append(dst, Uniform{Name: name, Shape: shape})
	}
	if int(th) >= len(m.Types) {
		return dst
	}
	switch t := m.Types[th].Inner.(type) {
	case ir.StructType:
		for _, member := range t.Members {
			dst = appendUniform(dst, m, name+"."+member.Name, member.Type)
		}
	case ir.ArrayType:
		if t.Size.Constant == nil {
			return dst
		}
		for i := uint32(0); i < *t.Size.Constant; i++ {
			dst = appendUniform(dst, m, fmt.Sprintf("%s[%d]", name, i), t.Base)
		}
	}
	return dst
}

func shapeOf(m *ir.Module, th ir.TypeHandle) (Shape, bool) {
	if int(th) >= len(m.Types) {
		return Shape{}, false
	}
	switch t := m.Types[th].Inner.(type) {
	case ir.ScalarType:
		k, ok := kindOf(t.Kind)
		return Shape{Kind: k, Columns: 1, Rows: 1}, ok
	case ir.VectorType:
		k, ok := kindOf(t.Scalar.Kind)
		return Shape{Kind: k, Columns: 1, Rows: int(t.Size)}, ok
	case ir.MatrixType:
		k, ok := kindOf(t.Scalar.Kind)
		return Shape{Kind: k, Columns: int(t.Columns), Rows: int(t.Rows)}, ok
	default:
		return Shape{}, false
	}
}

func kindOf(k ir.ScalarKind) (Kind, bool) {
	switch k {
	case ir.ScalarFloat:
		return KindFloat, true
	case ir.ScalarSint:
		return KindSint, true
	case ir.ScalarUint:
		return KindUint, true
	case ir.ScalarBool:
		return KindBool, true
	default:
		return 0, false
	}
}
