package glkit

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// Shape is the declared shape of a uniform value.
type Shape uint8

const (
	// ShapeFloat is a single float.
	ShapeFloat Shape = iota + 1
	// ShapeInt is a single integer.
	ShapeInt
	// ShapeVec3 is a 3-component float vector.
	ShapeVec3
	// ShapeMat4 is a 4x4 float matrix in column-major order.
	ShapeMat4
)

// String returns the canonical tag of the shape.
func (s Shape) String() string {
	switch s {
	case ShapeFloat:
		return "float"
	case ShapeInt:
		return "int"
	case ShapeVec3:
		return "vec3"
	case ShapeMat4:
		return "matrix4"
	default:
		return fmt.Sprintf("shape(%d)", uint8(s))
	}
}

// ParseShape converts a shape tag into a Shape.
//
// Accepted tags are "float", "int", "vec3" and "matrix4", plus the long
// forms "scalar-float", "scalar-int", "vector3" and "mat4". Any other tag
// returns an *UnsupportedShapeError.
func ParseShape(tag string) (Shape, error) {
	switch strings.ToLower(tag) {
	case "float", "scalar-float":
		return ShapeFloat, nil
	case "int", "scalar-int":
		return ShapeInt, nil
	case "vec3", "vector3":
		return ShapeVec3, nil
	case "matrix4", "mat4":
		return ShapeMat4, nil
	default:
		return 0, &UnsupportedShapeError{Tag: tag}
	}
}

// Value is a uniform value tagged with its shape.
type Value interface {
	Shape() Shape
}

// Float is a scalar float uniform value.
type Float float32

// Shape returns ShapeFloat.
func (Float) Shape() Shape { return ShapeFloat }

// Int is a scalar integer uniform value.
type Int int32

// Shape returns ShapeInt.
func (Int) Shape() Shape { return ShapeInt }

// Vec3 is a 3-component float vector. The length is not checked locally;
// the host rejects mismatched lengths.
type Vec3 []float32

// Shape returns ShapeVec3.
func (Vec3) Shape() Shape { return ShapeVec3 }

// Mat4 is a 4x4 float matrix in column-major order, uploaded without
// transposition. The length is not checked locally.
type Mat4 []float32

// Shape returns ShapeMat4.
func (Mat4) Shape() Shape { return ShapeMat4 }

// NewValue builds a Value of the given shape from flat data.
// Scalar shapes take data[0], or zero when data is empty.
func NewValue(shape Shape, data []float32) (Value, error) {
	var first float32
	if len(data) > 0 {
		first = data[0]
	}
	switch shape {
	case ShapeFloat:
		return Float(first), nil
	case ShapeInt:
		return Int(int32(first)), nil
	case ShapeVec3:
		return Vec3(data), nil
	case ShapeMat4:
		return Mat4(data), nil
	default:
		return nil, &UnsupportedShapeError{Tag: shape.String()}
	}
}

// SetUniform writes v into the uniform name of p.
//
// p is made the current program before the upload. A name with no active
// uniform returns an *UniformNotFoundError; a value that is not one of
// Float, Int, Vec3 or Mat4 returns an *UnsupportedShapeError without any
// upload.
func SetUniform(h Host, p Program, name string, v Value) error {
	if v == nil {
		return &UnsupportedShapeError{Tag: "nil"}
	}
	loc, ok := h.UniformLocation(p, name)
	if !ok {
		return &UniformNotFoundError{Name: name}
	}

	switch v.(type) {
	case Float, Int, Vec3, Mat4:
	default:
		return &UnsupportedShapeError{Tag: v.Shape().String()}
	}

	h.UseProgram(p)
	switch val := v.(type) {
	case Float:
		h.Uniform1f(loc, float32(val))
	case Int:
		h.Uniform1i(loc, int32(val))
	case Vec3:
		h.Uniform3fv(loc, val)
	case Mat4:
		h.UniformMatrix4fv(loc, false, val)
	}
	Logger().Debug("glkit: uniform written", "name", name, "shape", v.Shape().String(), "location", int32(loc))
	return nil
}

// SetUniformTag writes data into the uniform name of p using a string
// shape tag (see ParseShape). An unrecognized tag fails before any host
// call.
func SetUniformTag(h Host, p Program, name, tag string, data []float32) error {
	shape, err := ParseShape(tag)
	if err != nil {
		return err
	}
	v, err := NewValue(shape, data)
	if err != nil {
		return err
	}
	return SetUniform(h, p, name, v)
}

// SetUniformMat4 writes m into the mat4 uniform name of p.
func SetUniformMat4(h Host, p Program, name string, m mgl32.Mat4) error {
	return SetUniform(h, p, name, Mat4(m[:]))
}

// SetUniformVec3 writes v into the vec3 uniform name of p.
func SetUniformVec3(h Host, p Program, name string, v mgl32.Vec3) error {
	return SetUniform(h, p, name, Vec3(v[:]))
}
