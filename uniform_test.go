package glkit

import (
	"errors"
	"reflect"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestParseShape(t *testing.T) {
	tests := []struct {
		tag  string
		want Shape
	}{
		{"float", ShapeFloat},
		{"scalar-float", ShapeFloat},
		{"int", ShapeInt},
		{"INT", ShapeInt},
		{"vec3", ShapeVec3},
		{"vector3", ShapeVec3},
		{"matrix4", ShapeMat4},
		{"mat4", ShapeMat4},
	}
	for _, tt := range tests {
		got, err := ParseShape(tt.tag)
		if err != nil || got != tt.want {
			t.Errorf("ParseShape(%q) = %v, %v; want %v", tt.tag, got, err, tt.want)
		}
	}

	for _, tag := range []string{"vec2", "", "matrix3", "bool"} {
		_, err := ParseShape(tag)
		var ue *UnsupportedShapeError
		if !errors.As(err, &ue) || ue.Tag != tag {
			t.Errorf("ParseShape(%q) error = %v, want *UnsupportedShapeError", tag, err)
		}
	}
}

func TestShapeString(t *testing.T) {
	for shape, want := range map[Shape]string{
		ShapeFloat: "float",
		ShapeInt:   "int",
		ShapeVec3:  "vec3",
		ShapeMat4:  "matrix4",
		Shape(9):   "shape(9)",
	} {
		if got := shape.String(); got != want {
			t.Errorf("Shape(%d).String() = %q, want %q", uint8(shape), got, want)
		}
	}
}

func TestSetUniformShapes(t *testing.T) {
	h := newFakeHost()
	h.uniforms = map[string]UniformLocation{"u_time": 0, "u_mode": 1, "u_color": 2, "u_mvp": 3}

	mat := make([]float32, 16)
	for i := range mat {
		mat[i] = float32(i)
	}
	tests := []struct {
		name string
		v    Value
		op   string
		loc  UniformLocation
		want []float32
	}{
		{"u_time", Float(1.5), "Uniform1f", 0, []float32{1.5}},
		{"u_mode", Int(3), "Uniform1i", 1, []float32{3}},
		{"u_color", Vec3{1, 0.5, 0}, "Uniform3fv", 2, []float32{1, 0.5, 0}},
		{"u_mvp", Mat4(mat), "UniformMatrix4fv", 3, mat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := SetUniform(h, 5, tt.name, tt.v); err != nil {
				t.Fatalf("SetUniform() error = %v", err)
			}
			if h.calls[len(h.calls)-1] != tt.op {
				t.Errorf("last call = %s, want %s", h.calls[len(h.calls)-1], tt.op)
			}
			if !reflect.DeepEqual(h.values[tt.loc], tt.want) {
				t.Errorf("value = %v, want %v", h.values[tt.loc], tt.want)
			}
			if h.current != 5 {
				t.Errorf("current program = %d, want 5", h.current)
			}
		})
	}
	if !reflect.DeepEqual(h.transpose, []bool{false}) {
		t.Errorf("transpose flags = %v, want [false]", h.transpose)
	}
}

func TestSetUniformLocationZero(t *testing.T) {
	h := newFakeHost()
	h.uniforms["u_first"] = 0
	if err := SetUniform(h, 1, "u_first", Float(2)); err != nil {
		t.Fatalf("SetUniform() at location 0 error = %v", err)
	}
	if !reflect.DeepEqual(h.values[0], []float32{2}) {
		t.Errorf("value = %v, want [2]", h.values[0])
	}
}

func TestSetUniformNotFound(t *testing.T) {
	h := newFakeHost()
	err := SetUniform(h, 1, "u_missing", Float(1))
	var nf *UniformNotFoundError
	if !errors.As(err, &nf) || nf.Name != "u_missing" {
		t.Fatalf("SetUniform() error = %v, want *UniformNotFoundError", err)
	}
	if h.count("Uniform") != 1 {
		t.Errorf("calls = %v, want only the location lookup", h.calls)
	}
}

type vec2 [2]float32

func (vec2) Shape() Shape { return Shape(42) }

func TestSetUniformForeignValue(t *testing.T) {
	h := newFakeHost()
	h.uniforms["u_offset"] = 0
	err := SetUniform(h, 1, "u_offset", vec2{1, 2})
	var ue *UnsupportedShapeError
	if !errors.As(err, &ue) {
		t.Fatalf("SetUniform() error = %v, want *UnsupportedShapeError", err)
	}
	if len(h.values) != 0 || h.count("UseProgram") != 0 {
		t.Errorf("unexpected upload: %v", h.calls)
	}

	if err := SetUniform(h, 1, "u_offset", nil); !errors.As(err, &ue) {
		t.Errorf("SetUniform(nil) error = %v, want *UnsupportedShapeError", err)
	}
}

func TestSetUniformTag(t *testing.T) {
	h := newFakeHost()
	h.uniforms = map[string]UniformLocation{"u_scale": 0, "u_mode": 1, "u_tint": 2}

	if err := SetUniformTag(h, 1, "u_scale", "float", []float32{0.5, 9}); err != nil {
		t.Fatal(err)
	}
	if err := SetUniformTag(h, 1, "u_mode", "int", nil); err != nil {
		t.Fatal(err)
	}
	if err := SetUniformTag(h, 1, "u_tint", "vec3", []float32{1, 2, 3}); err != nil {
		t.Fatal(err)
	}
	want := map[UniformLocation][]float32{0: {0.5}, 1: {0}, 2: {1, 2, 3}}
	if !reflect.DeepEqual(h.values, want) {
		t.Errorf("values = %v, want %v", h.values, want)
	}
}

func TestSetUniformTagUnsupportedMakesNoCalls(t *testing.T) {
	h := newFakeHost()
	h.uniforms["u_offset"] = 0

	err := SetUniformTag(h, 1, "u_offset", "vec2", []float32{1, 2})
	var ue *UnsupportedShapeError
	if !errors.As(err, &ue) || ue.Tag != "vec2" {
		t.Fatalf("SetUniformTag() error = %v, want *UnsupportedShapeError{vec2}", err)
	}
	if len(h.calls) != 0 {
		t.Errorf("host calls = %v, want none", h.calls)
	}
}

func TestSetUniformMathgl(t *testing.T) {
	h := newFakeHost()
	h.uniforms = map[string]UniformLocation{"u_mvp": 0, "u_light": 1}

	m := mgl32.Translate3D(1, 2, 3)
	if err := SetUniformMat4(h, 1, "u_mvp", m); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(h.values[0], m[:]) {
		t.Errorf("mat4 = %v, want column-major %v", h.values[0], m[:])
	}
	// Column-major: translation lives in elements 12..14.
	if h.values[0][12] != 1 || h.values[0][13] != 2 || h.values[0][14] != 3 {
		t.Errorf("translation not in column-major slots: %v", h.values[0])
	}

	if err := SetUniformVec3(h, 1, "u_light", mgl32.Vec3{0, 1, 0}); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(h.values[1], []float32{0, 1, 0}) {
		t.Errorf("vec3 = %v", h.values[1])
	}
}

func TestNewValue(t *testing.T) {
	v, err := NewValue(ShapeInt, []float32{7.9})
	if err != nil || v != Int(7) {
		t.Errorf("NewValue(int) = %v, %v; want 7", v, err)
	}
	if _, err := NewValue(Shape(0), nil); err == nil {
		t.Error("NewValue(invalid) error = nil")
	}
}
