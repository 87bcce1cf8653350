package glkit

import (
	"errors"
	"reflect"
	"testing"

	"github.com/gogpu/gputypes"
)

func TestCompileShader(t *testing.T) {
	h := newFakeHost()
	s, err := CompileShader(h, gputypes.ShaderStageVertex, "void main() {}")
	if err != nil {
		t.Fatalf("CompileShader() error = %v", err)
	}
	if s == 0 {
		t.Fatal("CompileShader() returned zero shader")
	}
	want := []string{"CreateShader", "ShaderSource", "CompileShader", "ShaderCompiled"}
	if !reflect.DeepEqual(h.calls, want) {
		t.Errorf("calls = %v, want %v", h.calls, want)
	}
}

func TestCompileShaderFailure(t *testing.T) {
	h := newFakeHost()
	const diag = "ERROR: 0:1: 'foo' : syntax error"
	h.failCompile[gputypes.ShaderStageFragment] = diag

	_, err := CompileShader(h, gputypes.ShaderStageFragment, "foo")
	var ce *ShaderCompileError
	if !errors.As(err, &ce) {
		t.Fatalf("CompileShader() error = %v, want *ShaderCompileError", err)
	}
	if ce.Stage != gputypes.ShaderStageFragment {
		t.Errorf("Stage = %v, want fragment", ce.Stage)
	}
	if ce.Log != diag {
		t.Errorf("Log = %q, want %q", ce.Log, diag)
	}
	if len(h.deletedShaders) != 1 {
		t.Errorf("deleted shaders = %v, want the failed shader", h.deletedShaders)
	}
	if h.count("CompileShader") != 1 {
		t.Errorf("compile attempts = %d, want 1", h.count("CompileShader"))
	}
}

func TestCompileShaderCreateFailure(t *testing.T) {
	h := newFakeHost()
	h.failCreate["shader"] = true
	if _, err := CompileShader(h, gputypes.ShaderStageVertex, ""); !errors.Is(err, ErrShaderCreate) {
		t.Errorf("CompileShader() error = %v, want ErrShaderCreate", err)
	}
}

func TestNewProgram(t *testing.T) {
	h := newFakeHost()
	p, err := NewProgram(h, "vs", "fs")
	if err != nil {
		t.Fatalf("NewProgram() error = %v", err)
	}
	if p == 0 {
		t.Fatal("NewProgram() returned zero program")
	}
	if got := len(h.attached[p]); got != 2 {
		t.Errorf("attached shaders = %d, want 2", got)
	}
	stages := []gputypes.ShaderStage{h.shaderStage[h.attached[p][0]], h.shaderStage[h.attached[p][1]]}
	if stages[0] != gputypes.ShaderStageVertex || stages[1] != gputypes.ShaderStageFragment {
		t.Errorf("attach order = %v, want vertex then fragment", stages)
	}
	if len(h.deletedShaders) != 2 {
		t.Errorf("deleted shaders = %v, want both flagged after link", h.deletedShaders)
	}
	if len(h.deletedPrograms) != 0 {
		t.Errorf("deleted programs = %v, want none", h.deletedPrograms)
	}
}

func TestNewProgramVertexFailureShortCircuits(t *testing.T) {
	h := newFakeHost()
	h.failCompile[gputypes.ShaderStageVertex] = "bad vertex"

	_, err := NewProgram(h, "broken", "fs")
	var ce *ShaderCompileError
	if !errors.As(err, &ce) || ce.Stage != gputypes.ShaderStageVertex {
		t.Fatalf("NewProgram() error = %v, want vertex *ShaderCompileError", err)
	}
	if n := h.count("CreateShader"); n != 1 {
		t.Errorf("CreateShader calls = %d, want 1 (fragment never attempted)", n)
	}
	if n := h.count("CreateProgram"); n != 0 {
		t.Errorf("CreateProgram calls = %d, want 0", n)
	}
}

func TestNewProgramFragmentFailure(t *testing.T) {
	h := newFakeHost()
	h.failCompile[gputypes.ShaderStageFragment] = "bad fragment"

	_, err := NewProgram(h, "vs", "broken")
	var ce *ShaderCompileError
	if !errors.As(err, &ce) || ce.Stage != gputypes.ShaderStageFragment {
		t.Fatalf("NewProgram() error = %v, want fragment *ShaderCompileError", err)
	}
	if len(h.deletedShaders) != 2 {
		t.Errorf("deleted shaders = %v, want vertex and failed fragment", h.deletedShaders)
	}
	if n := h.count("CreateProgram"); n != 0 {
		t.Errorf("CreateProgram calls = %d, want 0", n)
	}
}

func TestNewProgramLinkFailure(t *testing.T) {
	h := newFakeHost()
	h.failLink = "varying v_color not written"

	_, err := NewProgram(h, "vs", "fs")
	var le *ProgramLinkError
	if !errors.As(err, &le) {
		t.Fatalf("NewProgram() error = %v, want *ProgramLinkError", err)
	}
	if le.Log != h.failLink {
		t.Errorf("Log = %q, want %q", le.Log, h.failLink)
	}
	if len(h.deletedPrograms) != 1 {
		t.Errorf("deleted programs = %v, want the failed program", h.deletedPrograms)
	}
}

func TestNewProgramCreateFailure(t *testing.T) {
	h := newFakeHost()
	h.failCreate["program"] = true

	if _, err := NewProgram(h, "vs", "fs"); !errors.Is(err, ErrProgramCreate) {
		t.Fatalf("NewProgram() error = %v, want ErrProgramCreate", err)
	}
	if len(h.deletedShaders) != 2 {
		t.Errorf("deleted shaders = %v, want both", h.deletedShaders)
	}
}

func TestDeleteProgram(t *testing.T) {
	h := newFakeHost()
	DeleteProgram(h, 0)
	if len(h.calls) != 0 {
		t.Errorf("DeleteProgram(0) made calls %v", h.calls)
	}
	DeleteProgram(h, 7)
	if !reflect.DeepEqual(h.deletedPrograms, []Program{7}) {
		t.Errorf("deleted programs = %v, want [7]", h.deletedPrograms)
	}
}

func TestShaderCompileErrorMessage(t *testing.T) {
	err := &ShaderCompileError{Stage: gputypes.ShaderStageVertex, Log: "oops"}
	want := "glkit: vertex shader compile failed: oops"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
