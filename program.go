package glkit

import (
	"github.com/gogpu/gputypes"
)

// CompileShader compiles one shader stage from source.
//
// A failed compile returns a *ShaderCompileError carrying the host
// diagnostic verbatim; the shader object is deleted. There is exactly one
// compile attempt per call.
func CompileShader(h Host, stage gputypes.ShaderStage, source string) (Shader, error) {
	s := h.CreateShader(stage)
	if s == 0 {
		return 0, ErrShaderCreate
	}
	h.ShaderSource(s, source)
	h.CompileShader(s)
	if !h.ShaderCompiled(s) {
		log := h.ShaderInfoLog(s)
		h.DeleteShader(s)
		return 0, &ShaderCompileError{Stage: stage, Log: log}
	}
	Logger().Debug("glkit: shader compiled", "stage", stageName(stage), "shader", uint32(s))
	return s, nil
}

// NewProgram compiles vs and fs and links them into a program.
//
// The vertex stage is compiled first; if it fails the fragment stage is
// never attempted. Both stages are attached before linking. A failed link
// returns a *ProgramLinkError carrying the host diagnostic.
//
// On success the shaders are flagged for deletion; the program keeps them
// alive until DeleteProgram. The caller owns the returned program.
func NewProgram(h Host, vs, fs string) (Program, error) {
	vShader, err := CompileShader(h, gputypes.ShaderStageVertex, vs)
	if err != nil {
		return 0, err
	}
	fShader, err := CompileShader(h, gputypes.ShaderStageFragment, fs)
	if err != nil {
		h.DeleteShader(vShader)
		return 0, err
	}

	p := h.CreateProgram()
	if p == 0 {
		h.DeleteShader(vShader)
		h.DeleteShader(fShader)
		return 0, ErrProgramCreate
	}
	h.AttachShader(p, vShader)
	h.AttachShader(p, fShader)
	h.LinkProgram(p)

	// Attached shaders stay alive until the program is deleted.
	h.DeleteShader(vShader)
	h.DeleteShader(fShader)

	if !h.ProgramLinked(p) {
		log := h.ProgramInfoLog(p)
		h.DeleteProgram(p)
		return 0, &ProgramLinkError{Log: log}
	}
	Logger().Debug("glkit: program linked", "program", uint32(p))
	return p, nil
}

// DeleteProgram releases a program created by NewProgram.
// Deleting the zero program is a no-op.
func DeleteProgram(h Host, p Program) {
	if p == 0 {
		return
	}
	h.DeleteProgram(p)
	Logger().Debug("glkit: program deleted", "program", uint32(p))
}
