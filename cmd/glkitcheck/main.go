// Command glkitcheck compiles and links a WGSL shader pair on the headless
// glkit host and prints the program interface.
//
// Usage:
//
//	glkitcheck [-vs shader.vert.wgsl] [-fs shader.frag.wgsl] [-glsl] [-v]
//
// Without -vs or -fs the bundled color shaders are used.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/glkit"
	"github.com/gogpu/glkit/backend/headless"
	"github.com/gogpu/glkit/internal/shaderinfo"
	"github.com/gogpu/glkit/internal/shaders"
)

func main() {
	var (
		vsPath   = flag.String("vs", "", "vertex shader (WGSL)")
		fsPath   = flag.String("fs", "", "fragment shader (WGSL)")
		width    = flag.Int("width", 800, "canvas width")
		height   = flag.Int("height", 600, "canvas height")
		emitGLSL = flag.Bool("glsl", false, "print GLSL ES 3.00 for both stages")
		verbose  = flag.Bool("v", false, "log glkit debug records to stderr")
	)
	flag.Parse()

	if *verbose {
		glkit.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	vs := source(*vsPath, shaders.ColorVertex)
	fs := source(*fsPath, shaders.ColorFragment)

	if err := run(os.Stdout, vs, fs, *width, *height, *emitGLSL); err != nil {
		log.Fatalf("glkitcheck: %v", err)
	}
}

func source(path, fallback string) string {
	if path == "" {
		return fallback
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("glkitcheck: %v", err)
	}
	return string(data)
}

func run(w io.Writer, vs, fs string, width, height int, emitGLSL bool) error {
	doc := headless.NewDocument()
	doc.AddCanvas(headless.DefaultSelector, width, height)

	host, err := glkit.Acquire(doc, headless.DefaultSelector)
	if err != nil {
		return err
	}
	ctx := host.(*headless.Context)

	p, err := glkit.NewProgram(ctx, vs, fs)
	if err != nil {
		return err
	}
	defer glkit.DeleteProgram(ctx, p)
	glkit.ResizeCanvas(ctx, width, height)

	vStage, fStage, ok := ctx.Stages(p)
	if !ok {
		return fmt.Errorf("program %d is not linked", p)
	}

	printAttributes(w, ctx.ActiveAttributes(p), vStage)
	printUniforms(w, ctx, p, vStage, fStage)

	if err := writeDemoMatrix(w, ctx, p, width, height); err != nil {
		return err
	}

	if emitGLSL {
		for _, s := range []*shaderinfo.Stage{vStage, fStage} {
			src, err := s.GLSL()
			if err != nil {
				return fmt.Errorf("%s: %w", s.EntryPoint, err)
			}
			fmt.Fprintf(w, "\n// %s (%v)\n%s", s.EntryPoint, s.Stage, src)
		}
	}
	return nil
}

func printAttributes(w io.Writer, attribs map[string]int, vs *shaderinfo.Stage) {
	names := make([]string, 0, len(attribs))
	for name := range attribs {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return attribs[names[i]] < attribs[names[j]] })

	fmt.Fprintln(w, "attributes:")
	for _, name := range names {
		in, _ := vs.Input(name)
		fmt.Fprintf(w, "  %2d  %-16s %s\n", attribs[name], name, in.Shape)
	}
}

func printUniforms(w io.Writer, ctx *headless.Context, p glkit.Program, stages ...*shaderinfo.Stage) {
	shapes := make(map[string]shaderinfo.Shape)
	for _, s := range stages {
		for _, u := range s.Uniforms {
			shapes[u.Name] = u.Shape
		}
	}
	fmt.Fprintln(w, "uniforms:")
	for _, name := range ctx.ActiveUniforms(p) {
		loc, _ := ctx.UniformLocation(p, name)
		fmt.Fprintf(w, "  %2d  %-16s %s\n", loc, name, shapes[name])
	}
}

// writeDemoMatrix uploads a perspective camera into u_mvp, when the program
// declares it, and reads it back.
func writeDemoMatrix(w io.Writer, ctx *headless.Context, p glkit.Program, width, height int) error {
	loc, ok := ctx.UniformLocation(p, "u_mvp")
	if !ok {
		return nil
	}
	aspect := float32(width) / float32(height)
	proj := mgl32.Perspective(mgl32.DegToRad(45), aspect, 0.1, 100)
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, 3}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	if err := glkit.SetUniformMat4(ctx, p, "u_mvp", proj.Mul4(view)); err != nil {
		return err
	}
	if code := ctx.Err(); code != headless.NoError {
		return fmt.Errorf("u_mvp upload: %v", code)
	}
	fmt.Fprintf(w, "u_mvp = %v\n", ctx.GetUniform(p, loc))
	return nil
}
