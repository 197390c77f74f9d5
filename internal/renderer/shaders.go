package renderer

import (
	"PowerOutage/internal/logger"
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Program is the uniform-setting surface the scene code draws through.
type Program interface {
	Use()
	SetMat4(name string, value mgl32.Mat4)
	SetVec3(name string, value mgl32.Vec3)
	SetVec4(name string, value mgl32.Vec4)
	SetFloat(name string, value float32)
	SetInt(name string, value int32)
	SetBool(name string, value bool)
}

// =============================================================
//
//	Shaders
//
// =============================================================
type Shader struct {
	Name     string
	program  uint32
	uniforms *UniformCache
}

// NewShader compiles and links a program from GLSL sources.
func NewShader(name, vertexSource, fragmentSource string) (*Shader, error) {
	program, err := linkProgram(vertexSource, fragmentSource)
	if err != nil {
		return nil, fmt.Errorf("shader %s: %w", name, err)
	}
	logger.Log.Info("Shader program linked", zap.String("name", name), zap.Uint32("program", program))
	return &Shader{Name: name, program: program, uniforms: NewUniformCache(program)}, nil
}

// Reload swaps in a freshly compiled program. On failure the old program stays active.
func (shader *Shader) Reload(vertexSource, fragmentSource string) error {
	program, err := linkProgram(vertexSource, fragmentSource)
	if err != nil {
		return fmt.Errorf("reload shader %s: %w", shader.Name, err)
	}
	gl.DeleteProgram(shader.program)
	shader.program = program
	shader.uniforms = NewUniformCache(program)
	logger.Log.Info("Shader program reloaded", zap.String("name", shader.Name), zap.Uint32("program", program))
	return nil
}

func (shader *Shader) ID() uint32 {
	return shader.program
}

func (shader *Shader) Use() {
	gl.UseProgram(shader.program)
}

func (shader *Shader) SetMat4(name string, value mgl32.Mat4) {
	shader.uniforms.SetMat4(name, value)
}

func (shader *Shader) SetVec3(name string, value mgl32.Vec3) {
	shader.uniforms.SetVec3(name, value.X(), value.Y(), value.Z())
}

func (shader *Shader) SetVec4(name string, value mgl32.Vec4) {
	shader.uniforms.SetVec4(name, value)
}

func (shader *Shader) SetFloat(name string, value float32) {
	shader.uniforms.SetFloat(name, value)
}

func (shader *Shader) SetInt(name string, value int32) {
	shader.uniforms.SetInt(name, value)
}

func (shader *Shader) SetBool(name string, value bool) {
	shader.uniforms.SetBool(name, value)
}

func (shader *Shader) Delete() {
	gl.DeleteProgram(shader.program)
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	cSources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, cSources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)

		return 0, fmt.Errorf("compile %s shader: %s", shaderTypeName(shaderType), strings.TrimRight(log, "\x00"))
	}
	return shader, nil
}

func linkProgram(vertexSource, fragmentSource string) (uint32, error) {
	vertexShader, err := compileShader(vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fragmentShader, err := compileShader(fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	gl.DetachShader(program, vertexShader)
	gl.DeleteShader(vertexShader)
	gl.DetachShader(program, fragmentShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)

		return 0, fmt.Errorf("link program: %s", strings.TrimRight(log, "\x00"))
	}
	return program, nil
}

func shaderTypeName(shaderType uint32) string {
	if shaderType == gl.FRAGMENT_SHADER {
		return "fragment"
	}
	return "vertex"
}
