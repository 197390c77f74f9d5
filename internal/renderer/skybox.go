package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// SkyboxFaces lists the cube map faces in +X, -X, +Y, -Y, +Z, -Z order.
var SkyboxFaces = [6]string{
	"skybox/right.jpg",
	"skybox/left.jpg",
	"skybox/top.jpg",
	"skybox/bottom.jpg",
	"skybox/front.jpg",
	"skybox/back.jpg",
}

var skyboxVertices = []float32{
	-1, 1, -1, -1, -1, -1, 1, -1, -1, 1, -1, -1, 1, 1, -1, -1, 1, -1,
	-1, -1, 1, -1, -1, -1, -1, 1, -1, -1, 1, -1, -1, 1, 1, -1, -1, 1,
	1, -1, -1, 1, -1, 1, 1, 1, 1, 1, 1, 1, 1, 1, -1, 1, -1, -1,
	-1, -1, 1, -1, 1, 1, 1, 1, 1, 1, 1, 1, 1, -1, 1, -1, -1, 1,
	-1, 1, -1, 1, 1, -1, 1, 1, 1, 1, 1, 1, -1, 1, 1, -1, 1, -1,
	-1, -1, -1, -1, -1, 1, 1, -1, -1, 1, -1, -1, -1, -1, 1, 1, -1, 1,
}

// skyCube is a position-only unit cube for the skybox shader.
type skyCube struct {
	vao, vbo uint32
}

func newSkyCube() *skyCube {
	c := &skyCube{}
	gl.GenVertexArrays(1, &c.vao)
	gl.BindVertexArray(c.vao)
	gl.GenBuffers(1, &c.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, c.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(skyboxVertices)*4, gl.Ptr(skyboxVertices), gl.STATIC_DRAW)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)
	gl.BindVertexArray(0)
	return c
}

func (c *skyCube) Draw() {
	gl.BindVertexArray(c.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(skyboxVertices)/3))
	gl.BindVertexArray(0)
}

func (c *skyCube) Delete() {
	gl.DeleteVertexArrays(1, &c.vao)
	gl.DeleteBuffers(1, &c.vbo)
}

type Skybox struct {
	Program Program
	Cube    Drawable
	CubeMap uint32
}

// NewSkybox uploads the cube geometry. cubeMap may be 0 when the faces failed to load;
// the sky then renders black.
func NewSkybox(program Program, cubeMap uint32) *Skybox {
	return &Skybox{Program: program, Cube: newSkyCube(), CubeMap: cubeMap}
}

// SkyView strips the translation from view so the sky stays centred on the camera.
func SkyView(view mgl32.Mat4) mgl32.Mat4 {
	return view.Mat3().Mat4()
}

// Render draws the sky behind everything already in the depth buffer. The vertex
// shader writes depth 1.0, so the EQUAL test only passes on untouched pixels.
func (s *Skybox) Render(dev Device, view, projection mgl32.Mat4) {
	dev.SetDepthFunc(DepthEqual)
	s.Program.Use()
	s.Program.SetMat4("view", SkyView(view))
	s.Program.SetMat4("projection", projection)
	s.Program.SetInt("skybox", 0)
	dev.BindTexture(0, TextureCubeMap, s.CubeMap)
	s.Cube.Draw()
	dev.SetDepthFunc(DepthLess)
}

func (s *Skybox) Delete() {
	if c, ok := s.Cube.(*skyCube); ok {
		c.Delete()
	}
}
