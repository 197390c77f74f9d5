package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

type DepthFunc uint32

const (
	DepthLess  DepthFunc = gl.LESS
	DepthEqual DepthFunc = gl.EQUAL
)

type StencilFunc uint32

const (
	StencilAlways   StencilFunc = gl.ALWAYS
	StencilNotEqual StencilFunc = gl.NOTEQUAL
)

type TextureTarget uint32

const (
	Texture2D      TextureTarget = gl.TEXTURE_2D
	TextureCubeMap TextureTarget = gl.TEXTURE_CUBE_MAP
)

// Device is the slice of fixed-function GL state the passes touch. The scene
// code goes through it so pass ordering can be checked without a context.
type Device interface {
	BindFramebuffer(fbo uint32)
	Viewport(width, height int32)
	Clear(color mgl32.Vec4)
	SetDepthTest(enabled bool)
	SetDepthFunc(fn DepthFunc)
	SetStencilFunc(fn StencilFunc, ref int32, mask uint32)
	SetStencilMask(mask uint32)
	BindTexture(unit uint32, target TextureTarget, texture uint32)
}

// GLDevice forwards to the current OpenGL context.
type GLDevice struct{}

func (GLDevice) BindFramebuffer(fbo uint32) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, fbo)
}

func (GLDevice) Viewport(width, height int32) {
	gl.Viewport(0, 0, width, height)
}

// Clear resets color, depth and stencil. glClear honours the stencil write
// mask, so the mask is opened first.
func (GLDevice) Clear(color mgl32.Vec4) {
	gl.StencilMask(0xFF)
	gl.ClearColor(color[0], color[1], color[2], color[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT | gl.STENCIL_BUFFER_BIT)
}

func (GLDevice) SetDepthTest(enabled bool) {
	if enabled {
		gl.Enable(gl.DEPTH_TEST)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}
}

func (GLDevice) SetDepthFunc(fn DepthFunc) {
	gl.DepthFunc(uint32(fn))
}

func (GLDevice) SetStencilFunc(fn StencilFunc, ref int32, mask uint32) {
	gl.StencilFunc(uint32(fn), ref, mask)
}

func (GLDevice) SetStencilMask(mask uint32) {
	gl.StencilMask(mask)
}

func (GLDevice) BindTexture(unit uint32, target TextureTarget, texture uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(uint32(target), texture)
}

// InitState sets the GL state the game expects for its whole lifetime.
func InitState() {
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.STENCIL_TEST)
	gl.StencilOp(gl.KEEP, gl.KEEP, gl.REPLACE)
	gl.StencilFunc(gl.ALWAYS, 1, 0xFF)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
}
