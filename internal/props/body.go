// Package props holds the interactable objects of the office: the door, the
// pressure plate and the key. Each is a Body plus a small state machine.
package props

import (
	"PowerOutage/internal/renderer"
	"PowerOutage/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
)

// OutlineBlue is the halo colour of a prop that can be used.
var OutlineBlue = mgl32.Vec4{0.3, 0.7, 1.0, 0.5}

// Prop is what the render passes need from an interactable.
type Prop interface {
	Draw(ctx renderer.RenderContext)
	Position() mgl32.Vec3
	Scale() float32
	SetScale(scale float32)
}

// Halo describes the outline a prop wants this frame.
type Halo struct {
	Visible bool
	Scale   float32
	Color   mgl32.Vec4
}

// Body is the transform and draw state shared by every prop.
type Body struct {
	drawable         renderer.Drawable
	program          renderer.Program
	texture          uint32
	position         mgl32.Vec3
	originalPosition mgl32.Vec3
	scale            float32
	orientation      float32 // fixed placement correction about Y
	rotation         float32 // animated, about Y
}

func NewBody(drawable renderer.Drawable, program renderer.Program, texture uint32, position mgl32.Vec3, scale, orientation float32) Body {
	return Body{
		drawable:         drawable,
		program:          program,
		texture:          texture,
		position:         position,
		originalPosition: position,
		scale:            scale,
		orientation:      orientation,
	}
}

// BodyFromObject places a body where the scene table put the object.
func BodyFromObject(obj *scene.Object) Body {
	p := obj.Placement
	return NewBody(obj.Drawable, obj.Program, obj.Texture, p.Position, p.Scale, p.Rotation)
}

func (b *Body) Position() mgl32.Vec3 {
	return b.position
}

func (b *Body) OriginalPosition() mgl32.Vec3 {
	return b.originalPosition
}

func (b *Body) Scale() float32 {
	return b.scale
}

func (b *Body) SetScale(scale float32) {
	b.scale = scale
}

func (b *Body) Rotation() float32 {
	return b.rotation
}

func (b *Body) Model() mgl32.Mat4 {
	return renderer.ModelMatrix(b.position, b.rotation, mgl32.Vec3{b.scale, b.scale, b.scale}, b.orientation)
}

// Draw renders the body with the context's program, or the body's own when the context has none.
func (b *Body) Draw(ctx renderer.RenderContext) {
	b.drawWith(ctx, b.Model())
}

func (b *Body) drawWith(ctx renderer.RenderContext, model mgl32.Mat4) {
	if ctx.Program == nil {
		ctx.Program = b.program
	}
	ctx.DrawTextured(b.drawable, model, b.texture)
}

func (b *Body) distance(p mgl32.Vec3) float32 {
	return p.Sub(b.position).Len()
}
