package renderer

import "github.com/go-gl/mathgl/mgl32"

// Drawable binds its buffers and issues a draw call.
type Drawable interface {
	Draw()
}

// RenderContext is what a draw call renders with: the device for texture binds
// and the program that receives the model transform.
type RenderContext struct {
	Device  Device
	Program Program
}

// WithProgram returns a copy of the context targeting another program.
func (rc RenderContext) WithProgram(p Program) RenderContext {
	rc.Program = p
	return rc
}

// DrawTextured binds texture to unit 0, uploads model, and draws d with
// "use_texture" raised for the duration of the call.
func (rc RenderContext) DrawTextured(d Drawable, model mgl32.Mat4, texture uint32) {
	rc.Program.Use()
	rc.Device.BindTexture(0, Texture2D, texture)
	rc.Program.SetMat4("model", model)
	rc.Program.SetBool("use_texture", true)
	d.Draw()
	rc.Program.SetBool("use_texture", false)
}

// DrawPlain draws d with model and no texture.
func (rc RenderContext) DrawPlain(d Drawable, model mgl32.Mat4) {
	rc.Program.Use()
	rc.Program.SetMat4("model", model)
	rc.Program.SetBool("use_texture", false)
	d.Draw()
}

// ModelMatrix is translate(position) * rotY(rotation) * scale * rotY(orientation), angles in degrees.
func ModelMatrix(position mgl32.Vec3, rotation float32, scale mgl32.Vec3, orientation float32) mgl32.Mat4 {
	return mgl32.Translate3D(position.X(), position.Y(), position.Z()).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(rotation))).
		Mul4(mgl32.Scale3D(scale.X(), scale.Y(), scale.Z())).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(orientation)))
}
