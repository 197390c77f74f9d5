package world

import (
	"PowerOutage/internal/hud"
	"PowerOutage/internal/props"
	"PowerOutage/internal/renderer"

	"github.com/go-gl/mathgl/mgl32"
)

// RenderScene runs the shadow pass and the main pass. The main pass leaves
// the finished frame in the post framebuffer for the post-processor.
func (w *WorldState) RenderScene(dev renderer.Device) {
	lightSpace := w.LightSpaceMatrix()
	w.shadowPass(dev, lightSpace)
	w.mainPass(dev, lightSpace)
}

func (w *WorldState) shadowPass(dev renderer.Device, lightSpace mgl32.Mat4) {
	t := w.Targets
	dev.BindFramebuffer(t.ShadowFBO)
	dev.Viewport(t.ShadowSize, t.ShadowSize)
	dev.Clear(ClearColor)

	w.Depth.Use()
	w.Depth.SetMat4("lightSpaceMatrix", lightSpace)

	ctx := renderer.RenderContext{Device: dev, Program: w.Depth}
	for _, obj := range w.Table.ShadowCasters() {
		obj.Draw(ctx)
	}
	w.Key.Draw(ctx)
}

func (w *WorldState) mainPass(dev renderer.Device, lightSpace mgl32.Mat4) {
	t := w.Targets
	dev.BindFramebuffer(t.PostFBO)
	dev.Viewport(t.Width, t.Height)
	dev.Clear(ClearColor)
	dev.BindTexture(1, renderer.Texture2D, t.ShadowDepth)
	dev.SetStencilMask(0x00)

	view := w.Camera.GetViewMatrix()
	projection := w.Camera.GetProjectionMatrix()
	w.configurePrograms(lightSpace)

	// A nil program lets every object draw with its own.
	ctx := renderer.RenderContext{Device: dev}
	for _, obj := range w.Table.Static() {
		obj.Draw(ctx)
	}

	w.markProps(dev, ctx)
	w.drawHalos(dev, ctx)

	w.Skybox.Render(dev, view, projection)
	w.HUD.Render(dev, hud.Status{
		CameraPosition: w.Camera.Position,
		Effect:         w.Post.Selection,
		KeyCollected:   w.Key.Collected(),
	}, view, projection)
}

// configurePrograms pushes the per-frame uniforms to each program of the
// scene table exactly once.
func (w *WorldState) configurePrograms(lightSpace mgl32.Mat4) {
	c := w.Camera
	dirOn := w.DirOn()
	view := c.GetViewMatrix()
	eye := c.Position.Vec4(1)

	for _, p := range w.Table.Programs() {
		p.Use()
		p.SetMat4("view", view)
		p.SetMat4("projection", c.GetProjectionMatrix())
		p.SetVec4("view_position", eye)
		w.Lights.Apply(p, c.Position, c.Front, dirOn)
		p.SetFloat("shininess", Shininess)
		p.SetFloat("time", w.Elapsed)
		p.SetMat4("lightSpaceMatrix", lightSpace)
		p.SetInt("texture_image", 0)
		p.SetInt("depth_image", 1)
	}
}

// markProps draws the props writing 1 into the stencil buffer.
func (w *WorldState) markProps(dev renderer.Device, ctx renderer.RenderContext) {
	dev.SetStencilFunc(renderer.StencilAlways, 1, 0xFF)
	dev.SetStencilMask(0xFF)
	w.Key.Draw(ctx)
	w.Door.Draw(ctx)
	w.Plate.Draw(ctx)
}

type haloTarget struct {
	prop props.Prop
	halo props.Halo
}

func (w *WorldState) halos() []haloTarget {
	pos := w.Camera.Position
	return []haloTarget{
		{w.Door, w.Door.Halo(pos, w.Key.Inserted())},
		{w.Plate, w.Plate.Halo(pos)},
		{w.Key, w.Key.Halo(pos)},
	}
}

// drawHalos redraws each nearby prop slightly enlarged in a flat colour where
// the stencil is not yet marked, leaving a rim around it. Stencil, depth test,
// scale and the fill program are restored after every halo.
func (w *WorldState) drawHalos(dev renderer.Device, ctx renderer.RenderContext) {
	fillCtx := ctx.WithProgram(w.Fill)
	for _, h := range w.halos() {
		if !h.halo.Visible {
			continue
		}
		dev.SetStencilFunc(renderer.StencilNotEqual, 1, 0xFF)
		dev.SetStencilMask(0x00)
		dev.SetDepthTest(false)

		scale := h.prop.Scale()
		h.prop.SetScale(h.halo.Scale)
		w.Fill.Use()
		w.Fill.SetBool("use_set_color", true)
		w.Fill.SetVec4("set_color", h.halo.Color)
		h.prop.Draw(fillCtx)
		h.prop.SetScale(scale)
		w.Fill.SetBool("use_set_color", false)

		dev.SetStencilMask(0xFF)
		dev.SetStencilFunc(renderer.StencilAlways, 1, 0xFF)
		dev.SetDepthTest(true)
	}
}
