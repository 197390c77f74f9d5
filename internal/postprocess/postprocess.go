// Package postprocess draws the off-screen colour buffer to the window
// through one of seven screen-space filters.
package postprocess

import (
	"PowerOutage/internal/input"
	"PowerOutage/internal/logger"
	"PowerOutage/internal/renderer"
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Effect is the value of the "post_process_selection" uniform.
type Effect int32

const (
	Default Effect = iota + 1
	NightVision
	Grayscale
	InverseColors
	Sharpen
	Blur
	EdgeDetection
)

// EffectCount is the number of selectable effects.
const EffectCount = int(EdgeDetection)

var effectNames = [...]string{
	Default:       "Default",
	NightVision:   "Night Vision",
	Grayscale:     "Grayscale",
	InverseColors: "Inverse Colors",
	Sharpen:       "Sharpen",
	Blur:          "Blur",
	EdgeDetection: "Edge Detection",
}

func (e Effect) String() string {
	if e < Default || e > EdgeDetection {
		return fmt.Sprintf("Effect(%d)", int32(e))
	}
	return effectNames[e]
}

// Effects lists every effect in selection order.
func Effects() []Effect {
	out := make([]Effect, 0, EffectCount)
	for e := Default; e <= EdgeDetection; e++ {
		out = append(out, e)
	}
	return out
}

var effectKeys = [EffectCount]glfw.Key{
	glfw.Key1, glfw.Key2, glfw.Key3, glfw.Key4, glfw.Key5, glfw.Key6, glfw.Key7,
}

// ClearColor is what the default framebuffer shows behind the quad.
var ClearColor = mgl32.Vec4{1, 1, 1, 1}

type Processor struct {
	Selection   Effect
	NightVision bool
	quad        renderer.Drawable
	latches     [EffectCount]input.Latch
}

func NewProcessor(quad renderer.Drawable) *Processor {
	return &Processor{Selection: Default, quad: quad}
}

// ProcessInput selects an effect with keys 1-7. Each key has its own latch.
func (p *Processor) ProcessInput(keys input.KeyState) {
	for i, key := range effectKeys {
		if p.latches[i].Edge(input.Down(keys, key)) {
			p.Select(Effect(i + 1))
		}
	}
}

func (p *Processor) Select(e Effect) {
	if e < Default || e > EdgeDetection {
		return
	}
	if e != p.Selection {
		logger.Log.Debug("Post effect selected", zap.Stringer("effect", e))
	}
	p.Selection = e
	p.NightVision = e == NightVision
}

// RenderEffect draws colorTexture to the default framebuffer through program.
func (p *Processor) RenderEffect(dev renderer.Device, program renderer.Program, colorTexture uint32) {
	dev.BindFramebuffer(0)
	dev.Clear(ClearColor)
	dev.SetDepthTest(false)
	program.Use()
	dev.BindTexture(0, renderer.Texture2D, colorTexture)
	program.SetInt("screen_texture", 0)
	program.SetInt("post_process_selection", int32(p.Selection))
	p.quad.Draw()
	dev.SetDepthTest(true)
}
