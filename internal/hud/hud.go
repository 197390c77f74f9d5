// Package hud draws the 2D overlay: camera coordinates, the post effect
// menu, the key status box and the crosshair.
package hud

import (
	"PowerOutage/internal/input"
	"PowerOutage/internal/postprocess"
	"PowerOutage/internal/renderer"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// The overlay is laid out in a fixed -5..5 square.
var Projection = mgl32.Ortho(-5, 5, -5, 5, -1, 1)

const (
	TextHeight   = 0.24
	MenuFadeTime = 0.2 // seconds
	menuRowStep  = 0.40
	menuTop      = 4.55
	textPad      = 0.08
)

type rect struct {
	x, y, w, h float32
}

var (
	coordsRect    = rect{0.8, -5, 5, 0.4}
	menuRect      = rect{-5, 2.1, 2.3, 3.9}
	keyStatusRect = rect{3.2, 4.65, 1.8, 0.4}

	coordsColor    = mgl32.Vec4{0, 0, 0.7, 0.3}
	menuColor      = mgl32.Vec4{0.6, 0.6, 0.6, 0.5}
	highlightColor = mgl32.Vec4{1, 1, 0, 0.7}
	keyStatusColor = mgl32.Vec4{0, 1, 0, 0.5}
)

// Status is the game state the overlay reports.
type Status struct {
	CameraPosition mgl32.Vec3
	Effect         postprocess.Effect
	KeyCollected   bool
}

type HUD struct {
	fill renderer.Program
	font renderer.Program
	quad renderer.Drawable // unit square at the origin

	coords    *Label
	keyStatus *Label
	crosshair *Label
	effects   []*Label

	menuOpen  bool
	menuAlpha float32
	menuFade  *gween.Tween
	menuKey   input.Latch
}

func New(fill, fontProgram renderer.Program, quad renderer.Drawable, upload Uploader) *HUD {
	h := &HUD{
		fill:      fill,
		font:      fontProgram,
		quad:      quad,
		coords:    NewLabel(upload),
		keyStatus: NewLabel(upload),
		crosshair: NewLabel(upload),
	}
	h.keyStatus.Set("Key Collected!")
	h.crosshair.Set("+")
	for _, e := range postprocess.Effects() {
		l := NewLabel(upload)
		l.Set(fmt.Sprintf("%d) %s", int(e), e))
		h.effects = append(h.effects, l)
	}
	return h
}

// FormatCoordinate truncates v to one decimal place.
func FormatCoordinate(v float32) string {
	s := strconv.FormatFloat(float64(v), 'f', 6, 32)
	return s[:strings.IndexByte(s, '.')+2]
}

func FormatCamera(pos mgl32.Vec3) string {
	return fmt.Sprintf(" Camera: (X: %s, Y: %s, Z: %s)",
		FormatCoordinate(pos.X()), FormatCoordinate(pos.Y()), FormatCoordinate(pos.Z()))
}

// ProcessInput toggles the effect menu with E.
func (h *HUD) ProcessInput(keys input.KeyState) {
	if !h.menuKey.Edge(input.Down(keys, glfw.KeyE)) {
		return
	}
	h.menuOpen = !h.menuOpen
	target := float32(0)
	if h.menuOpen {
		target = 1
	}
	h.menuFade = gween.New(h.menuAlpha, target, MenuFadeTime, ease.OutQuad)
}

// Update advances the menu fade.
func (h *HUD) Update(dt float32) {
	if h.menuFade == nil {
		return
	}
	alpha, done := h.menuFade.Update(dt)
	h.menuAlpha = mgl32.Clamp(alpha, 0, 1)
	if done {
		h.menuFade = nil
	}
}

func (h *HUD) MenuOpen() bool {
	return h.menuOpen
}

func (h *HUD) MenuAlpha() float32 {
	return h.menuAlpha
}

// Render draws the overlay on top of the scene. view and projection are the
// scene matrices, restored on the fill program afterwards.
func (h *HUD) Render(dev renderer.Device, status Status, view, projection mgl32.Mat4) {
	dev.SetDepthTest(false)

	h.fill.Use()
	h.fill.SetMat4("view", mgl32.Ident4())
	h.fill.SetMat4("projection", Projection)
	h.fill.SetBool("use_set_color", true)

	h.coords.Set(FormatCamera(status.CameraPosition))
	h.drawRect(coordsRect, coordsColor)
	h.drawLabel(dev, h.coords, coordsRect.x, coordsRect.y+textPad, 1)

	if h.menuAlpha > 0 {
		if r, ok := highlightRect(status.Effect); ok {
			h.drawRect(r, fade(highlightColor, h.menuAlpha))
		}
		h.drawRect(menuRect, fade(menuColor, h.menuAlpha))
		for i, l := range h.effects {
			h.drawLabel(dev, l, menuRect.x+0.1, menuTop-float32(i)*menuRowStep+textPad, h.menuAlpha)
		}
	}

	if status.KeyCollected {
		h.drawRect(keyStatusRect, keyStatusColor)
		h.drawLabel(dev, h.keyStatus, keyStatusRect.x+0.05, keyStatusRect.y+textPad, 1)
	}

	w, _ := h.labelSize(h.crosshair)
	h.drawLabel(dev, h.crosshair, -w/2, -TextHeight/2, 1)

	h.fill.Use()
	h.fill.SetBool("use_set_color", false)
	h.fill.SetMat4("view", view)
	h.fill.SetMat4("projection", projection)
	dev.SetDepthTest(true)
}

// highlightRect is the menu row behind the selected effect.
func highlightRect(e postprocess.Effect) (rect, bool) {
	if e < postprocess.Default || int(e) > postprocess.EffectCount {
		return rect{}, false
	}
	row := float32(e - 1)
	return rect{menuRect.x, menuTop - row*menuRowStep, menuRect.w, menuRowStep}, true
}

func fade(c mgl32.Vec4, alpha float32) mgl32.Vec4 {
	return mgl32.Vec4{c[0], c[1], c[2], c[3] * alpha}
}

func (r rect) model() mgl32.Mat4 {
	return mgl32.Translate3D(r.x, r.y, 0).Mul4(mgl32.Scale3D(r.w, r.h, 1))
}

func (h *HUD) drawRect(r rect, color mgl32.Vec4) {
	h.fill.Use()
	h.fill.SetVec4("set_color", color)
	h.fill.SetMat4("model", r.model())
	h.quad.Draw()
}

// labelSize converts the label's pixel size to overlay units at TextHeight.
func (h *HUD) labelSize(l *Label) (float32, float32) {
	pw, ph := l.Size()
	if ph == 0 {
		return 0, 0
	}
	unit := float32(TextHeight) / float32(ph)
	return float32(pw) * unit, TextHeight
}

func (h *HUD) drawLabel(dev renderer.Device, l *Label, x, y, alpha float32) {
	w, ht := h.labelSize(l)
	h.font.Use()
	h.font.SetMat4("projection", Projection)
	h.font.SetMat4("model", rect{x, y, w, ht}.model())
	h.font.SetInt("texture1", 0)
	h.font.SetFloat("alpha", alpha)
	dev.BindTexture(0, renderer.Texture2D, l.Texture())
	h.quad.Draw()
}
