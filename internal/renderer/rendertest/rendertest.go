// Package rendertest provides recording fakes for the renderer interfaces so
// pass ordering and uniform traffic can be checked without a GL context.
package rendertest

import (
	"PowerOutage/internal/renderer"
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// Log is an ordered list of calls shared by the fakes of one test.
type Log struct {
	Calls []string
}

func (l *Log) add(format string, args ...any) {
	if l != nil {
		l.Calls = append(l.Calls, fmt.Sprintf(format, args...))
	}
}

// Index returns the position of the first call equal to call, or -1.
func (l *Log) Index(call string) int {
	for i, c := range l.Calls {
		if c == call {
			return i
		}
	}
	return -1
}

// Count reports how many calls start with prefix.
func (l *Log) Count(prefix string) int {
	n := 0
	for _, c := range l.Calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

func (l *Log) Reset() {
	l.Calls = l.Calls[:0]
}

// Program records uniform writes and keeps the last value per name.
type Program struct {
	Name   string
	Log    *Log
	Uses   int
	Mat4   map[string]mgl32.Mat4
	Vec3   map[string]mgl32.Vec3
	Vec4   map[string]mgl32.Vec4
	Float  map[string]float32
	Int    map[string]int32
	Bool   map[string]bool
	Writes map[string]int
}

func NewProgram(name string, log *Log) *Program {
	return &Program{
		Name:   name,
		Log:    log,
		Mat4:   map[string]mgl32.Mat4{},
		Vec3:   map[string]mgl32.Vec3{},
		Vec4:   map[string]mgl32.Vec4{},
		Float:  map[string]float32{},
		Int:    map[string]int32{},
		Bool:   map[string]bool{},
		Writes: map[string]int{},
	}
}

func (p *Program) Use() {
	p.Uses++
	p.Log.add("%s.Use", p.Name)
}

func (p *Program) SetMat4(name string, v mgl32.Mat4) {
	p.Mat4[name] = v
	p.Writes[name]++
	p.Log.add("%s.%s", p.Name, name)
}

func (p *Program) SetVec3(name string, v mgl32.Vec3) {
	p.Vec3[name] = v
	p.Writes[name]++
	p.Log.add("%s.%s", p.Name, name)
}

func (p *Program) SetVec4(name string, v mgl32.Vec4) {
	p.Vec4[name] = v
	p.Writes[name]++
	p.Log.add("%s.%s", p.Name, name)
}

func (p *Program) SetFloat(name string, v float32) {
	p.Float[name] = v
	p.Writes[name]++
	p.Log.add("%s.%s", p.Name, name)
}

func (p *Program) SetInt(name string, v int32) {
	p.Int[name] = v
	p.Writes[name]++
	p.Log.add("%s.%s=%d", p.Name, name, v)
}

func (p *Program) SetBool(name string, v bool) {
	p.Bool[name] = v
	p.Writes[name]++
	p.Log.add("%s.%s=%t", p.Name, name, v)
}

// Device tracks the GL state a real context would hold.
type Device struct {
	Log          *Log
	Framebuffer  uint32
	Width        int32
	Height       int32
	Clears       int
	DepthTest    bool
	DepthFunc    renderer.DepthFunc
	StencilFunc  renderer.StencilFunc
	StencilRef   int32
	StencilMask  uint32
	StencilRead  uint32
	TextureUnits map[uint32]uint32
}

// NewDevice starts in the state renderer.InitState establishes.
func NewDevice(log *Log) *Device {
	return &Device{
		Log:          log,
		DepthTest:    true,
		DepthFunc:    renderer.DepthLess,
		StencilFunc:  renderer.StencilAlways,
		StencilRef:   1,
		StencilMask:  0xFF,
		StencilRead:  0xFF,
		TextureUnits: map[uint32]uint32{},
	}
}

func (d *Device) BindFramebuffer(fbo uint32) {
	d.Framebuffer = fbo
	d.Log.add("BindFramebuffer %d", fbo)
}

func (d *Device) Viewport(width, height int32) {
	d.Width, d.Height = width, height
	d.Log.add("Viewport %dx%d", width, height)
}

func (d *Device) Clear(mgl32.Vec4) {
	d.Clears++
	d.StencilMask = 0xFF
	d.Log.add("Clear %d", d.Framebuffer)
}

func (d *Device) SetDepthTest(enabled bool) {
	d.DepthTest = enabled
	d.Log.add("DepthTest %t", enabled)
}

func (d *Device) SetDepthFunc(fn renderer.DepthFunc) {
	d.DepthFunc = fn
	d.Log.add("DepthFunc %s", depthName(fn))
}

func (d *Device) SetStencilFunc(fn renderer.StencilFunc, ref int32, mask uint32) {
	d.StencilFunc, d.StencilRef, d.StencilRead = fn, ref, mask
	d.Log.add("StencilFunc %s %d 0x%02X", stencilName(fn), ref, mask)
}

func (d *Device) SetStencilMask(mask uint32) {
	d.StencilMask = mask
	d.Log.add("StencilMask 0x%02X", mask)
}

func (d *Device) BindTexture(unit uint32, target renderer.TextureTarget, texture uint32) {
	d.TextureUnits[unit] = texture
	d.Log.add("BindTexture %d %d", unit, texture)
}

func depthName(fn renderer.DepthFunc) string {
	if fn == renderer.DepthEqual {
		return "EQUAL"
	}
	return "LESS"
}

func stencilName(fn renderer.StencilFunc) string {
	if fn == renderer.StencilNotEqual {
		return "NOTEQUAL"
	}
	return "ALWAYS"
}

// Drawable counts draw calls.
type Drawable struct {
	Name  string
	Log   *Log
	Draws int
}

func NewDrawable(name string, log *Log) *Drawable {
	return &Drawable{Name: name, Log: log}
}

func (d *Drawable) Draw() {
	d.Draws++
	d.Log.add("Draw %s", d.Name)
}
