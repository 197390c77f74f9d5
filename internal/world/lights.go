package world

import (
	"PowerOutage/internal/renderer"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Shininess is the specular exponent shared by every lit program.
const Shininess = 256

// PointLight hangs above the office.
type PointLight struct {
	Position mgl32.Vec3
	Color    mgl32.Vec3
	On       bool
}

// SpotLight is the flashlight. Its position and direction follow the camera.
type SpotLight struct {
	Ambient  mgl32.Vec3
	Diffuse  mgl32.Vec3
	Specular mgl32.Vec3
	On       bool
	RedLens  bool
}

// DirLight is the sun. On is the stored flag only; see EffectiveDirOn.
type DirLight struct {
	Direction mgl32.Vec3
	Color     mgl32.Vec3
	On        bool
}

type Lights struct {
	Point PointLight
	Spot  SpotLight
	Dir   DirLight
}

var (
	whiteDiffuse = mgl32.Vec3{0.8, 0.8, 0.8}

	spotCutOff      = math32.Cos(mgl32.DegToRad(12.5))
	spotOuterCutOff = math32.Cos(mgl32.DegToRad(17.5))
)

func DefaultLights() Lights {
	l := Lights{
		Point: PointLight{Position: mgl32.Vec3{0.1, 10, 0.1}, Color: mgl32.Vec3{0.5, 0.5, 0.5}, On: true},
		Spot:  SpotLight{On: true},
		Dir:   DirLight{Direction: mgl32.Vec3{0, -1, 0}, Color: mgl32.Vec3{0.4, 0.4, 0.4}},
	}
	l.Spot.setPalette(false)
	return l
}

func (s *SpotLight) setPalette(red bool) {
	s.RedLens = red
	if red {
		s.Ambient = mgl32.Vec3{0.2, 0, 0}
		s.Diffuse = mgl32.Vec3{1, 0, 0}
		s.Specular = mgl32.Vec3{1, 0, 0}
		return
	}
	s.Ambient = mgl32.Vec3{0.1, 0.1, 0.1}
	s.Diffuse = whiteDiffuse
	s.Specular = mgl32.Vec3{1, 1, 1}
}

// ToggleLens swaps between the white and red palettes.
func (s *SpotLight) ToggleLens() {
	s.setPalette(!s.RedLens)
}

// EffectiveDirOn is what the shaders see for the directional light. The sun
// comes on for the overview camera, while the plate is held down and under
// night vision, whatever the stored flag says.
func EffectiveDirOn(stored, birdCam, platePressed, nightVision bool) bool {
	return stored || birdCam || platePressed || nightVision
}

// Apply pushes every light uniform to p. eye is the camera position and
// front its facing, which the flashlight follows.
func (l *Lights) Apply(p renderer.Program, eye, front mgl32.Vec3, dirOn bool) {
	p.SetVec3("point_light.position", l.Point.Position)
	p.SetVec3("point_light.ambient", l.Point.Color.Mul(0.2))
	p.SetVec3("point_light.diffuse", l.Point.Color)
	p.SetVec3("point_light.specular", l.Point.Color)
	p.SetFloat("point_light.constant", 1)
	p.SetFloat("point_light.linear", 0.14)
	p.SetFloat("point_light.quadratic", 0.07)
	p.SetBool("point_light.on", l.Point.On)

	p.SetVec3("spot_light.position", eye)
	p.SetVec3("spot_light.direction", front)
	p.SetFloat("spot_light.cutOff", spotCutOff)
	p.SetFloat("spot_light.outerCutOff", spotOuterCutOff)
	p.SetVec3("spot_light.ambient", l.Spot.Ambient)
	p.SetVec3("spot_light.diffuse", l.Spot.Diffuse)
	p.SetVec3("spot_light.specular", l.Spot.Specular)
	p.SetFloat("spot_light.constant", 1)
	p.SetFloat("spot_light.linear", 0.09)
	p.SetFloat("spot_light.quadratic", 0.032)
	p.SetBool("spot_light.on", l.Spot.On)

	p.SetVec3("dir_light.direction", l.Dir.Direction)
	p.SetVec3("dir_light.ambient", l.Dir.Color.Mul(0.2))
	p.SetVec3("dir_light.diffuse", l.Dir.Color)
	p.SetVec3("dir_light.specular", l.Dir.Color)
	p.SetBool("dir_light.on", dirOn)
}
