package props

import (
	"PowerOutage/internal/input"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	PlateRange            = 1.2
	PlateOutlineScale     = 0.52
	PlateOutlineExtra     = 0.8
	PlatePressedElevation = -4.03
)

// Plate is pressed while the camera stands on it. Space while standing on it
// toggles a sticky flag that keeps it pressed after stepping off.
type Plate struct {
	Body
	Pressed bool
	Sticky  bool
	toggle  input.Latch
}

func NewPlate(body Body) *Plate {
	return &Plate{Body: body}
}

func (p *Plate) ProcessInput(keys input.KeyState, cameraPos mgl32.Vec3) {
	inRange := p.distance(cameraPos) < PlateRange
	if p.toggle.Fire(input.Down(keys, glfw.KeySpace), inRange) {
		p.Sticky = !p.Sticky
	}

	if inRange {
		p.Pressed = true
	} else if !p.Sticky {
		p.Pressed = false
	}

	if p.Pressed {
		p.position = mgl32.Vec3{p.position.X(), PlatePressedElevation, p.position.Z()}
	} else {
		p.position = p.originalPosition
	}
}

func (p *Plate) Halo(cameraPos mgl32.Vec3) Halo {
	return Halo{
		Visible: p.distance(cameraPos) <= PlateRange+PlateOutlineExtra,
		Scale:   PlateOutlineScale,
		Color:   OutlineBlue,
	}
}
