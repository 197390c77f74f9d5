package props

import (
	"PowerOutage/internal/input"
	"PowerOutage/internal/logger"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

const (
	DoorRange        = 2.5
	DoorOutlineScale = 0.655
	DoorOpenRotation = 90
)

var (
	DoorOpenAnchor = mgl32.Vec3{3.42, -3.99, 4.9}
	DoorLockedRed  = mgl32.Vec4{1, 0, 0, 0.5}
)

type DoorState int

const (
	DoorClosed DoorState = iota
	DoorOpen
)

func (s DoorState) String() string {
	if s == DoorOpen {
		return "open"
	}
	return "closed"
}

type Door struct {
	Body
	State  DoorState
	toggle input.Latch
}

func NewDoor(body Body) *Door {
	return &Door{Body: body}
}

func (d *Door) IsOpen() bool {
	return d.State == DoorOpen
}

// ProcessInput toggles the door on Space when the camera is in range and the key is inserted.
func (d *Door) ProcessInput(keys input.KeyState, cameraPos mgl32.Vec3, keyInserted bool) {
	inRange := d.distance(cameraPos) < DoorRange
	if !d.toggle.Fire(input.Down(keys, glfw.KeySpace), inRange && keyInserted) {
		return
	}

	if d.State == DoorClosed {
		d.State = DoorOpen
		d.rotation = DoorOpenRotation
		d.position = DoorOpenAnchor
	} else {
		d.State = DoorClosed
		d.rotation = 0
		d.position = d.originalPosition
	}
	logger.Log.Debug("Door toggled", zap.Stringer("state", d.State))
}

// Halo is red while the door is locked and blue once the key is in.
func (d *Door) Halo(cameraPos mgl32.Vec3, keyInserted bool) Halo {
	color := DoorLockedRed
	if keyInserted {
		color = OutlineBlue
	}
	return Halo{Visible: d.distance(cameraPos) <= DoorRange, Scale: DoorOutlineScale, Color: color}
}
