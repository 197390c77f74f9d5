package world

import "github.com/go-gl/mathgl/mgl32"

// Wall slabs are thin boxes on the XZ plane around the office walls.
const (
	wallInner = 4.86
	wallOuter = 5.14
	doorwayZ  = 2.5
)

// slab is an open XZ interval.
type slab struct {
	minX, maxX, minZ, maxZ float32
	doorway                bool // passable at z >= doorwayZ while the door is open
}

var wallSlabs = []slab{
	{minX: wallInner, maxX: wallOuter, minZ: -wallOuter, maxZ: wallOuter, doorway: true}, // front
	{minX: wallInner - 5, maxX: wallOuter - 5, minZ: -2.5, maxZ: 2.5},                    // middle, along z
	{minX: -wallOuter, maxX: -wallInner, minZ: -wallOuter, maxZ: wallOuter},              // back
	{minX: -wallOuter, maxX: wallOuter, minZ: wallInner, maxZ: wallOuter},                // left
	{minX: -2.5, maxX: wallOuter, minZ: wallInner - 5, maxZ: wallOuter - 5},              // middle, along x
	{minX: -wallOuter, maxX: wallOuter, minZ: -wallOuter, maxZ: -wallInner},              // right
}

func (s slab) contains(x, z float32) bool {
	return x > s.minX && x < s.maxX && z > s.minZ && z < s.maxZ
}

// Blocked reports whether pos is inside a wall.
func Blocked(pos mgl32.Vec3, doorOpen bool) bool {
	x, z := pos.X(), pos.Z()
	for _, s := range wallSlabs {
		if !s.contains(x, z) {
			continue
		}
		if s.doorway && z >= doorwayZ && doorOpen {
			continue
		}
		return true
	}
	return false
}

// Portal is a teleport pad: walking into Trigger moves the camera to Destination.
type Portal struct {
	Trigger     slab
	Destination mgl32.Vec3
}

func portalAt(x, z float32, dest mgl32.Vec3) Portal {
	t := slab{minX: x - 0.5, maxX: x + 0.5}
	if z > 0 {
		t.minZ, t.maxZ = 7.2, 7.5
	} else {
		t.minZ, t.maxZ = -7.5, -7.2
	}
	return Portal{Trigger: t, Destination: dest}
}

// Portals pair up across the street: each pad sends the player in front of another one.
var Portals = []Portal{
	portalAt(10, 7.5, mgl32.Vec3{20, -3, 5.5}),
	portalAt(20, 7.5, mgl32.Vec3{10, -3, 5.5}),
	portalAt(10, -7.5, mgl32.Vec3{20, -3, -5.5}),
	portalAt(20, -7.5, mgl32.Vec3{10, -3, -5.5}),
}

// Teleport returns the destination of the portal pos stands in.
func Teleport(pos mgl32.Vec3) (mgl32.Vec3, bool) {
	for _, p := range Portals {
		if p.Trigger.contains(pos.X(), pos.Z()) {
			return p.Destination, true
		}
	}
	return pos, false
}
