package scene

import "fmt"

// ObjectID names every object in the scene table. Static objects come first,
// in draw order; the interactable props follow.
type ObjectID int

const (
	WorldFloor ObjectID = iota
	OfficeFloor
	Walls
	Furniture
	Keyhole
	Lamppost
	Portal1
	Portal2
	Portal3
	Portal4
	Building1
	Building2
	Building3
	Building4
	Cube1
	Cube2
	Door
	Plate
	Key
	objectCount
)

// firstProp splits the static draw list from the props.
const firstProp = Door

var objectNames = [objectCount]string{
	WorldFloor:  "worldFloor",
	OfficeFloor: "officeFloor",
	Walls:       "walls",
	Furniture:   "furniture",
	Keyhole:     "keyhole",
	Lamppost:    "lamppost",
	Portal1:     "portal1",
	Portal2:     "portal2",
	Portal3:     "portal3",
	Portal4:     "portal4",
	Building1:   "building1",
	Building2:   "building2",
	Building3:   "building3",
	Building4:   "building4",
	Cube1:       "cube1",
	Cube2:       "cube2",
	Door:        "door",
	Plate:       "pressurePlate",
	Key:         "key",
}

func (id ObjectID) String() string {
	if id < 0 || id >= objectCount {
		return fmt.Sprintf("ObjectID(%d)", int(id))
	}
	return objectNames[id]
}

func ParseObjectID(name string) (ObjectID, error) {
	for id := ObjectID(0); id < objectCount; id++ {
		if objectNames[id] == name {
			return id, nil
		}
	}
	return 0, fmt.Errorf("unknown scene object %q", name)
}

// IsProp reports whether id is drawn by an interactable prop rather than the static pass.
func (id ObjectID) IsProp() bool {
	return id >= firstProp && id < objectCount
}

// AllObjects lists every ID in draw order.
func AllObjects() []ObjectID {
	ids := make([]ObjectID, objectCount)
	for i := range ids {
		ids[i] = ObjectID(i)
	}
	return ids
}
