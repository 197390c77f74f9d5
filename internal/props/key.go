package props

import (
	"PowerOutage/internal/input"
	"PowerOutage/internal/logger"
	"PowerOutage/internal/renderer"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

const (
	KeyRange        = 2.5
	KeyholeRange    = 4.0
	KeyOutlineScale = 0.27
)

var (
	KeyholePoint   = mgl32.Vec3{5.7, -3.7, 2.1}
	KeyInsertedPos = mgl32.Vec3{6.14, -2.85, 0}
)

type KeyPhase int

const (
	KeyOnGround KeyPhase = iota
	KeyCollected
	KeyInserted
)

func (s KeyPhase) String() string {
	switch s {
	case KeyCollected:
		return "collected"
	case KeyInserted:
		return "inserted"
	default:
		return "on_ground"
	}
}

// Key is picked up with K near it and inserted with K near the keyhole.
// Once inserted it stays in the lock.
type Key struct {
	Body
	State        KeyPhase
	FirstCollect bool
	press        input.Latch
}

func NewKey(body Body) *Key {
	return &Key{Body: body}
}

func (k *Key) Collected() bool {
	return k.State == KeyCollected
}

func (k *Key) Inserted() bool {
	return k.State == KeyInserted
}

func (k *Key) ProcessInput(keys input.KeyState, cameraPos mgl32.Vec3) {
	down := input.Down(keys, glfw.KeyK)
	switch k.State {
	case KeyOnGround:
		if k.press.Fire(down, k.distance(cameraPos) < KeyRange) {
			k.State = KeyCollected
			k.FirstCollect = true
			logger.Log.Debug("Key collected")
		}
	case KeyCollected:
		if k.press.Fire(down, cameraPos.Sub(KeyholePoint).Len() < KeyholeRange) {
			k.State = KeyInserted
			k.position = KeyInsertedPos
			logger.Log.Debug("Key inserted", zap.Float32("x", k.position.X()), zap.Float32("z", k.position.Z()))
		}
	default:
		k.press.Fire(down, false)
	}
}

// Draw shows the key on the ground until it is first picked up and pinned in the lock once inserted.
func (k *Key) Draw(ctx renderer.RenderContext) {
	switch {
	case k.State == KeyInserted:
		k.drawWith(ctx, k.insertedModel())
	case k.State == KeyOnGround && !k.FirstCollect:
		k.Body.Draw(ctx)
	}
}

func (k *Key) insertedModel() mgl32.Mat4 {
	return mgl32.Translate3D(k.position.X(), k.position.Y(), k.position.Z()).
		Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(90))).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(-90))).
		Mul4(mgl32.Scale3D(k.scale, k.scale, k.scale)).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(k.orientation)))
}

func (k *Key) Halo(cameraPos mgl32.Vec3) Halo {
	return Halo{
		Visible: k.State != KeyInserted && k.distance(cameraPos) <= KeyRange,
		Scale:   KeyOutlineScale,
		Color:   OutlineBlue,
	}
}
