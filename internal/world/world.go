// Package world owns the per-frame game state and drives the shadow and main
// render passes over the scene table and the props.
package world

import (
	"PowerOutage/internal/hud"
	"PowerOutage/internal/input"
	"PowerOutage/internal/logger"
	"PowerOutage/internal/postprocess"
	"PowerOutage/internal/props"
	"PowerOutage/internal/renderer"
	"PowerOutage/internal/scene"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

var (
	SpawnPosition   = mgl32.Vec3{10, -3, -3}
	SpawnYaw        = float32(115)
	RespawnPosition = mgl32.Vec3{20, -3, 0}

	BirdPosition = mgl32.Vec3{-0.5, 18, 1}
	BirdYaw      = float32(-90)
	BirdPitch    = float32(-85)

	// ClearColor is the background of the main pass.
	ClearColor = mgl32.Vec4{0, 0, 0, 1}
)

// Window is what input handling needs from the game window. *glfw.Window satisfies it.
type Window interface {
	input.KeyState
	SetShouldClose(value bool)
}

// Pose is a camera placement saved while the other camera is active.
type Pose struct {
	Position   mgl32.Vec3
	Yaw, Pitch float32
}

// Targets are the framebuffers the passes render into.
type Targets struct {
	ShadowFBO   uint32
	ShadowDepth uint32
	ShadowSize  int32
	PostFBO     uint32
	Width       int32
	Height      int32
}

// Programs are the programs the passes use outside the scene table.
type Programs struct {
	Depth renderer.Program
	Fill  renderer.Program // halos
}

type WorldState struct {
	Camera  *renderer.Camera
	Lights  Lights
	Table   *scene.Table
	Door    *props.Door
	Plate   *props.Plate
	Key     *props.Key
	Post    *postprocess.Processor
	HUD     *hud.HUD
	Skybox  *renderer.Skybox
	Targets Targets
	Programs

	BirdCam bool
	// Saved holds the pose of whichever camera is not active.
	Saved Pose

	DeltaTime float32
	Elapsed   float32

	// Reload runs on the P key; the engine wires it to the shader hot reload.
	Reload func()

	birdKey    input.Latch
	respawnKey input.Latch
	lensKey    input.Latch
	spotKey    input.Latch
	devKey     input.Latch
}

// New builds the world over a validated scene table. The props take their
// placement from the table.
func New(camera *renderer.Camera, table *scene.Table, post *postprocess.Processor, overlay *hud.HUD,
	skybox *renderer.Skybox, targets Targets, programs Programs) *WorldState {
	return &WorldState{
		Camera:   camera,
		Lights:   DefaultLights(),
		Table:    table,
		Door:     props.NewDoor(props.BodyFromObject(table.Get(scene.Door))),
		Plate:    props.NewPlate(props.BodyFromObject(table.Get(scene.Plate))),
		Key:      props.NewKey(props.BodyFromObject(table.Get(scene.Key))),
		Post:     post,
		HUD:      overlay,
		Skybox:   skybox,
		Targets:  targets,
		Programs: programs,
		Saved:    Pose{Position: BirdPosition, Yaw: BirdYaw, Pitch: BirdPitch},
	}
}

// Advance moves the clock by dt seconds.
func (w *WorldState) Advance(dt float32) {
	w.DeltaTime = dt
	w.Elapsed += dt
	w.HUD.Update(dt)
}

// DirOn is the directional light state the shaders receive.
func (w *WorldState) DirOn() bool {
	return EffectiveDirOn(w.Lights.Dir.On, w.BirdCam, w.Plate.Pressed, w.Post.NightVision)
}

func (w *WorldState) ProcessInput(win Window) {
	if input.Down(win, glfw.KeyEscape) {
		win.SetShouldClose(true)
	}

	w.move(win)

	if w.birdKey.Edge(input.Down(win, glfw.KeyTab)) {
		w.toggleBirdCam()
	}

	respawn := input.Down(win, glfw.KeyLeftShift) || input.Down(win, glfw.KeyBackspace)
	if w.respawnKey.Fire(respawn, !w.BirdCam) {
		w.Camera.SetPosition(RespawnPosition)
	}

	if w.lensKey.Edge(input.Down(win, glfw.KeyR)) {
		w.Lights.Spot.ToggleLens()
	}

	spotWasHeld := w.spotKey.Held()
	if w.spotKey.Edge(input.Down(win, glfw.KeyF)) {
		w.Lights.Spot.On = !w.Lights.Spot.On
	}
	if spotWasHeld && !w.spotKey.Held() {
		w.Lights.Spot.Diffuse = whiteDiffuse
	}

	if w.devKey.Edge(input.Down(win, glfw.KeyP)) && w.Reload != nil {
		w.Reload()
	}

	pos := w.Camera.Position
	w.Door.ProcessInput(win, pos, w.Key.Inserted())
	w.Plate.ProcessInput(win, pos)
	w.Key.ProcessInput(win, pos)
	w.HUD.ProcessInput(win)
	w.Post.ProcessInput(win)
}

// move applies WASD, then walls and portals.
func (w *WorldState) move(keys input.KeyState) {
	previous := w.Camera.Position
	if input.Down(keys, glfw.KeyW) {
		w.Camera.ProcessKeyboard(renderer.Forward, w.DeltaTime)
	}
	if input.Down(keys, glfw.KeyS) {
		w.Camera.ProcessKeyboard(renderer.Backward, w.DeltaTime)
	}
	if input.Down(keys, glfw.KeyA) {
		w.Camera.ProcessKeyboard(renderer.Left, w.DeltaTime)
	}
	if input.Down(keys, glfw.KeyD) {
		w.Camera.ProcessKeyboard(renderer.Right, w.DeltaTime)
	}

	if !w.BirdCam && Blocked(w.Camera.Position, w.Door.IsOpen()) {
		w.Camera.SetPosition(previous)
	}
	if dest, ok := Teleport(w.Camera.Position); ok {
		w.Camera.SetPosition(dest)
		logger.Log.Debug("Teleported", zap.Float32("x", dest.X()), zap.Float32("z", dest.Z()))
	}
}

func (w *WorldState) toggleBirdCam() {
	c := w.Camera
	current := Pose{Position: c.Position, Yaw: c.Yaw, Pitch: c.Pitch}
	c.SetPosition(w.Saved.Position)
	c.SetOrientation(w.Saved.Yaw, w.Saved.Pitch)
	w.Saved = current
	w.BirdCam = !w.BirdCam
	logger.Log.Debug("Camera switched", zap.Bool("birdCam", w.BirdCam))
}

// LightSpaceMatrix looks from just above the camera toward a point far along its facing.
func (w *WorldState) LightSpaceMatrix() mgl32.Mat4 {
	projection := mgl32.Ortho(-10, 10, -10, 10, 1, 20)
	eye := w.Camera.Position.Add(mgl32.Vec3{0, 3.2, 0})
	target := w.Camera.Front.Mul(40)
	return projection.Mul4(mgl32.LookAtV(eye, target, mgl32.Vec3{0, 1, 0}))
}
