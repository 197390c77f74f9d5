package world

import (
	"PowerOutage/internal/hud"
	"PowerOutage/internal/input"
	"PowerOutage/internal/postprocess"
	"PowerOutage/internal/props"
	"PowerOutage/internal/renderer"
	"PowerOutage/internal/renderer/rendertest"
	"PowerOutage/internal/scene"
	"image"
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	shadowFBO   = 1
	shadowDepth = 2
	postFBO     = 3
)

type fakeResources struct {
	log      *rendertest.Log
	programs map[renderer.ShaderKind]*rendertest.Program
}

func (r *fakeResources) Model(p scene.Placement) (scene.Model, error) {
	name := p.Model
	if name == "" {
		name = p.Mesh
	}
	return scene.Model{Drawable: rendertest.NewDrawable(name, r.log), TexturePath: name + ".png"}, nil
}

func (r *fakeResources) Texture(path string) uint32 {
	return 10
}

func (r *fakeResources) Program(kind renderer.ShaderKind) renderer.Program {
	return r.programs[kind]
}

type fakeWindow struct {
	input.Keys
	closed bool
}

func (w *fakeWindow) SetShouldClose(value bool) {
	w.closed = value
}

type fixture struct {
	w      *WorldState
	log    *rendertest.Log
	dev    *rendertest.Device
	win    *fakeWindow
	depth  *rendertest.Program
	fill   *rendertest.Program
	tables map[renderer.ShaderKind]*rendertest.Program
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := &rendertest.Log{}
	res := &fakeResources{log: log, programs: map[renderer.ShaderKind]*rendertest.Program{
		renderer.FillShader:    rendertest.NewProgram("fill", log),
		renderer.TextureShader: rendertest.NewProgram("texture", log),
		renderer.ImportShader:  rendertest.NewProgram("import", log),
	}}
	table, err := scene.Build(scene.DefaultLayout(), res)
	require.NoError(t, err)

	quad := rendertest.NewDrawable("quad", log)
	var next uint32
	overlay := hud.New(rendertest.NewProgram("hudfill", log), rendertest.NewProgram("font", log), quad,
		func(id uint32, _ *image.RGBA) uint32 {
			if id == 0 {
				next++
				id = 100 + next
			}
			return id
		})
	sky := &renderer.Skybox{
		Program: rendertest.NewProgram("skybox", log),
		Cube:    rendertest.NewDrawable("sky", log),
		CubeMap: 9,
	}
	depth := rendertest.NewProgram("depth", log)
	camera := renderer.NewCamera(SpawnPosition, SpawnYaw, 0, 960, 720)

	w := New(camera, table, postprocess.NewProcessor(quad), overlay, sky,
		Targets{ShadowFBO: shadowFBO, ShadowDepth: shadowDepth, ShadowSize: 2048, PostFBO: postFBO, Width: 960, Height: 720},
		Programs{Depth: depth, Fill: res.programs[renderer.FillShader]})

	return &fixture{
		w:      w,
		log:    log,
		dev:    rendertest.NewDevice(log),
		win:    &fakeWindow{Keys: input.Keys{}},
		depth:  depth,
		fill:   res.programs[renderer.FillShader],
		tables: res.programs,
	}
}

// place puts the camera at pos facing yaw, pitch 0.
func (f *fixture) place(pos mgl32.Vec3, yaw float32) {
	f.w.Camera.SetPosition(pos)
	f.w.Camera.SetOrientation(yaw, 0)
}

func TestEffectiveDirOnTruthTable(t *testing.T) {
	for mask := 0; mask < 16; mask++ {
		stored, bird, plate, night := mask&1 != 0, mask&2 != 0, mask&4 != 0, mask&8 != 0
		assert.Equal(t, mask != 0, EffectiveDirOn(stored, bird, plate, night), "mask %04b", mask)
	}
}

func TestDirOnFollowsWorldState(t *testing.T) {
	f := newFixture(t)
	assert.False(t, f.w.DirOn())

	f.w.Post.Select(postprocess.NightVision)
	assert.True(t, f.w.DirOn())
	f.w.Post.Select(postprocess.Default)

	f.w.Plate.Pressed = true
	assert.True(t, f.w.DirOn())
	f.w.Plate.Pressed = false

	f.w.BirdCam = true
	assert.True(t, f.w.DirOn())
	assert.False(t, f.w.Lights.Dir.On, "the stored flag is untouched")
}

func TestEscapeClosesWindow(t *testing.T) {
	f := newFixture(t)
	f.w.ProcessInput(f.win)
	assert.False(t, f.win.closed)

	f.win.Press(glfw.KeyEscape)
	f.w.ProcessInput(f.win)
	assert.True(t, f.win.closed)
}

func TestZeroDeltaChangesNothing(t *testing.T) {
	f := newFixture(t)
	f.w.Advance(0)
	before := *f.w.Camera

	f.win.Press(glfw.KeyW, glfw.KeyA, glfw.KeyS, glfw.KeyD)
	f.w.ProcessInput(f.win)

	assert.Equal(t, before.Position, f.w.Camera.Position)
	assert.Equal(t, before.Front, f.w.Camera.Front)
	assert.False(t, f.w.BirdCam)
}

func TestWalkingIntoWallReverts(t *testing.T) {
	f := newFixture(t)
	start := mgl32.Vec3{4.8, -3, 0}
	f.place(start, 0)
	f.w.Advance(0.2 / f.w.Camera.Speed)

	f.win.Press(glfw.KeyW)
	f.w.ProcessInput(f.win)
	assert.Equal(t, start, f.w.Camera.Position)
}

func TestDoorwayOpensWithDoor(t *testing.T) {
	f := newFixture(t)
	start := mgl32.Vec3{4.8, -3, 3}
	f.place(start, 0)
	f.w.Advance(0.2 / f.w.Camera.Speed)
	f.win.Press(glfw.KeyW)

	f.w.ProcessInput(f.win)
	assert.Equal(t, start, f.w.Camera.Position, "closed door blocks the doorway")

	f.w.Door.State = props.DoorOpen
	f.w.ProcessInput(f.win)
	assert.InDelta(t, 5.0, f.w.Camera.Position.X(), 1e-4)
}

func TestBlocked(t *testing.T) {
	assert.True(t, Blocked(mgl32.Vec3{5, -3, 0}, false))
	assert.True(t, Blocked(mgl32.Vec3{5, -3, 0}, true), "solid part of the front wall")
	assert.True(t, Blocked(mgl32.Vec3{5, -3, 3}, false))
	assert.False(t, Blocked(mgl32.Vec3{5, -3, 3}, true))
	assert.True(t, Blocked(mgl32.Vec3{0, -3, 1}, false), "middle wall along z")
	assert.True(t, Blocked(mgl32.Vec3{-5, -3, 1}, false), "back wall")
	assert.True(t, Blocked(mgl32.Vec3{1, -3, 5}, false), "left wall")
	assert.True(t, Blocked(mgl32.Vec3{1, -3, 0}, false), "middle wall along x")
	assert.True(t, Blocked(mgl32.Vec3{1, -3, -5}, false), "right wall")
	assert.False(t, Blocked(mgl32.Vec3{2, -3, 2}, false))
	assert.False(t, Blocked(SpawnPosition, false))
}

func TestBirdCamSkipsCollision(t *testing.T) {
	f := newFixture(t)
	f.w.BirdCam = true
	start := mgl32.Vec3{4.8, 18, 0}
	f.place(start, 0)
	f.w.Advance(0.2 / f.w.Camera.Speed)

	f.win.Press(glfw.KeyW)
	f.w.ProcessInput(f.win)
	assert.InDelta(t, 5.0, f.w.Camera.Position.X(), 1e-4)
}

func TestPortalTeleports(t *testing.T) {
	f := newFixture(t)
	f.place(mgl32.Vec3{10, -3, 7.0}, 90)
	f.w.Advance(0.3 / f.w.Camera.Speed)

	f.win.Press(glfw.KeyW)
	f.w.ProcessInput(f.win)
	assert.Equal(t, mgl32.Vec3{20, -3, 5.5}, f.w.Camera.Position)

	for i, p := range Portals {
		dest, ok := Teleport(mgl32.Vec3{(p.Trigger.minX + p.Trigger.maxX) / 2, -3, (p.Trigger.minZ + p.Trigger.maxZ) / 2})
		require.True(t, ok, "portal %d", i+1)
		assert.Equal(t, p.Destination, dest)
		_, again := Teleport(dest)
		assert.False(t, again, "portal %d lands outside every trigger", i+1)
	}
}

func TestBirdCamRoundTrip(t *testing.T) {
	f := newFixture(t)
	f.place(mgl32.Vec3{2, -3, 2}, 33)
	player := *f.w.Camera

	f.win.Press(glfw.KeyTab)
	f.w.ProcessInput(f.win)
	require.True(t, f.w.BirdCam)
	assert.Equal(t, BirdPosition, f.w.Camera.Position)
	assert.Equal(t, BirdPitch, f.w.Camera.Pitch)

	f.w.ProcessInput(f.win)
	assert.True(t, f.w.BirdCam, "held Tab switches once")

	f.win.Release(glfw.KeyTab)
	f.w.ProcessInput(f.win)
	f.win.Press(glfw.KeyTab)
	f.w.ProcessInput(f.win)

	assert.False(t, f.w.BirdCam)
	assert.Equal(t, player.Position, f.w.Camera.Position)
	assert.Equal(t, player.Yaw, f.w.Camera.Yaw)
	assert.Equal(t, player.Pitch, f.w.Camera.Pitch)
	assert.Equal(t, player.Front, f.w.Camera.Front)
	assert.Equal(t, BirdPosition, f.w.Saved.Position)
}

func TestRespawn(t *testing.T) {
	f := newFixture(t)
	f.place(mgl32.Vec3{2, -3, 2}, 0)

	f.win.Press(glfw.KeyBackspace)
	f.w.ProcessInput(f.win)
	assert.Equal(t, RespawnPosition, f.w.Camera.Position)

	f.win.Release(glfw.KeyBackspace)
	f.w.BirdCam = true
	f.place(BirdPosition, BirdYaw)
	f.win.Press(glfw.KeyLeftShift)
	f.w.ProcessInput(f.win)
	assert.Equal(t, BirdPosition, f.w.Camera.Position, "no respawn from the overview camera")
}

func TestFlashlightKeys(t *testing.T) {
	f := newFixture(t)
	spot := &f.w.Lights.Spot
	require.True(t, spot.On)

	f.win.Press(glfw.KeyF)
	f.w.ProcessInput(f.win)
	f.w.ProcessInput(f.win)
	assert.False(t, spot.On, "held F toggles once")

	f.win.Press(glfw.KeyR)
	f.w.ProcessInput(f.win)
	assert.True(t, spot.RedLens)
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, spot.Diffuse)
	assert.Equal(t, mgl32.Vec3{0.2, 0, 0}, spot.Ambient)

	f.win.Release(glfw.KeyF)
	f.w.ProcessInput(f.win)
	assert.Equal(t, mgl32.Vec3{0.8, 0.8, 0.8}, spot.Diffuse, "releasing F resets the diffuse")
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, spot.Specular)

	f.win.Release(glfw.KeyR)
	f.w.ProcessInput(f.win)
	f.win.Press(glfw.KeyR)
	f.w.ProcessInput(f.win)
	assert.False(t, spot.RedLens)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, spot.Specular)
}

func TestDevKeyReloads(t *testing.T) {
	f := newFixture(t)
	reloads := 0
	f.w.Reload = func() { reloads++ }

	f.win.Press(glfw.KeyP)
	f.w.ProcessInput(f.win)
	f.w.ProcessInput(f.win)
	f.win.Release(glfw.KeyP)
	f.w.ProcessInput(f.win)
	f.win.Press(glfw.KeyP)
	f.w.ProcessInput(f.win)
	assert.Equal(t, 2, reloads)
}

func TestKeyAndDoorThroughWorldInput(t *testing.T) {
	f := newFixture(t)
	f.place(mgl32.Vec3{14, -3, 1}, 0)
	f.win.Press(glfw.KeyK)
	f.w.ProcessInput(f.win)
	require.True(t, f.w.Key.Collected())
	f.win.Release(glfw.KeyK)
	f.w.ProcessInput(f.win)

	f.place(mgl32.Vec3{4, -3, 2.1}, 0)
	f.win.Press(glfw.KeyK)
	f.w.ProcessInput(f.win)
	require.True(t, f.w.Key.Inserted())

	f.place(mgl32.Vec3{4, -3, 3.75}, 0)
	f.win.Press(glfw.KeySpace)
	f.w.ProcessInput(f.win)
	assert.True(t, f.w.Door.IsOpen())
}

// segment returns the calls between the first occurrence of from and the next occurrence of to.
func segment(log *rendertest.Log, from, to string) []string {
	start := log.Index(from)
	if start < 0 {
		return nil
	}
	for i := start + 1; i < len(log.Calls); i++ {
		if log.Calls[i] == to {
			return log.Calls[start:i]
		}
	}
	return log.Calls[start:]
}

func countPrefix(calls []string, prefix string) int {
	n := 0
	for _, c := range calls {
		if len(c) >= len(prefix) && c[:len(prefix)] == prefix {
			n++
		}
	}
	return n
}

func TestShadowPassDrawsCastersWithDepthProgram(t *testing.T) {
	f := newFixture(t)
	f.w.RenderScene(f.dev)

	shadow := segment(f.log, "BindFramebuffer 1", "BindFramebuffer 3")
	require.NotEmpty(t, shadow)
	assert.Contains(t, shadow, "Viewport 2048x2048")
	assert.Contains(t, shadow, "Draw models/furniture")
	assert.Contains(t, shadow, "Draw models/keyhole")
	assert.Contains(t, shadow, "Draw models/lamppost")
	assert.Contains(t, shadow, "Draw models/key")
	assert.Equal(t, 2, countPrefix(shadow, "Draw cube"))
	assert.Equal(t, 6, countPrefix(shadow, "Draw "))
	assert.NotContains(t, shadow, "Draw models/walls")
	assert.Zero(t, countPrefix(shadow, "import.Use"), "casters draw with the depth program")
	assert.Equal(t, f.w.LightSpaceMatrix(), f.depth.Mat4["lightSpaceMatrix"])
}

func TestMainPassOrder(t *testing.T) {
	f := newFixture(t)
	// Next to the door: one halo.
	f.place(mgl32.Vec3{5.5, -3, 3.75}, 0)
	f.w.RenderScene(f.dev)

	calls := f.log.Calls
	last := func(call string) int {
		for i := len(calls) - 1; i >= 0; i-- {
			if calls[i] == call {
				return i
			}
		}
		return -1
	}

	post := f.log.Index("BindFramebuffer 3")
	require.Greater(t, post, f.log.Index("BindFramebuffer 1"), "shadow pass first")
	assert.Equal(t, "Viewport 960x720", calls[post+1])
	assert.Greater(t, f.log.Index("BindTexture 1 2"), post, "shadow depth on unit 1")

	mark := f.log.Index("StencilFunc ALWAYS 1 0xFF")
	halo := f.log.Index("StencilFunc NOTEQUAL 1 0xFF")
	sky := f.log.Index("Draw sky")
	require.Positive(t, mark)
	require.Positive(t, halo)

	assert.Greater(t, mark, last("Draw cube"), "props after the static objects")
	assert.Less(t, mark, f.log.Index("Draw models/door"))
	assert.Greater(t, halo, f.log.Index("Draw models/door"))
	assert.Greater(t, last("Draw models/door"), halo, "halo redraws the door")
	assert.Greater(t, sky, last("Draw models/door"))
	assert.Greater(t, f.log.Index("Draw quad"), sky, "HUD last")
	assert.Equal(t, 1, f.log.Count("StencilFunc NOTEQUAL"))
}

func TestHaloRestoresState(t *testing.T) {
	f := newFixture(t)
	f.place(mgl32.Vec3{5.5, -3, 3.75}, 0)
	f.w.RenderScene(f.dev)

	assert.Equal(t, renderer.StencilAlways, f.dev.StencilFunc)
	assert.Equal(t, uint32(0xFF), f.dev.StencilRead)
	assert.Equal(t, uint32(0xFF), f.dev.StencilMask)
	assert.True(t, f.dev.DepthTest)
	assert.Equal(t, renderer.DepthLess, f.dev.DepthFunc)
	assert.Equal(t, float32(0.638), f.w.Door.Scale())
	assert.False(t, f.fill.Bool["use_set_color"])
	assert.Equal(t, props.DoorLockedRed, f.fill.Vec4["set_color"], "locked door glows red")
}

func TestNoHaloWhenFar(t *testing.T) {
	f := newFixture(t)
	f.place(mgl32.Vec3{-3, -3, -3}, 0)
	f.w.RenderScene(f.dev)
	assert.Zero(t, f.log.Count("StencilFunc NOTEQUAL"))
	assert.Zero(t, f.fill.Writes["set_color"])
}

func TestProgramsConfiguredOncePerFrame(t *testing.T) {
	f := newFixture(t)
	f.w.BirdCam = true
	f.w.Advance(0.5)
	f.w.RenderScene(f.dev)

	for kind, p := range f.tables {
		assert.Equal(t, 1, p.Writes["view"], "%s view", kind)
		assert.Equal(t, 1, p.Writes["dir_light.on"], "%s dir light", kind)
		assert.True(t, p.Bool["dir_light.on"], "%s: the overview camera lights the scene", kind)
		assert.Equal(t, int32(1), p.Int["depth_image"])
		assert.Equal(t, int32(0), p.Int["texture_image"])
		assert.Equal(t, float32(0.5), p.Float["time"])
		assert.Equal(t, f.w.Camera.Position.Vec4(1), p.Vec4["view_position"])
	}
	assert.Zero(t, f.depth.Writes["view"])
}
