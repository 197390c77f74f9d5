// Package engine opens the window, loads the office and runs the frame loop.
package engine

import (
	"PowerOutage/internal/config"
	"PowerOutage/internal/hud"
	"PowerOutage/internal/logger"
	"PowerOutage/internal/postprocess"
	"PowerOutage/internal/renderer"
	"PowerOutage/internal/scene"
	"PowerOutage/internal/world"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"
)

// Game holds everything the loop needs. GL resources are released by Close.
type Game struct {
	cfg     config.Config
	window  *glfw.Window
	device  renderer.GLDevice
	cleanup renderer.Unwind

	shaders  *renderer.ShaderLibrary
	post     *renderer.PostBuffer
	reloader *shaderReloader

	World *world.WorldState
}

// Run opens the window, plays until it is closed and tears everything down.
// The returned error is an initialisation failure.
func Run(cfg config.Config) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("init glfw: %w", err)
	}
	defer glfw.Terminate()

	window, err := createWindow(cfg.Window)
	if err != nil {
		return err
	}
	defer window.Destroy()

	game, err := newGame(cfg, window)
	if err != nil {
		return err
	}
	defer game.Close()

	game.Loop()
	return nil
}

func createWindow(wc config.WindowConfig) (*glfw.Window, error) {
	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.StencilBits, 8)

	window, err := glfw.CreateWindow(int(wc.Width), int(wc.Height), wc.Title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		window.Destroy()
		return nil, fmt.Errorf("init OpenGL: %w", err)
	}
	logger.Log.Info("OpenGL ready", zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))))
	return window, nil
}

func newGame(cfg config.Config, window *glfw.Window) (*Game, error) {
	g := &Game{cfg: cfg, window: window}
	ok := false
	defer func() {
		if !ok {
			g.cleanup.Unwind()
		}
	}()

	renderer.InitState()

	shaders, err := renderer.NewShaderLibrary(cfg.Assets.ShaderDir)
	if err != nil {
		return nil, fmt.Errorf("compile shaders: %w", err)
	}
	g.shaders = shaders
	g.cleanup.Add(shaders.Delete)

	g.reloader = &shaderReloader{library: shaders, auto: cfg.Assets.HotReload}
	if dir := cfg.Assets.ShaderDir; dir != "" {
		watcher, err := renderer.NewShaderWatcher(dir)
		if err != nil {
			logger.Log.Warn("Shader hot reload disabled", zap.Error(err))
		} else {
			g.reloader.watcher = watcher
		}
	}
	g.cleanup.Add(g.reloader.close)

	textures := renderer.NewTextureManager()
	g.cleanup.Add(textures.Delete)
	assets := scene.NewAssets(cfg.Assets.Dir, textures, shaders)
	g.cleanup.Add(assets.Delete)

	layout, err := scene.LoadLayout(cfg.AssetPath(cfg.Assets.Layout))
	if err != nil {
		return nil, err
	}
	table, err := scene.Build(layout, assets)
	if err != nil {
		return nil, err
	}

	shadow, err := renderer.NewShadowMap(cfg.Render.ShadowSize)
	if err != nil {
		return nil, err
	}
	g.cleanup.Add(shadow.Delete)
	g.post, err = renderer.NewPostBuffer(cfg.Window.Width, cfg.Window.Height)
	if err != nil {
		return nil, err
	}
	g.cleanup.Add(g.post.Delete)

	screen, err := renderer.NewMesh(renderer.ScreenQuadData())
	if err != nil {
		return nil, err
	}
	g.cleanup.Add(screen.Delete)
	hudQuad, err := renderer.NewMesh(renderer.RectData(0, 0, 1, 1, 1))
	if err != nil {
		return nil, err
	}
	g.cleanup.Add(hudQuad.Delete)

	var faces [6]string
	for i, f := range renderer.SkyboxFaces {
		faces[i] = cfg.AssetPath(f)
	}
	skybox := renderer.NewSkybox(shaders.Get(renderer.SkyboxShader), textures.CubeMap(faces, false))
	g.cleanup.Add(skybox.Delete)

	camera := renderer.NewCamera(world.SpawnPosition, world.SpawnYaw, 0, cfg.Window.Width, cfg.Window.Height)
	camera.Speed = cfg.Camera.Speed
	camera.Sensitivity = cfg.Camera.Sensitivity
	camera.Zoom = cfg.Render.Fov
	camera.Near, camera.Far = cfg.Render.Near, cfg.Render.Far
	camera.UpdateProjection()

	fill := shaders.Get(renderer.FillShader)
	overlay := hud.New(fill, shaders.Get(renderer.FontShader), hudQuad, renderer.UploadTexture)

	g.World = world.New(camera, table, postprocess.NewProcessor(screen), overlay, skybox,
		world.Targets{
			ShadowFBO:   shadow.FBO,
			ShadowDepth: shadow.DepthTexture,
			ShadowSize:  shadow.Size,
			PostFBO:     g.post.FBO,
			Width:       cfg.Window.Width,
			Height:      cfg.Window.Height,
		},
		world.Programs{Depth: shaders.Get(renderer.DepthShader), Fill: fill})
	g.World.Reload = g.reloader.reloadNow

	mouse := newMouseLook(camera, cfg.Window.Width, cfg.Window.Height)
	window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	window.SetCursorPosCallback(func(_ *glfw.Window, xpos, ypos float64) {
		mouse.move(xpos, ypos)
	})

	stats := textures.Stats()
	logger.Log.Info("Scene loaded",
		zap.Int("textures", stats.Loaded),
		zap.Int("textureFailures", stats.Failed))
	ok = true
	return g, nil
}

// Loop runs frames until the window is asked to close.
func (g *Game) Loop() {
	limiter := NewFrameLimiter(g.cfg.Render.TargetFPS)
	postProgram := g.shaders.Get(renderer.PostShader)
	last := glfw.GetTime()

	for !g.window.ShouldClose() {
		now := glfw.GetTime()
		g.World.Advance(float32(now - last))
		last = now

		g.World.ProcessInput(g.window)
		g.reloader.poll()

		g.World.RenderScene(g.device)
		g.World.Post.RenderEffect(g.device, postProgram, g.post.ColorTexture)

		g.window.SwapBuffers()
		glfw.PollEvents()
		limiter.Wait()
	}
	logger.Log.Info("Window closed")
}

// Close releases GL resources in reverse order of creation.
func (g *Game) Close() {
	g.cleanup.Unwind()
}
