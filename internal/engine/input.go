package engine

import (
	"PowerOutage/internal/logger"
	"PowerOutage/internal/renderer"

	"go.uber.org/zap"
)

// mouseLook turns cursor motion into camera yaw and pitch. The first event
// after start only records the cursor so the view does not jump.
type mouseLook struct {
	camera       *renderer.Camera
	lastX, lastY float64
	firstMouse   bool
}

func newMouseLook(camera *renderer.Camera, width, height int32) *mouseLook {
	return &mouseLook{
		camera:     camera,
		lastX:      float64(width) / 2,
		lastY:      float64(height) / 2,
		firstMouse: true,
	}
}

func (m *mouseLook) move(xpos, ypos float64) {
	if m.firstMouse {
		m.lastX, m.lastY = xpos, ypos
		m.firstMouse = false
		return
	}

	xoffset := xpos - m.lastX
	yoffset := m.lastY - ypos // window y grows downward
	m.lastX, m.lastY = xpos, ypos

	m.camera.ProcessMouseMovement(float32(xoffset), float32(yoffset), true)
}

// shaderReloader recompiles programs whose override sources changed.
type shaderReloader struct {
	library *renderer.ShaderLibrary
	watcher *renderer.ShaderWatcher // nil without an override dir
	auto    bool
}

// poll runs every frame and reloads right away when auto reload is on.
func (r *shaderReloader) poll() {
	if r.watcher == nil || !r.auto {
		return
	}
	if r.watcher.Drain() {
		r.reload(r.watcher.Take())
	}
}

// reloadNow is the dev key. It reloads what the watcher saw change, or
// every program when nothing is pending.
func (r *shaderReloader) reloadNow() {
	var kinds []renderer.ShaderKind
	if r.watcher != nil && r.watcher.Drain() {
		kinds = r.watcher.Take()
	}
	if len(kinds) == 0 {
		kinds = renderer.ShaderKinds()
	}
	r.reload(kinds)
}

func (r *shaderReloader) reload(kinds []renderer.ShaderKind) {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	logger.Log.Info("Reloading shaders", zap.Strings("shaders", names))
	r.library.Reload(kinds...)
}

func (r *shaderReloader) close() {
	if r.watcher == nil {
		return
	}
	if err := r.watcher.Close(); err != nil {
		logger.Log.Warn("Closing shader watcher", zap.Error(err))
	}
}
