package scene

import (
	"PowerOutage/internal/loader"
	"PowerOutage/internal/logger"
	"PowerOutage/internal/renderer"
	"path/filepath"

	"go.uber.org/zap"
)

// Assets is the GL-backed Resources. Models are uploaded once per path;
// later placements of the same model share the buffers through Mesh.Ref.
type Assets struct {
	dir      string
	textures *renderer.TextureManager
	shaders  *renderer.ShaderLibrary
	meshes   map[string]*renderer.Mesh
	models   map[string]*loader.Model
}

func NewAssets(dir string, textures *renderer.TextureManager, shaders *renderer.ShaderLibrary) *Assets {
	return &Assets{
		dir:      dir,
		textures: textures,
		shaders:  shaders,
		meshes:   map[string]*renderer.Mesh{},
		models:   map[string]*loader.Model{},
	}
}

func (a *Assets) path(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(a.dir, rel)
}

func (a *Assets) Model(p Placement) (Model, error) {
	key := p.Model
	if key == "" {
		key = "builtin:" + p.Mesh
	}
	if mesh, ok := a.meshes[key]; ok {
		out := Model{Drawable: mesh.Ref()}
		if m := a.models[key]; m != nil {
			out.TexturePath, out.Diffuse = a.rel(m.TexturePath), m.Diffuse
		}
		return out, nil
	}

	var data renderer.MeshData
	var out Model
	switch {
	case p.Model != "":
		m, err := loader.Load(a.path(p.Model))
		if err != nil {
			return Model{}, err
		}
		a.models[key] = m
		data = m.Mesh
		out.TexturePath, out.Diffuse = a.rel(m.TexturePath), m.Diffuse
	case p.Mesh == FloorMesh:
		data = renderer.RectData(-1, -1, 2, 2, FloorRepeat)
	default:
		data = renderer.CubeData()
	}

	mesh, err := renderer.NewMesh(data)
	if err != nil {
		return Model{}, err
	}
	a.meshes[key] = mesh
	out.Drawable = mesh
	return out, nil
}

// rel turns a path found inside a model file back into one relative to the asset dir.
func (a *Assets) rel(path string) string {
	if path == "" {
		return ""
	}
	if r, err := filepath.Rel(a.dir, path); err == nil {
		return r
	}
	return path
}

func (a *Assets) Texture(path string) uint32 {
	return a.textures.Texture(a.path(path))
}

func (a *Assets) Program(kind renderer.ShaderKind) renderer.Program {
	return a.shaders.Get(kind)
}

func (a *Assets) Delete() {
	for key, mesh := range a.meshes {
		mesh.Delete()
		delete(a.meshes, key)
	}
	logger.Log.Debug("Scene meshes released", zap.Int("models", len(a.models)))
}
