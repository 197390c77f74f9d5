package scene

import (
	"PowerOutage/internal/renderer"
	"PowerOutage/internal/renderer/rendertest"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResources struct {
	log      *rendertest.Log
	programs map[renderer.ShaderKind]*rendertest.Program
	failing  map[string]bool
	textures map[string]uint32
}

func newFakeResources() *fakeResources {
	log := &rendertest.Log{}
	r := &fakeResources{
		log:      log,
		programs: map[renderer.ShaderKind]*rendertest.Program{},
		failing:  map[string]bool{},
		textures: map[string]uint32{"images/bricks.jpg": 7, "models/door.png": 8},
	}
	for _, k := range []renderer.ShaderKind{renderer.FillShader, renderer.TextureShader, renderer.ImportShader} {
		r.programs[k] = rendertest.NewProgram(k.String(), log)
	}
	return r
}

func (r *fakeResources) Model(p Placement) (Model, error) {
	if r.failing[p.Model] {
		return Model{}, errors.New("file not found")
	}
	name := p.Model
	if name == "" {
		name = p.Mesh
	}
	m := Model{Drawable: rendertest.NewDrawable(name, r.log)}
	if p.Model == "models/door" {
		m.TexturePath = "models/door.png"
	}
	if p.Model == "models/lamppost" {
		m.TexturePath = "models/door.png"
		m.Diffuse = mgl32.Vec3{0.2, 0.2, 0.2}
	}
	return m, nil
}

func (r *fakeResources) Texture(path string) uint32 {
	return r.textures[path]
}

func (r *fakeResources) Program(kind renderer.ShaderKind) renderer.Program {
	if p, ok := r.programs[kind]; ok {
		return p
	}
	return nil
}

func TestObjectIDNames(t *testing.T) {
	for _, id := range AllObjects() {
		parsed, err := ParseObjectID(id.String())
		require.NoError(t, err)
		assert.Equal(t, id, parsed)
	}
	_, err := ParseObjectID("sofa")
	assert.Error(t, err)
	assert.True(t, Key.IsProp())
	assert.False(t, Cube2.IsProp())
}

func TestBuildDefaultLayout(t *testing.T) {
	res := newFakeResources()
	table, err := Build(DefaultLayout(), res)
	require.NoError(t, err)

	floor := table.Get(WorldFloor)
	assert.Equal(t, uint32(7), floor.Texture)
	assert.Same(t, res.programs[renderer.TextureShader], floor.Program)

	door := table.Get(Door)
	assert.Equal(t, uint32(8), door.Texture)

	// The lamppost is drawn untextured with its file's diffuse colour.
	lamp := table.Get(Lamppost)
	assert.Zero(t, lamp.Texture)
	assert.Equal(t, mgl32.Vec3{0.2, 0.2, 0.2}, lamp.Diffuse)

	require.NotNil(t, table.Get(Cube1).Material)
	assert.Equal(t, "silver", table.Get(Cube1).Material.Name)
	assert.Equal(t, "pearl", table.Get(Cube2).Material.Name)
}

func TestStaticOrderAndShadowCasters(t *testing.T) {
	table, err := Build(DefaultLayout(), newFakeResources())
	require.NoError(t, err)

	var static []ObjectID
	for _, o := range table.Static() {
		static = append(static, o.ID)
	}
	assert.Equal(t, []ObjectID{WorldFloor, OfficeFloor, Walls, Furniture, Keyhole, Lamppost,
		Portal1, Portal2, Portal3, Portal4, Building1, Building2, Building3, Building4, Cube1, Cube2}, static)

	var casters []ObjectID
	for _, o := range table.ShadowCasters() {
		casters = append(casters, o.ID)
	}
	assert.Equal(t, []ObjectID{Furniture, Keyhole, Lamppost, Cube1, Cube2}, casters)
}

func TestProgramsAreDistinctInIDOrder(t *testing.T) {
	res := newFakeResources()
	table, err := Build(DefaultLayout(), res)
	require.NoError(t, err)

	assert.Equal(t, []renderer.Program{
		res.programs[renderer.TextureShader],
		res.programs[renderer.ImportShader],
		res.programs[renderer.FillShader],
	}, table.Programs())
}

func TestBuildReportsEveryBadObject(t *testing.T) {
	layout := DefaultLayout()
	delete(layout, Walls)
	bad := layout[Cube1]
	bad.Material = "gold"
	layout[Cube1] = bad
	sky := layout[Portal2]
	sky.Shader = "skybox"
	layout[Portal2] = sky

	res := newFakeResources()
	res.failing["models/door"] = true

	_, err := Build(layout, res)
	require.Error(t, err)
	assert.ErrorContains(t, err, "walls: missing from layout")
	assert.ErrorContains(t, err, `cube1: unknown material "gold"`)
	assert.ErrorContains(t, err, "portal2: no program for shader skybox")
	assert.ErrorContains(t, err, "door: file not found")
}

func TestPlacementValidate(t *testing.T) {
	assert.ErrorContains(t, Placement{Shader: "fill", Scale: 1}.Validate(), "no model or mesh")
	assert.ErrorContains(t, Placement{Mesh: "sphere", Shader: "fill", Scale: 1}.Validate(), "unknown built-in mesh")
	assert.ErrorContains(t, Placement{Mesh: CubeMesh, Scale: 1}.Validate(), "no shader")
	assert.ErrorContains(t, Placement{Mesh: CubeMesh, Shader: "fill"}.Validate(), "scale must be positive")
	assert.NoError(t, Placement{Mesh: CubeMesh, Shader: "fill", Scale: 1}.Validate())
}

func TestPlacementTransformTiltsFloorUp(t *testing.T) {
	floor := DefaultLayout()[WorldFloor]
	m := floor.Transform()

	// The rect faces +Z; after the -90 degree tilt it faces +Y.
	normal := m.Mul4x1(mgl32.Vec4{0, 0, 1, 0}).Vec3().Normalize()
	assert.True(t, normal.ApproxEqualThreshold(mgl32.Vec3{0, 1, 0}, 1e-5), "got %v", normal)

	origin := m.Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3()
	assert.Equal(t, mgl32.Vec3{0, -4, 0}, origin)

	corner := m.Mul4x1(mgl32.Vec4{1, 1, 0, 1}).Vec3()
	assert.InDelta(t, 150, corner.X(), 1e-3)
	assert.InDelta(t, -4, corner.Y(), 1e-3)
}

func TestLayoutMerge(t *testing.T) {
	doc := []byte(`
objects:
  lamppost:
    position: [12, -3.99, 1]
  cube2:
    material: silver
    shadow_caster: false
`)
	base := DefaultLayout()
	merged, err := base.Merge(doc)
	require.NoError(t, err)

	assert.Equal(t, mgl32.Vec3{12, -3.99, 1}, merged[Lamppost].Position)
	assert.Equal(t, float32(0.2), merged[Lamppost].Scale)
	assert.Equal(t, "silver", merged[Cube2].Material)
	assert.False(t, merged[Cube2].ShadowCaster)

	// The base layout is untouched.
	assert.Equal(t, mgl32.Vec3{15, -3.99, 0}, base[Lamppost].Position)

	_, err = base.Merge([]byte("objects:\n  sofa:\n    scale: 2\n"))
	assert.ErrorContains(t, err, `unknown scene object "sofa"`)

	_, err = base.Merge([]byte("objects: [1, 2"))
	assert.ErrorContains(t, err, "parse layout")
}

func TestLoadLayoutFile(t *testing.T) {
	layout, err := LoadLayout("")
	require.NoError(t, err)
	assert.Len(t, layout, int(objectCount))

	path := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte("objects:\n  key:\n    position: [2, -3.9, 2]\n"), 0o644))
	layout, err = LoadLayout(path)
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec3{2, -3.9, 2}, layout[Key].Position)

	_, err = LoadLayout(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestObjectDraw(t *testing.T) {
	res := newFakeResources()
	table, err := Build(DefaultLayout(), res)
	require.NoError(t, err)
	dev := rendertest.NewDevice(res.log)

	res.log.Reset()
	table.Get(WorldFloor).Draw(renderer.RenderContext{Device: dev})
	assert.Equal(t, uint32(7), dev.TextureUnits[0])
	assert.Equal(t, 1, res.log.Count("Draw floor"))

	// An override program replaces the object's own.
	depth := rendertest.NewProgram("depth", res.log)
	table.Get(Cube1).Draw(renderer.RenderContext{Device: dev, Program: depth})
	assert.Equal(t, renderer.Silver.Diffuse, depth.Vec3["material.diffuse"])
	assert.Equal(t, table.Get(Cube1).Model, depth.Mat4["model"])
	assert.Zero(t, res.programs[renderer.FillShader].Writes["model"])
}
