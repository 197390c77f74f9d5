package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const quadOBJ = `# plate
mtllib plate.mtl
v 0 0 0
v 1 0 0
v 1 0 1
v 0 0 1
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 1 0
usemtl metal
f 1/1/1 2/2/1 3/3/1 4/4/1
`

const plateMTL = `newmtl metal
Kd 0.5 0.25 1
Ns 32
map_Kd textures/plate.png
`

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadOBJQuadWithMaterial(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "plate.obj", quadOBJ)
	writeFile(t, dir, "plate.mtl", plateMTL)

	model, err := Load(filepath.Join(dir, "plate"))
	require.NoError(t, err)

	assert.Equal(t, "plate", model.Name)
	assert.NoError(t, model.Mesh.Validate())
	assert.Equal(t, 4, model.Mesh.VertexCount())
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, model.Mesh.Indices)
	assert.Equal(t, mgl32.Vec3{0.5, 0.25, 1}, model.Diffuse)
	assert.Equal(t, filepath.Join(dir, "textures", "plate.png"), model.TexturePath)

	// Third vertex: position, uv, normal interleaved.
	assert.Equal(t, []float32{1, 0, 1, 1, 1, 0, 1, 0}, model.Mesh.Vertices[16:24])
}

func TestLoadOBJWithoutMaterialLibrary(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "tri.obj", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n")

	model, err := LoadOBJ(path)
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, model.Diffuse)
	assert.Empty(t, model.TexturePath)
	// Missing normals default to +Y.
	assert.Equal(t, []float32{0, 0, 0, 0, 0, 0, 1, 0}, model.Mesh.Vertices[:8])
}

func TestLoadOBJErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadOBJ(writeFile(t, dir, "bad.obj", "v 0 zero 0\n"))
	assert.ErrorContains(t, err, "line 1")

	_, err = LoadOBJ(writeFile(t, dir, "range.obj", "v 0 0 0\nf 1 2 3\n"))
	assert.ErrorContains(t, err, "out of range")

	_, err = LoadOBJ(writeFile(t, dir, "empty.obj", "# nothing\n"))
	assert.Error(t, err)

	_, err = Load(filepath.Join(dir, "missing"))
	assert.ErrorContains(t, err, "no model found")
}

func TestParseFaceFanTriangulation(t *testing.T) {
	tris, err := parseFace([]string{"1", "2", "3", "4", "5"})
	require.NoError(t, err)
	require.Len(t, tris, 9)

	var idx []int32
	for _, fv := range tris {
		idx = append(idx, fv.VertexIdx)
		assert.Equal(t, int32(-1), fv.TexCoordIdx)
	}
	assert.Equal(t, []int32{0, 1, 2, 0, 2, 3, 0, 3, 4}, idx)

	_, err = parseFace([]string{"1", "2"})
	assert.Error(t, err)
}

const triangleGLTF = `{
  "asset": {"version": "2.0"},
  "buffers": [{"byteLength": 44, "uri": "data:application/octet-stream;base64,AAAAAAAAAAAAAAAAAACAPwAAAAAAAAAAAAAAAAAAgD8AAAAAAAABAAIAAAA="}],
  "bufferViews": [
    {"buffer": 0, "byteOffset": 0, "byteLength": 36},
    {"buffer": 0, "byteOffset": 36, "byteLength": 6}
  ],
  "accessors": [
    {"bufferView": 0, "componentType": 5126, "count": 3, "type": "VEC3", "min": [0, 0, 0], "max": [1, 1, 0]},
    {"bufferView": 1, "componentType": 5123, "count": 3, "type": "SCALAR"}
  ],
  "materials": [{"pbrMetallicRoughness": {"baseColorFactor": [0.2, 0.4, 0.6, 1]}}],
  "meshes": [{"name": "key", "primitives": [{"attributes": {"POSITION": 0}, "indices": 1, "material": 0}]}],
  "nodes": [{"mesh": 0}],
  "scenes": [{"nodes": [0]}],
  "scene": 0
}`

func TestLoadGLTFTriangle(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "key.gltf", triangleGLTF)

	model, err := Load(filepath.Join(dir, "key"))
	require.NoError(t, err)

	assert.Equal(t, "key", model.Name)
	assert.NoError(t, model.Mesh.Validate())
	assert.Equal(t, 3, model.Mesh.VertexCount())
	assert.Equal(t, []uint32{0, 1, 2}, model.Mesh.Indices)
	assert.InDelta(t, 0.4, model.Diffuse.Y(), 1e-6)
	assert.Equal(t, []float32{1, 0, 0}, model.Mesh.Vertices[8:11])
}
