package loader

import (
	"PowerOutage/internal/renderer"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// LoadGLTF merges every triangle primitive of a .gltf/.glb file into one mesh.
// Node transforms are not applied; props are authored at the origin.
func LoadGLTF(path string) (*Model, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gltf open: %w", err)
	}

	model := &Model{
		Name:    strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Diffuse: mgl32.Vec3{1, 1, 1},
	}
	materialSet := false

	for _, mesh := range doc.Meshes {
		for i, prim := range mesh.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles {
				continue
			}
			if err := appendPrimitive(doc, prim, &model.Mesh); err != nil {
				return nil, fmt.Errorf("mesh %q primitive %d: %w", mesh.Name, i, err)
			}
			if !materialSet && prim.Material != nil {
				applyMaterial(doc, doc.Materials[*prim.Material], filepath.Dir(path), model)
				materialSet = true
			}
		}
	}
	if model.Mesh.VertexCount() == 0 {
		return nil, errors.New("no triangle primitives")
	}
	return model, nil
}

func appendPrimitive(doc *gltf.Document, prim *gltf.Primitive, out *renderer.MeshData) error {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return errors.New("no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return fmt.Errorf("positions: %w", err)
	}

	var normals [][3]float32
	if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
		if normals, err = modeler.ReadNormal(doc, doc.Accessors[idx], nil); err != nil {
			return fmt.Errorf("normals: %w", err)
		}
	}
	var uvs [][2]float32
	if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		if uvs, err = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil); err != nil {
			return fmt.Errorf("texture coordinates: %w", err)
		}
	}

	base := uint32(out.VertexCount())
	for i, p := range positions {
		uv := [2]float32{}
		if i < len(uvs) {
			// glTF puts the texture origin top-left; images are flipped on upload.
			uv = [2]float32{uvs[i][0], 1 - uvs[i][1]}
		}
		n := [3]float32{0, 1, 0}
		if i < len(normals) {
			n = normals[i]
		}
		out.Vertices = append(out.Vertices, p[0], p[1], p[2], uv[0], uv[1], n[0], n[1], n[2])
	}

	if prim.Indices == nil {
		for i := range positions {
			out.Indices = append(out.Indices, base+uint32(i))
		}
		return nil
	}
	indices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
	if err != nil {
		return fmt.Errorf("indices: %w", err)
	}
	for _, idx := range indices {
		out.Indices = append(out.Indices, base+idx)
	}
	return nil
}

func applyMaterial(doc *gltf.Document, mat *gltf.Material, dir string, model *Model) {
	pbr := mat.PBRMetallicRoughness
	if pbr == nil {
		return
	}
	if pbr.BaseColorFactor != nil {
		c := pbr.BaseColorFactor
		model.Diffuse = mgl32.Vec3{float32(c[0]), float32(c[1]), float32(c[2])}
	}
	if pbr.BaseColorTexture == nil {
		return
	}
	tex := doc.Textures[pbr.BaseColorTexture.Index]
	if tex.Source == nil {
		return
	}
	img := doc.Images[*tex.Source]
	if img.URI != "" && !img.IsEmbeddedResource() {
		model.TexturePath = filepath.Join(dir, img.URI)
	}
}
