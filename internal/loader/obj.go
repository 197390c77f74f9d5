package loader

import (
	"PowerOutage/internal/logger"
	"PowerOutage/internal/renderer"
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Material holds the MTL fields the import shader uses.
type Material struct {
	Name        string
	Diffuse     mgl32.Vec3
	Specular    mgl32.Vec3
	Shininess   float32
	Alpha       float32
	TexturePath string
}

type FaceVertex struct {
	VertexIdx   int32
	TexCoordIdx int32
	NormalIdx   int32
}

// LoadOBJ parses a Wavefront OBJ file and its MTL library into one indexed mesh.
// Every distinct v/vt/vn triplet becomes one interleaved vertex.
func LoadOBJ(filename string) (*Model, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var (
		positions []float32
		texCoords []float32
		normals   []float32
		faces     []FaceVertex
		materials map[string]*Material
		active    *Material
	)

	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		switch parts[0] {
		case "v":
			vertex, err := parseFloats(parts[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: vertex: %w", lineNo, err)
			}
			positions = append(positions, vertex...)
		case "vn":
			normal, err := parseFloats(parts[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: normal: %w", lineNo, err)
			}
			normals = append(normals, normal...)
		case "vt":
			texCoord, err := parseFloats(parts[1:], 2)
			if err != nil {
				return nil, fmt.Errorf("line %d: texture coordinate: %w", lineNo, err)
			}
			texCoords = append(texCoords, texCoord...)
		case "f":
			faceVertices, err := parseFace(parts[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: face: %w", lineNo, err)
			}
			faces = append(faces, faceVertices...)
		case "mtllib":
			if len(parts) < 2 {
				continue
			}
			materials = LoadMaterials(filepath.Join(filepath.Dir(filename), parts[1]))
		case "usemtl":
			if len(parts) < 2 {
				continue
			}
			// Only the first material is used for the whole model.
			if m, ok := materials[parts[1]]; ok && active == nil {
				active = m
			} else if !ok {
				logger.Log.Debug("Material not found", zap.String("material", parts[1]))
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(faces) == 0 {
		return nil, errors.New("no faces")
	}

	model := &Model{Name: strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename)), Diffuse: mgl32.Vec3{1, 1, 1}}
	model.Mesh, err = unify(positions, texCoords, normals, faces)
	if err != nil {
		return nil, err
	}
	if active == nil {
		for _, m := range materials {
			active = m
			break
		}
	}
	if active != nil {
		model.Diffuse = active.Diffuse
		model.TexturePath = active.TexturePath
	}
	return model, nil
}

// unify builds the interleaved vertex buffer and index list from OBJ triplets.
func unify(positions, texCoords, normals []float32, faces []FaceVertex) (renderer.MeshData, error) {
	type vertexKey struct{ v, vt, vn int32 }

	lookup := make(map[vertexKey]uint32)
	out := renderer.MeshData{}
	for _, fv := range faces {
		key := vertexKey{fv.VertexIdx, fv.TexCoordIdx, fv.NormalIdx}
		if idx, ok := lookup[key]; ok {
			out.Indices = append(out.Indices, idx)
			continue
		}
		if fv.VertexIdx < 0 || int(fv.VertexIdx)*3+2 >= len(positions) {
			return out, fmt.Errorf("vertex index %d out of range (%d vertices)", fv.VertexIdx+1, len(positions)/3)
		}

		idx := uint32(out.VertexCount())
		lookup[key] = idx
		out.Vertices = append(out.Vertices, positions[fv.VertexIdx*3:fv.VertexIdx*3+3]...)

		if fv.TexCoordIdx >= 0 && int(fv.TexCoordIdx)*2+1 < len(texCoords) {
			out.Vertices = append(out.Vertices, texCoords[fv.TexCoordIdx*2:fv.TexCoordIdx*2+2]...)
		} else {
			out.Vertices = append(out.Vertices, 0, 0)
		}

		if fv.NormalIdx >= 0 && int(fv.NormalIdx)*3+2 < len(normals) {
			out.Vertices = append(out.Vertices, normals[fv.NormalIdx*3:fv.NormalIdx*3+3]...)
		} else {
			out.Vertices = append(out.Vertices, 0, 1, 0)
		}
		out.Indices = append(out.Indices, idx)
	}
	return out, nil
}

// LoadMaterials loads material properties from a .mtl file. A missing file
// is logged and yields no materials.
func LoadMaterials(filename string) map[string]*Material {
	file, err := os.Open(filename)
	if err != nil {
		logger.Log.Error("Error opening material file", zap.String("path", filename), zap.Error(err))
		return map[string]*Material{}
	}
	defer file.Close()

	var current *Material
	materials := make(map[string]*Material)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "newmtl" {
			if len(fields) < 2 {
				continue
			}
			current = &Material{Name: fields[1], Diffuse: mgl32.Vec3{1, 1, 1}, Alpha: 1}
			materials[fields[1]] = current
			continue
		}
		if current == nil {
			continue
		}

		switch fields[0] {
		case "Kd":
			if len(fields) == 4 {
				current.Diffuse = parseColor(fields[1:])
			}
		case "Ks":
			if len(fields) == 4 {
				current.Specular = parseColor(fields[1:])
			}
		case "Ns":
			if len(fields) == 2 {
				current.Shininess = parseFloat(fields[1])
			}
		case "d":
			if len(fields) == 2 {
				current.Alpha = parseFloat(fields[1])
			}
		case "map_Kd":
			if len(fields) >= 2 {
				// Options may precede the path, so it is the last field.
				texturePath := fields[len(fields)-1]
				if !filepath.IsAbs(texturePath) {
					texturePath = filepath.Join(filepath.Dir(filename), texturePath)
				}
				current.TexturePath = texturePath
			}
		}
	}
	if err := scanner.Err(); err != nil {
		logger.Log.Error("Error reading material file", zap.String("path", filename), zap.Error(err))
	}
	return materials
}

func parseColor(fields []string) mgl32.Vec3 {
	var color mgl32.Vec3
	for i, field := range fields {
		color[i] = parseFloat(field)
	}
	return color
}

func parseFloat(s string) float32 {
	f, err := strconv.ParseFloat(s, 32)
	if err != nil {
		logger.Log.Warn("Error parsing material value", zap.String("value", s), zap.Error(err))
		return 0
	}
	return float32(f)
}

// parseFloats reads exactly n components; extra ones (vertex w, 3D texture w) are ignored.
func parseFloats(parts []string, n int) ([]float32, error) {
	if len(parts) < n {
		return nil, fmt.Errorf("want %d components, got %d", n, len(parts))
	}
	values := make([]float32, n)
	for i := 0; i < n; i++ {
		val, err := strconv.ParseFloat(parts[i], 32)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q: %w", parts[i], err)
		}
		values[i] = float32(val)
	}
	return values, nil
}

func parseFace(parts []string) ([]FaceVertex, error) {
	if len(parts) < 3 {
		return nil, fmt.Errorf("face needs at least 3 vertices, got %d", len(parts))
	}

	face := make([]FaceVertex, 0, len(parts))
	for _, part := range parts {
		vals := strings.Split(part, "/")

		vertexIdx, err := strconv.ParseInt(vals[0], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid vertex index %q: %w", vals[0], err)
		}

		var texCoordIdx int32 = -1
		if len(vals) > 1 && vals[1] != "" {
			texIdx, err := strconv.ParseInt(vals[1], 10, 32)
			if err != nil {
				return nil, fmt.Errorf("invalid texture coordinate index %q: %w", vals[1], err)
			}
			texCoordIdx = int32(texIdx - 1)
		}

		var normalIdx int32 = -1
		if len(vals) > 2 && vals[2] != "" {
			normIdx, err := strconv.ParseInt(vals[2], 10, 32)
			if err != nil {
				return nil, fmt.Errorf("invalid normal index %q: %w", vals[2], err)
			}
			normalIdx = int32(normIdx - 1)
		}

		// .obj indices start at 1
		face = append(face, FaceVertex{
			VertexIdx:   int32(vertexIdx - 1),
			TexCoordIdx: texCoordIdx,
			NormalIdx:   normalIdx,
		})
	}

	// Quads and larger polygons are triangulated as a fan from the first vertex.
	triangles := make([]FaceVertex, 0, (len(face)-2)*3)
	for i := 1; i < len(face)-1; i++ {
		triangles = append(triangles, face[0], face[i], face[i+1])
	}
	return triangles, nil
}
