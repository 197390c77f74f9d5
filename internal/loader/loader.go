package loader

import (
	"PowerOutage/internal/logger"
	"PowerOutage/internal/renderer"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Model is imported geometry plus the diffuse surface of its first material.
type Model struct {
	Name        string
	Mesh        renderer.MeshData
	TexturePath string     // diffuse map, already resolved against the model directory
	Diffuse     mgl32.Vec3 // Kd or base color factor
}

// Load imports a model. path may name a file directly or a base name, in which
// case "<base>.obj", "<base>.gltf" and "<base>.glb" are tried in that order.
func Load(path string) (*Model, error) {
	file, err := resolve(path)
	if err != nil {
		return nil, err
	}

	var model *Model
	switch strings.ToLower(filepath.Ext(file)) {
	case ".obj":
		model, err = LoadOBJ(file)
	case ".gltf", ".glb":
		model, err = LoadGLTF(file)
	default:
		return nil, fmt.Errorf("unsupported model format %q", file)
	}
	if err != nil {
		return nil, fmt.Errorf("load model %s: %w", file, err)
	}

	logger.Log.Info("Model loaded",
		zap.String("path", file),
		zap.Int("vertices", model.Mesh.VertexCount()),
		zap.Int("indices", len(model.Mesh.Indices)),
		zap.String("texture", model.TexturePath))
	return model, nil
}

var modelExtensions = []string{".obj", ".gltf", ".glb"}

func resolve(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	for _, known := range modelExtensions {
		if ext == known {
			return path, nil
		}
	}
	for _, candidate := range modelExtensions {
		if _, err := os.Stat(path + candidate); err == nil {
			return path + candidate, nil
		}
	}
	return "", fmt.Errorf("no model found for %s (tried %s)", path, strings.Join(modelExtensions, ", "))
}
