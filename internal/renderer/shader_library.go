package renderer

import (
	"PowerOutage/internal/logger"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

//go:embed shaders/*.vert shaders/*.frag shaders/*.glsl
var embeddedShaders embed.FS

type ShaderKind int

const (
	FillShader ShaderKind = iota
	TextureShader
	ImportShader
	DepthShader
	SkyboxShader
	PostShader
	FontShader
	shaderKindCount
)

type shaderFiles struct {
	name     string
	vertex   string
	fragment string
}

var shaderTable = [shaderKindCount]shaderFiles{
	FillShader:    {"fill", "lit.vert", "fill.frag"},
	TextureShader: {"texture", "lit.vert", "texture.frag"},
	ImportShader:  {"import", "lit.vert", "import.frag"},
	DepthShader:   {"depth", "depth.vert", "depth.frag"},
	SkyboxShader:  {"skybox", "skybox.vert", "skybox.frag"},
	PostShader:    {"post", "screen.vert", "post.frag"},
	FontShader:    {"font", "font.vert", "font.frag"},
}

func (k ShaderKind) String() string {
	if k < 0 || k >= shaderKindCount {
		return fmt.Sprintf("ShaderKind(%d)", int(k))
	}
	return shaderTable[k].name
}

func ParseShaderKind(name string) (ShaderKind, error) {
	for k := ShaderKind(0); k < shaderKindCount; k++ {
		if shaderTable[k].name == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown shader kind %q", name)
}

// ShaderKinds lists every kind in order.
func ShaderKinds() []ShaderKind {
	kinds := make([]ShaderKind, 0, shaderKindCount)
	for k := ShaderKind(0); k < shaderKindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// ShaderKindsUsing lists the kinds whose sources include file, directly or through lighting.glsl.
func ShaderKindsUsing(file string) []ShaderKind {
	base := filepath.Base(file)
	var kinds []ShaderKind
	for k := ShaderKind(0); k < shaderKindCount; k++ {
		f := shaderTable[k]
		if f.vertex == base || f.fragment == base || (base == "lighting.glsl" && f.vertex == "lit.vert") {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

var includePattern = regexp.MustCompile(`(?m)^#include\s+"([^"]+)"\s*$`)

// ShaderSource reads one source file, preferring overrideDir, and expands #include lines.
func ShaderSource(file, overrideDir string) (string, error) {
	return readShader(file, overrideDir, map[string]bool{})
}

func readShader(file, overrideDir string, seen map[string]bool) (string, error) {
	if seen[file] {
		return "", fmt.Errorf("include cycle at %s", file)
	}
	seen[file] = true
	defer delete(seen, file)

	var data []byte
	var err error
	if overrideDir != "" {
		data, err = os.ReadFile(filepath.Join(overrideDir, file))
	}
	if overrideDir == "" || err != nil {
		data, err = embeddedShaders.ReadFile("shaders/" + file)
		if err != nil {
			return "", fmt.Errorf("read shader %s: %w", file, err)
		}
	}

	var expandErr error
	out := includePattern.ReplaceAllStringFunc(string(data), func(line string) string {
		name := includePattern.FindStringSubmatch(line)[1]
		body, err := readShader(name, overrideDir, seen)
		if err != nil && expandErr == nil {
			expandErr = err
		}
		return strings.TrimRight(body, "\n")
	})
	if expandErr != nil {
		return "", expandErr
	}
	return out, nil
}

func sourcesFor(kind ShaderKind, overrideDir string) (string, string, error) {
	files := shaderTable[kind]
	vertex, err := ShaderSource(files.vertex, overrideDir)
	if err != nil {
		return "", "", err
	}
	fragment, err := ShaderSource(files.fragment, overrideDir)
	if err != nil {
		return "", "", err
	}
	return vertex, fragment, nil
}

// ShaderLibrary owns one compiled program per ShaderKind.
type ShaderLibrary struct {
	shaders     [shaderKindCount]*Shader
	overrideDir string
}

func NewShaderLibrary(overrideDir string) (*ShaderLibrary, error) {
	lib := &ShaderLibrary{overrideDir: overrideDir}
	for k := ShaderKind(0); k < shaderKindCount; k++ {
		vertex, fragment, err := sourcesFor(k, overrideDir)
		if err != nil {
			lib.Delete()
			return nil, err
		}
		shader, err := NewShader(k.String(), vertex, fragment)
		if err != nil {
			lib.Delete()
			return nil, err
		}
		lib.shaders[k] = shader
	}
	return lib, nil
}

func (lib *ShaderLibrary) Get(kind ShaderKind) *Shader {
	return lib.shaders[kind]
}

func (lib *ShaderLibrary) OverrideDir() string {
	return lib.overrideDir
}

// Reload recompiles the given kinds. A kind that fails keeps its previous program.
func (lib *ShaderLibrary) Reload(kinds ...ShaderKind) {
	for _, k := range kinds {
		vertex, fragment, err := sourcesFor(k, lib.overrideDir)
		if err == nil {
			err = lib.shaders[k].Reload(vertex, fragment)
		}
		if err != nil {
			logger.Log.Error("Shader reload failed", zap.String("shader", k.String()), zap.Error(err))
		}
	}
}

func (lib *ShaderLibrary) Delete() {
	for i, s := range lib.shaders {
		if s != nil {
			s.Delete()
			lib.shaders[i] = nil
		}
	}
}
