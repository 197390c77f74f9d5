package scene

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// Built-in meshes that need no model file.
const (
	CubeMesh  = "cube"
	FloorMesh = "floor"
)

// FloorRepeat is how often the floor texture tiles across the world floor.
const FloorRepeat = 50

// Placement describes where and how one object is drawn.
type Placement struct {
	Model        string     `yaml:"model,omitempty"` // model base path, relative to the asset dir
	Mesh         string     `yaml:"mesh,omitempty"`  // built-in mesh used when Model is empty
	Texture      string     `yaml:"texture,omitempty"`
	NoTexture    bool       `yaml:"no_texture,omitempty"`
	Shader       string     `yaml:"shader"`
	Material     string     `yaml:"material,omitempty"`
	Position     mgl32.Vec3 `yaml:"position,flow"`
	Rotation     float32    `yaml:"rotation,omitempty"` // degrees about Y
	Tilt         float32    `yaml:"tilt,omitempty"`     // degrees about X, applied first
	Scale        float32    `yaml:"scale"`
	ShadowCaster bool       `yaml:"shadow_caster,omitempty"`
}

// Transform is translate * rotY(rotation) * scale * rotX(tilt).
func (p Placement) Transform() mgl32.Mat4 {
	return mgl32.Translate3D(p.Position.X(), p.Position.Y(), p.Position.Z()).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(p.Rotation))).
		Mul4(mgl32.Scale3D(p.Scale, p.Scale, p.Scale)).
		Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(p.Tilt)))
}

func (p Placement) Validate() error {
	var errs []error
	if p.Model == "" && p.Mesh == "" {
		errs = append(errs, errors.New("no model or mesh"))
	}
	if p.Model == "" && p.Mesh != "" && p.Mesh != CubeMesh && p.Mesh != FloorMesh {
		errs = append(errs, fmt.Errorf("unknown built-in mesh %q", p.Mesh))
	}
	if p.Shader == "" {
		errs = append(errs, errors.New("no shader"))
	}
	if p.Scale <= 0 {
		errs = append(errs, fmt.Errorf("scale must be positive, got %v", p.Scale))
	}
	return errors.Join(errs...)
}

// Layout is the placement of every scene object.
type Layout map[ObjectID]Placement

func portal(x, z float32) Placement {
	return Placement{Model: "models/portal", Shader: "import", Position: mgl32.Vec3{x, -3.99, z}, Scale: 0.6}
}

func building(x, z, rotation float32) Placement {
	return Placement{Model: "models/building", Shader: "import", Position: mgl32.Vec3{x, -3.99, z}, Rotation: rotation, Scale: 0.6}
}

// DefaultLayout is the office level.
func DefaultLayout() Layout {
	return Layout{
		WorldFloor: {Mesh: FloorMesh, Texture: "images/bricks.jpg", Shader: "texture",
			Position: mgl32.Vec3{0, -4, 0}, Tilt: -90, Scale: 150},
		OfficeFloor: {Model: "models/floor", Shader: "import", Position: mgl32.Vec3{0, -3.99, 0}, Scale: 0.5},
		Walls:       {Model: "models/walls", Shader: "import", Position: mgl32.Vec3{0, -3.99, 0}, Scale: 1},
		Furniture: {Model: "models/furniture", Shader: "import", Position: mgl32.Vec3{0, -3.99, 0}, Scale: 0.5,
			ShadowCaster: true},
		Keyhole: {Model: "models/keyhole", Shader: "import", Position: mgl32.Vec3{5.159, -3.7, 0}, Rotation: -90,
			Scale: 0.25, ShadowCaster: true},
		Lamppost: {Model: "models/lamppost", Shader: "import", NoTexture: true, Position: mgl32.Vec3{15, -3.99, 0},
			Rotation: -90, Scale: 0.2, ShadowCaster: true},
		Portal1:   portal(10, 7.5),
		Portal2:   portal(20, 7.5),
		Portal3:   portal(10, -7.5),
		Portal4:   portal(20, -7.5),
		Building1: building(-80, 20, -90),
		Building2: building(38, 20, -90),
		Building3: building(-7.5, -20, 90),
		Building4: building(110, -15, 90),
		Cube1: {Mesh: CubeMesh, Shader: "fill", Material: "silver", Position: mgl32.Vec3{-1, -3.35, 1}, Scale: 0.25,
			ShadowCaster: true},
		Cube2: {Mesh: CubeMesh, Shader: "fill", Material: "pearl", Position: mgl32.Vec3{-1.05, -3.35, -1}, Scale: 0.25,
			ShadowCaster: true},
		Door:  {Model: "models/door", Shader: "import", Position: mgl32.Vec3{5, -3.99, 3.75}, Scale: 0.638},
		Plate: {Model: "models/pressurePlate", Shader: "import", Position: mgl32.Vec3{1.2, -3.99, -0.8}, Scale: 0.5},
		Key: {Model: "models/key", Shader: "import", Position: mgl32.Vec3{14, -3.9, 1}, Scale: 0.25,
			ShadowCaster: true},
	}
}

// placementPatch is one entry of a layout file; unset fields keep their value.
type placementPatch struct {
	Model        *string     `yaml:"model"`
	Mesh         *string     `yaml:"mesh"`
	Texture      *string     `yaml:"texture"`
	NoTexture    *bool       `yaml:"no_texture"`
	Shader       *string     `yaml:"shader"`
	Material     *string     `yaml:"material"`
	Position     *mgl32.Vec3 `yaml:"position"`
	Rotation     *float32    `yaml:"rotation"`
	Tilt         *float32    `yaml:"tilt"`
	Scale        *float32    `yaml:"scale"`
	ShadowCaster *bool       `yaml:"shadow_caster"`
}

func (pp placementPatch) apply(p Placement) Placement {
	if pp.Model != nil {
		p.Model = *pp.Model
	}
	if pp.Mesh != nil {
		p.Mesh = *pp.Mesh
	}
	if pp.Texture != nil {
		p.Texture = *pp.Texture
	}
	if pp.NoTexture != nil {
		p.NoTexture = *pp.NoTexture
	}
	if pp.Shader != nil {
		p.Shader = *pp.Shader
	}
	if pp.Material != nil {
		p.Material = *pp.Material
	}
	if pp.Position != nil {
		p.Position = *pp.Position
	}
	if pp.Rotation != nil {
		p.Rotation = *pp.Rotation
	}
	if pp.Tilt != nil {
		p.Tilt = *pp.Tilt
	}
	if pp.Scale != nil {
		p.Scale = *pp.Scale
	}
	if pp.ShadowCaster != nil {
		p.ShadowCaster = *pp.ShadowCaster
	}
	return p
}

type layoutFile struct {
	Objects map[string]placementPatch `yaml:"objects"`
}

// Merge applies a YAML layout document on top of l and returns the result.
//
//	objects:
//	  lamppost:
//	    position: [12, -3.99, 0]
//	  cube2:
//	    material: silver
func (l Layout) Merge(data []byte) (Layout, error) {
	var doc layoutFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	out := make(Layout, len(l))
	for id, p := range l {
		out[id] = p
	}
	for name, patch := range doc.Objects {
		id, err := ParseObjectID(name)
		if err != nil {
			return nil, err
		}
		out[id] = patch.apply(out[id])
	}
	return out, nil
}

// LoadLayout returns the default layout, merged with path when path is set.
func LoadLayout(path string) (Layout, error) {
	layout := DefaultLayout()
	if path == "" {
		return layout, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layout: %w", err)
	}
	return layout.Merge(data)
}
