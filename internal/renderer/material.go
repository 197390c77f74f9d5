package renderer

import "github.com/go-gl/mathgl/mgl32"

// Material is a Phong surface pushed to the "material" uniform struct of the fill shader.
type Material struct {
	Name      string
	Ambient   mgl32.Vec3
	Diffuse   mgl32.Vec3
	Specular  mgl32.Vec3
	Shininess float32
}

var (
	Silver = Material{
		Name:      "silver",
		Ambient:   mgl32.Vec3{0.19225, 0.19225, 0.19225},
		Diffuse:   mgl32.Vec3{0.50754, 0.50754, 0.50754},
		Specular:  mgl32.Vec3{0.508273, 0.508273, 0.508273},
		Shininess: 51.2,
	}
	Pearl = Material{
		Name:      "pearl",
		Ambient:   mgl32.Vec3{0.25, 0.20725, 0.20725},
		Diffuse:   mgl32.Vec3{1, 0.829, 0.829},
		Specular:  mgl32.Vec3{0.296648, 0.296648, 0.296648},
		Shininess: 11.264,
	}
)

var materials = map[string]Material{
	Silver.Name: Silver,
	Pearl.Name:  Pearl,
}

// MaterialByName looks up a built-in material.
func MaterialByName(name string) (Material, bool) {
	m, ok := materials[name]
	return m, ok
}

func (m Material) Apply(p Program) {
	p.SetVec3("material.ambient", m.Ambient)
	p.SetVec3("material.diffuse", m.Diffuse)
	p.SetVec3("material.specular", m.Specular)
	p.SetFloat("material.shininess", m.Shininess)
}
