package scene

import (
	"PowerOutage/internal/renderer"
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Model is a drawable with the surface its file describes.
type Model struct {
	Drawable    renderer.Drawable
	TexturePath string
	Diffuse     mgl32.Vec3
}

// Resources resolves the assets a placement names.
type Resources interface {
	Model(p Placement) (Model, error)
	Texture(path string) uint32 // 0 when the image could not be loaded
	Program(kind renderer.ShaderKind) renderer.Program
}

// Object is one resolved row of the scene table.
type Object struct {
	ID        ObjectID
	Placement Placement
	Kind      renderer.ShaderKind
	Drawable  renderer.Drawable
	Program   renderer.Program
	Texture   uint32
	Diffuse   mgl32.Vec3
	Material  *renderer.Material
	Model     mgl32.Mat4
}

// Draw renders the object through ctx. A nil ctx.Program draws with the object's own program.
func (o *Object) Draw(ctx renderer.RenderContext) {
	if ctx.Program == nil {
		ctx.Program = o.Program
	}
	if o.Material != nil {
		ctx.Program.Use()
		o.Material.Apply(ctx.Program)
	}
	if o.Texture != 0 {
		ctx.DrawTextured(o.Drawable, o.Model, o.Texture)
		return
	}
	ctx.Program.Use()
	ctx.Program.SetVec3("diffuse_color", o.Diffuse)
	ctx.DrawPlain(o.Drawable, o.Model)
}

// Table is the validated scene: every ObjectID resolves to an Object.
type Table struct {
	objects [objectCount]*Object
}

// Build resolves every placement in layout. A missing or invalid object is an
// error, so a built Table never fails a lookup.
func Build(layout Layout, res Resources) (*Table, error) {
	t := &Table{}
	var errs []error
	for id := ObjectID(0); id < objectCount; id++ {
		p, ok := layout[id]
		if !ok {
			errs = append(errs, fmt.Errorf("%s: missing from layout", id))
			continue
		}
		obj, err := resolve(id, p, res)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", id, err))
			continue
		}
		t.objects[id] = obj
	}
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("build scene: %w", err)
	}
	return t, nil
}

func resolve(id ObjectID, p Placement, res Resources) (*Object, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	kind, err := renderer.ParseShaderKind(p.Shader)
	if err != nil {
		return nil, err
	}

	obj := &Object{ID: id, Placement: p, Kind: kind, Model: p.Transform(), Diffuse: mgl32.Vec3{1, 1, 1}}
	if p.Material != "" {
		m, ok := renderer.MaterialByName(p.Material)
		if !ok {
			return nil, fmt.Errorf("unknown material %q", p.Material)
		}
		obj.Material = &m
	}

	obj.Program = res.Program(kind)
	if obj.Program == nil {
		return nil, fmt.Errorf("no program for shader %s", kind)
	}

	model, err := res.Model(p)
	if err != nil {
		return nil, err
	}
	obj.Drawable = model.Drawable
	if model.Diffuse != (mgl32.Vec3{}) {
		obj.Diffuse = model.Diffuse
	}

	texture := p.Texture
	if texture == "" {
		texture = model.TexturePath
	}
	if texture != "" && !p.NoTexture {
		obj.Texture = res.Texture(texture)
	}
	return obj, nil
}

func (t *Table) Get(id ObjectID) *Object {
	return t.objects[id]
}

// Static lists the non-prop objects in draw order.
func (t *Table) Static() []*Object {
	return t.objects[:firstProp]
}

// ShadowCasters lists the static objects drawn into the shadow map.
func (t *Table) ShadowCasters() []*Object {
	var out []*Object
	for _, o := range t.Static() {
		if o.Placement.ShadowCaster {
			out = append(out, o)
		}
	}
	return out
}

// Programs lists each distinct program used by the table once, in ID order.
func (t *Table) Programs() []renderer.Program {
	seen := map[renderer.Program]bool{}
	var out []renderer.Program
	for _, o := range t.objects {
		if !seen[o.Program] {
			seen[o.Program] = true
			out = append(out, o.Program)
		}
	}
	return out
}
