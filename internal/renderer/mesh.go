package renderer

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// VertexStride is the float count of one interleaved vertex: position, uv, normal.
const VertexStride = 8

// MeshData is CPU-side geometry ready for upload.
type MeshData struct {
	Vertices []float32 // [x y z u v nx ny nz] per vertex
	Indices  []uint32  // optional; empty means draw arrays
}

func (m MeshData) VertexCount() int {
	return len(m.Vertices) / VertexStride
}

func (m MeshData) Validate() error {
	if len(m.Vertices) == 0 {
		return errors.New("mesh has no vertices")
	}
	if len(m.Vertices)%VertexStride != 0 {
		return fmt.Errorf("vertex data length %d is not a multiple of %d", len(m.Vertices), VertexStride)
	}
	n := uint32(m.VertexCount())
	for i, idx := range m.Indices {
		if idx >= n {
			return fmt.Errorf("index %d at position %d out of range (%d vertices)", idx, i, n)
		}
	}
	return nil
}

// Mesh is an uploaded MeshData. The mesh that created the buffers owns them;
// references obtained with Ref draw the same buffers and never delete them.
type Mesh struct {
	vao, vbo, ebo uint32
	count         int32
	indexed       bool
	owner         bool
}

func NewMesh(data MeshData) (*Mesh, error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}

	m := &Mesh{owner: true, indexed: len(data.Indices) > 0}
	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data.Vertices)*4, gl.Ptr(data.Vertices), gl.STATIC_DRAW)

	if m.indexed {
		gl.GenBuffers(1, &m.ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(data.Indices)*4, gl.Ptr(data.Indices), gl.STATIC_DRAW)
		m.count = int32(len(data.Indices))
	} else {
		m.count = int32(data.VertexCount())
	}

	stride := int32(VertexStride * 4)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, stride, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(2, 3, gl.FLOAT, false, stride, gl.PtrOffset(5*4))
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)
	return m, nil
}

func (m *Mesh) Draw() {
	gl.BindVertexArray(m.vao)
	if m.indexed {
		gl.DrawElements(gl.TRIANGLES, m.count, gl.UNSIGNED_INT, gl.PtrOffset(0))
	} else {
		gl.DrawArrays(gl.TRIANGLES, 0, m.count)
	}
	gl.BindVertexArray(0)
}

// Ref returns a non-owning handle to the same GPU buffers.
func (m *Mesh) Ref() *Mesh {
	ref := *m
	ref.owner = false
	return &ref
}

func (m *Mesh) Owner() bool {
	return m.owner
}

// Delete frees the GPU buffers. It is a no-op on references.
func (m *Mesh) Delete() {
	if !m.owner {
		return
	}
	gl.DeleteVertexArrays(1, &m.vao)
	gl.DeleteBuffers(1, &m.vbo)
	if m.indexed {
		gl.DeleteBuffers(1, &m.ebo)
	}
	m.vao, m.vbo, m.ebo = 0, 0, 0
}
