package renderer

// CubeData is a unit cube centred on the origin with per-face normals.
func CubeData() MeshData {
	type face struct {
		normal  [3]float32
		corners [4][3]float32
	}
	faces := []face{
		{[3]float32{0, 0, -1}, [4][3]float32{{0.5, -0.5, -0.5}, {-0.5, -0.5, -0.5}, {-0.5, 0.5, -0.5}, {0.5, 0.5, -0.5}}},
		{[3]float32{0, 0, 1}, [4][3]float32{{-0.5, -0.5, 0.5}, {0.5, -0.5, 0.5}, {0.5, 0.5, 0.5}, {-0.5, 0.5, 0.5}}},
		{[3]float32{-1, 0, 0}, [4][3]float32{{-0.5, -0.5, -0.5}, {-0.5, -0.5, 0.5}, {-0.5, 0.5, 0.5}, {-0.5, 0.5, -0.5}}},
		{[3]float32{1, 0, 0}, [4][3]float32{{0.5, -0.5, 0.5}, {0.5, -0.5, -0.5}, {0.5, 0.5, -0.5}, {0.5, 0.5, 0.5}}},
		{[3]float32{0, -1, 0}, [4][3]float32{{-0.5, -0.5, -0.5}, {0.5, -0.5, -0.5}, {0.5, -0.5, 0.5}, {-0.5, -0.5, 0.5}}},
		{[3]float32{0, 1, 0}, [4][3]float32{{-0.5, 0.5, 0.5}, {0.5, 0.5, 0.5}, {0.5, 0.5, -0.5}, {-0.5, 0.5, -0.5}}},
	}
	uvs := [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	order := [6]int{0, 1, 2, 2, 3, 0}

	vertices := make([]float32, 0, 36*VertexStride)
	for _, f := range faces {
		for _, i := range order {
			c := f.corners[i]
			vertices = append(vertices, c[0], c[1], c[2], uvs[i][0], uvs[i][1], f.normal[0], f.normal[1], f.normal[2])
		}
	}
	return MeshData{Vertices: vertices}
}

// RectData is an indexed rectangle in the XY plane facing +Z, lower-left
// corner at (x, y). UVs run 0..repeat so textures tile across large surfaces.
func RectData(x, y, width, height, repeat float32) MeshData {
	return MeshData{
		Vertices: []float32{
			x, y, 0, 0, 0, 0, 0, 1,
			x + width, y, 0, repeat, 0, 0, 0, 1,
			x + width, y + height, 0, repeat, repeat, 0, 0, 1,
			x, y + height, 0, 0, repeat, 0, 0, 1,
		},
		Indices: []uint32{0, 1, 2, 2, 3, 0},
	}
}

// ScreenQuadData covers normalized device coordinates.
func ScreenQuadData() MeshData {
	return RectData(-1, -1, 2, 2, 1)
}
