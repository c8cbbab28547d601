package scene

import (
	"github.com/Faultbox/portfolio-room/internal/engine/gpu"
	"github.com/Faultbox/portfolio-room/pkg/math"
)

// Geometry is an indexed or non-indexed triangle list. Normals and UVs are optional but
// when present have one entry per position.
type Geometry struct {
	gpu.Resource

	Positions [][3]float32
	Normals   [][3]float32
	UVs       [][2]float32
	Indices   []uint32

	version int
}

// Version increments whenever vertex data is replaced so uploaded buffers can be refreshed.
func (g *Geometry) Version() int {
	return g.version
}

// MarkDirty flags the vertex data as changed.
func (g *Geometry) MarkDirty() {
	g.version++
}

// Indexed reports whether the geometry uses an index buffer.
func (g *Geometry) Indexed() bool {
	return len(g.Indices) > 0
}

// VertexCount returns the number of vertices drawn.
func (g *Geometry) VertexCount() int {
	if g.Indexed() {
		return len(g.Indices)
	}
	return len(g.Positions)
}

// TriangleCount returns the number of triangles.
func (g *Geometry) TriangleCount() int {
	return g.VertexCount() / 3
}

// Triangle returns the vertex indices of triangle i.
func (g *Geometry) Triangle(i int) (a, b, c uint32) {
	if g.Indexed() {
		return g.Indices[i*3], g.Indices[i*3+1], g.Indices[i*3+2]
	}
	base := uint32(i * 3)
	return base, base + 1, base + 2
}

// Bounds returns the local-space bounding box.
func (g *Geometry) Bounds() math.Box3 {
	box := math.EmptyBox3()
	for _, p := range g.Positions {
		box = box.ExpandByPoint(math.Vec3FromArray(p))
	}
	return box
}

// ApplyMatrix transforms the vertex data in place.
func (g *Geometry) ApplyMatrix(m math.Mat4) {
	for i, p := range g.Positions {
		g.Positions[i] = m.TransformPoint(p)
	}
	if len(g.Normals) > 0 {
		normalMatrix := m.Inverse().Transpose()
		for i, n := range g.Normals {
			g.Normals[i] = normalMatrix.TransformDirection(math.Vec3FromArray(n)).Normalize().Array()
		}
	}
	g.MarkDirty()
}

// Translate moves every vertex by (x, y, z).
func (g *Geometry) Translate(x, y, z float32) {
	g.ApplyMatrix(math.Translate(x, y, z))
}

// ScaleBy scales every vertex.
func (g *Geometry) ScaleBy(x, y, z float32) {
	g.ApplyMatrix(math.Scale(x, y, z))
}

// Clone returns a deep copy that shares no GPU state.
func (g *Geometry) Clone() *Geometry {
	return &Geometry{
		Positions: append([][3]float32(nil), g.Positions...),
		Normals:   append([][3]float32(nil), g.Normals...),
		UVs:       append([][2]float32(nil), g.UVs...),
		Indices:   append([]uint32(nil), g.Indices...),
	}
}

// NewBoxGeometry creates an axis-aligned box centred on the origin.
func NewBoxGeometry(width, height, depth float32) *Geometry {
	hx, hy, hz := width/2, height/2, depth/2
	type face struct {
		normal  [3]float32
		corners [4][3]float32
	}
	faces := []face{
		{[3]float32{1, 0, 0}, [4][3]float32{{hx, hy, hz}, {hx, -hy, hz}, {hx, -hy, -hz}, {hx, hy, -hz}}},
		{[3]float32{-1, 0, 0}, [4][3]float32{{-hx, hy, -hz}, {-hx, -hy, -hz}, {-hx, -hy, hz}, {-hx, hy, hz}}},
		{[3]float32{0, 1, 0}, [4][3]float32{{-hx, hy, -hz}, {-hx, hy, hz}, {hx, hy, hz}, {hx, hy, -hz}}},
		{[3]float32{0, -1, 0}, [4][3]float32{{-hx, -hy, hz}, {-hx, -hy, -hz}, {hx, -hy, -hz}, {hx, -hy, hz}}},
		{[3]float32{0, 0, 1}, [4][3]float32{{-hx, hy, hz}, {-hx, -hy, hz}, {hx, -hy, hz}, {hx, hy, hz}}},
		{[3]float32{0, 0, -1}, [4][3]float32{{hx, hy, -hz}, {hx, -hy, -hz}, {-hx, -hy, -hz}, {-hx, hy, -hz}}},
	}

	g := &Geometry{}
	for _, f := range faces {
		base := uint32(len(g.Positions))
		for i, c := range f.corners {
			g.Positions = append(g.Positions, c)
			g.Normals = append(g.Normals, f.normal)
			g.UVs = append(g.UVs, [2]float32{float32(i / 2), float32((i + 1) / 2 % 2)})
		}
		g.Indices = append(g.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return g
}

// NewPlaneGeometry creates a plane in the XY plane facing +Z, centred on the origin and
// subdivided into widthSegments x heightSegments quads.
func NewPlaneGeometry(width, height float32, widthSegments, heightSegments int) *Geometry {
	if widthSegments < 1 {
		widthSegments = 1
	}
	if heightSegments < 1 {
		heightSegments = 1
	}

	g := &Geometry{}
	cols, rows := widthSegments+1, heightSegments+1
	for iy := 0; iy < rows; iy++ {
		v := float32(iy) / float32(heightSegments)
		y := height/2 - v*height
		for ix := 0; ix < cols; ix++ {
			u := float32(ix) / float32(widthSegments)
			x := u*width - width/2
			g.Positions = append(g.Positions, [3]float32{x, y, 0})
			g.Normals = append(g.Normals, [3]float32{0, 0, 1})
			g.UVs = append(g.UVs, [2]float32{u, 1 - v})
		}
	}
	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := uint32(ix + cols*iy)
			b := uint32(ix + cols*(iy+1))
			c := uint32(ix + 1 + cols*(iy+1))
			d := uint32(ix + 1 + cols*iy)
			g.Indices = append(g.Indices, a, b, d, b, c, d)
		}
	}
	return g
}
