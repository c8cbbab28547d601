package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/portfolio-room/internal/engine/scene"
)

// Interleaved vertex layout: position (3), normal (3), uv (2).
const (
	floatsPerVertex = 8
	vertexStride    = floatsPerVertex * 4
)

type meshBuffers struct {
	vao, vbo, ebo uint32
	count         int32
	indexed       bool
	version       int
}

// mesh returns the GPU buffers for g, uploading on first use or after MarkDirty.
func (r *Renderer) mesh(g *scene.Geometry) *meshBuffers {
	mb, ok := r.meshes[g]
	if ok && mb.version == g.Version() {
		return mb
	}
	if !ok {
		mb = &meshBuffers{}
		gl.GenVertexArrays(1, &mb.vao)
		gl.GenBuffers(1, &mb.vbo)
		gl.GenBuffers(1, &mb.ebo)
		r.meshes[g] = mb
		g.OnDispose(func() { r.releaseMesh(g) })
	}
	mb.upload(g)
	return mb
}

func (r *Renderer) releaseMesh(g *scene.Geometry) {
	if r.disposed {
		return
	}
	if mb, ok := r.meshes[g]; ok {
		mb.delete()
		delete(r.meshes, g)
	}
}

func interleave(g *scene.Geometry) []float32 {
	data := make([]float32, 0, len(g.Positions)*floatsPerVertex)
	for i, p := range g.Positions {
		var n [3]float32
		var uv [2]float32
		if i < len(g.Normals) {
			n = g.Normals[i]
		}
		if i < len(g.UVs) {
			uv = g.UVs[i]
		}
		data = append(data, p[0], p[1], p[2], n[0], n[1], n[2], uv[0], uv[1])
	}
	return data
}

func (mb *meshBuffers) upload(g *scene.Geometry) {
	data := interleave(g)

	gl.BindVertexArray(mb.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, mb.vbo)
	if len(data) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	}

	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, vertexStride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, vertexStride, 3*4)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, vertexStride, 6*4)
	gl.EnableVertexAttribArray(2)

	mb.indexed = g.Indexed()
	if mb.indexed {
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, mb.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(g.Indices)*4, gl.Ptr(g.Indices), gl.STATIC_DRAW)
		mb.count = int32(len(g.Indices))
	} else {
		mb.count = int32(len(g.Positions))
	}

	gl.BindVertexArray(0)
	mb.version = g.Version()
}

func (mb *meshBuffers) draw() {
	if mb.count == 0 {
		return
	}
	gl.BindVertexArray(mb.vao)
	if mb.indexed {
		gl.DrawElementsWithOffset(gl.TRIANGLES, mb.count, gl.UNSIGNED_INT, 0)
	} else {
		gl.DrawArrays(gl.TRIANGLES, 0, mb.count)
	}
	gl.BindVertexArray(0)
}

func (mb *meshBuffers) delete() {
	gl.DeleteVertexArrays(1, &mb.vao)
	gl.DeleteBuffers(1, &mb.vbo)
	gl.DeleteBuffers(1, &mb.ebo)
	mb.vao, mb.vbo, mb.ebo = 0, 0, 0
}

// lineBuffer is a dynamic vertex buffer for the debug overlay.
type lineBuffer struct {
	vao, vbo uint32
}

func (lb *lineBuffer) upload(vertices []float32) {
	if lb.vao == 0 {
		gl.GenVertexArrays(1, &lb.vao)
		gl.GenBuffers(1, &lb.vbo)
		gl.BindVertexArray(lb.vao)
		gl.BindBuffer(gl.ARRAY_BUFFER, lb.vbo)
		gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
		gl.EnableVertexAttribArray(0)
	}
	gl.BindVertexArray(lb.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, lb.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.DYNAMIC_DRAW)
}

func (lb *lineBuffer) delete() {
	if lb.vao == 0 {
		return
	}
	gl.DeleteVertexArrays(1, &lb.vao)
	gl.DeleteBuffers(1, &lb.vbo)
	lb.vao, lb.vbo = 0, 0
}
