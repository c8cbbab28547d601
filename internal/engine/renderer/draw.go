package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/portfolio-room/internal/engine/material"
	"github.com/Faultbox/portfolio-room/internal/engine/scene"
	"github.com/Faultbox/portfolio-room/internal/engine/shader"
	"github.com/Faultbox/portfolio-room/pkg/math"
)

// overlayColor is the colour of debug hitbox outlines.
var overlayColor = [4]float32{1, 0.2, 0.6, 1}

// draw binds the program for item's material and issues the draw call. It reports
// false for materials the renderer has no program for.
func (r *Renderer) draw(item drawItem, f *frame) bool {
	var prog *shader.Program
	state := item.material.State()

	switch m := item.material.(type) {
	case *material.Room:
		prog = r.programs.room
		prog.Use()
		bindTexture(0, r.texture(m.Day))
		bindTexture(1, r.texture(m.Night))
		prog.SetInt("uDayTexture", 0)
		prog.SetInt("uNightTexture", 1)
		prog.SetFloat("uMixRatio", m.MixRatio())

	case *material.Smoke:
		prog = r.programs.smoke
		prog.Use()
		bindTexture(0, r.texture(m.Noise))
		prog.SetInt("uPerlinTexture", 0)
		prog.SetFloat("uTime", m.Time)

	case *material.Glass:
		prog = r.programs.glass
		prog.Use()
		env := r.cube(m.EnvMap)
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_CUBE_MAP, env)
		prog.SetInt("uEnvMap", 0)
		prog.SetBool("uHasEnvMap", env != 0)
		prog.SetVec3("uCameraPos", f.eye.Array())
		prog.SetVec3("uColor", m.Color)
		prog.SetVec3("uSpecularColor", m.SpecularColor)
		prog.SetFloat("uIOR", m.IOR)
		prog.SetFloat("uRoughness", m.Roughness)
		prog.SetFloat("uTransmission", m.Transmission)
		prog.SetFloat("uSpecularIntensity", m.SpecularIntensity)
		prog.SetFloat("uEnvMapIntensity", m.EnvMapIntensity)

	case *material.Standard:
		prog = r.programs.standard
		prog.Use()
		bindTexture(0, r.texture(m.Map))
		prog.SetInt("uMap", 0)
		prog.SetBool("uHasMap", m.Map != nil && m.Map.Loaded())
		prog.SetVec4("uColor", m.Color)
		prog.SetVec3("uAmbient", f.lights.Ambient.Radiance())
		prog.SetVec3("uLightDir", f.lights.Directional.Direction())
		prog.SetVec3("uLightColor", f.lights.Directional.Radiance())
		prog.SetFloat("uOpacity", state.Opacity)

	case *material.Basic:
		prog = r.programs.basic
		prog.Use()
		prog.SetVec3("uColor", m.Color)
		prog.SetFloat("uOpacity", state.Opacity)

	default:
		return false
	}

	prog.SetMat4("uModel", item.world)
	prog.SetMat4("uView", f.view)
	prog.SetMat4("uProjection", f.projection)

	applyState(state)
	r.mesh(item.node.Geometry).draw()
	return true
}

func bindTexture(unit uint32, id uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, id)
}

func applyState(s *scene.RenderState) {
	switch s.Side {
	case scene.DoubleSide:
		gl.Disable(gl.CULL_FACE)
	case scene.BackSide:
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.FRONT)
	default:
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.BACK)
	}

	if s.Transparent || !s.DepthWrite {
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	} else {
		gl.Disable(gl.BLEND)
	}
	gl.DepthMask(s.DepthWrite)
}

func (r *Renderer) drawOverlay(viewProj math.Mat4) {
	r.lines.upload(r.overlay)

	prog := r.programs.line
	prog.Use()
	prog.SetMat4("uViewProj", viewProj)
	prog.SetVec4("uColor", overlayColor)

	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.BLEND)
	gl.DepthMask(true)
	gl.BindVertexArray(r.lines.vao)
	gl.DrawArrays(gl.LINES, 0, int32(len(r.overlay)/3))
	gl.BindVertexArray(0)
}
