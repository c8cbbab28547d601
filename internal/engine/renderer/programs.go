package renderer

import (
	"github.com/Faultbox/portfolio-room/internal/engine/material"
	"github.com/Faultbox/portfolio-room/internal/engine/shader"
)

// programs holds one linked program per material type.
type programs struct {
	room     *shader.Program
	smoke    *shader.Program
	glass    *shader.Program
	standard *shader.Program
	basic    *shader.Program
	line     *shader.Program
}

func newPrograms() (*programs, error) {
	p := &programs{}
	specs := []struct {
		dst    **shader.Program
		name   string
		vs, fs string
	}{
		{&p.room, "room", material.RoomVertexShader, material.RoomFragmentShader},
		{&p.smoke, "smoke", material.SmokeVertexShader, material.SmokeFragmentShader},
		{&p.glass, "glass", material.GlassVertexShader, material.GlassFragmentShader},
		{&p.standard, "standard", material.BasicVertexShader, material.StandardFragmentShader},
		{&p.basic, "basic", material.BasicVertexShader, material.BasicFragmentShader},
		{&p.line, "line", material.LineVertexShader, material.LineFragmentShader},
	}
	for _, s := range specs {
		prog, err := shader.NewProgram(s.name, s.vs, s.fs)
		if err != nil {
			p.delete()
			return nil, err
		}
		*s.dst = prog
	}
	return p, nil
}

func (p *programs) delete() {
	if p == nil {
		return
	}
	for _, prog := range []*shader.Program{p.room, p.smoke, p.glass, p.standard, p.basic, p.line} {
		if prog != nil {
			prog.Delete()
		}
	}
}
