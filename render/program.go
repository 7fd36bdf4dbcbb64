package render

import (
	"fmt"
	"strings"

	"github.com/stewi1014/glgradient/programs"
)

// Program is a linked program with its inputs resolved once after link.
type Program struct {
	Handle uint32

	PositionAttrib uint32
	Resolution     int32
	Time           int32
}

// BuildProgram compiles both stages and links them. On any failure every
// handle created so far is released before the error is returned.
func BuildProgram(dev Device, positionSource, fieldSource string) (*Program, error) {
	position, err := compileStage(dev, PositionStage, positionSource)
	if err != nil {
		return nil, err
	}
	defer dev.DeleteShader(position)

	fieldShader, err := compileStage(dev, FieldStage, fieldSource)
	if err != nil {
		return nil, err
	}
	defer dev.DeleteShader(fieldShader)

	handle, infoLog, ok := dev.LinkProgram(position, fieldShader)
	if !ok {
		if handle != 0 {
			dev.DeleteProgram(handle)
		}
		return nil, &LinkError{Log: strings.TrimSpace(infoLog)}
	}

	p := &Program{Handle: handle}
	if err := p.resolveInputs(dev); err != nil {
		dev.DeleteProgram(handle)
		return nil, err
	}

	return p, nil
}

func compileStage(dev Device, stage Stage, source string) (uint32, error) {
	shader, infoLog, ok := dev.CompileShader(stage, source)
	if !ok {
		if shader != 0 {
			dev.DeleteShader(shader)
		}
		return 0, &CompileError{Stage: stage, Log: strings.TrimSpace(infoLog)}
	}
	return shader, nil
}

func (p *Program) resolveInputs(dev Device) error {
	attrib := dev.AttribLocation(p.Handle, programs.PositionAttrib)
	if attrib < 0 {
		return &LinkError{Log: fmt.Sprintf("missing vertex input %q", programs.PositionAttrib)}
	}
	p.PositionAttrib = uint32(attrib)

	locations := make(map[string]int32)
	for _, name := range programs.UniformNames() {
		loc := dev.UniformLocation(p.Handle, name)
		if loc < 0 {
			return &LinkError{Log: fmt.Sprintf("missing uniform %q", name)}
		}
		locations[name] = loc
	}
	p.Resolution = locations["uResolution"]
	p.Time = locations["uTime"]

	return nil
}

// SetUniforms uploads the frame inputs using the cached locations.
func (p *Program) SetUniforms(dev Device, u programs.Uniforms) {
	dev.Uniform2f(p.Resolution, u.Resolution[0], u.Resolution[1])
	dev.Uniform1f(p.Time, u.Time)
}

func (p *Program) Release(dev Device) {
	if p.Handle != 0 {
		dev.DeleteProgram(p.Handle)
		p.Handle = 0
	}
}
