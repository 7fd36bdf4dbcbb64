// Package gldevice implements render.Device on an OpenGL 4.6 core context.
//
// The context belongs to the host (a GLFW window or a GTK GLArea). The
// device only requires it to be current on the calling thread.
package gldevice

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/stewi1014/glgradient/log"
	"github.com/stewi1014/glgradient/render"
)

var logger = log.New("gl")

var _ render.Device = (*Device)(nil)

type Device struct {
	released bool
}

// Options controls context setup done by Init.
type Options struct {
	// Forward driver debug messages to the gl logger.
	Debug bool
}

// Init loads GL function pointers for the current context and returns a
// device drawing on it.
func Init(opts Options) (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("gl.Init: %w", err)
	}

	logger.Infof("OpenGL version %s", gl.GoStr(gl.GetString(gl.VERSION)))

	if opts.Debug {
		gl.DebugMessageCallback(debugMessage, nil)
		gl.Enable(gl.DEBUG_OUTPUT)
	}

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.BLEND)

	return &Device{}, nil
}

// Provider returns a render.ContextProvider that calls Init.
func Provider(opts Options) render.ContextProvider {
	return render.ContextFunc(func() (render.Device, error) {
		return Init(opts)
	})
}

func stageType(stage render.Stage) uint32 {
	if stage == render.PositionStage {
		return gl.VERTEX_SHADER
	}
	return gl.FRAGMENT_SHADER
}

func (d *Device) CompileShader(stage render.Stage, source string) (uint32, string, bool) {
	source += "\x00"
	defer runtime.KeepAlive(source)
	cstring, free := gl.Strs(source)
	defer free()

	shader := gl.CreateShader(stageType(stage))
	gl.ShaderSource(shader, 1, cstring, nil)
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var l int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &l)

		infoLog := strings.Repeat("\x00", int(l+1))
		gl.GetShaderInfoLog(shader, l, nil, gl.Str(infoLog))
		return shader, strings.TrimRight(infoLog, "\x00"), false
	}

	return shader, "", true
}

func (d *Device) DeleteShader(shader uint32) {
	gl.DeleteShader(shader)
}

func (d *Device) LinkProgram(position, field uint32) (uint32, string, bool) {
	program := gl.CreateProgram()
	gl.AttachShader(program, position)
	gl.AttachShader(program, field)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)

	// Detached stages can be deleted by the caller straight away.
	gl.DetachShader(program, position)
	gl.DetachShader(program, field)

	if status == gl.FALSE {
		var l int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &l)

		infoLog := strings.Repeat("\x00", int(l+1))
		gl.GetProgramInfoLog(program, l, nil, gl.Str(infoLog))
		return program, strings.TrimRight(infoLog, "\x00"), false
	}

	return program, "", true
}

func (d *Device) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

func (d *Device) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (d *Device) AttribLocation(program uint32, name string) int32 {
	return gl.GetAttribLocation(program, gl.Str(name+"\x00"))
}

func (d *Device) CreateVertexArray(attrib uint32, positions []float32) (uint32, uint32) {
	var vao, vbo uint32

	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)

	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(positions)*4, gl.Ptr(positions), gl.STATIC_DRAW)

	gl.EnableVertexAttribArray(attrib)
	gl.VertexAttribPointerWithOffset(attrib, 2, gl.FLOAT, false, 2*4, 0)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	return vao, vbo
}

func (d *Device) DeleteVertexArray(vao, vbo uint32) {
	if vao != 0 {
		gl.DeleteVertexArrays(1, &vao)
	}
	if vbo != 0 {
		gl.DeleteBuffers(1, &vbo)
	}
}

func (d *Device) Viewport(width, height int32) {
	gl.Viewport(0, 0, width, height)
}

func (d *Device) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (d *Device) Uniform1f(location int32, v float32) {
	gl.Uniform1f(location, v)
}

func (d *Device) Uniform2f(location int32, x, y float32) {
	gl.Uniform2f(location, x, y)
}

func (d *Device) Clear(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

func (d *Device) DrawTriangles(vao uint32, vertices int32) {
	gl.BindVertexArray(vao)
	gl.DrawArrays(gl.TRIANGLES, 0, vertices)
}

// Release unbinds everything the session used. The context itself is
// destroyed by whoever created it.
func (d *Device) Release() {
	if d.released {
		return
	}
	d.released = true

	gl.UseProgram(0)
	gl.BindVertexArray(0)
	gl.Disable(gl.DEBUG_OUTPUT)
}
