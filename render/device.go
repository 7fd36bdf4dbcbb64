package render

import "time"

// Stage identifies a shader stage.
type Stage int

const (
	PositionStage Stage = iota
	FieldStage
)

func (s Stage) String() string {
	switch s {
	case PositionStage:
		return "position"
	case FieldStage:
		return "field"
	}
	return "unknown"
}

// Device is the slice of a graphics context the session drives. Handles are
// non-zero when valid. Every call must come from the goroutine that owns the
// context.
type Device interface {
	// CompileShader always returns the created handle, even when ok is
	// false, so the caller can release it.
	CompileShader(stage Stage, source string) (shader uint32, infoLog string, ok bool)
	DeleteShader(shader uint32)

	// LinkProgram always returns the created handle, even when ok is false.
	LinkProgram(position, field uint32) (program uint32, infoLog string, ok bool)
	DeleteProgram(program uint32)

	// UniformLocation and AttribLocation return -1 when name is not an
	// active input of program.
	UniformLocation(program uint32, name string) int32
	AttribLocation(program uint32, name string) int32

	// CreateVertexArray creates a vertex array whose attribute attrib
	// reads tightly packed 2D float positions from a new static buffer.
	CreateVertexArray(attrib uint32, positions []float32) (vao, vbo uint32)
	DeleteVertexArray(vao, vbo uint32)

	Viewport(width, height int32)
	UseProgram(program uint32)
	Uniform1f(location int32, v float32)
	Uniform2f(location int32, x, y float32)
	Clear(r, g, b, a float32)
	DrawTriangles(vao uint32, vertices int32)

	// Release gives the context back. The device is unusable afterwards.
	Release()
}

// ContextProvider acquires the graphics context a session renders with.
type ContextProvider interface {
	Acquire() (Device, error)
}

// ContextFunc adapts a function to a ContextProvider.
type ContextFunc func() (Device, error)

func (f ContextFunc) Acquire() (Device, error) {
	return f()
}

// Surface reports the current drawable size in device pixels. It may change
// at any time and may transiently report zero.
type Surface interface {
	Size() (width, height int)
}

// SurfaceFunc adapts a function to a Surface.
type SurfaceFunc func() (width, height int)

func (f SurfaceFunc) Size() (width, height int) {
	return f()
}

// Clock is a monotonic time source.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock reads time.Now, which carries a monotonic reading.
var SystemClock Clock = systemClock{}

// FrameScheduler runs a callback at the next display frame, like a
// compositor's frame callback. The returned func cancels the request if it
// has not run yet.
type FrameScheduler interface {
	RequestFrame(fn func()) (cancel func())
}

type Startable interface {
	Start() error
}

type Stoppable interface {
	Stop()
}
