package programs

import (
	"errors"
	"image"

	"github.com/go-gl/mathgl/mgl32"
)

var ErrNoCPUImplementation = errors.New("program does not have a CPU implementation")

// PositionAttrib is the vertex input every program's position stage reads.
const PositionAttrib = "aPosition"

func NumPrograms() int {
	return len(programs)
}

func GetProgram(i int) Program {
	return programs[i]
}

// Names lists the registered programs in registration order.
func Names() []string {
	names := make([]string, NumPrograms())
	for i := range names {
		names[i] = GetProgram(i).Name
	}
	return names
}

// Lookup finds a registered program by name.
func Lookup(name string) (Program, bool) {
	for _, p := range programs {
		if p.Name == name {
			return p, true
		}
	}
	return Program{}, false
}

func NewProgram(p Program) error {
	programs = append(programs, p)
	return nil
}

var programs []Program

// PixelFunc is the CPU twin of a fragment stage. fragCoord is in window
// pixels with the origin bottom-left, as gl_FragCoord.
type PixelFunc func(uniforms Uniforms, fragCoord mgl32.Vec2) mgl32.Vec4

type Program struct {
	Name           string
	VertexShader   string
	FragmentShader string
	GetPixel       PixelFunc
}

// GetImage returns a CPU rendition of one frame at uniforms.Resolution.
func (p *Program) GetImage(uniforms Uniforms) (Image, error) {
	if p.GetPixel == nil {
		return nil, ErrNoCPUImplementation
	}

	return &programImage{
		uniforms: uniforms,
		bounds: image.Rect(
			0,
			0,
			int(uniforms.Resolution[0]),
			int(uniforms.Resolution[1]),
		),
		pixelFunc: p.GetPixel,
	}, nil
}

type Image interface {
	GetPixel(fragCoord mgl32.Vec2) mgl32.Vec4
	Bounds() image.Rectangle
}

type programImage struct {
	uniforms  Uniforms
	bounds    image.Rectangle
	pixelFunc PixelFunc
}

func (i *programImage) GetPixel(fragCoord mgl32.Vec2) mgl32.Vec4 {
	return i.pixelFunc(i.uniforms, fragCoord)
}

func (i *programImage) Bounds() image.Rectangle {
	return i.bounds
}
