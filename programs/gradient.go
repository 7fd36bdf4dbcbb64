package programs

import (
	_ "embed"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stewi1014/glgradient/field"
)

//go:embed shaders/gradient.vert
var gradientVertex string

//go:embed shaders/gradient.frag
var gradientFragment string

// GradientName is the name the animated gradient is registered under.
const GradientName = "gradient"

func init() {
	NewProgram(Gradient())
}

// Gradient is the animated noise gradient with its circuit overlay.
func Gradient() Program {
	return Program{
		Name:           GradientName,
		VertexShader:   gradientVertex,
		FragmentShader: gradientFragment,
		GetPixel: func(uniforms Uniforms, fragCoord mgl32.Vec2) mgl32.Vec4 {
			return field.EvaluatePixel(fragCoord, uniforms.Resolution, uniforms.Time).Colour
		},
	}
}
