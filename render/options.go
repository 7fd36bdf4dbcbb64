package render

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stewi1014/glgradient/programs"
)

type Options struct {
	// Program stage sources.
	VertexShader   string
	FragmentShader string

	// Colour the surface is cleared to before each draw.
	ClearColor mgl32.Vec4
}

// DefaultOptions renders the animated gradient over a transparent clear.
func DefaultOptions() Options {
	p := programs.Gradient()
	return Options{
		VertexShader:   p.VertexShader,
		FragmentShader: p.FragmentShader,
		ClearColor:     mgl32.Vec4{0, 0, 0, 0},
	}
}

// OptionsFor renders the named registered program.
func OptionsFor(name string) (Options, bool) {
	p, ok := programs.Lookup(name)
	if !ok {
		return Options{}, false
	}
	opts := DefaultOptions()
	opts.VertexShader = p.VertexShader
	opts.FragmentShader = p.FragmentShader
	return opts, true
}
