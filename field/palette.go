package field

import "github.com/go-gl/mathgl/mgl32"

// Palette is the ordered colour ramp the field index walks along:
// near-black blues and violets, through magenta and orange, to green and cyan.
var Palette = [PaletteSize]mgl32.Vec3{
	{0.01, 0.01, 0.02},
	{0.02, 0.02, 0.05},
	{0.03, 0.02, 0.08},
	{0.05, 0.0, 0.12},
	{0.1, 0.0, 0.2},
	{0.2, 0.0, 0.3},
	{0.3, 0.0, 0.5},
	{0.5, 0.0, 0.8},
	{0.7, 0.0, 1.0},
	{0.9, 0.0, 0.9},
	{1.0, 0.0, 0.7},
	{1.0, 0.0, 0.5},
	{1.0, 0.0, 0.3},
	{1.0, 0.1, 0.1},
	{1.0, 0.3, 0.0},
	{1.0, 0.5, 0.0},
	{0.7, 1.0, 0.0},
	{0.0, 1.0, 0.5},
	{0.0, 1.0, 0.8},
	{0.0, 0.8, 1.0},
}

// PaletteAt interpolates the palette at a continuous index, clamped to
// [0, PaletteSize-1]. It also returns the bracketing entries used.
// A NaN index reads entry 0.
func PaletteAt(index float32) (colour mgl32.Vec3, low, high int) {
	if index != index {
		index = 0
	}
	index = clamp(index, 0, PaletteSize-1)

	low = int(floor(index))
	high = int(min32(float32(low+1), PaletteSize-1))
	f := fract(index)

	a, b := Palette[low], Palette[high]
	return mgl32.Vec3{
		mix(a[0], b[0], f),
		mix(a[1], b[1], f),
		mix(a[2], b[2], f),
	}, low, high
}
