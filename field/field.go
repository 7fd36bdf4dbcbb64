// Package field evaluates the animated background colour field on the CPU.
//
// The functions here mirror the gradient fragment shader in float32
// arithmetic so frames can be checked, previewed and rasterised without a
// graphics context. Time is the raw elapsed time in seconds, the same value
// fed to the uTime uniform.
package field

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// PaletteSize is the number of entries in Palette.
	PaletteSize = 20

	// Octaves is the number of noise layers summed by FBM.
	Octaves = 8

	// Zoom scales aspect-corrected coordinates into field space.
	Zoom = 0.25

	// CircuitScale is the number of circuit cells per unit of
	// aspect-corrected coordinate.
	CircuitScale = 20

	// TimeScale converts elapsed seconds to the field's slow time.
	TimeScale = 0.2
)

var (
	glowTint    = mgl32.Vec3{0, 0.2, 0.5}
	circuitTint = mgl32.Vec3{0, 0.5, 1}
)

// Fragment is one evaluated sample of the field.
type Fragment struct {
	Colour mgl32.Vec4

	// Bracketing palette entries the base colour was interpolated from.
	Low, High int

	// Circuit overlay intensity before it was mixed in.
	Circuit float32
}

// EvaluatePixel evaluates the field at a window-space fragment coordinate,
// as gl_FragCoord would supply it (pixel centres at +0.5). A surface with
// no area yields a zero, fully transparent Fragment.
func EvaluatePixel(fragCoord, resolution mgl32.Vec2, time float32) Fragment {
	if !(resolution[0] > 0 && resolution[1] > 0) {
		return Fragment{}
	}
	ndc := mgl32.Vec2{
		fragCoord[0]/resolution[0]*2 - 1,
		fragCoord[1]/resolution[1]*2 - 1,
	}
	return Evaluate(ndc, resolution[0]/resolution[1], time)
}

// Evaluate evaluates the field at a normalised device coordinate in
// [-1, 1]x[-1, 1] on a surface with the given width/height aspect ratio.
func Evaluate(ndc mgl32.Vec2, aspect, time float32) Fragment {
	original := mgl32.Vec2{ndc[0] * aspect, ndc[1]}
	uv := original.Mul(Zoom)

	t := time * TimeScale

	// Domain warp.
	waveAmp := 0.3 + 0.2*Noise2D(mgl32.Vec2{t * 0.5, 27.7})
	waveX := waveAmp * sin(uv[1]*3.5+t)
	waveY := waveAmp * sin(uv[0]*3.5-t)
	uv = mgl32.Vec2{uv[0] + waveX, uv[1] + waveY}

	uv = swirl(uv, time)

	n := FBM(uv)
	v := Voronoi(uv.Mul(3).Add(mgl32.Vec2{t * 0.2, t * 0.2}), time)
	n = mix(n, v, 0.3)
	n += 0.25 * sin(t+n*3)

	noiseVal := 0.5 * (n + 1)

	colour, low, high := PaletteAt(clamp(noiseVal, 0, 1) * (PaletteSize - 1))

	glow := 0.5 * (1 - uv.Len())
	colour = colour.Add(glowTint.Mul(max32(0, glow*glow)))

	circuit := Circuit(original, t, CircuitScale)

	visibility := 0.15 * (1 - smoothstep(0, 0.5, colour.Len()))
	colour = mixVec3(colour, colour.Add(circuitTint.Mul(circuit)), visibility)

	pulse := 0.1 * sin(t*2)
	colour = colour.Mul(1 + pulse*max32(0, colour.Len()-0.5))

	return Fragment{
		Colour:  colour.Vec4(Alpha(low, high, circuit)),
		Low:     low,
		High:    high,
		Circuit: circuit,
	}
}

// Alpha is 0 only where the base colour comes from the darkest palette
// entry alone and no circuitry is drawn over it.
func Alpha(low, high int, circuit float32) float32 {
	if low == 0 && high == 0 && circuit < 0.1 {
		return 0
	}
	return 1
}

// swirl rotates uv about the origin by an angle that fades out with radius.
func swirl(uv mgl32.Vec2, time float32) mgl32.Vec2 {
	r := uv.Len()
	if r == 0 {
		return uv
	}

	angle := float32(math.Atan2(float64(uv[1]), float64(uv[0])))
	strength := 1.5 * (1 - smoothstep(0, 1, r))
	angle += strength * sin(time*0.8+r*4)

	return mgl32.Vec2{cos(angle) * r, sin(angle) * r}
}

func mixVec3(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return mgl32.Vec3{mix(a[0], b[0], t), mix(a[1], b[1], t), mix(a[2], b[2], t)}
}
