package field

import "github.com/go-gl/mathgl/mgl32"

// Skew and unskew factors for 2D simplex noise, plus 1/41 for gradient selection.
const (
	skewC0 = 0.211324865405187  // (3-sqrt(3))/6
	skewC1 = 0.366025403784439  // (sqrt(3)-1)/2
	skewC2 = -0.577350269189626 // -1 + 2*skewC0
	skewC3 = 0.024390243902439  // 1/41
)

func mod289(x float32) float32 {
	return mod(x, 289)
}

func permute(x float32) float32 {
	return mod289((x*34 + 1) * x)
}

// simplexCorner selects the middle corner of the simplex containing x0.
// Ties go to the upper triangle.
func simplexCorner(x0 mgl32.Vec2) mgl32.Vec2 {
	if x0[0] > x0[1] {
		return mgl32.Vec2{1, 0}
	}
	return mgl32.Vec2{0, 1}
}

// Noise2D is permutation-hashed 2D simplex gradient noise in roughly [-1, 1].
func Noise2D(v mgl32.Vec2) float32 {
	s := (v[0] + v[1]) * skewC1
	i := mgl32.Vec2{floor(v[0] + s), floor(v[1] + s)}

	u := (i[0] + i[1]) * skewC0
	x0 := mgl32.Vec2{v[0] - i[0] + u, v[1] - i[1] + u}

	i1 := simplexCorner(x0)
	x1 := mgl32.Vec2{x0[0] + skewC0 - i1[0], x0[1] + skewC0 - i1[1]}
	x2 := mgl32.Vec2{x0[0] + skewC2, x0[1] + skewC2}

	ix, iy := mod289(i[0]), mod289(i[1])
	p := [3]float32{
		permute(permute(iy+0) + ix + 0),
		permute(permute(iy+i1[1]) + ix + i1[0]),
		permute(permute(iy+1) + ix + 1),
	}

	corners := [3]mgl32.Vec2{x0, x1, x2}

	var sum float32
	for k, c := range corners {
		m := max32(0.5-c.Dot(c), 0)
		m *= m
		m *= m

		x := 2*fract(p[k]*skewC3) - 1
		h := abs(x) - 0.5
		a0 := x - floor(x+0.5)

		m *= 1.792843 - 0.853734*(a0*a0+h*h)
		sum += m * (a0*c[0] + h*c[1])
	}

	return 130 * sum
}

// FBM sums Octaves samples of Noise2D, doubling frequency and halving
// amplitude each octave.
func FBM(st mgl32.Vec2) float32 {
	var value float32
	amplitude := float32(0.5)
	freq := float32(1)
	for i := 0; i < Octaves; i++ {
		value += amplitude * Noise2D(st.Mul(freq))
		freq *= 2
		amplitude *= 0.5
	}
	return value
}

// Voronoi returns the squared distance from p to the nearest jittered cell
// point in the surrounding 3x3 cells. Jitter drifts with time.
func Voronoi(p mgl32.Vec2, time float32) float32 {
	n := mgl32.Vec2{floor(p[0]), floor(p[1])}
	f := mgl32.Vec2{fract(p[0]), fract(p[1])}

	md := float32(5)
	for j := -1; j <= 1; j++ {
		for i := -1; i <= 1; i++ {
			g := mgl32.Vec2{float32(i), float32(j)}
			cell := n.Add(g)
			o := mgl32.Vec2{
				0.5 + 0.5*sin(time*0.1+6.2831*Noise2D(cell)),
				0.5 + 0.5*sin(time*0.1+6.2831*Noise2D(cell.Add(mgl32.Vec2{1, 1}))),
			}
			r := g.Add(o).Sub(f)
			if d := r.Dot(r); d < md {
				md = d
			}
		}
	}
	return md
}
