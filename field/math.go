package field

import "math"

// float32 renditions of the GLSL built-ins the field is written in.

func floor(x float32) float32 { return float32(math.Floor(float64(x))) }

func fract(x float32) float32 { return x - floor(x) }

func mod(x, y float32) float32 { return x - y*floor(x/y) }

func sin(x float32) float32 { return float32(math.Sin(float64(x))) }

func cos(x float32) float32 { return float32(math.Cos(float64(x))) }

func abs(x float32) float32 { return float32(math.Abs(float64(x))) }

func sqrt(x float32) float32 { return float32(math.Sqrt(float64(x))) }

func mix(a, b, t float32) float32 { return a*(1-t) + b*t }

func clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func step(edge, x float32) float32 {
	if x < edge {
		return 0
	}
	return 1
}

// smoothstep follows the GLSL definition literally, so an inverted edge
// pair (edge0 > edge1) yields a falling ramp.
func smoothstep(edge0, edge1, x float32) float32 {
	t := clamp((x-edge0)/(edge1-edge0), 0, 1)
	return t * t * (3 - 2*t)
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}
