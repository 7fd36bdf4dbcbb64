package field

import "github.com/go-gl/mathgl/mgl32"

// cellHash is the classic fract(sin(dot)) hash of a grid cell.
func cellHash(cell mgl32.Vec2) float32 {
	return fract(sin(cell.Dot(mgl32.Vec2{12.9898, 78.233})) * 43758.5453)
}

// Circuit draws a printed-circuit pattern at the given cell scale: traces,
// vias, component outlines and blinking LEDs picked per cell by cellHash.
// The result lies in [-0.05, 1.05].
func Circuit(uv mgl32.Vec2, time, scale float32) float32 {
	scaled := uv.Mul(scale)
	cell := mgl32.Vec2{floor(scaled[0]), floor(scaled[1])}
	cellUV := mgl32.Vec2{fract(scaled[0]), fract(scaled[1])}

	cellRandom := cellHash(cell)

	const lineWidth = 0.05
	horizontal := smoothstep(0, lineWidth, abs(cellUV[1]-0.5))
	vertical := smoothstep(0, lineWidth, abs(cellUV[0]-0.5))

	horizontal = mix(1, horizontal, step(0.4, cellRandom))
	vertical = mix(1, vertical, step(0.7, cellRandom))

	centre := cellUV.Sub(mgl32.Vec2{0.5, 0.5})

	var node float32
	if cellRandom > 0.75 {
		const nodeSize = 0.15
		node = smoothstep(nodeSize, nodeSize-0.05, centre.Len())
	}

	var component float32
	if cellRandom > 0.9 {
		size := 0.2 + 0.1*sin(time+cellRandom*10)
		component = step(size, max32(abs(centre[0]), abs(centre[1])))
	}

	var led float32
	if cellRandom > 0.95 {
		const ledSize = 0.05
		dist := cellUV.Sub(mgl32.Vec2{0.7, 0.3}).Len()
		led = smoothstep(ledSize, ledSize-0.02, dist)
		led *= 0.5 + 0.5*sin(time*(3+cellRandom*5))
	}

	circuit := min32(horizontal*vertical, 1)
	circuit = min32(circuit+node+component, 1)
	circuit = min32(circuit+led*2, 1)

	const pulseSpeed = 0.2
	pulse := 0.05 * sin(time*pulseSpeed+cellRandom*10)

	return circuit + pulse
}
