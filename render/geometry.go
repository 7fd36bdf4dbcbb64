package render

import "errors"

var errVertexArray = errors.New("render: failed to create vertex array")

// QuadVertices are two triangles covering clip space.
var QuadVertices = [12]float32{
	-1, -1,
	1, -1,
	-1, 1,
	-1, 1,
	1, -1,
	1, 1,
}

// QuadVertexCount is the number of vertices drawn per frame.
const QuadVertexCount = int32(len(QuadVertices) / 2)

// Geometry is the immutable full-viewport quad.
type Geometry struct {
	vao uint32
	vbo uint32
}

// NewGeometry uploads the quad and binds it to the program's position input.
func NewGeometry(dev Device, program *Program) (*Geometry, error) {
	vertices := QuadVertices
	vao, vbo := dev.CreateVertexArray(program.PositionAttrib, vertices[:])

	g := &Geometry{vao: vao, vbo: vbo}
	if vao == 0 || vbo == 0 {
		g.Release(dev)
		return nil, errVertexArray
	}
	return g, nil
}

func (g *Geometry) Draw(dev Device) {
	dev.DrawTriangles(g.vao, QuadVertexCount)
}

func (g *Geometry) Release(dev Device) {
	if g.vao != 0 || g.vbo != 0 {
		dev.DeleteVertexArray(g.vao, g.vbo)
		g.vao, g.vbo = 0, 0
	}
}
