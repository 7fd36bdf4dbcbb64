package render

import (
	"strings"
	"time"
)

type drawCall struct {
	program    uint32
	vao        uint32
	vertices   int32
	resolution [2]float32
	time       float32
	viewport   [2]int32
}

// fakeDevice records calls and tracks live handles so tests can check
// for leaks.
type fakeDevice struct {
	nextHandle uint32
	live       map[uint32]string

	failCompile map[Stage]bool
	failLink    bool
	noUniforms  map[string]bool
	noAttrib    bool
	noBuffers   bool

	released  bool
	order     []string
	uniforms  map[int32][]float32
	current   uint32
	viewport  [2]int32
	viewports int
	clears    int
	draws     []drawCall
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{
		live:        make(map[uint32]string),
		failCompile: make(map[Stage]bool),
		noUniforms:  make(map[string]bool),
		uniforms:    make(map[int32][]float32),
	}
}

func (d *fakeDevice) alloc(kind string) uint32 {
	d.nextHandle++
	d.live[d.nextHandle] = kind
	return d.nextHandle
}

func (d *fakeDevice) free(h uint32, kind string) {
	if d.live[h] != kind {
		panic("fakeDevice: freeing " + kind + " that is not live")
	}
	delete(d.live, h)
	d.order = append(d.order, "delete "+kind)
}

func (d *fakeDevice) liveCount() int {
	return len(d.live)
}

func (d *fakeDevice) CompileShader(stage Stage, source string) (uint32, string, bool) {
	h := d.alloc("shader")
	if d.failCompile[stage] || strings.Contains(source, "syntax error") {
		return h, "0:1(1): error: syntax error\n", false
	}
	return h, "", true
}

func (d *fakeDevice) DeleteShader(shader uint32) { d.free(shader, "shader") }

func (d *fakeDevice) LinkProgram(position, field uint32) (uint32, string, bool) {
	h := d.alloc("program")
	if d.failLink {
		return h, "error: vertex output not consumed\n", false
	}
	return h, "", true
}

func (d *fakeDevice) DeleteProgram(program uint32) { d.free(program, "program") }

func (d *fakeDevice) UniformLocation(program uint32, name string) int32 {
	if d.noUniforms[name] {
		return -1
	}
	switch name {
	case "uResolution":
		return 3
	case "uTime":
		return 4
	}
	return -1
}

func (d *fakeDevice) AttribLocation(program uint32, name string) int32 {
	if d.noAttrib || name != "aPosition" {
		return -1
	}
	return 0
}

func (d *fakeDevice) CreateVertexArray(attrib uint32, positions []float32) (uint32, uint32) {
	if d.noBuffers {
		return d.alloc("vao"), 0
	}
	return d.alloc("vao"), d.alloc("vbo")
}

func (d *fakeDevice) DeleteVertexArray(vao, vbo uint32) {
	if vbo != 0 {
		d.free(vbo, "vbo")
	}
	if vao != 0 {
		d.free(vao, "vao")
	}
}

func (d *fakeDevice) Viewport(width, height int32) {
	d.viewport = [2]int32{width, height}
	d.viewports++
}

func (d *fakeDevice) UseProgram(program uint32) { d.current = program }

func (d *fakeDevice) Uniform1f(location int32, v float32) {
	d.uniforms[location] = []float32{v}
}

func (d *fakeDevice) Uniform2f(location int32, x, y float32) {
	d.uniforms[location] = []float32{x, y}
}

func (d *fakeDevice) Clear(r, g, b, a float32) { d.clears++ }

func (d *fakeDevice) DrawTriangles(vao uint32, vertices int32) {
	if d.released {
		panic("fakeDevice: draw after release")
	}
	call := drawCall{
		program:  d.current,
		vao:      vao,
		vertices: vertices,
		viewport: d.viewport,
	}
	if res := d.uniforms[3]; len(res) == 2 {
		call.resolution = [2]float32{res[0], res[1]}
	}
	if t := d.uniforms[4]; len(t) == 1 {
		call.time = t[0]
	}
	d.draws = append(d.draws, call)
}

func (d *fakeDevice) Release() {
	d.released = true
	d.order = append(d.order, "release context")
}

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(1700000000, 0)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type fakeSurface struct {
	width, height int
}

func (s *fakeSurface) Size() (int, int) { return s.width, s.height }
