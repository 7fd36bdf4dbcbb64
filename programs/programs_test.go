package programs

import (
	"context"
	"image"
	"image/color"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stewi1014/glgradient/field"
)

func TestGradientRegistered(t *testing.T) {
	p, ok := Lookup(GradientName)
	if !ok {
		t.Fatal("expected gradient program to be registered")
	}
	if !strings.HasPrefix(p.VertexShader, "#version 300 es") {
		t.Fatalf("unexpected vertex shader header: %q", firstLine(p.VertexShader))
	}
	if !strings.HasPrefix(p.FragmentShader, "#version 300 es") {
		t.Fatalf("unexpected fragment shader header: %q", firstLine(p.FragmentShader))
	}
	if !strings.Contains(p.VertexShader, "in vec2 "+PositionAttrib+";") {
		t.Fatalf("expected vertex shader to declare %s", PositionAttrib)
	}
	for _, name := range UniformNames() {
		if !strings.Contains(p.FragmentShader, name) {
			t.Fatalf("expected fragment shader to declare uniform %s", name)
		}
	}
	if _, ok := Lookup("missing"); ok {
		t.Fatal("expected lookup of unknown program to fail")
	}
}

func TestUniformNames(t *testing.T) {
	names := UniformNames()
	if len(names) != 2 || names[0] != "uResolution" || names[1] != "uTime" {
		t.Fatalf("expected [uResolution uTime]; got %v", names)
	}
}

func TestGetImageRequiresCPUImplementation(t *testing.T) {
	p := Program{Name: "gpu-only"}
	if _, err := p.GetImage(Uniforms{}); err != ErrNoCPUImplementation {
		t.Fatalf("expected ErrNoCPUImplementation; got %v", err)
	}
}

func TestToImageFlipsRows(t *testing.T) {
	var sampled []mgl32.Vec2
	p := Program{
		GetPixel: func(uniforms Uniforms, fragCoord mgl32.Vec2) mgl32.Vec4 {
			sampled = append(sampled, fragCoord)
			return mgl32.Vec4{1, 0, 0, 1}
		},
	}

	img, err := p.GetImage(Uniforms{Resolution: mgl32.Vec2{4, 2}})
	if err != nil {
		t.Fatal(err)
	}

	c := ToImage(img).At(1, 0)
	if c != (color.NRGBA{R: 255, A: 255}) {
		t.Fatalf("expected opaque red; got %v", c)
	}
	if exp := (mgl32.Vec2{1.5, 1.5}); sampled[0] != exp {
		t.Fatalf("expected top row to sample fragCoord %v; got %v", exp, sampled[0])
	}
}

func TestBufferedImageMatchesSource(t *testing.T) {
	p := Gradient()
	img, err := p.GetImage(Uniforms{Resolution: mgl32.Vec2{64, 48}, Time: 3})
	if err != nil {
		t.Fatal(err)
	}

	src := ToImage(img)
	var wrapped image.Image = src
	progress := WrapWithProgress(&wrapped)

	buff := BufferImage(wrapped)
	if err := buff.Buffer(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := progress(); got != 1 {
		t.Fatalf("expected progress 1 after buffering; got %v", got)
	}

	for _, pt := range []image.Point{{0, 0}, {63, 47}, {10, 20}, {50, 3}} {
		if a, b := buff.At(pt.X, pt.Y), src.At(pt.X, pt.Y); a != b {
			t.Fatalf("[%v] expected buffered %v to match source %v", pt, a, b)
		}
	}
}

func TestBufferCancelled(t *testing.T) {
	p := Gradient()
	img, _ := p.GetImage(Uniforms{Resolution: mgl32.Vec2{200, 10}})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := BufferImage(ToImage(img)).Buffer(ctx); err != context.Canceled {
		t.Fatalf("expected context.Canceled; got %v", err)
	}
}

func TestGradientMatchesField(t *testing.T) {
	p := Gradient()
	u := Uniforms{Resolution: mgl32.Vec2{320, 200}, Time: 1.25}
	pos := mgl32.Vec2{100.5, 50.5}

	exp := field.EvaluatePixel(pos, u.Resolution, u.Time).Colour
	if got := p.GetPixel(u, pos); got != exp {
		t.Fatalf("expected %v; got %v", exp, got)
	}
}

func TestAntiAlias9xConstant(t *testing.T) {
	p := Program{
		GetPixel: func(Uniforms, mgl32.Vec2) mgl32.Vec4 { return mgl32.Vec4{0.5, 0.25, 1, 1} },
	}
	img, _ := p.GetImage(Uniforms{Resolution: mgl32.Vec2{8, 8}})

	got := AntiAlias9x(img, 1.0/3).GetPixel(mgl32.Vec2{4, 4})
	if !got.ApproxEqualThreshold(mgl32.Vec4{0.5, 0.25, 1, 1}, 1e-6) {
		t.Fatalf("expected constant colour to survive antialiasing; got %v", got)
	}
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}

func TestGradientPaletteMatchesShader(t *testing.T) {
	decl := regexp.MustCompile(`(?s)cyberpunkColors\[NUM_COLORS\] = vec3\[\]\((.*?)\);`).
		FindStringSubmatch(Gradient().FragmentShader)
	if decl == nil {
		t.Fatal("expected the fragment shader to declare the colour table")
	}

	entries := regexp.MustCompile(`vec3\(([^,]+), ([^,]+), ([^)]+)\)`).FindAllStringSubmatch(decl[1], -1)
	if len(entries) != field.PaletteSize {
		t.Fatalf("expected %d colours in the shader; got %d", field.PaletteSize, len(entries))
	}

	for i, e := range entries {
		var colour mgl32.Vec3
		for c := 0; c < 3; c++ {
			v, err := strconv.ParseFloat(e[c+1], 32)
			if err != nil {
				t.Fatalf("[colour %d] %v", i, err)
			}
			colour[c] = float32(v)
		}
		if colour != field.Palette[i] {
			t.Fatalf("[colour %d] shader has %v; field palette has %v", i, colour, field.Palette[i])
		}
	}
}

func TestProgramListing(t *testing.T) {
	found := false
	for i := 0; i < NumPrograms(); i++ {
		if GetProgram(i).Name == GradientName {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected %q among the registered programs", GradientName)
	}
	if names := Names(); len(names) != NumPrograms() || names[0] != GetProgram(0).Name {
		t.Fatalf("expected Names to list every program in order; got %v", names)
	}
}
