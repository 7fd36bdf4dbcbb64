package render

import (
	"errors"
	"testing"

	"github.com/stewi1014/glgradient/programs"
)

func TestBuildProgram(t *testing.T) {
	dev := newFakeDevice()
	opts := DefaultOptions()

	p, err := BuildProgram(dev, opts.VertexShader, opts.FragmentShader)
	if err != nil {
		t.Fatal(err)
	}
	if p.Resolution != 3 || p.Time != 4 || p.PositionAttrib != 0 {
		t.Fatalf("unexpected resolved inputs: %+v", p)
	}

	// Only the program survives; both stages were released after link.
	if dev.liveCount() != 1 || dev.live[p.Handle] != "program" {
		t.Fatalf("expected only the program handle to be live; got %v", dev.live)
	}

	p.Release(dev)
	if dev.liveCount() != 0 {
		t.Fatalf("expected no live handles after release; got %v", dev.live)
	}
}

func TestBuildProgramFailures(t *testing.T) {
	type spec struct {
		name     string
		setup    func(*fakeDevice)
		position string
		field    string
		check    func(error) bool
	}
	opts := DefaultOptions()
	isCompile := func(stage Stage) func(error) bool {
		return func(err error) bool {
			var ce *CompileError
			return errors.As(err, &ce) && ce.Stage == stage && ce.Log != ""
		}
	}
	isLink := func(err error) bool {
		var le *LinkError
		return errors.As(err, &le) && le.Log != ""
	}

	specs := []spec{
		{"malformed position stage", nil, "syntax error", opts.FragmentShader, isCompile(PositionStage)},
		{"malformed field stage", nil, opts.VertexShader, "void main() { syntax error }", isCompile(FieldStage)},
		{"link failure", func(d *fakeDevice) { d.failLink = true }, opts.VertexShader, opts.FragmentShader, isLink},
		{"missing time uniform", func(d *fakeDevice) { d.noUniforms["uTime"] = true }, opts.VertexShader, opts.FragmentShader, isLink},
		{"missing resolution uniform", func(d *fakeDevice) { d.noUniforms["uResolution"] = true }, opts.VertexShader, opts.FragmentShader, isLink},
		{"missing position input", func(d *fakeDevice) { d.noAttrib = true }, opts.VertexShader, opts.FragmentShader, isLink},
	}

	for _, s := range specs {
		t.Run(s.name, func(t *testing.T) {
			dev := newFakeDevice()
			if s.setup != nil {
				s.setup(dev)
			}
			before := dev.liveCount()

			p, err := BuildProgram(dev, s.position, s.field)
			if p != nil {
				t.Fatalf("expected no program; got %+v", p)
			}
			if !s.check(err) {
				t.Fatalf("unexpected error %v (%T)", err, err)
			}
			if after := dev.liveCount(); after != before {
				t.Fatalf("expected %d live handles; got %d: %v", before, after, dev.live)
			}
		})
	}
}

func TestSetUniformsUsesCachedLocations(t *testing.T) {
	dev := newFakeDevice()
	p := &Program{Resolution: 7, Time: 9}

	p.SetUniforms(dev, programs.Uniforms{Time: 2.5})
	if v := dev.uniforms[9]; len(v) != 1 || v[0] != 2.5 {
		t.Fatalf("expected time at location 9; got %v", dev.uniforms)
	}
	if _, ok := dev.uniforms[7]; !ok {
		t.Fatalf("expected resolution at location 7; got %v", dev.uniforms)
	}
}

func TestCompileErrorMessage(t *testing.T) {
	err := &CompileError{Stage: FieldStage, Log: "0:3: bad"}
	if got := err.Error(); got != "render: field stage failed to compile: 0:3: bad" {
		t.Fatalf("unexpected message %q", got)
	}
}
