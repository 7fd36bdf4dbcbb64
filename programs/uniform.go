package programs

import (
	"reflect"

	"github.com/go-gl/mathgl/mgl32"
)

// Uniforms are the per-frame program inputs. The uniform tag is the GLSL name.
type Uniforms struct {
	Resolution mgl32.Vec2 `uniform:"uResolution"`
	Time       float32    `uniform:"uTime"`
}

// UniformNames lists the GLSL names of every field in Uniforms, in field order.
func UniformNames() []string {
	t := reflect.TypeOf(Uniforms{})
	names := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		names = append(names, t.Field(i).Tag.Get("uniform"))
	}
	return names
}
