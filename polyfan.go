package polyfan

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms3"
)

// DefaultRadius is the circumradius of every polygon in the default scene.
const DefaultRadius = 0.25

// MaxSides is the largest supported side count. It keeps vertex counts
// representable by GL draw calls and meshes at a sane size.
const MaxSides = 1 << 16

// Polygon is a regular polygon inscribed in a circle of Radius centered at the
// origin on the XY plane. Its first vertex lies at angle 0.
type Polygon struct {
	Sides  int
	Radius float32
}

// NewPolygon returns a validated [Polygon]. Polygons need between 3 and [MaxSides] sides and
// a positive finite radius.
func NewPolygon(sides int, radius float32) (Polygon, error) {
	p := Polygon{Sides: sides, Radius: radius}
	err := p.Validate()
	if err != nil {
		return Polygon{}, err
	}
	return p, nil
}

// Validate returns a non-nil error if the polygon can not be triangulated.
func (p Polygon) Validate() error {
	if p.Sides < 3 {
		return fmt.Errorf("polygon needs at least 3 sides, got %d", p.Sides)
	} else if p.Sides > MaxSides {
		return fmt.Errorf("polygon side count %d exceeds maximum of %d", p.Sides, MaxSides)
	} else if !(p.Radius > 0) || math32.IsInf(p.Radius, 1) {
		return fmt.Errorf("polygon radius must be positive and finite, got %g", p.Radius)
	}
	return nil
}

// VertexCount returns the number of vertices in the polygon's triangle fan, 3*(Sides-2).
func (p Polygon) VertexCount() int {
	if p.Sides < 3 {
		return 0
	}
	return 3 * (p.Sides - 2)
}

// Area returns the exact area of the regular polygon.
func (p Polygon) Area() float32 {
	k := float32(p.Sides)
	return 0.5 * k * p.Radius * p.Radius * math32.Sin(2*math32.Pi/k)
}

// Fan returns a newly allocated triangle fan of the polygon. See [AppendFan].
func (p Polygon) Fan() []ms3.Vec {
	return AppendFan(make([]ms3.Vec, 0, p.VertexCount()), p)
}

// Triangles returns the polygon's triangle fan grouped by triangle.
func (p Polygon) Triangles() []ms3.Triangle {
	fan := p.Fan()
	tris := make([]ms3.Triangle, len(fan)/3)
	for i := range tris {
		tris[i] = ms3.Triangle{fan[3*i], fan[3*i+1], fan[3*i+2]}
	}
	return tris
}

// AppendFan appends the triangle fan covering the polygon p to dst and returns the result.
// Triangle i is made up of the vertices at angles 0, i+1 and i+2 (in units of 2π/Sides),
// so Sides-2 triangles are appended. All vertices have Z=0.
// AppendFan panics if p is not valid.
func AppendFan(dst []ms3.Vec, p Polygon) []ms3.Vec {
	if err := p.Validate(); err != nil {
		panic(err.Error())
	}
	corners := make([]ms3.Vec, p.Sides)
	for i := range corners {
		angle := 2 * math32.Pi * float32(i) / float32(p.Sides)
		sin, cos := math32.Sincos(angle)
		corners[i] = ms3.Vec{X: p.Radius * cos, Y: p.Radius * sin}
	}
	for i := 0; i < p.Sides-2; i++ {
		dst = append(dst, corners[0], corners[i+1], corners[i+2])
	}
	return dst
}

// FlattenVec3 appends the XYZ components of v to dst in order. The result is
// ready to be uploaded to a vertex buffer with 3 floats per vertex.
func FlattenVec3(dst []float32, v []ms3.Vec) []float32 {
	for _, p := range v {
		dst = append(dst, p.X, p.Y, p.Z)
	}
	return dst
}
