package polyfan

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/soypat/geometry/ms3"
)

// RotationSpeed is the angular speed of every scene entry in radians per second.
const RotationSpeed = 0.6

// Unit axes.
var (
	AxisX = ms3.Vec{X: 1}
	AxisY = ms3.Vec{Y: 1}
	AxisZ = ms3.Vec{Z: 1}
)

// Default scene colors in RGBA.
var (
	ColorA = [4]float32{0.3, 0.8, 0.5, 1.0}
	ColorB = [4]float32{0.1, 0.4, 0.5, 1.0}
)

// SceneEntry pairs a polygon with its placement recipe. The transform of an entry
// is rebuilt from scratch every frame so it depends only on the elapsed time.
type SceneEntry struct {
	Polygon Polygon
	// Translate is the position of the polygon's center.
	Translate ms3.Vec
	// Axis is the axis about which the polygon spins with time.
	Axis ms3.Vec
	// FixedAngle is a static rotation about FixedAxis applied after the
	// time dependent rotation. Zero means no static rotation.
	FixedAngle float32
	FixedAxis  ms3.Vec
	Scale      ms3.Vec
	Color      [4]float32
}

// Transform returns the column-major model matrix of the entry for the given
// rotation angle: T * R(angle) * Rfixed * S.
func (e SceneEntry) Transform(angle float32) mgl32.Mat4 {
	m := mgl32.Ident4()
	m = m.Mul4(mgl32.Translate3D(e.Translate.X, e.Translate.Y, e.Translate.Z))
	m = m.Mul4(mgl32.HomogRotate3D(angle, vec3(e.Axis).Normalize()))
	if e.FixedAngle != 0 {
		m = m.Mul4(mgl32.HomogRotate3D(e.FixedAngle, vec3(e.FixedAxis).Normalize()))
	}
	m = m.Mul4(mgl32.Scale3D(e.Scale.X, e.Scale.Y, e.Scale.Z))
	return m
}

// Validate checks the entry can be drawn.
func (e SceneEntry) Validate() error {
	err := e.Polygon.Validate()
	if err != nil {
		return err
	}
	if e.Axis == (ms3.Vec{}) {
		return errors.New("null rotation axis")
	} else if e.FixedAngle != 0 && e.FixedAxis == (ms3.Vec{}) {
		return errors.New("null fixed rotation axis")
	} else if e.Scale.X == 0 || e.Scale.Y == 0 {
		return fmt.Errorf("degenerate scale %v", e.Scale)
	} else if !finite(e.Translate) || !finite(e.Scale) || !finite(e.Axis) || !finite(e.FixedAxis) {
		return errors.New("non-finite translate, scale or axis component")
	} else if math32.IsNaN(e.FixedAngle) || math32.IsInf(e.FixedAngle, 0) {
		return fmt.Errorf("non-finite fixed rotation angle %g", e.FixedAngle)
	}
	for i, c := range e.Color {
		if c < 0 || c > 1 || math32.IsNaN(c) {
			return fmt.Errorf("color component %d out of [0,1] range: %g", i, c)
		}
	}
	return nil
}

var errNoSlots = errors.New("scene has no entries")

// ValidateScene validates every entry in the scene.
func ValidateScene(scene []SceneEntry) error {
	if len(scene) == 0 {
		return errNoSlots
	}
	for i := range scene {
		err := scene[i].Validate()
		if err != nil {
			return fmt.Errorf("scene entry %d: %w", i, err)
		}
	}
	return nil
}

// RotationAngle returns the rotation angle in radians shared by all scene entries
// after elapsed seconds.
func RotationAngle(elapsed float64) float32 {
	return float32(RotationSpeed * elapsed)
}

// DefaultScene returns the four polygon scene with [DefaultRadius]. The top
// two entries have sidesA sides and the bottom two have sidesB sides.
func DefaultScene(sidesA, sidesB int) ([]SceneEntry, error) {
	return DefaultSceneWithRadius(sidesA, sidesB, DefaultRadius)
}

// DefaultSceneWithRadius is [DefaultScene] with a custom polygon radius.
func DefaultSceneWithRadius(sidesA, sidesB int, radius float32) ([]SceneEntry, error) {
	polyA, err := NewPolygon(sidesA, radius)
	if err != nil {
		return nil, err
	}
	polyB, err := NewPolygon(sidesB, radius)
	if err != nil {
		return nil, err
	}
	scene := []SceneEntry{
		{ // Top left.
			Polygon:   polyA,
			Translate: ms3.Vec{X: -0.5, Y: 0.5},
			Axis:      AxisZ,
			Scale:     ms3.Vec{X: 0.5, Y: 0.5, Z: 1},
			Color:     ColorA,
		},
		{ // Top right, flipped about X.
			Polygon:    polyA,
			Translate:  ms3.Vec{X: 0.5, Y: 0.5},
			Axis:       AxisY,
			FixedAngle: math32.Pi,
			FixedAxis:  AxisX,
			Scale:      ms3.Vec{X: 1, Y: 1, Z: 1},
			Color:      ColorA,
		},
		{ // Bottom left.
			Polygon:   polyB,
			Translate: ms3.Vec{X: -0.5, Y: -0.5},
			Axis:      AxisZ,
			Scale:     ms3.Vec{X: 0.8, Y: 0.8, Z: 1},
			Color:     ColorB,
		},
		{ // Bottom right, flipped about X.
			Polygon:    polyB,
			Translate:  ms3.Vec{X: 0.5, Y: -0.5},
			Axis:       AxisY,
			FixedAngle: math32.Pi,
			FixedAxis:  AxisX,
			Scale:      ms3.Vec{X: 0.4, Y: 0.4, Z: 1},
			Color:      ColorB,
		},
	}
	return scene, nil
}

func finite(v ms3.Vec) bool {
	for _, c := range [3]float32{v.X, v.Y, v.Z} {
		if math32.IsNaN(c) || math32.IsInf(c, 0) {
			return false
		}
	}
	return true
}

func vec3(v ms3.Vec) mgl32.Vec3 {
	return mgl32.Vec3{v.X, v.Y, v.Z}
}
