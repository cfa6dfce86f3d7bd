package polyfanaux

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/soypat/geometry/ms3"
	"github.com/soypat/polyfan"
	"gopkg.in/yaml.v3"
)

// sceneFile is the YAML layout of a scene description:
//
//	radius: 0.25
//	slots:
//	  - sides: a
//	    translate: [-0.5, 0.5, 0]
//	    rotate: z
//	    fixed_rotation: {angle: 3.14159265, axis: x}
//	    scale: [0.5, 0.5, 1]
//	    color: "#4dcc80"
type sceneFile struct {
	Radius *float32    `yaml:"radius"`
	Slots  []sceneSlot `yaml:"slots"`
}

type sceneSlot struct {
	Sides         string         `yaml:"sides"`
	Translate     []float32      `yaml:"translate"`
	Rotate        string         `yaml:"rotate"`
	FixedRotation *fixedRotation `yaml:"fixed_rotation"`
	Scale         []float32      `yaml:"scale"`
	Color         string         `yaml:"color"`
}

type fixedRotation struct {
	Angle float32 `yaml:"angle"`
	Axis  string  `yaml:"axis"`
}

// LoadScene decodes a YAML scene description. Slots with `sides: a` use sidesA
// and slots with `sides: b` use sidesB. Omitted translate defaults to the origin,
// omitted scale to (1,1,1) and omitted color to [polyfan.ColorA].
func LoadScene(r io.Reader, sidesA, sidesB int) ([]polyfan.SceneEntry, error) {
	b, err := readLimited(r)
	if err != nil {
		return nil, err
	}
	var file sceneFile
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	err = dec.Decode(&file)
	if err == io.EOF {
		return nil, errors.New("empty scene")
	} else if err != nil {
		return nil, fmt.Errorf("decoding scene: %w", err)
	} else if len(file.Slots) == 0 {
		return nil, errors.New("scene has no slots")
	}
	radius := float32(polyfan.DefaultRadius)
	if file.Radius != nil {
		radius = *file.Radius
	}
	scene := make([]polyfan.SceneEntry, len(file.Slots))
	for i, slot := range file.Slots {
		scene[i], err = slot.entry(sidesA, sidesB, radius)
		if err != nil {
			return nil, fmt.Errorf("slot %d: %w", i, err)
		}
	}
	err = polyfan.ValidateScene(scene)
	if err != nil {
		return nil, err
	}
	return scene, nil
}

func (slot sceneSlot) entry(sidesA, sidesB int, radius float32) (e polyfan.SceneEntry, err error) {
	var sides int
	switch strings.ToLower(slot.Sides) {
	case "a":
		sides = sidesA
	case "b":
		sides = sidesB
	default:
		return e, fmt.Errorf("sides must be \"a\" or \"b\", got %q", slot.Sides)
	}
	e.Polygon, err = polyfan.NewPolygon(sides, radius)
	if err != nil {
		return e, err
	}
	if slot.Translate != nil {
		e.Translate, err = parseVec(slot.Translate)
		if err != nil {
			return e, fmt.Errorf("translate: %w", err)
		}
	}
	e.Scale = ms3.Vec{X: 1, Y: 1, Z: 1}
	if slot.Scale != nil {
		e.Scale, err = parseVec(slot.Scale)
		if err != nil {
			return e, fmt.Errorf("scale: %w", err)
		}
	}
	e.Axis, err = parseAxis(slot.Rotate)
	if err != nil {
		return e, fmt.Errorf("rotate: %w", err)
	}
	if slot.FixedRotation != nil {
		e.FixedAngle = slot.FixedRotation.Angle
		e.FixedAxis, err = parseAxis(slot.FixedRotation.Axis)
		if err != nil {
			return e, fmt.Errorf("fixed_rotation: %w", err)
		}
	}
	e.Color = polyfan.ColorA
	if slot.Color != "" {
		e.Color, err = ParseColor(slot.Color)
		if err != nil {
			return e, err
		}
	}
	return e, nil
}

func parseVec(v []float32) (ms3.Vec, error) {
	if len(v) != 3 {
		return ms3.Vec{}, fmt.Errorf("want 3 components, got %d", len(v))
	}
	return ms3.Vec{X: v[0], Y: v[1], Z: v[2]}, nil
}

func parseAxis(s string) (ms3.Vec, error) {
	switch strings.ToLower(s) {
	case "x":
		return polyfan.AxisX, nil
	case "y":
		return polyfan.AxisY, nil
	case "z":
		return polyfan.AxisZ, nil
	}
	return ms3.Vec{}, fmt.Errorf("axis must be one of x, y or z, got %q", s)
}
