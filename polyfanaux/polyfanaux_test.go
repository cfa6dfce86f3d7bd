package polyfanaux

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/polyfan"
	"github.com/soypat/polyfan/gldraw"
)

func TestParseSides(t *testing.T) {
	var tests = []struct {
		args    []string
		a, b    int
		wantErr bool
	}{
		{args: []string{"3", "4"}, a: 3, b: 4},
		{args: []string{"12", "7"}, a: 12, b: 7},
		{args: []string{"2", "4"}, wantErr: true},
		{args: []string{"5", "0"}, wantErr: true},
		{args: []string{"-6", "5"}, wantErr: true},
		{args: []string{"five", "5"}, wantErr: true},
		{args: []string{"5"}, wantErr: true},
		{args: []string{"5", "6", "7"}, wantErr: true},
		{args: []string{"65536", "3"}, a: 65536, b: 3},
		{args: []string{"65537", "3"}, wantErr: true},
		{args: []string{"3", "3000000000"}, wantErr: true},
		{args: nil, wantErr: true},
	}
	for _, test := range tests {
		a, b, err := ParseSides(test.args)
		if test.wantErr {
			if err == nil {
				t.Errorf("%q: expected error", test.args)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: %s", test.args, err)
		} else if a != test.a || b != test.b {
			t.Errorf("%q: want (%d,%d), got (%d,%d)", test.args, test.a, test.b, a, b)
		}
	}
}

func TestParseColor(t *testing.T) {
	var tests = []struct {
		in      string
		want    [4]float32
		wantErr bool
	}{
		{in: "#ff0000", want: [4]float32{1, 0, 0, 1}},
		{in: "#00ff0080", want: [4]float32{0, 1, 0, 128. / 255}},
		{in: "Teal", want: [4]float32{0, 128. / 255, 128. / 255, 1}},
		{in: " white ", want: [4]float32{1, 1, 1, 1}},
		{in: "#fff", wantErr: true},
		{in: "#gg0000", wantErr: true},
		{in: "notacolor", wantErr: true},
	}
	for _, test := range tests {
		got, err := ParseColor(test.in)
		if test.wantErr {
			if err == nil {
				t.Errorf("%q: expected error", test.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: %s", test.in, err)
		} else if got != test.want {
			t.Errorf("%q: want %v, got %v", test.in, test.want, got)
		}
	}
}

const defaultSceneYAML = `
radius: 0.25
slots:
  - sides: a
    translate: [-0.5, 0.5, 0]
    rotate: z
    scale: [0.5, 0.5, 1]
    color: "#4dcc80"
  - sides: a
    translate: [0.5, 0.5, 0]
    rotate: y
    fixed_rotation: {angle: 3.1415927, axis: x}
    color: "#4dcc80"
  - sides: b
    translate: [-0.5, -0.5, 0]
    rotate: z
    scale: [0.8, 0.8, 1]
    color: "#1a6680"
  - sides: B
    translate: [0.5, -0.5, 0]
    rotate: Y
    fixed_rotation: {angle: 3.1415927, axis: x}
    scale: [0.4, 0.4, 1]
    color: "#1a6680"
`

func TestLoadSceneMatchesDefault(t *testing.T) {
	got, err := LoadScene(strings.NewReader(defaultSceneYAML), 5, 9)
	if err != nil {
		t.Fatal(err)
	}
	want, err := polyfan.DefaultScene(5, 9)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(want) {
		t.Fatalf("want %d slots, got %d", len(want), len(got))
	}
	for i := range want {
		g, w := got[i], want[i]
		if g.Polygon != w.Polygon || g.Translate != w.Translate || g.Axis != w.Axis ||
			g.FixedAxis != w.FixedAxis || g.Scale != w.Scale {
			t.Errorf("slot %d: want %+v, got %+v", i, w, g)
		}
		if math32.Abs(g.FixedAngle-w.FixedAngle) > 1e-6 {
			t.Errorf("slot %d: want fixed angle %g, got %g", i, w.FixedAngle, g.FixedAngle)
		}
		for j := range w.Color {
			// Hex colors quantize to 1/255.
			if math32.Abs(g.Color[j]-w.Color[j]) > 1./255 {
				t.Errorf("slot %d: want color %v, got %v", i, w.Color, g.Color)
				break
			}
		}
	}
}

func TestLoadSceneDefaults(t *testing.T) {
	scene, err := LoadScene(strings.NewReader("slots:\n  - {sides: a, rotate: z}\n"), 6, 3)
	if err != nil {
		t.Fatal(err)
	}
	e := scene[0]
	if e.Polygon.Sides != 6 || e.Polygon.Radius != polyfan.DefaultRadius {
		t.Errorf("unexpected polygon %+v", e.Polygon)
	}
	if e.Scale != (ms3.Vec{X: 1, Y: 1, Z: 1}) || e.Translate != (ms3.Vec{}) || e.Color != polyfan.ColorA || e.FixedAngle != 0 {
		t.Errorf("unexpected defaults %+v", e)
	}
}

func TestLoadSceneErrors(t *testing.T) {
	var tests = []struct {
		name string
		yaml string
	}{
		{name: "empty", yaml: ""},
		{name: "no slots", yaml: "radius: 1\n"},
		{name: "bad sides", yaml: "slots:\n  - {sides: c, rotate: z}\n"},
		{name: "bad axis", yaml: "slots:\n  - {sides: a, rotate: w}\n"},
		{name: "missing axis", yaml: "slots:\n  - {sides: a}\n"},
		{name: "short translate", yaml: "slots:\n  - {sides: a, rotate: z, translate: [1, 2]}\n"},
		{name: "zero scale", yaml: "slots:\n  - {sides: a, rotate: z, scale: [0, 1, 1]}\n"},
		{name: "bad fixed axis", yaml: "slots:\n  - {sides: a, rotate: z, fixed_rotation: {angle: 1, axis: q}}\n"},
		{name: "bad color", yaml: "slots:\n  - {sides: a, rotate: z, color: nope}\n"},
		{name: "bad radius", yaml: "radius: -1\nslots:\n  - {sides: a, rotate: z}\n"},
		{name: "not yaml", yaml: "slots: [\n"},
		{name: "nan translate", yaml: "slots:\n  - {sides: a, rotate: z, translate: [.nan, 0, 0]}\n"},
		{name: "inf scale", yaml: "slots:\n  - {sides: a, rotate: z, scale: [1, .inf, 1]}\n"},
		{name: "nan fixed angle", yaml: "slots:\n  - {sides: a, rotate: z, fixed_rotation: {angle: .nan, axis: x}}\n"},
		{name: "unknown slot key", yaml: "slots:\n  - {sides: a, rotate: z, colour: red}\n"},
		{name: "misspelled scale", yaml: "slots:\n  - {sides: a, rotate: z, scael: [2, 2, 1]}\n"},
		{name: "unknown top key", yaml: "radus: 0.5\nslots:\n  - {sides: a, rotate: z}\n"},
	}
	for _, test := range tests {
		_, err := LoadScene(strings.NewReader(test.yaml), 4, 4)
		if err == nil {
			t.Errorf("%s: expected error", test.name)
		}
	}
	// Side counts are validated even when the file is fine.
	_, err := LoadScene(strings.NewReader(defaultSceneYAML), 2, 4)
	if err == nil {
		t.Error("expected error for 2 sided polygon")
	}
}

func TestSceneFile(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "scene.yml")
	err := os.WriteFile(filename, []byte(defaultSceneYAML), 0666)
	if err != nil {
		t.Fatal(err)
	}
	scene, err := SceneFile(filename, 3, 3)
	if err != nil {
		t.Fatal(err)
	} else if len(scene) != 4 {
		t.Errorf("want 4 slots, got %d", len(scene))
	}
	_, err = SceneFile(filepath.Join(t.TempDir(), "missing.yml"), 3, 3)
	if err == nil {
		t.Error("expected error for missing file")
	}
}

func TestShaderFiles(t *testing.T) {
	vertex, fragment, err := ShaderFiles("", "")
	if err != nil {
		t.Fatal(err)
	}
	if vertex != gldraw.DefaultVertexShader() || fragment != gldraw.DefaultFragmentShader() {
		t.Error("expected embedded shaders when no files given")
	}
	dir := t.TempDir()
	fragFile := filepath.Join(dir, "custom.frag")
	const custom = "#version 410 core\nuniform vec4 color;\nout vec4 c;\nvoid main(){c=color.bgra;}\n"
	err = os.WriteFile(fragFile, []byte(custom), 0666)
	if err != nil {
		t.Fatal(err)
	}
	vertex, fragment, err = ShaderFiles("", fragFile)
	if err != nil {
		t.Fatal(err)
	}
	if vertex != gldraw.DefaultVertexShader() || fragment != custom {
		t.Error("expected custom fragment shader and default vertex shader")
	}
	emptyFile := filepath.Join(dir, "empty.vert")
	os.WriteFile(emptyFile, nil, 0666)
	_, _, err = ShaderFiles(emptyFile, "")
	if err == nil {
		t.Error("expected error for empty shader file")
	}
}

func TestExampleSceneFile(t *testing.T) {
	scene, err := SceneFile(filepath.Join("..", "examples", "polyfan", "scene.yml"), 3, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(scene) != 5 {
		t.Errorf("want 5 slots, got %d", len(scene))
	}
}
