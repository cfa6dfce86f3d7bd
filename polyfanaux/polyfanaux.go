// Package polyfanaux holds the command line and scene file helpers of the polyfan demo.
package polyfanaux

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/soypat/polyfan"
	"github.com/soypat/polyfan/gldraw"
)

// ParseSides parses the two positional polygon side counts. Both must be integers
// in the range [3, polyfan.MaxSides].
func ParseSides(args []string) (sidesA, sidesB int, err error) {
	if len(args) != 2 {
		return 0, 0, fmt.Errorf("want 2 positional side counts, got %d arguments", len(args))
	}
	var sides [2]int
	for i, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return 0, 0, fmt.Errorf("side count %q is not an integer", arg)
		} else if n < 3 {
			return 0, 0, fmt.Errorf("side count must be 3 or more, got %d", n)
		} else if n > polyfan.MaxSides {
			return 0, 0, fmt.Errorf("side count must be %d or less, got %d", polyfan.MaxSides, n)
		}
		sides[i] = n
	}
	return sides[0], sides[1], nil
}

// ShaderFiles reads a vertex and fragment shader pair from disk. An empty
// filename selects the embedded default for that stage.
func ShaderFiles(vertexFile, fragmentFile string) (vertex, fragment string, err error) {
	vertex = gldraw.DefaultVertexShader()
	fragment = gldraw.DefaultFragmentShader()
	if vertexFile != "" {
		vertex, err = readShader(vertexFile)
		if err != nil {
			return "", "", err
		}
	}
	if fragmentFile != "" {
		fragment, err = readShader(fragmentFile)
		if err != nil {
			return "", "", err
		}
	}
	return vertex, fragment, nil
}

func readShader(filename string) (string, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return "", fmt.Errorf("reading shader: %w", err)
	} else if len(b) == 0 {
		return "", fmt.Errorf("empty shader file %s", filename)
	}
	return string(b), nil
}

// SceneFile loads a scene from a YAML file. See [LoadScene].
func SceneFile(filename string, sidesA, sidesB int) ([]polyfan.SceneEntry, error) {
	fp, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	scene, err := LoadScene(fp, sidesA, sidesB)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return scene, nil
}

// maxSceneSize limits how much of a scene file is read.
const maxSceneSize = 1 << 20

func readLimited(r io.Reader) ([]byte, error) {
	b, err := io.ReadAll(io.LimitReader(r, maxSceneSize+1))
	if err != nil {
		return nil, err
	} else if len(b) > maxSceneSize {
		return nil, errors.New("scene file too large")
	}
	return b, nil
}
