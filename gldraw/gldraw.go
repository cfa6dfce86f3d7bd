// Package gldraw draws a polyfan scene to a GLFW window with OpenGL 4.1 core.
// All functions must be called from the goroutine that started the window,
// which must be locked to its OS thread.
package gldraw

import (
	_ "embed"
	"errors"
	"strings"
)

// Names of the uniforms every shader program must declare.
const (
	ColorUniform     = "color"
	TransformUniform = "transform"
)

// positionAttrib is the vertex attribute location of polygon vertex positions.
const positionAttrib = 0

var (
	//go:embed minimal.vert
	_vertexShader string
	//go:embed minimal.frag
	_fragmentShader string
)

var errNoCGO = errors.New("require cgo for OpenGL rendering")

// DefaultVertexShader returns the vertex shader used when none is provided.
// It reads positions from attribute location 0 and applies the transform uniform.
func DefaultVertexShader() string { return _vertexShader }

// DefaultFragmentShader returns the fragment shader used when none is provided.
// It fills every fragment with the color uniform.
func DefaultFragmentShader() string { return _fragmentShader }

// WindowConfig configures the window and OpenGL context.
type WindowConfig struct {
	Width, Height int
	Title         string
	// VSync sets a swap interval of 1 so that presenting a frame waits for vertical sync.
	VSync      bool
	ClearColor [4]float32
}

// DefaultWindowConfig returns the 800x800 vsync'd window configuration.
func DefaultWindowConfig() WindowConfig {
	return WindowConfig{
		Width:      800,
		Height:     800,
		Title:      "It's made of triangles but it's not a triangle!",
		VSync:      true,
		ClearColor: [4]float32{0.4, 0.2, 0.2, 1.0},
	}
}

func (cfg WindowConfig) validate() error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return errors.New("window dimensions must be positive")
	}
	return nil
}

// FillMode holds the polygon rasterization mode toggled by the user.
// The zero value is filled polygons.
type FillMode struct {
	wireframe bool
}

// Toggle switches between filled and wire-frame polygons and reports whether
// wire-frame is now enabled.
func (fm *FillMode) Toggle() bool {
	fm.wireframe = !fm.wireframe
	return fm.wireframe
}

// Wireframe reports whether polygons are drawn as lines.
func (fm *FillMode) Wireframe() bool { return fm.wireframe }

// SetWireframe sets the mode without toggling.
func (fm *FillMode) SetWireframe(on bool) { fm.wireframe = on }

// nulTerminate returns s with a trailing NUL character as required by GL string arguments.
func nulTerminate(s string) string {
	if strings.HasSuffix(s, "\x00") {
		return s
	}
	return s + "\x00"
}
