//go:build !tinygo && cgo

package gldraw

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/soypat/glgl/v4.1-core/glgl"
	"github.com/soypat/polyfan"
)

// Window is a GLFW window with a current OpenGL 4.1 core context.
type Window struct {
	w *glfw.Window
}

// StartWindow initializes GLFW and OpenGL and opens a window with its context made current.
// Call [Window.Close] when done to release the window and terminate GLFW.
func StartWindow(cfg WindowConfig) (*Window, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("initializing GLFW: %w", err)
	}
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("creating GLFW window: %w", err)
	}
	window.MakeContextCurrent()
	if cfg.VSync {
		glfw.SwapInterval(1)
	}
	if err := gl.Init(); err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("initializing OpenGL: %w", err)
	}
	c := cfg.ClearColor
	gl.ClearColor(c[0], c[1], c[2], c[3])
	return &Window{w: window}, nil
}

// Close destroys the window and terminates GLFW.
func (win *Window) Close() {
	if win.w != nil {
		win.w.Destroy()
		win.w = nil
	}
	glfw.Terminate()
}

// Run is the event loop. Each iteration draws a frame with the time elapsed since
// Run was called, presents it and polls events. Escape closes the window and
// the L key toggles fill. Run returns nil when the window is closed.
func Run(ctx context.Context, win *Window, r *Renderer, fill *FillMode) error {
	if win == nil || win.w == nil {
		return errors.New("nil or closed window")
	} else if r == nil {
		return errors.New("nil renderer")
	}
	if fill == nil {
		fill = new(FillMode)
	}
	window := win.w
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		switch key {
		case glfw.KeyEscape:
			w.SetShouldClose(true)
		case glfw.KeyL:
			setPolygonMode(fill.Toggle())
		}
	})
	defer window.SetKeyCallback(nil)
	setPolygonMode(fill.Wireframe())

	start := glfw.GetTime()
	for !window.ShouldClose() {
		if ctx != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
		}
		err := r.Draw(glfw.GetTime() - start)
		if err != nil {
			return err
		}
		window.SwapBuffers()
		glfw.PollEvents()
	}
	return nil
}

func setPolygonMode(wireframe bool) {
	if wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
}

// CompileShaders compiles and links a vertex and fragment shader pair.
func CompileShaders(vertex, fragment string) (glgl.Program, error) {
	prog, err := glgl.CompileProgram(glgl.ShaderSource{
		Vertex:   nulTerminate(vertex),
		Fragment: nulTerminate(fragment),
	})
	if err != nil {
		return prog, fmt.Errorf("compiling shaders: %w", err)
	}
	return prog, nil
}

// Mesh is a polygon fan uploaded to its own vertex array and buffer.
type Mesh struct {
	vao, vbo uint32
	count    int32
}

// UploadMesh uploads the triangle fan of p to the GPU. Positions are bound to attribute 0
// as 3 floats per vertex.
func UploadMesh(p polyfan.Polygon) (Mesh, error) {
	if err := p.Validate(); err != nil {
		return Mesh{}, err
	}
	vertices := polyfan.FlattenVec3(make([]float32, 0, 3*p.VertexCount()), p.Fan())
	var m Mesh
	gl.GenVertexArrays(1, &m.vao)
	if m.vao == 0 {
		return Mesh{}, glErrOrMessage("generating vertex array got zero id")
	}
	gl.BindVertexArray(m.vao)
	gl.GenBuffers(1, &m.vbo)
	if m.vbo == 0 {
		gl.BindVertexArray(0)
		gl.DeleteVertexArrays(1, &m.vao)
		return Mesh{}, glErrOrMessage("generating vertex buffer got zero id")
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, 4*len(vertices), gl.Ptr(vertices), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(positionAttrib)
	gl.VertexAttribPointer(positionAttrib, 3, gl.FLOAT, false, 0, gl.PtrOffset(0))

	// Unbind so later calls can't modify the mesh by accident.
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	m.count = int32(p.VertexCount())
	if err := glgl.Err(); err != nil {
		m.Delete()
		return Mesh{}, fmt.Errorf("uploading %d sided polygon: %w", p.Sides, err)
	}
	return m, nil
}

// Count returns the number of vertices in the mesh.
func (m Mesh) Count() int { return int(m.count) }

// Delete releases the GPU storage of the mesh.
func (m *Mesh) Delete() {
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
		m.vbo = 0
	}
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
		m.vao = 0
	}
	m.count = 0
}

// Renderer draws the scene entries in order, one draw call per entry.
type Renderer struct {
	prog         glgl.Program
	colorLoc     int32
	transformLoc int32
	entries      []polyfan.SceneEntry
	meshes       []Mesh
}

// NewRenderer resolves the color and transform uniforms of prog and uploads a mesh
// for every scene entry. A missing uniform is an error. The renderer takes ownership of prog,
// which is deleted if NewRenderer fails.
func NewRenderer(prog glgl.Program, scene []polyfan.SceneEntry) (*Renderer, error) {
	if prog.ID() == 0 {
		return nil, errors.New("program id is 0, did compilation succeed?")
	}
	err := polyfan.ValidateScene(scene)
	if err != nil {
		prog.Delete()
		return nil, err
	}
	prog.Bind()
	defer prog.Unbind()
	colorLoc, err := uniformLocation(prog, ColorUniform)
	if err != nil {
		prog.Delete()
		return nil, err
	}
	transformLoc, err := uniformLocation(prog, TransformUniform)
	if err != nil {
		prog.Delete()
		return nil, err
	}
	r := &Renderer{
		prog:         prog,
		colorLoc:     colorLoc,
		transformLoc: transformLoc,
		entries:      append([]polyfan.SceneEntry{}, scene...),
		meshes:       make([]Mesh, 0, len(scene)),
	}
	for i := range r.entries {
		mesh, err := UploadMesh(r.entries[i].Polygon)
		if err != nil {
			r.Delete()
			return nil, fmt.Errorf("scene entry %d: %w", i, err)
		}
		r.meshes = append(r.meshes, mesh)
	}
	return r, nil
}

func uniformLocation(prog glgl.Program, name string) (int32, error) {
	loc, err := prog.UniformLocation(nulTerminate(name))
	if err != nil {
		return -1, fmt.Errorf("shader uniform %q: %w", name, err)
	} else if loc < 0 {
		return -1, fmt.Errorf("shader uniform %q not found", name)
	}
	return loc, nil
}

// Draw clears the framebuffer and draws every scene entry rotated by the angle
// corresponding to elapsed seconds. Transforms are recomputed from scratch.
func (r *Renderer) Draw(elapsed float64) error {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	r.prog.Bind()
	angle := polyfan.RotationAngle(elapsed)
	for i := range r.entries {
		entry := &r.entries[i]
		transform := entry.Transform(angle)
		gl.BindVertexArray(r.meshes[i].vao)
		gl.Uniform4fv(r.colorLoc, 1, &entry.Color[0])
		gl.UniformMatrix4fv(r.transformLoc, 1, false, &transform[0])
		gl.DrawArrays(gl.TRIANGLES, 0, r.meshes[i].count)
	}
	gl.BindVertexArray(0)
	return glgl.Err()
}

// Delete releases all meshes and the shader program.
func (r *Renderer) Delete() {
	for i := range r.meshes {
		r.meshes[i].Delete()
	}
	r.meshes = r.meshes[:0]
	r.prog.Delete()
}

func glErrOrMessage(defaultMsg string) (err error) {
	err = glgl.Err()
	if err == nil {
		err = errors.New(defaultMsg)
	} else {
		err = fmt.Errorf("%s: %w", defaultMsg, err)
	}
	return err
}
