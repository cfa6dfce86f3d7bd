//go:build tinygo || !cgo

package gldraw

import (
	"context"

	"github.com/soypat/polyfan"
)

type Window struct{}

func StartWindow(cfg WindowConfig) (*Window, error) { return nil, errNoCGO }

func (win *Window) Close() {}

func Run(ctx context.Context, win *Window, r *Renderer, fill *FillMode) error { return errNoCGO }

// Program stands in for a linked shader program.
type Program struct{}

func CompileShaders(vertex, fragment string) (Program, error) { return Program{}, errNoCGO }

type Mesh struct{}

func UploadMesh(p polyfan.Polygon) (Mesh, error) { return Mesh{}, errNoCGO }

func (m Mesh) Count() int { return 0 }

func (m *Mesh) Delete() {}

type Renderer struct{}

func NewRenderer(prog Program, scene []polyfan.SceneEntry) (*Renderer, error) {
	return nil, errNoCGO
}

func (r *Renderer) Draw(elapsed float64) error { return errNoCGO }

func (r *Renderer) Delete() {}
