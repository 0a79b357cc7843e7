package cli

import (
	"context"
	"fmt"

	"github.com/soypat/sdf"
	"github.com/soypat/sdf/render"
)

// defaultCells is the octree mesh resolution used when --cells is not
// given. 200 cells renders small parts in a few seconds.
const defaultCells = 200

// writeSTL meshes s with the octree renderer and writes it to path.
func writeSTL(ctx context.Context, s sdf.SDF3, path string, cells int) error {
	if cells < 2 {
		return fmt.Errorf("mesh cells must be at least 2, got %d", cells)
	}
	l := loggerFromContext(ctx)
	p := newProgress(l)
	l.Debugf("meshing at %d cells", cells)
	if err := render.CreateSTL(path, render.NewOctreeRenderer(s, cells)); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	p.done("Rendered " + path)
	return nil
}
