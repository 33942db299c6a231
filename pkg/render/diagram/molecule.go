package diagram

import (
	"context"
	"fmt"

	"github.com/matzehuels/pathdraw/pkg/pathway"
)

// MoleculeRenderer draws a chemical structure into an image of the given
// pixel size. Implementations live outside this module.
type MoleculeRenderer interface {
	Render(ctx context.Context, structureID string, width, height float64) ([]byte, error)
}

// Compositor turns a diagram into a final image.
type Compositor interface {
	Compose(ctx context.Context, d *Diagram) ([]byte, error)
}

// MoleculeRendererFunc adapts a function to [MoleculeRenderer].
type MoleculeRendererFunc func(ctx context.Context, structureID string, width, height float64) ([]byte, error)

// Render calls f.
func (f MoleculeRendererFunc) Render(ctx context.Context, structureID string, width, height float64) ([]byte, error) {
	return f(ctx, structureID, width, height)
}

// RenderMolecules fills d.Images with one subplot-sized image per species
// box that has a structure. It stops at the first error or when ctx is done.
func RenderMolecules(ctx context.Context, d *Diagram, r MoleculeRenderer) error {
	if d.Images == nil {
		d.Images = make(map[string][]byte)
	}
	for _, b := range d.Boxes {
		if b.StructureID == "" || b.Type != pathway.TypeSpecies {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		img, err := r.Render(ctx, b.StructureID, d.Subplot.X, d.Subplot.Y)
		if err != nil {
			return fmt.Errorf("render %s: %w", b.ID, err)
		}
		d.Images[b.ID] = img
	}
	return nil
}
