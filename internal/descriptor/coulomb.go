package descriptor

import (
	"molvec/internal/adapter/features"
	"molvec/internal/domain"
	"molvec/internal/port"
)

// CoulombDesc encodes molecules as flattened, sorted Coulomb matrices.
type CoulombDesc struct {
	*Base
	builder *features.Coulomb
}

func NewCoulombDesc(base *Base, nAtomsMax int) *CoulombDesc {
	return &CoulombDesc{
		Base:    base,
		builder: features.NewCoulomb(nAtomsMax),
	}
}

func (d *CoulombDesc) RowSize() int {
	return d.builder.NumFeatures()
}

func (d *CoulombDesc) MinRowSize() int {
	return d.RowSize()
}

func (d *CoulombDesc) TransformRow(smiles string) ([]float64, bool) {
	geom, xyz, ok := d.ComputeGeometry(smiles)
	if !ok {
		return make([]float64, d.RowSize()), false
	}
	vec, ok := d.cachedFeatures(d.builder, geom, xyz, smiles)
	if !ok {
		return make([]float64, d.RowSize()), false
	}
	return vec, true
}

func (d *CoulombDesc) Transform(inputs []string, progress port.ProgressFunc) (*domain.Matrix, error) {
	return transformParallel(d, inputs, d.nJobs, progress, d.log), nil
}
