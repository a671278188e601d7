package descriptor

import (
	"molvec/internal/adapter/features"
	"molvec/internal/domain"
	"molvec/internal/port"
)

// MBTRDesc encodes molecules with the many-body tensor representation.
type MBTRDesc struct {
	*Base
	builder *features.MBTR
}

func NewMBTRDesc(base *Base, species []string, atomicNumbersN, inverseDistancesN, cosineAnglesN int) (*MBTRDesc, error) {
	builder, err := features.NewMBTR(species, atomicNumbersN, inverseDistancesN, cosineAnglesN)
	if err != nil {
		return nil, err
	}
	return &MBTRDesc{Base: base, builder: builder}, nil
}

func (d *MBTRDesc) RowSize() int {
	return d.builder.NumFeatures()
}

func (d *MBTRDesc) MinRowSize() int {
	return d.RowSize()
}

func (d *MBTRDesc) TransformRow(smiles string) ([]float64, bool) {
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

func (d *MBTRDesc) Transform(inputs []string, progress port.ProgressFunc) (*domain.Matrix, error) {
	return transformParallel(d, inputs, d.nJobs, progress, d.log), nil
}
