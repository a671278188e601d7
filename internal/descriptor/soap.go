package descriptor

import (
	"molvec/internal/adapter/features"
	"molvec/internal/domain"
	"molvec/internal/port"
)

// SOAPDesc encodes molecules with the SOAP power spectrum. With averaging
// enabled every molecule yields one spectrum; with averaging off each atom
// contributes its own block and the row is sized for nAtomsMax atoms,
// left-packed and zero-padded. Atoms beyond nAtomsMax are silently
// truncated and the row still counts as a success.
type SOAPDesc struct {
	*Base
	builder   *features.SOAP
	average   string
	nAtomsMax int
}

func NewSOAPDesc(base *Base, rcut float64, nmax, lmax int, species []string, average string, nAtomsMax int) *SOAPDesc {
	return &SOAPDesc{
		Base:      base,
		builder:   features.NewSOAP(rcut, nmax, lmax, species, average),
		average:   average,
		nAtomsMax: nAtomsMax,
	}
}

func (d *SOAPDesc) RowSize() int {
	if d.average == "off" {
		return d.builder.NumFeatures() * d.nAtomsMax
	}
	return d.builder.NumFeatures()
}

func (d *SOAPDesc) MinRowSize() int {
	return d.RowSize()
}

func (d *SOAPDesc) TransformRow(smiles string) ([]float64, bool) {
	geom, xyz, ok := d.ComputeGeometry(smiles)
	if !ok {
		return make([]float64, d.RowSize()), false
	}
	vec, ok := d.cachedFeatures(d.builder, geom, xyz, smiles)
	if !ok {
		return make([]float64, d.RowSize()), false
	}
	// copy both left-packs short vectors and truncates overlong ones
	full := make([]float64, d.RowSize())
	copy(full, vec)
	return full, true
}

func (d *SOAPDesc) Transform(inputs []string, progress port.ProgressFunc) (*domain.Matrix, error) {
	return transformParallel(d, inputs, d.nJobs, progress, d.log), nil
}
