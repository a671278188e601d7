package geometry

import (
	"fmt"
	"math"

	"molvec/internal/adapter/smiles"
	"molvec/internal/domain"
)

// MockGenerator builds deterministic pseudo-geometries straight from the
// molecular graph, without any force field. Heavy atoms are laid out on a
// helix with roughly bond-length spacing and implicit hydrogens are
// attached around their parent. Useful in tests and wherever a real
// optimizer is unavailable; the coordinates carry no physical meaning
// beyond being reproducible.
type MockGenerator struct{}

func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

func (g *MockGenerator) Name() string {
	return "mock/helix"
}

func (g *MockGenerator) Generate(smilesStr string) (string, bool, error) {
	mol, err := smiles.Parse(smilesStr)
	if err != nil {
		return "", false, fmt.Errorf("failed to parse SMILES %q: %w", smilesStr, err)
	}

	const spacing = 1.5
	geom := &domain.Geometry{}
	for i, a := range mol.Atoms {
		t := float64(i)
		heavy := domain.Atom{
			Symbol: a.Symbol,
			X:      spacing * math.Cos(t),
			Y:      spacing * math.Sin(t),
			Z:      0.6 * t,
		}
		geom.Atoms = append(geom.Atoms, heavy)

		nH := a.HCount
		if nH < 0 {
			nH = mol.ImplicitHydrogens(i)
		}
		for h := 0; h < nH; h++ {
			angle := 2 * math.Pi * float64(h+1) / float64(nH+1)
			geom.Atoms = append(geom.Atoms, domain.Atom{
				Symbol: "H",
				X:      heavy.X + math.Cos(angle),
				Y:      heavy.Y + math.Sin(angle),
				Z:      heavy.Z + 0.3,
			})
		}
	}
	return FormatXYZ(geom, smilesStr), true, nil
}
