package features

import (
	"fmt"
	"math"
	"sort"

	"molvec/internal/domain"
)

// Coulomb builds the flattened Coulomb matrix of a geometry, padded to a
// fixed maximum atom count and with rows and columns sorted by descending
// row norm so the encoding is invariant to atom ordering.
type Coulomb struct {
	nAtomsMax int
}

func NewCoulomb(nAtomsMax int) *Coulomb {
	return &Coulomb{nAtomsMax: nAtomsMax}
}

func (c *Coulomb) Name() string {
	return fmt.Sprintf("coulomb/n_atoms_max=%d", c.nAtomsMax)
}

func (c *Coulomb) NumFeatures() int {
	return c.nAtomsMax * c.nAtomsMax
}

func (c *Coulomb) Create(geom *domain.Geometry) ([]float64, error) {
	n := geom.NumAtoms()
	if n > c.nAtomsMax {
		return nil, fmt.Errorf("geometry has %d atoms, builder allows at most %d", n, c.nAtomsMax)
	}

	z := make([]float64, n)
	for i, a := range geom.Atoms {
		zi, err := AtomicNumber(a.Symbol)
		if err != nil {
			return nil, err
		}
		z[i] = float64(zi)
	}

	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			switch {
			case i == j:
				m[i][j] = 0.5 * math.Pow(z[i], 2.4)
			default:
				m[i][j] = z[i] * z[j] / geom.Distance(i, j)
			}
		}
	}

	// sort by descending row norm, ties broken by original index
	order := make([]int, n)
	norms := make([]float64, n)
	for i := range order {
		order[i] = i
		for j := 0; j < n; j++ {
			norms[i] += m[i][j] * m[i][j]
		}
	}
	sort.SliceStable(order, func(a, b int) bool {
		return norms[order[a]] > norms[order[b]]
	})

	out := make([]float64, c.NumFeatures())
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			out[i*c.nAtomsMax+j] = m[order[i]][order[j]]
		}
	}
	return out, nil
}
