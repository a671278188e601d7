package features

import (
	"fmt"
	"math"
	"strings"

	"molvec/internal/domain"
)

// MBTR builds the many-body tensor representation: Gaussian-broadened
// distributions of atomic numbers (k1), inverse pairwise distances (k2)
// and cosines of atom triple angles (k3), each accumulated on a fixed
// grid per species combination and exponentially weighted by geometry
// extent for k2/k3.
type MBTR struct {
	species []string
	k1n     int
	k2n     int
	k3n     int

	index map[string]int
	maxZ  float64
}

const (
	mbtrSigma   = 0.1
	mbtrK2Scale = 0.75
	mbtrK3Scale = 0.5
	mbtrK2Min   = 0.25
	mbtrK2Max   = 1.25
)

func NewMBTR(species []string, k1n, k2n, k3n int) (*MBTR, error) {
	if len(species) == 0 {
		species = DefaultSpecies
	}
	maxZ := 0
	for _, s := range species {
		z, err := AtomicNumber(s)
		if err != nil {
			return nil, err
		}
		if z > maxZ {
			maxZ = z
		}
	}
	return &MBTR{
		species: species,
		k1n:     k1n,
		k2n:     k2n,
		k3n:     k3n,
		index:   speciesIndex(species),
		maxZ:    float64(maxZ),
	}, nil
}

func (m *MBTR) Name() string {
	return fmt.Sprintf("mbtr/species=%s/k1=%d/k2=%d/k3=%d/norm=l2_each",
		strings.Join(m.species, ","), m.k1n, m.k2n, m.k3n)
}

func (m *MBTR) NumFeatures() int {
	s := len(m.species)
	return s*m.k1n + s*(s+1)/2*m.k2n + s*s*(s+1)/2*m.k3n
}

func (m *MBTR) Create(geom *domain.Geometry) ([]float64, error) {
	n := geom.NumAtoms()
	if n == 0 {
		return nil, fmt.Errorf("empty geometry")
	}
	spec := make([]int, n)
	for i, a := range geom.Atoms {
		si, ok := m.index[a.Symbol]
		if !ok {
			return nil, fmt.Errorf("species %q is not in the configured species list", a.Symbol)
		}
		spec[i] = si
	}

	s := len(m.species)
	k1Size := s * m.k1n
	k2Size := s * (s + 1) / 2 * m.k2n
	k3Size := s * s * (s + 1) / 2 * m.k3n
	out := make([]float64, k1Size+k2Size+k3Size)
	k1 := out[:k1Size]
	k2 := out[k1Size : k1Size+k2Size]
	k3 := out[k1Size+k2Size:]

	// k1: broadened atomic numbers
	for i := 0; i < n; i++ {
		z, _ := AtomicNumber(geom.Atoms[i].Symbol)
		block := k1[spec[i]*m.k1n : (spec[i]+1)*m.k1n]
		addGaussian(block, 1, m.maxZ, float64(z), mbtrSigma, 1)
	}

	// k2: broadened inverse distances, weighted by exp(-scale*r)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			r := geom.Distance(i, j)
			if r <= 0 {
				continue
			}
			pi := pairIndex(spec[i], spec[j], s)
			block := k2[pi*m.k2n : (pi+1)*m.k2n]
			addGaussian(block, mbtrK2Min, mbtrK2Max, 1/r, mbtrSigma, math.Exp(-mbtrK2Scale*r))
		}
	}

	// k3: broadened cosines of angles at each center j, weighted by the
	// exponential of the triangle perimeter
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			if i == j {
				continue
			}
			for k := i + 1; k < n; k++ {
				if k == j {
					continue
				}
				rij := geom.Distance(i, j)
				rjk := geom.Distance(j, k)
				rik := geom.Distance(i, k)
				if rij <= 0 || rjk <= 0 {
					continue
				}
				cosTheta := (rij*rij + rjk*rjk - rik*rik) / (2 * rij * rjk)
				if cosTheta > 1 {
					cosTheta = 1
				} else if cosTheta < -1 {
					cosTheta = -1
				}
				ti := tripleIndex(spec[j], spec[i], spec[k], s)
				block := k3[ti*m.k3n : (ti+1)*m.k3n]
				weight := math.Exp(-mbtrK3Scale * (rij + rjk + rik))
				addGaussian(block, -1, 1, cosTheta, mbtrSigma, weight)
			}
		}
	}

	// l2_each: each k-term block normalized independently
	normalizeL2(k1)
	normalizeL2(k2)
	normalizeL2(k3)
	return out, nil
}

// tripleIndex enumerates (center, unordered outer pair) species triples.
func tripleIndex(center, a, b, n int) int {
	return center*(n*(n+1)/2) + pairIndex(a, b, n)
}

// addGaussian accumulates a weighted Gaussian centered at x onto an
// evenly spaced grid over [min, max]. Grids need at least two points for
// a finite step.
func addGaussian(block []float64, min, max, x, sigma, weight float64) {
	n := len(block)
	if n < 2 {
		return
	}
	step := (max - min) / float64(n-1)
	for g := 0; g < n; g++ {
		d := min + step*float64(g) - x
		block[g] += weight * math.Exp(-d*d/(2*sigma*sigma))
	}
}

func normalizeL2(block []float64) {
	sum := 0.0
	for _, v := range block {
		sum += v * v
	}
	if sum == 0 {
		return
	}
	norm := math.Sqrt(sum)
	for i := range block {
		block[i] /= norm
	}
}
