package features

import (
	"fmt"
	"math"
	"strings"

	"molvec/internal/domain"
)

// SOAP builds a partial power spectrum of the local atomic environments:
// Gaussian radial basis functions crossed with Legendre polynomials of
// the angles between neighbor pairs, accumulated per species pair within
// a cutoff radius.
//
// NumFeatures is the per-center feature count; callers configure how
// centers are combined ("inner"/"outer" averaging yields one block,
// "off" concatenates one block per atom).
type SOAP struct {
	rcut    float64
	nmax    int
	lmax    int
	species []string
	average string

	index map[string]int
}

func NewSOAP(rcut float64, nmax, lmax int, species []string, average string) *SOAP {
	if len(species) == 0 {
		species = DefaultSpecies
	}
	return &SOAP{
		rcut:    rcut,
		nmax:    nmax,
		lmax:    lmax,
		species: species,
		average: average,
		index:   speciesIndex(species),
	}
}

func (s *SOAP) Name() string {
	return fmt.Sprintf("soap/rcut=%g/nmax=%d/lmax=%d/species=%s/average=%s",
		s.rcut, s.nmax, s.lmax, strings.Join(s.species, ","), s.average)
}

// NumFeatures returns the feature count of a single center.
func (s *SOAP) NumFeatures() int {
	nPairs := len(s.species) * (len(s.species) + 1) / 2
	nRadial := s.nmax * (s.nmax + 1) / 2
	return nPairs * nRadial * (s.lmax + 1)
}

func (s *SOAP) Create(geom *domain.Geometry) ([]float64, error) {
	n := geom.NumAtoms()
	if n == 0 {
		return nil, fmt.Errorf("empty geometry")
	}
	for _, a := range geom.Atoms {
		if _, ok := s.index[a.Symbol]; !ok {
			return nil, fmt.Errorf("species %q is not in the configured species list", a.Symbol)
		}
	}

	perCenter := s.NumFeatures()
	if s.average == "off" {
		out := make([]float64, 0, n*perCenter)
		for i := 0; i < n; i++ {
			out = append(out, s.centerSpectrum(geom, i)...)
		}
		return out, nil
	}

	out := make([]float64, perCenter)
	for i := 0; i < n; i++ {
		for k, v := range s.centerSpectrum(geom, i) {
			out[k] += v
		}
	}
	for k := range out {
		out[k] /= float64(n)
	}
	return out, nil
}

type soapNeighbor struct {
	species    int
	r          float64
	ux, uy, uz float64
}

func (s *SOAP) centerSpectrum(geom *domain.Geometry, center int) []float64 {
	var nb []soapNeighbor
	ci := geom.Atoms[center]
	for j, a := range geom.Atoms {
		if j == center {
			continue
		}
		r := geom.Distance(center, j)
		if r <= 0 || r > s.rcut {
			continue
		}
		nb = append(nb, soapNeighbor{
			species: s.index[a.Symbol],
			r:       r,
			ux:      (a.X - ci.X) / r,
			uy:      (a.Y - ci.Y) / r,
			uz:      (a.Z - ci.Z) / r,
		})
	}

	nSpecies := len(s.species)
	nRadial := s.nmax * (s.nmax + 1) / 2
	out := make([]float64, s.NumFeatures())

	sigma := s.rcut / float64(s.nmax+1)
	for _, a := range nb {
		for _, b := range nb {
			cosTheta := a.ux*b.ux + a.uy*b.uy + a.uz*b.uz
			pi := pairIndex(a.species, b.species, nSpecies)
			radial := 0
			for n1 := 0; n1 < s.nmax; n1++ {
				g1 := s.radialBasis(n1, a.r, sigma)
				for n2 := n1; n2 < s.nmax; n2++ {
					g2 := s.radialBasis(n2, b.r, sigma)
					base := (pi*nRadial + radial) * (s.lmax + 1)
					for l := 0; l <= s.lmax; l++ {
						out[base+l] += g1 * g2 * legendre(l, cosTheta)
					}
					radial++
				}
			}
		}
	}
	return out
}

// radialBasis is a Gaussian centered at evenly spaced radii within rcut.
func (s *SOAP) radialBasis(n int, r, sigma float64) float64 {
	center := s.rcut * float64(n+1) / float64(s.nmax+1)
	d := r - center
	return math.Exp(-d * d / (2 * sigma * sigma))
}

// legendre evaluates the Legendre polynomial P_l(x) by recurrence.
func legendre(l int, x float64) float64 {
	if l == 0 {
		return 1
	}
	if l == 1 {
		return x
	}
	p0, p1 := 1.0, x
	for k := 2; k <= l; k++ {
		p0, p1 = p1, (float64(2*k-1)*x*p1-float64(k-1)*p0)/float64(k)
	}
	return p1
}
