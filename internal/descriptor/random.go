package descriptor

import (
	"math/rand"
	"sync"

	"molvec/internal/domain"
	"molvec/internal/port"
)

// RandomDesc draws a fresh vector of independent normal samples per row.
// It has no chemistry dependency and always succeeds; it exists as a
// baseline/control descriptor and still runs through the parallel driver.
type RandomDesc struct {
	mu       float64
	sigma    float64
	vectSize int
	nJobs    int

	rngMu sync.Mutex
	rng   *rand.Rand
}

func NewRandomDesc(mu, sigma float64, vectSize, nJobs int, seed int64) *RandomDesc {
	if nJobs < 1 {
		nJobs = 1
	}
	return &RandomDesc{
		mu:       mu,
		sigma:    sigma,
		vectSize: vectSize,
		nJobs:    nJobs,
		rng:      rand.New(rand.NewSource(seed)),
	}
}

func (d *RandomDesc) RowSize() int {
	return d.vectSize
}

func (d *RandomDesc) MinRowSize() int {
	return d.vectSize
}

func (d *RandomDesc) TransformRow(string) ([]float64, bool) {
	vec := make([]float64, d.vectSize)
	d.rngMu.Lock()
	for i := range vec {
		vec[i] = d.rng.NormFloat64()*d.sigma + d.mu
	}
	d.rngMu.Unlock()
	return vec, true
}

func (d *RandomDesc) Transform(inputs []string, progress port.ProgressFunc) (*domain.Matrix, error) {
	return transformParallel(d, inputs, d.nJobs, progress, nil), nil
}
