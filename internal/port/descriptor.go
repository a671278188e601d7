package port

import "molvec/internal/domain"

// ProgressFunc reports best-effort batch progress. It may be invoked
// concurrently from worker goroutines and has no effect on the result.
type ProgressFunc func(done, total int)

// Descriptor computes fixed-size feature vectors for molecules.
type Descriptor interface {
	// RowSize returns the output vector length for this configured
	// variant. It is a pure function of configuration and never depends
	// on input data.
	RowSize() int

	// MinRowSize returns a lower bound on how many columns are
	// guaranteed meaningful. It can be smaller than RowSize for
	// growing-vocabulary variants.
	MinRowSize() int

	// TransformRow computes the feature vector for one SMILES string.
	// It never panics; every failure is converted to a zero-filled
	// vector of length RowSize and success=false.
	TransformRow(smiles string) ([]float64, bool)

	// Transform computes the matrix for an ordered list of SMILES.
	// Output row i always corresponds to input i. A failed row never
	// affects any other row. Only a capacity misconfiguration of the
	// sequential shingles variant yields a non-nil error.
	Transform(smiles []string, progress ProgressFunc) (*domain.Matrix, error)
}
