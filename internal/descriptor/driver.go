package descriptor

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"molvec/internal/domain"
	"molvec/internal/port"
)

// rowTransformer is the slice of the Descriptor contract the batch driver
// needs.
type rowTransformer interface {
	RowSize() int
	TransformRow(smiles string) ([]float64, bool)
}

// transformParallel dispatches TransformRow for each input across a
// fixed-size worker pool. Results are written back by input index, so
// output order matches input order regardless of completion order, and a
// failing row never affects any other row. Rows that fail keep their
// zero-filled placeholder.
func transformParallel(r rowTransformer, inputs []string, nJobs int, progress port.ProgressFunc, log *zap.Logger) *domain.Matrix {
	if log == nil {
		log = zap.NewNop()
	}
	total := len(inputs)
	rowSize := r.RowSize()
	m := domain.NewMatrix(total, rowSize)
	if total == 0 {
		return m
	}
	if nJobs < 1 {
		nJobs = 1
	}
	if nJobs > total {
		nJobs = total
	}

	indexes := make(chan int)
	var done int64
	var wg sync.WaitGroup
	for w := 0; w < nJobs; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				vec, ok := safeTransformRow(r, inputs[i], log)
				if ok && len(vec) == rowSize {
					m.Rows[i] = vec
					m.Successes[i] = true
				}
				if progress != nil {
					progress(int(atomic.AddInt64(&done, 1)), total)
				}
			}
		}()
	}

	for i := range inputs {
		indexes <- i
	}
	close(indexes)
	wg.Wait()
	return m
}

// safeTransformRow enforces the never-panics contract at the row
// boundary: a panicking row becomes a failed row.
func safeTransformRow(r rowTransformer, smiles string, log *zap.Logger) (vec []float64, ok bool) {
	defer func() {
		if p := recover(); p != nil {
			log.Error("descriptor row panicked",
				zap.String("smiles", smiles), zap.Any("panic", p))
			vec, ok = nil, false
		}
	}()
	return r.TransformRow(smiles)
}
