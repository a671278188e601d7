package descriptor

import (
	"encoding/json"
	"errors"
	"strconv"

	"go.uber.org/zap"

	"molvec/internal/adapter/cache"
	"molvec/internal/domain"
	"molvec/internal/port"
)

// ShinglesDesc represents molecules as count (or boolean) vectors over a
// vocabulary of circular sub-structures discovered incrementally.
//
// Vocabulary index assignment depends on the order in which distinct
// shingles are first observed, so this variant processes batches strictly
// sequentially instead of using the parallel driver. The vocabulary can
// be seeded from an external mapping to keep columns stable across runs.
type ShinglesDesc struct {
	store     port.Store
	extractor port.ShingleExtractor
	vocab     *domain.Vocabulary
	lvl       int
	vectSize  int
	count     bool
	log       *zap.Logger
}

func NewShinglesDesc(store port.Store, extractor port.ShingleExtractor, vocab *domain.Vocabulary, lvl, vectSize int, count bool, log *zap.Logger) *ShinglesDesc {
	if log == nil {
		log = zap.NewNop()
	}
	if vocab == nil {
		vocab = domain.NewVocabulary(vectSize)
	}
	return &ShinglesDesc{
		store:     store,
		extractor: extractor,
		vocab:     vocab,
		lvl:       lvl,
		vectSize:  vectSize,
		count:     count,
		log:       log,
	}
}

// Vocabulary exposes the instance's shingle→index mapping, e.g. for
// persisting it after a run.
func (d *ShinglesDesc) Vocabulary() *domain.Vocabulary {
	return d.vocab
}

func (d *ShinglesDesc) RowSize() int {
	return d.vectSize
}

// MinRowSize is the number of columns assigned so far.
func (d *ShinglesDesc) MinRowSize() int {
	return d.vocab.Size()
}

func (d *ShinglesDesc) TransformRow(smiles string) ([]float64, bool) {
	vec, err := d.transformRow(smiles)
	if err != nil {
		d.log.Warn("shingle row failed", zap.String("smiles", smiles), zap.Error(err))
		return make([]float64, d.vectSize), false
	}
	return vec, true
}

// Transform processes the batch in input order on a single goroutine.
// Only a vocabulary capacity overflow aborts the run; any other row
// failure is isolated as usual.
func (d *ShinglesDesc) Transform(inputs []string, progress port.ProgressFunc) (*domain.Matrix, error) {
	m := domain.NewMatrix(len(inputs), d.vectSize)
	for i, smiles := range inputs {
		vec, err := d.transformRow(smiles)
		switch {
		case errors.Is(err, domain.ErrVocabularyFull):
			return nil, err
		case err != nil:
			d.log.Warn("shingle row failed", zap.String("smiles", smiles), zap.Error(err))
		default:
			m.Rows[i] = vec
			m.Successes[i] = true
		}
		if progress != nil {
			progress(i+1, len(inputs))
		}
	}
	return m, nil
}

func (d *ShinglesDesc) transformRow(smiles string) ([]float64, error) {
	shingles, err := d.extractShingles(smiles)
	if err != nil {
		return nil, err
	}
	vec := make([]float64, d.vectSize)
	for _, shingle := range shingles {
		id, err := d.vocab.ID(shingle)
		if err != nil {
			return nil, err
		}
		if d.count {
			vec[id]++
		} else {
			vec[id] = 1
		}
	}
	return vec, nil
}

// extractShingles memoizes the extraction, keyed by the raw SMILES plus
// the radius and counting mode.
func (d *ShinglesDesc) extractShingles(smiles string) ([]string, error) {
	key := cache.Key(smiles, strconv.Itoa(d.lvl), strconv.FormatBool(d.count))
	if data, ok, err := d.store.Get(port.NamespaceShingles, key); err == nil && ok {
		var shingles []string
		if json.Unmarshal(data, &shingles) == nil {
			return shingles, nil
		}
	}

	shingles, err := d.extractor.Extract(smiles, d.lvl, d.count)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(shingles); err == nil {
		if err := d.store.Put(port.NamespaceShingles, key, data); err != nil {
			d.log.Warn("cache write failed", zap.Error(err))
		}
	}
	return shingles, nil
}
