package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrVocabularyFull reports that vocabulary growth exceeded the
// configured vector size. This indicates misconfiguration and is fatal
// for the run rather than a recoverable row failure.
var ErrVocabularyFull = errors.New("vocabulary capacity exceeded")

// Vocabulary maps shingle identifiers to column indices. Indices are
// assigned in order of first encounter and are never reassigned. The
// mapping belongs to a single descriptor instance and must not be shared
// across parallel workers.
type Vocabulary struct {
	ids    map[string]int
	nextID int
	limit  int
}

// NewVocabulary creates an empty vocabulary bounded by limit indices.
func NewVocabulary(limit int) *Vocabulary {
	return &Vocabulary{
		ids:   make(map[string]int),
		limit: limit,
	}
}

// SeedVocabulary creates a vocabulary pre-populated with an external
// mapping. The next free index is one past the highest seeded index, so
// existing columns stay stable across runs. Seeded indices must fit the
// limit; an oversized seed is a configuration error, not something to
// discover mid-batch.
func SeedVocabulary(seed map[string]int, limit int) (*Vocabulary, error) {
	v := NewVocabulary(limit)
	for shingle, id := range seed {
		if id < 0 || id >= limit {
			return nil, fmt.Errorf("%w: seeded shingle %q has index %d for vector size %d",
				ErrVocabularyFull, shingle, id, limit)
		}
		v.ids[shingle] = id
		if id >= v.nextID {
			v.nextID = id + 1
		}
	}
	return v, nil
}

// LoadVocabulary reads a JSON shingle→index mapping from disk.
func LoadVocabulary(path string, limit int) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read vocabulary file: %w", err)
	}
	var seed map[string]int
	if err := json.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse vocabulary file: %w", err)
	}
	return SeedVocabulary(seed, limit)
}

// ID returns the column index for the given shingle, assigning the next
// free index if the shingle has not been seen before. Returns an error
// when the configured capacity is exhausted; this is a misconfiguration,
// not a row failure.
func (v *Vocabulary) ID(shingle string) (int, error) {
	if id, ok := v.ids[shingle]; ok {
		return id, nil
	}
	if v.nextID >= v.limit {
		return 0, fmt.Errorf("%w: %d shingles for vector size %d", ErrVocabularyFull, v.nextID+1, v.limit)
	}
	id := v.nextID
	v.ids[shingle] = id
	v.nextID++
	return id, nil
}

// Size returns the number of assigned indices.
func (v *Vocabulary) Size() int {
	return v.nextID
}

// Mapping returns a copy of the shingle→index mapping.
func (v *Vocabulary) Mapping() map[string]int {
	out := make(map[string]int, len(v.ids))
	for shingle, id := range v.ids {
		out[shingle] = id
	}
	return out
}

// Save writes the mapping to disk as JSON so that a later run can seed
// from it and keep columns comparable.
func (v *Vocabulary) Save(path string) error {
	data, err := json.MarshalIndent(v.ids, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
