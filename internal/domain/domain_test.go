package domain

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestNewMatrixZeroFilled(t *testing.T) {
	m := NewMatrix(3, 4)
	if m.NumRows() != 3 {
		t.Fatalf("expected 3 rows, got %d", m.NumRows())
	}
	for i, row := range m.Rows {
		if len(row) != 4 {
			t.Fatalf("row %d: expected 4 columns, got %d", i, len(row))
		}
		for j, v := range row {
			if v != 0 {
				t.Errorf("row %d col %d: expected 0, got %g", i, j, v)
			}
		}
		if m.Successes[i] {
			t.Errorf("row %d: expected failure placeholder", i)
		}
	}
	if m.NumSuccesses() != 0 {
		t.Errorf("expected 0 successes, got %d", m.NumSuccesses())
	}
}

func TestGeometryDistance(t *testing.T) {
	g := &Geometry{Atoms: []Atom{
		{Symbol: "C", X: 0, Y: 0, Z: 0},
		{Symbol: "O", X: 3, Y: 4, Z: 0},
	}}
	if d := g.Distance(0, 1); math.Abs(d-5) > 1e-12 {
		t.Errorf("expected distance 5, got %g", d)
	}
}

func TestVocabularyAssignsInOrder(t *testing.T) {
	v := NewVocabulary(10)
	for i, shingle := range []string{"C", "CN", "CO"} {
		id, err := v.ID(shingle)
		if err != nil {
			t.Fatal(err)
		}
		if id != i {
			t.Errorf("%q: expected index %d, got %d", shingle, i, id)
		}
	}

	// repeated lookups keep the assigned index
	id, err := v.ID("CN")
	if err != nil {
		t.Fatal(err)
	}
	if id != 1 {
		t.Errorf("expected stable index 1, got %d", id)
	}
	if v.Size() != 3 {
		t.Errorf("expected size 3, got %d", v.Size())
	}
}

func TestVocabularyCapacity(t *testing.T) {
	v := NewVocabulary(2)
	if _, err := v.ID("a"); err != nil {
		t.Fatal(err)
	}
	if _, err := v.ID("b"); err != nil {
		t.Fatal(err)
	}
	if _, err := v.ID("c"); !errors.Is(err, ErrVocabularyFull) {
		t.Errorf("expected ErrVocabularyFull, got %v", err)
	}
	// known shingles still resolve at capacity
	if _, err := v.ID("a"); err != nil {
		t.Errorf("known shingle should resolve: %v", err)
	}
}

func TestSeedVocabularyContinuesAfterHighestIndex(t *testing.T) {
	v, err := SeedVocabulary(map[string]int{"CN": 5, "C": 2}, 10)
	if err != nil {
		t.Fatal(err)
	}
	if v.Size() != 6 {
		t.Errorf("expected size 6 (one past highest index), got %d", v.Size())
	}
	id, err := v.ID("CO")
	if err != nil {
		t.Fatal(err)
	}
	if id != 6 {
		t.Errorf("expected new shingle at index 6, got %d", id)
	}
	if id, _ := v.ID("CN"); id != 5 {
		t.Errorf("seeded index changed: got %d", id)
	}
}

func TestVocabularySaveLoadRoundtrip(t *testing.T) {
	v := NewVocabulary(10)
	for _, s := range []string{"C", "CN", "CO"} {
		if _, err := v.ID(s); err != nil {
			t.Fatal(err)
		}
	}

	path := filepath.Join(t.TempDir(), "vocab.json")
	if err := v.Save(path); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadVocabulary(path, 10)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Size() != v.Size() {
		t.Fatalf("expected size %d, got %d", v.Size(), loaded.Size())
	}
	for shingle, id := range v.Mapping() {
		got, err := loaded.ID(shingle)
		if err != nil {
			t.Fatal(err)
		}
		if got != id {
			t.Errorf("%q: expected index %d after roundtrip, got %d", shingle, id, got)
		}
	}
}

func TestSeedVocabularyRejectsOutOfRangeIndex(t *testing.T) {
	if _, err := SeedVocabulary(map[string]int{"C": 50}, 10); !errors.Is(err, ErrVocabularyFull) {
		t.Errorf("expected ErrVocabularyFull for index beyond vector size, got %v", err)
	}
	if _, err := SeedVocabulary(map[string]int{"C": 10}, 10); !errors.Is(err, ErrVocabularyFull) {
		t.Errorf("expected ErrVocabularyFull for index equal to vector size, got %v", err)
	}
	if _, err := SeedVocabulary(map[string]int{"C": -1}, 10); !errors.Is(err, ErrVocabularyFull) {
		t.Errorf("expected ErrVocabularyFull for negative index, got %v", err)
	}
	// the highest valid index is fine
	if _, err := SeedVocabulary(map[string]int{"C": 9}, 10); err != nil {
		t.Errorf("index 9 must fit vector size 10: %v", err)
	}
}

func TestLoadVocabularyOversizedSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocab.json")
	if err := os.WriteFile(path, []byte(`{"C": 50}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadVocabulary(path, 10); !errors.Is(err, ErrVocabularyFull) {
		t.Errorf("expected ErrVocabularyFull, got %v", err)
	}
}

func TestLoadVocabularyMissingFile(t *testing.T) {
	if _, err := LoadVocabulary(filepath.Join(t.TempDir(), "missing.json"), 10); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestVocabularyMappingIsACopy(t *testing.T) {
	v := NewVocabulary(10)
	if _, err := v.ID("C"); err != nil {
		t.Fatal(err)
	}
	m := v.Mapping()
	m["C"] = 99
	if id, _ := v.ID("C"); id != 0 {
		t.Errorf("mutating the returned mapping changed the vocabulary: %d", id)
	}
}
