package cli

import (
	"testing"

	"molvec/internal/adapter/cache"
	"molvec/internal/adapter/smiles"
	"molvec/internal/descriptor"
)

func TestVocabTargetRejectsNonShingles(t *testing.T) {
	random := descriptor.NewRandomDesc(0, 1, 8, 1, 1)
	if _, err := vocabTarget(random, "vocab.json"); err == nil {
		t.Error("expected error for --save-vocab with a non-shingles descriptor")
	}

	// no flag, no target
	target, err := vocabTarget(random, "")
	if err != nil || target != nil {
		t.Errorf("expected nil target without the flag, got %v err=%v", target, err)
	}
}

func TestVocabTargetAcceptsShingles(t *testing.T) {
	sd := descriptor.NewShinglesDesc(cache.NewMemoryCache(), smiles.NewExtractor(), nil, 1, 10, false, nil)
	target, err := vocabTarget(sd, "vocab.json")
	if err != nil {
		t.Fatal(err)
	}
	if target != sd {
		t.Error("expected the shingles descriptor back")
	}
}
