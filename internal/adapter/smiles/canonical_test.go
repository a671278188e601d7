package smiles

import (
	"sort"
	"testing"
)

func TestCanonicalizeEquivalentNotations(t *testing.T) {
	tests := []struct {
		name   string
		inputs []string
	}{
		{"atom order", []string{"CCO", "OCC"}},
		{"methylamine", []string{"CN", "NC"}},
		{"branch order", []string{"CC(C)O", "CC(O)C"}},
		{"branch vs chain", []string{"C(F)N", "NCF", "FCN"}},
		{"ring numbering", []string{"C1CCCCC1", "C2CCCCC2"}},
		{"ring start", []string{"OC1CCCC1", "C1(O)CCCC1"}},
	}

	c := NewCanonicalizer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, err := c.Canonicalize(tt.inputs[0])
			if err != nil {
				t.Fatal(err)
			}
			for _, input := range tt.inputs[1:] {
				got, err := c.Canonicalize(input)
				if err != nil {
					t.Fatal(err)
				}
				if got != first {
					t.Errorf("%q canonicalized to %q, want %q (from %q)",
						input, got, first, tt.inputs[0])
				}
			}
		})
	}
}

func TestCanonicalizeDistinguishesMolecules(t *testing.T) {
	c := NewCanonicalizer()
	pairs := [][2]string{
		{"CCO", "CO"},
		{"CN", "CO"},
		{"C=C", "CC"},
		{"c1ccccc1", "C1CCCCC1"},
	}
	for _, p := range pairs {
		a, err := c.Canonicalize(p[0])
		if err != nil {
			t.Fatal(err)
		}
		b, err := c.Canonicalize(p[1])
		if err != nil {
			t.Fatal(err)
		}
		if a == b {
			t.Errorf("%q and %q should not share canonical form %q", p[0], p[1], a)
		}
	}
}

func TestCanonicalizeIdempotent(t *testing.T) {
	c := NewCanonicalizer()
	inputs := []string{"C", "CCO", "c1ccccc1", "CC(=O)O", "C1CCCCC1", "[NH4+]", "[CH2]", "CC.O"}
	for _, input := range inputs {
		once, err := c.Canonicalize(input)
		if err != nil {
			t.Fatalf("%q: %v", input, err)
		}
		twice, err := c.Canonicalize(once)
		if err != nil {
			t.Fatalf("%q: re-parse of canonical form %q failed: %v", input, once, err)
		}
		if once != twice {
			t.Errorf("%q: not idempotent, %q != %q", input, once, twice)
		}
	}
}

func TestCanonicalizePreservesAttributes(t *testing.T) {
	c := NewCanonicalizer()
	out, err := c.Canonicalize("[NH4+]")
	if err != nil {
		t.Fatal(err)
	}
	if out != "[NH4+]" {
		t.Errorf("expected [NH4+], got %q", out)
	}

	out, err = c.Canonicalize("[13CH4]")
	if err != nil {
		t.Fatal(err)
	}
	if out != "[13CH4]" {
		t.Errorf("expected [13CH4], got %q", out)
	}
}

// Aromaticity is notation-level, not perceived; see the package comment.
func TestCanonicalizeKeepsKekuleAndAromaticDistinct(t *testing.T) {
	c := NewCanonicalizer()
	kekule, err := c.Canonicalize("C1=CC=CC=C1")
	if err != nil {
		t.Fatal(err)
	}
	aromatic, err := c.Canonicalize("c1ccccc1")
	if err != nil {
		t.Fatal(err)
	}
	if kekule == aromatic {
		t.Errorf("expected notation conventions to stay distinct, both gave %q", kekule)
	}
}

func TestCanonicalizeExplicitHydrogenCountPreserved(t *testing.T) {
	c := NewCanonicalizer()

	carbene, err := c.Canonicalize("[CH2]")
	if err != nil {
		t.Fatal(err)
	}
	methane, err := c.Canonicalize("C")
	if err != nil {
		t.Fatal(err)
	}
	if carbene == methane {
		t.Fatalf("[CH2] and C must not share canonical form %q", carbene)
	}
	if carbene != "[CH2]" {
		t.Errorf("expected [CH2] to keep its explicit hydrogen count, got %q", carbene)
	}

	// a bare carbon bracket atom is not methane either
	bare, err := c.Canonicalize("[C]")
	if err != nil {
		t.Fatal(err)
	}
	if bare != "[C]" || bare == methane {
		t.Errorf("expected [C] to stay bracketed, got %q", bare)
	}
}

func TestCanonicalizeComponentsSorted(t *testing.T) {
	c := NewCanonicalizer()
	a, err := c.Canonicalize("CC.O")
	if err != nil {
		t.Fatal(err)
	}
	b, err := c.Canonicalize("O.CC")
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Errorf("component order changed canonical form: %q vs %q", a, b)
	}
}

func TestCanonicalizeParseError(t *testing.T) {
	c := NewCanonicalizer()
	if _, err := c.Canonicalize("not-a-molecule"); err == nil {
		t.Error("expected error for invalid input")
	}
}

func TestExtractShingles(t *testing.T) {
	e := NewExtractor()

	got, err := e.Extract("C", 1, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != "C" {
		t.Errorf("expected [C], got %v", got)
	}

	got, err = e.Extract("CCO", 2, false)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"CC", "CCO", "CO"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("shingle %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestExtractShinglesAsList(t *testing.T) {
	e := NewExtractor()
	got, err := e.Extract("CN", 1, true)
	if err != nil {
		t.Fatal(err)
	}
	// one fragment per (atom, radius) pair, duplicates kept
	if len(got) != 2 || got[0] != "CN" || got[1] != "CN" {
		t.Errorf("expected [CN CN], got %v", got)
	}

	deduped, err := e.Extract("CN", 1, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(deduped) != 1 {
		t.Errorf("expected duplicates removed, got %v", deduped)
	}
}

func TestExtractShinglesEquivalentInputsSameSet(t *testing.T) {
	e := NewExtractor()
	a, err := e.Extract("CCO", 2, false)
	if err != nil {
		t.Fatal(err)
	}
	b, err := e.Extract("OCC", 2, false)
	if err != nil {
		t.Fatal(err)
	}
	sort.Strings(a)
	sort.Strings(b)
	if len(a) != len(b) {
		t.Fatalf("different shingle sets: %v vs %v", a, b)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("different shingle sets: %v vs %v", a, b)
			break
		}
	}
}

func TestExtractInvalidRadius(t *testing.T) {
	e := NewExtractor()
	if _, err := e.Extract("C", 0, false); err == nil {
		t.Error("expected error for radius 0")
	}
}
