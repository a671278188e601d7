package features

import (
	"math"
	"testing"

	"molvec/internal/domain"
)

func TestSOAPNumFeatures(t *testing.T) {
	// pairs * radial pairs * (lmax+1)
	s := NewSOAP(6.0, 2, 1, []string{"H", "C", "O"}, "inner")
	if got := s.NumFeatures(); got != 6*3*2 {
		t.Errorf("expected 36 features, got %d", got)
	}

	s = NewSOAP(6.0, 8, 6, []string{"H", "C", "O", "N", "F"}, "inner")
	if got := s.NumFeatures(); got != 15*36*7 {
		t.Errorf("expected %d features, got %d", 15*36*7, got)
	}
}

func TestSOAPAveragedShape(t *testing.T) {
	s := NewSOAP(6.0, 2, 1, []string{"H"}, "inner")
	out, err := s.Create(h2Geometry())
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != s.NumFeatures() {
		t.Fatalf("expected %d values, got %d", s.NumFeatures(), len(out))
	}
	nonZero := false
	for _, v := range out {
		if v != 0 {
			nonZero = true
			break
		}
	}
	if !nonZero {
		t.Error("expected non-zero spectrum for bonded pair")
	}
}

func TestSOAPOffConcatenatesCenters(t *testing.T) {
	s := NewSOAP(6.0, 2, 1, []string{"H"}, "off")
	out, err := s.Create(h2Geometry())
	if err != nil {
		t.Fatal(err)
	}
	per := s.NumFeatures()
	if len(out) != 2*per {
		t.Fatalf("expected %d values for 2 centers, got %d", 2*per, len(out))
	}
	// both H environments are identical
	for i := 0; i < per; i++ {
		if math.Abs(out[i]-out[per+i]) > 1e-12 {
			t.Errorf("feature %d differs between equivalent centers: %g vs %g", i, out[i], out[per+i])
		}
	}
}

func TestSOAPAverageIsMeanOfCenters(t *testing.T) {
	geom := &domain.Geometry{Atoms: []domain.Atom{
		{Symbol: "O", X: 0, Y: 0, Z: 0},
		{Symbol: "H", X: 0, Y: 0, Z: 0.96},
		{Symbol: "H", X: 0.93, Y: 0, Z: -0.24},
	}}

	off := NewSOAP(6.0, 2, 1, []string{"H", "O"}, "off")
	avg := NewSOAP(6.0, 2, 1, []string{"H", "O"}, "inner")

	perCenter, err := off.Create(geom)
	if err != nil {
		t.Fatal(err)
	}
	mean, err := avg.Create(geom)
	if err != nil {
		t.Fatal(err)
	}

	per := avg.NumFeatures()
	for k := 0; k < per; k++ {
		want := (perCenter[k] + perCenter[per+k] + perCenter[2*per+k]) / 3
		if math.Abs(mean[k]-want) > 1e-12 {
			t.Errorf("feature %d: expected mean %g, got %g", k, want, mean[k])
		}
	}
}

func TestSOAPCutoffExcludesDistantNeighbors(t *testing.T) {
	s := NewSOAP(2.0, 2, 1, []string{"H"}, "inner")
	far := &domain.Geometry{Atoms: []domain.Atom{
		{Symbol: "H", X: 0, Y: 0, Z: 0},
		{Symbol: "H", X: 0, Y: 0, Z: 10},
	}}
	out, err := s.Create(far)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range out {
		if v != 0 {
			t.Fatalf("feature %d: expected zero spectrum beyond cutoff, got %g", i, v)
		}
	}
}

func TestSOAPUnknownSpecies(t *testing.T) {
	s := NewSOAP(6.0, 2, 1, []string{"H", "C"}, "inner")
	geom := &domain.Geometry{Atoms: []domain.Atom{{Symbol: "O"}}}
	if _, err := s.Create(geom); err == nil {
		t.Error("expected error for species outside the configured list")
	}
}

func TestSOAPEmptyGeometry(t *testing.T) {
	s := NewSOAP(6.0, 2, 1, nil, "inner")
	if _, err := s.Create(&domain.Geometry{}); err == nil {
		t.Error("expected error for empty geometry")
	}
}

func TestLegendreRecurrence(t *testing.T) {
	x := 0.4
	if got := legendre(0, x); got != 1 {
		t.Errorf("P0: expected 1, got %g", got)
	}
	if got := legendre(1, x); got != x {
		t.Errorf("P1: expected %g, got %g", x, got)
	}
	want := 0.5 * (3*x*x - 1)
	if got := legendre(2, x); math.Abs(got-want) > 1e-12 {
		t.Errorf("P2: expected %g, got %g", want, got)
	}
	want = 0.5 * (5*x*x*x - 3*x)
	if got := legendre(3, x); math.Abs(got-want) > 1e-12 {
		t.Errorf("P3: expected %g, got %g", want, got)
	}
}
