package port

import "molvec/internal/domain"

// Canonicalizer converts any valid SMILES into a deterministic canonical
// form. Equivalent SMILES must map to the same string, since geometry
// caching is keyed on it.
type Canonicalizer interface {
	Canonicalize(smiles string) (string, error)
}

// GeometryGenerator computes a 3D geometry for a canonical SMILES and
// returns it as an XYZ block. ok=false without an error means the backend
// ran but did not converge; both outcomes are cacheable.
type GeometryGenerator interface {
	// Name discriminates cache entries across geometry methods and
	// parameter sets. Two generators that can produce different output
	// for the same SMILES must have different names.
	Name() string

	Generate(smiles string) (xyz string, ok bool, err error)
}

// FeatureBuilder turns a geometry into a numeric vector. Builders are
// configured once at construction; NumFeatures is a pure function of that
// configuration.
type FeatureBuilder interface {
	// Name discriminates cache entries across builder kinds and
	// parameter sets.
	Name() string

	NumFeatures() int

	Create(geom *domain.Geometry) ([]float64, error)
}

// ShingleExtractor lists the bounded-radius sub-structural fragments of a
// molecule. With asList=true duplicates are kept so occurrences can be
// counted; otherwise each shingle appears once.
type ShingleExtractor interface {
	Extract(smiles string, lvl int, asList bool) ([]string, error)
}
