package descriptor

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"molvec/config"
	"molvec/internal/adapter/geometry"
	"molvec/internal/adapter/smiles"
	"molvec/internal/domain"
	"molvec/internal/port"
)

// New builds the configured descriptor variant. Configuration problems
// (unknown method or kind, unreadable vocabulary file) fail here, before
// any batch work begins.
func New(cfg *config.Config, store port.Store, log *zap.Logger) (port.Descriptor, error) {
	d := cfg.Descriptor

	switch d.Kind {
	case "shingles":
		vocab := domain.NewVocabulary(d.Shingles.VectSize)
		if d.Shingles.VocabFile != "" {
			var err error
			vocab, err = domain.LoadVocabulary(d.Shingles.VocabFile, d.Shingles.VectSize)
			if err != nil {
				return nil, err
			}
		}
		return NewShinglesDesc(store, smiles.NewExtractor(), vocab,
			d.Shingles.Lvl, d.Shingles.VectSize, d.Shingles.Count, log), nil

	case "random":
		return NewRandomDesc(d.Random.Mu, d.Random.Sigma, d.Random.VectSize,
			cfg.NJobs, time.Now().UnixNano()), nil
	}

	gen, err := newGenerator(cfg.Geometry)
	if err != nil {
		return nil, err
	}
	base := NewBase(smiles.NewCanonicalizer(), gen, store, cfg.NJobs, log)

	switch d.Kind {
	case "coulomb":
		return NewCoulombDesc(base, d.Coulomb.NAtomsMax), nil
	case "soap":
		return NewSOAPDesc(base, d.SOAP.RCut, d.SOAP.NMax, d.SOAP.LMax,
			d.SOAP.Species, d.SOAP.Average, d.SOAP.NAtomsMax), nil
	case "mbtr":
		return NewMBTRDesc(base, d.MBTR.Species,
			d.MBTR.AtomicNumbersN, d.MBTR.InverseDistancesN, d.MBTR.CosineAnglesN)
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownDescriptorKind, d.Kind)
	}
}

func newGenerator(cfg config.GeometryConfig) (port.GeometryGenerator, error) {
	switch cfg.Method {
	case "obabel_mmff94":
		return geometry.NewObabelGenerator(cfg.ObabelPath, "MMFF94", cfg.MaxIters), nil
	case "obabel_uff":
		return geometry.NewObabelGenerator(cfg.ObabelPath, "UFF", cfg.MaxIters), nil
	case "mock":
		return geometry.NewMockGenerator(), nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownGeometryMethod, cfg.Method)
	}
}
