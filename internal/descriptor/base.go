// Package descriptor implements the molecule descriptor variants and the
// batch driver that fans per-molecule computation across workers. All
// expensive steps (geometry, feature vectors, shingle extraction) are
// memoized through a shared content-addressed cache.
package descriptor

import (
	"encoding/json"

	"go.uber.org/zap"

	"molvec/internal/adapter/cache"
	"molvec/internal/adapter/geometry"
	"molvec/internal/domain"
	"molvec/internal/port"
)

// Base carries the collaborators shared by the geometry-backed variants:
// the SMILES canonicalizer, the configured geometry generator, the cache
// store and the worker-pool degree.
type Base struct {
	canon port.Canonicalizer
	geom  port.GeometryGenerator
	store port.Store
	nJobs int
	log   *zap.Logger
}

func NewBase(canon port.Canonicalizer, geom port.GeometryGenerator, store port.Store, nJobs int, log *zap.Logger) *Base {
	if log == nil {
		log = zap.NewNop()
	}
	if nJobs < 1 {
		nJobs = 1
	}
	return &Base{canon: canon, geom: geom, store: store, nJobs: nJobs, log: log}
}

// geometryEntry is the cached outcome of one geometry computation.
// Failures are cached too, so a non-converging molecule is not retried
// on every run.
type geometryEntry struct {
	XYZ string `json:"xyz"`
	OK  bool   `json:"ok"`
}

// vectorEntry is the cached outcome of one feature-vector computation.
type vectorEntry struct {
	Vector []float64 `json:"vector"`
	OK     bool      `json:"ok"`
}

// ComputeGeometry canonicalizes the SMILES and builds (or replays) its 3D
// geometry. The cache is keyed by the canonical form plus the generator
// name, so equivalent SMILES share one entry and different methods never
// collide. Backend errors are logged and converted to failure; nothing
// propagates.
func (b *Base) ComputeGeometry(smiles string) (*domain.Geometry, string, bool) {
	canonical, err := b.canon.Canonicalize(smiles)
	if err != nil {
		b.log.Warn("failed to canonicalize SMILES",
			zap.String("smiles", smiles), zap.Error(err))
		return nil, "", false
	}

	key := cache.Key(b.geom.Name(), canonical)
	entry, found := b.getGeometryEntry(key)
	if !found {
		xyz, ok, err := b.geom.Generate(canonical)
		if err != nil {
			b.log.Warn("geometry computation failed",
				zap.String("smiles", canonical), zap.Error(err))
			return nil, "", false
		}
		entry = geometryEntry{XYZ: xyz, OK: ok}
		b.putEntry(port.NamespaceGeometry, key, entry)
	}

	if !entry.OK {
		return nil, "", false
	}
	geom, err := geometry.ParseXYZ(entry.XYZ)
	if err != nil {
		b.log.Warn("failed to parse cached geometry",
			zap.String("smiles", canonical), zap.Error(err))
		return nil, "", false
	}
	return geom, entry.XYZ, true
}

// cachedFeatures builds (or replays) the feature vector of a geometry.
// The cache key combines the builder configuration, the geometry method
// discriminator and the geometry content, so entries never collide across
// methods or parameter sets. Builder errors fail the row.
func (b *Base) cachedFeatures(builder port.FeatureBuilder, geom *domain.Geometry, xyz, smiles string) ([]float64, bool) {
	key := cache.Key(builder.Name(), b.geom.Name(), xyz)
	if data, ok, err := b.store.Get(port.NamespaceDescriptors, key); err == nil && ok {
		var entry vectorEntry
		if json.Unmarshal(data, &entry) == nil {
			return entry.Vector, entry.OK
		}
	}

	vec, err := builder.Create(geom)
	if err != nil {
		b.log.Warn("descriptor computation failed",
			zap.String("smiles", smiles), zap.Error(err))
		b.putEntry(port.NamespaceDescriptors, key, vectorEntry{OK: false})
		return nil, false
	}
	b.putEntry(port.NamespaceDescriptors, key, vectorEntry{Vector: vec, OK: true})
	return vec, true
}

func (b *Base) getGeometryEntry(key string) (geometryEntry, bool) {
	data, ok, err := b.store.Get(port.NamespaceGeometry, key)
	if err != nil || !ok {
		return geometryEntry{}, false
	}
	var entry geometryEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return geometryEntry{}, false
	}
	return entry, true
}

// putEntry stores a cache value. Write errors only cost a recomputation
// later, so they are logged and swallowed.
func (b *Base) putEntry(namespace, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := b.store.Put(namespace, key, data); err != nil {
		b.log.Warn("cache write failed",
			zap.String("namespace", namespace), zap.Error(err))
	}
}
