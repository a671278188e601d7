package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "molvec.yaml")
	yaml := `
n_jobs: 8
descriptor:
  kind: coulomb
  coulomb:
    n_atoms_max: 42
`
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.NJobs != 8 {
		t.Errorf("expected n_jobs 8, got %d", cfg.NJobs)
	}
	if cfg.Descriptor.Kind != "coulomb" {
		t.Errorf("expected kind coulomb, got %s", cfg.Descriptor.Kind)
	}
	if cfg.Descriptor.Coulomb.NAtomsMax != 42 {
		t.Errorf("expected n_atoms_max 42, got %d", cfg.Descriptor.Coulomb.NAtomsMax)
	}
	// untouched fields keep their defaults
	if cfg.Geometry.Method != "obabel_mmff94" {
		t.Errorf("expected default geometry method, got %s", cfg.Geometry.Method)
	}
	if cfg.Descriptor.SOAP.NMax != 8 {
		t.Errorf("expected default soap nmax, got %d", cfg.Descriptor.SOAP.NMax)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Descriptor.Kind != "soap" {
		t.Errorf("expected default kind, got %s", cfg.Descriptor.Kind)
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("MOLVEC_N_JOBS", "16")
	t.Setenv("MOLVEC_GEOMETRY_METHOD", "mock")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.NJobs != 16 {
		t.Errorf("expected n_jobs 16 from env, got %d", cfg.NJobs)
	}
	if cfg.Geometry.Method != "mock" {
		t.Errorf("expected geometry method mock from env, got %s", cfg.Geometry.Method)
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"zero n_jobs", func(c *Config) { c.NJobs = 0 }, ErrInvalidNJobs},
		{"unknown method", func(c *Config) { c.Geometry.Method = "dft" }, ErrUnknownGeometryMethod},
		{"unknown kind", func(c *Config) { c.Descriptor.Kind = "fingerprint" }, ErrUnknownDescriptorKind},
		{"bad soap average", func(c *Config) { c.Descriptor.SOAP.Average = "middle" }, ErrInvalidSOAPAverage},
		{"zero soap nmax", func(c *Config) { c.Descriptor.SOAP.NMax = 0 }, ErrInvalidSOAPBasis},
		{"negative soap rcut", func(c *Config) { c.Descriptor.SOAP.RCut = -1 }, ErrInvalidSOAPBasis},
		{"one-point mbtr grid", func(c *Config) {
			c.Descriptor.Kind = "mbtr"
			c.Descriptor.MBTR.AtomicNumbersN = 1
		}, ErrInvalidMBTRGrid},
		{"zero mbtr grid", func(c *Config) {
			c.Descriptor.Kind = "mbtr"
			c.Descriptor.MBTR.CosineAnglesN = 0
		}, ErrInvalidMBTRGrid},
		{"bad vect size", func(c *Config) {
			c.Descriptor.Kind = "shingles"
			c.Descriptor.Shingles.VectSize = 0
		}, ErrInvalidVectSize},
		{"bad sigma", func(c *Config) {
			c.Descriptor.Kind = "random"
			c.Descriptor.Random.Sigma = 0
		}, ErrInvalidSigma},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}
