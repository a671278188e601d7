package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Validation errors surfaced at construction time, before any batch work.
var (
	ErrInvalidNJobs          = errors.New("n_jobs must be positive")
	ErrUnknownGeometryMethod = errors.New("geometry method must be obabel_mmff94, obabel_uff or mock")
	ErrUnknownDescriptorKind = errors.New("descriptor kind must be coulomb, soap, mbtr, shingles or random")
	ErrInvalidVectSize       = errors.New("vect_size must be positive")
	ErrInvalidNAtomsMax      = errors.New("n_atoms_max must be positive")
	ErrInvalidShingleLvl     = errors.New("shingles lvl must be at least 1")
	ErrInvalidSigma          = errors.New("sigma must be positive")
	ErrInvalidSOAPAverage    = errors.New("soap average must be inner, outer or off")
	ErrInvalidSOAPBasis      = errors.New("soap rcut, nmax and lmax must be positive")
	ErrInvalidMBTRGrid       = errors.New("mbtr grid sizes must be at least 2")
)

// Config holds all configuration for the descriptor pipeline. It is set
// once at load time and read-only thereafter.
type Config struct {
	CacheDir   string           `yaml:"cache_dir" envconfig:"CACHE_DIR"`
	NJobs      int              `yaml:"n_jobs" envconfig:"N_JOBS"`
	Geometry   GeometryConfig   `yaml:"geometry"`
	Descriptor DescriptorConfig `yaml:"descriptor"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// GeometryConfig selects the force-field backend used to build 3D
// geometries. The method string doubles as the cache discriminator, so
// changing it invalidates previously cached geometries.
type GeometryConfig struct {
	Method     string `yaml:"method" envconfig:"GEOMETRY_METHOD"`
	ObabelPath string `yaml:"obabel_path" envconfig:"OBABEL_PATH"`
	MaxIters   int    `yaml:"max_iters"`
}

// DescriptorConfig selects the descriptor variant and its parameters.
type DescriptorConfig struct {
	Kind     string         `yaml:"kind" envconfig:"DESCRIPTOR_KIND"`
	Coulomb  CoulombConfig  `yaml:"coulomb"`
	SOAP     SOAPConfig     `yaml:"soap"`
	MBTR     MBTRConfig     `yaml:"mbtr"`
	Shingles ShinglesConfig `yaml:"shingles"`
	Random   RandomConfig   `yaml:"random"`
}

type CoulombConfig struct {
	NAtomsMax int `yaml:"n_atoms_max"`
}

type SOAPConfig struct {
	RCut      float64  `yaml:"rcut"`
	NMax      int      `yaml:"nmax"`
	LMax      int      `yaml:"lmax"`
	Species   []string `yaml:"species"`
	Average   string   `yaml:"average"`
	NAtomsMax int      `yaml:"n_atoms_max"`
}

type MBTRConfig struct {
	Species           []string `yaml:"species"`
	AtomicNumbersN    int      `yaml:"atomic_numbers_n"`
	InverseDistancesN int      `yaml:"inverse_distances_n"`
	CosineAnglesN     int      `yaml:"cosine_angles_n"`
}

type ShinglesConfig struct {
	Lvl       int    `yaml:"lvl"`
	VectSize  int    `yaml:"vect_size"`
	Count     bool   `yaml:"count"`
	VocabFile string `yaml:"vocab_file"`
}

type RandomConfig struct {
	Mu       float64 `yaml:"mu"`
	Sigma    float64 `yaml:"sigma"`
	VectSize int     `yaml:"vect_size"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LOG_LEVEL"`
	Format string `yaml:"format" envconfig:"LOG_FORMAT"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		CacheDir: ".molvec",
		NJobs:    1,
		Geometry: GeometryConfig{
			Method:     "obabel_mmff94",
			ObabelPath: "obabel",
			MaxIters:   500,
		},
		Descriptor: DescriptorConfig{
			Kind: "soap",
			Coulomb: CoulombConfig{
				NAtomsMax: 100,
			},
			SOAP: SOAPConfig{
				RCut:      6.0,
				NMax:      8,
				LMax:      6,
				Species:   []string{"H", "C", "O", "N", "F"},
				Average:   "inner",
				NAtomsMax: 100,
			},
			MBTR: MBTRConfig{
				Species:           []string{"H", "C", "O", "N", "F"},
				AtomicNumbersN:    100,
				InverseDistancesN: 100,
				CosineAnglesN:     100,
			},
			Shingles: ShinglesConfig{
				Lvl:      1,
				VectSize: 4000,
			},
			Random: RandomConfig{
				Mu:       0,
				Sigma:    1,
				VectSize: 4000,
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads configuration from a YAML file, overlaying the defaults,
// then applies MOLVEC_* environment variable overrides and validates.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		// defaults apply when no config file exists
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := envconfig.Process("molvec", cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromDir loads configuration from dir/molvec.yaml, falling back to
// defaults when the file is absent.
func LoadFromDir(dir string) (*Config, error) {
	return Load(filepath.Join(dir, "molvec.yaml"))
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the configuration and returns the first error found.
func (c *Config) Validate() error {
	if c.NJobs <= 0 {
		return ErrInvalidNJobs
	}
	switch c.Geometry.Method {
	case "obabel_mmff94", "obabel_uff", "mock":
	default:
		return fmt.Errorf("%w: %q", ErrUnknownGeometryMethod, c.Geometry.Method)
	}
	d := c.Descriptor
	switch d.Kind {
	case "coulomb":
		if d.Coulomb.NAtomsMax <= 0 {
			return ErrInvalidNAtomsMax
		}
	case "soap":
		if d.SOAP.NAtomsMax <= 0 {
			return ErrInvalidNAtomsMax
		}
		if d.SOAP.RCut <= 0 || d.SOAP.NMax <= 0 || d.SOAP.LMax <= 0 {
			return ErrInvalidSOAPBasis
		}
		switch d.SOAP.Average {
		case "inner", "outer", "off":
		default:
			return fmt.Errorf("%w: %q", ErrInvalidSOAPAverage, d.SOAP.Average)
		}
	case "mbtr":
		// grids need two points for a finite step
		if d.MBTR.AtomicNumbersN < 2 || d.MBTR.InverseDistancesN < 2 || d.MBTR.CosineAnglesN < 2 {
			return ErrInvalidMBTRGrid
		}
	case "shingles":
		if d.Shingles.VectSize <= 0 {
			return ErrInvalidVectSize
		}
		if d.Shingles.Lvl < 1 {
			return ErrInvalidShingleLvl
		}
	case "random":
		if d.Random.VectSize <= 0 {
			return ErrInvalidVectSize
		}
		if d.Random.Sigma <= 0 {
			return ErrInvalidSigma
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDescriptorKind, d.Kind)
	}
	return nil
}

// CacheDBPath returns the path of the cache database under the cache dir.
func CacheDBPath(cacheDir string) string {
	return filepath.Join(cacheDir, "cache.db")
}

// EnsureCacheDir creates the cache directory if needed.
func EnsureCacheDir(cacheDir string) error {
	return os.MkdirAll(cacheDir, 0755)
}
