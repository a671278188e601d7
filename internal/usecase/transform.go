package usecase

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"

	"molvec/internal/domain"
	"molvec/internal/port"
)

// TransformUseCase turns SMILES lists into descriptor matrices.
type TransformUseCase struct {
	desc port.Descriptor
	log  *zap.Logger
}

func NewTransformUseCase(desc port.Descriptor, log *zap.Logger) *TransformUseCase {
	if log == nil {
		log = zap.NewNop()
	}
	return &TransformUseCase{desc: desc, log: log}
}

// TransformResult contains the results of one batch transformation.
type TransformResult struct {
	SMILES  []string
	Matrix  *domain.Matrix
	Elapsed time.Duration
}

// Run transforms the given SMILES in order. The matrix always has shape
// (len(smiles), RowSize); failed rows are zero-filled and flagged in the
// success vector.
func (u *TransformUseCase) Run(smiles []string, progress port.ProgressFunc) (*TransformResult, error) {
	start := time.Now()
	m, err := u.desc.Transform(smiles, progress)
	if err != nil {
		return nil, fmt.Errorf("transformation failed: %w", err)
	}
	u.log.Info("batch transformed",
		zap.Int("molecules", len(smiles)),
		zap.Int("row_size", u.desc.RowSize()),
		zap.Int("failed", len(smiles)-m.NumSuccesses()),
		zap.Duration("elapsed", time.Since(start)))

	return &TransformResult{
		SMILES:  smiles,
		Matrix:  m,
		Elapsed: time.Since(start),
	}, nil
}

// LoadSMILES expands the given glob patterns and reads one SMILES per
// line from every matched file, preserving file order and line order.
// Blank lines and '#' comments are skipped. A SMILES file may carry a
// name column after the SMILES; only the first field is kept.
func LoadSMILES(patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid input pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match pattern %q", pattern)
		}
		sort.Strings(matches)
		files = append(files, matches...)
	}

	var smiles []string
	for _, file := range files {
		lines, err := readSMILESFile(file)
		if err != nil {
			return nil, err
		}
		smiles = append(smiles, lines...)
	}
	return smiles, nil
}

func readSMILESFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	var smiles []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		smiles = append(smiles, strings.Fields(line)[0])
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return smiles, nil
}
