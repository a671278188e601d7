package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"

	"molvec/internal/domain"
)

// parquetRow is the on-disk record layout: one row per molecule with the
// feature vector as a repeated double column.
type parquetRow struct {
	Smiles   string    `parquet:"smiles"`
	Success  bool      `parquet:"success"`
	Features []float64 `parquet:"features"`
}

// WriteParquet writes the matrix as a Parquet file.
func WriteParquet(w io.Writer, smiles []string, m *domain.Matrix) error {
	if len(smiles) != m.NumRows() {
		return fmt.Errorf("matrix has %d rows for %d inputs", m.NumRows(), len(smiles))
	}

	pw := parquet.NewGenericWriter[parquetRow](w)
	const batch = 256
	rows := make([]parquetRow, 0, batch)
	for i := range m.Rows {
		rows = append(rows, parquetRow{
			Smiles:   smiles[i],
			Success:  m.Successes[i],
			Features: m.Rows[i],
		})
		if len(rows) == batch {
			if _, err := pw.Write(rows); err != nil {
				return err
			}
			rows = rows[:0]
		}
	}
	if len(rows) > 0 {
		if _, err := pw.Write(rows); err != nil {
			return err
		}
	}
	return pw.Close()
}

// WriteFile writes the matrix to path, choosing the format from the file
// extension (.parquet or .csv).
func WriteFile(path string, smiles []string, m *domain.Matrix) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".parquet":
		err = WriteParquet(f, smiles, m)
	case ".csv":
		err = WriteCSV(f, smiles, m)
	default:
		return fmt.Errorf("unsupported output format %q (use .csv or .parquet)", filepath.Ext(path))
	}
	if err != nil {
		return err
	}
	return f.Close()
}
