// Package output persists descriptor matrices, either as CSV or as
// Parquet for downstream ML tooling.
package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"molvec/internal/domain"
)

// WriteCSV writes one line per molecule: the SMILES, the success flag and
// the feature columns.
func WriteCSV(w io.Writer, smiles []string, m *domain.Matrix) error {
	if len(smiles) != m.NumRows() {
		return fmt.Errorf("matrix has %d rows for %d inputs", m.NumRows(), len(smiles))
	}

	cw := csv.NewWriter(w)
	rowSize := 0
	if m.NumRows() > 0 {
		rowSize = len(m.Rows[0])
	}
	header := make([]string, 0, rowSize+2)
	header = append(header, "smiles", "success")
	for i := 0; i < rowSize; i++ {
		header = append(header, "f"+strconv.Itoa(i))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	record := make([]string, rowSize+2)
	for i, row := range m.Rows {
		record[0] = smiles[i]
		record[1] = strconv.FormatBool(m.Successes[i])
		for j, v := range row {
			record[j+2] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
