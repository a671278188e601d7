package domain

import "math"

// Atom is a single atom of a 3D molecular geometry.
type Atom struct {
	Symbol  string
	X, Y, Z float64
}

// Geometry is a 3D atomic structure derived from one canonical SMILES.
type Geometry struct {
	Atoms []Atom
}

// NumAtoms returns the number of atoms in the geometry.
func (g *Geometry) NumAtoms() int {
	return len(g.Atoms)
}

// Distance returns the Euclidean distance between atoms i and j.
func (g *Geometry) Distance(i, j int) float64 {
	dx := g.Atoms[i].X - g.Atoms[j].X
	dy := g.Atoms[i].Y - g.Atoms[j].Y
	dz := g.Atoms[i].Z - g.Atoms[j].Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Matrix is the result of transforming a batch of SMILES strings.
// Rows always has shape (len(inputs), row size); failed rows are
// zero-filled and flagged false in Successes.
type Matrix struct {
	Rows      [][]float64
	Successes []bool
}

// NewMatrix allocates a zero-filled matrix of the given shape with all
// successes set to false.
func NewMatrix(nRows, rowSize int) *Matrix {
	rows := make([][]float64, nRows)
	for i := range rows {
		rows[i] = make([]float64, rowSize)
	}
	return &Matrix{
		Rows:      rows,
		Successes: make([]bool, nRows),
	}
}

// NumRows returns the number of rows in the matrix.
func (m *Matrix) NumRows() int {
	return len(m.Rows)
}

// NumSuccesses returns how many rows were computed successfully.
func (m *Matrix) NumSuccesses() int {
	n := 0
	for _, ok := range m.Successes {
		if ok {
			n++
		}
	}
	return n
}
