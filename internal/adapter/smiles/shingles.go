package smiles

import "fmt"

// Extractor lists the circular sub-structural fragments ("shingles") of a
// molecule. For every heavy atom and every radius 1..lvl, the induced
// subgraph of atoms within that many bonds of the center is written as a
// canonical fragment identifier.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the shingles of radius 1..lvl. With asList=true one
// identifier is kept per (atom, radius) pair so occurrences can be
// counted; otherwise duplicates are removed, preserving first-encounter
// order.
func (e *Extractor) Extract(input string, lvl int, asList bool) ([]string, error) {
	if lvl < 1 {
		return nil, fmt.Errorf("shingle radius must be at least 1, got %d", lvl)
	}
	mol, err := Parse(input)
	if err != nil {
		return nil, fmt.Errorf("failed to parse SMILES %q: %w", input, err)
	}

	var shingles []string
	seen := make(map[string]bool)
	for center := range mol.Atoms {
		for radius := 1; radius <= lvl; radius++ {
			include := environment(mol, center, radius)
			frag := Write(mol, include)
			if frag == "" {
				continue
			}
			if asList {
				shingles = append(shingles, frag)
			} else if !seen[frag] {
				seen[frag] = true
				shingles = append(shingles, frag)
			}
		}
	}
	return shingles, nil
}

// environment marks the atoms within the given bond radius of center.
func environment(m *Molecule, center, radius int) []bool {
	include := make([]bool, len(m.Atoms))
	include[center] = true
	frontier := []int{center}
	for step := 0; step < radius; step++ {
		var next []int
		for _, atom := range frontier {
			for _, e := range m.adj[atom] {
				if !include[e.atom] {
					include[e.atom] = true
					next = append(next, e.atom)
				}
			}
		}
		frontier = next
	}
	return include
}
