// Package features implements the descriptor builders: Coulomb matrix,
// SOAP partial power spectrum and MBTR. Feature counts are pure functions
// of the builder configuration; Create fails for geometries the
// configuration cannot encode (unsupported species, too many atoms).
package features

import "fmt"

var atomicNumbers = map[string]int{
	"H": 1, "He": 2,
	"Li": 3, "Be": 4, "B": 5, "C": 6, "N": 7, "O": 8, "F": 9, "Ne": 10,
	"Na": 11, "Mg": 12, "Al": 13, "Si": 14, "P": 15, "S": 16, "Cl": 17, "Ar": 18,
	"K": 19, "Ca": 20, "Ti": 22, "Cr": 24, "Mn": 25, "Fe": 26, "Co": 27,
	"Ni": 28, "Cu": 29, "Zn": 30, "As": 33, "Se": 34, "Br": 35, "Kr": 36,
	"I": 53,
}

// AtomicNumber returns the proton count of an element symbol.
func AtomicNumber(symbol string) (int, error) {
	z, ok := atomicNumbers[symbol]
	if !ok {
		return 0, fmt.Errorf("unknown element symbol %q", symbol)
	}
	return z, nil
}

// DefaultSpecies is the element list used when none is configured.
var DefaultSpecies = []string{"H", "C", "O", "N", "F"}

// speciesIndex maps symbols to their position in the configured species
// list, failing on symbols outside it.
func speciesIndex(species []string) map[string]int {
	idx := make(map[string]int, len(species))
	for i, s := range species {
		idx[s] = i
	}
	return idx
}

// pairIndex enumerates unordered species pairs (a<=b) densely.
func pairIndex(a, b, n int) int {
	if a > b {
		a, b = b, a
	}
	return a*n - a*(a-1)/2 + (b - a)
}
