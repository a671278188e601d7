// Package geometry provides the geometry-generator collaborators: an
// OpenBabel-backed force-field optimizer and a deterministic mock used in
// tests and cache-only setups. Generators exchange geometries as XYZ
// blocks, which is also the form stored in the geometry cache.
package geometry

import (
	"fmt"
	"strconv"
	"strings"

	"molvec/internal/domain"
)

// ParseXYZ reads an XYZ block into a Geometry.
func ParseXYZ(xyz string) (*domain.Geometry, error) {
	lines := strings.Split(strings.TrimSpace(xyz), "\n")
	if len(lines) < 2 {
		return nil, fmt.Errorf("truncated XYZ block")
	}
	n, err := strconv.Atoi(strings.TrimSpace(lines[0]))
	if err != nil {
		return nil, fmt.Errorf("invalid XYZ atom count %q: %w", lines[0], err)
	}
	if len(lines) < n+2 {
		return nil, fmt.Errorf("XYZ block has %d atom lines, expected %d", len(lines)-2, n)
	}

	geom := &domain.Geometry{Atoms: make([]domain.Atom, 0, n)}
	for _, line := range lines[2 : n+2] {
		fields := strings.Fields(line)
		if len(fields) < 4 {
			return nil, fmt.Errorf("invalid XYZ atom line %q", line)
		}
		x, errX := strconv.ParseFloat(fields[1], 64)
		y, errY := strconv.ParseFloat(fields[2], 64)
		z, errZ := strconv.ParseFloat(fields[3], 64)
		if errX != nil || errY != nil || errZ != nil {
			return nil, fmt.Errorf("invalid XYZ coordinates in line %q", line)
		}
		geom.Atoms = append(geom.Atoms, domain.Atom{Symbol: fields[0], X: x, Y: y, Z: z})
	}
	return geom, nil
}

// FormatXYZ renders a Geometry as an XYZ block.
func FormatXYZ(geom *domain.Geometry, comment string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d\n%s\n", geom.NumAtoms(), comment)
	for _, a := range geom.Atoms {
		fmt.Fprintf(&sb, "%s %.6f %.6f %.6f\n", a.Symbol, a.X, a.Y, a.Z)
	}
	return sb.String()
}
