package geometry

import (
	"bytes"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// ObabelGenerator computes 3D geometries by shelling out to the OpenBabel
// binary with a force field. Non-convergence or rejection of the input
// yields ok=false without an error so the outcome is cacheable.
type ObabelGenerator struct {
	binary     string
	forceField string
	steps      int
}

// NewObabelGenerator creates a generator using the given force field
// (e.g. "MMFF94", "UFF"). binary defaults to "obabel" on PATH, steps to
// 500 optimization iterations.
func NewObabelGenerator(binary, forceField string, steps int) *ObabelGenerator {
	if binary == "" {
		binary = "obabel"
	}
	if steps <= 0 {
		steps = 500
	}
	return &ObabelGenerator{binary: binary, forceField: forceField, steps: steps}
}

// Name identifies the method and its parameters for cache keying.
func (g *ObabelGenerator) Name() string {
	return fmt.Sprintf("obabel/%s/steps=%d", strings.ToLower(g.forceField), g.steps)
}

func (g *ObabelGenerator) Generate(smiles string) (string, bool, error) {
	cmd := exec.Command(g.binary,
		"-:"+smiles,
		"-oxyz",
		"--gen3d",
		"--ff", g.forceField,
		"--steps", strconv.Itoa(g.steps),
	)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if _, isExit := err.(*exec.ExitError); isExit {
			// obabel exits non-zero when it cannot build the molecule
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to run %s: %w", g.binary, err)
	}

	xyz := stdout.String()
	if strings.Contains(stderr.String(), "0 molecules converted") {
		return "", false, nil
	}
	if _, err := ParseXYZ(xyz); err != nil {
		return "", false, nil
	}
	return xyz, true, nil
}
