package smiles

import (
	"fmt"
	"sort"
	"strings"
)

// Canonicalizer rewrites SMILES into a deterministic canonical form.
// Equivalent notations of the same graph (atom order, branch order, ring
// numbering) map to the same output string.
type Canonicalizer struct{}

func NewCanonicalizer() *Canonicalizer {
	return &Canonicalizer{}
}

func (c *Canonicalizer) Canonicalize(input string) (string, error) {
	mol, err := Parse(input)
	if err != nil {
		return "", fmt.Errorf("failed to parse SMILES %q: %w", input, err)
	}
	return Write(mol, nil), nil
}

// Write produces the canonical SMILES of a molecule, or of the induced
// subgraph when include is non-nil. Components are written independently
// and joined in sorted order.
func Write(m *Molecule, include []bool) string {
	if include == nil {
		include = make([]bool, len(m.Atoms))
		for i := range include {
			include[i] = true
		}
	}
	ranks := canonicalRanks(m, include)

	visited := make([]bool, len(m.Atoms))
	var parts []string
	for {
		start := -1
		for i := range m.Atoms {
			if !include[i] || visited[i] {
				continue
			}
			if start < 0 || ranks[i] < ranks[start] {
				start = i
			}
		}
		if start < 0 {
			break
		}
		w := newWriter(m, include, ranks)
		w.walk(start, -1, visited)
		parts = append(parts, w.emit(start, -1))
	}
	sort.Strings(parts)
	return strings.Join(parts, ".")
}

// canonicalRanks assigns a unique rank to every included atom using
// iterative neighborhood refinement with deterministic tie-breaking.
func canonicalRanks(m *Molecule, include []bool) []int {
	n := len(m.Atoms)
	keys := make([]string, n)
	for i := 0; i < n; i++ {
		if !include[i] {
			continue
		}
		a := m.Atoms[i]
		degree := 0
		for _, e := range m.adj[i] {
			if include[e.atom] {
				degree++
			}
		}
		h := a.HCount
		if h < 0 {
			h = m.ImplicitHydrogens(i)
		}
		keys[i] = fmt.Sprintf("%s|%d|%t|%d|%d|%d", a.Symbol, degree, a.Aromatic, a.Charge, h, a.Isotope)
	}
	ranks := denseRanks(keys, include)

	for {
		ranks = refineRanks(m, ranks, include)

		// lowest tied rank class, lowest atom index within it
		counts := make(map[int]int)
		for i := range ranks {
			if include[i] {
				counts[ranks[i]]++
			}
		}
		tied := -1
		for i := range ranks {
			if !include[i] || counts[ranks[i]] < 2 {
				continue
			}
			if tied < 0 || ranks[i] < ranks[tied] {
				tied = i
			}
		}
		if tied < 0 {
			return ranks
		}
		for i := range ranks {
			if include[i] {
				ranks[i] *= 2
			}
		}
		ranks[tied]--
	}
}

func refineRanks(m *Molecule, ranks []int, include []bool) []int {
	n := len(m.Atoms)
	distinct := countDistinct(ranks, include)
	for {
		keys := make([]string, n)
		for i := 0; i < n; i++ {
			if !include[i] {
				continue
			}
			var nb []string
			for _, e := range m.adj[i] {
				if !include[e.atom] {
					continue
				}
				b := m.Bonds[e.bond]
				order := b.Order
				if b.Aromatic {
					order = 0
				}
				nb = append(nb, fmt.Sprintf("%d:%09d", order, ranks[e.atom]))
			}
			sort.Strings(nb)
			keys[i] = fmt.Sprintf("%09d|%s", ranks[i], strings.Join(nb, ","))
		}
		ranks = denseRanks(keys, include)
		next := countDistinct(ranks, include)
		if next == distinct {
			return ranks
		}
		distinct = next
	}
}

func denseRanks(keys []string, include []bool) []int {
	uniq := make(map[string]struct{})
	for i, k := range keys {
		if include[i] {
			uniq[k] = struct{}{}
		}
	}
	sorted := make([]string, 0, len(uniq))
	for k := range uniq {
		sorted = append(sorted, k)
	}
	sort.Strings(sorted)
	pos := make(map[string]int, len(sorted))
	for r, k := range sorted {
		pos[k] = r
	}
	ranks := make([]int, len(keys))
	for i, k := range keys {
		if include[i] {
			ranks[i] = pos[k]
		}
	}
	return ranks
}

func countDistinct(ranks []int, include []bool) int {
	uniq := make(map[int]struct{})
	for i, r := range ranks {
		if include[i] {
			uniq[r] = struct{}{}
		}
	}
	return len(uniq)
}

// writer assembles one component. The first pass (walk) fixes the
// traversal tree and assigns ring-closure digits in encounter order; the
// second pass (emit) builds the string.
type writer struct {
	m        *Molecule
	include  []bool
	ranks    []int
	treeBond map[int]bool
	closure  map[int][]closureMark
	ringBond map[int]int
	nextRing int
}

type closureMark struct {
	digit int
	bond  int
}

func newWriter(m *Molecule, include []bool, ranks []int) *writer {
	return &writer{
		m:        m,
		include:  include,
		ranks:    ranks,
		treeBond: make(map[int]bool),
		closure:  make(map[int][]closureMark),
		ringBond: make(map[int]int),
		nextRing: 1,
	}
}

func (w *writer) neighbors(atom int) []adjEntry {
	var out []adjEntry
	for _, e := range w.m.adj[atom] {
		if w.include[e.atom] {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return w.ranks[out[i].atom] < w.ranks[out[j].atom]
	})
	return out
}

func (w *writer) walk(atom, fromBond int, visited []bool) {
	visited[atom] = true
	for _, e := range w.neighbors(atom) {
		if e.bond == fromBond {
			continue
		}
		if _, done := w.ringBond[e.bond]; done {
			continue
		}
		if visited[e.atom] {
			digit := w.nextRing
			w.nextRing++
			w.ringBond[e.bond] = digit
			w.closure[atom] = append(w.closure[atom], closureMark{digit: digit, bond: e.bond})
			w.closure[e.atom] = append(w.closure[e.atom], closureMark{digit: digit, bond: e.bond})
			continue
		}
		w.treeBond[e.bond] = true
		w.walk(e.atom, e.bond, visited)
	}
}

func (w *writer) emit(atom, fromBond int) string {
	var sb strings.Builder
	sb.WriteString(w.atomToken(atom))
	for _, c := range w.closure[atom] {
		sb.WriteString(bondToken(w.m.Bonds[c.bond]))
		if c.digit > 9 {
			fmt.Fprintf(&sb, "%%%02d", c.digit)
		} else {
			fmt.Fprintf(&sb, "%d", c.digit)
		}
	}

	var children []adjEntry
	for _, e := range w.neighbors(atom) {
		if e.bond != fromBond && w.treeBond[e.bond] {
			children = append(children, e)
		}
	}
	for i, e := range children {
		sub := bondToken(w.m.Bonds[e.bond]) + w.emit(e.atom, e.bond)
		if i < len(children)-1 {
			sb.WriteString("(")
			sb.WriteString(sub)
			sb.WriteString(")")
		} else {
			sb.WriteString(sub)
		}
	}
	return sb.String()
}

func (w *writer) atomToken(i int) string {
	a := w.m.Atoms[i]
	sym := a.Symbol
	if a.Aromatic {
		sym = strings.ToLower(sym)
	}

	// an explicit hydrogen count must survive the round trip: a bare
	// organic-subset token implies the default-valence count, so [CH2]
	// written as C would collapse onto methane
	needBracket := a.Charge != 0 || a.Isotope != 0 || !organicSymbols[a.Symbol] ||
		a.HCount >= 0
	if !needBracket {
		return sym
	}

	var sb strings.Builder
	sb.WriteString("[")
	if a.Isotope > 0 {
		fmt.Fprintf(&sb, "%d", a.Isotope)
	}
	sb.WriteString(sym)
	h := a.HCount
	if h < 0 {
		h = w.m.ImplicitHydrogens(i)
	}
	switch {
	case h == 1:
		sb.WriteString("H")
	case h > 1:
		fmt.Fprintf(&sb, "H%d", h)
	}
	switch {
	case a.Charge == 1:
		sb.WriteString("+")
	case a.Charge == -1:
		sb.WriteString("-")
	case a.Charge > 1:
		fmt.Fprintf(&sb, "+%d", a.Charge)
	case a.Charge < -1:
		fmt.Fprintf(&sb, "-%d", -a.Charge)
	}
	sb.WriteString("]")
	return sb.String()
}

func bondToken(b Bond) string {
	if b.Aromatic {
		return ""
	}
	switch b.Order {
	case 2:
		return "="
	case 3:
		return "#"
	}
	return ""
}
