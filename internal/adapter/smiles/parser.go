// Package smiles parses SMILES line notation into a molecular graph and
// provides the canonicalizer and shingle extractor built on top of it.
//
// The reader covers the organic subset, bracket atoms with charge,
// isotope and explicit hydrogen counts, branches, ring-bond closures
// (including %nn) and dot-separated components. Stereo markers are
// accepted and discarded.
//
// Aromaticity is taken from the notation, not perceived: the
// canonicalizer unifies atom order, branch order and ring numbering, but
// Kekule and aromatic writings of the same ring (C1=CC=CC=C1 vs
// c1ccccc1) stay distinct. Inputs must use one convention consistently
// for cache entries to be shared.
package smiles

import (
	"fmt"
	"strings"
)

// Atom is one node of the parsed molecular graph.
type Atom struct {
	Symbol   string // normalized element symbol, e.g. "C", "Cl"
	Aromatic bool
	Charge   int
	Isotope  int
	// HCount is the explicit hydrogen count from a bracket atom, or -1
	// when hydrogens are implicit.
	HCount int
}

// Bond connects two atoms by index. Order is 1, 2 or 3; aromatic bonds
// carry order 1 with Aromatic set.
type Bond struct {
	A, B     int
	Order    int
	Aromatic bool
}

// Molecule is a parsed SMILES graph.
type Molecule struct {
	Atoms []Atom
	Bonds []Bond
	adj   [][]adjEntry
}

type adjEntry struct {
	atom int
	bond int
}

// organic subset symbols that may appear without brackets.
var organicSymbols = map[string]bool{
	"B": true, "C": true, "N": true, "O": true, "P": true,
	"S": true, "F": true, "Cl": true, "Br": true, "I": true,
}

// default valences used to derive implicit hydrogen counts.
var defaultValence = map[string]int{
	"B": 3, "C": 4, "N": 3, "O": 2, "P": 3,
	"S": 2, "F": 1, "Cl": 1, "Br": 1, "I": 1,
}

type ringBond struct {
	atom  int
	order int
}

// Parse reads a SMILES string into a molecular graph.
func Parse(input string) (*Molecule, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return nil, fmt.Errorf("empty SMILES")
	}

	mol := &Molecule{}
	var stack []int
	prev := -1
	pendingBond := 0 // 0 means "default", otherwise explicit order
	pendingAromatic := false
	rings := make(map[int]ringBond)

	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c == '(':
			if prev < 0 {
				return nil, fmt.Errorf("branch before any atom at position %d", i)
			}
			stack = append(stack, prev)
			i++

		case c == ')':
			if len(stack) == 0 {
				return nil, fmt.Errorf("unmatched ')' at position %d", i)
			}
			prev = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			i++

		case c == '.':
			prev = -1
			pendingBond = 0
			pendingAromatic = false
			i++

		case c == '-' || c == '/' || c == '\\':
			pendingBond = 1
			i++
		case c == '=':
			pendingBond = 2
			i++
		case c == '#':
			pendingBond = 3
			i++
		case c == ':':
			pendingBond = 1
			pendingAromatic = true
			i++

		case c >= '0' && c <= '9' || c == '%':
			label := 0
			if c == '%' {
				if i+2 >= len(s) || !isDigit(s[i+1]) || !isDigit(s[i+2]) {
					return nil, fmt.Errorf("invalid ring label at position %d", i)
				}
				label = int(s[i+1]-'0')*10 + int(s[i+2]-'0')
				i += 3
			} else {
				label = int(c - '0')
				i++
			}
			if prev < 0 {
				return nil, fmt.Errorf("ring bond before any atom")
			}
			if open, ok := rings[label]; ok {
				delete(rings, label)
				order := pendingBond
				if order == 0 {
					order = open.order
				}
				if err := mol.addBond(open.atom, prev, order, pendingAromatic); err != nil {
					return nil, err
				}
			} else {
				rings[label] = ringBond{atom: prev, order: pendingBond}
			}
			pendingBond = 0
			pendingAromatic = false

		case c == '[':
			end := strings.IndexByte(s[i:], ']')
			if end < 0 {
				return nil, fmt.Errorf("unclosed bracket atom at position %d", i)
			}
			atom, err := parseBracketAtom(s[i+1 : i+end])
			if err != nil {
				return nil, fmt.Errorf("invalid bracket atom %q: %w", s[i:i+end+1], err)
			}
			prev = mol.connect(atom, prev, &pendingBond, &pendingAromatic)
			i += end + 1

		default:
			atom, width, err := parseOrganicAtom(s[i:])
			if err != nil {
				return nil, fmt.Errorf("unexpected character %q at position %d", c, i)
			}
			prev = mol.connect(atom, prev, &pendingBond, &pendingAromatic)
			i += width
		}
	}

	if len(stack) != 0 {
		return nil, fmt.Errorf("unmatched '('")
	}
	if len(rings) != 0 {
		return nil, fmt.Errorf("unclosed ring bond")
	}
	mol.buildAdjacency()
	return mol, nil
}

// connect appends the atom and bonds it to the previous one.
func (m *Molecule) connect(atom Atom, prev int, pendingBond *int, pendingAromatic *bool) int {
	m.Atoms = append(m.Atoms, atom)
	idx := len(m.Atoms) - 1
	if prev >= 0 {
		order := *pendingBond
		aromatic := *pendingAromatic
		if order == 0 {
			order = 1
			if atom.Aromatic && m.Atoms[prev].Aromatic {
				aromatic = true
			}
		}
		// bonds created during parsing are well-formed by construction
		_ = m.addBond(prev, idx, order, aromatic)
	}
	*pendingBond = 0
	*pendingAromatic = false
	return idx
}

func (m *Molecule) addBond(a, b, order int, aromatic bool) error {
	if a == b {
		return fmt.Errorf("self bond on atom %d", a)
	}
	for _, bd := range m.Bonds {
		if (bd.A == a && bd.B == b) || (bd.A == b && bd.B == a) {
			return fmt.Errorf("duplicate bond between atoms %d and %d", a, b)
		}
	}
	if aromatic || (m.Atoms[a].Aromatic && m.Atoms[b].Aromatic && order == 1) {
		aromatic = true
	}
	m.Bonds = append(m.Bonds, Bond{A: a, B: b, Order: order, Aromatic: aromatic})
	return nil
}

func (m *Molecule) buildAdjacency() {
	m.adj = make([][]adjEntry, len(m.Atoms))
	for bi, b := range m.Bonds {
		m.adj[b.A] = append(m.adj[b.A], adjEntry{atom: b.B, bond: bi})
		m.adj[b.B] = append(m.adj[b.B], adjEntry{atom: b.A, bond: bi})
	}
}

// Degree returns the number of explicit neighbors of atom i.
func (m *Molecule) Degree(i int) int {
	return len(m.adj[i])
}

// ImplicitHydrogens returns the implicit hydrogen count of atom i. Bracket
// atoms use their explicit count; organic-subset atoms fill up to the
// default valence, aromatic atoms reserving one bonding slot for the ring.
func (m *Molecule) ImplicitHydrogens(i int) int {
	a := m.Atoms[i]
	if a.HCount >= 0 {
		return a.HCount
	}
	valence, ok := defaultValence[a.Symbol]
	if !ok {
		return 0
	}
	sum := 0
	for _, e := range m.adj[i] {
		sum += m.Bonds[e.bond].Order
	}
	if a.Aromatic {
		sum++
	}
	h := valence - sum + a.Charge
	if h < 0 {
		h = 0
	}
	return h
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func parseOrganicAtom(s string) (Atom, int, error) {
	// two-letter symbols first
	if len(s) >= 2 && organicSymbols[s[:2]] {
		return Atom{Symbol: s[:2], HCount: -1}, 2, nil
	}
	c := s[0]
	sym := string(c)
	if organicSymbols[sym] {
		return Atom{Symbol: sym, HCount: -1}, 1, nil
	}
	// aromatic organic subset
	switch c {
	case 'b', 'c', 'n', 'o', 'p', 's':
		return Atom{Symbol: strings.ToUpper(sym), Aromatic: true, HCount: -1}, 1, nil
	}
	return Atom{}, 0, fmt.Errorf("not an organic subset atom")
}

func parseBracketAtom(body string) (Atom, error) {
	if body == "" {
		return Atom{}, fmt.Errorf("empty bracket")
	}
	atom := Atom{HCount: 0}
	i := 0

	for i < len(body) && isDigit(body[i]) {
		atom.Isotope = atom.Isotope*10 + int(body[i]-'0')
		i++
	}

	if i >= len(body) {
		return Atom{}, fmt.Errorf("missing element symbol")
	}
	c := body[i]
	switch {
	case c >= 'A' && c <= 'Z':
		sym := string(c)
		i++
		if i < len(body) && body[i] >= 'a' && body[i] <= 'z' {
			sym += string(body[i])
			i++
		}
		atom.Symbol = sym
	case c >= 'a' && c <= 'z':
		sym := string(c)
		i++
		if sym == "s" && i < len(body) && body[i] == 'e' { // [se]
			sym = "se"
			i++
		}
		if sym == "a" && i < len(body) && body[i] == 's' { // [as]
			sym = "as"
			i++
		}
		atom.Symbol = strings.ToUpper(sym[:1]) + sym[1:]
		atom.Aromatic = true
	case c == '*':
		atom.Symbol = "*"
		i++
	default:
		return Atom{}, fmt.Errorf("invalid element symbol")
	}

	// chirality markers are accepted and ignored
	for i < len(body) && body[i] == '@' {
		i++
	}

	if i < len(body) && body[i] == 'H' {
		i++
		atom.HCount = 1
		if i < len(body) && isDigit(body[i]) {
			atom.HCount = int(body[i] - '0')
			i++
		}
	}

	if i < len(body) && (body[i] == '+' || body[i] == '-') {
		sign := 1
		if body[i] == '-' {
			sign = -1
		}
		mark := body[i]
		i++
		n := 1
		if i < len(body) && isDigit(body[i]) {
			n = 0
			for i < len(body) && isDigit(body[i]) {
				n = n*10 + int(body[i]-'0')
				i++
			}
		} else {
			for i < len(body) && body[i] == mark {
				n++
				i++
			}
		}
		atom.Charge = sign * n
	}

	// atom class, e.g. [C:1]
	if i < len(body) && body[i] == ':' {
		i++
		if i >= len(body) || !isDigit(body[i]) {
			return Atom{}, fmt.Errorf("invalid atom class")
		}
		for i < len(body) && isDigit(body[i]) {
			i++
		}
	}

	if i != len(body) {
		return Atom{}, fmt.Errorf("trailing characters %q", body[i:])
	}
	return atom, nil
}
