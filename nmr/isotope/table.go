package isotope

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/cwbudde/algo-nmr/nmr"
)

//go:embed data/isotopes.json
var bundled []byte

// Entry holds the constants of one isotope.
type Entry struct {
	Element    string
	MassNumber int

	// Gamma is the gyromagnetic ratio in 1e7 rad/(s*T).
	Gamma float64

	Spin Spin

	// QMoment is the quadrupole moment in fm^2.
	QMoment float64

	// NatAbundance is the natural abundance in percent.
	NatAbundance float64
}

// Name returns the nucleus designator, e.g. "13C".
func (e Entry) Name() string {
	return strconv.Itoa(e.MassNumber) + e.Element
}

// GammaSI returns the gyromagnetic ratio in rad/(s*T).
func (e Entry) GammaSI() float64 {
	return e.Gamma * 1e7
}

// Table is an immutable isotope lookup keyed by element and mass number.
type Table struct {
	byElement map[string][]Entry
}

type rawEntry struct {
	Gamma        float64         `json:"Gamma"`
	QMoment      float64         `json:"QMoment"`
	Spin         json.RawMessage `json:"Spin"`
	NatAbundance *float64        `json:"NatAbundance"`
	// Older resource files misspell the abundance key.
	NatAbudance *float64 `json:"NatAbudance"`
}

var defaultTable = sync.OnceValues(func() (*Table, error) {
	return Load(bytes.NewReader(bundled))
})

// Default returns the table built from the bundled resource. The table is
// parsed on first use and shared by all callers.
func Default() (*Table, error) {
	return defaultTable()
}

// Load builds a table from a JSON document in the element -> mass number ->
// constants layout.
func Load(r io.Reader) (*Table, error) {
	var raw map[string]map[string]rawEntry
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("isotope: decode table: %w", err)
	}

	t := &Table{byElement: make(map[string][]Entry, len(raw))}
	for element, isotopes := range raw {
		symbol := CanonicalElement(element)
		for massKey, re := range isotopes {
			mass, err := strconv.Atoi(strings.TrimSpace(massKey))
			if err != nil || mass <= 0 {
				return nil, fmt.Errorf("isotope: %s: invalid mass number %q", symbol, massKey)
			}
			spin, err := decodeSpin(re.Spin)
			if err != nil {
				return nil, fmt.Errorf("isotope: %d%s: %w", mass, symbol, err)
			}
			abundance := 0.0
			switch {
			case re.NatAbundance != nil:
				abundance = *re.NatAbundance
			case re.NatAbudance != nil:
				abundance = *re.NatAbudance
			}
			t.byElement[symbol] = append(t.byElement[symbol], Entry{
				Element:      symbol,
				MassNumber:   mass,
				Gamma:        re.Gamma,
				Spin:         spin,
				QMoment:      re.QMoment,
				NatAbundance: abundance,
			})
		}
	}

	for _, entries := range t.byElement {
		sort.Slice(entries, func(i, j int) bool { return entries[i].MassNumber < entries[j].MassNumber })
	}

	return t, nil
}

func decodeSpin(raw json.RawMessage) (Spin, error) {
	if len(raw) == 0 {
		return Spin{}, fmt.Errorf("missing spin")
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return ParseSpin(s)
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return Spin{}, fmt.Errorf("invalid spin %s", raw)
	}
	// Numeric spins are whole or half-integer.
	twice := int(f*2 + 0.5)
	if twice%2 == 0 {
		return Spin{Num: twice / 2, Den: 1}, nil
	}
	return Spin{Num: twice, Den: 2}, nil
}

// Lookup returns the isotope with the given element symbol and mass number.
// The element symbol is case-insensitive.
func (t *Table) Lookup(element string, massNumber int) (Entry, error) {
	symbol := CanonicalElement(element)
	for _, e := range t.byElement[symbol] {
		if e.MassNumber == massNumber {
			return e, nil
		}
	}
	return Entry{}, fmt.Errorf("isotope: %d%s: %w", massNumber, symbol, nmr.ErrNucleusNotFound)
}

// Resolve parses a nucleus designator such as "13C" and looks it up.
func (t *Table) Resolve(nucleus string) (Entry, error) {
	element, mass, err := ParseNucleus(nucleus)
	if err != nil {
		return Entry{}, err
	}
	return t.Lookup(element, mass)
}

// DefaultIsotope picks the representative isotope of an element.
//
// An element with a single known isotope returns it unconditionally.
// Otherwise the most abundant isotope is returned, restricted to spin >= 1
// when requireSpinAtLeastOne is set (quadrupolar couplings need such a nucleus).
func (t *Table) DefaultIsotope(element string, requireSpinAtLeastOne bool) (Entry, error) {
	symbol := CanonicalElement(element)
	entries := t.byElement[symbol]
	switch len(entries) {
	case 0:
		return Entry{}, fmt.Errorf("isotope: unknown element %q: %w", element, nmr.ErrNucleusNotFound)
	case 1:
		return entries[0], nil
	}

	best := -1
	for i, e := range entries {
		if requireSpinAtLeastOne && !e.Spin.Quadrupolar() {
			continue
		}
		if best < 0 || e.NatAbundance > entries[best].NatAbundance {
			best = i
		}
	}
	if best < 0 {
		return Entry{}, fmt.Errorf("isotope: no isotope of %s with spin >= 1: %w", symbol, nmr.ErrNucleusNotFound)
	}
	return entries[best], nil
}

// Elements returns the known element symbols in sorted order.
func (t *Table) Elements() []string {
	out := make([]string, 0, len(t.byElement))
	for symbol := range t.byElement {
		out = append(out, symbol)
	}
	sort.Strings(out)
	return out
}

// Isotopes returns the isotopes of an element ordered by mass number.
func (t *Table) Isotopes(element string) []Entry {
	entries := t.byElement[CanonicalElement(element)]
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}
