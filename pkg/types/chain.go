// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// Chain identifies one of the two biomolecule subunits reported as an
// independent section of the source document.
type Chain string

const (
	ChainHeavy Chain = "Heavy"
	ChainLight Chain = "Light"
)

// Chains lists the chains in the order the report processes them.
var Chains = []Chain{ChainHeavy, ChainLight}

// Prefix returns the single-letter lowercase prefix used for chain-qualified
// filenames and template keys ("h" or "l").
func (c Chain) Prefix() string {
	switch c {
	case ChainHeavy:
		return "h"
	case ChainLight:
		return "l"
	}
	return ""
}

// Valid reports whether c is one of the known chains.
func (c Chain) Valid() bool {
	return c == ChainHeavy || c == ChainLight
}

// ParseChain maps a heading suffix or a flag value ("Heavy", "H", "light")
// to a Chain.
func ParseChain(s string) (Chain, error) {
	switch s {
	case "Heavy", "heavy", "H", "h":
		return ChainHeavy, nil
	case "Light", "light", "L", "l":
		return ChainLight, nil
	}
	return "", fmt.Errorf("unknown chain %q", s)
}
