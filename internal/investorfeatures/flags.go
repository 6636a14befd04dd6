// Package investorfeatures computes the three boolean flags derived
// directly from a raw investor name, independent of firm or template:
// has_german_char, has_nfkd_normalized and has_nickname.
package investorfeatures

import (
	"strings"

	"emailguess/internal/normalize"
)

// Flags holds the three name-level boolean signals consumed by the
// feature-matrix builder and the engine's standard/complex template class
// selection.
type Flags struct {
	HasGermanChar     bool
	HasNFKDNormalized bool
	HasNickname       bool
}

// Extract computes Flags from a raw, uncleaned full name. The caller's
// decomposition step may normalise the name further; these flags are
// deliberately computed from the raw input so that they reflect what the
// original text looked like, not what it was reduced to.
//
// HasNFKDNormalized is computed against the plain lowercased input, not
// against the German-substituted string. An earlier implementation of this
// model computed it after German substitution, which masked a
// Germanic-only name (e.g. "müller" -> "mueller" has nothing left for NFKD
// to decompose) as not needing NFKD even though the raw input was
// non-ASCII; this version does not reproduce that quirk.
func Extract(rawName string) Flags {
	lower := normalize.ToLower(rawName)
	germanic := normalize.ReplaceGermanChars(lower)

	return Flags{
		HasGermanChar:     germanic != lower,
		HasNFKDNormalized: normalize.NFKDNormalize(lower) != lower,
		HasNickname:       hasNickname(lower),
	}
}

func hasNickname(lowerName string) bool {
	first := lowerName
	if idx := strings.IndexByte(lowerName, ' '); idx >= 0 {
		first = lowerName[:idx]
	}
	_, ok := NicknameMappings[first]
	return ok
}
