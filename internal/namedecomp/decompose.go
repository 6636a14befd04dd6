// Package namedecomp splits a cleaned full name into first, middle and
// last name token vectors, applying the honorific/suffix stoplist and the
// surname-particle heuristic.
package namedecomp

import (
	"strings"

	"emailguess/internal/normalize"
)

// honorifics are stripped from the front and back of the token list.
var honorifics = map[string]bool{
	"jr": true, "sr": true, "ii": true, "iii": true, "iv": true, "v": true,
	"phd": true, "md": true, "esq": true, "dr": true, "mr": true, "mrs": true,
	"ms": true, "prof": true, "sir": true,
}

// particles identify surname-particle tokens: the first one found, scanning
// left-to-right through the remaining tokens, pulls itself and everything
// after it into the last-name vector.
var particles = map[string]bool{
	"santa": true, "san": true, "st": true, "von": true, "van": true,
	"de": true, "der": true, "dello": true, "vander": true, "del": true,
	"de la": true, "vom": true, "dela": true, "de los": true, "dos": true,
	"la": true, "los": true, "le": true, "du": true, "di": true, "da": true,
	"mac": true, "al": true, "abu": true, "bin": true, "ibn": true,
	"della": true,
}

// trailingCut is the set of characters dropped from the end of the cleaned
// string before tokenisation.
const trailingCut = ".,;:!?}]"

// pasteNoise is stripped anywhere in the string.
const pasteNoise = `"'<>`

// DecomposedName is the parsed-name vector triple described by the data
// model: three ordered sequences of tokens.
type DecomposedName struct {
	FirstNames  []string
	MiddleNames []string
	LastNames   []string
}

// IsEmpty reports whether every component is empty — the zero-token case.
func (d DecomposedName) IsEmpty() bool {
	return len(d.FirstNames) == 0 && len(d.MiddleNames) == 0 && len(d.LastNames) == 0
}

// HasMultipleFirsts reports whether more than one first-name token exists.
func (d DecomposedName) HasMultipleFirsts() bool { return len(d.FirstNames) > 1 }

// HasMiddle reports whether at least one middle-name token exists.
func (d DecomposedName) HasMiddle() bool { return len(d.MiddleNames) > 0 }

// HasMultipleMiddles reports whether more than one middle-name token
// exists.
func (d DecomposedName) HasMultipleMiddles() bool { return len(d.MiddleNames) > 1 }

// HasMultipleLasts reports whether more than one last-name token exists.
func (d DecomposedName) HasMultipleLasts() bool { return len(d.LastNames) > 1 }

// Names returns the token vector for the given group, for use by the
// local-part resolver which is generic over group.
func (d DecomposedName) Names(group Group) []string {
	switch group {
	case First:
		return d.FirstNames
	case Middle:
		return d.MiddleNames
	case Last:
		return d.LastNames
	default:
		return nil
	}
}

// Group identifies which name-component vector a template token or feature
// refers to.
type Group int

const (
	First Group = iota
	Middle
	Last
)

// Decompose runs the full name-decomposition pipeline of the engine: trim,
// lowercase, Germanic substitution, NFKD+ASCII strip, trailing-char cut,
// paste-noise strip, whitespace collapse, tokenise, honorific strip,
// hyphenated-first-name split, and particle-based last-name detection.
//
// Empty input, or input that reduces to zero tokens after cleaning, yields
// an all-empty DecomposedName; no error is raised.
func Decompose(raw string) DecomposedName {
	s := strings.TrimSpace(raw)
	s = normalize.ToLower(s)
	s = normalize.ReplaceGermanChars(s)
	s = normalize.NFKDNormalize(s)

	s = strings.TrimRight(s, trailingCut)
	s = stripPasteNoise(s)
	s = collapseWhitespace(s)

	tokens := normalize.Split(s, ' ')
	cleaned := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if t := strings.TrimRight(tok, trailingCut); t != "" {
			cleaned = append(cleaned, t)
		}
	}
	tokens = stripHonorifics(cleaned)

	if len(tokens) == 0 {
		return DecomposedName{}
	}

	firsts, rest := splitFirstNames(tokens)
	if len(rest) == 0 {
		return DecomposedName{FirstNames: firsts}
	}

	if idx := findParticle(rest); idx >= 0 {
		return DecomposedName{
			FirstNames:  firsts,
			MiddleNames: nilIfEmpty(rest[:idx]),
			LastNames:   nilIfEmpty(rest[idx:]),
		}
	}

	last := rest[len(rest)-1]
	middle := rest[:len(rest)-1]
	return DecomposedName{
		FirstNames:  firsts,
		MiddleNames: nilIfEmpty(middle),
		LastNames:   []string{last},
	}
}

// nilIfEmpty copies s, returning nil instead of a non-nil empty slice so
// that DecomposedName values compare equal regardless of which code path
// produced an empty component.
func nilIfEmpty(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

func stripPasteNoise(s string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(pasteNoise, r) {
			return -1
		}
		return r
	}, s)
}

func collapseWhitespace(s string) string {
	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}

func stripHonorifics(tokens []string) []string {
	start := 0
	end := len(tokens)
	for start < end && honorifics[tokens[start]] {
		start++
	}
	for end > start && honorifics[tokens[end-1]] {
		end--
	}
	return tokens[start:end]
}

// splitFirstNames handles the hyphenated-first-token rule: if the first
// remaining token contains '-', each hyphen-delimited part becomes its own
// first name; otherwise the first token alone is the sole first name.
func splitFirstNames(tokens []string) (firsts []string, rest []string) {
	first := tokens[0]
	if strings.Contains(first, "-") {
		parts := normalize.Split(first, '-')
		return parts, tokens[1:]
	}
	return []string{first}, tokens[1:]
}

// findParticle scans tokens left-to-right for the first particle match,
// checking two-word particles ("de la", "de los") before single-word ones
// so they are not shadowed by their first word alone.
func findParticle(tokens []string) int {
	for i, tok := range tokens {
		if i+1 < len(tokens) {
			two := tok + " " + tokens[i+1]
			if particles[two] {
				return i
			}
		}
		if particles[tok] {
			return i
		}
	}
	return -1
}
