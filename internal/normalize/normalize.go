// Package normalize provides the pure string-normalisation primitives the
// rest of the prediction engine builds on: ASCII lowering, Germanic
// transliteration, Unicode NFKD decomposition with ASCII stripping, and
// delimiter tokenisation.
package normalize

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// germanTable is the fixed, ordered replacement table for Germanic
// characters. Order matters only in that each entry is matched
// independently against every byte position; there is no overlap between
// the source runes so a single left-to-right pass suffices.
var germanTable = []struct {
	from string
	to   string
}{
	{"ü", "ue"},
	{"ö", "oe"},
	{"ä", "ae"},
	{"ß", "ss"},
	{"ø", "o"},
	{"å", "aa"},
}

// ToLower performs ASCII-only lowering: bytes 'A'-'Z' are folded to 'a'-'z',
// every other byte (including the individual bytes of multi-byte UTF-8
// sequences) is passed through unchanged.
func ToLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

// ReplaceGermanChars performs a greedy left-to-right replacement of the
// fixed Germanic character table. Bytes that do not match any entry are
// copied through unchanged.
func ReplaceGermanChars(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for len(s) > 0 {
		matched := false
		for _, entry := range germanTable {
			if strings.HasPrefix(s, entry.from) {
				b.WriteString(entry.to)
				s = s[len(entry.from):]
				matched = true
				break
			}
		}
		if matched {
			continue
		}
		r := []rune(s)[0]
		b.WriteRune(r)
		s = s[len(string(r)):]
	}
	return b.String()
}

// NFKDNormalize applies Unicode NFKD decomposition and strips every
// non-ASCII byte from the result. If the decomposition step panics (the
// only failure mode golang.org/x/text/unicode/norm exposes for malformed
// input), the original string is returned unchanged — callers must treat
// this as a potential false negative on the has_nfkd_normalized flag, per
// the engine's documented fallback behaviour.
func NFKDNormalize(s string) (result string) {
	defer func() {
		if recover() != nil {
			result = s
		}
	}()

	decomposed := norm.NFKD.String(s)

	var b strings.Builder
	b.Grow(len(decomposed))
	for i := 0; i < len(decomposed); i++ {
		c := decomposed[i]
		if c < 0x80 {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Split tokenises s on delim, collapsing runs of the delimiter and dropping
// leading/trailing empty tokens.
func Split(s string, delim byte) []string {
	raw := strings.Split(s, string(delim))
	out := make([]string, 0, len(raw))
	for _, tok := range raw {
		if tok != "" {
			out = append(out, tok)
		}
	}
	return out
}
