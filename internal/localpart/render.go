// Package localpart renders a candidate template's token sequence against
// a decomposed name into an email local-part.
package localpart

import (
	"strings"

	"emailguess/internal/metadata"
	"emailguess/internal/namedecomp"
	"emailguess/internal/normalize"
)

// Render concatenates the rendering of each token in tokens against name.
// ok is false if any non-separator token's index is out of range for its
// name group — the template is "not applicable" to this name and must be
// skipped by the caller, never treated as an error.
func Render(tokens []metadata.TemplateToken, name namedecomp.DecomposedName) (localPart string, ok bool) {
	var b strings.Builder

	for _, tok := range tokens {
		if tok.IsSeparator() {
			b.WriteString(tok.Separator)
			continue
		}

		names := name.Names(tok.Group)
		if tok.Index >= len(names) {
			return "", false
		}

		value := names[tok.Index]
		if tok.UseInitial && len(value) > 0 {
			value = string([]rune(value)[0])
		}
		b.WriteString(normalize.ToLower(value))
	}

	return b.String(), true
}
