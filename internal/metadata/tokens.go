package metadata

import (
	"strconv"
	"strings"

	"emailguess/internal/apperrors"
	"emailguess/internal/namedecomp"
)

// TemplateToken is either a separator literal or a (group, index, flags)
// descriptor for one position in a candidate template's local-part
// rendering sequence. If Separator is non-empty every other field is
// meaningless — a token never renders a name component and a separator at
// once.
type TemplateToken struct {
	Separator string

	Group              namedecomp.Group
	Index              int
	UseOriginal        bool
	UseNFKD            bool
	UseTranslit        bool
	UseNickname        bool
	UseSurnameParticle bool
	UseInitial         bool
}

// IsSeparator reports whether this token renders a literal separator
// rather than a name component.
func (t TemplateToken) IsSeparator() bool { return t.Separator != "" }

var singleCharSeparators = map[string]bool{".": true, "_": true, "-": true}

var groupPrefixes = map[string]namedecomp.Group{
	"first":  namedecomp.First,
	"middle": namedecomp.Middle,
	"last":   namedecomp.Last,
}

var initialPrefixes = map[string]namedecomp.Group{
	"f": namedecomp.First,
	"m": namedecomp.Middle,
	"l": namedecomp.Last,
}

var flagNames = map[string]string{
	"original": "UseOriginal",
	"nfkd":     "UseNFKD",
	"translit": "UseTranslit",
	"nickname": "UseNickname",
	"surp":     "UseSurnameParticle",
}

// ParseToken parses one token string per the template-token grammar:
//   - a single-character separator ("." "_" "-")
//   - an initial shorthand ("f_N", "m_N", "l_N")
//   - a full component ("first_<flags...>_N", "middle_...", "last_...")
//
// An invalid group, unknown flag, missing index, or non-numeric index is a
// fatal parse error, surfaced as an *apperrors.Error of KindConfiguration.
func ParseToken(s string) (TemplateToken, error) {
	if singleCharSeparators[s] {
		return TemplateToken{Separator: s}, nil
	}

	parts := strings.Split(s, "_")
	if len(parts) < 2 {
		return TemplateToken{}, apperrors.Configuration("BAD_TOKEN", "malformed template token: "+s, nil)
	}

	head := parts[0]
	tail := parts[1:]

	if group, ok := initialPrefixes[head]; ok && len(tail) == 1 {
		idx, err := strconv.Atoi(tail[0])
		if err != nil || idx < 0 {
			return TemplateToken{}, apperrors.Configuration("BAD_TOKEN_INDEX", "non-numeric or negative index in token: "+s, err)
		}
		return TemplateToken{Group: group, Index: idx, UseInitial: true}, nil
	}

	group, ok := groupPrefixes[head]
	if !ok {
		return TemplateToken{}, apperrors.Configuration("BAD_TOKEN_GROUP", "unknown token group in: "+s, nil)
	}

	idxStr := tail[len(tail)-1]
	idx, err := strconv.Atoi(idxStr)
	if err != nil || idx < 0 {
		return TemplateToken{}, apperrors.Configuration("BAD_TOKEN_INDEX", "non-numeric or negative index in token: "+s, err)
	}

	tok := TemplateToken{Group: group, Index: idx}
	for _, flagSeg := range tail[:len(tail)-1] {
		field, ok := flagNames[flagSeg]
		if !ok {
			return TemplateToken{}, apperrors.Configuration("BAD_TOKEN_FLAG", "unknown token flag '"+flagSeg+"' in: "+s, nil)
		}
		switch field {
		case "UseOriginal":
			tok.UseOriginal = true
		case "UseNFKD":
			tok.UseNFKD = true
		case "UseTranslit":
			tok.UseTranslit = true
		case "UseNickname":
			tok.UseNickname = true
		case "UseSurnameParticle":
			tok.UseSurnameParticle = true
		}
	}

	return tok, nil
}

// ParseTokenSequence parses every token in seq in order, stopping at the
// first error.
func ParseTokenSequence(seq []string) ([]TemplateToken, error) {
	tokens := make([]TemplateToken, 0, len(seq))
	for _, s := range seq {
		tok, err := ParseToken(s)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}
