package query

import "strings"

// Modifier characters recognised at the start of a filter token.
const (
	ModNegate        = '!'
	ModExact         = '"'
	ModCaseSensitive = '.'
)

// Token is a compiled filter token. The zero Token matches everything.
type Token struct {
	Text          string
	Negate        bool
	Exact         bool
	CaseSensitive bool

	// folded is the lowercased Text, set by ParseToken.
	folded   string
	compiled bool
}

// ParseToken strips the leading run of modifier characters from raw and
// records which modifiers were present. Repeated modifiers are no-ops.
func ParseToken(raw string) Token {
	var tok Token

	i := 0
loop:
	for ; i < len(raw); i++ {
		switch raw[i] {
		case ModNegate:
			tok.Negate = true
		case ModExact:
			tok.Exact = true
		case ModCaseSensitive:
			tok.CaseSensitive = true
		default:
			break loop
		}
	}

	tok.Text = raw[i:]
	tok.folded = strings.ToLower(tok.Text)
	tok.compiled = true
	return tok
}

// Match reports whether candidate satisfies the token. Without modifiers it
// is a case-insensitive substring test.
func (t Token) Match(candidate string) bool {
	text := t.Text
	if !t.CaseSensitive {
		candidate = strings.ToLower(candidate)
		text = t.foldedText()
	}

	var ok bool
	if t.Exact {
		ok = candidate == text
	} else {
		ok = strings.Contains(candidate, text)
	}

	if t.Negate {
		return !ok
	}
	return ok
}

// foldedText returns the lowercased Text. Tokens built as literals rather
// than through ParseToken are folded on demand.
func (t Token) foldedText() string {
	if t.compiled {
		return t.folded
	}
	return strings.ToLower(t.Text)
}

// String renders the token back in its canonical form: modifiers in the
// order '!', '"', '.' followed by the text.
func (t Token) String() string {
	var b strings.Builder
	if t.Negate {
		b.WriteByte(ModNegate)
	}
	if t.Exact {
		b.WriteByte(ModExact)
	}
	if t.CaseSensitive {
		b.WriteByte(ModCaseSensitive)
	}
	b.WriteString(t.Text)
	return b.String()
}

// Matches parses token and tests candidate against it.
func Matches(candidate, token string) bool {
	return ParseToken(token).Match(candidate)
}
