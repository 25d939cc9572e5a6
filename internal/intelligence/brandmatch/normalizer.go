// Package brandmatch implements brand mention extraction: lexical
// normalization, the in-memory variation index, and the n-gram extractor that
// resolves listing text to canonical brands.
package brandmatch

import (
	"strings"
	"unicode"
)

// leetRunes maps the common leetspeak substitutions counterfeiters use to
// dodge exact-match filters.  Applied only to tokens that also contain
// letters, so plain numbers ("2024", "501") survive untouched.
var leetRunes = map[rune]rune{
	'0': 'o',
	'1': 'i',
	'3': 'e',
	'4': 'a',
	'5': 's',
	'7': 't',
	'8': 'b',
	'@': 'a',
	'$': 's',
	'!': 'i',
}

// Token is one normalized word with its position in the normalized text.
type Token struct {
	Text  string
	Start int // byte offset in the normalized string
	End   int
}

// Normalize lowercases, strips punctuation to spaces, folds leetspeak inside
// letter-bearing tokens, and collapses runs of whitespace to single spaces.
// The output is the canonical form every index key and every lookup goes
// through; both sides must use the same fold or matches silently miss.
func Normalize(s string) string {
	toks := Tokenize(s)
	parts := make([]string, len(toks))
	for i, t := range toks {
		parts[i] = t.Text
	}
	return strings.Join(parts, " ")
}

// Tokenize normalizes s and returns its tokens with byte spans valid in the
// string Normalize(s) would return.
func Tokenize(s string) []Token {
	var toks []Token
	var b strings.Builder
	offset := 0

	flush := func() {
		if b.Len() == 0 {
			return
		}
		text := foldLeet(b.String())
		b.Reset()
		if text == "" {
			return
		}
		toks = append(toks, Token{Text: text, Start: offset, End: offset + len(text)})
		offset += len(text) + 1 // joined by single spaces
	}

	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case isLeetSymbol(r):
			b.WriteRune(r)
		default:
			flush()
		}
	}
	flush()
	return toks
}

func isLeetSymbol(r rune) bool {
	switch r {
	case '@', '$', '!':
		return true
	}
	return false
}

// foldLeet applies leetspeak substitutions to a lowercased token.  Symbol
// runes at the token edges are punctuation ("nike!", "$50") and are trimmed;
// only interior occurrences are substitutions ("n!ke").  Tokens without any
// letter keep their digits so "2024" survives.
func foldLeet(tok string) string {
	tok = strings.TrimFunc(tok, isLeetSymbol)
	if tok == "" {
		return ""
	}

	hasLetter := false
	for _, r := range tok {
		if unicode.IsLetter(r) || isLeetSymbol(r) {
			hasLetter = true
			break
		}
	}
	if !hasLetter {
		return tok
	}

	var b strings.Builder
	b.Grow(len(tok))
	for _, r := range tok {
		if sub, ok := leetRunes[r]; ok {
			b.WriteRune(sub)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

//Personal.AI order the ending
