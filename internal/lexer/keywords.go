package lexer

import (
	"golang.org/x/text/unicode/norm"

	"burnish/internal/chunk"
)

// Only the keywords the structural passes care about get dedicated kinds;
// every other word is an ordinary ident.
var keywords = map[string]chunk.Kind{
	"if":      chunk.KwIf,
	"else":    chunk.KwElse,
	"for":     chunk.KwFor,
	"while":   chunk.KwWhile,
	"do":      chunk.KwDo,
	"switch":  chunk.KwSwitch,
	"case":    chunk.KwCase,
	"default": chunk.KwDefault,
	"return":  chunk.KwReturn,
}

// lookupKeyword возвращает тип и bool если это ключевое слово.
// Ключевые слова регистрозависимые — только lowercase версии распознаются.
func lookupKeyword(ident string) (chunk.Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// normalizeIdent brings a non-ASCII ident into NFC form for keyword lookup.
// The chunk text stays as written in the source.
func normalizeIdent(ident string) string {
	for i := 0; i < len(ident); i++ {
		if ident[i] >= 0x80 {
			return norm.NFC.String(ident)
		}
	}
	return ident
}
