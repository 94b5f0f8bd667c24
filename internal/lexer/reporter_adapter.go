package lexer

import (
	"burnish/internal/diag"
	"burnish/internal/source"
)

// ReporterAdapter адаптирует Reporter к diag.Bag.
// Лексические находки не останавливают форматирование, поэтому Warning.
type ReporterAdapter struct {
	Bag *diag.Bag
}

func (r *ReporterAdapter) Report(kind string, sp source.Span, msg string) {
	code := diag.UnknownCode
	switch kind {
	case "unknown-char":
		code = diag.LexUnknownChar
	case "unterminated-string":
		code = diag.LexUnterminatedString
	case "unterminated-block-comment":
		code = diag.LexUnterminatedBlockComment
	}
	r.Bag.Add(diag.Diagnostic{
		Severity: diag.SevWarning,
		Code:     code,
		Message:  msg,
		Primary:  sp,
	})
}
