// Package vbrace rewrites brace-optional control constructs into an
// internally braced, semicolon-terminated form.
//
// Назначение: дать последующим проходам (отступы, переносы) единообразный
// сигнал «блок/конец стейтмента» для языков, где фигурные скобки у if/else/
// for/while/do и у тел функций необязательны, а стейтмент завершается
// переводом строки.
// Не делает: полного разбора грамматики, удаления реальных токенов, вывода.
// Зависимости: internal/chunk.
//
// Порядок проходов фиксирован: Prescan → AddVirtualSemicolons → ScrubVSemi.
package vbrace
