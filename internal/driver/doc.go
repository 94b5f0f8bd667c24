// Package driver runs the formatting pipeline over files and directories.
//
// Назначение: сбор исходников (расширения + exclude-глобы), конвейер
// лексер -> виртуализация -> скраб -> squeeze -> рендер, параллельный обход,
// дисковый кэш результатов, режимы check/stdout/write.
// Не делает: разбора флагов CLI и вывода в терминал (это cmd/burnish).
// Зависимости: internal/{chunk,config,diag,layout,lexer,preproc,source,vbrace},
// doublestar, errgroup, msgpack.
package driver
