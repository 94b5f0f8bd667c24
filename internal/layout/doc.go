// Package layout renders a normalized chunk stream back into source text.
//
// Назначение: отступы по уровню вложенности, схлопывание пустых строк,
// канонические пробелы между токенами, выравнивание хвостовых комментариев.
// Не делает: структурных изменений потока (виртуализация и скраб живут в
// internal/vbrace, нормализация препроцессора в internal/preproc), IO.
// Зависимости: internal/chunk, go-runewidth.
package layout
