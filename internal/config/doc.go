// Package config loads formatter settings from burnish.toml.
//
// Назначение: поиск манифеста вверх по дереву каталогов, разбор TOML,
// значения по умолчанию и валидация.
// Не делает: применения настроек (это internal/driver и internal/layout).
// Зависимости: BurntSushi/toml.
package config
