// Package sl содержит мелкие помощники для структурированного логгера slog:
// единообразные атрибуты для ошибок и идентификаторов пользователя.
package sl

import "log/slog"

// Err возвращает slog.Attr с ключом "error" и текстом ошибки.
//
// Пример:
//
//	log.Error("failed to append ledger entry", sl.Err(err))
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}

// UID возвращает slog.Attr с ключом "user_uid". Используется, чтобы
// идентификатор пользователя писался в лог всегда под одним именем.
func UID(uid string) slog.Attr {
	return slog.Attr{
		Key:   "user_uid",
		Value: slog.StringValue(uid),
	}
}
