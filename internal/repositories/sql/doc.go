// Package sql предоставляет реализацию репозиториев пользователей и ссылок поверх gorm (SQLite).
//
// Подключение открывается с gorm.Config{TranslateError: true}, поэтому ошибки драйвера приходят
// уже как ошибки gorm и приводятся к ошибкам уровня репозитория функцией ConvertErrorType:
//   - gorm.ErrDuplicatedKey -> repositories.ErrDuplicateKey
//   - gorm.ErrRecordNotFound -> repositories.ErrNotFound
//   - другие ошибки -> repositories.ErrUnknown
package sql
