// Package pgsql предоставляет реализацию репозиториев пользователей и ссылок для PostgreSQL (pgx).
//
// Все методы репозиториев преобразуют ошибки PostgreSQL в общие ошибки уровня репозитория
// с помощью convertErrType:
//   - uniqueViolationCode (23505) -> repositories.ErrDuplicateKey
//   - pgx.ErrNoRows -> repositories.ErrNotFound
//   - другие ошибки -> repositories.ErrUnknown
package pgsql
