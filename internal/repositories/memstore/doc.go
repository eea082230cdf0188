// Package memstore предоставляет реализацию репозиториев пользователей и ссылок для in-memory хранилища.
//
// Все методы репозиториев преобразуют внутренние ошибки хранилища в общие ошибки уровня репозитория
// с помощью convertErrorType:
//   - memory.ErrDuplicateKey -> repositories.ErrDuplicateKey
//   - memory.ErrNotFound -> repositories.ErrNotFound
//   - другие ошибки -> repositories.ErrUnknown
//
// Уникальность email и пары (владелец, url) обеспечивается мьютексом репозитория:
// проверка и вставка выполняются атомарно.
package memstore
