// Package repositories содержит общие ошибки слоя хранения. Каждая реализация репозиториев
// обязана приводить ошибки своего драйвера к этим значениям.
package repositories

import "errors"

var (
	ErrNotFound     = errors.New("[repository]: record not found")
	ErrDuplicateKey = errors.New("[repository]: duplicate key")
	ErrUnknown      = errors.New("[repository]: unknown error")
)
