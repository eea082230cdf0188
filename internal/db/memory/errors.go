package memory

import "errors"

// Ошибки хранилища. Репозитории переводят их в repositories.ErrNotFound / ErrDuplicateKey.
var (
	ErrNotFound     = errors.New("memory: key not found")
	ErrDuplicateKey = errors.New("memory: key already exists")
)
