package memstore

import (
	"errors"
	"fmt"

	"github.com/fsdevblog/linkly/internal/db/memory"
	"github.com/fsdevblog/linkly/internal/repositories"
)

// convertErrorType конвертирует ошибки хранилища в памяти в ошибки уровня репозитория.
// Исходный текст ошибки сохраняется для логов.
func convertErrorType(err error) error {
	if err == nil {
		return nil
	}

	var nativeErr error
	switch {
	case errors.Is(err, memory.ErrDuplicateKey):
		nativeErr = repositories.ErrDuplicateKey
	case errors.Is(err, memory.ErrNotFound):
		nativeErr = repositories.ErrNotFound
	default:
		nativeErr = repositories.ErrUnknown
	}

	return fmt.Errorf("%w: %s", nativeErr, err.Error())
}
