package memory

import (
	"context"
	"sync"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// MStorage потокобезопасное key/value хранилище. Значения хранятся сериализованными в json,
// поэтому наружу всегда отдаются копии.
type MStorage struct {
	data map[string][]byte
	m    sync.RWMutex
}

func NewMemStorage() *MStorage {
	return &MStorage{
		data: make(map[string][]byte),
	}
}

func (m *MStorage) Len() int {
	m.m.RLock()
	defer m.m.RUnlock()

	return len(m.data)
}

// SetOptions опции записи.
type SetOptions struct {
	overwrite bool
}

// WithOverwrite разрешает перезапись существующего ключа.
func WithOverwrite() func(*SetOptions) {
	return func(o *SetOptions) {
		o.overwrite = true
	}
}

func Get[T any](ctx context.Context, key string, m *MStorage) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err //nolint:wrapcheck
	}

	m.m.RLock()
	defer m.m.RUnlock()

	val, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	var result T
	if err := json.Unmarshal(val, &result); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal json by key `%s`", key)
	}
	return &result, nil
}

// Set Сохраняет новую пару ключ/значение. Без WithOverwrite ключ обязан быть уникальным,
// иначе вернется ошибка ErrDuplicateKey. Проверка и запись выполняются под одной блокировкой.
func Set[T any](ctx context.Context, key string, val *T, m *MStorage, opts ...func(*SetOptions)) error {
	if err := ctx.Err(); err != nil {
		return err //nolint:wrapcheck
	}

	var options SetOptions
	for _, opt := range opts {
		opt(&options)
	}

	bytes, err := json.Marshal(val)
	if err != nil {
		return errors.Wrapf(err, "failed to marshal json for object `%+v`", val)
	}

	m.m.Lock()
	defer m.m.Unlock()

	if _, exist := m.data[key]; exist && !options.overwrite {
		return ErrDuplicateKey
	}
	m.data[key] = bytes
	return nil
}

// Update атомарно изменяет значение по ключу. Если fn вернет ошибку, значение не меняется.
//
// Параметры:
//   - ctx: контекст
//   - key: ключ записи
//   - m: хранилище
//   - fn: функция изменения значения
//
// Возвращает:
//   - *T: новое значение
//   - error: ErrNotFound если ключа нет, либо ошибку fn
func Update[T any](ctx context.Context, key string, m *MStorage, fn func(*T) error) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err //nolint:wrapcheck
	}

	m.m.Lock()
	defer m.m.Unlock()

	raw, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	var val T
	if err := json.Unmarshal(raw, &val); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal json by key `%s`", key)
	}
	if err := fn(&val); err != nil {
		return nil, err
	}
	bytes, err := json.Marshal(&val)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal json for object `%+v`", val)
	}
	m.data[key] = bytes
	return &val, nil
}

func GetAll[T any](ctx context.Context, m *MStorage) ([]T, error) {
	return FilterAll[T](ctx, m, func(T) bool { return true })
}

// FilterAll возвращает все значения, для которых fn вернула true. Порядок не определен.
func FilterAll[T any](ctx context.Context, m *MStorage, fn func(T) bool) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err //nolint:wrapcheck
	}

	m.m.RLock()
	defer m.m.RUnlock()

	var result = make([]T, 0, len(m.data))
	for key, bytes := range m.data {
		var val T
		if err := json.Unmarshal(bytes, &val); err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal json by key `%s`", key)
		}
		if fn(val) {
			result = append(result, val)
		}
	}
	return result, nil
}

// Snapshot возвращает копию всех данных хранилища.
func (m *MStorage) Snapshot() map[string]json.RawMessage {
	m.m.RLock()
	defer m.m.RUnlock()

	snap := make(map[string]json.RawMessage, len(m.data))
	for k, v := range m.data {
		snap[k] = append(json.RawMessage(nil), v...)
	}
	return snap
}

// Restore полностью заменяет содержимое хранилища.
func (m *MStorage) Restore(snap map[string]json.RawMessage) {
	data := make(map[string][]byte, len(snap))
	for k, v := range snap {
		data[k] = append([]byte(nil), v...)
	}

	m.m.Lock()
	defer m.m.Unlock()

	m.data = data
}
