// Package keylock сериализует операции по целочисленному ключу внутри процесса.
// Для каждого ключа хранится отдельный семафор; записи удаляются, когда их никто не держит.
package keylock

import (
	"context"
	"sync"
)

type entry struct {
	sem  chan struct{}
	refs int
}

// KeyLock набор мьютексов, индексированных ключом
type KeyLock struct {
	mu      sync.Mutex
	entries map[int64]*entry
}

// New создает пустой KeyLock
func New() *KeyLock {
	return &KeyLock{entries: make(map[int64]*entry)}
}

// Acquire захватывает блокировку ключа или возвращает ошибку контекста
// Вызывающий обязан вызвать release ровно один раз
func (l *KeyLock) Acquire(ctx context.Context, key int64) (release func(), err error) {
	e := l.ref(key)

	select {
	case e.sem <- struct{}{}:
	case <-ctx.Done():
		l.unref(key, e)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-e.sem
			l.unref(key, e)
		})
	}, nil
}

// Len количество ключей, по которым сейчас есть владельцы или ожидающие
func (l *KeyLock) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

func (l *KeyLock) ref(key int64) *entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key]
	if !ok {
		e = &entry{sem: make(chan struct{}, 1)}
		l.entries[key] = e
	}
	e.refs++
	return e
}

func (l *KeyLock) unref(key int64, e *entry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e.refs--
	if e.refs == 0 {
		delete(l.entries, key)
	}
}
