package collection

import (
	"sync"

	"github.com/sooomo/bst"
)

var _ bst.SortedCollection[string] = (*SyncTree[string])(nil)

// SyncTree 用读写锁包装一个有序集合，写操作独占，读操作共享
type SyncTree[T any] struct {
	mu    sync.RWMutex
	inner bst.SortedCollection[T]
}

func NewSyncTree[T any](inner bst.SortedCollection[T]) *SyncTree[T] {
	return &SyncTree[T]{inner: inner}
}

func (s *SyncTree[T]) Insert(data *T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Insert(data)
}

func (s *SyncTree[T]) InsertAll(vals ...T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inner.InsertAll(vals...)
}

func (s *SyncTree[T]) Contains(query T) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inner.Contains(query)
}

func (s *SyncTree[T]) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inner.Size()
}

func (s *SyncTree[T]) IsEmpty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inner.IsEmpty()
}

func (s *SyncTree[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inner.Clear()
}
