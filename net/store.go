package net

import (
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"sync"

	"github.com/sooomo/bst/collection"
	"github.com/sooomo/bst/id"
)

var (
	ErrTreeNotFound = errors.New("tree not found")
	ErrTooManyTrees = errors.New("too many trees")
	ErrUnknownKind  = errors.New("unknown tree kind")
	ErrValueType    = errors.New("value does not match tree kind")
)

type Kind string

const (
	KindInt    Kind = "int"
	KindString Kind = "string"
)

func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindInt, KindString:
		return Kind(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// HostedTree 屏蔽元素类型，供 http 层按 Kind 统一处理
type HostedTree interface {
	Kind() Kind
	// Insert 接收解码后的载荷值，nil 表示缺失值
	Insert(v any) error
	// ContainsRaw 接收路径参数中的原始字符串
	ContainsRaw(raw string) (bool, error)
	Size() int
	IsEmpty() bool
	Clear()
}

type typedTree[T cmp.Ordered] struct {
	*collection.SyncTree[T]
	kind    Kind
	convert func(v any) (T, error)
	parse   func(raw string) (T, error)
}

func (t *typedTree[T]) Kind() Kind { return t.kind }

func (t *typedTree[T]) Insert(v any) error {
	if v == nil {
		return t.SyncTree.Insert(nil)
	}
	val, err := t.convert(v)
	if err != nil {
		return err
	}
	return t.SyncTree.Insert(&val)
}

func (t *typedTree[T]) ContainsRaw(raw string) (bool, error) {
	val, err := t.parse(raw)
	if err != nil {
		return false, err
	}
	return t.SyncTree.Contains(val), nil
}

func newHostedTree(kind Kind) HostedTree {
	switch kind {
	case KindInt:
		return &typedTree[int64]{
			SyncTree: collection.NewSyncTree[int64](collection.NewBinarySearchTree[int64]()),
			kind:     kind,
			convert:  toInt64,
			parse: func(raw string) (int64, error) {
				v, err := strconv.ParseInt(raw, 10, 64)
				if err != nil {
					return 0, fmt.Errorf("%w: %q is not an integer", ErrValueType, raw)
				}
				return v, nil
			},
		}
	case KindString:
		return &typedTree[string]{
			SyncTree: collection.NewSyncTree[string](collection.NewBinarySearchTree[string]()),
			kind:     kind,
			convert: func(v any) (string, error) {
				s, ok := v.(string)
				if !ok {
					return "", fmt.Errorf("%w: want string, got %T", ErrValueType, v)
				}
				return s, nil
			},
			parse: func(raw string) (string, error) { return raw, nil },
		}
	}
	return nil
}

// toInt64 json 解码得到 json.Number，msgpack 解码得到各种宽度的整数
func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, fmt.Errorf("%w: %s is not an integer", ErrValueType, n)
		}
		return i, nil
	case int:
		return int64(n), nil
	case int8:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case uint8:
		return int64(n), nil
	case uint16:
		return int64(n), nil
	case uint32:
		return int64(n), nil
	case uint64:
		if n > math.MaxInt64 {
			return 0, fmt.Errorf("%w: %d overflows int64", ErrValueType, n)
		}
		return int64(n), nil
	case float32:
		return floatToInt64(float64(n))
	case float64:
		return floatToInt64(n)
	}
	return 0, fmt.Errorf("%w: want integer, got %T", ErrValueType, v)
}

func floatToInt64(f float64) (int64, error) {
	if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, fmt.Errorf("%w: %v is not an integer", ErrValueType, f)
	}
	return int64(f), nil
}

// TreeStore 内存中的树表，map 本身由 mu 保护，每棵树自带锁
type TreeStore struct {
	mu       sync.RWMutex
	trees    map[string]HostedTree
	maxTrees int
}

func NewTreeStore(maxTrees int) *TreeStore {
	return &TreeStore{
		trees:    make(map[string]HostedTree),
		maxTrees: maxTrees,
	}
}

func (s *TreeStore) Create(kind Kind) (string, HostedTree, error) {
	if _, err := ParseKind(string(kind)); err != nil {
		return "", nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.trees) >= s.maxTrees {
		return "", nil, ErrTooManyTrees
	}
	treeId := id.NewUUIDWithoutDash()
	tree := newHostedTree(kind)
	s.trees[treeId] = tree
	return treeId, tree, nil
}

func (s *TreeStore) Get(treeId string) (HostedTree, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tree, ok := s.trees[treeId]
	if !ok {
		return nil, ErrTreeNotFound
	}
	return tree, nil
}

func (s *TreeStore) Remove(treeId string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.trees[treeId]; !ok {
		return ErrTreeNotFound
	}
	delete(s.trees, treeId)
	return nil
}

func (s *TreeStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.trees)
}
