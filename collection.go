package bst

type Collection[T any] interface {
	Size() int
	IsEmpty() bool
	Clear()
}

// SortedCollection 有序集合，元素按比较结果定位
type SortedCollection[T any] interface {
	Collection[T]
	// Insert 插入一个元素，nil 表示缺失值，会被拒绝
	Insert(data *T) error
	InsertAll(vals ...T)
	Contains(query T) bool
}
