package collection

import (
	"cmp"
	"errors"
	"fmt"

	"github.com/sooomo/bst"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
)

var _ bst.SortedCollection[int] = (*BinarySearchTree[int])(nil)

type bstNode[T any] struct {
	data  T
	left  *bstNode[T]
	right *bstNode[T]
	up    *bstNode[T] // 父节点，仅在挂载时设置
}

// BinarySearchTree 非平衡二叉搜索树。相等的元素放在右子树。
// 非并发安全，多协程共享时使用 SyncTree。
type BinarySearchTree[T any] struct {
	root    *bstNode[T]
	compare func(a, b T) int
}

func NewBinarySearchTree[T cmp.Ordered]() *BinarySearchTree[T] {
	return &BinarySearchTree[T]{compare: cmp.Compare[T]}
}

// NewBinarySearchTreeFunc 使用自定义的三路比较函数：a<b 返回负数，a==b 返回0，a>b 返回正数
func NewBinarySearchTreeFunc[T any](compare func(a, b T) int) *BinarySearchTree[T] {
	if compare == nil {
		panic("collection: nil compare func")
	}
	return &BinarySearchTree[T]{compare: compare}
}

func (t *BinarySearchTree[T]) Insert(data *T) error {
	if data == nil {
		return fmt.Errorf("%w: cannot insert nil data", ErrInvalidArgument)
	}
	newNode := &bstNode[T]{data: *data}
	if t.root == nil {
		t.root = newNode
		return nil
	}

	// 退化输入（如递增序列）会让树高等于元素个数，这里用循环代替递归
	subtree := t.root
	for {
		if t.compare(newNode.data, subtree.data) < 0 {
			if subtree.left == nil {
				subtree.left = newNode
				newNode.up = subtree
				return nil
			}
			subtree = subtree.left
		} else {
			if subtree.right == nil {
				subtree.right = newNode
				newNode.up = subtree
				return nil
			}
			subtree = subtree.right
		}
	}
}

func (t *BinarySearchTree[T]) InsertAll(vals ...T) {
	for i := range vals {
		_ = t.Insert(&vals[i])
	}
}

func (t *BinarySearchTree[T]) Contains(query T) bool {
	node := t.root
	for node != nil {
		c := t.compare(query, node.data)
		if c == 0 {
			return true
		} else if c < 0 {
			node = node.left
		} else {
			node = node.right
		}
	}
	return false
}

func (t *BinarySearchTree[T]) Size() int {
	if t.root == nil {
		return 0
	}
	size := 0
	stack := []*bstNode[T]{t.root}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		size++
		if node.left != nil {
			stack = append(stack, node.left)
		}
		if node.right != nil {
			stack = append(stack, node.right)
		}
	}
	return size
}

func (t *BinarySearchTree[T]) IsEmpty() bool {
	return t.root == nil
}

func (t *BinarySearchTree[T]) Clear() {
	t.root = nil
}
