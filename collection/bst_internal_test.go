package collection

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// checkOrder 校验左子树全部小于节点，右子树全部大于等于节点
func checkOrder[T any](t *testing.T, tree *BinarySearchTree[T], node *bstNode[T]) {
	t.Helper()
	if node == nil {
		return
	}
	walk(node.left, func(n *bstNode[T]) {
		assert.Negative(t, tree.compare(n.data, node.data), "left %v under %v", n.data, node.data)
	})
	walk(node.right, func(n *bstNode[T]) {
		assert.GreaterOrEqual(t, tree.compare(n.data, node.data), 0, "right %v under %v", n.data, node.data)
	})
	if node.left != nil {
		assert.Same(t, node, node.left.up)
	}
	if node.right != nil {
		assert.Same(t, node, node.right.up)
	}
	checkOrder(t, tree, node.left)
	checkOrder(t, tree, node.right)
}

func walk[T any](node *bstNode[T], visit func(*bstNode[T])) {
	if node == nil {
		return
	}
	visit(node)
	walk(node.left, visit)
	walk(node.right, visit)
}

func TestBinarySearchTree_OrderInvariant(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	tree := NewBinarySearchTree[int]()
	for i := 0; i < 500; i++ {
		tree.InsertAll(r.Intn(100))
	}
	require.Equal(t, 500, tree.Size())
	assert.Nil(t, tree.root.up)
	checkOrder(t, tree, tree.root)
}

func TestBinarySearchTree_Shape(t *testing.T) {
	tree := NewBinarySearchTree[int]()
	tree.InsertAll(10, 5, 15, 2, 7)

	require.NotNil(t, tree.root)
	assert.Equal(t, 10, tree.root.data)
	assert.Equal(t, 5, tree.root.left.data)
	assert.Equal(t, 15, tree.root.right.data)
	assert.Equal(t, 2, tree.root.left.left.data)
	assert.Equal(t, 7, tree.root.left.right.data)
}

func TestBinarySearchTree_TiesGoRight(t *testing.T) {
	tree := NewBinarySearchTree[int]()
	tree.InsertAll(5, 5, 5)

	assert.Nil(t, tree.root.left)
	require.NotNil(t, tree.root.right)
	assert.Nil(t, tree.root.right.left)
	require.NotNil(t, tree.root.right.right)
	assert.Same(t, tree.root.right, tree.root.right.right.up)
}
