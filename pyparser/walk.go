package pyparser

import "github.com/ChainSafe/pysniff/common/lifo"

// Inspect traverses the tree rooted at root in pre-order. When fn returns
// false the children of that node are skipped.
func Inspect(root Node, fn func(Node) bool) {
	if root == nil {
		return
	}
	var stack lifo.Stack[Node]
	stack.Push(root)
	for !stack.IsEmpty() {
		n, _ := stack.Pop()
		if n == nil || !fn(n) {
			continue
		}
		stack.PushAll(n.Children())
	}
}

// Find returns the first node in pre-order for which match is true, or nil.
func Find(root Node, match func(Node) bool) Node {
	var found Node
	Inspect(root, func(n Node) bool {
		if found != nil {
			return false
		}
		if match(n) {
			found = n
			return false
		}
		return true
	})
	return found
}
