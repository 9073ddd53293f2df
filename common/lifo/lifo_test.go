package lifo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStackOrder(t *testing.T) {
	var stack Stack[int]
	stack.Push(1)
	stack.Push(2)
	stack.Push(3)
	assert.Equal(t, 3, stack.Len())

	for _, want := range []int{3, 2, 1} {
		val, ok := stack.Pop()
		assert.True(t, ok)
		assert.Equal(t, want, val)
	}
	assert.True(t, stack.IsEmpty())
}

func TestPushAllKeepsFirstOnTop(t *testing.T) {
	var stack Stack[string]
	stack.Push("bottom")
	stack.PushAll([]string{"a", "b", "c"})

	var popped []string
	for !stack.IsEmpty() {
		val, _ := stack.Pop()
		popped = append(popped, val)
	}
	assert.Equal(t, []string{"a", "b", "c", "bottom"}, popped)
}

func TestPeekDoesNotRemove(t *testing.T) {
	var stack Stack[string]
	stack.Push("A")
	stack.Push("B")

	val, ok := stack.Peek()
	assert.True(t, ok)
	assert.Equal(t, "B", val)
	assert.Equal(t, 2, stack.Len())
}

func TestEmptyStack(t *testing.T) {
	var stack Stack[rune]

	_, ok := stack.Pop()
	assert.False(t, ok)
	_, ok = stack.Peek()
	assert.False(t, ok)
	assert.True(t, stack.IsEmpty())
}
