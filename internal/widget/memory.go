package widget

import (
	"context"
	"sync"

	"weatherlookup/internal/model"
)

// MemoryInput is an Input backed by a string.
type MemoryInput struct {
	mu      sync.Mutex
	initial string
	value   string
}

// NewMemoryInput returns an input rendered with initial as its value.
func NewMemoryInput(initial string) *MemoryInput {
	return &MemoryInput{initial: initial, value: initial}
}

func (in *MemoryInput) Value() string {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.value
}

func (in *MemoryInput) SetValue(value string) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.value = value
}

func (in *MemoryInput) InitialValue() string {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.initial
}

// Type replaces the text as if the user edited the field.
func (in *MemoryInput) Type(text string) {
	in.SetValue(text)
}

// MemoryList is a List that keeps its items in memory and exposes them as
// clickable nodes: the list root, one node per item and a label node inside
// each item.
type MemoryList struct {
	mu       sync.Mutex
	items    []model.Suggestion
	renders  int
	onChange func([]model.Suggestion)
}

// NewMemoryList returns an empty list. onChange, if set, is called after
// every Replace with a copy of the new items.
func NewMemoryList(onChange func([]model.Suggestion)) *MemoryList {
	return &MemoryList{onChange: onChange}
}

func (l *MemoryList) Replace(items []model.Suggestion) {
	l.mu.Lock()
	l.items = append([]model.Suggestion(nil), items...)
	l.renders++
	snapshot := append([]model.Suggestion(nil), l.items...)
	cb := l.onChange
	l.mu.Unlock()

	if cb != nil {
		cb(snapshot)
	}
}

// Items returns a copy of the current items.
func (l *MemoryList) Items() []model.Suggestion {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]model.Suggestion(nil), l.items...)
}

// Renders counts Replace calls.
func (l *MemoryList) Renders() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.renders
}

// Root is the list container itself. Clicking it selects nothing.
func (l *MemoryList) Root() Node {
	return rootNode{}
}

// Item returns the node of the i-th item, or nil when out of range.
func (l *MemoryList) Item(i int) Node {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i < 0 || i >= len(l.items) {
		return nil
	}
	return itemNode{value: l.items[i].Value}
}

// ItemLabel returns a node nested inside the i-th item, or nil.
func (l *MemoryList) ItemLabel(i int) Node {
	item := l.Item(i)
	if item == nil {
		return nil
	}
	return labelNode{parent: item.(itemNode)}
}

type rootNode struct{}

func (rootNode) Parent() Node            { return nil }
func (rootNode) Payload() (string, bool) { return "", false }

type itemNode struct {
	value string
}

func (itemNode) Parent() Node              { return rootNode{} }
func (n itemNode) Payload() (string, bool) { return n.value, true }

type labelNode struct {
	parent itemNode
}

func (n labelNode) Parent() Node          { return n.parent }
func (labelNode) Payload() (string, bool) { return "", false }

// FormFunc adapts a function to Form.
type FormFunc func(ctx context.Context, city string) error

func (f FormFunc) Submit(ctx context.Context, city string) error {
	return f(ctx, city)
}
