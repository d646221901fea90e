package memo

import "github.com/flarekit/flare"

// lruNode is a node in a doubly-linked LRU list. The node stores a key for
// O(1) deletion from the owning Cache's map.
type lruNode struct {
	key        flare.Fingerprint
	prev, next *lruNode
}

// lruList is a doubly-linked list for LRU eviction, not safe for concurrent
// use; callers hold the owning Cache's mutex. Head is most recently used,
// tail is least recently used.
type lruList struct {
	head, tail *lruNode
	len        int
}

func newLRUList() *lruList {
	return &lruList{}
}

func (l *lruList) Len() int { return l.len }

func (l *lruList) PushFront(key flare.Fingerprint) *lruNode {
	node := &lruNode{key: key}
	if l.head == nil {
		l.head = node
		l.tail = node
	} else {
		node.next = l.head
		l.head.prev = node
		l.head = node
	}
	l.len++
	return node
}

func (l *lruList) MoveToFront(node *lruNode) {
	if node == nil || node == l.head {
		return
	}
	l.unlink(node)

	node.prev = nil
	node.next = l.head
	if l.head != nil {
		l.head.prev = node
	}
	l.head = node
	if l.tail == nil {
		l.tail = node
	}
	l.len++
}

func (l *lruList) Remove(node *lruNode) {
	if node == nil {
		return
	}
	l.unlink(node)
}

func (l *lruList) RemoveOldest() (flare.Fingerprint, bool) {
	if l.tail == nil {
		var zero flare.Fingerprint
		return zero, false
	}
	node := l.tail
	l.unlink(node)
	return node.key, true
}

func (l *lruList) Clear() {
	l.head = nil
	l.tail = nil
	l.len = 0
}

func (l *lruList) unlink(node *lruNode) {
	if node.prev != nil {
		node.prev.next = node.next
	} else {
		l.head = node.next
	}
	if node.next != nil {
		node.next.prev = node.prev
	} else {
		l.tail = node.prev
	}
	node.prev = nil
	node.next = nil
	l.len--
}
