package routegraph

import (
	"errors"
)

type priorityQueueNode[T comparable] struct {
	rank    float64
	item    T
	itemPos int
}

func (p *priorityQueueNode[T]) GetItem() T {
	return p.item
}

func (p *priorityQueueNode[T]) GetRank() float64 {
	return p.rank
}

func newPriorityQueueNode[T comparable](rank float64, item T) *priorityQueueNode[T] {
	return &priorityQueueNode[T]{rank: rank, item: item}
}

// minHeap is a d-ary min-heap with decrease-key, used as the priority queue
// of the shortest-path searches.
type minHeap[T comparable] struct {
	heap []*priorityQueueNode[T]
	d    int
}

func newFourAryHeap[T comparable]() *minHeap[T] {
	return &minHeap[T]{
		heap: make([]*priorityQueueNode[T], 0),
		d:    4,
	}
}

func (h *minHeap[T]) parent(index int) int {
	return (index - 1) / h.d
}

func (h *minHeap[T]) heapifyUp(index int) {
	for index != 0 && h.heap[index].rank < h.heap[h.parent(index)].rank {
		h.swap(index, h.parent(index))
		index = h.parent(index)
	}
}

func (h *minHeap[T]) heapifyDown(index int) {
	for {
		leftMostChild := index*h.d + 1
		if leftMostChild >= len(h.heap) {
			return
		}

		sentinel := leftMostChild + h.d
		if sentinel > len(h.heap) {
			sentinel = len(h.heap)
		}

		smallest := leftMostChild
		for i := leftMostChild + 1; i < sentinel; i++ {
			if h.heap[i].rank < h.heap[smallest].rank {
				smallest = i
			}
		}

		if h.heap[smallest].rank >= h.heap[index].rank {
			return
		}
		h.swap(index, smallest)
		index = smallest
	}
}

func (h *minHeap[T]) swap(i, j int) {
	h.heap[i], h.heap[j] = h.heap[j], h.heap[i]
	h.heap[i].itemPos = i
	h.heap[j].itemPos = j
}

func (h *minHeap[T]) isEmpty() bool {
	return len(h.heap) == 0
}

func (h *minHeap[T]) size() int {
	return len(h.heap)
}

func (h *minHeap[T]) getMinRank() float64 {
	if h.isEmpty() {
		return infWeight
	}
	return h.heap[0].rank
}

func (h *minHeap[T]) insert(key *priorityQueueNode[T]) {
	h.heap = append(h.heap, key)
	index := h.size() - 1
	key.itemPos = index
	h.heapifyUp(index)
}

func (h *minHeap[T]) extractMin() (*priorityQueueNode[T], error) {
	if h.isEmpty() {
		return &priorityQueueNode[T]{}, errors.New("heap is empty")
	}
	root := h.heap[0]

	h.swap(0, h.size()-1)
	h.heap = h.heap[:h.size()-1]
	root.itemPos = -1
	if len(h.heap) > 0 {
		h.heapifyDown(0)
	}

	return root, nil
}

func (h *minHeap[T]) decreaseKey(item *priorityQueueNode[T], rank float64) error {
	itemPos := item.itemPos
	if itemPos < 0 || itemPos >= h.size() || h.heap[itemPos].rank < rank {
		return errors.New("invalid index or new value")
	}

	h.heap[itemPos].rank = rank
	h.heapifyUp(itemPos)
	return nil
}
