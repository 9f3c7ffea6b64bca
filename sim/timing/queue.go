package timing

import (
	"container/heap"
	"sync"
)

// eventQueue is a queue of events ordered by the time of the events.
type eventQueue interface {
	Push(evt Event)
	Pop() Event
	Len() int
	Peek() Event
}

// eventQueueImpl provides a thread-safe event queue.
type eventQueueImpl struct {
	sync.Mutex
	events eventHeap
}

// newEventQueue creates and returns a newly created eventQueue.
func newEventQueue() *eventQueueImpl {
	q := new(eventQueueImpl)
	q.events = make([]Event, 0)
	heap.Init(&q.events)
	return q
}

func (q *eventQueueImpl) Push(evt Event) {
	q.Lock()
	heap.Push(&q.events, evt)
	q.Unlock()
}

func (q *eventQueueImpl) Pop() Event {
	q.Lock()
	e := heap.Pop(&q.events).(Event)
	q.Unlock()
	return e
}

func (q *eventQueueImpl) Len() int {
	q.Lock()
	l := q.events.Len()
	q.Unlock()
	return l
}

func (q *eventQueueImpl) Peek() Event {
	q.Lock()
	evt := q.events[0]
	q.Unlock()
	return evt
}

type eventHeap []Event

func (h eventHeap) Len() int {
	return len(h)
}

// Less determines the order between two events. Less returns true if the i-th
// event happens before the j-th event.
func (h eventHeap) Less(i, j int) bool {
	return h[i].Time() < h[j].Time()
}

func (h eventHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}

func (h *eventHeap) Push(x any) {
	event := x.(Event)
	*h = append(*h, event)
}

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	event := old[n-1]
	*h = old[0 : n-1]
	return event
}
